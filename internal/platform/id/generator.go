package id

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Generator creates opaque IDs suitable for external references.
type Generator interface {
	NewID() (string, error)
}

// UUIDGenerator issues time-ordered UUIDv7 values, optionally prefixed
// ("sq_0193..."), so rows inserted together stay adjacent in the primary key.
type UUIDGenerator struct {
	prefix string
}

func NewUUIDGenerator(prefix string) *UUIDGenerator {
	prefix = strings.TrimSpace(prefix)
	if prefix != "" && !strings.HasSuffix(prefix, "_") {
		prefix += "_"
	}
	return &UUIDGenerator{prefix: prefix}
}

func (g *UUIDGenerator) NewID() (string, error) {
	v, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("generate uuid: %w", err)
	}
	return g.prefix + v.String(), nil
}
