package id

import (
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestUUIDGenerator_NewID(t *testing.T) {
	tests := []struct {
		name       string
		prefix     string
		wantPrefix string
	}{
		{name: "no prefix", prefix: "", wantPrefix: ""},
		{name: "bare prefix", prefix: "sq", wantPrefix: "sq_"},
		{name: "prefix with separator", prefix: "sq_", wantPrefix: "sq_"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := NewUUIDGenerator(tt.prefix)
			seen := make(map[string]struct{}, 64)
			for i := 0; i < 64; i++ {
				id, err := gen.NewID()
				if err != nil {
					t.Fatalf("NewID error: %v", err)
				}
				if !strings.HasPrefix(id, tt.wantPrefix) {
					t.Fatalf("id %q lacks prefix %q", id, tt.wantPrefix)
				}
				parsed, err := uuid.Parse(strings.TrimPrefix(id, tt.wantPrefix))
				if err != nil {
					t.Fatalf("parse %q: %v", id, err)
				}
				if parsed.Version() != 7 {
					t.Fatalf("expected uuid v7, got v%d", parsed.Version())
				}
				if _, dup := seen[id]; dup {
					t.Fatalf("duplicate id %q", id)
				}
				seen[id] = struct{}{}
			}
		})
	}
}
