package team

import (
	"strings"

	crerr "github.com/cockroachdb/errors"
)

var ErrDuplicateCode = crerr.New("team code already exists")

// Team is a real cricket side whose players make up a match pool.
type Team struct {
	ID   int64
	Name string
	Code string
}

func (t Team) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return crerr.New("team name is required")
	}
	if strings.TrimSpace(t.Code) == "" {
		return crerr.New("team code is required")
	}
	if len(t.Code) > 10 {
		return crerr.Newf("team code %q is longer than 10 characters", t.Code)
	}

	return nil
}
