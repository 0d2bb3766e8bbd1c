package showcase

import (
	"encoding/binary"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Pass identifies one render pass. Its seed drives every random draw of the
// pass so sub-resources can replay the data a page was rendered with.
type Pass struct {
	ID uuid.UUID
	At time.Time
}

// NewPass starts a fresh render pass.
func NewPass(now time.Time) Pass {
	return Pass{ID: uuid.New(), At: now}
}

// ReplayPass rebuilds a pass from its ID.
func ReplayPass(id string, now time.Time) (Pass, error) {
	parsed, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return Pass{}, fmt.Errorf("%w: %v", ErrInvalidPass, err)
	}
	return Pass{ID: parsed, At: now}, nil
}

// Seed folds the pass ID into a 64-bit seed.
func (p Pass) Seed() uint64 {
	return binary.BigEndian.Uint64(p.ID[:8]) ^ binary.BigEndian.Uint64(p.ID[8:])
}
