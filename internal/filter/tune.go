package filter

import (
	"fmt"
	"path/filepath"

	"github.com/dyluth/makemusic/pkg/archive"
)

// Criteria defines filtering criteria for archived tunes.
// All filters are ANDed together - a tune must match ALL criteria to pass.
type Criteria struct {
	SinceTimestampMs int64  // Unix timestamp in milliseconds, 0 = no filter
	UntilTimestampMs int64  // Unix timestamp in milliseconds, 0 = no filter
	SeedGlob         string // Glob pattern for the seed, empty = no filter
	Layout           string // Exact layout such as "2x2", empty = no filter
}

// Validate checks that the seed pattern is well formed.
func (c *Criteria) Validate() error {
	if c.SeedGlob != "" {
		if _, err := filepath.Match(c.SeedGlob, ""); err != nil {
			return fmt.Errorf("invalid seed pattern '%s': %w", c.SeedGlob, err)
		}
	}
	return nil
}

// Matches returns true if the tune matches all filter criteria.
// A nil Criteria matches everything.
func (c *Criteria) Matches(t *archive.Tune) bool {
	if c == nil {
		return true
	}

	if c.SinceTimestampMs > 0 && t.CreatedAtMs < c.SinceTimestampMs {
		return false
	}
	if c.UntilTimestampMs > 0 && t.CreatedAtMs > c.UntilTimestampMs {
		return false
	}

	if c.SeedGlob != "" {
		matched, err := filepath.Match(c.SeedGlob, t.Seed)
		if err != nil || !matched {
			return false
		}
	}

	if c.Layout != "" && t.Layout() != c.Layout {
		return false
	}

	return true
}

// IsEmpty returns true if no filter criteria are set.
func (c *Criteria) IsEmpty() bool {
	return c == nil || (c.SinceTimestampMs == 0 && c.UntilTimestampMs == 0 && c.SeedGlob == "" && c.Layout == "")
}
