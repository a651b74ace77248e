package shelf

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseTime turns a --since/--until value into Unix milliseconds relative to
// now. Accepted forms:
//   - RFC3339 timestamps: "2026-10-01T09:00:00Z"
//   - Go durations, meaning that long ago: "90m", "1h30m"
//   - whole days ago: "7d"
func ParseTime(spec string, now time.Time) (int64, error) {
	if spec == "" {
		return 0, fmt.Errorf("empty time specification")
	}

	if t, err := time.Parse(time.RFC3339, spec); err == nil {
		return t.UnixMilli(), nil
	}

	if d, err := time.ParseDuration(spec); err == nil {
		return now.Add(-d).UnixMilli(), nil
	}

	if days, ok := strings.CutSuffix(spec, "d"); ok {
		if n, err := strconv.Atoi(days); err == nil && n >= 0 {
			return now.AddDate(0, 0, -n).UnixMilli(), nil
		}
	}

	return 0, fmt.Errorf("invalid time specification: %s (use a duration like '1h30m', days like '7d' or RFC3339 like '2026-10-01T09:00:00Z')", spec)
}

// ParseTimeRange parses --since and --until into Unix milliseconds. Zero
// means that end is unbounded.
func ParseTimeRange(since, until string) (int64, int64, error) {
	now := time.Now()
	var sinceMs, untilMs int64
	var err error

	if since != "" {
		if sinceMs, err = ParseTime(since, now); err != nil {
			return 0, 0, fmt.Errorf("invalid --since: %w", err)
		}
	}

	if until != "" {
		if untilMs, err = ParseTime(until, now); err != nil {
			return 0, 0, fmt.Errorf("invalid --until: %w", err)
		}
	}

	if sinceMs > 0 && untilMs > 0 && sinceMs >= untilMs {
		return 0, 0, fmt.Errorf("--since must be before --until")
	}

	return sinceMs, untilMs, nil
}
