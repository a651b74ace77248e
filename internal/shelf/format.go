package shelf

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/dyluth/makemusic/pkg/archive"
)

// FormatTable writes tunes as an aligned table and returns the row count.
func FormatTable(w io.Writer, tunes []*archive.Tune, namespace string) int {
	if len(tunes) == 0 {
		fmt.Fprintf(w, "No tunes found in namespace '%s'\n", namespace)
		return 0
	}

	fmt.Fprintf(w, "Tunes in namespace '%s':\n\n", namespace)

	fmt.Fprintf(w, "%-10s %-20s %-6s %-15s %-8s %s\n",
		"ID", "SEED", "LAYOUT", "AGE", "SIZE", "OPENING")
	fmt.Fprintf(w, "%-10s %-20s %-6s %-15s %-8s %s\n",
		"----------", "--------------------", "------", "---------------", "--------", "------------------------------")

	for _, t := range tunes {
		fmt.Fprintf(w, "%-10s %-20s %-6s %-15s %-8s %s\n",
			formatID(t.ID),
			formatSeed(t.Seed),
			t.Layout(),
			formatAge(t.CreatedAtMs),
			humanize.Bytes(uint64(len(t.ABC))),
			formatOpening(t.PhraseTokens),
		)
	}

	noun := "tune"
	if len(tunes) != 1 {
		noun = "tunes"
	}
	fmt.Fprintf(w, "\n%s %s found\n", humanize.Comma(int64(len(tunes))), noun)

	return len(tunes)
}

// FormatJSONL writes one compact JSON object per tune per line.
func FormatJSONL(w io.Writer, tunes []*archive.Tune) error {
	for _, t := range tunes {
		data, err := json.Marshal(t)
		if err != nil {
			return fmt.Errorf("failed to marshal tune to JSON: %w", err)
		}

		if _, err := fmt.Fprintf(w, "%s\n", data); err != nil {
			return fmt.Errorf("failed to write JSONL output: %w", err)
		}
	}

	return nil
}

// FormatSingleJSON writes one tune as pretty-printed JSON.
func FormatSingleJSON(w io.Writer, t *archive.Tune) error {
	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal tune to JSON: %w", err)
	}

	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write JSON output: %w", err)
	}

	fmt.Fprintln(w)
	return nil
}

// formatID truncates a tune ID to 8 characters.
func formatID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// formatSeed quotes the seed so empty and space-padded seeds stay visible,
// truncating long ones.
func formatSeed(seed string) string {
	quoted := fmt.Sprintf("%q", seed)
	if len(quoted) > 20 {
		return quoted[:16] + "...\""
	}
	return quoted
}

// formatAge renders a creation time relative to now, e.g. "3 minutes ago".
func formatAge(createdAtMs int64) string {
	if createdAtMs == 0 {
		return "-"
	}
	return humanize.Time(time.UnixMilli(createdAtMs))
}

// formatOpening shows the start of the first phrase.
func formatOpening(phraseTokens []string) string {
	if len(phraseTokens) == 0 || phraseTokens[0] == "" {
		return "-"
	}
	first := phraseTokens[0]
	if len(first) > 30 {
		return first[:27] + "..."
	}
	return first
}
