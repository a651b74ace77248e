// Package shelf lists and fetches archived tunes for the 'makemusic shelf'
// command.
package shelf

import (
	"context"
	"fmt"
	"io"

	"github.com/dyluth/makemusic/internal/filter"
	"github.com/dyluth/makemusic/pkg/archive"
)

// OutputFormat specifies how list and get output is written.
type OutputFormat string

const (
	// OutputFormatDefault is a table in list mode and pretty JSON in get mode
	OutputFormatDefault OutputFormat = "default"

	// OutputFormatJSONL writes one tune per line as compact JSON (list mode)
	OutputFormatJSONL OutputFormat = "jsonl"

	// OutputFormatJSON writes pretty-printed JSON
	OutputFormatJSON OutputFormat = "json"

	// OutputFormatABC writes the raw ABC document (get mode)
	OutputFormatABC OutputFormat = "abc"
)

// ListTunes writes every archived tune that passes filters, oldest first.
func ListTunes(ctx context.Context, client *archive.Client, format OutputFormat, filters *filter.Criteria, w io.Writer) error {
	if filters != nil {
		if err := filters.Validate(); err != nil {
			return err
		}
	}

	all, err := client.ListTunes(ctx)
	if err != nil {
		return fmt.Errorf("failed to list tunes: %w", err)
	}

	tunes := all[:0]
	for _, t := range all {
		if filters.Matches(t) {
			tunes = append(tunes, t)
		}
	}

	switch format {
	case OutputFormatDefault, "":
		FormatTable(w, tunes, client.Namespace())
	case OutputFormatJSONL:
		if err := FormatJSONL(w, tunes); err != nil {
			return fmt.Errorf("failed to format JSONL output: %w", err)
		}
	default:
		return fmt.Errorf("unknown output format for list: %s (use default or jsonl)", format)
	}

	return nil
}
