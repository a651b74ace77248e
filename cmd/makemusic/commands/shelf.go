package commands

import (
	"context"
	"fmt"

	"github.com/dyluth/makemusic/internal/filter"
	"github.com/dyluth/makemusic/internal/printer"
	"github.com/dyluth/makemusic/internal/resolver"
	"github.com/dyluth/makemusic/internal/shelf"
	"github.com/spf13/cobra"
)

var (
	shelfOutputFormat string
	shelfSeed         string
	shelfSince        string
	shelfUntil        string
	shelfLayout       string
)

var shelfCmd = &cobra.Command{
	Use:   "shelf [TUNE_ID]",
	Short: "Browse archived tunes",
	Long: `Browse tunes stored with 'makemusic generate --archive'.

List Mode (no TUNE_ID):
  Shows archived tunes, oldest first, as a table or JSONL stream.

Get Mode (with TUNE_ID):
  Shows one tune as pretty-printed JSON, or as raw ABC with --output=abc.
  Short IDs (at least 6 characters) are accepted.

Output Formats:
  default - Table in list mode, JSON in get mode
  jsonl   - One JSON object per line (list mode)
  json    - Pretty JSON (get mode)
  abc     - Raw ABC document (get mode)

Filters (list mode only):
  --seed   - Seed glob pattern ("sea*", "*jig*")
  --since  - Archived after this time (duration, days or RFC3339)
  --until  - Archived before this time
  --layout - Exact layout ("2x2", "4x1")

Examples:
  # List everything
  makemusic shelf

  # Tunes from the last two days whose seed starts with "reel"
  makemusic shelf --seed="reel*" --since=2d

  # Export a tune by short ID
  makemusic shelf 1a2b3c --output=abc > tune.abc`,
	Args: cobra.MaximumNArgs(1),
	RunE: runShelf,
}

func init() {
	shelfCmd.Flags().StringVarP(&shelfOutputFormat, "output", "o", "default", "Output format: default, jsonl, json or abc")
	shelfCmd.Flags().StringVar(&shelfSeed, "seed", "", "Filter by seed (glob pattern)")
	shelfCmd.Flags().StringVar(&shelfSince, "since", "", "Show tunes archived after time (duration, days or RFC3339)")
	shelfCmd.Flags().StringVar(&shelfLayout, "layout", "", "Filter by layout, e.g. 2x2")
	shelfCmd.Flags().StringVar(&shelfUntil, "until", "", "Show tunes archived before time (duration, days or RFC3339)")
	rootCmd.AddCommand(shelfCmd)
}

func runShelf(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	isGetMode := len(args) > 0

	format := shelf.OutputFormat(shelfOutputFormat)
	validFormats := []shelf.OutputFormat{shelf.OutputFormatDefault, shelf.OutputFormatJSONL}
	if isGetMode {
		validFormats = []shelf.OutputFormat{shelf.OutputFormatDefault, shelf.OutputFormatJSON, shelf.OutputFormatABC}
	}
	if !containsFormat(validFormats, format) {
		return printer.Error(
			"invalid output format",
			fmt.Sprintf("Unknown format: %s", shelfOutputFormat),
			[]string{fmt.Sprintf("Valid formats: %v", validFormats)},
		)
	}

	var filters *filter.Criteria
	if !isGetMode {
		sinceMs, untilMs, err := shelf.ParseTimeRange(shelfSince, shelfUntil)
		if err != nil {
			return printer.Error(
				"invalid time filter",
				err.Error(),
				[]string{"Use a duration like '2h', days like '7d' or a timestamp like '2026-10-01T09:00:00Z'"},
			)
		}
		filters = &filter.Criteria{
			SinceTimestampMs: sinceMs,
			UntilTimestampMs: untilMs,
			SeedGlob:         shelfSeed,
			Layout:           shelfLayout,
		}
		if err := filters.Validate(); err != nil {
			return printer.Error("invalid filter", err.Error(), nil)
		}
		debugf("Listing with filters %+v", *filters)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	client, err := connectArchive(ctx, cfg)
	if err != nil {
		return err
	}
	defer client.Close()

	if !isGetMode {
		return shelf.ListTunes(ctx, client, format, filters, cmd.OutOrStdout())
	}

	shortID := args[0]
	fullID, err := resolver.ResolveTuneID(ctx, client, shortID)
	if err != nil {
		if resolver.IsNotFoundError(err) {
			return printer.Error(
				fmt.Sprintf("tune with ID '%s' not found", shortID),
				"No archived tune has that ID.",
				[]string{"List archived tunes:\n  makemusic shelf"},
			)
		}
		if ambigErr, ok := err.(*resolver.AmbiguousError); ok {
			return printer.Error(
				fmt.Sprintf("ambiguous short ID '%s'", shortID),
				resolver.FormatAmbiguousError(ambigErr),
				nil,
			)
		}
		return printer.Error("invalid tune ID", err.Error(), nil)
	}
	debugf("Resolved %s to %s", shortID, fullID)

	if err := shelf.GetTune(ctx, client, fullID, format, cmd.OutOrStdout()); err != nil {
		if shelf.IsNotFound(err) {
			return printer.Error(err.Error(), "The tune was removed while it was being read.", nil)
		}
		return err
	}
	return nil
}

func containsFormat(formats []shelf.OutputFormat, f shelf.OutputFormat) bool {
	for _, candidate := range formats {
		if candidate == f {
			return true
		}
	}
	return false
}
