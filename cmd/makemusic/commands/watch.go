package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dyluth/makemusic/internal/filter"
	"github.com/dyluth/makemusic/internal/printer"
	"github.com/dyluth/makemusic/internal/watch"
	"github.com/spf13/cobra"
)

var (
	watchOutputFormat string
	watchCount        int
	watchSeed         string
	watchLayout       string
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Stream tunes as they are archived",
	Long: `Follow the archive and print each tune as soon as it is stored.

Output Formats:
  default - One summary line per tune
  json    - Line-delimited JSON for programmatic processing
  abc     - Each tune's ABC document

Examples:
  # Follow the archive until Ctrl-C
  makemusic watch

  # Only tunes whose seed mentions "jig"
  makemusic watch --seed="*jig*"

  # Collect the next five tunes into one ABC file
  makemusic watch --output=abc --count=5 > next-five.abc`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVarP(&watchOutputFormat, "output", "o", "default", "Output format (default, json or abc)")
	watchCmd.Flags().IntVarP(&watchCount, "count", "n", 0, "Exit after this many tunes (0 = run until interrupted)")
	watchCmd.Flags().StringVar(&watchSeed, "seed", "", "Only show tunes whose seed matches (glob pattern)")
	watchCmd.Flags().StringVar(&watchLayout, "layout", "", "Only show tunes with this layout, e.g. 2x2")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	format := watch.OutputFormat(watchOutputFormat)
	switch format {
	case watch.OutputFormatDefault, watch.OutputFormatJSON, watch.OutputFormatABC:
	default:
		return printer.Error(
			"invalid output format",
			fmt.Sprintf("Unknown format: %s", watchOutputFormat),
			[]string{"Valid formats: default, json, abc"},
		)
	}
	if watchCount < 0 {
		return printer.Error("invalid count", "--count cannot be negative", nil)
	}

	criteria := &filter.Criteria{SeedGlob: watchSeed, Layout: watchLayout}
	if err := criteria.Validate(); err != nil {
		return printer.Error("invalid filter", err.Error(), nil)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	client, err := connectArchive(ctx, cfg)
	if err != nil {
		return err
	}
	defer client.Close()

	printer.Step("Watching namespace '%s' for new tunes...\n", client.Namespace())
	return watch.StreamTunes(ctx, client, format, criteria, watchCount, cmd.OutOrStdout())
}
