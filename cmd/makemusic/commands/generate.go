package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/dyluth/makemusic/internal/config"
	"github.com/dyluth/makemusic/internal/printer"
	"github.com/dyluth/makemusic/internal/tune"
	"github.com/dyluth/makemusic/pkg/archive"
	"github.com/spf13/cobra"
)

var (
	genPhrases int
	genRepeats int
	genTokens  bool
	genArchive bool
)

var generateCmd = &cobra.Command{
	Use:   "generate [SEED]",
	Short: "Generate a tune from a seed",
	Long: `Generate a tune from a seed and print it as ABC notation.

The seed is any text. Without an argument the seed from makemusic.yml is
used, or "default" if there is none. Pass "" to use the empty seed.

Only the first 55 bytes of a seed shape the melody; the whole seed is used
as the tune's title.

Examples:
  # Print the tune for "default"
  makemusic generate

  # Save a tune to a file
  makemusic generate "sea shanty" > shanty.abc

  # Four phrases, each played once
  makemusic generate rondo --phrases 4 --repeats 1

  # Show the raw token string instead of ABC
  makemusic generate --tokens

  # Keep the tune in the Redis archive as well
  makemusic generate "sea shanty" --archive`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGenerate,
}

func init() {
	addGenerateFlags(generateCmd)
	rootCmd.AddCommand(generateCmd)
}

// addGenerateFlags registers the generate flags on cmd. The root command
// shares them so 'makemusic SEED --phrases 4' works.
func addGenerateFlags(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&genPhrases, "phrases", "p", 0, fmt.Sprintf("Number of phrases, 1-%d (default from config, else 2)", tune.MaxPhrases))
	cmd.Flags().IntVarP(&genRepeats, "repeats", "r", 0, fmt.Sprintf("Times each phrase is played, 1-%d (default from config, else 2)", tune.MaxRepeats))
	cmd.Flags().BoolVar(&genTokens, "tokens", false, "Print the token string instead of ABC")
	cmd.Flags().BoolVar(&genArchive, "archive", false, "Store the tune in the Redis archive")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	seed := cfg.Seed
	if len(args) > 0 {
		seed = args[0]
	}

	layout := *cfg.Layout
	if genPhrases != 0 {
		layout.Phrases = genPhrases
	}
	if genRepeats != 0 {
		layout.Repeats = genRepeats
	}

	t, err := tune.Compose(seed, layout)
	if err != nil {
		return printer.Error(
			"invalid layout",
			err.Error(),
			[]string{fmt.Sprintf("Use --phrases between 1 and %d and --repeats between 1 and %d", tune.MaxPhrases, tune.MaxRepeats)},
		)
	}
	debugf("Composed %d phrases for seed %q (%d notation bytes)", len(t.Phrases), seed, len(t.Notation))

	if err := writeTune(cmd.OutOrStdout(), t); err != nil {
		return err
	}

	if genArchive {
		return archiveTune(ctx, cfg, t)
	}
	return nil
}

func writeTune(w io.Writer, t *tune.Tune) error {
	var err error
	if genTokens {
		_, err = fmt.Fprintln(w, t.Notation)
	} else {
		_, err = io.WriteString(w, t.ABC)
	}
	if err != nil {
		return fmt.Errorf("failed to write tune: %w", err)
	}
	return nil
}

// archiveTune stores t unless a tune with the same seed and layout is
// already archived. Generation is deterministic, so the stored copy is
// identical.
func archiveTune(ctx context.Context, cfg *config.MakemusicConfig, t *tune.Tune) error {
	client, err := connectArchive(ctx, cfg)
	if err != nil {
		return err
	}
	defer client.Close()

	existingID, err := client.FindBySeed(ctx, t.Seed, t.Layout.Phrases, t.Layout.Repeats)
	switch {
	case err == nil:
		printer.Info("Already archived as %s\n", existingID)
		return nil
	case !archive.IsNotFound(err):
		return fmt.Errorf("failed to check archive: %w", err)
	}

	tokens := make([]string, len(t.Phrases))
	for i, p := range t.Phrases {
		tokens[i] = p.Tokens
	}

	record := archive.NewTune(t.Seed, t.Seed, t.Notation, t.ABC, tokens, t.Layout.Repeats)
	if err := client.SaveTune(ctx, record); err != nil {
		return fmt.Errorf("failed to archive tune: %w", err)
	}

	printer.Success("Archived tune %s\n", record.ID)
	return nil
}
