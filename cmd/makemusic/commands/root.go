package commands

import (
	"fmt"
	"log"

	"github.com/dyluth/makemusic/internal/config"
	"github.com/dyluth/makemusic/internal/printer"
	"github.com/spf13/cobra"
)

var (
	version string
	commit  string
	date    string
)

var (
	configPath string
	verbose    bool
)

// rootCmd generates a tune when called without a subcommand
var rootCmd = &cobra.Command{
	Use:   "makemusic [SEED]",
	Short: "makemusic - turn any text into a tune",
	Long: `makemusic turns a seed string into a short tune and prints it as ABC
notation. The same seed always produces the same tune, so a seed is all
you need to share or reproduce one.

Running 'makemusic [SEED]' is the same as 'makemusic generate [SEED]'.`,
	Args:    cobra.MaximumNArgs(1),
	Version: version,
	RunE:    runGenerate,
	// Enable strict flag parsing - unknown flags will cause an error
	FParseErrWhitelist: cobra.FParseErrWhitelist{},
}

// Execute runs the root command. Called once by main.main().
func Execute() error {
	// Errors are printed by the printer package with color formatting
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
	err := rootCmd.Execute()
	if err != nil && !printer.IsDisplayed(err) {
		// Flag parsing and other cobra errors have not been shown yet
		printer.Error("Error", err.Error(), []string{"Run 'makemusic --help' for usage"})
	}
	return err
}

// SetVersionInfo sets the version information for the CLI
func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", v, c, d)
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.FileName, "Path to config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log diagnostic detail to stderr")
	addGenerateFlags(rootCmd)
}

// debugf logs a diagnostic line when --verbose is set
func debugf(format string, a ...any) {
	if verbose {
		log.Printf("[DEBUG] "+format, a...)
	}
}
