package commands

import (
	"github.com/dyluth/makemusic/internal/printer"
	"github.com/dyluth/makemusic/internal/scaffold"
	"github.com/spf13/cobra"
)

var forceInit bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter makemusic.yml",
	Long: `Write a starter makemusic.yml in the current directory.

The file sets the default seed and layout and contains a commented-out
archive section for Redis.

Use --force to replace an existing makemusic.yml.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVarP(&forceInit, "force", "f", false, "Overwrite an existing makemusic.yml")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	if !forceInit {
		if err := scaffold.CheckExisting("."); err != nil {
			return printer.Error(
				"makemusic.yml already exists",
				err.Error(),
				nil,
			)
		}
	}

	if err := scaffold.Initialize(".", forceInit); err != nil {
		return printer.Error(
			"initialization failed",
			err.Error(),
			nil,
		)
	}

	scaffold.PrintSuccess()
	return nil
}
