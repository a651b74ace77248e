package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/dyluth/makemusic/internal/config"
	"github.com/dyluth/makemusic/internal/printer"
	"github.com/fatih/color"
	"github.com/stretchr/testify/require"
)

// resetFlags restores every flag variable to its default, since the command
// tree is package-level and keeps values between executions
func resetFlags() {
	configPath = config.FileName
	verbose = false
	genPhrases, genRepeats = 0, 0
	genTokens, genArchive = false, false
	shelfOutputFormat, shelfSeed, shelfSince, shelfUntil, shelfLayout = "default", "", "", "", ""
	watchOutputFormat, watchCount, watchSeed, watchLayout = "default", 0, "", ""
	forceInit = false
}

// runCLI executes the root command with args and returns what was written to
// stdout and stderr
func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	resetFlags()

	var stdout, stderr bytes.Buffer
	restore := printer.SetOutput(&stdout, &stderr)
	defer restore()

	noColor := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = noColor }()

	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := Execute()
	return stdout.String(), stderr.String(), err
}

// goldenDir is resolved at load time because several tests chdir
var goldenDir, _ = filepath.Abs(filepath.Join("..", "..", "..", "internal", "tune", "testdata"))

func golden(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(goldenDir, name))
	require.NoError(t, err)
	return string(data)
}

// writeConfig writes a makemusic.yml into a temp dir and returns its path
func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), config.FileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// archiveConfig starts miniredis and writes a config pointing at it
func archiveConfig(t *testing.T) (string, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	path := writeConfig(t, `version: "1.0"
archive:
  redis_url: "redis://`+mr.Addr()+`"
  namespace: "cli"
`)
	return path, mr
}

func writeFile(t *testing.T, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(name, []byte(content), 0644))
}
