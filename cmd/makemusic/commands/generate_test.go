package commands

import (
	"testing"

	"github.com/dyluth/makemusic/internal/printer"
	"github.com/dyluth/makemusic/pkg/archive"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	defaultPhrase1 = "5e.4As5DqCe4AG5E4Gs5GFGFq4GGG"
	defaultPhrase2 = "5etCFEeEs4G5FeDsC4A5FEFEqEe4A5Cs4G5E4G5EqC"
)

func TestGenerate_GoldenOutput(t *testing.T) {
	t.Chdir(t.TempDir()) // no makemusic.yml

	tests := []struct {
		name   string
		args   []string
		golden string
	}{
		{"root without seed", nil, "default.abc"},
		{"root with seed", []string{"Default"}, "Default.abc"},
		{"generate subcommand", []string{"generate", "abc"}, "abc.abc"},
		{"empty seed", []string{"generate", ""}, "empty.abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, stderr, err := runCLI(t, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, golden(t, tt.golden), stdout)
			assert.Empty(t, stderr)
		})
	}
}

func TestGenerate_Tokens(t *testing.T) {
	t.Chdir(t.TempDir())

	stdout, _, err := runCLI(t, "--tokens")
	require.NoError(t, err)
	assert.Equal(t, defaultPhrase1+defaultPhrase1+defaultPhrase2+defaultPhrase2+"\n", stdout)

	stdout, _, err = runCLI(t, "generate", "default", "--tokens", "--phrases", "1", "--repeats", "1")
	require.NoError(t, err)
	assert.Equal(t, defaultPhrase1+"\n", stdout)
}

func TestGenerate_InvalidLayout(t *testing.T) {
	t.Chdir(t.TempDir())

	stdout, stderr, err := runCLI(t, "generate", "--phrases", "17")
	require.Error(t, err)
	assert.True(t, printer.IsDisplayed(err))
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "invalid layout")
	assert.Contains(t, stderr, "phrases must be between 1 and 16, got 17")
}

func TestGenerate_UsesConfig(t *testing.T) {
	t.Chdir(t.TempDir())

	path := writeConfig(t, `version: "1.0"
seed: abc
layout:
  phrases: 1
  repeats: 1
`)

	stdout, _, err := runCLI(t, "--config", path, "--tokens")
	require.NoError(t, err)

	full, _, err := runCLI(t, "generate", "abc", "--tokens")
	require.NoError(t, err)
	assert.Less(t, len(stdout), len(full))

	t.Run("flags override config", func(t *testing.T) {
		stdout, _, err := runCLI(t, "--config", path)
		require.NoError(t, err)
		assert.Contains(t, stdout, "T:abc\n")

		stdout, _, err = runCLI(t, "--config", path, "--phrases", "2", "--repeats", "2")
		require.NoError(t, err)
		assert.Equal(t, golden(t, "abc.abc"), stdout)
	})
}

func TestGenerate_ConfigErrors(t *testing.T) {
	t.Run("explicit config must exist", func(t *testing.T) {
		_, stderr, err := runCLI(t, "--config", "/nonexistent/makemusic.yml")
		require.Error(t, err)
		assert.Contains(t, stderr, "invalid configuration")
	})

	t.Run("default config may be invalid", func(t *testing.T) {
		dir := t.TempDir()
		t.Chdir(dir)
		writeFile(t, "makemusic.yml", "version: \"7\"\n")

		_, stderr, err := runCLI(t)
		require.Error(t, err)
		assert.Contains(t, stderr, "unsupported version: 7")
	})

	t.Run("archive needs an archive section", func(t *testing.T) {
		path := writeConfig(t, "version: \"1.0\"\n")

		stdout, stderr, err := runCLI(t, "--config", path, "--archive")
		require.Error(t, err)
		assert.NotEmpty(t, stdout, "the tune is still printed")
		assert.Contains(t, stderr, "archive not configured")
	})
}

func TestGenerate_Archive(t *testing.T) {
	path, mr := archiveConfig(t)

	stdout, stderr, err := runCLI(t, "--config", path, "--archive", "reel")
	require.NoError(t, err)
	assert.Contains(t, stdout, "T:reel\n")
	assert.Contains(t, stderr, "✓ Archived tune ")

	keys := mr.Keys()
	assert.Contains(t, keys, archive.SeedKey("cli", "reel"))
	id := mr.HGet(archive.SeedKey("cli", "reel"), "2x2")
	require.NotEmpty(t, id)
	assert.Equal(t, stdout, mr.HGet(archive.TuneKey("cli", id), "abc"))

	t.Run("same seed and layout is not stored twice", func(t *testing.T) {
		_, stderr, err := runCLI(t, "--config", path, "--archive", "reel")
		require.NoError(t, err)
		assert.Contains(t, stderr, "Already archived as "+id)
		assert.Len(t, mr.Keys(), len(keys))
	})

	t.Run("different layout is a new tune", func(t *testing.T) {
		_, stderr, err := runCLI(t, "--config", path, "--archive", "reel", "--repeats", "1")
		require.NoError(t, err)
		assert.Contains(t, stderr, "Archived tune ")
		assert.NotEmpty(t, mr.HGet(archive.SeedKey("cli", "reel"), "2x1"))
	})

	t.Run("unreachable redis", func(t *testing.T) {
		mr.Close()
		_, stderr, err := runCLI(t, "--config", path, "--archive", "jig")
		require.Error(t, err)
		assert.Contains(t, stderr, "Redis connection failed")
	})
}

func TestRoot_RejectsUnknownFlags(t *testing.T) {
	_, stderr, err := runCLI(t, "--unknown-flag", "value")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown flag")
	assert.Contains(t, stderr, "unknown flag: --unknown-flag")
}

func TestRoot_RejectsExtraArgs(t *testing.T) {
	t.Chdir(t.TempDir())

	_, _, err := runCLI(t, "generate", "one", "two")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts at most 1 arg(s)")
}
