package tune

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dyluth/makemusic/pkg/phrase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompose_GoldenOutput(t *testing.T) {
	tests := []struct {
		seed   string
		golden string
	}{
		{"default", "default.abc"},
		{"Default", "Default.abc"},
		{"abc", "abc.abc"},
		{"", "empty.abc"},
	}

	for _, tt := range tests {
		t.Run(tt.golden, func(t *testing.T) {
			want, err := os.ReadFile(filepath.Join("testdata", tt.golden))
			require.NoError(t, err)

			got, err := Compose(tt.seed, DefaultLayout)
			require.NoError(t, err)
			assert.Equal(t, string(want), got.ABC)
		})
	}
}

func TestCompose_DefaultLayoutIsAABB(t *testing.T) {
	got, err := Compose(DefaultSeed, DefaultLayout)
	require.NoError(t, err)
	require.Len(t, got.Phrases, 2)

	p1, p2 := got.Phrases[0].Tokens, got.Phrases[1].Tokens
	assert.Equal(t, p1+p1+p2+p2, got.Notation)
	assert.Equal(t, "5e.4As5DqCe4AG5E4Gs5GFGFq4GGG", p1)
	assert.Len(t, got.Figures(), 4*phrase.Iterations)
}

func TestCompose_Deterministic(t *testing.T) {
	a, err := Compose("same seed", Layout{Phrases: 3, Repeats: 1})
	require.NoError(t, err)
	b, err := Compose("same seed", Layout{Phrases: 3, Repeats: 1})
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestCompose_LongerLayoutsExtendTheStream(t *testing.T) {
	short, err := Compose("extend", Layout{Phrases: 2, Repeats: 1})
	require.NoError(t, err)
	long, err := Compose("extend", Layout{Phrases: 4, Repeats: 1})
	require.NoError(t, err)

	// Earlier phrases do not depend on how many come after them.
	assert.Equal(t, short.Phrases, long.Phrases[:2])
	assert.True(t, strings.HasPrefix(long.Notation, short.Notation))
}

func TestCompose_TruncatedSeeds(t *testing.T) {
	prefix := strings.Repeat("s", 55)

	a, err := Compose(prefix+strings.Repeat("1", 100), DefaultLayout)
	require.NoError(t, err)
	b, err := Compose(prefix+strings.Repeat("2", 100), DefaultLayout)
	require.NoError(t, err)

	assert.Equal(t, a.Notation, b.Notation)
	// The title still carries the full seed.
	assert.NotEqual(t, a.ABC, b.ABC)
}

func TestCompose_InvalidLayout(t *testing.T) {
	tests := []struct {
		layout Layout
		msg    string
	}{
		{Layout{Phrases: 0, Repeats: 2}, "phrases must be between 1 and 16"},
		{Layout{Phrases: 17, Repeats: 2}, "phrases must be between 1 and 16"},
		{Layout{Phrases: 2, Repeats: 0}, "repeats must be between 1 and 8"},
		{Layout{Phrases: 2, Repeats: 9}, "repeats must be between 1 and 8"},
	}

	for _, tt := range tests {
		got, err := Compose("x", tt.layout)
		assert.Nil(t, got)
		require.Error(t, err)
		assert.Contains(t, err.Error(), tt.msg)
	}
}

func TestAssemble(t *testing.T) {
	phrases := []phrase.Phrase{{Tokens: "5qA"}, {Tokens: "5eBC"}}

	assert.Equal(t, "5qA5eBC", Assemble(phrases, 1))
	assert.Equal(t, "5qA5qA5qA5eBC5eBC5eBC", Assemble(phrases, 3))
	assert.Empty(t, Assemble(nil, 2))
}
