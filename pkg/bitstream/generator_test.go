package bitstream

import (
	"crypto/sha256"
	"encoding/binary"
	"strings"
	"testing"

	"github.com/dyluth/makemusic/pkg/hashmix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func firstWords(seed string, n int) []uint32 {
	g := NewGenerator(seed)
	words := make([]uint32, n)
	for i := range words {
		words[i] = g.NextWord()
	}
	return words
}

func TestGenerator_KnownWords(t *testing.T) {
	tests := []struct {
		seed  string
		words []uint32
	}{
		{
			seed: "default",
			words: []uint32{
				0x46fc9414, 0x30da88ce, 0x92857b7a, 0xe50801b8, 0xd69d3e5e,
				0xcce9f9b0, 0x4b547dba, 0x1b585864, 0x9b12fa2e, 0x492742a6,
			},
		},
		{
			seed: "Default",
			words: []uint32{
				0xad83b628, 0xe3df10bf, 0x77c72c2f, 0x6d149bce, 0xa16c6c53,
				0xa1eb5590, 0x6fd4f798, 0x0e87ec4f, 0x5d73af59, 0x46bcb307,
			},
		},
		{
			seed: "",
			words: []uint32{
				0x2fa75865, 0x505cac1c, 0xe966a094, 0xbbb06ed1, 0x645e50f6,
				0xdd31f976, 0xd2df5c29, 0x8c421dbd, 0xe00c29be, 0x318f99f7,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.seed, func(t *testing.T) {
			assert.Equal(t, tt.words, firstWords(tt.seed, len(tt.words)))
		})
	}
}

func TestGenerator_SeedStateIsDigestForShortSeeds(t *testing.T) {
	for _, seed := range []string{"", "abc", "default", strings.Repeat("x", MaxSeedBytes)} {
		g := NewGenerator(seed)
		state := g.State()

		digest := sha256.Sum256([]byte(seed))
		for i, w := range state {
			assert.Equal(t, binary.BigEndian.Uint32(digest[i*4:]), w, "seed %q word %d", seed, i)
		}
	}
}

func TestGenerator_Deterministic(t *testing.T) {
	assert.Equal(t, firstWords("reproducible", 50), firstWords("reproducible", 50))
}

func TestGenerator_SeedSensitivity(t *testing.T) {
	assert.NotEqual(t, firstWords("default", 10), firstWords("Default", 10))

	// Flip each of the first MaxSeedBytes positions in turn.
	base := strings.Repeat("a", MaxSeedBytes)
	baseWords := firstWords(base, 4)
	for i := 0; i < MaxSeedBytes; i++ {
		changed := []byte(base)
		changed[i] = 'b'
		assert.NotEqual(t, baseWords, firstWords(string(changed), 4), "byte %d had no effect", i)
	}
}

func TestGenerator_TruncatesPastMaxSeedBytes(t *testing.T) {
	prefix := "abcdefghijklmnopqrstuvwxyzabcdefghijklmnopqrstuvwxyzabc"
	require.Len(t, prefix, MaxSeedBytes)

	t.Run("bytes past the limit are ignored", func(t *testing.T) {
		a := NewGenerator(prefix + "X")
		b := NewGenerator(prefix + "Y")
		assert.Equal(t, a.State(), b.State())
		assert.Equal(t, firstWords(prefix+"X", 10), firstWords(prefix+"Y", 10))

		long1 := prefix + strings.Repeat("1", 100)
		long2 := prefix + strings.Repeat("2", 100)
		assert.Equal(t, firstWords(long1, 10), firstWords(long2, 10))
	})

	t.Run("known words for a truncated seed", func(t *testing.T) {
		assert.Equal(t, hashmix.State{
			0x0f6a2cf4, 0x3c1520e4, 0xd48a2a47, 0xc049f3dd,
			0xc73f1869, 0x8fcab8df, 0x0d41b673, 0xe849041f,
		}, NewGenerator(prefix+"X").State())
	})

	t.Run("total length still counts", func(t *testing.T) {
		// The length field records the full seed length.
		assert.NotEqual(t, NewGenerator(prefix+"X").State(), NewGenerator(prefix+"XX").State())
	})
}

func TestGenerator_Counter(t *testing.T) {
	g := NewGenerator("count")
	assert.Equal(t, uint64(0), g.Counter())

	for i := 1; i <= 5; i++ {
		g.NextWord()
		assert.Equal(t, uint64(i), g.Counter())
	}

	t.Run("word extraction leaves the absorbed state alone", func(t *testing.T) {
		before := g.State()
		g.NextWord()
		assert.Equal(t, before, g.State())
	})

	t.Run("reseeding rewinds", func(t *testing.T) {
		g.Seed("count")
		assert.Equal(t, uint64(0), g.Counter())
		assert.Equal(t, firstWords("count", 3), []uint32{g.NextWord(), g.NextWord(), g.NextWord()})
	})
}
