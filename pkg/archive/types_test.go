package archive

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTune(t *testing.T) {
	before := time.Now().UnixMilli()
	tune := NewTune("seed", "title", "5qA5qA5eBC5eBC", "X:1\n", []string{"5qA", "5eBC"}, 2)

	_, err := uuid.Parse(tune.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, tune.Phrases)
	assert.Equal(t, "2x2", tune.Layout())
	assert.GreaterOrEqual(t, tune.CreatedAtMs, before)
	assert.NoError(t, tune.Validate())
}

func TestTune_Validate(t *testing.T) {
	valid := func() *Tune {
		return NewTune("s", "s", "5qA", "X:1\n", []string{"5qA"}, 1)
	}

	tests := []struct {
		name   string
		mutate func(*Tune)
		errMsg string
	}{
		{"bad id", func(t *Tune) { t.ID = "nope" }, "invalid tune ID"},
		{"no abc", func(t *Tune) { t.ABC = "" }, "abc cannot be empty"},
		{"zero phrases", func(t *Tune) { t.Phrases = 0 }, "invalid phrases"},
		{"zero repeats", func(t *Tune) { t.Repeats = 0 }, "invalid repeats"},
		{"phrase count mismatch", func(t *Tune) { t.Phrases = 2; t.Repeats = 1 }, "phrase_tokens has 1 entries, expected 2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tune := valid()
			tt.mutate(tune)
			err := tune.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestTune_CreatedAt(t *testing.T) {
	tune := &Tune{CreatedAtMs: 1700000000123}
	assert.Equal(t, int64(1700000000123), tune.CreatedAt().UnixMilli())
}
