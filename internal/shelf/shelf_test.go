package shelf

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/dyluth/makemusic/pkg/archive"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

// setupArchive returns an archive client backed by miniredis and preloaded
// with tunes
func setupArchive(t *testing.T, tunes ...*archive.Tune) *archive.Client {
	t.Helper()
	mr := miniredis.RunT(t)

	client, err := archive.NewClient(&redis.Options{Addr: mr.Addr()}, "test-ns")
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	for _, tune := range tunes {
		require.NoError(t, client.SaveTune(context.Background(), tune))
	}
	return client
}

func tuneAt(id, seed string, age time.Duration) *archive.Tune {
	return &archive.Tune{
		ID:           id,
		Seed:         seed,
		Title:        seed,
		Notation:     "5qA5qA",
		ABC:          "X:1\nT:" + seed + "\nM:4/4\nL:1/4\nQ:1/4=120\nK:C\nc c \n",
		PhraseTokens: []string{"5qA"},
		Phrases:      1,
		Repeats:      2,
		CreatedAtMs:  time.Now().Add(-age).UnixMilli(),
	}
}
