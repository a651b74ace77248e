// Package watch streams tunes as they are archived.
package watch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/dyluth/makemusic/internal/filter"
	"github.com/dyluth/makemusic/pkg/archive"
)

// OutputFormat specifies how streamed tunes are written.
type OutputFormat string

const (
	// OutputFormatDefault writes one human-readable line per tune
	OutputFormatDefault OutputFormat = "default"

	// OutputFormatJSON writes one compact JSON object per tune per line
	OutputFormatJSON OutputFormat = "json"

	// OutputFormatABC writes each tune's ABC document, separated by a blank line
	OutputFormatABC OutputFormat = "abc"
)

// Subscriber is the part of the archive client StreamTunes needs.
type Subscriber interface {
	SubscribeTuneEvents(ctx context.Context) (*archive.Subscription, error)
}

// StreamTunes writes every tune archived in the namespace that matches
// criteria until ctx is cancelled. If limit is above zero it returns after
// that many tunes.
func StreamTunes(ctx context.Context, client Subscriber, format OutputFormat, criteria *filter.Criteria, limit int, w io.Writer) error {
	switch format {
	case OutputFormatDefault, OutputFormatJSON, OutputFormatABC:
	default:
		return fmt.Errorf("unknown output format: %s", format)
	}
	if criteria != nil {
		if err := criteria.Validate(); err != nil {
			return err
		}
	}

	sub, err := client.SubscribeTuneEvents(ctx)
	if err != nil {
		return err
	}
	defer sub.Close()

	seen := 0
	for {
		select {
		case <-ctx.Done():
			return nil

		case err, ok := <-sub.Errors():
			if !ok {
				return nil
			}
			log.Printf("[WARN] %v", err)

		case t, ok := <-sub.Events():
			if !ok {
				return nil
			}
			if !criteria.Matches(t) {
				continue
			}
			if err := writeTune(w, t, format); err != nil {
				return err
			}
			seen++
			if limit > 0 && seen >= limit {
				return nil
			}
		}
	}
}

func writeTune(w io.Writer, t *archive.Tune, format OutputFormat) error {
	var err error
	switch format {
	case OutputFormatJSON:
		var data []byte
		data, err = json.Marshal(t)
		if err != nil {
			return fmt.Errorf("failed to marshal tune: %w", err)
		}
		_, err = fmt.Fprintf(w, "%s\n", data)
	case OutputFormatABC:
		_, err = fmt.Fprintf(w, "%s\n", t.ABC)
	default:
		_, err = fmt.Fprintf(w, "[%s] 🎵 Tune archived: id=%s seed=%q layout=%s phrases=%d\n",
			time.UnixMilli(t.CreatedAtMs).Format("15:04:05"), shortID(t.ID), t.Seed, t.Layout(), len(t.PhraseTokens))
	}
	if err != nil {
		return fmt.Errorf("failed to write tune: %w", err)
	}
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
