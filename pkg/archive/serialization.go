package archive

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Redis stores tunes as string-to-string hashes. The phrase list is
// JSON-encoded into a single field.

// TuneToHash converts a Tune to Redis hash fields.
func TuneToHash(t *Tune) (map[string]interface{}, error) {
	phraseTokens := t.PhraseTokens
	if phraseTokens == nil {
		phraseTokens = []string{}
	}
	phraseTokensJSON, err := json.Marshal(phraseTokens)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal phrase_tokens: %w", err)
	}

	return map[string]interface{}{
		"id":            t.ID,
		"seed":          t.Seed,
		"title":         t.Title,
		"notation":      t.Notation,
		"abc":           t.ABC,
		"phrase_tokens": string(phraseTokensJSON),
		"phrases":       t.Phrases,
		"repeats":       t.Repeats,
		"created_at_ms": t.CreatedAtMs,
	}, nil
}

// HashToTune converts Redis hash fields back to a Tune.
func HashToTune(hash map[string]string) (*Tune, error) {
	phrases, err := strconv.Atoi(hash["phrases"])
	if err != nil {
		return nil, fmt.Errorf("invalid phrases field: %w", err)
	}

	repeats, err := strconv.Atoi(hash["repeats"])
	if err != nil {
		return nil, fmt.Errorf("invalid repeats field: %w", err)
	}

	var phraseTokens []string
	if raw := hash["phrase_tokens"]; raw != "" {
		if err := json.Unmarshal([]byte(raw), &phraseTokens); err != nil {
			return nil, fmt.Errorf("failed to unmarshal phrase_tokens: %w", err)
		}
	}
	if phraseTokens == nil {
		phraseTokens = []string{}
	}

	// Older records may lack a timestamp
	createdAtMs, _ := strconv.ParseInt(hash["created_at_ms"], 10, 64)

	return &Tune{
		ID:           hash["id"],
		Seed:         hash["seed"],
		Title:        hash["title"],
		Notation:     hash["notation"],
		ABC:          hash["abc"],
		PhraseTokens: phraseTokens,
		Phrases:      phrases,
		Repeats:      repeats,
		CreatedAtMs:  createdAtMs,
	}, nil
}
