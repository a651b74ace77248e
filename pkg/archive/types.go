package archive

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Tune is an archived tune. Records are immutable once saved.
type Tune struct {
	ID           string   `json:"id"`            // UUID
	Seed         string   `json:"seed"`          // Seed text as given, may be empty
	Title        string   `json:"title"`         // ABC T: field
	Notation     string   `json:"notation"`      // Assembled token string
	ABC          string   `json:"abc"`           // Full ABC document
	PhraseTokens []string `json:"phrase_tokens"` // One token string per distinct phrase
	Phrases      int      `json:"phrases"`
	Repeats      int      `json:"repeats"`
	CreatedAtMs  int64    `json:"created_at_ms"` // Unix milliseconds
}

// NewTune builds a record with a fresh ID and the current time.
func NewTune(seed, title, notation, abc string, phraseTokens []string, repeats int) *Tune {
	return &Tune{
		ID:           uuid.New().String(),
		Seed:         seed,
		Title:        title,
		Notation:     notation,
		ABC:          abc,
		PhraseTokens: phraseTokens,
		Phrases:      len(phraseTokens),
		Repeats:      repeats,
		CreatedAtMs:  time.Now().UnixMilli(),
	}
}

// Validate checks that the tune has all required fields.
func (t *Tune) Validate() error {
	if _, err := uuid.Parse(t.ID); err != nil {
		return fmt.Errorf("invalid tune ID: not a valid UUID")
	}

	if t.ABC == "" {
		return fmt.Errorf("abc cannot be empty")
	}

	if t.Phrases < 1 {
		return fmt.Errorf("invalid phrases: must be >= 1, got %d", t.Phrases)
	}

	if t.Repeats < 1 {
		return fmt.Errorf("invalid repeats: must be >= 1, got %d", t.Repeats)
	}

	if len(t.PhraseTokens) != t.Phrases {
		return fmt.Errorf("phrase_tokens has %d entries, expected %d", len(t.PhraseTokens), t.Phrases)
	}

	return nil
}

// Layout returns the seed index field for this tune.
func (t *Tune) Layout() string {
	return LayoutField(t.Phrases, t.Repeats)
}

// CreatedAt returns the creation time.
func (t *Tune) CreatedAt() time.Time {
	return time.UnixMilli(t.CreatedAtMs)
}
