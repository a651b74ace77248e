// Package tune assembles composed phrases into complete tunes and renders
// them as ABC notation.
package tune

import (
	"fmt"
	"strings"

	"github.com/dyluth/makemusic/internal/abc"
	"github.com/dyluth/makemusic/pkg/bitstream"
	"github.com/dyluth/makemusic/pkg/phrase"
)

// DefaultSeed is used when no seed is supplied.
const DefaultSeed = "default"

// Layout limits.
const (
	MaxPhrases = 16
	MaxRepeats = 8
)

// Layout controls how many phrases a tune has and how often each is played.
type Layout struct {
	Phrases int `yaml:"phrases" json:"phrases"`
	Repeats int `yaml:"repeats" json:"repeats"`
}

// DefaultLayout is two phrases, each played twice (AABB).
var DefaultLayout = Layout{Phrases: 2, Repeats: 2}

// Validate checks the layout bounds.
func (l Layout) Validate() error {
	if l.Phrases < 1 || l.Phrases > MaxPhrases {
		return fmt.Errorf("phrases must be between 1 and %d, got %d", MaxPhrases, l.Phrases)
	}
	if l.Repeats < 1 || l.Repeats > MaxRepeats {
		return fmt.Errorf("repeats must be between 1 and %d, got %d", MaxRepeats, l.Repeats)
	}
	return nil
}

// Tune is a generated piece: its phrases, the assembled notation and the ABC
// rendering.
type Tune struct {
	Seed     string          `json:"seed"`
	Layout   Layout          `json:"layout"`
	Phrases  []phrase.Phrase `json:"phrases"`
	Notation string          `json:"notation"`
	ABC      string          `json:"abc"`
}

// Compose generates a tune from seed. All phrases are drawn in order from one
// bit source, so the same seed and layout always give the same tune.
func Compose(seed string, layout Layout) (*Tune, error) {
	if err := layout.Validate(); err != nil {
		return nil, fmt.Errorf("invalid layout: %w", err)
	}

	composer := phrase.NewComposer(bitstream.NewSource(seed))

	phrases := make([]phrase.Phrase, layout.Phrases)
	for i := range phrases {
		phrases[i] = composer.Compose()
	}

	notation := Assemble(phrases, layout.Repeats)

	return &Tune{
		Seed:     seed,
		Layout:   layout,
		Phrases:  phrases,
		Notation: notation,
		ABC:      abc.RenderString(seed, notation),
	}, nil
}

// Assemble joins phrases into one notation string, writing each phrase
// repeats times before moving to the next.
func Assemble(phrases []phrase.Phrase, repeats int) string {
	size := 0
	for _, p := range phrases {
		size += len(p.Tokens) * repeats
	}

	var sb strings.Builder
	sb.Grow(size)
	for _, p := range phrases {
		for i := 0; i < repeats; i++ {
			sb.WriteString(p.Tokens)
		}
	}
	return sb.String()
}

// Figures returns the figures of every phrase in playing order, repeats
// included.
func (t *Tune) Figures() []phrase.Figure {
	var out []phrase.Figure
	for _, p := range t.Phrases {
		for i := 0; i < t.Layout.Repeats; i++ {
			out = append(out, p.Figures...)
		}
	}
	return out
}
