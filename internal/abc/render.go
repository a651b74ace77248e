package abc

import (
	"fmt"
	"io"
	"strings"
)

// Fixed header fields. Every tune is a single 4/4 reel in C at 120 bpm.
const (
	ReferenceNumber = 1
	Meter           = "4/4"
	UnitNoteLength  = "1/4"
	Tempo           = "1/4=120"
	Key             = "C"
)

const (
	startOctave   = 4
	startDuration = 1.0
)

// Header writes the ABC header block with the given title.
func Header(w io.Writer, title string) error {
	_, err := fmt.Fprintf(w, "X:%d\nT:%s\nM:%s\nL:%s\nQ:%s\nK:%s\n",
		ReferenceNumber, headerTitle(title), Meter, UnitNoteLength, Tempo, Key)
	return err
}

// headerTitle keeps the title on its T: line.
func headerTitle(title string) string {
	return strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(title)
}

// Body converts a notation string to one line of ABC note symbols. Each symbol
// is followed by a space and the line ends with a newline.
func Body(notation string) string {
	var sb strings.Builder
	sb.Grow(len(notation) * 3)

	octave := startOctave
	duration := startDuration

	for _, tok := range Tokens(notation) {
		switch tok.Kind {
		case KindOctave:
			octave = int(tok.Value - '0')
		case KindDuration:
			duration = beats[tok.Value]
		case KindModifier:
			if tok.Value == 't' {
				duration = duration * 2.0 / 3.0
			} else {
				duration = duration * 1.5
			}
		case KindRest:
			sb.WriteByte('z')
			sb.WriteString(lengthSuffix(duration))
			sb.WriteByte(' ')
		case KindPitch:
			sb.WriteString(spell(tok.Value, octave))
			sb.WriteString(lengthSuffix(duration))
			sb.WriteByte(' ')
		}
	}

	sb.WriteByte('\n')
	return sb.String()
}

// Render writes a complete tune: header followed by the body line.
func Render(w io.Writer, title, notation string) error {
	if err := Header(w, title); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if _, err := io.WriteString(w, Body(notation)); err != nil {
		return fmt.Errorf("failed to write body: %w", err)
	}
	return nil
}

// RenderString is Render into a string.
func RenderString(title, notation string) string {
	var sb strings.Builder
	_ = Render(&sb, title, notation) // strings.Builder never fails
	return sb.String()
}

// spell writes a pitch letter in ABC octave notation: lowercase from octave 5
// with one apostrophe per octave above, uppercase for octave 4, and one comma
// per octave below 4.
func spell(letter byte, octave int) string {
	switch {
	case octave >= 5:
		return string(letter+('a'-'A')) + strings.Repeat("'", octave-5)
	case octave == 4:
		return string(letter)
	default:
		return string(letter) + strings.Repeat(",", 4-octave)
	}
}

// lengthSuffix maps a duration in beats to an ABC length multiplier relative
// to the quarter-note unit. Durations between one and two beats take no
// suffix.
func lengthSuffix(d float64) string {
	switch {
	case d >= 4.0:
		return "4"
	case d >= 2.0:
		return "2"
	case d >= 0.5 && d < 1.0:
		return "/"
	case d >= 0.25 && d < 0.5:
		return "//"
	case d < 0.25:
		return "///"
	}
	return ""
}
