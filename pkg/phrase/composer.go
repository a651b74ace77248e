// Package phrase turns a bit source into short melodic phrases written in the
// compact token alphabet understood by the ABC renderer.
//
// Token alphabet emitted here:
//
//	4 5      set the absolute octave
//	q e s    set the duration to quarter, eighth or sixteenth
//	t        scale the current duration to a triplet
//	.        dot the current duration
//	A-G      sound a pitch
//
// Every phrase opens with an octave token and then fills Iterations beats.
package phrase

import "strings"

const (
	// Iterations is the number of beats in a phrase.
	Iterations = 8

	// MaxPhraseLen bounds the token string of one phrase. The longest beat
	// is nine tokens, so eight beats plus the opening octave always fit.
	MaxPhraseLen = 255

	rhythmBits = 8
	pitchBits  = 4
)

// Register is the octave band the composer is writing in.
type Register int

const (
	RegisterLow  Register = 4
	RegisterHigh Register = 5
)

// BitSource supplies the random bits a Composer consumes.
// *bitstream.Source satisfies it.
type BitSource interface {
	// Take returns the next n bits, first bit most significant.
	Take(n int) uint32
	// Reset drops buffered bits without rewinding the stream.
	Reset()
}

// Phrase is one composed phrase.
type Phrase struct {
	Tokens  string   `json:"tokens"`
	Figures []Figure `json:"figures"`
}

// Composer writes phrases from a BitSource. Consecutive calls to Compose keep
// drawing from the same source, so a tune is only reproducible when all of its
// phrases come from one Composer in the same order.
type Composer struct {
	src BitSource

	out      strings.Builder
	grouping Grouping
	register Register
}

// NewComposer returns a composer reading from src.
func NewComposer(src BitSource) *Composer {
	return &Composer{src: src}
}

// Compose generates the next phrase.
func (c *Composer) Compose() Phrase {
	// Bits left over from the previous phrase are discarded.
	c.src.Reset()

	c.out.Reset()
	c.out.Grow(MaxPhraseLen)
	c.grouping = GroupNone
	c.register = RegisterHigh
	c.out.WriteByte(octaveToken(RegisterHigh))

	figures := make([]Figure, 0, Iterations)
	for i := 0; i < Iterations; i++ {
		f := figureFor(c.src.Take(rhythmBits))
		c.beat(f)
		figures = append(figures, f)
	}

	return Phrase{Tokens: c.out.String(), Figures: figures}
}

// beat writes one figure and advances the grouping state.
func (c *Composer) beat(f Figure) {
	if f.opens(c.grouping) {
		c.out.WriteString(shapes[f].marker)
	}

	switch f {
	case Quarter:
		c.pitch(c.draw())
	case EighthPair:
		c.pitch(c.draw())
		c.pitch(c.draw())
	case Triplet:
		c.pitch(c.draw())
		c.pitch(c.draw())
		c.pitch(c.draw())
	case DottedEighthSixteenth:
		c.pitch(c.draw())
		c.out.WriteByte('s')
		c.pitch(c.draw())
	case EighthTwoSixteenths:
		c.pitch(c.draw())
		c.out.WriteByte('s')
		c.pitch(c.draw())
		c.pitch(c.draw())
	case TwoSixteenthsEighth:
		c.pitch(c.draw())
		c.pitch(c.draw())
		c.out.WriteByte('e')
		c.pitch(c.draw())
	case FourSixteenths:
		// Two draws played twice as an alternating figure.
		first, second := c.draw(), c.draw()
		c.pitch(first)
		c.pitch(second)
		c.pitch(first)
		c.pitch(second)
	}

	c.grouping = f.NextGrouping()
}

func (c *Composer) draw() uint32 {
	return c.src.Take(pitchBits)
}

// pitch writes the note for a 4-bit draw, preceded by an octave token when the
// note falls in the other register. Degrees 0-2 sit in the low register and
// degree 0 wraps round to G below A.
func (c *Composer) pitch(draw uint32) {
	degree := draw / 2

	reg := RegisterHigh
	if degree < 3 {
		reg = RegisterLow
	}
	if reg != c.register {
		c.register = reg
		c.out.WriteByte(octaveToken(reg))
	}

	c.out.WriteByte(letterFor(degree))
}

func letterFor(degree uint32) byte {
	if degree == 0 {
		return 'G'
	}
	return byte('A' + degree - 1)
}

func octaveToken(r Register) byte {
	return byte('0' + r)
}
