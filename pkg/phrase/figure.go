package phrase

import "fmt"

// Figure is the rhythm pattern filling one beat of a phrase.
type Figure int

const (
	// Quarter is a single quarter note.
	Quarter Figure = iota
	// EighthPair is two eighth notes.
	EighthPair
	// Triplet is three eighth-note triplets.
	Triplet
	// FourSixteenths is four sixteenth notes alternating between two pitches.
	FourSixteenths
	// DottedEighthSixteenth is a dotted eighth followed by a sixteenth.
	DottedEighthSixteenth
	// EighthTwoSixteenths is an eighth followed by two sixteenths.
	EighthTwoSixteenths
	// TwoSixteenthsEighth is two sixteenths followed by an eighth.
	TwoSixteenthsEighth

	figureCount
)

// Figures lists every figure in declaration order.
var Figures = []Figure{
	Quarter, EighthPair, Triplet, FourSixteenths,
	DottedEighthSixteenth, EighthTwoSixteenths, TwoSixteenthsEighth,
}

// rhythmTable maps an 8-bit draw (mod 9) to a figure. Quarter and EighthPair
// appear twice, so they come up about twice as often as the others.
var rhythmTable = [9]Figure{
	Quarter, Quarter,
	EighthPair, EighthPair,
	DottedEighthSixteenth,
	Triplet,
	EighthTwoSixteenths,
	TwoSixteenthsEighth,
	FourSixteenths,
}

// figureFor selects the figure for an 8-bit draw.
func figureFor(draw uint32) Figure {
	return rhythmTable[draw%uint32(len(rhythmTable))]
}

func (f Figure) String() string {
	names := [...]string{
		"quarter",
		"eighth-pair",
		"triplet",
		"four-sixteenths",
		"dotted-eighth-sixteenth",
		"eighth-two-sixteenths",
		"two-sixteenths-eighth",
	}
	if f >= 0 && f < figureCount {
		return names[f]
	}
	return "unknown"
}

// MarshalText encodes the figure by name.
func (f Figure) MarshalText() ([]byte, error) {
	if f < 0 || f >= figureCount {
		return nil, fmt.Errorf("invalid figure: %d", int(f))
	}
	return []byte(f.String()), nil
}

// UnmarshalText decodes a figure name written by MarshalText.
func (f *Figure) UnmarshalText(text []byte) error {
	for _, candidate := range Figures {
		if candidate.String() == string(text) {
			*f = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown figure: %q", text)
}

// Notes returns how many pitches the figure sounds.
func (f Figure) Notes() int {
	switch f {
	case Quarter:
		return 1
	case EighthPair, DottedEighthSixteenth:
		return 2
	case Triplet, EighthTwoSixteenths, TwoSixteenthsEighth:
		return 3
	case FourSixteenths:
		return 4
	}
	return 0
}

// Grouping is the beaming family a figure leaves behind. The composer only
// writes a grouping marker when the next figure needs a different one.
type Grouping int

const (
	GroupNone Grouping = iota
	GroupQuarter
	GroupEighths
	GroupTriplet
	GroupSixteenths
)

func (g Grouping) String() string {
	switch g {
	case GroupQuarter:
		return "quarter"
	case GroupEighths:
		return "eighths"
	case GroupTriplet:
		return "triplet"
	case GroupSixteenths:
		return "sixteenths"
	}
	return "none"
}

// shape describes how a figure interacts with the running grouping.
type shape struct {
	marker string   // tokens announcing the figure's opening duration
	joins  Grouping // marker is skipped when the running grouping equals this; GroupNone never joins
	next   Grouping // grouping recorded for the following figure
}

// shapes is the relabelling table. Several figures end on a different
// duration than they open with, and the following figure is compared against
// the closing one:
//
//	dotted-eighth-sixteenth  opens e.  (always)     leaves sixteenths
//	eighth-two-sixteenths    opens e   after eighths leaves sixteenths
//	two-sixteenths-eighth    opens s   after 16ths   leaves eighths
var shapes = [figureCount]shape{
	Quarter:               {marker: "q", joins: GroupQuarter, next: GroupQuarter},
	EighthPair:            {marker: "e", joins: GroupEighths, next: GroupEighths},
	Triplet:               {marker: "et", joins: GroupTriplet, next: GroupTriplet},
	FourSixteenths:        {marker: "s", joins: GroupSixteenths, next: GroupSixteenths},
	DottedEighthSixteenth: {marker: "e.", joins: GroupNone, next: GroupSixteenths},
	EighthTwoSixteenths:   {marker: "e", joins: GroupEighths, next: GroupSixteenths},
	TwoSixteenthsEighth:   {marker: "s", joins: GroupSixteenths, next: GroupEighths},
}

// opens reports whether f needs its marker after a figure that left g.
func (f Figure) opens(g Grouping) bool {
	s := shapes[f]
	return s.joins == GroupNone || s.joins != g
}

// NextGrouping returns the grouping f leaves for the figure after it.
func (f Figure) NextGrouping() Grouping {
	return shapes[f].next
}
