// Package abc renders phrase token strings as ABC notation.
//
// The token alphabet is shared with the phrase package:
//
//	0-9          set the absolute octave (4 is the octave of middle C)
//	w h q e s    set the duration to 4, 2, 1, 1/2 or 1/4 beats
//	t            scale the current duration by 2/3
//	.            scale the current duration by 3/2
//	A-G          pitch
//	R            rest
//
// Bytes outside the alphabet are skipped.
package abc

// TokenKind classifies one byte of a notation string.
type TokenKind int

const (
	KindUnknown TokenKind = iota
	KindOctave
	KindDuration
	KindModifier
	KindPitch
	KindRest
)

func (k TokenKind) String() string {
	switch k {
	case KindOctave:
		return "octave"
	case KindDuration:
		return "duration"
	case KindModifier:
		return "modifier"
	case KindPitch:
		return "pitch"
	case KindRest:
		return "rest"
	}
	return "unknown"
}

// Token is a classified notation byte.
type Token struct {
	Kind  TokenKind
	Value byte
}

// Classify returns the kind of b.
func Classify(b byte) TokenKind {
	switch {
	case b >= '0' && b <= '9':
		return KindOctave
	case b == 'w', b == 'h', b == 'q', b == 'e', b == 's':
		return KindDuration
	case b == 't', b == '.':
		return KindModifier
	case b >= 'A' && b <= 'G':
		return KindPitch
	case b == 'R':
		return KindRest
	}
	return KindUnknown
}

// Tokens splits notation into tokens, dropping bytes outside the alphabet.
func Tokens(notation string) []Token {
	tokens := make([]Token, 0, len(notation))
	for i := 0; i < len(notation); i++ {
		kind := Classify(notation[i])
		if kind == KindUnknown {
			continue
		}
		tokens = append(tokens, Token{Kind: kind, Value: notation[i]})
	}
	return tokens
}

// beats maps duration tokens to their length in quarter-note beats.
var beats = map[byte]float64{
	'w': 4.0,
	'h': 2.0,
	'q': 1.0,
	'e': 0.5,
	's': 0.25,
}
