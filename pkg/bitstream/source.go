package bitstream

// wordBits is the width of one generator word.
const wordBits = 32

// Source hands out bits from a Generator through a Buffer, refilling the
// buffer one word at a time as it runs dry.
//
// Successive calls continue the same stream, so every phrase of a tune must
// draw from the same Source to be reproducible.
type Source struct {
	gen *Generator
	buf Buffer
}

// NewSource returns a Source over a fresh generator for seed.
func NewSource(seed string) *Source {
	return &Source{gen: NewGenerator(seed)}
}

// NewSourceFrom wraps an existing generator. The source takes ownership of gen.
func NewSourceFrom(gen *Generator) *Source {
	return &Source{gen: gen}
}

// Take returns the next n bits (n <= 32) packed into an integer. The first bit
// taken becomes the most significant bit of the n-bit result.
func (s *Source) Take(n int) uint32 {
	var result uint32
	for n > 0 {
		bit, ok := s.buf.Pop()
		if !ok {
			s.buf.Push(s.gen.NextWord(), wordBits)
			continue
		}
		result = result<<1 | uint32(bit)
		n--
	}
	return result
}

// Reset drops any buffered bits. The generator counter is left alone, so the
// next Take starts from a fresh word rather than rewinding the stream.
func (s *Source) Reset() {
	s.buf.Reset()
}

// Buffered returns the number of bits waiting in the buffer.
func (s *Source) Buffered() int {
	return s.buf.Len()
}

// Generator exposes the underlying word generator.
func (s *Source) Generator() *Generator {
	return s.gen
}
