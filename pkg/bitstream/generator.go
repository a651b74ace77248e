// Package bitstream turns a text seed into an unbounded, reproducible stream
// of pseudo-random bits.
//
// A Generator absorbs the seed into a SHA-256 chaining state once and then
// produces one 32-bit word per call by compressing a counter block against a
// copy of that state. A Buffer queues individual bits so callers can consume
// them in arbitrary widths, and a Source ties the two together.
//
// None of the types in this package are safe for concurrent use. All of them
// are cheap to create, so give each goroutine its own.
package bitstream

import (
	"encoding/binary"

	"github.com/dyluth/makemusic/pkg/hashmix"
)

// MaxSeedBytes is the number of seed bytes that fit in the single absorption
// block. Anything past this offset is ignored.
const MaxSeedBytes = 55

// Generator produces pseudo-random words from a seed.
type Generator struct {
	state   hashmix.State
	counter uint64
}

// NewGenerator returns a generator seeded with seed.
func NewGenerator(seed string) *Generator {
	g := &Generator{}
	g.Seed(seed)
	return g
}

// Seed resets the generator to the state derived from seed and rewinds the
// counter to zero.
//
// The seed block is laid out like a one-block SHA-256 message: the first
// MaxSeedBytes of the seed, a 0x80 marker, zero padding and a big-endian
// bit length in the last eight bytes. The length field always records the
// full seed length, even when the seed was truncated.
func (g *Generator) Seed(seed string) {
	var block hashmix.Block

	n := copy(block[:MaxSeedBytes], seed)
	block[n] = 0x80
	binary.BigEndian.PutUint64(block[56:], uint64(len(seed))*8)

	g.state = hashmix.IV
	hashmix.Compress(&g.state, &block)
	g.counter = 0
}

// NextWord returns the next word of the stream and advances the counter.
//
// The counter block carries a fixed length marker of 0x0200 in its last two
// bytes whatever the counter value is. Changing it would change every word
// produced from every seed.
func (g *Generator) NextWord() uint32 {
	var block hashmix.Block
	binary.BigEndian.PutUint64(block[:8], g.counter)
	block[8] = 0x80
	block[62] = 0x02
	block[63] = 0x00

	// The absorbed state is never advanced; each word starts from it afresh.
	out := g.state
	hashmix.Compress(&out, &block)

	g.counter++
	return out[0]
}

// Counter reports how many words have been produced since the last Seed.
func (g *Generator) Counter() uint64 {
	return g.counter
}

// State returns a copy of the absorbed seed state.
func (g *Generator) State() hashmix.State {
	return g.state
}
