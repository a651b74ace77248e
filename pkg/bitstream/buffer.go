package bitstream

// BufferCapacity is the fixed number of bits a Buffer can hold.
const BufferCapacity = 2048 * 8

// Buffer is a fixed-capacity FIFO of single bits backed by a ring.
// The zero value is an empty buffer ready for use.
type Buffer struct {
	bits  [BufferCapacity]uint8
	head  int // next write position
	tail  int // next read position
	count int
}

// Push appends the low count bits of word, least significant first. Bits that
// do not fit are dropped without disturbing the ones already queued.
func (b *Buffer) Push(word uint32, count int) {
	for i := 0; i < count; i++ {
		if b.count < BufferCapacity {
			b.bits[b.head] = uint8(word & 1)
			b.head = (b.head + 1) % BufferCapacity
			b.count++
		}
		word >>= 1
	}
}

// Pop removes and returns the oldest bit. ok is false when the buffer is empty.
func (b *Buffer) Pop() (bit uint8, ok bool) {
	if b.count == 0 {
		return 0, false
	}
	bit = b.bits[b.tail]
	b.tail = (b.tail + 1) % BufferCapacity
	b.count--
	return bit, true
}

// Len returns the number of queued bits.
func (b *Buffer) Len() int {
	return b.count
}

// Cap returns BufferCapacity.
func (b *Buffer) Cap() int {
	return BufferCapacity
}

// Reset discards every queued bit.
func (b *Buffer) Reset() {
	b.head, b.tail, b.count = 0, 0, 0
}
