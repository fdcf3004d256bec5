// Package bits locates values inside fixed-size bit-packed records.
//
// Bits are numbered in network order: bit 0 is the most significant bit (0x80)
// of the first byte, bit 7 its least significant bit, bit 8 the most significant
// bit of the second byte and so on. Because a Field is expressed only in these
// terms, reading and writing it gives the same wire bytes on every host.
package bits

const byteBits = 8

// Field is a run of Width bits starting at bit Offset.
// A field may straddle byte boundaries; its value is read most significant bit first.
type Field struct {
	Offset uint
	Width  uint
}

// Bit returns the single-bit field at offset.
func Bit(offset uint) Field {
	return Field{Offset: offset, Width: 1}
}

// Byte returns the field covering the whole byte at index idx.
func Byte(idx int) Field {
	return Field{Offset: uint(idx) * byteBits, Width: byteBits} //nolint:gosec // indices are small record offsets
}

// Mask returns the largest value the field can hold.
func (f Field) Mask() uint32 {
	if f.Width >= 32 { //nolint:mnd
		return ^uint32(0)
	}
	return uint32(1)<<f.Width - 1
}

// Len returns the number of bytes a record needs to hold the field.
func (f Field) Len() int {
	return int((f.Offset + f.Width + byteBits - 1) / byteBits) //nolint:gosec // small record sizes
}

// Chunk is the part of a Field that lives inside one byte.
type Chunk struct {
	Byte  int   // index of the byte holding the chunk
	Shift uint8 // position of the chunk's least significant bit within the byte
	Width uint8
}

func (c Chunk) mask() byte {
	return byte(0xff >> (byteBits - c.Width))
}

// Chunks splits the field into per-byte chunks, most significant chunk first.
func (f Field) Chunks() []Chunk {
	chunks := make([]Chunk, 0, f.Width/byteBits+2) //nolint:mnd
	off, rem := f.Offset, f.Width
	for rem > 0 {
		room := byteBits - off%byteBits
		w := min(room, rem)
		chunks = append(chunks, Chunk{
			Byte:  int(off / byteBits), //nolint:gosec // small record sizes
			Shift: uint8(room - w),     //nolint:gosec // always < 8
			Width: uint8(w),            //nolint:gosec // always <= 8
		})
		off += w
		rem -= w
	}
	return chunks
}

// Get concatenates the field's chunks into its value.
// b must be at least f.Len() bytes long.
func (f Field) Get(b []byte) (v uint32) {
	for _, c := range f.Chunks() {
		v = v<<c.Width | uint32(b[c.Byte]>>c.Shift&c.mask())
	}
	return
}

// Put stores v masked to the field width. Bits outside the field are left as they are.
// b must be at least f.Len() bytes long.
func (f Field) Put(b []byte, v uint32) {
	v &= f.Mask()
	rem := f.Width
	for _, c := range f.Chunks() {
		rem -= uint(c.Width)
		m := c.mask() << c.Shift
		b[c.Byte] = b[c.Byte]&^m | byte(v>>rem)<<c.Shift&m
	}
}

// GetBool reports whether any bit of the field is set.
func (f Field) GetBool(b []byte) bool {
	return f.Get(b) != 0
}

// PutBool stores 1 or 0 in the field.
func (f Field) PutBool(b []byte, set bool) {
	if set {
		f.Put(b, 1)
		return
	}
	f.Put(b, 0)
}

// Order is the bitfield allocation order a C compiler uses for a declaration.
type Order int

const (
	// MSBFirst allocates the first declared member to the most significant bits
	// (big-endian hosts). It matches the wire order.
	MSBFirst Order = iota
	// LSBFirst allocates the first declared member to the least significant bits
	// (little-endian hosts).
	LSBFirst
)

// String returns the name of the order.
func (o Order) String() string {
	switch o {
	case MSBFirst:
		return "MSB_FIRST"
	case LSBFirst:
		return "LSB_FIRST"
	}
	return "UNKNOWN"
}

// Layout returns the fields produced by declaring consecutive bitfields of the given
// widths for the byte at index idx, allocated in the given order.
// The widths must not add up to more than 8.
func Layout(idx int, order Order, widths ...uint) []Field {
	fields := make([]Field, len(widths))
	base := uint(idx) * byteBits //nolint:gosec // small record offsets
	var pos uint
	for i, w := range widths {
		if order == LSBFirst {
			fields[i] = Field{Offset: base + byteBits - pos - w, Width: w}
		} else {
			fields[i] = Field{Offset: base + pos, Width: w}
		}
		pos += w
	}
	return fields
}
