package bits

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFieldChunks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		field  Field
		chunks []Chunk
	}{
		{
			name:   "high_nibble",
			field:  Field{Offset: 0, Width: 4},
			chunks: []Chunk{{Byte: 0, Shift: 4, Width: 4}},
		},
		{
			name:   "low_bit",
			field:  Bit(15),
			chunks: []Chunk{{Byte: 1, Shift: 0, Width: 1}},
		},
		{
			name:  "mpeg_bitrate",
			field: Field{Offset: 17, Width: 15},
			chunks: []Chunk{
				{Byte: 2, Shift: 0, Width: 7},
				{Byte: 3, Shift: 0, Width: 8},
			},
		},
		{
			name:  "usac_frequency",
			field: Field{Offset: 2, Width: 26},
			chunks: []Chunk{
				{Byte: 0, Shift: 0, Width: 6},
				{Byte: 1, Shift: 0, Width: 8},
				{Byte: 2, Shift: 0, Width: 8},
				{Byte: 3, Shift: 4, Width: 4},
			},
		},
		{
			name:   "empty",
			field:  Field{Offset: 3, Width: 0},
			chunks: []Chunk{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.chunks, tt.field.Chunks())
		})
	}
}

func TestFieldGetPut(t *testing.T) {
	t.Parallel()

	t.Run("straddling_value", func(t *testing.T) {
		t.Parallel()
		b := make([]byte, 3)
		f := Field{Offset: 4, Width: 12}
		f.Put(b, 0xabc)
		require.Equal(t, []byte{0x0a, 0xbc, 0x00}, b)
		require.Equal(t, uint32(0xabc), f.Get(b))
	})

	t.Run("masks_to_width", func(t *testing.T) {
		t.Parallel()
		b := make([]byte, 1)
		f := Field{Offset: 2, Width: 3}
		f.Put(b, 0xff)
		require.Equal(t, []byte{0x38}, b)
		require.Equal(t, uint32(7), f.Get(b))
	})

	t.Run("leaves_neighbours_untouched", func(t *testing.T) {
		t.Parallel()
		b := []byte{0xff, 0xff, 0xff}
		f := Field{Offset: 5, Width: 10}
		f.Put(b, 0)
		require.Equal(t, []byte{0xf8, 0x01, 0xff}, b)
		f.Put(b, f.Mask())
		require.Equal(t, []byte{0xff, 0xff, 0xff}, b)
	})

	t.Run("full_width", func(t *testing.T) {
		t.Parallel()
		b := make([]byte, 5)
		f := Field{Offset: 8, Width: 32}
		f.Put(b, 0xdeadbeef)
		require.Equal(t, []byte{0x00, 0xde, 0xad, 0xbe, 0xef}, b)
		require.Equal(t, uint32(0xdeadbeef), f.Get(b))
		require.Equal(t, ^uint32(0), f.Mask())
	})

	t.Run("bool", func(t *testing.T) {
		t.Parallel()
		b := make([]byte, 1)
		f := Bit(0)
		f.PutBool(b, true)
		require.Equal(t, []byte{0x80}, b)
		require.True(t, f.GetBool(b))
		f.PutBool(b, false)
		require.Equal(t, []byte{0x00}, b)
		require.False(t, f.GetBool(b))
	})
}

func TestFieldRoundTripAllValues(t *testing.T) {
	t.Parallel()

	for _, f := range []Field{{Offset: 1, Width: 7}, {Offset: 13, Width: 11}, {Offset: 6, Width: 9}} {
		b := make([]byte, f.Len())
		for i := range b {
			b[i] = 0x5a
		}
		orig := append([]byte(nil), b...)
		for v := uint32(0); v <= f.Mask(); v++ {
			f.Put(b, v)
			require.Equal(t, v, f.Get(b))
		}
		f.Put(b, f.Get(orig))
		require.Equal(t, orig, b)
	}
}

func TestFieldLen(t *testing.T) {
	t.Parallel()

	require.Equal(t, 1, Field{Offset: 0, Width: 8}.Len())
	require.Equal(t, 2, Field{Offset: 7, Width: 2}.Len())
	require.Equal(t, 6, Field{Offset: 25, Width: 23}.Len())
	require.Equal(t, Field{Offset: 24, Width: 8}, Byte(3))
}

func TestLayout(t *testing.T) {
	t.Parallel()

	// uint8 frequency:4; uint8 channel_mode:4;
	be := Layout(6, MSBFirst, 4, 4)
	require.Equal(t, []Field{{Offset: 48, Width: 4}, {Offset: 52, Width: 4}}, be)

	// the little-endian declaration lists the same members in reverse
	le := Layout(6, LSBFirst, 4, 4)
	require.Equal(t, be[0], le[1])
	require.Equal(t, be[1], le[0])

	// uint8 reserved:6; has_new_caps:1; bidirect_link:1;
	be = Layout(7, MSBFirst, 6, 1, 1)
	le = Layout(7, LSBFirst, 1, 1, 6)
	require.Equal(t, []Field{be[2], be[1], be[0]}, le)

	require.Equal(t, "MSB_FIRST", MSBFirst.String())
	require.Equal(t, "LSB_FIRST", LSBFirst.String())
}
