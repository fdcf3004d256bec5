package usac

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/ugparu/a2dp"
	"github.com/ugparu/a2dp/utils"
	"github.com/ugparu/a2dp/utils/bits"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		data     []byte
		expected Capabilities
	}{
		{
			name:     "zero",
			data:     make([]byte, Size),
			expected: Capabilities{},
		},
		{
			name: "usac_48000_stereo",
			data: []byte{0x80, 0x00, 0x04, 0x04, 0x80, 0xfa, 0x00},
			expected: Capabilities{
				ObjectType: ObjectTypeMPEGDUSACWithDRC,
				Frequency:  SamplingFreq48000,
				Channels:   Channels2,
				VBR:        true,
				Bitrate:    64000,
			},
		},
		{
			name: "lowest_and_highest_frequency",
			data: []byte{0x20, 0x00, 0x00, 0x18, 0x00, 0x00, 0x01},
			expected: Capabilities{
				Frequency: SamplingFreq7350 | SamplingFreq96000,
				Channels:  Channels1,
				Bitrate:   1,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			caps, err := Parse(tt.data)
			require.NoError(t, err)
			require.Equal(t, tt.expected, caps)
			require.Equal(t, tt.data, caps.Bytes())
		})
	}
}

func TestParseMalformed(t *testing.T) {
	t.Parallel()

	_, err := Parse(make([]byte, Size-1))
	var malformed utils.MalformedInputError
	require.ErrorAs(t, err, &malformed)
	require.Equal(t, "MPEG-D USAC", malformed.Codec)
}

func TestScatteredAccessors(t *testing.T) {
	t.Parallel()

	b := []byte{0xc0, 0x00, 0x00, 0x0f, 0x80, 0x00, 0x00}
	for i := range uint(26) {
		v := uint32(1) << i
		SetFrequency(b, v)
		require.Equal(t, v, Frequency(b))
		require.Equal(t, byte(0xc0), b[0]&0xc0)
		require.Equal(t, byte(0x0f), b[3]&0x0f)
	}
	SetFrequency(b, 0xffffffff)
	require.Equal(t, uint32(0x03ffffff), Frequency(b))
	require.Equal(t, []byte{0xff, 0xff, 0xff, 0xff}, b[:4])

	for _, v := range []uint32{0, 96000, 0x7fffff} {
		SetBitrate(b, v)
		require.Equal(t, v, Bitrate(b))
		require.Equal(t, byte(0x80), b[4]&0x80)
	}
}

func TestLayoutMatchesBothDeclarations(t *testing.T) {
	t.Parallel()

	// object_type:2 frequency1:6 on big-endian hosts, frequency1:6 object_type:2 on little-endian
	be := bits.Layout(0, bits.MSBFirst, 2, 6)
	le := bits.Layout(0, bits.LSBFirst, 6, 2)
	require.Equal(t, fieldObjectType, be[0])
	require.Equal(t, fieldObjectType, le[1])
	require.Equal(t, be[1], le[0])
	require.Equal(t, fieldFrequency.Offset, be[1].Offset)

	// frequency4:4 channels:4 / channels:4 frequency4:4
	be = bits.Layout(3, bits.MSBFirst, 4, 4)
	le = bits.Layout(3, bits.LSBFirst, 4, 4)
	require.Equal(t, fieldChannels, be[1])
	require.Equal(t, fieldChannels, le[0])
	chunks := fieldFrequency.Chunks()
	require.Len(t, chunks, 4)
	require.Equal(t, bits.Chunk{Byte: 3, Shift: 4, Width: 4}, chunks[3])
}

func TestFlagAccessors(t *testing.T) {
	t.Parallel()

	caps := Capabilities{Frequency: SamplingFreq44100 | SamplingFreq48000, Channels: Channels1 | Channels2}
	require.Equal(t, a2dp.MPEGD, caps.Type())
	require.Equal(t, []uint{44100, 48000}, caps.SampleRates())
	require.Equal(t, []a2dp.ChannelMode{a2dp.ChannelMono, a2dp.ChannelStereo}, caps.ChannelModes())
	require.Contains(t, caps.String(), "USAC_CAPABILITIES")
}
