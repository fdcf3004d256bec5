package sbc

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/ugparu/a2dp"
	"github.com/ugparu/a2dp/utils"
	"github.com/ugparu/a2dp/utils/bits"
)

func TestBytes(t *testing.T) {
	t.Parallel()

	caps := Capabilities{
		Frequency:        SamplingFreq44100,
		ChannelMode:      ChannelModeStereo,
		BlockLength:      BlockLength16,
		Subbands:         Subbands8,
		AllocationMethod: AllocationLoudness,
		MinBitpool:       2,
		MaxBitpool:       53,
	}
	b := caps.Bytes()
	require.Equal(t, []byte{0x22, 0x15, 0x02, 0x35}, b)

	parsed, err := Parse(b)
	require.NoError(t, err)
	require.Equal(t, caps, parsed)
}

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		data     []byte
		expected Capabilities
	}{
		{
			name:     "zero",
			data:     []byte{0x00, 0x00, 0x00, 0x00},
			expected: Capabilities{},
		},
		{
			name: "all_supported",
			data: []byte{0xff, 0xff, MinBitpool, MaxBitpool},
			expected: Capabilities{
				Frequency:        0x0f,
				ChannelMode:      0x0f,
				BlockLength:      0x0f,
				Subbands:         0x03,
				AllocationMethod: 0x03,
				MinBitpool:       MinBitpool,
				MaxBitpool:       MaxBitpool,
			},
		},
		{
			name: "frequency_is_high_nibble",
			data: []byte{0x81, 0x82, 0x0f, 0x33},
			expected: Capabilities{
				Frequency:        SamplingFreq16000,
				ChannelMode:      ChannelModeJointStereo,
				BlockLength:      BlockLength4,
				Subbands:         0,
				AllocationMethod: AllocationSNR,
				MinBitpool:       15,
				MaxBitpool:       51,
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

	for _, n := range []int{0, 3, 5, 8} {
		caps, err := Parse(make([]byte, n))
		var malformed utils.MalformedInputError
		require.ErrorAs(t, err, &malformed)
		require.Equal(t, Size, malformed.Want)
		require.Equal(t, n, malformed.Got)
		require.Equal(t, Capabilities{}, caps)
	}
}

func TestBytesTruncatesWideValues(t *testing.T) {
	t.Parallel()

	caps := Capabilities{Frequency: 0xf1, Subbands: 0x05}
	require.Equal(t, []byte{0x10, 0x04, 0x00, 0x00}, caps.Bytes())
}

func TestLayoutMatchesBothDeclarations(t *testing.T) {
	t.Parallel()

	// big-endian hosts: frequency:4 channel_mode:4 / block_length:4 subbands:2 allocation_method:2
	be0 := bits.Layout(0, bits.MSBFirst, 4, 4)
	be1 := bits.Layout(1, bits.MSBFirst, 4, 2, 2)
	// little-endian hosts: channel_mode:4 frequency:4 / allocation_method:2 subbands:2 block_length:4
	le0 := bits.Layout(0, bits.LSBFirst, 4, 4)
	le1 := bits.Layout(1, bits.LSBFirst, 2, 2, 4)

	require.Equal(t, []bits.Field{fieldFrequency, fieldChannelMode}, be0)
	require.Equal(t, []bits.Field{fieldChannelMode, fieldFrequency}, le0)
	require.Equal(t, []bits.Field{fieldBlockLength, fieldSubbands, fieldAllocation}, be1)
	require.Equal(t, []bits.Field{fieldAllocation, fieldSubbands, fieldBlockLength}, le1)
}

func TestFlagAccessors(t *testing.T) {
	t.Parallel()

	caps := Capabilities{
		Frequency:   SamplingFreq44100 | SamplingFreq48000,
		ChannelMode: ChannelModeMono | ChannelModeJointStereo,
		BlockLength: BlockLength16,
		Subbands:    Subbands4 | Subbands8,
	}
	require.Equal(t, a2dp.SBC, caps.Type())
	require.Equal(t, []uint{44100, 48000}, caps.SampleRates())
	require.Equal(t, []a2dp.ChannelMode{a2dp.ChannelMono, a2dp.ChannelJointStereo}, caps.ChannelModes())
	require.Equal(t, []int{16}, caps.BlockLengths())
	require.Equal(t, []int{4, 8}, caps.SubbandCounts())
	require.Contains(t, caps.String(), "bitpool=0-0")

	var _ a2dp.AudioCapabilities = caps
}

func TestRecommendedBitpool(t *testing.T) {
	t.Parallel()

	require.Equal(t, uint8(53), RecommendedBitpool(QualityHigh, ChannelModeJointStereo, SamplingFreq44100))
	require.Equal(t, uint8(51), RecommendedBitpool(QualityHigh, ChannelModeStereo, SamplingFreq48000))
	require.Equal(t, uint8(18), RecommendedBitpool(QualityMiddle, ChannelModeMono, SamplingFreq48000))
	require.Equal(t, uint8(15), RecommendedBitpool(QualityLow, ChannelModeDualChannel, SamplingFreq44100))
	require.Equal(t, uint8(53), RecommendedBitpool(Quality(9), ChannelModeJointStereo, SamplingFreq32000))
}
