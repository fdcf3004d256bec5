package aptxll

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/ugparu/a2dp"
	"github.com/ugparu/a2dp/codec/aptx"
	"github.com/ugparu/a2dp/codec/vendor"
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
			name:     "bidirect_without_new_caps",
			data:     []byte{0x0a, 0x00, 0x00, 0x00, 0x02, 0x00, 0x12, 0x01},
			expected: New(aptx.SamplingFreq48000, aptx.ChannelModeStereo, true),
		},
		{
			name: "default_new_caps",
			data: []byte{
				0x0a, 0x00, 0x00, 0x00, 0x02, 0x00, 0x22, 0x02,
				0x00, 0xb4, 0x00, 0x68, 0x01, 0x32, 0x01, 0xb4, 0x00,
			},
			expected: New(aptx.SamplingFreq44100, aptx.ChannelModeStereo, false).WithNewCaps(DefaultNewCaps),
		},
		{
			name: "reserved_bits_preserved",
			data: []byte{0x0a, 0x00, 0x00, 0x00, 0x02, 0x00, 0x00, 0xfc},
			expected: Capabilities{
				Capabilities: aptx.Capabilities{Info: vendor.APTXLL},
				RFA:          0x3f,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			caps, err := Parse(tt.data)
			require.NoError(t, err)
			require.Equal(t, tt.expected, caps)
			require.Equal(t, len(tt.data), caps.Len())
			require.Equal(t, tt.data, caps.Bytes())
			require.Equal(t, a2dp.APTXLL, caps.Type())
		})
	}
}

func TestParseMalformed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data []byte
		want int
	}{
		{name: "too_short", data: make([]byte, Size-1), want: Size},
		{name: "trailing_without_flag", data: make([]byte, SizeWithNewCaps), want: Size},
		{
			name: "flag_without_new_caps",
			data: []byte{0x0a, 0x00, 0x00, 0x00, 0x02, 0x00, 0x22, 0x02},
			want: SizeWithNewCaps,
		},
		{
			name: "truncated_new_caps",
			data: []byte{0x0a, 0x00, 0x00, 0x00, 0x02, 0x00, 0x22, 0x02, 0x00, 0xb4},
			want: SizeWithNewCaps,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			caps, err := Parse(tt.data)
			var malformed utils.MalformedInputError
			require.ErrorAs(t, err, &malformed)
			require.Equal(t, tt.want, malformed.Want)
			require.Equal(t, len(tt.data), malformed.Got)
			require.Equal(t, Capabilities{}, caps)
		})
	}
}

func TestNewCapsLevels(t *testing.T) {
	t.Parallel()

	caps := New(aptx.SamplingFreq48000, aptx.ChannelModeStereo, true).WithNewCaps(NewCaps{
		TargetLevel:      0x1234,
		InitialLevel:     0xabcd,
		GoodWorkingLevel: 0x0102,
	})
	b := caps.Bytes()
	require.Len(t, b, SizeWithNewCaps)
	require.Equal(t, byte(0x03), b[7])
	require.Equal(t, []byte{0x00, 0x34, 0x12, 0xcd, 0xab, 0x00, 0x00, 0x02, 0x01}, b[Size:])
	require.Contains(t, caps.String(), "target=4660")
}

func TestLayoutMatchesBothDeclarations(t *testing.T) {
	t.Parallel()

	// reserved:6 has_new_caps:1 bidirect_link:1 / bidirect_link:1 has_new_caps:1 reserved:6
	require.Equal(t, []bits.Field{fieldRFA, fieldHasNewCaps, fieldBidirectLink}, bits.Layout(aptx.Size, bits.MSBFirst, 6, 1, 1))
	require.Equal(t, []bits.Field{fieldBidirectLink, fieldHasNewCaps, fieldRFA}, bits.Layout(aptx.Size, bits.LSBFirst, 1, 1, 6))
}
