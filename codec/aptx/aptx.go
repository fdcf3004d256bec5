// Package aptx implements the aptX, aptX-TWS and aptX-HD codec information elements.
package aptx

import (
	"fmt"

	"github.com/ugparu/a2dp"
	"github.com/ugparu/a2dp/codec/vendor"
	"github.com/ugparu/a2dp/utils"
	"github.com/ugparu/a2dp/utils/bits"
)

// Size is the length of the aptX and aptX-TWS codec information element.
const Size = vendor.Size + 1

// Channel mode flags.
const (
	ChannelModeMono   = 0x01
	ChannelModeStereo = 0x02
	ChannelModeTWS    = 0x08
)

// Sampling frequency flags.
const (
	SamplingFreq16000 = 0x08
	SamplingFreq32000 = 0x04
	SamplingFreq44100 = 0x02
	SamplingFreq48000 = 0x01
)

// SampleRates maps frequency flags to Hz.
var SampleRates = a2dp.FlagTable[uint]{
	{Flag: SamplingFreq16000, Value: 16000},
	{Flag: SamplingFreq32000, Value: 32000},
	{Flag: SamplingFreq44100, Value: 44100},
	{Flag: SamplingFreq48000, Value: 48000},
}

// ChannelModes maps channel mode flags to channel modes.
var ChannelModes = a2dp.FlagTable[a2dp.ChannelMode]{
	{Flag: ChannelModeTWS, Value: a2dp.ChannelTWS},
	{Flag: ChannelModeStereo, Value: a2dp.ChannelStereo},
	{Flag: ChannelModeMono, Value: a2dp.ChannelMono},
}

const infoBits = vendor.Size * 8

// [vendor codec id:48] [frequency:4|channel_mode:4]
var (
	fieldFrequency   = bits.Field{Offset: infoBits, Width: 4}
	fieldChannelMode = bits.Field{Offset: infoBits + 4, Width: 4}
)

// Capabilities is the aptX codec information element. The same layout is used by aptX-TWS
// and as the head of the aptX-HD and aptX Low Latency elements.
type Capabilities struct {
	Info        vendor.ID
	Frequency   uint8
	ChannelMode uint8
}

// New returns aptX capabilities with the aptX vendor codec identifier.
func New(frequency, channelMode uint8) Capabilities {
	return Capabilities{Info: vendor.APTX, Frequency: frequency, ChannelMode: channelMode}
}

// NewTWS returns aptX capabilities with the aptX-TWS vendor codec identifier.
func NewTWS(frequency, channelMode uint8) Capabilities {
	return Capabilities{Info: vendor.APTXTWS, Frequency: frequency, ChannelMode: channelMode}
}

// Parse decodes an aptX or aptX-TWS codec information element.
// The vendor codec identifier is kept as found.
func Parse(data []byte) (caps Capabilities, err error) {
	if len(data) != Size {
		return caps, utils.MalformedInputError{Codec: "aptX", Want: Size, Got: len(data)}
	}
	return decode(data), nil
}

func decode(data []byte) (caps Capabilities) {
	caps.Info, _ = vendor.Decode(data)
	caps.Frequency = uint8(fieldFrequency.Get(data))
	caps.ChannelMode = uint8(fieldChannelMode.Get(data))
	return
}

// Bytes encodes the element. Values wider than their field are truncated.
func (caps Capabilities) Bytes() []byte {
	b := make([]byte, Size)
	caps.put(b)
	return b
}

func (caps Capabilities) put(b []byte) {
	id := vendor.Encode(caps.Info.VendorID, caps.Info.CodecID)
	copy(b, id[:])
	fieldFrequency.Put(b, uint32(caps.Frequency))
	fieldChannelMode.Put(b, uint32(caps.ChannelMode))
}

// Type returns aptX-TWS for the TWS identifier and aptX otherwise.
func (caps Capabilities) Type() a2dp.CodecType {
	if caps.Info == vendor.APTXTWS {
		return a2dp.APTXTWS
	}
	return a2dp.APTX
}

func (caps Capabilities) SampleRates() []uint {
	return SampleRates.Decode(uint32(caps.Frequency))
}

func (caps Capabilities) ChannelModes() []a2dp.ChannelMode {
	return ChannelModes.Decode(uint32(caps.ChannelMode))
}

func (caps Capabilities) String() string {
	return fmt.Sprintf("APTX_CAPABILITIES codec=%v freq=%v mode=%v",
		caps.Info, caps.SampleRates(), caps.ChannelModes())
}
