// Package ldac implements the LDAC codec information element.
package ldac

import (
	"fmt"

	"github.com/ugparu/a2dp"
	"github.com/ugparu/a2dp/codec/vendor"
	"github.com/ugparu/a2dp/utils"
	"github.com/ugparu/a2dp/utils/bits"
)

// Size is the length of the LDAC codec information element.
const Size = vendor.Size + 2

// Sampling frequency flags.
const (
	SamplingFreq44100  = 0x20
	SamplingFreq48000  = 0x10
	SamplingFreq88200  = 0x08
	SamplingFreq96000  = 0x04
	SamplingFreq176400 = 0x02
	SamplingFreq192000 = 0x01
)

// Channel mode flags.
const (
	ChannelModeMono   = 0x04
	ChannelModeDual   = 0x02
	ChannelModeStereo = 0x01
)

// SampleRates maps frequency flags to Hz.
var SampleRates = a2dp.FlagTable[uint]{
	{Flag: SamplingFreq44100, Value: 44100},
	{Flag: SamplingFreq48000, Value: 48000},
	{Flag: SamplingFreq88200, Value: 88200},
	{Flag: SamplingFreq96000, Value: 96000},
	{Flag: SamplingFreq176400, Value: 176400},
	{Flag: SamplingFreq192000, Value: 192000},
}

// ChannelModes maps channel mode flags to channel modes.
var ChannelModes = a2dp.FlagTable[a2dp.ChannelMode]{
	{Flag: ChannelModeMono, Value: a2dp.ChannelMono},
	{Flag: ChannelModeDual, Value: a2dp.ChannelDual},
	{Flag: ChannelModeStereo, Value: a2dp.ChannelStereo},
}

const infoBits = vendor.Size * 8

// [vendor codec id:48] [rfa1:2|frequency:6] [rfa2:5|channel_mode:3]
var (
	fieldRFA1        = bits.Field{Offset: infoBits, Width: 2}
	fieldFrequency   = bits.Field{Offset: infoBits + 2, Width: 6}
	fieldRFA2        = bits.Field{Offset: infoBits + 8, Width: 5}
	fieldChannelMode = bits.Field{Offset: infoBits + 13, Width: 3}
)

// Capabilities is the LDAC codec information element.
type Capabilities struct {
	Info        vendor.ID
	RFA1        uint8
	Frequency   uint8
	RFA2        uint8
	ChannelMode uint8
}

// New returns LDAC capabilities with the LDAC vendor codec identifier.
func New(frequency, channelMode uint8) Capabilities {
	return Capabilities{Info: vendor.LDAC, Frequency: frequency, ChannelMode: channelMode}
}

// Parse decodes an LDAC codec information element.
func Parse(data []byte) (caps Capabilities, err error) {
	if len(data) != Size {
		return caps, utils.MalformedInputError{Codec: "LDAC", Want: Size, Got: len(data)}
	}
	caps.Info, _ = vendor.Decode(data)
	caps.RFA1 = uint8(fieldRFA1.Get(data))
	caps.Frequency = uint8(fieldFrequency.Get(data))
	caps.RFA2 = uint8(fieldRFA2.Get(data))
	caps.ChannelMode = uint8(fieldChannelMode.Get(data))
	return
}

// Bytes encodes the element. Values wider than their field are truncated.
func (caps Capabilities) Bytes() []byte {
	b := make([]byte, Size)
	copy(b, caps.Info.Bytes())
	fieldRFA1.Put(b, uint32(caps.RFA1))
	fieldFrequency.Put(b, uint32(caps.Frequency))
	fieldRFA2.Put(b, uint32(caps.RFA2))
	fieldChannelMode.Put(b, uint32(caps.ChannelMode))
	return b
}

// Frequency reads the frequency flags from a raw element.
func Frequency(b []byte) uint8 {
	return uint8(fieldFrequency.Get(b))
}

// SetFrequency stores the frequency flags in a raw element.
func SetFrequency(b []byte, v uint8) {
	fieldFrequency.Put(b, uint32(v))
}

// ChannelMode reads the channel mode flags from a raw element.
func ChannelMode(b []byte) uint8 {
	return uint8(fieldChannelMode.Get(b))
}

// SetChannelMode stores the channel mode flags in a raw element.
func SetChannelMode(b []byte, v uint8) {
	fieldChannelMode.Put(b, uint32(v))
}

func (Capabilities) Type() a2dp.CodecType {
	return a2dp.LDAC
}

func (caps Capabilities) SampleRates() []uint {
	return SampleRates.Decode(uint32(caps.Frequency))
}

func (caps Capabilities) ChannelModes() []a2dp.ChannelMode {
	return ChannelModes.Decode(uint32(caps.ChannelMode))
}

func (caps Capabilities) String() string {
	return fmt.Sprintf("LDAC_CAPABILITIES codec=%v freq=%v mode=%v",
		caps.Info, caps.SampleRates(), caps.ChannelModes())
}
