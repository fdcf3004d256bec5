// Package aac implements the MPEG-2,4 AAC codec information element and its mapping to the
// MPEG-4 AudioSpecificConfig used by AAC encoders and decoders.
package aac

import (
	"fmt"

	"github.com/ugparu/a2dp"
	"github.com/ugparu/a2dp/utils"
	"github.com/ugparu/a2dp/utils/bits"
)

// Size is the length of the MPEG-2,4 AAC codec information element.
const Size = 6

// Object type flags.
const (
	ObjectTypeMPEG2AACLC  = 0x80
	ObjectTypeMPEG4AACLC  = 0x40
	ObjectTypeMPEG4AACLTP = 0x20
	ObjectTypeMPEG4AACSCA = 0x10
)

// Sampling frequency flags.
const (
	SamplingFreq8000  = 0x0800
	SamplingFreq11025 = 0x0400
	SamplingFreq12000 = 0x0200
	SamplingFreq16000 = 0x0100
	SamplingFreq22050 = 0x0080
	SamplingFreq24000 = 0x0040
	SamplingFreq32000 = 0x0020
	SamplingFreq44100 = 0x0010
	SamplingFreq48000 = 0x0008
	SamplingFreq64000 = 0x0004
	SamplingFreq88200 = 0x0002
	SamplingFreq96000 = 0x0001
)

// Channels flags.
const (
	Channels1 = 0x02
	Channels2 = 0x01
)

// SampleRates maps frequency flags to Hz.
var SampleRates = a2dp.FlagTable[uint]{
	{Flag: SamplingFreq8000, Value: 8000},
	{Flag: SamplingFreq11025, Value: 11025},
	{Flag: SamplingFreq12000, Value: 12000},
	{Flag: SamplingFreq16000, Value: 16000},
	{Flag: SamplingFreq22050, Value: 22050},
	{Flag: SamplingFreq24000, Value: 24000},
	{Flag: SamplingFreq32000, Value: 32000},
	{Flag: SamplingFreq44100, Value: 44100},
	{Flag: SamplingFreq48000, Value: 48000},
	{Flag: SamplingFreq64000, Value: 64000},
	{Flag: SamplingFreq88200, Value: 88200},
	{Flag: SamplingFreq96000, Value: 96000},
}

// ChannelModes maps channels flags to channel modes.
var ChannelModes = a2dp.FlagTable[a2dp.ChannelMode]{
	{Flag: Channels1, Value: a2dp.ChannelMono},
	{Flag: Channels2, Value: a2dp.ChannelStereo},
}

// [object_type:8] [frequency:8] [frequency:4|channels:2|rfa:2] [vbr:1|bitrate:7] [bitrate:8] [bitrate:8]
var (
	fieldObjectType = bits.Byte(0)
	fieldFrequency  = bits.Field{Offset: 8, Width: 12}
	fieldChannels   = bits.Field{Offset: 20, Width: 2}
	fieldRFA        = bits.Field{Offset: 22, Width: 2}
	fieldVBR        = bits.Bit(24)
	fieldBitrate    = bits.Field{Offset: 25, Width: 23}
)

// Capabilities is the MPEG-2,4 AAC codec information element.
type Capabilities struct {
	ObjectType uint8
	Frequency  uint16 // 12 bits
	Channels   uint8
	RFA        uint8 // reserved
	VBR        bool
	Bitrate    uint32 // peak bitrate in bits per second, 23 bits; 0 means unknown
}

// Frequency returns the sampling frequency flags of an encoded element.
// b must hold at least Size bytes.
func Frequency(b []byte) uint16 {
	return uint16(fieldFrequency.Get(b))
}

// SetFrequency stores the sampling frequency flags of an encoded element, keeping the
// channels and reserved bits. b must hold at least Size bytes.
func SetFrequency(b []byte, frequency uint16) {
	fieldFrequency.Put(b, uint32(frequency))
}

// Bitrate returns the bitrate of an encoded element. b must hold at least Size bytes.
func Bitrate(b []byte) uint32 {
	return fieldBitrate.Get(b)
}

// SetBitrate stores the bitrate of an encoded element, keeping the VBR flag.
// b must hold at least Size bytes.
func SetBitrate(b []byte, bitrate uint32) {
	fieldBitrate.Put(b, bitrate)
}

// Parse decodes an MPEG-2,4 AAC codec information element.
func Parse(data []byte) (caps Capabilities, err error) {
	if len(data) != Size {
		return caps, utils.MalformedInputError{Codec: "MPEG-2,4 AAC", Want: Size, Got: len(data)}
	}
	caps.ObjectType = uint8(fieldObjectType.Get(data))
	caps.Frequency = Frequency(data)
	caps.Channels = uint8(fieldChannels.Get(data))
	caps.RFA = uint8(fieldRFA.Get(data))
	caps.VBR = fieldVBR.GetBool(data)
	caps.Bitrate = Bitrate(data)
	return
}

// Bytes encodes the element. Values wider than their field are truncated.
func (caps Capabilities) Bytes() []byte {
	b := make([]byte, Size)
	fieldObjectType.Put(b, uint32(caps.ObjectType))
	SetFrequency(b, caps.Frequency)
	fieldChannels.Put(b, uint32(caps.Channels))
	fieldRFA.Put(b, uint32(caps.RFA))
	fieldVBR.PutBool(b, caps.VBR)
	SetBitrate(b, caps.Bitrate)
	return b
}

func (Capabilities) Type() a2dp.CodecType {
	return a2dp.MPEG24
}

func (caps Capabilities) SampleRates() []uint {
	return SampleRates.Decode(uint32(caps.Frequency))
}

func (caps Capabilities) ChannelModes() []a2dp.ChannelMode {
	return ChannelModes.Decode(uint32(caps.Channels))
}

func (caps Capabilities) String() string {
	return fmt.Sprintf("AAC_CAPABILITIES object=%#02x freq=%v channels=%v vbr=%t bitrate=%d",
		caps.ObjectType, caps.SampleRates(), caps.ChannelModes(), caps.VBR, caps.Bitrate)
}
