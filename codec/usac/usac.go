// Package usac implements the MPEG-D USAC codec information element.
package usac

import (
	"fmt"

	"github.com/ugparu/a2dp"
	"github.com/ugparu/a2dp/utils"
	"github.com/ugparu/a2dp/utils/bits"
)

// Size is the length of the MPEG-D USAC codec information element.
const Size = 7

// ObjectTypeMPEGDUSACWithDRC is the only object type flag defined so far.
const ObjectTypeMPEGDUSACWithDRC = 0x02

// Sampling frequency flags.
const (
	SamplingFreq7350  = 0x02000000
	SamplingFreq8000  = 0x01000000
	SamplingFreq8820  = 0x00800000
	SamplingFreq9600  = 0x00400000
	SamplingFreq11025 = 0x00200000
	SamplingFreq11760 = 0x00100000
	SamplingFreq12000 = 0x00080000
	SamplingFreq12800 = 0x00040000
	SamplingFreq14700 = 0x00020000
	SamplingFreq16000 = 0x00010000
	SamplingFreq17640 = 0x00008000
	SamplingFreq19200 = 0x00004000
	SamplingFreq22050 = 0x00002000
	SamplingFreq24000 = 0x00001000
	SamplingFreq29400 = 0x00000800
	SamplingFreq32000 = 0x00000400
	SamplingFreq35280 = 0x00000200
	SamplingFreq38400 = 0x00000100
	SamplingFreq44100 = 0x00000080
	SamplingFreq48000 = 0x00000040
	SamplingFreq58800 = 0x00000020
	SamplingFreq64000 = 0x00000010
	SamplingFreq70560 = 0x00000008
	SamplingFreq76800 = 0x00000004
	SamplingFreq88200 = 0x00000002
	SamplingFreq96000 = 0x00000001
)

// Channels flags.
const (
	Channels1 = 0x08
	Channels2 = 0x04
)

// SampleRates maps frequency flags to Hz.
var SampleRates = a2dp.FlagTable[uint]{
	{Flag: SamplingFreq7350, Value: 7350},
	{Flag: SamplingFreq8000, Value: 8000},
	{Flag: SamplingFreq8820, Value: 8820},
	{Flag: SamplingFreq9600, Value: 9600},
	{Flag: SamplingFreq11025, Value: 11025},
	{Flag: SamplingFreq11760, Value: 11760},
	{Flag: SamplingFreq12000, Value: 12000},
	{Flag: SamplingFreq12800, Value: 12800},
	{Flag: SamplingFreq14700, Value: 14700},
	{Flag: SamplingFreq16000, Value: 16000},
	{Flag: SamplingFreq17640, Value: 17640},
	{Flag: SamplingFreq19200, Value: 19200},
	{Flag: SamplingFreq22050, Value: 22050},
	{Flag: SamplingFreq24000, Value: 24000},
	{Flag: SamplingFreq29400, Value: 29400},
	{Flag: SamplingFreq32000, Value: 32000},
	{Flag: SamplingFreq35280, Value: 35280},
	{Flag: SamplingFreq38400, Value: 38400},
	{Flag: SamplingFreq44100, Value: 44100},
	{Flag: SamplingFreq48000, Value: 48000},
	{Flag: SamplingFreq58800, Value: 58800},
	{Flag: SamplingFreq64000, Value: 64000},
	{Flag: SamplingFreq70560, Value: 70560},
	{Flag: SamplingFreq76800, Value: 76800},
	{Flag: SamplingFreq88200, Value: 88200},
	{Flag: SamplingFreq96000, Value: 96000},
}

// ChannelModes maps channels flags to channel modes.
var ChannelModes = a2dp.FlagTable[a2dp.ChannelMode]{
	{Flag: Channels1, Value: a2dp.ChannelMono},
	{Flag: Channels2, Value: a2dp.ChannelStereo},
}

// [object_type:2|frequency:6] [frequency:8] [frequency:8] [frequency:4|channels:4]
// [vbr:1|bitrate:7] [bitrate:8] [bitrate:8]
var (
	fieldObjectType = bits.Field{Offset: 0, Width: 2}
	fieldFrequency  = bits.Field{Offset: 2, Width: 26}
	fieldChannels   = bits.Field{Offset: 28, Width: 4}
	fieldVBR        = bits.Bit(32)
	fieldBitrate    = bits.Field{Offset: 33, Width: 23}
)

// Capabilities is the MPEG-D USAC codec information element.
type Capabilities struct {
	ObjectType uint8
	Frequency  uint32 // 26 bits
	Channels   uint8
	VBR        bool
	Bitrate    uint32 // 23 bits
}

// Frequency returns the sampling frequency flags of an encoded element.
// b must hold at least Size bytes.
func Frequency(b []byte) uint32 {
	return fieldFrequency.Get(b)
}

// SetFrequency stores the sampling frequency flags of an encoded element, keeping the
// object type and channels bits. b must hold at least Size bytes.
func SetFrequency(b []byte, frequency uint32) {
	fieldFrequency.Put(b, frequency)
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

// Parse decodes an MPEG-D USAC codec information element.
func Parse(data []byte) (caps Capabilities, err error) {
	if len(data) != Size {
		return caps, utils.MalformedInputError{Codec: "MPEG-D USAC", Want: Size, Got: len(data)}
	}
	caps.ObjectType = uint8(fieldObjectType.Get(data))
	caps.Frequency = Frequency(data)
	caps.Channels = uint8(fieldChannels.Get(data))
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
	fieldVBR.PutBool(b, caps.VBR)
	SetBitrate(b, caps.Bitrate)
	return b
}

func (Capabilities) Type() a2dp.CodecType {
	return a2dp.MPEGD
}

func (caps Capabilities) SampleRates() []uint {
	return SampleRates.Decode(caps.Frequency)
}

func (caps Capabilities) ChannelModes() []a2dp.ChannelMode {
	return ChannelModes.Decode(uint32(caps.Channels))
}

func (caps Capabilities) String() string {
	return fmt.Sprintf("USAC_CAPABILITIES object=%#x freq=%v channels=%v vbr=%t bitrate=%d",
		caps.ObjectType, caps.SampleRates(), caps.ChannelModes(), caps.VBR, caps.Bitrate)
}
