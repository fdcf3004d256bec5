// Package atrac implements the ATRAC family codec information element.
package atrac

import (
	"fmt"

	"github.com/ugparu/a2dp"
	"github.com/ugparu/a2dp/utils"
	"github.com/ugparu/a2dp/utils/bits"
)

// Size is the length of the ATRAC codec information element.
const Size = 7

// Channel mode flags.
const (
	ChannelModeMono        = 0x04
	ChannelModeDualChannel = 0x02
	ChannelModeJointStereo = 0x01
)

// Sampling frequency flags.
const (
	SamplingFreq44100 = 0x02
	SamplingFreq48000 = 0x01
)

// SampleRates maps frequency flags to Hz.
var SampleRates = a2dp.FlagTable[uint]{
	{Flag: SamplingFreq44100, Value: 44100},
	{Flag: SamplingFreq48000, Value: 48000},
}

// ChannelModes maps channel mode flags to channel modes.
var ChannelModes = a2dp.FlagTable[a2dp.ChannelMode]{
	{Flag: ChannelModeMono, Value: a2dp.ChannelMono},
	{Flag: ChannelModeDualChannel, Value: a2dp.ChannelDual},
	{Flag: ChannelModeJointStereo, Value: a2dp.ChannelJointStereo},
}

// [version:3|channel_mode:3|rfa:2] [rfa:2|frequency:2|vbr:1|bitrate:3] [bitrate:8] [bitrate:8]
// [max_sul:8] [max_sul:8] [rfa:8]
var (
	fieldVersion     = bits.Field{Offset: 0, Width: 3}
	fieldChannelMode = bits.Field{Offset: 3, Width: 3}
	fieldRFA1        = bits.Field{Offset: 6, Width: 2}
	fieldRFA2        = bits.Field{Offset: 8, Width: 2}
	fieldFrequency   = bits.Field{Offset: 10, Width: 2}
	fieldVBR         = bits.Bit(12)
	fieldBitrate     = bits.Field{Offset: 13, Width: 19}
	fieldMaxSUL      = bits.Field{Offset: 32, Width: 16}
	fieldRFA3        = bits.Byte(6)
)

// Capabilities is the ATRAC codec information element.
type Capabilities struct {
	Version     uint8
	ChannelMode uint8
	RFA1        uint8 // reserved
	RFA2        uint8 // reserved
	Frequency   uint8
	VBR         bool
	Bitrate     uint32 // bitrate index flags, 19 bits
	MaxSUL      uint16 // maximum sound unit length
	RFA3        uint8  // reserved
}

// Bitrate returns the bitrate index flags of an encoded element.
// b must hold at least Size bytes.
func Bitrate(b []byte) uint32 {
	return fieldBitrate.Get(b)
}

// SetBitrate stores the bitrate index flags of an encoded element, keeping the frequency,
// VBR and reserved bits. b must hold at least Size bytes.
func SetBitrate(b []byte, bitrate uint32) {
	fieldBitrate.Put(b, bitrate)
}

// MaxSUL returns the maximum sound unit length of an encoded element.
// b must hold at least Size bytes.
func MaxSUL(b []byte) uint16 {
	return uint16(fieldMaxSUL.Get(b))
}

// SetMaxSUL stores the maximum sound unit length of an encoded element.
// b must hold at least Size bytes.
func SetMaxSUL(b []byte, sul uint16) {
	fieldMaxSUL.Put(b, uint32(sul))
}

// Parse decodes an ATRAC codec information element.
func Parse(data []byte) (caps Capabilities, err error) {
	if len(data) != Size {
		return caps, utils.MalformedInputError{Codec: "ATRAC", Want: Size, Got: len(data)}
	}
	caps.Version = uint8(fieldVersion.Get(data))
	caps.ChannelMode = uint8(fieldChannelMode.Get(data))
	caps.RFA1 = uint8(fieldRFA1.Get(data))
	caps.RFA2 = uint8(fieldRFA2.Get(data))
	caps.Frequency = uint8(fieldFrequency.Get(data))
	caps.VBR = fieldVBR.GetBool(data)
	caps.Bitrate = Bitrate(data)
	caps.MaxSUL = MaxSUL(data)
	caps.RFA3 = uint8(fieldRFA3.Get(data))
	return
}

// Bytes encodes the element. Values wider than their field are truncated.
func (caps Capabilities) Bytes() []byte {
	b := make([]byte, Size)
	fieldVersion.Put(b, uint32(caps.Version))
	fieldChannelMode.Put(b, uint32(caps.ChannelMode))
	fieldRFA1.Put(b, uint32(caps.RFA1))
	fieldRFA2.Put(b, uint32(caps.RFA2))
	fieldFrequency.Put(b, uint32(caps.Frequency))
	fieldVBR.PutBool(b, caps.VBR)
	SetBitrate(b, caps.Bitrate)
	SetMaxSUL(b, caps.MaxSUL)
	fieldRFA3.Put(b, uint32(caps.RFA3))
	return b
}

func (Capabilities) Type() a2dp.CodecType {
	return a2dp.ATRAC
}

func (caps Capabilities) SampleRates() []uint {
	return SampleRates.Decode(uint32(caps.Frequency))
}

func (caps Capabilities) ChannelModes() []a2dp.ChannelMode {
	return ChannelModes.Decode(uint32(caps.ChannelMode))
}

func (caps Capabilities) String() string {
	return fmt.Sprintf("ATRAC_CAPABILITIES version=%d freq=%v mode=%v vbr=%t bitrate=%#05x max_sul=%d",
		caps.Version, caps.SampleRates(), caps.ChannelModes(), caps.VBR, caps.Bitrate, caps.MaxSUL)
}
