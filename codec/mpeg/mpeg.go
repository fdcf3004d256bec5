// Package mpeg implements the MPEG-1,2 Audio (layers 1, 2 and 3) codec information element.
package mpeg

import (
	"fmt"

	"github.com/ugparu/a2dp"
	"github.com/ugparu/a2dp/utils"
	"github.com/ugparu/a2dp/utils/bits"
)

// Size is the length of the MPEG-1,2 codec information element.
const Size = 4

// Channel mode flags.
const (
	ChannelModeMono        = 1 << 3
	ChannelModeDualChannel = 1 << 2
	ChannelModeStereo      = 1 << 1
	ChannelModeJointStereo = 1
)

// Layer flags.
const (
	LayerMP1 = 1 << 2
	LayerMP2 = 1 << 1
	LayerMP3 = 1
)

// Sampling frequency flags.
const (
	SamplingFreq16000 = 1 << 5
	SamplingFreq22050 = 1 << 4
	SamplingFreq24000 = 1 << 3
	SamplingFreq32000 = 1 << 2
	SamplingFreq44100 = 1 << 1
	SamplingFreq48000 = 1
)

// BitrateIndex returns the flag of bitrate index i (0-14). Index 0 is the free format.
func BitrateIndex(i uint) uint16 {
	return 1 << i
}

// BitrateFree announces free format bitstreams.
const BitrateFree = 1

// SampleRates maps frequency flags to Hz.
var SampleRates = a2dp.FlagTable[uint]{
	{Flag: SamplingFreq16000, Value: 16000},
	{Flag: SamplingFreq22050, Value: 22050},
	{Flag: SamplingFreq24000, Value: 24000},
	{Flag: SamplingFreq32000, Value: 32000},
	{Flag: SamplingFreq44100, Value: 44100},
	{Flag: SamplingFreq48000, Value: 48000},
}

// ChannelModes maps channel mode flags to channel modes.
var ChannelModes = a2dp.FlagTable[a2dp.ChannelMode]{
	{Flag: ChannelModeMono, Value: a2dp.ChannelMono},
	{Flag: ChannelModeDualChannel, Value: a2dp.ChannelDual},
	{Flag: ChannelModeStereo, Value: a2dp.ChannelStereo},
	{Flag: ChannelModeJointStereo, Value: a2dp.ChannelJointStereo},
}

func bitrateTable(kbps ...uint) a2dp.FlagTable[uint] {
	table := make(a2dp.FlagTable[uint], 0, len(kbps))
	for i, rate := range kbps {
		table = append(table, a2dp.FlagEntry[uint]{Flag: uint32(BitrateIndex(uint(i + 1))), Value: rate * 1000}) //nolint:gosec,mnd
	}
	return table
}

// Bitrates per layer for bitrate indexes 1-14, in bits per second.
var (
	MP1Bitrates = bitrateTable(32, 64, 96, 128, 160, 192, 224, 256, 288, 320, 352, 384, 416, 448)
	MP2Bitrates = bitrateTable(32, 48, 56, 64, 80, 96, 112, 128, 160, 192, 224, 256, 320, 384)
	MP3Bitrates = bitrateTable(32, 40, 48, 56, 64, 80, 96, 112, 128, 160, 192, 224, 256, 320)
)

// [layer:3|crc:1|channel_mode:4] [rfa:1|mpf:1|frequency:6] [vbr:1|bitrate:7] [bitrate:8]
var (
	fieldLayer       = bits.Field{Offset: 0, Width: 3}
	fieldCRC         = bits.Bit(3)
	fieldChannelMode = bits.Field{Offset: 4, Width: 4}
	fieldRFA         = bits.Bit(8)
	fieldMPF         = bits.Bit(9)
	fieldFrequency   = bits.Field{Offset: 10, Width: 6}
	fieldVBR         = bits.Bit(16)
	fieldBitrate     = bits.Field{Offset: 17, Width: 15}
)

// Capabilities is the MPEG-1,2 codec information element.
type Capabilities struct {
	Layer       uint8
	CRC         bool
	ChannelMode uint8
	RFA         uint8 // reserved
	MPF         bool  // media payload format 2 (RFC 3119) support
	Frequency   uint8
	VBR         bool
	Bitrate     uint16 // bitmask of BitrateIndex flags, 15 bits
}

// Bitrate returns the bitrate index flags of an encoded element. b must hold at least Size bytes.
func Bitrate(b []byte) uint16 {
	return uint16(fieldBitrate.Get(b))
}

// SetBitrate stores the bitrate index flags of an encoded element, keeping the VBR flag.
// b must hold at least Size bytes.
func SetBitrate(b []byte, bitrate uint16) {
	fieldBitrate.Put(b, uint32(bitrate))
}

// Parse decodes an MPEG-1,2 codec information element.
func Parse(data []byte) (caps Capabilities, err error) {
	if len(data) != Size {
		return caps, utils.MalformedInputError{Codec: "MPEG-1,2", Want: Size, Got: len(data)}
	}
	caps.Layer = uint8(fieldLayer.Get(data))
	caps.CRC = fieldCRC.GetBool(data)
	caps.ChannelMode = uint8(fieldChannelMode.Get(data))
	caps.RFA = uint8(fieldRFA.Get(data))
	caps.MPF = fieldMPF.GetBool(data)
	caps.Frequency = uint8(fieldFrequency.Get(data))
	caps.VBR = fieldVBR.GetBool(data)
	caps.Bitrate = Bitrate(data)
	return
}

// Bytes encodes the element. Values wider than their field are truncated.
func (caps Capabilities) Bytes() []byte {
	b := make([]byte, Size)
	fieldLayer.Put(b, uint32(caps.Layer))
	fieldCRC.PutBool(b, caps.CRC)
	fieldChannelMode.Put(b, uint32(caps.ChannelMode))
	fieldRFA.Put(b, uint32(caps.RFA))
	fieldMPF.PutBool(b, caps.MPF)
	fieldFrequency.Put(b, uint32(caps.Frequency))
	fieldVBR.PutBool(b, caps.VBR)
	SetBitrate(b, caps.Bitrate)
	return b
}

func (Capabilities) Type() a2dp.CodecType {
	return a2dp.MPEG12
}

func (caps Capabilities) SampleRates() []uint {
	return SampleRates.Decode(uint32(caps.Frequency))
}

func (caps Capabilities) ChannelModes() []a2dp.ChannelMode {
	return ChannelModes.Decode(uint32(caps.ChannelMode))
}

// Bitrates returns the announced bitrates in bits per second for one layer flag.
// Free format is not listed.
func (caps Capabilities) Bitrates(layer uint8) []uint {
	switch layer {
	case LayerMP1:
		return MP1Bitrates.Decode(uint32(caps.Bitrate))
	case LayerMP2:
		return MP2Bitrates.Decode(uint32(caps.Bitrate))
	case LayerMP3:
		return MP3Bitrates.Decode(uint32(caps.Bitrate))
	}
	return nil
}

func (caps Capabilities) String() string {
	return fmt.Sprintf("MPEG12_CAPABILITIES layer=%#x crc=%t freq=%v mode=%v mpf=%t vbr=%t bitrate=%#04x",
		caps.Layer, caps.CRC, caps.SampleRates(), caps.ChannelModes(), caps.MPF, caps.VBR, caps.Bitrate)
}
