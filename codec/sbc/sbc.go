// Package sbc implements the SBC codec information element.
package sbc

import (
	"fmt"

	"github.com/ugparu/a2dp"
	"github.com/ugparu/a2dp/utils"
	"github.com/ugparu/a2dp/utils/bits"
)

// Size is the length of the SBC codec information element.
const Size = 4

// Sampling frequency flags.
const (
	SamplingFreq16000 = 1 << 3
	SamplingFreq32000 = 1 << 2
	SamplingFreq44100 = 1 << 1
	SamplingFreq48000 = 1
)

// Channel mode flags.
const (
	ChannelModeMono        = 1 << 3
	ChannelModeDualChannel = 1 << 2
	ChannelModeStereo      = 1 << 1
	ChannelModeJointStereo = 1
)

// Block length flags.
const (
	BlockLength4  = 1 << 3
	BlockLength8  = 1 << 2
	BlockLength12 = 1 << 1
	BlockLength16 = 1
)

// Subband flags.
const (
	Subbands4 = 1 << 1
	Subbands8 = 1
)

// Allocation method flags.
const (
	AllocationSNR      = 1 << 1
	AllocationLoudness = 1
)

// Bitpool limits.
const (
	MinBitpool = 2
	MaxBitpool = 250
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
	{Flag: ChannelModeMono, Value: a2dp.ChannelMono},
	{Flag: ChannelModeDualChannel, Value: a2dp.ChannelDual},
	{Flag: ChannelModeStereo, Value: a2dp.ChannelStereo},
	{Flag: ChannelModeJointStereo, Value: a2dp.ChannelJointStereo},
}

// BlockLengths maps block length flags to the number of blocks.
var BlockLengths = a2dp.FlagTable[int]{
	{Flag: BlockLength4, Value: 4},
	{Flag: BlockLength8, Value: 8},
	{Flag: BlockLength12, Value: 12},
	{Flag: BlockLength16, Value: 16},
}

// SubbandCounts maps subband flags to the number of subbands.
var SubbandCounts = a2dp.FlagTable[int]{
	{Flag: Subbands4, Value: 4},
	{Flag: Subbands8, Value: 8},
}

// [frequency:4|channel_mode:4] [block_length:4|subbands:2|allocation_method:2] [min_bitpool] [max_bitpool]
var (
	fieldFrequency   = bits.Field{Offset: 0, Width: 4}
	fieldChannelMode = bits.Field{Offset: 4, Width: 4}
	fieldBlockLength = bits.Field{Offset: 8, Width: 4}
	fieldSubbands    = bits.Field{Offset: 12, Width: 2}
	fieldAllocation  = bits.Field{Offset: 14, Width: 2}
	fieldMinBitpool  = bits.Byte(2)
	fieldMaxBitpool  = bits.Byte(3)
)

// Capabilities is the SBC codec information element. Flag fields hold bitmasks of the
// flag constants above; a configuration sets exactly one flag per field.
type Capabilities struct {
	Frequency        uint8
	ChannelMode      uint8
	BlockLength      uint8
	Subbands         uint8
	AllocationMethod uint8
	MinBitpool       uint8
	MaxBitpool       uint8
}

// Parse decodes an SBC codec information element.
func Parse(data []byte) (caps Capabilities, err error) {
	if len(data) != Size {
		return caps, utils.MalformedInputError{Codec: "SBC", Want: Size, Got: len(data)}
	}
	caps.Frequency = uint8(fieldFrequency.Get(data))
	caps.ChannelMode = uint8(fieldChannelMode.Get(data))
	caps.BlockLength = uint8(fieldBlockLength.Get(data))
	caps.Subbands = uint8(fieldSubbands.Get(data))
	caps.AllocationMethod = uint8(fieldAllocation.Get(data))
	caps.MinBitpool = uint8(fieldMinBitpool.Get(data))
	caps.MaxBitpool = uint8(fieldMaxBitpool.Get(data))
	return
}

// Bytes encodes the element. Values wider than their field are truncated.
func (caps Capabilities) Bytes() []byte {
	b := make([]byte, Size)
	fieldFrequency.Put(b, uint32(caps.Frequency))
	fieldChannelMode.Put(b, uint32(caps.ChannelMode))
	fieldBlockLength.Put(b, uint32(caps.BlockLength))
	fieldSubbands.Put(b, uint32(caps.Subbands))
	fieldAllocation.Put(b, uint32(caps.AllocationMethod))
	fieldMinBitpool.Put(b, uint32(caps.MinBitpool))
	fieldMaxBitpool.Put(b, uint32(caps.MaxBitpool))
	return b
}

func (Capabilities) Type() a2dp.CodecType {
	return a2dp.SBC
}

func (caps Capabilities) SampleRates() []uint {
	return SampleRates.Decode(uint32(caps.Frequency))
}

func (caps Capabilities) ChannelModes() []a2dp.ChannelMode {
	return ChannelModes.Decode(uint32(caps.ChannelMode))
}

func (caps Capabilities) BlockLengths() []int {
	return BlockLengths.Decode(uint32(caps.BlockLength))
}

func (caps Capabilities) SubbandCounts() []int {
	return SubbandCounts.Decode(uint32(caps.Subbands))
}

func (caps Capabilities) String() string {
	return fmt.Sprintf("SBC_CAPABILITIES freq=%v mode=%v blocks=%v subbands=%v alloc=%#x bitpool=%d-%d",
		caps.SampleRates(), caps.ChannelModes(), caps.BlockLengths(), caps.SubbandCounts(),
		caps.AllocationMethod, caps.MinBitpool, caps.MaxBitpool)
}
