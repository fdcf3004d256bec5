package sbc

import (
	"fmt"

	"github.com/ugparu/a2dp"
	"github.com/ugparu/a2dp/utils/bits"
)

// SyncWord starts every SBC frame.
const SyncWord = 0x9c

// FrameHeaderSize is the length of the SBC frame header including the CRC byte.
const FrameHeaderSize = 4

// [syncword:8] [sampling_frequency:2|blocks:2|channel_mode:2|allocation_method:1|subbands:1]
// [bitpool:8] [crc_check:8]
var (
	frameSync        = bits.Byte(0)
	frameFrequency   = bits.Field{Offset: 8, Width: 2}
	frameBlocks      = bits.Field{Offset: 10, Width: 2}
	frameChannelMode = bits.Field{Offset: 12, Width: 2}
	frameAllocation  = bits.Bit(14)
	frameSubbands    = bits.Bit(15)
	frameBitpool     = bits.Byte(2)
	frameCRC         = bits.Byte(3)
)

// Frame header channel modes.
const (
	FrameMono = iota
	FrameDualChannel
	FrameStereo
	FrameJointStereo
)

var (
	frameSampleRates = [...]uint{16000, 32000, 44100, 48000}
	frameBlockCounts = [...]int{4, 8, 12, 16}
)

// FrameHeader is the header of an encoded SBC frame. Fields hold the coded indices, not the
// capability flags.
type FrameHeader struct {
	Frequency   uint8 // 0: 16000, 1: 32000, 2: 44100, 3: 48000
	Blocks      uint8 // 0: 4, 1: 8, 2: 12, 3: 16
	ChannelMode uint8
	SNR         bool // allocation method; loudness if false
	Subbands8   bool
	Bitpool     uint8
	CRC         uint8
}

// ParseFrameHeader decodes the header at the start of an SBC frame.
func ParseFrameHeader(b []byte) (h FrameHeader, err error) {
	if len(b) < FrameHeaderSize {
		err = fmt.Errorf("sbcparser: frame header needs %d bytes, got %d", FrameHeaderSize, len(b))
		return
	}
	if frameSync.Get(b) != SyncWord {
		err = fmt.Errorf("sbcparser: invalid syncword %#02x", b[0])
		return
	}
	h.Frequency = uint8(frameFrequency.Get(b))
	h.Blocks = uint8(frameBlocks.Get(b))
	h.ChannelMode = uint8(frameChannelMode.Get(b))
	h.SNR = frameAllocation.GetBool(b)
	h.Subbands8 = frameSubbands.GetBool(b)
	h.Bitpool = uint8(frameBitpool.Get(b))
	h.CRC = uint8(frameCRC.Get(b))
	return
}

// Bytes encodes the frame header.
func (h FrameHeader) Bytes() []byte {
	b := make([]byte, FrameHeaderSize)
	frameSync.Put(b, SyncWord)
	frameFrequency.Put(b, uint32(h.Frequency))
	frameBlocks.Put(b, uint32(h.Blocks))
	frameChannelMode.Put(b, uint32(h.ChannelMode))
	frameAllocation.PutBool(b, h.SNR)
	frameSubbands.PutBool(b, h.Subbands8)
	frameBitpool.Put(b, uint32(h.Bitpool))
	frameCRC.Put(b, uint32(h.CRC))
	return b
}

func (h FrameHeader) SampleRate() uint {
	return frameSampleRates[h.Frequency&0x3]
}

func (h FrameHeader) BlockCount() int {
	return frameBlockCounts[h.Blocks&0x3]
}

func (h FrameHeader) SubbandCount() int {
	if h.Subbands8 {
		return 8 //nolint:mnd
	}
	return 4 //nolint:mnd
}

func (h FrameHeader) Channels() int {
	if h.ChannelMode == FrameMono {
		return 1
	}
	return 2 //nolint:mnd
}

// Mode returns the channel mode of the frame.
func (h FrameHeader) Mode() a2dp.ChannelMode {
	switch h.ChannelMode {
	case FrameMono:
		return a2dp.ChannelMono
	case FrameDualChannel:
		return a2dp.ChannelDual
	case FrameStereo:
		return a2dp.ChannelStereo
	}
	return a2dp.ChannelJointStereo
}

// Samples returns the number of samples per channel the frame carries.
func (h FrameHeader) Samples() int {
	return h.BlockCount() * h.SubbandCount()
}

// FrameLength returns the length of the whole encoded frame, header included.
//
// nolint: mnd
func (h FrameHeader) FrameLength() int {
	subbands, blocks, channels := h.SubbandCount(), h.BlockCount(), h.Channels()
	bitpool := int(h.Bitpool)
	n := FrameHeaderSize + 4*subbands*channels/8
	switch h.ChannelMode {
	case FrameMono, FrameDualChannel:
		n += (blocks*channels*bitpool + 7) / 8
	case FrameJointStereo:
		n += (subbands + blocks*bitpool + 7) / 8
	default:
		n += (blocks*bitpool + 7) / 8
	}
	return n
}

// FrameHeaderFor returns the frame header an encoder produces for a configuration with
// exactly one flag set in each field. ok is false otherwise.
func (caps Capabilities) FrameHeaderFor(bitpool uint8) (h FrameHeader, ok bool) {
	index := func(flag uint8) (uint8, bool) {
		switch flag {
		case 1 << 3:
			return 0, true
		case 1 << 2:
			return 1, true
		case 1 << 1:
			return 2, true
		case 1:
			return 3, true
		}
		return 0, false
	}
	var okFreq, okBlocks, okMode bool
	h.Frequency, okFreq = index(caps.Frequency)
	h.Blocks, okBlocks = index(caps.BlockLength)
	h.ChannelMode, okMode = index(caps.ChannelMode)
	switch {
	case !okFreq, !okBlocks, !okMode:
		return FrameHeader{}, false
	case caps.Subbands == Subbands8:
		h.Subbands8 = true
	case caps.Subbands != Subbands4:
		return FrameHeader{}, false
	}
	switch caps.AllocationMethod {
	case AllocationSNR:
		h.SNR = true
	case AllocationLoudness:
	default:
		return FrameHeader{}, false
	}
	h.Bitpool = bitpool
	return h, true
}

// Config returns the stream configuration producing frames with this header, with the
// header's bitpool as the maximum.
func (h FrameHeader) Config() Capabilities {
	caps := Capabilities{
		Frequency:        1 << (3 - h.Frequency&0x3),
		ChannelMode:      1 << (3 - h.ChannelMode&0x3),
		BlockLength:      1 << (3 - h.Blocks&0x3),
		Subbands:         Subbands4,
		AllocationMethod: AllocationLoudness,
		MinBitpool:       MinBitpool,
		MaxBitpool:       h.Bitpool,
	}
	if h.Subbands8 {
		caps.Subbands = Subbands8
	}
	if h.SNR {
		caps.AllocationMethod = AllocationSNR
	}
	return caps
}
