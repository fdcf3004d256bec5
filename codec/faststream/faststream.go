// Package faststream implements the FastStream codec information element.
package faststream

import (
	"fmt"

	"github.com/ugparu/a2dp"
	"github.com/ugparu/a2dp/codec/vendor"
	"github.com/ugparu/a2dp/utils"
	"github.com/ugparu/a2dp/utils/bits"
)

// Size is the length of the FastStream codec information element.
const Size = vendor.Size + 2

// Direction flags.
const (
	DirectionVoice = 0x2
	DirectionMusic = 0x1
)

// Music sampling frequency flags.
const (
	SamplingFreqMusic44100 = 0x2
	SamplingFreqMusic48000 = 0x1
)

// Voice sampling frequency flags.
const SamplingFreqVoice16000 = 0x2

// MusicSampleRates maps music frequency flags to Hz.
var MusicSampleRates = a2dp.FlagTable[uint]{
	{Flag: SamplingFreqMusic44100, Value: 44100},
	{Flag: SamplingFreqMusic48000, Value: 48000},
}

// VoiceSampleRates maps voice frequency flags to Hz.
var VoiceSampleRates = a2dp.FlagTable[uint]{
	{Flag: SamplingFreqVoice16000, Value: 16000},
}

// [vendor codec id:48] [direction:8] [frequency_voice:4|frequency_music:4]
var (
	fieldDirection      = bits.Byte(vendor.Size)
	fieldFrequencyVoice = bits.Field{Offset: (vendor.Size + 1) * 8, Width: 4}
	fieldFrequencyMusic = bits.Field{Offset: (vendor.Size+1)*8 + 4, Width: 4}
)

// Capabilities is the FastStream codec information element.
type Capabilities struct {
	Info           vendor.ID
	Direction      uint8
	FrequencyVoice uint8
	FrequencyMusic uint8
}

// New returns FastStream capabilities with the FastStream vendor codec identifier.
func New(direction, voice, music uint8) Capabilities {
	return Capabilities{Info: vendor.FastStream, Direction: direction, FrequencyVoice: voice, FrequencyMusic: music}
}

// Parse decodes a FastStream codec information element.
func Parse(data []byte) (caps Capabilities, err error) {
	if len(data) != Size {
		return caps, utils.MalformedInputError{Codec: "FastStream", Want: Size, Got: len(data)}
	}
	caps.Info, _ = vendor.Decode(data)
	caps.Direction = uint8(fieldDirection.Get(data))
	caps.FrequencyVoice = uint8(fieldFrequencyVoice.Get(data))
	caps.FrequencyMusic = uint8(fieldFrequencyMusic.Get(data))
	return
}

// Bytes encodes the element.
func (caps Capabilities) Bytes() []byte {
	b := make([]byte, Size)
	copy(b, caps.Info.Bytes())
	fieldDirection.Put(b, uint32(caps.Direction))
	fieldFrequencyVoice.Put(b, uint32(caps.FrequencyVoice))
	fieldFrequencyMusic.Put(b, uint32(caps.FrequencyMusic))
	return b
}

func (Capabilities) Type() a2dp.CodecType {
	return a2dp.FastStream
}

// Music reports whether the music (sink) direction is set.
func (caps Capabilities) Music() bool {
	return caps.Direction&DirectionMusic != 0
}

// Voice reports whether the voice (back channel) direction is set.
func (caps Capabilities) Voice() bool {
	return caps.Direction&DirectionVoice != 0
}

// SampleRates returns the music sampling rates.
func (caps Capabilities) SampleRates() []uint {
	return MusicSampleRates.Decode(uint32(caps.FrequencyMusic))
}

// VoiceSampleRates returns the voice sampling rates.
func (caps Capabilities) VoiceSampleRates() []uint {
	return VoiceSampleRates.Decode(uint32(caps.FrequencyVoice))
}

// ChannelModes returns joint stereo for the music direction and mono for the voice direction.
func (caps Capabilities) ChannelModes() []a2dp.ChannelMode {
	var modes []a2dp.ChannelMode
	if caps.Music() {
		modes = append(modes, a2dp.ChannelJointStereo)
	}
	if caps.Voice() {
		modes = append(modes, a2dp.ChannelMono)
	}
	return modes
}

func (caps Capabilities) String() string {
	return fmt.Sprintf("FASTSTREAM_CAPABILITIES codec=%v music=%t/%v voice=%t/%v",
		caps.Info, caps.Music(), caps.SampleRates(), caps.Voice(), caps.VoiceSampleRates())
}
