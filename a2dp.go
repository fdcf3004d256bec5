// Package a2dp holds the types shared by the Bluetooth A2DP codec capability records.
//
// Every codec under codec/ decodes and encodes its capability element (the codec
// specific information exchanged during AVDTP stream negotiation) as a fixed-size,
// bit-packed record. Records are plain values: decoding copies out of the supplied
// buffer and encoding returns a fresh one, so any call may run concurrently with any other.
package a2dp

// CodecID is the 8-bit A2DP media codec type carried in the Media Codec capability.
type CodecID uint8

// Media codec types assigned by the Bluetooth SIG.
const (
	CodecSBC    CodecID = 0x00
	CodecMPEG12 CodecID = 0x01
	CodecMPEG24 CodecID = 0x02
	CodecATRAC  CodecID = 0x04
	CodecMPEGD  CodecID = 0x08
	CodecVendor CodecID = 0xff
)

// String returns the human-readable name of a CodecID.
func (id CodecID) String() string {
	switch id {
	case CodecSBC:
		return "SBC"
	case CodecMPEG12:
		return "MPEG-1,2"
	case CodecMPEG24:
		return "MPEG-2,4"
	case CodecATRAC:
		return "ATRAC"
	case CodecMPEGD:
		return "MPEG-D"
	case CodecVendor:
		return "VENDOR"
	}
	return "UNKNOWN"
}

// MediaType is the 4-bit AVDTP media type preceding the codec type.
type MediaType uint8

// Media types.
const (
	MediaAudio      MediaType = 0x00
	MediaVideo      MediaType = 0x01
	MediaMultimedia MediaType = 0x02
)

// String returns the human-readable name of a MediaType.
func (mt MediaType) String() string {
	switch mt {
	case MediaAudio:
		return "AUDIO"
	case MediaVideo:
		return "VIDEO"
	case MediaMultimedia:
		return "MULTIMEDIA"
	}
	return "UNKNOWN"
}

// Capabilities defines the interface shared by all codec capability records.
type Capabilities interface {
	Type() CodecType // Returns the codec the record describes.
	Bytes() []byte   // Returns the wire encoding of the record.
	String() string  // Returns a short description of the record.
}

// AudioCapabilities extends Capabilities with the sampling parameters most codecs announce.
type AudioCapabilities interface {
	Capabilities                 // Inherits all Capabilities methods.
	SampleRates() []uint         // Returns the sampling frequencies flagged in the record, in Hz.
	ChannelModes() []ChannelMode // Returns the channel modes flagged in the record.
}

// FlagEntry pairs a capability flag bit with the value it announces.
type FlagEntry[T comparable] struct {
	Flag  uint32
	Value T
}

// FlagTable maps the bits of a capability bitmask to values, most significant flag first.
type FlagTable[T comparable] []FlagEntry[T]

// Decode returns the values whose flags are set in mask, in table order.
func (t FlagTable[T]) Decode(mask uint32) []T {
	var values []T
	for _, e := range t {
		if mask&e.Flag != 0 {
			values = append(values, e.Value)
		}
	}
	return values
}

// Encode returns the bitmask announcing values. Values missing from the table are ignored.
func (t FlagTable[T]) Encode(values ...T) (mask uint32) {
	for _, v := range values {
		for _, e := range t {
			if e.Value == v {
				mask |= e.Flag
			}
		}
	}
	return
}
