// Package aptxll implements the aptX Low Latency codec information element.
//
// The element is the aptX element followed by a flags byte. When the has-new-caps flag is
// set, a fixed block of encoder buffer parameters follows.
package aptxll

import (
	"encoding/binary"
	"fmt"

	"github.com/ugparu/a2dp"
	"github.com/ugparu/a2dp/codec/aptx"
	"github.com/ugparu/a2dp/codec/vendor"
	"github.com/ugparu/a2dp/utils"
	"github.com/ugparu/a2dp/utils/bits"
)

// Element lengths.
const (
	Size            = aptx.Size + 1
	NewCapsSize     = 9
	SizeWithNewCaps = Size + NewCapsSize
)

// [aptX element:56] [rfa:6|has_new_caps:1|bidirect_link:1]
var (
	fieldRFA          = bits.Field{Offset: aptx.Size * 8, Width: 6}
	fieldHasNewCaps   = bits.Bit(aptx.Size*8 + 6)
	fieldBidirectLink = bits.Bit(aptx.Size*8 + 7)
)

// NewCaps holds the encoder buffer parameters. Levels are 16-bit little-endian on the wire.
type NewCaps struct {
	RFA              uint8
	TargetLevel      uint16
	InitialLevel     uint16
	SRAMaxRate       uint8 // sample rate adjustment max rate, in 1/10000
	SRAAvgTime       uint8 // sample rate adjustment averaging time, in seconds
	GoodWorkingLevel uint16
}

// DefaultNewCaps are the default parameters of the aptX Low Latency encoder.
var DefaultNewCaps = NewCaps{
	TargetLevel:      180,
	InitialLevel:     360,
	SRAMaxRate:       50,
	SRAAvgTime:       1,
	GoodWorkingLevel: 180,
}

func parseNewCaps(b []byte) NewCaps {
	return NewCaps{
		RFA:              b[0],
		TargetLevel:      binary.LittleEndian.Uint16(b[1:]),
		InitialLevel:     binary.LittleEndian.Uint16(b[3:]),
		SRAMaxRate:       b[5],
		SRAAvgTime:       b[6],
		GoodWorkingLevel: binary.LittleEndian.Uint16(b[7:]),
	}
}

func (nc NewCaps) put(b []byte) {
	b[0] = nc.RFA
	binary.LittleEndian.PutUint16(b[1:], nc.TargetLevel)
	binary.LittleEndian.PutUint16(b[3:], nc.InitialLevel)
	b[5] = nc.SRAMaxRate
	b[6] = nc.SRAAvgTime
	binary.LittleEndian.PutUint16(b[7:], nc.GoodWorkingLevel)
}

// Capabilities is the aptX Low Latency codec information element.
// NewCaps is encoded only when HasNewCaps is set.
type Capabilities struct {
	aptx.Capabilities
	RFA          uint8 // reserved, 6 bits
	HasNewCaps   bool
	BidirectLink bool
	NewCaps      NewCaps
}

// New returns aptX Low Latency capabilities with the aptX-LL vendor codec identifier.
func New(frequency, channelMode uint8, bidirect bool) Capabilities {
	return Capabilities{
		Capabilities: aptx.Capabilities{Info: vendor.APTXLL, Frequency: frequency, ChannelMode: channelMode},
		BidirectLink: bidirect,
	}
}

// WithNewCaps returns a copy of caps carrying the given encoder buffer parameters.
func (caps Capabilities) WithNewCaps(nc NewCaps) Capabilities {
	caps.HasNewCaps = true
	caps.NewCaps = nc
	return caps
}

// Parse decodes an aptX Low Latency codec information element. The element must be Size
// bytes long, or SizeWithNewCaps bytes if its has-new-caps flag is set.
func Parse(data []byte) (caps Capabilities, err error) {
	if len(data) < Size {
		return caps, utils.MalformedInputError{Codec: "aptX-LL", Want: Size, Got: len(data)}
	}
	caps.HasNewCaps = fieldHasNewCaps.GetBool(data)
	want := Size
	if caps.HasNewCaps {
		want = SizeWithNewCaps
	}
	if len(data) != want {
		return Capabilities{}, utils.MalformedInputError{Codec: "aptX-LL", Want: want, Got: len(data)}
	}
	if caps.Capabilities, err = aptx.Parse(data[:aptx.Size]); err != nil {
		return Capabilities{}, err
	}
	caps.RFA = uint8(fieldRFA.Get(data))
	caps.BidirectLink = fieldBidirectLink.GetBool(data)
	if caps.HasNewCaps {
		caps.NewCaps = parseNewCaps(data[Size:])
	}
	return
}

// Len returns the length of the encoded element.
func (caps Capabilities) Len() int {
	if caps.HasNewCaps {
		return SizeWithNewCaps
	}
	return Size
}

// Bytes encodes the element.
func (caps Capabilities) Bytes() []byte {
	b := make([]byte, caps.Len())
	copy(b, caps.Capabilities.Bytes())
	fieldRFA.Put(b, uint32(caps.RFA))
	fieldHasNewCaps.PutBool(b, caps.HasNewCaps)
	fieldBidirectLink.PutBool(b, caps.BidirectLink)
	if caps.HasNewCaps {
		caps.NewCaps.put(b[Size:])
	}
	return b
}

func (Capabilities) Type() a2dp.CodecType {
	return a2dp.APTXLL
}

func (caps Capabilities) String() string {
	s := fmt.Sprintf("APTX_LL_CAPABILITIES codec=%v freq=%v mode=%v bidirect=%t",
		caps.Info, caps.SampleRates(), caps.ChannelModes(), caps.BidirectLink)
	if caps.HasNewCaps {
		s += fmt.Sprintf(" target=%d initial=%d sra=%d/%ds good=%d", caps.NewCaps.TargetLevel,
			caps.NewCaps.InitialLevel, caps.NewCaps.SRAMaxRate, caps.NewCaps.SRAAvgTime, caps.NewCaps.GoodWorkingLevel)
	}
	return s
}
