package rtp

import (
	"fmt"

	"github.com/ugparu/a2dp/utils/bits"
)

// SBCHeaderSize is the length of the SBC media payload header.
const SBCHeaderSize = 1

// MaxFrames is the largest frame count the media payload header can announce.
const MaxFrames = 15

// [F:1|S:1|L:1|RFA:1|number_of_frames:4]
var (
	hdrFragmented = bits.Bit(0)
	hdrStart      = bits.Bit(1)
	hdrLast       = bits.Bit(2)
	hdrRFA        = bits.Bit(3)
	hdrFrames     = bits.Field{Offset: 4, Width: 4}
)

// SBCHeader is the media payload header preceding SBC frames in an A2DP media packet.
// For a fragmented frame Frames counts the fragments left, the current one included.
type SBCHeader struct {
	Fragmented bool
	Start      bool
	Last       bool
	RFA        bool
	Frames     uint8
}

// ParseSBCHeader decodes the media payload header at the start of payload.
func ParseSBCHeader(payload []byte) (h SBCHeader, err error) {
	if len(payload) < SBCHeaderSize {
		return h, fmt.Errorf("rtp: empty SBC payload")
	}
	h.Fragmented = hdrFragmented.GetBool(payload)
	h.Start = hdrStart.GetBool(payload)
	h.Last = hdrLast.GetBool(payload)
	h.RFA = hdrRFA.GetBool(payload)
	h.Frames = uint8(hdrFrames.Get(payload))
	return
}

// Byte encodes the header.
func (h SBCHeader) Byte() byte {
	b := make([]byte, SBCHeaderSize)
	hdrFragmented.PutBool(b, h.Fragmented)
	hdrStart.PutBool(b, h.Start)
	hdrLast.PutBool(b, h.Last)
	hdrRFA.PutBool(b, h.RFA)
	hdrFrames.Put(b, uint32(h.Frames))
	return b[0]
}

func (h SBCHeader) String() string {
	return fmt.Sprintf("SBC_HEADER F=%t S=%t L=%t frames=%d", h.Fragmented, h.Start, h.Last, h.Frames)
}
