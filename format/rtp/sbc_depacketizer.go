package rtp

import (
	"errors"
	"fmt"

	"github.com/pion/rtp"
	"github.com/ugparu/a2dp/codec/sbc"
	"github.com/ugparu/a2dp/utils/logger"
)

// ErrFragmentLost is returned when a fragmented frame cannot be reassembled.
var ErrFragmentLost = errors.New("rtp: SBC fragment lost")

// SBCDepacketizer extracts SBC frames from A2DP media packets and reassembles fragmented
// frames. A SBCDepacketizer is not safe for concurrent use.
type SBCDepacketizer struct {
	fragments []byte
	remaining uint8
	sequence  uint16
}

func NewSBCDepacketizer() *SBCDepacketizer {
	return &SBCDepacketizer{}
}

// Unmarshal parses a raw media packet and returns the complete frames it carries.
func (d *SBCDepacketizer) Unmarshal(buf []byte) ([][]byte, error) {
	pkt := new(rtp.Packet)
	if err := pkt.Unmarshal(buf); err != nil {
		return nil, fmt.Errorf("rtp: %w", err)
	}
	return d.Depacketize(pkt)
}

// Depacketize returns the complete frames carried by pkt. A fragment that does not finish a
// frame yields no frames.
func (d *SBCDepacketizer) Depacketize(pkt *rtp.Packet) ([][]byte, error) {
	h, err := ParseSBCHeader(pkt.Payload)
	if err != nil {
		return nil, err
	}
	payload := pkt.Payload[SBCHeaderSize:]

	if h.Fragmented {
		return d.reassemble(h, pkt.SequenceNumber, payload)
	}
	if d.fragments != nil {
		logger.Debugf(d, "dropping %d bytes of unfinished frame", len(d.fragments))
		d.fragments = nil
	}

	frames := make([][]byte, 0, h.Frames)
	for i := range int(h.Frames) {
		fh, hdrErr := sbc.ParseFrameHeader(payload)
		if hdrErr != nil {
			return nil, fmt.Errorf("rtp: frame %d of %d: %w", i+1, h.Frames, hdrErr)
		}
		n := fh.FrameLength()
		if n > len(payload) {
			return nil, fmt.Errorf("rtp: frame %d of %d: need %d bytes, got %d", i+1, h.Frames, n, len(payload))
		}
		frames = append(frames, append([]byte(nil), payload[:n]...))
		payload = payload[n:]
	}
	if len(payload) > 0 {
		logger.Debugf(d, "ignoring %d trailing bytes", len(payload))
	}
	return frames, nil
}

func (d *SBCDepacketizer) reassemble(h SBCHeader, seq uint16, payload []byte) ([][]byte, error) {
	switch {
	case h.Start:
		if d.fragments != nil {
			logger.Debugf(d, "dropping %d bytes of unfinished frame", len(d.fragments))
		}
		d.fragments = append([]byte(nil), payload...)
	case d.fragments == nil || seq != d.sequence+1 || h.Frames != d.remaining-1:
		d.fragments = nil
		return nil, ErrFragmentLost
	default:
		d.fragments = append(d.fragments, payload...)
	}
	d.sequence = seq
	d.remaining = h.Frames

	if !h.Last {
		return nil, nil
	}
	frame := d.fragments
	d.fragments = nil
	if h.Frames != 1 {
		return nil, ErrFragmentLost
	}
	return [][]byte{frame}, nil
}

func (d *SBCDepacketizer) String() string {
	return "rtp.SBCDepacketizer"
}
