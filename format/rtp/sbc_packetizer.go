package rtp

import (
	"fmt"
	"io"
	"math/rand/v2"

	"github.com/pion/rtp"
	"github.com/ugparu/a2dp/codec/sbc"
	"github.com/ugparu/a2dp/utils/logger"
)

const (
	rtpVersion    = 2
	rtpHeaderSize = 12

	// DefaultPayloadType is the dynamic payload type used for A2DP media packets.
	DefaultPayloadType = 96
)

// SBCPacketizer groups encoded SBC frames into A2DP media packets.
// Whole frames are packed while they fit the MTU, at most MaxFrames per packet. A frame
// larger than one packet is fragmented. The RTP timestamp counts samples per channel.
//
// A SBCPacketizer is not safe for concurrent use.
type SBCPacketizer struct {
	mtu         int
	payloadType uint8
	ssrc        uint32
	sequence    uint16
	timestamp   uint32
}

// NewSBCPacketizer returns a packetizer producing packets of at most mtu bytes.
func NewSBCPacketizer(mtu int, payloadType uint8) (*SBCPacketizer, error) {
	if mtu < rtpHeaderSize+SBCHeaderSize+1 {
		return nil, fmt.Errorf("rtp: mtu %d too small", mtu)
	}
	return &SBCPacketizer{
		mtu:         mtu,
		payloadType: payloadType,
		ssrc:        rand.Uint32(),               //nolint:gosec // non-crypto random is sufficient here
		sequence:    uint16(rand.UintN(1 << 16)), //nolint:gosec // non-crypto random is sufficient here
		timestamp:   rand.Uint32(),               //nolint:gosec // non-crypto random is sufficient here
	}, nil
}

func (p *SBCPacketizer) maxPayload() int {
	return p.mtu - rtpHeaderSize - SBCHeaderSize
}

func (p *SBCPacketizer) packet(h SBCHeader, payload []byte, timestamp uint32) *rtp.Packet {
	pkt := &rtp.Packet{
		Header: rtp.Header{
			Version:        rtpVersion,
			PayloadType:    p.payloadType,
			SequenceNumber: p.sequence,
			Timestamp:      timestamp,
			SSRC:           p.ssrc,
		},
		Payload: append([]byte{h.Byte()}, payload...),
	}
	p.sequence++
	return pkt
}

// Packetize turns consecutive SBC frames into media packets.
func (p *SBCPacketizer) Packetize(frames [][]byte) (packets []*rtp.Packet, err error) {
	var (
		pending [][]byte
		size    int
		samples uint32
	)
	flush := func() {
		if len(pending) == 0 {
			return
		}
		payload := make([]byte, 0, size)
		for _, f := range pending {
			payload = append(payload, f...)
		}
		packets = append(packets, p.packet(SBCHeader{Frames: uint8(len(pending))}, payload, p.timestamp)) //nolint:gosec
		p.timestamp += samples
		pending, size, samples = nil, 0, 0
	}

	for i, frame := range frames {
		h, hdrErr := sbc.ParseFrameHeader(frame)
		if hdrErr != nil {
			return nil, fmt.Errorf("rtp: frame %d: %w", i, hdrErr)
		}
		if len(frame) > p.maxPayload() {
			flush()
			fragments, fragErr := p.fragment(frame)
			if fragErr != nil {
				return nil, fmt.Errorf("rtp: frame %d: %w", i, fragErr)
			}
			packets = append(packets, fragments...)
			p.timestamp += uint32(h.Samples()) //nolint:gosec
			continue
		}
		if size+len(frame) > p.maxPayload() || len(pending) == MaxFrames {
			flush()
		}
		pending = append(pending, frame)
		size += len(frame)
		samples += uint32(h.Samples()) //nolint:gosec
	}
	flush()
	return packets, nil
}

func (p *SBCPacketizer) fragment(frame []byte) (packets []*rtp.Packet, err error) {
	limit := p.maxPayload()
	count := (len(frame) + limit - 1) / limit
	if count > MaxFrames {
		return nil, fmt.Errorf("%d bytes need %d fragments, at most %d allowed", len(frame), count, MaxFrames)
	}
	for i := 0; len(frame) > 0; i++ {
		n := min(limit, len(frame))
		h := SBCHeader{
			Fragmented: true,
			Start:      i == 0,
			Last:       n == len(frame),
			Frames:     uint8(count - i), //nolint:gosec // count <= MaxFrames
		}
		packets = append(packets, p.packet(h, frame[:n], p.timestamp))
		frame = frame[n:]
	}
	return
}

// WriteFrames packetizes frames and writes every packet to w with a single Write call.
// It returns the number of packets written before any error.
func (p *SBCPacketizer) WriteFrames(w io.Writer, frames [][]byte) (written int, err error) {
	packets, err := p.Packetize(frames)
	if err != nil {
		return 0, err
	}
	for _, pkt := range packets {
		buf, err := pkt.Marshal()
		if err != nil {
			return written, fmt.Errorf("rtp: marshal packet %d: %w", pkt.SequenceNumber, err)
		}
		n, err := w.Write(buf)
		if err != nil {
			return written, fmt.Errorf("rtp: write failed: %w", err)
		}
		if n != len(buf) {
			logger.Warningf(p, "short RTP write: wrote %d of %d bytes", n, len(buf))
		}
		written++
	}
	return written, nil
}

// FramesPerPacket returns how many whole frames of frameLen bytes fit one packet.
func (p *SBCPacketizer) FramesPerPacket(frameLen int) int {
	if frameLen <= 0 || frameLen > p.maxPayload() {
		return 1
	}
	return min(MaxFrames, p.maxPayload()/frameLen)
}

// Sequence returns the sequence number of the next packet.
func (p *SBCPacketizer) Sequence() uint16 {
	return p.sequence
}

func (p *SBCPacketizer) String() string {
	return fmt.Sprintf("rtp.SBCPacketizer{mtu=%d, pt=%d, ssrc=%08x}", p.mtu, p.payloadType, p.ssrc)
}
