package rtp

import (
	"io"
	"testing"

	"github.com/pion/rtp"
	"github.com/stretchr/testify/require"
	"github.com/ugparu/a2dp/codec/sbc"
)

// 44100 Hz, 16 blocks, joint stereo, 8 subbands: 119 bytes and 128 samples per frame.
func makeFrame(t *testing.T, seed byte) []byte {
	t.Helper()
	h := sbc.FrameHeader{Frequency: 2, Blocks: 3, ChannelMode: sbc.FrameJointStereo, Subbands8: true, Bitpool: 53}
	frame := make([]byte, h.FrameLength())
	copy(frame, h.Bytes())
	for i := sbc.FrameHeaderSize; i < len(frame); i++ {
		frame[i] = seed + byte(i)
	}
	return frame
}

func makeFrames(t *testing.T, n int) [][]byte {
	t.Helper()
	frames := make([][]byte, n)
	for i := range frames {
		frames[i] = makeFrame(t, byte(i))
	}
	return frames
}

func TestSBCHeader(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		header SBCHeader
		b      byte
	}{
		{name: "frames", header: SBCHeader{Frames: 7}, b: 0x07},
		{name: "first_fragment", header: SBCHeader{Fragmented: true, Start: true, Frames: 3}, b: 0xc3},
		{name: "last_fragment", header: SBCHeader{Fragmented: true, Last: true, Frames: 1}, b: 0xa1},
		{name: "reserved", header: SBCHeader{RFA: true, Frames: 15}, b: 0x1f},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.b, tt.header.Byte())
			h, err := ParseSBCHeader([]byte{tt.b})
			require.NoError(t, err)
			require.Equal(t, tt.header, h)
		})
	}

	_, err := ParseSBCHeader(nil)
	require.Error(t, err)
}

func TestPacketizeGroupsFrames(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mtu    int
		frames int
		counts []int
	}{
		{name: "mtu_bound", mtu: 895, frames: 20, counts: []int{7, 7, 6}},
		{name: "frame_count_bound", mtu: 4000, frames: 20, counts: []int{15, 5}},
		{name: "exact_fit", mtu: rtpHeaderSize + SBCHeaderSize + 2*119, frames: 4, counts: []int{2, 2}},
		{name: "empty", mtu: 895, frames: 0, counts: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p, err := NewSBCPacketizer(tt.mtu, DefaultPayloadType)
			require.NoError(t, err)

			packets, err := p.Packetize(makeFrames(t, tt.frames))
			require.NoError(t, err)
			require.Len(t, packets, len(tt.counts))

			for i, pkt := range packets {
				require.LessOrEqual(t, pkt.MarshalSize(), tt.mtu)
				require.Equal(t, uint8(DefaultPayloadType), pkt.PayloadType)
				h, err := ParseSBCHeader(pkt.Payload)
				require.NoError(t, err)
				require.False(t, h.Fragmented)
				require.Equal(t, tt.counts[i], int(h.Frames))
				if i > 0 {
					prev := packets[i-1]
					require.Equal(t, prev.SequenceNumber+1, pkt.SequenceNumber)
					require.Equal(t, prev.Timestamp+uint32(128*tt.counts[i-1]), pkt.Timestamp)
					require.Equal(t, prev.SSRC, pkt.SSRC)
				}
			}
		})
	}
}

func TestPacketizeFragments(t *testing.T) {
	t.Parallel()

	p, err := NewSBCPacketizer(60, DefaultPayloadType)
	require.NoError(t, err)

	frames := makeFrames(t, 2)
	packets, err := p.Packetize(frames)
	require.NoError(t, err)
	require.Len(t, packets, 6)

	expected := []SBCHeader{
		{Fragmented: true, Start: true, Frames: 3},
		{Fragmented: true, Frames: 2},
		{Fragmented: true, Last: true, Frames: 1},
	}
	for i, pkt := range packets {
		h, err := ParseSBCHeader(pkt.Payload)
		require.NoError(t, err)
		require.Equal(t, expected[i%3], h)
		require.Equal(t, packets[i/3*3].Timestamp, pkt.Timestamp)
	}
	require.Equal(t, packets[0].Timestamp+128, packets[3].Timestamp)

	d := NewSBCDepacketizer()
	var got [][]byte
	for _, pkt := range packets {
		out, err := d.Depacketize(pkt)
		require.NoError(t, err)
		got = append(got, out...)
	}
	require.Equal(t, frames, got)
}

func TestPacketizeErrors(t *testing.T) {
	t.Parallel()

	_, err := NewSBCPacketizer(rtpHeaderSize+SBCHeaderSize, DefaultPayloadType)
	require.Error(t, err)

	p, err := NewSBCPacketizer(895, DefaultPayloadType)
	require.NoError(t, err)
	require.Equal(t, 7, p.FramesPerPacket(119))
	require.Equal(t, MaxFrames, p.FramesPerPacket(20))
	require.Equal(t, 1, p.FramesPerPacket(1000))

	_, err = p.Packetize([][]byte{{0x00, 0x01, 0x02, 0x03}})
	require.ErrorContains(t, err, "syncword")

	p, err = NewSBCPacketizer(rtpHeaderSize+SBCHeaderSize+4, DefaultPayloadType)
	require.NoError(t, err)
	_, err = p.Packetize(makeFrames(t, 1))
	require.ErrorContains(t, err, "fragments")
}

type packetWriter struct {
	packets [][]byte
}

func (w *packetWriter) Write(b []byte) (int, error) {
	w.packets = append(w.packets, append([]byte(nil), b...))
	return len(b), nil
}

func TestWriteFramesRoundTrip(t *testing.T) {
	t.Parallel()

	p, err := NewSBCPacketizer(672, DefaultPayloadType)
	require.NoError(t, err)

	frames := makeFrames(t, 40)
	w := new(packetWriter)
	n, err := p.WriteFrames(w, frames)
	require.NoError(t, err)
	require.Equal(t, 8, n)
	require.Len(t, w.packets, 8)

	d := NewSBCDepacketizer()
	var got [][]byte
	for _, buf := range w.packets {
		require.LessOrEqual(t, len(buf), 672)
		out, err := d.Unmarshal(buf)
		require.NoError(t, err)
		got = append(got, out...)
	}
	require.Equal(t, frames, got)
}

type brokenWriter struct {
	left int
}

func (w *brokenWriter) Write(b []byte) (int, error) {
	if w.left == 0 {
		return 0, io.ErrClosedPipe
	}
	w.left--
	return len(b), nil
}

func TestWriteFramesPartial(t *testing.T) {
	t.Parallel()

	p, err := NewSBCPacketizer(672, DefaultPayloadType)
	require.NoError(t, err)

	n, err := p.WriteFrames(&brokenWriter{left: 3}, makeFrames(t, 40))
	require.ErrorIs(t, err, io.ErrClosedPipe)
	require.Equal(t, 3, n)
}

func TestDepacketizeLostFragment(t *testing.T) {
	t.Parallel()

	p, err := NewSBCPacketizer(60, DefaultPayloadType)
	require.NoError(t, err)
	packets, err := p.Packetize(makeFrames(t, 1))
	require.NoError(t, err)
	require.Len(t, packets, 3)

	d := NewSBCDepacketizer()
	out, err := d.Depacketize(packets[0])
	require.NoError(t, err)
	require.Empty(t, out)
	_, err = d.Depacketize(packets[2])
	require.ErrorIs(t, err, ErrFragmentLost)

	_, err = d.Depacketize(packets[1])
	require.ErrorIs(t, err, ErrFragmentLost)
}

func TestDepacketizeTruncated(t *testing.T) {
	t.Parallel()

	frame := makeFrame(t, 0)
	pkt := &rtp.Packet{
		Header:  rtp.Header{Version: rtpVersion, PayloadType: DefaultPayloadType},
		Payload: append([]byte{SBCHeader{Frames: 2}.Byte()}, frame...),
	}
	_, err := NewSBCDepacketizer().Depacketize(pkt)
	require.Error(t, err)

	pkt.Payload = append([]byte{SBCHeader{Frames: 1}.Byte()}, frame[:60]...)
	_, err = NewSBCDepacketizer().Depacketize(pkt)
	require.ErrorContains(t, err, "need 119 bytes")
}
