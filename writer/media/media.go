// Package media streams encoded SBC frames as A2DP media packets over an open transport.
package media

import (
	"fmt"
	"io"
	"sync/atomic"

	"github.com/ugparu/a2dp/codec/sbc"
	"github.com/ugparu/a2dp/format/rtp"
	"github.com/ugparu/a2dp/utils/lifecycle"
	"github.com/ugparu/a2dp/utils/logger"
)

// Writer accepts SBC frames and writes them to its transport.
type Writer interface {
	// Write starts the writing loop.
	Write()
	// Frames returns the channel accepting encoded frames.
	Frames() chan<- []byte
	// Close flushes pending frames and stops the loop.
	Close()
	// Done is closed once the loop has exited.
	Done() <-chan struct{}
	// Err returns the error that stopped the loop.
	Err() error
	// Packets returns the number of packets written so far.
	Packets() uint64
}

// sbcWriter groups frames into packets of the configured MTU. Frames not matching the
// stream configuration are dropped. The bitpool may change between frames within its
// configured range. A transport error stops the writer.
type sbcWriter struct {
	*lifecycle.AsyncManager[*sbcWriter]

	transport io.Writer
	config    sbc.Capabilities
	expected  sbc.FrameHeader
	mtu       int
	pktz      *rtp.SBCPacketizer

	inpFrameCh chan []byte
	pending    [][]byte
	perPacket  int
	packets    atomic.Uint64
}

// NewSBC creates a writer for a stream configured by config, which must have exactly one
// flag set per field. chanSize controls the size of the frame channel.
func NewSBC(transport io.Writer, config sbc.Capabilities, mtu, chanSize int) (Writer, error) {
	expected, ok := config.FrameHeaderFor(config.MaxBitpool)
	if !ok {
		return nil, fmt.Errorf("media: %v is not a stream configuration", config)
	}
	if config.MinBitpool > config.MaxBitpool {
		return nil, fmt.Errorf("media: bitpool range %d-%d is empty", config.MinBitpool, config.MaxBitpool)
	}
	pktz, err := rtp.NewSBCPacketizer(mtu, rtp.DefaultPayloadType)
	if err != nil {
		return nil, fmt.Errorf("media: %w", err)
	}
	w := &sbcWriter{
		transport:  transport,
		config:     config,
		expected:   expected,
		mtu:        mtu,
		pktz:       pktz,
		inpFrameCh: make(chan []byte, chanSize),
	}
	w.AsyncManager = lifecycle.NewAsyncManager(w)
	return w, nil
}

func (w *sbcWriter) Write() {
	startFunc := func(*sbcWriter) error {
		logger.Infof(w, "Streaming %v", w.config)
		return nil
	}
	if err := w.Start(startFunc); err != nil {
		logger.Debugf(w, "Not starting: %v", err)
	}
}

// Step processes one frame. On stop, frames already queued are written before the loop exits.
func (w *sbcWriter) Step(stopCh <-chan struct{}) error {
	select {
	case <-stopCh:
	drain:
		for {
			select {
			case frame := <-w.inpFrameCh:
				if err := w.accept(frame); err != nil {
					return err
				}
			default:
				break drain
			}
		}
		n := len(w.pending)
		if err := w.flush(); err != nil {
			logger.Warningf(w, "Dropping %d frames: %v", n, err)
		}
		return &lifecycle.BreakError{}
	case frame := <-w.inpFrameCh:
		return w.accept(frame)
	}
}

func (w *sbcWriter) accept(frame []byte) error {
	if err := w.check(frame); err != nil {
		logger.Warningf(w, "Dropping frame: %v", err)
		return nil
	}
	if w.perPacket == 0 {
		w.perPacket = w.pktz.FramesPerPacket(len(frame))
		logger.Debugf(w, "Packing %d frames of %d bytes per packet", w.perPacket, len(frame))
	}
	w.pending = append(w.pending, frame)
	if len(w.pending) >= w.perPacket {
		return w.flush()
	}
	return nil
}

func (w *sbcWriter) check(frame []byte) error {
	h, err := sbc.ParseFrameHeader(frame)
	if err != nil {
		return fmt.Errorf("media: %w", err)
	}
	if h.Bitpool < w.config.MinBitpool || h.Bitpool > w.config.MaxBitpool {
		return fmt.Errorf("media: bitpool %d outside %d-%d", h.Bitpool, w.config.MinBitpool, w.config.MaxBitpool)
	}
	if n := h.FrameLength(); len(frame) != n {
		return fmt.Errorf("media: frame of %d bytes, header announces %d", len(frame), n)
	}
	cfg := h
	cfg.Bitpool, cfg.CRC = w.expected.Bitpool, w.expected.CRC
	if cfg != w.expected {
		return fmt.Errorf("media: frame header %x does not match the stream configuration", frame[:sbc.FrameHeaderSize])
	}
	return nil
}

func (w *sbcWriter) flush() error {
	if len(w.pending) == 0 {
		return nil
	}
	n, err := w.pktz.WriteFrames(w.transport, w.pending)
	w.packets.Add(uint64(n)) //nolint:gosec // n >= 0
	w.pending = w.pending[:0]
	return err
}

// Close_ is called by AsyncManager once the loop has exited.
func (w *sbcWriter) Close_() { //nolint:revive
	close(w.inpFrameCh)
	if c, ok := w.transport.(io.Closer); ok {
		if err := c.Close(); err != nil {
			logger.Warningf(w, "Closing transport: %v", err)
		}
	}
}

func (w *sbcWriter) Frames() chan<- []byte {
	return w.inpFrameCh
}

func (w *sbcWriter) Packets() uint64 {
	return w.packets.Load()
}

func (w *sbcWriter) String() string {
	return fmt.Sprintf("SBC_WRITER mtu=%d", w.mtu)
}
