// SPDX-License-Identifier: EPL-2.0

package opus

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"slices"
	"time"

	"gopkg.in/hraban/opus.v2"

	"github.com/ik5/audfx/pcm"
)

const (
	// DefaultFrameDuration is the frame size voice transports expect.
	DefaultFrameDuration = 20 * time.Millisecond
	// DefaultBitrate in bits per second.
	DefaultBitrate = 128000

	// maxPacketSize is the largest packet libopus produces for one frame.
	maxPacketSize = 4000
)

var frameDurations = []time.Duration{
	2500 * time.Microsecond,
	5 * time.Millisecond,
	10 * time.Millisecond,
	20 * time.Millisecond,
	40 * time.Millisecond,
	60 * time.Millisecond,
}

// checkFormat reports whether f is a layout libopus accepts.
func checkFormat(f pcm.Format) error {
	if err := f.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrUnsupportedFormat, err)
	}
	if f.BitDepth != 16 {
		return fmt.Errorf("%w: %d-bit", ErrUnsupportedFormat, f.BitDepth)
	}
	switch f.SampleRate {
	case 8000, 12000, 16000, 24000, 48000:
	default:
		return fmt.Errorf("%w: %d Hz", ErrUnsupportedFormat, f.SampleRate)
	}
	if f.Channels > 2 {
		return fmt.Errorf("%w: %d channels", ErrUnsupportedFormat, f.Channels)
	}
	return nil
}

// WriterOption configures a Writer.
type WriterOption func(*Writer) error

// WithBitrate sets the encoder target bitrate in bits per second.
func WithBitrate(bps int) WriterOption {
	return func(w *Writer) error {
		if bps <= 0 {
			return fmt.Errorf("%w: %d", ErrInvalidBitrate, bps)
		}
		w.bitrate = bps
		return nil
	}
}

// WithFrameDuration sets the duration of audio carried by each packet.
func WithFrameDuration(d time.Duration) WriterOption {
	return func(w *Writer) error {
		if !slices.Contains(frameDurations, d) {
			return fmt.Errorf("%w: %v", ErrInvalidFrameDuration, d)
		}
		w.frameDur = d
		return nil
	}
}

// Writer encodes 16-bit PCM into Opus packets and writes them in DCA
// framing: each packet is preceded by its length as a little-endian int16.
// Input is buffered until a whole Opus frame is available.
type Writer struct {
	dst      io.Writer
	enc      *opus.Encoder
	format   pcm.Format
	bitrate  int
	frameDur time.Duration

	pending []byte  // PCM bytes of the frame being collected
	samples []int16 // one frame, decoded
	packet  []byte  // length prefix followed by encoded data
	packets int
	closed  bool
}

// NewWriter creates a Writer that encodes f-formatted PCM to dst.
func NewWriter(dst io.Writer, f pcm.Format, opts ...WriterOption) (*Writer, error) {
	if err := checkFormat(f); err != nil {
		return nil, err
	}

	w := &Writer{
		dst:      dst,
		format:   f,
		bitrate:  DefaultBitrate,
		frameDur: DefaultFrameDuration,
	}
	for _, opt := range opts {
		if err := opt(w); err != nil {
			return nil, err
		}
	}

	enc, err := opus.NewEncoder(f.SampleRate, f.Channels, opus.AppAudio)
	if err != nil {
		return nil, fmt.Errorf("opus encoder: %w", err)
	}
	if err := enc.SetBitrate(w.bitrate); err != nil {
		return nil, fmt.Errorf("opus bitrate: %w", err)
	}
	w.enc = enc

	frameBytes := w.FrameSamples() * f.Channels * f.ByteWidth()
	w.pending = make([]byte, 0, frameBytes)
	w.samples = make([]int16, w.FrameSamples()*f.Channels)
	w.packet = make([]byte, 2+maxPacketSize)

	return w, nil
}

// FrameSamples is the number of frames (per channel samples) per packet.
func (w *Writer) FrameSamples() int {
	return int(int64(w.format.SampleRate) * int64(w.frameDur) / int64(time.Second))
}

// Packets is the number of packets written so far.
func (w *Writer) Packets() int { return w.packets }

func (w *Writer) Write(p []byte) (int, error) {
	if w.closed {
		return 0, io.ErrClosedPipe
	}

	var written int
	for len(p) > 0 {
		n := min(cap(w.pending)-len(w.pending), len(p))
		w.pending = append(w.pending, p[:n]...)
		p = p[n:]
		written += n

		if len(w.pending) == cap(w.pending) {
			if err := w.flush(); err != nil {
				return written, err
			}
		}
	}

	return written, nil
}

// flush encodes the pending frame, padding it with silence.
func (w *Writer) flush() error {
	bw := w.format.ByteWidth()
	clear(w.samples)
	for i := range len(w.pending) / bw {
		v, err := pcm.Decode(w.pending, i*bw, w.format)
		if err != nil {
			return err
		}
		w.samples[i] = int16(v)
	}
	w.pending = w.pending[:0]

	n, err := w.enc.Encode(w.samples, w.packet[2:])
	if err != nil {
		return fmt.Errorf("opus encode: %w", err)
	}
	binary.LittleEndian.PutUint16(w.packet, uint16(int16(n)))

	if _, err := w.dst.Write(w.packet[:2+n]); err != nil {
		return fmt.Errorf("%w", err)
	}
	w.packets++

	return nil
}

// Close encodes any partial frame and closes dst if it is an io.Closer.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true

	var err error
	if len(w.pending) > 0 {
		err = w.flush()
	}
	if c, ok := w.dst.(io.Closer); ok {
		err = errors.Join(err, c.Close())
	}

	return err
}
