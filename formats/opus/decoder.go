// SPDX-License-Identifier: EPL-2.0

package opus

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"gopkg.in/hraban/opus.v2"

	"github.com/ik5/audfx/audio"
	"github.com/ik5/audfx/pcm"
)

// maxFrameSamples is 120 ms at 48 kHz, the longest Opus frame.
const maxFrameSamples = 5760

// Decoder reads DCA streams (length-prefixed Opus packets). DCA carries no
// header, so Format fixes the output layout; the zero value means
// pcm.S16LE.
type Decoder struct {
	Format pcm.Format
}

func (d Decoder) Decode(r io.Reader) (audio.Source, error) {
	f := d.Format
	if f == (pcm.Format{}) {
		f = pcm.S16LE
	}
	if err := checkFormat(f); err != nil {
		return nil, err
	}

	dec, err := opus.NewDecoder(f.SampleRate, f.Channels)
	if err != nil {
		return nil, fmt.Errorf("opus decoder: %w", err)
	}

	var closer io.Closer
	if c, ok := r.(io.Closer); ok {
		closer = c
	}

	return &source{
		r:       bufio.NewReader(r),
		dec:     dec,
		format:  f,
		packet:  make([]byte, maxPacketSize),
		samples: make([]int16, maxFrameSamples*f.Channels),
		closer:  closer,
	}, nil
}

type source struct {
	r       *bufio.Reader
	dec     *opus.Decoder
	format  pcm.Format
	packet  []byte
	samples []int16
	pending []int16 // decoded samples not yet returned
	closer  io.Closer
}

func (s *source) Format() pcm.Format { return s.format }
func (s *source) BufSize() int       { return maxFrameSamples * s.format.FrameSize() }

func (s *source) Close() error {
	if s.closer == nil {
		return nil
	}
	if err := s.closer.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

// next decodes one packet into s.pending.
func (s *source) next() error {
	var size int16
	if err := binary.Read(s.r, binary.LittleEndian, &size); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return fmt.Errorf("%w: truncated length", ErrCorruptPacket)
		}
		return err
	}
	if size < 0 || int(size) > len(s.packet) {
		return fmt.Errorf("%w: length %d", ErrCorruptPacket, size)
	}

	data := s.packet[:size]
	if _, err := io.ReadFull(s.r, data); err != nil {
		return fmt.Errorf("%w: %w", ErrCorruptPacket, err)
	}

	n, err := s.dec.Decode(data, s.samples)
	if err != nil {
		return fmt.Errorf("opus decode: %w", err)
	}
	s.pending = s.samples[:n*s.format.Channels]

	return nil
}

func (s *source) Read(p []byte) (int, error) {
	fs := s.format.FrameSize()
	if len(p) < fs {
		if len(p) == 0 {
			return 0, nil
		}
		return 0, io.ErrShortBuffer
	}

	for len(s.pending) == 0 {
		if err := s.next(); err != nil {
			return 0, err
		}
	}

	w := s.format.ByteWidth()
	n := min(len(p)/fs*s.format.Channels, len(s.pending))
	for i, v := range s.pending[:n] {
		if err := pcm.Encode(p, i*w, int64(v), s.format); err != nil {
			return i * w, err
		}
	}
	s.pending = s.pending[n:]

	return n * w, nil
}
