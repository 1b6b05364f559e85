// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"errors"
	"fmt"
	"io"

	"github.com/jfreymuth/oggvorbis"

	"github.com/ik5/audfx/audio"
	"github.com/ik5/audfx/pcm"
)

// oggReader is an interface for oggvorbis.Reader to allow testing
type oggReader interface {
	SampleRate() int
	Channels() int
	Read([]float32) (int, error)
}

type source struct {
	dec    oggReader
	format pcm.Format
	floats []float32
	closer io.Closer
}

// newSource quantizes dec's float output to 16-bit little-endian PCM.
func newSource(dec oggReader, closer io.Closer) *source {
	return &source{
		dec: dec,
		format: pcm.Format{
			BitDepth:   16,
			Endian:     pcm.LittleEndian,
			SampleRate: dec.SampleRate(),
			Channels:   dec.Channels(),
		},
		floats: make([]float32, 4096),
		closer: closer,
	}
}

func (s *source) Format() pcm.Format { return s.format }
func (s *source) BufSize() int       { return len(s.floats) * s.format.ByteWidth() }

func (s *source) Close() error {
	if s.closer == nil {
		return nil
	}
	if err := s.closer.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

func (s *source) Read(p []byte) (int, error) {
	frames := len(p) / s.format.FrameSize()
	if frames == 0 {
		if len(p) == 0 {
			return 0, nil
		}
		return 0, io.ErrShortBuffer
	}

	want := frames * s.format.Channels
	if cap(s.floats) < want {
		s.floats = make([]float32, want)
	}
	buf := s.floats[:want]

	// oggvorbis returns interleaved values, at most one decoded packet per
	// call.
	var got int
	var rerr error
	for got < want {
		n, err := s.dec.Read(buf[got:])
		got += n
		if err != nil {
			rerr = err
			break
		}
		if n == 0 {
			break
		}
	}

	if got == 0 {
		if rerr != nil {
			return 0, rerr
		}
		return 0, io.EOF
	}

	scale := float64(s.format.Extremum())
	w := s.format.ByteWidth()
	for i, v := range buf[:got] {
		if err := pcm.Encode(p, i*w, s.format.Round(float64(v)*scale), s.format); err != nil {
			return i * w, err
		}
	}

	if errors.Is(rerr, io.EOF) {
		rerr = nil
	}

	return got * w, rerr
}

// Decoder decodes Ogg Vorbis streams to s16le at the stream's rate and
// channel count.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := oggvorbis.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	var closer io.Closer
	if c, ok := r.(io.Closer); ok {
		closer = c
	}

	return newSource(dec, closer), nil
}
