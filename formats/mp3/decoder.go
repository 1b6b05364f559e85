// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"errors"
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"

	"github.com/ik5/audfx/audio"
	"github.com/ik5/audfx/pcm"
)

// mp3Reader is an interface for gomp3.Decoder to allow testing
type mp3Reader interface {
	Read([]byte) (int, error)
	SampleRate() int
}

// go-mp3 always produces interleaved stereo s16le.
const channels = 2

type source struct {
	dec    mp3Reader
	format pcm.Format
	closer io.Closer
	eof    bool
}

func newSource(dec mp3Reader, closer io.Closer) *source {
	return &source{
		dec: dec,
		format: pcm.Format{
			BitDepth:   16,
			Endian:     pcm.LittleEndian,
			SampleRate: dec.SampleRate(),
			Channels:   channels,
		},
		closer: closer,
	}
}

func (s *source) Format() pcm.Format { return s.format }
func (s *source) BufSize() int       { return 8192 }

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
	if s.eof {
		return 0, io.EOF
	}

	fs := s.format.FrameSize()
	want := len(p) / fs * fs
	if want == 0 {
		if len(p) == 0 {
			return 0, nil
		}
		return 0, io.ErrShortBuffer
	}

	n, err := io.ReadFull(s.dec, p[:want])
	switch {
	case err == nil:
		return n, nil
	case errors.Is(err, io.ErrUnexpectedEOF):
		s.eof = true
		return n, nil
	default:
		return n, err
	}
}

// Decoder decodes MPEG-1/2 Layer III streams to s16le stereo at the
// stream's own sample rate.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	var closer io.Closer
	if c, ok := r.(io.Closer); ok {
		closer = c
	}

	return newSource(dec, closer), nil
}
