// SPDX-License-Identifier: EPL-2.0

// Package intbuf converts between go-audio integer buffers and PCM bytes.
// It backs the wav and aiff packages, which share the go-audio decoder and
// encoder shapes.
package intbuf

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"

	"github.com/ik5/audfx/pcm"
)

var ErrUnsupportedBitDepth = errors.New("unsupported bit depth")

// PCMReader is the part of a go-audio decoder that yields samples.
type PCMReader interface {
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

// Encoder is the part of a go-audio encoder that consumes samples.
type Encoder interface {
	Write(buf *goaudio.IntBuffer) error
	Close() error
}

// OutputDepth maps a stored bit depth to the PCM depth it is exposed as.
// 8- and 16-bit data widen to 16 bits, 24- and 32-bit data to 32 bits.
func OutputDepth(stored int) (int, error) {
	switch stored {
	case 8, 16:
		return 16, nil
	case 24, 32:
		return 32, nil
	}

	return 0, fmt.Errorf("%w: %d-bit", ErrUnsupportedBitDepth, stored)
}

// ReadSeeker returns r itself when it can seek, otherwise it buffers all of
// r in memory.
func ReadSeeker(r io.Reader) (io.ReadSeeker, error) {
	if rs, ok := r.(io.ReadSeeker); ok {
		return rs, nil
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("buffering input: %w", err)
	}

	return bytes.NewReader(data), nil
}

// Source exposes a go-audio decoder as PCM bytes in a fixed format.
type Source struct {
	dec      PCMReader
	format   pcm.Format
	stored   int
	unsigned bool
	buf      *goaudio.IntBuffer
	store    []int
	closer   io.Closer
}

// NewSource reads stored-bit samples from dec and encodes them as f. When
// unsigned is set, 8-bit samples are offset binary (WAV).
func NewSource(dec PCMReader, stored int, unsigned bool, f pcm.Format, closer io.Closer) *Source {
	return &Source{
		dec:      dec,
		format:   f,
		stored:   stored,
		unsigned: unsigned && stored == 8,
		buf: &goaudio.IntBuffer{
			Format:         &goaudio.Format{NumChannels: f.Channels, SampleRate: f.SampleRate},
			SourceBitDepth: stored,
		},
		closer: closer,
	}
}

func (s *Source) Format() pcm.Format { return s.format }
func (s *Source) BufSize() int       { return s.format.FrameSize() * 1024 }

func (s *Source) Close() error {
	if s.closer == nil {
		return nil
	}
	if err := s.closer.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}

func (s *Source) Read(p []byte) (int, error) {
	frames := len(p) / s.format.FrameSize()
	if frames == 0 {
		if len(p) == 0 {
			return 0, nil
		}
		return 0, io.ErrShortBuffer
	}

	want := frames * s.format.Channels
	if cap(s.store) < want {
		s.store = make([]int, want)
	}

	// Decoders may return short chunks; keep asking until the request is
	// filled so that only the final read can end mid-frame.
	var got int
	var rerr error
	for got < want {
		s.buf.Data = s.store[got:want]
		n, err := s.dec.PCMBuffer(s.buf)
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

	shift := s.format.BitDepth - s.stored
	w := s.format.ByteWidth()
	for i, v := range s.store[:got] {
		x := int64(v)
		if s.unsigned {
			x -= 128
		}
		if err := pcm.Encode(p, i*w, x<<shift, s.format); err != nil {
			return i * w, err
		}
	}

	if errors.Is(rerr, io.EOF) {
		rerr = nil
	}

	return got * w, rerr
}

// Writer encodes PCM bytes through a go-audio encoder. Bytes that do not
// complete a frame are held until the next Write.
type Writer struct {
	enc    Encoder
	format pcm.Format
	buf    *goaudio.IntBuffer
	carry  []byte
	closer io.Closer
	closed bool
}

// NewWriter feeds f-formatted bytes to enc. closer, when set, is closed
// after the encoder.
func NewWriter(enc Encoder, f pcm.Format, closer io.Closer) *Writer {
	return &Writer{
		enc:    enc,
		format: f,
		buf: &goaudio.IntBuffer{
			Format:         &goaudio.Format{NumChannels: f.Channels, SampleRate: f.SampleRate},
			SourceBitDepth: f.BitDepth,
		},
		carry:  make([]byte, 0, f.FrameSize()),
		closer: closer,
	}
}

func (w *Writer) Format() pcm.Format { return w.format }

func (w *Writer) Write(p []byte) (int, error) {
	if w.closed {
		return 0, io.ErrClosedPipe
	}

	fs := w.format.FrameSize()
	data := p
	if len(w.carry) > 0 {
		need := min(fs-len(w.carry), len(p))
		w.carry = append(w.carry, p[:need]...)
		data = p[need:]
		if len(w.carry) < fs {
			return len(p), nil
		}
		if err := w.encode(w.carry); err != nil {
			return 0, err
		}
		w.carry = w.carry[:0]
	}

	whole := len(data) / fs * fs
	if whole > 0 {
		if err := w.encode(data[:whole]); err != nil {
			return len(p) - len(data), err
		}
	}
	w.carry = append(w.carry, data[whole:]...)

	return len(p), nil
}

func (w *Writer) encode(b []byte) error {
	bw := w.format.ByteWidth()
	n := len(b) / bw
	if cap(w.buf.Data) < n {
		w.buf.Data = make([]int, n)
	}
	w.buf.Data = w.buf.Data[:n]

	for i := range n {
		v, err := pcm.Decode(b, i*bw, w.format)
		if err != nil {
			return err
		}
		w.buf.Data[i] = int(v)
	}

	if err := w.enc.Write(w.buf); err != nil {
		return fmt.Errorf("encoding: %w", err)
	}

	return nil
}

// Close finalizes the encoder, which patches the file header, and then
// closes the underlying file if one was given. A pending partial frame is
// discarded.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true

	err := w.enc.Close()
	if w.closer != nil {
		err = errors.Join(err, w.closer.Close())
	}
	if err != nil {
		return fmt.Errorf("closing: %w", err)
	}

	return nil
}
