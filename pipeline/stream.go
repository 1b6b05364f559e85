// SPDX-License-Identifier: EPL-2.0

package pipeline

import (
	"errors"
	"io"
)

// Reader filters the PCM read from an underlying reader.
type Reader struct {
	src io.Reader
	p   *Pipeline
	eof bool
}

// NewReader returns a Reader that passes every chunk read from src through
// p.
func NewReader(src io.Reader, p *Pipeline) *Reader {
	return &Reader{src: src, p: p}
}

// Read fills b with whole frames where it can, so chunk boundaries never
// split a sample. A short final chunk is processed as is.
func (r *Reader) Read(b []byte) (int, error) {
	if r.eof {
		return 0, io.EOF
	}

	want := len(b)
	if fs := r.p.format.FrameSize(); want >= fs {
		want -= want % fs
	}

	n, err := io.ReadFull(r.src, b[:want])
	if errors.Is(err, io.ErrUnexpectedEOF) {
		r.eof = true
		err = nil
	}
	if n > 0 {
		r.p.Process(b[:n])
	}
	return n, err
}

// Writer filters PCM on its way to an underlying writer.
type Writer struct {
	dst     io.Writer
	p       *Pipeline
	scratch []byte
}

// NewWriter returns a Writer that passes every chunk through p before
// writing it to dst.
func NewWriter(dst io.Writer, p *Pipeline) *Writer {
	return &Writer{dst: dst, p: p}
}

// Write processes a copy of b, leaving the caller's slice untouched, and
// forwards it. Chunks should hold whole samples; a trailing partial sample
// is forwarded unfiltered.
func (w *Writer) Write(b []byte) (int, error) {
	if cap(w.scratch) < len(b) {
		w.scratch = make([]byte, len(b))
	}
	buf := w.scratch[:len(b)]
	copy(buf, b)

	w.p.Process(buf)

	n, err := w.dst.Write(buf)
	if err == nil && n < len(b) {
		err = io.ErrShortWrite
	}
	return n, err
}

// Close closes the underlying writer if it is an io.Closer.
func (w *Writer) Close() error {
	if c, ok := w.dst.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
