// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/ik5/audfx/pcm"
)

// Source is a stream of interleaved integer PCM.
type Source interface {
	// Format describes the bytes returned by Read.
	Format() pcm.Format
	// Read fills p with PCM bytes. Implementations return whole frames
	// unless the stream itself ends mid-frame.
	Read(p []byte) (n int, err error)
	// BufSize is a good read size in bytes.
	BufSize() int
	// Close releases any resources.
	Close() error
}

// Decoder constructs a Source from an input reader.
type Decoder interface {
	Decode(r io.Reader) (Source, error)
}

// DecoderFunc adapts a function to Decoder.
type DecoderFunc func(r io.Reader) (Source, error)

// Decode calls f.
func (f DecoderFunc) Decode(r io.Reader) (Source, error) { return f(r) }

// Registry for decoders by format key (e.g., "wav", "mp3", "ogg").
type Registry struct {
	codecs map[string]Decoder

	mtx *sync.Mutex
}

func NewRegistry() *Registry {
	return &Registry{
		codecs: make(map[string]Decoder),
		mtx:    &sync.Mutex{},
	}
}

// normalize turns ".WAV", "wav " and "Wav" into "wav".
func normalize(format string) string {
	return strings.TrimPrefix(strings.ToLower(strings.TrimSpace(format)), ".")
}

// Register adds d under every given key.
func (r *Registry) Register(d Decoder, formats ...string) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	for _, f := range formats {
		r.codecs[normalize(f)] = d
	}
}

func (r *Registry) Get(format string) (Decoder, bool) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	d, ok := r.codecs[normalize(format)]
	return d, ok
}

// ForPath looks the decoder up by the file extension of path.
func (r *Registry) ForPath(path string) (Decoder, error) {
	ext := normalize(filepath.Ext(path))
	if d, ok := r.Get(ext); ok {
		return d, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, ext)
}

// Formats returns the registered keys in sorted order.
func (r *Registry) Formats() []string {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	out := make([]string, 0, len(r.codecs))
	for k := range r.codecs {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}

// RawSource reads headerless PCM of a known format.
type RawSource struct {
	r      io.Reader
	format pcm.Format
}

// NewRawSource wraps r, which must yield PCM in format f.
func NewRawSource(r io.Reader, f pcm.Format) (*RawSource, error) {
	if err := f.Validate(); err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	return &RawSource{r: r, format: f}, nil
}

func (s *RawSource) Format() pcm.Format         { return s.format }
func (s *RawSource) Read(p []byte) (int, error) { return s.r.Read(p) }
func (s *RawSource) BufSize() int               { return s.format.FrameSize() * 1024 }

func (s *RawSource) Close() error {
	if c, ok := s.r.(io.Closer); ok {
		if err := c.Close(); err != nil {
			return fmt.Errorf("%w", err)
		}
	}
	return nil
}

// RawDecoder decodes headerless PCM in a fixed format.
type RawDecoder struct {
	Format pcm.Format
}

func (d RawDecoder) Decode(r io.Reader) (Source, error) {
	src, err := NewRawSource(r, d.Format)
	if err != nil {
		return nil, err
	}
	return src, nil
}
