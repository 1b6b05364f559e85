// SPDX-License-Identifier: EPL-2.0

package audfx

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/audfx/audio"
	"github.com/ik5/audfx/pipeline"
)

// ErrFormatMismatch is returned when a source and a pipeline disagree on the
// PCM layout.
var ErrFormatMismatch = errors.New("source and pipeline formats differ")

// Conversion describes how a decoded source is reshaped before filtering.
// The zero value leaves the source untouched.
type Conversion struct {
	// Rate is the output sample rate; 0 keeps the source rate.
	Rate int
	// Speed is a timescale factor such as audio.NightcoreSpeed; 0 or 1 keeps
	// the original speed.
	Speed float64
	// Mono downmixes to one channel.
	Mono bool
	// Type is an output layout such as "s16le"; empty keeps the source layout.
	Type string
}

func (c Conversion) resamples(src audio.Source) bool {
	f := src.Format()
	return (c.Rate != 0 && c.Rate != f.SampleRate) ||
		(c.Speed != 0 && c.Speed != 1) ||
		(c.Type != "" && c.Type != f.Type())
}

// Apply wraps src so that it produces the converted stream.
func (c Conversion) Apply(src audio.Source) (audio.Source, error) {
	out := src
	if c.resamples(src) {
		rate := c.Rate
		if rate == 0 {
			rate = src.Format().SampleRate
		}

		var opts []audio.ResamplerOption
		if c.Speed != 0 {
			opts = append(opts, audio.WithSpeed(c.Speed))
		}
		if c.Type != "" {
			opts = append(opts, audio.WithOutputType(c.Type))
		}

		r, err := audio.NewResampler(out, rate, opts...)
		if err != nil {
			return nil, fmt.Errorf("conversion: %w", err)
		}
		out = r
	}

	if c.Mono && out.Format().Channels > 1 {
		out = audio.NewMonoMixer(out)
	}

	return out, nil
}

// Process pulls src through p into dst until src is drained and returns the
// number of bytes written. bufSize <= 0 uses src.BufSize().
func Process(dst io.Writer, src audio.Source, p *pipeline.Pipeline, bufSize int) (int64, error) {
	if src.Format() != p.Format() {
		return 0, fmt.Errorf("%w: source %v, pipeline %v", ErrFormatMismatch, src.Format(), p.Format())
	}

	if bufSize <= 0 {
		bufSize = src.BufSize()
	}
	// Keep chunks frame aligned so every Read covers whole frames.
	fs := src.Format().FrameSize()
	bufSize = max(bufSize-bufSize%fs, fs)

	r := pipeline.NewReader(src, p)
	buf := make([]byte, bufSize)

	var total int64
	for {
		n, err := r.Read(buf)
		if n > 0 {
			m, werr := dst.Write(buf[:n])
			total += int64(m)
			if werr != nil {
				return total, fmt.Errorf("%w", werr)
			}
			if m < n {
				return total, io.ErrShortWrite
			}
		}
		if errors.Is(err, io.EOF) {
			return total, nil
		}
		if err != nil {
			return total, fmt.Errorf("%w", err)
		}
	}
}
