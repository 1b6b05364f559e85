// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/ik5/audfx/biquad"
	"github.com/ik5/audfx/pcm"
)

const (
	// NightcoreSpeed plays a stream 30% faster, raising its pitch.
	NightcoreSpeed = 1.3
	// VaporwaveSpeed plays a stream 20% slower, lowering its pitch.
	VaporwaveSpeed = 0.8
)

// ResamplerOption configures a Resampler.
type ResamplerOption func(*Resampler) error

// WithSpeed plays the source factor times faster. Pitch follows speed.
func WithSpeed(factor float64) ResamplerOption {
	return func(r *Resampler) error {
		if factor <= 0 || math.IsNaN(factor) || math.IsInf(factor, 0) {
			return fmt.Errorf("%w: %v", ErrInvalidSpeed, factor)
		}
		r.speed = factor
		return nil
	}
}

// WithOutputType changes the sample width and byte order of the output,
// e.g. to "s32be". Values are rescaled to the new range.
func WithOutputType(t string) ResamplerOption {
	return func(r *Resampler) error {
		f, err := pcm.ParseType(t)
		if err != nil {
			return err
		}
		r.out.BitDepth = f.BitDepth
		r.out.Endian = f.Endian
		return nil
	}
}

// Resampler streams from src to target sample rate using cubic interpolation.
// Works on interleaved samples; preserves channel count.
// A lowpass runs ahead of the interpolator when the output rate is lower.
type Resampler struct {
	src   Source
	in    *bufio.Reader
	inFmt pcm.Format
	out   pcm.Format
	speed float64
	ratio float64 // source frames per output frame
	scale float64 // output/input sample range

	// frames[1] and frames[2] bracket the output position; frames[0] and
	// frames[3] are the outer cubic taps.
	frames   [4][]float64
	hasFrame [4]bool
	pos      float64
	primed   bool
	eof      bool
	tailDone bool

	frameBuf  []byte
	antiAlias []*biquad.Filter
}

// NewResampler converts src to dstRate.
func NewResampler(src Source, dstRate int, opts ...ResamplerOption) (*Resampler, error) {
	if dstRate <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidRate, dstRate)
	}

	inFmt := src.Format()
	if err := inFmt.Validate(); err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	r := &Resampler{
		src:      src,
		in:       bufio.NewReaderSize(src, max(src.BufSize(), 16)),
		inFmt:    inFmt,
		out:      inFmt,
		speed:    1,
		frameBuf: make([]byte, inFmt.FrameSize()),
	}
	r.out.SampleRate = dstRate

	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}

	r.ratio = float64(inFmt.SampleRate) * r.speed / float64(dstRate)
	r.scale = float64(r.out.Extremum()) / float64(inFmt.Extremum())

	for i := range r.frames {
		r.frames[i] = make([]float64, inFmt.Channels)
	}

	if r.ratio > 1 {
		// Keep content below the output Nyquist, measured in source time.
		cutoff := 0.45 * float64(inFmt.SampleRate) / r.ratio
		r.antiAlias = make([]*biquad.Filter, inFmt.Channels)
		for c := range r.antiAlias {
			f, err := biquad.New(biquad.Params{
				Shape:      biquad.Lowpass,
				SampleRate: float64(inFmt.SampleRate),
				Cutoff:     cutoff,
				Q:          biquad.DefaultQ,
			})
			if err != nil {
				return nil, err
			}
			r.antiAlias[c] = f
		}
	}

	return r, nil
}

func (r *Resampler) Format() pcm.Format { return r.out }
func (r *Resampler) BufSize() int       { return r.src.BufSize() }

// Ratio is the number of source frames consumed per output frame.
func (r *Resampler) Ratio() float64 { return r.ratio }

func (r *Resampler) Close() error {
	err := r.src.Close()
	if err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

// readFrame decodes the next source frame into dst. It reports false at the
// end of the stream; a trailing partial frame is dropped.
func (r *Resampler) readFrame(dst []float64) (bool, error) {
	if r.eof {
		return false, nil
	}

	if _, err := io.ReadFull(r.in, r.frameBuf); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			r.eof = true
			return false, nil
		}
		return false, fmt.Errorf("%w", err)
	}

	w := r.inFmt.ByteWidth()
	for c := range dst {
		v, _ := pcm.Decode(r.frameBuf, c*w, r.inFmt)
		x := float64(v)
		if r.antiAlias != nil {
			x = r.antiAlias[c].Process(x)
		}
		dst[c] = x
	}
	return true, nil
}

// prime loads the first frames. The first frame doubles as the t-1 tap so
// output starts exactly on it.
func (r *Resampler) prime() error {
	r.primed = true

	ok, err := r.readFrame(r.frames[1])
	if err != nil || !ok {
		return err
	}
	copy(r.frames[0], r.frames[1])
	r.hasFrame[0], r.hasFrame[1] = true, true

	for i := 2; i < 4; i++ {
		ok, err := r.readFrame(r.frames[i])
		if err != nil {
			return err
		}
		r.hasFrame[i] = ok
		if !ok {
			break
		}
	}
	return nil
}

// advance shifts the taps by one source frame.
func (r *Resampler) advance() error {
	r.frames[0], r.frames[1], r.frames[2], r.frames[3] = r.frames[1], r.frames[2], r.frames[3], r.frames[0]
	r.hasFrame[0], r.hasFrame[1], r.hasFrame[2] = r.hasFrame[1], r.hasFrame[2], r.hasFrame[3]

	ok, err := r.readFrame(r.frames[3])
	r.hasFrame[3] = ok
	return err
}

// Read produces whole output frames into dst.
func (r *Resampler) Read(dst []byte) (int, error) {
	fs := r.out.FrameSize()
	framesNeeded := len(dst) / fs
	if framesNeeded == 0 {
		if len(dst) == 0 {
			return 0, nil
		}
		return 0, ErrInvalidDstSize
	}

	if !r.primed {
		if err := r.prime(); err != nil {
			return 0, err
		}
	}

	w := r.out.ByteWidth()
	channels := r.out.Channels
	written := 0

	for written < framesNeeded {
		for r.pos >= 1.0 && r.hasFrame[2] {
			r.pos -= 1.0
			if err := r.advance(); err != nil {
				return written * fs, err
			}
		}

		if !r.hasFrame[1] {
			return written * fs, io.EOF
		}
		if !r.hasFrame[2] {
			// The last source frame has no right neighbour; it is emitted
			// as is when the output position still falls on it.
			if r.tailDone || r.pos >= 1 {
				return written * fs, io.EOF
			}
			r.tailDone = true
			for c := range channels {
				_ = pcm.Encode(dst, (written*channels+c)*w, r.out.Round(r.frames[1][c]*r.scale), r.out)
			}
			written++
			r.pos += r.ratio
			continue
		}

		t := r.pos
		for c := range channels {
			y0 := r.frames[0][c]
			if !r.hasFrame[0] {
				y0 = r.frames[1][c]
			}
			y1 := r.frames[1][c]
			y2 := r.frames[2][c]
			y3 := r.frames[3][c]
			if !r.hasFrame[3] {
				y3 = y2
			}

			v := cubicInterpolate(y0, y1, y2, y3, t) * r.scale
			_ = pcm.Encode(dst, (written*channels+c)*w, r.out.Round(v), r.out)
		}

		written++
		r.pos += r.ratio
	}

	return written * fs, nil
}

// cubicInterpolate is a Catmull-Rom spline between y1 and y2 at x in [0, 1).
func cubicInterpolate(y0, y1, y2, y3, x float64) float64 {
	a0 := -0.5*y0 + 1.5*y1 - 1.5*y2 + 0.5*y3
	a1 := y0 - 2.5*y1 + 2*y2 - 0.5*y3
	a2 := -0.5*y0 + 0.5*y2
	a3 := y1

	return ((a0*x+a1)*x+a2)*x + a3
}
