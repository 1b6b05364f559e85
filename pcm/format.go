// SPDX-License-Identifier: EPL-2.0

package pcm

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// Endianness is the byte order of a sample.
type Endianness uint8

const (
	LittleEndian Endianness = iota
	BigEndian
)

func (e Endianness) String() string {
	if e == BigEndian {
		return "be"
	}
	return "le"
}

const (
	// DefaultSampleRate matches the rate voice transports expect.
	DefaultSampleRate = 48000
	// DefaultChannels is interleaved stereo.
	DefaultChannels = 2
)

// Format describes an interleaved integer PCM stream.
type Format struct {
	BitDepth   int // 16 or 32
	Endian     Endianness
	SampleRate int // Hz
	Channels   int
}

// S16LE is 48 kHz stereo signed 16-bit little-endian PCM.
var S16LE = Format{BitDepth: 16, Endian: LittleEndian, SampleRate: DefaultSampleRate, Channels: DefaultChannels}

// ParseType parses a layout name such as "s16le" or "s32be". The returned
// format uses DefaultSampleRate and DefaultChannels.
func ParseType(t string) (Format, error) {
	f := Format{SampleRate: DefaultSampleRate, Channels: DefaultChannels}

	switch strings.ToLower(strings.TrimSpace(t)) {
	case "s16le":
		f.BitDepth, f.Endian = 16, LittleEndian
	case "s16be":
		f.BitDepth, f.Endian = 16, BigEndian
	case "s32le":
		f.BitDepth, f.Endian = 32, LittleEndian
	case "s32be":
		f.BitDepth, f.Endian = 32, BigEndian
	default:
		return Format{}, fmt.Errorf("%w: %q", ErrUnsupportedType, t)
	}

	return f, nil
}

// Type returns the layout name, e.g. "s16le".
func (f Format) Type() string {
	return fmt.Sprintf("s%d%s", f.BitDepth, f.Endian)
}

func (f Format) String() string {
	return fmt.Sprintf("%s@%dHz/%dch", f.Type(), f.SampleRate, f.Channels)
}

// Validate reports whether f can be used for decoding and encoding.
func (f Format) Validate() error {
	if f.BitDepth != 16 && f.BitDepth != 32 {
		return fmt.Errorf("%w: %d-bit", ErrUnsupportedType, f.BitDepth)
	}
	if f.Endian != LittleEndian && f.Endian != BigEndian {
		return fmt.Errorf("%w: byte order %d", ErrUnsupportedType, f.Endian)
	}
	if f.SampleRate <= 0 {
		return fmt.Errorf("%w: sample rate %d", ErrInvalidFormat, f.SampleRate)
	}
	if f.Channels <= 0 {
		return fmt.Errorf("%w: %d channels", ErrInvalidFormat, f.Channels)
	}
	return nil
}

// ByteWidth is the size of one sample in bytes.
func (f Format) ByteWidth() int { return f.BitDepth / 8 }

// FrameSize is the size of one interleaved frame (one sample per channel).
func (f Format) FrameSize() int { return f.ByteWidth() * f.Channels }

// Extremum is 2^(BitDepth-1).
func (f Format) Extremum() int64 { return int64(1) << (f.BitDepth - 1) }

// Min is the smallest representable sample.
func (f Format) Min() int64 { return -f.Extremum() }

// Max is the largest representable sample.
func (f Format) Max() int64 { return f.Extremum() - 1 }

// Aligned truncates n bytes down to a whole number of samples.
func (f Format) Aligned(n int) int {
	w := f.ByteWidth()
	if w == 0 {
		return 0
	}
	return (n / w) * w
}

// Clamp saturates v to [Min, Max].
func (f Format) Clamp(v int64) int64 {
	return Clamp(v, f.Min(), f.Max())
}

// Round converts a filter output to the integer sample domain, rounding half
// away from zero and saturating to [Min, Max]. NaN maps to silence.
func (f Format) Round(x float64) int64 {
	if math.IsNaN(x) {
		return 0
	}

	lo, hi := f.Min(), f.Max()
	if x <= float64(lo) {
		return lo
	}
	if x >= float64(hi) {
		return hi
	}

	return int64(math.Round(x))
}

// Duration is the playback time of n interleaved samples.
func (f Format) Duration(samples int64) time.Duration {
	if f.SampleRate <= 0 || f.Channels <= 0 {
		return 0
	}
	frames := float64(samples) / float64(f.Channels)
	return time.Duration(frames / float64(f.SampleRate) * float64(time.Second))
}
