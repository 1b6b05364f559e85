// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"io"
	"math"

	"github.com/ik5/audfx/pcm"
)

// MockSource generates interleaved PCM bytes for tests.
// It implements the audio.Source interface (without importing it to avoid cycles).
type MockSource struct {
	format    pcm.Format
	frames    int // total frames to generate
	generated int // frames generated so far
	waveform  func(frame int, channel int) float64

	failAt  int // frame at which to fail, or -1
	failErr error
	closed  bool
}

// NewMockSource creates a mock source of frames frames. waveform returns
// a value in [-1, 1] that is scaled to the format's sample range.
func NewMockSource(f pcm.Format, frames int, waveform func(frame int, channel int) float64) *MockSource {
	return &MockSource{
		format:   f,
		frames:   frames,
		waveform: waveform,
		failAt:   -1,
	}
}

// NewSilentSource creates a mock source that generates silence.
func NewSilentSource(f pcm.Format, frames int) *MockSource {
	return NewMockSource(f, frames, func(int, int) float64 { return 0 })
}

// NewSineSource creates a mock source that generates the same sine wave on
// every channel.
func NewSineSource(f pcm.Format, frames int, frequency, amplitude float64) *MockSource {
	return NewMockSource(f, frames, func(frame int, _ int) float64 {
		t := float64(frame) / float64(f.SampleRate)
		return amplitude * math.Sin(2*math.Pi*frequency*t)
	})
}

// NewConstantSource creates a mock source with a constant value.
func NewConstantSource(f pcm.Format, frames int, value float64) *MockSource {
	return NewMockSource(f, frames, func(int, int) float64 { return value })
}

// FailAfter makes Read return err once frame frames have been produced.
func (m *MockSource) FailAfter(frame int, err error) *MockSource {
	m.failAt = frame
	m.failErr = err
	return m
}

func (m *MockSource) Format() pcm.Format { return m.format }
func (m *MockSource) BufSize() int       { return 4096 }

func (m *MockSource) Close() error {
	m.closed = true
	return nil
}

// Closed reports whether Close was called.
func (m *MockSource) Closed() bool { return m.closed }

// Reset rewinds the source so it can be read again.
func (m *MockSource) Reset() { m.generated = 0 }

// Read fills p with whole frames. The last frames come back together with
// io.EOF.
func (m *MockSource) Read(p []byte) (int, error) {
	if m.failAt >= 0 && m.generated >= m.failAt {
		return 0, m.failErr
	}
	if m.generated >= m.frames {
		return 0, io.EOF
	}

	fs := m.format.FrameSize()
	if len(p) < fs {
		return 0, io.ErrShortBuffer
	}

	n := min(len(p)/fs, m.frames-m.generated)
	if m.failAt >= 0 {
		n = min(n, m.failAt-m.generated)
	}

	w := m.format.ByteWidth()
	scale := float64(m.format.Max())
	for frame := range n {
		idx := m.generated + frame
		for ch := range m.format.Channels {
			v := m.format.Round(m.waveform(idx, ch) * scale)
			_ = pcm.Encode(p, (frame*m.format.Channels+ch)*w, v, m.format)
		}
	}

	m.generated += n
	if m.generated >= m.frames {
		return n * fs, io.EOF
	}
	return n * fs, nil
}

// Encode packs samples into a buffer of format f.
func Encode(f pcm.Format, samples []int64) []byte {
	buf := make([]byte, len(samples)*f.ByteWidth())
	for i, v := range samples {
		_ = pcm.Encode(buf, i*f.ByteWidth(), v, f)
	}
	return buf
}

// Decode unpacks every whole sample in buf.
func Decode(f pcm.Format, buf []byte) []int64 {
	out := make([]int64, f.Aligned(len(buf))/f.ByteWidth())
	for i := range out {
		out[i], _ = pcm.Decode(buf, i*f.ByteWidth(), f)
	}
	return out
}
