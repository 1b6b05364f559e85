// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"bytes"
	"errors"
	"io"
	"math"
	"testing"

	"github.com/ik5/audfx/internal/audiotest"
	"github.com/ik5/audfx/pcm"
)

func format(rate, channels int) pcm.Format {
	return pcm.Format{BitDepth: 16, Endian: pcm.LittleEndian, SampleRate: rate, Channels: channels}
}

func readAll(t *testing.T, src Source, chunk int) []int64 {
	t.Helper()

	buf := make([]byte, chunk)
	var out []int64
	for {
		n, err := src.Read(buf)
		out = append(out, audiotest.Decode(src.Format(), buf[:n])...)
		if errors.Is(err, io.EOF) {
			return out
		}
		if err != nil {
			t.Fatalf("Read() error = %v", err)
		}
	}
}

func TestNewResampler_Errors(t *testing.T) {
	t.Parallel()

	src := audiotest.NewSilentSource(format(44100, 2), 10)

	if _, err := NewResampler(src, 0); !errors.Is(err, ErrInvalidRate) {
		t.Errorf("rate 0 error = %v", err)
	}
	if _, err := NewResampler(src, 8000, WithSpeed(0)); !errors.Is(err, ErrInvalidSpeed) {
		t.Errorf("speed 0 error = %v", err)
	}
	if _, err := NewResampler(src, 8000, WithSpeed(math.NaN())); !errors.Is(err, ErrInvalidSpeed) {
		t.Errorf("speed NaN error = %v", err)
	}
	if _, err := NewResampler(src, 8000, WithOutputType("u8")); !errors.Is(err, pcm.ErrUnsupportedType) {
		t.Errorf("output u8 error = %v", err)
	}
}

func TestResampler_SameRateIsIdentity(t *testing.T) {
	t.Parallel()

	f := format(48000, 2)
	want := readAll(t, audiotest.NewSineSource(f, 1000, 440, 0.8), 4096)

	rs, err := NewResampler(audiotest.NewSineSource(f, 1000, 440, 0.8), 48000)
	if err != nil {
		t.Fatal(err)
	}
	got := readAll(t, rs, 1000)

	if len(got) != len(want) {
		t.Fatalf("got %d samples, want %d", len(got), len(want))
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("sample %d = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestResampler_FrameCounts(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		srcRate int
		dstRate int
		speed   float64
		frames  int
		want    int
	}{
		{name: "upsample", srcRate: 8000, dstRate: 16000, speed: 1, frames: 800, want: 1599},
		{name: "downsample", srcRate: 48000, dstRate: 16000, speed: 1, frames: 4800, want: 1600},
		{name: "nightcore", srcRate: 48000, dstRate: 48000, speed: NightcoreSpeed, frames: 1300, want: 1000},
		{name: "vaporwave", srcRate: 48000, dstRate: 48000, speed: VaporwaveSpeed, frames: 800, want: 1000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src := audiotest.NewSineSource(format(tt.srcRate, 2), tt.frames, 200, 0.5)
			rs, err := NewResampler(src, tt.dstRate, WithSpeed(tt.speed))
			if err != nil {
				t.Fatal(err)
			}
			if rs.Format().SampleRate != tt.dstRate {
				t.Errorf("Format().SampleRate = %d", rs.Format().SampleRate)
			}

			frames := len(readAll(t, rs, 512)) / 2
			if d := frames - tt.want; d < -2 || d > 2 {
				t.Errorf("got %d frames, want about %d", frames, tt.want)
			}
		})
	}
}

func TestResampler_EmitsLastFrame(t *testing.T) {
	t.Parallel()

	f := format(8000, 1)
	in := []int64{100, 200, 300, 400, 500}

	tests := []struct {
		name string
		rate int
		want int
		last int64 // 0 skips the check; downsampling filters the input
	}{
		{name: "identity", rate: 8000, want: 5, last: 500},
		{name: "halve, lands on last", rate: 4000, want: 3},
		{name: "upsample", rate: 16000, want: 9, last: 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src, err := NewRawSource(bytes.NewReader(audiotest.Encode(f, in)), f)
			if err != nil {
				t.Fatal(err)
			}
			rs, err := NewResampler(src, tt.rate)
			if err != nil {
				t.Fatal(err)
			}

			got := readAll(t, rs, 2)
			if len(got) != tt.want {
				t.Fatalf("got %d frames %v, want %d", len(got), got, tt.want)
			}
			if tt.last != 0 && got[len(got)-1] != tt.last {
				t.Errorf("last frame = %d, want %d", got[len(got)-1], tt.last)
			}
		})
	}
}

func TestResampler_PreservesTone(t *testing.T) {
	t.Parallel()

	src := audiotest.NewSineSource(format(8000, 1), 8000, 100, 0.5)
	rs, err := NewResampler(src, 48000)
	if err != nil {
		t.Fatal(err)
	}

	out := readAll(t, rs, 4096)
	// The first and last source intervals use duplicated edge taps.
	for i := 6; i < len(out)-12; i++ {
		v := out[i]
		want := 0.5 * 32767 * math.Sin(2*math.Pi*100*float64(i)/48000)
		if math.Abs(float64(v)-want) > 40 {
			t.Fatalf("sample %d = %d, want ≈%.0f", i, v, want)
		}
	}
}

func TestResampler_OutputType(t *testing.T) {
	t.Parallel()

	src := audiotest.NewConstantSource(format(44100, 1), 10, 0.5)
	rs, err := NewResampler(src, 44100, WithOutputType("s32be"))
	if err != nil {
		t.Fatal(err)
	}

	f := rs.Format()
	if f.BitDepth != 32 || f.Endian != pcm.BigEndian || f.Channels != 1 {
		t.Fatalf("Format() = %v", f)
	}
	for _, v := range readAll(t, rs, 64) {
		if v != 16384<<16 {
			t.Fatalf("sample = %d, want %d", v, 16384<<16)
		}
	}
}

func TestResampler_InvalidDstSize(t *testing.T) {
	t.Parallel()

	rs, _ := NewResampler(audiotest.NewSilentSource(format(8000, 2), 10), 16000)
	if _, err := rs.Read(make([]byte, 3)); !errors.Is(err, ErrInvalidDstSize) {
		t.Errorf("Read(3 bytes) error = %v", err)
	}
	if n, err := rs.Read(nil); n != 0 || err != nil {
		t.Errorf("Read(nil) = %d, %v", n, err)
	}
}

func TestResampler_PropagatesErrors(t *testing.T) {
	t.Parallel()

	boom := errors.New("disk on fire")
	src := audiotest.NewSilentSource(format(8000, 1), 1000).FailAfter(100, boom)
	rs, _ := NewResampler(src, 8000)

	buf := make([]byte, 64)
	for {
		_, err := rs.Read(buf)
		if err == nil {
			continue
		}
		if !errors.Is(err, boom) {
			t.Fatalf("Read() error = %v, want %v", err, boom)
		}
		return
	}
}

func TestResampler_Close(t *testing.T) {
	t.Parallel()

	src := audiotest.NewSilentSource(format(8000, 1), 10)
	rs, _ := NewResampler(src, 16000)

	if err := rs.Close(); err != nil || !src.Closed() {
		t.Errorf("Close() = %v, source closed %v", err, src.Closed())
	}
}

func TestCubicInterpolate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		y0, y1, y2, y3 float64
		x, want        float64
	}{
		{name: "start", y0: 0, y1: 1, y2: 2, y3: 3, x: 0, want: 1},
		{name: "linear midpoint", y0: 0, y1: 1, y2: 2, y3: 3, x: 0.5, want: 1.5},
		{name: "flat", y0: 7, y1: 7, y2: 7, y3: 7, x: 0.3, want: 7},
		{name: "peak", y0: 0, y1: 1, y2: 1, y3: 0, x: 0.5, want: 1.125},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := cubicInterpolate(tt.y0, tt.y1, tt.y2, tt.y3, tt.x); math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("cubicInterpolate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func BenchmarkResampler_Upsample(b *testing.B) {
	buf := make([]byte, 4096)

	b.ReportAllocs()
	for range b.N {
		src := audiotest.NewSineSource(format(16000, 2), 16000, 440, 0.5)
		rs, _ := NewResampler(src, 48000)
		for {
			if _, err := rs.Read(buf); err != nil {
				break
			}
		}
	}
}
