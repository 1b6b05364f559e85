// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"errors"
	"io"
	"testing"

	"github.com/ik5/audfx/pcm"
)

func TestMockSource_ReadsWholeFrames(t *testing.T) {
	t.Parallel()

	f := pcm.Format{BitDepth: 16, Endian: pcm.LittleEndian, SampleRate: 8000, Channels: 2}
	src := NewConstantSource(f, 5, 0.5)

	buf := make([]byte, 10) // 2.5 frames
	var got []int64
	for {
		n, err := src.Read(buf)
		if n%f.FrameSize() != 0 {
			t.Fatalf("Read returned %d bytes", n)
		}
		got = append(got, Decode(f, buf[:n])...)
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatal(err)
		}
	}

	if len(got) != 10 {
		t.Fatalf("got %d samples, want 10", len(got))
	}
	for _, v := range got {
		if v != 16384 {
			t.Fatalf("sample = %d, want 16384", v)
		}
	}
}

func TestMockSource_FailAfter(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	src := NewSilentSource(pcm.S16LE, 100).FailAfter(3, boom)

	buf := make([]byte, 400)
	n, err := src.Read(buf)
	if n != 12 || err != nil {
		t.Fatalf("first Read = %d, %v", n, err)
	}
	if _, err := src.Read(buf); !errors.Is(err, boom) {
		t.Errorf("second Read error = %v, want boom", err)
	}
}

func TestMockSource_ShortBuffer(t *testing.T) {
	t.Parallel()

	src := NewSilentSource(pcm.S16LE, 1)
	if _, err := src.Read(make([]byte, 3)); !errors.Is(err, io.ErrShortBuffer) {
		t.Errorf("Read error = %v, want io.ErrShortBuffer", err)
	}
}

func TestEncodeDecode(t *testing.T) {
	t.Parallel()

	f := pcm.Format{BitDepth: 32, Endian: pcm.BigEndian, SampleRate: 44100, Channels: 1}
	in := []int64{0, -1, 1 << 30, f.Min()}
	out := Decode(f, Encode(f, in))

	for i := range in {
		if in[i] != out[i] {
			t.Errorf("sample %d: %d != %d", i, out[i], in[i])
		}
	}
}
