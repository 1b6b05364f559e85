// SPDX-License-Identifier: EPL-2.0

package pcm

import (
	"errors"
	"math"
	"testing"
)

func TestDecodeEncode_RoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		typ    string
		values []int64
	}{
		{name: "s16le", typ: "s16le", values: []int64{0, 1, -1, 12345, math.MaxInt16, math.MinInt16}},
		{name: "s16be", typ: "s16be", values: []int64{0, 1, -1, -12345, math.MaxInt16, math.MinInt16}},
		{name: "s32le", typ: "s32le", values: []int64{0, 1, -1, 1 << 24, math.MaxInt32, math.MinInt32}},
		{name: "s32be", typ: "s32be", values: []int64{0, 1, -1, -(1 << 24), math.MaxInt32, math.MinInt32}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f, err := ParseType(tt.typ)
			if err != nil {
				t.Fatalf("ParseType(%q) error = %v", tt.typ, err)
			}

			buf := make([]byte, len(tt.values)*f.ByteWidth())
			for i, v := range tt.values {
				if err := Encode(buf, i*f.ByteWidth(), v, f); err != nil {
					t.Fatalf("Encode(%d) error = %v", v, err)
				}
			}

			for i, want := range tt.values {
				got, err := Decode(buf, i*f.ByteWidth(), f)
				if err != nil {
					t.Fatalf("Decode(%d) error = %v", i, err)
				}
				if got != want {
					t.Errorf("Decode(%d) = %d, want %d", i, got, want)
				}
			}
		})
	}
}

func TestDecode_ByteOrder(t *testing.T) {
	t.Parallel()

	buf := []byte{0x01, 0x02}

	le, _ := Decode(buf, 0, Format{BitDepth: 16, Endian: LittleEndian})
	if le != 0x0201 {
		t.Errorf("little-endian Decode = %#x, want 0x0201", le)
	}

	be, _ := Decode(buf, 0, Format{BitDepth: 16, Endian: BigEndian})
	if be != 0x0102 {
		t.Errorf("big-endian Decode = %#x, want 0x0102", be)
	}
}

func TestDecode_OutOfRange(t *testing.T) {
	t.Parallel()

	f := S16LE
	buf := make([]byte, 3)

	if _, err := Decode(buf, 2, f); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("Decode(off=2, len=3) error = %v, want ErrOutOfRange", err)
	}
	if _, err := Decode(buf, -1, f); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("Decode(off=-1) error = %v, want ErrOutOfRange", err)
	}
	if err := Encode(buf, 2, 1, f); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("Encode(off=2, len=3) error = %v, want ErrOutOfRange", err)
	}

	f32 := Format{BitDepth: 32, Endian: LittleEndian, SampleRate: 48000, Channels: 2}
	if _, err := Decode(make([]byte, 7), 4, f32); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("Decode 32-bit past end error = %v, want ErrOutOfRange", err)
	}
}

func TestEncode_Clamps(t *testing.T) {
	t.Parallel()

	f := S16LE
	buf := make([]byte, 4)

	if err := Encode(buf, 0, 40000, f); err != nil {
		t.Fatal(err)
	}
	if err := Encode(buf, 2, -40000, f); err != nil {
		t.Fatal(err)
	}

	hi, _ := Decode(buf, 0, f)
	lo, _ := Decode(buf, 2, f)
	if hi != math.MaxInt16 {
		t.Errorf("Encode(40000) stored %d, want %d", hi, math.MaxInt16)
	}
	if lo != math.MinInt16 {
		t.Errorf("Encode(-40000) stored %d, want %d", lo, math.MinInt16)
	}
}

func TestClamp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		v, lo, hi int64
		want      int64
	}{
		{name: "inside", v: 5, lo: -10, hi: 10, want: 5},
		{name: "lower bound inclusive", v: -10, lo: -10, hi: 10, want: -10},
		{name: "upper bound inclusive", v: 10, lo: -10, hi: 10, want: 10},
		{name: "below", v: -11, lo: -10, hi: 10, want: -10},
		{name: "above", v: 11, lo: -10, hi: 10, want: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Clamp(tt.v, tt.lo, tt.hi); got != tt.want {
				t.Errorf("Clamp(%d, %d, %d) = %d, want %d", tt.v, tt.lo, tt.hi, got, tt.want)
			}
		})
	}
}

func BenchmarkDecodeEncode(b *testing.B) {
	f := S16LE
	buf := make([]byte, 4096)

	b.ReportAllocs()
	b.ResetTimer()

	for range b.N {
		for off := 0; off < len(buf); off += 2 {
			v, _ := Decode(buf, off, f)
			_ = Encode(buf, off, v+1, f)
		}
	}
}

func TestDecodeEncode_ZeroAllocs(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping allocation test in short mode")
	}

	f := S16LE
	buf := make([]byte, 1024)

	allocs := testing.AllocsPerRun(100, func() {
		for off := 0; off < len(buf); off += 2 {
			v, _ := Decode(buf, off, f)
			_ = Encode(buf, off, v, f)
		}
	})

	if allocs > 0 {
		t.Errorf("Decode/Encode allocated %v times, want 0", allocs)
	}
}
