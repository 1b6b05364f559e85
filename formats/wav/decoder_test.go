// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"slices"
	"testing"
	"testing/iotest"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/ik5/audfx/internal/audiotest"
	"github.com/ik5/audfx/pcm"
)

// encodeFile writes a WAV with the go-audio encoder directly and returns its
// bytes.
func encodeFile(t *testing.T, rate, depth, channels, tag int, data []int) []byte {
	t.Helper()

	path := filepath.Join(t.TempDir(), "in.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	enc := wav.NewEncoder(f, rate, depth, channels, tag)
	buf := &goaudio.IntBuffer{
		Data:   data,
		Format: &goaudio.Format{NumChannels: channels, SampleRate: rate},
	}
	if err := enc.Write(buf); err != nil {
		t.Fatal(err)
	}
	if err := enc.Close(); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return b
}

func decodeAll(t *testing.T, r io.Reader) (pcm.Format, []int64) {
	t.Helper()

	src, err := Decoder{}.Decode(r)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	return src.Format(), audiotest.Decode(src.Format(), data)
}

func TestDecoder_BitDepths(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		depth    int
		data     []int
		wantFmt  pcm.Format
		wantData []int64
	}{
		{
			name: "16-bit stereo", depth: 16,
			data:     []int{0, 100, -100, 32767, -32768, 5},
			wantFmt:  pcm.Format{BitDepth: 16, SampleRate: 8000, Channels: 2},
			wantData: []int64{0, 100, -100, 32767, -32768, 5},
		},
		{
			name: "8-bit unsigned", depth: 8,
			data:     []int{128, 0, 255, 129},
			wantFmt:  pcm.Format{BitDepth: 16, SampleRate: 8000, Channels: 2},
			wantData: []int64{0, -32768, 127 << 8, 1 << 8},
		},
		{
			name: "24-bit", depth: 24,
			data:     []int{1, -1, 8388607, -8388608},
			wantFmt:  pcm.Format{BitDepth: 32, SampleRate: 8000, Channels: 2},
			wantData: []int64{256, -256, 8388607 << 8, -2147483648},
		},
		{
			name: "32-bit", depth: 32,
			data:     []int{7, -7},
			wantFmt:  pcm.Format{BitDepth: 32, SampleRate: 8000, Channels: 2},
			wantData: []int64{7, -7},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			file := encodeFile(t, 8000, tt.depth, 2, pcmFormatTag, tt.data)
			gotFmt, got := decodeAll(t, bytes.NewReader(file))
			if gotFmt != tt.wantFmt {
				t.Errorf("Format() = %v, want %v", gotFmt, tt.wantFmt)
			}
			if !slices.Equal(got, tt.wantData) {
				t.Errorf("samples = %v, want %v", got, tt.wantData)
			}
		})
	}
}

func TestDecoder_NonSeekableInput(t *testing.T) {
	t.Parallel()

	file := encodeFile(t, 22050, 16, 1, pcmFormatTag, []int{1, 2, 3})
	_, got := decodeAll(t, iotest.OneByteReader(bytes.NewReader(file)))
	if !slices.Equal(got, []int64{1, 2, 3}) {
		t.Errorf("samples = %v", got)
	}
}

func TestDecoder_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input []byte
		want  error
	}{
		{"garbage", []byte("this is not a riff file at all, not even close"), ErrNotWavFile},
		{"empty", nil, ErrNotWavFile},
		{"float tag", encodeFile(t, 8000, 32, 1, 3, []int{0}), ErrNotPCM},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Decoder{}.Decode(bytes.NewReader(tt.input))
			if !errors.Is(err, tt.want) {
				t.Errorf("Decode() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestDecoder_ReadError(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	_, err := Decoder{}.Decode(iotest.ErrReader(boom))
	if !errors.Is(err, boom) {
		t.Errorf("Decode() error = %v, want boom", err)
	}
}
