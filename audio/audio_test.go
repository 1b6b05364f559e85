// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"bytes"
	"errors"
	"io"
	"slices"
	"sync"
	"testing"

	"github.com/ik5/audfx/internal/audiotest"
	"github.com/ik5/audfx/pcm"
)

// mockDecoder is a test decoder implementation
type mockDecoder struct {
	name string
}

func (d *mockDecoder) Decode(io.Reader) (Source, error) {
	return audiotest.NewSilentSource(pcm.S16LE, 100), nil
}

func TestRegistry_RegisterAndGet(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	decoder := &mockDecoder{name: "wav"}

	registry.Register(decoder, "wav", "wave")

	for _, key := range []string{"wav", "WAV", ".wav", " wave "} {
		got, ok := registry.Get(key)
		if !ok {
			t.Fatalf("Get(%q) failed to retrieve registered decoder", key)
		}
		if got != decoder {
			t.Errorf("Get(%q) returned different decoder instance", key)
		}
	}
}

func TestRegistry_GetNonExistent(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()

	if _, ok := registry.Get("nonexistent"); ok {
		t.Error("Get() returned ok=true for non-existent format")
	}
}

func TestRegistry_ForPath(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	mp3 := &mockDecoder{name: "mp3"}
	registry.Register(mp3, "mp3")

	got, err := registry.ForPath("/music/Song.MP3")
	if err != nil || got != mp3 {
		t.Errorf("ForPath() = %v, %v", got, err)
	}

	if _, err := registry.ForPath("cover.flac"); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("ForPath(flac) error = %v, want ErrUnknownFormat", err)
	}
}

func TestRegistry_Formats(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	registry.Register(&mockDecoder{}, "ogg", "wav")
	registry.Register(&mockDecoder{}, "MP3")

	if got, want := registry.Formats(), []string{"mp3", "ogg", "wav"}; !slices.Equal(got, want) {
		t.Errorf("Formats() = %v, want %v", got, want)
	}
}

func TestRegistry_Concurrent(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	var wg sync.WaitGroup
	for i := range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			key := string(rune('a' + i))
			registry.Register(&mockDecoder{}, key)
			registry.Get(key)
			registry.Formats()
		}()
	}
	wg.Wait()

	if n := len(registry.Formats()); n != 16 {
		t.Errorf("registered %d formats, want 16", n)
	}
}

func TestDecoderFunc(t *testing.T) {
	t.Parallel()

	called := false
	d := DecoderFunc(func(io.Reader) (Source, error) {
		called = true
		return nil, io.ErrUnexpectedEOF
	})

	if _, err := d.Decode(nil); !errors.Is(err, io.ErrUnexpectedEOF) || !called {
		t.Errorf("DecoderFunc.Decode() = %v, called %v", err, called)
	}
}

type closeRecorder struct {
	*bytes.Reader
	closed bool
}

func (c *closeRecorder) Close() error {
	c.closed = true
	return nil
}

func TestRawDecoder(t *testing.T) {
	t.Parallel()

	f := pcm.Format{BitDepth: 16, Endian: pcm.BigEndian, SampleRate: 44100, Channels: 1}
	data := audiotest.Encode(f, []int64{1, -2, 300})
	rc := &closeRecorder{Reader: bytes.NewReader(data)}

	src, err := RawDecoder{Format: f}.Decode(rc)
	if err != nil {
		t.Fatal(err)
	}
	if src.Format() != f {
		t.Errorf("Format() = %v", src.Format())
	}

	got, err := io.ReadAll(src)
	if err != nil || !bytes.Equal(got, data) {
		t.Errorf("ReadAll() = %v, %v", got, err)
	}
	if err := src.Close(); err != nil || !rc.closed {
		t.Errorf("Close() = %v, closed %v", err, rc.closed)
	}
}

func TestRawDecoder_InvalidFormat(t *testing.T) {
	t.Parallel()

	if _, err := (RawDecoder{Format: pcm.Format{BitDepth: 12}}).Decode(bytes.NewReader(nil)); !errors.Is(err, pcm.ErrUnsupportedType) {
		t.Errorf("Decode() error = %v, want ErrUnsupportedType", err)
	}
}
