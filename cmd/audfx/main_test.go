// SPDX-License-Identifier: EPL-2.0

package main

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/ik5/audfx/audio"
	"github.com/ik5/audfx/effects"
	"github.com/ik5/audfx/formats/wav"
	"github.com/ik5/audfx/internal/audiotest"
	"github.com/ik5/audfx/internal/config"
	"github.com/ik5/audfx/pcm"
)

func baseConfig() config.Config {
	return config.Config{
		LogLevel:     "info",
		InputType:    "s16le",
		InputRate:    48000,
		InputChans:   2,
		FFmpeg:       "ffmpeg",
		Cutoff:       80,
		Q:            0.7071,
		Volume:       100,
		PulsatorRate: 1,
		TremoloDepth: effects.DefaultDepth,
		TremoloFreq:  effects.DefaultFrequency,
		VibratoDepth: effects.DefaultDepth,
		VibratoFreq:  effects.DefaultFrequency,
		Bitrate:      64000,
	}
}

func writeWav(t *testing.T, f pcm.Format, frames int) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "in.wav")
	out, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	w, err := wav.NewWriter(out, f)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := io.Copy(w, audiotest.NewSineSource(f, frames, 440, 0.5)); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRawFormat(t *testing.T) {
	t.Parallel()

	cfg := baseConfig()
	cfg.InputType = "s32be"
	cfg.InputRate = 22050
	cfg.InputChans = 1

	got, err := rawFormat(cfg)
	if err != nil {
		t.Fatalf("rawFormat() error = %v", err)
	}
	want := pcm.Format{BitDepth: 32, Endian: pcm.BigEndian, SampleRate: 22050, Channels: 1}
	if got != want {
		t.Errorf("rawFormat() = %v, want %v", got, want)
	}

	cfg.InputType = "f32le"
	if _, err := rawFormat(cfg); !errors.Is(err, pcm.ErrUnsupportedType) {
		t.Errorf("rawFormat() error = %v, want pcm.ErrUnsupportedType", err)
	}
}

func TestRegistry(t *testing.T) {
	t.Parallel()

	reg := newRegistry(pcm.S16LE)
	for _, path := range []string{"a.wav", "b.AIF", "c.mp3", "d.ogg", "e.dca", "f.pcm"} {
		if _, err := reg.ForPath(path); err != nil {
			t.Errorf("ForPath(%q) error = %v", path, err)
		}
	}
	if _, err := reg.ForPath("g.flac"); !errors.Is(err, audio.ErrUnknownFormat) {
		t.Errorf("ForPath(flac) error = %v, want audio.ErrUnknownFormat", err)
	}
}

func TestPipelineOptions(t *testing.T) {
	t.Parallel()

	log, _ := test.NewNullLogger()

	cfg := baseConfig()
	cfg.Filter = "highpass"
	cfg.Preset = "Rock"
	cfg.Bands = "0:2,9:-3"
	cfg.Effects = "8D,Tremolo"
	cfg.Volume = 80

	p, err := newPipeline(cfg, pcm.S16LE, log)
	if err != nil {
		t.Fatalf("newPipeline() error = %v", err)
	}
	if params, ok := p.Filter(); !ok || params.Cutoff != 80 {
		t.Errorf("Filter() = %+v, %v", params, ok)
	}
	if got := p.Effects(); len(got) != 2 {
		t.Errorf("Effects() = %v", got)
	}
	if got := p.Volume(); got != 80 {
		t.Errorf("Volume() = %v, want 80", got)
	}
	if eq := p.EQ(); eq[0].GainDB != 2 || eq[9].GainDB != -3 {
		t.Errorf("EQ() = %v", eq)
	}

	bad := []func(*config.Config){
		func(c *config.Config) { c.Filter = "wobble" },
		func(c *config.Config) { c.Preset = "Polka" },
		func(c *config.Config) { c.Bands = "12:3" },
		func(c *config.Config) { c.Effects = "Chorus" },
		func(c *config.Config) { c.TremoloDepth = 2 },
	}
	for i, mutate := range bad {
		c := baseConfig()
		mutate(&c)
		if _, err := newPipeline(c, pcm.S16LE, log); err == nil {
			t.Errorf("case %d: newPipeline() error = nil, want error", i)
		}
	}
}

func TestRun_WavToWav(t *testing.T) {
	t.Parallel()

	f := pcm.Format{BitDepth: 16, SampleRate: 44100, Channels: 2}
	cfg := baseConfig()
	cfg.Input = writeWav(t, f, 4410)
	cfg.Output = filepath.Join(t.TempDir(), "out.wav")
	cfg.Rate = 48000
	cfg.Mono = true
	cfg.Preset = "BassBoost"
	cfg.Effects = "Vibrato"

	log, hook := test.NewNullLogger()
	if err := run(context.Background(), cfg, log); err != nil {
		t.Fatalf("run() error = %v", err)
	}

	in, err := os.Open(cfg.Output)
	if err != nil {
		t.Fatal(err)
	}
	src, err := wav.Decoder{}.Decode(in)
	if err != nil {
		t.Fatalf("Decode(output) error = %v", err)
	}
	defer src.Close()

	want := pcm.Format{BitDepth: 16, SampleRate: 48000, Channels: 1}
	if src.Format() != want {
		t.Errorf("output format = %v, want %v", src.Format(), want)
	}

	last := hook.LastEntry()
	if last == nil || last.Message != "done" || last.Level != logrus.InfoLevel {
		t.Fatalf("last log entry = %+v, want done", last)
	}
	if last.Data["samples"].(uint64) == 0 {
		t.Error("summary reports no samples")
	}
}

func TestRun_RawOutputAndCancel(t *testing.T) {
	t.Parallel()

	f := pcm.Format{BitDepth: 16, SampleRate: 48000, Channels: 2}
	cfg := baseConfig()
	cfg.Input = writeWav(t, f, 480)
	cfg.Output = filepath.Join(t.TempDir(), "out.pcm")
	cfg.Volume = 0

	log, _ := test.NewNullLogger()
	if err := run(context.Background(), cfg, log); err != nil {
		t.Fatalf("run() error = %v", err)
	}
	data, err := os.ReadFile(cfg.Output)
	if err != nil {
		t.Fatal(err)
	}
	if len(data) != 480*f.FrameSize() {
		t.Errorf("raw output = %d bytes, want %d", len(data), 480*f.FrameSize())
	}
	for i, b := range data {
		if b != 0 {
			t.Fatalf("byte %d = %d, want silence", i, b)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := run(ctx, cfg, log); !errors.Is(err, context.Canceled) {
		t.Errorf("run() with cancelled context error = %v, want context.Canceled", err)
	}
}

func TestOpenOutput_DcaNeedsOpusRate(t *testing.T) {
	t.Parallel()

	cfg := baseConfig()
	cfg.Output = filepath.Join(t.TempDir(), "out.dca")
	f := pcm.Format{BitDepth: 16, SampleRate: 44100, Channels: 2}

	if _, err := openOutput(cfg, f); err == nil {
		t.Error("openOutput(.dca at 44.1 kHz) error = nil, want error")
	}
	w, err := openOutput(cfg, pcm.S16LE)
	if err != nil {
		t.Fatalf("openOutput(.dca) error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}
