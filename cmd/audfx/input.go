// SPDX-License-Identifier: EPL-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/ik5/audfx/audio"
	"github.com/ik5/audfx/formats/aiff"
	"github.com/ik5/audfx/formats/ffmpeg"
	"github.com/ik5/audfx/formats/mp3"
	"github.com/ik5/audfx/formats/opus"
	"github.com/ik5/audfx/formats/vorbis"
	"github.com/ik5/audfx/formats/wav"
	"github.com/ik5/audfx/internal/config"
	"github.com/ik5/audfx/pcm"
)

const stdio = "-"

// rawFormat is the layout of headerless input.
func rawFormat(cfg config.Config) (pcm.Format, error) {
	f, err := pcm.ParseType(cfg.InputType)
	if err != nil {
		return pcm.Format{}, err
	}
	f.SampleRate = cfg.InputRate
	f.Channels = cfg.InputChans
	if err := f.Validate(); err != nil {
		return pcm.Format{}, err
	}
	return f, nil
}

func newRegistry(raw pcm.Format) *audio.Registry {
	reg := audio.NewRegistry()
	reg.Register(wav.Decoder{}, "wav", "wave")
	reg.Register(aiff.Decoder{}, "aiff", "aif")
	reg.Register(mp3.Decoder{}, "mp3")
	reg.Register(vorbis.Decoder{}, "ogg", "oga")
	reg.Register(opus.Decoder{}, "dca")
	reg.Register(audio.RawDecoder{Format: raw}, "pcm", "raw")
	return reg
}

// openInput picks a native decoder by extension and falls back to ffmpeg.
func openInput(ctx context.Context, cfg config.Config) (audio.Source, error) {
	raw, err := rawFormat(cfg)
	if err != nil {
		return nil, fmt.Errorf("raw input: %w", err)
	}

	if cfg.Input == stdio {
		src, err := audio.NewRawSource(os.Stdin, raw)
		if err != nil {
			return nil, err
		}
		return src, nil
	}

	dec, err := newRegistry(raw).ForPath(cfg.Input)
	if errors.Is(err, audio.ErrUnknownFormat) {
		return ffmpeg.Decoder{Binary: cfg.FFmpeg, Context: ctx}.DecodeFile(cfg.Input)
	}
	if err != nil {
		return nil, err
	}

	f, err := os.Open(cfg.Input)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	src, err := dec.Decode(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%s: %w", cfg.Input, err)
	}
	return src, nil
}

// contextSource stops a stream once ctx is cancelled.
type contextSource struct {
	ctx context.Context
	audio.Source
}

func (s contextSource) Read(p []byte) (int, error) {
	if err := s.ctx.Err(); err != nil {
		return 0, err
	}
	return s.Source.Read(p)
}
