// SPDX-License-Identifier: EPL-2.0

// Command audfx filters an audio file or PCM stream through the effect
// pipeline and writes, plays, or both.
//
//	audfx -in song.mp3 -out out.wav -eq Rock -effects 8D,Tremolo -volume 80
//	audfx -in voice.wav -out voice.dca -rate 48000 -filter highpass -cutoff 120
//	cat raw.pcm | audfx -in - -in-type s16le -out - -effects BassBoost
//
// Settings are read from .env, then AUDFX_* environment variables, then
// flags.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ik5/audfx"
	"github.com/ik5/audfx/audio"
	"github.com/ik5/audfx/internal/config"
	"github.com/ik5/audfx/pipeline"
	"github.com/ik5/audfx/playback"
)

func main() {
	cfg, err := config.Load(config.DefaultEnvFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	cfg.RegisterFlags(flag.CommandLine)
	flag.Parse()

	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		flag.Usage()
		os.Exit(2)
	}

	log := newLogger(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.WithError(err).Error("audfx failed")
		os.Exit(1)
	}
}

func newLogger(level string) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if lvl, err := logrus.ParseLevel(level); err == nil {
		log.SetLevel(lvl)
	}
	return log
}

func run(ctx context.Context, cfg config.Config, log *logrus.Logger) error {
	started := time.Now()

	src, err := openInput(ctx, cfg)
	if err != nil {
		return err
	}
	defer src.Close()
	log.WithFields(logrus.Fields{"input": cfg.Input, "format": src.Format().String()}).Info("decoding")

	src, err = audfx.Conversion{
		Rate:  cfg.Rate,
		Speed: cfg.Speed(),
		Mono:  cfg.Mono,
		Type:  cfg.Type,
	}.Apply(src)
	if err != nil {
		return err
	}

	p, err := newPipeline(cfg, src.Format(), log)
	if err != nil {
		return err
	}

	var out io.WriteCloser
	if cfg.Output != "" {
		out, err = openOutput(cfg, src.Format())
		if err != nil {
			return err
		}
	}

	if cfg.Play {
		err = play(ctx, src, p, out)
	} else {
		_, err = audfx.Process(out, contextSource{ctx: ctx, Source: src}, p, 0)
	}
	if out != nil {
		err = errors.Join(err, out.Close())
	}
	if err != nil {
		return err
	}

	st := p.Stats()
	log.WithFields(logrus.Fields{
		"stream":   st.ID.String(),
		"output":   cfg.Output,
		"format":   st.Format.String(),
		"samples":  st.TotalSamples,
		"chunks":   st.ProcessedChunks,
		"duration": st.Duration.Round(time.Millisecond),
		"elapsed":  time.Since(started).Round(time.Millisecond),
	}).Info("done")

	return nil
}

// play streams the filtered audio to the sound device, copying it to out
// when one is given.
func play(ctx context.Context, src audio.Source, p *pipeline.Pipeline, out io.Writer) error {
	var r io.Reader = pipeline.NewReader(contextSource{ctx: ctx, Source: src}, p)
	if out != nil {
		r = io.TeeReader(r, out)
	}

	pl, err := playback.New(r, p.Format())
	if err != nil {
		return err
	}
	defer pl.Close()

	pl.Play()
	return pl.Wait(ctx.Done())
}
