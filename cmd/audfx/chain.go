// SPDX-License-Identifier: EPL-2.0

package main

import (
	"github.com/sirupsen/logrus"

	"github.com/ik5/audfx/biquad"
	"github.com/ik5/audfx/effects"
	"github.com/ik5/audfx/equalizer"
	"github.com/ik5/audfx/internal/config"
	"github.com/ik5/audfx/pcm"
	"github.com/ik5/audfx/pipeline"
)

// pipelineOptions translates cfg into pipeline options.
func pipelineOptions(cfg config.Config, log logrus.FieldLogger) ([]pipeline.Option, error) {
	opts := []pipeline.Option{
		pipeline.WithLogger(log),
		pipeline.WithPulsatorRate(cfg.PulsatorRate),
		pipeline.WithTremolo(effects.WithDepth(cfg.TremoloDepth), effects.WithFrequency(cfg.TremoloFreq)),
		pipeline.WithVibrato(effects.WithDepth(cfg.VibratoDepth), effects.WithFrequency(cfg.VibratoFreq)),
		pipeline.WithVolume(cfg.Volume),
	}

	if cfg.Filter != "" {
		shape, err := biquad.ParseShape(cfg.Filter)
		if err != nil {
			return nil, err
		}
		opts = append(opts, pipeline.WithFilter(shape, cfg.Cutoff, cfg.Q, cfg.FilterGain))
	}

	if cfg.Preset != "" {
		opts = append(opts, pipeline.WithEqualizer(cfg.Preset))
	}

	gains, err := cfg.BandGains()
	if err != nil {
		return nil, err
	}
	if len(gains) > 0 {
		bands := make([]equalizer.Band, 0, len(gains))
		for i, g := range gains {
			bands = append(bands, equalizer.Band{Index: i, GainDB: g})
		}
		opts = append(opts, pipeline.WithEQBands(bands...))
	}

	if fx := cfg.EffectList(); len(fx) > 0 {
		opts = append(opts, pipeline.WithEffects(fx...))
	}

	if cfg.Bypass {
		opts = append(opts, pipeline.WithDisabled())
	}

	return opts, nil
}

func newPipeline(cfg config.Config, f pcm.Format, log *logrus.Logger) (*pipeline.Pipeline, error) {
	opts, err := pipelineOptions(cfg, log)
	if err != nil {
		return nil, err
	}

	opts = append(opts, pipeline.WithOnUpdate(func(st pipeline.State) {
		log.WithFields(logrus.Fields{
			"stream":  st.ID.String(),
			"enabled": st.Enabled,
		}).Debug("pipeline updated")
	}))

	return pipeline.New(f, opts...)
}
