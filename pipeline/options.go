// SPDX-License-Identifier: EPL-2.0

package pipeline

import (
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ik5/audfx/biquad"
	"github.com/ik5/audfx/effects"
	"github.com/ik5/audfx/equalizer"
)

// Option configures a Pipeline at construction. Options never fire the
// update callback.
type Option func(*Pipeline) error

// WithFilter attaches a biquad stage.
func WithFilter(shape biquad.Shape, cutoff, q, gainDB float64) Option {
	return func(p *Pipeline) error {
		return p.setFilter(biquad.Params{
			Shape:      shape,
			SampleRate: float64(p.format.SampleRate),
			Cutoff:     cutoff,
			Q:          q,
			GainDB:     gainDB,
		})
	}
}

// WithEqualizer applies a named equalizer preset.
func WithEqualizer(preset string) Option {
	return func(p *Pipeline) error { return p.eq.ApplyPreset(preset) }
}

// WithEQBands sets individual equalizer bands.
func WithEQBands(bands ...equalizer.Band) Option {
	return func(p *Pipeline) error { return p.eq.SetBands(bands) }
}

// WithEffects activates effects by name, in the given order.
func WithEffects(names ...string) Option {
	return func(p *Pipeline) error { return p.fx.SetEffectNames(names...) }
}

// WithPulsatorRate sets the 8D sweep rate in Hz.
func WithPulsatorRate(hz float64) Option {
	return func(p *Pipeline) error { return p.fx.SetPulsatorRate(hz) }
}

// WithTremolo configures the tremolo oscillator.
func WithTremolo(opts ...effects.LFOOption) Option {
	return func(p *Pipeline) error { return p.fx.SetTremolo(opts...) }
}

// WithVibrato configures the vibrato oscillator.
func WithVibrato(opts ...effects.LFOOption) Option {
	return func(p *Pipeline) error { return p.fx.SetVibrato(opts...) }
}

// WithVolume sets the volume percentage.
func WithVolume(percent float64) Option {
	return func(p *Pipeline) error { return p.vol.SetPercent(percent) }
}

// WithDisabled starts the pipeline in bypass.
func WithDisabled() Option {
	return func(p *Pipeline) error {
		p.enabled = false
		return nil
	}
}

// WithOnUpdate sets the callback fired after every successful control call.
func WithOnUpdate(fn func(State)) Option {
	return func(p *Pipeline) error {
		p.onUpdate = fn
		return nil
	}
}

// WithLogger sets the logger control calls are reported to. The default is
// the logrus standard logger.
func WithLogger(l logrus.FieldLogger) Option {
	return func(p *Pipeline) error {
		if l != nil {
			p.baseLog = l
		}
		return nil
	}
}

// WithID sets the stream identifier used in log entries.
func WithID(id uuid.UUID) Option {
	return func(p *Pipeline) error {
		p.id = id
		return nil
	}
}
