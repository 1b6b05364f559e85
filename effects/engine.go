// SPDX-License-Identifier: EPL-2.0

package effects

import (
	"fmt"
	"slices"

	"github.com/ik5/audfx/biquad"
	"github.com/ik5/audfx/equalizer"
)

const (
	// BassBoostBands is how many of the lowest equalizer bands the bass
	// boost lifts.
	BassBoostBands = 3
	// BassBoostGainDB is the lift applied to each of those bands.
	BassBoostGainDB = 6.0
)

// Engine applies an ordered list of effects to an interleaved stream. It is
// not safe for concurrent use.
type Engine struct {
	streamRate float64
	targetRate float64 // 0 means streamRate
	channels   int

	active []Effect
	on     [len(effectNames)]bool

	pulse pulsator
	trem  tremolo
	vib   vibrato
	bass  *equalizer.Equalizer
}

// New returns an engine with no active effect for a stream of the given
// sample rate and channel count.
func New(sampleRate float64, channels int) (*Engine, error) {
	if channels < 1 {
		return nil, fmt.Errorf("%w: %d channels", ErrInvalidStream, channels)
	}
	if sampleRate <= 0 || !finite(sampleRate) {
		return nil, fmt.Errorf("%w: sample rate %v", ErrInvalidStream, sampleRate)
	}

	bass, err := equalizer.New(sampleRate, channels)
	if err != nil {
		return nil, err
	}
	for b := range BassBoostBands {
		if err := bass.SetGain(b, BassBoostGainDB); err != nil {
			return nil, err
		}
	}

	e := &Engine{
		streamRate: sampleRate,
		channels:   channels,
		trem:       tremolo{lfo: DefaultLFO},
		vib:        newVibrato(sampleRate, channels),
		bass:       bass,
	}
	e.retune()

	return e, nil
}

func (e *Engine) rate() float64 {
	if e.targetRate > 0 {
		return e.targetRate
	}
	return e.streamRate
}

// retune recomputes every phase step from the effective rate.
func (e *Engine) retune() {
	r := e.rate()
	e.pulse.retune(r)

	perCall := twoPi / (r * float64(e.channels))
	e.trem.step = e.trem.lfo.Frequency * perCall
	e.vib.step = e.vib.lfo.Frequency * perCall
}

// SetEffects replaces the active list. Order is kept as given; an empty
// list disables every effect.
func (e *Engine) SetEffects(list ...Effect) error {
	var seen [len(effectNames)]bool
	for _, fx := range list {
		if !fx.Valid() {
			return fmt.Errorf("%w: %s", ErrUnknownEffect, fx)
		}
		if seen[fx] {
			return fmt.Errorf("%w: %s", ErrDuplicateEffect, fx)
		}
		seen[fx] = true
	}

	// Effects with history restart from silence when switched on.
	if seen[BassBoost] && !e.on[BassBoost] {
		e.bass.Reset()
	}
	if seen[Vibrato] && !e.on[Vibrato] {
		e.vib.reset()
	}

	e.active = slices.Clone(list)
	e.on = seen
	return nil
}

// SetEffectNames parses names with ParseEffect and calls SetEffects.
func (e *Engine) SetEffectNames(names ...string) error {
	list, err := ParseEffects(names)
	if err != nil {
		return err
	}
	return e.SetEffects(list...)
}

// Effects returns a copy of the active list.
func (e *Engine) Effects() []Effect { return slices.Clone(e.active) }

// Active reports whether any effect is enabled.
func (e *Engine) Active() bool { return len(e.active) > 0 }

// Has reports whether fx is in the active list.
func (e *Engine) Has(fx Effect) bool { return fx.Valid() && e.on[fx] }

// SetPulsatorRate sets the 8D sweep rate in Hz. Zero freezes the pan.
func (e *Engine) SetPulsatorRate(hz float64) error {
	if hz < 0 || !finite(hz) {
		return fmt.Errorf("%w: pulsator rate must be >= 0 and finite: %v", biquad.ErrInvalidParameter, hz)
	}
	e.pulse.hz = hz
	e.pulse.retune(e.rate())
	return nil
}

// PulsatorRate returns the 8D sweep rate in Hz.
func (e *Engine) PulsatorRate() float64 { return e.pulse.hz }

// PulsatorStep returns the pulsator phase increment per frame, in radians.
func (e *Engine) PulsatorStep() float64 { return e.pulse.dI }

// PulsatorPhase returns the pan phase of a channel in radians. Odd channels
// are offset by π from even ones.
func (e *Engine) PulsatorPhase(ch int) float64 { return e.pulse.phase(ch) }

// SetTremolo updates the tremolo oscillator. Options not given keep their
// current value; on error nothing changes. The frequency is in cycles per
// second of frames: the phase moves by 2π·hz/rate over one whole frame.
func (e *Engine) SetTremolo(opts ...LFOOption) error {
	lfo, err := e.trem.lfo.apply(opts)
	if err != nil {
		return err
	}
	e.trem.lfo = lfo
	e.retune()
	return nil
}

// TremoloLFO returns the tremolo oscillator settings and phase.
func (e *Engine) TremoloLFO() LFO { return e.trem.lfo }

// SetVibrato updates the vibrato oscillator, like SetTremolo.
func (e *Engine) SetVibrato(opts ...LFOOption) error {
	lfo, err := e.vib.lfo.apply(opts)
	if err != nil {
		return err
	}
	e.vib.lfo = lfo
	e.retune()
	return nil
}

// VibratoLFO returns the vibrato oscillator settings and phase.
func (e *Engine) VibratoLFO() LFO { return e.vib.lfo }

// SetTargetSampleRate sets the rate the oscillators are timed against, for
// streams that will be resampled downstream. Zero restores the stream rate.
func (e *Engine) SetTargetSampleRate(hz float64) error {
	if hz < 0 || !finite(hz) {
		return fmt.Errorf("%w: target sample rate %v", biquad.ErrInvalidParameter, hz)
	}
	e.targetRate = hz
	e.retune()
	return nil
}

// TargetSampleRate returns the rate the oscillators are timed against.
func (e *Engine) TargetSampleRate() float64 { return e.rate() }

// SampleRate returns the stream sample rate.
func (e *Engine) SampleRate() float64 { return e.streamRate }

// Channels returns the stream channel count.
func (e *Engine) Channels() int { return e.channels }

// Apply runs x, a sample of channel ch, through every active effect in list
// order and advances each active oscillator once.
func (e *Engine) Apply(x float64, ch int) float64 {
	if len(e.active) == 0 {
		return x
	}

	n := e.channels
	ch %= n
	if ch < 0 {
		ch += n
	}

	for _, fx := range e.active {
		switch fx {
		case EightD:
			x *= e.pulse.gain(ch)
		case Tremolo:
			x = e.trem.process(x)
		case Vibrato:
			x = e.vib.process(x, ch)
		case BassBoost:
			x = e.bass.Process(ch, x)
		}
	}

	if e.on[Tremolo] {
		e.trem.lfo.advance(e.trem.step)
	}
	if e.on[Vibrato] {
		e.vib.lfo.advance(e.vib.step)
	}
	// The pan steps once per frame, after its last channel.
	if e.on[EightD] && ch == n-1 {
		e.pulse.step()
	}

	return x
}
