// SPDX-License-Identifier: EPL-2.0

package pipeline

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/ik5/audfx/biquad"
	"github.com/ik5/audfx/effects"
	"github.com/ik5/audfx/equalizer"
)

// Enable turns processing on.
func (p *Pipeline) Enable() {
	_ = p.update("enable", nil, func() error {
		p.enabled = true
		return nil
	})
}

// Disable puts the pipeline in bypass.
func (p *Pipeline) Disable() {
	_ = p.update("disable", nil, func() error {
		p.enabled = false
		return nil
	})
}

// Toggle flips between enabled and bypass and returns the new state.
func (p *Pipeline) Toggle() bool {
	var on bool
	_ = p.update("toggle", nil, func() error {
		p.enabled = !p.enabled
		on = p.enabled
		return nil
	})
	return on
}

// Enabled reports whether chunks are being filtered.
func (p *Pipeline) Enabled() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.enabled
}

// setFilter installs coefficients for params on every channel. A detached
// filter starts with a zeroed delay line; an attached one keeps its state.
func (p *Pipeline) setFilter(params biquad.Params) error {
	if _, err := biquad.Design(params); err != nil {
		return err
	}

	if p.filter == nil {
		bank := make(filterBank, p.format.Channels)
		for i := range bank {
			f, err := biquad.New(params)
			if err != nil {
				return err
			}
			bank[i] = f
		}
		p.filter = bank
	} else {
		for _, f := range p.filter {
			if err := f.SetCoefficients(params); err != nil {
				return err
			}
		}
	}

	p.filterParams = params
	return nil
}

func filterFields(params biquad.Params) logrus.Fields {
	return logrus.Fields{
		"shape":  params.Shape.String(),
		"cutoff": params.Cutoff,
		"q":      params.Q,
		"gain":   params.GainDB,
	}
}

// SetFilter attaches or reconfigures the biquad stage.
func (p *Pipeline) SetFilter(shape biquad.Shape, cutoff, q, gainDB float64) error {
	params := biquad.Params{
		Shape:      shape,
		SampleRate: float64(p.format.SampleRate),
		Cutoff:     cutoff,
		Q:          q,
		GainDB:     gainDB,
	}
	return p.update("set_filter", filterFields(params), func() error {
		return p.setFilter(params)
	})
}

// patchFilter changes one filter parameter, keeping the others. A detached
// filter starts from the defaults (lowpass, 80 Hz, Butterworth Q, 0 dB).
func (p *Pipeline) patchFilter(op string, field string, value any, patch func(*biquad.Params)) error {
	return p.update(op, logrus.Fields{field: value}, func() error {
		params := p.filterParams
		patch(&params)
		return p.setFilter(params)
	})
}

// SetShape changes only the filter shape.
func (p *Pipeline) SetShape(s biquad.Shape) error {
	return p.patchFilter("set_shape", "shape", s.String(), func(b *biquad.Params) { b.Shape = s })
}

// SetCutoff changes only the filter cutoff in Hz.
func (p *Pipeline) SetCutoff(hz float64) error {
	return p.patchFilter("set_cutoff", "cutoff", hz, func(b *biquad.Params) { b.Cutoff = hz })
}

// SetQ changes only the filter Q.
func (p *Pipeline) SetQ(q float64) error {
	return p.patchFilter("set_q", "q", q, func(b *biquad.Params) { b.Q = q })
}

// SetFilterGain changes only the filter gain in dB.
func (p *Pipeline) SetFilterGain(db float64) error {
	return p.patchFilter("set_filter_gain", "gain", db, func(b *biquad.Params) { b.GainDB = db })
}

// ClearFilter detaches the biquad stage and drops its state.
func (p *Pipeline) ClearFilter() {
	_ = p.update("clear_filter", nil, func() error {
		p.filter = nil
		return nil
	})
}

// Filter returns the current filter parameters and whether the stage is
// attached.
func (p *Pipeline) Filter() (biquad.Params, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.filterParams, p.filter != nil
}

// FilterState returns the delay line of the biquad for channel ch.
func (p *Pipeline) FilterState(ch int) (biquad.State, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.filter == nil || ch < 0 || ch >= len(p.filter) {
		return biquad.State{}, fmt.Errorf("%w: no filter on channel %d", biquad.ErrInvalidParameter, ch)
	}
	return p.filter[ch].State(), nil
}

// SetEQBand sets one equalizer band's gain in dB.
func (p *Pipeline) SetEQBand(band int, gainDB float64) error {
	return p.update("set_eq_band", logrus.Fields{"band": band, "gain": gainDB}, func() error {
		return p.eq.SetGain(band, gainDB)
	})
}

// SetEQ sets several equalizer bands at once. Nothing is applied unless
// every band is valid.
func (p *Pipeline) SetEQ(bands []equalizer.Band) error {
	return p.update("set_eq", logrus.Fields{"bands": len(bands)}, func() error {
		return p.eq.SetBands(bands)
	})
}

// ApplyPreset sets every equalizer band from a named preset.
func (p *Pipeline) ApplyPreset(name string) error {
	return p.update("apply_preset", logrus.Fields{"preset": name}, func() error {
		return p.eq.ApplyPreset(name)
	})
}

// ResetEQ sets every equalizer band to 0 dB.
func (p *Pipeline) ResetEQ() {
	_ = p.update("reset_eq", nil, func() error {
		p.eq.ResetAll()
		return nil
	})
}

// EQ returns every band's gain.
func (p *Pipeline) EQ() []equalizer.Band {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.eq.Bands()
}

// SetEffects replaces the active effect list by name, keeping its order.
// An empty list disables every effect.
func (p *Pipeline) SetEffects(names ...string) error {
	return p.update("set_effects", logrus.Fields{"effects": names}, func() error {
		return p.fx.SetEffectNames(names...)
	})
}

// Effects returns the active effect list.
func (p *Pipeline) Effects() []effects.Effect {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.fx.Effects()
}

// SetPulsatorRate sets the 8D sweep rate in Hz.
func (p *Pipeline) SetPulsatorRate(hz float64) error {
	return p.update("set_pulsator_rate", logrus.Fields{"hz": hz}, func() error {
		return p.fx.SetPulsatorRate(hz)
	})
}

// SetTremolo updates the tremolo oscillator.
func (p *Pipeline) SetTremolo(opts ...effects.LFOOption) error {
	return p.update("set_tremolo", nil, func() error {
		return p.fx.SetTremolo(opts...)
	})
}

// SetVibrato updates the vibrato oscillator.
func (p *Pipeline) SetVibrato(opts ...effects.LFOOption) error {
	return p.update("set_vibrato", nil, func() error {
		return p.fx.SetVibrato(opts...)
	})
}

// Tremolo returns the tremolo oscillator.
func (p *Pipeline) Tremolo() effects.LFO {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.fx.TremoloLFO()
}

// Vibrato returns the vibrato oscillator.
func (p *Pipeline) Vibrato() effects.LFO {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.fx.VibratoLFO()
}

// PulsatorPhase returns the 8D pan phase seen by channel ch.
func (p *Pipeline) PulsatorPhase(ch int) float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.fx.PulsatorPhase(ch)
}

// SetTargetSampleRate times the oscillators against hz instead of the
// stream rate. Zero restores the stream rate.
func (p *Pipeline) SetTargetSampleRate(hz float64) error {
	return p.update("set_target_sample_rate", logrus.Fields{"hz": hz}, func() error {
		return p.fx.SetTargetSampleRate(hz)
	})
}

// SetVolume sets the output volume in percent. NaN is rejected; negative
// values clamp to 0 and +Inf to 100.
func (p *Pipeline) SetVolume(percent float64) error {
	return p.update("set_volume", logrus.Fields{"percent": percent}, func() error {
		return p.vol.SetPercent(percent)
	})
}

// Volume returns the output volume in percent.
func (p *Pipeline) Volume() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.vol.Percent()
}

// Stages returns how many stages are attached.
func (p *Pipeline) Stages() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.stages)
}
