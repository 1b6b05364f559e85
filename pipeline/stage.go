// SPDX-License-Identifier: EPL-2.0

package pipeline

import (
	"github.com/ik5/audfx/biquad"
	"github.com/ik5/audfx/effects"
	"github.com/ik5/audfx/equalizer"
	"github.com/ik5/audfx/volume"
)

// Stage transforms one sample of channel ch.
type Stage interface {
	Process(x float64, ch int) float64
}

// StageFunc adapts a function to Stage.
type StageFunc func(x float64, ch int) float64

// Process calls f.
func (f StageFunc) Process(x float64, ch int) float64 { return f(x, ch) }

// filterBank is one biquad per channel sharing the same coefficients.
type filterBank []*biquad.Filter

func (b filterBank) Process(x float64, ch int) float64 { return b[ch].Process(x) }

type eqStage struct{ eq *equalizer.Equalizer }

func (s eqStage) Process(x float64, ch int) float64 { return s.eq.Process(ch, x) }

type effectStage struct{ e *effects.Engine }

func (s effectStage) Process(x float64, ch int) float64 { return s.e.Apply(x, ch) }

type volumeStage struct{ v *volume.Volume }

func (s volumeStage) Process(x float64, _ int) float64 { return s.v.Process(x) }

// rebuild recomputes the ordered list of attached stages. Stages that would
// leave every sample unchanged are left out. An equalizer that comes back
// after being left out starts from silence, not from its old history.
func (p *Pipeline) rebuild() {
	stages := p.stages[:0]

	if p.filter != nil {
		stages = append(stages, p.filter)
	}
	attach := !p.eq.IsFlat()
	if attach {
		if !p.eqAttached {
			p.eq.Reset()
		}
		stages = append(stages, eqStage{p.eq})
	}
	p.eqAttached = attach
	if p.fx.Active() {
		stages = append(stages, effectStage{p.fx})
	}
	if !p.vol.IsUnity() {
		stages = append(stages, volumeStage{p.vol})
	}

	p.stages = stages
}
