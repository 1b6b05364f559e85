// SPDX-License-Identifier: EPL-2.0

package effects

import (
	"fmt"
	"math"

	"github.com/ik5/audfx/biquad"
)

const (
	twoPi = 2 * math.Pi

	// DefaultDepth and DefaultFrequency seed the tremolo and vibrato
	// oscillators.
	DefaultDepth     = 0.5
	DefaultFrequency = 5.0
)

// LFO is the public view of an oscillator: depth in [0, 1], frequency in Hz
// and the current phase in radians, in [0, 2π).
type LFO struct {
	Depth     float64 `json:"depth"`
	Frequency float64 `json:"frequency"`
	Phase     float64 `json:"phase"`
}

// DefaultLFO is the oscillator every engine starts with.
var DefaultLFO = LFO{Depth: DefaultDepth, Frequency: DefaultFrequency}

// LFOOption mutates an oscillator setting. Options validate their argument.
type LFOOption func(*LFO) error

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

// WithDepth sets modulation depth in [0, 1].
func WithDepth(depth float64) LFOOption {
	return func(l *LFO) error {
		if depth < 0 || depth > 1 || !finite(depth) {
			return fmt.Errorf("%w: depth must be in [0, 1]: %v", biquad.ErrInvalidParameter, depth)
		}
		l.Depth = depth
		return nil
	}
}

// WithFrequency sets modulation speed in Hz.
func WithFrequency(hz float64) LFOOption {
	return func(l *LFO) error {
		if hz <= 0 || !finite(hz) {
			return fmt.Errorf("%w: frequency must be > 0 and finite: %v", biquad.ErrInvalidParameter, hz)
		}
		l.Frequency = hz
		return nil
	}
}

// WithPhase sets the oscillator phase in radians. Any finite value is
// accepted and wrapped into [0, 2π).
func WithPhase(rad float64) LFOOption {
	return func(l *LFO) error {
		if !finite(rad) {
			return fmt.Errorf("%w: phase must be finite: %v", biquad.ErrInvalidParameter, rad)
		}
		l.Phase = wrapPhase(rad)
		return nil
	}
}

// apply returns l with opts applied, or l unchanged and the first error.
func (l LFO) apply(opts []LFOOption) (LFO, error) {
	next := l
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&next); err != nil {
			return l, err
		}
	}
	return next, nil
}

// envelope is the unipolar oscillator output (1+sin φ)/2 in [0, 1].
func (l *LFO) envelope() float64 {
	return 0.5 * (1 + math.Sin(l.Phase))
}

func (l *LFO) advance(step float64) {
	l.Phase += step
	if l.Phase >= twoPi {
		l.Phase = wrapPhase(l.Phase)
	}
}

func wrapPhase(p float64) float64 {
	p = math.Mod(p, twoPi)
	if p < 0 {
		p += twoPi
	}
	return p
}
