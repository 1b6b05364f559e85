// SPDX-License-Identifier: EPL-2.0

package biquad

import (
	"fmt"
	"math"
)

const (
	// DefaultQ is the Butterworth quality factor, 1/sqrt(2).
	DefaultQ = 1 / math.Sqrt2
	// DefaultCutoff is the cutoff used when none is configured.
	DefaultCutoff = 80.0
)

// Coefficients of one normalized second-order section (a0 == 1).
type Coefficients struct {
	B0, B1, B2 float64 // feedforward
	A1, A2     float64 // feedback
}

// Identity is the pass-through section.
var Identity = Coefficients{B0: 1}

// Params fully determine a section's coefficients.
type Params struct {
	Shape      Shape
	SampleRate float64 // Hz
	Cutoff     float64 // Hz; center frequency for bandpass/notch/peaking
	Q          float64
	GainDB     float64 // peaking and shelf shapes only
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

// Validate reports whether p describes a realizable section.
func (p Params) Validate() error {
	if !p.Shape.Valid() {
		return fmt.Errorf("%w: %s", ErrInvalidParameter, p.Shape)
	}
	if p.SampleRate <= 0 || !finite(p.SampleRate) {
		return fmt.Errorf("%w: sample rate %v", ErrInvalidParameter, p.SampleRate)
	}
	if p.Cutoff <= 0 || !finite(p.Cutoff) {
		return fmt.Errorf("%w: cutoff %v must be > 0", ErrInvalidParameter, p.Cutoff)
	}
	if p.Cutoff >= p.SampleRate/2 {
		return fmt.Errorf("%w: cutoff %v must be below Nyquist %v", ErrInvalidParameter, p.Cutoff, p.SampleRate/2)
	}
	if p.Q <= 0 || !finite(p.Q) {
		return fmt.Errorf("%w: Q %v must be > 0", ErrInvalidParameter, p.Q)
	}
	if !finite(p.GainDB) {
		return fmt.Errorf("%w: gain %v dB", ErrInvalidParameter, p.GainDB)
	}
	return nil
}

// Design computes the normalized cookbook coefficients for p. The gain is
// ignored by shapes that do not use it, but it is still validated.
func Design(p Params) (Coefficients, error) {
	if err := p.Validate(); err != nil {
		return Coefficients{}, err
	}

	w0 := 2 * math.Pi * p.Cutoff / p.SampleRate
	cw := math.Cos(w0)
	sw := math.Sin(w0)
	alpha := sw / (2 * p.Q)
	a := math.Pow(10, p.GainDB/40)

	var b0, b1, b2, a0, a1, a2 float64

	switch p.Shape {
	case Lowpass:
		b0 = (1 - cw) / 2
		b1 = 1 - cw
		b2 = (1 - cw) / 2
		a0 = 1 + alpha
		a1 = -2 * cw
		a2 = 1 - alpha
	case Highpass:
		b0 = (1 + cw) / 2
		b1 = -(1 + cw)
		b2 = (1 + cw) / 2
		a0 = 1 + alpha
		a1 = -2 * cw
		a2 = 1 - alpha
	case Bandpass:
		// constant 0 dB peak gain
		b0 = alpha
		b1 = 0
		b2 = -alpha
		a0 = 1 + alpha
		a1 = -2 * cw
		a2 = 1 - alpha
	case Notch:
		b0 = 1
		b1 = -2 * cw
		b2 = 1
		a0 = 1 + alpha
		a1 = -2 * cw
		a2 = 1 - alpha
	case Allpass:
		b0 = 1 - alpha
		b1 = -2 * cw
		b2 = 1 + alpha
		a0 = 1 + alpha
		a1 = -2 * cw
		a2 = 1 - alpha
	case Peaking:
		b0 = 1 + alpha*a
		b1 = -2 * cw
		b2 = 1 - alpha*a
		a0 = 1 + alpha/a
		a1 = -2 * cw
		a2 = 1 - alpha/a
	case LowShelf:
		beta := 2 * math.Sqrt(a) * alpha
		b0 = a * ((a + 1) - (a-1)*cw + beta)
		b1 = 2 * a * ((a - 1) - (a+1)*cw)
		b2 = a * ((a + 1) - (a-1)*cw - beta)
		a0 = (a + 1) + (a-1)*cw + beta
		a1 = -2 * ((a - 1) + (a+1)*cw)
		a2 = (a + 1) + (a-1)*cw - beta
	case HighShelf:
		beta := 2 * math.Sqrt(a) * alpha
		b0 = a * ((a + 1) + (a-1)*cw + beta)
		b1 = -2 * a * ((a - 1) + (a+1)*cw)
		b2 = a * ((a + 1) + (a-1)*cw - beta)
		a0 = (a + 1) - (a-1)*cw + beta
		a1 = 2 * ((a - 1) - (a+1)*cw)
		a2 = (a + 1) - (a-1)*cw - beta
	}

	return Coefficients{
		B0: b0 / a0,
		B1: b1 / a0,
		B2: b2 / a0,
		A1: a1 / a0,
		A2: a2 / a0,
	}, nil
}

// MagnitudeSquared returns |H(f)|^2 at freqHz.
func (c Coefficients) MagnitudeSquared(freqHz, sampleRate float64) float64 {
	cw := 2 * math.Cos(2*math.Pi*freqHz/sampleRate)
	b0, b1, b2 := c.B0, c.B1, c.B2
	a1, a2 := c.A1, c.A2

	num := (b0-b2)*(b0-b2) + b1*b1 + (b1*(b0+b2)+b0*b2*cw)*cw
	den := (1-a2)*(1-a2) + a1*a1 + (a1*(a2+1)+cw*a2)*cw
	return num / den
}

// MagnitudeDB returns the response at freqHz in decibels.
func (c Coefficients) MagnitudeDB(freqHz, sampleRate float64) float64 {
	return 10 * math.Log10(c.MagnitudeSquared(freqHz, sampleRate))
}
