// SPDX-License-Identifier: EPL-2.0

// Package biquad implements a single stateful second-order IIR filter stage.
//
// Coefficients are designed from a [Params] value (shape, sample rate,
// cutoff, Q and gain) with the RBJ audio-EQ cookbook formulas and normalized
// so that a0 == 1. A [Filter] runs the direct form I recurrence
//
//	y = b0*x + b1*x1 + b2*x2 - a1*y1 - a2*y2
//
// in floating point; rounding and clamping to the integer sample domain is
// left to the caller.
//
// Reconfiguring a Filter replaces its coefficients but keeps the delay line
// ([State]) so a parameter sweep does not click.
//
//	f, err := biquad.New(biquad.Params{
//	    Shape:      biquad.Lowpass,
//	    SampleRate: 48000,
//	    Cutoff:     1000,
//	    Q:          biquad.DefaultQ,
//	})
//	y := f.Process(x)
//	err = f.SetCutoff(2000) // state preserved
package biquad
