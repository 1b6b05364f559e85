// SPDX-License-Identifier: EPL-2.0

// Package equalizer implements a ten band graphic equalizer.
//
// Each band is a peaking biquad at a fixed octave center (31.25 Hz through
// 16 kHz) with a fixed Q. Every audio channel owns its own cascade of band
// filters, so left and right never share a delay line:
//
//	eq, _ := equalizer.New(48000, 2)
//	_ = eq.SetGain(0, 6)          // +6 dB at 31.25 Hz
//	_ = eq.ApplyPreset("Rock")
//	y := eq.Process(1, x)        // right channel
//	eq.ResetAll()                 // every band back to 0 dB
//
// Gain changes redesign only the affected band and keep its filter state.
// Bands whose center sits at or above the Nyquist frequency of a low sample
// rate cannot be realized and stay transparent.
package equalizer
