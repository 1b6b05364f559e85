// SPDX-License-Identifier: EPL-2.0

// Package effects composes the LFO driven stream effects: the stereo "8D"
// pulsator, tremolo, vibrato and bass boost.
//
// An [Engine] holds an ordered list of active effects and applies them one
// after the other to every sample:
//
//	e, _ := effects.New(48000, 2)
//	_ = e.SetEffects(effects.BassBoost, effects.EightD)
//	_ = e.SetTremolo(effects.WithDepth(0.8), effects.WithFrequency(4))
//	for i, x := range samples {
//	    samples[i] = e.Apply(x, i%2)
//	}
//
// Every active effect advances its oscillator exactly once per Apply call,
// except the pulsator, which steps once per interleaved frame so the left
// and right pans stay locked half a cycle apart.
package effects
