// SPDX-License-Identifier: EPL-2.0

package effects

// tremolo scales the amplitude by 1 - depth*(1+sin φ)/2.
type tremolo struct {
	lfo  LFO
	step float64 // phase step per Apply call
}

func (t *tremolo) process(x float64) float64 {
	return x * (1 - t.lfo.Depth*t.lfo.envelope())
}
