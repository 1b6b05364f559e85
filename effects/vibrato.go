// SPDX-License-Identifier: EPL-2.0

package effects

import "math"

// MaxVibratoDelay is the widest delay swing of the vibrato, in seconds.
const MaxVibratoDelay = 0.005

// vibrato reads each channel through a delay line whose length follows the
// oscillator, which bends the pitch up and down.
type vibrato struct {
	lfo   LFO
	step  float64
	span  float64 // delay swing in samples at depth 1
	lines []delayLine
}

type delayLine struct {
	buf   []float64
	write int
}

func newVibrato(sampleRate float64, channels int) vibrato {
	span := MaxVibratoDelay * sampleRate
	size := int(math.Ceil(span)) + 2

	v := vibrato{
		lfo:   DefaultLFO,
		span:  span,
		lines: make([]delayLine, channels),
	}
	for i := range v.lines {
		v.lines[i].buf = make([]float64, size)
	}
	return v
}

func (v *vibrato) process(x float64, ch int) float64 {
	d := &v.lines[ch]
	d.buf[d.write] = x
	d.write++
	if d.write == len(d.buf) {
		d.write = 0
	}

	delay := v.lfo.Depth * v.span * v.lfo.envelope()
	if delay == 0 {
		return x
	}

	p := int(delay)
	t := delay - float64(p)
	a := d.at(p)
	b := d.at(p + 1)
	return a + t*(b-a)
}

func (v *vibrato) reset() {
	for i := range v.lines {
		clear(v.lines[i].buf)
		v.lines[i].write = 0
	}
}

// at returns the sample written n calls ago; 0 is the newest.
func (d *delayLine) at(n int) float64 {
	if n >= len(d.buf) {
		n = len(d.buf) - 1
	}
	idx := d.write - 1 - n
	if idx < 0 {
		idx += len(d.buf)
	}
	return d.buf[idx]
}
