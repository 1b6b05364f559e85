// SPDX-License-Identifier: EPL-2.0

package effects

import "math"

// pulsator pans the stereo image with a slow sine. The right channel runs
// half a cycle behind the left one.
type pulsator struct {
	hz float64
	x  float64 // phase, radians in [0, 2π)
	dI float64 // phase step per frame
}

func (p *pulsator) retune(rate float64) {
	if p.hz == 0 || rate <= 0 {
		p.dI = 0
		return
	}
	p.dI = twoPi * p.hz / rate
}

func (p *pulsator) gain(ch int) float64 {
	if ch&1 == 1 {
		return (1 - math.Sin(p.x)) / 2
	}
	return (1 + math.Sin(p.x)) / 2
}

func (p *pulsator) step() {
	p.x += p.dI
	if p.x >= twoPi {
		p.x = wrapPhase(p.x)
	}
}

// phase returns the phase seen by ch.
func (p *pulsator) phase(ch int) float64 {
	return p.x + float64(ch&1)*math.Pi
}
