// SPDX-License-Identifier: EPL-2.0

package biquad

// State is the direct form I delay line: the last two inputs and outputs.
type State struct {
	X1, X2 float64
	Y1, Y2 float64
}

// Filter is one biquad section with its own coefficients and state. It is not
// safe for concurrent use.
type Filter struct {
	params Params
	coeffs Coefficients
	state  State
}

// New designs a filter for p with a zeroed delay line.
func New(p Params) (*Filter, error) {
	c, err := Design(p)
	if err != nil {
		return nil, err
	}
	return &Filter{params: p, coeffs: c}, nil
}

// SetCoefficients redesigns the filter for p. The delay line is kept as is.
// On error the filter is left untouched.
func (f *Filter) SetCoefficients(p Params) error {
	c, err := Design(p)
	if err != nil {
		return err
	}
	f.params = p
	f.coeffs = c
	return nil
}

// SetShape changes only the shape.
func (f *Filter) SetShape(s Shape) error {
	p := f.params
	p.Shape = s
	return f.SetCoefficients(p)
}

// SetCutoff changes only the cutoff frequency.
func (f *Filter) SetCutoff(hz float64) error {
	p := f.params
	p.Cutoff = hz
	return f.SetCoefficients(p)
}

// SetQ changes only the quality factor.
func (f *Filter) SetQ(q float64) error {
	p := f.params
	p.Q = q
	return f.SetCoefficients(p)
}

// SetGain changes only the gain. Coefficients are recomputed even when the
// current shape ignores gain.
func (f *Filter) SetGain(db float64) error {
	p := f.params
	p.GainDB = db
	return f.SetCoefficients(p)
}

// Process filters one sample.
func (f *Filter) Process(x float64) float64 {
	c := &f.coeffs
	s := &f.state

	y := c.B0*x + c.B1*s.X1 + c.B2*s.X2 - c.A1*s.Y1 - c.A2*s.Y2

	s.X2 = s.X1
	s.X1 = x
	s.Y2 = s.Y1
	s.Y1 = y

	return y
}

// Reset clears the delay line.
func (f *Filter) Reset() { f.state = State{} }

// State returns a copy of the delay line.
func (f *Filter) State() State { return f.state }

// SetState restores a previously saved delay line.
func (f *Filter) SetState(s State) { f.state = s }

// Params returns the parameters the current coefficients were designed from.
func (f *Filter) Params() Params { return f.params }

// Coefficients returns the current normalized coefficients.
func (f *Filter) Coefficients() Coefficients { return f.coeffs }
