// SPDX-License-Identifier: EPL-2.0

package biquad

import (
	"errors"
	"math"
	"testing"
)

func TestFilter_DirectFormI(t *testing.T) {
	t.Parallel()

	// Hand-traced with x = [1, 0, 0, 0]:
	// n=0: y = 0.25
	// n=1: y = 0.5 - (-0.2*0.25) = 0.55
	// n=2: y = 0.25 + 0.2*0.55 - 0.04*0.25 = 0.35
	// n=3: y = 0.2*0.35 - 0.04*0.55 = 0.048
	f := &Filter{coeffs: Coefficients{B0: 0.25, B1: 0.5, B2: 0.25, A1: -0.2, A2: 0.04}}

	want := []float64{0.25, 0.55, 0.35, 0.048}
	for i, w := range want {
		var x float64
		if i == 0 {
			x = 1
		}
		if y := f.Process(x); !almostEqual(y, w, 1e-12) {
			t.Errorf("n=%d: y = %v, want %v", i, y, w)
		}
	}

	st := f.State()
	if st.X1 != 0 || st.X2 != 0 || !almostEqual(st.Y1, 0.048, 1e-12) || !almostEqual(st.Y2, 0.35, 1e-12) {
		t.Errorf("State() = %+v", st)
	}
}

func TestFilter_SetCutoffPreservesState(t *testing.T) {
	t.Parallel()

	f, err := New(Params{Shape: Lowpass, SampleRate: 48000, Cutoff: 1000, Q: DefaultQ})
	if err != nil {
		t.Fatal(err)
	}

	for i := range 64 {
		f.Process(1000 * math.Sin(float64(i)*0.3))
	}

	before := f.State()
	oldCoeffs := f.Coefficients()

	if err := f.SetCutoff(2500); err != nil {
		t.Fatalf("SetCutoff error = %v", err)
	}

	if f.State() != before {
		t.Errorf("State changed on reconfiguration: %+v -> %+v", before, f.State())
	}
	if f.Coefficients() == oldCoeffs {
		t.Error("coefficients were not recomputed")
	}
	if f.Params().Cutoff != 2500 {
		t.Errorf("Params().Cutoff = %v, want 2500", f.Params().Cutoff)
	}
}

func TestFilter_InvalidUpdateLeavesFilterUntouched(t *testing.T) {
	t.Parallel()

	p := Params{Shape: Highpass, SampleRate: 44100, Cutoff: 500, Q: 1}
	f, err := New(p)
	if err != nil {
		t.Fatal(err)
	}
	f.Process(123)
	state, coeffs := f.State(), f.Coefficients()

	for _, bad := range []func() error{
		func() error { return f.SetCutoff(0) },
		func() error { return f.SetCutoff(22050) },
		func() error { return f.SetQ(-1) },
		func() error { return f.SetGain(math.Inf(1)) },
		func() error { return f.SetShape(Shape(200)) },
	} {
		if err := bad(); !errors.Is(err, ErrInvalidParameter) {
			t.Errorf("update error = %v, want ErrInvalidParameter", err)
		}
	}

	if f.Params() != p || f.Coefficients() != coeffs || f.State() != state {
		t.Error("failed update mutated the filter")
	}
}

func TestFilter_SetGainRecomputesForAnyShape(t *testing.T) {
	t.Parallel()

	f, err := New(Params{Shape: Lowpass, SampleRate: 48000, Cutoff: 800, Q: DefaultQ})
	if err != nil {
		t.Fatal(err)
	}
	before := f.Coefficients()

	if err := f.SetGain(12); err != nil {
		t.Fatal(err)
	}
	if f.Params().GainDB != 12 {
		t.Errorf("GainDB = %v, want 12", f.Params().GainDB)
	}
	if f.Coefficients() != before {
		t.Error("lowpass response changed with gain")
	}
}

// rms runs n samples of a full-scale sine at freq through f and returns the
// output RMS after the transient has settled.
func rms(f *Filter, freq, fs float64, n int) float64 {
	var sum float64
	var count int
	for i := range n {
		x := 32767 * math.Sin(2*math.Pi*freq*float64(i)/fs)
		y := f.Process(x)
		if i >= n/4 {
			sum += y * y
			count++
		}
	}
	return math.Sqrt(sum / float64(count))
}

func TestFilter_LowpassAttenuationOrdering(t *testing.T) {
	t.Parallel()

	p := Params{Shape: Lowpass, SampleRate: 48000, Cutoff: 1000, Q: 0.707}

	low, _ := New(p)
	high, _ := New(p)

	passband := rms(low, 1000, 48000, 48000)
	stopband := rms(high, 10000, 48000, 48000)

	if stopband >= passband {
		t.Fatalf("10 kHz RMS %.1f not below 1 kHz RMS %.1f", stopband, passband)
	}

	// A second-order lowpass drops ~40 dB/decade above cutoff.
	if ratio := passband / stopband; ratio < 50 {
		t.Errorf("attenuation ratio = %.1f, want > 50", ratio)
	}
}

func TestFilter_Reset(t *testing.T) {
	t.Parallel()

	f, _ := New(Params{Shape: Bandpass, SampleRate: 48000, Cutoff: 440, Q: 3})
	f.Process(1)
	f.Process(-1)
	f.Reset()

	if f.State() != (State{}) {
		t.Errorf("State after Reset = %+v", f.State())
	}

	saved := State{X1: 1, X2: 2, Y1: 3, Y2: 4}
	f.SetState(saved)
	if f.State() != saved {
		t.Errorf("SetState did not restore: %+v", f.State())
	}
}

func BenchmarkFilter_Process(b *testing.B) {
	f, _ := New(Params{Shape: Peaking, SampleRate: 48000, Cutoff: 1000, Q: 1, GainDB: 3})

	b.ReportAllocs()
	b.ResetTimer()

	var y float64
	for i := range b.N {
		y = f.Process(float64(i & 0xffff))
	}
	_ = y
}
