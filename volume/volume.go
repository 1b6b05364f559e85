// SPDX-License-Identifier: EPL-2.0

package volume

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/ik5/audfx/biquad"
	"github.com/ik5/audfx/pcm"
)

// ErrInvalidVolume is returned for a NaN volume.
var ErrInvalidVolume = fmt.Errorf("%w: volume is not a number", biquad.ErrInvalidParameter)

// ErrInvalidFormat is returned by New for formats pcm cannot encode.
var ErrInvalidFormat = errors.New("volume: invalid sample format")

// Unity is the percentage that leaves samples unchanged.
const Unity = 100.0

// Volume scales samples by a user facing percentage. The factor is stored
// already divided by 100.
type Volume struct {
	format pcm.Format
	factor float64
}

// New returns a stage at 100% for samples of format f.
func New(f pcm.Format) (*Volume, error) {
	if err := f.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFormat, err)
	}
	return &Volume{format: f, factor: 1}, nil
}

// Set changes the volume. NaN is rejected and leaves the volume unchanged;
// negative values clamp to 0 and +Inf maps to 100%.
func (v *Volume) Set(percent float64) bool {
	if math.IsNaN(percent) {
		return false
	}
	if percent < 0 {
		percent = 0
	}
	if math.IsInf(percent, 1) {
		percent = Unity
	}

	v.factor = percent / 100
	return true
}

// SetPercent is Set with an error result.
func (v *Volume) SetPercent(percent float64) error {
	if !v.Set(percent) {
		return fmt.Errorf("%w: %v", ErrInvalidVolume, percent)
	}
	return nil
}

// Percent returns the volume as a percentage.
func (v *Volume) Percent() float64 { return v.factor * 100 }

// Factor returns the linear gain.
func (v *Volume) Factor() float64 { return v.factor }

// IsUnity reports whether the stage leaves samples unchanged.
func (v *Volume) IsUnity() bool { return v.factor == 1 }

// Process scales x and saturates the result to the sample range.
func (v *Volume) Process(x float64) float64 {
	y := x * v.factor
	lo, hi := float64(v.format.Min()), float64(v.format.Max())

	switch {
	case math.IsNaN(y):
		return 0
	case y < lo:
		return lo
	case y > hi:
		return hi
	}
	return y
}

func (v *Volume) String() string {
	return strconv.FormatFloat(v.Percent(), 'f', -1, 64) + "%"
}
