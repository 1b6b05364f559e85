// SPDX-License-Identifier: EPL-2.0

package equalizer

import "errors"

var (
	// ErrBandOutOfRange is returned for band indexes outside [0, BandCount).
	// It also matches biquad.ErrInvalidParameter.
	ErrBandOutOfRange = errors.New("band index out of range")

	// ErrUnknownPreset is returned by ApplyPreset for names not in the table.
	ErrUnknownPreset = errors.New("unknown equalizer preset")

	// ErrInvalidChannels is returned by New for a channel count below one.
	ErrInvalidChannels = errors.New("equalizer needs at least one channel")
)
