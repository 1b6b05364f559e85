// SPDX-License-Identifier: EPL-2.0

package biquad

import "errors"

var (
	// ErrInvalidParameter is returned when a filter parameter lies outside
	// its valid domain: non-positive or super-Nyquist cutoff, non-positive Q,
	// non-finite gain or an unknown shape. Packages building on biquad wrap it
	// for their own parameter errors.
	ErrInvalidParameter = errors.New("invalid filter parameter")

	// ErrUnknownShape is returned by ParseShape for unrecognized names.
	ErrUnknownShape = errors.New("unknown filter shape")
)
