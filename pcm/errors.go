// SPDX-License-Identifier: EPL-2.0

package pcm

import "errors"

var (
	// ErrOutOfRange is returned when a sample read or write would cross the
	// end of the buffer.
	ErrOutOfRange = errors.New("sample offset out of range")

	// ErrUnsupportedType is returned for PCM layouts other than s16le, s16be,
	// s32le and s32be.
	ErrUnsupportedType = errors.New("unsupported PCM type")

	// ErrInvalidFormat is returned when a format has a non-positive sample
	// rate or channel count.
	ErrInvalidFormat = errors.New("invalid PCM format")
)
