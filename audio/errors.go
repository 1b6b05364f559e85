// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	ErrInvalidDstSize = errors.New("dst must hold at least one frame")
	ErrUnknownFormat  = errors.New("no decoder registered for format")
	ErrInvalidRate    = errors.New("sample rate must be positive")
	ErrInvalidSpeed   = errors.New("speed must be positive and finite")
)
