// SPDX-License-Identifier: EPL-2.0

package effects

import (
	"errors"
	"fmt"

	"github.com/ik5/audfx/biquad"
)

var (
	// ErrUnknownEffect is returned for effect names outside the fixed set.
	ErrUnknownEffect = fmt.Errorf("%w: unknown effect", biquad.ErrInvalidParameter)

	// ErrDuplicateEffect is returned when an effect is listed twice.
	ErrDuplicateEffect = fmt.Errorf("%w: duplicate effect", biquad.ErrInvalidParameter)

	// ErrInvalidStream is returned by New for a bad sample rate or channel
	// count.
	ErrInvalidStream = errors.New("invalid stream layout")
)
