// SPDX-License-Identifier: EPL-2.0

package pipeline

import "errors"

// ErrInvalidFormat is returned by New for a PCM format that cannot be
// processed.
var ErrInvalidFormat = errors.New("pipeline: invalid PCM format")
