// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"errors"

	"github.com/ik5/audfx/formats/internal/intbuf"
)

var (
	ErrNotWavFile          = errors.New("not a WAV file")
	ErrNotPCM              = errors.New("WAV data is not integer PCM")
	ErrUnsupportedBitDepth = intbuf.ErrUnsupportedBitDepth
)
