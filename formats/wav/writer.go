// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"

	"github.com/go-audio/wav"

	"github.com/ik5/audfx/formats/internal/intbuf"
	"github.com/ik5/audfx/pcm"
)

// Writer encodes PCM bytes into a WAV file. Close must be called to
// finalize the header sizes.
type Writer struct {
	*intbuf.Writer
}

// NewWriter starts a WAV file on w holding data in format f. Big-endian
// input is byte-swapped on the way in. If w is an io.Closer, Close closes
// it too.
func NewWriter(w io.WriteSeeker, f pcm.Format) (*Writer, error) {
	if err := f.Validate(); err != nil {
		return nil, fmt.Errorf("wav writer: %w", err)
	}

	enc := wav.NewEncoder(w, f.SampleRate, f.BitDepth, f.Channels, pcmFormatTag)

	var closer io.Closer
	if c, ok := w.(io.Closer); ok {
		closer = c
	}

	return &Writer{Writer: intbuf.NewWriter(enc, f, closer)}, nil
}
