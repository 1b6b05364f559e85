// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"fmt"
	"io"

	"github.com/go-audio/aiff"

	"github.com/ik5/audfx/formats/internal/intbuf"
	"github.com/ik5/audfx/pcm"
)

// Writer encodes PCM bytes into an AIFF file. Close writes the final chunk
// sizes.
type Writer struct {
	*intbuf.Writer
}

// NewWriter starts an AIFF file on w for data in format f. If w is an
// io.Closer, Close closes it too.
func NewWriter(w io.WriteSeeker, f pcm.Format) (*Writer, error) {
	if err := f.Validate(); err != nil {
		return nil, fmt.Errorf("aiff writer: %w", err)
	}

	enc := aiff.NewEncoder(w, f.SampleRate, f.BitDepth, f.Channels)

	var closer io.Closer
	if c, ok := w.(io.Closer); ok {
		closer = c
	}

	return &Writer{Writer: intbuf.NewWriter(enc, f, closer)}, nil
}
