// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"fmt"
	"io"

	"github.com/go-audio/aiff"

	"github.com/ik5/audfx/audio"
	"github.com/ik5/audfx/formats/internal/intbuf"
	"github.com/ik5/audfx/pcm"
)

// Decoder reads AIFF files. AIFF stores big-endian samples, so 8- and
// 16-bit data come out as s16be and 24- and 32-bit data as s32be.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	// go-audio requires io.ReadSeeker
	rs, err := intbuf.ReadSeeker(r)
	if err != nil {
		return nil, fmt.Errorf("reading aiff data: %w", err)
	}

	dec := aiff.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotAiffFile
	}
	dec.ReadInfo()

	stored := int(dec.BitDepth)
	depth, err := intbuf.OutputDepth(stored)
	if err != nil {
		return nil, err
	}

	info := dec.Format()
	if info == nil {
		return nil, ErrNotAiffFile
	}

	f := pcm.Format{
		BitDepth:   depth,
		Endian:     pcm.BigEndian,
		SampleRate: info.SampleRate,
		Channels:   info.NumChannels,
	}
	if err := f.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotAiffFile, err)
	}

	var closer io.Closer
	if c, ok := r.(io.Closer); ok {
		closer = c
	}

	return intbuf.NewSource(dec, stored, false, f, closer), nil
}
