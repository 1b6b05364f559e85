// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"

	"github.com/go-audio/wav"

	"github.com/ik5/audfx/audio"
	"github.com/ik5/audfx/formats/internal/intbuf"
	"github.com/ik5/audfx/pcm"
)

// pcmFormatTag is the WAVE_FORMAT_PCM code in the fmt chunk.
const pcmFormatTag = 1

// Decoder reads integer PCM WAV files. 8- and 16-bit data come out as
// s16le, 24- and 32-bit data as s32le.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	rs, err := intbuf.ReadSeeker(r)
	if err != nil {
		return nil, fmt.Errorf("reading wav data: %w", err)
	}

	dec := wav.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotWavFile
	}
	dec.ReadInfo()
	if err := dec.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotWavFile, err)
	}

	if dec.WavAudioFormat != pcmFormatTag {
		return nil, fmt.Errorf("%w: format tag %d", ErrNotPCM, dec.WavAudioFormat)
	}

	stored := int(dec.BitDepth)
	depth, err := intbuf.OutputDepth(stored)
	if err != nil {
		return nil, err
	}

	f := pcm.Format{
		BitDepth:   depth,
		Endian:     pcm.LittleEndian,
		SampleRate: int(dec.SampleRate),
		Channels:   int(dec.NumChans),
	}
	if err := f.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotWavFile, err)
	}

	var closer io.Closer
	if c, ok := r.(io.Closer); ok {
		closer = c
	}

	return intbuf.NewSource(dec, stored, true, f, closer), nil
}
