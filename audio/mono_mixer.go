// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/ik5/audfx/pcm"
)

// MonoMixer averages every frame of src into a single channel.
type MonoMixer struct {
	src Source
	out pcm.Format
	tmp []byte
	eof bool
}

func NewMonoMixer(src Source) *MonoMixer {
	out := src.Format()
	out.Channels = 1

	return &MonoMixer{
		src: src,
		out: out,
		tmp: make([]byte, 4096),
	}
}

func (m *MonoMixer) Format() pcm.Format { return m.out }
func (m *MonoMixer) BufSize() int       { return m.src.BufSize() }
func (m *MonoMixer) Close() error {
	err := m.src.Close()
	if err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}

func (m *MonoMixer) Read(dst []byte) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	in := m.src.Format()
	if in.Channels == 1 {
		// Pass-through: read mono directly
		return m.src.Read(dst)
	}
	if m.eof {
		return 0, io.EOF
	}

	w := in.ByteWidth()
	frames := len(dst) / w
	if frames == 0 {
		return 0, ErrInvalidDstSize
	}
	bytesNeeded := frames * in.FrameSize()

	// Grow tmp buffer if needed (but don't shrink to avoid thrashing)
	if cap(m.tmp) < bytesNeeded {
		m.tmp = make([]byte, max(bytesNeeded, 8192))
	}

	n, err := io.ReadFull(m.src, m.tmp[:bytesNeeded])
	if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
		m.eof = true
		err = io.EOF
	} else if err != nil {
		return 0, fmt.Errorf("%w", err)
	}

	got := n / in.FrameSize()
	for f := range got {
		base := f * in.FrameSize()
		var sum float64
		for c := range in.Channels {
			v, _ := pcm.Decode(m.tmp, base+c*w, in)
			sum += float64(v)
		}
		_ = pcm.Encode(dst, f*w, int64(math.Round(sum/float64(in.Channels))), m.out)
	}

	if got == 0 {
		return 0, err
	}
	if err == io.EOF {
		// Hand the final frames back now; EOF follows on the next call.
		err = nil
	}
	return got * w, err
}
