// SPDX-License-Identifier: EPL-2.0

package playback

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"

	"github.com/ik5/audfx/pcm"
)

var (
	// ErrUnsupportedFormat is returned for layouts the audio device cannot
	// take directly; only 16-bit little-endian is played.
	ErrUnsupportedFormat = errors.New("unsupported playback format")

	// ErrFormatMismatch is returned when a second stream asks for a
	// different rate or channel count; oto allows one context per process.
	ErrFormatMismatch = errors.New("playback context already open with another format")
)

const pollInterval = 10 * time.Millisecond

// DefaultBufferSize is the device buffer oto is asked for.
const DefaultBufferSize = 100 * time.Millisecond

var (
	ctxMu  sync.Mutex
	ctx    *oto.Context
	ctxFmt pcm.Format
)

// contextOptions maps f to oto's context options.
func contextOptions(f pcm.Format) (*oto.NewContextOptions, error) {
	if err := f.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsupportedFormat, err)
	}
	if f.BitDepth != 16 || f.Endian != pcm.LittleEndian {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, f.Type())
	}

	return &oto.NewContextOptions{
		SampleRate:   f.SampleRate,
		ChannelCount: f.Channels,
		Format:       oto.FormatSignedInt16LE,
		BufferSize:   DefaultBufferSize,
	}, nil
}

// sharedContext returns the process-wide oto context, creating it on first use.
func sharedContext(f pcm.Format) (*oto.Context, error) {
	op, err := contextOptions(f)
	if err != nil {
		return nil, err
	}

	ctxMu.Lock()
	defer ctxMu.Unlock()

	if ctx != nil {
		if ctxFmt.SampleRate != f.SampleRate || ctxFmt.Channels != f.Channels {
			return nil, fmt.Errorf("%w: open %v, want %v", ErrFormatMismatch, ctxFmt, f)
		}
		return ctx, nil
	}

	c, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("oto context: %w", err)
	}
	<-ready

	ctx, ctxFmt = c, f
	return ctx, nil
}

// Player plays a PCM stream on the default audio device.
type Player struct {
	player *oto.Player
	format pcm.Format
}

// New prepares r, which yields f-formatted bytes, for playback. Playback
// starts with Play.
func New(r io.Reader, f pcm.Format) (*Player, error) {
	c, err := sharedContext(f)
	if err != nil {
		return nil, err
	}

	return &Player{player: c.NewPlayer(r), format: f}, nil
}

func (p *Player) Play()              { p.player.Play() }
func (p *Player) Pause()             { p.player.Pause() }
func (p *Player) IsPlaying() bool    { return p.player.IsPlaying() }
func (p *Player) Format() pcm.Format { return p.format }

// SetVolume sets the device-side volume in [0, 1]. It is independent of
// the pipeline's volume stage.
func (p *Player) SetVolume(v float64) { p.player.SetVolume(v) }

// Wait blocks until r is drained and the device buffer has played out, or
// done is closed.
func (p *Player) Wait(done <-chan struct{}) error {
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for p.player.IsPlaying() {
		select {
		case <-done:
			p.player.Pause()
			return nil
		case <-ticker.C:
		}
	}

	if err := p.player.Err(); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("playback: %w", err)
	}
	return nil
}

// Close releases the player.
func (p *Player) Close() error {
	if err := p.player.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}
