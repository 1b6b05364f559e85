// SPDX-License-Identifier: EPL-2.0

package pipeline

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ik5/audfx/biquad"
	"github.com/ik5/audfx/effects"
	"github.com/ik5/audfx/equalizer"
	"github.com/ik5/audfx/pcm"
	"github.com/ik5/audfx/volume"
)

// State is a snapshot of a pipeline's counters.
type State struct {
	ID              uuid.UUID
	Enabled         bool
	Format          pcm.Format
	TotalSamples    uint64 // interleaved samples, all channels
	ProcessedChunks uint64
	Duration        time.Duration // playback time of TotalSamples
}

// Pipeline is a chunk driver for one PCM stream.
type Pipeline struct {
	mu sync.Mutex

	id       uuid.UUID
	baseLog  logrus.FieldLogger
	log      logrus.FieldLogger
	onUpdate func(State)

	format  pcm.Format
	enabled bool

	filter       filterBank // nil when detached
	filterParams biquad.Params
	eq           *equalizer.Equalizer
	fx           *effects.Engine
	vol          *volume.Volume
	stages       []Stage
	eqAttached   bool

	totalSamples uint64
	chunks       uint64
}

// New returns an enabled pipeline for f with no stage attached.
func New(f pcm.Format, opts ...Option) (*Pipeline, error) {
	if err := f.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFormat, err)
	}

	rate := float64(f.SampleRate)

	eq, err := equalizer.New(rate, f.Channels)
	if err != nil {
		return nil, err
	}
	fx, err := effects.New(rate, f.Channels)
	if err != nil {
		return nil, err
	}
	vol, err := volume.New(f)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		id:      uuid.New(),
		baseLog: logrus.StandardLogger(),
		format:  f,
		enabled: true,
		filterParams: biquad.Params{
			Shape:      biquad.Lowpass,
			SampleRate: rate,
			Cutoff:     biquad.DefaultCutoff,
			Q:          biquad.DefaultQ,
		},
		eq:  eq,
		fx:  fx,
		vol: vol,
	}

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(p); err != nil {
			return nil, err
		}
	}

	p.log = p.baseLog.WithField("stream", p.id.String())
	p.rebuild()

	p.log.WithFields(logrus.Fields{
		"format":  f.String(),
		"enabled": p.enabled,
		"stages":  len(p.stages),
	}).Debug("pipeline created")

	return p, nil
}

// ID returns the stream identifier.
func (p *Pipeline) ID() uuid.UUID { return p.id }

// Format returns the PCM format the pipeline was created for.
func (p *Pipeline) Format() pcm.Format { return p.format }

// Process filters chunk in place and returns it. Only the first
// floor(len/ByteWidth)*ByteWidth bytes are touched. Counters advance even
// when the pipeline is disabled.
func (p *Pipeline) Process(chunk []byte) []byte {
	p.mu.Lock()
	defer p.mu.Unlock()

	f := p.format
	n := f.Aligned(len(chunk))
	w := f.ByteWidth()

	if p.enabled && len(p.stages) > 0 {
		ch := int(p.totalSamples % uint64(f.Channels))
		for off := 0; off < n; off += w {
			// off+w <= n <= len(chunk), so neither call can fail.
			v, _ := pcm.Decode(chunk, off, f)

			x := float64(v)
			for _, s := range p.stages {
				x = s.Process(x, ch)
			}

			_ = pcm.Encode(chunk, off, f.Round(x), f)

			ch++
			if ch == f.Channels {
				ch = 0
			}
		}
	}

	p.totalSamples += uint64(n / w)
	p.chunks++

	return chunk
}

// Stats returns a snapshot of the counters.
func (p *Pipeline) Stats() State {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.stateLocked()
}

func (p *Pipeline) stateLocked() State {
	return State{
		ID:              p.id,
		Enabled:         p.enabled,
		Format:          p.format,
		TotalSamples:    p.totalSamples,
		ProcessedChunks: p.chunks,
		Duration:        p.format.Duration(int64(p.totalSamples)),
	}
}

// update runs fn under the lock. When fn succeeds the stage list is rebuilt,
// the change is logged and the callback fires once, after unlocking.
func (p *Pipeline) update(op string, fields logrus.Fields, fn func() error) error {
	p.mu.Lock()
	err := fn()
	if err == nil {
		p.rebuild()
	}
	st := p.stateLocked()
	cb := p.onUpdate
	stages := len(p.stages)
	p.mu.Unlock()

	entry := p.log.WithField("op", op).WithFields(fields)
	if err != nil {
		entry.WithError(err).Debug("pipeline update rejected")
		return err
	}
	entry.WithField("stages", stages).Debug("pipeline updated")

	if cb != nil {
		cb(st)
	}
	return nil
}
