// SPDX-License-Identifier: EPL-2.0

package equalizer

import (
	"fmt"
	"math"

	"github.com/ik5/audfx/biquad"
)

// BandCount is the number of bands in every equalizer.
const BandCount = 10

// BandQ is the quality factor shared by all bands (about one octave wide).
const BandQ = math.Sqrt2

// Centers holds the band center frequencies in Hz, lowest first.
var Centers = [BandCount]float64{31.25, 62.5, 125, 250, 500, 1000, 2000, 4000, 8000, 16000}

// Band is a band index and its gain.
type Band struct {
	Index  int     `json:"band"`
	GainDB float64 `json:"gain"`
}

// channel is the per-channel cascade, one filter per band in index order.
type channel struct {
	bands [BandCount]*biquad.Filter
}

// Equalizer is a fixed-band graphic equalizer. It is not safe for concurrent
// use.
type Equalizer struct {
	sampleRate float64
	gains      [BandCount]float64
	realizable [BandCount]bool
	channels   []channel
}

// New returns a flat equalizer for the given sample rate and channel count.
func New(sampleRate float64, channels int) (*Equalizer, error) {
	if channels < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidChannels, channels)
	}
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("%w: sample rate %v", biquad.ErrInvalidParameter, sampleRate)
	}

	eq := &Equalizer{
		sampleRate: sampleRate,
		channels:   make([]channel, channels),
	}

	for b := range BandCount {
		eq.realizable[b] = Centers[b] < sampleRate/2
		for c := range eq.channels {
			f, err := eq.newBandFilter(b, 0)
			if err != nil {
				return nil, err
			}
			eq.channels[c].bands[b] = f
		}
	}

	return eq, nil
}

func (eq *Equalizer) bandParams(band int, gainDB float64) biquad.Params {
	return biquad.Params{
		Shape:      biquad.Peaking,
		SampleRate: eq.sampleRate,
		Cutoff:     Centers[band],
		Q:          BandQ,
		GainDB:     gainDB,
	}
}

func (eq *Equalizer) newBandFilter(band int, gainDB float64) (*biquad.Filter, error) {
	if !eq.realizable[band] {
		return &biquad.Filter{}, nil
	}
	return biquad.New(eq.bandParams(band, gainDB))
}

func checkBand(band int) error {
	if band < 0 || band >= BandCount {
		return fmt.Errorf("%w: %d not in [0, %d): %w", ErrBandOutOfRange, band, BandCount, biquad.ErrInvalidParameter)
	}
	return nil
}

// SetGain sets one band's gain in dB. Only that band is redesigned; its
// filter state is kept.
func (eq *Equalizer) SetGain(band int, gainDB float64) error {
	if err := checkBand(band); err != nil {
		return err
	}
	if math.IsNaN(gainDB) || math.IsInf(gainDB, 0) {
		return fmt.Errorf("%w: band %d gain %v dB", biquad.ErrInvalidParameter, band, gainDB)
	}

	if eq.realizable[band] {
		p := eq.bandParams(band, gainDB)
		if _, err := biquad.Design(p); err != nil {
			return err
		}
		for c := range eq.channels {
			// Already validated by Design above.
			_ = eq.channels[c].bands[band].SetCoefficients(p)
		}
	}

	eq.gains[band] = gainDB
	return nil
}

// SetBands applies several bands in order. Every band is validated before
// any is applied.
func (eq *Equalizer) SetBands(bands []Band) error {
	for _, b := range bands {
		if err := checkBand(b.Index); err != nil {
			return err
		}
		if math.IsNaN(b.GainDB) || math.IsInf(b.GainDB, 0) {
			return fmt.Errorf("%w: band %d gain %v dB", biquad.ErrInvalidParameter, b.Index, b.GainDB)
		}
	}

	for _, b := range bands {
		if err := eq.SetGain(b.Index, b.GainDB); err != nil {
			return err
		}
	}
	return nil
}

// Gain returns one band's gain in dB.
func (eq *Equalizer) Gain(band int) (float64, error) {
	if err := checkBand(band); err != nil {
		return 0, err
	}
	return eq.gains[band], nil
}

// Bands returns every band's gain in index order.
func (eq *Equalizer) Bands() []Band {
	out := make([]Band, BandCount)
	for i, g := range eq.gains {
		out[i] = Band{Index: i, GainDB: g}
	}
	return out
}

// Gains returns every band's gain in dB, lowest band first.
func (eq *Equalizer) Gains() [BandCount]float64 { return eq.gains }

// ResetAll sets every band to 0 dB. Filter state is kept, so the cascade
// decays to unity gain without a discontinuity.
func (eq *Equalizer) ResetAll() {
	for b := range BandCount {
		_ = eq.SetGain(b, 0)
	}
}

// Reset clears the filter history of every band and channel. Gains are
// kept.
func (eq *Equalizer) Reset() {
	for c := range eq.channels {
		for _, f := range eq.channels[c].bands {
			f.Reset()
		}
	}
}

// IsFlat reports whether every band is at 0 dB.
func (eq *Equalizer) IsFlat() bool {
	for _, g := range eq.gains {
		if g != 0 {
			return false
		}
	}
	return true
}

// Channels returns the number of independent channel cascades.
func (eq *Equalizer) Channels() int { return len(eq.channels) }

// SampleRate returns the design sample rate in Hz.
func (eq *Equalizer) SampleRate() float64 { return eq.sampleRate }

// Process runs x through every band of the given channel, lowest band first.
// The channel index is taken modulo the channel count.
func (eq *Equalizer) Process(ch int, x float64) float64 {
	n := len(eq.channels)
	ch %= n
	if ch < 0 {
		ch += n
	}

	bands := &eq.channels[ch].bands
	for b := range bands {
		if eq.realizable[b] {
			x = bands[b].Process(x)
		}
	}
	return x
}

// State returns the delay line of one band filter, for inspection.
func (eq *Equalizer) State(ch, band int) (biquad.State, error) {
	if err := checkBand(band); err != nil {
		return biquad.State{}, err
	}
	if ch < 0 || ch >= len(eq.channels) {
		return biquad.State{}, fmt.Errorf("%w: channel %d", biquad.ErrInvalidParameter, ch)
	}
	return eq.channels[ch].bands[band].State(), nil
}
