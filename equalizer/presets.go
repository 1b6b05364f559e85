// SPDX-License-Identifier: EPL-2.0

package equalizer

import (
	"fmt"
	"sort"
	"strings"
)

// Preset is a named set of band gains in dB, lowest band first.
type Preset [BandCount]float64

var presets = map[string]Preset{
	"Flat":        {0, 0, 0, 0, 0, 0, 0, 0, 0, 0},
	"Rock":        {5, 4, 3, 1, -1, -1, 1, 3, 4, 5},
	"Pop":         {-2, -1, 0, 2, 4, 4, 2, 0, -1, -2},
	"Jazz":        {0, 0, 0, 2, 4, 4, 2, 0, 0, 0},
	"Classical":   {0, 0, 0, 0, 0, 0, -2, -2, -2, -3},
	"Dance":       {6, 5, 2, 0, 0, -2, -2, -2, 0, 0},
	"BassBoost":   {8, 6, 4, 2, 0, 0, 0, 0, 0, 0},
	"TrebleBoost": {0, 0, 0, 0, 0, 0, 2, 4, 6, 8},
	"Vocal":       {-2, -3, -3, 1, 4, 4, 3, 1, 0, -1},
	"Powerful":    {6, 5, 0, -2, 1, 3, 5, 6, 4, 0},
}

// LookupPreset finds a preset by name, ignoring case.
func LookupPreset(name string) (Preset, bool) {
	if p, ok := presets[name]; ok {
		return p, true
	}
	for k, p := range presets {
		if strings.EqualFold(k, strings.TrimSpace(name)) {
			return p, true
		}
	}
	return Preset{}, false
}

// Presets returns the preset names in sorted order.
func Presets() []string {
	names := make([]string, 0, len(presets))
	for k := range presets {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Bands expands the preset into one Band per index.
func (p Preset) Bands() []Band {
	out := make([]Band, BandCount)
	for i, g := range p {
		out[i] = Band{Index: i, GainDB: g}
	}
	return out
}

// ApplyPreset sets all ten bands from the named preset, band 0 first.
func (eq *Equalizer) ApplyPreset(name string) error {
	p, ok := LookupPreset(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	for i, g := range p {
		if err := eq.SetGain(i, g); err != nil {
			return err
		}
	}
	return nil
}
