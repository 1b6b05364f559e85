// SPDX-License-Identifier: EPL-2.0

package equalizer

import (
	"sort"
	"testing"
)

func TestPresets_Sorted(t *testing.T) {
	t.Parallel()

	names := Presets()
	if len(names) != len(presets) {
		t.Fatalf("Presets() returned %d names, want %d", len(names), len(presets))
	}
	if !sort.StringsAreSorted(names) {
		t.Errorf("Presets() not sorted: %v", names)
	}
}

func TestLookupPreset(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		ok   bool
	}{
		{name: "Flat", ok: true},
		{name: "rock", ok: true},
		{name: " TREBLEBOOST ", ok: true},
		{name: "metal", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if _, ok := LookupPreset(tt.name); ok != tt.ok {
				t.Errorf("LookupPreset(%q) ok = %v, want %v", tt.name, ok, tt.ok)
			}
		})
	}
}

func TestPreset_Bands(t *testing.T) {
	t.Parallel()

	p, _ := LookupPreset("Rock")
	bands := p.Bands()

	if len(bands) != BandCount {
		t.Fatalf("len(Bands()) = %d", len(bands))
	}
	for i, b := range bands {
		if b.Index != i || b.GainDB != p[i] {
			t.Errorf("band %d = %+v, want {%d %v}", i, b, i, p[i])
		}
	}
}
