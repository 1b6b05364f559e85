// SPDX-License-Identifier: EPL-2.0

package biquad

import (
	"fmt"
	"strings"
)

// Shape selects the transfer function a filter is designed for.
type Shape uint8

const (
	Lowpass Shape = iota
	Highpass
	Bandpass
	Notch
	Allpass
	Peaking
	LowShelf
	HighShelf
)

var shapeNames = [...]string{
	Lowpass:   "lowpass",
	Highpass:  "highpass",
	Bandpass:  "bandpass",
	Notch:     "notch",
	Allpass:   "allpass",
	Peaking:   "peaking",
	LowShelf:  "lowshelf",
	HighShelf: "highshelf",
}

func (s Shape) String() string {
	if int(s) < len(shapeNames) {
		return shapeNames[s]
	}
	return fmt.Sprintf("shape(%d)", uint8(s))
}

// Valid reports whether s is one of the defined shapes.
func (s Shape) Valid() bool { return int(s) < len(shapeNames) }

// UsesGain reports whether the gain parameter affects the shape's response.
func (s Shape) UsesGain() bool {
	return s == Peaking || s == LowShelf || s == HighShelf
}

// ParseShape looks a shape up by name, ignoring case.
func ParseShape(name string) (Shape, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for i, s := range shapeNames {
		if s == n {
			return Shape(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownShape, name)
}

// Shapes returns every shape in declaration order.
func Shapes() []Shape {
	out := make([]Shape, len(shapeNames))
	for i := range shapeNames {
		out[i] = Shape(i)
	}
	return out
}
