// SPDX-License-Identifier: EPL-2.0

package effects

import (
	"fmt"
	"strings"
)

// Effect names one of the built-in stream effects.
type Effect uint8

const (
	EightD Effect = iota
	Tremolo
	Vibrato
	BassBoost
)

var effectNames = [...]string{
	EightD:    "8D",
	Tremolo:   "Tremolo",
	Vibrato:   "Vibrato",
	BassBoost: "BassBoost",
}

func (e Effect) String() string {
	if int(e) < len(effectNames) {
		return effectNames[e]
	}
	return fmt.Sprintf("effect(%d)", uint8(e))
}

// Valid reports whether e is one of the defined effects.
func (e Effect) Valid() bool { return int(e) < len(effectNames) }

// ParseEffect looks an effect up by name, ignoring case.
func ParseEffect(name string) (Effect, error) {
	n := strings.TrimSpace(name)
	for i, s := range effectNames {
		if strings.EqualFold(s, n) {
			return Effect(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownEffect, name)
}

// ParseEffects parses a list of names, keeping their order.
func ParseEffects(names []string) ([]Effect, error) {
	out := make([]Effect, 0, len(names))
	for _, n := range names {
		e, err := ParseEffect(n)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

// Names returns every effect name in declaration order.
func Names() []string {
	return append([]string(nil), effectNames[:]...)
}
