package otelauta

import (
	"errors"
	"fmt"
)

type (
	// Scale is a named set of interval offsets from a root. The offsets are
	// unique, sorted, within 0..11 and always include 0, so the root itself is
	// part of every scale.
	Scale struct {
		Name    string
		Offsets []int `yaml:",flow"`
	}
)

var ErrUnknownScale = errors.New("unknown scale")
var ErrUnknownRoot = errors.New("unknown root")

// Scales lists the selectable scales, in the order they are offered in the
// UI. The chromatic scale contains all 12 offsets, so with it every position
// is in scale.
var Scales = []Scale{
	{Name: "major", Offsets: []int{0, 2, 4, 5, 7, 9, 11}},
	{Name: "minor", Offsets: []int{0, 2, 3, 5, 7, 8, 10}},
	{Name: "pentatonic", Offsets: []int{0, 3, 5, 7, 10}},
	{Name: "blues", Offsets: []int{0, 3, 5, 6, 7, 10}},
	{Name: "chromatic", Offsets: []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11}},
}

// ScaleByName returns the scale with the given name, or ErrUnknownScale if no
// such scale exists. Lookup failures are surfaced rather than defaulting,
// because a silently wrong scale would draw a wrong but plausible board.
func ScaleByName(name string) (Scale, error) {
	for _, s := range Scales {
		if s.Name == name {
			return s, nil
		}
	}
	return Scale{}, fmt.Errorf("%w: %q", ErrUnknownScale, name)
}

// ScaleIndex returns the index of the named scale in Scales, or -1.
func ScaleIndex(name string) int {
	for i, s := range Scales {
		if s.Name == name {
			return i
		}
	}
	return -1
}

// Contains reports whether the offset belongs to the scale.
func (s Scale) Contains(offset int) bool {
	for _, o := range s.Offsets {
		if o == offset {
			return true
		}
	}
	return false
}
