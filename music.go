package otelauta

import (
	"fmt"
)

// PitchClass is one of the 12 chromatic pitch classes, with 0 = C and 11 = B.
// Equality of notes is equality of indices; octave information is carried
// separately as a MIDI pitch where needed.
type PitchClass int

const NumPitchClasses = 12

var noteNames = []string{
	"C",
	"C#",
	"D",
	"D#",
	"E",
	"F",
	"F#",
	"G",
	"G#",
	"A",
	"A#",
	"B",
}

// intervalNames is indexed by the offset of a pitch class from the root,
// 0..11. Flat spellings are used for the altered degrees.
var intervalNames = []string{
	"1",
	"b2",
	"2",
	"b3",
	"3",
	"4",
	"b5",
	"5",
	"b6",
	"6",
	"b7",
	"7",
}

func (p PitchClass) String() string {
	return noteNames[mod(int(p), NumPitchClasses)]
}

// ParsePitchClass returns the pitch class for a note name ("C", "F#", ...).
// Names outside the chromatic table return ErrUnknownRoot.
func ParsePitchClass(name string) (PitchClass, error) {
	for i, n := range noteNames {
		if n == name {
			return PitchClass(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownRoot, name)
}

// IntervalLabel returns the conventional label of an interval offset: "1" for
// the root, "b3" for three semitones up, and so on.
func IntervalLabel(offset int) string {
	return intervalNames[mod(offset, NumPitchClasses)]
}

// mod returns a modulo b, with the result always in [0,b) also for negative a.
func mod(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}
