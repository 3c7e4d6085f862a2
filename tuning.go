package otelauta

type (
	// GuitarString is one string of the instrument: its display name and the
	// MIDI pitch of the open string.
	GuitarString struct {
		Name  string
		Pitch int
	}

	// Tuning is the ordered set of strings, index 0 being the highest-pitched
	// string. It is fixed at six strings and not user-editable.
	Tuning [NumStrings]GuitarString
)

const NumStrings = 6

// StandardTuning is EADGBE. String index 0 is the high e string (E4, MIDI
// 64) and string index 5 the low E string (E2, MIDI 40), matching how the
// strings are stacked on the rendered board, top to bottom.
var StandardTuning = Tuning{
	{Name: "e", Pitch: 64},
	{Name: "B", Pitch: 59},
	{Name: "G", Pitch: 55},
	{Name: "D", Pitch: 50},
	{Name: "A", Pitch: 45},
	{Name: "E", Pitch: 40},
}

// Pitch returns the MIDI pitch sounding at the given string and fret. Fret 0
// is the open string.
func (t Tuning) Pitch(stringIndex, fret int) int {
	return t[stringIndex].Pitch + fret
}

// PitchClass returns the pitch class of the open string.
func (t Tuning) PitchClass(stringIndex int) PitchClass {
	return PitchClass(mod(t[stringIndex].Pitch, NumPitchClasses))
}
