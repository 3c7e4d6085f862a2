package otelauta

import (
	"errors"
	"fmt"
)

// SampleRate is the fixed sample rate of all audio rendering, in Hz.
const SampleRate = 44100

type (
	// Synth renders the sound of the virtual instrument. It has one voice per
	// string; voice indexes correspond to string indexes. Calls are not
	// thread safe, the player goroutine owns the synth.
	Synth interface {
		// Trigger starts a new note on the given voice, cutting off whatever
		// the voice was playing.
		Trigger(voice int, pitch byte)

		// Release damps the note playing on the given voice. Releasing a
		// silent voice is a no-op.
		Release(voice int)

		// Render fills the whole buffer with audio, mixing all voices.
		Render(buffer AudioBuffer) error
	}

	// Synther creates Synths.
	Synther interface {
		Name() string
		Synth() (Synth, error)
	}

	// StrumNote is one note of the playback sequence derived from a diagram:
	// the highlighted cell and the pitch it sounds.
	StrumNote struct {
		Pos   Position
		Pitch byte
	}
)

// Strum notes are eighth notes.
const strumNotesPerBeat = 2

// releaseTailSeconds is rendered after the last strum note so the plucks ring
// out instead of getting cut off.
const releaseTailSeconds = 2

// SamplesPerNote returns the length of one strum note in samples at the given
// tempo. Tempos of zero or less fall back to one note per second.
func SamplesPerNote(bpm int) int {
	if bpm <= 0 {
		return SampleRate
	}
	return 60 * SampleRate / (bpm * strumNotesPerBeat)
}

// Play renders the strum offline with a synth from the given synther,
// releasing all voices after the last note. progress is called with the
// fraction rendered so far; nil is allowed.
func Play(synther Synther, strum []StrumNote, bpm int, progress func(p float32)) (AudioBuffer, error) {
	synth, err := synther.Synth()
	if err != nil {
		return nil, fmt.Errorf("otelauta.Play failed: %w", err)
	}
	if len(strum) == 0 {
		return nil, errors.New("nothing to play: no cells highlighted")
	}
	samplesPerNote := SamplesPerNote(bpm)
	tail := releaseTailSeconds * SampleRate
	buffer := make(AudioBuffer, 0, len(strum)*samplesPerNote+tail)
	noteBuffer := make(AudioBuffer, samplesPerNote)
	for i, n := range strum {
		synth.Release(n.Pos.String)
		synth.Trigger(n.Pos.String, n.Pitch)
		if err := synth.Render(noteBuffer); err != nil {
			return nil, fmt.Errorf("rendering note %d failed: %w", i, err)
		}
		buffer = append(buffer, noteBuffer...)
		if progress != nil {
			progress(float32(i+1) / float32(len(strum)+1))
		}
	}
	for voice := 0; voice < NumStrings; voice++ {
		synth.Release(voice)
	}
	tailBuffer := make(AudioBuffer, tail)
	if err := synth.Render(tailBuffer); err != nil {
		return nil, fmt.Errorf("rendering the release tail failed: %w", err)
	}
	buffer = append(buffer, tailBuffer...)
	if progress != nil {
		progress(1)
	}
	return buffer, nil
}
