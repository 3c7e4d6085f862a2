package editor

import (
	"slices"

	"github.com/kvirta/otelauta"
)

type Play Model

func (m *Model) Play() *Play { return (*Play)(m) }

const (
	minBPM = 30
	maxBPM = 300
)

// Strum returns an Action that plays the highlighted cells from the first
// note, low strings first.
func (m *Play) Strum() Action { return MakeAction((*playStrum)(m)) }

type playStrum Play

func (m *playStrum) Enabled() bool { return len(m.derived.strum) > 0 }
func (m *playStrum) Do() {
	(*Model)(m).setPanic(false)
	m.playing = true
	(*Model)(m).sendStrumToPlayer()
	TrySend(m.broker.ToPlayer, any(StartPlayMsg{}))
}

// Stop returns an Action to stop playing the strum. Stopping when already
// stopped silences all strings.
func (m *Play) Stop() Action { return MakeAction((*stopPlaying)(m)) }

type stopPlaying Play

func (m *stopPlaying) Do() {
	if !m.playing {
		(*Model)(m).setPanic(true)
		return
	}
	m.playing = false
	TrySend(m.broker.ToPlayer, any(IsPlayingMsg{false}))
}

// Started returns a Bool to toggle whether playback has started or not.
func (m *Play) Started() Bool { return MakeBool((*playStarted)(m)) }

type playStarted Play

func (m *playStarted) Value() bool { return m.playing }
func (m *playStarted) SetValue(val bool) {
	m.playing = val
	if m.playing {
		(*Model)(m).setPanic(false)
		(*Model)(m).sendStrumToPlayer()
		TrySend(m.broker.ToPlayer, any(StartPlayMsg{}))
	} else {
		TrySend(m.broker.ToPlayer, any(IsPlayingMsg{val}))
	}
}
func (m *playStarted) Enabled() bool { return m.playing || len(m.derived.strum) > 0 }

// Panicked returns a Bool to toggle whether the synth is in panic mode or not.
func (m *Play) Panicked() Bool { return MakeBool((*playPanicked)(m)) }

type playPanicked Model

func (m *playPanicked) Value() bool       { return m.panic }
func (m *playPanicked) SetValue(val bool) { (*Model)(m).setPanic(val) }

// IsLooping returns a Bool to toggle whether the strum repeats or plays once.
func (m *Play) IsLooping() Bool { return MakeBool((*playIsLooping)(m)) }

type playIsLooping Play

func (m *playIsLooping) Value() bool { return m.loop }
func (t *playIsLooping) SetValue(val bool) {
	t.loop = val
	TrySend(t.broker.ToPlayer, any(LoopMsg{val}))
}

// BPM returns an Int controlling the strum tempo. The tempo is a preview
// setting of the editor, not part of the diagram, so it is not undoable.
func (m *Play) BPM() Int { return MakeInt((*playBPM)(m)) }

type playBPM Play

func (v *playBPM) Value() int { return v.bpm }
func (v *playBPM) SetValue(value int) bool {
	v.bpm = value
	TrySend(v.broker.ToPlayer, any(BPMMsg{value}))
	return true
}
func (v *playBPM) Range() RangeInclusive { return RangeInclusive{minBPM, maxBPM} }

// Octave returns an Int controlling the octave for jamming notes on the
// computer keyboard.
func (m *Play) Octave() Int { return MakeInt((*playOctave)(m)) }

type playOctave Play

func (v *playOctave) Value() int              { return v.octave }
func (v *playOctave) SetValue(value int) bool { v.octave = value; return true }
func (v *playOctave) Range() RangeInclusive   { return RangeInclusive{0, 9} }

func (m *Model) setPanic(val bool) {
	if m.panic != val {
		m.panic = val
		TrySend(m.broker.ToPlayer, any(PanicMsg{val}))
	}
}

// sendStrumToPlayer sends the current strum sequence and tempo to the player.
// The slice is cloned because the player reads it from another goroutine.
func (m *Model) sendStrumToPlayer() {
	TrySend(m.broker.ToPlayer, any(slices.Clone(m.derived.strum)))
	TrySend(m.broker.ToPlayer, any(BPMMsg{m.bpm}))
	TrySend(m.broker.ToPlayer, any(LoopMsg{m.loop}))
}

// PitchAt returns the pitch sounding at the given board position.
func PitchAt(p otelauta.Position) byte {
	return byte(otelauta.StandardTuning.Pitch(p.String, p.Fret))
}
