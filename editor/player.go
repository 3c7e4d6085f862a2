package editor

import (
	"fmt"
	"math"

	"github.com/kvirta/otelauta"
)

type (
	// Player is the audio player for the editor, run in a separate thread. It
	// is controlled by messages from the model and MIDI messages via the
	// context. The player sends status back to the model via the ToModel
	// channel.
	Player struct {
		synth        otelauta.Synth                       // the synth used to render audio
		playing      bool                                 // is the player sequencing the strum or not
		strum        []otelauta.StrumNote                 // the sequence being played
		noteIndex    int                                  // index of the strum note currently sounding
		notetime     int                                  // samples rendered since the current note started
		bpm          int                                  // strum tempo
		loop         bool                                 // restart the strum when it ends
		position     otelauta.Position                    // the board cell currently sounding
		stringLevels [otelauta.NumStrings]float32         // a level that can be used to visualize the vibration of each string
		voices       [otelauta.NumStrings]voice

		synther otelauta.Synther // the synther used to create new synths
		broker  *Broker          // the broker used to communicate with different parts of the editor
	}

	// PlayerProcessContext is the context given to the player when processing
	// audio. It is used to get MIDI events that happen during the current
	// buffer.
	PlayerProcessContext interface {
		NextEvent(frame int) (event MIDINoteEvent, ok bool)
		FinishBlock(frame int)
	}

	// MIDINoteEvent is a MIDI event triggering or releasing a note. The Frame
	// is relative to the start of the current buffer.
	MIDINoteEvent struct {
		Frame    int
		On       bool
		Pitch    byte
		Velocity byte
	}

	// NullPlayerProcessContext is a PlayerProcessContext that has no MIDI
	// events, for use when no MIDI driver is available.
	NullPlayerProcessContext struct{}

	voice struct {
		noteID            int
		sustain           bool
		samplesSinceEvent int
	}
)

// Messages handled by the player. IsPlayingMsg is also sent by the player to
// the model when the strum ends on its own.
type (
	PanicMsg     struct{ bool }
	LoopMsg      struct{ bool }
	BPMMsg       struct{ int }
	StartPlayMsg struct{}
	NoteOnMsg    struct{ NoteID }
	NoteOffMsg   struct{ NoteID }
)

const numRenderTries = 10000

func (NullPlayerProcessContext) NextEvent(frame int) (event MIDINoteEvent, ok bool) {
	return MIDINoteEvent{}, false
}

func (NullPlayerProcessContext) FinishBlock(frame int) {}

func NewPlayer(broker *Broker, synther otelauta.Synther) *Player {
	p := &Player{
		broker:  broker,
		synther: synther,
	}
	p.ensureSynth()
	return p
}

// Process renders audio to the given buffer, trying to fill it completely. If
// the buffer is not filled, the synth is destroyed and an error is sent to
// the model. context tells the player which MIDI events happen during the
// current buffer; they trigger and release notes during processing.
func (p *Player) Process(buffer otelauta.AudioBuffer, context PlayerProcessContext) {
	p.processMessages()

	frame := 0
	midi, midiOk := context.NextEvent(frame)

	for i := 0; i < numRenderTries; i++ {
		for midiOk && frame >= midi.Frame {
			p.handleMidiInput(midi)
			midi, midiOk = context.NextEvent(frame)
		}
		framesUntilMidi := len(buffer)
		if delta := midi.Frame - frame; midiOk && delta < framesUntilMidi {
			framesUntilMidi = delta
		}
		if p.playing && p.notetime >= otelauta.SamplesPerNote(p.bpm) {
			p.advanceNote()
		}
		rendered := framesUntilMidi
		if p.playing {
			if delta := otelauta.SamplesPerNote(p.bpm) - p.notetime; delta < rendered {
				rendered = delta
			}
		}
		if rendered < 0 {
			rendered = 0
		}
		if p.synth != nil {
			if err := p.synth.Render(buffer[:rendered]); err != nil {
				for j := 0; j < rendered; j++ {
					buffer[j] = [2]float32{}
				}
				p.synth = nil
				p.SendAlert("PlayerCrash", fmt.Sprintf("synth.Render: %s", err.Error()), Error)
			}
		} else {
			for j := 0; j < rendered; j++ {
				buffer[j] = [2]float32{}
			}
		}

		bufPtr := p.broker.GetAudioBuffer() // borrow a buffer from the broker
		*bufPtr = append(*bufPtr, buffer[:rendered]...)
		if len(*bufPtr) == 0 || !TrySend(p.broker.ToModel, MsgToModel{Data: bufPtr}) {
			// if the buffer is empty or sending the rendered waveform to Model
			// failed, return the buffer to the broker
			p.broker.PutAudioBuffer(bufPtr)
		}
		buffer = buffer[rendered:]
		frame += rendered
		p.notetime += rendered
		for i := range p.voices {
			p.voices[i].samplesSinceEvent += rendered
		}
		alpha := float32(math.Exp(-float64(rendered) / 15000))
		for i, state := range p.voices {
			if state.sustain {
				p.stringLevels[i] = (p.stringLevels[i]-0.5)*alpha + 0.5
			} else {
				p.stringLevels[i] *= alpha
			}
		}
		// when the buffer is full, return
		if len(buffer) == 0 {
			p.send(nil)
			context.FinishBlock(frame)
			return
		}
	}
	// we were not able to fill the buffer with numRenderTries attempts,
	// destroy the synth and throw an error
	p.synth = nil
	p.SendAlert("PlayerCrash", fmt.Sprintf("synth did not fill the audio buffer even with %d render calls", numRenderTries), Error)
}

func (p *Player) handleMidiInput(midi MIDINoteEvent) {
	if midi.On {
		p.triggerPitch(midi.Pitch)
	} else {
		p.release(idForPitch(midi.Pitch))
	}
}

func (p *Player) advanceNote() {
	if len(p.strum) == 0 {
		p.stopSequencing()
		return
	}
	p.noteIndex++
	if p.noteIndex >= len(p.strum) {
		if !p.loop {
			p.stopSequencing()
			return
		}
		p.noteIndex = 0
	}
	n := p.strum[p.noteIndex]
	p.position = n.Pos
	p.send(nil) // just send levels and position information
	p.triggerString(n.Pos.String, n.Pitch)
	p.notetime = 0
}

func (p *Player) stopSequencing() {
	p.send(IsPlayingMsg{bool: false})
	p.playing = false
	p.noteIndex = -1
	p.notetime = 0
	p.releaseAll()
}

func (p *Player) processMessages() {
loop:
	for { // process new messages
		select {
		case msg := <-p.broker.ToPlayer:
			switch m := msg.(type) {
			case PanicMsg:
				if m.bool {
					p.synth = nil
				} else {
					p.ensureSynth()
				}
			case []otelauta.StrumNote:
				p.strum = m
				if p.noteIndex >= len(m) {
					p.noteIndex = -1
				}
			case BPMMsg:
				p.bpm = m.int
			case LoopMsg:
				p.loop = m.bool
			case IsPlayingMsg:
				p.playing = m.bool
				if !p.playing {
					p.releaseAll()
				} else {
					TrySend(p.broker.ToModel, MsgToModel{Reset: true})
				}
			case StartPlayMsg:
				p.playing = true
				p.noteIndex = -1
				p.notetime = math.MaxInt
				p.ensureSynth()
				TrySend(p.broker.ToModel, MsgToModel{Reset: true})
			case NoteOnMsg:
				if m.HasString {
					p.triggerString(m.String, m.Pitch)
				} else {
					p.triggerPitch(m.Pitch)
				}
			case NoteOffMsg:
				if m.HasString {
					p.release(idForString(m.String))
				} else {
					p.release(idForPitch(m.Pitch))
				}
			default:
				// ignore unknown messages
			}
		default:
			break loop
		}
	}
}

func (p *Player) SendAlert(name, message string, priority AlertPriority) {
	p.send(Alert{
		Name:     name,
		Priority: priority,
		Message:  message,
		Duration: defaultAlertDuration,
	})
}

func (p *Player) ensureSynth() {
	if p.synth != nil {
		return
	}
	var err error
	p.synth, err = p.synther.Synth()
	if err != nil {
		p.synth = nil
		p.SendAlert("PlayerCrash", fmt.Sprintf("synther.Synth: %v", err), Error)
	}
}

// all sends from the player are non-blocking, to ensure that the player
// thread cannot end up in a dead-lock
func (p *Player) send(message any) {
	TrySend(p.broker.ToModel, MsgToModel{
		HasPanicPosLevels: true,
		Panic:             p.synth == nil,
		PlayPosition:      p.position,
		StringLevels:      p.stringLevels,
		Data:              message,
	})
}

func (p *Player) triggerString(str int, pitch byte) {
	if str < 0 || str >= otelauta.NumStrings {
		return
	}
	ID := idForString(str)
	p.release(ID)
	p.trigger(str, str+1, pitch, ID)
}

// triggerPitch plucks a note without a target string, choosing among the
// strings that can reach the pitch.
func (p *Player) triggerPitch(pitch byte) {
	ID := idForPitch(pitch)
	p.release(ID)
	p.trigger(firstStringForPitch(pitch), otelauta.NumStrings, pitch, ID)
}

func (p *Player) trigger(voiceStart, voiceEnd int, pitch byte, ID int) {
	if p.synth == nil {
		return
	}
	var age int = 0
	oldestReleased := false
	oldestVoice := 0
	for i := voiceStart; i < voiceEnd; i++ {
		// find a suitable voice to trigger. if the voice has been released,
		// then we prefer to trigger that over a voice that is still playing.
		// in case two voices are both playing or both are released, we prefer
		// the older one
		if (!p.voices[i].sustain && !oldestReleased) ||
			(!p.voices[i].sustain == oldestReleased && p.voices[i].samplesSinceEvent >= age) {
			oldestVoice = i
			oldestReleased = !p.voices[i].sustain
			age = p.voices[i].samplesSinceEvent
		}
	}
	p.voices[oldestVoice] = voice{noteID: ID, sustain: true, samplesSinceEvent: 0}
	p.stringLevels[oldestVoice] = 1.0
	p.synth.Trigger(oldestVoice, pitch)
	TrySend(p.broker.ToModel, MsgToModel{TriggerString: oldestVoice + 1})
}

func (p *Player) release(ID int) {
	if p.synth == nil {
		return
	}
	for i := range p.voices {
		if p.voices[i].noteID == ID && p.voices[i].sustain {
			p.voices[i].sustain = false
			p.voices[i].samplesSinceEvent = 0
			p.synth.Release(i)
			return
		}
	}
}

func (p *Player) releaseAll() {
	for i := range p.voices {
		if p.voices[i].sustain {
			p.voices[i].sustain = false
			p.voices[i].samplesSinceEvent = 0
			if p.synth != nil {
				p.synth.Release(i)
			}
		}
	}
}

// firstStringForPitch returns the lowest-indexed string whose open pitch does
// not exceed the note. The strings are ordered from high to low, so this is
// the highest string the note fits on; the strings below it can all reach the
// note with some fret.
func firstStringForPitch(pitch byte) int {
	for i := 0; i < otelauta.NumStrings; i++ {
		if int(pitch) >= otelauta.StandardTuning[i].Pitch {
			return i
		}
	}
	return otelauta.NumStrings - 1
}

// voices triggered by different sources need an identifier telling who
// triggered them. negative values are for voices triggered on a specific
// string; positive values are for notes triggered by pitch only, e.g. MIDI
// input or jamming on the computer keyboard.
func idForPitch(pitch byte) int {
	return int(pitch)
}

func idForString(str int) int {
	return -1 - str
}
