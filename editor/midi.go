package editor

import "strings"

type MIDIModel Model

func (m *Model) MIDI() *MIDIModel { return (*MIDIModel)(m) }

type (
	midiState struct {
		noteEventsToGui bool

		context MIDIContext
	}

	// MIDIContext is the gateway to a MIDI driver. The player drains the
	// buffered note events through the PlayerProcessContext side, so the
	// plucks stay sample accurate. NullMIDIContext can be used when MIDI
	// support is not compiled in.
	MIDIContext interface {
		PlayerProcessContext
		InputDevices(yield func(MIDIDevice) bool)
		Close()
	}

	// MIDIDevice is an input device of a MIDIContext. Opening a device closes
	// the previously open one; the context has at most one device open.
	MIDIDevice interface {
		Open() error
		String() string
	}

	// NoteEvent is a note on/off from a MIDI input device, on its way to the
	// GUI. The router forwards the events only while the inputting mode is
	// on; plucking the strings does not go through here but through the
	// PlayerProcessContext, so it stays sample accurate.
	NoteEvent struct {
		On    bool
		Pitch byte
	}
)

// InputDevices iterates the MIDI input devices, for the MIDI menu.
func (m *MIDIModel) InputDevices(yield func(MIDIDevice) bool) {
	if m.midi.context == nil {
		return
	}
	m.midi.context.InputDevices(yield)
}

// InputtingNotes returns a Bool controlling whether incoming MIDI notes
// toggle the matching cells on the board, in addition to plucking strings.
func (m *MIDIModel) InputtingNotes() Bool { return MakeBool((*midiInputtingNotes)(m)) }

type midiInputtingNotes Model

func (m *midiInputtingNotes) Value() bool { return m.midi.noteEventsToGui }
func (m *midiInputtingNotes) SetValue(val bool) {
	m.midi.noteEventsToGui = val
	TrySend(m.broker.ToMIDIRouter, any(setNoteEventsToGUI(val)))
}

type setNoteEventsToGUI bool

// RunMIDIRouter routes the MIDI note events until broker.CloseMIDIRouter is
// signaled. Run it in its own goroutine.
func RunMIDIRouter(broker *Broker) {
	noteEventsToGUI := false
	for {
		select {
		case <-broker.CloseMIDIRouter:
			close(broker.FinishedMIDIRouter)
			return
		case msg := <-broker.ToMIDIRouter:
			switch m := msg.(type) {
			case setNoteEventsToGUI:
				noteEventsToGUI = bool(m)
			case *NoteEvent:
				if noteEventsToGUI {
					TrySend(broker.ToGUI, msg)
				}
			}
		}
	}
}

// FindMIDIDeviceByPrefix returns the first input device whose name starts with
// the given prefix, for connecting a device from the command line.
func FindMIDIDeviceByPrefix(context MIDIContext, prefix string) (ret MIDIDevice, ok bool) {
	context.InputDevices(func(d MIDIDevice) bool {
		if strings.HasPrefix(d.String(), prefix) {
			ret, ok = d, true
			return false
		}
		return true
	})
	return ret, ok
}

// NullMIDIContext is a mockup MIDIContext if you don't want to create a real
// one.
type NullMIDIContext struct{ NullPlayerProcessContext }

func (m NullMIDIContext) InputDevices(yield func(MIDIDevice) bool) {}
func (m NullMIDIContext) Close()                                   {}
