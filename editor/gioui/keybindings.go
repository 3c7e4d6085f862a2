package gioui

import (
	"bytes"
	_ "embed"
	"fmt"
	"strconv"
	"strings"

	"gioui.org/io/clipboard"
	"gioui.org/io/key"
	"github.com/kvirta/otelauta/editor"
	"gopkg.in/yaml.v3"
)

type (
	KeyAction string

	KeyBinding struct {
		Key                                        string
		Shortcut, Ctrl, Command, Shift, Alt, Super bool
		Action                                     string
	}
)

var keyBindingMap = map[key.Event]string{}
var keyActionMap = map[KeyAction]string{} // holds an informative string of the first key bound to an action

//go:embed keybindings.yml
var defaultKeyBindings []byte

func init() {
	var keyBindings, userKeybindings []KeyBinding
	dec := yaml.NewDecoder(bytes.NewReader(defaultKeyBindings))
	dec.KnownFields(true)
	if err := dec.Decode(&keyBindings); err != nil {
		panic(fmt.Errorf("failed to unmarshal default keybindings: %w", err))
	}
	if _, err := ReadCustomConfigYml("keybindings.yml", &userKeybindings); err == nil {
		keyBindings = append(keyBindings, userKeybindings...)
	}

	for _, kb := range keyBindings {
		var mods key.Modifiers
		if kb.Shortcut {
			mods |= key.ModShortcut
		}
		if kb.Ctrl {
			mods |= key.ModCtrl
		}
		if kb.Command {
			mods |= key.ModCommand
		}
		if kb.Shift {
			mods |= key.ModShift
		}
		if kb.Alt {
			mods |= key.ModAlt
		}
		if kb.Super {
			mods |= key.ModSuper
		}

		keyEvent := key.Event{Name: key.Name(kb.Key), Modifiers: mods, State: key.Press}
		action, ok := keyBindingMap[keyEvent] // if this key has been previously bound, remove it from the hint map
		if ok {
			delete(keyActionMap, KeyAction(action))
		}
		if kb.Action == "" { // unbind
			delete(keyBindingMap, keyEvent)
		} else { // bind
			keyBindingMap[keyEvent] = kb.Action
			// last binding of the some action wins for displaying the hint
			modString := strings.Replace(mods.String(), "-", "+", -1)
			text := kb.Key
			if modString != "" {
				text = modString + "+" + text
			}
			keyActionMap[KeyAction(kb.Action)] = text
		}
	}
}

func makeHint(hint, format, action string) string {
	if keyActionMap[KeyAction(action)] != "" {
		return hint + fmt.Sprintf(format, keyActionMap[KeyAction(action)])
	}
	return hint
}

// KeyEvent handles incoming key events and returns true if repaint is needed.
func (t *Fretboard) KeyEvent(e key.Event, gtx C) {
	if e.State == key.Release {
		t.KeyNoteMap.Release(e.Name)
		return
	}
	action, ok := keyBindingMap[e]
	if !ok {
		return
	}
	switch action {
	// Actions
	case "NewDiagram":
		t.NewDiagram().Do()
	case "OpenDiagram":
		t.OpenDiagram().Do()
	case "SaveDiagram":
		t.SaveDiagram().Do()
	case "SaveDiagramAs":
		t.SaveDiagramAs().Do()
	case "Export":
		t.Export().Do()
	case "ExportWav":
		t.ExportWav().Do()
	case "ExportPNG":
		t.ExportPNG().Do()
	case "ExportSVG":
		t.ExportSVG().Do()
	case "Quit":
		t.RequestQuit().Do()
	case "Undo":
		t.History().Undo().Do()
	case "Redo":
		t.History().Redo().Do()
	case "AddFret":
		t.AddFret().Do()
	case "SubtractFret":
		t.SubtractFret().Do()
	case "AddOctave":
		t.AddOctave().Do()
	case "SubtractOctave":
		t.SubtractOctave().Do()
	case "ToggleCell":
		t.ToggleCell().Do()
	case "ClearSelection":
		t.ClearSelection().Do()
	case "StopStrum":
		t.Play().Stop().Do()
	case "ShowManual":
		t.ShowManual().Do()
	case "ReportBug":
		t.ReportBug().Do()
	case "ShowLicense":
		t.ShowLicense().Do()
	// Booleans
	case "StrumToggle":
		t.Play().Started().Toggle()
	case "PanicToggle":
		t.Play().Panicked().Toggle()
	case "LoopToggle":
		t.Play().IsLooping().Toggle()
	case "InputtingNotesToggle":
		t.MIDI().InputtingNotes().Toggle()
	case "LabelsToggle":
		t.Labels().SetValue(1 - t.Labels().Value())
	// Integers
	case "BPMAdd":
		t.Play().BPM().Add(1)
	case "BPMSubtract":
		t.Play().BPM().Add(-1)
	case "OctaveAdd":
		t.Play().Octave().Add(1)
	case "OctaveSubtract":
		t.Play().Octave().Add(-1)
	case "FretCountAdd":
		t.FretCount().Add(1)
	case "FretCountSubtract":
		t.FretCount().Add(-1)
	case "StartFretAdd":
		t.StartFret().Add(1)
	case "StartFretSubtract":
		t.StartFret().Add(-1)
	// Other miscellaneous
	case "Paste":
		gtx.Execute(clipboard.ReadCmd{Tag: t})
	case "FocusPrev":
		t.FocusPrev(gtx, false)
	case "FocusPrevInto":
		t.FocusPrev(gtx, true)
	case "FocusNext":
		t.FocusNext(gtx, false)
	case "FocusNextInto":
		t.FocusNext(gtx, true)
	default:
		if len(action) > 4 && action[:4] == "Note" {
			val, err := strconv.Atoi(string(action[4:]))
			if err != nil {
				break
			}
			n := val + (t.Play().Octave().Value()+1)*12
			if n < 0 || n > 127 {
				break
			}
			t.KeyNoteMap.Press(e.Name, editor.NoteIDPitch(byte(n)))
		}
	}
}
