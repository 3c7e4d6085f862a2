//go:build !cgo

package cmd

import (
	"github.com/kvirta/otelauta/editor"
)

func NewMidiContext(broker *editor.Broker) editor.MIDIContext {
	// with no cgo, we cannot use MIDI, so return a null context
	return editor.NullMIDIContext{}
}
