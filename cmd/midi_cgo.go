//go:build cgo

package cmd

import (
	"github.com/kvirta/otelauta/editor"
	"github.com/kvirta/otelauta/editor/gomidi"
)

func NewMidiContext(broker *editor.Broker) editor.MIDIContext {
	return gomidi.NewContext(broker)
}
