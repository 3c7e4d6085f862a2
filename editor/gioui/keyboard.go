package gioui

import (
	"github.com/kvirta/otelauta/editor"
)

type (
	// Keyboard is used to associate the keys of a keyboard to currently
	// sounding notes, so that each press gets released even if the cursor or
	// the octave changed while the key was held down. You can use any type T
	// to identify each key; T should be a comparable type.
	Keyboard[T comparable] struct {
		broker  *editor.Broker
		pressed map[T]editor.NoteID
	}
)

func MakeKeyboard[T comparable](broker *editor.Broker) Keyboard[T] {
	return Keyboard[T]{
		broker:  broker,
		pressed: make(map[T]editor.NoteID),
	}
}

func (t *Keyboard[T]) Press(key T, id editor.NoteID) {
	if _, ok := t.pressed[key]; ok {
		return // the key is already sounding a note, do not send a new event
	}
	if editor.TrySend(t.broker.ToPlayer, any(editor.NoteOnMsg{NoteID: id})) {
		t.pressed[key] = id
	}
}

func (t *Keyboard[T]) Release(key T) {
	if id, ok := t.pressed[key]; ok {
		editor.TrySend(t.broker.ToPlayer, any(editor.NoteOffMsg{NoteID: id}))
		delete(t.pressed, key)
	}
}

func (t *Keyboard[T]) ReleaseAll() {
	for key := range t.pressed {
		t.Release(key)
	}
}
