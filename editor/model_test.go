package editor_test

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"testing"

	"github.com/kvirta/otelauta/editor"
	"github.com/kvirta/otelauta/pluck"
)

type NullContext struct{}

func (NullContext) NextEvent(frame int) (event editor.MIDINoteEvent, ok bool) {
	return editor.MIDINoteEvent{}, false
}

func (NullContext) FinishBlock(frame int) {}

type modelFuzzState struct {
	model     *editor.Model
	clipboard []byte
	file      []byte
}

type myWriteCloser struct {
	*bytes.Buffer
}

func (mwc *myWriteCloser) Close() error {
	// Noop
	return nil
}

func (s *modelFuzzState) Iterate(yield func(string, func(p string, t *testing.T)) bool, seed int) {
	// Ints
	s.IterateInt("FretCount", s.model.FretCount(), yield, seed)
	s.IterateInt("StartFret", s.model.StartFret(), yield, seed)
	s.IterateInt("Root", s.model.Root(), yield, seed)
	s.IterateInt("Scale", s.model.Scale(), yield, seed)
	s.IterateInt("Labels", s.model.Labels(), yield, seed)
	s.IterateInt("Theme", s.model.Theme(), yield, seed)
	s.IterateInt("BPM", s.model.Play().BPM(), yield, seed)
	s.IterateInt("Octave", s.model.Play().Octave(), yield, seed)
	// Lists
	s.IterateList("ScaleList", s.model.ScaleList(), yield, seed)
	s.IterateList("ThemeList", s.model.ThemeList(), yield, seed)
	// Bools
	s.IterateBool("Started", s.model.Play().Started(), yield, seed)
	s.IterateBool("Panicked", s.model.Play().Panicked(), yield, seed)
	s.IterateBool("IsLooping", s.model.Play().IsLooping(), yield, seed)
	s.IterateBool("InputtingNotes", s.model.MIDI().InputtingNotes(), yield, seed)
	// Strings
	s.IterateString("FilePath", s.model.FilePath(), yield, seed)
	s.IterateString("Title", s.model.Title(), yield, seed)
	// Actions
	s.IterateAction("ToggleCell", s.model.ToggleCell(), yield, seed)
	s.IterateAction("ClearSelection", s.model.ClearSelection(), yield, seed)
	s.IterateAction("AddFret", s.model.AddFret(), yield, seed)
	s.IterateAction("SubtractFret", s.model.SubtractFret(), yield, seed)
	s.IterateAction("AddOctave", s.model.AddOctave(), yield, seed)
	s.IterateAction("SubtractOctave", s.model.SubtractOctave(), yield, seed)
	s.IterateAction("Undo", s.model.History().Undo(), yield, seed)
	s.IterateAction("Redo", s.model.History().Redo(), yield, seed)
	s.IterateAction("Strum", s.model.Play().Strum(), yield, seed)
	s.IterateAction("Stop", s.model.Play().Stop(), yield, seed)
	// Tables
	s.IterateTable("Board", s.model.Board().Table(), yield, seed)
	// File reading
	if s.file != nil {
		yield("ReadDiagram", func(p string, t *testing.T) {
			reader := bytes.NewReader(s.file)
			readCloser := io.NopCloser(reader)
			s.model.ReadDiagram(readCloser)
		})
	}
	// File saving
	yield("WriteDiagram", func(p string, t *testing.T) {
		writer := bytes.NewBuffer(nil)
		writeCloser := &myWriteCloser{writer}
		s.model.WriteDiagram(writeCloser)
		s.file = writer.Bytes()
	})
}

func (s *modelFuzzState) IterateInt(name string, i editor.Int, yield func(string, func(p string, t *testing.T)) bool, seed int) {
	r := i.Range()
	yield(name+".Set", func(p string, t *testing.T) {
		i.SetValue(seed%(r.Max-r.Min+10) - 5 + r.Min)
	})
	yield(name+".Value", func(p string, t *testing.T) {
		if v := i.Value(); v < r.Min || v > r.Max {
			r := i.Range()
			t.Errorf("Path: %s %s value out of range [%d,%d]: %d", p, name, r.Min, r.Max, v)
		}
	})
}

func (s *modelFuzzState) IterateAction(name string, a editor.Action, yield func(string, func(p string, t *testing.T)) bool, seed int) {
	yield(name+".Do", func(p string, t *testing.T) {
		a.Do()
	})
}

func (s *modelFuzzState) IterateBool(name string, b editor.Bool, yield func(string, func(p string, t *testing.T)) bool, seed int) {
	yield(name+".Set", func(p string, t *testing.T) {
		b.SetValue(seed%2 == 0)
	})
	yield(name+".Toggle", func(p string, t *testing.T) {
		b.Toggle()
	})
}

func (s *modelFuzzState) IterateString(name string, str editor.String, yield func(string, func(p string, t *testing.T)) bool, seed int) {
	yield(name+".Set", func(p string, t *testing.T) {
		str.SetValue(fmt.Sprintf("%d", seed))
	})
}

func (s *modelFuzzState) IterateList(name string, l editor.List, yield func(string, func(p string, t *testing.T)) bool, seed int) {
	yield(name+".SetSelected", func(p string, t *testing.T) {
		l.SetSelected(seed%50 - 16)
	})
	yield(name+".Count", func(p string, t *testing.T) {
		if c := l.Count(); c > 0 {
			if l.Selected() < 0 || l.Selected() >= c {
				t.Errorf("Path: %s %s selected out of range: %d", p, name, l.Selected())
			}
		} else {
			if l.Selected() != 0 {
				t.Errorf("Path: %s %s selected out of range: %d", p, name, l.Selected())
			}
		}
	})
	yield(name+".SetSelected2", func(p string, t *testing.T) {
		l.SetSelected2(seed%50 - 16)
	})
	yield(name+".Count2", func(p string, t *testing.T) {
		if c := l.Count(); c > 0 {
			if l.Selected2() < 0 || l.Selected2() >= c {
				t.Errorf("Path: %s List selected2 out of range: %d", p, l.Selected2())
			}
		} else {
			if l.Selected2() != 0 {
				t.Errorf("Path: %s List selected2 out of range: %d", p, l.Selected2())
			}
		}
	})
	yield(name+".MoveElements", func(p string, t *testing.T) {
		l.MoveElements(seed%2*2 - 1)
	})
	yield(name+".CopyElements", func(p string, t *testing.T) {
		s.clipboard, _ = l.CopyElements()
	})
	yield(name+".PasteElements", func(p string, t *testing.T) {
		l.PasteElements(s.clipboard)
	})
}

func (s *modelFuzzState) IterateTable(name string, table editor.Table, yield func(string, func(p string, t *testing.T)) bool, seed int) {
	yield(name+".SetCursor", func(p string, t *testing.T) {
		table.SetCursor(editor.Point{X: seed % 16, Y: seed * 1337 % 16})
	})
	yield(name+".SetCursor2", func(p string, t *testing.T) {
		table.SetCursor2(editor.Point{X: seed % 16, Y: seed * 1337 % 16})
	})
	yield(name+".Cursor", func(p string, t *testing.T) {
		if c := table.Cursor(); c.X < 0 || (c.X >= table.Width() && table.Width() > 0) || c.Y < 0 || (c.Y >= table.Height() && table.Height() > 0) {
			t.Errorf("Path: %s Table cursor out of range: %v", p, c)
		}
	})
	yield(name+".Cursor2", func(p string, t *testing.T) {
		if c := table.Cursor2(); c.X < 0 || (c.X >= table.Width() && table.Width() > 0) || c.Y < 0 || (c.Y >= table.Height() && table.Height() > 0) {
			t.Errorf("Path: %s Table cursor2 out of range: %v", p, c)
		}
	})
	yield(name+".SetCursorX", func(p string, t *testing.T) {
		table.SetCursorX(seed % 16)
	})
	yield(name+".SetCursorY", func(p string, t *testing.T) {
		table.SetCursorY(seed % 16)
	})
	yield(name+".MoveCursor", func(p string, t *testing.T) {
		table.MoveCursor(seed%2*2-1, seed%2*2-1)
	})
	yield(name+".Copy", func(p string, t *testing.T) {
		s.clipboard, _ = table.Copy()
	})
	yield(name+".Paste", func(p string, t *testing.T) {
		table.Paste(s.clipboard)
	})
	yield(name+".Clear", func(p string, t *testing.T) {
		table.Clear()
	})
	yield(name+".Fill", func(p string, t *testing.T) {
		table.Fill(seed % 16)
	})
	yield(name+".Add", func(p string, t *testing.T) {
		table.Add((seed>>1)%16, seed%2 == 0)
	})
}

func FuzzModel(f *testing.F) {
	seed := make([]byte, 1)
	for i := range seed {
		seed[i] = byte(i)
	}
	f.Add(seed)
	f.Fuzz(func(t *testing.T, slice []byte) {
		reader := bytes.NewReader(slice)
		synther := pluck.Synther{}
		broker := editor.NewBroker()
		model := editor.NewModel(broker, synther, editor.NullMIDIContext{}, "")
		player := editor.NewPlayer(broker, synther)
		buf := make([][2]float32, 2048)
		closeChan := make(chan struct{})
		go func() {
		loop:
			for {
				select {
				case <-closeChan:
					break loop
				default:
					ctx := NullContext{}
					player.Process(buf, ctx)
				}
			}
		}()
		state := modelFuzzState{model: model}
		count := 0
		state.Iterate(func(n string, f func(p string, t *testing.T)) bool {
			count++
			return true
		}, 0)
		totalPath := ""
		for m, err := binary.ReadVarint(reader); err == nil; m, err = binary.ReadVarint(reader) {
			seed := int(m)
			index := seed % count
			state.Iterate(func(n string, f func(p string, t *testing.T)) bool {
				if index == 0 {
					totalPath += n + ". "
					f(totalPath, t)
				}
				index--
				return index > 0
			}, seed)
			for _, a := range model.Alerts().Iterate {
				if a.Name == "PlayerCrash" {
					t.Errorf("Path: %s the player crashed: %s", totalPath, a.Message)
				}
			}
		}
		closeChan <- struct{}{}
	})
}
