package otelauta_test

import (
	"errors"
	"testing"

	"github.com/kvirta/otelauta"
)

func TestResolvePitchClassesInRange(t *testing.T) {
	chromatic, _ := otelauta.ScaleByName("chromatic")
	for s := 0; s < otelauta.NumStrings; s++ {
		for fret := 0; fret <= 24; fret++ {
			c := otelauta.StandardTuning.Resolve(s, fret, 0, chromatic)
			if c.Note < 0 || c.Note >= otelauta.NumPitchClasses {
				t.Fatalf("string %d fret %d: pitch class %d out of range", s, fret, c.Note)
			}
			if !c.InScale {
				t.Errorf("string %d fret %d: not in chromatic scale", s, fret)
			}
		}
	}
}

func TestResolveLowEOctave(t *testing.T) {
	root, err := otelauta.ParsePitchClass("E")
	if err != nil {
		t.Fatal(err)
	}
	c, err := otelauta.ResolveCell(otelauta.StandardTuning, 5, 12, root, "major")
	if err != nil {
		t.Fatal(err)
	}
	if c.NoteLabel() != "E" {
		t.Errorf("note = %q, want E", c.NoteLabel())
	}
	if c.IntervalLabel() != "1" {
		t.Errorf("interval = %q, want 1", c.IntervalLabel())
	}
	if !c.IsRoot || !c.InScale {
		t.Errorf("isRoot = %v, inScale = %v, want both true", c.IsRoot, c.InScale)
	}
}

func TestResolveRootAlwaysIntervalOne(t *testing.T) {
	major, _ := otelauta.ScaleByName("major")
	for root := otelauta.PitchClass(0); root < otelauta.NumPitchClasses; root++ {
		for s := 0; s < otelauta.NumStrings; s++ {
			for fret := 0; fret <= 24; fret++ {
				c := otelauta.StandardTuning.Resolve(s, fret, root, major)
				if (c.Note == root) != c.IsRoot {
					t.Fatalf("root %v string %d fret %d: note %v isRoot %v", root, s, fret, c.Note, c.IsRoot)
				}
				if c.IsRoot && c.IntervalLabel() != "1" {
					t.Fatalf("root %v string %d fret %d: root cell labeled %q", root, s, fret, c.IntervalLabel())
				}
			}
		}
	}
}

func TestMajorMinorDiff(t *testing.T) {
	major, _ := otelauta.ScaleByName("major")
	minor, _ := otelauta.ScaleByName("minor")
	// the scales differ exactly at the 3rd, 6th and 7th degrees
	differ := map[int]bool{3: true, 4: true, 8: true, 9: true, 10: true, 11: true}
	for s := 0; s < otelauta.NumStrings; s++ {
		for fret := 0; fret <= 24; fret++ {
			maj := otelauta.StandardTuning.Resolve(s, fret, 0, major)
			mnr := otelauta.StandardTuning.Resolve(s, fret, 0, minor)
			if maj.Offset != mnr.Offset {
				t.Fatalf("string %d fret %d: offsets disagree %d vs %d", s, fret, maj.Offset, mnr.Offset)
			}
			if (maj.InScale != mnr.InScale) != differ[maj.Offset] {
				t.Errorf("string %d fret %d offset %d: major %v minor %v", s, fret, maj.Offset, maj.InScale, mnr.InScale)
			}
		}
	}
}

func TestResolveCellUnknownScale(t *testing.T) {
	_, err := otelauta.ResolveCell(otelauta.StandardTuning, 0, 1, 0, "dorian")
	if !errors.Is(err, otelauta.ErrUnknownScale) {
		t.Errorf("error = %v, want ErrUnknownScale", err)
	}
}

func TestTuningPitches(t *testing.T) {
	want := []int{64, 59, 55, 50, 45, 40}
	for i, p := range want {
		if got := otelauta.StandardTuning.Pitch(i, 0); got != p {
			t.Errorf("string %d open pitch = %d, want %d", i, got, p)
		}
	}
	if otelauta.StandardTuning.Pitch(5, 12) != 52 {
		t.Errorf("low E fret 12 should sound MIDI 52")
	}
	if otelauta.StandardTuning.PitchClass(5) != 4 {
		t.Errorf("low E pitch class should be E (4)")
	}
}
