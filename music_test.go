package otelauta_test

import (
	"errors"
	"testing"

	"github.com/kvirta/otelauta"
)

func TestParsePitchClass(t *testing.T) {
	for i := 0; i < otelauta.NumPitchClasses; i++ {
		name := otelauta.PitchClass(i).String()
		got, err := otelauta.ParsePitchClass(name)
		if err != nil {
			t.Fatalf("ParsePitchClass(%q) returned error: %v", name, err)
		}
		if got != otelauta.PitchClass(i) {
			t.Errorf("ParsePitchClass(%q) = %d, want %d", name, got, i)
		}
	}
	if _, err := otelauta.ParsePitchClass("H"); !errors.Is(err, otelauta.ErrUnknownRoot) {
		t.Errorf("ParsePitchClass(\"H\") error = %v, want ErrUnknownRoot", err)
	}
	if _, err := otelauta.ParsePitchClass("e"); !errors.Is(err, otelauta.ErrUnknownRoot) {
		t.Errorf("ParsePitchClass(\"e\") error = %v, want ErrUnknownRoot", err)
	}
}

func TestPitchClassNames(t *testing.T) {
	table := map[otelauta.PitchClass]string{0: "C", 1: "C#", 4: "E", 9: "A", 11: "B"}
	for pc, want := range table {
		if got := pc.String(); got != want {
			t.Errorf("PitchClass(%d).String() = %q, want %q", pc, got, want)
		}
	}
}

func TestIntervalLabels(t *testing.T) {
	want := []string{"1", "b2", "2", "b3", "3", "4", "b5", "5", "b6", "6", "b7", "7"}
	for offset, label := range want {
		if got := otelauta.IntervalLabel(offset); got != label {
			t.Errorf("IntervalLabel(%d) = %q, want %q", offset, got, label)
		}
	}
	if got := otelauta.IntervalLabel(12); got != "1" {
		t.Errorf("IntervalLabel(12) = %q, want wrap to \"1\"", got)
	}
}

func TestScaleByName(t *testing.T) {
	for _, name := range []string{"major", "minor", "pentatonic", "blues", "chromatic"} {
		s, err := otelauta.ScaleByName(name)
		if err != nil {
			t.Fatalf("ScaleByName(%q) returned error: %v", name, err)
		}
		if len(s.Offsets) == 0 || s.Offsets[0] != 0 {
			t.Errorf("scale %q does not start with the root offset: %v", name, s.Offsets)
		}
		for i := 1; i < len(s.Offsets); i++ {
			if s.Offsets[i] <= s.Offsets[i-1] || s.Offsets[i] > 11 {
				t.Errorf("scale %q offsets not unique/sorted/in range: %v", name, s.Offsets)
			}
		}
	}
	if _, err := otelauta.ScaleByName("phrygian"); !errors.Is(err, otelauta.ErrUnknownScale) {
		t.Errorf("ScaleByName(\"phrygian\") error = %v, want ErrUnknownScale", err)
	}
}
