package otelauta_test

import (
	"testing"

	"github.com/kvirta/otelauta"
	"github.com/kvirta/otelauta/pluck"
)

func TestSamplesPerNote(t *testing.T) {
	for _, test := range []struct {
		bpm, expected int
	}{
		{120, 11025},
		{60, 22050},
		{300, 4410},
		{0, otelauta.SampleRate},
		{-3, otelauta.SampleRate},
	} {
		if got := otelauta.SamplesPerNote(test.bpm); got != test.expected {
			t.Errorf("SamplesPerNote(%v) = %v, expected %v", test.bpm, got, test.expected)
		}
	}
}

func TestPlayEmptyStrumFails(t *testing.T) {
	if _, err := otelauta.Play(pluck.Synther{}, nil, 120, nil); err == nil {
		t.Errorf("expected an error for an empty strum")
	}
}

func TestPlayLengthAndProgress(t *testing.T) {
	strum := []otelauta.StrumNote{
		{Pos: otelauta.Position{String: 5, Fret: 0}, Pitch: 40},
		{Pos: otelauta.Position{String: 4, Fret: 2}, Pitch: 47},
		{Pos: otelauta.Position{String: 3, Fret: 2}, Pitch: 52},
	}
	var reported []float32
	buffer, err := otelauta.Play(pluck.Synther{}, strum, 120, func(p float32) {
		reported = append(reported, p)
	})
	if err != nil {
		t.Fatalf("Play failed: %v", err)
	}
	expected := len(strum)*otelauta.SamplesPerNote(120) + 2*otelauta.SampleRate
	if len(buffer) != expected {
		t.Errorf("buffer length %v, expected %v", len(buffer), expected)
	}
	sounding := false
	for _, frame := range buffer {
		if frame[0] != 0 || frame[1] != 0 {
			sounding = true
			break
		}
	}
	if !sounding {
		t.Errorf("rendered strum is all silence")
	}
	if len(reported) == 0 {
		t.Fatalf("progress was never reported")
	}
	for i := 1; i < len(reported); i++ {
		if reported[i] < reported[i-1] {
			t.Errorf("progress went backwards: %v after %v", reported[i], reported[i-1])
		}
	}
	if last := reported[len(reported)-1]; last != 1 {
		t.Errorf("final progress %v, expected 1", last)
	}
}
