package otelauta_test

import (
	"sort"
	"testing"

	"github.com/kvirta/otelauta"
	"gopkg.in/yaml.v2"
)

func TestDiagramClampFretCount(t *testing.T) {
	d := otelauta.NewDiagram()
	d.FretCount = 30
	d.Clamp()
	if d.FretCount != 24 {
		t.Errorf("FretCount 30 clamps to %d, want 24", d.FretCount)
	}
	d.FretCount = 0
	d.Clamp()
	if d.FretCount != 1 {
		t.Errorf("FretCount 0 clamps to %d, want 1", d.FretCount)
	}
	d.StartFret = -2
	d.Clamp()
	if d.StartFret != 0 {
		t.Errorf("StartFret -2 clamps to %d, want 0", d.StartFret)
	}
}

func TestDiagramFretAt(t *testing.T) {
	d := otelauta.NewDiagram()
	d.StartFret = 4
	// fret 0 is never shown; the first column is the fret after StartFret
	for col := 0; col < d.FretCount; col++ {
		if got := d.FretAt(col); got != 5+col {
			t.Errorf("FretAt(%d) = %d, want %d", col, got, 5+col)
		}
	}
}

func TestDiagramToggleSelected(t *testing.T) {
	d := otelauta.NewDiagram()
	cells := []otelauta.Position{{String: 3, Fret: 5}, {String: 0, Fret: 2}, {String: 3, Fret: 1}}
	for _, p := range cells {
		if on := d.ToggleSelected(p); !on {
			t.Errorf("first toggle of %v should select", p)
		}
	}
	if !sort.SliceIsSorted(d.Selection, func(i, j int) bool { return d.Selection[i].Less(d.Selection[j]) }) {
		t.Errorf("selection not sorted: %v", d.Selection)
	}
	if !d.Selected(otelauta.Position{String: 0, Fret: 2}) {
		t.Errorf("cell not reported selected")
	}
	if on := d.ToggleSelected(otelauta.Position{String: 3, Fret: 5}); on {
		t.Errorf("second toggle should deselect")
	}
	if len(d.Selection) != 2 {
		t.Errorf("selection size = %d, want 2", len(d.Selection))
	}
}

func TestDiagramClampSelection(t *testing.T) {
	d := otelauta.NewDiagram()
	d.Selection = []otelauta.Position{
		{String: 2, Fret: 3},
		{String: 2, Fret: 3},
		{String: -1, Fret: 3},
		{String: 6, Fret: 3},
		{String: 1, Fret: 0},
		{String: 0, Fret: 1},
	}
	d.Clamp()
	want := []otelauta.Position{{String: 0, Fret: 1}, {String: 2, Fret: 3}}
	if len(d.Selection) != len(want) {
		t.Fatalf("selection = %v, want %v", d.Selection, want)
	}
	for i := range want {
		if d.Selection[i] != want[i] {
			t.Fatalf("selection = %v, want %v", d.Selection, want)
		}
	}
}

func TestDiagramAppendStrum(t *testing.T) {
	d := otelauta.NewDiagram()
	d.ToggleSelected(otelauta.Position{String: 0, Fret: 2})
	d.ToggleSelected(otelauta.Position{String: 5, Fret: 3})
	d.ToggleSelected(otelauta.Position{String: 5, Fret: 1})
	strum := d.AppendStrum(nil)
	// low strings (high index) pluck first, low fret before high fret
	want := []otelauta.StrumNote{
		{Pos: otelauta.Position{String: 5, Fret: 1}, Pitch: 41},
		{Pos: otelauta.Position{String: 5, Fret: 3}, Pitch: 43},
		{Pos: otelauta.Position{String: 0, Fret: 2}, Pitch: 66},
	}
	if len(strum) != len(want) {
		t.Fatalf("strum = %v, want %v", strum, want)
	}
	for i := range want {
		if strum[i] != want[i] {
			t.Fatalf("strum = %v, want %v", strum, want)
		}
	}
}

func TestDiagramAppendStrumWindow(t *testing.T) {
	d := otelauta.NewDiagram()
	d.StartFret = 4
	d.FretCount = 3 // frets 5..7 visible
	d.ToggleSelected(otelauta.Position{String: 2, Fret: 4})
	d.ToggleSelected(otelauta.Position{String: 2, Fret: 5})
	d.ToggleSelected(otelauta.Position{String: 2, Fret: 7})
	d.ToggleSelected(otelauta.Position{String: 2, Fret: 8})
	strum := d.AppendStrum(nil)
	if len(strum) != 2 {
		t.Fatalf("strum = %v, want the two cells inside the fret window", strum)
	}
	if strum[0].Pos.Fret != 5 || strum[1].Pos.Fret != 7 {
		t.Errorf("strum frets = %d, %d, want 5, 7", strum[0].Pos.Fret, strum[1].Pos.Fret)
	}
}

func TestDiagramValidate(t *testing.T) {
	d := otelauta.NewDiagram()
	if err := d.Validate(); err != nil {
		t.Fatalf("default diagram invalid: %v", err)
	}
	d.Scale = "locrian"
	if err := d.Validate(); err == nil {
		t.Errorf("unknown scale passed validation")
	}
	d = otelauta.NewDiagram()
	d.Root = "X#"
	if err := d.Validate(); err == nil {
		t.Errorf("unknown root passed validation")
	}
}

func TestDiagramYamlRoundTrip(t *testing.T) {
	d := otelauta.NewDiagram()
	d.Title = "a minor practice"
	d.Root = "A"
	d.Scale = "minor"
	d.ToggleSelected(otelauta.Position{String: 5, Fret: 5})
	d.ToggleSelected(otelauta.Position{String: 4, Fret: 7})
	out, err := yaml.Marshal(d)
	if err != nil {
		t.Fatal(err)
	}
	var got otelauta.Diagram
	if err := yaml.Unmarshal(out, &got); err != nil {
		t.Fatal(err)
	}
	if got.Root != "A" || got.Scale != "minor" || len(got.Selection) != 2 {
		t.Errorf("round trip lost data: %+v", got)
	}
}
