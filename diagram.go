package otelauta

import (
	"sort"
)

type (
	// Diagram is the document of the editor: everything needed to draw one
	// fretboard view. It marshals to YAML (and unmarshals also from JSON, for
	// recovery snapshots). Cell contents are never part of the document; they
	// are derived from Root and Scale on demand.
	Diagram struct {
		Title string `yaml:",omitempty"`
		Root  string
		Scale string

		// Labels selects what the note markers show: LabelNames or
		// LabelIntervals.
		Labels string

		// Theme names the color preset used to draw the board. An empty or
		// unknown name falls back to the first preset.
		Theme string `yaml:",omitempty"`

		// FretCount and StartFret define the visible fret window: columns show
		// frets StartFret+1 .. StartFret+FretCount. Fret 0 (the open string)
		// is never a board column.
		FretCount int
		StartFret int

		// Selection is the set of highlighted cells, kept sorted. Membership
		// is purely cosmetic.
		Selection []Position `yaml:",flow,omitempty"`
	}
)

const (
	LabelNames     = "names"
	LabelIntervals = "intervals"

	MinFretCount = 1
	MaxFretCount = 24
	MaxStartFret = 23
)

// NewDiagram returns the diagram every new document starts from.
func NewDiagram() Diagram {
	return Diagram{
		Root:      "C",
		Scale:     "major",
		Labels:    LabelNames,
		Theme:     "dark",
		FretCount: 12,
		StartFret: 0,
	}
}

// Copy makes a deep copy of a Diagram.
func (d *Diagram) Copy() Diagram {
	selection := make([]Position, len(d.Selection))
	copy(selection, d.Selection)
	ret := *d
	ret.Selection = selection
	return ret
}

// Validate checks that the lookups the diagram depends on will succeed: the
// root is a known pitch class and the scale a known scale. Out-of-range
// numeric fields are not errors; they get clamped.
func (d *Diagram) Validate() error {
	if _, err := ParsePitchClass(d.Root); err != nil {
		return err
	}
	if _, err := ScaleByName(d.Scale); err != nil {
		return err
	}
	return nil
}

// Clamp normalizes the diagram in place: numeric fields are forced into
// their ranges, the label mode falls back to note names, and the selection
// is sorted, deduplicated and stripped of impossible positions.
func (d *Diagram) Clamp() {
	d.FretCount = min(max(d.FretCount, MinFretCount), MaxFretCount)
	d.StartFret = min(max(d.StartFret, 0), MaxStartFret)
	if d.Labels != LabelNames && d.Labels != LabelIntervals {
		d.Labels = LabelNames
	}
	selection := d.Selection[:0]
	for _, p := range d.Selection {
		if p.String < 0 || p.String >= NumStrings || p.Fret < 1 {
			continue
		}
		selection = append(selection, p)
	}
	sort.Slice(selection, func(i, j int) bool { return selection[i].Less(selection[j]) })
	d.Selection = selection[:0]
	for i, p := range selection {
		if i > 0 && p == selection[i-1] {
			continue
		}
		d.Selection = append(d.Selection, p)
	}
}

// FretAt returns the fret number shown in the given board column.
func (d *Diagram) FretAt(col int) int {
	return d.StartFret + col + 1
}

// Selected reports whether the position is in the selection set.
func (d *Diagram) Selected(p Position) bool {
	i := d.searchSelection(p)
	return i < len(d.Selection) && d.Selection[i] == p
}

// ToggleSelected flips the membership of a position in the selection set,
// keeping the set sorted. Returns the new membership.
func (d *Diagram) ToggleSelected(p Position) bool {
	i := d.searchSelection(p)
	if i < len(d.Selection) && d.Selection[i] == p {
		d.Selection = append(d.Selection[:i], d.Selection[i+1:]...)
		return false
	}
	d.Selection = append(d.Selection, Position{})
	copy(d.Selection[i+1:], d.Selection[i:])
	d.Selection[i] = p
	return true
}

func (d *Diagram) searchSelection(p Position) int {
	return sort.Search(len(d.Selection), func(i int) bool {
		return !d.Selection[i].Less(p)
	})
}

// RootPitch returns the parsed root. The zero pitch class stands in when the
// root is unparseable; Validate is the place where that surfaces.
func (d *Diagram) RootPitch() PitchClass {
	p, _ := ParsePitchClass(d.Root)
	return p
}

// AppendStrum appends the pluck sequence of the highlighted cells to dst and
// returns it: low string to high string, low fret to high fret. Cells outside
// the visible fret window are skipped.
func (d *Diagram) AppendStrum(dst []StrumNote) []StrumNote {
	// selection is sorted by string then fret; walk strings high index first
	// so the strum goes from the lowest pitched string up
	for s := NumStrings - 1; s >= 0; s-- {
		for _, p := range d.Selection {
			if p.String != s || p.Fret <= d.StartFret || p.Fret > d.StartFret+d.FretCount {
				continue
			}
			dst = append(dst, StrumNote{Pos: p, Pitch: byte(StandardTuning.Pitch(p.String, p.Fret))})
		}
	}
	return dst
}
