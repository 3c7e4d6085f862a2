package editor

import (
	"github.com/kvirta/otelauta"
	"github.com/kvirta/otelauta/render"
)

type (
	// derivedModelData contains useful information derived from the document,
	// cached so that the bindings, the status line and the player do not
	// recompute it on every access. Everything here is regenerated by
	// updateDerivedData after each change, based on the change type.
	derivedModelData struct {
		scaleIndex int
		themeIndex int

		// cells holds the resolved cell of every visible board column, indexed
		// [string][column].
		cells [otelauta.NumStrings][]otelauta.CellInfo

		// strum is the pluck sequence derived from the selection: low string
		// to high string, low fret to high fret. The player loops it.
		strum []otelauta.StrumNote
	}
)

func (m *Model) updateDerivedData(t ChangeType) {
	m.derived.scaleIndex = max(otelauta.ScaleIndex(m.d.Diagram.Scale), 0)
	m.derived.themeIndex = max(render.ThemeIndex(m.themes, m.d.Diagram.Theme), 0)
	if t&(BoardChange|NotesChange) != 0 {
		m.updateDerivedCells()
	}
	if t&(BoardChange|SelectionChange) != 0 {
		m.updateDerivedStrum()
	}
}

func (m *Model) updateDerivedCells() {
	d := &m.d.Diagram
	root := d.RootPitch()
	sc := otelauta.Scales[m.derived.scaleIndex]
	for s := 0; s < otelauta.NumStrings; s++ {
		cells := m.derived.cells[s][:0]
		for c := 0; c < d.FretCount; c++ {
			cells = append(cells, otelauta.StandardTuning.Resolve(s, d.FretAt(c), root, sc))
		}
		m.derived.cells[s] = cells
	}
}

func (m *Model) updateDerivedStrum() {
	m.derived.strum = m.d.Diagram.AppendStrum(m.derived.strum[:0])
}

// CellAt resolves the cell at the given position. Positions inside the visible
// fret window come from the derived cache; anything else is computed on the
// fly.
func (m *Model) CellAt(p otelauta.Position) (otelauta.CellInfo, bool) {
	if p.String < 0 || p.String >= otelauta.NumStrings || p.Fret < 0 {
		return otelauta.CellInfo{}, false
	}
	d := &m.d.Diagram
	if col := p.Fret - d.StartFret - 1; col >= 0 && col < len(m.derived.cells[p.String]) {
		return m.derived.cells[p.String][col], true
	}
	root := d.RootPitch()
	sc := otelauta.Scales[m.derived.scaleIndex]
	return otelauta.StandardTuning.Resolve(p.String, p.Fret, root, sc), true
}
