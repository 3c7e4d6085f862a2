package editor

import (
	"gopkg.in/yaml.v3"

	"github.com/kvirta/otelauta"
)

// Board is the table view of the visible fret window: columns are the visible
// frets, rows are the strings, and the cell payload is membership in the
// highlight selection. Cursor movement is free; marking, clearing and shifting
// cells go through change brackets.
type Board Model

func (m *Model) Board() *Board { return (*Board)(m) }

func (v *Board) Table() Table { return Table{v} }

func (v *Board) Width() int  { return v.d.Diagram.FretCount }
func (v *Board) Height() int { return otelauta.NumStrings }

func (v *Board) Cursor() Point {
	p := v.d.Cursor
	p.X = max(min(p.X, v.Width()-1), 0)
	p.Y = max(min(p.Y, v.Height()-1), 0)
	return p
}

func (v *Board) Cursor2() Point {
	p := v.d.Cursor2
	p.X = max(min(p.X, v.Width()-1), 0)
	p.Y = max(min(p.Y, v.Height()-1), 0)
	return p
}

func (v *Board) SetCursor(p Point) {
	v.d.Cursor.X = max(min(p.X, v.Width()-1), 0)
	v.d.Cursor.Y = max(min(p.Y, v.Height()-1), 0)
}

func (v *Board) SetCursor2(p Point) {
	v.d.Cursor2.X = max(min(p.X, v.Width()-1), 0)
	v.d.Cursor2.Y = max(min(p.Y, v.Height()-1), 0)
}

func (v *Board) MoveCursor(dx, dy int) (ok bool) {
	p := v.Cursor()
	p.X += dx
	p.Y += dy
	v.SetCursor(p)
	return v.Cursor() == p
}

// Position converts a table point to the board position it shows; the fret
// comes from the visible window.
func (v *Board) Position(p Point) otelauta.Position {
	return otelauta.Position{String: p.Y, Fret: v.d.Diagram.FretAt(p.X)}
}

// Point converts a board position to a table point. The second return value
// is false when the position is outside the visible window.
func (v *Board) Point(p otelauta.Position) (Point, bool) {
	col := p.Fret - v.d.Diagram.StartFret - 1
	return Point{X: col, Y: p.String}, col >= 0 && col < v.Width() && p.String >= 0 && p.String < v.Height()
}

// Toggle flips the highlight of the cell under the cursor.
func (v *Board) Toggle() {
	defer v.change("Toggle", MinorChange)()
	v.d.Diagram.ToggleSelected(v.Position(v.Cursor()))
}

// Selected reports whether the cell at the table point is highlighted.
func (v *Board) Selected(p Point) bool {
	return v.d.Diagram.Selected(v.Position(p))
}

func (v *Board) clear(p Point) {
	pos := v.Position(p)
	if v.d.Diagram.Selected(pos) {
		v.d.Diagram.ToggleSelected(pos)
	}
}

func (v *Board) set(p Point, value int) {
	pos := v.Position(p)
	if v.d.Diagram.Selected(pos) != (value != 0) {
		v.d.Diagram.ToggleSelected(pos)
	}
}

// add shifts the highlighted cells inside the rect by delta frets; largestep
// shifts by octaves. The shift fails if any cell would land outside the
// visible window, so a strip of highlights never gets clipped half way.
func (v *Board) add(rect Rect, delta int, largestep bool) (ok bool) {
	if largestep {
		delta *= otelauta.NumPitchClasses
	}
	rect.Limit(v.Width(), v.Height())
	d := &v.d.Diagram
	var moved []otelauta.Position
	for _, pos := range d.Selection {
		p, visible := v.Point(pos)
		if !visible || !rect.Contains(p) {
			continue
		}
		p.X += delta
		if p.X < 0 || p.X >= v.Width() {
			return false
		}
		moved = append(moved, pos)
	}
	for _, pos := range moved {
		d.ToggleSelected(pos)
	}
	for _, pos := range moved {
		pos.Fret += delta
		if !d.Selected(pos) {
			d.ToggleSelected(pos)
		}
	}
	return true
}

func (v *Board) marshal(rect Rect) (data []byte, ok bool) {
	rect.Limit(v.Width(), v.Height())
	var table struct {
		Board [][]bool `yaml:",flow"`
	}
	for y := rect.TopLeft.Y; y <= rect.BottomRight.Y; y++ {
		row := make([]bool, 0, rect.Width())
		for x := rect.TopLeft.X; x <= rect.BottomRight.X; x++ {
			row = append(row, v.Selected(Point{x, y}))
		}
		table.Board = append(table.Board, row)
	}
	ret, err := yaml.Marshal(table)
	if err != nil {
		return nil, false
	}
	return ret, true
}

func (v *Board) unmarshalAtCursor(data []byte) (ok bool) {
	table, ok := unmarshalBoardClip(data)
	if !ok {
		return false
	}
	cursor := v.Cursor()
	for y, row := range table {
		for x, value := range row {
			p := Point{cursor.X + x, cursor.Y + y}
			if p.X >= v.Width() || p.Y >= v.Height() {
				continue
			}
			v.set(p, boolToInt(value))
		}
	}
	return true
}

func (v *Board) unmarshalRange(rect Rect, data []byte) (ok bool) {
	table, ok := unmarshalBoardClip(data)
	if !ok {
		return false
	}
	rect.Limit(v.Width(), v.Height())
	for y := 0; y < rect.Height(); y++ {
		row := table[y%len(table)]
		for x := 0; x < rect.Width(); x++ {
			value := row[x%len(row)]
			v.set(Point{rect.TopLeft.X + x, rect.TopLeft.Y + y}, boolToInt(value))
		}
	}
	return true
}

func unmarshalBoardClip(data []byte) ([][]bool, bool) {
	var table struct {
		Board [][]bool `yaml:",flow"`
	}
	if err := yaml.Unmarshal(data, &table); err != nil {
		return nil, false
	}
	if len(table.Board) == 0 {
		return nil, false
	}
	for _, row := range table.Board {
		if len(row) == 0 {
			return nil, false
		}
	}
	return table.Board, true
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func (v *Board) change(kind string, severity ChangeSeverity) func() {
	return (*Model)(v).change("BoardTableView."+kind, SelectionChange, severity)
}

func (v *Board) cancel() {
	v.changeCancel = true
}
