package gioui

import (
	"bytes"
	"image"
	"image/color"
	"io"
	"math"

	"gioui.org/io/clipboard"
	"gioui.org/io/event"
	"gioui.org/io/key"
	"gioui.org/io/pointer"
	"gioui.org/io/transfer"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"github.com/kvirta/otelauta"
	"github.com/kvirta/otelauta/editor"
	"github.com/kvirta/otelauta/render"
)

// BoardView renders the diagram through the layer renderer and blits the
// result, drawing the cursor, the selection range, the play flash and the
// string meters as overlays on top. The board scrolls horizontally when the
// fret window does not fit; the image scale always fits the height.
type BoardView struct {
	Table editor.Table

	renderer  *render.Renderer
	scrollBar *ScrollBar
	scrollX   int
	imageOp   paint.ImageOp
	lastTheme render.Theme

	focused      bool
	requestFocus bool

	centerFret    int
	centerPending bool
	ensurePending bool

	model *editor.Model
}

func NewBoardView(model *editor.Model) *BoardView {
	return &BoardView{
		Table:     model.Board().Table(),
		renderer:  render.NewRenderer(),
		scrollBar: &ScrollBar{Axis: layout.Horizontal},
		model:     model,
	}
}

func (v *BoardView) Focus() {
	v.requestFocus = true
}

func (v *BoardView) Focused() bool {
	return v.focused
}

// EnsureCursorVisible scrolls the board on the next frame so that the cursor
// cell is inside the viewport.
func (v *BoardView) EnsureCursorVisible() {
	v.ensurePending = true
}

// CenterOnFret scrolls the board on the next frame so that the given fret is
// at the center of the viewport.
func (v *BoardView) CenterOnFret(fret int) {
	v.centerFret = fret
	v.centerPending = true
}

func (v *BoardView) Tags(curLevel int, yield TagYieldFunc) bool {
	return yield(curLevel, v)
}

func (v *BoardView) Layout(gtx C) D {
	t := FretboardFromContext(gtx)
	v.handleEvents(gtx, t)

	dims := gtx.Constraints.Max
	defer clip.Rect(image.Rectangle{Max: dims}).Push(gtx.Ops).Pop()
	paint.Fill(gtx.Ops, t.Theme.Board.Bg)
	if v.requestFocus {
		v.requestFocus = false
		gtx.Execute(key.FocusCmd{Tag: v})
	}
	event.Op(gtx.Ops, v)

	d := t.DiagramCopy()
	theme := t.CurrentTheme()
	// fit the board height to the viewport; the scale is quantized so window
	// resizing does not rebuild the layers on every single frame
	base := render.Layout(&d, 1)
	scale := float64(dims.Y) / float64(base.Height)
	scale = math.Round(scale*16) / 16
	if scale <= 0 {
		scale = 1
	}
	dirty := t.TakeDirtyLayers()
	before := v.renderer.Geometry()
	v.renderer.Update(d, theme, scale, dirty)
	g := v.renderer.Geometry()
	if dirty != 0 || g != before || theme != v.lastTheme {
		v.imageOp = paint.NewImageOp(v.renderer.Image())
		v.lastTheme = theme
	}

	maxScroll := max(g.Width-dims.X, 0)
	if v.centerPending {
		v.centerPending = false
		col := v.centerFret - d.StartFret - 1
		center := g.BoardX + (float64(col)+0.5)*g.CellW
		v.scrollX = int(center) - dims.X/2
	}
	if v.ensurePending {
		v.ensurePending = false
		r := cellRect(g, v.Table.Cursor())
		if x := r.Min.X - v.scrollX; x < 0 {
			v.scrollX += x
		}
		if x := r.Max.X - v.scrollX - dims.X; x > 0 {
			v.scrollX += x
		}
	}
	v.scrollX = min(max(v.scrollX, 0), maxScroll)

	func() {
		defer op.Offset(image.Pt(-v.scrollX, 0)).Push(gtx.Ops).Pop()
		v.imageOp.Add(gtx.Ops)
		paint.PaintOp{}.Add(gtx.Ops)
		v.paintOverlays(gtx, t, g)
	}()

	v.layoutScrollBar(gtx, t, g, dims)
	return D{Size: dims}
}

func (v *BoardView) handleEvents(gtx C, t *Fretboard) {
	if t.MIDI().InputtingNotes().Value() {
		for _, ev := range t.noteEvents {
			if ev.On {
				v.enterMidiNote(t, ev.Pitch)
			}
		}
	}
	for {
		e, ok := gtx.Event(
			key.FocusFilter{Target: v},
			transfer.TargetFilter{Target: v, Type: "application/text"},
			pointer.Filter{Target: v, Kinds: pointer.Press | pointer.Scroll,
				ScrollX: pointer.ScrollRange{Min: -baseCellScroll, Max: baseCellScroll},
				ScrollY: pointer.ScrollRange{Min: -baseCellScroll, Max: baseCellScroll}},
			key.Filter{Focus: v, Name: key.NameLeftArrow, Optional: key.ModShift | key.ModCtrl | key.ModAlt},
			key.Filter{Focus: v, Name: key.NameUpArrow, Optional: key.ModShift | key.ModCtrl | key.ModAlt},
			key.Filter{Focus: v, Name: key.NameRightArrow, Optional: key.ModShift | key.ModCtrl | key.ModAlt},
			key.Filter{Focus: v, Name: key.NameDownArrow, Optional: key.ModShift | key.ModCtrl | key.ModAlt},
			key.Filter{Focus: v, Name: key.NameHome, Optional: key.ModShift},
			key.Filter{Focus: v, Name: key.NameEnd, Optional: key.ModShift},
			key.Filter{Focus: v, Name: key.NameDeleteBackward},
			key.Filter{Focus: v, Name: key.NameDeleteForward},
			key.Filter{Focus: v, Name: key.NameReturn},
			key.Filter{Focus: v, Name: "C", Required: key.ModShortcut},
			key.Filter{Focus: v, Name: "V", Required: key.ModShortcut},
			key.Filter{Focus: v, Name: "X", Required: key.ModShortcut},
			key.Filter{Focus: v, Name: "+", Optional: key.ModAlt},
			key.Filter{Focus: v, Name: "-", Optional: key.ModAlt},
		)
		if !ok {
			break
		}
		switch e := e.(type) {
		case key.FocusEvent:
			v.focused = e.Focus
		case pointer.Event:
			switch e.Kind {
			case pointer.Press:
				gtx.Execute(key.FocusCmd{Tag: v})
				d := t.DiagramCopy()
				click := image.Pt(int(e.Position.X)+v.scrollX, int(e.Position.Y))
				if pos, ok := v.renderer.Geometry().CellAt(click, &d); ok {
					if pt, visible := t.Board().Point(pos); visible {
						t.Board().SetCursor(pt)
						if e.Modifiers.Contain(key.ModShift) {
							break // shift-click only extends the range
						}
						t.Board().SetCursor2(pt)
						t.Board().Toggle()
					}
				}
			case pointer.Scroll:
				v.scrollX += int(e.Scroll.X + e.Scroll.Y + 0.5)
			}
		case key.Event:
			if e.State == key.Press {
				v.command(gtx, e)
			}
		case transfer.DataEvent:
			if b, err := io.ReadAll(e.Open()); err == nil {
				v.Table.Paste(b)
			}
		}
	}
}

// baseCellScroll is the per-event scroll range in pixels, roughly one cell.
const baseCellScroll = 56

// enterMidiNote toggles the cell matching the pitch, preferring the lowest
// string on which the pitch falls inside the visible fret window.
func (v *BoardView) enterMidiNote(t *Fretboard, pitch byte) {
	for row := otelauta.NumStrings - 1; row >= 0; row-- {
		fret := int(pitch) - otelauta.StandardTuning.Pitch(row, 0)
		pt, visible := t.Board().Point(otelauta.Position{String: row, Fret: fret})
		if !visible {
			continue
		}
		t.Board().SetCursor(pt)
		t.Board().SetCursor2(pt)
		t.Board().Toggle()
		v.ensurePending = true
		return
	}
}

func (v *BoardView) command(gtx C, e key.Event) {
	stepX := 1
	stepY := 1
	if e.Modifiers.Contain(key.ModAlt) {
		stepX = otelauta.NumPitchClasses
	} else if e.Modifiers.Contain(key.ModCtrl) {
		stepX = 1e6
		stepY = 1e6
	}
	switch e.Name {
	case "X", "C":
		contents, ok := v.Table.Copy()
		if !ok {
			return
		}
		gtx.Execute(clipboard.WriteCmd{Type: "application/text", Data: io.NopCloser(bytes.NewReader(contents))})
		if e.Name == "X" {
			v.Table.Clear()
		}
		return
	case "V":
		gtx.Execute(clipboard.ReadCmd{Tag: v})
		return
	case "+":
		v.Table.Add(1, e.Modifiers.Contain(key.ModAlt))
		return
	case "-":
		v.Table.Add(-1, e.Modifiers.Contain(key.ModAlt))
		return
	case key.NameDeleteBackward, key.NameDeleteForward:
		v.Table.Clear()
		return
	case key.NameReturn:
		v.model.Board().Toggle()
		return
	case key.NameUpArrow:
		v.Table.MoveCursor(0, -stepY)
	case key.NameDownArrow:
		v.Table.MoveCursor(0, stepY)
	case key.NameLeftArrow:
		v.Table.MoveCursor(-stepX, 0)
	case key.NameRightArrow:
		v.Table.MoveCursor(stepX, 0)
	case key.NameHome:
		v.Table.SetCursorX(0)
	case key.NameEnd:
		v.Table.SetCursorX(v.Table.Width() - 1)
	}
	if !e.Modifiers.Contain(key.ModShift) {
		v.Table.SetCursor2(v.Table.Cursor())
	}
	v.ensurePending = true
}

func (v *BoardView) paintOverlays(gtx C, t *Fretboard, g render.Geometry) {
	if r := v.Table.Range(); r.TopLeft != r.BottomRight {
		col := t.Theme.Selection.Inactive
		if v.focused {
			col = t.Theme.Selection.Active
		}
		r1 := cellRect(g, r.TopLeft)
		r2 := cellRect(g, r.BottomRight)
		paint.FillShape(gtx.Ops, col, clip.Rect(image.Rectangle{Min: r1.Min, Max: r2.Max}).Op())
	}

	cursor := t.Theme.Cursor.Inactive
	if v.focused {
		cursor = t.Theme.Cursor.Active
	}
	cr := cellRect(g, v.Table.Cursor())
	paint.FillShape(gtx.Ops, cursor, clip.Rect(cr).Op())
	rad := int(4 * g.Scale)
	outline := clip.Stroke{
		Path:  clip.RRect{Rect: cr, SE: rad, SW: rad, NW: rad, NE: rad}.Path(gtx.Ops),
		Width: float32(max(gtx.Dp(1), 1)),
	}.Op()
	paint.FillShape(gtx.Ops, t.Theme.Board.CursorOutline, outline)

	if t.Play().Started().Value() {
		if pt, ok := t.Board().Point(t.PlayPosition()); ok {
			paint.FillShape(gtx.Ops, t.Theme.Board.Play, clip.Rect(cellRect(g, pt)).Op())
		}
	}

	levels := t.StringLevels()
	for row, level := range levels {
		if level <= 0 {
			continue
		}
		y := g.BoardY + (float64(row)+0.5)*g.CellH
		h := float64(max(gtx.Dp(2), 2))
		bar := image.Rect(int(g.BoardX), int(y-h/2), int(g.BoardX+float64(g.Cols)*g.CellW), int(y+h/2))
		paint.FillShape(gtx.Ops, scaleAlpha(t.Theme.Board.Meter, level), clip.Rect(bar).Op())
	}
}

func (v *BoardView) layoutScrollBar(gtx C, t *Fretboard, g render.Geometry, dims image.Point) {
	cellW := max(int(g.CellW), 1)
	pos := layout.Position{
		First:     v.scrollX / cellW,
		Offset:    v.scrollX % cellW,
		Count:     max(dims.X/cellW, 1),
		BeforeEnd: v.scrollX < g.Width-dims.X,
	}
	pos.OffsetLast = dims.X + pos.Offset - pos.Count*cellW
	gtx.Constraints.Min = dims
	v.scrollBar.Layout(gtx, &t.Theme.ScrollBar, g.Cols, &pos)
	v.scrollX = min(max(pos.First*cellW+pos.Offset, 0), max(g.Width-dims.X, 0))
}

// cellRect is the pixel rectangle of a board cell in image coordinates.
func cellRect(g render.Geometry, p editor.Point) image.Rectangle {
	x := g.BoardX + float64(p.X)*g.CellW
	y := g.BoardY + float64(p.Y)*g.CellH
	return image.Rect(int(x), int(y), int(x+g.CellW), int(y+g.CellH))
}

func scaleAlpha(c color.NRGBA, f float32) color.NRGBA {
	f = min(max(f, 0), 1)
	c.A = uint8(float32(c.A) * f)
	return c
}
