package render

import (
	"image"
	"io"

	"github.com/fogleman/gg"
	"github.com/kvirta/otelauta"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

type (
	// Layer indexes the visual layers of the board, bottom to top. Each layer
	// paints into its own buffer so a change can repaint just the layers it
	// dirtied; the composite draws them in this order.
	Layer int

	// LayerMask is a dirty set of layers.
	LayerMask uint16

	// Geometry is the pixel layout of the board for a diagram and scale. All
	// coordinates derive from the diagram alone, so identical diagrams lay
	// out identically.
	Geometry struct {
		Scale         float64
		Width, Height int
		BoardX        float64
		BoardY        float64
		CellW, CellH  float64
		Cols          int
	}

	// Renderer turns a Diagram into a raster image through the layer stack.
	// Update repaints only dirtied layers; RenderAll is a full rebuild. The
	// renderer queries the theory tables per visible cell on each notes
	// repaint and never caches cell contents across passes.
	Renderer struct {
		diagram otelauta.Diagram
		theme   Theme
		geom    Geometry
		cells   []otelauta.CellInfo // row-major, Cols per row
		layers  [NumLayers]*image.RGBA

		regular   *opentype.Font
		boldfont  *opentype.Font
		faces     map[float64]font.Face
		boldFaces map[float64]font.Face
	}
)

const (
	LayerBackground Layer = iota
	LayerBoard
	LayerInlays
	LayerFrets
	LayerNumerals
	LayerStrings
	LayerStringNames
	LayerNotes
	LayerLabels
	LayerSelection
	LayerTitle
	NumLayers
)

const (
	MaskBackground LayerMask = 1 << LayerBackground
	MaskBoard      LayerMask = 1 << LayerBoard
	MaskInlays     LayerMask = 1 << LayerInlays
	MaskFrets      LayerMask = 1 << LayerFrets
	MaskNumerals   LayerMask = 1 << LayerNumerals
	MaskStrings    LayerMask = 1 << LayerStrings
	MaskStringName LayerMask = 1 << LayerStringNames
	MaskNotes      LayerMask = 1 << LayerNotes
	MaskLabels     LayerMask = 1 << LayerLabels
	MaskSelection  LayerMask = 1 << LayerSelection
	MaskTitle      LayerMask = 1 << LayerTitle
	MaskAll        LayerMask = 1<<NumLayers - 1
)

// Base cell size and margins in pixels at scale 1. The board fits the fret
// window; the image grows with the fret count.
const (
	baseCellW     = 56
	baseCellH     = 36
	baseNameW     = 30
	baseNumeralH  = 26
	baseTitleH    = 38
	basePad       = 12
	baseMarkerR   = 12
	baseSelRing   = 15
	baseLabelSize = 13
	baseTitleSize = 20
)

// inlayFrets marks the frets that get position dots; 12 and 24 get double
// dots like on a real neck.
var inlayFrets = map[int]bool{3: true, 5: true, 7: true, 9: true, 12: true, 15: true, 17: true, 19: true, 21: true, 24: true}
var doubleInlayFrets = map[int]bool{12: true, 24: true}

func NewRenderer() *Renderer {
	regular, err := opentype.Parse(goregular.TTF)
	if err != nil {
		panic(err)
	}
	boldFont, err := opentype.Parse(gobold.TTF)
	if err != nil {
		panic(err)
	}
	return &Renderer{
		regular:   regular,
		boldfont:  boldFont,
		faces:     map[float64]font.Face{},
		boldFaces: map[float64]font.Face{},
	}
}

// face returns a cached regular face of the given pixel size.
func (r *Renderer) face(size float64) font.Face {
	if f, ok := r.faces[size]; ok {
		return f
	}
	f, _ := opentype.NewFace(r.regular, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
	r.faces[size] = f
	return f
}

func (r *Renderer) boldFace(size float64) font.Face {
	if f, ok := r.boldFaces[size]; ok {
		return f
	}
	f, _ := opentype.NewFace(r.boldfont, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
	r.boldFaces[size] = f
	return f
}

// Layout computes the geometry for a diagram at a scale, without rendering
// anything. The GUI uses it to pick a scale that fits its viewport.
func Layout(d *otelauta.Diagram, scale float64) Geometry {
	titleH := 0.0
	if d.Title != "" {
		titleH = baseTitleH * scale
	}
	g := Geometry{
		Scale:  scale,
		Cols:   d.FretCount,
		CellW:  baseCellW * scale,
		CellH:  baseCellH * scale,
		BoardX: basePad*scale + baseNameW*scale,
		BoardY: basePad*scale + titleH + baseNumeralH*scale,
	}
	g.Width = int(g.BoardX + float64(g.Cols)*g.CellW + basePad*scale + 0.5)
	g.Height = int(g.BoardY + otelauta.NumStrings*g.CellH + basePad*scale + 0.5)
	return g
}

// CellAt inverts the layout: the board position under a pixel, if any.
func (g Geometry) CellAt(p image.Point, d *otelauta.Diagram) (otelauta.Position, bool) {
	col := int((float64(p.X) - g.BoardX) / g.CellW)
	row := int((float64(p.Y) - g.BoardY) / g.CellH)
	if float64(p.X) < g.BoardX || float64(p.Y) < g.BoardY || col < 0 || col >= g.Cols || row < 0 || row >= otelauta.NumStrings {
		return otelauta.Position{}, false
	}
	return otelauta.Position{String: row, Fret: d.FretAt(col)}, true
}

// Update repaints the dirtied layers for the given diagram, theme and scale
// and recomposites. Layout-affecting changes (fret window, title band, scale
// factor) force a full rebuild regardless of the requested dirty set, so a
// too-small mask can cost extra repaints but never a stale image.
func (r *Renderer) Update(d otelauta.Diagram, theme Theme, scale float64, dirty LayerMask) {
	g := Layout(&d, scale)
	if g != r.geom || r.layers[0] == nil {
		r.geom = g
		for i := range r.layers {
			r.layers[i] = image.NewRGBA(image.Rect(0, 0, g.Width, g.Height))
		}
		dirty = MaskAll
	}
	if theme != r.theme {
		dirty = MaskAll
	}
	r.diagram = d
	r.theme = theme
	if dirty&(MaskNotes|MaskLabels) != 0 || r.cells == nil {
		r.deriveCells()
	}
	for layer := Layer(0); layer < NumLayers; layer++ {
		if dirty&(1<<layer) == 0 {
			continue
		}
		clearRGBA(r.layers[layer])
		r.paintLayer(layer)
	}
}

// RenderAll is an idempotent full rebuild: every layer repainted from the
// current inputs. Identical inputs produce identical pixels.
func (r *Renderer) RenderAll(d otelauta.Diagram, theme Theme, scale float64) {
	r.Update(d, theme, scale, MaskAll)
}

// Image composites the layers bottom to top into a fresh image.
func (r *Renderer) Image() *image.RGBA {
	dc := gg.NewContext(r.geom.Width, r.geom.Height)
	for _, l := range r.layers {
		if l != nil {
			dc.DrawImage(l, 0, 0)
		}
	}
	return dc.Image().(*image.RGBA)
}

// Geometry returns the current pixel layout, for hit testing and sizing.
func (r *Renderer) Geometry() Geometry {
	return r.geom
}

// WritePNG encodes the current composite. The background layer carries the
// theme alpha, so a transparent theme background yields a transparent PNG.
func (r *Renderer) WritePNG(w io.Writer) error {
	dc := gg.NewContext(r.geom.Width, r.geom.Height)
	for _, l := range r.layers {
		if l != nil {
			dc.DrawImage(l, 0, 0)
		}
	}
	return dc.EncodePNG(w)
}

func (r *Renderer) deriveCells() {
	scale, err := otelauta.ScaleByName(r.diagram.Scale)
	if err != nil {
		scale = otelauta.Scales[0]
	}
	root := r.diagram.RootPitch()
	r.cells = r.cells[:0]
	for row := 0; row < otelauta.NumStrings; row++ {
		for col := 0; col < r.geom.Cols; col++ {
			r.cells = append(r.cells, otelauta.StandardTuning.Resolve(row, r.diagram.FretAt(col), root, scale))
		}
	}
}

func clearRGBA(img *image.RGBA) {
	for i := range img.Pix {
		img.Pix[i] = 0
	}
}

func (r *Renderer) paintLayer(layer Layer) {
	dc := gg.NewContextForRGBA(r.layers[layer])
	g := r.geom
	boardW := float64(g.Cols) * g.CellW
	boardH := otelauta.NumStrings * g.CellH
	switch layer {
	case LayerBackground:
		if r.theme.Background.A > 0 {
			dc.SetColor(r.theme.Background.NRGBA())
			dc.Clear()
		}
	case LayerBoard:
		if r.theme.Board.A > 0 {
			dc.SetColor(r.theme.Board.NRGBA())
			dc.DrawRectangle(g.BoardX, g.BoardY, boardW, boardH)
			dc.Fill()
		}
	case LayerInlays:
		dc.SetColor(r.theme.Inlay.NRGBA())
		for col := 0; col < g.Cols; col++ {
			fret := r.diagram.FretAt(col)
			if !inlayFrets[fret] {
				continue
			}
			x := g.BoardX + (float64(col)+0.5)*g.CellW
			if doubleInlayFrets[fret] {
				dc.DrawCircle(x, g.BoardY+boardH/3, 5*g.Scale)
				dc.DrawCircle(x, g.BoardY+2*boardH/3, 5*g.Scale)
			} else {
				dc.DrawCircle(x, g.BoardY+boardH/2, 5*g.Scale)
			}
			dc.Fill()
		}
	case LayerFrets:
		// fret wires sit at column boundaries; the left edge is the nut when
		// the window starts at the neck
		for col := 0; col <= g.Cols; col++ {
			x := g.BoardX + float64(col)*g.CellW
			if col == 0 && r.diagram.StartFret == 0 {
				dc.SetColor(r.theme.Nut.NRGBA())
				dc.SetLineWidth(5 * g.Scale)
			} else {
				dc.SetColor(r.theme.Fret.NRGBA())
				dc.SetLineWidth(1.5 * g.Scale)
			}
			dc.DrawLine(x, g.BoardY, x, g.BoardY+boardH)
			dc.Stroke()
		}
	case LayerNumerals:
		dc.SetColor(r.theme.Numeral.NRGBA())
		dc.SetFontFace(r.face(baseLabelSize * g.Scale))
		for col := 0; col < g.Cols; col++ {
			x := g.BoardX + (float64(col)+0.5)*g.CellW
			dc.DrawStringAnchored(otelauta.RomanNumeral(r.diagram.FretAt(col)), x, g.BoardY-baseNumeralH*g.Scale/2, 0.5, 0.5)
		}
	case LayerStrings:
		dc.SetColor(r.theme.String.NRGBA())
		for row := 0; row < otelauta.NumStrings; row++ {
			y := g.BoardY + (float64(row)+0.5)*g.CellH
			dc.SetLineWidth((1 + float64(row)*0.4) * g.Scale)
			dc.DrawLine(g.BoardX, y, g.BoardX+boardW, y)
			dc.Stroke()
		}
	case LayerStringNames:
		dc.SetColor(r.theme.StringName.NRGBA())
		dc.SetFontFace(r.face(baseLabelSize * g.Scale))
		for row := 0; row < otelauta.NumStrings; row++ {
			y := g.BoardY + (float64(row)+0.5)*g.CellH
			dc.DrawStringAnchored(otelauta.StandardTuning[row].Name, g.BoardX-baseNameW*g.Scale/2, y, 0.5, 0.5)
		}
	case LayerNotes:
		for i, c := range r.cells {
			if !c.InScale {
				continue
			}
			row, col := i/g.Cols, i%g.Cols
			x := g.BoardX + (float64(col)+0.5)*g.CellW
			y := g.BoardY + (float64(row)+0.5)*g.CellH
			if c.IsRoot {
				dc.SetColor(r.theme.Root.NRGBA())
			} else {
				dc.SetColor(r.theme.Note.NRGBA())
			}
			dc.DrawCircle(x, y, baseMarkerR*g.Scale)
			dc.Fill()
		}
	case LayerLabels:
		dc.SetFontFace(r.face(baseLabelSize * g.Scale))
		for i, c := range r.cells {
			if !c.InScale {
				continue
			}
			row, col := i/g.Cols, i%g.Cols
			x := g.BoardX + (float64(col)+0.5)*g.CellW
			y := g.BoardY + (float64(row)+0.5)*g.CellH
			if c.IsRoot {
				dc.SetColor(r.theme.RootText.NRGBA())
			} else {
				dc.SetColor(r.theme.NoteText.NRGBA())
			}
			label := c.NoteLabel()
			if r.diagram.Labels == otelauta.LabelIntervals {
				label = c.IntervalLabel()
			}
			dc.DrawStringAnchored(label, x, y, 0.5, 0.5)
		}
	case LayerSelection:
		dc.SetColor(r.theme.Selection.NRGBA())
		dc.SetLineWidth(2.5 * g.Scale)
		for _, p := range r.diagram.Selection {
			col := p.Fret - r.diagram.StartFret - 1
			if col < 0 || col >= g.Cols {
				continue
			}
			x := g.BoardX + (float64(col)+0.5)*g.CellW
			y := g.BoardY + (float64(p.String)+0.5)*g.CellH
			dc.DrawCircle(x, y, baseSelRing*g.Scale)
			dc.Stroke()
		}
	case LayerTitle:
		if r.diagram.Title == "" {
			return
		}
		dc.SetColor(r.theme.Title.NRGBA())
		dc.SetFontFace(r.boldFace(baseTitleSize * g.Scale))
		dc.DrawStringAnchored(r.diagram.Title, float64(g.Width)/2, basePad*g.Scale+baseTitleH*g.Scale/2, 0.5, 0.5)
	}
}
