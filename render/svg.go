package render

import (
	_ "embed"
	"io"
	"text/template"

	"github.com/Masterminds/sprig"
	"github.com/kvirta/otelauta"
)

//go:embed diagram.svg.tmpl
var svgSource string

var svgTemplate = template.Must(template.New("diagram").Funcs(sprig.TxtFuncMap()).Parse(svgSource))

type (
	svgLine struct {
		X1, Y1, X2, Y2, W float64
	}

	svgText struct {
		X, Y float64
		S    string
	}

	svgDot struct {
		X, Y, R float64
	}

	svgNote struct {
		X, Y   float64
		Label  string
		IsRoot bool
	}

	// svgDiagram is the template input: the same geometry the raster path
	// paints, precomputed into primitives so the template stays declarative.
	svgDiagram struct {
		Width, Height int
		Theme         Theme
		Title         string

		Nut       *svgLine
		Frets     []svgLine
		Strings   []svgLine
		Inlays    []svgDot
		Numerals  []svgText
		Names     []svgText
		Notes     []svgNote
		Selection []svgDot

		BoardX, BoardY, BoardW, BoardH      float64
		MarkerR, SelR, SelW                 float64
		FontSize, TitleSize, TitleX, TitleY float64
	}
)

// WriteSVG writes the current diagram as SVG, with the same layer order and
// geometry as the raster path, so both exports of one configuration agree.
func (r *Renderer) WriteSVG(w io.Writer) error {
	return svgTemplate.Execute(w, r.svgDiagram())
}

func (r *Renderer) svgDiagram() svgDiagram {
	g := r.geom
	d := svgDiagram{
		Width:     g.Width,
		Height:    g.Height,
		Theme:     r.theme,
		Title:     r.diagram.Title,
		BoardX:    g.BoardX,
		BoardY:    g.BoardY,
		BoardW:    float64(g.Cols) * g.CellW,
		BoardH:    otelauta.NumStrings * g.CellH,
		MarkerR:   baseMarkerR * g.Scale,
		SelR:      baseSelRing * g.Scale,
		SelW:      2.5 * g.Scale,
		FontSize:  baseLabelSize * g.Scale,
		TitleSize: baseTitleSize * g.Scale,
		TitleX:    float64(g.Width) / 2,
		TitleY:    basePad*g.Scale + baseTitleH*g.Scale/2,
	}
	for col := 0; col <= g.Cols; col++ {
		x := g.BoardX + float64(col)*g.CellW
		line := svgLine{X1: x, Y1: g.BoardY, X2: x, Y2: g.BoardY + d.BoardH, W: 1.5 * g.Scale}
		if col == 0 && r.diagram.StartFret == 0 {
			line.W = 5 * g.Scale
			d.Nut = &line
			continue
		}
		d.Frets = append(d.Frets, line)
	}
	for col := 0; col < g.Cols; col++ {
		fret := r.diagram.FretAt(col)
		x := g.BoardX + (float64(col)+0.5)*g.CellW
		d.Numerals = append(d.Numerals, svgText{X: x, Y: g.BoardY - baseNumeralH*g.Scale/2, S: otelauta.RomanNumeral(fret)})
		if inlayFrets[fret] {
			if doubleInlayFrets[fret] {
				d.Inlays = append(d.Inlays,
					svgDot{X: x, Y: g.BoardY + d.BoardH/3, R: 5 * g.Scale},
					svgDot{X: x, Y: g.BoardY + 2*d.BoardH/3, R: 5 * g.Scale})
			} else {
				d.Inlays = append(d.Inlays, svgDot{X: x, Y: g.BoardY + d.BoardH/2, R: 5 * g.Scale})
			}
		}
	}
	for row := 0; row < otelauta.NumStrings; row++ {
		y := g.BoardY + (float64(row)+0.5)*g.CellH
		d.Strings = append(d.Strings, svgLine{X1: g.BoardX, Y1: y, X2: g.BoardX + d.BoardW, Y2: y, W: (1 + float64(row)*0.4) * g.Scale})
		d.Names = append(d.Names, svgText{X: g.BoardX - baseNameW*g.Scale/2, Y: y, S: otelauta.StandardTuning[row].Name})
	}
	for i, c := range r.cells {
		if !c.InScale {
			continue
		}
		row, col := i/g.Cols, i%g.Cols
		label := c.NoteLabel()
		if r.diagram.Labels == otelauta.LabelIntervals {
			label = c.IntervalLabel()
		}
		d.Notes = append(d.Notes, svgNote{
			X:      g.BoardX + (float64(col)+0.5)*g.CellW,
			Y:      g.BoardY + (float64(row)+0.5)*g.CellH,
			Label:  label,
			IsRoot: c.IsRoot,
		})
	}
	for _, p := range r.diagram.Selection {
		col := p.Fret - r.diagram.StartFret - 1
		if col < 0 || col >= g.Cols {
			continue
		}
		d.Selection = append(d.Selection, svgDot{
			X: g.BoardX + (float64(col)+0.5)*g.CellW,
			Y: g.BoardY + (float64(p.String)+0.5)*g.CellH,
			R: d.SelR,
		})
	}
	return d
}
