package render_test

import (
	"bytes"
	"image"
	_ "image/png"
	"testing"

	"github.com/kvirta/otelauta"
	"github.com/kvirta/otelauta/render"
)

func testTheme(t *testing.T, name string) render.Theme {
	t.Helper()
	themes, err := render.LoadThemes()
	if err != nil {
		t.Logf("user themes ignored: %v", err)
	}
	return render.ThemeByName(themes, name)
}

func TestRenderDeterministic(t *testing.T) {
	d := otelauta.NewDiagram()
	d.Root = "A"
	d.Scale = "minor"
	d.Title = "test"
	d.ToggleSelected(otelauta.Position{String: 5, Fret: 5})
	theme := testTheme(t, "dark")

	a := render.NewRenderer()
	a.RenderAll(d, theme, 1)
	first := a.Image()
	a.RenderAll(d, theme, 1)
	second := a.Image()
	if !bytes.Equal(first.Pix, second.Pix) {
		t.Errorf("two RenderAll passes over the same configuration differ")
	}

	b := render.NewRenderer()
	b.RenderAll(d, theme, 1)
	if !bytes.Equal(first.Pix, b.Image().Pix) {
		t.Errorf("fresh renderer disagrees with reused renderer")
	}
}

func TestDirtyNotesUpdateMatchesFullRender(t *testing.T) {
	theme := testTheme(t, "dark")
	d := otelauta.NewDiagram()

	a := render.NewRenderer()
	a.RenderAll(d, theme, 1)
	d.Root = "E"
	d.Scale = "blues"
	a.Update(d, theme, 1, render.MaskNotes|render.MaskLabels)

	b := render.NewRenderer()
	b.RenderAll(d, theme, 1)
	if !bytes.Equal(a.Image().Pix, b.Image().Pix) {
		t.Errorf("notes-only update differs from full render")
	}
}

func TestDirtySelectionUpdateMatchesFullRender(t *testing.T) {
	theme := testTheme(t, "light")
	d := otelauta.NewDiagram()

	a := render.NewRenderer()
	a.RenderAll(d, theme, 1)
	d.ToggleSelected(otelauta.Position{String: 2, Fret: 7})
	d.ToggleSelected(otelauta.Position{String: 3, Fret: 5})
	a.Update(d, theme, 1, render.MaskSelection)

	b := render.NewRenderer()
	b.RenderAll(d, theme, 1)
	if !bytes.Equal(a.Image().Pix, b.Image().Pix) {
		t.Errorf("selection-only update differs from full render")
	}
}

func TestWindowChangeForcesRelayout(t *testing.T) {
	theme := testTheme(t, "dark")
	d := otelauta.NewDiagram()
	a := render.NewRenderer()
	a.RenderAll(d, theme, 1)
	w := a.Geometry().Width

	d.FretCount = 5
	// an empty dirty set must still notice the layout change
	a.Update(d, theme, 1, 0)
	if a.Geometry().Width >= w {
		t.Errorf("narrower fret window did not shrink the image")
	}
	b := render.NewRenderer()
	b.RenderAll(d, theme, 1)
	if !bytes.Equal(a.Image().Pix, b.Image().Pix) {
		t.Errorf("relayout differs from full render")
	}
}

func TestTransparentBackground(t *testing.T) {
	d := otelauta.NewDiagram()
	d.Theme = "sticker"

	r := render.NewRenderer()
	r.RenderAll(d, testTheme(t, "sticker"), 1)
	if a := r.Image().RGBAAt(1, 1).A; a != 0 {
		t.Errorf("sticker theme corner alpha = %d, want 0", a)
	}

	r.RenderAll(d, testTheme(t, "dark"), 1)
	if a := r.Image().RGBAAt(1, 1).A; a != 255 {
		t.Errorf("dark theme corner alpha = %d, want 255", a)
	}
}

func TestCellAtInvertsLayout(t *testing.T) {
	d := otelauta.NewDiagram()
	d.StartFret = 2
	d.FretCount = 7
	r := render.NewRenderer()
	r.RenderAll(d, testTheme(t, "dark"), 1)
	g := r.Geometry()
	for row := 0; row < otelauta.NumStrings; row++ {
		for col := 0; col < d.FretCount; col++ {
			p := image.Pt(int(g.BoardX+(float64(col)+0.5)*g.CellW), int(g.BoardY+(float64(row)+0.5)*g.CellH))
			pos, ok := g.CellAt(p, &d)
			if !ok {
				t.Fatalf("center of row %d col %d not on board", row, col)
			}
			if pos.String != row || pos.Fret != d.FretAt(col) {
				t.Errorf("cell at %v = %v, want string %d fret %d", p, pos, row, d.FretAt(col))
			}
		}
	}
	if _, ok := g.CellAt(image.Pt(0, 0), &d); ok {
		t.Errorf("top-left corner should not hit a cell")
	}
}

func TestWriteSVGDeterministic(t *testing.T) {
	d := otelauta.NewDiagram()
	d.Root = "E"
	d.Scale = "major"
	d.Title = "e major"
	r := render.NewRenderer()
	r.RenderAll(d, testTheme(t, "light"), 1)
	var a, b bytes.Buffer
	if err := r.WriteSVG(&a); err != nil {
		t.Fatal(err)
	}
	if err := r.WriteSVG(&b); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a.Bytes(), b.Bytes()) {
		t.Errorf("two SVG writes differ")
	}
	out := a.String()
	for _, want := range []string{"<svg", "e major", ">E<", ">XII<"} {
		if !bytes.Contains(a.Bytes(), []byte(want)) {
			t.Errorf("SVG misses %q: %s", want, out[:min(len(out), 400)])
		}
	}
}

func TestWritePNG(t *testing.T) {
	d := otelauta.NewDiagram()
	r := render.NewRenderer()
	r.RenderAll(d, testTheme(t, "dark"), 2)
	var buf bytes.Buffer
	if err := r.WritePNG(&buf); err != nil {
		t.Fatal(err)
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Width != r.Geometry().Width || cfg.Height != r.Geometry().Height {
		t.Errorf("PNG size %dx%d, want %dx%d", cfg.Width, cfg.Height, r.Geometry().Width, r.Geometry().Height)
	}
}

func TestExportFilename(t *testing.T) {
	if got := render.ExportFilename("A#", "png"); got != "otelauta-Asharp.png" {
		t.Errorf("ExportFilename(A#) = %q", got)
	}
	if got := render.ExportFilename("E", "svg"); got != "otelauta-E.svg" {
		t.Errorf("ExportFilename(E) = %q", got)
	}
}
