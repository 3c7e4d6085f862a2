package render_test

import (
	"testing"

	"github.com/kvirta/otelauta/render"
)

func TestParseColor(t *testing.T) {
	table := []struct {
		in   string
		want render.Color
		err  bool
	}{
		{"#ff0000", render.Color{R: 255, A: 255}, false},
		{"#00ff00ff", render.Color{G: 255, A: 255}, false},
		{"#00000000", render.Color{}, false},
		{"#1e2a3b", render.Color{R: 0x1e, G: 0x2a, B: 0x3b, A: 255}, false},
		{"red", render.Color{}, true},
		{"#12345", render.Color{}, true},
	}
	for _, c := range table {
		got, err := render.ParseColor(c.in)
		if (err != nil) != c.err {
			t.Errorf("ParseColor(%q) error = %v, want error %v", c.in, err, c.err)
			continue
		}
		if !c.err && got != c.want {
			t.Errorf("ParseColor(%q) = %+v, want %+v", c.in, got, c.want)
		}
	}
}

func TestLoadThemes(t *testing.T) {
	themes, err := render.LoadThemes()
	if err != nil {
		t.Logf("user themes ignored: %v", err)
	}
	if len(themes) < 3 {
		t.Fatalf("expected at least the builtin presets, got %d", len(themes))
	}
	dark := render.ThemeByName(themes, "dark")
	if dark.Name != "dark" {
		t.Errorf("dark preset missing")
	}
	if sticker := render.ThemeByName(themes, "sticker"); sticker.Background.A != 0 {
		t.Errorf("sticker preset background should be transparent, got alpha %d", sticker.Background.A)
	}
	if fallback := render.ThemeByName(themes, "no-such-theme"); fallback.Name != themes[0].Name {
		t.Errorf("unknown name should fall back to the first preset")
	}
	for i := 1; i < len(themes); i++ {
		if themes[i-1].Name > themes[i].Name {
			t.Errorf("theme names not sorted: %q before %q", themes[i-1].Name, themes[i].Name)
		}
	}
}
