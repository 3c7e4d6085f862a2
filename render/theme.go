package render

import (
	"bytes"
	_ "embed"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

type (
	// Color is an 8-bit RGBA color that unmarshals from "#rrggbb" or
	// "#rrggbbaa" strings. The alpha matters: a theme with a zero-alpha
	// background exports transparent PNGs.
	Color struct {
		R, G, B, A uint8
	}

	// Theme is a named color preset for the rendered board, one color per
	// layer role. It is distinct from the GUI widget theme: this one travels
	// with the diagram and decides what exported images look like.
	Theme struct {
		Name       string `yaml:"name"`
		Background Color  `yaml:"background"`
		Board      Color  `yaml:"board"`
		Fret       Color  `yaml:"fret"`
		Nut        Color  `yaml:"nut"`
		Inlay      Color  `yaml:"inlay"`
		String     Color  `yaml:"string"`
		Numeral    Color  `yaml:"numeral"`
		StringName Color  `yaml:"stringname"`
		Note       Color  `yaml:"note"`
		NoteText   Color  `yaml:"notetext"`
		Root       Color  `yaml:"root"`
		RootText   Color  `yaml:"roottext"`
		Selection  Color  `yaml:"selection"`
		Title      Color  `yaml:"title"`
	}
)

//go:embed themes.yml
var defaultThemes []byte

func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// CSS returns the color as an rgba() function, for the SVG backend.
func (c Color) CSS() string {
	return fmt.Sprintf("rgba(%d,%d,%d,%.3f)", c.R, c.G, c.B, float64(c.A)/255)
}

func (c *Color) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	p, err := ParseColor(s)
	if err != nil {
		return err
	}
	*c = p
	return nil
}

func (c Color) MarshalYAML() (interface{}, error) {
	if c.A != 255 {
		return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A), nil
	}
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B), nil
}

// ParseColor parses "#rrggbb" or "#rrggbbaa".
func ParseColor(s string) (Color, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 && len(hex) != 8 {
		return Color{}, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 64)
	if err != nil {
		return Color{}, fmt.Errorf("invalid color %q: %v", s, err)
	}
	if len(hex) == 6 {
		v = v<<8 | 0xff
	}
	return Color{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

// LoadThemes returns the board color presets: the embedded defaults, with
// same-named presets from the user config file replacing them and new ones
// appended. The result is sorted by collated name so every list the UI shows
// is in a stable order. An unreadable or malformed user file does not lose
// the defaults; the error is returned alongside them for the caller to show.
func LoadThemes() ([]Theme, error) {
	themes, err := decodeThemes(defaultThemes)
	if err != nil {
		panic(fmt.Errorf("parsing embedded themes.yml failed: %w", err))
	}
	var userErr error
	if dir, err := os.UserConfigDir(); err == nil {
		path := filepath.Join(dir, "otelauta", "themes.yml")
		if data, err := os.ReadFile(path); err == nil {
			user, err := decodeThemes(data)
			if err != nil {
				userErr = fmt.Errorf("parsing %s failed: %w", path, err)
			}
			for _, u := range user {
				replaced := false
				for i, t := range themes {
					if t.Name == u.Name {
						themes[i] = u
						replaced = true
						break
					}
				}
				if !replaced {
					themes = append(themes, u)
				}
			}
		}
	}
	c := collate.New(language.English)
	sort.SliceStable(themes, func(i, j int) bool {
		return c.CompareString(themes[i].Name, themes[j].Name) < 0
	})
	return themes, userErr
}

func decodeThemes(data []byte) ([]Theme, error) {
	var wrapper struct {
		Themes []Theme `yaml:"themes"`
	}
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&wrapper); err != nil {
		return nil, err
	}
	return wrapper.Themes, nil
}

// ThemeByName returns the named preset, falling back to the first one so an
// unknown or empty name in a document still draws.
func ThemeByName(themes []Theme, name string) Theme {
	for _, t := range themes {
		if t.Name == name {
			return t
		}
	}
	if len(themes) > 0 {
		return themes[0]
	}
	return Theme{}
}

// ThemeIndex returns the index of the named preset, or 0.
func ThemeIndex(themes []Theme, name string) int {
	for i, t := range themes {
		if t.Name == name {
			return i
		}
	}
	return 0
}
