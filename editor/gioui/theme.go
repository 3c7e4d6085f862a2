package gioui

import (
	_ "embed"
	"fmt"
	"image/color"

	"gioui.org/layout"
	"gioui.org/widget"
	"gioui.org/widget/material"
)

type Theme struct {
	Material material.Theme `yaml:"-"`
	Palette  struct {
		Fg         color.NRGBA
		Bg         color.NRGBA
		ContrastFg color.NRGBA
		ContrastBg color.NRGBA
	}
	Button struct {
		Filled   ButtonStyle
		Text     ButtonStyle
		Disabled ButtonStyle
		Menu     ButtonStyle
	}
	IconButton struct {
		Enabled  IconButtonStyle
		Disabled IconButtonStyle
		Error    IconButtonStyle
	}
	Popup struct {
		Menu   PopupStyle
		Dialog PopupStyle
	}
	Menu          MenuStyle
	NumericUpDown NumericUpDownStyle
	DiagramPanel  struct {
		Bg         color.NRGBA
		RowHeader  LabelStyle
		RowValue   LabelStyle
		Expander   LabelStyle
		Version    LabelStyle
		Title      EditorStyle
		ErrorColor color.NRGBA
	}
	Alert     AlertStyles
	Dialog    DialogStyle
	Split     SplitStyle
	ScrollBar ScrollBarStyle
	Cursor    CursorStyle
	Selection CursorStyle
	Board     BoardStyle
	Tooltip   TooltipStyle

	// iconCache is the cache of widget.Icons, so we don't have to recreate
	// them every time. The cache is keyed by the pointer to the icon data.
	iconCache map[*byte]*widget.Icon `yaml:"-"`
}

type CursorStyle struct {
	Active   color.NRGBA
	Inactive color.NRGBA
}

type TooltipStyle struct {
	Color color.NRGBA
	Bg    color.NRGBA
}

// BoardStyle has the colors of the overlays the board view draws on top of
// the rendered diagram image.
type BoardStyle struct {
	CursorOutline color.NRGBA
	Play          color.NRGBA
	Meter         color.NRGBA
	Bg            color.NRGBA
}

//go:embed theme.yml
var defaultTheme []byte

// NewTheme returns a theme, loading the user configured theme.yml on top of
// the built-in defaults. A non-nil error is a warning only; the returned theme
// is usable regardless.
func NewTheme() (*Theme, error) {
	var theme Theme
	warn := ReadConfig(defaultTheme, "theme.yml", &theme)
	theme.Material = *material.NewTheme()
	theme.Material.Palette = material.Palette{
		Bg:         theme.Palette.Bg,
		Fg:         theme.Palette.Fg,
		ContrastBg: theme.Palette.ContrastBg,
		ContrastFg: theme.Palette.ContrastFg,
	}
	return &theme, warn
}

// Icon returns a widget.Icon for the given icon bytes, from cache if it was
// ever created before. The data should be one of the golang.org/x/exp/shiny
// icons, so failing to parse it is a programming error and panics.
func (th *Theme) Icon(data []byte) *widget.Icon {
	if th.iconCache == nil {
		th.iconCache = make(map[*byte]*widget.Icon)
	}
	if icon, ok := th.iconCache[&data[0]]; ok {
		return icon
	}
	icon, err := widget.NewIcon(data)
	if err != nil {
		panic(fmt.Errorf("invalid icon data: %w", err))
	}
	th.iconCache[&data[0]] = icon
	return icon
}

// hoveredColor brightens a color towards white, for hover highlights.
func hoveredColor(c color.NRGBA) color.NRGBA {
	return color.NRGBA{
		R: uint8(min(int(c.R)+16, 255)),
		G: uint8(min(int(c.G)+16, 255)),
		B: uint8(min(int(c.B)+16, 255)),
		A: uint8(min(int(c.A)+16, 255)),
	}
}

var black = color.NRGBA{A: 255}
var transparent = color.NRGBA{}

type C = layout.Context
type D = layout.Dimensions
