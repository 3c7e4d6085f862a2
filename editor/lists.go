package editor

import (
	"github.com/kvirta/otelauta"
)

// The scale and theme pickers are lists over fixed collections; the lists are
// not mutable, but selecting an entry edits the diagram through the Int
// bindings, so selection changes are undoable.

type scaleList Model

func (m *Model) ScaleList() List { return List{(*scaleList)(m)} }

func (v *scaleList) Count() int            { return len(otelauta.Scales) }
func (v *scaleList) Selected() int         { return v.derived.scaleIndex }
func (v *scaleList) Selected2() int        { return v.derived.scaleIndex }
func (v *scaleList) SetSelected2(int)      {}
func (v *scaleList) SetSelected(value int) { (*Model)(v).Scale().SetValue(value) }

// ScaleItem returns the name of a scale in the scale picker.
func (m *Model) ScaleItem(index int) string {
	if index < 0 || index >= len(otelauta.Scales) {
		return ""
	}
	return otelauta.Scales[index].Name
}

type themeList Model

func (m *Model) ThemeList() List { return List{(*themeList)(m)} }

func (v *themeList) Count() int            { return len(v.themes) }
func (v *themeList) Selected() int         { return v.derived.themeIndex }
func (v *themeList) Selected2() int        { return v.derived.themeIndex }
func (v *themeList) SetSelected2(int)      {}
func (v *themeList) SetSelected(value int) { (*Model)(v).Theme().SetValue(value) }

// ThemeItem returns the name of a theme in the theme picker.
func (m *Model) ThemeItem(index int) string {
	if index < 0 || index >= len(m.themes) {
		return ""
	}
	return m.themes[index].Name
}
