package editor

import (
	"github.com/kvirta/otelauta"
)

// The diagram parameters are exposed as Int/String bindings; every setter runs
// inside a change bracket that declares which render layers it dirties.

func (m *Model) FretCount() Int { return MakeInt((*fretCount)(m)) }
func (m *Model) StartFret() Int { return MakeInt((*startFret)(m)) }
func (m *Model) Root() Int      { return MakeInt((*rootNote)(m)) }
func (m *Model) Scale() Int     { return MakeInt((*scale)(m)) }
func (m *Model) Labels() Int    { return MakeInt((*labels)(m)) }
func (m *Model) Theme() Int     { return MakeInt((*theme)(m)) }
func (m *Model) Title() String  { return MakeString((*title)(m)) }
func (m *Model) FilePath() String {
	return MakeString((*filePath)(m))
}

type fretCount Model

func (v *fretCount) Value() int { return v.d.Diagram.FretCount }
func (v *fretCount) SetValue(value int) bool {
	defer (*Model)(v).change("FretCount", BoardChange, MinorChange)()
	v.d.Diagram.FretCount = value
	return true
}
func (v *fretCount) Range() RangeInclusive {
	return RangeInclusive{otelauta.MinFretCount, otelauta.MaxFretCount}
}

type startFret Model

func (v *startFret) Value() int { return v.d.Diagram.StartFret }
func (v *startFret) SetValue(value int) bool {
	defer (*Model)(v).change("StartFret", BoardChange, MinorChange)()
	v.d.Diagram.StartFret = value
	return true
}
func (v *startFret) Range() RangeInclusive {
	return RangeInclusive{0, otelauta.MaxStartFret}
}

type rootNote Model

func (v *rootNote) Value() int { return int(v.d.Diagram.RootPitch()) }
func (v *rootNote) SetValue(value int) bool {
	defer (*Model)(v).change("Root", NotesChange, MinorChange)()
	v.d.Diagram.Root = otelauta.PitchClass(value).String()
	return true
}
func (v *rootNote) Range() RangeInclusive { return RangeInclusive{0, otelauta.NumPitchClasses - 1} }
func (v *rootNote) StringOf(value int) string {
	return otelauta.PitchClass(value).String()
}

type scale Model

func (v *scale) Value() int { return v.derived.scaleIndex }
func (v *scale) SetValue(value int) bool {
	defer (*Model)(v).change("Scale", NotesChange, MinorChange)()
	v.d.Diagram.Scale = otelauta.Scales[value].Name
	return true
}
func (v *scale) Range() RangeInclusive { return RangeInclusive{0, len(otelauta.Scales) - 1} }
func (v *scale) StringOf(value int) string {
	if value < 0 || value >= len(otelauta.Scales) {
		return ""
	}
	return otelauta.Scales[value].Name
}

type labels Model

func (v *labels) Value() int {
	if v.d.Diagram.Labels == otelauta.LabelIntervals {
		return 1
	}
	return 0
}
func (v *labels) SetValue(value int) bool {
	defer (*Model)(v).change("Labels", LabelChange, MinorChange)()
	if value == 1 {
		v.d.Diagram.Labels = otelauta.LabelIntervals
	} else {
		v.d.Diagram.Labels = otelauta.LabelNames
	}
	return true
}
func (v *labels) Range() RangeInclusive { return RangeInclusive{0, 1} }
func (v *labels) StringOf(value int) string {
	if value == 1 {
		return "Intervals"
	}
	return "Note names"
}

type theme Model

func (v *theme) Value() int { return v.derived.themeIndex }
func (v *theme) SetValue(value int) bool {
	defer (*Model)(v).change("Theme", ThemeChange, MinorChange)()
	v.d.Diagram.Theme = v.themes[value].Name
	return true
}
func (v *theme) Range() RangeInclusive { return RangeInclusive{0, len(v.themes) - 1} }
func (v *theme) StringOf(value int) string {
	if value < 0 || value >= len(v.themes) {
		return ""
	}
	return v.themes[value].Name
}

type title Model

func (v *title) Value() string { return v.d.Diagram.Title }
func (v *title) SetValue(value string) bool {
	defer (*Model)(v).change("Title", TitleChange, MinorChange)()
	v.d.Diagram.Title = value
	return true
}

// filePath is not undoable; it tracks where the document was loaded from or
// last saved to, and the GUI only reads it for the window title.
type filePath Model

func (v *filePath) Value() string { return v.d.FilePath }
func (v *filePath) SetValue(value string) bool {
	v.d.FilePath = value
	return true
}
