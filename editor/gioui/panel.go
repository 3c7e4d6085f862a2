package gioui

import (
	"image"
	"image/color"

	"gioui.org/gesture"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/unit"
	"github.com/kvirta/otelauta/version"
	"golang.org/x/exp/shiny/materialdesign/icons"
)

type DiagramPanel struct {
	DiagramSettingsExpander *Expander
	ScaleExpander           *Expander
	ThemeExpander           *Expander

	LabelsBtn *Clickable

	FretCount *NumericUpDownState
	StartFret *NumericUpDownState
	Root      *NumericUpDownState
	BPM       *NumericUpDownState

	TitleEditor *Editor
	ScaleList   *DragList
	ThemeList   *DragList

	MenuBar *MenuBar
	PlayBar *PlayBar
}

func NewDiagramPanel(tr *Fretboard) *DiagramPanel {
	ret := &DiagramPanel{
		FretCount: NewNumericUpDownState(),
		StartFret: NewNumericUpDownState(),
		Root:      NewNumericUpDownState(),
		BPM:       NewNumericUpDownState(),

		TitleEditor: NewEditor(true, true, text.Start),
		ScaleList:   NewDragList(tr.ScaleList(), layout.Vertical),
		ThemeList:   NewDragList(tr.ThemeList(), layout.Vertical),

		MenuBar: NewMenuBar(tr),
		PlayBar: NewPlayBar(),

		LabelsBtn: new(Clickable),

		DiagramSettingsExpander: &Expander{Expanded: true},
		ScaleExpander:           &Expander{Expanded: true},
		ThemeExpander:           &Expander{},
	}
	return ret
}

func (s *DiagramPanel) Update(gtx C, t *Fretboard) {
	for s.LabelsBtn.Clicked(gtx) {
		t.Labels().SetValue(1 - t.Labels().Value())
	}
}

func (s *DiagramPanel) Layout(gtx C) D {
	t := FretboardFromContext(gtx)
	s.Update(gtx, t)
	return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Rigid(s.MenuBar.Layout),
		layout.Rigid(s.PlayBar.Layout),
		layout.Rigid(s.layoutDiagramOptions),
	)
}

func (s *DiagramPanel) Tags(curLevel int, yield TagYieldFunc) bool {
	return yield(curLevel, &s.TitleEditor.widgetEditor) &&
		yield(curLevel, s.ScaleList) &&
		yield(curLevel, s.ThemeList)
}

func (t *DiagramPanel) layoutDiagramOptions(gtx C) D {
	tr := FretboardFromContext(gtx)
	paint.FillShape(gtx.Ops, tr.Theme.DiagramPanel.Bg, clip.Rect(image.Rect(0, 0, gtx.Constraints.Max.X, gtx.Constraints.Max.Y)).Op())

	labelsHint := makeHint("Switch between interval and note name labels", " (%s)", "LabelsToggle")
	labelsBtn := Btn(tr.Theme, &tr.Theme.Button.Text, t.LabelsBtn, tr.Labels().String(), labelsHint)

	scaleList := FilledDragList(tr.Theme, t.ScaleList)
	scaleElement := func(gtx C, i int) D {
		gtx.Constraints.Min.Y = gtx.Dp(unit.Dp(20))
		return layout.Inset{Left: unit.Dp(6)}.Layout(gtx, func(gtx C) D {
			return layout.W.Layout(gtx, Label(tr.Theme, &tr.Theme.DiagramPanel.RowValue, tr.ScaleItem(i)).Layout)
		})
	}
	themeList := FilledDragList(tr.Theme, t.ThemeList)
	themeElement := func(gtx C, i int) D {
		gtx.Constraints.Min.Y = gtx.Dp(unit.Dp(20))
		return layout.Inset{Left: unit.Dp(6)}.Layout(gtx, func(gtx C) D {
			return layout.W.Layout(gtx, Label(tr.Theme, &tr.Theme.DiagramPanel.RowValue, tr.ThemeItem(i)).Layout)
		})
	}

	return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Rigid(func(gtx C) D {
			return t.DiagramSettingsExpander.Layout(gtx, tr.Theme, "Diagram",
				func(gtx C) D {
					summary := tr.Root().String() + " " + tr.Scale().String()
					return Label(tr.Theme, &tr.Theme.DiagramPanel.RowHeader, summary).Layout(gtx)
				},
				func(gtx C) D {
					return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
						layout.Rigid(func(gtx C) D {
							return layoutOptionRow(gtx, tr.Theme, "Title", func(gtx C) D {
								gtx.Constraints.Max.X = gtx.Dp(unit.Dp(140))
								return t.TitleEditor.Layout(gtx, tr.Title(), tr.Theme, &tr.Theme.DiagramPanel.Title, "Untitled")
							})
						}),
						layout.Rigid(func(gtx C) D {
							root := NumUpDown(tr.Root(), tr.Theme, t.Root, "Root note")
							return layoutOptionRow(gtx, tr.Theme, "Root", root.Layout)
						}),
						layout.Rigid(func(gtx C) D {
							frets := NumUpDown(tr.FretCount(), tr.Theme, t.FretCount, "Number of visible frets")
							return layoutOptionRow(gtx, tr.Theme, "Frets", frets.Layout)
						}),
						layout.Rigid(func(gtx C) D {
							start := NumUpDown(tr.StartFret(), tr.Theme, t.StartFret, "Fret before the first visible fret")
							return layoutOptionRow(gtx, tr.Theme, "Start fret", start.Layout)
						}),
						layout.Rigid(func(gtx C) D {
							return layoutOptionRow(gtx, tr.Theme, "Labels", labelsBtn.Layout)
						}),
						layout.Rigid(func(gtx C) D {
							bpm := NumUpDown(tr.Play().BPM(), tr.Theme, t.BPM, "Strum tempo")
							return layoutOptionRow(gtx, tr.Theme, "BPM", bpm.Layout)
						}),
						layout.Rigid(func(gtx C) D {
							octave := NumUpDown(tr.Play().Octave(), tr.Theme, tr.OctaveNumberInput, "Octave for the note keys")
							return layoutOptionRow(gtx, tr.Theme, "Octave", octave.Layout)
						}),
					)
				})
		}),
		layout.Rigid(func(gtx C) D {
			return t.ScaleExpander.Layout(gtx, tr.Theme, "Scale",
				func(gtx C) D {
					return Label(tr.Theme, &tr.Theme.DiagramPanel.RowHeader, tr.Scale().String()).Layout(gtx)
				},
				func(gtx C) D {
					gtx.Constraints.Max.Y = min(gtx.Constraints.Max.Y, gtx.Dp(unit.Dp(120)))
					dims := scaleList.Layout(gtx, scaleElement, nil)
					gtx.Constraints.Min = dims.Size
					scaleList.LayoutScrollBar(gtx)
					return dims
				})
		}),
		layout.Rigid(func(gtx C) D {
			return t.ThemeExpander.Layout(gtx, tr.Theme, "Theme",
				func(gtx C) D {
					return Label(tr.Theme, &tr.Theme.DiagramPanel.RowHeader, tr.Model.Theme().String()).Layout(gtx)
				},
				func(gtx C) D {
					gtx.Constraints.Max.Y = min(gtx.Constraints.Max.Y, gtx.Dp(unit.Dp(120)))
					dims := themeList.Layout(gtx, themeElement, nil)
					gtx.Constraints.Min = dims.Size
					themeList.LayoutScrollBar(gtx)
					return dims
				})
		}),
		layout.Flexed(1, func(gtx C) D { return D{Size: gtx.Constraints.Min} }),
		layout.Rigid(Label(tr.Theme, &tr.Theme.DiagramPanel.Version, version.VersionOrHash).Layout),
	)
}

func layoutOptionRow(gtx C, th *Theme, label string, widget layout.Widget) D {
	leftSpacer := layout.Spacer{Width: unit.Dp(6), Height: unit.Dp(24)}.Layout
	rightSpacer := layout.Spacer{Width: unit.Dp(6)}.Layout

	return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx,
		layout.Rigid(leftSpacer),
		layout.Rigid(Label(th, &th.DiagramPanel.RowHeader, label).Layout),
		layout.Flexed(1, func(gtx C) D { return D{Size: gtx.Constraints.Min} }),
		layout.Rigid(widget),
		layout.Rigid(rightSpacer),
	)
}

type MenuBar struct {
	Clickables []Clickable
	MenuStates []MenuState

	midiMenuItems []ActionMenuItem

	panicHint string
	PanicBtn  *Clickable
}

func NewMenuBar(tr *Fretboard) *MenuBar {
	ret := &MenuBar{
		Clickables: make([]Clickable, 4),
		MenuStates: make([]MenuState, 4),
		PanicBtn:   new(Clickable),
		panicHint:  makeHint("Panic", " (%s)", "PanicToggle"),
	}
	for input := range tr.MIDI().InputDevices {
		ret.midiMenuItems = append(ret.midiMenuItems,
			MenuItem(tr.SelectMidiInput(input), input.String(), "", icons.ImageControlPoint),
		)
	}
	return ret
}

func (t *MenuBar) Layout(gtx C) D {
	tr := FretboardFromContext(gtx)
	gtx.Constraints.Max.Y = gtx.Dp(unit.Dp(36))
	gtx.Constraints.Min.Y = gtx.Dp(unit.Dp(36))

	flex := layout.Flex{Axis: layout.Horizontal, Alignment: layout.End}
	fileBtn := MenuBtn(tr.Theme, &t.MenuStates[0], &t.Clickables[0], "File")
	fileFC := layout.Rigid(func(gtx C) D {
		return fileBtn.Layout(gtx,
			MenuItem(tr.NewDiagram(), "New Diagram", keyActionMap["NewDiagram"], icons.ContentClear),
			MenuItem(tr.OpenDiagram(), "Open Diagram", keyActionMap["OpenDiagram"], icons.FileFolder),
			MenuItem(tr.SaveDiagram(), "Save Diagram", keyActionMap["SaveDiagram"], icons.ContentSave),
			MenuItem(tr.SaveDiagramAs(), "Save Diagram As...", keyActionMap["SaveDiagramAs"], icons.ContentSave),
			MenuItem(tr.Export(), "Export...", keyActionMap["Export"], icons.FileFileDownload),
			MenuItem(tr.ExportWav(), "Export Wav...", keyActionMap["ExportWav"], icons.ImageAudiotrack),
			MenuItem(tr.RequestQuit(), "Quit", keyActionMap["Quit"], icons.ActionExitToApp),
		)
	})
	editBtn := MenuBtn(tr.Theme, &t.MenuStates[1], &t.Clickables[1], "Edit")
	editFC := layout.Rigid(func(gtx C) D {
		return editBtn.Layout(gtx,
			MenuItem(tr.History().Undo(), "Undo", keyActionMap["Undo"], icons.ContentUndo),
			MenuItem(tr.History().Redo(), "Redo", keyActionMap["Redo"], icons.ContentRedo),
			MenuItem(tr.ClearSelection(), "Clear selection", keyActionMap["ClearSelection"], icons.ContentClear),
		)
	})
	midiBtn := MenuBtn(tr.Theme, &t.MenuStates[2], &t.Clickables[2], "MIDI")
	midiFC := layout.Rigid(func(gtx C) D {
		return midiBtn.Layout(gtx, t.midiMenuItems...)
	})
	helpBtn := MenuBtn(tr.Theme, &t.MenuStates[3], &t.Clickables[3], "?")
	helpFC := layout.Rigid(func(gtx C) D {
		return helpBtn.Layout(gtx,
			MenuItem(tr.ShowManual(), "Manual", keyActionMap["ShowManual"], icons.AVLibraryBooks),
			MenuItem(tr.ReportBug(), "Report bug", keyActionMap["ReportBug"], icons.ActionBugReport),
			MenuItem(tr.ShowLicense(), "License", keyActionMap["ShowLicense"], icons.ActionCopyright))
	})
	panicBtn := ToggleIconBtn(tr.Play().Panicked(), tr.Theme, t.PanicBtn, icons.AlertErrorOutline, icons.AlertError, t.panicHint, t.panicHint)
	if tr.Play().Panicked().Value() {
		panicBtn.Style = &tr.Theme.IconButton.Error
	}
	panicFC := layout.Flexed(1, func(gtx C) D { return layout.E.Layout(gtx, panicBtn.Layout) })
	if len(t.midiMenuItems) > 0 {
		return flex.Layout(gtx, fileFC, editFC, midiFC, helpFC, panicFC)
	}
	return flex.Layout(gtx, fileFC, editFC, helpFC, panicFC)
}

type PlayBar struct {
	PlayingBtn *Clickable
	NotesBtn   *Clickable
	LoopBtn    *Clickable
	// Hints
	playHint, stopHint        string
	notesOnHint, notesOffHint string
	loopOffHint, loopOnHint   string
}

func NewPlayBar() *PlayBar {
	ret := &PlayBar{
		LoopBtn:    new(Clickable),
		NotesBtn:   new(Clickable),
		PlayingBtn: new(Clickable),
	}
	ret.playHint = makeHint("Strum", " (%s)", "StrumToggle")
	ret.stopHint = makeHint("Stop", " (%s)", "StopStrum")
	ret.notesOnHint = makeHint("Note input on", " (%s)", "InputtingNotesToggle")
	ret.notesOffHint = makeHint("Note input off", " (%s)", "InputtingNotesToggle")
	ret.loopOffHint = makeHint("Loop off", " (%s)", "LoopToggle")
	ret.loopOnHint = makeHint("Loop on", " (%s)", "LoopToggle")
	return ret
}

func (pb *PlayBar) Layout(gtx C) D {
	tr := FretboardFromContext(gtx)
	playBtn := ToggleIconBtn(tr.Play().Started(), tr.Theme, pb.PlayingBtn, icons.AVPlayArrow, icons.AVStop, pb.playHint, pb.stopHint)
	notesBtn := ToggleIconBtn(tr.MIDI().InputtingNotes(), tr.Theme, pb.NotesBtn, icons.AVFiberManualRecord, icons.AVFiberSmartRecord, pb.notesOffHint, pb.notesOnHint)
	loopBtn := ToggleIconBtn(tr.Play().IsLooping(), tr.Theme, pb.LoopBtn, icons.NavigationArrowForward, icons.AVLoop, pb.loopOffHint, pb.loopOnHint)

	return Surface{Gray: 37}.Layout(gtx, func(gtx C) D {
		return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx,
			layout.Flexed(1, playBtn.Layout),
			layout.Rigid(notesBtn.Layout),
			layout.Rigid(loopBtn.Layout),
		)
	})
}

type Expander struct {
	Expanded bool
	click    gesture.Click
}

func (e *Expander) Update(gtx C) {
	for ev, ok := e.click.Update(gtx.Source); ok; ev, ok = e.click.Update(gtx.Source) {
		switch ev.Kind {
		case gesture.KindClick:
			e.Expanded = !e.Expanded
		}
	}
}

func (e *Expander) Layout(gtx C, th *Theme, title string, smallWidget, largeWidget layout.Widget) D {
	e.Update(gtx)
	return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Rigid(func(gtx C) D { return e.layoutHeader(gtx, th, title, smallWidget) }),
		layout.Rigid(func(gtx C) D {
			if e.Expanded {
				return largeWidget(gtx)
			}
			return D{}
		}),
		layout.Rigid(func(gtx C) D {
			px := max(gtx.Dp(unit.Dp(1)), 1)
			paint.FillShape(gtx.Ops, color.NRGBA{255, 255, 255, 3}, clip.Rect(image.Rect(0, 0, gtx.Constraints.Max.X, px)).Op())
			return D{Size: image.Pt(gtx.Constraints.Max.X, px)}
		}),
	)
}

func (e *Expander) layoutHeader(gtx C, th *Theme, title string, smallWidget layout.Widget) D {
	return layout.Background{}.Layout(gtx,
		func(gtx C) D {
			defer clip.Rect(image.Rect(0, 0, gtx.Constraints.Min.X, gtx.Constraints.Min.Y)).Push(gtx.Ops).Pop()
			// add click op
			e.click.Add(gtx.Ops)
			return D{Size: image.Pt(gtx.Constraints.Min.X, gtx.Constraints.Min.Y)}
		},
		func(gtx C) D {
			leftSpacer := layout.Spacer{Width: unit.Dp(6), Height: unit.Dp(24)}.Layout
			return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx,
				layout.Rigid(leftSpacer),
				layout.Rigid(Label(th, &th.DiagramPanel.Expander, title).Layout),
				layout.Flexed(1, func(gtx C) D { return D{Size: gtx.Constraints.Min} }),
				layout.Rigid(func(gtx C) D {
					if !e.Expanded {
						return smallWidget(gtx)
					}
					return D{}
				}),
				layout.Rigid(func(gtx C) D {
					// draw icon
					icon := icons.NavigationExpandMore
					if e.Expanded {
						icon = icons.NavigationExpandLess
					}
					gtx.Constraints.Min = image.Pt(gtx.Dp(unit.Dp(24)), gtx.Dp(unit.Dp(24)))
					return th.Icon(icon).Layout(gtx, th.DiagramPanel.Expander.Color)
				}),
			)
		},
	)
}
