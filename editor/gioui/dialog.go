package gioui

import (
	"image/color"

	"gioui.org/io/key"
	"gioui.org/layout"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"github.com/kvirta/otelauta/editor"
)

type (
	DialogState struct {
		clicks []Clickable
	}

	DialogStyle struct {
		Bg        color.NRGBA
		Title     LabelStyle
		Text      LabelStyle
		Inset     layout.Inset
		TextInset layout.Inset
		MaxWidth  unit.Dp
	}

	DialogButton struct {
		Text   string
		Action editor.Action
	}

	DialogWidget struct {
		Theme   *Theme
		State   *DialogState
		Title   string
		Text    string
		Buttons []DialogButton
	}
)

func DialogBtn(text string, action editor.Action) DialogButton {
	return DialogButton{Text: text, Action: action}
}

// MakeDialog makes a modal dialog with the given title, text and buttons. The
// last button is the cancel button: it gets the focus when the dialog opens
// and pressing Escape fires its action.
func MakeDialog(th *Theme, state *DialogState, title, text string, btns ...DialogButton) DialogWidget {
	for len(state.clicks) < len(btns) {
		state.clicks = append(state.clicks, Clickable{})
	}
	return DialogWidget{Theme: th, State: state, Title: title, Text: text, Buttons: btns}
}

func (d *DialogWidget) handleKeys(gtx C) {
	n := len(d.Buttons)
	if n == 0 {
		return
	}
	for i := range d.Buttons {
		tag := &d.State.clicks[i].Clickable
		for {
			e, ok := gtx.Event(
				key.Filter{Focus: tag, Name: key.NameLeftArrow},
				key.Filter{Focus: tag, Name: key.NameRightArrow},
				key.Filter{Focus: tag, Name: key.NameEscape},
				key.Filter{Focus: tag, Name: key.NameTab, Optional: key.ModShift},
			)
			if !ok {
				break
			}
			if e, ok := e.(key.Event); ok && e.State == key.Press {
				switch {
				case e.Name == key.NameLeftArrow || (e.Name == key.NameTab && e.Modifiers.Contain(key.ModShift)):
					gtx.Execute(key.FocusCmd{Tag: &d.State.clicks[(i+n-1)%n].Clickable})
				case e.Name == key.NameRightArrow || (e.Name == key.NameTab && !e.Modifiers.Contain(key.ModShift)):
					gtx.Execute(key.FocusCmd{Tag: &d.State.clicks[(i+1)%n].Clickable})
				case e.Name == key.NameEscape:
					d.Buttons[n-1].Action.Do()
				}
			}
		}
	}
}

func (d DialogWidget) Layout(gtx C) D {
	style := &d.Theme.Dialog
	anyFocused := false
	for i := range d.Buttons {
		for d.State.clicks[i].Clicked(gtx) {
			d.Buttons[i].Action.Do()
		}
		anyFocused = anyFocused || gtx.Focused(&d.State.clicks[i].Clickable)
	}
	if !anyFocused && len(d.Buttons) > 0 {
		gtx.Execute(key.FocusCmd{Tag: &d.State.clicks[len(d.Buttons)-1].Clickable})
	}
	d.handleKeys(gtx)
	paint.Fill(gtx.Ops, style.Bg)
	visible := true
	return layout.Center.Layout(gtx, func(gtx C) D {
		if mw := gtx.Dp(style.MaxWidth); gtx.Constraints.Max.X > mw {
			gtx.Constraints.Max.X = mw
		}
		popup := Popup(&d.Theme.Popup.Dialog, &visible)
		return popup.Layout(gtx, func(gtx C) D {
			return style.Inset.Layout(gtx, func(gtx C) D {
				return layout.Flex{Axis: layout.Vertical, Alignment: layout.Middle}.Layout(gtx,
					layout.Rigid(Label(d.Theme, &style.Title, d.Title).Layout),
					layout.Rigid(func(gtx C) D {
						return style.TextInset.Layout(gtx, Label(d.Theme, &style.Text, d.Text).Layout)
					}),
					layout.Rigid(func(gtx C) D {
						return layout.E.Layout(gtx, func(gtx C) D {
							gtx.Constraints.Min.X = gtx.Dp(unit.Dp(120))
							children := make([]layout.FlexChild, 0, len(d.Buttons))
							for i, b := range d.Buttons {
								st := &d.Theme.Button.Text
								if !b.Action.Enabled() {
									st = &d.Theme.Button.Disabled
								}
								btn := Btn(d.Theme, st, &d.State.clicks[i], b.Text, "")
								children = append(children, layout.Rigid(btn.Layout))
							}
							return layout.Flex{Axis: layout.Horizontal, Spacing: layout.SpaceBetween}.Layout(gtx, children...)
						})
					}),
				)
			})
		})
	})
}
