package gioui

import (
	"image"
	"image/color"

	"gioui.org/io/semantic"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget"

	"github.com/kvirta/otelauta/editor"
)

type (
	// Clickable is a widget.Clickable with a tooltip area, so every button in
	// the app can have a hover hint without extra state plumbing.
	Clickable struct {
		widget.Clickable
		tipArea TipArea
	}

	ButtonStyle struct {
		TextSize     unit.Sp
		Color        color.NRGBA
		Background   color.NRGBA
		CornerRadius unit.Dp
		Height       unit.Dp
		Inset        layout.Inset
	}

	IconButtonStyle struct {
		Background color.NRGBA
		Color      color.NRGBA
		Size       unit.Dp
		Inset      layout.Inset
	}

	ButtonWidget struct {
		Theme *Theme
		Style *ButtonStyle
		State *Clickable
		Text  string
		Tip   string
	}

	IconButtonWidget struct {
		Theme *Theme
		Style *IconButtonStyle
		State *Clickable
		Icon  []byte
		Tip   string

		// Action and Bool are performed/toggled when the button is clicked.
		// Both are safe to leave zero valued, in which case the click is left
		// for the caller to handle through State.
		Action editor.Action
		Bool   editor.Bool
	}
)

func Btn(th *Theme, style *ButtonStyle, state *Clickable, text string, tip string) ButtonWidget {
	return ButtonWidget{Theme: th, Style: style, State: state, Text: text, Tip: tip}
}

func (b ButtonWidget) Layout(gtx C) D {
	if b.Tip != "" {
		return b.State.tipArea.Layout(gtx, Tooltip(b.Theme, b.Tip), b.actualLayout)
	}
	return b.actualLayout(gtx)
}

func (b ButtonWidget) actualLayout(gtx C) D {
	gtx.Constraints.Min.Y = gtx.Dp(b.Style.Height)
	if gtx.Constraints.Max.Y < gtx.Constraints.Min.Y {
		gtx.Constraints.Max.Y = gtx.Constraints.Min.Y
	}
	return b.State.Layout(gtx, func(gtx C) D {
		semantic.Button.Add(gtx.Ops)
		return layout.Background{}.Layout(gtx,
			func(gtx C) D {
				rr := gtx.Dp(b.Style.CornerRadius)
				defer clip.UniformRRect(image.Rectangle{Max: gtx.Constraints.Min}, rr).Push(gtx.Ops).Pop()
				bg := b.Style.Background
				if b.State.Hovered() {
					bg = hoveredColor(bg)
				}
				paint.Fill(gtx.Ops, bg)
				return D{Size: gtx.Constraints.Min}
			},
			func(gtx C) D {
				return b.Style.Inset.Layout(gtx, func(gtx C) D {
					style := LabelStyle{Color: b.Style.Color, TextSize: b.Style.TextSize, Alignment: layout.Center}
					return Label(b.Theme, &style, b.Text).Layout(gtx)
				})
			},
		)
	})
}

// IconBtn returns an icon button with a fixed style. Clicks are left for the
// caller to handle.
func IconBtn(th *Theme, style *IconButtonStyle, state *Clickable, icon []byte, tip string) IconButtonWidget {
	return IconButtonWidget{Theme: th, Style: style, State: state, Icon: icon, Tip: tip}
}

// ActionIconBtn returns an icon button that performs the action when clicked,
// drawn with the disabled style when the action is not allowed.
func ActionIconBtn(act editor.Action, th *Theme, state *Clickable, icon []byte, tip string) IconButtonWidget {
	style := &th.IconButton.Enabled
	if !act.Enabled() {
		style = &th.IconButton.Disabled
	}
	ret := IconBtn(th, style, state, icon, tip)
	ret.Action = act
	return ret
}

// ToggleIconBtn returns an icon button that toggles the Bool when clicked,
// showing different icons and hints for the off and on states.
func ToggleIconBtn(b editor.Bool, th *Theme, state *Clickable, offIcon, onIcon []byte, offTip, onTip string) IconButtonWidget {
	style := &th.IconButton.Enabled
	if !b.Enabled() {
		style = &th.IconButton.Disabled
	}
	ret := IconBtn(th, style, state, offIcon, offTip)
	if b.Value() {
		ret.Icon = onIcon
		ret.Tip = onTip
	}
	ret.Bool = b
	return ret
}

func (b IconButtonWidget) Layout(gtx C) D {
	// zero valued Action & Bool no-op, so we can always call both
	for b.State.Clicked(gtx) {
		b.Action.Do()
		b.Bool.Toggle()
	}
	if b.Tip != "" {
		return b.State.tipArea.Layout(gtx, Tooltip(b.Theme, b.Tip), b.actualLayout)
	}
	return b.actualLayout(gtx)
}

func (b IconButtonWidget) actualLayout(gtx C) D {
	return b.State.Layout(gtx, func(gtx C) D {
		semantic.Button.Add(gtx.Ops)
		if b.Style.Background.A > 0 {
			rr := gtx.Constraints.Min.X / 2
			defer clip.UniformRRect(image.Rectangle{Max: gtx.Constraints.Min}, rr).Push(gtx.Ops).Pop()
			paint.Fill(gtx.Ops, b.Style.Background)
		}
		return b.Style.Inset.Layout(gtx, func(gtx C) D {
			size := gtx.Dp(b.Style.Size)
			gtx.Constraints = layout.Exact(image.Pt(size, size))
			color := b.Style.Color
			if b.State.Hovered() {
				color = hoveredColor(color)
			}
			return b.Theme.Icon(b.Icon).Layout(gtx, color)
		})
	})
}
