package gioui

import (
	"image"
	"image/color"

	"github.com/kvirta/otelauta/editor"
	"golang.org/x/exp/shiny/materialdesign/icons"

	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/widget"

	"gioui.org/font"
	"gioui.org/gesture"
	"gioui.org/io/event"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/text"
	"gioui.org/unit"
)

type (
	NumericUpDownState struct {
		dragStartValue int
		dragStartXY    float32
		clickDecrease  gesture.Click
		clickIncrease  gesture.Click
		tipArea        TipArea
	}

	NumericUpDownStyle struct {
		TextColor    color.NRGBA
		IconColor    color.NRGBA
		BgColor      color.NRGBA
		CornerRadius unit.Dp
		ButtonWidth  unit.Dp
		DpPerStep    unit.Dp
		TextSize     unit.Sp
		Font         font.Font
		Width        unit.Dp
		Height       unit.Dp
	}

	NumericUpDownWidget struct {
		Theme   *Theme
		Int     editor.Int
		State   *NumericUpDownState
		Tooltip string
	}
)

func NewNumericUpDownState() *NumericUpDownState {
	return &NumericUpDownState{}
}

func NumUpDown(v editor.Int, th *Theme, state *NumericUpDownState, tooltip string) NumericUpDownWidget {
	return NumericUpDownWidget{Theme: th, Int: v, State: state, Tooltip: tooltip}
}

func (n NumericUpDownWidget) Update(gtx layout.Context) {
	// dragging along x+y adjusts the value, a step per DpPerStep
	pxPerStep := float32(gtx.Dp(n.Theme.NumericUpDown.DpPerStep))
	for {
		ev, ok := gtx.Event(pointer.Filter{
			Target: n.State,
			Kinds:  pointer.Press | pointer.Drag | pointer.Release,
		})
		if !ok {
			break
		}
		if e, ok := ev.(pointer.Event); ok {
			switch e.Kind {
			case pointer.Press:
				n.State.dragStartValue = n.Int.Value()
				n.State.dragStartXY = e.Position.X - e.Position.Y
			case pointer.Drag:
				deltaCoord := e.Position.X - e.Position.Y - n.State.dragStartXY
				n.Int.SetValue(n.State.dragStartValue + int(deltaCoord/pxPerStep+0.5))
			}
		}
	}
	for ev, ok := n.State.clickDecrease.Update(gtx.Source); ok; ev, ok = n.State.clickDecrease.Update(gtx.Source) {
		if ev.Kind == gesture.KindClick {
			n.Int.Add(-1)
		}
	}
	for ev, ok := n.State.clickIncrease.Update(gtx.Source); ok; ev, ok = n.State.clickIncrease.Update(gtx.Source) {
		if ev.Kind == gesture.KindClick {
			n.Int.Add(1)
		}
	}
}

func (n NumericUpDownWidget) Layout(gtx C) D {
	if n.Tooltip != "" {
		return n.State.tipArea.Layout(gtx, Tooltip(n.Theme, n.Tooltip), n.actualLayout)
	}
	return n.actualLayout(gtx)
}

func (n NumericUpDownWidget) actualLayout(gtx C) D {
	n.Update(gtx)
	s := &n.Theme.NumericUpDown
	gtx.Constraints = layout.Exact(image.Pt(gtx.Dp(s.Width), gtx.Dp(s.Height)))
	width := gtx.Dp(s.ButtonWidth)
	height := gtx.Dp(s.Height)
	return layout.Background{}.Layout(gtx,
		func(gtx C) D {
			defer clip.UniformRRect(image.Rectangle{Max: gtx.Constraints.Min}, gtx.Dp(s.CornerRadius)).Push(gtx.Ops).Pop()
			paint.Fill(gtx.Ops, s.BgColor)
			event.Op(gtx.Ops, n.State) // register drag inputs, if not hitting the clicks
			return D{Size: gtx.Constraints.Min}
		},
		func(gtx C) D {
			return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx,
				layout.Rigid(func(gtx C) D {
					gtx.Constraints = layout.Exact(image.Pt(width, height))
					return layout.Background{}.Layout(gtx,
						func(gtx C) D {
							defer clip.Rect(image.Rectangle{Max: gtx.Constraints.Min}).Push(gtx.Ops).Pop()
							n.State.clickDecrease.Add(gtx.Ops)
							return D{Size: gtx.Constraints.Min}
						},
						func(gtx C) D { return n.Theme.Icon(icons.ContentRemove).Layout(gtx, s.IconColor) },
					)
				}),
				layout.Flexed(1, func(gtx C) D {
					paint.ColorOp{Color: s.TextColor}.Add(gtx.Ops)
					return widget.Label{Alignment: text.Middle}.Layout(gtx, n.Theme.Material.Shaper, s.Font, s.TextSize, n.Int.String(), op.CallOp{})
				}),
				layout.Rigid(func(gtx C) D {
					gtx.Constraints = layout.Exact(image.Pt(width, height))
					return layout.Background{}.Layout(gtx,
						func(gtx C) D {
							defer clip.Rect(image.Rectangle{Max: gtx.Constraints.Min}).Push(gtx.Ops).Pop()
							n.State.clickIncrease.Add(gtx.Ops)
							return D{Size: gtx.Constraints.Min}
						},
						func(gtx C) D { return n.Theme.Icon(icons.ContentAdd).Layout(gtx, s.IconColor) },
					)
				}),
			)
		},
	)
}
