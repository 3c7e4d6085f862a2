package gioui

import (
	"image"
	"image/color"

	"gioui.org/font"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget"
)

type LabelStyle struct {
	Color      color.NRGBA
	ShadeColor color.NRGBA
	Alignment  layout.Direction
	Font       font.Font
	TextSize   unit.Sp
}

type LabelWidget struct {
	Text   string
	Shaper *text.Shaper
	LabelStyle
}

func Label(th *Theme, style *LabelStyle, text string) LabelWidget {
	return LabelWidget{Text: text, Shaper: th.Material.Shaper, LabelStyle: *style}
}

func (l LabelWidget) Layout(gtx C) D {
	return l.Alignment.Layout(gtx, func(gtx C) D {
		textColorMacro := op.Record(gtx.Ops)
		paint.ColorOp{Color: l.Color}.Add(gtx.Ops)
		textColor := textColorMacro.Stop()
		w := widget.Label{}
		if l.ShadeColor.A > 0 {
			shadeColorMacro := op.Record(gtx.Ops)
			paint.ColorOp{Color: l.ShadeColor}.Add(gtx.Ops)
			shadeColor := shadeColorMacro.Stop()
			func() {
				defer op.Offset(image.Pt(2, 2)).Push(gtx.Ops).Pop()
				w.Layout(gtx, l.Shaper, l.Font, l.TextSize, l.Text, shadeColor)
			}()
		}
		return w.Layout(gtx, l.Shaper, l.Font, l.TextSize, l.Text, textColor)
	})
}
