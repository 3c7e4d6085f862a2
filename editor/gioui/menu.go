package gioui

import (
	"image"
	"image/color"

	"gioui.org/io/event"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"github.com/kvirta/otelauta/editor"
)

type (
	MenuState struct {
		visible   bool
		tags      []bool
		hover     int
		list      layout.List
		scrollBar ScrollBar
	}

	MenuStyle struct {
		TextColor     color.NRGBA
		ShortCutColor color.NRGBA
		IconColor     color.NRGBA
		HoverColor    color.NRGBA
		Disabled      color.NRGBA
		TextSize      unit.Sp
		IconSize      unit.Dp
	}

	// ActionMenuItem fires its Action when the item is clicked, so the menus
	// need no click dispatching at the call sites.
	ActionMenuItem struct {
		Action   editor.Action
		Text     string
		Shortcut string
		Icon     []byte
	}

	MenuBtnWidget struct {
		Theme *Theme
		State *MenuState
		Btn   *Clickable
		Title string
		Width unit.Dp
	}
)

func MenuItem(action editor.Action, text, shortcut string, icon []byte) ActionMenuItem {
	return ActionMenuItem{Action: action, Text: text, Shortcut: shortcut, Icon: icon}
}

func MenuBtn(th *Theme, state *MenuState, button *Clickable, title string) MenuBtnWidget {
	return MenuBtnWidget{Theme: th, State: state, Btn: button, Title: title, Width: unit.Dp(200)}
}

func (m MenuBtnWidget) Layout(gtx C, items ...ActionMenuItem) D {
	for m.Btn.Clicked(gtx) {
		m.State.visible = true
	}
	defer op.Offset(image.Point{}).Push(gtx.Ops).Pop()
	titleBtn := Btn(m.Theme, &m.Theme.Button.Menu, m.Btn, m.Title, "")
	dims := titleBtn.Layout(gtx)
	op.Offset(image.Pt(0, dims.Size.Y)).Add(gtx.Ops)
	gtx.Constraints.Max.X = gtx.Dp(m.Width)
	gtx.Constraints.Max.Y = gtx.Dp(unit.Dp(1000))
	m.layoutMenu(gtx, items...)
	return dims
}

func (m MenuBtnWidget) layoutMenu(gtx C, items ...ActionMenuItem) D {
	st := &m.Theme.Menu
	contents := func(gtx C) D {
		for i := range items {
			// make sure we have a tag for every item
			for len(m.State.tags) <= i {
				m.State.tags = append(m.State.tags, false)
			}
			for {
				ev, ok := gtx.Event(pointer.Filter{
					Target: &m.State.tags[i],
					Kinds:  pointer.Press | pointer.Enter | pointer.Leave,
				})
				if !ok {
					break
				}
				e, ok := ev.(pointer.Event)
				if !ok {
					continue
				}
				switch e.Kind {
				case pointer.Press:
					items[i].Action.Do()
					m.State.visible = false
				case pointer.Enter:
					m.State.hover = i + 1
				case pointer.Leave:
					if m.State.hover == i+1 {
						m.State.hover = 0
					}
				}
			}
		}
		m.State.list.Axis = layout.Vertical
		m.State.scrollBar.Axis = layout.Vertical
		return layout.Stack{Alignment: layout.SE}.Layout(gtx,
			layout.Expanded(func(gtx C) D {
				return m.State.list.Layout(gtx, len(items), func(gtx C, i int) D {
					defer op.Offset(image.Point{}).Push(gtx.Ops).Pop()
					var macro op.MacroOp
					item := &items[i]
					enabled := item.Action.Enabled()
					if i == m.State.hover-1 && enabled {
						macro = op.Record(gtx.Ops)
					}
					iconColor := st.IconColor
					textColor := st.TextColor
					if !enabled {
						iconColor = st.Disabled
						textColor = st.Disabled
					}
					iconInset := layout.Inset{Left: unit.Dp(12), Right: unit.Dp(6)}
					textLabel := LabelWidget{Text: item.Text, Shaper: m.Theme.Material.Shaper, LabelStyle: LabelStyle{Color: textColor, TextSize: st.TextSize}}
					shortcutLabel := LabelWidget{Text: item.Shortcut, Shaper: m.Theme.Material.Shaper, LabelStyle: LabelStyle{Color: st.ShortCutColor, TextSize: st.TextSize}}
					shortcutInset := layout.Inset{Left: unit.Dp(12), Right: unit.Dp(12), Bottom: unit.Dp(2), Top: unit.Dp(2)}
					dims := layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx,
						layout.Rigid(func(gtx C) D {
							return iconInset.Layout(gtx, func(gtx C) D {
								p := gtx.Dp(st.IconSize)
								gtx.Constraints.Min = image.Pt(p, p)
								return m.Theme.Icon(item.Icon).Layout(gtx, iconColor)
							})
						}),
						layout.Rigid(textLabel.Layout),
						layout.Flexed(1, func(gtx C) D { return D{Size: image.Pt(gtx.Constraints.Max.X, 1)} }),
						layout.Rigid(func(gtx C) D {
							return shortcutInset.Layout(gtx, shortcutLabel.Layout)
						}),
					)
					if i == m.State.hover-1 && enabled {
						recording := macro.Stop()
						paint.FillShape(gtx.Ops, st.HoverColor, clip.Rect{
							Max: image.Pt(dims.Size.X, dims.Size.Y),
						}.Op())
						recording.Add(gtx.Ops)
					}
					if enabled {
						rect := image.Rect(0, 0, dims.Size.X, dims.Size.Y)
						area := clip.Rect(rect).Push(gtx.Ops)
						event.Op(gtx.Ops, &m.State.tags[i])
						area.Pop()
					}
					return dims
				})
			}),
			layout.Expanded(func(gtx C) D {
				return m.State.scrollBar.Layout(gtx, &m.Theme.ScrollBar, len(items), &m.State.list.Position)
			}),
		)
	}
	popup := Popup(&m.Theme.Popup.Menu, &m.State.visible)
	popup.NE = unit.Dp(0)
	popup.ShadowN = unit.Dp(0)
	popup.NW = unit.Dp(0)
	return popup.Layout(gtx, contents)
}
