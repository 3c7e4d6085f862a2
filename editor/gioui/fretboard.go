package gioui

import (
	"fmt"
	"image"
	"io"
	"os/exec"
	"path/filepath"
	"runtime"
	"time"

	"gioui.org/app"
	"gioui.org/font/gofont"
	"gioui.org/io/event"
	"gioui.org/io/key"
	"gioui.org/io/pointer"
	"gioui.org/io/system"
	"gioui.org/io/transfer"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/x/explorer"
	"github.com/kvirta/otelauta"
	"github.com/kvirta/otelauta/editor"
	"github.com/kvirta/otelauta/render"
)

type (
	Fretboard struct {
		Theme             *Theme
		OctaveNumberInput *NumericUpDownState
		HorizontalSplit   *SplitState
		KeyNoteMap        Keyboard[key.Name]
		PopupAlert        *AlertsState
		Zoom              int

		DialogState *DialogState

		BoardView    *BoardView
		DiagramPanel *DiagramPanel
		Explorer     *explorer.Explorer
		Exploring    bool

		filePathString editor.String
		noteEvents     []editor.NoteEvent

		preferences Preferences

		*editor.Model
	}

	ShowManual Fretboard
	ReportBug  Fretboard
)

var ZoomFactors = []float32{.25, 1. / 3, .5, 2. / 3, .75, .8, 1, 1.1, 1.25, 1.5, 1.75, 2, 2.5, 3, 4, 5}

func NewFretboard(model *editor.Model) *Fretboard {
	t := &Fretboard{
		OctaveNumberInput: NewNumericUpDownState(),

		HorizontalSplit: &SplitState{Ratio: -.5},

		DialogState: new(DialogState),
		BoardView:   NewBoardView(model),

		Zoom: 6,

		Model: model,

		filePathString: model.FilePath(),
	}
	t.DiagramPanel = NewDiagramPanel(t)
	t.KeyNoteMap = MakeKeyboard[key.Name](model.Broker())
	t.PopupAlert = NewAlertsState()
	var warn error
	if t.Theme, warn = NewTheme(); warn != nil {
		model.Alerts().AddAlert(editor.Alert{
			Priority: editor.Warning,
			Message:  warn.Error(),
			Duration: 10 * time.Second,
		})
	}
	t.Theme.Material.Shaper = text.NewShaper(text.WithCollection(gofont.Collection()))
	if warn := ReadConfig(defaultPreferences, "preferences.yml", &t.preferences); warn != nil {
		model.Alerts().AddAlert(editor.Alert{
			Priority: editor.Warning,
			Message:  warn.Error(),
			Duration: 10 * time.Second,
		})
	}
	return t
}

func (t *Fretboard) Main() {
	recoveryTicker := time.NewTicker(time.Second * 30)
	var ops op.Ops
	titlePath := ""
	globals := make(map[string]any, 1)
	globals["Fretboard"] = t
	for !t.Quitted() {
		w := t.newWindow()
		w.Option(app.Title(titleFromPath(titlePath)))
		t.Explorer = explorer.NewExplorer(w)
		acks := make(chan struct{})
		events := make(chan event.Event)
		go func() {
			for {
				ev := w.Event()
				events <- ev
				<-acks
				if _, ok := ev.(app.DestroyEvent); ok {
					return
				}
			}
		}()
	F:
		for {
			select {
			case e := <-t.Broker().ToGUI:
				switch e := e.(type) {
				case *editor.NoteEvent:
					t.noteEvents = append(t.noteEvents, *e)
				case editor.MsgToGUI:
					switch e.Kind {
					case editor.GUIMessageCenterOnFret:
						t.BoardView.CenterOnFret(e.Param)
					case editor.GUIMessageEnsureCursorVisible:
						t.BoardView.EnsureCursorVisible()
					}
				}
				w.Invalidate()
			case e := <-t.Broker().ToModel:
				t.ProcessMsg(e)
				w.Invalidate()
			case <-t.Broker().CloseGUI:
				t.ForceQuit().Do()
				w.Perform(system.ActionClose)
			case e := <-events:
				switch e := e.(type) {
				case app.DestroyEvent:
					t.RequestQuit().Do()
					acks <- struct{}{}
					break F // this window is done, we need to create a new one
				case app.FrameEvent:
					if titlePath != t.filePathString.Value() {
						titlePath = t.filePathString.Value()
						w.Option(app.Title(titleFromPath(titlePath)))
					}
					gtx := app.NewContext(&ops, e)
					gtx.Values = globals
					t.Layout(gtx, w)
					e.Frame(gtx.Ops)
					if t.Quitted() {
						w.Perform(system.ActionClose)
					}
				}
				acks <- struct{}{}
			case <-recoveryTicker.C:
				t.History().SaveRecovery()
			}
		}
	}
	recoveryTicker.Stop()
	t.History().SaveRecovery()
	close(t.Broker().FinishedGUI)
}

func FretboardFromContext(gtx C) *Fretboard {
	t, ok := gtx.Values["Fretboard"]
	if !ok {
		panic("Fretboard not found in context values")
	}
	return t.(*Fretboard)
}

func (t *Fretboard) newWindow() *app.Window {
	w := new(app.Window)
	w.Option(app.Size(t.preferences.WindowSize()))
	if t.preferences.Window.Maximized {
		w.Option(app.Maximized.Option())
	}
	return w
}

func titleFromPath(path string) string {
	if path == "" {
		return "Otelauta"
	}
	return fmt.Sprintf("Otelauta - %s", path)
}

func (t *Fretboard) Layout(gtx layout.Context, w *app.Window) {
	zoomFactor := ZoomFactors[t.Zoom]
	gtx.Metric.PxPerDp *= zoomFactor
	gtx.Metric.PxPerSp *= zoomFactor
	defer clip.Rect(image.Rectangle{Max: gtx.Constraints.Max}).Push(gtx.Ops).Pop()
	paint.Fill(gtx.Ops, t.Theme.Material.Bg)
	event.Op(gtx.Ops, t) // area for capturing scroll events

	t.HorizontalSplit.Layout(gtx,
		&t.Theme.Split,
		t.DiagramPanel.Layout,
		t.BoardView.Layout)
	alerts := Alerts(t.Alerts(), t.Theme, t.PopupAlert)
	alerts.Layout(gtx)
	t.showDialog(gtx)
	// this is the top level input handler for the whole app
	// it handles all the global key events and clipboard events
	// we need to tell gio that we handle tabs too; otherwise
	// it will steal them for focus switching
	for {
		ev, ok := gtx.Event(
			key.Filter{Name: "", Optional: key.ModAlt | key.ModCommand | key.ModShift | key.ModShortcut | key.ModSuper},
			key.Filter{Name: key.NameTab, Optional: key.ModShift | key.ModShortcut},
			transfer.TargetFilter{Target: t, Type: "application/text"},
			pointer.Filter{Target: t, Kinds: pointer.Scroll, ScrollY: pointer.ScrollRange{Min: -1, Max: 1}},
		)
		if !ok {
			break
		}
		switch e := ev.(type) {
		case pointer.Event:
			switch e.Kind {
			case pointer.Scroll:
				if e.Modifiers.Contain(key.ModShortcut) {
					t.Zoom = min(max(t.Zoom-int(e.Scroll.Y), 0), len(ZoomFactors)-1)
					t.Alerts().AddNamed("ZoomFactor", fmt.Sprintf("%.0f%%", ZoomFactors[t.Zoom]*100), editor.Info)
				}
			}
		case key.Event:
			t.KeyEvent(e, gtx)
		case transfer.DataEvent:
			t.ReadDiagram(e.Open())
		}
	}
	// the board view already took the note events it wanted; the player
	// sounds midi notes on its own, so the leftovers are just dropped
	t.noteEvents = t.noteEvents[:0]
}

func (t *Fretboard) showDialog(gtx C) {
	if t.Exploring {
		return
	}
	switch t.Dialog() {
	case editor.NewDiagramChanges, editor.OpenDiagramChanges, editor.QuitChanges:
		dialog := MakeDialog(t.Theme, t.DialogState, "Save changes to diagram?", "Your changes will be lost if you don't save them.",
			DialogBtn("Save", t.SaveDiagram()),
			DialogBtn("Don't save", t.DiscardDiagram()),
			DialogBtn("Cancel", t.Cancel()),
		)
		dialog.Layout(gtx)
	case editor.Export:
		dialog := MakeDialog(t.Theme, t.DialogState, "Export diagram", "Choose the file format to export.",
			DialogBtn("PNG", t.ExportPNG()),
			DialogBtn("SVG", t.ExportSVG()),
			DialogBtn("Wav", t.ExportWav()),
			DialogBtn("Cancel", t.Cancel()),
		)
		dialog.Layout(gtx)
	case editor.OpenDiagramOpenExplorer:
		t.explorerChooseFile(t.ReadDiagram, ".yml", ".json")
	case editor.NewDiagramSaveExplorer, editor.OpenDiagramSaveExplorer, editor.QuitSaveExplorer, editor.SaveAsExplorer:
		filename := t.filePathString.Value()
		if filename == "" {
			filename = "diagram.yml"
		}
		t.explorerCreateFile(t.WriteDiagram, filename)
	case editor.ExportPNGExplorer, editor.ExportSVGExplorer, editor.ExportWavExplorer:
		ext := "png"
		write := t.WritePNG
		switch t.Dialog() {
		case editor.ExportSVGExplorer:
			ext, write = "svg", t.WriteSVG
		case editor.ExportWavExplorer:
			ext = "wav"
			write = func(wc io.WriteCloser) { t.WriteWav(wc, true) }
		}
		filename := render.ExportFilename(otelauta.PitchClass(t.Root().Value()).String(), ext)
		if p := t.filePathString.Value(); p != "" {
			filename = p[:len(p)-len(filepath.Ext(p))] + "." + ext
		}
		t.explorerCreateFile(write, filename)
	case editor.License:
		dialog := MakeDialog(t.Theme, t.DialogState, "License", otelauta.License,
			DialogBtn("Close", t.Cancel()),
		)
		dialog.Layout(gtx)
	}
}

func (t *Fretboard) explorerChooseFile(success func(io.ReadCloser), extensions ...string) {
	t.Exploring = true
	go func() {
		file, err := t.Explorer.ChooseFile(extensions...)
		t.Broker().ToModel <- editor.MsgToModel{Data: func() {
			t.Exploring = false
			if err == nil {
				success(file)
			} else {
				t.Cancel().Do()
				if err != explorer.ErrUserDecline {
					t.Alerts().Add(err.Error(), editor.Error)
				}
			}
		}}
	}()
}

func (t *Fretboard) explorerCreateFile(success func(io.WriteCloser), filename string) {
	t.Exploring = true
	go func() {
		file, err := t.Explorer.CreateFile(filename)
		t.Broker().ToModel <- editor.MsgToModel{Data: func() {
			t.Exploring = false
			if err == nil {
				success(file)
			} else {
				t.Cancel().Do()
				if err != explorer.ErrUserDecline {
					t.Alerts().Add(err.Error(), editor.Error)
				}
			}
		}}
	}()
}

func (t *Fretboard) ShowManual() editor.Action { return editor.MakeAction((*ShowManual)(t)) }
func (t *ShowManual) Do() {
	(*Fretboard)(t).openUrl("https://github.com/kvirta/otelauta/blob/master/README.md")
}

func (t *Fretboard) ReportBug() editor.Action { return editor.MakeAction((*ReportBug)(t)) }
func (t *ReportBug) Do()                      { (*Fretboard)(t).openUrl("https://github.com/kvirta/otelauta/issues") }

func (t *Fretboard) openUrl(url string) {
	var err error
	// following https://gist.github.com/hyg/9c4afcd91fe24316cbf0
	switch runtime.GOOS {
	case "linux":
		err = exec.Command("xdg-open", url).Start()
	case "windows":
		err = exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()
	case "darwin":
		err = exec.Command("open", url).Start()
	default:
		err = fmt.Errorf("unsupported platform for opening urls %s", runtime.GOOS)
	}
	if err != nil {
		t.Alerts().Add(err.Error(), editor.Error)
	}
}

func (t *Fretboard) Tags(curLevel int, yield TagYieldFunc) bool {
	return t.DiagramPanel.Tags(curLevel+1, yield) &&
		t.BoardView.Tags(curLevel+1, yield)
}
