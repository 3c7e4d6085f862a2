package editor

import (
	"crypto/rand"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/kvirta/otelauta"
	"github.com/kvirta/otelauta/render"
)

// exportScale is the rasterization scale of exported images, so the PNG comes
// out crisper than the typical on-screen rendering.
const exportScale = 2

func (m *Model) ReadDiagram(r io.ReadCloser) {
	b, err := io.ReadAll(r)
	if err != nil {
		return
	}
	err = r.Close()
	if err != nil {
		return
	}
	var diagram otelauta.Diagram
	if errJSON := json.Unmarshal(b, &diagram); errJSON != nil {
		if errYaml := yaml.Unmarshal(b, &diagram); errYaml != nil {
			m.Alerts().Add(fmt.Sprintf("Error unmarshaling a diagram file: %v / %v", errYaml, errJSON), Error)
			return
		}
	}
	if err := diagram.Validate(); err != nil {
		m.Alerts().Add(fmt.Sprintf("Error loading a diagram file: %v", err), Error)
		return
	}
	diagram.Clamp()
	f := m.change("LoadDiagram", DiagramChange, MajorChange)
	m.d.Diagram = diagram
	if f, ok := r.(*os.File); ok {
		m.d.FilePath = f.Name()
		// when the diagram is loaded from a file, we are quite confident that
		// the file is persisted and thus we can quit without worrying about
		// losing changes
		m.d.ChangedSinceSave = false
	}
	f()
	m.requestCursorVisible()
	m.completeAction(false)
}

func (m *Model) WriteDiagram(w io.WriteCloser) {
	path := ""
	if f, ok := w.(*os.File); ok {
		path = f.Name()
	}
	var contents []byte
	var err error
	if filepath.Ext(path) == ".json" {
		contents, err = json.Marshal(m.d.Diagram)
	} else {
		contents, err = yaml.Marshal(m.d.Diagram)
	}
	if err != nil {
		m.Alerts().Add(fmt.Sprintf("Error marshaling a diagram file: %v", err), Error)
		return
	}
	if _, err := w.Write(contents); err != nil {
		m.Alerts().Add(fmt.Sprintf("Error writing to file: %v", err), Error)
		return
	}
	if err := w.Close(); err != nil {
		m.Alerts().Add(fmt.Sprintf("Error closing the file: %v", err), Error)
		return
	}
	if path != "" {
		// when the diagram is saved to a file, we are quite confident that
		// the file is persisted and thus we can quit without worrying about
		// losing changes
		m.d.FilePath = path
		m.d.ChangedSinceSave = false
	}
	m.completeAction(false)
}

// WritePNG renders the diagram and writes it out as a PNG image. The current
// theme decides the colors and whether the background is transparent.
func (m *Model) WritePNG(w io.WriteCloser) {
	m.dialog = NoDialog
	r := render.NewRenderer()
	r.RenderAll(m.d.Diagram, m.CurrentTheme(), exportScale)
	if err := r.WritePNG(w); err != nil {
		m.Alerts().Add(fmt.Sprintf("Error writing the png: %v", err), Error)
		return
	}
	if err := w.Close(); err != nil {
		m.Alerts().Add(fmt.Sprintf("Error closing the file: %v", err), Error)
	}
}

// WriteSVG renders the diagram and writes it out as an SVG document.
func (m *Model) WriteSVG(w io.WriteCloser) {
	m.dialog = NoDialog
	r := render.NewRenderer()
	r.RenderAll(m.d.Diagram, m.CurrentTheme(), exportScale)
	if err := r.WriteSVG(w); err != nil {
		m.Alerts().Add(fmt.Sprintf("Error writing the svg: %v", err), Error)
		return
	}
	if err := w.Close(); err != nil {
		m.Alerts().Add(fmt.Sprintf("Error closing the file: %v", err), Error)
	}
}

// WriteWav renders the strum offline and writes it out as a .wav file, in a
// goroutine so a slow render does not block the GUI. Progress and errors are
// reported through alerts.
func (m *Model) WriteWav(w io.WriteCloser, pcm16 bool) {
	m.dialog = NoDialog
	strum := slices.Clone(m.derived.strum)
	bpm := m.bpm
	go func() {
		b := make([]byte, 32+2)
		rand.Read(b)
		name := fmt.Sprintf("%x", b)[2 : 32+2]
		data, err := otelauta.Play(m.synther, strum, bpm, func(p float32) {
			txt := fmt.Sprintf("Exporting strum: %.0f%%", p*100)
			TrySend(m.broker.ToModel, MsgToModel{Data: Alert{Message: txt, Priority: Info, Name: name, Duration: defaultAlertDuration}})
		})
		if err != nil {
			txt := fmt.Sprintf("Error rendering the strum during export: %v", err)
			TrySend(m.broker.ToModel, MsgToModel{Data: Alert{Message: txt, Priority: Error, Name: name, Duration: defaultAlertDuration}})
			return
		}
		buffer, err := data.Wav(pcm16)
		if err != nil {
			txt := fmt.Sprintf("Error converting to .wav: %v", err)
			TrySend(m.broker.ToModel, MsgToModel{Data: Alert{Message: txt, Priority: Error, Name: name, Duration: defaultAlertDuration}})
			return
		}
		w.Write(buffer)
		w.Close()
	}()
}
