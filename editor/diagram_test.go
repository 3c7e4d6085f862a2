package editor_test

import (
	"bytes"
	"io"
	"path/filepath"
	"testing"

	"github.com/kvirta/otelauta"
	"github.com/kvirta/otelauta/editor"
	"github.com/kvirta/otelauta/pluck"
)

func newTestModel() *editor.Model {
	broker := editor.NewBroker()
	return editor.NewModel(broker, pluck.Synther{}, editor.NullMIDIContext{}, "")
}

func TestFretCountClamped(t *testing.T) {
	model := newTestModel()
	model.FretCount().SetValue(30)
	if got := model.FretCount().Value(); got != otelauta.MaxFretCount {
		t.Errorf("FretCount after SetValue(30) = %d, expected %d", got, otelauta.MaxFretCount)
	}
	model.FretCount().SetValue(0)
	if got := model.FretCount().Value(); got != otelauta.MinFretCount {
		t.Errorf("FretCount after SetValue(0) = %d, expected %d", got, otelauta.MinFretCount)
	}
}

func TestBPMClamped(t *testing.T) {
	model := newTestModel()
	model.Play().BPM().SetValue(100000)
	if got := model.Play().BPM().Value(); got != 300 {
		t.Errorf("BPM after SetValue(100000) = %d, expected 300", got)
	}
	model.Play().BPM().SetValue(-4)
	if got := model.Play().BPM().Value(); got != 30 {
		t.Errorf("BPM after SetValue(-4) = %d, expected 30", got)
	}
}

func TestToggleCellUndoRedo(t *testing.T) {
	model := newTestModel()
	cursor := editor.Point{X: 2, Y: 3}
	model.Board().Table().SetCursor(cursor)
	model.Board().Table().SetCursor2(cursor)
	model.ToggleCell().Do()
	if !model.Board().Selected(cursor) {
		t.Fatal("cell not highlighted after ToggleCell")
	}
	model.History().Undo().Do()
	if model.Board().Selected(cursor) {
		t.Error("cell still highlighted after Undo")
	}
	model.History().Redo().Do()
	if !model.Board().Selected(cursor) {
		t.Error("cell not highlighted after Redo")
	}
}

func TestClearSelectionDisabledWhenEmpty(t *testing.T) {
	model := newTestModel()
	if model.ClearSelection().Enabled() {
		t.Error("ClearSelection enabled with empty selection")
	}
	model.ToggleCell().Do()
	if !model.ClearSelection().Enabled() {
		t.Error("ClearSelection disabled with non-empty selection")
	}
	model.ClearSelection().Do()
	if model.ClearSelection().Enabled() {
		t.Error("ClearSelection still enabled after clearing")
	}
}

func TestStrumEnabledOnlyWithSelection(t *testing.T) {
	model := newTestModel()
	if model.Play().Strum().Enabled() {
		t.Error("Strum enabled with empty selection")
	}
	model.ToggleCell().Do()
	if !model.Play().Strum().Enabled() {
		t.Error("Strum disabled with a highlighted cell")
	}
}

func TestWriteReadDiagramRoundTrip(t *testing.T) {
	model := newTestModel()
	model.FretCount().SetValue(7)
	model.StartFret().SetValue(4)
	model.Title().SetValue("blues box")
	model.Board().Table().SetCursor(editor.Point{X: 1, Y: 1})
	model.Board().Table().SetCursor2(editor.Point{X: 1, Y: 1})
	model.ToggleCell().Do()

	writer := bytes.NewBuffer(nil)
	model.WriteDiagram(&myWriteCloser{writer})

	loaded := newTestModel()
	loaded.ReadDiagram(io.NopCloser(bytes.NewReader(writer.Bytes())))
	if got := loaded.FretCount().Value(); got != 7 {
		t.Errorf("loaded FretCount = %d, expected 7", got)
	}
	if got := loaded.StartFret().Value(); got != 4 {
		t.Errorf("loaded StartFret = %d, expected 4", got)
	}
	if got := loaded.Title().Value(); got != "blues box" {
		t.Errorf("loaded Title = %q, expected %q", got, "blues box")
	}
	if !loaded.Board().Selected(editor.Point{X: 1, Y: 1}) {
		t.Error("loaded diagram lost the highlighted cell")
	}
}

func TestSaveRecoveryRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "recovery.yml")
	model := editor.NewModel(editor.NewBroker(), pluck.Synther{}, editor.NullMIDIContext{}, path)
	model.FretCount().SetValue(7)
	model.Title().SetValue("dorian workout")
	model.Board().Table().SetCursor(editor.Point{X: 2, Y: 4})
	model.Board().Table().SetCursor2(editor.Point{X: 2, Y: 4})
	model.ToggleCell().Do()
	if err := model.History().SaveRecovery(); err != nil {
		t.Fatalf("SaveRecovery: %v", err)
	}

	restored := editor.NewModel(editor.NewBroker(), pluck.Synther{}, editor.NullMIDIContext{}, path)
	if got := restored.FretCount().Value(); got != 7 {
		t.Errorf("restored FretCount = %d, expected 7", got)
	}
	if got := restored.Title().Value(); got != "dorian workout" {
		t.Errorf("restored Title = %q, expected %q", got, "dorian workout")
	}
	if !restored.Board().Selected(editor.Point{X: 2, Y: 4}) {
		t.Error("restored model lost the highlighted cell")
	}
}

func TestReadDiagramRejectsUnknownScale(t *testing.T) {
	model := newTestModel()
	before := model.Scale().Value()
	data := []byte("root: E\nscale: superlocrian\nfretcount: 5\n")
	model.ReadDiagram(io.NopCloser(bytes.NewReader(data)))
	if got := model.Scale().Value(); got != before {
		t.Errorf("Scale changed to %d after loading a diagram with an unknown scale", got)
	}
	found := false
	for _, a := range model.Alerts().Iterate {
		if a.Priority == editor.Error {
			found = true
		}
	}
	if !found {
		t.Error("no error alert after loading a diagram with an unknown scale")
	}
}
