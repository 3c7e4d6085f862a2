package editor

import (
	"fmt"
	"os"

	"github.com/kvirta/otelauta"
)

// toggleCell
type toggleCell Model

func (m *Model) ToggleCell() Action { return MakeAction((*toggleCell)(m)) }
func (m *toggleCell) Do()           { (*Model)(m).Board().Toggle() }

// clearSelection
type clearSelection Model

func (m *Model) ClearSelection() Action { return MakeAction((*clearSelection)(m)) }
func (m *clearSelection) Enabled() bool { return len(m.d.Diagram.Selection) > 0 }
func (m *clearSelection) Do() {
	defer (*Model)(m).change("ClearSelection", SelectionChange, MajorChange)()
	m.d.Diagram.Selection = nil
}

// addFret
type addFret Model

func (m *Model) AddFret() Action { return MakeAction((*addFret)(m)) }
func (m *addFret) Do()           { Table{(*Board)(m)}.Add(1, false) }

// subtractFret
type subtractFret Model

func (m *Model) SubtractFret() Action { return MakeAction((*subtractFret)(m)) }
func (m *subtractFret) Do()           { Table{(*Board)(m)}.Add(-1, false) }

// addOctave
type addOctave Model

func (m *Model) AddOctave() Action { return MakeAction((*addOctave)(m)) }
func (m *addOctave) Do()           { Table{(*Board)(m)}.Add(1, true) }

// subtractOctave
type subtractOctave Model

func (m *Model) SubtractOctave() Action { return MakeAction((*subtractOctave)(m)) }
func (m *subtractOctave) Do()           { Table{(*Board)(m)}.Add(-1, true) }

// newDiagram
type newDiagram Model

func (m *Model) NewDiagram() Action { return MakeAction((*newDiagram)(m)) }
func (m *newDiagram) Do() {
	m.dialog = NewDiagramChanges
	(*Model)(m).completeAction(true)
}

// openDiagram
type openDiagram Model

func (m *Model) OpenDiagram() Action { return MakeAction((*openDiagram)(m)) }
func (m *openDiagram) Do() {
	m.dialog = OpenDiagramChanges
	(*Model)(m).completeAction(true)
}

// requestQuit
type requestQuit Model

func (m *Model) RequestQuit() Action { return MakeAction((*requestQuit)(m)) }
func (m *requestQuit) Do() {
	if !m.quitted {
		m.dialog = QuitChanges
		(*Model)(m).completeAction(true)
	}
}

// forceQuit
type forceQuit Model

func (m *Model) ForceQuit() Action { return MakeAction((*forceQuit)(m)) }
func (m *forceQuit) Do()           { m.quitted = true }

// saveDiagram
type saveDiagram Model

func (m *Model) SaveDiagram() Action { return MakeAction((*saveDiagram)(m)) }
func (m *saveDiagram) Do() {
	if m.d.FilePath == "" {
		switch m.dialog {
		case NoDialog:
			m.dialog = SaveAsExplorer
		case NewDiagramChanges:
			m.dialog = NewDiagramSaveExplorer
		case OpenDiagramChanges:
			m.dialog = OpenDiagramSaveExplorer
		case QuitChanges:
			m.dialog = QuitSaveExplorer
		}
		return
	}
	f, err := os.Create(m.d.FilePath)
	if err != nil {
		(*Model)(m).Alerts().Add("Error creating file: "+err.Error(), Error)
		return
	}
	(*Model)(m).WriteDiagram(f)
	m.d.ChangedSinceSave = false
}

type discardDiagram Model

func (m *Model) DiscardDiagram() Action { return MakeAction((*discardDiagram)(m)) }
func (m *discardDiagram) Do()           { (*Model)(m).completeAction(false) }

type saveDiagramAs Model

func (m *Model) SaveDiagramAs() Action { return MakeAction((*saveDiagramAs)(m)) }
func (m *saveDiagramAs) Do()           { m.dialog = SaveAsExplorer }

type cancel Model

func (m *Model) Cancel() Action { return MakeAction((*cancel)(m)) }
func (m *cancel) Do()           { m.dialog = NoDialog }

type exportAction Model

func (m *Model) Export() Action { return MakeAction((*exportAction)(m)) }
func (m *exportAction) Do()     { m.dialog = Export }

type exportPNG Model

func (m *Model) ExportPNG() Action { return MakeAction((*exportPNG)(m)) }
func (m *exportPNG) Do()           { m.dialog = ExportPNGExplorer }

type exportSVG Model

func (m *Model) ExportSVG() Action { return MakeAction((*exportSVG)(m)) }
func (m *exportSVG) Do()           { m.dialog = ExportSVGExplorer }

type exportWav Model

func (m *Model) ExportWav() Action { return MakeAction((*exportWav)(m)) }
func (m *exportWav) Do()           { m.dialog = ExportWavExplorer }

type showLicense Model

func (m *Model) ShowLicense() Action { return MakeAction((*showLicense)(m)) }
func (m *showLicense) Do()           { m.dialog = License }

type selectMidiInput struct {
	Item MIDIDevice
	*Model
}

func (m *Model) SelectMidiInput(item MIDIDevice) Action {
	return MakeAction(selectMidiInput{Item: item, Model: m})
}
func (s selectMidiInput) Do() {
	m := s.Model
	if err := s.Item.Open(); err == nil {
		message := fmt.Sprintf("Opened MIDI device: %s", s.Item)
		m.Alerts().Add(message, Info)
	} else {
		message := fmt.Sprintf("Could not open MIDI device: %s", s.Item)
		m.Alerts().Add(message, Error)
	}
}

func (m *Model) completeAction(checkSave bool) {
	if checkSave && m.d.ChangedSinceSave {
		return
	}
	switch m.dialog {
	case NewDiagramChanges, NewDiagramSaveExplorer:
		c := m.change("NewDiagram", DiagramChange, MajorChange)
		m.resetDiagram()
		c()
		m.d.ChangedSinceSave = false
		m.dialog = NoDialog
		m.requestCursorVisible()
	case OpenDiagramChanges, OpenDiagramSaveExplorer:
		m.dialog = OpenDiagramOpenExplorer
	case QuitChanges, QuitSaveExplorer:
		m.quitted = true
		m.dialog = NoDialog
	default:
		m.dialog = NoDialog
	}
}

func (m *Model) resetDiagram() {
	m.d.Diagram = otelauta.NewDiagram()
	m.d.FilePath = ""
	m.d.Cursor = Point{}
	m.d.Cursor2 = Point{}
}
