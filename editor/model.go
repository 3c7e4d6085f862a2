package editor

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/kvirta/otelauta"
	"github.com/kvirta/otelauta/render"
)

type (
	// modelData is the part of the model that gets (de)serialized to the
	// recovery file and copied to the undo/redo stacks. All fields need to be
	// exported for the marshaling to work.
	modelData struct {
		Diagram otelauta.Diagram

		Cursor, Cursor2 Point

		FilePath         string
		ChangedSinceSave bool

		// ChangedSinceRecovery is true if the model has changed since the
		// latest recovery file was written, so we know not to rewrite an
		// identical file every tick.
		ChangedSinceRecovery bool

		RecoveryFilePath string // empty string means no recovery file is used
	}

	// Model implements the functionality for editing fretboard diagrams,
	// without a GUI. The GUI drives the model through the Action, Bool, Int,
	// String, List and Table bindings the model exposes, and the model pushes
	// messages to the GUI and the player through the broker.
	Model struct {
		d modelData

		themes []render.Theme

		bpm     int
		octave  int
		playing bool
		panic   bool
		loop    bool

		playPosition otelauta.Position
		stringLevels [otelauta.NumStrings]float32

		changeLevel    int
		changeType     ChangeType
		changeSeverity ChangeSeverity
		changeCancel   bool
		changePrev     modelData
		prevUndoKind   string
		undoSkipCount  int
		undoStack      []modelData
		redoStack      []modelData

		dirtyLayers render.LayerMask

		dialog  Dialog
		quitted bool

		alerts []Alert

		broker  *Broker
		synther otelauta.Synther
		midi    midiState

		derived derivedModelData
	}

	// ChangeType is a bitmask of the dirty layers a change touches; the render
	// side uses it to redraw only what a change invalidated. Each action
	// declares its own mask when opening a change.
	ChangeType int

	ChangeSeverity int

	Dialog int
)

const (
	NoChange ChangeSeverity = iota
	MinorChange
	MajorChange
)

const (
	// BoardChange: the visible fret window changed, so the whole board
	// geometry needs a rebuild.
	BoardChange ChangeType = 1 << iota
	// NotesChange: root or scale changed, so every cell is re-derived.
	NotesChange
	// LabelChange: same cells, different text on the markers.
	LabelChange
	// ThemeChange: same geometry and cells, different colors.
	ThemeChange
	// SelectionChange: the set of highlighted cells changed.
	SelectionChange
	// TitleChange: the diagram title changed.
	TitleChange

	DiagramChange = BoardChange | NotesChange | LabelChange | ThemeChange | SelectionChange | TitleChange
)

const (
	NoDialog Dialog = iota
	NewDiagramChanges
	OpenDiagramChanges
	QuitChanges
	Export
	SaveAsExplorer
	NewDiagramSaveExplorer
	OpenDiagramSaveExplorer
	QuitSaveExplorer
	OpenDiagramOpenExplorer
	ExportPNGExplorer
	ExportSVGExplorer
	ExportWavExplorer
	License
)

const (
	maxUndo          = 256
	undoSkipMinor    = 15 // consecutive minor changes of same kind coalesced into one undo step
	defaultBPM       = 120
	defaultOctave    = 4
	recoveryFileName = "recovery.yml"
)

// NewModel builds a new model. The recoveryFilePath is the path where the
// model saves its recovery state; empty string disables recovery files
// altogether.
func NewModel(broker *Broker, synther otelauta.Synther, midiContext MIDIContext, recoveryFilePath string) *Model {
	m := &Model{
		broker:  broker,
		synther: synther,
		bpm:     defaultBPM,
		octave:  defaultOctave,
	}
	m.d.Diagram = otelauta.NewDiagram()
	m.d.RecoveryFilePath = recoveryFilePath
	m.midi.context = midiContext
	if recoveryFilePath != "" {
		if bytes, err := os.ReadFile(recoveryFilePath); err == nil {
			json.Unmarshal(bytes, &m.d)
		}
	}
	var err error
	if m.themes, err = render.LoadThemes(); err != nil {
		m.Alerts().Add(fmt.Sprintf("Failed to load themes: %v", err), Error)
	}
	m.dirtyLayers = render.MaskAll
	m.updateDerivedData(DiagramChange)
	m.sendStrumToPlayer()
	return m
}

func (m *Model) Broker() *Broker { return m.broker }

func (m *Model) Quitted() bool { return m.quitted }

func (m *Model) Dialog() Dialog { return m.dialog }

func (m *Model) ChangedSinceSave() bool { return m.d.ChangedSinceSave }

// Themes returns the color presets available for the diagram, in the order the
// Theme Int indexes them.
func (m *Model) Themes() []render.Theme { return m.themes }

// CurrentTheme returns the preset the diagram currently names, falling back to
// the first preset when the name is unknown.
func (m *Model) CurrentTheme() render.Theme {
	return render.ThemeByName(m.themes, m.d.Diagram.Theme)
}

// DiagramCopy returns a deep copy of the current diagram document, safe to
// hand to the render goroutine.
func (m *Model) DiagramCopy() otelauta.Diagram { return m.d.Diagram.Copy() }

// TakeDirtyLayers returns the accumulated set of render layers invalidated
// since the last call, and resets the set. The board view calls this once per
// frame.
func (m *Model) TakeDirtyLayers() (ret render.LayerMask) {
	ret = m.dirtyLayers
	m.dirtyLayers = 0
	return ret
}

// PlayPosition returns the cell the strum playback is currently sounding.
// Meaningful only while Playing is true.
func (m *Model) PlayPosition() otelauta.Position { return m.playPosition }

// StringLevels returns the current level estimate of each string voice, for
// the per-string meters.
func (m *Model) StringLevels() [otelauta.NumStrings]float32 { return m.stringLevels }

// change tracks the beginning and end of a change to the model, so the undo
// stack, dirty layers and change flags are kept up to date no matter which
// binding mutated the model. Nested changes are allowed; only the outermost
// change does the bookkeeping. The usual way to call it is:
//
//	defer m.change("WhatChanged", NotesChange, MinorChange)()
//
// Setting m.changeCancel to true before the deferred close runs rolls the
// whole change back.
func (m *Model) change(kind string, t ChangeType, severity ChangeSeverity) func() {
	if m.changeLevel == 0 {
		m.changeType = t
		m.changeSeverity = severity
		m.changeCancel = false
		m.changePrev = m.d.Copy()
	} else {
		m.changeType |= t
		if severity > m.changeSeverity {
			m.changeSeverity = severity
		}
	}
	m.changeLevel++
	return func() {
		m.changeLevel--
		if m.changeLevel < 0 {
			panic("changeLevel < 0, unbalanced change brackets")
		}
		if m.changeLevel > 0 {
			return
		}
		if m.changeCancel {
			m.d = m.changePrev
			return
		}
		if m.changeSeverity > NoChange {
			m.pushUndo(kind)
			m.d.ChangedSinceSave = true
			m.d.ChangedSinceRecovery = true
		}
		m.dirtyLayers |= m.changeType.layers()
		m.updateDerivedData(m.changeType)
		if m.changeType&(BoardChange|NotesChange|SelectionChange) != 0 {
			m.sendStrumToPlayer()
		}
	}
}

// pushUndo stores the pre-change snapshot on the undo stack. Consecutive minor
// changes of the same kind collapse into a single undo step, so e.g. dragging
// a numeric input does not spam one step per pixel.
func (m *Model) pushUndo(kind string) {
	if m.changeSeverity == MinorChange && kind == m.prevUndoKind && m.undoSkipCount < undoSkipMinor {
		m.undoSkipCount++
		return
	}
	m.prevUndoKind = kind
	m.undoSkipCount = 0
	m.undoStack = append(m.undoStack, m.changePrev)
	if len(m.undoStack) > maxUndo {
		copy(m.undoStack, m.undoStack[len(m.undoStack)-maxUndo:])
		m.undoStack = m.undoStack[:maxUndo]
	}
	m.redoStack = m.redoStack[:0]
}

// ProcessMsg is called by the GUI goroutine for every message the broker
// delivers to the model.
func (m *Model) ProcessMsg(msg MsgToModel) {
	if msg.HasPanicPosLevels {
		if m.playing && msg.PlayPosition.Fret != m.playPosition.Fret {
			// keep the strummed fret in view; sent only on fret changes so the
			// per-chunk status messages do not flood the GUI channel
			TrySend(m.broker.ToGUI, any(MsgToGUI{Kind: GUIMessageCenterOnFret, Param: msg.PlayPosition.Fret}))
		}
		m.panic = msg.Panic
		m.playPosition = msg.PlayPosition
		m.stringLevels = msg.StringLevels
		m.dirtyLayers |= render.MaskSelection
	}
	if msg.TriggerString > 0 {
		s := msg.TriggerString - 1
		if s >= 0 && s < otelauta.NumStrings && m.stringLevels[s] < 0.5 {
			m.stringLevels[s] = 0.5
		}
	}
	switch e := msg.Data.(type) {
	case func():
		e() // execute closures on the model goroutine
	case IsPlayingMsg:
		m.playing = e.bool
	case Alert:
		m.Alerts().AddAlert(e)
	}
}

// requestCursorVisible asks the GUI to scroll the board so the cursor is in
// view, after an operation that may have moved it off screen.
func (m *Model) requestCursorVisible() {
	TrySend(m.broker.ToGUI, any(MsgToGUI{Kind: GUIMessageEnsureCursorVisible}))
}

// Copy makes a deep copy of the modelData.
func (d *modelData) Copy() modelData {
	ret := *d
	ret.Diagram = d.Diagram.Copy()
	return ret
}

func (c ChangeType) layers() (ret render.LayerMask) {
	if c&BoardChange != 0 {
		ret |= render.MaskAll
	}
	if c&NotesChange != 0 {
		ret |= render.MaskNotes | render.MaskLabels
	}
	if c&LabelChange != 0 {
		ret |= render.MaskLabels
	}
	if c&ThemeChange != 0 {
		ret |= render.MaskAll
	}
	if c&SelectionChange != 0 {
		ret |= render.MaskSelection
	}
	if c&TitleChange != 0 {
		ret |= render.MaskTitle
	}
	return ret
}

// IsPlayingMsg is sent by the player to the model when the strum loop starts
// or stops.
type IsPlayingMsg struct{ bool }
