package editor

import (
	"sync"
	"time"

	"github.com/kvirta/otelauta"
)

type (
	// Broker is the centralized message broker for the editor. It is used to
	// communicate between the different parts of the editor: the model, the
	// player, the MIDI router and the GUI. It is just a collection of channels,
	// with some helper functions to make sending messages to the channels
	// easier. Note that all channels are buffered and all sends are
	// non-blocking, so the parts are never deadlocked even if one of them is
	// stuck. The audio buffers carrying level data from the player to the model
	// are pooled to avoid allocations in the realtime path.
	Broker struct {
		ToModel      chan MsgToModel
		ToPlayer     chan any
		ToGUI        chan any
		ToMIDIRouter chan any

		// CloseMIDIRouter and CloseGUI are used to signal to goroutines that
		// they should close. After getting the message, the goroutine closes
		// the corresponding Finished channel, so the main goroutine can wait
		// until everything has been torn down.
		CloseMIDIRouter chan struct{}
		CloseGUI        chan struct{}

		FinishedMIDIRouter chan struct{}
		FinishedGUI        chan struct{}

		bufferPool sync.Pool
	}

	// MsgToModel is a message sent to the model. The most often needed data
	// (levels, panic status, play position) is in the struct itself, so we
	// avoid indirection through any when the player sends its status after
	// each rendered chunk. Data carries everything else.
	MsgToModel struct {
		HasPanicPosLevels bool
		Panic             bool
		PlayPosition      otelauta.Position
		StringLevels      [otelauta.NumStrings]float32

		TriggerString int // 1-based; 0 = no string was plucked

		Reset bool

		// Data is a message with any other payload. If it is a func(), the
		// model executes it; this is used to make the GUI thread run a closure
		// on the model goroutine.
		Data any
	}

	// MsgToGUI is a message sent to the GUI, as GUI cannot be reached by
	// function calls from the model goroutine.
	MsgToGUI struct {
		Kind  GUIMessageKind
		Param int
	}

	GUIMessageKind int
)

const (
	GUIMessageCenterOnFret GUIMessageKind = iota
	GUIMessageEnsureCursorVisible
)

func NewBroker() *Broker {
	return &Broker{
		ToModel:            make(chan MsgToModel, 1024),
		ToPlayer:           make(chan any, 1024),
		ToGUI:              make(chan any, 1024),
		ToMIDIRouter:       make(chan any, 1024),
		CloseMIDIRouter:    make(chan struct{}, 1),
		CloseGUI:           make(chan struct{}, 1),
		FinishedMIDIRouter: make(chan struct{}),
		FinishedGUI:        make(chan struct{}),
		bufferPool:         sync.Pool{New: func() any { return &otelauta.AudioBuffer{} }},
	}
}

// GetAudioBuffer returns an audio buffer from the buffer pool. The buffer is
// guaranteed to be empty, but the capacity is whatever was left from its
// previous use.
func (b *Broker) GetAudioBuffer() *otelauta.AudioBuffer {
	return b.bufferPool.Get().(*otelauta.AudioBuffer)
}

// PutAudioBuffer returns an audio buffer to the buffer pool. If the buffer is
// not empty, its length is reset to 0 before returning it to the pool.
func (b *Broker) PutAudioBuffer(buf *otelauta.AudioBuffer) {
	if len(*buf) > 0 {
		*buf = (*buf)[:0]
	}
	b.bufferPool.Put(buf)
}

// TrySend tries to send a message to a channel, but does not block if the
// channel is full; the message is just dropped. Returns true if the message
// was sent.
func TrySend[T any](c chan<- T, v T) bool {
	select {
	case c <- v:
	default:
		return false
	}
	return true
}

// TimeoutReceive tries to receive a message from a channel, but gives up after
// the timeout.
func TimeoutReceive[T any](c <-chan T, timeout time.Duration) (v T, ok bool) {
	select {
	case v = <-c:
		return v, true
	case <-time.After(timeout):
		return v, false
	}
}
