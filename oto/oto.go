// Package oto implements an otelauta.AudioContext on top of the oto library,
// playing the audio through the default output device.
package oto

import (
	"fmt"
	"io"

	"github.com/ebitengine/oto/v3"

	"github.com/kvirta/otelauta"
)

type (
	// OtoContext wraps an oto.Context to implement otelauta.AudioContext.
	OtoContext struct {
		context *oto.Context
	}

	// otoReader adapts the audio callback to the io.Reader that oto pulls
	// its 16-bit little-endian samples from.
	otoReader struct {
		callback func(buf otelauta.AudioBuffer) error
		buffer   otelauta.AudioBuffer
		bytes    []byte
		err      error
	}
)

const bytesPerFrame = 4 // 2 channels, 16 bits each

func NewContext() (*OtoContext, error) {
	op := &oto.NewContextOptions{
		SampleRate:   otelauta.SampleRate,
		ChannelCount: 2,
		Format:       oto.FormatSignedInt16LE,
	}
	context, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("cannot create oto context: %w", err)
	}
	<-ready
	return &OtoContext{context: context}, nil
}

func (c *OtoContext) Play(callback func(buf otelauta.AudioBuffer) error) io.Closer {
	player := c.context.NewPlayer(&otoReader{callback: callback})
	player.Play()
	return player
}

// Read implements io.Reader. oto always asks for whole frames, so the partial
// frame at the end of an unaligned read is simply left unfilled.
func (r *otoReader) Read(p []byte) (int, error) {
	if r.err != nil {
		return 0, r.err
	}
	frames := len(p) / bytesPerFrame
	if len(r.buffer) < frames {
		r.buffer = make(otelauta.AudioBuffer, frames)
	}
	buf := r.buffer[:frames]
	if err := r.callback(buf); err != nil {
		r.err = err
		return 0, err
	}
	r.bytes = BufferTo16BitLE(buf, r.bytes[:0])
	return copy(p, r.bytes), nil
}
