package otelauta

import "io"

type (
	// AudioBuffer is a buffer of stereo audio samples.
	AudioBuffer [][2]float32

	// AudioContext represents the low-level audio driver. There should be at
	// most one AudioContext at a time.
	AudioContext interface {
		// Play starts playback, calling callback whenever the driver needs
		// more audio. Closing the returned closer stops the playback.
		Play(callback func(buffer AudioBuffer) error) io.Closer
	}
)
