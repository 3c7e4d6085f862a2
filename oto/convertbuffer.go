package oto

import (
	"math"

	"github.com/kvirta/otelauta"
)

// BufferTo16BitLE converts an audio buffer to 16-bit little-endian samples,
// appending them to the given slice so that its capacity gets recycled.
func BufferTo16BitLE(buffer otelauta.AudioBuffer, to []byte) []byte {
	for _, frame := range buffer {
		for _, sample := range frame {
			var v int16
			if sample < -1.0 {
				v = -math.MaxInt16
			} else if sample > 1.0 {
				v = math.MaxInt16
			} else {
				v = int16(sample * math.MaxInt16)
			}
			to = append(to, byte(v), byte(v>>8))
		}
	}
	return to
}
