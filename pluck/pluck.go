// Package pluck implements a Karplus-Strong plucked string synth. Each string
// voice is a delay line seeded with noise on trigger; every sample the line
// output is averaged with the previous output and fed back, which lowpasses
// the loop so the tone decays like a plucked string.
package pluck

import (
	"math"

	"github.com/viterin/vek/vek32"

	"github.com/kvirta/otelauta"
)

const (
	// maxDelay is long enough for the lowest MIDI pitches at 44100 Hz.
	maxDelay = 8192

	// feedbackHeld keeps a triggered string ringing for a few seconds;
	// feedbackReleased damps it quickly, like lifting the fretting finger.
	feedbackHeld     = 0.996
	feedbackReleased = 0.9

	excitation = 0.5 // amplitude of the noise burst seeding the delay line
)

type (
	Synther struct{}

	synth struct {
		voices [otelauta.NumStrings]voice
		noise  uint32

		// mixing scratch, one mono bus per output channel
		left, right, tmp, gained []float32
	}

	voice struct {
		delay    [maxDelay]float32
		length   int // 0 when the voice has never been triggered
		pos      int
		prev     float32
		feedback float32

		leftGain, rightGain float32
	}
)

func (s Synther) Name() string { return "pluck" }

func (s Synther) Synth() (otelauta.Synth, error) {
	ret := &synth{noise: 1}
	for i := range ret.voices {
		// spread the strings a little across the stereo field, low string
		// slightly right like facing a guitarist
		pan := (2.5 - float32(i)) / 7
		ret.voices[i].leftGain = 0.5 * (1 - pan)
		ret.voices[i].rightGain = 0.5 * (1 + pan)
	}
	return ret, nil
}

func (s *synth) Trigger(voiceIndex int, pitch byte) {
	if voiceIndex < 0 || voiceIndex >= len(s.voices) {
		return
	}
	v := &s.voices[voiceIndex]
	freq := 440 * math.Pow(2, (float64(pitch)-69)/12)
	length := int(otelauta.SampleRate/freq + 0.5)
	if length < 2 {
		length = 2
	}
	if length > maxDelay {
		length = maxDelay
	}
	v.length = length
	v.pos = 0
	v.prev = 0
	v.feedback = feedbackHeld
	for i := 0; i < length; i++ {
		v.delay[i] = s.rand()
	}
}

func (s *synth) Release(voiceIndex int) {
	if voiceIndex < 0 || voiceIndex >= len(s.voices) {
		return
	}
	s.voices[voiceIndex].feedback = feedbackReleased
}

func (s *synth) Render(buffer otelauta.AudioBuffer) error {
	n := len(buffer)
	if n == 0 {
		return nil
	}
	s.grow(n)
	left := vek32.Zeros_Into(s.left, n)
	right := vek32.Zeros_Into(s.right, n)
	for i := range s.voices {
		v := &s.voices[i]
		if v.length == 0 {
			continue
		}
		tmp := s.tmp[:n]
		for j := range tmp {
			out := (v.delay[v.pos] + v.prev) * 0.5 * v.feedback
			v.delay[v.pos] = out
			v.prev = out
			v.pos++
			if v.pos >= v.length {
				v.pos = 0
			}
			tmp[j] = out
		}
		gained := vek32.MulNumber_Into(s.gained, tmp, v.leftGain)
		vek32.Add_Inplace(left, gained)
		gained = vek32.MulNumber_Into(s.gained, tmp, v.rightGain)
		vek32.Add_Inplace(right, gained)
	}
	for i := range buffer {
		buffer[i][0] = left[i]
		buffer[i][1] = right[i]
	}
	return nil
}

func (s *synth) grow(n int) {
	if len(s.left) >= n {
		return
	}
	s.left = make([]float32, n)
	s.right = make([]float32, n)
	s.tmp = make([]float32, n)
	s.gained = make([]float32, n)
}

// rand returns noise in [-excitation, excitation), using a small linear
// congruential generator so triggering is deterministic for a fresh synth.
func (s *synth) rand() float32 {
	s.noise = s.noise*1664525 + 1013904223
	return (float32(s.noise)/(1<<31) - 1) * excitation
}
