package pluck_test

import (
	"math"
	"testing"

	"github.com/kvirta/otelauta"
	"github.com/kvirta/otelauta/pluck"
)

func newSynth(t *testing.T) otelauta.Synth {
	t.Helper()
	synth, err := pluck.Synther{}.Synth()
	if err != nil {
		t.Fatalf("Synth failed: %v", err)
	}
	return synth
}

func render(t *testing.T, synth otelauta.Synth, frames int) otelauta.AudioBuffer {
	t.Helper()
	buffer := make(otelauta.AudioBuffer, frames)
	if err := synth.Render(buffer); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	return buffer
}

func rms(buffer otelauta.AudioBuffer) float64 {
	var sum float64
	for _, frame := range buffer {
		for _, sample := range frame {
			sum += float64(sample) * float64(sample)
		}
	}
	return math.Sqrt(sum / float64(len(buffer)*2))
}

func TestSyntherName(t *testing.T) {
	if got := (pluck.Synther{}).Name(); got != "pluck" {
		t.Errorf("Name = %q, expected pluck", got)
	}
}

func TestSilentBeforeTrigger(t *testing.T) {
	buffer := render(t, newSynth(t), 512)
	for i, frame := range buffer {
		if frame[0] != 0 || frame[1] != 0 {
			t.Fatalf("expected silence, got %v at frame %v", frame, i)
		}
	}
}

func TestTriggerProducesSound(t *testing.T) {
	synth := newSynth(t)
	synth.Trigger(0, 69)
	if level := rms(render(t, synth, 512)); level < 1e-3 {
		t.Errorf("triggered voice is silent, rms %v", level)
	}
}

func TestReleaseDampsVoice(t *testing.T) {
	synth := newSynth(t)
	synth.Trigger(2, 57)
	render(t, synth, 2048)
	held := rms(render(t, synth, 1024))
	synth.Release(2)
	render(t, synth, 4096)
	released := rms(render(t, synth, 1024))
	if released >= held/4 {
		t.Errorf("voice did not damp: held rms %v, released rms %v", held, released)
	}
}

func TestFreshSynthIsDeterministic(t *testing.T) {
	a, b := newSynth(t), newSynth(t)
	a.Trigger(1, 64)
	b.Trigger(1, 64)
	bufA := render(t, a, 1024)
	bufB := render(t, b, 1024)
	for i := range bufA {
		if bufA[i] != bufB[i] {
			t.Fatalf("buffers diverge at frame %v: %v vs %v", i, bufA[i], bufB[i])
		}
	}
}

func TestVoiceIndexOutOfRangeIgnored(t *testing.T) {
	synth := newSynth(t)
	synth.Trigger(-1, 60)
	synth.Trigger(otelauta.NumStrings, 60)
	synth.Release(-1)
	synth.Release(otelauta.NumStrings)
	buffer := render(t, synth, 256)
	for i, frame := range buffer {
		if frame[0] != 0 || frame[1] != 0 {
			t.Fatalf("out of range trigger made sound, got %v at frame %v", frame, i)
		}
	}
}

func TestExtremePitchesRender(t *testing.T) {
	synth := newSynth(t)
	synth.Trigger(0, 0)
	synth.Trigger(1, 127)
	render(t, synth, 512)
}
