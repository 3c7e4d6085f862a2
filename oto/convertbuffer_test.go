package oto_test

import (
	"bytes"
	"testing"

	"github.com/kvirta/otelauta"
	"github.com/kvirta/otelauta/oto"
)

func TestBufferTo16BitLE(t *testing.T) {
	buffer := otelauta.AudioBuffer{
		{0, 1},
		{-1, 0.5},
		{2, -2}, // out of range samples should clamp
	}
	got := oto.BufferTo16BitLE(buffer, nil)
	expected := []byte{
		0x00, 0x00, 0xFF, 0x7F,
		0x01, 0x80, 0xFF, 0x3F,
		0xFF, 0x7F, 0x01, 0x80,
	}
	if !bytes.Equal(got, expected) {
		t.Errorf("got % X, expected % X", got, expected)
	}
}

func TestBufferTo16BitLEAppends(t *testing.T) {
	prefix := []byte{0xAA}
	got := oto.BufferTo16BitLE(otelauta.AudioBuffer{{0, 0}}, prefix)
	expected := []byte{0xAA, 0x00, 0x00, 0x00, 0x00}
	if !bytes.Equal(got, expected) {
		t.Errorf("got % X, expected % X", got, expected)
	}
}
