package otelauta_test

import (
	"testing"

	"github.com/kvirta/otelauta"
)

func TestRomanNumeral(t *testing.T) {
	table := []struct {
		n    int
		want string
	}{
		{-3, ""},
		{0, ""},
		{1, "I"},
		{3, "III"},
		{4, "IV"},
		{5, "V"},
		{7, "VII"},
		{9, "IX"},
		{12, "XII"},
		{14, "XIV"},
		{19, "XIX"},
		{21, "XXI"},
		{24, "XXIV"},
	}
	for _, c := range table {
		if got := otelauta.RomanNumeral(c.n); got != c.want {
			t.Errorf("RomanNumeral(%d) = %q, want %q", c.n, got, c.want)
		}
	}
}
