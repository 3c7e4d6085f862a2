package otelauta

var romanValues = []int{10, 9, 5, 4, 1}
var romanSymbols = []string{"X", "IX", "V", "IV", "I"}

// RomanNumeral converts a positive integer to a Roman numeral by repeated
// subtraction. Fret markers only need 1..24 (X is the largest base symbol),
// but the conversion is valid for any positive n. Non-positive input yields
// an empty label, so fret 0 never gets a marker.
func RomanNumeral(n int) string {
	if n <= 0 {
		return ""
	}
	ret := ""
	for i, v := range romanValues {
		for n >= v {
			ret += romanSymbols[i]
			n -= v
		}
	}
	return ret
}
