// Package rot provides the character-rotation primitives behind the built-in
// scramble algorithms. Both functions are pure involutions: applying one
// twice returns the original string.
package rot

// digitTable maps each ASCII digit to the digit five positions ahead,
// wrapping at ten (0↔5, 1↔6, 2↔7, 3↔8, 4↔9).
var digitTable = [10]byte{'5', '6', '7', '8', '9', '0', '1', '2', '3', '4'}

// Letters shifts every ASCII letter by 13 positions within its case-preserving
// alphabet, wrapping. All other bytes pass through unchanged, so multi-byte
// UTF-8 sequences survive intact.
func Letters(s string) string {
	if s == "" {
		return s
	}
	b := []byte(s)
	for i, c := range b {
		switch {
		case c >= 'a' && c <= 'z':
			b[i] = 'a' + (c-'a'+13)%26
		case c >= 'A' && c <= 'Z':
			b[i] = 'A' + (c-'A'+13)%26
		}
	}
	return string(b)
}

// Digits maps every ASCII digit through digitTable. All other bytes pass
// through unchanged.
func Digits(s string) string {
	if s == "" {
		return s
	}
	b := []byte(s)
	for i, c := range b {
		if c >= '0' && c <= '9' {
			b[i] = digitTable[c-'0']
		}
	}
	return string(b)
}
