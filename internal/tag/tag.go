// Package tag implements the bracketed algorithm-name prefix that makes every
// scrambled cookie value self-describing: "[rot13n]payload". Readers need only
// know that scrambling was requested, never which algorithm wrote the value.
package tag

import "strings"

// Add prefixes payload with a bracketed name: "[name]payload".
func Add(name, payload string) string {
	return "[" + name + "]" + payload
}

// Read returns the text between a leading '[' and the first following ']',
// or "" when no such prefix exists at position 0. The scan stops at the
// first ']', so a tag never spans further brackets.
func Read(value string) string {
	if !strings.HasPrefix(value, "[") {
		return ""
	}
	end := strings.IndexByte(value, ']')
	if end < 0 {
		return ""
	}
	return value[1:end]
}

// Strip removes a leading "[...]" prefix (first closing bracket only). Values
// without such a prefix are returned unchanged.
func Strip(value string) string {
	if !strings.HasPrefix(value, "[") {
		return value
	}
	end := strings.IndexByte(value, ']')
	if end < 0 {
		return value
	}
	return value[end+1:]
}
