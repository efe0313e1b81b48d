package annotation

import "unicode/utf16"

// Text gives UTF-16 indexed access to a string.
type Text struct {
	s     string
	units []uint16
}

// NewText indexes s.
func NewText(s string) *Text {
	return &Text{s: s, units: utf16.Encode([]rune(s))}
}

func (t *Text) String() string { return t.s }

// Len returns the length in UTF-16 code units.
func (t *Text) Len() int { return len(t.units) }

// Slice returns the text between two UTF-16 offsets, clamped to the text.
func (t *Text) Slice(start, end int) string {
	start = max(start, 0)
	end = min(end, len(t.units))
	if start >= end {
		return ""
	}
	return string(utf16.Decode(t.units[start:end]))
}

// UTF16Len returns the number of UTF-16 code units needed to encode s.
func UTF16Len(s string) int {
	n := 0
	for _, r := range s {
		if r >= 0x10000 {
			n += 2
		} else {
			n++
		}
	}
	return n
}
