package dictionary

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// ============================================================================
// CANONICALIZER - Used for BOTH pattern compilation AND value scanning
// ============================================================================

// isJoiner returns true for punctuation that commonly appears INSIDE names.
// These are preserved during canonicalization to keep multiword entities coherent.
func isJoiner(r rune) bool {
	switch r {
	case '\'', '’', '‘',
		'-', '–', '—',
		'·', '.', '_', '/', '#', '&':
		return true
	default:
		return false
	}
}

// fold lowercases and normalizes apostrophe and dash variants.
func fold(ch rune) rune {
	c := unicode.ToLower(ch)
	if c == '’' || c == '‘' {
		c = '\''
	}
	if c == '–' || c == '—' {
		c = '-'
	}
	return c
}

// Canonicalize transforms text into the case-insensitive form used for
// phrase matching:
// - Fold to lowercase
// - Preserve letters, digits, and joiners
// - Replace all other characters with a single space, trimmed at both ends
func Canonicalize(s string) string {
	var out strings.Builder
	out.Grow(len(s))

	lastWasSpace := true

	for _, ch := range s {
		c := fold(ch)
		if unicode.IsLetter(c) || unicode.IsDigit(c) || isJoiner(c) {
			out.WriteRune(c)
			lastWasSpace = false
		} else if !lastWasSpace {
			out.WriteRune(' ')
			lastWasSpace = true
		}
	}

	result := out.String()
	if len(result) > 0 && result[len(result)-1] == ' ' {
		result = result[:len(result)-1]
	}
	return result
}

// Key is the exact (case-sensitive) lookup form of an entity value.
func Key(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

// buildOffsetMap maps every byte of Canonicalize(original) to the byte
// offset of the original rune it came from, plus a final end position.
func buildOffsetMap(original string) []int {
	mapping := make([]int, 0, len(original)+1)

	lastWasSpace := true
	origPos := 0

	for _, ch := range original {
		runeLen := utf8.RuneLen(ch)
		c := fold(ch)

		if unicode.IsLetter(c) || unicode.IsDigit(c) || isJoiner(c) {
			canonLen := utf8.RuneLen(c)
			for i := 0; i < canonLen; i++ {
				mapping = append(mapping, origPos)
			}
			lastWasSpace = false
		} else if !lastWasSpace {
			mapping = append(mapping, origPos)
			lastWasSpace = true
		}

		origPos += runeLen
	}

	mapping = append(mapping, origPos)
	return mapping
}

// mapOffset converts a canonicalized byte offset to an original byte offset.
func mapOffset(canonOffset int, mapping []int, originalLen int) int {
	if canonOffset >= len(mapping) {
		return originalLen
	}
	if canonOffset < 0 {
		return 0
	}
	return mapping[canonOffset]
}
