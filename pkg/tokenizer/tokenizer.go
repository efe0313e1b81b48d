// Package tokenizer splits text into word and punctuation tokens while keeping
// both byte offsets (for slicing Go strings) and UTF-16 offsets (for
// annotations).
package tokenizer

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Token is a word or a single punctuation character.
type Token struct {
	Value string
	Start int // UTF-16 offset in the source text
	End   int // UTF-16 offset (exclusive)
	Byte  int // byte offset in the source text
}

// ByteEnd returns the exclusive byte offset.
func (t Token) ByteEnd() int { return t.Byte + len(t.Value) }

// IsWord reports whether the token starts with a letter or digit.
func (t Token) IsWord() bool {
	r, _ := utf8.DecodeRuneInString(t.Value)
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// IsCapitalized reports whether the token starts with an uppercase letter.
func (t Token) IsCapitalized() bool {
	r, _ := utf8.DecodeRuneInString(t.Value)
	return unicode.IsUpper(r)
}

// IsSentenceEnd reports whether the token closes a sentence.
func (t Token) IsSentenceEnd() bool {
	return t.Value == "." || t.Value == "?" || t.Value == "!"
}

// isJoiner returns true for punctuation that commonly appears INSIDE names
// and numbers: "O'Brien", "Jean-Luc", "AT&T", "U.S", "3.5".
func isJoiner(r rune) bool {
	switch r {
	case '\'', '’', '-', '.', '_', '&', '/':
		return true
	default:
		return false
	}
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsMark(r)
}

// Tokenize splits s into tokens. Words are runs of letters and digits that
// may contain joiners followed by another word character; every other
// non-space rune becomes a token of its own.
func Tokenize(s string) []Token {
	out := make([]Token, 0, len(s)/5+1)

	units := 0
	i := 0
	for i < len(s) {
		r, w := utf8.DecodeRuneInString(s[i:])
		if unicode.IsSpace(r) {
			i += w
			units += utf16Width(r)
			continue
		}

		start, startUnits := i, units
		if !isWordRune(r) {
			i += w
			units += utf16Width(r)
			out = append(out, Token{Value: s[start:i], Start: startUnits, End: units, Byte: start})
			continue
		}

		for i < len(s) {
			r, w := utf8.DecodeRuneInString(s[i:])
			if isWordRune(r) {
				i += w
				units += utf16Width(r)
				continue
			}
			if isJoiner(r) && i+w < len(s) {
				next, _ := utf8.DecodeRuneInString(s[i+w:])
				if isWordRune(next) {
					i += w
					units += utf16Width(r)
					continue
				}
			}
			break
		}
		out = append(out, Token{Value: s[start:i], Start: startUnits, End: units, Byte: start})
	}

	return out
}

// Words returns the values of the word tokens of s.
func Words(s string) []string {
	tokens := Tokenize(s)
	words := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if t.IsWord() {
			words = append(words, t.Value)
		}
	}
	return words
}

// SentenceStarts marks the tokens that open a sentence: the first token and
// every token directly after ".", "?" or "!".
func SentenceStarts(tokens []Token) []bool {
	starts := make([]bool, len(tokens))
	for i := range tokens {
		starts[i] = i == 0 || tokens[i-1].IsSentenceEnd()
	}
	return starts
}

// Fields splits s on whitespace, keeping offsets. Sub-phrases are built from
// fields so that "Jean-Luc" or "D." stay in one piece.
func Fields(s string) []Token {
	var out []Token
	units := 0
	start, startUnits := -1, 0
	for i, r := range s {
		if unicode.IsSpace(r) {
			if start >= 0 {
				out = append(out, Token{Value: s[start:i], Start: startUnits, End: units, Byte: start})
				start = -1
			}
		} else if start < 0 {
			start, startUnits = i, units
		}
		units += utf16Width(r)
	}
	if start >= 0 {
		out = append(out, Token{Value: s[start:], Start: startUnits, End: units, Byte: start})
	}
	return out
}

// Phrase is a run of consecutive fields inside a larger value.
type Phrase struct {
	Value  string
	Offset int // UTF-16 offset relative to the enclosing value
	Fields int
}

// SubPhrases returns every run of consecutive fields of s, longest first and
// left to right within one length. The full value is included.
func SubPhrases(s string) []Phrase {
	fields := Fields(s)
	var out []Phrase
	for n := len(fields); n >= 1; n-- {
		for i := 0; i+n <= len(fields); i++ {
			first, last := fields[i], fields[i+n-1]
			out = append(out, Phrase{
				Value:  s[first.Byte:last.ByteEnd()],
				Offset: first.Start,
				Fields: n,
			})
		}
	}
	return out
}

// IsUppercase reports whether s has at least one letter and no lowercase
// letters.
func IsUppercase(s string) bool {
	letters := false
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsLetter(r) {
			letters = true
		}
	}
	return letters
}

// StartsUppercase reports whether the first rune of s is an uppercase letter.
func StartsUppercase(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return unicode.IsUpper(r)
}

// JoinFields returns the text of s covering fields[from:to].
func JoinFields(s string, fields []Token, from, to int) string {
	if from >= to {
		return ""
	}
	return s[fields[from].Byte:fields[to-1].ByteEnd()]
}

// TrimSpace trims s and reports how many UTF-16 units were cut on the left.
func TrimSpace(s string) (string, int) {
	trimmed := strings.TrimLeftFunc(s, unicode.IsSpace)
	cut := utf16Len(s[:len(s)-len(trimmed)])
	return strings.TrimRightFunc(trimmed, unicode.IsSpace), cut
}

func utf16Width(r rune) int {
	if r >= 0x10000 {
		return 2
	}
	return 1
}

func utf16Len(s string) int {
	n := 0
	for _, r := range s {
		n += utf16Width(r)
	}
	return n
}
