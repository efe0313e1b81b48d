// Package features extracts the n-gram features the dictionaries are keyed by.
package features

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/kittclouds/palladian/pkg/tokenizer"
)

// Type selects the feature family.
type Type string

const (
	// CharNGrams are character n-grams of the text.
	CharNGrams Type = "chars"
	// WordNGrams are n-grams over the word tokens of the text.
	WordNGrams Type = "words"
	// Exact uses the whole text as its only feature.
	Exact Type = "exact"
)

// Setting configures feature extraction. A dictionary must always be queried
// with the setting it was built with.
type Setting struct {
	Type          Type `json:"type" mapstructure:"type" yaml:"type"`
	Min           int  `json:"min" mapstructure:"min" yaml:"min"`
	Max           int  `json:"max" mapstructure:"max" yaml:"max"`
	CaseSensitive bool `json:"case_sensitive" mapstructure:"case_sensitive" yaml:"case_sensitive"`
}

// Chars returns a character n-gram setting.
func Chars(min, max int, caseSensitive bool) Setting {
	return Setting{Type: CharNGrams, Min: min, Max: max, CaseSensitive: caseSensitive}
}

// Words returns a word n-gram setting.
func Words(min, max int, caseSensitive bool) Setting {
	return Setting{Type: WordNGrams, Min: min, Max: max, CaseSensitive: caseSensitive}
}

// Whole returns the exact-match setting.
func Whole() Setting {
	return Setting{Type: Exact, Min: 1, Max: 1, CaseSensitive: true}
}

// Validate checks the n-gram bounds.
func (s Setting) Validate() error {
	switch s.Type {
	case CharNGrams, WordNGrams, Exact:
	default:
		return fmt.Errorf("features: unknown type %q", s.Type)
	}
	if s.Min < 1 || s.Max < s.Min {
		return fmt.Errorf("features: invalid n-gram range %d..%d", s.Min, s.Max)
	}
	return nil
}

// Extract returns the feature counts of text.
func (s Setting) Extract(text string) map[string]int {
	counts := make(map[string]int)
	s.ExtractInto(text, counts)
	return counts
}

// ExtractInto adds the feature counts of text to dst. Texts shorter than the
// minimum n-gram size contribute themselves as a single feature.
func (s Setting) ExtractInto(text string, dst map[string]int) {
	if !s.CaseSensitive {
		text = strings.ToLower(text)
	}
	switch s.Type {
	case Exact:
		if text != "" {
			dst[text]++
		}
	case WordNGrams:
		ngrams(tokenizer.Words(text), s.Min, s.Max, " ", dst)
	default:
		runes := []rune(text)
		units := make([]string, len(runes))
		for i, r := range runes {
			units[i] = string(r)
		}
		ngrams(units, s.Min, s.Max, "", dst)
	}
}

func ngrams(units []string, min, max int, sep string, dst map[string]int) {
	if len(units) == 0 {
		return
	}
	if len(units) < min {
		dst[strings.Join(units, sep)]++
		return
	}
	for n := min; n <= max && n <= len(units); n++ {
		for i := 0; i+n <= len(units); i++ {
			dst[strings.Join(units[i:i+n], sep)]++
		}
	}
}

// Feature is a term with its frequency in one text.
type Feature struct {
	Term  string
	Count int
}

// Sorted returns the counts as a slice ordered by term, which keeps every
// floating point sum over features deterministic.
func Sorted(counts map[string]int) []Feature {
	out := make([]Feature, 0, len(counts))
	for term, n := range counts {
		out = append(out, Feature{Term: term, Count: n})
	}
	slices.SortFunc(out, func(a, b Feature) int { return cmp.Compare(a.Term, b.Term) })
	return out
}
