package tagger

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/kittclouds/palladian/pkg/annotation"
	"github.com/kittclouds/palladian/pkg/tokenizer"
)

// EnglishTagger uses capitalization as the entity boundary: candidates are
// maximal runs of capitalized tokens, optionally joined by lowercase name
// connectors ("Bank of America") and initials ("John F. Kennedy"), plus
// capitalized strings in quotes.
type EnglishTagger struct {
	connectors map[string]struct{}
}

// NewEnglishTagger creates a tagger with the default connector lexicon.
func NewEnglishTagger() *EnglishTagger {
	t := &EnglishTagger{connectors: make(map[string]struct{})}
	t.loadConnectors()
	return t
}

var quoted = regexp.MustCompile(`["“]([^"”\n]{1,80})["”]`)

func (t *EnglishTagger) Tag(text string) []annotation.Annotation {
	tokens := tokenizer.Tokenize(text)
	var out []annotation.Annotation

	for i := 0; i < len(tokens); {
		if !tokens[i].IsCapitalized() {
			i++
			continue
		}
		end := t.extend(text, tokens, i)
		first, last := tokens[i], tokens[end-1]
		out = append(out, annotation.New(first.Start, text[first.Byte:last.ByteEnd()], annotation.CandidateTag))
		i = end
	}

	for _, m := range quoted.FindAllStringSubmatchIndex(text, -1) {
		inner, cut := tokenizer.TrimSpace(text[m[2]:m[3]])
		if !tokenizer.StartsUppercase(inner) {
			continue
		}
		start := annotation.UTF16Len(text[:m[2]]) + cut
		out = append(out, annotation.New(start, inner, annotation.CandidateTag))
	}

	return annotation.Dedupe(out)
}

// extend returns the exclusive index of the run that starts at the
// capitalized token i.
func (t *EnglishTagger) extend(text string, tokens []tokenizer.Token, i int) int {
	end := i + 1
	for end < len(tokens) {
		prev, next := tokens[end-1], tokens[end]
		switch {
		case next.IsCapitalized() && spaced(text, prev, next):
			end++
		case next.Value == "." && attached(prev, next) && isInitial(prev.Value) &&
			end+1 < len(tokens) && tokens[end+1].IsCapitalized() && spaced(text, next, tokens[end+1]):
			end += 2
		case t.isConnector(next.Value) && spaced(text, prev, next) &&
			end+1 < len(tokens) && tokens[end+1].IsCapitalized() && spaced(text, next, tokens[end+1]):
			end += 2
		default:
			return end
		}
	}
	return end
}

func (t *EnglishTagger) isConnector(s string) bool {
	_, ok := t.connectors[s]
	return ok
}

// spaced reports whether only horizontal whitespace separates a and b.
func spaced(text string, a, b tokenizer.Token) bool {
	gap := text[a.ByteEnd():b.Byte]
	if gap == "" {
		return false
	}
	return strings.TrimFunc(gap, func(r rune) bool { return r == ' ' || r == '\t' || r == '\u00a0' }) == ""
}

func attached(a, b tokenizer.Token) bool { return a.ByteEnd() == b.Byte }

// isInitial matches "F", "Mr", "St" and dotted abbreviations like "U.S".
func isInitial(s string) bool {
	if strings.Contains(s, ".") {
		return true
	}
	n := 0
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
		n++
	}
	return n > 0 && n <= 2
}

func (t *EnglishTagger) loadConnectors() {
	for _, w := range []string{"of", "de", "van", "von", "der", "den", "the", "and", "for",
		"la", "le", "del", "da", "du", "di", "y", "on", "upon"} {
		t.connectors[w] = struct{}{}
	}
}
