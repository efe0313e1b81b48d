package ner

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/kittclouds/palladian/pkg/annotation"
	"github.com/kittclouds/palladian/pkg/tokenizer"
)

// maxContextWords bounds the length of left context phrases.
const maxContextWords = 3

// contextWindow returns the size units left of a, a space, and the size
// units right of a.
func contextWindow(text *annotation.Text, a annotation.Annotation, size int) string {
	left := text.Slice(a.Start-size, a.Start)
	right := text.Slice(a.End(), a.End()+size)
	return left + " " + right
}

// leftPhrases returns the phrases of one to three words directly left of
// the span starting at byte offset start, shortest first. Only phrases
// starting with an uppercase letter are returned.
func leftPhrases(text string, tokens []tokenizer.Token, start int) []string {
	end := 0
	for end < len(tokens) && tokens[end].Byte < start {
		end++
	}

	var out []string
	first := end
	for n := 1; n <= maxContextWords; n++ {
		first--
		if first < 0 || !tokens[first].IsWord() {
			break
		}
		next := start
		if n > 1 {
			next = tokens[first+1].Byte
		}
		if !onlySpace(text[tokens[first].ByteEnd():next]) {
			break
		}
		if tokens[first].IsCapitalized() {
			out = append(out, text[tokens[first].Byte:tokens[end-1].ByteEnd()])
		}
	}
	return out
}

// insidePhrases returns the prefixes of value of one to three fields.
func insidePhrases(value string) []string {
	fields := tokenizer.Fields(value)
	var out []string
	for n := 1; n <= min(maxContextWords, len(fields)); n++ {
		out = append(out, tokenizer.JoinFields(value, fields, 0, n))
	}
	return out
}

// selectLeftContexts keeps the phrases that occur more often left of an
// entity than at its start: outside + inside must reach minCount, inside
// must stay below outside and outside must be at least two.
func selectLeftContexts(outside, inside map[string]int, minCount int) map[string]struct{} {
	out := make(map[string]struct{})
	for phrase, o := range outside {
		i := inside[phrase]
		if o+i < minCount || o < 2 {
			continue
		}
		if float64(i)/float64(o) >= 1 {
			continue
		}
		out[phrase] = struct{}{}
	}
	return out
}

// caseCounter collects how often each word starts lowercase when it is not
// at the start of a sentence.
type caseCounter struct {
	lower map[string]int
	upper map[string]int
}

func newCaseCounter() *caseCounter {
	return &caseCounter{lower: make(map[string]int), upper: make(map[string]int)}
}

func (c *caseCounter) add(text string) {
	tokens := tokenizer.Tokenize(text)
	starts := tokenizer.SentenceStarts(tokens)
	for i, t := range tokens {
		if starts[i] || !t.IsWord() || utf8.RuneCountInString(t.Value) <= 1 {
			continue
		}
		if i > 0 && strings.Contains(text[tokens[i-1].ByteEnd():t.Byte], "\n") {
			continue
		}
		r, _ := utf8.DecodeRuneInString(t.Value)
		key := strings.ToLower(t.Value)
		switch {
		case unicode.IsUpper(r):
			c.upper[key]++
		case unicode.IsLower(r):
			c.lower[key]++
		}
	}
}

// build returns the words that start lowercase more than half of the time.
func (c *caseCounter) build() map[string]struct{} {
	out := make(map[string]struct{})
	for word, lower := range c.lower {
		if float64(lower)/float64(lower+c.upper[word]) > 0.5 {
			out[word] = struct{}{}
		}
	}
	return out
}

func onlySpace(s string) bool {
	for _, r := range s {
		if r == '\n' || !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}
