// Package tagger finds candidate spans in raw text. The candidate taggers
// feed the NER pipeline; the date and URL taggers supply the extra spans
// that are merged into its output.
package tagger

import (
	"github.com/kittclouds/palladian/pkg/annotation"
	"github.com/kittclouds/palladian/pkg/tokenizer"
)

// Tagger returns the spans it recognizes in text. Offsets are UTF-16 code
// units.
type Tagger interface {
	Tag(text string) []annotation.Annotation
}

// Func adapts a function to the Tagger interface.
type Func func(text string) []annotation.Annotation

func (f Func) Tag(text string) []annotation.Annotation { return f(text) }

// Multi unions the output of several taggers.
func Multi(taggers ...Tagger) Tagger {
	return Func(func(text string) []annotation.Annotation {
		var out []annotation.Annotation
		for _, t := range taggers {
			out = append(out, t.Tag(text)...)
		}
		return annotation.Dedupe(out)
	})
}

// TokenTagger makes every word token a candidate.
type TokenTagger struct{}

func (TokenTagger) Tag(text string) []annotation.Annotation {
	tokens := tokenizer.Tokenize(text)
	out := make([]annotation.Annotation, 0, len(tokens))
	for _, t := range tokens {
		if !t.IsWord() {
			continue
		}
		out = append(out, annotation.New(t.Start, t.Value, annotation.CandidateTag))
	}
	return annotation.Dedupe(out)
}
