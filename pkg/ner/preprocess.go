package ner

import (
	"slices"
	"strings"

	"github.com/kittclouds/palladian/pkg/annotation"
	"github.com/kittclouds/palladian/pkg/tagger"
	"github.com/kittclouds/palladian/pkg/tokenizer"
)

// preStage is one candidate correction step. Stages never modify their
// input; they return the new candidate set.
type preStage struct {
	name    string
	enabled func(Stages) bool
	run     func(*Model, []annotation.Annotation) []annotation.Annotation
}

// preStages run in this order.
var preStages = []preStage{
	{"remove_training_errors", func(s Stages) bool { return s.RemoveTrainingErrors }, removeTrainingErrors},
	{"unwrap_uppercase", func(s Stages) bool { return s.UnwrapUppercase }, unwrapUppercase},
	{"unwrap_left_context", func(s Stages) bool { return s.UnwrapLeftContext }, unwrapLeftContext},
	{"remove_date_fragments", func(s Stages) bool { return s.RemoveDateFragments }, removeDateFragments},
	{"remove_sentence_start_errors", func(s Stages) bool { return s.RemoveSentenceStartErrors }, removeSentenceStartErrors},
	{"fix_start_errors", func(s Stages) bool { return s.FixStartErrors }, fixStartErrors},
	{"remove_date_entries", func(s Stages) bool { return s.RemoveDateEntries }, removeDateEntries},
}

func removeTrainingErrors(m *Model, in []annotation.Annotation) []annotation.Annotation {
	return filter(in, func(a annotation.Annotation) bool { return !m.isRemoved(a.Value) })
}

// unwrapUppercase splits all uppercase candidates ("BARACK OBAMA NEW YORK")
// into the known entities and candidates they contain.
func unwrapUppercase(m *Model, in []annotation.Annotation) []annotation.Annotation {
	values := annotation.Values(in, strings.ToLower)

	out := make([]annotation.Annotation, 0, len(in))
	for _, a := range in {
		if !tokenizer.IsUppercase(a.Value) || len(tokenizer.Fields(a.Value)) < 2 {
			out = append(out, a)
			continue
		}

		var found []tokenizer.Phrase
		for _, p := range tokenizer.SubPhrases(a.Value) {
			if p.Value == a.Value {
				continue
			}
			if _, ok := values[strings.ToLower(p.Value)]; ok {
				found = append(found, p)
			}
		}
		found = append(found, m.entities.Phrases(a.Value)...)
		found = longestDisjoint(found, a.Value)
		if len(found) == 0 {
			out = append(out, a)
			continue
		}
		for _, p := range found {
			out = append(out, a.Sub(p.Offset, p.Value, a.Tag))
		}
	}
	return annotation.Dedupe(out)
}

// unwrapLeftContext strips a leading context phrase ("President", "Prime
// Minister") that the candidate tagger absorbed into an entity.
func unwrapLeftContext(m *Model, in []annotation.Annotation) []annotation.Annotation {
	if len(m.leftContexts) == 0 {
		return in
	}
	out := make([]annotation.Annotation, 0, len(in))
	for _, a := range in {
		fields := tokenizer.Fields(a.Value)
		if len(fields) < 2 || m.entities.Contains(a.Value) {
			out = append(out, a)
			continue
		}
		cut := leftContextEnd(m, a.Value, fields)
		if cut < 0 {
			out = append(out, a)
			continue
		}

		out = append(out, a.Sub(fields[cut].Start, tokenizer.JoinFields(a.Value, fields, cut, len(fields)), a.Tag))
		prefix := tokenizer.JoinFields(a.Value, fields, 0, cut)
		for _, p := range m.entities.Phrases(prefix) {
			out = append(out, a.Sub(p.Offset, p.Value, annotation.CandidateTag))
		}
	}
	return annotation.Dedupe(out)
}

// leftContextEnd returns the index of the first field after the leftmost
// left context phrase of value, or -1. At least one field must remain after
// the phrase.
func leftContextEnd(m *Model, value string, fields []tokenizer.Token) int {
	for i := 0; i < len(fields)-1; i++ {
		for n := min(maxContextWords, len(fields)-1-i); n >= 1; n-- {
			if m.isLeftContext(tokenizer.JoinFields(value, fields, i, i+n)) {
				return i + n
			}
		}
	}
	return -1
}

// removeDateFragments strips leading and trailing date expressions
// ("June John Hiatt" becomes "John Hiatt").
func removeDateFragments(_ *Model, in []annotation.Annotation) []annotation.Annotation {
	out := make([]annotation.Annotation, 0, len(in))
	for _, a := range in {
		rest, offset := tagger.TrimDateFragments(a.Value)
		switch {
		case rest == "":
		case rest == a.Value && offset == 0:
			out = append(out, a)
		default:
			out = append(out, a.Sub(offset, rest, a.Tag))
		}
	}
	return annotation.Dedupe(out)
}

// removeSentenceStartErrors drops single words that are usually written
// lowercase and were only capitalized because they start a sentence.
func removeSentenceStartErrors(m *Model, in []annotation.Annotation) []annotation.Annotation {
	return filter(in, func(a annotation.Annotation) bool {
		return len(tokenizer.Fields(a.Value)) != 1 || !m.inCaseDictionary(a.Value)
	})
}

// fixStartErrors removes leading words that are usually lowercase ("The
// Beatles" becomes "Beatles" unless the full value is a known entity).
func fixStartErrors(m *Model, in []annotation.Annotation) []annotation.Annotation {
	out := make([]annotation.Annotation, 0, len(in))
	for _, a := range in {
		fields := tokenizer.Fields(a.Value)
		if len(fields) < 2 {
			out = append(out, a)
			continue
		}

		i := 0
		for ; i < len(fields); i++ {
			if m.entities.Contains(tokenizer.JoinFields(a.Value, fields, i, len(fields))) {
				break
			}
			if !m.inCaseDictionary(fields[i].Value) {
				break
			}
		}
		switch {
		case i == len(fields):
		case i == 0:
			out = append(out, a)
		default:
			out = append(out, a.Sub(fields[i].Start, tokenizer.JoinFields(a.Value, fields, i, len(fields)), a.Tag))
		}
	}
	return annotation.Dedupe(out)
}

func removeDateEntries(_ *Model, in []annotation.Annotation) []annotation.Annotation {
	return filter(in, func(a annotation.Annotation) bool { return !tagger.IsDateFragment(a.Value) })
}

// longestDisjoint keeps the longest phrases that do not overlap, ordered by
// offset.
func longestDisjoint(phrases []tokenizer.Phrase, value string) []tokenizer.Phrase {
	sorted := slices.Clone(phrases)
	slices.SortStableFunc(sorted, func(a, b tokenizer.Phrase) int {
		if d := annotation.UTF16Len(b.Value) - annotation.UTF16Len(a.Value); d != 0 {
			return d
		}
		return a.Offset - b.Offset
	})

	var kept []tokenizer.Phrase
	for _, p := range sorted {
		if p.Value == value && p.Offset == 0 {
			continue
		}
		end := p.Offset + annotation.UTF16Len(p.Value)
		overlaps := slices.ContainsFunc(kept, func(k tokenizer.Phrase) bool {
			return p.Offset < k.Offset+annotation.UTF16Len(k.Value) && k.Offset < end
		})
		if !overlaps {
			kept = append(kept, p)
		}
	}
	slices.SortFunc(kept, func(a, b tokenizer.Phrase) int { return a.Offset - b.Offset })
	return kept
}

func filter(in []annotation.Annotation, keep func(annotation.Annotation) bool) []annotation.Annotation {
	out := make([]annotation.Annotation, 0, len(in))
	for _, a := range in {
		if keep(a) {
			out = append(out, a)
		}
	}
	return out
}
