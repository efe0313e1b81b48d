package ner

import (
	"github.com/kittclouds/palladian/pkg/annotation"
	"github.com/kittclouds/palladian/pkg/classifier"
)

// switchTagsWithContext adds the context classification of each annotation
// to its distribution. The context scorer compensates for categories that
// dominate the training data.
func switchTagsWithContext(m *Model, text *annotation.Text, in []annotation.ClassifiedAnnotation) []annotation.ClassifiedAnnotation {
	if m.contexts.NumTerms() == 0 {
		return in
	}
	size := m.settings.WindowSize
	out := make([]annotation.ClassifiedAnnotation, 0, len(in))
	for _, a := range in {
		ctx := classifier.Classify(contextWindow(text, a.Annotation, size), m.contexts, classifier.EqualizingScorer{})
		if ctx.Empty() {
			out = append(out, a)
			continue
		}
		out = append(out, annotation.Classify(a.Annotation, a.Categories.Merge(ctx)))
	}
	return out
}

// overrideWithEntities replaces the distribution of every annotation whose
// value is a known entity.
func overrideWithEntities(m *Model, in []annotation.ClassifiedAnnotation) []annotation.ClassifiedAnnotation {
	out := make([]annotation.ClassifiedAnnotation, 0, len(in))
	for _, a := range in {
		if entries, ok := m.entities.Lookup(a.Value); ok && !entries.Empty() {
			a = annotation.Classify(a.Annotation, entries)
		}
		out = append(out, a)
	}
	return out
}

// combineAdjacent drops outside tokens and merges neighbours of the same
// type that are separated by blanks only. The merged annotation keeps the
// distribution of its first part.
func combineAdjacent(text *annotation.Text, in []annotation.ClassifiedAnnotation) []annotation.ClassifiedAnnotation {
	sorted := make([]annotation.ClassifiedAnnotation, 0, len(in))
	for _, a := range in {
		if a.Tag != annotation.OutsideTag {
			sorted = append(sorted, a)
		}
	}
	annotation.SortClassified(sorted)

	out := make([]annotation.ClassifiedAnnotation, 0, len(sorted))
	for _, a := range sorted {
		if n := len(out); n > 0 {
			last := out[n-1]
			if last.SameTag(a.Annotation) && a.Start >= last.End() && onlySpace(text.Slice(last.End(), a.Start)) {
				last.Value = text.Slice(last.Start, a.End())
				out[n-1] = last
				continue
			}
		}
		out = append(out, a)
	}
	return out
}

// finalize merges the extra annotations, drops annotations without any
// category and removes nested spans.
func finalize(in, extra []annotation.ClassifiedAnnotation) []annotation.ClassifiedAnnotation {
	all := make([]annotation.ClassifiedAnnotation, 0, len(in)+len(extra))
	for _, a := range in {
		if !a.Categories.Empty() && a.Value != "" {
			all = append(all, a)
		}
	}
	all = append(all, extra...)
	return annotation.RemoveNested(all)
}
