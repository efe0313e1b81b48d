package annotation

import (
	"cmp"
	"slices"
)

// ClassifiedAnnotation is an annotation together with its category
// distribution. Tag always mirrors the most likely category.
type ClassifiedAnnotation struct {
	Annotation `yaml:",inline"`
	Categories CategoryEntries `json:"categories" yaml:"categories"`
}

// Classify attaches categories to a, retagging it with the most likely one.
func Classify(a Annotation, categories CategoryEntries) ClassifiedAnnotation {
	return ClassifiedAnnotation{Annotation: a.WithTag(categories.MostLikelyName()), Categories: categories}
}

// TopProbability returns the probability of the most likely category.
func (c ClassifiedAnnotation) TopProbability() float64 {
	best, _ := c.Categories.MostLikely()
	return best.Probability
}

// Plain strips the categories.
func Plain(as []ClassifiedAnnotation) []Annotation {
	out := make([]Annotation, len(as))
	for i, a := range as {
		out[i] = a.Annotation
	}
	return out
}

// SortClassified orders by span like Sort; equal spans put the more
// confident annotation first.
func SortClassified(as []ClassifiedAnnotation) {
	slices.SortFunc(as, func(a, b ClassifiedAnnotation) int {
		if c := cmp.Compare(a.Start, b.Start); c != 0 {
			return c
		}
		if c := cmp.Compare(b.End(), a.End()); c != 0 {
			return c
		}
		if c := cmp.Compare(b.TopProbability(), a.TopProbability()); c != 0 {
			return c
		}
		return compare(a.Annotation, b.Annotation)
	})
}

// RemoveNested drops every annotation whose span lies inside another
// annotation's span. Of several identical spans only the most confident
// survives.
func RemoveNested(in []ClassifiedAnnotation) []ClassifiedAnnotation {
	sorted := slices.Clone(in)
	SortClassified(sorted)

	out := make([]ClassifiedAnnotation, 0, len(sorted))
	maxEnd := -1
	for _, a := range sorted {
		// every kept annotation starts at or before a, so a is nested
		// exactly when it ends before the furthest kept end
		if a.End() <= maxEnd {
			continue
		}
		out = append(out, a)
		maxEnd = a.End()
	}
	return out
}
