package annotation

import (
	"cmp"
	"slices"
)

// Dedupe removes annotations sharing (start, value) with an earlier one.
// Order of the first occurrences is kept.
func Dedupe(in []Annotation) []Annotation {
	type key struct {
		start int
		value string
	}
	seen := make(map[key]bool, len(in))
	out := make([]Annotation, 0, len(in))
	for _, a := range in {
		k := key{a.Start, a.Value}
		if seen[k] || a.Value == "" || a.Start < 0 {
			continue
		}
		seen[k] = true
		out = append(out, a)
	}
	return out
}

// Sort orders annotations by start ascending, longer spans first, then by
// value and tag so the result is fully deterministic.
func Sort(as []Annotation) {
	slices.SortFunc(as, compare)
}

func compare(a, b Annotation) int {
	if c := cmp.Compare(a.Start, b.Start); c != 0 {
		return c
	}
	if c := cmp.Compare(b.End(), a.End()); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Value, b.Value); c != 0 {
		return c
	}
	return cmp.Compare(a.Tag, b.Tag)
}

// Values returns the set of values, folded with fold.
func Values(as []Annotation, fold func(string) string) map[string]struct{} {
	out := make(map[string]struct{}, len(as))
	for _, a := range as {
		v := a.Value
		if fold != nil {
			v = fold(v)
		}
		out[v] = struct{}{}
	}
	return out
}
