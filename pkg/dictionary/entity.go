package dictionary

import (
	"cmp"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/coregx/ahocorasick"

	"github.com/kittclouds/palladian/pkg/annotation"
	"github.com/kittclouds/palladian/pkg/features"
	"github.com/kittclouds/palladian/pkg/tokenizer"
)

// ============================================================================
// EntityDictionary - exact lookup AND phrase scanning
// ============================================================================

// EntityDictionary maps whole entity values to their categories. Exact
// lookups are case-sensitive; a single Aho-Corasick automaton over the
// canonical forms finds known entities inside longer values.
type EntityDictionary struct {
	model *Model

	// Canonical pattern -> pattern index
	patternIndex map[string]int
	patterns     []string

	ac *ahocorasick.Automaton

	// Category -> rank in the concept likelihood order
	rank  map[string]int
	order []string
}

// NewEntityBuilder returns a builder keyed by whole values.
func NewEntityBuilder() *Builder {
	return NewBuilder(features.Whole())
}

// NewEntityDictionary compiles the automaton for model. order lists
// categories from most to least trusted and breaks ties in Lookup.
func NewEntityDictionary(model *Model, order []string) (*EntityDictionary, error) {
	if model == nil {
		model = NewEntityBuilder().Build(0)
	}
	d := &EntityDictionary{
		model:        model,
		patternIndex: make(map[string]int),
		rank:         make(map[string]int, len(order)),
		order:        slices.Clone(order),
	}
	for i, category := range order {
		if _, seen := d.rank[category]; !seen {
			d.rank[category] = i
		}
	}

	keys := make([]string, 0, len(model.terms))
	for key := range model.terms {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	for _, key := range keys {
		pattern := Canonicalize(key)
		if pattern == "" {
			continue
		}
		if _, exists := d.patternIndex[pattern]; exists {
			continue
		}
		d.patternIndex[pattern] = len(d.patterns)
		d.patterns = append(d.patterns, pattern)
	}

	if len(d.patterns) == 0 {
		return d, nil
	}

	// LeftmostLongest prefers "New York City" over "New York"
	automaton, err := ahocorasick.NewBuilder().
		AddStrings(d.patterns).
		SetMatchKind(ahocorasick.LeftmostLongest).
		SetPrefilter(true).
		Build()
	if err != nil {
		return nil, fmt.Errorf("dictionary: compile entity automaton: %w", err)
	}
	d.ac = automaton

	return d, nil
}

// Model returns the underlying value model.
func (d *EntityDictionary) Model() *Model { return d.model }

// Order returns the concept likelihood order.
func (d *EntityDictionary) Order() []string { return slices.Clone(d.order) }

// Len returns the number of entity values.
func (d *EntityDictionary) Len() int { return d.model.NumTerms() }

// Contains reports whether value is a known entity (case-sensitive).
func (d *EntityDictionary) Contains(value string) bool {
	_, ok := d.model.terms[Key(value)]
	return ok
}

// Lookup returns the category distribution of value. When several categories
// tie for the top probability and a concept likelihood order is configured,
// the mass of the tied categories moves to the earliest of them in the
// order; without an order the tie is kept as-is.
func (d *EntityDictionary) Lookup(value string) (annotation.CategoryEntries, bool) {
	key := Key(value)
	if _, ok := d.model.terms[key]; !ok {
		return annotation.CategoryEntries{}, false
	}
	entries := d.model.CategoryEntries(key)

	ties := entries.Ties()
	if len(ties) < 2 || len(d.rank) == 0 {
		return entries, true
	}

	preferred := ""
	best := len(d.order)
	for _, category := range ties {
		if r, ok := d.rank[category]; ok && r < best {
			preferred, best = category, r
		}
	}
	if preferred == "" {
		return entries, true
	}

	scores := entries.Map()
	for _, category := range ties {
		if category != preferred {
			scores[preferred] += scores[category]
			delete(scores, category)
		}
	}
	return annotation.NewCategoryEntries(scores), true
}

// ============================================================================
// Phrase Scanning
// ============================================================================

// Phrases returns the known entities occurring inside value on field
// boundaries. Overlapping matches are resolved longest first; the result is
// ordered by offset.
func (d *EntityDictionary) Phrases(value string) []tokenizer.Phrase {
	if d.ac == nil || value == "" {
		return nil
	}

	canonical := Canonicalize(value)
	mapping := buildOffsetMap(value)

	type span struct{ start, end int }
	var spans []span
	for _, m := range d.ac.FindAllOverlapping([]byte(canonical)) {
		if m.Start > 0 && canonical[m.Start-1] != ' ' {
			continue
		}
		if m.End < len(canonical) && canonical[m.End] != ' ' {
			continue
		}
		origStart := mapOffset(m.Start, mapping, len(value))
		origEnd := mapOffset(m.End, mapping, len(value))
		if origStart >= origEnd || origEnd > len(value) {
			continue
		}
		spans = append(spans, span{origStart, origEnd})
	}

	slices.SortFunc(spans, func(a, b span) int {
		if c := cmp.Compare(b.end-b.start, a.end-a.start); c != 0 {
			return c
		}
		return cmp.Compare(a.start, b.start)
	})

	var kept []span
	for _, s := range spans {
		overlaps := false
		for _, k := range kept {
			if s.start < k.end && k.start < s.end {
				overlaps = true
				break
			}
		}
		if !overlaps {
			kept = append(kept, s)
		}
	}
	slices.SortFunc(kept, func(a, b span) int { return cmp.Compare(a.start, b.start) })

	phrases := make([]tokenizer.Phrase, 0, len(kept))
	for _, s := range kept {
		text, cut := tokenizer.TrimSpace(value[s.start:s.end])
		if text == "" {
			continue
		}
		phrases = append(phrases, tokenizer.Phrase{
			Value:  text,
			Offset: annotation.UTF16Len(value[:s.start]) + cut,
			Fields: len(tokenizer.Fields(text)),
		})
	}
	return phrases
}

type entitySnapshot struct {
	Model *Model   `json:"model"`
	Order []string `json:"order,omitempty"`
}

func (d *EntityDictionary) MarshalJSON() ([]byte, error) {
	return json.Marshal(entitySnapshot{Model: d.model, Order: d.order})
}

func (d *EntityDictionary) UnmarshalJSON(data []byte) error {
	var snap entitySnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("dictionary: decode entity dictionary: %w", err)
	}
	compiled, err := NewEntityDictionary(snap.Model, snap.Order)
	if err != nil {
		return err
	}
	*d = *compiled
	return nil
}
