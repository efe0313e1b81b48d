package dictionary

import (
	"maps"

	"github.com/kittclouds/palladian/pkg/features"
	"github.com/kittclouds/palladian/pkg/pool"
)

// Builder accumulates training instances. It stays usable after Build, so a
// second training pass can add instances and build again.
type Builder struct {
	setting    features.Setting
	terms      map[string]map[string]int
	categories map[string]int
	documents  int
}

// NewBuilder creates an empty builder for setting.
func NewBuilder(setting features.Setting) *Builder {
	return &Builder{
		setting:    setting,
		terms:      make(map[string]map[string]int),
		categories: make(map[string]int),
	}
}

// Add trains one instance: every distinct feature of text is counted once
// for category.
func (b *Builder) Add(text, category string) {
	counts := pool.GetCounts()
	defer pool.PutCounts(counts)

	b.setting.ExtractInto(text, counts)
	if len(counts) == 0 {
		return
	}
	for term := range counts {
		b.addTerm(term, category)
	}
	b.categories[category]++
	b.documents++
}

// AddTerm trains term as a single feature, bypassing extraction.
func (b *Builder) AddTerm(term, category string) {
	if term == "" {
		return
	}
	b.addTerm(term, category)
	b.categories[category]++
	b.documents++
}

func (b *Builder) addTerm(term, category string) {
	counts, ok := b.terms[term]
	if !ok {
		counts = make(map[string]int, 1)
		b.terms[term] = counts
	}
	counts[category]++
}

// Documents returns the number of instances added so far.
func (b *Builder) Documents() int { return b.documents }

// Build returns an immutable model, pruning terms seen fewer than minCount
// times over all categories.
func (b *Builder) Build(minCount int) *Model {
	terms := make(map[string]map[string]int, len(b.terms))
	for term, counts := range b.terms {
		total := 0
		for _, n := range counts {
			total += n
		}
		if total < minCount {
			continue
		}
		terms[term] = maps.Clone(counts)
	}
	return &Model{
		setting:    b.setting,
		terms:      terms,
		categories: maps.Clone(b.categories),
		documents:  b.documents,
	}
}
