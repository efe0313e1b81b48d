// Package dictionary implements the learned dictionaries of the NER tagger:
// an immutable term to category-count model built once through a Builder,
// and the entity dictionary of whole entity values.
package dictionary

import (
	"encoding/json"
	"fmt"
	"slices"

	"github.com/kittclouds/palladian/pkg/annotation"
	"github.com/kittclouds/palladian/pkg/features"
)

// Model maps feature terms to per-category document counts. It is never
// modified after Build, so it can be shared between goroutines.
type Model struct {
	setting    features.Setting
	terms      map[string]map[string]int
	categories map[string]int
	documents  int
}

// Setting returns the feature setting the model was built with.
func (m *Model) Setting() features.Setting { return m.setting }

// Documents returns the number of training instances.
func (m *Model) Documents() int { return m.documents }

// NumTerms returns the number of distinct terms.
func (m *Model) NumTerms() int { return len(m.terms) }

// Lookup returns the category counts of term. The returned map belongs to
// the model and must not be modified.
func (m *Model) Lookup(term string) (map[string]int, bool) {
	counts, ok := m.terms[term]
	return counts, ok
}

// Categories returns the category names in sorted order.
func (m *Model) Categories() []string {
	names := make([]string, 0, len(m.categories))
	for name := range m.categories {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// CategoryCount returns the number of training instances of category.
func (m *Model) CategoryCount(category string) int {
	return m.categories[category]
}

// CategoryEntries returns P(category | term) for term.
func (m *Model) CategoryEntries(term string) annotation.CategoryEntries {
	counts, ok := m.terms[term]
	if !ok {
		return annotation.CategoryEntries{}
	}
	scores := make(map[string]float64, len(counts))
	for category, n := range counts {
		scores[category] = float64(n)
	}
	return annotation.Normalize(scores)
}

type modelSnapshot struct {
	Setting    features.Setting          `json:"setting"`
	Terms      map[string]map[string]int `json:"terms"`
	Categories map[string]int            `json:"categories"`
	Documents  int                       `json:"documents"`
}

func (m *Model) MarshalJSON() ([]byte, error) {
	return json.Marshal(modelSnapshot{
		Setting:    m.setting,
		Terms:      m.terms,
		Categories: m.categories,
		Documents:  m.documents,
	})
}

func (m *Model) UnmarshalJSON(data []byte) error {
	var snap modelSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("dictionary: decode model: %w", err)
	}
	if err := snap.Setting.Validate(); err != nil {
		return err
	}
	if snap.Terms == nil {
		snap.Terms = make(map[string]map[string]int)
	}
	if snap.Categories == nil {
		snap.Categories = make(map[string]int)
	}
	*m = Model{
		setting:    snap.Setting,
		terms:      snap.Terms,
		categories: snap.Categories,
		documents:  snap.Documents,
	}
	return nil
}
