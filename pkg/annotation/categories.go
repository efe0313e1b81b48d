package annotation

import (
	"cmp"
	"encoding/json"
	"math"
	"slices"

	"gopkg.in/yaml.v3"
)

// Category is one entry of a probability distribution over categories.
type Category struct {
	Name        string  `json:"name" yaml:"name"`
	Probability float64 `json:"probability" yaml:"probability"`
}

// CategoryEntries is an immutable distribution over categories, ordered by
// descending probability (ties by name).
type CategoryEntries struct {
	entries []Category
}

// NewCategoryEntries builds entries from raw scores. Non-positive and NaN
// scores are dropped; the scores are taken as-is.
func NewCategoryEntries(scores map[string]float64) CategoryEntries {
	entries := make([]Category, 0, len(scores))
	for name, p := range scores {
		if p <= 0 || math.IsNaN(p) {
			continue
		}
		entries = append(entries, Category{Name: name, Probability: p})
	}
	slices.SortFunc(entries, func(a, b Category) int {
		if c := cmp.Compare(b.Probability, a.Probability); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})
	return CategoryEntries{entries: entries}
}

// Normalize builds entries whose probabilities sum to one.
func Normalize(scores map[string]float64) CategoryEntries {
	names := make([]string, 0, len(scores))
	for name := range scores {
		names = append(names, name)
	}
	slices.Sort(names)

	var sum float64
	for _, name := range names {
		if p := scores[name]; p > 0 {
			sum += p
		}
	}
	if sum == 0 {
		return CategoryEntries{}
	}
	normalized := make(map[string]float64, len(scores))
	for _, name := range names {
		if p := scores[name]; p > 0 {
			normalized[name] = p / sum
		}
	}
	return NewCategoryEntries(normalized)
}

// Single returns entries holding one category with probability 1.
func Single(name string) CategoryEntries {
	return CategoryEntries{entries: []Category{{Name: name, Probability: 1}}}
}

// Len returns the number of categories.
func (c CategoryEntries) Len() int { return len(c.entries) }

// Empty reports whether no category has any probability.
func (c CategoryEntries) Empty() bool { return len(c.entries) == 0 }

// MostLikely returns the category with the highest probability.
func (c CategoryEntries) MostLikely() (Category, bool) {
	if len(c.entries) == 0 {
		return Category{}, false
	}
	return c.entries[0], true
}

// MostLikelyName returns the name of the most likely category or "".
func (c CategoryEntries) MostLikelyName() string {
	best, _ := c.MostLikely()
	return best.Name
}

// Probability returns the probability of name, 0 when absent.
func (c CategoryEntries) Probability(name string) float64 {
	for _, e := range c.entries {
		if e.Name == name {
			return e.Probability
		}
	}
	return 0
}

// All returns a copy of the entries in order.
func (c CategoryEntries) All() []Category {
	return slices.Clone(c.entries)
}

// Map returns the entries as a name to probability map.
func (c CategoryEntries) Map() map[string]float64 {
	m := make(map[string]float64, len(c.entries))
	for _, e := range c.entries {
		m[e.Name] = e.Probability
	}
	return m
}

// Merge adds other to c and renormalizes the sum.
func (c CategoryEntries) Merge(other CategoryEntries) CategoryEntries {
	sum := c.Map()
	for _, e := range other.entries {
		sum[e.Name] += e.Probability
	}
	return Normalize(sum)
}

// Without drops name and renormalizes the remaining categories.
func (c CategoryEntries) Without(name string) CategoryEntries {
	m := c.Map()
	if _, ok := m[name]; !ok {
		return c
	}
	delete(m, name)
	return Normalize(m)
}

// Ties returns the names sharing the top probability, in order.
func (c CategoryEntries) Ties() []string {
	if len(c.entries) == 0 {
		return nil
	}
	top := c.entries[0].Probability
	var names []string
	for _, e := range c.entries {
		if math.Abs(e.Probability-top) > 1e-9 {
			break
		}
		names = append(names, e.Name)
	}
	return names
}

func (c CategoryEntries) MarshalJSON() ([]byte, error) {
	if c.entries == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(c.entries)
}

func (c *CategoryEntries) UnmarshalJSON(data []byte) error {
	var entries []Category
	if err := json.Unmarshal(data, &entries); err != nil {
		return err
	}
	scores := make(map[string]float64, len(entries))
	for _, e := range entries {
		scores[e.Name] = e.Probability
	}
	*c = NewCategoryEntries(scores)
	return nil
}

// MarshalYAML renders the entries as a list.
func (c CategoryEntries) MarshalYAML() (any, error) {
	return c.All(), nil
}

// UnmarshalYAML reads the list form written by MarshalYAML.
func (c *CategoryEntries) UnmarshalYAML(value *yaml.Node) error {
	var entries []Category
	if err := value.Decode(&entries); err != nil {
		return err
	}
	scores := make(map[string]float64, len(entries))
	for _, e := range entries {
		scores[e.Name] = e.Probability
	}
	*c = NewCategoryEntries(scores)
	return nil
}
