package annotation

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestSpans(t *testing.T) {
	outer := New(10, "New York Times", "ORG")
	inner := outer.Sub(4, "York", "LOC")

	assert.Equal(t, 24, outer.End())
	assert.Equal(t, 14, inner.Start)
	assert.True(t, outer.Contains(inner))
	assert.False(t, inner.Contains(outer))
	assert.True(t, outer.Overlaps(inner))
	assert.False(t, outer.Overlaps(New(24, "x", "")))
	assert.True(t, outer.SameTag(New(0, "a", "org")))
	assert.True(t, New(3, "ab", "A").SameSpan(New(3, "cd", "B")))
}

func TestDedupeKeepsFirst(t *testing.T) {
	in := []Annotation{
		New(0, "Paris", "LOC"),
		New(0, "Paris", "PER"),
		New(10, "Paris", "LOC"),
		New(5, "", "LOC"),
		New(-1, "x", "LOC"),
	}
	got := Dedupe(in)
	require.Len(t, got, 2)
	assert.Equal(t, "LOC", got[0].Tag)
	assert.Equal(t, 10, got[1].Start)
}

func TestNormalizeAndMerge(t *testing.T) {
	a := Normalize(map[string]float64{"PER": 3, "LOC": 1, "ORG": 0})
	require.Equal(t, 2, a.Len())
	assert.Equal(t, "PER", a.MostLikelyName())
	assert.InDelta(t, 0.75, a.Probability("PER"), 1e-12)
	assert.Zero(t, a.Probability("ORG"))

	merged := a.Merge(Normalize(map[string]float64{"LOC": 1}))
	assert.InDelta(t, 0.375, merged.Probability("PER"), 1e-12)
	assert.InDelta(t, 0.625, merged.Probability("LOC"), 1e-12)

	assert.True(t, Normalize(nil).Empty())
	assert.True(t, Normalize(map[string]float64{"A": 0}).Empty())
}

func TestWithoutAndTies(t *testing.T) {
	c := Normalize(map[string]float64{"###NO_ENTITY###": 2, "PER": 1, "LOC": 1})
	assert.Equal(t, []string{"###NO_ENTITY###"}, c.Ties())

	rest := c.Without("###NO_ENTITY###")
	assert.InDelta(t, 0.5, rest.Probability("PER"), 1e-12)
	assert.Equal(t, []string{"LOC", "PER"}, rest.Ties())
	assert.Equal(t, rest, rest.Without("ORG"))
}

func TestCategoryEntriesJSON(t *testing.T) {
	c := Normalize(map[string]float64{"PER": 1, "LOC": 3})
	data, err := json.Marshal(c)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"name":"LOC","probability":0.75},{"name":"PER","probability":0.25}]`, string(data))

	var back CategoryEntries
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, c, back)

	data, err = json.Marshal(CategoryEntries{})
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestClassifiedAnnotationYAML(t *testing.T) {
	in := []ClassifiedAnnotation{
		Classify(New(22, "Dresden", CandidateTag), Normalize(map[string]float64{"LOC": 3, "PER": 1})),
	}
	data, err := yaml.Marshal(in)
	require.NoError(t, err)
	assert.Contains(t, string(data), "probability: 0.75")

	var back []ClassifiedAnnotation
	require.NoError(t, yaml.Unmarshal(data, &back))
	require.Len(t, back, 1)
	assert.Equal(t, in[0].Annotation, back[0].Annotation)
	assert.Equal(t, in[0].Categories, back[0].Categories)
}

func TestClassifyTagsMostLikely(t *testing.T) {
	c := Classify(New(0, "Dresden", CandidateTag), Normalize(map[string]float64{"LOC": 2, "PER": 1}))
	assert.Equal(t, "LOC", c.Tag)
	assert.InDelta(t, 2.0/3, c.TopProbability(), 1e-12)
	assert.Equal(t, []Annotation{New(0, "Dresden", "LOC")}, Plain([]ClassifiedAnnotation{c}))

	// the input annotation is left untouched
	a := New(0, "Paris", CandidateTag)
	Classify(a, Single("LOC"))
	assert.Equal(t, CandidateTag, a.Tag)
}

func TestRemoveNested(t *testing.T) {
	loc := Single("LOC")
	weak := Normalize(map[string]float64{"ORG": 0.6, "PER": 0.4})
	in := []ClassifiedAnnotation{
		Classify(New(4, "York", ""), loc),
		Classify(New(0, "New York", ""), loc),
		Classify(New(0, "New York", ""), weak),
		Classify(New(20, "Berlin", ""), loc),
		Classify(New(18, "a Berlin x", ""), weak),
		Classify(New(9, "is", ""), loc),
	}
	got := RemoveNested(in)

	require.Len(t, got, 3)
	assert.Equal(t, "New York", got[0].Value)
	assert.Equal(t, "LOC", got[0].Tag)
	assert.Equal(t, "is", got[1].Value)
	assert.Equal(t, "a Berlin x", got[2].Value)

	// applying it twice changes nothing
	assert.Equal(t, got, RemoveNested(got))
}

func TestTextSlice(t *testing.T) {
	tx := NewText("\U0001F600 Zo\u00eb")
	assert.Equal(t, 6, tx.Len())
	assert.Equal(t, "Zo\u00eb", tx.Slice(3, 6))
	assert.Equal(t, "Zo\u00eb", tx.Slice(3, 100))
	assert.Equal(t, "", tx.Slice(5, 2))
	assert.Equal(t, 2, UTF16Len("\U0001F600"))
}
