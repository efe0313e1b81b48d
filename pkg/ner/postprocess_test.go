package ner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kittclouds/palladian/pkg/annotation"
	"github.com/kittclouds/palladian/pkg/dictionary"
)

func classified(start int, value string, scores map[string]float64) annotation.ClassifiedAnnotation {
	return annotation.Classify(annotation.New(start, value, ""), annotation.Normalize(scores))
}

func TestEntityOverrideWins(t *testing.T) {
	m := stageModel(t, map[string]string{"Dresden": "City"})
	in := []annotation.ClassifiedAnnotation{
		classified(0, "Dresden", map[string]float64{"PER": 0.9, "City": 0.1}),
		classified(20, "Hiatt", map[string]float64{"PER": 1}),
	}

	got := overrideWithEntities(m, in)
	require.Len(t, got, 2)
	assert.Equal(t, "City", got[0].Tag)
	assert.InDelta(t, 1.0, got[0].Categories.Probability("City"), 1e-12)
	assert.Equal(t, "PER", got[1].Tag)
}

func TestEntityOverrideTieBreak(t *testing.T) {
	m := stageModel(t, nil)
	b := dictionary.NewEntityBuilder()
	b.AddTerm("Paris", "City")
	b.AddTerm("Paris", "Person")
	ed, err := dictionary.NewEntityDictionary(b.Build(1), []string{"Person", "City"})
	require.NoError(t, err)
	m.entities = ed

	got := overrideWithEntities(m, []annotation.ClassifiedAnnotation{classified(0, "Paris", map[string]float64{"City": 1})})
	assert.Equal(t, "Person", got[0].Tag)

	// without an order the tie is reported as it is
	ed, err = dictionary.NewEntityDictionary(b.Build(1), nil)
	require.NoError(t, err)
	m.entities = ed
	got = overrideWithEntities(m, []annotation.ClassifiedAnnotation{classified(0, "Paris", map[string]float64{"City": 1})})
	assert.Equal(t, 2, got[0].Categories.Len())
	assert.Len(t, got[0].Categories.Ties(), 2)
}

func TestCombineAdjacent(t *testing.T) {
	raw := "Angela Merkel visited New York\nBerlin Paris"
	text := annotation.NewText(raw)
	per := map[string]float64{"PER": 1}
	loc := map[string]float64{"LOC": 0.8, "PER": 0.2}
	in := []annotation.ClassifiedAnnotation{
		classified(26, "York", map[string]float64{"LOC": 1}),
		classified(7, "Merkel", per),
		classified(0, "Angela", per),
		classified(14, "visited", map[string]float64{"O": 1}),
		classified(22, "New", loc),
		classified(31, "Berlin", map[string]float64{"LOC": 1}),
		classified(38, "Paris", map[string]float64{"LOC": 1}),
	}

	got := combineAdjacent(text, in)
	require.Len(t, got, 3)
	assert.Equal(t, annotation.New(0, "Angela Merkel", "PER"), got[0].Annotation)
	assert.Equal(t, annotation.New(22, "New York", "LOC"), got[1].Annotation)
	assert.InDelta(t, 0.8, got[1].TopProbability(), 1e-12)
	// the line break keeps York and Berlin apart
	assert.Equal(t, annotation.New(31, "Berlin Paris", "LOC"), got[2].Annotation)

	assert.Equal(t, got, combineAdjacent(text, got))
}

func TestCombineAdjacentStopsAtLineBreak(t *testing.T) {
	raw := "Berlin\nParis"
	got := combineAdjacent(annotation.NewText(raw), []annotation.ClassifiedAnnotation{
		classified(0, "Berlin", map[string]float64{"LOC": 1}),
		classified(7, "Paris", map[string]float64{"LOC": 1}),
	})
	assert.Len(t, got, 2)
}

func TestSwitchTagsWithContext(t *testing.T) {
	m := stageModel(t, nil)
	b := dictionary.NewBuilder(m.settings.ContextFeatures)
	for i := 0; i < 3; i++ {
		b.Add("the mayor  said", "PER")
		b.Add("the city  is", "LOC")
	}
	m.contexts = b.Build(1)

	raw := "the mayor Hilbert said"
	in := []annotation.ClassifiedAnnotation{classified(10, "Hilbert", map[string]float64{"LOC": 0.6, "PER": 0.4})}

	got := switchTagsWithContext(m, annotation.NewText(raw), in)
	require.Len(t, got, 1)
	assert.Equal(t, "PER", got[0].Tag)
	assert.InDelta(t, 0.65, got[0].Categories.Probability("PER"), 1e-9)
}

func TestFinalize(t *testing.T) {
	in := []annotation.ClassifiedAnnotation{
		classified(0, "New York", map[string]float64{"LOC": 1}),
		classified(4, "York", map[string]float64{"PER": 1}),
		annotation.Classify(annotation.New(20, "Nobody", ""), annotation.CategoryEntries{}),
	}
	extra := []annotation.ClassifiedAnnotation{
		annotation.Classify(annotation.New(30, "June 5, 2010", "DATE"), annotation.Single("DATE")),
		annotation.Classify(annotation.New(30, "June", "DATE"), annotation.Single("DATE")),
	}

	got := finalize(in, extra)
	assert.Equal(t, []annotation.Annotation{
		annotation.New(0, "New York", "LOC"),
		annotation.New(30, "June 5, 2010", "DATE"),
	}, annotation.Plain(got))
}
