package ner

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kittclouds/palladian/pkg/corpus"
	"github.com/kittclouds/palladian/pkg/dictionary"
)

const trainingColumns = `Angela	PER
Merkel	PER
visited	O
Dresden	LOC
yesterday	O
.	O

The	O
mayor	O
of	O
Dresden	LOC
met	O
Barack	PER
Obama	PER
in	O
Berlin	LOC
.	O

This	O
is	O
the	O
city	O
where	O
Angela	PER
Merkel	PER
lives	O
.	O

Angela	PER
Merkel	PER
had	O
Great	O
fun	O
in	O
Dresden	LOC
.	O
`

func trainingDocs(t *testing.T) []corpus.Document {
	t.Helper()
	docs, _, err := corpus.ReadColumn(strings.NewReader(trainingColumns), "fixture")
	require.NoError(t, err)
	return docs
}

func train(t *testing.T, s Settings, seeds ...corpus.Seed) *Model {
	t.Helper()
	return trainOn(t, s, trainingDocs(t), seeds...)
}

// trainExtended trains on the fixture followed by the extra column sentences.
func trainExtended(t *testing.T, s Settings, extra string, seeds ...corpus.Seed) *Model {
	t.Helper()
	docs, _, err := corpus.ReadColumn(strings.NewReader(trainingColumns+"\n"+extra), "fixture")
	require.NoError(t, err)
	return trainOn(t, s, docs, seeds...)
}

func trainOn(t *testing.T, s Settings, docs []corpus.Document, seeds ...corpus.Seed) *Model {
	t.Helper()
	tr, err := NewTrainer(s)
	require.NoError(t, err)
	m, err := tr.Train(context.Background(), docs, seeds)
	require.NoError(t, err)
	return m
}

// stageModel builds an English model with empty dictionaries and the given
// entities, for exercising single stages.
func stageModel(t *testing.T, entities map[string]string, order ...string) *Model {
	t.Helper()
	b := dictionary.NewEntityBuilder()
	for value, tag := range entities {
		b.AddTerm(dictionary.Key(value), tag)
	}
	ed, err := dictionary.NewEntityDictionary(b.Build(1), order)
	require.NoError(t, err)

	s := DefaultSettings(English)
	return &Model{
		settings:          s,
		annotations:       dictionary.NewBuilder(s.AnnotationFeatures).Build(1),
		entities:          ed,
		contexts:          dictionary.NewBuilder(s.ContextFeatures).Build(1),
		leftContexts:      map[string]struct{}{},
		caseDictionary:    map[string]struct{}{},
		removeAnnotations: map[string]struct{}{},
	}
}

func set(values ...string) map[string]struct{} {
	return toSet(values)
}
