package ner

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kittclouds/palladian/pkg/annotation"
)

func TestEvaluateDocument(t *testing.T) {
	gold := []annotation.Annotation{
		annotation.New(0, "Angela Merkel", "PER"),
		annotation.New(22, "Dresden", "LOC"),
		annotation.New(40, "Barack Obama", "PER"),
		annotation.New(60, "Berlin", "LOC"),
		annotation.New(80, "Paris", "LOC"),
	}
	predicted := []annotation.Annotation{
		annotation.New(100, "Great", "LOC"),
		annotation.New(0, "Angela Merkel", "PER"),
		annotation.New(22, "Dresden", "PER"),
		annotation.New(47, "Obama", "PER"),
		annotation.New(60, "Berlin Wall", "ORG"),
	}

	e := NewEvaluation()
	e.EvaluateDocument(predicted, gold)

	for _, o := range []Outcome{Correct, Error1, Error2, Error3, Error4, Error5} {
		assert.Equal(t, 1, e.Count(o), o.String())
	}
	require.Len(t, e.Errors(Error1), 1)
	assert.Equal(t, "Great", e.Errors(Error1)[0].Predicted.Value)
	assert.Equal(t, "Paris", e.Errors(Error2)[0].Gold.Value)

	assert.InDelta(t, 0.2, e.Precision(Exact, ""), 1e-12)
	assert.InDelta(t, 0.2, e.Recall(Exact, ""), 1e-12)
	assert.InDelta(t, 0.4, e.Precision(MUC, ""), 1e-12)
	assert.InDelta(t, 0.4, e.Recall(MUC, ""), 1e-12)
	assert.InDelta(t, 0.4, e.F1(MUC, ""), 1e-12)

	assert.InDelta(t, 1.0/3, e.Precision(Exact, "PER"), 1e-12)
	assert.InDelta(t, 0.5, e.Recall(Exact, "PER"), 1e-12)
	assert.Equal(t, []string{"LOC", "ORG", "PER"}, e.Tags())

	scores := e.Scores(MUC)
	require.Len(t, scores, 4)
	assert.Equal(t, "ALL", scores[0].Tag)
}

func TestEvaluationEmpty(t *testing.T) {
	e := NewEvaluation()
	assert.Zero(t, e.Precision(Exact, ""))
	assert.Zero(t, e.Recall(MUC, ""))
	assert.Zero(t, e.F1(Exact, "PER"))
	assert.Equal(t, "Outcome(9)", Outcome(9).String())
}

func TestEvaluateTrainingData(t *testing.T) {
	docs := trainingDocs(t)
	tg := NewTagger(train(t, DefaultSettings(English)))

	e, err := Evaluate(context.Background(), tg, docs)
	require.NoError(t, err)
	assert.Positive(t, e.Count(Correct))
	assert.Greater(t, e.F1(MUC, ""), 0.5)

	_, err = Evaluate(context.Background(), NewTagger(nil), docs)
	assert.ErrorIs(t, err, ErrModelNotLoaded)
}
