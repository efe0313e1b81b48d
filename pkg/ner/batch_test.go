package ner

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kittclouds/palladian/pkg/annotation"
	"github.com/kittclouds/palladian/pkg/docstore"
)

func TestAnnotateAll(t *testing.T) {
	store := docstore.New()
	store.Hydrate([]docstore.Document{
		{ID: "a", Text: "Angela Merkel visited Dresden.", Version: 1},
		{ID: "b", Text: "Barack Obama met Angela Merkel in Berlin.", Version: 1},
		{ID: "c", Text: "", Version: 1},
	})
	tg := NewTagger(train(t, DefaultSettings(English)))

	failed, err := AnnotateAll(context.Background(), tg, store, 2)
	require.NoError(t, err)
	assert.Zero(t, failed)

	results := store.Results()
	require.Len(t, results, 3)
	assert.Contains(t, annotation.Plain(results[0].Annotations), annotation.New(22, "Dresden", "LOC"))
	assert.Greater(t, results[0].Annotations[0].TopProbability(), 0.0)
	assert.Contains(t, annotation.Plain(results[1].Annotations), annotation.New(0, "Barack Obama", "PER"))
	assert.Empty(t, results[2].Annotations)
	for _, r := range results {
		assert.NoError(t, r.Err)
	}
}

func TestAnnotateAllErrors(t *testing.T) {
	store := docstore.New()
	store.Upsert("a", "Dresden", 1)

	_, err := AnnotateAll(context.Background(), NewTagger(nil), store, 1)
	assert.ErrorIs(t, err, ErrModelNotLoaded)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = AnnotateAll(ctx, NewTagger(train(t, DefaultSettings(English))), store, 0)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAnnotateSafelyRecovers(t *testing.T) {
	tg := NewTagger(nil)
	_, err := annotateSafely(tg, nil, "Angela Merkel")
	assert.ErrorContains(t, err, "ner: annotate")
}
