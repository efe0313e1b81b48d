package docstore

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kittclouds/palladian/pkg/annotation"
)

func TestHydrateAndGet(t *testing.T) {
	s := New()
	n := s.Hydrate([]Document{
		{ID: "b", Text: "Paris", Version: 1},
		{ID: "a", Text: "Berlin", Version: 1},
	})
	assert.Equal(t, 2, n)
	assert.Equal(t, 2, s.Count())
	assert.Equal(t, []string{"a", "b"}, s.AllIDs())

	doc, ok := s.Get("a")
	require.True(t, ok)
	assert.Equal(t, "Berlin", doc.Text)

	_, ok = s.Get("missing")
	assert.False(t, ok)
}

func TestResultsFollowVersions(t *testing.T) {
	s := New()
	s.Upsert("doc", "Angela Merkel", 1)

	s.SetResult(Result{ID: "doc", Version: 1, Annotations: []annotation.ClassifiedAnnotation{
		annotation.Classify(annotation.New(0, "Angela Merkel", ""), annotation.Single("PER")),
	}})
	r, ok := s.Result("doc")
	require.True(t, ok)
	assert.Len(t, r.Annotations, 1)

	// stale result for an older version is ignored
	s.Upsert("doc", "Angela Merkel visited Paris", 2)
	_, ok = s.Result("doc")
	assert.False(t, ok)
	s.SetResult(Result{ID: "doc", Version: 1})
	_, ok = s.Result("doc")
	assert.False(t, ok)

	s.SetResult(Result{ID: "unknown", Version: 1})
	assert.Empty(t, s.Results())

	s.SetResult(Result{ID: "doc", Version: 2, Err: errors.New("boom")})
	r, ok = s.Result("doc")
	require.True(t, ok)
	assert.EqualError(t, r.Err, "boom")

	s.Remove("doc")
	assert.Zero(t, s.Count())
	assert.Empty(t, s.Results())
}

func TestConcurrentResults(t *testing.T) {
	s := New()
	for i := 0; i < 50; i++ {
		s.Upsert(fmt.Sprintf("d%02d", i), "text", 1)
	}

	var wg sync.WaitGroup
	for _, id := range s.AllIDs() {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			s.SetResult(Result{ID: id, Version: 1})
		}(id)
	}
	wg.Wait()

	results := s.Results()
	require.Len(t, results, 50)
	assert.Equal(t, "d00", results[0].ID)
	assert.Equal(t, "d49", results[49].ID)

	s.Clear()
	assert.Zero(t, s.Count())
}
