package classifier

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kittclouds/palladian/pkg/dictionary"
	"github.com/kittclouds/palladian/pkg/features"
)

func trainedModel() *dictionary.Model {
	b := dictionary.NewBuilder(features.Chars(3, 5, true))
	b.Add("Dresden", "LOC")
	b.Add("Dresdner Bank", "ORG")
	b.Add("Berlin", "LOC")
	b.Add("Bernhard", "PER")
	b.Add("Hiatt", "PER")
	return b.Build(1)
}

func TestClassifyPrefersSpecificCategory(t *testing.T) {
	m := trainedModel()

	got := Classify("Berlin", m, DefaultScorer{})
	require.False(t, got.Empty())
	assert.Equal(t, "LOC", got.MostLikelyName())

	var sum float64
	for _, c := range got.All() {
		sum += c.Probability
	}
	assert.InDelta(t, 1.0, sum, 1e-9)
}

func TestClassifyUnknownText(t *testing.T) {
	m := trainedModel()
	assert.True(t, Classify("zzzz", m, DefaultScorer{}).Empty())
	assert.True(t, Classify("", m, DefaultScorer{}).Empty())
	assert.True(t, Classify("Berlin", nil, DefaultScorer{}).Empty())
}

func TestClassifyDeterministic(t *testing.T) {
	m := trainedModel()
	base := Classify("Dresdner Hiatt", m, DefaultScorer{})
	for i := 0; i < 20; i++ {
		got := Classify("Dresdner Hiatt", m, DefaultScorer{})
		require.Equal(t, base.Len(), got.Len())
		for j, c := range got.All() {
			want := base.All()[j]
			if c.Name != want.Name || math.Abs(c.Probability-want.Probability) > 0 {
				t.Fatalf("run %d: got %v want %v", i, c, want)
			}
		}
	}
}

func TestEqualizingScorerCompensatesImbalance(t *testing.T) {
	b := dictionary.NewBuilder(features.Words(1, 1, false))
	for i := 0; i < 9; i++ {
		b.Add("said mayor", "PER")
	}
	b.Add("mayor of", "LOC")
	m := b.Build(1)

	// "mayor" is seen 9 times with PER and once with LOC, but LOC has a
	// single instance, so its rate is just as high
	plain := Classify("mayor", m, DefaultScorer{})
	equal := Classify("mayor", m, EqualizingScorer{})

	assert.Equal(t, "PER", plain.MostLikelyName())
	assert.InDelta(t, 0.5, equal.Probability("PER"), 1e-9)
	assert.InDelta(t, 0.5, equal.Probability("LOC"), 1e-9)
}
