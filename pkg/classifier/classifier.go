// Package classifier scores texts against a dictionary model.
package classifier

import (
	"github.com/kittclouds/palladian/pkg/annotation"
	"github.com/kittclouds/palladian/pkg/dictionary"
	"github.com/kittclouds/palladian/pkg/features"
	"github.com/kittclouds/palladian/pkg/pool"
)

// Scorer turns the features of one text into raw category scores.
type Scorer interface {
	Score(fs []features.Feature, model *dictionary.Model) map[string]float64
}

// Classify extracts the model's feature family from text, scores it and
// returns the normalized distribution. Unknown features are ignored; a text
// without any known feature yields empty entries.
func Classify(text string, model *dictionary.Model, scorer Scorer) annotation.CategoryEntries {
	if model == nil || text == "" {
		return annotation.CategoryEntries{}
	}
	if scorer == nil {
		scorer = DefaultScorer{}
	}

	counts := pool.GetCounts()
	defer pool.PutCounts(counts)
	model.Setting().ExtractInto(text, counts)

	return annotation.Normalize(scorer.Score(features.Sorted(counts), model))
}

// DefaultScorer sums the squared term-category probabilities, weighted by
// the frequency of the term in the text. Squaring favors terms that are
// specific to one category.
type DefaultScorer struct{}

func (DefaultScorer) Score(fs []features.Feature, model *dictionary.Model) map[string]float64 {
	scores := make(map[string]float64)
	for _, f := range fs {
		counts, ok := model.Lookup(f.Term)
		if !ok {
			continue
		}
		total := 0
		for _, n := range counts {
			total += n
		}
		for category, n := range counts {
			p := float64(n) / float64(total)
			scores[category] += p * p * float64(f.Count)
		}
	}
	return scores
}

// EqualizingScorer compensates for category-size imbalance: term counts are
// divided by the size of their category before they are turned into
// probabilities, so a large category does not win on volume alone.
type EqualizingScorer struct{}

func (EqualizingScorer) Score(fs []features.Feature, model *dictionary.Model) map[string]float64 {
	scores := make(map[string]float64)
	for _, f := range fs {
		counts, ok := model.Lookup(f.Term)
		if !ok {
			continue
		}
		rates := make(map[string]float64, len(counts))
		var sum float64
		for _, category := range sortedKeys(counts) {
			size := model.CategoryCount(category)
			if size == 0 {
				continue
			}
			r := float64(counts[category]) / float64(size)
			rates[category] = r
			sum += r
		}
		if sum == 0 {
			continue
		}
		for category, r := range rates {
			scores[category] += r / sum * float64(f.Count)
		}
	}
	return scores
}
