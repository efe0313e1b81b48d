package ner

import (
	"context"
	"log/slog"
	"strings"
	"sync/atomic"

	"github.com/kittclouds/palladian/pkg/annotation"
	"github.com/kittclouds/palladian/pkg/classifier"
	"github.com/kittclouds/palladian/pkg/tagger"
)

// Tagger annotates texts with a trained Model. It is safe for concurrent
// use; SetModel swaps the model atomically while tagging continues.
type Tagger struct {
	model   atomic.Pointer[Model]
	english *tagger.EnglishTagger
	tokens  tagger.TokenTagger
	opts    options
}

// NewTagger creates a tagger. model may be nil and set later.
func NewTagger(model *Model, opts ...Option) *Tagger {
	t := &Tagger{english: tagger.NewEnglishTagger(), opts: newOptions(opts)}
	if model != nil {
		t.model.Store(model)
	}
	return t
}

// SetModel replaces the model used by subsequent calls.
func (t *Tagger) SetModel(m *Model) { t.model.Store(m) }

// Model returns the current model, or nil.
func (t *Tagger) Model() *Model { return t.model.Load() }

// GetAnnotations returns the classified entities of text ordered by
// position. The result depends on nothing but text and the model.
func (t *Tagger) GetAnnotations(text string) ([]annotation.ClassifiedAnnotation, error) {
	m := t.model.Load()
	if m == nil {
		return nil, ErrModelNotLoaded
	}
	return t.annotate(m, text), nil
}

func (t *Tagger) stages(m *Model) Stages {
	if t.opts.stages != nil {
		return *t.opts.stages
	}
	return m.settings.Stages
}

func (t *Tagger) candidates(m *Model, text string) []annotation.Annotation {
	var cands []annotation.Annotation
	if m.settings.LanguageMode == English {
		cands = t.english.Tag(text)
	} else {
		cands = t.tokens.Tag(text)
	}

	stages := t.stages(m)
	for _, s := range preStages {
		if !s.enabled(stages) {
			continue
		}
		before := len(cands)
		cands = s.run(m, cands)
		t.opts.logger.Debug("pre-processing", "stage", s.name, "before", before, "after", len(cands))
	}
	return cands
}

// classify scores each candidate against the annotation dictionary and drops
// the ones that are more likely no entity at all.
func (t *Tagger) classify(m *Model, cands []annotation.Annotation) []annotation.ClassifiedAnnotation {
	out := make([]annotation.ClassifiedAnnotation, 0, len(cands))
	for _, c := range cands {
		entries := classifier.Classify(c.Value, m.annotations, classifier.DefaultScorer{})
		if entries.Probability(NoEntity) >= noEntityThreshold {
			continue
		}
		out = append(out, annotation.Classify(c, entries.Without(NoEntity)))
	}
	return out
}

func (t *Tagger) annotate(m *Model, raw string) []annotation.ClassifiedAnnotation {
	text := annotation.NewText(raw)
	stages := t.stages(m)

	classified := t.classify(m, t.candidates(m, raw))
	if stages.SwitchTagsWithContext {
		classified = switchTagsWithContext(m, text, classified)
	}
	if stages.EntityDictionaryOverride {
		classified = overrideWithEntities(m, classified)
	}
	if m.settings.LanguageMode == LanguageIndependent {
		classified = combineAdjacent(text, classified)
	}

	out := finalize(classified, fixed(extras(stages).Tag(raw)))

	if t.opts.logger.Enabled(context.Background(), slog.LevelDebug) {
		t.opts.logger.Debug("annotated", "candidates", len(classified), "annotations", len(out), "text", preview(raw))
	}
	return out
}

// extras returns the rule based taggers enabled by stages.
func extras(stages Stages) tagger.Tagger {
	var ts []tagger.Tagger
	if stages.TagDates {
		ts = append(ts, tagger.DateTagger{})
	}
	if stages.TagURLs {
		ts = append(ts, tagger.URLTagger{})
	}
	return tagger.Multi(ts...)
}

// fixed classifies annotations of the rule based taggers with certainty.
func fixed(as []annotation.Annotation) []annotation.ClassifiedAnnotation {
	out := make([]annotation.ClassifiedAnnotation, len(as))
	for i, a := range as {
		out[i] = annotation.Classify(a, annotation.Single(a.Tag))
	}
	return out
}

func preview(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if r := []rune(s); len(r) > 60 {
		return string(r[:60]) + "..."
	}
	return s
}
