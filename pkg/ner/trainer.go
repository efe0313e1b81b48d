package ner

import (
	"context"
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/orsinium-labs/stopwords"

	"github.com/kittclouds/palladian/pkg/annotation"
	"github.com/kittclouds/palladian/pkg/corpus"
	"github.com/kittclouds/palladian/pkg/dictionary"
	"github.com/kittclouds/palladian/pkg/tagger"
	"github.com/kittclouds/palladian/pkg/tokenizer"
)

// Trainer builds models. A Trainer can be reused; every call to Train
// starts from scratch.
type Trainer struct {
	settings  Settings
	opts      options
	stopwords *stopwords.Stopwords
	english   *tagger.EnglishTagger
}

// NewTrainer validates settings and creates a trainer.
func NewTrainer(settings Settings, opts ...Option) (*Trainer, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	o := newOptions(opts)
	if o.rng == nil {
		seed := uint64(settings.Seed)
		o.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
	return &Trainer{
		settings:  settings,
		opts:      o,
		stopwords: stopwords.MustGet("en"),
		english:   tagger.NewEnglishTagger(),
	}, nil
}

// instance is one training example of a dictionary.
type instance struct {
	text string
	tag  string
}

// trainingDoc is a corpus document with the seed occurrences found in it.
type trainingDoc struct {
	corpus.Document
	text  *annotation.Text
	spans []annotation.Annotation // gold annotations and located seeds
}

// Train builds a model from tagged documents and seed entities. Either may
// be empty, not both. In complete mode the annotation dictionary is trained
// a second time with the false positives the first model produces on docs.
func (t *Trainer) Train(ctx context.Context, docs []corpus.Document, seeds []corpus.Seed) (*Model, error) {
	if len(docs) == 0 && len(seeds) == 0 {
		return nil, ErrNoTrainingData
	}
	s := t.settings
	log := t.opts.logger

	training := make([]trainingDoc, 0, len(docs))
	located := 0
	for _, d := range docs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		found := locateSeeds(d.Text, seeds, d.Annotations)
		located += len(found)
		spans := annotation.Dedupe(append(slices.Clone(d.Annotations), found...))
		training = append(training, trainingDoc{Document: d, text: annotation.NewText(d.Text), spans: spans})
	}
	log.Info("training", "mode", s.LanguageMode, "training_mode", s.TrainingMode,
		"documents", len(docs), "seeds", len(seeds), "located_seeds", located)

	annotations := dictionary.NewBuilder(s.AnnotationFeatures)
	for _, in := range t.equalize(t.annotationInstances(training, seeds)) {
		annotations.Add(in.text, in.tag)
	}
	if s.LanguageMode == English && s.Stages.StopwordNegatives {
		n := t.addStopwordNegatives(annotations, training, seeds)
		log.Debug("stopword negatives", "count", n)
	}

	entities, err := t.entityDictionary(docs, seeds)
	if err != nil {
		return nil, err
	}

	contexts := dictionary.NewBuilder(s.ContextFeatures)
	for _, in := range t.equalize(t.contextInstances(training)) {
		contexts.Add(in.text, in.tag)
	}

	m := &Model{
		settings:          s,
		annotations:       annotations.Build(s.AnnotationMinCount),
		entities:          entities,
		contexts:          contexts.Build(s.MinDictionaryCount),
		leftContexts:      t.leftContexts(training),
		caseDictionary:    make(map[string]struct{}),
		removeAnnotations: make(map[string]struct{}),
	}
	if s.LanguageMode == English {
		cc := newCaseCounter()
		for _, d := range training {
			cc.add(d.Text)
		}
		m.caseDictionary = cc.build()
	}
	log.Info("trained dictionaries",
		"annotation_terms", m.annotations.NumTerms(),
		"entities", m.entities.Len(),
		"context_terms", m.contexts.NumTerms(),
		"left_contexts", len(m.leftContexts),
		"case_dictionary", len(m.caseDictionary))

	if s.TrainingMode != Complete || len(docs) == 0 {
		return m, nil
	}
	return t.retrain(ctx, m, annotations, training, seeds)
}

// retrain tags the training documents with m and feeds every prediction
// without any gold overlap back as a negative example. Values never seen
// in the gold data are blacklisted. Only the annotation dictionary is
// rebuilt.
func (t *Trainer) retrain(ctx context.Context, m *Model, annotations *dictionary.Builder, docs []trainingDoc, seeds []corpus.Seed) (*Model, error) {
	stages := m.settings.Stages
	stages.TagDates, stages.TagURLs = false, false
	tg := NewTagger(m, WithLogger(t.opts.logger), WithStages(stages))

	eval := NewEvaluation()
	for _, d := range docs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		eval.EvaluateDocument(annotation.Plain(tg.annotate(m, d.Text)), d.spans)
	}

	gold := make(map[string]struct{})
	for _, d := range docs {
		for _, a := range d.spans {
			gold[strings.ToLower(a.Value)] = struct{}{}
		}
	}
	for _, sd := range seeds {
		gold[strings.ToLower(sd.Value)] = struct{}{}
	}

	remove := make(map[string]struct{})
	errs := eval.Errors(Error1)
	for _, e := range errs {
		annotations.Add(e.Predicted.Value, NoEntity)
		lower := strings.ToLower(e.Predicted.Value)
		if _, ok := gold[lower]; !ok {
			remove[lower] = struct{}{}
		}
	}
	t.opts.logger.Info("retrained annotation dictionary",
		"false_positives", len(errs), "remove_annotations", len(remove),
		"first_pass_f1", eval.F1(Exact, ""))

	return m.withAnnotations(annotations.Build(m.settings.AnnotationMinCount), remove), nil
}

// annotationInstances returns the examples of the annotation dictionary:
// whole entity values in English mode, tokens (including outside tokens)
// in language independent mode. Every seed counts once.
func (t *Trainer) annotationInstances(docs []trainingDoc, seeds []corpus.Seed) []instance {
	var out []instance
	for _, d := range docs {
		if t.settings.LanguageMode == English {
			for _, a := range d.Annotations {
				out = append(out, instance{a.Value, a.Tag})
			}
			continue
		}
		for _, tok := range d.Tokens {
			out = append(out, instance{tok.Value, tok.Tag})
		}
	}
	for _, sd := range seeds {
		if t.settings.LanguageMode == English {
			out = append(out, instance{sd.Value, sd.Tag})
			continue
		}
		for _, f := range tokenizer.Fields(sd.Value) {
			out = append(out, instance{f.Value, sd.Tag})
		}
	}
	return out
}

// addStopwordNegatives trains single word candidates of the training texts
// that are stopwords ("The", "This") as NoEntity.
func (t *Trainer) addStopwordNegatives(b *dictionary.Builder, docs []trainingDoc, seeds []corpus.Seed) int {
	gold := make(map[string]struct{})
	for _, d := range docs {
		for _, a := range d.spans {
			gold[strings.ToLower(a.Value)] = struct{}{}
		}
	}
	for _, sd := range seeds {
		gold[strings.ToLower(sd.Value)] = struct{}{}
	}

	n := 0
	for _, d := range docs {
		for _, c := range t.english.Tag(d.Text) {
			lower := strings.ToLower(c.Value)
			if _, ok := gold[lower]; ok || strings.ContainsFunc(c.Value, unicode.IsSpace) {
				continue
			}
			if t.stopwords.Contains(lower) {
				b.Add(c.Value, NoEntity)
				n++
			}
		}
	}
	return n
}

func (t *Trainer) entityDictionary(docs []corpus.Document, seeds []corpus.Seed) (*dictionary.EntityDictionary, error) {
	b := dictionary.NewEntityBuilder()
	for _, d := range docs {
		for _, a := range d.Annotations {
			b.AddTerm(dictionary.Key(a.Value), a.Tag)
		}
	}
	for _, sd := range seeds {
		b.AddTerm(dictionary.Key(sd.Value), sd.Tag)
	}
	entities, err := dictionary.NewEntityDictionary(b.Build(t.settings.EntityMinCount), t.settings.ConceptLikelihoodOrder)
	if err != nil {
		return nil, fmt.Errorf("ner: build entity dictionary: %w", err)
	}
	return entities, nil
}

// contextInstances returns the context window of every gold span and
// located seed, and in language independent mode of every token.
func (t *Trainer) contextInstances(docs []trainingDoc) []instance {
	size := t.settings.WindowSize
	var out []instance
	for _, d := range docs {
		spans := d.spans
		if t.settings.LanguageMode == LanguageIndependent {
			spans = annotation.Dedupe(append(slices.Clone(d.Tokens), d.spans...))
		}
		for _, a := range spans {
			out = append(out, instance{contextWindow(d.text, a, size), a.Tag})
		}
	}
	return out
}

func (t *Trainer) leftContexts(docs []trainingDoc) map[string]struct{} {
	outside := make(map[string]int)
	inside := make(map[string]int)
	for _, d := range docs {
		text := d.Text
		tokens := tokenizer.Tokenize(text)
		for _, a := range d.spans {
			for _, p := range leftPhrases(text, tokens, byteOffset(text, a.Start)) {
				outside[p]++
			}
			for _, p := range insidePhrases(a.Value) {
				inside[p]++
			}
		}
	}
	return selectLeftContexts(outside, inside, t.settings.MinDictionaryCount)
}

// equalize samples every category down to the size of the smallest one
// when EqualizeTypeCounts is set in English mode. Each category is sampled
// with reservoir sampling; the kept instances stay in input order.
func (t *Trainer) equalize(in []instance) []instance {
	if !t.settings.EqualizeTypeCounts || t.settings.LanguageMode != English || len(in) == 0 {
		return in
	}

	byTag := make(map[string][]int)
	for i, x := range in {
		byTag[x.tag] = append(byTag[x.tag], i)
	}
	smallest := len(in)
	for _, idx := range byTag {
		smallest = min(smallest, len(idx))
	}

	var keep []int
	tags := make([]string, 0, len(byTag))
	for tag := range byTag {
		tags = append(tags, tag)
	}
	slices.Sort(tags)
	for _, tag := range tags {
		keep = append(keep, reservoir(byTag[tag], smallest, t.opts.rng)...)
	}
	slices.Sort(keep)

	out := make([]instance, len(keep))
	for i, k := range keep {
		out[i] = in[k]
	}
	return out
}

// reservoir draws k items of population uniformly.
func reservoir(population []int, k int, rng *rand.Rand) []int {
	if k >= len(population) {
		return slices.Clone(population)
	}
	sample := slices.Clone(population[:k])
	for i := k; i < len(population); i++ {
		if j := rng.IntN(i + 1); j < k {
			sample[j] = population[i]
		}
	}
	return sample
}

// locateSeeds finds the whole word occurrences of the seeds in text that do
// not overlap a gold annotation.
func locateSeeds(text string, seeds []corpus.Seed, gold []annotation.Annotation) []annotation.Annotation {
	var out []annotation.Annotation
	for _, sd := range seeds {
		if sd.Value == "" {
			continue
		}
		for from := 0; from < len(text); {
			i := strings.Index(text[from:], sd.Value)
			if i < 0 {
				break
			}
			start := from + i
			end := start + len(sd.Value)
			from = end
			if !wordBoundary(text, start, end) {
				continue
			}
			a := annotation.New(annotation.UTF16Len(text[:start]), sd.Value, sd.Tag)
			if slices.ContainsFunc(gold, a.Overlaps) {
				continue
			}
			out = append(out, a)
		}
	}
	return out
}

func wordBoundary(text string, start, end int) bool {
	if start > 0 {
		r, _ := utf8.DecodeLastRuneInString(text[:start])
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return false
		}
	}
	if end < len(text) {
		r, _ := utf8.DecodeRuneInString(text[end:])
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// byteOffset converts a UTF-16 offset into a byte offset of text.
func byteOffset(text string, units int) int {
	n := 0
	for i, r := range text {
		if n >= units {
			return i
		}
		if r >= 0x10000 {
			n += 2
		} else {
			n++
		}
	}
	return len(text)
}
