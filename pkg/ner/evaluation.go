package ner

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/kittclouds/palladian/pkg/annotation"
	"github.com/kittclouds/palladian/pkg/corpus"
)

// Outcome classifies one predicted or gold annotation.
type Outcome int

const (
	// Correct is a predicted span and tag equal to a gold annotation.
	Correct Outcome = iota
	// Error1 is a prediction that overlaps no gold annotation.
	Error1
	// Error2 is a gold annotation no prediction overlaps.
	Error2
	// Error3 is a correct span with the wrong tag.
	Error3
	// Error4 is an overlapping span with the correct tag.
	Error4
	// Error5 is an overlapping span with the wrong tag.
	Error5
)

var outcomeNames = [...]string{"CORRECT", "ERROR1", "ERROR2", "ERROR3", "ERROR4", "ERROR5"}

func (o Outcome) String() string {
	if o < 0 || int(o) >= len(outcomeNames) {
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
	return outcomeNames[o]
}

// Metric selects how partial matches are credited.
type Metric string

const (
	// Exact only credits correct spans with correct tags.
	Exact Metric = "exact"
	// MUC credits type and boundary separately.
	MUC Metric = "muc"
)

// Match records the outcome of one annotation. Predicted is empty for
// Error2, Gold is empty for Error1.
type Match struct {
	Outcome   Outcome               `json:"outcome" yaml:"outcome"`
	Predicted annotation.Annotation `json:"predicted" yaml:"predicted"`
	Gold      annotation.Annotation `json:"gold" yaml:"gold"`
}

// Evaluation accumulates outcomes over documents.
type Evaluation struct {
	Matches []Match

	assigned map[string]*[6]int // by predicted tag
	real     map[string]*[6]int // by gold tag
	gold     map[string]int
}

// NewEvaluation creates an empty evaluation.
func NewEvaluation() *Evaluation {
	return &Evaluation{
		assigned: make(map[string]*[6]int),
		real:     make(map[string]*[6]int),
		gold:     make(map[string]int),
	}
}

// EvaluateDocument compares the predictions for one text with its gold
// annotations and adds the outcomes to e.
func (e *Evaluation) EvaluateDocument(predicted, gold []annotation.Annotation) {
	pred := append([]annotation.Annotation(nil), predicted...)
	annotation.Sort(pred)
	matched := make([]bool, len(gold))

	for _, g := range gold {
		e.gold[g.Tag]++
	}

	for _, p := range pred {
		best := -1
		for i, g := range gold {
			if !p.Overlaps(g) {
				continue
			}
			if p.SameSpan(g) {
				best = i
				break
			}
			if best < 0 {
				best = i
			}
		}
		if best < 0 {
			e.add(Match{Outcome: Error1, Predicted: p})
			continue
		}

		g := gold[best]
		matched[best] = true
		switch {
		case p.SameSpan(g) && p.SameTag(g):
			e.add(Match{Outcome: Correct, Predicted: p, Gold: g})
		case p.SameSpan(g):
			e.add(Match{Outcome: Error3, Predicted: p, Gold: g})
		case p.SameTag(g):
			e.add(Match{Outcome: Error4, Predicted: p, Gold: g})
		default:
			e.add(Match{Outcome: Error5, Predicted: p, Gold: g})
		}
	}

	for i, g := range gold {
		if !matched[i] {
			e.add(Match{Outcome: Error2, Gold: g})
		}
	}
}

func (e *Evaluation) add(m Match) {
	e.Matches = append(e.Matches, m)
	if m.Outcome != Error2 {
		counter(e.assigned, m.Predicted.Tag)[m.Outcome]++
	}
	if m.Outcome != Error1 {
		counter(e.real, m.Gold.Tag)[m.Outcome]++
	}
}

func counter(m map[string]*[6]int, tag string) *[6]int {
	c, ok := m[tag]
	if !ok {
		c = new([6]int)
		m[tag] = c
	}
	return c
}

// Count returns how often outcome occurred.
func (e *Evaluation) Count(o Outcome) int {
	n := 0
	for _, m := range e.Matches {
		if m.Outcome == o {
			n++
		}
	}
	return n
}

// Errors returns the matches with the given outcome.
func (e *Evaluation) Errors(o Outcome) []Match {
	var out []Match
	for _, m := range e.Matches {
		if m.Outcome == o {
			out = append(out, m)
		}
	}
	return out
}

// Tags returns every tag seen in predictions or gold annotations.
func (e *Evaluation) Tags() []string {
	tags := make(map[string]struct{})
	for t := range e.assigned {
		tags[t] = struct{}{}
	}
	for t := range e.gold {
		tags[t] = struct{}{}
	}
	return slices.Sorted(maps.Keys(tags))
}

// Precision returns the precision for tag, or over all tags when tag is "".
func (e *Evaluation) Precision(metric Metric, tag string) float64 {
	c := e.sum(e.assigned, tag)
	correct, e1, e3, e4, e5 := float64(c[Correct]), float64(c[Error1]), float64(c[Error3]), float64(c[Error4]), float64(c[Error5])
	if metric == MUC {
		return ratio(2*correct+e3+e4, 2*(correct+e1+e3+e4+e5))
	}
	return ratio(correct, correct+e1+e3+e4+e5)
}

// Recall returns the recall for tag, or over all tags when tag is "".
func (e *Evaluation) Recall(metric Metric, tag string) float64 {
	c := e.sum(e.real, tag)
	gold := 0
	if tag == "" {
		for _, n := range e.gold {
			gold += n
		}
	} else {
		gold = e.gold[tag]
	}
	if metric == MUC {
		return ratio(float64(2*c[Correct]+c[Error3]+c[Error4]), float64(2*gold))
	}
	return ratio(float64(c[Correct]), float64(gold))
}

// F1 returns the harmonic mean of precision and recall.
func (e *Evaluation) F1(metric Metric, tag string) float64 {
	p, r := e.Precision(metric, tag), e.Recall(metric, tag)
	return ratio(2*p*r, p+r)
}

func (e *Evaluation) sum(m map[string]*[6]int, tag string) [6]int {
	var out [6]int
	for t, c := range m {
		if tag != "" && t != tag {
			continue
		}
		for i, n := range c {
			out[i] += n
		}
	}
	return out
}

func ratio(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	return a / b
}

// Score is the summary of an evaluation for one tag or overall.
type Score struct {
	Tag       string  `json:"tag" yaml:"tag"`
	Precision float64 `json:"precision" yaml:"precision"`
	Recall    float64 `json:"recall" yaml:"recall"`
	F1        float64 `json:"f1" yaml:"f1"`
}

// Scores returns the overall score followed by one score per tag.
func (e *Evaluation) Scores(metric Metric) []Score {
	tags := append([]string{""}, e.Tags()...)
	out := make([]Score, 0, len(tags))
	for _, t := range tags {
		name := t
		if name == "" {
			name = "ALL"
		}
		out = append(out, Score{
			Tag:       name,
			Precision: e.Precision(metric, t),
			Recall:    e.Recall(metric, t),
			F1:        e.F1(metric, t),
		})
	}
	return out
}

// Evaluate tags every document and compares the result with its gold
// annotations. It stops early when ctx is done.
func Evaluate(ctx context.Context, t *Tagger, docs []corpus.Document) (*Evaluation, error) {
	e := NewEvaluation()
	for _, d := range docs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		got, err := t.GetAnnotations(d.Text)
		if err != nil {
			return nil, fmt.Errorf("ner: evaluate %s: %w", d.Source, err)
		}
		e.EvaluateDocument(annotation.Plain(got), d.Annotations)
	}
	return e, nil
}
