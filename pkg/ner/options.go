package ner

import (
	"log/slog"
	"math/rand/v2"
)

type options struct {
	logger *slog.Logger
	rng    *rand.Rand
	stages *Stages
}

// Option configures a Trainer or a Tagger.
type Option func(*options)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithRand sets the random source used to equalize category counts. The
// default is seeded from Settings.Seed.
func WithRand(r *rand.Rand) Option {
	return func(o *options) { o.rng = r }
}

// WithStages overrides the stage toggles stored in the model.
func WithStages(s Stages) Option {
	return func(o *options) { o.stages = &s }
}

func newOptions(opts []Option) options {
	o := options{logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
