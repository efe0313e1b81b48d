// Package corpus reads tagged training and evaluation data: column files
// with one token and its tag per line, and seed lists of known entities.
package corpus

import (
	"log/slog"

	"github.com/kittclouds/palladian/pkg/annotation"
)

// Document is one tagged text. Text is rebuilt from the tokens: tokens of a
// sentence are joined by a space, sentences by a newline.
type Document struct {
	Source string
	Text   string
	// Tokens carries every token with its entity type, OutsideTag for
	// tokens outside of any entity.
	Tokens []annotation.Annotation
	// Annotations are the gold entity spans.
	Annotations []annotation.Annotation
}

// Seed is a known entity name with its type.
type Seed struct {
	Value string `json:"value" yaml:"value"`
	Tag   string `json:"tag" yaml:"tag"`
}

// Stats summarizes what a reader consumed.
type Stats struct {
	Documents   int `json:"documents" yaml:"documents"`
	Sentences   int `json:"sentences" yaml:"sentences"`
	Tokens      int `json:"tokens" yaml:"tokens"`
	Annotations int `json:"annotations" yaml:"annotations"`
	Skipped     int `json:"skipped" yaml:"skipped"`
}

type options struct {
	logger *slog.Logger
}

// Option configures the readers.
type Option func(*options)

// WithLogger sets the logger that reports skipped lines.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

func newOptions(opts []Option) options {
	o := options{logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
