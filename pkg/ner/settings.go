package ner

import (
	"fmt"

	"github.com/kittclouds/palladian/pkg/features"
)

// LanguageMode selects the candidate generation strategy.
type LanguageMode string

const (
	// English uses capitalization to find candidates and enables the
	// English correction heuristics.
	English LanguageMode = "english"
	// LanguageIndependent makes every token a candidate and merges adjacent
	// tokens of the same type after classification.
	LanguageIndependent LanguageMode = "language_independent"
)

// TrainingMode selects the number of training passes.
type TrainingMode string

const (
	// Sparse trains once.
	Sparse TrainingMode = "sparse"
	// Complete tags the training data with the first model and retrains the
	// annotation dictionary with the false positives it produced.
	Complete TrainingMode = "complete"
)

// Stages toggles the individual pre and post processing steps.
type Stages struct {
	RemoveTrainingErrors      bool `json:"remove_training_errors" mapstructure:"remove_training_errors" yaml:"remove_training_errors"`
	UnwrapUppercase           bool `json:"unwrap_uppercase" mapstructure:"unwrap_uppercase" yaml:"unwrap_uppercase"`
	UnwrapLeftContext         bool `json:"unwrap_left_context" mapstructure:"unwrap_left_context" yaml:"unwrap_left_context"`
	RemoveDateFragments       bool `json:"remove_date_fragments" mapstructure:"remove_date_fragments" yaml:"remove_date_fragments"`
	RemoveSentenceStartErrors bool `json:"remove_sentence_start_errors" mapstructure:"remove_sentence_start_errors" yaml:"remove_sentence_start_errors"`
	FixStartErrors            bool `json:"fix_start_errors" mapstructure:"fix_start_errors" yaml:"fix_start_errors"`
	RemoveDateEntries         bool `json:"remove_date_entries" mapstructure:"remove_date_entries" yaml:"remove_date_entries"`
	SwitchTagsWithContext     bool `json:"switch_tags_with_context" mapstructure:"switch_tags_with_context" yaml:"switch_tags_with_context"`
	EntityDictionaryOverride  bool `json:"entity_dictionary_override" mapstructure:"entity_dictionary_override" yaml:"entity_dictionary_override"`
	StopwordNegatives         bool `json:"stopword_negatives" mapstructure:"stopword_negatives" yaml:"stopword_negatives"`
	TagDates                  bool `json:"tag_dates" mapstructure:"tag_dates" yaml:"tag_dates"`
	TagURLs                   bool `json:"tag_urls" mapstructure:"tag_urls" yaml:"tag_urls"`
}

// Settings configures training and tagging. A model keeps the settings it
// was trained with.
type Settings struct {
	LanguageMode           LanguageMode     `json:"language_mode" mapstructure:"language_mode" yaml:"language_mode"`
	TrainingMode           TrainingMode     `json:"training_mode" mapstructure:"training_mode" yaml:"training_mode"`
	WindowSize             int              `json:"window_size" mapstructure:"window_size" yaml:"window_size"`
	MinDictionaryCount     int              `json:"min_dictionary_count" mapstructure:"min_dictionary_count" yaml:"min_dictionary_count"`
	EntityMinCount         int              `json:"entity_min_count" mapstructure:"entity_min_count" yaml:"entity_min_count"`
	AnnotationMinCount     int              `json:"annotation_min_count" mapstructure:"annotation_min_count" yaml:"annotation_min_count"`
	EqualizeTypeCounts     bool             `json:"equalize_type_counts" mapstructure:"equalize_type_counts" yaml:"equalize_type_counts"`
	Seed                   int64            `json:"seed" mapstructure:"seed" yaml:"seed"`
	ConceptLikelihoodOrder []string         `json:"concept_likelihood_order,omitempty" mapstructure:"concept_likelihood_order" yaml:"concept_likelihood_order"`
	AnnotationFeatures     features.Setting `json:"annotation_features" mapstructure:"annotation_features" yaml:"annotation_features"`
	ContextFeatures        features.Setting `json:"context_features" mapstructure:"context_features" yaml:"context_features"`
	Stages                 Stages           `json:"stages" mapstructure:"stages" yaml:"stages"`
}

// DefaultSettings returns the settings for mode. English enables every
// stage; the language independent mode leaves out the heuristics that rely
// on English capitalization and dates.
func DefaultSettings(mode LanguageMode) Settings {
	s := Settings{
		LanguageMode:       mode,
		TrainingMode:       Sparse,
		WindowSize:         DefaultWindowSize,
		MinDictionaryCount: 1,
		EntityMinCount:     1,
		AnnotationMinCount: 1,
		Seed:               1,
		AnnotationFeatures: features.Chars(3, 8, true),
		ContextFeatures:    features.Words(1, 2, false),
		Stages: Stages{
			RemoveTrainingErrors:     true,
			SwitchTagsWithContext:    true,
			EntityDictionaryOverride: true,
			TagDates:                 true,
			TagURLs:                  true,
		},
	}
	if mode == English {
		s.Stages.UnwrapUppercase = true
		s.Stages.UnwrapLeftContext = true
		s.Stages.RemoveDateFragments = true
		s.Stages.RemoveSentenceStartErrors = true
		s.Stages.FixStartErrors = true
		s.Stages.RemoveDateEntries = true
		s.Stages.StopwordNegatives = true
	}
	return s
}

// Validate checks the settings for values training cannot work with.
func (s Settings) Validate() error {
	switch s.LanguageMode {
	case English, LanguageIndependent:
	default:
		return fmt.Errorf("ner: unknown language mode %q", s.LanguageMode)
	}
	switch s.TrainingMode {
	case Sparse, Complete:
	default:
		return fmt.Errorf("ner: unknown training mode %q", s.TrainingMode)
	}
	if s.WindowSize < 1 {
		return fmt.Errorf("ner: window size must be positive, got %d", s.WindowSize)
	}
	if s.MinDictionaryCount < 0 || s.EntityMinCount < 0 || s.AnnotationMinCount < 0 {
		return fmt.Errorf("ner: minimum counts must not be negative")
	}
	if err := s.AnnotationFeatures.Validate(); err != nil {
		return fmt.Errorf("ner: annotation features: %w", err)
	}
	if err := s.ContextFeatures.Validate(); err != nil {
		return fmt.Errorf("ner: context features: %w", err)
	}
	return nil
}
