package ner

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/kittclouds/palladian/pkg/dictionary"
)

// Model is a trained recognizer. It is never modified once built; retraining
// produces a new Model.
type Model struct {
	settings          Settings
	annotations       *dictionary.Model
	entities          *dictionary.EntityDictionary
	contexts          *dictionary.Model
	leftContexts      map[string]struct{}
	caseDictionary    map[string]struct{}
	removeAnnotations map[string]struct{}
}

// Settings returns the settings the model was trained with.
func (m *Model) Settings() Settings { return m.settings }

// LanguageMode returns the candidate generation mode.
func (m *Model) LanguageMode() LanguageMode { return m.settings.LanguageMode }

// TrainingMode returns the mode the model was trained in.
func (m *Model) TrainingMode() TrainingMode { return m.settings.TrainingMode }

// Annotations returns the annotation dictionary.
func (m *Model) Annotations() *dictionary.Model { return m.annotations }

// Entities returns the entity dictionary.
func (m *Model) Entities() *dictionary.EntityDictionary { return m.entities }

// Contexts returns the context dictionary.
func (m *Model) Contexts() *dictionary.Model { return m.contexts }

// LeftContexts returns the left context phrases in sorted order.
func (m *Model) LeftContexts() []string { return sortedSet(m.leftContexts) }

// CaseDictionary returns the lowercase forms known to be usually lowercase.
func (m *Model) CaseDictionary() []string { return sortedSet(m.caseDictionary) }

// RemoveAnnotations returns the lowercase values blacklisted by complete
// training.
func (m *Model) RemoveAnnotations() []string { return sortedSet(m.removeAnnotations) }

func (m *Model) isLeftContext(phrase string) bool {
	_, ok := m.leftContexts[phrase]
	return ok
}

func (m *Model) inCaseDictionary(token string) bool {
	_, ok := m.caseDictionary[strings.ToLower(token)]
	return ok
}

func (m *Model) isRemoved(value string) bool {
	_, ok := m.removeAnnotations[strings.ToLower(value)]
	return ok
}

// withAnnotations returns a copy of m using a rebuilt annotation dictionary
// and blacklist.
func (m *Model) withAnnotations(annotations *dictionary.Model, remove map[string]struct{}) *Model {
	c := *m
	c.annotations = annotations
	c.removeAnnotations = remove
	return &c
}

// Summary describes the size of a model.
type Summary struct {
	LanguageMode      LanguageMode `json:"language_mode" yaml:"language_mode"`
	TrainingMode      TrainingMode `json:"training_mode" yaml:"training_mode"`
	Categories        []string     `json:"categories" yaml:"categories"`
	AnnotationTerms   int          `json:"annotation_terms" yaml:"annotation_terms"`
	AnnotationDocs    int          `json:"annotation_instances" yaml:"annotation_instances"`
	Entities          int          `json:"entities" yaml:"entities"`
	ContextTerms      int          `json:"context_terms" yaml:"context_terms"`
	LeftContexts      int          `json:"left_contexts" yaml:"left_contexts"`
	CaseDictionary    int          `json:"case_dictionary" yaml:"case_dictionary"`
	RemoveAnnotations int          `json:"remove_annotations" yaml:"remove_annotations"`
}

// Summary reports the size of every part of the model.
func (m *Model) Summary() Summary {
	return Summary{
		LanguageMode:      m.settings.LanguageMode,
		TrainingMode:      m.settings.TrainingMode,
		Categories:        m.annotations.Categories(),
		AnnotationTerms:   m.annotations.NumTerms(),
		AnnotationDocs:    m.annotations.Documents(),
		Entities:          m.entities.Len(),
		ContextTerms:      m.contexts.NumTerms(),
		LeftContexts:      len(m.leftContexts),
		CaseDictionary:    len(m.caseDictionary),
		RemoveAnnotations: len(m.removeAnnotations),
	}
}

type modelSnapshot struct {
	Settings          Settings                     `json:"settings"`
	Annotations       *dictionary.Model            `json:"annotations"`
	Entities          *dictionary.EntityDictionary `json:"entities"`
	Contexts          *dictionary.Model            `json:"contexts"`
	LeftContexts      []string                     `json:"left_contexts"`
	CaseDictionary    []string                     `json:"case_dictionary"`
	RemoveAnnotations []string                     `json:"remove_annotations"`
}

func (m *Model) MarshalJSON() ([]byte, error) {
	return json.Marshal(modelSnapshot{
		Settings:          m.settings,
		Annotations:       m.annotations,
		Entities:          m.entities,
		Contexts:          m.contexts,
		LeftContexts:      m.LeftContexts(),
		CaseDictionary:    m.CaseDictionary(),
		RemoveAnnotations: m.RemoveAnnotations(),
	})
}

func (m *Model) UnmarshalJSON(data []byte) error {
	var s modelSnapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("ner: decode model: %w", err)
	}
	if s.Annotations == nil || s.Entities == nil || s.Contexts == nil {
		return fmt.Errorf("ner: decode model: missing dictionary")
	}
	*m = Model{
		settings:          s.Settings,
		annotations:       s.Annotations,
		entities:          s.Entities,
		contexts:          s.Contexts,
		leftContexts:      toSet(s.LeftContexts),
		caseDictionary:    toSet(s.CaseDictionary),
		removeAnnotations: toSet(s.RemoveAnnotations),
	}
	return nil
}

func toSet(values []string) map[string]struct{} {
	out := make(map[string]struct{}, len(values))
	for _, v := range values {
		out[v] = struct{}{}
	}
	return out
}

func sortedSet(set map[string]struct{}) []string {
	return slices.Sorted(maps.Keys(set))
}
