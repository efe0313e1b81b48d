// Package store persists trained NER models in SQLite.
package store

import (
	"context"
	"errors"

	"github.com/kittclouds/palladian/pkg/ner"
)

// ErrModelNotFound is returned when no model has the requested name.
var ErrModelNotFound = errors.New("store: model not found")

// ModelInfo describes a stored model without its payload.
type ModelInfo struct {
	ID           string           `json:"id" yaml:"id"`
	Name         string           `json:"name" yaml:"name"`
	LanguageMode ner.LanguageMode `json:"languageMode" yaml:"language_mode"`
	TrainingMode ner.TrainingMode `json:"trainingMode" yaml:"training_mode"`
	CreatedAt    int64            `json:"createdAt" yaml:"created_at"`
	UpdatedAt    int64            `json:"updatedAt" yaml:"updated_at"`
}

// ModelStore is the persistence interface used by the CLI.
type ModelStore interface {
	SaveModel(ctx context.Context, name string, m *ner.Model) (ModelInfo, error)
	LoadModel(ctx context.Context, name string) (*ner.Model, error)
	ListModels(ctx context.Context) ([]ModelInfo, error)
	DeleteModel(ctx context.Context, name string) error
	Export(ctx context.Context) ([]byte, error)
	Import(ctx context.Context, data []byte) error
	Close() error
}
