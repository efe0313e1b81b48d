// Package ner implements a dictionary driven named entity recognizer.
//
// Training builds an immutable Model from a tagged corpus and seed entities:
// an n-gram annotation dictionary, a dictionary of whole entity values, a
// context dictionary over the text surrounding each entity, a set of left
// context phrases and a case dictionary. Tagging generates candidate spans,
// corrects them with a fixed sequence of pre-processing stages, classifies
// them against the annotation dictionary and refines the result with the
// post-processing stages.
package ner

import "errors"

// NoEntity is the pseudo category of instances known not to be entities.
const NoEntity = "###NO_ENTITY###"

// DefaultWindowSize is the number of UTF-16 units taken from each side of an
// annotation to build its context.
const DefaultWindowSize = 40

// noEntityThreshold rejects candidates at least this likely to be NoEntity.
const noEntityThreshold = 0.5

var (
	// ErrModelNotLoaded is returned when tagging is attempted without a model.
	ErrModelNotLoaded = errors.New("ner: model not loaded")
	// ErrNoTrainingData is returned when neither documents nor seeds are given.
	ErrNoTrainingData = errors.New("ner: no training data")
)
