package ner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kittclouds/palladian/pkg/features"
)

func TestDefaultSettings(t *testing.T) {
	en := DefaultSettings(English)
	require.NoError(t, en.Validate())
	assert.Equal(t, DefaultWindowSize, en.WindowSize)
	assert.Equal(t, features.Chars(3, 8, true), en.AnnotationFeatures)
	assert.Equal(t, features.Words(1, 2, false), en.ContextFeatures)
	assert.True(t, en.Stages.FixStartErrors)
	assert.True(t, en.Stages.StopwordNegatives)

	li := DefaultSettings(LanguageIndependent)
	require.NoError(t, li.Validate())
	assert.False(t, li.Stages.UnwrapUppercase)
	assert.False(t, li.Stages.RemoveSentenceStartErrors)
	assert.True(t, li.Stages.SwitchTagsWithContext)
}

func TestSettingsValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Settings)
	}{
		{"language", func(s *Settings) { s.LanguageMode = "klingon" }},
		{"training", func(s *Settings) { s.TrainingMode = "partial" }},
		{"window", func(s *Settings) { s.WindowSize = 0 }},
		{"counts", func(s *Settings) { s.EntityMinCount = -1 }},
		{"annotation features", func(s *Settings) { s.AnnotationFeatures.Min = 0 }},
		{"context features", func(s *Settings) { s.ContextFeatures.Type = "bytes" }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := DefaultSettings(English)
			tc.modify(&s)
			assert.Error(t, s.Validate())
		})
	}
}
