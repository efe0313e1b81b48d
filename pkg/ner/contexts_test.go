package ner

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kittclouds/palladian/pkg/annotation"
	"github.com/kittclouds/palladian/pkg/tokenizer"
)

func TestContextWindow(t *testing.T) {
	raw := "Angela Merkel visited Dresden yesterday."
	text := annotation.NewText(raw)
	a := annotation.New(22, "Dresden", "LOC")

	assert.Equal(t, "visited   yesterd", contextWindow(text, a, 8))
	assert.Equal(t, "Angela Merkel visited   yesterday.", contextWindow(text, a, 100))
}

func TestLeftPhrases(t *testing.T) {
	phrases := func(raw, entity string) []string {
		return leftPhrases(raw, tokenizer.Tokenize(raw), strings.Index(raw, entity))
	}

	assert.Equal(t, []string{"President", "US President", "Yesterday US President"},
		phrases("Yesterday US President Barack Obama said", "Barack"))
	assert.Equal(t, []string{"President"}, phrases("the President Obama", "Obama"))
	assert.Empty(t, phrases("Berlin, Obama", "Obama"))
	assert.Empty(t, phrases("Obama", "Obama"))
	assert.Empty(t, phrases("President\nObama", "Obama"))
}

func TestInsidePhrases(t *testing.T) {
	assert.Equal(t, []string{"Prime", "Prime Minister", "Prime Minister Theresa"}, insidePhrases("Prime Minister Theresa May"))
	assert.Equal(t, []string{"Obama"}, insidePhrases("Obama"))
}

func TestSelectLeftContexts(t *testing.T) {
	outside := map[string]int{"President": 5, "Mr": 1, "Minister": 2, "Chancellor": 3}
	inside := map[string]int{"President": 1, "Mr": 5, "Minister": 2}

	got := selectLeftContexts(outside, inside, 1)
	assert.Equal(t, set("President", "Chancellor"), got)

	assert.Empty(t, selectLeftContexts(outside, inside, 10))
}

func TestCaseDictionary(t *testing.T) {
	cc := newCaseCounter()
	cc.add("Then the Who played. We saw The Who and the crowd.")
	// "The" after a line break opens a sentence
	cc.add("A cat\nThe dog")
	got := cc.build()

	for _, w := range []string{"the", "saw", "played", "and", "crowd", "cat", "dog"} {
		assert.Contains(t, got, w)
	}
	for _, w := range []string{"who", "then", "we", "a"} {
		assert.NotContains(t, got, w)
	}
}
