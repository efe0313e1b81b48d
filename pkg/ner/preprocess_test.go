package ner

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kittclouds/palladian/pkg/annotation"
)

func cand(start int, value string) annotation.Annotation {
	return annotation.New(start, value, annotation.CandidateTag)
}

func TestRemoveTrainingErrors(t *testing.T) {
	m := stageModel(t, nil)
	m.removeAnnotations = set("the times")

	got := removeTrainingErrors(m, []annotation.Annotation{cand(0, "The Times"), cand(20, "Berlin")})
	assert.Equal(t, []annotation.Annotation{cand(20, "Berlin")}, got)
}

func TestUnwrapUppercase(t *testing.T) {
	m := stageModel(t, map[string]string{"Barack Obama": "PER"})
	in := []annotation.Annotation{
		cand(10, "BARACK OBAMA NEW YORK TIMES"),
		cand(50, "New York Times"),
		cand(70, "NASA"),
		cand(80, "ANGELA MERKEL"),
	}

	got := unwrapUppercase(m, in)
	assert.Equal(t, []annotation.Annotation{
		cand(10, "BARACK OBAMA"),
		cand(23, "NEW YORK TIMES"),
		cand(50, "New York Times"),
		cand(70, "NASA"),
		cand(80, "ANGELA MERKEL"),
	}, got)
}

func TestUnwrapLeftContext(t *testing.T) {
	m := stageModel(t, map[string]string{"Dresden": "LOC", "President Barack Obama": "PER"})
	m.leftContexts = set("President", "Mayor")

	got := unwrapLeftContext(m, []annotation.Annotation{
		cand(0, "President Barack Obama"),
		cand(30, "Former President Obama"),
		cand(60, "Dresden Mayor Hilbert"),
		cand(90, "President"),
	})
	assert.Equal(t, []annotation.Annotation{
		cand(0, "President Barack Obama"),
		cand(47, "Obama"),
		cand(74, "Hilbert"),
		cand(60, "Dresden"),
		cand(90, "President"),
	}, got)
}

func TestRemoveDateFragments(t *testing.T) {
	got := removeDateFragments(nil, []annotation.Annotation{
		cand(10, "June John Hiatt"),
		cand(0, "June"),
		cand(30, "Angela Merkel"),
	})
	assert.Equal(t, []annotation.Annotation{
		cand(15, "John Hiatt"),
		cand(30, "Angela Merkel"),
	}, got)
}

func TestRemoveSentenceStartErrors(t *testing.T) {
	m := stageModel(t, nil)
	m.caseDictionary = set("this")

	got := removeSentenceStartErrors(m, []annotation.Annotation{
		cand(0, "This"),
		cand(10, "This Time"),
		cand(20, "Paris"),
	})
	assert.Equal(t, []annotation.Annotation{cand(10, "This Time"), cand(20, "Paris")}, got)
}

func TestFixStartErrors(t *testing.T) {
	m := stageModel(t, map[string]string{"The Hague": "LOC", "New York Times": "ORG"})
	m.caseDictionary = set("the", "new")

	got := fixStartErrors(m, []annotation.Annotation{
		cand(0, "The Beatles"),
		cand(20, "The The"),
		cand(30, "The Hague"),
		cand(40, "The New York Times"),
		cand(70, "Paris"),
	})
	assert.Equal(t, []annotation.Annotation{
		cand(4, "Beatles"),
		cand(30, "The Hague"),
		cand(44, "New York Times"),
		cand(70, "Paris"),
	}, got)
}

func TestRemoveDateEntries(t *testing.T) {
	got := removeDateEntries(nil, []annotation.Annotation{
		cand(0, "Monday"),
		cand(10, "December 24"),
		cand(30, "Berlin"),
	})
	assert.Equal(t, []annotation.Annotation{cand(30, "Berlin")}, got)
}

func TestStagesDoNotModifyInput(t *testing.T) {
	m := stageModel(t, nil)
	in := []annotation.Annotation{cand(10, "June John Hiatt")}
	_ = removeDateFragments(m, in)
	assert.Equal(t, cand(10, "June John Hiatt"), in[0])
}
