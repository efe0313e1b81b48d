package features

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCharNGrams(t *testing.T) {
	got := Chars(2, 3, true).Extract("Abab")
	assert.Equal(t, map[string]int{
		"Ab": 1, "ba": 1, "ab": 1,
		"Aba": 1, "bab": 1,
	}, got)
}

func TestCharNGramsLowercase(t *testing.T) {
	got := Chars(2, 2, false).Extract("AbAb")
	assert.Equal(t, map[string]int{"ab": 2, "ba": 1}, got)
}

func TestShortTextIsOneFeature(t *testing.T) {
	got := Chars(4, 8, true).Extract("Ra")
	assert.Equal(t, map[string]int{"Ra": 1}, got)
}

func TestWordNGrams(t *testing.T) {
	got := Words(1, 2, false).Extract("The President, said")
	assert.Equal(t, map[string]int{
		"the": 1, "president": 1, "said": 1,
		"the president": 1, "president said": 1,
	}, got)
}

func TestExact(t *testing.T) {
	assert.Equal(t, map[string]int{"New York": 1}, Whole().Extract("New York"))
	assert.Empty(t, Whole().Extract(""))
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Chars(3, 8, true).Validate())
	assert.Error(t, Chars(0, 8, true).Validate())
	assert.Error(t, Words(3, 2, true).Validate())
	assert.Error(t, Setting{Type: "bogus", Min: 1, Max: 1}.Validate())
}

func TestSorted(t *testing.T) {
	got := Sorted(map[string]int{"b": 2, "a": 1})
	assert.Equal(t, []Feature{{"a", 1}, {"b", 2}}, got)
}
