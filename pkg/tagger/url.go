package tagger

import (
	"mvdan.cc/xurls/v2"

	"github.com/kittclouds/palladian/pkg/annotation"
)

var urls = xurls.Strict()

// URLTagger finds URLs that carry a scheme.
type URLTagger struct{}

func (URLTagger) Tag(text string) []annotation.Annotation {
	return tagPattern(text, urls.FindAllStringIndex(text, -1), URLTag)
}
