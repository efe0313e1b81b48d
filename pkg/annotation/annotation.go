// Package annotation holds the span types shared by the taggers, the
// dictionaries and the NER pipeline.
//
// All offsets are UTF-16 code units into the annotated text, so that spans
// line up with the offsets produced by JavaScript and Java clients.
package annotation

import (
	"fmt"
	"strings"
)

// CandidateTag marks an annotation that has not been classified yet.
const CandidateTag = "CANDIDATE"

// OutsideTag is the column-format tag for tokens outside any entity.
const OutsideTag = "O"

// Annotation is a tagged span of text. Values are immutable once created;
// the With* helpers return modified copies.
type Annotation struct {
	Start int    `json:"start" yaml:"start"`
	Value string `json:"value" yaml:"value"`
	Tag   string `json:"tag" yaml:"tag"`
}

// New creates an annotation.
func New(start int, value, tag string) Annotation {
	return Annotation{Start: start, Value: value, Tag: tag}
}

// End returns the exclusive end offset.
func (a Annotation) End() int {
	return a.Start + UTF16Len(a.Value)
}

// Len returns the length of the value in UTF-16 code units.
func (a Annotation) Len() int {
	return UTF16Len(a.Value)
}

// SameTag reports whether both annotations carry the same tag, ignoring case.
func (a Annotation) SameTag(b Annotation) bool {
	return strings.EqualFold(a.Tag, b.Tag)
}

// SameSpan reports whether both annotations cover exactly the same range.
func (a Annotation) SameSpan(b Annotation) bool {
	return a.Start == b.Start && a.End() == b.End()
}

// Contains reports whether b lies completely inside a.
func (a Annotation) Contains(b Annotation) bool {
	return a.Start <= b.Start && b.End() <= a.End()
}

// Overlaps reports whether the two spans share at least one code unit.
func (a Annotation) Overlaps(b Annotation) bool {
	return a.Start < b.End() && b.Start < a.End()
}

// WithTag returns a copy carrying tag.
func (a Annotation) WithTag(tag string) Annotation {
	a.Tag = tag
	return a
}

// Sub returns the annotation for value found offset code units after a's
// start, carrying tag.
func (a Annotation) Sub(offset int, value, tag string) Annotation {
	return Annotation{Start: a.Start + offset, Value: value, Tag: tag}
}

func (a Annotation) String() string {
	return fmt.Sprintf("%q[%d,%d]:%s", a.Value, a.Start, a.End(), a.Tag)
}
