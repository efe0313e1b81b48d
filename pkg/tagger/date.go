package tagger

import (
	"regexp"
	"strings"

	"github.com/kittclouds/palladian/pkg/annotation"
	"github.com/kittclouds/palladian/pkg/tokenizer"
)

const (
	// DateTag is the tag of spans found by DateTagger.
	DateTag = "DATE"
	// URLTag is the tag of spans found by URLTagger.
	URLTag = "URL"
)

const (
	months   = `January|February|March|April|May|June|July|August|September|October|November|December`
	monthAbb = `Jan|Feb|Mar|Apr|Jun|Jul|Aug|Sep|Sept|Oct|Nov|Dec`
	weekdays = `Monday|Tuesday|Wednesday|Thursday|Friday|Saturday|Sunday`
	dayAbb   = `Mon|Tue|Tues|Wed|Thu|Thurs|Fri|Sat|Sun`
	day      = `\d{1,2}(?:st|nd|rd|th)?`
	year     = `(?:1\d{3}|2\d{3})`
)

var (
	// Abbreviations only count as fragments with their dot, so that
	// "Jan Ullrich" keeps its first name.
	fragMonth   = `(?:` + months + `|(?:` + monthAbb + `)\.)`
	fragWeekday = `(?:` + weekdays + `|(?:` + dayAbb + `)\.)`

	dateFragment = regexp.MustCompile(`^(?:` +
		`(?:` + fragWeekday + `,? )?` + fragMonth + `(?: ` + day + `)?(?:,? ` + year + `)?` +
		`|(?:` + fragWeekday + `,? )?` + day + `(?: of)? ` + fragMonth + `(?:,? ` + year + `)?` +
		`|` + fragWeekday +
		`|` + year +
		`)$`)

	textMonth   = `(?:` + months + `|(?:` + monthAbb + `)\.?)`
	textWeekday = `(?:` + weekdays + `|(?:` + dayAbb + `)\.?)`

	datePattern = regexp.MustCompile(`\b(?:` +
		`\d{4}-\d{2}-\d{2}` +
		`|\d{1,2}[./]\d{1,2}[./](?:\d{4}|\d{2})` +
		`|(?:` + textWeekday + `,? )?` + textMonth + ` ` + day + `(?:,? ` + year + `)?` +
		`|` + day + `(?: of)? ` + textMonth + `(?:,? ` + year + `)?` +
		`|` + textMonth + `,? ` + year +
		`)\b`)
)

// IsDateFragment reports whether the whole of s is a date expression or a
// piece of one: a month, a weekday, a year or a month-day combination. A
// trailing comma is ignored.
func IsDateFragment(s string) bool {
	s = strings.TrimSuffix(strings.TrimSpace(s), ",")
	return s != "" && dateFragment.MatchString(s)
}

// TrimDateFragments removes a leading and a trailing date fragment from
// value. It returns the remainder and its UTF-16 offset inside value; an
// empty remainder means value held nothing but date fragments.
func TrimDateFragments(value string) (string, int) {
	fields := tokenizer.Fields(value)
	if len(fields) == 0 {
		return "", 0
	}
	if IsDateFragment(value) {
		return "", 0
	}

	from, to := 0, len(fields)
	for n := to - 1; n >= 1; n-- {
		if IsDateFragment(tokenizer.JoinFields(value, fields, 0, n)) {
			from = n
			break
		}
	}
	for n := from + 1; n < to; n++ {
		if IsDateFragment(tokenizer.JoinFields(value, fields, n, to)) {
			to = n
			break
		}
	}
	if from == 0 && to == len(fields) {
		return value, 0
	}
	return tokenizer.JoinFields(value, fields, from, to), fields[from].Start
}

// DateTagger finds common written date formats.
type DateTagger struct{}

func (DateTagger) Tag(text string) []annotation.Annotation {
	return tagPattern(text, datePattern.FindAllStringIndex(text, -1), DateTag)
}

func tagPattern(text string, matches [][]int, tag string) []annotation.Annotation {
	out := make([]annotation.Annotation, 0, len(matches))
	units, last := 0, 0
	for _, m := range matches {
		units += annotation.UTF16Len(text[last:m[0]])
		last = m[0]
		out = append(out, annotation.New(units, text[m[0]:m[1]], tag))
	}
	return out
}
