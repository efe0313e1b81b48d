package corpus

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/kittclouds/palladian/pkg/annotation"
)

const docStart = "-DOCSTART-"

// ReadColumn parses column formatted data. Each line holds a token and its
// tag separated by a single tab; blank lines end a sentence and -DOCSTART-
// lines start a new document. Tags may carry B- and I- prefixes. Lines with
// any other column count are skipped.
func ReadColumn(r io.Reader, source string, opts ...Option) ([]Document, Stats, error) {
	o := newOptions(opts)
	b := &docBuilder{source: source}
	var stats Stats

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	line := 0
	for sc.Scan() {
		line++
		raw := strings.TrimRight(sc.Text(), "\r")
		cols := strings.Split(raw, "\t")
		switch {
		case strings.TrimSpace(raw) == "":
			b.endSentence()
		case strings.HasPrefix(raw, docStart):
			b.flush()
		case len(cols) != 2 || cols[0] == "" || strings.TrimSpace(cols[1]) == "":
			stats.Skipped++
			o.logger.Warn("skipping malformed line", "source", source, "line", line, "text", raw)
		default:
			b.add(cols[0], strings.TrimSpace(cols[1]))
		}
	}
	if err := sc.Err(); err != nil {
		return nil, stats, fmt.Errorf("read %s: %w", source, err)
	}
	b.flush()

	for _, d := range b.docs {
		stats.Documents++
		stats.Tokens += len(d.Tokens)
		stats.Annotations += len(d.Annotations)
	}
	stats.Sentences = b.sentences
	return b.docs, stats, nil
}

// ReadColumnFile reads one column file.
func ReadColumnFile(path string, opts ...Option) ([]Document, Stats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Stats{}, fmt.Errorf("open corpus: %w", err)
	}
	defer f.Close()
	return ReadColumn(f, path, opts...)
}

// ReadColumnFiles reads every file matching the doublestar pattern, in
// lexical path order.
func ReadColumnFiles(pattern string, opts ...Option) ([]Document, Stats, error) {
	paths, err := Glob(pattern)
	if err != nil {
		return nil, Stats{}, err
	}
	var (
		docs  []Document
		total Stats
	)
	for _, p := range paths {
		d, s, err := ReadColumnFile(p, opts...)
		if err != nil {
			return nil, total, err
		}
		docs = append(docs, d...)
		total.Documents += s.Documents
		total.Sentences += s.Sentences
		total.Tokens += s.Tokens
		total.Annotations += s.Annotations
		total.Skipped += s.Skipped
	}
	return docs, total, nil
}

// Glob expands a pattern that may contain ** into the matching files.
func Glob(pattern string) ([]string, error) {
	paths, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("glob %q: %w", pattern, err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("glob %q: no files match", pattern)
	}
	return paths, nil
}

// splitTag separates a BIO prefix from the entity type.
func splitTag(tag string) (prefix byte, typ string) {
	if len(tag) > 2 && tag[1] == '-' {
		switch tag[0] {
		case 'B', 'I', 'E', 'S':
			return tag[0], tag[2:]
		}
	}
	return 0, tag
}

type docBuilder struct {
	source    string
	docs      []Document
	sentences int

	text      strings.Builder
	units     int
	tokens    []annotation.Annotation
	spans     []annotation.Annotation
	sentence  bool // current sentence has tokens
	openType  string
	openStart int
	openByte  int // byte offsets of the open span in text
	openEnd   int
}

func (b *docBuilder) add(token, tag string) {
	if b.sentence {
		b.text.WriteByte(' ')
		b.units++
	}
	b.sentence = true

	start, startByte := b.units, b.text.Len()
	b.text.WriteString(token)
	b.units += annotation.UTF16Len(token)

	prefix, typ := splitTag(tag)
	if typ == annotation.OutsideTag {
		b.closeSpan()
		b.tokens = append(b.tokens, annotation.New(start, token, annotation.OutsideTag))
		return
	}
	b.tokens = append(b.tokens, annotation.New(start, token, typ))

	if b.openType != "" && typ == b.openType && prefix != 'B' && prefix != 'S' {
		b.openEnd = b.text.Len()
		return
	}
	b.closeSpan()
	b.openType, b.openStart, b.openByte, b.openEnd = typ, start, startByte, b.text.Len()
}

func (b *docBuilder) closeSpan() {
	if b.openType == "" {
		return
	}
	value := b.text.String()[b.openByte:b.openEnd]
	b.spans = append(b.spans, annotation.New(b.openStart, value, b.openType))
	b.openType = ""
}

func (b *docBuilder) endSentence() {
	b.closeSpan()
	if !b.sentence {
		return
	}
	b.sentences++
	b.text.WriteByte('\n')
	b.units++
	b.sentence = false
}

func (b *docBuilder) flush() {
	b.closeSpan()
	if b.sentence {
		b.sentences++
	}
	text := strings.TrimRight(b.text.String(), "\n")
	if len(b.tokens) > 0 {
		b.docs = append(b.docs, Document{
			Source:      b.source,
			Text:        text,
			Tokens:      b.tokens,
			Annotations: b.spans,
		})
	}
	b.text.Reset()
	b.units = 0
	b.tokens, b.spans = nil, nil
	b.sentence = false
}
