package corpus

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// ReadSeeds parses a seed list: one "value<TAB>tag" pair per line. Blank
// lines and lines starting with # are ignored, malformed lines are skipped.
// Duplicate pairs are kept once.
func ReadSeeds(r io.Reader, source string, opts ...Option) ([]Seed, Stats, error) {
	o := newOptions(opts)
	var (
		seeds []Seed
		stats Stats
	)
	seen := make(map[Seed]bool)

	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		raw := strings.TrimSpace(sc.Text())
		if raw == "" || strings.HasPrefix(raw, "#") {
			continue
		}
		value, tag, ok := strings.Cut(raw, "\t")
		value, tag = strings.TrimSpace(value), strings.TrimSpace(tag)
		if !ok || value == "" || tag == "" {
			stats.Skipped++
			o.logger.Warn("skipping malformed seed", "source", source, "line", line, "text", raw)
			continue
		}
		s := Seed{Value: value, Tag: tag}
		if seen[s] {
			continue
		}
		seen[s] = true
		seeds = append(seeds, s)
	}
	if err := sc.Err(); err != nil {
		return nil, stats, fmt.Errorf("read %s: %w", source, err)
	}
	stats.Annotations = len(seeds)
	return seeds, stats, nil
}

// ReadSeedsFile reads a seed list from path.
func ReadSeedsFile(path string, opts ...Option) ([]Seed, Stats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Stats{}, fmt.Errorf("open seeds: %w", err)
	}
	defer f.Close()
	return ReadSeeds(f, path, opts...)
}
