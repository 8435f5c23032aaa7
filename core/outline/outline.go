// Package outline nests the flat heading sequence into a section tree
// and reads and writes the heading JSON exchange format.
package outline

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/erik-winther/tagpipe/core"
)

// Build nests headings into sections: a heading opens a section that
// collects every following heading with a deeper level, and a heading
// at the same or a shallower level closes it. Levels are clamped to
// [1,6] before nesting.
func Build(headings []core.HeadingCandidate) []core.Section {
	secs, _ := build(headings, 0, 0)
	return secs
}

func build(headings []core.HeadingCandidate, i, parentLevel int) ([]core.Section, int) {
	var out []core.Section
	for i < len(headings) {
		level := core.ClampLevel(headings[i].Level)
		if level <= parentLevel {
			break
		}
		sec := core.Section{Heading: headings[i]}
		sec.Heading.Level = level
		sec.Children, i = build(headings, i+1, level)
		out = append(out, sec)
	}
	return out, i
}

// CountByLevel tallies headings per clamped level.
func CountByLevel(headings []core.HeadingCandidate) map[int]int {
	counts := make(map[int]int)
	for _, h := range headings {
		counts[core.ClampLevel(h.Level)]++
	}
	return counts
}

// LoadHeadings reads a heading list from a JSON file. Levels are
// clamped to [1,6] on load, so a hand-edited file with a missing or
// out-of-range level cannot break the writers downstream.
func LoadHeadings(path string) ([]core.HeadingCandidate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading headings: %w", err)
	}
	var headings []core.HeadingCandidate
	if err := json.Unmarshal(data, &headings); err != nil {
		return nil, fmt.Errorf("parsing headings %s: %w", path, err)
	}
	for i := range headings {
		headings[i].Level = core.ClampLevel(headings[i].Level)
	}
	return headings, nil
}

// SaveHeadings writes the heading list as indented JSON.
func SaveHeadings(path string, headings []core.HeadingCandidate) error {
	data, err := json.MarshalIndent(headings, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding headings: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("writing headings: %w", err)
	}
	return nil
}
