package analysis

import (
	"fmt"
	"strings"

	"github.com/gosimple/unidecode"

	"tunesleuth/src/music"
)

const maxExamples = 3

// buildExplanation renders the fixed per-category template. The counts in
// the prose always come from the match itself, so the structured data and
// the text cannot drift apart.
func buildExplanation(m music.PatternMatch, detail string) string {
	noun := "files"
	if m.Category == music.CategoryFolderStructure {
		noun = "tracks"
	}
	s := fmt.Sprintf("%d of %d %s (%d%%) match the '%s' pattern.",
		m.Matched, m.Considered, noun, m.Percent(), m.Description)
	if detail != "" {
		s += " " + detail
	}
	return s
}

// selectExamples picks the first few candidates in library iteration order,
// skipping entries that collapse to the same string after transliteration
// and case folding, so the examples stay illustrative.
func selectExamples(candidates []string) []string {
	seen := make(map[string]struct{}, maxExamples)
	var examples []string
	for _, c := range candidates {
		key := strings.ToLower(unidecode.Unidecode(c))
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		examples = append(examples, c)
		if len(examples) == maxExamples {
			break
		}
	}
	return examples
}
