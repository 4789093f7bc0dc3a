package categorizer

import (
	"strings"

	"kharcha/expense-nlp/internal/models"

	"github.com/cloudflare/ahocorasick"
)

// KeywordTable finds the highest-priority category whose keywords occur as
// substrings of a description. All keywords are matched in a single
// Aho-Corasick pass; the hit belonging to the category with the lowest table
// index wins, which gives the same answer as checking categories one by one.
type KeywordTable struct {
	names    []string
	keywords []string
	// owners[i] lists the category indices that own keywords[i].
	owners  [][]int
	matcher *ahocorasick.Matcher
}

// NewKeywordTable builds a table from categories in priority order. Keywords
// are lower-cased; empty keywords and categories without a name are skipped.
func NewKeywordTable(categories []models.CategoryConfig) *KeywordTable {
	t := &KeywordTable{}
	index := make(map[string]int)

	for _, cat := range categories {
		name := strings.TrimSpace(cat.Name)
		if name == "" {
			continue
		}
		catIdx := len(t.names)
		t.names = append(t.names, name)

		for _, kw := range cat.Keywords {
			kw = strings.ToLower(strings.TrimSpace(kw))
			if kw == "" {
				continue
			}
			kwIdx, seen := index[kw]
			if !seen {
				kwIdx = len(t.keywords)
				index[kw] = kwIdx
				t.keywords = append(t.keywords, kw)
				t.owners = append(t.owners, nil)
			}
			t.owners[kwIdx] = append(t.owners[kwIdx], catIdx)
		}
	}

	if len(t.keywords) > 0 {
		patterns := make([][]byte, len(t.keywords))
		for i, kw := range t.keywords {
			patterns[i] = []byte(kw)
		}
		t.matcher = ahocorasick.NewMatcher(patterns)
	}
	return t
}

// Lookup returns the winning category and one keyword of that category found
// in description. Matching is case-insensitive.
func (t *KeywordTable) Lookup(description string) (category, keyword string, ok bool) {
	if t.matcher == nil {
		return "", "", false
	}
	hits := t.matcher.MatchThreadSafe([]byte(strings.ToLower(description)))
	if len(hits) == 0 {
		return "", "", false
	}

	best := -1
	bestKeyword := -1
	for _, kwIdx := range hits {
		if kwIdx < 0 || kwIdx >= len(t.owners) {
			continue
		}
		for _, catIdx := range t.owners[kwIdx] {
			if best == -1 || catIdx < best || (catIdx == best && kwIdx < bestKeyword) {
				best = catIdx
				bestKeyword = kwIdx
			}
		}
	}
	if best == -1 {
		return "", "", false
	}
	return t.names[best], t.keywords[bestKeyword], true
}

// Categories returns the category names in priority order.
func (t *KeywordTable) Categories() []string {
	out := make([]string, len(t.names))
	copy(out, t.names)
	return out
}

// Len returns the number of distinct keywords in the table.
func (t *KeywordTable) Len() int {
	return len(t.keywords)
}
