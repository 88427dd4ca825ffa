package urgency

import (
	"regexp"
	"strings"
	"sync"
)

// Detector scans complaint text against the keyword taxonomy and resolves
// an urgency level. It holds no per-request state and is safe for
// concurrent use.
type Detector struct{}

func NewDetector() *Detector {
	return &Detector{}
}

// Word-boundary patterns are compiled once per keyword on first use.
var (
	patternOnce sync.Once
	patterns    map[string]*regexp.Regexp
)

func boundaryPattern(keyword string) *regexp.Regexp {
	patternOnce.Do(func() {
		patterns = make(map[string]*regexp.Regexp)
		for _, tier := range Taxonomy {
			for _, kw := range tier.Keywords {
				patterns[kw] = regexp.MustCompile(`\b` + regexp.QuoteMeta(kw) + `\b`)
			}
		}
	})
	return patterns[keyword]
}

// Fallback patterns fire only when the primary taxonomy scan matched
// nothing at all.
var fallbackPatterns = []struct {
	level int
	words []string
}{
	{5, []string{"emergency", "urgent", "critical", "immediately"}},
	{4, []string{"severe", "major", "high-risk"}},
	{2, []string{"issue", "problem", "needs"}},
}

// Detect scans text for urgency keywords from the highest tier down.
// Every match contributes its keyword to the returned list (deduplicated
// by lowercase identity, insertion order preserved); only the maximum
// matched tier determines the level. Empty text yields (1, "Very Low", []).
func (d *Detector) Detect(text string) (int, string, []string) {
	if text == "" {
		return 1, Label(1), []string{}
	}

	textLower := strings.ToLower(text)
	maxLevel := 1
	found := []string{}
	seen := make(map[string]bool)

	for _, tier := range Taxonomy {
		for _, kw := range tier.Keywords {
			// Whole-word match first, then plain substring as a catch-all
			// for compound or concatenated words.
			matched := boundaryPattern(kw).MatchString(textLower) ||
				strings.Contains(textLower, kw)
			if !matched {
				continue
			}
			if !seen[kw] {
				found = append(found, kw)
				seen[kw] = true
			}
			if tier.Level > maxLevel {
				maxLevel = tier.Level
			}
		}
	}

	// Coarse pattern backstop for text the taxonomy knows nothing about.
	if maxLevel == 1 && strings.TrimSpace(textLower) != "" {
		for _, fp := range fallbackPatterns {
			if containsAny(textLower, fp.words) {
				maxLevel = fp.level
				break
			}
		}
	}

	return maxLevel, Label(maxLevel), found
}

func containsAny(text string, words []string) bool {
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}
