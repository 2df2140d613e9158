package categorize

import (
	"sort"
	"strings"

	"budgy/docproc/internal/models"
	"budgy/docproc/internal/normalize"
	"budgy/docproc/internal/taxonomy"
)

// matchUserRules finds the best user rule whose pattern occurs in the folded
// description. Among hits, longer patterns win; equal lengths are broken by
// weight, then by the pattern text itself so the result never depends on
// rule file order.
func matchUserRules(folded string, rules []models.CategoryRule) (taxonomy.Category, bool) {
	type hit struct {
		patternLen int
		weight     float64
		pattern    string
		cat        taxonomy.Category
	}

	var hits []hit
	for _, r := range rules {
		pattern := normalize.Fold(strings.TrimSpace(r.Pattern))
		if pattern == "" || r.CategoryMain == "" {
			continue
		}
		if !strings.Contains(folded, pattern) {
			continue
		}
		hits = append(hits, hit{
			patternLen: len(pattern),
			weight:     r.EffectiveWeight(),
			pattern:    pattern,
			cat:        taxonomy.Category{Main: r.CategoryMain, Sub: r.CategorySub},
		})
	}
	if len(hits) == 0 {
		return taxonomy.Category{}, false
	}

	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].patternLen != hits[j].patternLen {
			return hits[i].patternLen > hits[j].patternLen
		}
		if hits[i].weight != hits[j].weight {
			return hits[i].weight > hits[j].weight
		}
		return hits[i].pattern < hits[j].pattern
	})
	return hits[0].cat, true
}
