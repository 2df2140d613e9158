package categorize

import (
	"strings"

	"budgy/docproc/internal/taxonomy"
)

// matchKeyword scans the embedded keyword table, which is ordered longest
// keyword first, so the most specific alias wins.
func matchKeyword(folded string) (taxonomy.Category, bool) {
	for _, entry := range taxonomy.Keywords() {
		if strings.Contains(folded, entry.Keyword) {
			return entry.Category, true
		}
	}
	return taxonomy.Category{}, false
}
