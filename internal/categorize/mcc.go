package categorize

import (
	"regexp"

	"budgy/docproc/internal/taxonomy"
)

// Card statements print the merchant category code as "MCC 5411",
// "MCC:5411" or "MCC5411". The code is matched on the raw description
// because folding never touches digits.
var mccPattern = regexp.MustCompile(`(?i)\bMCC\W?(\d{4})\b`)

func matchMCC(description string) (taxonomy.Category, bool) {
	m := mccPattern.FindStringSubmatch(description)
	if m == nil {
		return taxonomy.Category{}, false
	}
	return taxonomy.LookupMCC(m[1])
}
