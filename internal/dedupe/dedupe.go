// Package dedupe removes duplicate transactions that appear when multiple
// extraction passes, or repeated statement pages, produce the same row.
package dedupe

import (
	"sort"

	"budgy/docproc/internal/models"
	"budgy/docproc/internal/normalize"
)

// DefaultPrefixLength is how many characters of the folded description take
// part in the duplicate key.
const DefaultPrefixLength = 10

// Collapse removes duplicates, keyed on date, direction, amount and a
// folded description prefix. Records carry amounts as magnitudes, so the
// direction has to be part of the key: a charge and its same-day
// equal-amount refund are two real transactions, not a duplicate. When two
// records collide the higher-confidence one survives; ties keep the
// earlier record. Input order is otherwise preserved.
func Collapse(records []models.TransactionRecord, prefixLen int) []models.TransactionRecord {
	if prefixLen <= 0 {
		prefixLen = DefaultPrefixLength
	}

	byKey := make(map[string]models.TransactionRecord, len(records))
	order := make([]string, 0, len(records))

	for _, rec := range records {
		key := dupeKey(rec, prefixLen)
		existing, seen := byKey[key]
		if !seen {
			byKey[key] = rec
			order = append(order, key)
			continue
		}
		if rec.Confidence > existing.Confidence {
			byKey[key] = rec
		}
	}

	out := make([]models.TransactionRecord, 0, len(order))
	for _, key := range order {
		out = append(out, byKey[key])
	}
	return out
}

func dupeKey(rec models.TransactionRecord, prefixLen int) string {
	desc := []rune(normalize.Fold(rec.Description))
	if len(desc) > prefixLen {
		desc = desc[:prefixLen]
	}
	return rec.Date + "|" + string(rec.Type) + "|" + rec.Amount.String() + "|" + string(desc)
}

// SortByDate orders records by date, stably, so same-day transactions keep
// their extraction order.
func SortByDate(records []models.TransactionRecord, descending bool) {
	sort.SliceStable(records, func(i, j int) bool {
		if descending {
			return records[i].Date > records[j].Date
		}
		return records[i].Date < records[j].Date
	})
}
