package extract

import (
	"context"
	"strings"

	"budgy/docproc/internal/docreader"
	"budgy/docproc/internal/logging"
	"budgy/docproc/internal/matcher"
	"budgy/docproc/internal/models"
	"budgy/docproc/internal/normalize"
)

// headerSynonyms maps logical columns to the header labels banks use, in
// the locales the pipeline supports. Lookup happens on folded text. The
// order matters: "tarih" must claim a header cell before "işlem" gets a
// chance, so that "İşlem Tarihi" maps to the date column.
var headerSynonyms = []struct {
	logical  string
	synonyms []string
}{
	{"date", []string{"date", "tarih", "valor", "valör"}},
	{"amount", []string{"amount", "tutar", "miktar"}},
	{"currency", []string{"currency", "döviz", "doviz", "para birimi"}},
	{"description", []string{"description", "açiklama", "aciklama", "işlem", "islem", "detay", "narrative"}},
}

// TableStrategy consumes document-native structured tables. It is the
// highest-trust tier: cell boundaries come from the document itself, so
// date/description/amount never bleed into each other.
type TableStrategy struct {
	log logging.Logger
}

// NewTableStrategy returns the structured-table tier.
func NewTableStrategy(logger logging.Logger) *TableStrategy {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &TableStrategy{log: logger}
}

func (s *TableStrategy) Name() string { return "table" }

func (s *TableStrategy) Method() models.ExtractionMethod { return models.MethodTable }

func (s *TableStrategy) Confidence() float64 { return ConfidenceTable }

// Extract walks every page's table grid. The first row is treated as a
// header; rows are mapped through header synonyms, with a per-row heuristic
// fallback when the header gave no usable mapping.
func (s *TableStrategy) Extract(ctx context.Context, doc docreader.Document) ([]Row, error) {
	var rows []Row

	for page := 0; page < doc.NumPages(); page++ {
		if err := ctx.Err(); err != nil {
			return rows, nil
		}

		grid, err := doc.PageTable(page)
		if err != nil {
			s.log.WithError(err).Debug("table read failed",
				logging.Field{Key: logging.FieldPage, Value: page})
			continue
		}
		// Header only, or nothing: no records from this page.
		if len(grid) < 2 {
			continue
		}

		cols := mapColumns(grid[0])
		for _, cells := range grid[1:] {
			c, ok := candidateFromCells(cells, cols)
			if !ok {
				continue
			}
			rows = append(rows, Row{Candidate: c, Page: page})
		}
	}

	return rows, nil
}

// columnMap holds the resolved cell index per logical column; -1 means the
// header did not reveal it.
type columnMap struct {
	date, description, amount, currency int
}

func mapColumns(header []string) columnMap {
	cols := columnMap{date: -1, description: -1, amount: -1, currency: -1}
	claimed := map[int]bool{}
	for _, group := range headerSynonyms {
		for i, cell := range header {
			if claimed[i] {
				continue
			}
			folded := normalize.Fold(cell)
			matched := false
			for _, syn := range group.synonyms {
				if strings.Contains(folded, syn) {
					matched = true
					break
				}
			}
			if !matched {
				continue
			}
			switch group.logical {
			case "date":
				if cols.date == -1 {
					cols.date = i
					claimed[i] = true
				}
			case "description":
				if cols.description == -1 {
					cols.description = i
					claimed[i] = true
				}
			case "amount":
				if cols.amount == -1 {
					cols.amount = i
					claimed[i] = true
				}
			case "currency":
				if cols.currency == -1 {
					cols.currency = i
					claimed[i] = true
				}
			}
		}
	}
	return cols
}

// candidateFromCells builds a candidate from one table row, preferring the
// header mapping and falling back to shape-based detection: the amount
// column is the last amount-looking cell, the description is the longest
// remaining non-amount cell.
func candidateFromCells(cells []string, cols columnMap) (matcher.Candidate, bool) {
	var c matcher.Candidate

	cellAt := func(i int) string {
		if i >= 0 && i < len(cells) {
			return strings.TrimSpace(cells[i])
		}
		return ""
	}

	c.Date = cellAt(cols.date)
	c.Description = cellAt(cols.description)
	c.Amount = cellAt(cols.amount)
	c.Currency = cellAt(cols.currency)
	c.Line = strings.Join(cells, " | ")

	if c.Date != "" && !matcher.IsDateToken(c.Date) {
		c.Date = ""
	}
	if c.Amount != "" && !matcher.IsAmountToken(c.Amount) {
		c.Amount = ""
	}

	used := map[int]bool{}
	if cols.date >= 0 {
		used[cols.date] = true
	}
	if cols.amount >= 0 {
		used[cols.amount] = true
	}
	if cols.currency >= 0 {
		used[cols.currency] = true
	}

	if c.Date == "" {
		for i, cell := range cells {
			if !used[i] && matcher.IsDateToken(cell) {
				c.Date = strings.TrimSpace(cell)
				used[i] = true
				break
			}
		}
	}
	if c.Amount == "" {
		for i := len(cells) - 1; i >= 0; i-- {
			if !used[i] && matcher.IsAmountToken(cells[i]) && !matcher.IsDateToken(cells[i]) {
				c.Amount = strings.TrimSpace(cells[i])
				used[i] = true
				break
			}
		}
	}
	if c.Description == "" {
		longest := -1
		for i, cell := range cells {
			if used[i] || matcher.IsAmountToken(cell) || matcher.IsDateToken(cell) {
				continue
			}
			trimmed := strings.TrimSpace(cell)
			if trimmed == "" {
				continue
			}
			if longest == -1 || len(trimmed) > len(strings.TrimSpace(cells[longest])) {
				longest = i
			}
		}
		if longest >= 0 {
			c.Description = strings.TrimSpace(cells[longest])
		}
	}

	if c.Date == "" || c.Description == "" || c.Amount == "" {
		return matcher.Candidate{}, false
	}
	return c, true
}
