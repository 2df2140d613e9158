// Package categorize assigns a two-level category to each transaction. The
// engine is a pure function of the description, the transaction type, and
// the user's rules: the same inputs always produce the same category, with
// no model calls and no hidden state.
package categorize

import (
	"budgy/docproc/internal/logging"
	"budgy/docproc/internal/models"
	"budgy/docproc/internal/normalize"
	"budgy/docproc/internal/taxonomy"
)

// Engine runs the categorization tiers in priority order: user rules,
// merchant category codes, keyword table, heuristics, then the type-side
// default.
type Engine struct {
	log logging.Logger
}

// NewEngine returns a categorization engine.
func NewEngine(logger logging.Logger) *Engine {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Engine{log: logger}
}

// Categorize resolves the category for one transaction. rules may be nil.
// The result is always a valid taxonomy leaf on the side matching txType.
func (e *Engine) Categorize(description string, txType models.TransactionType, rules []models.CategoryRule) taxonomy.Category {
	folded := normalize.Fold(description)

	if cat, ok := matchUserRules(folded, rules); ok {
		e.log.Debug("categorized by user rule",
			logging.Field{Key: logging.FieldCategory, Value: cat.Main})
		return e.coerce(cat, txType)
	}

	if cat, ok := matchMCC(description); ok {
		e.log.Debug("categorized by merchant code",
			logging.Field{Key: logging.FieldCategory, Value: cat.Main})
		return e.coerce(cat, txType)
	}

	if cat, ok := matchKeyword(folded); ok {
		e.log.Debug("categorized by keyword",
			logging.Field{Key: logging.FieldCategory, Value: cat.Main})
		return e.coerce(cat, txType)
	}

	if cat, ok := matchHeuristic(folded, txType); ok {
		e.log.Debug("categorized by heuristic",
			logging.Field{Key: logging.FieldCategory, Value: cat.Main})
		return e.coerce(cat, txType)
	}

	return defaultFor(txType)
}

// coerce enforces side consistency: a category from the wrong taxonomy side
// (or an unknown main) collapses to the neutral default of the transaction's
// side. A missing sub is filled with the main's default sub.
func (e *Engine) coerce(cat taxonomy.Category, txType models.TransactionType) taxonomy.Category {
	onSide := (txType == models.TypeIncome && taxonomy.IsIncomeMain(cat.Main)) ||
		(txType == models.TypeExpense && taxonomy.IsExpenseMain(cat.Main))
	if !onSide {
		e.log.Debug("coercing category to transaction side",
			logging.Field{Key: logging.FieldCategory, Value: cat.Main},
			logging.Field{Key: logging.FieldReason, Value: string(txType)})
		return defaultFor(txType)
	}
	if cat.Sub == "" || !validSub(cat.Main, cat.Sub) {
		cat.Sub = taxonomy.DefaultSub(cat.Main)
	}
	return cat
}

func validSub(main, sub string) bool {
	for _, s := range taxonomy.SubsFor(main) {
		if s == sub {
			return true
		}
	}
	return false
}

func defaultFor(txType models.TransactionType) taxonomy.Category {
	if txType == models.TypeIncome {
		return taxonomy.DefaultIncome()
	}
	return taxonomy.DefaultExpense()
}
