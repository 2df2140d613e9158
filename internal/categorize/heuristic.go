package categorize

import (
	"regexp"
	"strings"

	"budgy/docproc/internal/models"
	"budgy/docproc/internal/taxonomy"
)

var (
	heuristicIBAN = regexp.MustCompile(`(?i)\btr\d{24}\b`)
	heuristicFAST = regexp.MustCompile(`\bfast\b`)
)

// matchHeuristic covers statement wording too generic for the keyword
// table: transfers, salary payments, cash withdrawals, bank fees and taxes.
func matchHeuristic(folded string, txType models.TransactionType) (taxonomy.Category, bool) {
	switch {
	case containsAny(folded, "eft", "havale", "virman", "wire") ||
		heuristicFAST.MatchString(folded) || heuristicIBAN.MatchString(folded):
		if txType == models.TypeIncome {
			return taxonomy.Category{Main: "Refunds & Adjustments", Sub: "Purchase Refunds"}, true
		}
		return taxonomy.Category{Main: "Debts & Liabilities", Sub: "Loan Payment"}, true

	case containsAny(folded, "maaş", "maas", "salary", "bordro"):
		return taxonomy.Category{Main: "Salary & Wages", Sub: "Base Salary"}, true

	case containsAny(folded, "nakit", "atm", "para çek", "para cek"):
		return taxonomy.Category{Main: "Miscellaneous", Sub: "Unplanned Purchases"}, true

	case containsAny(folded, "komisyon", "hesap işletim", "hesap isletim", "işlem ücreti", "islem ucreti", "fee"):
		return taxonomy.Category{Main: "Taxes & Fees", Sub: "Service Charges"}, true

	case containsAny(folded, "bsmv", "kkdf", "vergi", "tax"):
		return taxonomy.Category{Main: "Taxes & Fees", Sub: "Income Tax"}, true
	}

	return taxonomy.Category{}, false
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
