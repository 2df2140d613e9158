// Package assemble turns raw extracted candidates into normalized
// transaction records: date and amount normalization, description cleanup,
// currency resolution, and transaction type inference.
package assemble

import (
	"errors"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"budgy/docproc/internal/extract"
	"budgy/docproc/internal/logging"
	"budgy/docproc/internal/models"
	"budgy/docproc/internal/normalize"
	"budgy/docproc/internal/parsererror"
)

var errNoDateLayout = errors.New("no supported date layout")

// symbolToCode resolves currency symbols and informal codes seen on
// statements to ISO codes.
var symbolToCode = map[string]string{
	"₺":   "TRY",
	"TL":  "TRY",
	"TRY": "TRY",
	"$":   "USD",
	"USD": "USD",
	"€":   "EUR",
	"EUR": "EUR",
	"£":   "GBP",
	"GBP": "GBP",
	"CHF": "CHF",
}

var ibanPattern = regexp.MustCompile(`\bTR\d{24}\b`)

// fastPattern needs a word boundary: "fast" is the Turkish instant payment
// scheme, but also the tail of "breakfast".
var fastPattern = regexp.MustCompile(`\bfast\b`)

// transferCues mark bank-to-bank movements whose direction only the amount
// sign can tell.
var transferCues = []string{"eft", "havale", "virman", "wire", "transfer"}

// incomeCues and expenseCues drive type inference when the description is
// more telling than the sign.
var (
	incomeCues  = []string{"maaş", "maas", "salary", "deposit", "interest", "faiz", "bonus", "refund", "iade", "prim"}
	expenseCues = []string{"purchase", "payment", "ödeme", "odeme", "fatura", "satış", "satis", "harcama", "komisyon", "ücret", "ucret"}
)

// Assembler normalizes extracted rows into transaction records.
type Assembler struct {
	// DefaultCurrency is used when a row carries no currency token.
	DefaultCurrency string
	// PositiveIsExpense is the sign convention of the source statement.
	PositiveIsExpense bool

	log logging.Logger
}

// New returns an assembler for the given source kind. positiveIsExpense
// reflects the statement's sign convention; most Turkish bank and card
// exports print charges as positive numbers.
func New(defaultCurrency string, positiveIsExpense bool, logger logging.Logger) *Assembler {
	if defaultCurrency == "" {
		defaultCurrency = "TRY"
	}
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Assembler{
		DefaultCurrency:   defaultCurrency,
		PositiveIsExpense: positiveIsExpense,
		log:               logger,
	}
}

// Assemble converts raw rows into records. Rows whose date or amount cannot
// be normalized are dropped with a debug log; a half-parsed record never
// reaches the output.
func (a *Assembler) Assemble(rows []extract.Row, confidence float64, method models.ExtractionMethod) []models.TransactionRecord {
	records := make([]models.TransactionRecord, 0, len(rows))

	for _, row := range rows {
		c := row.Candidate

		date, ok := normalize.ParseDate(c.Date)
		if !ok {
			a.log.WithError(&parsererror.ParseError{
				Stage: "assemble",
				Field: "date",
				Value: c.Date,
				Err:   errNoDateLayout,
			}).Debug("dropping row with unparseable date")
			continue
		}

		amount, err := normalize.ParseAmount(c.Amount)
		if err != nil {
			a.log.WithError(&parsererror.ParseError{
				Stage: "assemble",
				Field: "amount",
				Value: c.Amount,
				Err:   err,
			}).Debug("dropping row with unparseable amount")
			continue
		}

		desc := normalize.CleanDescription(c.Description)
		if desc == "" {
			continue
		}

		rec := models.TransactionRecord{
			Date:        date.Format(normalize.ISODate),
			Description: desc,
			Currency:    a.resolveCurrency(c.Currency),
			Type:        a.inferType(desc, amount),
			Confidence:  confidence,
			SourceTag:   method,
		}
		// Output amounts are magnitudes; direction lives in Type.
		rec.Amount = amount.Abs()

		records = append(records, rec)
	}

	return records
}

func (a *Assembler) resolveCurrency(token string) string {
	token = strings.TrimSpace(token)
	if token == "" {
		return a.DefaultCurrency
	}
	if code, ok := symbolToCode[strings.ToUpper(token)]; ok {
		return code
	}
	if code, ok := symbolToCode[token]; ok {
		return code
	}
	if len(token) == 3 {
		return strings.ToUpper(token)
	}
	return a.DefaultCurrency
}

// inferType decides income vs expense. Transfer rows are classified purely
// by sign because the wording never reveals direction; otherwise description
// cues win over the sign, and the sign convention settles the rest.
func (a *Assembler) inferType(description string, amount decimal.Decimal) models.TransactionType {
	folded := normalize.Fold(description)

	if isTransfer(folded) {
		return a.typeFromSign(amount)
	}
	for _, cue := range incomeCues {
		if strings.Contains(folded, normalize.Fold(cue)) {
			return models.TypeIncome
		}
	}
	for _, cue := range expenseCues {
		if strings.Contains(folded, normalize.Fold(cue)) {
			return models.TypeExpense
		}
	}
	return a.typeFromSign(amount)
}

func (a *Assembler) typeFromSign(amount decimal.Decimal) models.TransactionType {
	positive := !amount.IsNegative()
	if positive == a.PositiveIsExpense {
		return models.TypeExpense
	}
	return models.TypeIncome
}

func isTransfer(folded string) bool {
	for _, cue := range transferCues {
		if strings.Contains(folded, cue) {
			return true
		}
	}
	if fastPattern.MatchString(folded) {
		return true
	}
	return ibanPattern.MatchString(strings.ToUpper(folded))
}
