package normalize

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// currency tokens stripped before numeric parsing. Symbols first, then
// 2-3 letter codes as standalone prefixes/suffixes.
var (
	currencySymbols = []string{"₺", "$", "€", "£", "TL", "TRY", "USD", "EUR", "GBP", "CHF"}

	europeanDecimal = regexp.MustCompile(`,\d{1,2}$`)
	usDecimal       = regexp.MustCompile(`\.\d{1,2}$`)
	numericOnly     = regexp.MustCompile(`^[-+]?[\d.,]+$`)
)

// ParseAmount normalizes a raw amount token into a signed decimal. It
// disambiguates European ("1.234,56") from US ("1,234.56") separator
// conventions, and understands leading minus, parenthesized negatives, and a
// trailing plus marker. Irrecoverable input yields an error, never a
// silently wrong number.
func ParseAmount(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Zero, fmt.Errorf("empty amount")
	}

	negative := false

	// Parenthesized negatives: (123.45)
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = strings.TrimSuffix(strings.TrimPrefix(s, "("), ")")
	}

	upper := strings.ToUpper(s)
	for _, sym := range currencySymbols {
		upper = strings.ReplaceAll(upper, sym, "")
	}
	s = strings.TrimSpace(upper)
	s = strings.ReplaceAll(s, " ", "")

	// A trailing plus is an explicit credit marker on some card statements.
	s = strings.TrimSuffix(s, "+")

	if strings.HasPrefix(s, "-") {
		negative = true
		s = strings.TrimPrefix(s, "-")
	}
	s = strings.TrimPrefix(s, "+")

	if s == "" || !numericOnly.MatchString(s) {
		return decimal.Zero, fmt.Errorf("unparseable amount %q", raw)
	}

	hasDot := strings.Contains(s, ".")
	hasComma := strings.Contains(s, ",")

	switch {
	case europeanDecimal.MatchString(s) && hasDot:
		// European: dot groups thousands, comma is the decimal mark.
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	case usDecimal.MatchString(s) && hasComma:
		// US: comma groups thousands, dot is the decimal mark.
		s = strings.ReplaceAll(s, ",", "")
	case hasComma && !hasDot && strings.Count(s, ",") == 1:
		s = strings.Replace(s, ",", ".", 1)
	case hasComma:
		// Remaining commas can only be group separators.
		s = strings.ReplaceAll(s, ",", "")
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("unparseable amount %q: %w", raw, err)
	}

	if negative {
		d = d.Neg()
	}
	return d, nil
}
