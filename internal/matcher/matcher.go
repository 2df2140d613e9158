// Package matcher recognizes transaction-shaped records in raw statement
// lines. A matcher is an ordered list of pattern rules, each describing one
// statement dialect; rules are tried in order and the first match wins.
package matcher

import (
	"regexp"
	"strings"
)

// Candidate is a raw transaction candidate: the tokens a pattern rule
// extracted from one line. Tokens are unnormalized; the assembler owns
// locale handling.
type Candidate struct {
	Date        string
	Description string
	Amount      string
	Currency    string
	Line        string
}

const (
	// datePat covers numeric dates in the supported separators, ISO dates,
	// and day month-name year forms.
	datePat = `\d{1,2}[./-]\d{1,2}[./-]\d{2,4}|\d{4}-\d{2}-\d{2}|\d{1,2}\s+\p{L}+\.?\s+\d{4}`

	// amountPat covers grouped and ungrouped amounts in both separator
	// conventions, with optional sign, parentheses, and trailing plus. The
	// integer part is either separator-grouped or a plain digit run, so
	// ungrouped thousands like 15000,00 are recognized too.
	amountPat = `\(?-?(?:\d{1,3}(?:[.,]\d{3})+|\d+)(?:[.,]\d{1,2})?\)?\+?`

	currencyPat = `TRY|TL|USD|EUR|GBP|CHF|₺|\$|€|£`
)

// Rule is a single statement-dialect pattern. Each rule extracts exactly a
// date token, a description span, and a primary amount token; trailing
// numeric columns matched by a rule are running balance or loyalty points
// and are discarded.
type Rule struct {
	Name string
	re   *regexp.Regexp
}

func mustRule(name, pattern string) Rule {
	pattern = strings.ReplaceAll(pattern, "{date}", datePat)
	pattern = strings.ReplaceAll(pattern, "{amount}", amountPat)
	pattern = strings.ReplaceAll(pattern, "{currency}", currencyPat)
	return Rule{Name: name, re: regexp.MustCompile(pattern)}
}

// defaultRules are ordered from most to least specific. More specific
// dialects must come first so that trailing balance columns are not
// mistaken for the transaction amount by a looser rule.
var defaultRules = []Rule{
	// Row number, date, description, amount, running balance.
	mustRule("rownum-balance",
		`^\s*\d{1,4}\s+(?P<date>{date})\s+(?P<desc>.+?)\s+(?P<amount>{amount})\s+(?:{amount})\s*$`),
	// Date, description, amount, currency suffix.
	mustRule("currency-suffix",
		`^\s*(?P<date>{date})\s+(?P<desc>.+?)\s+(?P<amount>{amount})\s*(?P<currency>{currency})\s*$`),
	// Date, description, amount, one or more trailing numeric columns
	// (installments, points, balance) that are ignored.
	mustRule("trailing-columns",
		`^\s*(?P<date>{date})\s+(?P<desc>.+?)\s+(?P<amount>{amount})(?:\s+{amount}){1,}\s*$`),
	// Date, description, amount.
	mustRule("basic",
		`^\s*(?P<date>{date})\s+(?P<desc>.+?)\s+(?P<amount>{amount})\s*$`),
}

var (
	dateToken   = regexp.MustCompile(`^(?:` + datePat + `)$`)
	amountToken = regexp.MustCompile(`^(?:` + amountPat + `)\s*(?:` + currencyPat + `)?$`)
)

// Matcher applies the ordered rule set to candidate lines.
type Matcher struct {
	rules []Rule
}

// New returns a Matcher with the default dialect rules.
func New() *Matcher {
	return &Matcher{rules: defaultRules}
}

// NewWithRules returns a Matcher with a custom rule set, tried in order.
func NewWithRules(rules []Rule) *Matcher {
	return &Matcher{rules: rules}
}

// MatchLine tries each rule in order against one line. The first matching
// rule wins. The boolean result is false when no dialect recognized the
// line.
func (m *Matcher) MatchLine(line string) (Candidate, bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return Candidate{}, false
	}

	for _, rule := range m.rules {
		match := rule.re.FindStringSubmatch(trimmed)
		if match == nil {
			continue
		}

		c := Candidate{Line: trimmed}
		for i, name := range rule.re.SubexpNames() {
			switch name {
			case "date":
				c.Date = match[i]
			case "desc":
				c.Description = strings.TrimSpace(match[i])
			case "amount":
				c.Amount = match[i]
			case "currency":
				c.Currency = match[i]
			}
		}

		if c.Date == "" || c.Description == "" || c.Amount == "" {
			continue
		}
		return c, true
	}

	return Candidate{}, false
}

// MatchLines applies MatchLine to every line of a text block.
func (m *Matcher) MatchLines(text string) []Candidate {
	var out []Candidate
	for _, line := range strings.Split(text, "\n") {
		if c, ok := m.MatchLine(line); ok {
			out = append(out, c)
		}
	}
	return out
}

// IsDateToken reports whether s is a complete date token.
func IsDateToken(s string) bool {
	return dateToken.MatchString(strings.TrimSpace(s))
}

// IsAmountToken reports whether s is a complete amount token, with an
// optional currency suffix.
func IsAmountToken(s string) bool {
	return amountToken.MatchString(strings.TrimSpace(s))
}
