// Package normalize implements locale-aware normalization of the raw tokens
// recovered from statement documents: dates, amounts, and description text.
package normalize

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ISODate is the canonical output layout for all dates.
const ISODate = "2006-01-02"

// numericLayouts are tried in order; the first successful parse wins.
var numericLayouts = []string{
	"02/01/2006",
	"2/1/2006",
	"02/01/06",
	"02.01.2006",
	"2.1.2006",
	"02.01.06",
	"02-01-2006",
	"2-1-2006",
	ISODate,
}

// turkishMonths maps lowercase Turkish month names, full and 3-letter, to
// their month numbers. The fold applied before lookup maps dotless ı to i.
var turkishMonths = map[string]time.Month{
	"ocak": time.January, "oca": time.January,
	"şubat": time.February, "subat": time.February, "şub": time.February, "sub": time.February,
	"mart": time.March, "mar": time.March,
	"nisan": time.April, "nis": time.April,
	"mayis": time.May, "may": time.May,
	"haziran": time.June, "haz": time.June,
	"temmuz": time.July, "tem": time.July,
	"ağustos": time.August, "agustos": time.August, "ağu": time.August, "agu": time.August,
	"eylül": time.September, "eylul": time.September, "eyl": time.September,
	"ekim": time.October, "eki": time.October,
	"kasim": time.November, "kas": time.November,
	"aralik": time.December, "ara": time.December,
}

// englishMonthLayouts cover "DD MonthName YYYY" forms for the English locale.
var englishMonthLayouts = []string{
	"02 Jan 2006",
	"2 Jan 2006",
	"02 January 2006",
	"2 January 2006",
}

var monthNameDate = regexp.MustCompile(`^(\d{1,2})\s+(\p{L}+)\.?\s+(\d{4})$`)

// ParseDate parses a raw date token in any of the supported locale formats.
// The boolean result is false when no format matched.
func ParseDate(raw string) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, false
	}
	s = collapseSpaces(s)

	for _, layout := range numericLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	if m := monthNameDate.FindStringSubmatch(s); m != nil {
		day, _ := strconv.Atoi(m[1])
		year, _ := strconv.Atoi(m[3])
		if month, ok := turkishMonths[Fold(m[2])]; ok {
			if day >= 1 && day <= 31 {
				return time.Date(year, month, day, 0, 0, 0, 0, time.UTC), true
			}
		}
		for _, layout := range englishMonthLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t, true
			}
		}
	}

	return time.Time{}, false
}

// NormalizeDate converts a raw date token to ISO form. Unparseable input is
// returned unchanged so the caller can decide whether to discard the row.
func NormalizeDate(raw string) string {
	if t, ok := ParseDate(raw); ok {
		return t.Format(ISODate)
	}
	return raw
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
