package normalize

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/language"
)

var lowerTurkish = cases.Lower(language.Turkish)

// Fold lowercases text with Turkish casing rules and collapses the dotless ı
// onto plain i, so that keyword matching treats MIGROS/migros and
// FATURASI/faturası alike.
func Fold(s string) string {
	s = lowerTurkish.String(s)
	return strings.Map(func(r rune) rune {
		if r == 'ı' {
			return 'i'
		}
		return r
	}, s)
}

// mojibakeMarkers are the lead bytes of UTF-8 sequences for Turkish letters;
// seeing them as standalone characters means the text was decoded as
// Latin-1 somewhere upstream.
const mojibakeMarkers = "ÃÄÅÂ"

// RepairMojibake recovers text that went through a UTF-8 → Latin-1 → UTF-8
// round trip (a common statement export defect). The repair re-encodes the
// runes to their Latin-1 bytes and reinterprets those bytes as UTF-8; it is
// applied only when the result is valid and strictly reduces marker count.
func RepairMojibake(s string) string {
	if !strings.ContainsAny(s, mojibakeMarkers) {
		return s
	}

	encoded, err := charmap.ISO8859_1.NewEncoder().String(s)
	if err != nil {
		return s
	}
	if !utf8.ValidString(encoded) {
		return s
	}
	if strings.Count(encoded, "�") > 0 {
		return s
	}
	if countMarkers(encoded) >= countMarkers(s) {
		return s
	}
	return encoded
}

func countMarkers(s string) int {
	n := 0
	for _, r := range s {
		if strings.ContainsRune(mojibakeMarkers, r) {
			n++
		}
	}
	return n
}

// CleanDescription prepares a raw description span for output and matching:
// mojibake repair where recoverable, then whitespace collapsing.
func CleanDescription(s string) string {
	s = RepairMojibake(s)
	return collapseSpaces(s)
}
