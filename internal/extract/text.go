package extract

import (
	"context"

	"budgy/docproc/internal/docreader"
	"budgy/docproc/internal/logging"
	"budgy/docproc/internal/matcher"
	"budgy/docproc/internal/models"
)

// glyphGarbageThreshold marks a page as unreadable when this share of its
// runes could not be resolved to real glyphs. Such pages are left to the
// image tier.
const glyphGarbageThreshold = 0.3

// TextStrategy recognizes transaction rows by matching line patterns on the
// page text layer.
type TextStrategy struct {
	matcher *matcher.Matcher
	log     logging.Logger
}

// NewTextStrategy returns the line-pattern tier.
func NewTextStrategy(m *matcher.Matcher, logger logging.Logger) *TextStrategy {
	if m == nil {
		m = matcher.New()
	}
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &TextStrategy{matcher: m, log: logger}
}

func (s *TextStrategy) Name() string { return "text" }

func (s *TextStrategy) Method() models.ExtractionMethod { return models.MethodText }

func (s *TextStrategy) Confidence() float64 { return ConfidenceText }

// Extract reads each page's text layer and runs the line matcher over it.
// Pages whose text is dominated by unresolved glyphs are skipped.
func (s *TextStrategy) Extract(ctx context.Context, doc docreader.Document) ([]Row, error) {
	var rows []Row

	for page := 0; page < doc.NumPages(); page++ {
		if err := ctx.Err(); err != nil {
			return rows, nil
		}

		text, err := doc.PageText(page)
		if err != nil {
			s.log.WithError(err).Debug("text read failed",
				logging.Field{Key: logging.FieldPage, Value: page})
			continue
		}
		if text == "" {
			continue
		}
		if ratio := docreader.UnresolvedGlyphRatio(text); ratio > glyphGarbageThreshold {
			s.log.Debug("skipping garbled page",
				logging.Field{Key: logging.FieldPage, Value: page},
				logging.Field{Key: "glyph_ratio", Value: ratio})
			continue
		}

		for _, c := range s.matcher.MatchLines(text) {
			rows = append(rows, Row{Candidate: c, Page: page})
		}
	}

	return rows, nil
}
