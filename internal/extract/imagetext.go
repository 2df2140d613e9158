package extract

import (
	"context"
	"time"

	"budgy/docproc/internal/docreader"
	"budgy/docproc/internal/logging"
	"budgy/docproc/internal/matcher"
	"budgy/docproc/internal/models"
	"budgy/docproc/internal/ocr"
)

// ImageStrategy is the last-resort tier: it renders pages to images and runs
// an external text recognizer over them. It is expensive, so the Controller
// only engages it when the earlier tiers came up short.
type ImageStrategy struct {
	recognizer ocr.Recognizer
	renderer   docreader.PageRenderer
	matcher    *matcher.Matcher
	log        logging.Logger

	// Languages is the hint passed to the recognizer, e.g. "tur+eng".
	Languages string
	// DPI controls page rendering resolution.
	DPI int
	// MaxPages caps how many pages get recognized; 0 means all.
	MaxPages int
	// Timeout bounds the whole recognition pass; 0 means no bound.
	Timeout time.Duration
}

// NewImageStrategy returns the image recognition tier. recognizer may be
// nil when no engine is configured; Extract then reports an error and the
// Controller records it as a warning.
func NewImageStrategy(recognizer ocr.Recognizer, renderer docreader.PageRenderer, m *matcher.Matcher, logger logging.Logger) *ImageStrategy {
	if m == nil {
		m = matcher.New()
	}
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &ImageStrategy{
		recognizer: recognizer,
		renderer:   renderer,
		matcher:    m,
		log:        logger,
		DPI:        200,
	}
}

func (s *ImageStrategy) Name() string { return "image" }

func (s *ImageStrategy) Method() models.ExtractionMethod { return models.MethodImage }

func (s *ImageStrategy) Confidence() float64 { return ConfidenceImage }

// Extract renders and recognizes pages one at a time. Per-page recognition
// failures are logged and skipped; hitting the timeout returns whatever rows
// were gathered so far.
func (s *ImageStrategy) Extract(ctx context.Context, doc docreader.Document) ([]Row, error) {
	if s.recognizer == nil {
		return nil, ErrRecognizerUnavailable
	}
	if s.renderer == nil {
		return nil, ErrRendererUnavailable
	}

	if s.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}

	pages := doc.NumPages()
	if s.MaxPages > 0 && pages > s.MaxPages {
		pages = s.MaxPages
	}

	dpi := s.DPI
	if dpi <= 0 {
		dpi = 200
	}

	var rows []Row
	for page := 0; page < pages; page++ {
		if err := ctx.Err(); err != nil {
			s.log.Warn("image recognition stopped early",
				logging.Field{Key: logging.FieldPage, Value: page},
				logging.Field{Key: logging.FieldReason, Value: err.Error()})
			return rows, nil
		}

		image, err := s.renderer.RenderPage(ctx, page, dpi)
		if err != nil {
			s.log.WithError(err).Warn("page render failed",
				logging.Field{Key: logging.FieldPage, Value: page})
			continue
		}

		text, err := s.recognizer.Recognize(ctx, image, s.Languages)
		if err != nil {
			s.log.WithError(err).Warn("page recognition failed",
				logging.Field{Key: logging.FieldPage, Value: page})
			continue
		}

		for _, c := range s.matcher.MatchLines(text) {
			rows = append(rows, Row{Candidate: c, Page: page})
		}
	}

	return rows, nil
}
