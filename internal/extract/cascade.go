package extract

import (
	"context"
	"errors"
	"fmt"

	"budgy/docproc/internal/docreader"
	"budgy/docproc/internal/logging"
	"budgy/docproc/internal/models"
)

var (
	// ErrRecognizerUnavailable means no text recognition engine is
	// configured for the image tier.
	ErrRecognizerUnavailable = errors.New("no text recognizer configured")
	// ErrRendererUnavailable means the document cannot be rendered to
	// images.
	ErrRendererUnavailable = errors.New("no page renderer available")
)

// mediumQualityMinRows is the row count below which a text-tier result is
// downgraded from medium to low quality.
const mediumQualityMinRows = 3

// Result is the outcome of one cascade run.
type Result struct {
	Rows       []Row
	Method     models.ExtractionMethod
	Quality    models.Quality
	Confidence float64
	Warnings   []string
}

// Controller runs extraction tiers in trust order and stops at the first
// one that yields rows. The image tier is special: it only engages when the
// cheaper tiers produced fewer rows than MinRows, because recognition is
// slow and may cost money.
type Controller struct {
	table   Strategy
	text    Strategy
	image   Strategy
	log     logging.Logger
	minRows int
}

// NewController wires the three tiers. image may be nil when the fallback
// is disabled. minRows below 1 is treated as 1.
func NewController(table, text, image Strategy, minRows int, logger logging.Logger) *Controller {
	if logger == nil {
		logger = logging.GetLogger()
	}
	if minRows < 1 {
		minRows = 1
	}
	return &Controller{
		table:   table,
		text:    text,
		image:   image,
		log:     logger,
		minRows: minRows,
	}
}

// Run executes the cascade. It never returns an error: tiers that fail
// contribute a warning and the cascade moves on. A document no tier could
// read yields an empty Result with the warnings explaining why.
func (c *Controller) Run(ctx context.Context, doc docreader.Document) Result {
	res := Result{Method: models.MethodNone, Quality: models.QualityLow}

	for _, s := range []Strategy{c.table, c.text} {
		if s == nil {
			continue
		}
		rows, err := s.Extract(ctx, doc)
		if err != nil {
			msg := fmt.Sprintf("%s extraction failed: %v", s.Name(), err)
			res.Warnings = append(res.Warnings, msg)
			c.log.WithError(err).Warn("extraction tier failed",
				logging.Field{Key: logging.FieldStrategy, Value: s.Name()})
			continue
		}
		c.log.Debug("extraction tier finished",
			logging.Field{Key: logging.FieldStrategy, Value: s.Name()},
			logging.Field{Key: logging.FieldCount, Value: len(rows)})
		if len(rows) == 0 {
			continue
		}

		res.Rows = rows
		res.Method = s.Method()
		res.Confidence = s.Confidence()
		res.Quality = qualityFor(s.Method(), len(rows))

		if len(rows) >= c.minRows {
			return res
		}
		// Below threshold: keep these rows as the fallback answer but let
		// the image tier try to do better.
		break
	}

	if len(res.Rows) >= c.minRows || c.image == nil {
		if len(res.Rows) == 0 && c.image == nil {
			res.Warnings = append(res.Warnings, "image fallback disabled and no rows extracted")
		}
		return res
	}

	rows, err := c.image.Extract(ctx, doc)
	if err != nil {
		msg := fmt.Sprintf("image extraction failed: %v", err)
		res.Warnings = append(res.Warnings, msg)
		c.log.WithError(err).Warn("extraction tier failed",
			logging.Field{Key: logging.FieldStrategy, Value: c.image.Name()})
		return res
	}
	c.log.Debug("extraction tier finished",
		logging.Field{Key: logging.FieldStrategy, Value: c.image.Name()},
		logging.Field{Key: logging.FieldCount, Value: len(rows)})

	// Only supersede the cheaper tiers when recognition actually found
	// more than they did.
	if len(rows) > len(res.Rows) {
		res.Rows = rows
		res.Method = c.image.Method()
		res.Confidence = c.image.Confidence()
		res.Quality = models.QualityLow
	}

	return res
}

func qualityFor(method models.ExtractionMethod, rowCount int) models.Quality {
	switch method {
	case models.MethodTable:
		return models.QualityHigh
	case models.MethodText:
		if rowCount < mediumQualityMinRows {
			return models.QualityLow
		}
		return models.QualityMedium
	default:
		return models.QualityLow
	}
}
