// Package extract implements the extraction cascade: structured-table
// recognition, line-pattern text recognition, and the image-recognition
// fallback, tried in trust order by the Controller.
package extract

import (
	"context"

	"budgy/docproc/internal/docreader"
	"budgy/docproc/internal/matcher"
	"budgy/docproc/internal/models"
)

// Per-tier confidence. These are bounded trust scores tied to the strategy
// that produced a row, not probabilities.
const (
	ConfidenceTable = 0.9
	ConfidenceText  = 0.75
	ConfidenceImage = 0.5
)

// Row is one extracted transaction candidate together with its provenance.
type Row struct {
	Candidate matcher.Candidate
	Page      int
}

// Strategy is one tier of the extraction cascade.
type Strategy interface {
	// Name identifies the strategy in logs and warnings.
	Name() string

	// Method is the source tag rows from this strategy carry.
	Method() models.ExtractionMethod

	// Confidence is the trust score attached to rows from this strategy.
	Confidence() float64

	// Extract recognizes transaction rows in the document. An error means
	// the tier could not run at all; producing zero rows is not an error.
	Extract(ctx context.Context, doc docreader.Document) ([]Row, error)
}
