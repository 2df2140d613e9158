package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"budgy/docproc/internal/assemble"
	"budgy/docproc/internal/categorize"
	"budgy/docproc/internal/extract"
	"budgy/docproc/internal/logging"
	"budgy/docproc/internal/matcher"
	"budgy/docproc/internal/models"
)

// TestStatementLineToCategorizedRecord walks one statement line through the
// same stages Process chains together: line matching, record assembly, and
// categorization. It locks the full shape of the output record for a typical
// credit card purchase line.
func TestStatementLineToCategorizedRecord(t *testing.T) {
	log := &logging.MockLogger{}

	cand, ok := matcher.New().MatchLine("05/03/2024 STARBUCKS 45,50")
	require.True(t, ok)

	records := assemble.New("TRY", true, log).Assemble(
		[]extract.Row{{Candidate: cand}},
		extract.ConfidenceText,
		models.MethodText,
	)
	require.Len(t, records, 1)
	rec := records[0]

	cat := categorize.NewEngine(log).Categorize(rec.Description, rec.Type, nil)
	rec.CategoryMain = cat.Main
	rec.CategorySub = cat.Sub

	assert.Equal(t, "2024-03-05", rec.Date)
	assert.Equal(t, "STARBUCKS", rec.Description)
	assert.Equal(t, "45.5", rec.Amount.String())
	assert.Equal(t, "TRY", rec.Currency)
	assert.Equal(t, models.TypeExpense, rec.Type)
	assert.Equal(t, "Food & Groceries", rec.CategoryMain)
	assert.Equal(t, "Coffee/Tea", rec.CategorySub)
	assert.Equal(t, extract.ConfidenceText, rec.Confidence)
	assert.Equal(t, models.MethodText, rec.SourceTag)
	assert.NoError(t, rec.Validate())
}
