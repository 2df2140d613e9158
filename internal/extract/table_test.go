package extract

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"budgy/docproc/internal/logging"
)

func extractTable(t *testing.T, grid [][]string) []Row {
	t.Helper()
	doc := &fakeDocument{tables: [][][]string{grid}}
	rows, err := NewTableStrategy(&logging.MockLogger{}).Extract(context.Background(), doc)
	require.NoError(t, err)
	return rows
}

func TestTableHeaderMapping(t *testing.T) {
	rows := extractTable(t, [][]string{
		{"İşlem Tarihi", "Açıklama", "İşlem Tutarı", "Bakiye"},
		{"05.03.2024", "STARBUCKS KADIKOY", "45,50", "1.200,00"},
	})

	require.Len(t, rows, 1)
	assert.Equal(t, "05.03.2024", rows[0].Candidate.Date)
	assert.Equal(t, "STARBUCKS KADIKOY", rows[0].Candidate.Description)
	assert.Equal(t, "45,50", rows[0].Candidate.Amount)
}

func TestTableEnglishHeaders(t *testing.T) {
	rows := extractTable(t, [][]string{
		{"Date", "Description", "Amount", "Currency"},
		{"2024-03-05", "AMAZON MARKETPLACE", "99.90", "USD"},
	})

	require.Len(t, rows, 1)
	assert.Equal(t, "USD", rows[0].Candidate.Currency)
	assert.Equal(t, "99.90", rows[0].Candidate.Amount)
}

func TestTableHeuristicFallbackWithoutHeader(t *testing.T) {
	// No recognizable header: cells are mapped by shape. The last
	// amount-looking cell that is not the date becomes the amount.
	rows := extractTable(t, [][]string{
		{"Col1", "Col2", "Col3"},
		{"05/03/2024", "MIGROS SANAL MARKET", "120,00"},
		{"06/03/2024", "OPET AKARYAKIT", "800,00"},
	})

	require.Len(t, rows, 2)
	assert.Equal(t, "05/03/2024", rows[0].Candidate.Date)
	assert.Equal(t, "MIGROS SANAL MARKET", rows[0].Candidate.Description)
	assert.Equal(t, "120,00", rows[0].Candidate.Amount)
}

func TestTableSkipsIncompleteRows(t *testing.T) {
	rows := extractTable(t, [][]string{
		{"Tarih", "Açıklama", "Tutar"},
		{"05/03/2024", "STARBUCKS", "45,50"},
		{"", "DEVIR BAKIYESI", ""},
		{"garbage", "NO DATE HERE", "not-an-amount"},
	})

	require.Len(t, rows, 1)
	assert.Equal(t, "STARBUCKS", rows[0].Candidate.Description)
}

func TestTableHeaderOnlyYieldsNothing(t *testing.T) {
	rows := extractTable(t, [][]string{{"Tarih", "Açıklama", "Tutar"}})
	assert.Empty(t, rows)
}
