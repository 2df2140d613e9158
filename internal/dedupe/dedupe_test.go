package dedupe

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"budgy/docproc/internal/models"
)

func rec(date, desc string, amount string, confidence float64) models.TransactionRecord {
	return models.TransactionRecord{
		Date:        date,
		Description: desc,
		Amount:      decimal.RequireFromString(amount),
		Confidence:  confidence,
	}
}

func TestCollapseKeepsHigherConfidence(t *testing.T) {
	in := []models.TransactionRecord{
		rec("2024-03-05", "STARBUCKS KADIKOY", "45.50", 0.5),
		rec("2024-03-05", "STARBUCKS BESIKTAS", "45.50", 0.9),
	}

	// The first 10 characters of both descriptions agree, so the records
	// collide and the higher-confidence one survives.
	out := Collapse(in, 10)
	require.Len(t, out, 1)
	assert.Equal(t, "STARBUCKS BESIKTAS", out[0].Description)
	assert.Equal(t, 0.9, out[0].Confidence)
}

func TestCollapseKeyIsCaseInsensitive(t *testing.T) {
	in := []models.TransactionRecord{
		rec("2024-03-05", "starbucks", "45.50", 0.9),
		rec("2024-03-05", "STARBUCKS", "45.50", 0.5),
	}

	out := Collapse(in, 10)
	require.Len(t, out, 1)
	assert.Equal(t, "starbucks", out[0].Description)
}

func TestCollapseKeepsChargeAndRefundApart(t *testing.T) {
	charge := rec("2024-03-05", "TRENDYOL SIPARIS", "45.50", 0.9)
	charge.Type = models.TypeExpense
	refund := rec("2024-03-05", "TRENDYOL SIPARIS", "45.50", 0.9)
	refund.Type = models.TypeIncome

	out := Collapse([]models.TransactionRecord{charge, refund}, 10)
	assert.Len(t, out, 2)
}

func TestCollapseDistinguishesBeyondKey(t *testing.T) {
	in := []models.TransactionRecord{
		rec("2024-03-05", "STARBUCKS", "45.50", 0.9),
		rec("2024-03-06", "STARBUCKS", "45.50", 0.9),
		rec("2024-03-05", "STARBUCKS", "46.00", 0.9),
	}

	out := Collapse(in, 10)
	assert.Len(t, out, 3)
}

func TestCollapsePreservesFirstSeenOrder(t *testing.T) {
	in := []models.TransactionRecord{
		rec("2024-03-05", "MIGROS", "120.00", 0.9),
		rec("2024-03-05", "STARBUCKS", "45.50", 0.5),
		rec("2024-03-05", "STARBUCKS", "45.50", 0.9),
	}

	out := Collapse(in, 10)
	require.Len(t, out, 2)
	assert.Equal(t, "MIGROS", out[0].Description)
	assert.Equal(t, 0.9, out[1].Confidence)
}

func TestSortByDate(t *testing.T) {
	records := []models.TransactionRecord{
		rec("2024-03-06", "B", "1.00", 0.9),
		rec("2024-03-05", "A1", "1.00", 0.9),
		rec("2024-03-05", "A2", "2.00", 0.9),
	}

	SortByDate(records, false)
	assert.Equal(t, "A1", records[0].Description)
	assert.Equal(t, "A2", records[1].Description)
	assert.Equal(t, "B", records[2].Description)

	SortByDate(records, true)
	assert.Equal(t, "B", records[0].Description)
	assert.Equal(t, "A1", records[1].Description)
}
