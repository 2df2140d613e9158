package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, raw string) string {
	t.Helper()
	d, err := ParseAmount(raw)
	require.NoError(t, err, "should parse %q", raw)
	return d.String()
}

func TestParseAmountSeparatorConventions(t *testing.T) {
	// Both separator conventions must land on the same value.
	assert.Equal(t, "1234.56", parse(t, "1.234,56"))
	assert.Equal(t, "1234.56", parse(t, "1,234.56"))
	assert.Equal(t, "1234567.89", parse(t, "1.234.567,89"))
	assert.Equal(t, "1234567.89", parse(t, "1,234,567.89"))
}

func TestParseAmountDecimalComma(t *testing.T) {
	assert.Equal(t, "45.5", parse(t, "45,50"))
	assert.Equal(t, "45.5", parse(t, "45.50"))
	assert.Equal(t, "7", parse(t, "7"))
}

func TestParseAmountSigns(t *testing.T) {
	assert.Equal(t, "-123.45", parse(t, "-123,45"))
	assert.Equal(t, "-123.45", parse(t, "(123.45)"))
	assert.Equal(t, "250", parse(t, "250,00+"))
	assert.Equal(t, "99.9", parse(t, "+99.90"))
}

func TestParseAmountStripsCurrencyTokens(t *testing.T) {
	assert.Equal(t, "45.5", parse(t, "45,50 TL"))
	assert.Equal(t, "45.5", parse(t, "₺45,50"))
	assert.Equal(t, "100", parse(t, "100.00 USD"))
	assert.Equal(t, "100", parse(t, "$100.00"))
}

func TestParseAmountErrors(t *testing.T) {
	for _, raw := range []string{"", "abc", "12,34,56abc", "--"} {
		_, err := ParseAmount(raw)
		assert.Error(t, err, "should reject %q", raw)
	}
}
