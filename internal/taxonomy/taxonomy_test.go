package taxonomy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaxonomySides(t *testing.T) {
	assert.True(t, IsIncomeMain("Salary & Wages"))
	assert.True(t, IsIncomeMain("Other Income"))
	assert.True(t, IsExpenseMain("Food & Groceries"))
	assert.True(t, IsExpenseMain("Miscellaneous"))

	assert.False(t, IsIncomeMain("Food & Groceries"))
	assert.False(t, IsExpenseMain("Salary & Wages"))
	assert.False(t, IsIncomeMain("No Such Category"))
}

func TestSubsForAndDefaultSub(t *testing.T) {
	subs := SubsFor("Food & Groceries")
	require.NotEmpty(t, subs)
	assert.Contains(t, subs, "Coffee/Tea")

	assert.Equal(t, subs[0], DefaultSub("Food & Groceries"))
	assert.Equal(t, "Unplanned Purchases", DefaultSub("No Such Category"))
}

func TestLookupMCC(t *testing.T) {
	cat, ok := LookupMCC("5411")
	require.True(t, ok)
	assert.Equal(t, "Food & Groceries", cat.Main)

	_, ok = LookupMCC("0000")
	assert.False(t, ok)
}

func TestKeywordsOrderedLongestFirst(t *testing.T) {
	kws := Keywords()
	require.NotEmpty(t, kws)
	for i := 1; i < len(kws); i++ {
		prev, cur := kws[i-1].Keyword, kws[i].Keyword
		if len(prev) == len(cur) {
			assert.LessOrEqual(t, prev, cur)
		} else {
			assert.Greater(t, len(prev), len(cur))
		}
	}
}

func TestKeywordCategoriesAreValidLeaves(t *testing.T) {
	for _, kw := range Keywords() {
		valid := IsIncomeMain(kw.Category.Main) || IsExpenseMain(kw.Category.Main)
		require.True(t, valid, "keyword %q points at unknown main %q", kw.Keyword, kw.Category.Main)
		assert.Contains(t, SubsFor(kw.Category.Main), kw.Category.Sub,
			"keyword %q points at unknown sub %q", kw.Keyword, kw.Category.Sub)
	}
}

func TestDefaults(t *testing.T) {
	assert.Equal(t, Category{Main: "Other Income", Sub: "Lottery/Prize"}, DefaultIncome())
	assert.Equal(t, Category{Main: "Miscellaneous", Sub: "Unplanned Purchases"}, DefaultExpense())
}
