// Package taxonomy holds the fixed two-level category taxonomy and the
// constant lookup tables (merchant category codes, keyword aliases) used by
// the categorization engine. All data is embedded and loaded exactly once;
// it is immutable for the lifetime of the process.
package taxonomy

import (
	"fmt"
	"sort"
	"sync"

	_ "embed"

	"gopkg.in/yaml.v3"
)

//go:embed data/taxonomy.yaml
var taxonomyYAML []byte

//go:embed data/keywords.yaml
var keywordsYAML []byte

//go:embed data/mcc.yaml
var mccYAML []byte

// Category is a taxonomy leaf.
type Category struct {
	Main string `yaml:"main"`
	Sub  string `yaml:"sub"`
}

// KeywordEntry maps a description substring to a category.
type KeywordEntry struct {
	Keyword  string
	Category Category
}

type mainEntry struct {
	Name string   `yaml:"name"`
	Subs []string `yaml:"subs"`
}

type taxonomyFile struct {
	Income  []mainEntry `yaml:"income"`
	Expense []mainEntry `yaml:"expense"`
}

type keywordRow struct {
	Keyword string `yaml:"keyword"`
	Main    string `yaml:"main"`
	Sub     string `yaml:"sub"`
}

var (
	loadOnce sync.Once

	incomeMains  []string
	expenseMains []string
	subsByMain   map[string][]string
	incomeSet    map[string]bool
	expenseSet   map[string]bool
	keywords     []KeywordEntry
	mccMap       map[string]Category
)

// load parses the embedded data. The data ships with the binary, so a parse
// failure is a build defect and panics at first use.
func load() {
	var tf taxonomyFile
	if err := yaml.Unmarshal(taxonomyYAML, &tf); err != nil {
		panic(fmt.Sprintf("taxonomy: embedded taxonomy.yaml is invalid: %v", err))
	}

	subsByMain = make(map[string][]string, len(tf.Income)+len(tf.Expense))
	incomeSet = make(map[string]bool, len(tf.Income))
	expenseSet = make(map[string]bool, len(tf.Expense))

	for _, e := range tf.Income {
		incomeMains = append(incomeMains, e.Name)
		incomeSet[e.Name] = true
		subsByMain[e.Name] = e.Subs
	}
	for _, e := range tf.Expense {
		expenseMains = append(expenseMains, e.Name)
		expenseSet[e.Name] = true
		subsByMain[e.Name] = e.Subs
	}

	var rows []keywordRow
	if err := yaml.Unmarshal(keywordsYAML, &rows); err != nil {
		panic(fmt.Sprintf("taxonomy: embedded keywords.yaml is invalid: %v", err))
	}
	keywords = make([]KeywordEntry, 0, len(rows))
	for _, r := range rows {
		keywords = append(keywords, KeywordEntry{
			Keyword:  r.Keyword,
			Category: Category{Main: r.Main, Sub: r.Sub},
		})
	}
	// Stable order: longest keyword first, then lexicographic. Ties across
	// equal-length keywords are therefore broken deterministically and
	// independently of file order.
	sort.SliceStable(keywords, func(i, j int) bool {
		if len(keywords[i].Keyword) != len(keywords[j].Keyword) {
			return len(keywords[i].Keyword) > len(keywords[j].Keyword)
		}
		return keywords[i].Keyword < keywords[j].Keyword
	})

	mccMap = make(map[string]Category)
	if err := yaml.Unmarshal(mccYAML, &mccMap); err != nil {
		panic(fmt.Sprintf("taxonomy: embedded mcc.yaml is invalid: %v", err))
	}
}

// IncomeMains returns the income-side main category names in taxonomy order.
func IncomeMains() []string {
	loadOnce.Do(load)
	return incomeMains
}

// ExpenseMains returns the expense-side main category names in taxonomy order.
func ExpenseMains() []string {
	loadOnce.Do(load)
	return expenseMains
}

// IsIncomeMain reports whether main belongs to the income half.
func IsIncomeMain(main string) bool {
	loadOnce.Do(load)
	return incomeSet[main]
}

// IsExpenseMain reports whether main belongs to the expense half.
func IsExpenseMain(main string) bool {
	loadOnce.Do(load)
	return expenseSet[main]
}

// SubsFor returns the ordered valid sub-categories of a main category.
func SubsFor(main string) []string {
	loadOnce.Do(load)
	return subsByMain[main]
}

// DefaultSub returns the first sub-category of a main category, which serves
// as its neutral default. Unknown mains fall back to the expense-side
// default.
func DefaultSub(main string) string {
	loadOnce.Do(load)
	if subs := subsByMain[main]; len(subs) > 0 {
		return subs[0]
	}
	return "Unplanned Purchases"
}

// LookupMCC resolves a 4-digit merchant category code.
func LookupMCC(code string) (Category, bool) {
	loadOnce.Do(load)
	c, ok := mccMap[code]
	return c, ok
}

// Keywords returns the keyword table, longest keyword first.
func Keywords() []KeywordEntry {
	loadOnce.Do(load)
	return keywords
}

// DefaultIncome is the category assigned to income rows nothing else matched.
func DefaultIncome() Category {
	return Category{Main: "Other Income", Sub: "Lottery/Prize"}
}

// DefaultExpense is the category assigned to expense rows nothing else matched.
func DefaultExpense() Category {
	return Category{Main: "Miscellaneous", Sub: "Unplanned Purchases"}
}
