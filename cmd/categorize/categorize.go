// Package categorize handles the single-transaction categorization command
package categorize

import (
	"github.com/spf13/cobra"

	"budgy/docproc/cmd/root"
	"budgy/docproc/internal/categorize"
	"budgy/docproc/internal/models"
	"budgy/docproc/internal/rulestore"
)

// Cmd represents the categorize command
var Cmd = &cobra.Command{
	Use:   "categorize",
	Short: "Categorize a single transaction description",
	Long:  `Categorize resolves the category a description would receive, using the same deterministic rules as full processing.`,
	Run:   categorizeFunc,
}

func init() {
	Cmd.Flags().StringVarP(&root.Description, "description", "d", "", "Transaction description to categorize")
	Cmd.Flags().StringVarP(&root.TxType, "type", "t", "expense", "Transaction type: income or expense")
	_ = Cmd.MarkFlagRequired("description")
}

func categorizeFunc(cmd *cobra.Command, args []string) {
	logger := root.GetLogrusAdapter()

	txType := models.TransactionType(root.TxType)
	if txType != models.TypeIncome && txType != models.TypeExpense {
		logger.Fatalf("Unknown transaction type %q", root.TxType)
	}

	var rules []models.CategoryRule
	if root.SharedFlags.UserID != "" {
		store := rulestore.NewYAMLRuleStore(root.Cfg.Rules.Directory, logger)
		var err error
		rules, err = store.Fetch(root.SharedFlags.UserID)
		if err != nil {
			logger.Warnf("User rules unavailable: %v", err)
		}
	}

	engine := categorize.NewEngine(logger)
	cat := engine.Categorize(root.Description, txType, rules)
	logger.Infof("Category: %s / %s", cat.Main, cat.Sub)
}
