// Package process handles the statement processing command
package process

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"budgy/docproc/cmd/root"
	"budgy/docproc/internal/export"
	"budgy/docproc/internal/models"
	"budgy/docproc/internal/pipeline"
	"budgy/docproc/internal/rulestore"
)

// Cmd represents the process command
var Cmd = &cobra.Command{
	Use:   "process",
	Short: "Process a statement PDF into categorized transactions",
	Long: `Process extracts transaction rows from a PDF statement, normalizes
them, assigns categories, and writes the result as CSV.`,
	Run: processFunc,
}

var (
	diagnosticsPath string
	outputFormat    string
)

func init() {
	Cmd.Flags().StringVar(&diagnosticsPath, "diagnostics", "", "Write extraction diagnostics as JSON to this file")
	Cmd.Flags().StringVarP(&outputFormat, "format", "f", "csv", "Output format: csv or json")
}

func processFunc(cmd *cobra.Command, args []string) {
	logger := root.GetLogrusAdapter()

	if root.SharedFlags.Input == "" {
		logger.Fatal("Input file is required")
	}

	source := models.SourceKind(root.SharedFlags.Source)
	if source != models.SourceBankAccount && source != models.SourceCreditCard {
		logger.Fatalf("Unknown source kind %q", root.SharedFlags.Source)
	}

	data, err := os.ReadFile(root.SharedFlags.Input)
	if err != nil {
		logger.Fatalf("Error reading input file: %v", err)
	}

	recognizer := root.BuildRecognizer(cmd)
	rules := rulestore.NewYAMLRuleStore(root.Cfg.Rules.Directory, logger)
	p := pipeline.New(root.Cfg, recognizer, rules, logger)

	records, diag := p.Process(cmd.Context(), data, pipeline.Options{
		UserID:       root.SharedFlags.UserID,
		Source:       source,
		CurrencyHint: root.SharedFlags.Currency,
	})

	logger.Infof("Extracted %d transactions via %s (%s quality)", diag.Rows, diag.Method, diag.Quality)
	for _, w := range diag.Warnings {
		logger.Warnf("Warning: %s", w)
	}

	if err := writeRecords(records); err != nil {
		logger.Fatalf("Error writing output: %v", err)
	}

	if diagnosticsPath != "" {
		out, err := json.MarshalIndent(diag, "", "  ")
		if err != nil {
			logger.Fatalf("Error encoding diagnostics: %v", err)
		}
		if err := os.WriteFile(diagnosticsPath, out, 0o644); err != nil {
			logger.Fatalf("Error writing diagnostics: %v", err)
		}
	}

	logger.Info("Statement processing completed successfully!")
}

func writeRecords(records []models.TransactionRecord) error {
	out := os.Stdout
	if root.SharedFlags.Output != "" {
		f, err := os.Create(root.SharedFlags.Output)
		if err != nil {
			return fmt.Errorf("error creating output file %s: %w", root.SharedFlags.Output, err)
		}
		defer func() { _ = f.Close() }()
		out = f
	}

	switch outputFormat {
	case "json":
		return export.WriteJSON(out, records)
	case "csv":
		return export.WriteCSV(out, records)
	default:
		return fmt.Errorf("unknown output format %q", outputFormat)
	}
}
