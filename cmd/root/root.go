// Package root contains the root command for the application
package root

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"budgy/docproc/internal/config"
	"budgy/docproc/internal/logging"
	"budgy/docproc/internal/ocr"
)

// CommonFlags represents the flags shared by the processing commands.
type CommonFlags struct {
	Input    string
	Output   string
	Source   string
	UserID   string
	Currency string
}

var (
	// Log is the shared logger instance for commands
	Log = logrus.New()

	// Cfg is the loaded application configuration, available after
	// PersistentPreRun.
	Cfg *config.Config

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "docproc",
		Short: "Extract and categorize transactions from bank and card statements.",
		Long: `docproc reads PDF bank account and credit card statements, extracts
the transaction rows, normalizes dates and amounts, and assigns each
transaction a two-level category.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to docproc!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cfg, err := config.Load()
			if err != nil {
				Log.Fatalf("Configuration error: %v", err)
			}
			Cfg = cfg

			level, err := logrus.ParseLevel(cfg.Log.Level)
			if err != nil {
				level = logrus.InfoLevel
			}
			Log.SetLevel(level)
			logging.SetAllLogLevels(level)
			if cfg.Log.Format == "json" {
				Log.SetFormatter(&logrus.JSONFormatter{})
			}
		},
	}

	// SharedFlags holds flag values common to the processing commands.
	SharedFlags = CommonFlags{}

	// Categorize command flags
	Description string
	TxType      string
)

// Init initializes the root command and all flags
func Init() {
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Input, "input", "i", "", "Input statement PDF")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Output, "output", "o", "", "Output CSV file (default: stdout)")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Source, "source", "s", "credit_card", "Statement kind: bank_account or credit_card")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.UserID, "user", "u", "", "User whose categorization rules apply")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Currency, "currency", "c", "", "Currency override for rows without one")
}

// GetLogrusAdapter returns the shared logger wrapped in the Logger interface.
func GetLogrusAdapter() logging.Logger {
	return logging.NewLogrusAdapterFromLogger(Log)
}

// BuildRecognizer creates the text recognizer named by the configuration.
// It returns nil when recognition is disabled or the engine cannot start;
// the pipeline degrades gracefully in that case.
func BuildRecognizer(cmd *cobra.Command) ocr.Recognizer {
	if !Cfg.OCR.Enabled {
		return nil
	}

	logger := GetLogrusAdapter()
	switch Cfg.OCR.Engine {
	case "gemini":
		rec, err := ocr.NewGeminiRecognizer(cmd.Context(), Cfg.OCR.APIKey, os.Getenv("GEMINI_MODEL"), logger)
		if err != nil {
			Log.Warnf("Gemini recognizer unavailable: %v", err)
			return nil
		}
		return rec
	default:
		return ocr.NewTesseractRecognizer(logger)
	}
}
