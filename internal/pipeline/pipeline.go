// Package pipeline wires the full processing chain for one document:
// open, extract via the cascade, assemble, categorize, dedupe, sort.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"budgy/docproc/internal/assemble"
	"budgy/docproc/internal/categorize"
	"budgy/docproc/internal/config"
	"budgy/docproc/internal/dedupe"
	"budgy/docproc/internal/docreader"
	"budgy/docproc/internal/extract"
	"budgy/docproc/internal/logging"
	"budgy/docproc/internal/matcher"
	"budgy/docproc/internal/models"
	"budgy/docproc/internal/ocr"
	"budgy/docproc/internal/rulestore"
)

// Options selects per-request behavior.
type Options struct {
	// UserID selects whose categorization rules apply; empty means none.
	UserID string
	// Source is the statement kind, driving the sign convention.
	Source models.SourceKind
	// CurrencyHint overrides the configured default currency.
	CurrencyHint string
	// LocaleHint is passed to the recognizer as the statement language.
	LocaleHint string
}

// Pipeline processes statement documents end to end.
type Pipeline struct {
	cfg        *config.Config
	recognizer ocr.Recognizer
	rules      rulestore.RuleStore
	engine     *categorize.Engine
	log        logging.Logger
}

// New builds a pipeline from configuration. recognizer may be nil when no
// engine is configured; the image tier then degrades to a warning.
func New(cfg *config.Config, recognizer ocr.Recognizer, rules rulestore.RuleStore, logger logging.Logger) *Pipeline {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Pipeline{
		cfg:        cfg,
		recognizer: recognizer,
		rules:      rules,
		engine:     categorize.NewEngine(logger),
		log:        logger,
	}
}

// Process runs the chain over one document. It never returns an error: a
// document that cannot be processed yields zero records and diagnostics
// whose warnings carry the terminal reason. Malformed individual rows are
// dropped silently; only whole-tier conditions surface as warnings.
func (p *Pipeline) Process(ctx context.Context, document []byte, opts Options) ([]models.TransactionRecord, models.Diagnostics) {
	diag := models.Diagnostics{
		RequestID: uuid.NewString(),
		Method:    models.MethodNone,
		Quality:   models.QualityLow,
	}
	log := p.log.WithField(logging.FieldRequest, diag.RequestID)
	started := time.Now()

	doc, err := docreader.OpenPDF(document)
	if err != nil {
		diag.Warnings = append(diag.Warnings, fmt.Sprintf("cannot open document: %v", err))
		log.WithError(err).Warn("document rejected")
		return []models.TransactionRecord{}, diag
	}
	defer func() { _ = doc.Close() }()

	m := matcher.New()
	controller := extract.NewController(
		extract.NewTableStrategy(log),
		extract.NewTextStrategy(m, log),
		p.imageStrategy(doc, m, opts, log),
		p.cfg.OCR.MinRowsThreshold,
		log,
	)

	result := controller.Run(ctx, doc)
	diag.Method = result.Method
	diag.Quality = result.Quality
	diag.Warnings = append(diag.Warnings, result.Warnings...)

	assembler := assemble.New(p.currency(opts), p.positiveIsExpense(opts.Source), log)
	records := assembler.Assemble(result.Rows, result.Confidence, result.Method)

	rules := p.fetchRules(opts.UserID, &diag, log)
	for i := range records {
		cat := p.engine.Categorize(records[i].Description, records[i].Type, rules)
		records[i].CategoryMain = cat.Main
		records[i].CategorySub = cat.Sub
	}

	records = dedupe.Collapse(records, p.cfg.Dedupe.PrefixLength)
	dedupe.SortByDate(records, p.cfg.Sort.Descending)

	diag.Rows = len(records)
	diag.Quality = finalQuality(diag.Quality, diag.Rows)
	log.Info("document processed",
		logging.Field{Key: logging.FieldMethod, Value: string(diag.Method)},
		logging.Field{Key: logging.FieldQuality, Value: string(diag.Quality)},
		logging.Field{Key: logging.FieldCount, Value: diag.Rows},
		logging.Field{Key: logging.FieldDuration, Value: time.Since(started).String()})
	return records, diag
}

// finalQuality downgrades the extraction-tier quality when assembly left
// nothing: a document that yields zero transactions is a low-quality result
// no matter how readable its pages were.
func finalQuality(q models.Quality, rows int) models.Quality {
	if rows == 0 {
		return models.QualityLow
	}
	return q
}

func (p *Pipeline) imageStrategy(doc docreader.PageRenderer, m *matcher.Matcher, opts Options, log logging.Logger) extract.Strategy {
	if !p.cfg.OCR.Enabled {
		return nil
	}

	s := extract.NewImageStrategy(p.recognizer, doc, m, log)
	s.Languages = p.cfg.OCR.Languages
	if opts.LocaleHint != "" {
		s.Languages = opts.LocaleHint
	}
	s.DPI = p.cfg.OCR.DPI
	s.MaxPages = p.cfg.OCR.MaxPages
	s.Timeout = time.Duration(p.cfg.OCR.TimeoutSeconds) * time.Second
	return s
}

func (p *Pipeline) currency(opts Options) string {
	if opts.CurrencyHint != "" {
		return opts.CurrencyHint
	}
	return p.cfg.Currency.Default
}

func (p *Pipeline) positiveIsExpense(source models.SourceKind) bool {
	if source == models.SourceBankAccount {
		return p.cfg.Signs.BankAccount.PositiveIsExpense
	}
	return p.cfg.Signs.CreditCard.PositiveIsExpense
}

// fetchRules degrades gracefully: a broken rules file costs the user their
// overrides, not the whole document.
func (p *Pipeline) fetchRules(userID string, diag *models.Diagnostics, log logging.Logger) []models.CategoryRule {
	if userID == "" || p.rules == nil {
		return nil
	}
	rules, err := p.rules.Fetch(userID)
	if err != nil {
		diag.Warnings = append(diag.Warnings, fmt.Sprintf("user rules unavailable: %v", err))
		log.WithError(err).Warn("failed to load user rules",
			logging.Field{Key: logging.FieldUserID, Value: userID})
		return nil
	}
	return rules
}
