// Package models defines the canonical data types flowing through the
// extraction and categorization pipeline.
package models

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// TransactionType is the inferred direction of a transaction.
type TransactionType string

const (
	TypeIncome  TransactionType = "income"
	TypeExpense TransactionType = "expense"
)

// SourceKind identifies the kind of statement a document represents.
// Sign conventions differ between the two.
type SourceKind string

const (
	SourceBankAccount SourceKind = "bank_account"
	SourceCreditCard  SourceKind = "credit_card"
)

// ExtractionMethod identifies which cascade tier produced a row.
type ExtractionMethod string

const (
	MethodTable ExtractionMethod = "table"
	MethodText  ExtractionMethod = "text"
	MethodImage ExtractionMethod = "image"
	MethodNone  ExtractionMethod = "none"
)

// Quality is the coarse ordinal describing how trustworthy an extraction
// result is, driven by the tier that produced it.
type Quality string

const (
	QualityHigh   Quality = "high"
	QualityMedium Quality = "medium"
	QualityLow    Quality = "low"
)

// TransactionRecord is the canonical output unit of the pipeline. Every
// record carries a normalized ISO date, a cleaned description, and a fully
// populated two-level category; a raw uncategorized row never reaches the
// output.
type TransactionRecord struct {
	Date         string           `csv:"Date" json:"date"`
	Description  string           `csv:"Description" json:"description"`
	Amount       decimal.Decimal  `csv:"Amount" json:"amount"`
	Currency     string           `csv:"Currency" json:"currency"`
	Type         TransactionType  `csv:"Type" json:"type"`
	CategoryMain string           `csv:"CategoryMain" json:"category_main"`
	CategorySub  string           `csv:"CategorySub" json:"category_sub"`
	Confidence   float64          `csv:"Confidence" json:"confidence"`
	SourceTag    ExtractionMethod `csv:"SourceTag" json:"source_tag"`
}

// Validate checks the record invariants described above.
func (r TransactionRecord) Validate() error {
	if r.Date == "" {
		return errors.New("date is required")
	}
	if r.Description == "" {
		return errors.New("description is required")
	}
	if r.Type != TypeIncome && r.Type != TypeExpense {
		return fmt.Errorf("invalid transaction type %q", r.Type)
	}
	if r.CategoryMain == "" || r.CategorySub == "" {
		return errors.New("category must be fully populated")
	}
	if len(r.Currency) != 3 {
		return fmt.Errorf("currency must be a 3-letter code; got %q", r.Currency)
	}
	return nil
}

// CategoryRule is a user-supplied categorization override. Rules are
// consumed read-only per extraction request; the pipeline never mutates
// them.
type CategoryRule struct {
	Pattern      string  `yaml:"pattern" json:"pattern"`
	CategoryMain string  `yaml:"category_main" json:"category_main"`
	CategorySub  string  `yaml:"category_sub,omitempty" json:"category_sub,omitempty"`
	Weight       float64 `yaml:"weight,omitempty" json:"weight,omitempty"`
}

// EffectiveWeight returns the rule weight, defaulting to 1.0 when unset.
func (r CategoryRule) EffectiveWeight() float64 {
	if r.Weight == 0 {
		return 1.0
	}
	return r.Weight
}

// Diagnostics describes how an extraction request went. A document that
// yields zero transactions is reported as low quality with zero rows, which
// is distinct from a hard processing failure (also zero rows, but with a
// terminal warning).
type Diagnostics struct {
	RequestID string           `json:"request_id"`
	Method    ExtractionMethod `json:"method"`
	Quality   Quality          `json:"quality"`
	Rows      int              `json:"rows"`
	Warnings  []string         `json:"warnings"`
}
