// Package parsererror defines the typed errors returned at package
// boundaries of the extraction pipeline. Expected "no match" outcomes are
// never modeled as errors; these types cover genuine failures only.
package parsererror

import "fmt"

// ParseError represents a failure to parse a specific field value.
type ParseError struct {
	Stage string
	Field string
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: failed to parse %s='%s': %v",
		e.Stage, e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// InvalidFormatError represents an input document that does not conform to
// any format the pipeline can read.
type InvalidFormatError struct {
	ExpectedFormat string
	Msg            string
}

func (e *InvalidFormatError) Error() string {
	return fmt.Sprintf("invalid document format: %s. Expected: %s", e.Msg, e.ExpectedFormat)
}

// DataExtractionError represents a failure to extract required data from a
// document that itself opened fine.
type DataExtractionError struct {
	Page   int
	Reason string
	Err    error
}

func (e *DataExtractionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("data extraction failed on page %d: %s: %v", e.Page, e.Reason, e.Err)
	}
	return fmt.Sprintf("data extraction failed on page %d: %s", e.Page, e.Reason)
}

func (e *DataExtractionError) Unwrap() error {
	return e.Err
}

// RecognitionError represents a failure of the external image text
// recognition capability. Callers treat it as recoverable.
type RecognitionError struct {
	Engine string
	Err    error
}

func (e *RecognitionError) Error() string {
	return fmt.Sprintf("text recognition failed (%s): %v", e.Engine, e.Err)
}

func (e *RecognitionError) Unwrap() error {
	return e.Err
}
