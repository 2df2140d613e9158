package parsererror

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseErrorWrapsCause(t *testing.T) {
	cause := errors.New("bad separator")
	err := &ParseError{Stage: "assemble", Field: "amount", Value: "12,34,56", Err: cause}

	assert.Contains(t, err.Error(), "assemble")
	assert.Contains(t, err.Error(), "amount")
	assert.Contains(t, err.Error(), "12,34,56")
	assert.ErrorIs(t, err, cause)
}

func TestDataExtractionError(t *testing.T) {
	err := &DataExtractionError{Page: 3, Reason: "page out of range"}
	assert.Contains(t, err.Error(), "page 3")
	assert.Contains(t, err.Error(), "page out of range")

	cause := errors.New("stream truncated")
	wrapped := &DataExtractionError{Page: 0, Reason: "unreadable", Err: cause}
	assert.ErrorIs(t, wrapped, cause)
}

func TestRecognitionError(t *testing.T) {
	cause := errors.New("binary not found")
	err := &RecognitionError{Engine: "tesseract", Err: cause}
	assert.Contains(t, err.Error(), "tesseract")
	assert.ErrorIs(t, err, cause)
}

func TestInvalidFormatError(t *testing.T) {
	err := &InvalidFormatError{ExpectedFormat: "PDF", Msg: "missing header"}
	assert.Contains(t, err.Error(), "PDF")
	assert.Contains(t, err.Error(), "missing header")
}
