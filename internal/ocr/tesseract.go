package ocr

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"

	"budgy/docproc/internal/logging"
	"budgy/docproc/internal/parsererror"
)

// TesseractRecognizer shells out to the tesseract binary. The zero value is
// usable.
type TesseractRecognizer struct {
	// Binary overrides the executable name, for tests.
	Binary string

	log logging.Logger
}

// NewTesseractRecognizer returns a recognizer backed by the local tesseract
// installation.
func NewTesseractRecognizer(logger logging.Logger) *TesseractRecognizer {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &TesseractRecognizer{log: logger}
}

// Recognize runs tesseract over the PNG bytes on stdin and returns the
// recognized text. langHint uses tesseract's own "tur+eng" syntax.
func (t *TesseractRecognizer) Recognize(ctx context.Context, image []byte, langHint string) (string, error) {
	binary := t.Binary
	if binary == "" {
		binary = "tesseract"
	}

	if _, err := exec.LookPath(binary); err != nil {
		return "", &parsererror.RecognitionError{
			Engine: "tesseract",
			Err:    fmt.Errorf("binary not found: %w", err),
		}
	}

	args := []string{"stdin", "stdout"}
	if langHint != "" {
		args = append(args, "-l", langHint)
	}

	cmd := exec.CommandContext(ctx, binary, args...)
	cmd.Stdin = bytes.NewReader(image)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if t.log != nil {
			t.log.WithError(err).Warn("tesseract run failed",
				logging.Field{Key: "stderr", Value: stderr.String()})
		}
		return "", &parsererror.RecognitionError{Engine: "tesseract", Err: err}
	}

	return stdout.String(), nil
}
