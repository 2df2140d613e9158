// Package ocr exposes the external image text recognition capability used
// by the image fallback tier. Failures here are recoverable by design: a
// recognizer that cannot run contributes zero rows, never an aborted
// extraction.
package ocr

import "context"

// Recognizer turns a rendered page image into text.
type Recognizer interface {
	// Recognize extracts text from a PNG image. langHint carries the
	// statement language(s) in the engine's own format.
	Recognize(ctx context.Context, image []byte, langHint string) (string, error)
}
