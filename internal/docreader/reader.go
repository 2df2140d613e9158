// Package docreader exposes the document structure the extraction cascade
// consumes: per-page native text and, where the document carries one, a
// structured table cell grid. It also renders pages to raster images for the
// image-recognition fallback tier. The core never manages document
// lifecycle or file I/O beyond this package.
package docreader

import (
	"context"
	"strings"
)

// Document is the read-only view of an opened statement document.
type Document interface {
	// NumPages returns the number of pages.
	NumPages() int

	// PageText returns the native text of a page (0-based), empty when the
	// page has no extractable text.
	PageText(page int) (string, error)

	// PageTable returns the structured table cell grid of a page, or nil
	// when the page exposes no usable table.
	PageTable(page int) ([][]string, error)
}

// PageRenderer renders a page to a raster image for external text
// recognition.
type PageRenderer interface {
	// RenderPage rasterizes a page (0-based) at the given resolution and
	// returns PNG bytes.
	RenderPage(ctx context.Context, page int, dpi int) ([]byte, error)
}

// UnresolvedGlyphRatio returns the fraction of characters that are
// replacement runes or unresolved CID glyph references. A high ratio means
// the page's native text is garbage and the image tier should take over.
func UnresolvedGlyphRatio(text string) float64 {
	if text == "" {
		return 0
	}
	total := 0
	bad := strings.Count(text, "(cid:") * 5
	for _, r := range text {
		total++
		if r == '�' {
			bad++
		}
	}
	if total == 0 {
		return 0
	}
	ratio := float64(bad) / float64(total)
	if ratio > 1 {
		ratio = 1
	}
	return ratio
}
