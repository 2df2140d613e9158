package docreader

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"sort"
	"strconv"
	"strings"

	"github.com/ledongthuc/pdf"

	"budgy/docproc/internal/logging"
	"budgy/docproc/internal/parsererror"
)

var log = logging.GetLogger()

// cellGapPoints is the minimum horizontal gap between two words that makes
// them land in separate table cells.
const cellGapPoints = 12.0

// PDFDocument reads statement PDFs. Native text comes from the PDF library
// with an external pdftotext fallback for encodings the library cannot
// decode; page rendering shells out to pdftoppm.
type PDFDocument struct {
	reader   *pdf.Reader
	tempPath string
	numPages int
}

// OpenPDF opens a PDF from raw bytes. The bytes are also spilled to a
// temporary file because the poppler tools used for fallback extraction and
// rendering operate on paths.
func OpenPDF(data []byte) (*PDFDocument, error) {
	if len(data) == 0 || !bytes.HasPrefix(data, []byte("%PDF")) {
		return nil, &parsererror.InvalidFormatError{
			ExpectedFormat: "PDF",
			Msg:            "input does not start with a PDF header",
		}
	}

	reader, err := openReader(data)
	if err != nil {
		return nil, &parsererror.InvalidFormatError{
			ExpectedFormat: "PDF",
			Msg:            fmt.Sprintf("cannot read PDF structure: %v", err),
		}
	}

	tempFile, err := os.CreateTemp("", "docproc-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("failed to create temporary PDF file: %w", err)
	}
	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		_ = os.Remove(tempFile.Name())
		return nil, fmt.Errorf("failed to write temporary PDF file: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		_ = os.Remove(tempFile.Name())
		return nil, fmt.Errorf("failed to close temporary PDF file: %w", err)
	}

	return &PDFDocument{
		reader:   reader,
		tempPath: tempFile.Name(),
		numPages: reader.NumPage(),
	}, nil
}

// openReader isolates the library call because it can panic on malformed
// cross-reference tables.
func openReader(data []byte) (r *pdf.Reader, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("PDF library crashed: %v", rec)
		}
	}()
	return pdf.NewReader(bytes.NewReader(data), int64(len(data)))
}

// Close removes the temporary spill file.
func (d *PDFDocument) Close() error {
	if d.tempPath == "" {
		return nil
	}
	err := os.Remove(d.tempPath)
	d.tempPath = ""
	return err
}

// NumPages returns the page count.
func (d *PDFDocument) NumPages() int {
	return d.numPages
}

// PageText returns the native text of a page, reconstructed row by row.
// When the library yields nothing readable it falls back to the external
// pdftotext tool; a page without extractable text returns empty, not an
// error.
func (d *PDFDocument) PageText(page int) (string, error) {
	if page < 0 || page >= d.numPages {
		return "", &parsererror.DataExtractionError{Page: page, Reason: "page out of range"}
	}

	text := d.textByRows(page)
	if strings.TrimSpace(text) != "" && UnresolvedGlyphRatio(text) < 0.5 {
		return text, nil
	}

	text = d.plainText(page)
	if strings.TrimSpace(text) != "" && UnresolvedGlyphRatio(text) < 0.5 {
		return text, nil
	}

	out, err := d.pdftotext(page)
	if err != nil {
		log.WithError(err).Debug("pdftotext fallback unavailable",
			logging.Field{Key: logging.FieldPage, Value: page})
		return text, nil
	}
	return out, nil
}

func (d *PDFDocument) textByRows(page int) (text string) {
	defer func() {
		if rec := recover(); rec != nil {
			text = ""
		}
	}()

	p := d.reader.Page(page + 1)
	if p.V.IsNull() {
		return ""
	}
	rows, err := p.GetTextByRow()
	if err != nil {
		return ""
	}

	var lines []string
	for _, row := range rows {
		var parts []string
		for _, word := range row.Content {
			parts = append(parts, word.S)
		}
		line := strings.TrimSpace(strings.Join(parts, " "))
		if line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}

func (d *PDFDocument) plainText(page int) (text string) {
	defer func() {
		if rec := recover(); rec != nil {
			text = ""
		}
	}()

	p := d.reader.Page(page + 1)
	if p.V.IsNull() {
		return ""
	}
	out, err := p.GetPlainText(nil)
	if err != nil {
		return ""
	}
	return out
}

func (d *PDFDocument) pdftotext(page int) (string, error) {
	if _, err := exec.LookPath("pdftotext"); err != nil {
		return "", fmt.Errorf("pdftotext not available: %w", err)
	}
	pageStr := strconv.Itoa(page + 1)
	out, err := exec.Command("pdftotext", "-layout", "-f", pageStr, "-l", pageStr, d.tempPath, "-").Output()
	if err != nil {
		return "", fmt.Errorf("pdftotext failed: %w", err)
	}
	return strings.TrimSpace(string(out)), nil
}

// PageTable reconstructs a cell grid from word positions. Words on the same
// row separated by a clear horizontal gap become separate cells. A grid
// counts as a table only when at least two rows carry three or more cells;
// otherwise the page is treated as having no usable native table.
func (d *PDFDocument) PageTable(page int) (grid [][]string, err error) {
	if page < 0 || page >= d.numPages {
		return nil, &parsererror.DataExtractionError{Page: page, Reason: "page out of range"}
	}

	defer func() {
		if rec := recover(); rec != nil {
			grid, err = nil, nil
		}
	}()

	p := d.reader.Page(page + 1)
	if p.V.IsNull() {
		return nil, nil
	}
	rows, rowErr := p.GetTextByRow()
	if rowErr != nil {
		return nil, nil
	}

	var out [][]string
	wide := 0
	for _, row := range rows {
		words := make([]pdf.Text, len(row.Content))
		copy(words, row.Content)
		sort.Slice(words, func(i, j int) bool { return words[i].X < words[j].X })

		var cells []string
		var cell strings.Builder
		var prevEnd float64
		for i, w := range words {
			if strings.TrimSpace(w.S) == "" {
				continue
			}
			if i > 0 && w.X-prevEnd > cellGapPoints && cell.Len() > 0 {
				cells = append(cells, strings.TrimSpace(cell.String()))
				cell.Reset()
			}
			if cell.Len() > 0 {
				cell.WriteByte(' ')
			}
			cell.WriteString(w.S)
			prevEnd = w.X + w.W
		}
		if cell.Len() > 0 {
			cells = append(cells, strings.TrimSpace(cell.String()))
		}

		if len(cells) >= 2 {
			out = append(out, cells)
		}
		if len(cells) >= 3 {
			wide++
		}
	}

	if wide < 2 {
		return nil, nil
	}
	return out, nil
}

// RenderPage rasterizes a page to PNG at the given dpi using pdftoppm. An
// unavailable tool is a recoverable condition for the caller.
func (d *PDFDocument) RenderPage(ctx context.Context, page int, dpi int) ([]byte, error) {
	if page < 0 || page >= d.numPages {
		return nil, &parsererror.DataExtractionError{Page: page, Reason: "page out of range"}
	}
	if _, err := exec.LookPath("pdftoppm"); err != nil {
		return nil, &parsererror.RecognitionError{
			Engine: "pdftoppm",
			Err:    fmt.Errorf("renderer not available: %w", err),
		}
	}

	pageStr := strconv.Itoa(page + 1)
	cmd := exec.CommandContext(ctx, "pdftoppm",
		"-png", "-r", strconv.Itoa(dpi), "-f", pageStr, "-l", pageStr, d.tempPath)
	out, err := cmd.Output()
	if err != nil {
		return nil, &parsererror.RecognitionError{
			Engine: "pdftoppm",
			Err:    err,
		}
	}
	return out, nil
}
