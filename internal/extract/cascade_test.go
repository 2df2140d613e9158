package extract

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"budgy/docproc/internal/logging"
	"budgy/docproc/internal/matcher"
	"budgy/docproc/internal/models"
	"budgy/docproc/internal/ocr"
)

// fakeDocument serves canned page content.
type fakeDocument struct {
	texts  []string
	tables [][][]string
}

func (d *fakeDocument) NumPages() int {
	if len(d.tables) > len(d.texts) {
		return len(d.tables)
	}
	return len(d.texts)
}

func (d *fakeDocument) PageText(page int) (string, error) {
	if page < len(d.texts) {
		return d.texts[page], nil
	}
	return "", nil
}

func (d *fakeDocument) PageTable(page int) ([][]string, error) {
	if page < len(d.tables) {
		return d.tables[page], nil
	}
	return nil, nil
}

// fakeRenderer returns a fixed byte payload per page.
type fakeRenderer struct {
	calls int
	err   error
}

func (r *fakeRenderer) RenderPage(ctx context.Context, page int, dpi int) ([]byte, error) {
	r.calls++
	if r.err != nil {
		return nil, r.err
	}
	return []byte("png-bytes"), nil
}

// fakeRecognizer returns a fixed transcription and records invocations.
type fakeRecognizer struct {
	text  string
	err   error
	calls int
}

func (r *fakeRecognizer) Recognize(ctx context.Context, image []byte, langHint string) (string, error) {
	r.calls++
	if r.err != nil {
		return "", r.err
	}
	return r.text, nil
}

func newController(doc *fakeDocument, rec ocr.Recognizer, rend *fakeRenderer, minRows int) *Controller {
	log := &logging.MockLogger{}
	m := matcher.New()
	var image Strategy
	if rec != nil || rend != nil {
		img := NewImageStrategy(rec, rend, m, log)
		img.Languages = "tur+eng"
		image = img
	}
	return NewController(NewTableStrategy(log), NewTextStrategy(m, log), image, minRows, log)
}

func TestCascadeTableWins(t *testing.T) {
	doc := &fakeDocument{
		tables: [][][]string{{
			{"Tarih", "Açıklama", "Tutar"},
			{"05/03/2024", "STARBUCKS", "45,50"},
			{"06/03/2024", "MIGROS", "120,00"},
		}},
		texts: []string{"05/03/2024 STARBUCKS 45,50"},
	}

	res := newController(doc, nil, nil, 1).Run(context.Background(), doc)
	assert.Equal(t, models.MethodTable, res.Method)
	assert.Equal(t, models.QualityHigh, res.Quality)
	assert.Equal(t, ConfidenceTable, res.Confidence)
	require.Len(t, res.Rows, 2)
	assert.Equal(t, "STARBUCKS", res.Rows[0].Candidate.Description)
}

func TestCascadeFallsBackToText(t *testing.T) {
	rec := &fakeRecognizer{text: "07/03/2024 SHELL 500,00"}
	rend := &fakeRenderer{}
	doc := &fakeDocument{
		texts: []string{
			"HESAP OZETI",
			"05/03/2024 STARBUCKS 45,50\n06/03/2024 MIGROS 120,00\n07/03/2024 OPET 800,00",
		},
	}

	res := newController(doc, rec, rend, 1).Run(context.Background(), doc)
	assert.Equal(t, models.MethodText, res.Method)
	assert.Equal(t, models.QualityMedium, res.Quality)
	require.Len(t, res.Rows, 3)

	// The expensive tier must not run once text produced enough rows.
	assert.Zero(t, rec.calls)
	assert.Zero(t, rend.calls)
}

func TestCascadeFewTextRowsAreLowQuality(t *testing.T) {
	doc := &fakeDocument{texts: []string{"05/03/2024 STARBUCKS 45,50"}}

	res := newController(doc, nil, nil, 1).Run(context.Background(), doc)
	assert.Equal(t, models.MethodText, res.Method)
	assert.Equal(t, models.QualityLow, res.Quality)
}

func TestCascadeImageFallback(t *testing.T) {
	rec := &fakeRecognizer{text: "05/03/2024 STARBUCKS 45,50\n06/03/2024 MIGROS 120,00"}
	rend := &fakeRenderer{}
	doc := &fakeDocument{texts: []string{"HESAP OZETI\nSayfa 1"}}

	res := newController(doc, rec, rend, 1).Run(context.Background(), doc)
	assert.Equal(t, models.MethodImage, res.Method)
	assert.Equal(t, models.QualityLow, res.Quality)
	assert.Equal(t, ConfidenceImage, res.Confidence)
	require.Len(t, res.Rows, 2)
	assert.Equal(t, 1, rec.calls)
}

func TestCascadeRecognizerUnavailable(t *testing.T) {
	rend := &fakeRenderer{}
	doc := &fakeDocument{texts: []string{"HESAP OZETI"}}

	c := newController(doc, nil, rend, 1)
	res := c.Run(context.Background(), doc)

	assert.Empty(t, res.Rows)
	assert.Equal(t, models.MethodNone, res.Method)
	require.NotEmpty(t, res.Warnings)
	assert.Contains(t, res.Warnings[len(res.Warnings)-1], ErrRecognizerUnavailable.Error())
}

func TestCascadeRecognitionFailureDegrades(t *testing.T) {
	rec := &fakeRecognizer{err: errors.New("engine crashed")}
	rend := &fakeRenderer{}
	doc := &fakeDocument{texts: []string{"HESAP OZETI"}}

	res := newController(doc, rec, rend, 1).Run(context.Background(), doc)

	// Per-page recognition failures produce zero rows, not an aborted run.
	assert.Empty(t, res.Rows)
	assert.Equal(t, models.MethodNone, res.Method)
}

func TestCascadeImageDisabled(t *testing.T) {
	doc := &fakeDocument{texts: []string{"HESAP OZETI"}}

	res := newController(doc, nil, nil, 1).Run(context.Background(), doc)
	assert.Empty(t, res.Rows)
	require.NotEmpty(t, res.Warnings)
	assert.Contains(t, res.Warnings[0], "image fallback disabled")
}
