package docreader

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"budgy/docproc/internal/parsererror"
)

func TestOpenPDFRejectsNonPDF(t *testing.T) {
	for _, data := range [][]byte{nil, {}, []byte("hello"), []byte("<xml/>")} {
		_, err := OpenPDF(data)
		assert.Error(t, err)
	}
}

func TestPageAccessOutOfRange(t *testing.T) {
	doc := &PDFDocument{numPages: 1}

	_, err := doc.PageText(5)
	var extractionErr *parsererror.DataExtractionError
	require.True(t, errors.As(err, &extractionErr))
	assert.Equal(t, 5, extractionErr.Page)

	_, err = doc.PageTable(-1)
	require.True(t, errors.As(err, &extractionErr))
}

func TestUnresolvedGlyphRatio(t *testing.T) {
	assert.Zero(t, UnresolvedGlyphRatio("05/03/2024 STARBUCKS 45,50"))
	assert.Zero(t, UnresolvedGlyphRatio(""))

	garbled := strings.Repeat("�", 8) + "ab"
	assert.Greater(t, UnresolvedGlyphRatio(garbled), 0.5)

	cid := "(cid:12)(cid:34)(cid:56)"
	assert.Greater(t, UnresolvedGlyphRatio(cid), 0.3)
}
