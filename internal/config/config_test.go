package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadClean(t *testing.T) *Config {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := Load()
	require.NoError(t, err)
	return cfg
}

func TestLoadDefaults(t *testing.T) {
	cfg := loadClean(t)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "TRY", cfg.Currency.Default)
	assert.Equal(t, "tr", cfg.Locale.Hint)

	assert.True(t, cfg.OCR.Enabled)
	assert.Equal(t, "tesseract", cfg.OCR.Engine)
	assert.Equal(t, "tur+eng", cfg.OCR.Languages)
	assert.Equal(t, 200, cfg.OCR.DPI)
	assert.Equal(t, 1, cfg.OCR.MinRowsThreshold)

	assert.True(t, cfg.Signs.CreditCard.PositiveIsExpense)
	assert.True(t, cfg.Signs.BankAccount.PositiveIsExpense)

	assert.Equal(t, 10, cfg.Dedupe.PrefixLength)
	assert.False(t, cfg.Sort.Descending)
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	content := `
currency:
  default: EUR
ocr:
  engine: gemini
  dpi: 300
sort:
  descending: true
`
	require.NoError(t, os.WriteFile(dir+"/config.yaml", []byte(content), 0o644))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "EUR", cfg.Currency.Default)
	assert.Equal(t, "gemini", cfg.OCR.Engine)
	assert.Equal(t, 300, cfg.OCR.DPI)
	assert.True(t, cfg.Sort.Descending)
	// Untouched keys keep defaults.
	assert.Equal(t, "tur+eng", cfg.OCR.Languages)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(dir+"/config.yaml", []byte("ocr:\n  engine: abacus\n"), 0o644))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	_, err = Load()
	assert.Error(t, err)
}

func TestGeminiKeyComesFromEnvironment(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key-123")

	cfg := loadClean(t)
	assert.Equal(t, "test-key-123", cfg.OCR.APIKey)
}
