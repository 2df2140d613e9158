package rulestore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"budgy/docproc/internal/logging"
)

func TestFetchMissingFileMeansNoRules(t *testing.T) {
	store := NewYAMLRuleStore(t.TempDir(), &logging.MockLogger{})

	rules, err := store.Fetch("nobody")
	require.NoError(t, err)
	assert.Empty(t, rules)
}

func TestFetchReadsRules(t *testing.T) {
	dir := t.TempDir()
	content := `
- pattern: starbucks
  category_main: Entertainment & Leisure
  category_sub: Events
  weight: 2.5
- pattern: kira
  category_main: Housing & Utilities
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "user1.yaml"), []byte(content), 0o644))

	store := NewYAMLRuleStore(dir, &logging.MockLogger{})
	rules, err := store.Fetch("user1")
	require.NoError(t, err)
	require.Len(t, rules, 2)

	assert.Equal(t, "starbucks", rules[0].Pattern)
	assert.Equal(t, 2.5, rules[0].Weight)
	assert.Equal(t, "Housing & Utilities", rules[1].CategoryMain)
	assert.Equal(t, 1.0, rules[1].EffectiveWeight())
}

func TestFetchRejectsPathTraversal(t *testing.T) {
	store := NewYAMLRuleStore(t.TempDir(), &logging.MockLogger{})

	_, err := store.Fetch("../etc/passwd")
	assert.Error(t, err)
}

func TestFetchBrokenFileIsAnError(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "user2.yaml"), []byte("{not yaml"), 0o644))

	store := NewYAMLRuleStore(dir, &logging.MockLogger{})
	_, err := store.Fetch("user2")
	assert.Error(t, err)
}

func TestFetchEmptyUserID(t *testing.T) {
	store := NewYAMLRuleStore(t.TempDir(), &logging.MockLogger{})

	rules, err := store.Fetch("")
	require.NoError(t, err)
	assert.Nil(t, rules)
}
