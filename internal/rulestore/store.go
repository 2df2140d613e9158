// Package rulestore loads per-user categorization rules. Rules are read
// fresh for every extraction request and treated as immutable while the
// request runs.
package rulestore

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"budgy/docproc/internal/logging"
	"budgy/docproc/internal/models"
)

// RuleStore fetches the categorization rules of one user.
type RuleStore interface {
	// Fetch returns the user's rules. A user with no rules yields an empty
	// slice, not an error.
	Fetch(userID string) ([]models.CategoryRule, error)
}

// YAMLRuleStore reads rules from <dir>/<userID>.yaml.
type YAMLRuleStore struct {
	dir string
	log logging.Logger
}

// NewYAMLRuleStore returns a store rooted at dir.
func NewYAMLRuleStore(dir string, logger logging.Logger) *YAMLRuleStore {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &YAMLRuleStore{dir: dir, log: logger}
}

// Fetch loads the user's rule file. A missing file means the user simply has
// no rules yet.
func (s *YAMLRuleStore) Fetch(userID string) ([]models.CategoryRule, error) {
	if userID == "" || s.dir == "" {
		return nil, nil
	}
	if strings.ContainsAny(userID, `/\`) {
		return nil, fmt.Errorf("invalid user id %q", userID)
	}

	path := filepath.Join(s.dir, userID+".yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("error reading rules file %s: %w", path, err)
	}

	var rules []models.CategoryRule
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("error parsing rules file %s: %w", path, err)
	}

	s.log.Debug("loaded user rules",
		logging.Field{Key: logging.FieldUserID, Value: userID},
		logging.Field{Key: logging.FieldCount, Value: len(rules)})
	return rules, nil
}
