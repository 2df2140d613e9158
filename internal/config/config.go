// Package config provides Viper-based hierarchical configuration management.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the complete application configuration.
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	Currency struct {
		Default string `mapstructure:"default" yaml:"default"`
	} `mapstructure:"currency" yaml:"currency"`

	Locale struct {
		Hint string `mapstructure:"hint" yaml:"hint"`
	} `mapstructure:"locale" yaml:"locale"`

	OCR struct {
		Enabled          bool   `mapstructure:"enabled" yaml:"enabled"`
		Engine           string `mapstructure:"engine" yaml:"engine"`
		Languages        string `mapstructure:"languages" yaml:"languages"`
		TimeoutSeconds   int    `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
		DPI              int    `mapstructure:"dpi" yaml:"dpi"`
		MaxPages         int    `mapstructure:"max_pages" yaml:"max_pages"`
		MinRowsThreshold int    `mapstructure:"min_rows_threshold" yaml:"min_rows_threshold"`
		APIKey           string `mapstructure:"api_key" yaml:"-"` // Never serialize API key
	} `mapstructure:"ocr" yaml:"ocr"`

	Signs struct {
		CreditCard struct {
			PositiveIsExpense bool `mapstructure:"positive_is_expense" yaml:"positive_is_expense"`
		} `mapstructure:"credit_card" yaml:"credit_card"`
		BankAccount struct {
			PositiveIsExpense bool `mapstructure:"positive_is_expense" yaml:"positive_is_expense"`
		} `mapstructure:"bank_account" yaml:"bank_account"`
	} `mapstructure:"signs" yaml:"signs"`

	Dedupe struct {
		PrefixLength int `mapstructure:"prefix_length" yaml:"prefix_length"`
	} `mapstructure:"dedupe" yaml:"dedupe"`

	Sort struct {
		Descending bool `mapstructure:"descending" yaml:"descending"`
	} `mapstructure:"sort" yaml:"sort"`

	Rules struct {
		Directory string `mapstructure:"directory" yaml:"directory"`
	} `mapstructure:"rules" yaml:"rules"`
}

// Load initializes Viper configuration with hierarchical loading:
// defaults, then an optional config file, then DOCPROC_* environment variables.
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.docproc")
	v.AddConfigPath(".docproc")
	v.AddConfigPath(".")

	v.SetEnvPrefix("DOCPROC")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Continue with defaults and env vars; a broken config file
			// should not take the pipeline down.
			fmt.Printf("Warning: error reading config file %s: %v\n", v.ConfigFileUsed(), err)
		}
	}

	// The Gemini key always comes from the environment, unprefixed.
	if err := v.BindEnv("ocr.api_key", "GEMINI_API_KEY"); err != nil {
		fmt.Printf("Warning: failed to bind GEMINI_API_KEY environment variable: %v\n", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("currency.default", "TRY")
	v.SetDefault("locale.hint", "tr")

	v.SetDefault("ocr.enabled", true)
	v.SetDefault("ocr.engine", "tesseract")
	v.SetDefault("ocr.languages", "tur+eng")
	v.SetDefault("ocr.timeout_seconds", 120)
	v.SetDefault("ocr.dpi", 200)
	v.SetDefault("ocr.max_pages", 0) // 0 = no page cap
	v.SetDefault("ocr.min_rows_threshold", 1)

	// Statement polarity per source kind. The shipped default follows the
	// issuing bank's convention: positive raw amounts are money going out on
	// both card and account statements.
	v.SetDefault("signs.credit_card.positive_is_expense", true)
	v.SetDefault("signs.bank_account.positive_is_expense", true)

	v.SetDefault("dedupe.prefix_length", 10)
	v.SetDefault("sort.descending", false)

	v.SetDefault("rules.directory", "rules")
}

func validate(c *Config) error {
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error; got %q", c.Log.Level)
	}

	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json; got %q", c.Log.Format)
	}

	switch c.OCR.Engine {
	case "tesseract", "gemini":
	default:
		return fmt.Errorf("ocr.engine must be tesseract or gemini; got %q", c.OCR.Engine)
	}

	if len(c.Currency.Default) != 3 {
		return fmt.Errorf("currency.default must be a 3-letter code; got %q", c.Currency.Default)
	}

	if c.OCR.DPI < 72 || c.OCR.DPI > 600 {
		return fmt.Errorf("ocr.dpi must be between 72 and 600; got %d", c.OCR.DPI)
	}

	if c.Dedupe.PrefixLength < 1 {
		return fmt.Errorf("dedupe.prefix_length must be positive; got %d", c.Dedupe.PrefixLength)
	}

	if c.OCR.MinRowsThreshold < 0 {
		return fmt.Errorf("ocr.min_rows_threshold must not be negative; got %d", c.OCR.MinRowsThreshold)
	}

	return nil
}
