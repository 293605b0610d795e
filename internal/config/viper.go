// Package config provides Viper-based hierarchical configuration
// management plus .env loading for local development.
package config

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	"merxylab/kpay-verify/internal/models"
)

// Config represents the complete application configuration.
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	Policy struct {
		RecipientName string `mapstructure:"recipient_name" yaml:"recipient_name"`
		AccountTail   string `mapstructure:"account_tail" yaml:"account_tail"`
		MinimumAmount string `mapstructure:"minimum_amount" yaml:"minimum_amount"`
	} `mapstructure:"policy" yaml:"policy"`

	Ledger struct {
		Path string `mapstructure:"path" yaml:"path"`
	} `mapstructure:"ledger" yaml:"ledger"`

	Artifacts struct {
		Directory string `mapstructure:"directory" yaml:"directory"`
	} `mapstructure:"artifacts" yaml:"artifacts"`

	AI struct {
		Model          string `mapstructure:"model" yaml:"model"`
		TimeoutSeconds int    `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
		APIKey         string `mapstructure:"api_key" yaml:"-"` // Never serialize API key
	} `mapstructure:"ai" yaml:"ai"`
}

// InitializeConfig initializes Viper configuration with hierarchical
// loading: defaults, then config file, then environment variables.
func InitializeConfig() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.kpay-verify")
	v.AddConfigPath(".kpay-verify")
	v.AddConfigPath(".")

	v.SetEnvPrefix("KPAY")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// A malformed config file is not fatal; defaults and env
			// variables still apply.
			fmt.Printf("Warning: error reading config file %s: %v\n", v.ConfigFileUsed(), err)
		}
	}

	// The API key always comes from the unprefixed environment variable.
	if err := v.BindEnv("ai.api_key", "GEMINI_API_KEY"); err != nil {
		fmt.Printf("Warning: failed to bind GEMINI_API_KEY environment variable: %v\n", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("policy.recipient_name", "")
	v.SetDefault("policy.account_tail", "")
	v.SetDefault("policy.minimum_amount", "5000")

	v.SetDefault("ledger.path", "kpay-verify.db")
	v.SetDefault("artifacts.directory", "artifacts")

	v.SetDefault("ai.model", "gemini-1.5-flash")
	v.SetDefault("ai.timeout_seconds", 30)
}

// validateConfig checks settings that would otherwise fail at first use.
func validateConfig(c *Config) error {
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be 'text' or 'json', got %q", c.Log.Format)
	}

	if c.Policy.MinimumAmount != "" {
		if _, err := decimal.NewFromString(c.Policy.MinimumAmount); err != nil {
			return fmt.Errorf("policy.minimum_amount %q is not a decimal: %w", c.Policy.MinimumAmount, err)
		}
	}

	if c.AI.TimeoutSeconds <= 0 {
		return fmt.Errorf("ai.timeout_seconds must be positive, got %d", c.AI.TimeoutSeconds)
	}

	return nil
}

// VerificationPolicy builds the models.Policy the pipeline validates
// against.
func (c *Config) VerificationPolicy() (models.Policy, error) {
	minimum, err := decimal.NewFromString(c.Policy.MinimumAmount)
	if err != nil {
		return models.Policy{}, fmt.Errorf("policy.minimum_amount %q: %w", c.Policy.MinimumAmount, err)
	}

	p := models.Policy{
		RecipientName: c.Policy.RecipientName,
		AccountTail:   c.Policy.AccountTail,
		MinimumAmount: minimum,
	}
	if err := p.Validate(); err != nil {
		return models.Policy{}, err
	}
	return p, nil
}
