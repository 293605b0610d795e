package config

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	var c Config
	c.Log.Level = "info"
	c.Log.Format = "text"
	c.Policy.RecipientName = "U MIN KO NAING"
	c.Policy.AccountTail = "3307"
	c.Policy.MinimumAmount = "5000"
	c.Ledger.Path = "test.db"
	c.AI.TimeoutSeconds = 30
	return &c
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "json format", mutate: func(c *Config) { c.Log.Format = "json" }},
		{name: "bad format", mutate: func(c *Config) { c.Log.Format = "xml" }, wantErr: true},
		{name: "bad minimum amount", mutate: func(c *Config) { c.Policy.MinimumAmount = "lots" }, wantErr: true},
		{name: "zero timeout", mutate: func(c *Config) { c.AI.TimeoutSeconds = 0 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.mutate(c)
			err := validateConfig(c)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestVerificationPolicy(t *testing.T) {
	c := validConfig()

	p, err := c.VerificationPolicy()

	require.NoError(t, err)
	assert.Equal(t, "U MIN KO NAING", p.RecipientName)
	assert.Equal(t, "3307", p.AccountTail)
	assert.True(t, p.MinimumAmount.Equal(decimal.NewFromInt(5000)))
}

func TestVerificationPolicy_RequiresRecipient(t *testing.T) {
	c := validConfig()
	c.Policy.RecipientName = ""

	_, err := c.VerificationPolicy()
	assert.Error(t, err)
}
