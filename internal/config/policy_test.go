package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"merxylab/kpay-verify/internal/models"
)

func TestLoadPolicyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "policy.yaml")
	content := "recipient_name: U MIN KO NAING\naccount_tail: \"3307\"\nminimum_amount: \"5,000\"\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	p, err := LoadPolicyFile(path)

	require.NoError(t, err)
	assert.Equal(t, "U MIN KO NAING", p.RecipientName)
	assert.Equal(t, "3307", p.AccountTail)
	assert.True(t, p.MinimumAmount.Equal(decimal.NewFromInt(5000)))
}

func TestLoadPolicyFile_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "missing recipient", content: "account_tail: \"3307\"\nminimum_amount: \"5000\"\n"},
		{name: "missing tail", content: "recipient_name: X\nminimum_amount: \"5000\"\n"},
		{name: "missing minimum", content: "recipient_name: X\naccount_tail: \"3307\"\n"},
		{name: "bad minimum", content: "recipient_name: X\naccount_tail: \"3307\"\nminimum_amount: lots\n"},
		{name: "not yaml", content: "{{{{"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "policy.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0600))

			_, err := LoadPolicyFile(path)
			assert.Error(t, err)
		})
	}
}

func TestLoadPolicyFile_NotFound(t *testing.T) {
	_, err := LoadPolicyFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestSavePolicyFile_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "policy.yaml")
	p := models.Policy{
		RecipientName: "U MIN KO NAING",
		AccountTail:   "3307",
		MinimumAmount: decimal.NewFromInt(5000),
	}

	require.NoError(t, SavePolicyFile(path, p))

	loaded, err := LoadPolicyFile(path)
	require.NoError(t, err)
	assert.Equal(t, p.RecipientName, loaded.RecipientName)
	assert.Equal(t, p.AccountTail, loaded.AccountTail)
	assert.True(t, p.MinimumAmount.Equal(loaded.MinimumAmount))
}

func TestParsePolicyAmount(t *testing.T) {
	tests := []struct {
		input    string
		expected int64
		wantErr  bool
	}{
		{input: "5000", expected: 5000},
		{input: "5,000", expected: 5000},
		{input: "5'000", expected: 5000},
		{input: "5 000", expected: 5000},
		{input: "", wantErr: true},
		{input: "abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			d, err := parsePolicyAmount(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, d.Equal(decimal.NewFromInt(tt.expected)))
		})
	}
}
