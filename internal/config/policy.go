package config

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"merxylab/kpay-verify/internal/models"
)

// policyFile is the YAML shape of a standalone policy file. The minimum
// amount is a string so operators can write "5,000" or "5000" alike.
type policyFile struct {
	RecipientName string `yaml:"recipient_name"`
	AccountTail   string `yaml:"account_tail"`
	MinimumAmount string `yaml:"minimum_amount"`
}

// LoadPolicyFile reads a verification policy from a YAML file. A policy
// file overrides the policy block of the main configuration, which lets
// one deployment verify against several recipient accounts.
func LoadPolicyFile(path string) (models.Policy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return models.Policy{}, fmt.Errorf("reading policy file %s: %w", path, err)
	}

	var pf policyFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return models.Policy{}, fmt.Errorf("parsing policy file %s: %w", path, err)
	}

	minimum, err := parsePolicyAmount(pf.MinimumAmount)
	if err != nil {
		return models.Policy{}, fmt.Errorf("policy file %s: %w", path, err)
	}

	p := models.Policy{
		RecipientName: pf.RecipientName,
		AccountTail:   pf.AccountTail,
		MinimumAmount: minimum,
	}
	if err := p.Validate(); err != nil {
		return models.Policy{}, fmt.Errorf("policy file %s: %w", path, err)
	}
	return p, nil
}

// SavePolicyFile writes a policy to a YAML file, useful for bootstrapping
// a deployment.
func SavePolicyFile(path string, p models.Policy) error {
	pf := policyFile{
		RecipientName: p.RecipientName,
		AccountTail:   p.AccountTail,
		MinimumAmount: p.MinimumAmount.String(),
	}
	data, err := yaml.Marshal(pf)
	if err != nil {
		return fmt.Errorf("marshaling policy: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing policy file %s: %w", path, err)
	}
	return nil
}

// parsePolicyAmount accepts the separators operators actually type.
func parsePolicyAmount(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, fmt.Errorf("minimum_amount is required")
	}
	cleaned := ""
	for _, r := range s {
		if r != ',' && r != '\'' && r != ' ' {
			cleaned += string(r)
		}
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("minimum_amount %q is not a decimal: %w", s, err)
	}
	return d, nil
}
