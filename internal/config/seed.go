package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/zensend/zensend-go/internal/domain/entities"
)

// LoadSeed reads the sandbox account from a YAML file. Fields missing from
// the file keep their entities.DefaultAccount values. An empty path returns
// the defaults.
func LoadSeed(path string) (entities.Account, error) {
	account := entities.DefaultAccount()
	if path == "" {
		return account, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return entities.Account{}, fmt.Errorf("failed to read seed file: %w", err)
	}

	if err := yaml.Unmarshal(raw, &account); err != nil {
		return entities.Account{}, fmt.Errorf("failed to parse seed file %s: %w", path, err)
	}

	if account.BalanceInPence < 0 {
		return entities.Account{}, fmt.Errorf("seed file %s: balance_in_pence must not be negative", path)
	}
	for country := range account.PricesInPence {
		if len(country) != 2 {
			return entities.Account{}, fmt.Errorf("seed file %s: %q is not a two letter country code", path, country)
		}
	}

	return account, nil
}
