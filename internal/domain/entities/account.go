package entities

// Account is the sandbox's single billable account and its price lists.
type Account struct {
	Name               string              `json:"name" yaml:"name"`
	BalanceInPence     float64             `json:"balance_in_pence" yaml:"balance_in_pence"`
	PricesInPence      map[string]float64  `json:"prices_in_pence" yaml:"prices_in_pence"`
	CountryPrefixes    map[string]string   `json:"country_prefixes" yaml:"country_prefixes"`
	Operators          map[string]Operator `json:"operators" yaml:"operators"`
	KeywordCostInPence float64             `json:"keyword_cost_in_pence" yaml:"keyword_cost_in_pence"`
	LookupCostInPence  float64             `json:"lookup_cost_in_pence" yaml:"lookup_cost_in_pence"`
}

// Operator is keyed by number prefix in Account.Operators.
type Operator struct {
	MCC  string `json:"mcc" yaml:"mcc"`
	MNC  string `json:"mnc" yaml:"mnc"`
	Name string `json:"operator" yaml:"operator"`
}

// DefaultAccount is used when no seed file is configured.
func DefaultAccount() Account {
	return Account{
		Name:           "sandbox",
		BalanceInPence: 1000,
		PricesInPence: map[string]float64{
			"GB": 1.23,
			"US": 1.24,
		},
		CountryPrefixes: map[string]string{
			"44": "GB",
			"1":  "US",
		},
		Operators: map[string]Operator{
			"4477": {MCC: "234", MNC: "10", Name: "o2-uk"},
			"4479": {MCC: "234", MNC: "15", Name: "vodafone-uk"},
		},
		KeywordCostInPence: 100,
		LookupCostInPence:  2.5,
	}
}
