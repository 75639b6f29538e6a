package zensend

import (
	"fmt"
	"strings"
)

// OriginatorType tells the API how to interpret Message.Originator.
type OriginatorType int

const (
	// OriginatorTypeAlpha is an alphanumeric sender id. It is the default.
	OriginatorTypeAlpha OriginatorType = iota
	// OriginatorTypeMsisdn is a phone number sender id.
	OriginatorTypeMsisdn
)

func (t OriginatorType) String() string {
	if t == OriginatorTypeMsisdn {
		return "msisdn"
	}
	return "alpha"
}

// ParseOriginatorType maps "alpha" or "msisdn" (any case) to an OriginatorType.
func ParseOriginatorType(s string) (OriginatorType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "alpha":
		return OriginatorTypeAlpha, nil
	case "msisdn":
		return OriginatorTypeMsisdn, nil
	default:
		return OriginatorTypeAlpha, fmt.Errorf("unknown originator type %q", s)
	}
}

// Encoding selects the character set used for an SMS.
type Encoding int

const (
	// EncodingAuto lets the API pick. No ENCODING parameter is sent.
	EncodingAuto Encoding = iota
	EncodingGSM
	EncodingUCS2
)

func (e Encoding) String() string {
	switch e {
	case EncodingGSM:
		return "gsm"
	case EncodingUCS2:
		return "ucs2"
	default:
		return "auto"
	}
}

// param returns the ENCODING wire value, nil for EncodingAuto.
func (e Encoding) param() *string {
	if e == EncodingAuto {
		return nil
	}
	v := e.String()
	return &v
}

// ParseEncoding maps "auto", "gsm" or "ucs2" (any case) to an Encoding.
func ParseEncoding(s string) (Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return EncodingAuto, nil
	case "gsm":
		return EncodingGSM, nil
	case "ucs2":
		return EncodingUCS2, nil
	default:
		return EncodingAuto, fmt.Errorf("unknown encoding %q", s)
	}
}

// Message is an outbound SMS. Numbers are sent in order, comma separated.
type Message struct {
	Originator          string
	Body                string
	Numbers             []string
	OriginatorType      OriginatorType
	Encoding            Encoding
	TimeToLiveInMinutes *int
}

// CreateKeywordRequest registers a keyword on a shortcode.
type CreateKeywordRequest struct {
	Shortcode string
	Keyword   string
	IsSticky  bool
	MoURL     *string
}

type SmsResult struct {
	TxGUID            string  `json:"txguid"`
	Numbers           int     `json:"numbers"`
	SmsParts          int     `json:"smsparts"`
	Encoding          string  `json:"encoding"`
	CostInPence       float64 `json:"cost_in_pence"`
	NewBalanceInPence float64 `json:"new_balance_in_pence"`
}

type CreateKeywordResult struct {
	CostInPence       float64 `json:"cost_in_pence"`
	NewBalanceInPence float64 `json:"new_balance_in_pence"`
}

type OperatorLookupResult struct {
	MCC               string  `json:"mcc"`
	MNC               string  `json:"mnc"`
	Operator          string  `json:"operator"`
	CostInPence       float64 `json:"cost_in_pence"`
	NewBalanceInPence float64 `json:"new_balance_in_pence"`
}

// SubAccountResult holds the credential of a freshly created sub-account.
type SubAccountResult struct {
	Name   string `json:"name"`
	APIKey string `json:"api_key"`
}

type balanceResult struct {
	Balance float64 `json:"balance"`
}

type pricesResult struct {
	PricesInPence map[string]float64 `json:"prices_in_pence"`
}

func (SmsResult) requiredKeys() []string {
	return []string{"txguid", "numbers", "smsparts", "encoding", "cost_in_pence", "new_balance_in_pence"}
}

func (CreateKeywordResult) requiredKeys() []string {
	return []string{"cost_in_pence", "new_balance_in_pence"}
}

func (OperatorLookupResult) requiredKeys() []string {
	return []string{"mcc", "mnc", "operator", "cost_in_pence", "new_balance_in_pence"}
}

func (SubAccountResult) requiredKeys() []string { return []string{"name", "api_key"} }

func (balanceResult) requiredKeys() []string { return []string{"balance"} }

func (pricesResult) requiredKeys() []string { return []string{"prices_in_pence"} }

// Int returns a pointer to v, for optional integer fields.
func Int(v int) *int { return &v }

// String returns a pointer to v, for optional string fields.
func String(v string) *string { return &v }
