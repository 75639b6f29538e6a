package dto

import (
	"fmt"
	"net/http"
)

// Envelope is the JSON wrapper of every /v3 response. Exactly one field is set.
type Envelope struct {
	Success any      `json:"success,omitempty"`
	Failure *Failure `json:"failure,omitempty"`
}

type Failure struct {
	Failcode          string   `json:"failcode"`
	Parameter         string   `json:"parameter,omitempty"`
	CostInPence       *float64 `json:"cost_in_pence,omitempty"`
	NewBalanceInPence *float64 `json:"new_balance_in_pence,omitempty"`

	Status int `json:"-"`
}

func (f *Failure) Error() string {
	if f.Parameter != "" {
		return fmt.Sprintf("%s: %s", f.Failcode, f.Parameter)
	}
	return f.Failcode
}

// HTTPStatus defaults to 400 Bad Request.
func (f *Failure) HTTPStatus() int {
	if f.Status == 0 {
		return http.StatusBadRequest
	}
	return f.Status
}

const (
	FailcodeIsEmpty          = "IS_EMPTY"
	FailcodeInvalidParameter = "INVALID_PARAMETER"
	FailcodeNotEnoughCredit  = "NOT_ENOUGH_CREDIT"
	FailcodeDataMissing      = "DATA_MISSING"
	FailcodeDuplicate        = "DUPLICATE"
	FailcodeNotAuthorized    = "NOT_AUTHORIZED"
	FailcodeGenericError     = "GENERIC_ERROR"
)

type SmsResponse struct {
	TxGUID            string  `json:"txguid"`
	Numbers           int     `json:"numbers"`
	SmsParts          int     `json:"smsparts"`
	Encoding          string  `json:"encoding"`
	CostInPence       float64 `json:"cost_in_pence"`
	NewBalanceInPence float64 `json:"new_balance_in_pence"`
}

type CreateKeywordResponse struct {
	CostInPence       float64 `json:"cost_in_pence"`
	NewBalanceInPence float64 `json:"new_balance_in_pence"`
}

type BalanceResponse struct {
	Balance float64 `json:"balance"`
}

type PricesResponse struct {
	PricesInPence map[string]float64 `json:"prices_in_pence"`
}

type OperatorLookupResponse struct {
	MCC               string  `json:"mcc"`
	MNC               string  `json:"mnc"`
	Operator          string  `json:"operator"`
	CostInPence       float64 `json:"cost_in_pence"`
	NewBalanceInPence float64 `json:"new_balance_in_pence"`
}

type SubAccountResponse struct {
	Name   string `json:"name"`
	APIKey string `json:"api_key"`
}
