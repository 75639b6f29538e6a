package zensend

import (
	"net/http"
	"strconv"
	"strings"
)

// operation is the fixed request shape of one API call. GET operations carry
// their parameters in the query string, POST operations in the body.
type operation struct {
	name   string
	method string
	path   string
}

var (
	opSendSMS          = operation{name: "send_sms", method: http.MethodPost, path: "/v3/sendsms"}
	opCreateKeyword    = operation{name: "create_keyword", method: http.MethodPost, path: "/v3/keywords"}
	opCheckBalance     = operation{name: "check_balance", method: http.MethodGet, path: "/v3/checkbalance"}
	opGetPrices        = operation{name: "get_prices", method: http.MethodGet, path: "/v3/prices"}
	opOperatorLookup   = operation{name: "operator_lookup", method: http.MethodGet, path: "/v3/operator_lookup"}
	opCreateSubAccount = operation{name: "create_sub_account", method: http.MethodPost, path: "/v3/sub_accounts"}
)

// Request parameter names.
const (
	ParamBody           = "BODY"
	ParamOriginator     = "ORIGINATOR"
	ParamNumbers        = "NUMBERS"
	ParamOriginatorType = "ORIGINATOR_TYPE"
	ParamTimeToLive     = "TIMETOLIVE"
	ParamEncoding       = "ENCODING"
	ParamShortcode      = "SHORTCODE"
	ParamKeyword        = "KEYWORD"
	ParamIsSticky       = "IS_STICKY"
	ParamMoURL          = "MO_URL"
	ParamNumber         = "NUMBER"
	ParamName           = "NAME"
)

func sendSMSParams(msg Message) formParams {
	var ttl *string
	if msg.TimeToLiveInMinutes != nil {
		v := strconv.Itoa(*msg.TimeToLiveInMinutes)
		ttl = &v
	}

	return formParams{}.
		add(ParamBody, msg.Body).
		add(ParamOriginator, msg.Originator).
		add(ParamNumbers, strings.Join(msg.Numbers, ",")).
		add(ParamOriginatorType, msg.OriginatorType.String()).
		addOptional(ParamTimeToLive, ttl).
		addOptional(ParamEncoding, msg.Encoding.param())
}

func createKeywordParams(req CreateKeywordRequest) formParams {
	return formParams{}.
		add(ParamShortcode, req.Shortcode).
		add(ParamKeyword, req.Keyword).
		add(ParamIsSticky, strconv.FormatBool(req.IsSticky)).
		addOptional(ParamMoURL, req.MoURL)
}

func operatorLookupParams(number string) formParams {
	return formParams{}.add(ParamNumber, number)
}

func createSubAccountParams(name string) formParams {
	return formParams{}.add(ParamName, name)
}
