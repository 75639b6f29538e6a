package zensend

import (
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeEnvelopeSuccess(t *testing.T) {
	body := `{"success":{"balance":100.2},"extra":true}`

	result, err := decodeEnvelope[balanceResult](http.StatusOK, []byte(body))

	require.NoError(t, err)
	assert.Equal(t, 100.2, result.Balance)
}

func TestDecodeEnvelopeFailure(t *testing.T) {
	body := `{"failure":{"failcode":"DATA_MISSING","cost_in_pence":2.5,"new_balance_in_pence":100.0}}`

	result, err := decodeEnvelope[balanceResult](http.StatusOK, []byte(body))

	assert.Nil(t, result)
	failure, ok := AsAPIError(err)
	require.True(t, ok)
	cost, balance := 2.5, 100.0
	assert.Equal(t, &APIError{Failcode: "DATA_MISSING", CostInPence: &cost, NewBalanceInPence: &balance}, failure)
}

func TestDecodeEnvelopeSuccessWinsOverFailure(t *testing.T) {
	body := `{"success":{"balance":1},"failure":{"failcode":"GENERIC_ERROR"}}`

	result, err := decodeEnvelope[balanceResult](http.StatusOK, []byte(body))

	require.NoError(t, err)
	assert.Equal(t, 1.0, result.Balance)
}

func TestDecodeEnvelopeMalformed(t *testing.T) {
	for _, body := range []string{`{}`, `{"failures":{"failcode":"IS_EMPTY"}}`, `{"success":null}`} {
		_, err := decodeEnvelope[balanceResult](http.StatusAccepted, []byte(body))

		var zErr *Error
		require.ErrorAs(t, err, &zErr, body)
		assert.Equal(t, ErrTypeUnexpectedResponse, zErr.Type, body)
		assert.Equal(t, http.StatusAccepted, zErr.StatusCode, body)
	}
}

func TestDecodeEnvelopeInvalidJSON(t *testing.T) {
	for _, body := range []string{`NOT JSON`, `[1,2]`, `{"success":{"balance":"lots"}}`, ``} {
		_, err := decodeEnvelope[balanceResult](http.StatusOK, []byte(body))

		var zErr *Error
		require.ErrorAs(t, err, &zErr, body)
		assert.Equal(t, ErrTypeDecode, zErr.Type, body)
		assert.Error(t, zErr.Cause, body)
	}
}

func TestDecodeEnvelopeMissingRequiredFields(t *testing.T) {
	requireDecodeError := func(t *testing.T, err error) {
		t.Helper()
		var zErr *Error
		require.ErrorAs(t, err, &zErr)
		assert.Equal(t, ErrTypeDecode, zErr.Type)
		assert.Equal(t, http.StatusOK, zErr.StatusCode)
	}

	t.Run("empty balance", func(t *testing.T) {
		result, err := decodeEnvelope[balanceResult](http.StatusOK, []byte(`{"success":{}}`))
		assert.Nil(t, result)
		requireDecodeError(t, err)
	})

	t.Run("null balance", func(t *testing.T) {
		_, err := decodeEnvelope[balanceResult](http.StatusOK, []byte(`{"success":{"balance":null}}`))
		requireDecodeError(t, err)
	})

	t.Run("empty prices", func(t *testing.T) {
		_, err := decodeEnvelope[pricesResult](http.StatusOK, []byte(`{"success":{}}`))
		requireDecodeError(t, err)
	})

	t.Run("misspelled prices key", func(t *testing.T) {
		_, err := decodeEnvelope[pricesResult](http.StatusOK, []byte(`{"success":{"prices":{"GB":1}}}`))
		requireDecodeError(t, err)
	})

	t.Run("sms result without txguid", func(t *testing.T) {
		body := `{"success":{"numbers":1,"smsparts":1,"encoding":"gsm","cost_in_pence":1,"new_balance_in_pence":1}}`
		_, err := decodeEnvelope[SmsResult](http.StatusOK, []byte(body))
		requireDecodeError(t, err)
	})

	t.Run("failure without failcode", func(t *testing.T) {
		_, err := decodeEnvelope[balanceResult](http.StatusOK, []byte(`{"failure":{}}`))
		requireDecodeError(t, err)
		_, ok := AsAPIError(err)
		assert.False(t, ok)
	})

	t.Run("payload not an object", func(t *testing.T) {
		_, err := decodeEnvelope[balanceResult](http.StatusOK, []byte(`{"success":42}`))
		requireDecodeError(t, err)
	})
}

func TestDecodeEnvelopeOptionalFailureFields(t *testing.T) {
	_, err := decodeEnvelope[balanceResult](http.StatusBadRequest, []byte(`{"failure":{"failcode":"IS_EMPTY","parameter":null}}`))

	failure, ok := AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, &APIError{Failcode: "IS_EMPTY"}, failure)
}

func TestIsJSON(t *testing.T) {
	testCases := map[string]bool{
		"application/json":                true,
		"application/json; charset=utf-8": true,
		"Application/JSON":                true,
		"text/html":                       false,
		"application/vnd.api+json":        false,
		"":                                false,
	}
	for contentType, expected := range testCases {
		assert.Equal(t, expected, isJSON(contentType), contentType)
	}
}

func TestHandleResponseSkipsNonJSONBody(t *testing.T) {
	res := &http.Response{
		StatusCode: http.StatusNotFound,
		Header:     http.Header{"Content-Type": []string{"text/html"}},
		Body:       io.NopCloser(strings.NewReader(`{"success":{"balance":1}}`)),
	}

	_, err := handleResponse[balanceResult](res)

	assert.True(t, IsType(err, ErrTypeUnexpectedResponse))
	var zErr *Error
	require.ErrorAs(t, err, &zErr)
	assert.Equal(t, http.StatusNotFound, zErr.StatusCode)
}

func TestErrorMessages(t *testing.T) {
	param := "BODY"
	assert.Equal(t, "zensend API error: IS_EMPTY (parameter BODY)",
		apiError(200, &APIError{Failcode: "IS_EMPTY", Parameter: &param}).Error())
	assert.Equal(t, "zensend UNEXPECTED_RESPONSE error: HTTP status 502",
		unexpectedResponseError(502).Error())
	assert.Equal(t, "zensend TRANSPORT error: unexpected EOF",
		transportError(io.ErrUnexpectedEOF).Error())
}
