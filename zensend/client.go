// Package zensend is a client for the ZenSend SMS HTTP API.
//
// Every operation builds an ordered form-urlencoded parameter list, sends it
// with the X-API-KEY header, and decodes the {success}/{failure} JSON envelope
// of the response into a typed result or a *Error.
package zensend

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	// DefaultBaseURL is the production API endpoint.
	DefaultBaseURL = "https://api.zensend.io"
	// APIKeyHeader carries the credential on every request.
	APIKeyHeader = "X-API-KEY"

	defaultTimeout  = 30 * time.Second
	formContentType = "application/x-www-form-urlencoded"
)

// HTTPClient executes HTTP requests. *http.Client satisfies it.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Option customises a Client at construction time.
type Option func(*Client)

// WithBaseURL points the client at another deployment, e.g. a test server.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if baseURL != "" {
			c.baseURL = strings.TrimRight(baseURL, "/")
		}
	}
}

// WithHTTPClient replaces the transport. Timeouts and cancellation of the
// supplied client surface as ErrTypeTransport errors.
func WithHTTPClient(httpClient HTTPClient) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithLogger sets the logger used for per-request debug and warn entries.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Client is safe for concurrent use. Its credential and base URL never change
// after New.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient HTTPClient
	logger     logrus.FieldLogger
}

// New creates a Client sending apiKey with every request.
func New(apiKey string, opts ...Option) *Client {
	silent := logrus.New()
	silent.Out = io.Discard

	c := &Client{
		apiKey:     apiKey,
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
		logger:     silent,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// BaseURL returns the endpoint the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// SendSMS sends msg to every number in msg.Numbers.
//
// Parameters:
//   - ctx: bounds the HTTP round trip.
//   - msg: the message. TimeToLiveInMinutes is only sent when set and
//     Encoding is only sent when it is not EncodingAuto.
//
// Returns:
//   - *SmsResult: the transaction id, part count, encoding and cost.
//   - error: a *Error; validation problems come back as ErrTypeAPI with the
//     offending parameter name.
func (c *Client) SendSMS(ctx context.Context, msg Message) (*SmsResult, error) {
	return call[SmsResult](ctx, c, opSendSMS, sendSMSParams(msg))
}

// CreateKeyword registers req.Keyword on req.Shortcode. IS_STICKY is always sent.
func (c *Client) CreateKeyword(ctx context.Context, req CreateKeywordRequest) (*CreateKeywordResult, error) {
	return call[CreateKeywordResult](ctx, c, opCreateKeyword, createKeywordParams(req))
}

// CheckBalance returns the account balance in pence.
func (c *Client) CheckBalance(ctx context.Context) (float64, error) {
	result, err := call[balanceResult](ctx, c, opCheckBalance, nil)
	if err != nil {
		return 0, err
	}
	return result.Balance, nil
}

// GetPrices returns the price in pence of one SMS part, keyed by country code.
func (c *Client) GetPrices(ctx context.Context) (map[string]float64, error) {
	result, err := call[pricesResult](ctx, c, opGetPrices, nil)
	if err != nil {
		return nil, err
	}
	return result.PricesInPence, nil
}

// LookupOperator resolves the mobile network of number. Lookups are charged,
// and a failed lookup may still report cost_in_pence on the APIError.
func (c *Client) LookupOperator(ctx context.Context, number string) (*OperatorLookupResult, error) {
	return call[OperatorLookupResult](ctx, c, opOperatorLookup, operatorLookupParams(number))
}

// CreateSubAccount creates a sub-account called name, sent as NAME to
// POST /v3/sub_accounts, and returns its name and API key.
func (c *Client) CreateSubAccount(ctx context.Context, name string) (*SubAccountResult, error) {
	return call[SubAccountResult](ctx, c, opCreateSubAccount, createSubAccountParams(name))
}

func (c *Client) newRequest(ctx context.Context, op operation, params formParams) (*http.Request, error) {
	target := c.baseURL + op.path
	encoded := params.Encode()

	var body io.Reader
	if op.method == http.MethodGet {
		if encoded != "" {
			target += "?" + encoded
		}
	} else {
		body = strings.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, op.method, target, body)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", formContentType)
	}
	req.Header.Set("Accept", jsonMediaType)
	req.Header.Set(APIKeyHeader, c.apiKey)
	return req, nil
}

// call runs one request/response cycle. There are no retries.
func call[T any](ctx context.Context, c *Client, op operation, params formParams) (*T, error) {
	entry := c.logger.WithFields(logrus.Fields{
		"operation": op.name,
		"method":    op.method,
		"path":      op.path,
	})

	req, err := c.newRequest(ctx, op, params)
	if err != nil {
		entry.WithError(err).Warn("zensend request could not be built")
		return nil, transportError(err)
	}

	start := time.Now()
	res, err := c.httpClient.Do(req)
	if err != nil {
		entry.WithError(err).Warn("zensend request failed")
		return nil, transportError(err)
	}
	defer res.Body.Close()

	entry = entry.WithFields(logrus.Fields{
		"status":   res.StatusCode,
		"duration": time.Since(start),
	})

	result, err := handleResponse[T](res)
	if err != nil {
		if zErr, ok := err.(*Error); ok {
			entry = entry.WithField("error_type", zErr.Type)
		}
		entry.WithError(err).Warn("zensend call returned an error")
		return nil, err
	}

	entry.Debug("zensend call succeeded")
	return result, nil
}
