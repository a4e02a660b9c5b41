package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/fivetwenty-io/opencrm-client/internal/constants"
	"github.com/fivetwenty-io/opencrm-client/pkg/opencrm"
)

// Logger interface for HTTP client logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Authenticator attaches credentials to an outgoing request.
type Authenticator interface {
	Apply(ctx context.Context, form url.Values, header http.Header) error
}

// Client is the HTTP client for the OpenCRM REST API. Every call is a POST
// with a form-encoded body to <apiURL>/<endpoint>.
type Client struct {
	apiURL       string
	httpClient   *retryablehttp.Client
	auth         Authenticator
	userAgent    string
	logger       Logger
	debug        bool
	interceptors *opencrm.InterceptorChain
}

// Option configures the HTTP client.
type Option func(*Client)

// WithLogger sets the logger.
func WithLogger(logger Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebug enables request/response logging.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		if userAgent != "" {
			c.userAgent = userAgent
		}
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.HTTPClient.Timeout = timeout
		}
	}
}

// WithRetryConfig enables retries for connection errors, 429 and 5xx.
// Create and update calls are only retried when the server cannot have
// acted on them; see CheckRetry.
func WithRetryConfig(retryMax int, retryWaitMin, retryWaitMax time.Duration) Option {
	return func(c *Client) {
		c.httpClient.RetryMax = retryMax
		c.httpClient.RetryWaitMin = retryWaitMin
		c.httpClient.RetryWaitMax = retryWaitMax
	}
}

// WithInterceptors installs a request/response interceptor chain.
func WithInterceptors(chain *opencrm.InterceptorChain) Option {
	return func(c *Client) {
		c.interceptors = chain
	}
}

// WithHTTPClient sends requests through a copy of httpClient, for example
// to supply a custom Transport. A later WithTimeout sets the copy's
// timeout; the caller's client is never modified.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			clone := *httpClient
			c.httpClient.HTTPClient = &clone
		}
	}
}

// NewClient creates a new HTTP client for apiURL (for example
// https://acme.opencrm.co.uk/api/rest). auth may be nil for unauthenticated
// calls such as the session login.
func NewClient(apiURL string, auth Authenticator, opts ...Option) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = constants.DefaultRetryMax
	retryClient.RetryWaitMin = constants.DefaultRetryWaitMin
	retryClient.RetryWaitMax = constants.DefaultRetryWaitMax
	retryClient.HTTPClient.Timeout = constants.DefaultHTTPTimeout
	// Hand the final response back instead of a generic "giving up" error so
	// the status code can be classified.
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler
	retryClient.CheckRetry = CheckRetry
	retryClient.Logger = nil

	client := &Client{
		apiURL:     strings.TrimSuffix(apiURL, "/"),
		httpClient: retryClient,
		auth:       auth,
		userAgent:  constants.DefaultUserAgent,
	}

	for _, opt := range opts {
		opt(client)
	}

	if client.logger != nil && client.debug {
		retryClient.Logger = &leveledLogger{logger: client.logger}
	}

	return client
}

type nonIdempotentKey struct{}

// CheckRetry is retryablehttp.DefaultRetryPolicy for read endpoints. For
// edit_ endpoints, which create or change records, it retries only a 429
// or a failure to connect, so a request the server may have stored is
// never sent twice.
func CheckRetry(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}

	if nonIdempotent, _ := ctx.Value(nonIdempotentKey{}).(bool); !nonIdempotent {
		return retryablehttp.DefaultRetryPolicy(ctx, resp, err)
	}

	if err != nil {
		var opErr *net.OpError

		return errors.As(err, &opErr) && opErr.Op == "dial", nil
	}

	return resp.StatusCode == http.StatusTooManyRequests, nil
}

// Request represents an HTTP request.
type Request struct {
	Endpoint string
	Form     url.Values
	Headers  map[string]string
}

// Response represents an HTTP response.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

// URL returns the absolute URL of endpoint.
func (c *Client) URL(endpoint string) string {
	return c.apiURL + "/" + strings.TrimPrefix(endpoint, "/")
}

// Do performs an HTTP request. For non-2xx statuses it returns both the
// response and an *opencrm.APIError; transport failures return an
// *opencrm.ConnectionError.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	form := url.Values{}
	for key, values := range req.Form {
		form[key] = append([]string(nil), values...)
	}

	header := make(http.Header)
	header.Set("User-Agent", c.userAgent)
	header.Set("Accept", "application/json")
	header.Set("Content-Type", "application/x-www-form-urlencoded")

	for key, value := range req.Headers {
		header.Set(key, value)
	}

	if c.auth != nil {
		err := c.auth.Apply(ctx, form, header)
		if err != nil {
			return nil, fmt.Errorf("applying authentication: %w", err)
		}
	}

	intercepted := &opencrm.Request{
		Method:   http.MethodPost,
		Endpoint: req.Endpoint,
		Headers:  header,
		Form:     form,
	}

	err := c.interceptors.ExecuteRequestInterceptors(ctx, intercepted)
	if err != nil {
		return nil, err
	}

	target := c.URL(req.Endpoint)

	if strings.HasPrefix(req.Endpoint, constants.EditEndpointPrefix) {
		ctx = context.WithValue(ctx, nonIdempotentKey{}, true)
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, target, []byte(intercepted.Form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	httpReq.Header = intercepted.Headers

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Request", map[string]interface{}{
			"method":   http.MethodPost,
			"url":      target,
			"endpoint": req.Endpoint,
			"form":     opencrm.MaskForm(intercepted.Form),
		})
	}

	start := time.Now()

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		connErr := &opencrm.ConnectionError{Op: http.MethodPost, URL: target, Err: err}
		_ = c.interceptors.ExecuteResponseInterceptors(ctx, intercepted, &opencrm.Response{Error: connErr})

		return nil, connErr
	}

	defer func() { _ = httpResp.Body.Close() }()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		connErr := &opencrm.ConnectionError{Op: "reading response from", URL: target, Err: err}
		_ = c.interceptors.ExecuteResponseInterceptors(ctx, intercepted, &opencrm.Response{StatusCode: httpResp.StatusCode, Error: connErr})

		return nil, connErr
	}

	resp := &Response{
		StatusCode: httpResp.StatusCode,
		Headers:    httpResp.Header,
		Body:       body,
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Response", map[string]interface{}{
			"status":   resp.StatusCode,
			"endpoint": req.Endpoint,
			"duration": time.Since(start).String(),
			"bytes":    len(body),
		})
	}

	var statusErr error
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		statusErr = opencrm.NewAPIError(req.Endpoint, resp.StatusCode, body)
	}

	err = c.interceptors.ExecuteResponseInterceptors(ctx, intercepted, &opencrm.Response{
		StatusCode: resp.StatusCode,
		Headers:    resp.Headers,
		Body:       body,
		Error:      statusErr,
	})
	if err != nil {
		return resp, err
	}

	if statusErr != nil {
		return resp, statusErr
	}

	return resp, nil
}

// Post sends form to endpoint.
func (c *Client) Post(ctx context.Context, endpoint string, form url.Values) (*Response, error) {
	return c.Do(ctx, &Request{Endpoint: endpoint, Form: form})
}

// PostDecode sends form to endpoint and decodes the body with Decode.
func (c *Client) PostDecode(ctx context.Context, endpoint string, form url.Values) (any, error) {
	resp, err := c.Post(ctx, endpoint, form)
	if err != nil {
		return nil, err
	}

	return resp.Decode(), nil
}

// Close releases idle keep-alive connections.
func (c *Client) Close() {
	c.httpClient.HTTPClient.CloseIdleConnections()
}

// Decode interprets the body the way OpenCRM responds: JSON when it
// parses (numbers kept as json.Number), otherwise the trimmed text, and
// nil for an empty body.
func (r *Response) Decode() any {
	trimmed := bytes.TrimSpace(r.Body)
	if len(trimmed) == 0 {
		return nil
	}

	decoder := json.NewDecoder(bytes.NewReader(trimmed))
	decoder.UseNumber()

	var value any

	err := decoder.Decode(&value)
	if err != nil || decoder.More() {
		return string(trimmed)
	}

	return value
}

// leveledLogger adapts Logger to retryablehttp.LeveledLogger.
type leveledLogger struct {
	logger Logger
}

func (l *leveledLogger) Error(msg string, keysAndValues ...interface{}) {
	l.logger.Error(msg, toFields(keysAndValues))
}

func (l *leveledLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Info(msg, toFields(keysAndValues))
}

func (l *leveledLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.logger.Debug(msg, toFields(keysAndValues))
}

func (l *leveledLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.logger.Warn(msg, toFields(keysAndValues))
}

func toFields(keysAndValues []interface{}) map[string]interface{} {
	fields := make(map[string]interface{}, len(keysAndValues)/2)

	for i := 0; i+1 < len(keysAndValues); i += 2 {
		fields[fmt.Sprint(keysAndValues[i])] = keysAndValues[i+1]
	}

	return fields
}
