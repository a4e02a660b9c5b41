package opencrm

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/fivetwenty-io/opencrm-client/internal/constants"
)

// Request represents an HTTP request that can be intercepted. Form holds
// the body fields, credentials included, so interceptors that log it must
// mask secrets with MaskForm.
type Request struct {
	Method   string
	Endpoint string
	Headers  http.Header
	Form     url.Values
	Metadata map[string]interface{}
}

// Response represents an HTTP response that can be intercepted.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
	Error      error
}

// RequestInterceptor is called before a request is sent.
type RequestInterceptor func(ctx context.Context, req *Request) error

// ResponseInterceptor is called after a response is received.
type ResponseInterceptor func(ctx context.Context, req *Request, resp *Response) error

// InterceptorChain manages a chain of interceptors.
type InterceptorChain struct {
	requestInterceptors  []RequestInterceptor
	responseInterceptors []ResponseInterceptor
}

// NewInterceptorChain creates a new interceptor chain.
func NewInterceptorChain() *InterceptorChain {
	return &InterceptorChain{
		requestInterceptors:  make([]RequestInterceptor, 0),
		responseInterceptors: make([]ResponseInterceptor, 0),
	}
}

// AddRequestInterceptor adds a request interceptor to the chain.
func (c *InterceptorChain) AddRequestInterceptor(interceptor RequestInterceptor) *InterceptorChain {
	c.requestInterceptors = append(c.requestInterceptors, interceptor)

	return c
}

// AddResponseInterceptor adds a response interceptor to the chain.
func (c *InterceptorChain) AddResponseInterceptor(interceptor ResponseInterceptor) *InterceptorChain {
	c.responseInterceptors = append(c.responseInterceptors, interceptor)

	return c
}

// ExecuteRequestInterceptors runs all request interceptors.
func (c *InterceptorChain) ExecuteRequestInterceptors(ctx context.Context, req *Request) error {
	if c == nil {
		return nil
	}

	for _, interceptor := range c.requestInterceptors {
		err := interceptor(ctx, req)
		if err != nil {
			return fmt.Errorf("request interceptor failed: %w", err)
		}
	}

	return nil
}

// ExecuteResponseInterceptors runs all response interceptors.
func (c *InterceptorChain) ExecuteResponseInterceptors(ctx context.Context, req *Request, resp *Response) error {
	if c == nil {
		return nil
	}

	for _, interceptor := range c.responseInterceptors {
		err := interceptor(ctx, req, resp)
		if err != nil {
			return fmt.Errorf("response interceptor failed: %w", err)
		}
	}

	return nil
}

// Common Interceptors

// LoggingInterceptor logs requests with credentials masked.
func LoggingInterceptor(logger Logger) RequestInterceptor {
	return func(ctx context.Context, req *Request) error {
		fields := map[string]interface{}{
			"method":   req.Method,
			"endpoint": req.Endpoint,
			"form":     MaskForm(req.Form),
		}

		if id, ok := req.Metadata["request_id"]; ok {
			fields["request_id"] = id
		}

		logger.Debug("API Request", fields)

		return nil
	}
}

// LoggingResponseInterceptor logs responses.
func LoggingResponseInterceptor(logger Logger) ResponseInterceptor {
	return func(ctx context.Context, req *Request, resp *Response) error {
		fields := map[string]interface{}{
			"method":      req.Method,
			"endpoint":    req.Endpoint,
			"status_code": resp.StatusCode,
		}

		if id, ok := req.Metadata["request_id"]; ok {
			fields["request_id"] = id
		}

		if resp.Error != nil || resp.StatusCode >= http.StatusBadRequest {
			if resp.Error != nil {
				fields["error"] = resp.Error.Error()
			}

			logger.Error("API Response Error", fields)
		} else {
			logger.Debug("API Response", fields)
		}

		return nil
	}
}

// HeaderInterceptor adds custom headers to requests.
func HeaderInterceptor(headers map[string]string) RequestInterceptor {
	return func(ctx context.Context, req *Request) error {
		if req.Headers == nil {
			req.Headers = make(http.Header)
		}

		for key, value := range headers {
			req.Headers.Set(key, value)
		}

		return nil
	}
}

// RequestIDInterceptor tags each request with a random X-Request-ID header
// and records it in the request metadata for log correlation.
func RequestIDInterceptor() RequestInterceptor {
	return func(ctx context.Context, req *Request) error {
		if req.Headers == nil {
			req.Headers = make(http.Header)
		}

		id := req.Headers.Get(constants.HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
			req.Headers.Set(constants.HeaderRequestID, id)
		}

		if req.Metadata == nil {
			req.Metadata = make(map[string]interface{})
		}

		req.Metadata["request_id"] = id

		return nil
	}
}

// Metrics holds per-endpoint call statistics.
type Metrics struct {
	TotalRequests   int64
	TotalErrors     int64
	TotalLatency    time.Duration
	AverageLatency  time.Duration
	LastRequestTime time.Time
}

// MetricsCollector collects API metrics.
type MetricsCollector struct {
	mu       sync.Mutex
	metrics  map[string]*Metrics
	onChange func(endpoint string, metrics Metrics)
}

// NewMetricsCollector creates a new metrics collector.
func NewMetricsCollector() *MetricsCollector {
	return &MetricsCollector{
		metrics: make(map[string]*Metrics),
	}
}

// SetOnChange sets a callback for when metrics change.
func (m *MetricsCollector) SetOnChange(fn func(endpoint string, metrics Metrics)) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.onChange = fn
}

// GetMetrics returns a snapshot of the metrics for an endpoint.
func (m *MetricsCollector) GetMetrics(endpoint string) (Metrics, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if metrics, ok := m.metrics[endpoint]; ok {
		return *metrics, true
	}

	return Metrics{}, false
}

func (m *MetricsCollector) record(endpoint string, latency time.Duration, failed bool) {
	m.mu.Lock()

	metrics, ok := m.metrics[endpoint]
	if !ok {
		metrics = &Metrics{}
		m.metrics[endpoint] = metrics
	}

	metrics.TotalRequests++
	metrics.LastRequestTime = time.Now()

	if latency > 0 {
		metrics.TotalLatency += latency
		metrics.AverageLatency = metrics.TotalLatency / time.Duration(metrics.TotalRequests)
	}

	if failed {
		metrics.TotalErrors++
	}

	snapshot := *metrics
	onChange := m.onChange

	m.mu.Unlock()

	if onChange != nil {
		onChange(endpoint, snapshot)
	}
}

// MetricsRequestInterceptor records request start time.
func MetricsRequestInterceptor(collector *MetricsCollector) RequestInterceptor {
	return func(ctx context.Context, req *Request) error {
		if req.Metadata == nil {
			req.Metadata = make(map[string]interface{})
		}

		req.Metadata["start_time"] = time.Now()

		return nil
	}
}

// MetricsResponseInterceptor records response metrics keyed by endpoint.
func MetricsResponseInterceptor(collector *MetricsCollector) ResponseInterceptor {
	return func(ctx context.Context, req *Request, resp *Response) error {
		var latency time.Duration

		if startTime, ok := req.Metadata["start_time"].(time.Time); ok {
			latency = time.Since(startTime)
		}

		failed := resp.Error != nil || resp.StatusCode >= http.StatusBadRequest
		collector.record(req.Endpoint, latency, failed)

		return nil
	}
}

// NewStandardInterceptors returns a chain with request IDs and logging,
// plus metrics when collector is non-nil.
func NewStandardInterceptors(logger Logger, collector *MetricsCollector) *InterceptorChain {
	chain := NewInterceptorChain().AddRequestInterceptor(RequestIDInterceptor())

	if collector != nil {
		chain.AddRequestInterceptor(MetricsRequestInterceptor(collector))
		chain.AddResponseInterceptor(MetricsResponseInterceptor(collector))
	}

	if logger != nil {
		chain.AddRequestInterceptor(LoggingInterceptor(logger))
		chain.AddResponseInterceptor(LoggingResponseInterceptor(logger))
	}

	return chain
}
