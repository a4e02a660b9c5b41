package opencrm

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/fivetwenty-io/opencrm-client/internal/constants"
)

// AuthMethod selects how credentials are attached to requests.
type AuthMethod string

const (
	// AuthMethodKeys sends apikey and passkey as form fields on every request.
	AuthMethodKeys AuthMethod = "keys"
	// AuthMethodHeaders sends the keys as KEY1 and KEY2 headers.
	AuthMethodHeaders AuthMethod = "headers"
	// AuthMethodSession logs in once and sends the returned access key.
	AuthMethodSession AuthMethod = "session"
)

// Valid reports whether m names a supported method.
func (m AuthMethod) Valid() bool {
	switch m {
	case AuthMethodKeys, AuthMethodHeaders, AuthMethodSession:
		return true
	default:
		return false
	}
}

// Config represents client configuration for building an opencrm.Client.
//
// # Authentication
//
// SystemName, APIKey and PassKey are always required. AuthMethod decides how
// the keys travel:
//  1. keys (default): apikey/passkey form fields on each request.
//  2. headers: KEY1/KEY2 HTTP headers on each request.
//  3. session: the first request triggers a single login to
//     /api/rest/login; the returned access key is cached on the client and
//     sent as the accesskey form field. The key is never refreshed; a later
//     401 surfaces as an authentication error.
//
// # Timeouts and retries
//
// Timeout bounds each HTTP request (default 60s); contexts passed to client
// methods can shorten it further. Retries are off by default. Setting
// RetryMax enables retryablehttp's backoff for connection errors, 429 and
// 5xx responses between RetryWaitMin and RetryWaitMax. Creates and updates
// are retried only after a 429 or a failed dial, never after a 5xx.
type Config struct {
	// SystemName is the OpenCRM subdomain: "acme" for acme.opencrm.co.uk.
	SystemName string `mapstructure:"system_name" yaml:"system_name"`
	// APIKey is the OpenCRM API key.
	APIKey string `mapstructure:"api_key" yaml:"api_key"`
	// PassKey is the OpenCRM pass key paired with APIKey.
	PassKey string `mapstructure:"pass_key" yaml:"pass_key"`
	// AuthMethod is one of keys, headers or session. Empty means keys.
	AuthMethod AuthMethod `mapstructure:"auth_method" yaml:"auth_method"`
	// UserAgent overrides the default "opencrm-go/<version>". Values starting
	// with "curl" are rejected because OpenCRM blocks them.
	UserAgent string `mapstructure:"user_agent" yaml:"user_agent"`
	// Timeout is the per-request timeout. Zero means 60s.
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`
	// BaseURL replaces https://<system>.opencrm.co.uk, for proxies and tests.
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`

	// RetryMax is the number of retries for transient failures. Zero disables retries.
	RetryMax int `mapstructure:"retry_max" yaml:"retry_max"`
	// RetryWaitMin is the minimum backoff between retries.
	RetryWaitMin time.Duration `mapstructure:"retry_wait_min" yaml:"retry_wait_min"`
	// RetryWaitMax is the maximum backoff between retries.
	RetryWaitMax time.Duration `mapstructure:"retry_wait_max" yaml:"retry_wait_max"`

	// Debug enables HTTP request/response logging when a Logger is provided.
	Debug bool `mapstructure:"debug" yaml:"debug"`
	// Logger is an optional structured logger used by the HTTP layer.
	Logger Logger `mapstructure:"-" yaml:"-"`
	// Interceptors run around every request, including the session login.
	Interceptors *InterceptorChain `mapstructure:"-" yaml:"-"`
	// HTTPClient, when set, is copied and used for every request, for
	// example to supply a proxy-aware Transport. Timeout still applies.
	HTTPClient *http.Client `mapstructure:"-" yaml:"-"`
}

// Validate checks the configuration without touching the network.
func (c *Config) Validate() error {
	if c == nil {
		return ErrConfigRequired
	}

	if strings.TrimSpace(c.SystemName) == "" {
		return &ConfigurationError{Message: "system_name is required"}
	}

	if c.APIKey == "" || c.PassKey == "" {
		return &ConfigurationError{Message: "api_key and pass_key are required"}
	}

	if c.AuthMethod != "" && !c.AuthMethod.Valid() {
		return &ConfigurationError{Message: fmt.Sprintf("invalid auth_method: %s", c.AuthMethod)}
	}

	if c.Timeout < 0 {
		return &ConfigurationError{Message: "timeout must not be negative"}
	}

	if c.RetryMax < 0 {
		return &ConfigurationError{Message: "retry_max must not be negative"}
	}

	if strings.HasPrefix(strings.ToLower(strings.TrimSpace(c.UserAgent)), constants.BlockedUserAgentPrefix) {
		return &ConfigurationError{Message: "user_agent must not be a curl user agent"}
	}

	if c.BaseURL != "" {
		parsed, err := url.Parse(c.BaseURL)
		if err != nil || parsed.Scheme == "" || parsed.Host == "" {
			return &ConfigurationError{Message: fmt.Sprintf("invalid base_url: %q", c.BaseURL)}
		}
	}

	return nil
}

// WithDefaults returns a copy of c with every unset option defaulted.
func (c *Config) WithDefaults() *Config {
	out := *c

	out.SystemName = strings.TrimSpace(out.SystemName)

	if out.AuthMethod == "" {
		out.AuthMethod = AuthMethodKeys
	}

	if strings.TrimSpace(out.UserAgent) == "" {
		out.UserAgent = constants.DefaultUserAgent
	}

	if out.Timeout == 0 {
		out.Timeout = constants.DefaultHTTPTimeout
	}

	if out.RetryMax > 0 {
		if out.RetryWaitMin <= 0 {
			out.RetryWaitMin = constants.DefaultRetryWaitMin
		}

		if out.RetryWaitMax <= 0 {
			out.RetryWaitMax = constants.DefaultRetryWaitMax
		}
	}

	if out.BaseURL == "" {
		out.BaseURL = "https://" + out.SystemName + constants.HostSuffix
	}

	out.BaseURL = strings.TrimSuffix(out.BaseURL, "/")

	return &out
}

// APIURL returns the REST root, e.g. https://acme.opencrm.co.uk/api/rest.
func (c *Config) APIURL() string {
	return c.WithDefaults().BaseURL + constants.APIPath
}
