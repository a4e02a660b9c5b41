package opencrm_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/opencrm-client/pkg/opencrm"
)

func validConfig() *opencrm.Config {
	return &opencrm.Config{SystemName: "acme", APIKey: "api", PassKey: "pass"}
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*opencrm.Config)
		message string
	}{
		{name: "valid", mutate: func(*opencrm.Config) {}},
		{name: "session", mutate: func(c *opencrm.Config) { c.AuthMethod = opencrm.AuthMethodSession }},
		{name: "blank system", mutate: func(c *opencrm.Config) { c.SystemName = "  " }, message: "system_name is required"},
		{name: "no api key", mutate: func(c *opencrm.Config) { c.APIKey = "" }, message: "api_key and pass_key are required"},
		{name: "no pass key", mutate: func(c *opencrm.Config) { c.PassKey = "" }, message: "api_key and pass_key are required"},
		{name: "bad method", mutate: func(c *opencrm.Config) { c.AuthMethod = "token" }, message: "invalid auth_method: token"},
		{name: "curl agent", mutate: func(c *opencrm.Config) { c.UserAgent = "curl/7.88.1" }, message: "curl"},
		{name: "uppercase curl agent", mutate: func(c *opencrm.Config) { c.UserAgent = " Curl" }, message: "curl"},
		{name: "negative timeout", mutate: func(c *opencrm.Config) { c.Timeout = -time.Second }, message: "timeout"},
		{name: "negative retries", mutate: func(c *opencrm.Config) { c.RetryMax = -1 }, message: "retry_max"},
		{name: "relative base url", mutate: func(c *opencrm.Config) { c.BaseURL = "acme.example" }, message: "invalid base_url"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			config := validConfig()
			tt.mutate(config)

			err := config.Validate()
			if tt.message == "" {
				require.NoError(t, err)

				return
			}

			require.Error(t, err)
			assert.True(t, opencrm.IsConfiguration(err))
			assert.Contains(t, err.Error(), tt.message)
		})
	}

	var nilConfig *opencrm.Config
	assert.ErrorIs(t, nilConfig.Validate(), opencrm.ErrConfiguration)
}

func TestConfig_WithDefaults(t *testing.T) {
	t.Parallel()

	config := validConfig()
	defaulted := config.WithDefaults()

	assert.Equal(t, opencrm.AuthMethodKeys, defaulted.AuthMethod)
	assert.Equal(t, 60*time.Second, defaulted.Timeout)
	assert.Equal(t, "opencrm-go/0.1.0", defaulted.UserAgent)
	assert.Equal(t, "https://acme.opencrm.co.uk", defaulted.BaseURL)
	assert.Zero(t, defaulted.RetryMax)
	assert.Zero(t, defaulted.RetryWaitMin)
	assert.Empty(t, config.BaseURL, "original is not modified")

	config.RetryMax = 2
	config.BaseURL = "http://localhost:9999/"
	defaulted = config.WithDefaults()

	assert.Equal(t, time.Second, defaulted.RetryWaitMin)
	assert.Equal(t, 30*time.Second, defaulted.RetryWaitMax)
	assert.Equal(t, "http://localhost:9999", defaulted.BaseURL)
	assert.Equal(t, "http://localhost:9999/api/rest", config.APIURL())
}

func TestConfig_APIURL(t *testing.T) {
	t.Parallel()

	config := &opencrm.Config{SystemName: "demo"}
	assert.Equal(t, "https://demo.opencrm.co.uk/api/rest", config.APIURL())
}
