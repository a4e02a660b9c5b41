package crmclient

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/fivetwenty-io/opencrm-client/internal/client"
	"github.com/fivetwenty-io/opencrm-client/pkg/opencrm"
)

// New creates a new OpenCRM client. The configuration is validated up front
// and no request is made; with session authentication the login happens on
// the first API call.
func New(config *opencrm.Config) (opencrm.Client, error) {
	if config == nil {
		return nil, opencrm.ErrConfigRequired
	}

	c, err := client.New(config)
	if err != nil {
		return nil, fmt.Errorf("creating client: %w", err)
	}

	return c, nil
}

// NewWithKeys creates a client that sends the keys as form fields.
func NewWithKeys(systemName, apiKey, passKey string) (opencrm.Client, error) {
	return New(&opencrm.Config{
		SystemName: systemName,
		APIKey:     apiKey,
		PassKey:    passKey,
		AuthMethod: opencrm.AuthMethodKeys,
	})
}

// NewWithHeaders creates a client that sends the keys as KEY1/KEY2 headers.
func NewWithHeaders(systemName, apiKey, passKey string) (opencrm.Client, error) {
	return New(&opencrm.Config{
		SystemName: systemName,
		APIKey:     apiKey,
		PassKey:    passKey,
		AuthMethod: opencrm.AuthMethodHeaders,
	})
}

// NewWithSession creates a client that logs in once and reuses the access key.
func NewWithSession(systemName, apiKey, passKey string) (opencrm.Client, error) {
	return New(&opencrm.Config{
		SystemName: systemName,
		APIKey:     apiKey,
		PassKey:    passKey,
		AuthMethod: opencrm.AuthMethodSession,
	})
}

// NewFromViper creates a client from the settings held by v. See LoadConfig.
func NewFromViper(v *viper.Viper) (opencrm.Client, error) {
	config, err := LoadConfig(v)
	if err != nil {
		return nil, err
	}

	return New(config)
}

// NewFromEnv creates a client from OPENCRM_* environment variables.
func NewFromEnv() (opencrm.Client, error) {
	return NewFromViper(NewViper())
}
