// Package auth implements the three OpenCRM credential strategies: form
// keys, KEY1/KEY2 headers and a lazily established login session.
package auth

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/fivetwenty-io/opencrm-client/internal/constants"
	crmhttp "github.com/fivetwenty-io/opencrm-client/internal/http"
	"github.com/fivetwenty-io/opencrm-client/pkg/opencrm"
)

// KeysAuth sends apikey and passkey as form fields on every request.
type KeysAuth struct {
	APIKey  string
	PassKey string
}

// Apply implements http.Authenticator.
func (a *KeysAuth) Apply(ctx context.Context, form url.Values, header http.Header) error {
	form.Set(constants.FieldAPIKey, a.APIKey)
	form.Set(constants.FieldPassKey, a.PassKey)

	return nil
}

// HeaderAuth sends the keys as KEY1 and KEY2 headers.
type HeaderAuth struct {
	APIKey  string
	PassKey string
}

// Apply implements http.Authenticator.
func (a *HeaderAuth) Apply(ctx context.Context, form url.Values, header http.Header) error {
	header.Set(constants.HeaderKey1, a.APIKey)
	header.Set(constants.HeaderKey2, a.PassKey)

	return nil
}

// New returns the authenticator for method. login is only used by the
// session method and must not itself carry an authenticator.
func New(method opencrm.AuthMethod, apiKey, passKey string, login *crmhttp.Client, opts ...SessionOption) (crmhttp.Authenticator, error) {
	switch method {
	case opencrm.AuthMethodKeys, "":
		return &KeysAuth{APIKey: apiKey, PassKey: passKey}, nil
	case opencrm.AuthMethodHeaders:
		return &HeaderAuth{APIKey: apiKey, PassKey: passKey}, nil
	case opencrm.AuthMethodSession:
		return NewSessionAuth(login, apiKey, passKey, opts...), nil
	default:
		return nil, &opencrm.ConfigurationError{Message: fmt.Sprintf("invalid auth_method: %s", method)}
	}
}
