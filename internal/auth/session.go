package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/fivetwenty-io/opencrm-client/internal/constants"
	crmhttp "github.com/fivetwenty-io/opencrm-client/internal/http"
	"github.com/fivetwenty-io/opencrm-client/pkg/opencrm"
)

// KeyPersister stores a freshly obtained access key, for example in the
// CLI config file, so later processes can skip the login.
type KeyPersister interface {
	SaveAccessKey(systemName, accessKey string) error
}

// SessionOption configures a SessionAuth.
type SessionOption func(*SessionAuth)

// WithAccessKey seeds the session with a previously obtained key.
func WithAccessKey(accessKey string) SessionOption {
	return func(s *SessionAuth) {
		s.accessKey = strings.TrimSpace(accessKey)
	}
}

// WithKeyPersister saves every new access key for systemName.
func WithKeyPersister(persister KeyPersister, systemName string) SessionOption {
	return func(s *SessionAuth) {
		s.persister = persister
		s.systemName = systemName
	}
}

// WithSessionLogger logs logins and persistence failures.
func WithSessionLogger(logger crmhttp.Logger) SessionOption {
	return func(s *SessionAuth) {
		s.logger = logger
	}
}

// SessionAuth logs in on first use and sends the returned key as the
// accesskey form field. The key is cached for the life of the value and
// never refreshed.
type SessionAuth struct {
	login   *crmhttp.Client
	apiKey  string
	passKey string

	mutex     sync.Mutex
	accessKey string

	persister  KeyPersister
	systemName string
	logger     crmhttp.Logger
}

// NewSessionAuth creates a session authenticator that logs in through
// login, an unauthenticated client rooted at the REST API.
func NewSessionAuth(login *crmhttp.Client, apiKey, passKey string, opts ...SessionOption) *SessionAuth {
	session := &SessionAuth{
		login:   login,
		apiKey:  apiKey,
		passKey: passKey,
	}

	for _, opt := range opts {
		opt(session)
	}

	return session
}

// Apply implements http.Authenticator.
func (s *SessionAuth) Apply(ctx context.Context, form url.Values, header http.Header) error {
	accessKey, err := s.AccessKey(ctx)
	if err != nil {
		return err
	}

	form.Set(constants.FieldAccessKey, accessKey)

	return nil
}

// AccessKey returns the cached key, logging in first if there is none.
// Concurrent callers share a single login.
func (s *SessionAuth) AccessKey(ctx context.Context) (string, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.accessKey != "" {
		return s.accessKey, nil
	}

	accessKey, err := s.doLogin(ctx)
	if err != nil {
		return "", err
	}

	s.accessKey = accessKey

	if s.logger != nil {
		s.logger.Info("OpenCRM session established", map[string]interface{}{"system": s.systemName})
	}

	if s.persister != nil {
		persistErr := s.persister.SaveAccessKey(s.systemName, accessKey)
		if persistErr != nil && s.logger != nil {
			s.logger.Warn("failed to persist access key", map[string]interface{}{"error": persistErr.Error()})
		}
	}

	return accessKey, nil
}

// LoggedIn reports whether an access key is cached.
func (s *SessionAuth) LoggedIn() bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	return s.accessKey != ""
}

func (s *SessionAuth) doLogin(ctx context.Context) (string, error) {
	if s.login == nil {
		return "", &opencrm.AuthenticationError{Message: "Login client is not configured"}
	}

	form := url.Values{}
	form.Set(constants.FieldLoginKey, s.apiKey)
	form.Set(constants.FieldPassKey, s.passKey)

	resp, err := s.login.Post(ctx, constants.LoginEndpoint, form)
	if err != nil {
		apiErr := &opencrm.APIError{}
		if errors.As(err, &apiErr) {
			return "", &opencrm.AuthenticationError{
				Message:      fmt.Sprintf("Login failed with status %d", apiErr.StatusCode),
				StatusCode:   apiErr.StatusCode,
				ResponseBody: apiErr.ResponseBody,
			}
		}

		return "", &opencrm.AuthenticationError{Message: "Login request failed", Err: err}
	}

	accessKey := extractAccessKey(resp.Decode())
	if accessKey == "" {
		return "", &opencrm.AuthenticationError{
			Message:      "Login succeeded but no access key returned",
			ResponseBody: strings.TrimSpace(string(resp.Body)),
		}
	}

	return accessKey, nil
}

// extractAccessKey takes the accesskey member of a JSON object, or the body
// text when the server answers with a bare key.
func extractAccessKey(decoded any) string {
	switch value := decoded.(type) {
	case map[string]any:
		key, ok := value[constants.FieldAccessKey]
		if !ok || key == nil {
			return ""
		}

		return strings.TrimSpace(fmt.Sprint(key))
	case string:
		return strings.TrimSpace(value)
	default:
		if value == nil {
			return ""
		}

		return strings.TrimSpace(fmt.Sprint(value))
	}
}
