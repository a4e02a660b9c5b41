package client_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/opencrm-client/internal/auth"
	. "github.com/fivetwenty-io/opencrm-client/internal/client"
	"github.com/fivetwenty-io/opencrm-client/pkg/opencrm"
	"github.com/fivetwenty-io/opencrm-client/pkg/opencrmtest"
)

type keyRecorder struct {
	keys map[string]string
}

func (k *keyRecorder) SaveAccessKey(systemName, accessKey string) error {
	k.keys[systemName] = accessKey

	return nil
}

type countingTransport struct {
	calls atomic.Int32
}

func (c *countingTransport) RoundTrip(request *http.Request) (*http.Response, error) {
	c.calls.Add(1)

	return http.DefaultTransport.RoundTrip(request)
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("requires system name", func(t *testing.T) {
		t.Parallel()

		_, err := New(&opencrm.Config{APIKey: "a", PassKey: "p"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "system_name is required")
	})

	t.Run("nil config", func(t *testing.T) {
		t.Parallel()

		_, err := New(nil)
		assert.ErrorIs(t, err, opencrm.ErrConfiguration)
	})

	t.Run("applies defaults", func(t *testing.T) {
		t.Parallel()

		client, err := New(&opencrm.Config{SystemName: " acme ", APIKey: "a", PassKey: "p"})
		require.NoError(t, err)

		config := client.Config()
		assert.Equal(t, "acme", config.SystemName)
		assert.Equal(t, opencrm.AuthMethodKeys, config.AuthMethod)
		assert.Equal(t, "https://acme.opencrm.co.uk", config.BaseURL)
		assert.Equal(t, "opencrm-go/0.1.0", config.UserAgent)
		assert.Equal(t, 60*time.Second, config.Timeout)
		assert.Zero(t, config.RetryMax)
		assert.IsType(t, &auth.KeysAuth{}, client.Authenticator())
	})

	t.Run("selects authenticator", func(t *testing.T) {
		t.Parallel()

		headers, err := New(&opencrm.Config{SystemName: "acme", APIKey: "a", PassKey: "p", AuthMethod: opencrm.AuthMethodHeaders})
		require.NoError(t, err)
		assert.IsType(t, &auth.HeaderAuth{}, headers.Authenticator())

		session, err := New(&opencrm.Config{SystemName: "acme", APIKey: "a", PassKey: "p", AuthMethod: opencrm.AuthMethodSession})
		require.NoError(t, err)
		assert.IsType(t, &auth.SessionAuth{}, session.Authenticator())
	})

	t.Run("custom authenticator", func(t *testing.T) {
		t.Parallel()

		server := opencrmtest.NewServer()
		defer server.Close()

		config := server.Config(opencrm.AuthMethodKeys)
		client, err := NewWithAuthenticator(config, &auth.HeaderAuth{APIKey: config.APIKey, PassKey: config.PassKey})
		require.NoError(t, err)

		_, err = client.Products().Count(context.Background(), nil)
		require.NoError(t, err)

		request, ok := server.LastRequest(opencrm.ProductsModule.CountEndpoint)
		require.True(t, ok)
		assert.Equal(t, config.APIKey, request.Header.Get("KEY1"))
		assert.Empty(t, request.Form["apikey"])

		_, err = NewWithAuthenticator(config, nil)
		assert.True(t, opencrm.IsConfiguration(err))
	})

	t.Run("session persister", func(t *testing.T) {
		t.Parallel()

		server := opencrmtest.NewServer()
		defer server.Close()

		recorder := &keyRecorder{keys: map[string]string{}}

		client, err := New(server.Config(opencrm.AuthMethodSession), auth.WithKeyPersister(recorder, "testsystem"))
		require.NoError(t, err)

		_, err = client.Leads().Count(context.Background(), nil)
		require.NoError(t, err)
		assert.Equal(t, opencrmtest.DefaultAccessKey, recorder.keys["testsystem"])
	})
}

func TestClient_ModuleAccessors(t *testing.T) {
	t.Parallel()

	client, err := New(&opencrm.Config{SystemName: "acme", APIKey: "a", PassKey: "p"})
	require.NoError(t, err)

	assert.Equal(t, opencrm.LeadsModule.Name, client.Leads().Module().Name)
	assert.Equal(t, opencrm.ContactsModule.Name, client.Contacts().Module().Name)
	assert.Equal(t, opencrm.CompaniesModule.Name, client.Companies().Module().Name)
	assert.Equal(t, opencrm.OpportunitiesModule.Name, client.Opportunities().Module().Name)
	assert.Equal(t, opencrm.ProductsModule.Name, client.Products().Module().Name)
	assert.Equal(t, opencrm.ProjectsModule.Name, client.Projects().Module().Name)
	assert.Equal(t, opencrm.HelpdeskModule.Name, client.Helpdesk().Module().Name)
	assert.Equal(t, opencrm.ActivitiesModule.Name, client.Activities().Module().Name)
	assert.Equal(t, "get_ticket_list", client.Helpdesk().Module().ListEndpoint)
	assert.Equal(t, "edit_activity", client.Records(opencrm.ActivitiesModule).Module().EditEndpoint)

	require.NoError(t, client.Close())
	require.NoError(t, client.Close())
}

func TestClient_SessionLogsInOnce(t *testing.T) {
	t.Parallel()

	server := opencrmtest.NewServer(opencrmtest.WithPlainTextLogin())
	defer server.Close()

	server.Seed(opencrm.ContactsModule, map[string]string{"lastname": "Smith"})

	client, err := New(server.Config(opencrm.AuthMethodSession))
	require.NoError(t, err)
	assert.Zero(t, server.Logins())

	ctx := context.Background()

	_, err = client.Contacts().List(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, server.Logins())

	_, err = client.Contacts().Count(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, server.Logins())

	login, ok := server.LastRequest("login")
	require.True(t, ok)
	assert.Empty(t, login.Form["accesskey"])
	assert.Empty(t, login.Form["apikey"])

	request, ok := server.LastRequest(opencrm.ContactsModule.CountEndpoint)
	require.True(t, ok)
	assert.Equal(t, opencrmtest.DefaultAccessKey, request.Form["accesskey"])
	assert.Empty(t, request.Form["apikey"])
}

func TestClient_SessionExpiredKey(t *testing.T) {
	t.Parallel()

	server := opencrmtest.NewServer()
	defer server.Close()

	client, err := New(server.Config(opencrm.AuthMethodSession))
	require.NoError(t, err)

	ctx := context.Background()

	_, err = client.Leads().Count(ctx, nil)
	require.NoError(t, err)

	server.Fail(opencrm.LeadsModule.CountEndpoint, opencrmtest.Fault{StatusCode: http.StatusUnauthorized, Body: "Session expired", Times: 1})

	_, err = client.Leads().Count(ctx, nil)
	require.Error(t, err)
	assert.True(t, opencrm.IsAuthentication(err))
	assert.Equal(t, 1, server.Logins(), "no silent re-login")
}

func TestClient_Interceptors(t *testing.T) {
	t.Parallel()

	server := opencrmtest.NewServer()
	defer server.Close()

	collector := opencrm.NewMetricsCollector()
	config := server.Config(opencrm.AuthMethodSession)
	config.Interceptors = opencrm.NewStandardInterceptors(nil, collector)

	client, err := New(config)
	require.NoError(t, err)

	_, err = client.Projects().List(context.Background(), nil)
	require.NoError(t, err)

	login, ok := collector.GetMetrics("login")
	require.True(t, ok)
	assert.Equal(t, int64(1), login.TotalRequests)

	list, ok := collector.GetMetrics(opencrm.ProjectsModule.ListEndpoint)
	require.True(t, ok)
	assert.Equal(t, int64(1), list.TotalRequests)
	assert.Zero(t, list.TotalErrors)

	request, ok := server.LastRequest(opencrm.ProjectsModule.ListEndpoint)
	require.True(t, ok)
	assert.NotEmpty(t, request.RequestID)
	assert.Equal(t, request.Header.Get("X-Request-ID"), request.RequestID)
}

func TestClient_UserAgent(t *testing.T) {
	t.Parallel()

	var agents []string

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		agents = append(agents, request.Header.Get("User-Agent"))
		_, _ = writer.Write([]byte("0"))
	}))
	defer server.Close()

	client, err := New(&opencrm.Config{
		SystemName: "acme", APIKey: "a", PassKey: "p",
		UserAgent: "crm-sync/2.0", BaseURL: server.URL,
	})
	require.NoError(t, err)

	_, err = client.Leads().Count(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"crm-sync/2.0"}, agents)
}

func TestClient_CustomHTTPClient(t *testing.T) {
	t.Parallel()

	server := opencrmtest.NewServer()
	defer server.Close()

	transport := &countingTransport{}
	httpClient := &http.Client{Transport: transport}

	config := server.Config(opencrm.AuthMethodSession)
	config.HTTPClient = httpClient
	config.Timeout = 5 * time.Second

	client, err := New(config)
	require.NoError(t, err)

	defer func() { _ = client.Close() }()

	_, err = client.Leads().Count(context.Background(), nil)
	require.NoError(t, err)

	// The login and the count both go through the supplied transport.
	assert.Equal(t, int32(2), transport.calls.Load())
	assert.Equal(t, 1, server.Logins())
	assert.Zero(t, httpClient.Timeout)
}
