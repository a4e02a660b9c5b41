package client

import (
	"fmt"
	"sync"

	"github.com/fivetwenty-io/opencrm-client/internal/auth"
	"github.com/fivetwenty-io/opencrm-client/internal/http"
	"github.com/fivetwenty-io/opencrm-client/pkg/opencrm"
)

// Client implements the opencrm.Client interface.
type Client struct {
	httpClient    *http.Client
	loginClient   *http.Client
	authenticator http.Authenticator
	config        *opencrm.Config
	closeOnce     sync.Once

	// Resource clients
	leads         *ResourceClient[opencrm.Lead]
	contacts      *ResourceClient[opencrm.Contact]
	companies     *ResourceClient[opencrm.Company]
	opportunities *ResourceClient[opencrm.Opportunity]
	products      *ResourceClient[opencrm.Product]
	projects      *ResourceClient[opencrm.Project]
	helpdesk      *ResourceClient[opencrm.Ticket]
	activities    *ResourceClient[opencrm.Activity]
}

// createHTTPClientOptions builds HTTP client options from a defaulted config.
func createHTTPClientOptions(config *opencrm.Config) []http.Option {
	var httpOpts []http.Option

	if config.HTTPClient != nil {
		httpOpts = append(httpOpts, http.WithHTTPClient(config.HTTPClient))
	}

	httpOpts = append(httpOpts,
		http.WithUserAgent(config.UserAgent),
		http.WithTimeout(config.Timeout),
	)

	if config.Logger != nil {
		httpOpts = append(httpOpts, http.WithLogger(&loggerAdapter{logger: config.Logger}))
	}

	if config.Debug {
		httpOpts = append(httpOpts, http.WithDebug(true))
	}

	if config.RetryMax > 0 {
		httpOpts = append(httpOpts, http.WithRetryConfig(config.RetryMax, config.RetryWaitMin, config.RetryWaitMax))
	}

	if config.Interceptors != nil {
		httpOpts = append(httpOpts, http.WithInterceptors(config.Interceptors))
	}

	return httpOpts
}

// newLoginClient returns the unauthenticated client used for session
// logins. It shares the transport settings of the main client.
func newLoginClient(config *opencrm.Config) *http.Client {
	return http.NewClient(config.APIURL(), nil, createHTTPClientOptions(config)...)
}

// New creates a new OpenCRM client. It validates config and never touches
// the network; a session login happens on the first request.
func New(config *opencrm.Config, sessionOpts ...auth.SessionOption) (*Client, error) {
	err := config.Validate()
	if err != nil {
		return nil, err
	}

	config = config.WithDefaults()

	var loginClient *http.Client
	if config.AuthMethod == opencrm.AuthMethodSession {
		loginClient = newLoginClient(config)

		if config.Logger != nil {
			sessionOpts = append(sessionOpts, auth.WithSessionLogger(&loggerAdapter{logger: config.Logger}))
		}
	}

	authenticator, err := auth.New(config.AuthMethod, config.APIKey, config.PassKey, loginClient, sessionOpts...)
	if err != nil {
		return nil, fmt.Errorf("creating authenticator: %w", err)
	}

	client := newClient(config, authenticator)
	client.loginClient = loginClient

	return client, nil
}

// NewWithAuthenticator creates a new OpenCRM client with a custom
// authenticator. AuthMethod in config is ignored.
func NewWithAuthenticator(config *opencrm.Config, authenticator http.Authenticator) (*Client, error) {
	err := config.Validate()
	if err != nil {
		return nil, err
	}

	if authenticator == nil {
		return nil, &opencrm.ConfigurationError{Message: "authenticator is required"}
	}

	return newClient(config.WithDefaults(), authenticator), nil
}

func newClient(config *opencrm.Config, authenticator http.Authenticator) *Client {
	client := &Client{
		httpClient:    http.NewClient(config.APIURL(), authenticator, createHTTPClientOptions(config)...),
		authenticator: authenticator,
		config:        config,
	}

	client.initializeResourceClients()

	return client
}

// Config returns the defaulted configuration the client was built with.
func (c *Client) Config() opencrm.Config {
	return *c.config
}

// Authenticator returns the authenticator attached to every request.
func (c *Client) Authenticator() http.Authenticator {
	return c.authenticator
}

// Resource client accessors

// Leads implements opencrm.Client.Leads.
func (c *Client) Leads() opencrm.LeadsClient {
	return c.leads
}

// Contacts implements opencrm.Client.Contacts.
func (c *Client) Contacts() opencrm.ContactsClient {
	return c.contacts
}

// Companies implements opencrm.Client.Companies.
func (c *Client) Companies() opencrm.CompaniesClient {
	return c.companies
}

// Opportunities implements opencrm.Client.Opportunities.
func (c *Client) Opportunities() opencrm.OpportunitiesClient {
	return c.opportunities
}

// Products implements opencrm.Client.Products.
func (c *Client) Products() opencrm.ProductsClient {
	return c.products
}

// Projects implements opencrm.Client.Projects.
func (c *Client) Projects() opencrm.ProjectsClient {
	return c.projects
}

// Helpdesk implements opencrm.Client.Helpdesk.
func (c *Client) Helpdesk() opencrm.HelpdeskClient {
	return c.helpdesk
}

// Activities implements opencrm.Client.Activities.
func (c *Client) Activities() opencrm.ActivitiesClient {
	return c.activities
}

// Records implements opencrm.Client.Records.
func (c *Client) Records(module opencrm.Module) opencrm.ResourceClient[opencrm.Record] {
	return NewResourceClient[opencrm.Record](c.httpClient, module)
}

// Close implements opencrm.Client.Close.
func (c *Client) Close() error {
	c.closeOnce.Do(func() {
		c.httpClient.Close()

		if c.loginClient != nil {
			c.loginClient.Close()
		}
	})

	return nil
}

func (c *Client) initializeResourceClients() {
	c.leads = NewResourceClient[opencrm.Lead](c.httpClient, opencrm.LeadsModule)
	c.contacts = NewResourceClient[opencrm.Contact](c.httpClient, opencrm.ContactsModule)
	c.companies = NewResourceClient[opencrm.Company](c.httpClient, opencrm.CompaniesModule)
	c.opportunities = NewResourceClient[opencrm.Opportunity](c.httpClient, opencrm.OpportunitiesModule)
	c.products = NewResourceClient[opencrm.Product](c.httpClient, opencrm.ProductsModule)
	c.projects = NewResourceClient[opencrm.Project](c.httpClient, opencrm.ProjectsModule)
	c.helpdesk = NewResourceClient[opencrm.Ticket](c.httpClient, opencrm.HelpdeskModule)
	c.activities = NewResourceClient[opencrm.Activity](c.httpClient, opencrm.ActivitiesModule)
}

// loggerAdapter adapts opencrm.Logger to http.Logger.
type loggerAdapter struct {
	logger opencrm.Logger
}

func (l *loggerAdapter) Debug(msg string, fields map[string]interface{}) {
	l.logger.Debug(msg, fields)
}

func (l *loggerAdapter) Info(msg string, fields map[string]interface{}) {
	l.logger.Info(msg, fields)
}

func (l *loggerAdapter) Warn(msg string, fields map[string]interface{}) {
	l.logger.Warn(msg, fields)
}

func (l *loggerAdapter) Error(msg string, fields map[string]interface{}) {
	l.logger.Error(msg, fields)
}

var _ opencrm.Client = (*Client)(nil)
