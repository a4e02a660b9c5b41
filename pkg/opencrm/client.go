package opencrm

import "context"

// ResourceClient is the operation set shared by every OpenCRM module. T is
// the module's typed model, used by GetModel and ListModels.
//
// Every method except Iterate performs exactly one HTTP round trip, plus a
// one-time login when session authentication is in use.
type ResourceClient[T any] interface {
	// Module returns the module descriptor.
	Module() Module
	// List returns one window of matching records, in server order.
	List(ctx context.Context, params *ListParams) ([]Record, error)
	// Get returns one record; a missing record yields ErrNotFound.
	Get(ctx context.Context, crmid int) (Record, error)
	// Create writes a new record and returns its server-assigned crmid.
	Create(ctx context.Context, fields Fields) (int, error)
	// Update changes the given fields of an existing record. The returned
	// record is the server's echo when it sends one, otherwise it holds
	// only crmid.
	Update(ctx context.Context, crmid int, fields Fields) (Record, error)
	// Count returns the number of records matching the query and keywords.
	// Limits in params are ignored.
	Count(ctx context.Context, params *ListParams) (int, error)
	// Iterate walks every matching record batchSize at a time.
	Iterate(ctx context.Context, params *ListParams, batchSize int) *PaginationIterator[Record]
	// GetModel is Get decoded into T.
	GetModel(ctx context.Context, crmid int) (*T, error)
	// ListModels is List decoded into T.
	ListModels(ctx context.Context, params *ListParams) ([]T, error)
}

// LeadsClient defines operations for leads.
type LeadsClient = ResourceClient[Lead]

// ContactsClient defines operations for contacts.
type ContactsClient = ResourceClient[Contact]

// CompaniesClient defines operations for companies.
type CompaniesClient = ResourceClient[Company]

// OpportunitiesClient defines operations for opportunities.
type OpportunitiesClient = ResourceClient[Opportunity]

// ProductsClient defines operations for products.
type ProductsClient = ResourceClient[Product]

// ProjectsClient defines operations for projects.
type ProjectsClient = ResourceClient[Project]

// HelpdeskClient defines operations for helpdesk tickets.
type HelpdeskClient = ResourceClient[Ticket]

// ActivitiesClient defines operations for activities.
type ActivitiesClient = ResourceClient[Activity]

// Client is the OpenCRM API client. It owns its HTTP transport and, for
// session authentication, the cached access key. Call Close when done.
type Client interface {
	Leads() LeadsClient
	Contacts() ContactsClient
	Companies() CompaniesClient
	Opportunities() OpportunitiesClient
	Products() ProductsClient
	Projects() ProjectsClient
	Helpdesk() HelpdeskClient
	Activities() ActivitiesClient

	// Records returns an untyped client for any module descriptor.
	Records(module Module) ResourceClient[Record]

	// Close releases idle connections. It is safe to call more than once.
	Close() error
}
