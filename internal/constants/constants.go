package constants

import "time"

// Version is the library version reported in the default User-Agent.
const Version = "0.1.0"

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600
)

// OpenCRM endpoint layout.
const (
	// HostSuffix is appended to the system name to form the API host.
	HostSuffix = ".opencrm.co.uk"

	// APIPath is the path prefix for every REST endpoint.
	APIPath = "/api/rest"

	// LoginEndpoint is the session login endpoint relative to APIPath.
	LoginEndpoint = "login"

	// EditEndpointPrefix starts every create/update endpoint. These calls
	// are not idempotent.
	EditEndpointPrefix = "edit_"

	// DefaultUserAgent identifies this library. OpenCRM rejects curl's default agent.
	DefaultUserAgent = "opencrm-go/" + Version

	// BlockedUserAgentPrefix is the agent prefix OpenCRM refuses to serve.
	BlockedUserAgentPrefix = "curl"
)

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the default per-request timeout.
	DefaultHTTPTimeout = 60 * time.Second

	// ShortTimeout bounds the CLI login and the NATS connect and flush.
	ShortTimeout = 10 * time.Second
)

// Retry limits. Retries are opt-in; RetryMax of zero sends each request once.
const (
	// DefaultRetryMax is the number of retries when none is configured.
	DefaultRetryMax = 0

	// DefaultRetryWaitMin is the minimum backoff between retries.
	DefaultRetryWaitMin = 1 * time.Second

	// DefaultRetryWaitMax is the maximum wait time between retries.
	DefaultRetryWaitMax = 30 * time.Second
)

// Pagination.
const (
	// DefaultBatchSize is the number of records fetched per page when iterating.
	DefaultBatchSize = 100

	// StandardPageSize is the CLI's default list size.
	StandardPageSize = 50
)

// NATS export defaults.
const (
	// NATSSubjectPrefix starts the default subject, opencrm.<slug>.records.
	NATSSubjectPrefix = "opencrm"

	// NATSClientName identifies export connections on the NATS server.
	NATSClientName = "opencrm-export"
)

// Form field names understood by the OpenCRM REST API.
const (
	FieldAPIKey      = "apikey"
	FieldPassKey     = "passkey"
	FieldAccessKey   = "accesskey"
	FieldLoginKey    = "key"
	FieldQueryString = "query_string"
	FieldKeywords    = "keywords"
	FieldLimitStart  = "limit_start"
	FieldLimitEnd    = "limit_end"
	FieldCRMID       = "crmid"
	FieldRecordID    = "record_id"
)

// Header names used by header authentication.
const (
	HeaderKey1      = "KEY1"
	HeaderKey2      = "KEY2"
	HeaderRequestID = "X-Request-ID"
)

// Date layouts used by OpenCRM.
const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02 15:04:05"
	ZeroDate       = "0000-00-00"
	ZeroDateTime   = "0000-00-00 00:00:00"
)

// UI and display constants.
const (
	// NotAvailable is shown for missing values.
	NotAvailable = "N/A"

	// MaskedSecret replaces credentials in logs and output.
	MaskedSecret = "***"

	// JSONIndent is the indentation used for JSON output.
	JSONIndent = "  "

	// YAMLIndentSize is the indentation used for YAML output.
	YAMLIndentSize = 2
)

// Format constants.
const (
	// FormatTable renders output with tablewriter.
	FormatTable = "table"

	// FormatJSON renders output as indented JSON.
	FormatJSON = "json"

	// FormatYAML renders output as YAML.
	FormatYAML = "yaml"
)
