// Package crmclient provides the primary entry point for constructing an
// OpenCRM REST API client that implements the opencrm.Client interface.
//
// It layers configuration, HTTP transport and authentication on top of the
// resource interfaces and types defined in the opencrm package. Most
// applications should import crmclient to build a client, then use the
// returned opencrm.Client to reach the module clients: Leads(), Contacts(),
// Companies() and so on.
//
// Quick start
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/fivetwenty-io/opencrm-client/pkg/crmclient"
//	  "github.com/fivetwenty-io/opencrm-client/pkg/opencrm"
//	)
//
//	func example() {
//	  ctx := context.Background()
//
//	  // Keys sent as form fields (the default).
//	  cli, err := crmclient.NewWithKeys("acme", "api-key", "pass-key")
//	  if err != nil { log.Fatal(err) }
//	  defer cli.Close()
//
//	  // Or log in once and reuse the access key:
//	  cli, err = crmclient.NewWithSession("acme", "api-key", "pass-key")
//
//	  // Or configure everything explicitly:
//	  cli, err = crmclient.New(&opencrm.Config{
//	    SystemName: "acme",
//	    APIKey:     "api-key",
//	    PassKey:    "pass-key",
//	    AuthMethod: opencrm.AuthMethodHeaders,
//	    Timeout:    30 * time.Second,
//	  })
//
//	  n, err := cli.Leads().Count(ctx, opencrm.NewListParams().
//	    WithQuery(opencrm.Equals("leadstatus", "New")))
//	  if err != nil { log.Fatal(err) }
//	  log.Printf("%d new leads", n)
//	}
//
// Environment
//
// NewFromEnv and NewFromViper read the same settings from OPENCRM_SYSTEM_NAME,
// OPENCRM_API_KEY, OPENCRM_PASS_KEY, OPENCRM_AUTH_METHOD, OPENCRM_USER_AGENT,
// OPENCRM_TIMEOUT and OPENCRM_BASE_URL, or from any viper source such as a
// YAML config file using the snake_case keys.
//
// Errors
//
// Construction fails with an opencrm.ConfigurationError, before any network
// activity, when the system name or either key is missing, the auth method
// is unknown or the user agent looks like curl.
package crmclient
