// Package opencrm provides types, interfaces, and helpers for working with
// the OpenCRM REST API.
//
// # Overview
//
// The opencrm package defines the record model (Record, Fields and typed
// models such as Lead and Contact), the module descriptors that map each
// entity to its endpoints, the query builder, pagination helpers and the
// error taxonomy. A concrete client is provided by the crmclient package,
// which wires configuration, transport and authentication.
//
// Getting a client
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
//	  cli, err := crmclient.NewWithKeys("acme", "api-key", "pass-key")
//	  if err != nil { log.Fatal(err) }
//	  defer cli.Close()
//
//	  leads, err := cli.Leads().List(ctx, opencrm.NewListParams().
//	    WithQuery(opencrm.Equals("leadstatus", "New")).
//	    WithLimits(0, 50))
//	  if err != nil { log.Fatal(err) }
//	  _ = leads
//	}
//
// # Queries and pagination
//
// OpenCRM filters with a single condition per request, serialized as
// field|OPERATOR|value. Build one with Equals, Like, BeginsWith, EndsWith or
// Contains. There are no negated operators.
//
// Iterate walks every record in batches:
//
//	it := cli.Contacts().Iterate(ctx, opencrm.NewListParams().
//	  WithQuery(opencrm.Equals("mailingcountry", "UK")), 100)
//	for it.HasNext() {
//	  contact, err := it.Next()
//	  if err != nil { break }
//	  _ = contact
//	}
//
// # Errors
//
// Every error wraps ErrOpenCRM and one kind: ErrConfiguration,
// ErrConnection, ErrAuthentication, ErrNotFound, ErrRateLimit, ErrAPI or
// ErrValidation. Use errors.Is or the IsNotFound-style helpers to branch,
// and errors.As with *APIError to read the status code and body.
package opencrm
