package client

import (
	"context"
	"fmt"
	nethttp "net/http"
	"net/url"
	"strconv"

	"github.com/fivetwenty-io/opencrm-client/internal/constants"
	"github.com/fivetwenty-io/opencrm-client/internal/http"
	"github.com/fivetwenty-io/opencrm-client/pkg/opencrm"
)

// ResourceClient is the generic client behind every OpenCRM module. T is
// the typed model for GetModel and ListModels.
type ResourceClient[T any] struct {
	httpClient *http.Client
	module     opencrm.Module
}

// NewResourceClient creates a client for module.
func NewResourceClient[T any](httpClient *http.Client, module opencrm.Module) *ResourceClient[T] {
	return &ResourceClient[T]{
		httpClient: httpClient,
		module:     module,
	}
}

// Module implements opencrm.ResourceClient.Module.
func (c *ResourceClient[T]) Module() opencrm.Module {
	return c.module
}

// List implements opencrm.ResourceClient.List.
func (c *ResourceClient[T]) List(ctx context.Context, params *opencrm.ListParams) ([]opencrm.Record, error) {
	err := params.Validate()
	if err != nil {
		return nil, err
	}

	result, err := c.httpClient.PostDecode(ctx, c.module.ListEndpoint, params.ToValues())
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", c.module.Name, err)
	}

	return opencrm.ParseRecords(result), nil
}

// Get implements opencrm.ResourceClient.Get.
func (c *ResourceClient[T]) Get(ctx context.Context, crmid int) (opencrm.Record, error) {
	form := url.Values{constants.FieldCRMID: {strconv.Itoa(crmid)}}

	resp, err := c.httpClient.Post(ctx, c.module.GetEndpoint, form)
	if err != nil {
		return nil, fmt.Errorf("getting %s %d: %w", c.module.Name, crmid, err)
	}

	switch result := resp.Decode().(type) {
	case map[string]any:
		if len(result) > 0 {
			return opencrm.Record(result), nil
		}
	case []any:
		if records := opencrm.ParseRecords(result); len(records) > 0 {
			return records[0], nil
		}
	}

	// A 2xx with an empty, null or false body means there is no such record.
	notFound := opencrm.NewAPIError(c.module.GetEndpoint, nethttp.StatusNotFound, resp.Body)

	return nil, fmt.Errorf("getting %s %d: %w", c.module.Name, crmid, notFound)
}

// Create implements opencrm.ResourceClient.Create.
func (c *ResourceClient[T]) Create(ctx context.Context, fields opencrm.Fields) (int, error) {
	form := c.module.FormValues(fields)
	form.Set(constants.FieldCRMID, "0")

	result, err := c.httpClient.PostDecode(ctx, c.module.EditEndpoint, form)
	if err != nil {
		return 0, fmt.Errorf("creating %s: %w", c.module.Name, err)
	}

	id, ok := opencrm.ParseID(result)
	if !ok {
		return 0, fmt.Errorf("creating %s: %w: %v", c.module.Name, opencrm.ErrInvalidRecordID, result)
	}

	return id, nil
}

// Update implements opencrm.ResourceClient.Update. The returned record is
// the server's object when it sends one, otherwise just the crmid.
func (c *ResourceClient[T]) Update(ctx context.Context, crmid int, fields opencrm.Fields) (opencrm.Record, error) {
	form := c.module.FormValues(fields)
	form.Set(constants.FieldCRMID, strconv.Itoa(crmid))

	result, err := c.httpClient.PostDecode(ctx, c.module.EditEndpoint, form)
	if err != nil {
		return nil, fmt.Errorf("updating %s %d: %w", c.module.Name, crmid, err)
	}

	if object, ok := result.(map[string]any); ok && len(object) > 0 {
		record := opencrm.Record(object)
		if !record.Has(constants.FieldCRMID) {
			record[constants.FieldCRMID] = strconv.Itoa(crmid)
		}

		return record, nil
	}

	id, ok := opencrm.ParseID(result)
	if !ok || id == 0 {
		id = crmid
	}

	return opencrm.Record{constants.FieldCRMID: strconv.Itoa(id)}, nil
}

// Count implements opencrm.ResourceClient.Count.
func (c *ResourceClient[T]) Count(ctx context.Context, params *opencrm.ListParams) (int, error) {
	result, err := c.httpClient.PostDecode(ctx, c.module.CountEndpoint, params.CountValues())
	if err != nil {
		return 0, fmt.Errorf("counting %s: %w", c.module.Name, err)
	}

	return opencrm.ParseCount(result), nil
}

// Iterate implements opencrm.ResourceClient.Iterate.
func (c *ResourceClient[T]) Iterate(ctx context.Context, params *opencrm.ListParams, batchSize int) *opencrm.PaginationIterator[opencrm.Record] {
	return opencrm.NewPaginationIterator[opencrm.Record](ctx, c, params, batchSize)
}

// GetModel implements opencrm.ResourceClient.GetModel.
func (c *ResourceClient[T]) GetModel(ctx context.Context, crmid int) (*T, error) {
	record, err := c.Get(ctx, crmid)
	if err != nil {
		return nil, err
	}

	return opencrm.DecodeRecord[T](c.module, record)
}

// ListModels implements opencrm.ResourceClient.ListModels.
func (c *ResourceClient[T]) ListModels(ctx context.Context, params *opencrm.ListParams) ([]T, error) {
	records, err := c.List(ctx, params)
	if err != nil {
		return nil, err
	}

	return opencrm.DecodeRecords[T](c.module, records)
}

var _ opencrm.ResourceClient[opencrm.Lead] = (*ResourceClient[opencrm.Lead])(nil)
