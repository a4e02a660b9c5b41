package opencrm

import (
	"net/url"
	"strconv"

	"github.com/fivetwenty-io/opencrm-client/internal/constants"
)

// ListParams represents the filter and window of a list or count request.
// LimitStart and LimitEnd are a half-open record window [start, end).
type ListParams struct {
	Query      *Query
	Keywords   string
	LimitStart *int
	LimitEnd   *int
}

// NewListParams creates empty list parameters.
func NewListParams() *ListParams {
	return &ListParams{}
}

// WithQuery sets the filter condition.
func (p *ListParams) WithQuery(query Query) *ListParams {
	p.Query = &query

	return p
}

// WithKeywords sets a full-text search term.
func (p *ListParams) WithKeywords(keywords string) *ListParams {
	p.Keywords = keywords

	return p
}

// WithLimitStart sets the zero-based index of the first record.
func (p *ListParams) WithLimitStart(start int) *ListParams {
	p.LimitStart = &start

	return p
}

// WithLimitEnd sets the exclusive end index.
func (p *ListParams) WithLimitEnd(end int) *ListParams {
	p.LimitEnd = &end

	return p
}

// WithLimits sets both ends of the window.
func (p *ListParams) WithLimits(start, end int) *ListParams {
	return p.WithLimitStart(start).WithLimitEnd(end)
}

// Clone returns an independent copy.
func (p *ListParams) Clone() *ListParams {
	if p == nil {
		return NewListParams()
	}

	out := &ListParams{Keywords: p.Keywords}

	if p.Query != nil {
		query := *p.Query
		out.Query = &query
	}

	if p.LimitStart != nil {
		start := *p.LimitStart
		out.LimitStart = &start
	}

	if p.LimitEnd != nil {
		end := *p.LimitEnd
		out.LimitEnd = &end
	}

	return out
}

// Validate rejects windows the API cannot serve.
func (p *ListParams) Validate() error {
	if p == nil {
		return nil
	}

	start := 0
	if p.LimitStart != nil {
		start = *p.LimitStart
		if start < 0 {
			return &ValidationError{Field: constants.FieldLimitStart, Message: "must be >= 0"}
		}
	}

	if p.LimitEnd != nil && *p.LimitEnd <= start {
		return &ValidationError{Field: constants.FieldLimitEnd, Message: "must be greater than limit_start"}
	}

	return nil
}

// CountValues returns only the filter fields, as sent to count endpoints.
func (p *ListParams) CountValues() url.Values {
	values := url.Values{}
	if p == nil {
		return values
	}

	if p.Query != nil && !p.Query.IsZero() {
		values.Set(constants.FieldQueryString, p.Query.String())
	}

	if p.Keywords != "" {
		values.Set(constants.FieldKeywords, p.Keywords)
	}

	return values
}

// ToValues converts list params to form values.
func (p *ListParams) ToValues() url.Values {
	values := p.CountValues()
	if p == nil {
		return values
	}

	if p.LimitStart != nil {
		values.Set(constants.FieldLimitStart, strconv.Itoa(*p.LimitStart))
	}

	if p.LimitEnd != nil {
		values.Set(constants.FieldLimitEnd, strconv.Itoa(*p.LimitEnd))
	}

	return values
}
