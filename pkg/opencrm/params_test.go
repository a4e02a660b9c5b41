package opencrm_test

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/opencrm-client/pkg/opencrm"
)

func TestListParams_ToValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		params   *opencrm.ListParams
		expected url.Values
	}{
		{name: "nil", params: nil, expected: url.Values{}},
		{name: "empty", params: opencrm.NewListParams(), expected: url.Values{}},
		{
			name: "everything",
			params: opencrm.NewListParams().
				WithQuery(opencrm.Equals("leadstatus", "New")).
				WithKeywords("acme").
				WithLimits(0, 50),
			expected: url.Values{
				"query_string": {"leadstatus|=|New"},
				"keywords":     {"acme"},
				"limit_start":  {"0"},
				"limit_end":    {"50"},
			},
		},
		{
			name:     "end only",
			params:   opencrm.NewListParams().WithLimitEnd(10),
			expected: url.Values{"limit_end": {"10"}},
		},
		{
			name:     "zero query is omitted",
			params:   opencrm.NewListParams().WithQuery(opencrm.Query{}),
			expected: url.Values{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, tt.params.ToValues())
		})
	}
}

func TestListParams_CountValues(t *testing.T) {
	t.Parallel()

	params := opencrm.NewListParams().WithKeywords("acme").WithLimits(10, 20)

	assert.Equal(t, url.Values{"keywords": {"acme"}}, params.CountValues())
}

func TestListParams_Validate(t *testing.T) {
	t.Parallel()

	valid := []*opencrm.ListParams{
		nil,
		opencrm.NewListParams(),
		opencrm.NewListParams().WithLimits(0, 1),
		opencrm.NewListParams().WithLimitStart(100),
		opencrm.NewListParams().WithLimitEnd(1),
	}

	for _, params := range valid {
		require.NoError(t, params.Validate())
	}

	invalid := map[string]*opencrm.ListParams{
		"negative start":  opencrm.NewListParams().WithLimitStart(-1),
		"empty window":    opencrm.NewListParams().WithLimits(5, 5),
		"reversed window": opencrm.NewListParams().WithLimits(10, 5),
		"zero end":        opencrm.NewListParams().WithLimitEnd(0),
	}

	for name, params := range invalid {
		err := params.Validate()
		assert.True(t, opencrm.IsValidation(err), name)
	}
}

func TestListParams_Clone(t *testing.T) {
	t.Parallel()

	original := opencrm.NewListParams().WithQuery(opencrm.Equals("a", "b")).WithLimits(0, 10)
	clone := original.Clone().WithLimits(10, 20).WithKeywords("x")

	assert.Equal(t, 0, *original.LimitStart)
	assert.Equal(t, 10, *original.LimitEnd)
	assert.Empty(t, original.Keywords)
	assert.Equal(t, "a|=|b", clone.Query.String())

	var nilParams *opencrm.ListParams
	assert.Equal(t, opencrm.NewListParams(), nilParams.Clone())
}
