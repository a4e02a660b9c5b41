package opencrm_test

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/opencrm-client/pkg/opencrm"
)

func TestModules_Endpoints(t *testing.T) {
	t.Parallel()

	tests := []struct {
		module opencrm.Module
		slug   string
	}{
		{module: opencrm.LeadsModule, slug: "lead"},
		{module: opencrm.ContactsModule, slug: "contact"},
		{module: opencrm.CompaniesModule, slug: "company"},
		{module: opencrm.OpportunitiesModule, slug: "opportunity"},
		{module: opencrm.ProductsModule, slug: "product"},
		{module: opencrm.ProjectsModule, slug: "project"},
		{module: opencrm.HelpdeskModule, slug: "ticket"},
		{module: opencrm.ActivitiesModule, slug: "activity"},
	}

	require.Len(t, opencrm.Modules(), len(tests))

	for _, tt := range tests {
		t.Run(tt.module.Name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, "get_"+tt.slug+"_list", tt.module.ListEndpoint)
			assert.Equal(t, "get_"+tt.slug+"_list_count", tt.module.CountEndpoint)
			assert.Equal(t, "get_"+tt.slug, tt.module.GetEndpoint)
			assert.Equal(t, "edit_"+tt.slug, tt.module.EditEndpoint)
			assert.Equal(t, "smownerid", tt.module.APIField("assigned_user_id"))
		})
	}
}

func TestModuleByName(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"Helpdesk", "helpdesk", "ticket", "tickets", " TICKET "} {
		module, ok := opencrm.ModuleByName(name)
		require.True(t, ok, name)
		assert.Equal(t, opencrm.HelpdeskModule.Name, module.Name)
	}

	_, ok := opencrm.ModuleByName("invoices")
	assert.False(t, ok)
}

func TestModule_FormValues(t *testing.T) {
	t.Parallel()

	values := opencrm.LeadsModule.FormValues(opencrm.Fields{
		"do_not_phone":    true,
		"do_not_fax":      false,
		"do_not_livechat": true,
		"lastname":        "Doe",
		"city":            nil,
	})

	assert.Equal(t, url.Values{
		"tps":           {"1"},
		"fps":           {"0"},
		"donotlivechat": {"1"},
		"lastname":      {"Doe"},
	}, values)

	activity := opencrm.ActivitiesModule.FormValues(opencrm.Fields{"status": "Held"})
	assert.Equal(t, "Held", activity.Get("taskstatus"))

	product := opencrm.ProductsModule.FormValues(opencrm.Fields{"do_not_phone": true})
	assert.Equal(t, "1", product.Get("do_not_phone"), "aliases are per module")
}

func TestModule_Normalize(t *testing.T) {
	t.Parallel()

	record := opencrm.Record{"do_not_phone": "1", "assigned_user_id": "9", "smownerid": "3"}
	normalized := opencrm.LeadsModule.Normalize(record)

	assert.Equal(t, "1", normalized["tps"])
	assert.Equal(t, "3", normalized["smownerid"], "API name wins")
	assert.NotContains(t, record, "tps", "input is not modified")
}
