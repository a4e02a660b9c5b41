package opencrm

import (
	"net/url"
	"strings"
)

// Module describes one OpenCRM entity type: its endpoints and the static
// mapping from friendly field names to the names the API uses.
type Module struct {
	// Name is the module name as OpenCRM reports it in record_module.
	Name string
	// Slug is the singular name used in endpoint names, e.g. "lead".
	Slug string
	// ListEndpoint returns a window of records.
	ListEndpoint string
	// CountEndpoint returns the number of matching records.
	CountEndpoint string
	// GetEndpoint returns a single record by crmid.
	GetEndpoint string
	// EditEndpoint creates (crmid=0) or updates a record.
	EditEndpoint string
	// Aliases maps friendly field names to API field names.
	Aliases map[string]string
}

// Fields shared by every module.
var baseAliases = map[string]string{
	"assigned_user_id": "smownerid",
}

var complianceAliases = map[string]string{
	"do_not_phone": "tps",
	"do_not_fax":   "fps",
}

func newModule(name, slug string, extra ...map[string]string) Module {
	aliases := make(map[string]string, len(baseAliases))
	for friendly, api := range baseAliases {
		aliases[friendly] = api
	}

	for _, set := range extra {
		for friendly, api := range set {
			aliases[friendly] = api
		}
	}

	return Module{
		Name:          name,
		Slug:          slug,
		ListEndpoint:  "get_" + slug + "_list",
		CountEndpoint: "get_" + slug + "_list_count",
		GetEndpoint:   "get_" + slug,
		EditEndpoint:  "edit_" + slug,
		Aliases:       aliases,
	}
}

// Module descriptors for every supported entity.
var (
	LeadsModule = newModule("Leads", "lead", complianceAliases, map[string]string{
		"do_not_livechat": "donotlivechat",
	})
	ContactsModule      = newModule("Contacts", "contact", complianceAliases)
	CompaniesModule     = newModule("Companies", "company", complianceAliases)
	OpportunitiesModule = newModule("Opportunities", "opportunity")
	ProductsModule      = newModule("Products", "product")
	ProjectsModule      = newModule("Projects", "project")
	HelpdeskModule      = newModule("Helpdesk", "ticket")
	ActivitiesModule    = newModule("Activities", "activity", map[string]string{
		"status":   "taskstatus",
		"priority": "taskpriority",
	})
)

// Modules returns every module descriptor.
func Modules() []Module {
	return []Module{
		LeadsModule,
		ContactsModule,
		CompaniesModule,
		OpportunitiesModule,
		ProductsModule,
		ProjectsModule,
		HelpdeskModule,
		ActivitiesModule,
	}
}

// ModuleByName finds a module by name or slug, case-insensitively, so
// "Leads", "lead" and "tickets" all resolve.
func ModuleByName(name string) (Module, bool) {
	needle := strings.ToLower(strings.TrimSpace(name))

	for _, module := range Modules() {
		switch needle {
		case strings.ToLower(module.Name), module.Slug, module.Slug + "s":
			return module, true
		}
	}

	return Module{}, false
}

// APIField translates a friendly field name; unknown names pass through.
func (m Module) APIField(name string) string {
	if api, ok := m.Aliases[name]; ok {
		return api
	}

	return name
}

// FormValues translates fields to API names and renders them as form
// values. Nil values are dropped.
func (m Module) FormValues(fields Fields) url.Values {
	values := url.Values{}

	for name, value := range fields {
		if value == nil {
			continue
		}

		values.Set(m.APIField(name), FormatValue(value))
	}

	return values
}

// Normalize copies friendly-named keys onto their API names when the API
// name is missing, so typed decoding sees a single spelling.
func (m Module) Normalize(record Record) Record {
	out := make(Record, len(record))
	for key, value := range record {
		out[key] = value
	}

	for friendly, api := range m.Aliases {
		if _, ok := out[api]; ok {
			continue
		}

		if value, ok := out[friendly]; ok {
			out[api] = value
		}
	}

	return out
}
