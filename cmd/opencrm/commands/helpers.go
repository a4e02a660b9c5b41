package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/opencrm-client/internal/auth"
	"github.com/fivetwenty-io/opencrm-client/internal/client"
	"github.com/fivetwenty-io/opencrm-client/internal/constants"
	"github.com/fivetwenty-io/opencrm-client/pkg/crmclient"
	"github.com/fivetwenty-io/opencrm-client/pkg/opencrm"
)

// Common static errors used throughout the commands package.
var (
	ErrUnknownModule   = errors.New("unknown module")
	ErrInvalidField    = errors.New("field must be NAME=VALUE")
	ErrNoFields        = errors.New("at least one NAME=VALUE field is required")
	ErrInvalidCRMID    = errors.New("crmid must be a positive integer")
	ErrUnknownKey      = errors.New("unknown configuration key")
	ErrValueRequired   = errors.New("a value is required")
	ErrNoSessionConfig = errors.New("login requires auth_method session")
)

// defaultColumns are the table columns shown per module when --fields is
// not given. crmid is always first.
var defaultColumns = map[string][]string{
	opencrm.LeadsModule.Name:         {"firstname", "lastname", "company", "leadstatus"},
	opencrm.ContactsModule.Name:      {"firstname", "lastname", "email"},
	opencrm.CompaniesModule.Name:     {"accountname", "city", "phone"},
	opencrm.OpportunitiesModule.Name: {"potentialname", "sales_stage", "amount"},
	opencrm.ProductsModule.Name:      {"productname", "productcode", "unit_price"},
	opencrm.ProjectsModule.Name:      {"name", "projectstatus"},
	opencrm.HelpdeskModule.Name:      {"title", "status", "priority"},
	opencrm.ActivitiesModule.Name:    {"subject", "taskstatus", "date_start"},
}

// moduleNames returns the accepted module arguments for help text.
func moduleNames() []string {
	names := make([]string, 0, len(opencrm.Modules()))
	for _, module := range opencrm.Modules() {
		names = append(names, strings.ToLower(module.Name))
	}

	return names
}

func resolveModule(name string) (opencrm.Module, error) {
	module, ok := opencrm.ModuleByName(name)
	if !ok {
		return opencrm.Module{}, fmt.Errorf("%w: %q (expected one of %s)", ErrUnknownModule, name, strings.Join(moduleNames(), ", "))
	}

	return module, nil
}

// parseFields turns NAME=VALUE arguments into Fields. Values are sent as
// given; an empty value clears the field.
func parseFields(args []string) (opencrm.Fields, error) {
	if len(args) == 0 {
		return nil, ErrNoFields
	}

	fields := make(opencrm.Fields, len(args))

	for _, arg := range args {
		name, value, ok := strings.Cut(arg, "=")
		name = strings.TrimSpace(name)

		if !ok || name == "" {
			return nil, fmt.Errorf("%w: %q", ErrInvalidField, arg)
		}

		fields[name] = value
	}

	return fields, nil
}

func parseCRMID(arg string) (int, error) {
	id, ok := opencrm.Record{constants.FieldCRMID: arg}.Int(constants.FieldCRMID)
	if !ok || id <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidCRMID, arg)
	}

	return id, nil
}

// newClient builds a client from flags, environment and the config file.
// Session keys are reused from and saved to the config file.
func newClient() (*client.Client, error) {
	config, err := crmclient.LoadConfig(viper.GetViper())
	if err != nil {
		return nil, err
	}

	if viper.GetBool("verbose") {
		config.Debug = true
		config.Logger = opencrm.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	var sessionOpts []auth.SessionOption

	if config.AuthMethod == opencrm.AuthMethodSession {
		if accessKey := loadConfig().AccessKeys[config.SystemName]; accessKey != "" {
			sessionOpts = append(sessionOpts, auth.WithAccessKey(accessKey))
		}

		sessionOpts = append(sessionOpts, auth.WithKeyPersister(NewConfigPersister(), config.SystemName))
	}

	crm, err := client.New(config, sessionOpts...)
	if err != nil {
		return nil, fmt.Errorf("creating client: %w", err)
	}

	return crm, nil
}

// outputFormat returns the --output value, defaulting to table.
func outputFormat() string {
	format := strings.ToLower(viper.GetString("output"))
	if format == "" {
		return constants.FormatTable
	}

	return format
}

func writeJSON(out io.Writer, value interface{}) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", constants.JSONIndent)

	return encoder.Encode(value)
}

func writeYAML(out io.Writer, value interface{}) error {
	encoder := yaml.NewEncoder(out)
	encoder.SetIndent(constants.YAMLIndentSize)

	err := encoder.Encode(value)
	if err != nil {
		return fmt.Errorf("encoding YAML: %w", err)
	}

	return encoder.Close()
}

// renderStructured writes value as JSON or YAML and reports whether the
// output format was one of those.
func renderStructured(out io.Writer, value interface{}) (bool, error) {
	switch outputFormat() {
	case constants.FormatJSON:
		return true, writeJSON(out, value)
	case constants.FormatYAML:
		return true, writeYAML(out, plainRecords(value))
	default:
		return false, nil
	}
}

// plainRecords renders json.Number values as strings so YAML output does
// not expose the number type.
func plainRecords(value interface{}) interface{} {
	convert := func(record opencrm.Record) opencrm.Record {
		out := make(opencrm.Record, len(record))

		for key, field := range record {
			if number, ok := field.(json.Number); ok {
				out[key] = number.String()

				continue
			}

			out[key] = field
		}

		return out
	}

	switch typed := value.(type) {
	case opencrm.Record:
		return convert(typed)
	case []opencrm.Record:
		out := make([]opencrm.Record, 0, len(typed))
		for _, record := range typed {
			out = append(out, convert(record))
		}

		return out
	default:
		return value
	}
}

// renderRecords prints records in the selected output format.
func renderRecords(cmd *cobra.Command, module opencrm.Module, records []opencrm.Record, columns []string) error {
	out := cmd.OutOrStdout()

	handled, err := renderStructured(out, records)
	if handled {
		return err
	}

	if len(records) == 0 {
		_, _ = fmt.Fprintf(out, "No %s found\n", strings.ToLower(module.Name))

		return nil
	}

	if len(columns) == 0 {
		columns = defaultColumns[module.Name]
	}

	headers := append([]interface{}{constants.FieldCRMID}, toInterfaces(columns)...)

	table := tablewriter.NewWriter(out)
	table.Header(headers...)

	for _, record := range records {
		row := []interface{}{formatCell(record.String(constants.FieldCRMID))}
		for _, column := range columns {
			row = append(row, formatCell(record.String(column)))
		}

		_ = table.Append(row...)
	}

	err = table.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

// renderRecord prints one record as a field/value table.
func renderRecord(cmd *cobra.Command, record opencrm.Record) error {
	out := cmd.OutOrStdout()

	handled, err := renderStructured(out, record)
	if handled {
		return err
	}

	fields := record.Fields()
	sort.Strings(fields)

	table := tablewriter.NewWriter(out)
	table.Header("Field", "Value")

	for _, field := range fields {
		_ = table.Append(field, formatCell(record.String(field)))
	}

	err = table.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

func formatCell(value string) string {
	if value == "" {
		return constants.NotAvailable
	}

	return value
}

func toInterfaces(values []string) []interface{} {
	out := make([]interface{}, 0, len(values))
	for _, value := range values {
		out = append(out, value)
	}

	return out
}
