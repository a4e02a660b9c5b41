package commands

import (
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/opencrm-client/internal/constants"
	"github.com/fivetwenty-io/opencrm-client/pkg/opencrm"
)

// NewModulesCommand creates the modules command
func NewModulesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "modules",
		Short: "List supported modules and their endpoints",
		RunE: func(cmd *cobra.Command, args []string) error {
			modules := opencrm.Modules()
			out := cmd.OutOrStdout()

			type moduleInfo struct {
				Name  string `json:"name"  yaml:"name"`
				List  string `json:"list"  yaml:"list"`
				Count string `json:"count" yaml:"count"`
				Get   string `json:"get"   yaml:"get"`
				Edit  string `json:"edit"  yaml:"edit"`
			}

			infos := make([]moduleInfo, 0, len(modules))
			for _, module := range modules {
				infos = append(infos, moduleInfo{
					Name:  module.Name,
					List:  module.ListEndpoint,
					Count: module.CountEndpoint,
					Get:   module.GetEndpoint,
					Edit:  module.EditEndpoint,
				})
			}

			handled, err := renderStructured(out, infos)
			if handled {
				return err
			}

			table := tablewriter.NewWriter(out)
			table.Header("Module", "List", "Count", "Get", "Edit")

			for _, info := range infos {
				_ = table.Append(info.Name, info.List, info.Count, info.Get, info.Edit)
			}

			err = table.Render()
			if err != nil {
				return fmt.Errorf("failed to render table: %w", err)
			}

			return nil
		},
	}
}

// listParams builds ListParams from the shared --query and --keywords flags.
func listParams(query, keywords string) (*opencrm.ListParams, error) {
	params := opencrm.NewListParams()

	if query != "" {
		parsed, err := opencrm.ParseQuery(query)
		if err != nil {
			return nil, err
		}

		params.WithQuery(parsed)
	}

	if keywords != "" {
		params.WithKeywords(keywords)
	}

	return params, nil
}

func splitColumns(fields string) []string {
	if fields == "" {
		return nil
	}

	var columns []string

	for _, field := range strings.Split(fields, ",") {
		if field = strings.TrimSpace(field); field != "" {
			columns = append(columns, field)
		}
	}

	return columns
}

// NewListCommand creates the list command
func NewListCommand() *cobra.Command {
	var (
		query     string
		keywords  string
		start     int
		limit     int
		all       bool
		batchSize int
		fields    string
	)

	cmd := &cobra.Command{
		Use:   "list MODULE",
		Short: "List records in a module",
		Long: fmt.Sprintf(`List records in a module (%s).

--query takes FIELD|OPERATOR|VALUE, e.g. "lastname|LIKE|Sm%%". With --all every
matching record is fetched in batches of --batch.`, strings.Join(moduleNames(), ", ")),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			module, err := resolveModule(args[0])
			if err != nil {
				return err
			}

			params, err := listParams(query, keywords)
			if err != nil {
				return err
			}

			crm, err := newClient()
			if err != nil {
				return err
			}

			defer func() { _ = crm.Close() }()

			resource := crm.Records(module)

			var records []opencrm.Record

			if all {
				records, err = resource.Iterate(cmd.Context(), params, batchSize).All()
			} else {
				records, err = resource.List(cmd.Context(), params.WithLimits(start, start+limit))
			}

			if err != nil {
				return err
			}

			return renderRecords(cmd, module, records, splitColumns(fields))
		},
	}

	cmd.Flags().StringVarP(&query, "query", "q", "", "filter as FIELD|OPERATOR|VALUE")
	cmd.Flags().StringVarP(&keywords, "keywords", "k", "", "free-text search")
	cmd.Flags().IntVar(&start, "start", 0, "offset of the first record, ignored with --all")
	cmd.Flags().IntVarP(&limit, "limit", "l", constants.StandardPageSize, "number of records to fetch")
	cmd.Flags().BoolVarP(&all, "all", "a", false, "fetch every matching record")
	cmd.Flags().IntVar(&batchSize, "batch", constants.DefaultBatchSize, "page size used with --all")
	cmd.Flags().StringVarP(&fields, "fields", "f", "", "comma-separated columns for table output")

	return cmd
}

// NewGetCommand creates the get command
func NewGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get MODULE CRMID",
		Short: "Show one record",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			module, err := resolveModule(args[0])
			if err != nil {
				return err
			}

			crmid, err := parseCRMID(args[1])
			if err != nil {
				return err
			}

			crm, err := newClient()
			if err != nil {
				return err
			}

			defer func() { _ = crm.Close() }()

			record, err := crm.Records(module).Get(cmd.Context(), crmid)
			if err != nil {
				return err
			}

			return renderRecord(cmd, record)
		},
	}
}

// NewCountCommand creates the count command
func NewCountCommand() *cobra.Command {
	var (
		query    string
		keywords string
	)

	cmd := &cobra.Command{
		Use:   "count MODULE",
		Short: "Count matching records",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			module, err := resolveModule(args[0])
			if err != nil {
				return err
			}

			params, err := listParams(query, keywords)
			if err != nil {
				return err
			}

			crm, err := newClient()
			if err != nil {
				return err
			}

			defer func() { _ = crm.Close() }()

			count, err := crm.Records(module).Count(cmd.Context(), params)
			if err != nil {
				return err
			}

			handled, err := renderStructured(cmd.OutOrStdout(), map[string]interface{}{
				"module": module.Name,
				"count":  count,
			})
			if handled {
				return err
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), count)

			return nil
		},
	}

	cmd.Flags().StringVarP(&query, "query", "q", "", "filter as FIELD|OPERATOR|VALUE")
	cmd.Flags().StringVarP(&keywords, "keywords", "k", "", "free-text search")

	return cmd
}

// NewCreateCommand creates the create command
func NewCreateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "create MODULE NAME=VALUE...",
		Short: "Create a record",
		Long: `Create a record from NAME=VALUE pairs. Friendly names such as
assigned_user_id or do_not_phone are translated to the API field names.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			module, err := resolveModule(args[0])
			if err != nil {
				return err
			}

			fields, err := parseFields(args[1:])
			if err != nil {
				return err
			}

			crm, err := newClient()
			if err != nil {
				return err
			}

			defer func() { _ = crm.Close() }()

			crmid, err := crm.Records(module).Create(cmd.Context(), fields)
			if err != nil {
				return err
			}

			handled, err := renderStructured(cmd.OutOrStdout(), map[string]interface{}{constants.FieldCRMID: crmid})
			if handled {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created %s %d\n", module.Slug, crmid)

			return nil
		},
	}
}

// NewUpdateCommand creates the update command
func NewUpdateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "update MODULE CRMID NAME=VALUE...",
		Short: "Update fields of a record",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			module, err := resolveModule(args[0])
			if err != nil {
				return err
			}

			crmid, err := parseCRMID(args[1])
			if err != nil {
				return err
			}

			fields, err := parseFields(args[2:])
			if err != nil {
				return err
			}

			crm, err := newClient()
			if err != nil {
				return err
			}

			defer func() { _ = crm.Close() }()

			record, err := crm.Records(module).Update(cmd.Context(), crmid, fields)
			if err != nil {
				return err
			}

			if len(record) > 1 {
				return renderRecord(cmd, record)
			}

			handled, err := renderStructured(cmd.OutOrStdout(), record)
			if handled {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Updated %s %d\n", module.Slug, crmid)

			return nil
		},
	}
}
