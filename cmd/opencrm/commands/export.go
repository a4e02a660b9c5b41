package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/nats-io/nats.go"
	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/opencrm-client/internal/constants"
	"github.com/fivetwenty-io/opencrm-client/internal/export"
)

// NewExportCommand creates the export command
func NewExportCommand() *cobra.Command {
	var (
		format    string
		outFile   string
		query     string
		keywords  string
		batchSize int
		natsURL   string
		subject   string
	)

	cmd := &cobra.Command{
		Use:   "export MODULE",
		Short: "Export every matching record",
		Long: fmt.Sprintf(`Page through every matching record and write it out as %s.

jsonl and yaml write to stdout unless --out is given. sqlite needs --out and
upserts into a records table keyed by module and crmid, so repeated exports
refresh the same file. nats publishes each record as a JSON message to
--subject, by default opencrm.<module>.records.`, strings.Join(export.Formats(), ", ")),
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

			target := export.Target{Out: cmd.OutOrStdout(), NATSURL: natsURL, Subject: subject}

			switch {
			case strings.EqualFold(format, export.FormatSQLite):
				target.Path = outFile
			case strings.EqualFold(format, export.FormatNATS):
				// --out is ignored
			case outFile != "":
				file, err := os.OpenFile(outFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, constants.ConfigFilePerm)
				if err != nil {
					return fmt.Errorf("opening %s: %w", outFile, err)
				}

				defer func() { _ = file.Close() }()

				target.Out = file
			}

			writer, err := export.NewWriter(cmd.Context(), format, target, module)
			if err != nil {
				return err
			}

			count, err := export.Run(cmd.Context(), crm.Records(module), params, batchSize, writer)
			if err != nil {
				return err
			}

			natsWriter, published := writer.(*export.NATSWriter)

			switch {
			case published:
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Published %d %s to %s\n", count, strings.ToLower(module.Name), natsWriter.Subject())
			case outFile != "":
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Exported %d %s to %s\n", count, strings.ToLower(module.Name), outFile)
			default:
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d %s\n", count, strings.ToLower(module.Name))
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", export.FormatJSONL, "export format ("+strings.Join(export.Formats(), ", ")+")")
	cmd.Flags().StringVar(&outFile, "out", "", "output file")
	cmd.Flags().StringVarP(&query, "query", "q", "", "filter as FIELD|OPERATOR|VALUE")
	cmd.Flags().StringVarP(&keywords, "keywords", "k", "", "free-text search")
	cmd.Flags().IntVar(&batchSize, "batch", constants.DefaultBatchSize, "records per request")
	cmd.Flags().StringVar(&natsURL, "nats-url", nats.DefaultURL, "NATS server for --format nats")
	cmd.Flags().StringVar(&subject, "subject", "", "NATS subject (default opencrm.<module>.records)")

	return cmd
}
