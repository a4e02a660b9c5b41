package commands

import (
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/opencrm-client/internal/constants"
)

// NewVersionCommand creates the version command
func NewVersionCommand(version, commit, date string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Display version information",
		Long:  "Display build information and the default User-Agent of the OpenCRM CLI",
		RunE: func(cmd *cobra.Command, args []string) error {
			type VersionInfo struct {
				Version   string `json:"version"    yaml:"version"`
				Commit    string `json:"commit"     yaml:"commit"`
				Built     string `json:"built"      yaml:"built"`
				UserAgent string `json:"user_agent" yaml:"user_agent"`
			}

			info := VersionInfo{
				Version:   version,
				Commit:    commit,
				Built:     date,
				UserAgent: constants.DefaultUserAgent,
			}

			out := cmd.OutOrStdout()

			switch outputFormat() {
			case constants.FormatJSON:
				return writeJSON(out, info)
			case constants.FormatYAML:
				return writeYAML(out, info)
			}

			table := tablewriter.NewWriter(out)
			table.Header("Property", "Value")
			_ = table.Append("Version", version)
			_ = table.Append("Commit", commit)
			_ = table.Append("Built", date)
			_ = table.Append("User-Agent", constants.DefaultUserAgent)

			err := table.Render()
			if err != nil {
				return fmt.Errorf("failed to render table: %w", err)
			}

			return nil
		},
	}
}
