package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fivetwenty-io/opencrm-client/cmd/opencrm/commands"
	"github.com/fivetwenty-io/opencrm-client/internal/constants"
	"github.com/fivetwenty-io/opencrm-client/pkg/crmclient"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "opencrm",
	Short: "OpenCRM REST API CLI",
	Long: `A command-line interface for the OpenCRM REST API.

List, fetch, count, create, update and export records in any OpenCRM
module: leads, contacts, companies, opportunities, products, projects,
helpdesk tickets and activities.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.opencrm/config.yml)")
	rootCmd.PersistentFlags().StringP("system", "s", "", "OpenCRM system name (the subdomain of opencrm.co.uk)")
	rootCmd.PersistentFlags().String("api-key", "", "OpenCRM API key")
	rootCmd.PersistentFlags().String("pass-key", "", "OpenCRM pass key")
	rootCmd.PersistentFlags().String("auth-method", "", "authentication method (keys, headers, session)")
	rootCmd.PersistentFlags().String("base-url", "", "override https://<system>.opencrm.co.uk")
	rootCmd.PersistentFlags().String("timeout", "", "request timeout, e.g. 30s (default 60s)")
	rootCmd.PersistentFlags().StringP("output", "o", constants.FormatTable, "output format (table, json, yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log HTTP traffic to stderr")

	// Bind flags to viper
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag(crmclient.KeySystemName, rootCmd.PersistentFlags().Lookup("system"))
	_ = viper.BindPFlag(crmclient.KeyAPIKey, rootCmd.PersistentFlags().Lookup("api-key"))
	_ = viper.BindPFlag(crmclient.KeyPassKey, rootCmd.PersistentFlags().Lookup("pass-key"))
	_ = viper.BindPFlag(crmclient.KeyAuthMethod, rootCmd.PersistentFlags().Lookup("auth-method"))
	_ = viper.BindPFlag(crmclient.KeyBaseURL, rootCmd.PersistentFlags().Lookup("base-url"))
	_ = viper.BindPFlag(crmclient.KeyTimeout, rootCmd.PersistentFlags().Lookup("timeout"))
	_ = viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	// Add commands
	rootCmd.AddCommand(commands.NewVersionCommand(version, commit, date))
	rootCmd.AddCommand(commands.NewConfigCommand())
	rootCmd.AddCommand(commands.NewLoginCommand())
	rootCmd.AddCommand(commands.NewLogoutCommand())
	rootCmd.AddCommand(commands.NewModulesCommand())
	rootCmd.AddCommand(commands.NewListCommand())
	rootCmd.AddCommand(commands.NewGetCommand())
	rootCmd.AddCommand(commands.NewCountCommand())
	rootCmd.AddCommand(commands.NewCreateCommand())
	rootCmd.AddCommand(commands.NewUpdateCommand())
	rootCmd.AddCommand(commands.NewExportCommand())
}

func initConfig() {
	cfgFile := viper.GetString("config")

	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		// Search config in ~/.opencrm/config.yml
		viper.AddConfigPath(filepath.Join(home, commands.ConfigDirName))
		viper.SetConfigType("yml")
		viper.SetConfigName("config")
	}

	// OPENCRM_SYSTEM_NAME, OPENCRM_API_KEY and friends
	crmclient.Bind(viper.GetViper())

	if err := viper.ReadInConfig(); err == nil {
		if viper.GetBool("verbose") {
			fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
		}
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
