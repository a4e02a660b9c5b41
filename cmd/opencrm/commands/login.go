package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fivetwenty-io/opencrm-client/internal/auth"
	"github.com/fivetwenty-io/opencrm-client/internal/client"
	"github.com/fivetwenty-io/opencrm-client/internal/constants"
	"github.com/fivetwenty-io/opencrm-client/pkg/crmclient"
	"github.com/fivetwenty-io/opencrm-client/pkg/opencrm"
)

// NewLoginCommand creates the login command
func NewLoginCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Start an OpenCRM session",
		Long: `Log in with the configured API key and pass key and store the returned
access key in the config file. Only used with auth_method session; later
commands reuse the stored key until logout.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if viper.GetString(crmclient.KeyPassKey) == "" {
				passKey, err := readSecret(cmd, "Pass key: ")
				if err != nil {
					return err
				}

				viper.Set(crmclient.KeyPassKey, passKey)
			}

			config, err := crmclient.LoadConfig(viper.GetViper())
			if err != nil {
				return err
			}

			if config.AuthMethod != opencrm.AuthMethodSession {
				return ErrNoSessionConfig
			}

			crm, err := client.New(config, auth.WithKeyPersister(NewConfigPersister(), config.SystemName))
			if err != nil {
				return fmt.Errorf("creating client: %w", err)
			}

			defer func() { _ = crm.Close() }()

			session, ok := crm.Authenticator().(*auth.SessionAuth)
			if !ok {
				return ErrNoSessionConfig
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), constants.ShortTimeout)
			defer cancel()

			_, err = session.AccessKey(ctx)
			if err != nil {
				return fmt.Errorf("logging in to %s: %w", config.SystemName, err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Logged in to %s\n", config.SystemName)

			return nil
		},
	}
}

// NewLogoutCommand creates the logout command
func NewLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session access key",
		RunE: func(cmd *cobra.Command, args []string) error {
			system := viper.GetString(crmclient.KeySystemName)
			if system == "" {
				system = loadConfig().SystemName
			}

			err := NewConfigPersister().SaveAccessKey(system, "")
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Logged out of %s\n", formatCell(system))

			return nil
		},
	}
}
