package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/opencrm-client/internal/constants"
	"github.com/fivetwenty-io/opencrm-client/pkg/crmclient"
	"github.com/fivetwenty-io/opencrm-client/pkg/opencrm"
)

// ConfigDirName is the directory under $HOME holding config.yml.
const ConfigDirName = ".opencrm"

// Config represents the CLI configuration file.
type Config struct {
	SystemName string `json:"system_name,omitempty" yaml:"system_name,omitempty"`
	APIKey     string `json:"api_key,omitempty"     yaml:"api_key,omitempty"`
	PassKey    string `json:"pass_key,omitempty"    yaml:"pass_key,omitempty"`
	AuthMethod string `json:"auth_method,omitempty" yaml:"auth_method,omitempty"`
	UserAgent  string `json:"user_agent,omitempty"  yaml:"user_agent,omitempty"`
	Timeout    string `json:"timeout,omitempty"     yaml:"timeout,omitempty"`
	BaseURL    string `json:"base_url,omitempty"    yaml:"base_url,omitempty"`
	RetryMax   string `json:"retry_max,omitempty"   yaml:"retry_max,omitempty"`
	Output     string `json:"output,omitempty"      yaml:"output,omitempty"`

	// AccessKeys caches session access keys by system name.
	AccessKeys map[string]string `json:"access_keys,omitempty" yaml:"access_keys,omitempty"`
}

// configSetters maps settable keys to the field they write.
var configSetters = map[string]func(*Config, string){
	crmclient.KeySystemName: func(c *Config, v string) { c.SystemName = v },
	crmclient.KeyAPIKey:     func(c *Config, v string) { c.APIKey = v },
	crmclient.KeyPassKey:    func(c *Config, v string) { c.PassKey = v },
	crmclient.KeyAuthMethod: func(c *Config, v string) { c.AuthMethod = strings.ToLower(v) },
	crmclient.KeyUserAgent:  func(c *Config, v string) { c.UserAgent = v },
	crmclient.KeyTimeout:    func(c *Config, v string) { c.Timeout = v },
	crmclient.KeyBaseURL:    func(c *Config, v string) { c.BaseURL = v },
	crmclient.KeyRetryMax:   func(c *Config, v string) { c.RetryMax = v },
	"output":                func(c *Config, v string) { c.Output = v },
}

// NewConfigCommand creates the config command group.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long:  "Show and change the OpenCRM CLI configuration stored in ~/.opencrm/config.yml",
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigSetCommand())
	cmd.AddCommand(newConfigUnsetCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	var showSecrets bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Long:  "Display the configuration file contents. Keys are masked unless --show-secrets is given.",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()
			if !showSecrets {
				config = config.masked()
			}

			out := cmd.OutOrStdout()

			switch outputFormat() {
			case constants.FormatJSON:
				return writeJSON(out, config)
			case constants.FormatYAML:
				return writeYAML(out, config)
			default:
				return displayConfigTable(cmd, config)
			}
		},
	}

	cmd.Flags().BoolVar(&showSecrets, "show-secrets", false, "show keys in clear text")

	return cmd
}

func newConfigSetCommand() *cobra.Command {
	keys := make([]string, 0, len(configSetters))
	for key := range configSetters {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	return &cobra.Command{
		Use:   "set KEY [VALUE]",
		Short: "Set a configuration value",
		Long: fmt.Sprintf(`Set a configuration value. Keys: %s.

When setting pass_key without a value it is read from the terminal without echo.`, strings.Join(keys, ", ")),
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]

			setter, ok := configSetters[key]
			if !ok {
				return fmt.Errorf("%w: %s", ErrUnknownKey, key)
			}

			var value string

			switch {
			case len(args) == 2:
				value = args[1]
			case key == crmclient.KeyPassKey:
				secret, err := readSecret(cmd, "Pass key: ")
				if err != nil {
					return err
				}

				value = secret
			default:
				return fmt.Errorf("%w: %s", ErrValueRequired, key)
			}

			config := loadConfig()
			setter(config, value)

			err := saveConfigStruct(config)
			if err != nil {
				return err
			}

			display := value
			if opencrm.IsSecretField(key) || key == crmclient.KeyAPIKey || key == crmclient.KeyPassKey {
				display = constants.MaskedSecret
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Set %s to %s\n", key, display)

			return nil
		},
	}
}

func newConfigUnsetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "unset KEY",
		Short: "Remove a configuration value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			setter, ok := configSetters[args[0]]
			if !ok {
				return fmt.Errorf("%w: %s", ErrUnknownKey, args[0])
			}

			config := loadConfig()
			setter(config, "")

			err := saveConfigStruct(config)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Unset %s\n", args[0])

			return nil
		},
	}
}

// readSecret prompts on stderr and reads a line without echo. Piped input
// is read as a plain line.
func readSecret(cmd *cobra.Command, prompt string) (string, error) {
	_, _ = fmt.Fprint(cmd.ErrOrStderr(), prompt)

	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		secret, err := term.ReadPassword(fd)
		_, _ = fmt.Fprintln(cmd.ErrOrStderr())

		if err != nil {
			return "", fmt.Errorf("failed to read secret: %w", err)
		}

		return strings.TrimSpace(string(secret)), nil
	}

	var line string

	_, err := fmt.Fscanln(cmd.InOrStdin(), &line)
	if err != nil {
		return "", fmt.Errorf("failed to read secret: %w", err)
	}

	return strings.TrimSpace(line), nil
}

// loadConfig reads the config file. A missing or unreadable file yields an
// empty config.
func loadConfig() *Config {
	config := &Config{}

	data, err := os.ReadFile(configFilePath())
	if err != nil {
		return config
	}

	_ = yaml.Unmarshal(data, config)

	return config
}

// saveConfigStruct writes config to the config file with owner-only
// permissions.
func saveConfigStruct(config *Config) error {
	configFile := configFilePath()

	err := os.MkdirAll(filepath.Dir(configFile), constants.ConfigDirPerm)
	if err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	err = os.WriteFile(configFile, data, constants.ConfigFilePerm)
	if err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// configFilePath returns the file in use, the --config flag, or
// ~/.opencrm/config.yml.
func configFilePath() string {
	if used := viper.ConfigFileUsed(); used != "" {
		return used
	}

	if flag := viper.GetString("config"); flag != "" {
		return flag
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(ConfigDirName, "config.yml")
	}

	return filepath.Join(home, ConfigDirName, "config.yml")
}

func (c *Config) masked() *Config {
	out := *c

	if out.APIKey != "" {
		out.APIKey = constants.MaskedSecret
	}

	if out.PassKey != "" {
		out.PassKey = constants.MaskedSecret
	}

	if len(c.AccessKeys) > 0 {
		out.AccessKeys = make(map[string]string, len(c.AccessKeys))
		for system := range c.AccessKeys {
			out.AccessKeys[system] = constants.MaskedSecret
		}
	}

	return &out
}

func displayConfigTable(cmd *cobra.Command, config *Config) error {
	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.Header("Property", "Value")

	rows := [][2]string{
		{crmclient.KeySystemName, config.SystemName},
		{crmclient.KeyAPIKey, config.APIKey},
		{crmclient.KeyPassKey, config.PassKey},
		{crmclient.KeyAuthMethod, config.AuthMethod},
		{crmclient.KeyUserAgent, config.UserAgent},
		{crmclient.KeyTimeout, config.Timeout},
		{crmclient.KeyBaseURL, config.BaseURL},
		{crmclient.KeyRetryMax, config.RetryMax},
		{"output", config.Output},
	}

	for _, row := range rows {
		_ = table.Append(row[0], formatCell(row[1]))
	}

	systems := make([]string, 0, len(config.AccessKeys))
	for system := range config.AccessKeys {
		systems = append(systems, system)
	}

	slices.Sort(systems)

	for _, system := range systems {
		_ = table.Append("session "+system, config.AccessKeys[system])
	}

	err := table.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}
