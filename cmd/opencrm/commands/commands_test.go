package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/opencrm-client/internal/export"
	"github.com/fivetwenty-io/opencrm-client/pkg/crmclient"
	"github.com/fivetwenty-io/opencrm-client/pkg/opencrm"
	"github.com/fivetwenty-io/opencrm-client/pkg/opencrmtest"
)

// setupCLI points the global viper at srv and a throwaway config file.
func setupCLI(t *testing.T, srv *opencrmtest.Server, method opencrm.AuthMethod) string {
	t.Helper()

	viper.Reset()
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	t.Setenv("HOME", dir)

	configFile := filepath.Join(dir, ConfigDirName, "config.yml")

	viper.Set("config", configFile)
	viper.Set("output", "json")

	if srv != nil {
		config := srv.Config(method)
		viper.Set(crmclient.KeySystemName, config.SystemName)
		viper.Set(crmclient.KeyAPIKey, config.APIKey)
		viper.Set(crmclient.KeyPassKey, config.PassKey)
		viper.Set(crmclient.KeyAuthMethod, string(method))
		viper.Set(crmclient.KeyBaseURL, config.BaseURL)
	}

	return configFile
}

func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer

	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()

	return stdout.String(), err
}

func seedPeople(srv *opencrmtest.Server, n int) {
	names := []string{"Lovelace", "Hopper", "Turing", "Liskov", "Knuth"}

	for i := range n {
		srv.Seed(opencrm.LeadsModule, map[string]string{
			"firstname": "Test",
			"lastname":  names[i%len(names)],
		})
	}
}

func decodeRecords(t *testing.T, out string) []map[string]interface{} {
	t.Helper()

	var records []map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &records))

	return records
}

//nolint:paralleltest // Commands share the global viper instance
func TestListCommand(t *testing.T) {
	srv := opencrmtest.NewServer()
	defer srv.Close()

	seedPeople(srv, 5)
	setupCLI(t, srv, opencrm.AuthMethodKeys)

	t.Run("single window", func(t *testing.T) {
		out, err := execute(t, NewListCommand(), "leads", "--limit", "2")
		require.NoError(t, err)
		assert.Len(t, decodeRecords(t, out), 2)
	})

	t.Run("query", func(t *testing.T) {
		out, err := execute(t, NewListCommand(), "leads", "--query", "lastname|LIKE|L%")
		require.NoError(t, err)

		records := decodeRecords(t, out)
		require.Len(t, records, 2)

		for _, record := range records {
			assert.Contains(t, []interface{}{"Lovelace", "Liskov"}, record["lastname"])
		}
	})

	t.Run("all in batches", func(t *testing.T) {
		before := srv.Count(opencrm.LeadsModule.ListEndpoint)

		out, err := execute(t, NewListCommand(), "lead", "--all", "--batch", "2")
		require.NoError(t, err)
		assert.Len(t, decodeRecords(t, out), 5)
		assert.Equal(t, 3, srv.Count(opencrm.LeadsModule.ListEndpoint)-before)
	})

	t.Run("unknown module", func(t *testing.T) {
		_, err := execute(t, NewListCommand(), "invoices")
		require.ErrorIs(t, err, ErrUnknownModule)
	})

	t.Run("bad query", func(t *testing.T) {
		_, err := execute(t, NewListCommand(), "leads", "--query", "lastname")
		require.Error(t, err)
	})

	t.Run("table output", func(t *testing.T) {
		viper.Set("output", "table")
		defer viper.Set("output", "json")

		out, err := execute(t, NewListCommand(), "leads", "--fields", "lastname")
		require.NoError(t, err)
		assert.Contains(t, out, "Hopper")
	})
}

//nolint:paralleltest // Commands share the global viper instance
func TestGetCountCommands(t *testing.T) {
	srv := opencrmtest.NewServer()
	defer srv.Close()

	ids := srv.Seed(opencrm.ContactsModule, map[string]string{"firstname": "Grace", "email": "grace@example.com"})
	setupCLI(t, srv, opencrm.AuthMethodHeaders)

	out, err := execute(t, NewGetCommand(), "contacts", strconv.Itoa(ids[0]))
	require.NoError(t, err)

	var record map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &record))
	assert.Equal(t, "grace@example.com", record["email"])

	_, err = execute(t, NewGetCommand(), "contacts", "99")
	require.Error(t, err)
	assert.True(t, opencrm.IsNotFound(err))

	_, err = execute(t, NewGetCommand(), "contacts", "x")
	require.ErrorIs(t, err, ErrInvalidCRMID)

	viper.Set("output", "table")

	out, err = execute(t, NewCountCommand(), "contacts")
	require.NoError(t, err)
	assert.Equal(t, "1\n", out)
}

//nolint:paralleltest // Commands share the global viper instance
func TestCreateUpdateCommands(t *testing.T) {
	srv := opencrmtest.NewServer()
	defer srv.Close()

	setupCLI(t, srv, opencrm.AuthMethodKeys)

	out, err := execute(t, NewCreateCommand(), "leads", "lastname=Hamilton", "assigned_user_id=7")
	require.NoError(t, err)

	var created map[string]int
	require.NoError(t, json.Unmarshal([]byte(out), &created))

	crmid := created["crmid"]
	require.Positive(t, crmid)

	stored, ok := srv.Store.Get(opencrm.LeadsModule, crmid)
	require.True(t, ok)
	assert.Equal(t, "Hamilton", stored["lastname"])
	assert.Equal(t, "7", stored["smownerid"])

	_, err = execute(t, NewCreateCommand(), "leads")
	require.ErrorIs(t, err, ErrNoFields)

	out, err = execute(t, NewUpdateCommand(), "leads", strconv.Itoa(crmid), "do_not_phone=1")
	require.NoError(t, err)
	assert.Contains(t, out, "Hamilton")

	stored, _ = srv.Store.Get(opencrm.LeadsModule, crmid)
	assert.Equal(t, "1", stored["tps"])

	_, err = execute(t, NewUpdateCommand(), "leads", "404", "lastname=X")
	require.Error(t, err)
	assert.True(t, opencrm.IsNotFound(err))
}

//nolint:paralleltest // Commands share the global viper instance
func TestLoginLogoutCommands(t *testing.T) {
	srv := opencrmtest.NewServer()
	defer srv.Close()

	seedPeople(srv, 1)
	configFile := setupCLI(t, srv, opencrm.AuthMethodSession)

	out, err := execute(t, NewLoginCommand())
	require.NoError(t, err)
	assert.Contains(t, out, "Logged in to "+opencrmtest.DefaultSystemName)
	assert.Equal(t, 1, srv.Logins())

	assert.Equal(t, opencrmtest.DefaultAccessKey, loadConfig().AccessKeys[opencrmtest.DefaultSystemName])

	info, err := os.Stat(configFile)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	// The stored key is reused without another login.
	_, err = execute(t, NewListCommand(), "leads")
	require.NoError(t, err)
	assert.Equal(t, 1, srv.Logins())

	_, err = execute(t, NewLogoutCommand())
	require.NoError(t, err)
	assert.Empty(t, loadConfig().AccessKeys)

	viper.Set(crmclient.KeyAuthMethod, string(opencrm.AuthMethodKeys))

	_, err = execute(t, NewLoginCommand())
	require.ErrorIs(t, err, ErrNoSessionConfig)
}

//nolint:paralleltest // Commands share the global viper instance
func TestLoginCommandBadCredentials(t *testing.T) {
	srv := opencrmtest.NewServer()
	defer srv.Close()

	setupCLI(t, srv, opencrm.AuthMethodSession)
	viper.Set(crmclient.KeyAPIKey, "wrong")

	_, err := execute(t, NewLoginCommand())
	require.Error(t, err)
	assert.True(t, opencrm.IsAuthentication(err))
	assert.Empty(t, loadConfig().AccessKeys)
}

//nolint:paralleltest // Commands share the global viper instance
func TestExportCommand(t *testing.T) {
	srv := opencrmtest.NewServer()
	defer srv.Close()

	seedPeople(srv, 7)
	setupCLI(t, srv, opencrm.AuthMethodKeys)

	dir := t.TempDir()

	t.Run("yaml file", func(t *testing.T) {
		path := filepath.Join(dir, "leads.yaml")

		out, err := execute(t, NewExportCommand(), "leads", "--format", export.FormatYAML, "--out", path, "--batch", "3")
		require.NoError(t, err)
		assert.Contains(t, out, "Exported 7 leads")

		data, err := os.ReadFile(path)
		require.NoError(t, err)

		var records []map[string]interface{}
		require.NoError(t, yaml.Unmarshal(data, &records))
		assert.Len(t, records, 7)
	})

	t.Run("sqlite", func(t *testing.T) {
		path := filepath.Join(dir, "leads.db")

		out, err := execute(t, NewExportCommand(), "leads", "--format", export.FormatSQLite, "--out", path)
		require.NoError(t, err)
		assert.Contains(t, out, "Exported 7 leads to "+path)
	})

	t.Run("sqlite needs a file", func(t *testing.T) {
		_, err := execute(t, NewExportCommand(), "leads", "--format", export.FormatSQLite)
		require.ErrorIs(t, err, export.ErrUnsupportedFormat)
	})

	t.Run("nats unreachable", func(t *testing.T) {
		_, err := execute(t, NewExportCommand(), "leads", "--format", export.FormatNATS, "--nats-url", "nats://127.0.0.1:1")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "connecting to nats://127.0.0.1:1")
	})

	t.Run("jsonl stdout", func(t *testing.T) {
		out, err := execute(t, NewExportCommand(), "leads", "--query", "lastname|=|Turing")
		require.NoError(t, err)
		assert.Equal(t, 1, bytes.Count([]byte(out), []byte("\n")))
	})
}

//nolint:paralleltest // Commands share the global viper instance
func TestRecordCommandErrors(t *testing.T) {
	srv := opencrmtest.NewServer()
	defer srv.Close()

	ids := srv.Seed(opencrm.LeadsModule, map[string]string{"lastname": "Lovelace"})
	setupCLI(t, srv, opencrm.AuthMethodKeys)

	fault := opencrmtest.Fault{StatusCode: http.StatusInternalServerError, Body: "boom", Times: 1}
	crmid := strconv.Itoa(ids[0])

	tests := []struct {
		name     string
		cmd      func() *cobra.Command
		args     []string
		endpoint string
		prefix   string
	}{
		{"list", NewListCommand, []string{"leads"}, opencrm.LeadsModule.ListEndpoint, "listing Leads"},
		{"get", NewGetCommand, []string{"leads", crmid}, opencrm.LeadsModule.GetEndpoint, "getting Leads " + crmid},
		{"count", NewCountCommand, []string{"leads"}, opencrm.LeadsModule.CountEndpoint, "counting Leads"},
		{"create", NewCreateCommand, []string{"leads", "lastname=Hopper"}, opencrm.LeadsModule.EditEndpoint, "creating Leads"},
		{"update", NewUpdateCommand, []string{"leads", crmid, "lastname=Hopper"}, opencrm.LeadsModule.EditEndpoint, "updating Leads " + crmid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv.Fail(tt.endpoint, fault)

			_, err := execute(t, tt.cmd(), tt.args...)
			require.Error(t, err)
			assert.Equal(t, http.StatusInternalServerError, opencrm.StatusCode(err))
			assert.True(t, strings.HasPrefix(err.Error(), tt.prefix), err.Error())

			verb := strings.Fields(tt.prefix)[0]
			assert.Equal(t, 1, strings.Count(err.Error(), verb), err.Error())
		})
	}
}

//nolint:paralleltest // Commands share the global viper instance
func TestConfigCommands(t *testing.T) {
	configFile := setupCLI(t, nil, "")

	out, err := execute(t, NewConfigCommand(), "set", crmclient.KeyAPIKey, "abc123")
	require.NoError(t, err)
	assert.Equal(t, "Set api_key to ***\n", out)

	_, err = execute(t, NewConfigCommand(), "set", crmclient.KeySystemName, "acme")
	require.NoError(t, err)

	_, err = execute(t, NewConfigCommand(), "set", "colour", "blue")
	require.ErrorIs(t, err, ErrUnknownKey)

	_, err = execute(t, NewConfigCommand(), "set", crmclient.KeyTimeout)
	require.ErrorIs(t, err, ErrValueRequired)

	out, err = execute(t, NewConfigCommand(), "show")
	require.NoError(t, err)

	var shown Config
	require.NoError(t, json.Unmarshal([]byte(out), &shown))
	assert.Equal(t, "acme", shown.SystemName)
	assert.Equal(t, "***", shown.APIKey)

	out, err = execute(t, NewConfigCommand(), "show", "--show-secrets")
	require.NoError(t, err)
	assert.Contains(t, out, "abc123")

	_, err = execute(t, NewConfigCommand(), "unset", crmclient.KeyAPIKey)
	require.NoError(t, err)
	assert.Empty(t, loadConfig().APIKey)

	data, err := os.ReadFile(configFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "system_name: acme")
}

//nolint:paralleltest // Commands share the global viper instance
func TestVersionAndModulesCommands(t *testing.T) {
	setupCLI(t, nil, "")

	out, err := execute(t, NewVersionCommand("1.2.3", "abc", "today"))
	require.NoError(t, err)

	var info map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.Equal(t, "1.2.3", info["version"])
	assert.NotContains(t, info["user_agent"], "curl")

	out, err = execute(t, NewModulesCommand())
	require.NoError(t, err)

	var modules []map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &modules))
	require.Len(t, modules, len(opencrm.Modules()))
	assert.Equal(t, "get_lead_list", modules[0]["list"])
}
