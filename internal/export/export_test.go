package export_test

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/opencrm-client/internal/client"
	"github.com/fivetwenty-io/opencrm-client/internal/export"
	"github.com/fivetwenty-io/opencrm-client/pkg/opencrm"
	"github.com/fivetwenty-io/opencrm-client/pkg/opencrmtest"
)

func newExportServer(t *testing.T, n int) (*opencrmtest.Server, opencrm.ResourceClient[opencrm.Record]) {
	t.Helper()

	server := opencrmtest.NewServer()
	t.Cleanup(server.Close)

	for i := range n {
		server.Seed(opencrm.ProductsModule, map[string]string{
			"productname": "Product " + strconv.Itoa(i),
			"unit_price":  "9.99",
		})
	}

	crm, err := client.New(server.Config(opencrm.AuthMethodKeys))
	require.NoError(t, err)

	t.Cleanup(func() { _ = crm.Close() })

	return server, crm.Records(opencrm.ProductsModule)
}

func TestRun_JSONL(t *testing.T) {
	t.Parallel()

	server, records := newExportServer(t, 25)

	var buf bytes.Buffer

	count, err := export.Run(context.Background(), records, nil, 10, export.NewJSONLWriter(&buf))
	require.NoError(t, err)
	assert.Equal(t, 25, count)
	assert.Equal(t, 3, server.Count(opencrm.ProductsModule.ListEndpoint))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 25)

	var first map[string]string
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	assert.Equal(t, "Product 0", first["productname"])
	assert.Equal(t, "1000", first["crmid"])
}

func TestRun_YAML(t *testing.T) {
	t.Parallel()

	_, records := newExportServer(t, 3)

	var buf bytes.Buffer

	count, err := export.Run(context.Background(), records, opencrm.NewListParams().WithQuery(opencrm.Equals("productname", "Product 1")), 0, export.NewYAMLWriter(&buf))
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	var decoded []map[string]string
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, "9.99", decoded[0]["unit_price"])
}

func TestRun_SQLite(t *testing.T) {
	t.Parallel()

	_, records := newExportServer(t, 12)
	dsn := filepath.Join(t.TempDir(), "export.db")
	ctx := context.Background()

	for range 2 {
		writer, err := export.NewWriter(ctx, export.FormatSQLite, export.Target{Path: dsn}, opencrm.ProductsModule)
		require.NoError(t, err)

		count, err := export.Run(ctx, records, nil, 5, writer)
		require.NoError(t, err)
		assert.Equal(t, 12, count)
	}

	db, err := sql.Open("sqlite", dsn)
	require.NoError(t, err)

	defer func() { _ = db.Close() }()

	var rows int
	require.NoError(t, db.QueryRowContext(ctx, "SELECT COUNT(*) FROM records WHERE module = ?", "Products").Scan(&rows))
	assert.Equal(t, 12, rows, "re-export replaces rows")

	var data string
	require.NoError(t, db.QueryRowContext(ctx, "SELECT data FROM records WHERE crmid = ?", 1003).Scan(&data))
	assert.Contains(t, data, `"productname":"Product 3"`)
}

func TestRun_Failure(t *testing.T) {
	t.Parallel()

	server, records := newExportServer(t, 30)
	server.Fail(opencrm.ProductsModule.ListEndpoint, opencrmtest.Fault{StatusCode: http.StatusInternalServerError, Body: "boom"})

	var buf bytes.Buffer

	count, err := export.Run(context.Background(), records, nil, 10, export.NewJSONLWriter(&buf))
	require.Error(t, err)
	assert.Zero(t, count)
	assert.Contains(t, err.Error(), "exporting Products")
	assert.Equal(t, http.StatusInternalServerError, opencrm.StatusCode(err))
}

func TestNewWriter(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	for _, format := range []string{"jsonl", "JSON", "yaml", "yml"} {
		writer, err := export.NewWriter(ctx, format, export.Target{Out: &bytes.Buffer{}}, opencrm.LeadsModule)
		require.NoError(t, err, format)
		require.NoError(t, writer.Close())
	}

	_, err := export.NewWriter(ctx, "csv", export.Target{Out: &bytes.Buffer{}}, opencrm.LeadsModule)
	require.ErrorIs(t, err, export.ErrUnsupportedFormat)

	_, err = export.NewWriter(ctx, export.FormatSQLite, export.Target{Out: &bytes.Buffer{}}, opencrm.LeadsModule)
	require.ErrorIs(t, err, export.ErrUnsupportedFormat)

	_, err = export.NewWriter(ctx, export.FormatNATS, export.Target{NATSURL: "nats://127.0.0.1:1"}, opencrm.LeadsModule)
	require.Error(t, err)

	assert.Equal(t, []string{"jsonl", "yaml", "sqlite", "nats"}, export.Formats())
}

func TestSQLiteWriter_RecordIDs(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "ids.db")

	writer, err := export.NewSQLiteWriter(ctx, dsn, opencrm.LeadsModule)
	require.NoError(t, err)

	require.NoError(t, writer.Write(ctx, opencrm.Record{"crmid": "7", "lastname": "Byron"}))
	require.NoError(t, writer.Write(ctx, opencrm.Record{"record_id": "8", "lastname": "Babbage"}))

	err = writer.Write(ctx, opencrm.Record{"lastname": "Somerville"})
	require.ErrorIs(t, err, export.ErrMissingCRMID)

	err = writer.Write(ctx, opencrm.Record{"crmid": "0", "lastname": "Herschel"})
	require.ErrorIs(t, err, export.ErrMissingCRMID)

	assert.Equal(t, 2, writer.Count())
	require.NoError(t, writer.Close())

	db, err := sql.Open("sqlite", dsn)
	require.NoError(t, err)

	defer func() { _ = db.Close() }()

	rows, err := db.QueryContext(ctx, "SELECT crmid FROM records WHERE module = ? ORDER BY crmid", "Leads")
	require.NoError(t, err)

	defer func() { _ = rows.Close() }()

	var ids []int

	for rows.Next() {
		var id int
		require.NoError(t, rows.Scan(&id))

		ids = append(ids, id)
	}

	require.NoError(t, rows.Err())
	assert.Equal(t, []int{7, 8}, ids)
}
