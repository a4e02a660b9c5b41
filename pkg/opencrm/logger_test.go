package opencrm_test

import (
	"bytes"
	"log/slog"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fivetwenty-io/opencrm-client/pkg/opencrm"
)

func TestSlogLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	logger := opencrm.NewSlogLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	logger.Debug("HTTP Request", map[string]interface{}{"endpoint": "get_lead", "attempt": 1})
	logger.Warn("Slow response", nil)

	output := buf.String()
	assert.Contains(t, output, `level=DEBUG msg="HTTP Request" attempt=1 endpoint=get_lead`)
	assert.Contains(t, output, `level=WARN msg="Slow response"`)

	assert.NotNil(t, opencrm.NewSlogLogger(nil))
}

func TestMaskForm(t *testing.T) {
	t.Parallel()

	masked := opencrm.MaskForm(url.Values{
		"apikey":    {"a"},
		"passkey":   {"p"},
		"accesskey": {"s"},
		"key":       {"k"},
		"lastname":  {"Doe"},
	})

	assert.Equal(t, map[string]string{
		"apikey":    "***",
		"passkey":   "***",
		"accesskey": "***",
		"key":       "***",
		"lastname":  "Doe",
	}, masked)

	assert.True(t, opencrm.IsSecretField("KEY1"))
	assert.False(t, opencrm.IsSecretField("crmid"))
}
