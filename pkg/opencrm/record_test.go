package opencrm_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/fivetwenty-io/opencrm-client/pkg/opencrm"
)

func TestRecord_Accessors(t *testing.T) {
	t.Parallel()

	record := opencrm.Record{
		"crmid":     "1234",
		"amount":    json.Number("12.50"),
		"quantity":  json.Number("3"),
		"lastname":  "Doe",
		"tps":       true,
		"website":   nil,
		"malformed": "12a",
	}

	assert.Equal(t, 1234, record.CRMID())
	assert.True(t, record.Has("website"))
	assert.False(t, record.Has("missing"))
	assert.Equal(t, "Doe", record.String("lastname"))
	assert.Equal(t, "1", record.String("tps"))
	assert.Empty(t, record.String("website"))
	assert.Empty(t, record.String("missing"))

	quantity, ok := record.Int("quantity")
	assert.True(t, ok)
	assert.Equal(t, 3, quantity)

	_, ok = record.Int("malformed")
	assert.False(t, ok)

	amount, ok := record.Float("amount")
	assert.True(t, ok)
	assert.InDelta(t, 12.5, amount, 0.0001)

	assert.Zero(t, opencrm.Record{"crmid": "abc"}.CRMID())
	assert.Len(t, record.Fields(), len(record))
}

func TestFormatValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		value    any
		expected string
	}{
		{name: "nil", value: nil, expected: ""},
		{name: "string", value: "x", expected: "x"},
		{name: "true", value: true, expected: "1"},
		{name: "false", value: false, expected: "0"},
		{name: "int", value: 42, expected: "42"},
		{name: "int64", value: int64(-7), expected: "-7"},
		{name: "float", value: 12.5, expected: "12.5"},
		{name: "json number", value: json.Number("99"), expected: "99"},
		{name: "date", value: time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC), expected: "2024-01-31"},
		{name: "datetime", value: time.Date(2024, 1, 31, 9, 30, 0, 0, time.UTC), expected: "2024-01-31 09:30:00"},
		{name: "zero time", value: time.Time{}, expected: ""},
		{name: "nil time pointer", value: (*time.Time)(nil), expected: ""},
		{name: "other", value: []int{1}, expected: "[1]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, opencrm.FormatValue(tt.value))
		})
	}
}

func TestParseID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		result any
		id     int
		ok     bool
	}{
		{name: "number", result: json.Number("123"), id: 123, ok: true},
		{name: "digit string", result: " 456 ", id: 456, ok: true},
		{name: "record_id", result: map[string]any{"record_id": "789"}, id: 789, ok: true},
		{name: "crmid", result: map[string]any{"crmid": json.Number("5")}, id: 5, ok: true},
		{name: "record", result: opencrm.Record{"crmid": "6"}, id: 6, ok: true},
		{name: "text", result: "Record saved", ok: false},
		{name: "empty object", result: map[string]any{}, ok: false},
		{name: "nil", result: nil, ok: false},
		{name: "fraction", result: json.Number("1.5"), ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			id, ok := opencrm.ParseID(tt.result)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.id, id)
		})
	}
}

func TestParseCount(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 42, opencrm.ParseCount(json.Number("42")))
	assert.Equal(t, 42, opencrm.ParseCount("42"))
	assert.Zero(t, opencrm.ParseCount("forty two"))
	assert.Zero(t, opencrm.ParseCount(nil))
	assert.Zero(t, opencrm.ParseCount(json.Number("-1")))
	assert.Zero(t, opencrm.ParseCount(map[string]any{"count": "3"}))
}

func TestParseRecords(t *testing.T) {
	t.Parallel()

	records := opencrm.ParseRecords([]any{
		map[string]any{"crmid": "1"},
		"junk",
		map[string]any{"crmid": "2"},
	})
	assert.Len(t, records, 2)
	assert.Equal(t, 2, records[1].CRMID())

	assert.Len(t, opencrm.ParseRecords(map[string]any{"crmid": "1"}), 1)

	for _, result := range []any{nil, "", false, "No records found"} {
		records := opencrm.ParseRecords(result)
		assert.NotNil(t, records)
		assert.Empty(t, records)
	}
}
