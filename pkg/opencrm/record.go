package opencrm

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/fivetwenty-io/opencrm-client/internal/constants"
)

// Record is a CRM record as returned by the API, keyed by API field name.
// Values are string, json.Number, bool, nil or nested JSON values.
type Record map[string]any

// CRMID returns the record identifier, or 0 when absent or malformed.
func (r Record) CRMID() int {
	id, _ := r.Int(constants.FieldCRMID)

	return id
}

// Has reports whether field is present.
func (r Record) Has(field string) bool {
	_, ok := r[field]

	return ok
}

// String returns field formatted as text; missing and null fields are "".
func (r Record) String(field string) string {
	return FormatValue(r[field])
}

// Int returns field as an integer when it holds a number or a digit string.
func (r Record) Int(field string) (int, bool) {
	return toInt(r[field])
}

// Float returns field as a float when it holds a number or numeric string.
func (r Record) Float(field string) (float64, bool) {
	switch value := r[field].(type) {
	case json.Number:
		f, err := value.Float64()

		return f, err == nil
	case float64:
		return value, true
	case int:
		return float64(value), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)

		return f, err == nil
	default:
		return 0, false
	}
}

// Fields returns the record's field names in no particular order.
func (r Record) Fields() []string {
	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}

	return names
}

// Fields are the values written by Create and Update. Keys may use API
// names or the friendly aliases a Module knows about.
type Fields map[string]any

// FormatValue renders a field value the way the API expects it in form
// data: booleans as 1/0, times as "2006-01-02 15:04:05" (or a bare date at
// midnight), nil as "".
func FormatValue(value any) string {
	switch typed := value.(type) {
	case nil:
		return ""
	case string:
		return typed
	case json.Number:
		return typed.String()
	case bool:
		if typed {
			return "1"
		}

		return "0"
	case int:
		return strconv.Itoa(typed)
	case int64:
		return strconv.FormatInt(typed, 10)
	case int32:
		return strconv.FormatInt(int64(typed), 10)
	case uint:
		return strconv.FormatUint(uint64(typed), 10)
	case uint64:
		return strconv.FormatUint(typed, 10)
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(typed), 'f', -1, 32)
	case time.Time:
		if typed.IsZero() {
			return ""
		}

		if typed.Hour() == 0 && typed.Minute() == 0 && typed.Second() == 0 {
			return typed.Format(constants.DateLayout)
		}

		return typed.Format(constants.DateTimeLayout)
	case *time.Time:
		if typed == nil {
			return ""
		}

		return FormatValue(*typed)
	case fmt.Stringer:
		return typed.String()
	default:
		return fmt.Sprint(typed)
	}
}

func toInt(value any) (int, bool) {
	switch typed := value.(type) {
	case json.Number:
		n, err := typed.Int64()
		if err != nil {
			return 0, false
		}

		return int(n), true
	case float64:
		return int(typed), typed == float64(int(typed))
	case int:
		return typed, true
	case int64:
		return int(typed), true
	case string:
		trimmed := strings.TrimSpace(typed)
		if !isDigits(trimmed) {
			return 0, false
		}

		n, err := strconv.Atoi(trimmed)

		return n, err == nil
	default:
		return 0, false
	}
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}

	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}

	return true
}

// ParseID extracts a record id from a create/update response: an integer,
// a digit string, or an object carrying record_id or crmid.
func ParseID(result any) (int, bool) {
	if id, ok := toInt(result); ok {
		return id, true
	}

	var object map[string]any

	switch typed := result.(type) {
	case map[string]any:
		object = typed
	case Record:
		object = typed
	default:
		return 0, false
	}

	for _, key := range []string{constants.FieldRecordID, constants.FieldCRMID} {
		if id, ok := toInt(object[key]); ok {
			return id, true
		}
	}

	return 0, false
}

// ParseCount extracts a count from an integer or digit string, else 0.
func ParseCount(result any) int {
	n, ok := toInt(result)
	if !ok || n < 0 {
		return 0
	}

	return n
}

// ParseRecords normalizes a list response: an array of objects, a single
// object, or anything else (treated as no records).
func ParseRecords(result any) []Record {
	switch typed := result.(type) {
	case []any:
		records := make([]Record, 0, len(typed))

		for _, item := range typed {
			if object, ok := item.(map[string]any); ok {
				records = append(records, Record(object))
			}
		}

		return records
	case map[string]any:
		return []Record{Record(typed)}
	default:
		return []Record{}
	}
}
