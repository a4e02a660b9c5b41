package opencrm

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"

	"github.com/fivetwenty-io/opencrm-client/internal/constants"
)

var timeType = reflect.TypeOf(time.Time{})

// dateHookFunc parses OpenCRM date and datetime strings. Empty values and
// MySQL zero dates decode to the zero time.
func dateHookFunc() mapstructure.DecodeHookFuncType {
	return func(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
		if to != timeType || from.Kind() != reflect.String {
			return data, nil
		}

		raw := strings.TrimSpace(reflect.ValueOf(data).String())
		if raw == "" || raw == constants.ZeroDate || raw == constants.ZeroDateTime {
			return time.Time{}, nil
		}

		for _, layout := range []string{constants.DateTimeLayout, constants.DateLayout, time.RFC3339} {
			parsed, err := time.Parse(layout, raw)
			if err == nil {
				return parsed, nil
			}
		}

		return nil, fmt.Errorf("parsing date %q: %w", raw, ErrUnexpectedResult)
	}
}

// DecodeRecord decodes an untyped record into a typed model such as Lead.
// Friendly field names are folded onto API names first, and values are
// decoded weakly so "1", "0", "12.50" and "" land in bool, int and float
// fields as expected.
func DecodeRecord[T any](module Module, record Record) (*T, error) {
	var out T

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       dateHookFunc(),
		WeaklyTypedInput: true,
		Result:           &out,
		TagName:          "mapstructure",
	})
	if err != nil {
		return nil, fmt.Errorf("creating %s decoder: %w", module.Name, err)
	}

	err = decoder.Decode(map[string]any(module.Normalize(record)))
	if err != nil {
		return nil, fmt.Errorf("decoding %s record: %w", module.Name, err)
	}

	return &out, nil
}

// DecodeRecords decodes every record, stopping at the first failure.
func DecodeRecords[T any](module Module, records []Record) ([]T, error) {
	out := make([]T, 0, len(records))

	for _, record := range records {
		model, err := DecodeRecord[T](module, record)
		if err != nil {
			return nil, err
		}

		out = append(out, *model)
	}

	return out, nil
}
