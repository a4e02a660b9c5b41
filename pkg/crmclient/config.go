package crmclient

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	"github.com/fivetwenty-io/opencrm-client/pkg/opencrm"
)

// EnvPrefix is the prefix of every environment variable read by NewViper.
const EnvPrefix = "OPENCRM"

// Configuration keys understood by LoadConfig. With EnvPrefix they map to
// OPENCRM_SYSTEM_NAME, OPENCRM_API_KEY and so on.
const (
	KeySystemName   = "system_name"
	KeyAPIKey       = "api_key"
	KeyPassKey      = "pass_key"
	KeyAuthMethod   = "auth_method"
	KeyUserAgent    = "user_agent"
	KeyTimeout      = "timeout"
	KeyBaseURL      = "base_url"
	KeyRetryMax     = "retry_max"
	KeyRetryWaitMin = "retry_wait_min"
	KeyRetryWaitMax = "retry_wait_max"
	KeyDebug        = "debug"
)

// Keys returns every configuration key in display order.
func Keys() []string {
	return []string{
		KeySystemName, KeyAPIKey, KeyPassKey, KeyAuthMethod, KeyUserAgent,
		KeyTimeout, KeyBaseURL, KeyRetryMax, KeyRetryWaitMin, KeyRetryWaitMax, KeyDebug,
	}
}

// NewViper returns a viper instance that knows every configuration key and
// reads them from OPENCRM_* environment variables.
func NewViper() *viper.Viper {
	v := viper.New()
	Bind(v)

	return v
}

// Bind registers every configuration key on v and enables the OPENCRM_
// environment overrides, so Unmarshal sees variables that were never set
// through a flag or config file.
func Bind(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	for _, key := range Keys() {
		_ = v.BindEnv(key)
	}
}

// LoadConfig builds an opencrm.Config from v. Durations accept Go syntax
// ("90s", "2m") or a plain number of seconds. The result is validated.
func LoadConfig(v *viper.Viper) (*opencrm.Config, error) {
	if v == nil {
		return nil, opencrm.ErrConfigRequired
	}

	var config opencrm.Config

	err := v.Unmarshal(&config, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		secondsHookFunc(),
		mapstructure.StringToTimeDurationHookFunc(),
	)))
	if err != nil {
		return nil, &opencrm.ConfigurationError{Message: fmt.Sprintf("reading configuration: %v", err)}
	}

	config.AuthMethod = opencrm.AuthMethod(strings.ToLower(strings.TrimSpace(string(config.AuthMethod))))

	err = config.Validate()
	if err != nil {
		return nil, err
	}

	return &config, nil
}

// secondsHookFunc lets durations be written as a number of seconds.
func secondsHookFunc() mapstructure.DecodeHookFuncType {
	durationType := reflect.TypeOf(time.Duration(0))

	return func(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
		if to != durationType {
			return data, nil
		}

		switch value := data.(type) {
		case string:
			if strings.TrimSpace(value) == "" {
				return time.Duration(0), nil
			}

			seconds, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
			if err != nil {
				return data, nil
			}

			return time.Duration(seconds * float64(time.Second)), nil
		case int:
			return time.Duration(value) * time.Second, nil
		case int64:
			return time.Duration(value) * time.Second, nil
		case float64:
			return time.Duration(value * float64(time.Second)), nil
		default:
			return data, nil
		}
	}
}
