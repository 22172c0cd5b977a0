package config

import (
	"errors"
	"os"
	"time"

	"github.com/spf13/viper"
)

// DefaultFile is the persisted settings file looked up in the working
// directory when --config is not given.
const DefaultFile = "aidebug.yaml"

// LoadFile overlays persisted request settings onto api. A missing file is
// not an error; only keys present in the file override.
func LoadFile(path string, api *APIConfig) error {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}

	if v.IsSet("api_url") {
		api.URL = v.GetString("api_url")
	}
	if v.IsSet("application") {
		api.Application = v.GetString("application")
	}
	if v.IsSet("api_key") {
		api.Key = v.GetString("api_key")
	}
	if v.IsSet("timeout") {
		api.Timeout = time.Duration(v.GetInt("timeout")) * time.Second
	}
	if v.IsSet("response_format") {
		api.ResponseFormat = v.GetString("response_format")
	}
	if v.IsSet("model") {
		api.Model = v.GetString("model")
	}
	if v.IsSet("temperature") {
		api.Temperature = v.GetFloat64("temperature")
	}
	if v.IsSet("use_stream") {
		api.UseStream = v.GetBool("use_stream")
	}
	return nil
}

// SaveFile writes the request settings back, timeout stored as whole seconds.
func SaveFile(path string, api APIConfig) error {
	v := viper.New()
	v.Set("api_url", api.URL)
	v.Set("application", api.Application)
	v.Set("api_key", api.Key)
	v.Set("timeout", int(api.Timeout/time.Second))
	v.Set("response_format", api.ResponseFormat)
	v.Set("model", api.Model)
	v.Set("temperature", api.Temperature)
	v.Set("use_stream", api.UseStream)
	return v.WriteConfigAs(path)
}
