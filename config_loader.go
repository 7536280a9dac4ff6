package textconv

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// LoadConfigFromEnvironment loads configuration from environment variables.
//
// All variables are optional; unset ones keep the DefaultConfig value:
//   - TEXTCONV_TIME_LAYOUT: layout for time.Time (default: RFC3339Nano)
//   - TEXTCONV_DISABLED_BUILTINS: comma separated built-in names
//   - TEXTCONV_LOG_LEVEL: debug, info, warn or error (default: info)
//   - TEXTCONV_LOG_FORMAT: json, text or console (default: json)
//
// Example usage:
//
//	cfg, err := textconv.LoadConfigFromEnvironment()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	reg, err := textconv.New(textconv.WithConfig(cfg))
func LoadConfigFromEnvironment() (Config, error) {
	return configFromLookup(os.LookupEnv)
}

// LoadConfigFromEnvFile loads configuration from one or more .env files
// without touching the process environment. Files are read in order and a
// key set in a later file overrides the same key in an earlier one.
func LoadConfigFromEnvFile(paths ...string) (Config, error) {
	values, err := godotenv.Read(paths...)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read env file: %w", err)
	}
	return configFromLookup(func(key string) (string, bool) {
		v, ok := values[key]
		return v, ok
	})
}

// LoadConfigFile loads configuration from a YAML document.
//
// Example file:
//
//	time_layout: "2006-01-02"
//	disabled_builtins: [uuid, regexp]
//	log_level: debug
//	log_format: console
func LoadConfigFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	cfg := DefaultConfig()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("failed to decode config file '%s': %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// SaveConfigFile writes cfg as a YAML document readable by LoadConfigFile.
func SaveConfigFile(cfg Config, path string) error {
	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file '%s': %w", path, err)
	}
	return nil
}

func configFromLookup(lookup func(string) (string, bool)) (Config, error) {
	cfg := DefaultConfig()

	if v, ok := lookup(EnvTimeLayout); ok && v != "" {
		cfg.TimeLayout = v
	}
	if v, ok := lookup(EnvDisabledBuiltins); ok {
		cfg.DisabledBuiltins = splitList(v)
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		cfg.LogLevel = v
	}
	if v, ok := lookup(EnvLogFormat); ok && v != "" {
		cfg.LogFormat = v
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}
