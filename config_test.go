package textconv

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hengadev/errsx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
		errKeys []string
	}{
		{
			name:   "defaults",
			config: DefaultConfig(),
		},
		{
			name:   "empty config gets defaults",
			config: Config{},
		},
		{
			name:   "custom layout and disabled builtins",
			config: Config{TimeLayout: time.Kitchen, DisabledBuiltins: []string{"uuid", "bigrat"}},
		},
		{
			name:    "layout without elements",
			config:  Config{TimeLayout: "not a layout"},
			wantErr: true,
			errKeys: []string{"time_layout"},
		},
		{
			name:    "unknown builtin",
			config:  Config{DisabledBuiltins: []string{"uuid", "money"}},
			wantErr: true,
			errKeys: []string{"disabled_builtins"},
		},
		{
			name:    "multiple errors",
			config:  Config{LogLevel: "loud", LogFormat: "xml", DisabledBuiltins: []string{"x"}},
			wantErr: true,
			errKeys: []string{"log_level", "log_format", "disabled_builtins"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.config
			err := cfg.Validate()

			if !tt.wantErr {
				require.NoError(t, err)
				assert.NotEmpty(t, cfg.TimeLayout)
				assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
				assert.Equal(t, DefaultLogFormat, cfg.LogFormat)
				return
			}

			errs, ok := err.(errsx.Map)
			require.True(t, ok, "expected error to be of type errsx.Map")
			assert.Len(t, errs, len(tt.errKeys))
			for _, key := range tt.errKeys {
				assert.Contains(t, errs, key)
			}
		})
	}
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	t.Setenv(EnvTimeLayout, time.RFC822)
	t.Setenv(EnvDisabledBuiltins, " uuid, regexp ,")
	t.Setenv(EnvLogLevel, "debug")
	t.Setenv(EnvLogFormat, "console")

	cfg, err := LoadConfigFromEnvironment()
	require.NoError(t, err)
	assert.Equal(t, Config{
		TimeLayout:       time.RFC822,
		DisabledBuiltins: []string{"uuid", "regexp"},
		LogLevel:         "debug",
		LogFormat:        "console",
	}, cfg)
}

func TestLoadConfigFromEnvironmentDefaults(t *testing.T) {
	for _, key := range []string{EnvTimeLayout, EnvDisabledBuiltins, EnvLogLevel, EnvLogFormat} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}

	cfg, err := LoadConfigFromEnvironment()
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigFromEnvironmentInvalid(t *testing.T) {
	t.Setenv(EnvLogLevel, "verbose")

	_, err := LoadConfigFromEnvironment()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "configuration validation failed")
}

func TestLoadConfigFromEnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	content := "# textconv settings\n" +
		EnvTimeLayout + "=2006-01-02\n" +
		EnvDisabledBuiltins + "=uuid\n" +
		EnvLogFormat + "=text\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := LoadConfigFromEnvFile(path)
	require.NoError(t, err)
	assert.Equal(t, "2006-01-02", cfg.TimeLayout)
	assert.Equal(t, []string{"uuid"}, cfg.DisabledBuiltins)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, DefaultLogLevel, cfg.LogLevel)

	// The process environment is left alone.
	_, set := os.LookupEnv(EnvTimeLayout)
	assert.False(t, set)

	_, err = LoadConfigFromEnvFile(filepath.Join(dir, "missing.env"))
	assert.Error(t, err)
}

func TestLoadConfigFromEnvFileLaterFileWins(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "base.env")
	local := filepath.Join(dir, "local.env")
	require.NoError(t, os.WriteFile(base, []byte(EnvLogLevel+"=debug\n"+EnvLogFormat+"=text\n"), 0o600))
	require.NoError(t, os.WriteFile(local, []byte(EnvLogLevel+"=error\n"), 0o600))

	cfg, err := LoadConfigFromEnvFile(base, local)
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()

	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
		return path
	}

	t.Run("full", func(t *testing.T) {
		path := write("full.yaml", `
time_layout: "2006-01-02 15:04"
disabled_builtins: [uuid, regexp]
log_level: warn
log_format: json
`)
		cfg, err := LoadConfigFile(path)
		require.NoError(t, err)
		assert.Equal(t, Config{
			TimeLayout:       "2006-01-02 15:04",
			DisabledBuiltins: []string{"uuid", "regexp"},
			LogLevel:         "warn",
			LogFormat:        "json",
		}, cfg)
	})

	t.Run("empty file keeps defaults", func(t *testing.T) {
		cfg, err := LoadConfigFile(write("empty.yaml", ""))
		require.NoError(t, err)
		assert.Equal(t, DefaultConfig(), cfg)
	})

	t.Run("unknown field", func(t *testing.T) {
		_, err := LoadConfigFile(write("unknown.yaml", "time_format: x\n"))
		assert.Error(t, err)
	})

	t.Run("invalid value", func(t *testing.T) {
		_, err := LoadConfigFile(write("invalid.yaml", "disabled_builtins: [money]\n"))
		require.Error(t, err)
		var errs errsx.Map
		assert.True(t, errors.As(err, &errs))
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadConfigFile(filepath.Join(dir, "nope.yaml"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestSaveConfigFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "textconv.yaml")
	cfg := DefaultConfig()
	cfg.DisabledBuiltins = []string{"bigint"}

	require.NoError(t, SaveConfigFile(cfg, path))

	loaded, err := LoadConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestBuiltinType(t *testing.T) {
	typ, ok := BuiltinType("duration")
	require.True(t, ok)
	assert.Equal(t, "time.Duration", typ.String())

	_, ok = BuiltinType("money")
	assert.False(t, ok)
}
