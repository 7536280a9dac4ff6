package textconv

import "github.com/hengadev/textconv/internal/builtin"

// Environment variable names
const (
	// EnvTimeLayout overrides the layout used by the time.Time built-in.
	// Example: "2006-01-02T15:04:05Z07:00"
	EnvTimeLayout = "TEXTCONV_TIME_LAYOUT"

	// EnvDisabledBuiltins is a comma separated list of built-in converter
	// names that new registries must not load.
	// Example: "uuid,regexp"
	EnvDisabledBuiltins = "TEXTCONV_DISABLED_BUILTINS"

	// EnvLogLevel is one of debug, info, warn, error.
	EnvLogLevel = "TEXTCONV_LOG_LEVEL"

	// EnvLogFormat is one of json, text, console.
	EnvLogFormat = "TEXTCONV_LOG_FORMAT"
)

// Default values
const (
	// DefaultTimeLayout is the layout used for time.Time when none is configured.
	DefaultTimeLayout = builtin.DefaultTimeLayout

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
)
