package textconv

import (
	"fmt"
	"io"
	"log/slog"
	"reflect"
	"slices"
	"strings"
	"time"

	"github.com/hengadev/errsx"

	"github.com/hengadev/textconv/internal/builtin"
	"github.com/hengadev/textconv/internal/monitoring"
)

// Config holds the settings a Registry is built from.
//
// This struct contains only data. It can be loaded from the environment, a
// .env file or a YAML document, or written in code, and is passed to New with
// WithConfig.
//
// Example usage:
//
//	cfg := textconv.DefaultConfig()
//	cfg.TimeLayout = time.RFC1123
//	cfg.DisabledBuiltins = []string{"uuid"}
//
//	reg, err := textconv.New(textconv.WithConfig(cfg))
type Config struct {
	// TimeLayout is the layout used by the time.Time built-in.
	//
	// Optional field. Default: time.RFC3339Nano
	TimeLayout string `yaml:"time_layout"`

	// DisabledBuiltins names built-in converters the registry must not load.
	// Names are listed by BuiltinNames.
	DisabledBuiltins []string `yaml:"disabled_builtins"`

	// LogLevel is one of debug, info, warn, error.
	//
	// Optional field. Default: info
	LogLevel string `yaml:"log_level"`

	// LogFormat is one of json, text, console.
	//
	// Optional field. Default: json
	LogFormat string `yaml:"log_format"`
}

// DefaultConfig returns the configuration used by Default.
func DefaultConfig() Config {
	return Config{
		TimeLayout: DefaultTimeLayout,
		LogLevel:   DefaultLogLevel,
		LogFormat:  DefaultLogFormat,
	}
}

// layoutProbe is formatted and parsed back to check a time layout.
var layoutProbe = time.Date(2001, time.February, 3, 4, 5, 6, 0, time.UTC)

// Validate checks that the configuration is valid and applies defaults to
// optional fields.
//
// Every problem is reported, keyed by field name, in an errsx.Map.
func (c *Config) Validate() error {
	errs := errsx.Map{}

	if c.TimeLayout == "" {
		c.TimeLayout = DefaultTimeLayout
	}
	if formatted := layoutProbe.Format(c.TimeLayout); formatted == c.TimeLayout {
		errs.Set("time_layout", fmt.Errorf("time layout '%s' has no date or time elements", c.TimeLayout))
	} else if _, err := time.Parse(c.TimeLayout, formatted); err != nil {
		errs.Set("time_layout", fmt.Errorf("time layout '%s' cannot parse its own output: %w", c.TimeLayout, err))
	}

	known := builtin.Names()
	var unknown []string
	for _, name := range c.DisabledBuiltins {
		if !slices.Contains(known, name) {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		errs.Set("disabled_builtins", fmt.Errorf("unknown built-in converters %v: must be among %v", unknown, known))
	}

	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	if _, err := monitoring.ParseLevel(c.LogLevel); err != nil {
		errs.Set("log_level", err)
	}

	if c.LogFormat == "" {
		c.LogFormat = DefaultLogFormat
	}
	if _, err := monitoring.ParseFormat(c.LogFormat); err != nil {
		errs.Set("log_format", err)
	}

	return errs.AsError()
}

// Logger builds the structured logger described by LogLevel and LogFormat.
// Invalid values fall back to info and json.
func (c Config) Logger(out io.Writer) *slog.Logger {
	level, _ := monitoring.ParseLevel(c.LogLevel)
	format, _ := monitoring.ParseFormat(c.LogFormat)
	return monitoring.NewLogger(monitoring.LoggerConfig{
		Level:     level,
		Format:    format,
		Output:    out,
		Component: "registry",
	})
}

func (c Config) builtinOptions() builtin.Options {
	return builtin.Options{TimeLayout: c.TimeLayout}
}

func (c Config) builtinDisabled(name string) bool {
	return slices.Contains(c.DisabledBuiltins, name)
}

// BuiltinNames lists the names of the built-in converters, as accepted by
// Config.DisabledBuiltins.
func BuiltinNames() []string {
	return builtin.Names()
}

// BuiltinType returns the type handled by the built-in converter called name.
func BuiltinType(name string) (reflect.Type, bool) {
	for _, c := range builtin.Set(builtin.Options{}) {
		if c.Name() == name {
			return c.Type(), true
		}
	}
	return nil, false
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
