package textconv

import (
	"fmt"
	"io"
	"log/slog"
	"reflect"

	"github.com/hengadev/textconv/internal/converr"
)

// Option configures a Registry built by New.
type Option func(r *Registry) error

// WithConfig validates cfg and uses it for the built-ins and the logger.
func WithConfig(cfg Config) Option {
	return func(r *Registry) error {
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("validate Config: %w", err)
		}
		r.config = cfg
		return nil
	}
}

// WithLogger sets the logger. It takes precedence over WithLogOutput.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) error {
		if logger == nil {
			return converr.NewInvalidArgumentError("logger must not be nil")
		}
		r.logger = logger
		return nil
	}
}

// WithLogOutput writes logs to w, with the level and format of the Config.
func WithLogOutput(w io.Writer) Option {
	return func(r *Registry) error {
		if w == nil {
			return converr.NewInvalidArgumentError("log output must not be nil")
		}
		r.logOutput = w
		return nil
	}
}

// WithMetricsCollector sets the collector receiving resolution and
// registration metrics.
func WithMetricsCollector(collector MetricsCollector) Option {
	return func(r *Registry) error {
		if isNil(collector) {
			return converr.NewInvalidArgumentError("metrics collector must not be nil")
		}
		r.metrics = collector
		return nil
	}
}

// WithConverter registers c for t when the registry is created. A converter
// given this way replaces the built-in for the same type.
func WithConverter(t reflect.Type, c Converter) Option {
	return func(r *Registry) error {
		if t == nil {
			return converr.NewInvalidArgumentError("type must not be nil")
		}
		if isNil(c) {
			return converr.NewInvalidArgumentError("converter for " + t.String() + " must not be nil")
		}
		r.pending = append(r.pending, Entry{Type: t, Converter: c, Source: SourceExplicit})
		return nil
	}
}

// WithoutBuiltins creates the registry without built-in converters.
func WithoutBuiltins() Option {
	return func(r *Registry) error {
		r.builtins = false
		return nil
	}
}
