package textconv

import (
	"io"
	"log/slog"
	"reflect"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hengadev/errsx"

	"github.com/hengadev/textconv/internal/builtin"
	"github.com/hengadev/textconv/internal/converr"
	"github.com/hengadev/textconv/internal/discovery"
	"github.com/hengadev/textconv/internal/monitoring"
)

// Source records how an entry got into a registry.
type Source int8

const (
	SourceBuiltin Source = iota
	SourceExplicit
	SourceDiscovered
)

func (s Source) String() string {
	switch s {
	case SourceBuiltin:
		return "builtin"
	case SourceExplicit:
		return "explicit"
	case SourceDiscovered:
		return "discovered"
	default:
		return "unknown"
	}
}

// Entry is a converter bound to the type it handles.
type Entry struct {
	Type      reflect.Type
	Converter Converter
	Source    Source
}

// Registry maps types to converters.
//
// Entries are never replaced or removed. Explicit registration is add-once,
// and converters found through method discovery are cached on first use. A
// Registry is safe for concurrent use; reads take no lock.
type Registry struct {
	entries sync.Map // reflect.Type -> Entry
	sealed  atomic.Bool

	config    Config
	logger    *slog.Logger
	logOutput io.Writer
	metrics   MetricsCollector
	builtins  bool
	pending   []Entry
}

// New creates a registry holding the built-in converters, plus any converter
// passed with WithConverter.
//
// Example usage:
//
//	reg, err := textconv.New(
//	    textconv.WithConfig(cfg),
//	    textconv.WithLogger(logger),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	if err := textconv.RegisterFunc(reg, Distance.String, ParseDistance); err != nil {
//	    log.Fatal(err)
//	}
func New(opts ...Option) (*Registry, error) {
	r := &Registry{
		config:   DefaultConfig(),
		builtins: true,
	}

	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}

	if r.logger == nil {
		if r.logOutput != nil {
			r.logger = r.config.Logger(r.logOutput)
		} else {
			r.logger = monitoring.DiscardLogger()
		}
	}
	if r.metrics == nil {
		r.metrics = &monitoring.NoOpMetricsCollector{}
	}

	for _, e := range r.pending {
		if err := r.register(e.Type, e.Converter, SourceExplicit); err != nil {
			return nil, err
		}
	}
	r.pending = nil

	if r.builtins {
		r.loadBuiltins()
	}

	r.logger.Debug("registry created",
		"version", VersionInfo(),
		"entries", r.Len(),
		"builtins", r.builtins,
	)
	return r, nil
}

// loadBuiltins adds every enabled built-in whose type has no entry yet, so a
// converter passed to New takes precedence over the built-in for its type.
func (r *Registry) loadBuiltins() {
	for _, c := range builtin.Set(r.config.builtinOptions()) {
		if r.config.builtinDisabled(c.Name()) {
			continue
		}
		r.entries.LoadOrStore(c.Type(), Entry{Type: c.Type(), Converter: c, Source: SourceBuiltin})
	}
}

// Register adds an explicit converter for t.
//
// It fails with KindInvalidArgument if t or c is nil, KindSealedRegistry if
// the registry is sealed and KindDuplicateRegistration if t already has an
// entry of any source. The existing entry is never replaced.
func (r *Registry) Register(t reflect.Type, c Converter) error {
	if t == nil {
		return converr.NewInvalidArgumentError("type must not be nil")
	}
	if isNil(c) {
		return converr.NewInvalidArgumentError("converter for " + t.String() + " must not be nil")
	}
	if r.sealed.Load() {
		return converr.NewSealedRegistryError(t)
	}
	return r.register(t, c, SourceExplicit)
}

func (r *Registry) register(t reflect.Type, c Converter, source Source) error {
	if _, loaded := r.entries.LoadOrStore(t, Entry{Type: t, Converter: c, Source: source}); loaded {
		return converr.NewDuplicateRegistrationError(t)
	}

	r.metrics.IncrementCounter(monitoring.MetricRegister, map[string]string{"source": source.String()})
	r.logger.Info("converter registered", "type", t.String(), "source", source.String())
	return nil
}

// RegisterAll registers every converter in converters, in type name order.
// Failures do not stop the remaining registrations and are reported together,
// keyed by type name.
func (r *Registry) RegisterAll(converters map[reflect.Type]Converter) error {
	types := make([]reflect.Type, 0, len(converters))
	for t := range converters {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return typeName(types[i]) < typeName(types[j]) })

	errs := errsx.Map{}
	for _, t := range types {
		if err := r.Register(t, converters[t]); err != nil {
			errs.Set(typeName(t), err)
		}
	}
	return errs.AsError()
}

// Register adds an explicit converter keyed by T.
func Register[T any](r *Registry, c Converter) error {
	return r.Register(reflect.TypeFor[T](), c)
}

// RegisterFunc adds an explicit converter for T built from a format and a
// parse function.
func RegisterFunc[T any](r *Registry, format func(T) string, parse func(string) (T, error)) error {
	if format == nil || parse == nil {
		return converr.NewInvalidArgumentError("format and parse functions must not be nil")
	}
	return r.Register(reflect.TypeFor[T](), NewConverter(format, parse))
}

// RegisterTyped adds an explicit converter for T.
func RegisterTyped[T any](r *Registry, c TypedConverter[T]) error {
	if isNil(c) {
		return converr.NewInvalidArgumentError("converter must not be nil")
	}
	return r.Register(reflect.TypeFor[T](), FromTyped(c))
}

// Resolve returns the converter for t.
//
// A type with an entry gets that entry. Otherwise t's methods are inspected
// and, when they declare a usable conversion, the resulting converter is
// cached. When two goroutines discover the same type at once, both get the
// converter that was stored first. Failed discovery caches nothing.
func (r *Registry) Resolve(t reflect.Type) (Converter, error) {
	if t == nil {
		return nil, converr.NewInvalidArgumentError("type must not be nil")
	}

	tags := r.typeTags(t)
	if v, ok := r.entries.Load(t); ok {
		r.metrics.IncrementCounter(monitoring.MetricResolveHit, tags)
		return v.(Entry).Converter, nil
	}
	r.metrics.IncrementCounter(monitoring.MetricResolveMiss, tags)

	return r.discover(t, tags)
}

func (r *Registry) discover(t reflect.Type, tags map[string]string) (Converter, error) {
	start := time.Now()
	desc, err := discovery.Inspect(t)
	r.metrics.RecordTiming(monitoring.MetricDiscoveryDuration, time.Since(start), tags)

	if err != nil {
		r.metrics.IncrementCounter(monitoring.MetricDiscoveryFailure, tags)
		r.logger.Warn("converter discovery failed", "type", t.String(), "error", err)
		return nil, err
	}

	entry := Entry{Type: t, Converter: desc.Converter(), Source: SourceDiscovered}
	if v, loaded := r.entries.LoadOrStore(t, entry); loaded {
		r.logger.Debug("converter discovered concurrently", "type", t.String())
		return v.(Entry).Converter, nil
	}

	r.metrics.IncrementCounter(monitoring.MetricDiscoverySuccess, tags)
	r.logger.Debug("converter discovered",
		"type", t.String(),
		"to_text", desc.ToTextName(),
		"from_text", desc.FromTextName(),
		"mechanism", desc.Mechanism.String(),
	)
	return entry.Converter, nil
}

// typeTags returns the metric tags for t, or nil when metrics are discarded.
func (r *Registry) typeTags(t reflect.Type) map[string]string {
	if _, ok := r.metrics.(*monitoring.NoOpMetricsCollector); ok {
		return nil
	}
	return map[string]string{"type": t.String()}
}

// Lookup returns the entry for t without running discovery.
func (r *Registry) Lookup(t reflect.Type) (Entry, bool) {
	if t == nil {
		return Entry{}, false
	}
	v, ok := r.entries.Load(t)
	if !ok {
		return Entry{}, false
	}
	return v.(Entry), true
}

// Entries returns a snapshot of every entry, sorted by type name.
func (r *Registry) Entries() []Entry {
	var entries []Entry
	r.entries.Range(func(_, v any) bool {
		entries = append(entries, v.(Entry))
		return true
	})
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Type.String() < entries[j].Type.String()
	})
	return entries
}

// Len returns the number of entries.
func (r *Registry) Len() int {
	n := 0
	r.entries.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

// Seal rejects further explicit registration. Discovery keeps caching.
func (r *Registry) Seal() {
	r.sealed.Store(true)
}

// Sealed reports whether Seal was called.
func (r *Registry) Sealed() bool {
	return r.sealed.Load()
}

func (r *Registry) String() string {
	return "Registry"
}

func typeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}
