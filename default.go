package textconv

import "sync"

var defaultRegistry = sync.OnceValue(func() *Registry {
	r, err := New()
	if err != nil {
		panic("textconv: building default registry: " + err.Error())
	}
	r.Seal()
	return r
})

// Default returns the process-wide registry.
//
// It is built on first use from DefaultConfig, without reading the
// environment, and is sealed: Register fails with KindSealedRegistry, while
// discovered converters are still cached. Applications that register their
// own converters create a registry with New.
func Default() *Registry {
	return defaultRegistry()
}

// ToString converts object with the default registry.
func ToString(object any) (string, error) {
	return Default().ConvertToString(object)
}

// ParseString parses text into a T with the default registry.
func ParseString[T any](text string) (T, error) {
	return FromString[T](Default(), text)
}
