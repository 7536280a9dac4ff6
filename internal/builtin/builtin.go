// Package builtin holds the converters every new registry starts with.
//
// The set is fixed and built without side effects, so two registries created
// with the same Options hold equivalent converters.
//
// Every conversion runs in memory except parsing a "location" other than UTC
// or Local: time.LoadLocation reads the zoneinfo database from disk. Disable
// the "location" built-in where that is not acceptable.
package builtin

import (
	"encoding/base64"
	"fmt"
	"math/big"
	"net/netip"
	"net/url"
	"reflect"
	"regexp"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/hengadev/textconv/internal/converr"
)

// DefaultTimeLayout is used for time.Time when Options.TimeLayout is empty.
const DefaultTimeLayout = time.RFC3339Nano

// Options tunes the few built-ins that have a configurable format.
type Options struct {
	TimeLayout string
}

// Converter is a named format/parse pair for a single type.
type Converter struct {
	name   string
	typ    reflect.Type
	format func(any) (string, error)
	parse  func(string) (any, error)
}

// Name is the stable identifier used by configuration to disable a built-in.
func (c *Converter) Name() string { return c.name }

// Type is the registry key for this converter.
func (c *Converter) Type() reflect.Type { return c.typ }

func (c *Converter) ConvertToString(object any) (string, error) {
	return c.format(object)
}

func (c *Converter) ConvertFromString(text string) (any, error) {
	return c.parse(text)
}

// Set returns the built-in converters in a deterministic order.
func Set(opts Options) []*Converter {
	layout := opts.TimeLayout
	if layout == "" {
		layout = DefaultTimeLayout
	}

	return []*Converter{
		define("string",
			func(v string) (string, error) { return v, nil },
			func(s string) (string, error) { return s, nil }),
		define("bool",
			func(v bool) (string, error) { return strconv.FormatBool(v), nil },
			strconv.ParseBool),
		signed[int]("int", strconv.IntSize),
		signed[int8]("int8", 8),
		signed[int16]("int16", 16),
		signed[int32]("int32", 32),
		signed[int64]("int64", 64),
		unsigned[uint]("uint", strconv.IntSize),
		unsigned[uint8]("uint8", 8),
		unsigned[uint16]("uint16", 16),
		unsigned[uint32]("uint32", 32),
		unsigned[uint64]("uint64", 64),
		float[float32]("float32", 32),
		float[float64]("float64", 64),
		complexNumber[complex64]("complex64", 64),
		complexNumber[complex128]("complex128", 128),
		define("bytes",
			func(v []byte) (string, error) { return base64.StdEncoding.EncodeToString(v), nil },
			base64.StdEncoding.DecodeString),
		define("duration",
			func(v time.Duration) (string, error) { return v.String(), nil },
			time.ParseDuration),
		define("time",
			func(v time.Time) (string, error) { return v.Format(layout), nil },
			func(s string) (time.Time, error) { return time.Parse(layout, s) }),
		define("location",
			func(v *time.Location) (string, error) { return v.String(), nil },
			time.LoadLocation),
		define("url",
			func(v *url.URL) (string, error) { return v.String(), nil },
			url.Parse),
		define("regexp",
			func(v *regexp.Regexp) (string, error) { return v.String(), nil },
			regexp.Compile),
		define("bigint",
			func(v *big.Int) (string, error) { return v.String(), nil },
			func(s string) (*big.Int, error) {
				n, ok := new(big.Int).SetString(s, 10)
				if !ok {
					return nil, fmt.Errorf("invalid integer %q", s)
				}
				return n, nil
			}),
		define("bigrat",
			func(v *big.Rat) (string, error) { return v.RatString(), nil },
			func(s string) (*big.Rat, error) {
				r, ok := new(big.Rat).SetString(s)
				if !ok {
					return nil, fmt.Errorf("invalid rational %q", s)
				}
				return r, nil
			}),
		define("ipaddr",
			func(v netip.Addr) (string, error) { return v.String(), nil },
			netip.ParseAddr),
		define("ipprefix",
			func(v netip.Prefix) (string, error) { return v.String(), nil },
			netip.ParsePrefix),
		define("addrport",
			func(v netip.AddrPort) (string, error) { return v.String(), nil },
			netip.ParseAddrPort),
		define("uuid",
			func(v uuid.UUID) (string, error) { return v.String(), nil },
			uuid.Parse),
	}
}

// Names lists the identifiers of every built-in.
func Names() []string {
	set := Set(Options{})
	names := make([]string, len(set))
	for i, c := range set {
		names[i] = c.name
	}
	return names
}

func define[T any](name string, format func(T) (string, error), parse func(string) (T, error)) *Converter {
	typ := reflect.TypeFor[T]()
	return &Converter{
		name: name,
		typ:  typ,
		format: func(object any) (string, error) {
			v, ok := object.(T)
			if !ok {
				return "", converr.NewTypeMismatchError(typ, object)
			}
			s, err := format(v)
			if err != nil {
				return "", converr.NewConversionFailedError(typ, err)
			}
			return s, nil
		},
		parse: func(text string) (any, error) {
			v, err := parse(text)
			if err != nil {
				return nil, converr.NewConversionFailedError(typ, err)
			}
			return v, nil
		},
	}
}

func signed[T ~int | ~int8 | ~int16 | ~int32 | ~int64](name string, bits int) *Converter {
	return define(name,
		func(v T) (string, error) { return strconv.FormatInt(int64(v), 10), nil },
		func(s string) (T, error) {
			n, err := strconv.ParseInt(s, 10, bits)
			return T(n), err
		})
}

func unsigned[T ~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64](name string, bits int) *Converter {
	return define(name,
		func(v T) (string, error) { return strconv.FormatUint(uint64(v), 10), nil },
		func(s string) (T, error) {
			n, err := strconv.ParseUint(s, 10, bits)
			return T(n), err
		})
}

func float[T ~float32 | ~float64](name string, bits int) *Converter {
	return define(name,
		func(v T) (string, error) { return strconv.FormatFloat(float64(v), 'g', -1, bits), nil },
		func(s string) (T, error) {
			f, err := strconv.ParseFloat(s, bits)
			return T(f), err
		})
}

func complexNumber[T ~complex64 | ~complex128](name string, bits int) *Converter {
	return define(name,
		func(v T) (string, error) { return strconv.FormatComplex(complex128(v), 'g', -1, bits), nil },
		func(s string) (T, error) {
			c, err := strconv.ParseComplex(s, bits)
			return T(c), err
		})
}
