package textconv

import (
	"reflect"

	"github.com/hengadev/textconv/internal/converr"
)

// Converter turns values of one type into text and back.
//
// ConvertToString is only called with a non-nil value of the converter's
// type, and ConvertFromString returns a value of that type. Implementations
// must be free of side effects and safe for concurrent use.
type Converter interface {
	ConvertToString(object any) (string, error)
	ConvertFromString(text string) (any, error)
}

// TypedConverter is the generic form of Converter. Wrap it with FromTyped to
// register it.
type TypedConverter[T any] interface {
	ToString(value T) (string, error)
	FromString(text string) (T, error)
}

// TextFormatter marks the canonical to-text method of a type.
type TextFormatter interface {
	FormatText() string
}

// TextParser marks a constructor-style from-text method: it is called on the
// zero value of T and returns a new T (or *T).
type TextParser[T any] interface {
	ParseText(text string) (T, error)
}

// TextScanner marks a from-text method that fills its pointer receiver.
// A type must not declare both ParseText and ScanText.
type TextScanner interface {
	ScanText(text string) error
}

// NewConverter builds a Converter from a format and a parse function.
func NewConverter[T any](format func(T) string, parse func(string) (T, error)) Converter {
	return &funcConverter[T]{
		typ:    reflect.TypeFor[T](),
		format: func(v T) (string, error) { return format(v), nil },
		parse:  parse,
	}
}

// FromTyped adapts a TypedConverter.
func FromTyped[T any](c TypedConverter[T]) Converter {
	return &funcConverter[T]{
		typ:    reflect.TypeFor[T](),
		format: c.ToString,
		parse:  c.FromString,
	}
}

type funcConverter[T any] struct {
	typ    reflect.Type
	format func(T) (string, error)
	parse  func(string) (T, error)
}

func (c *funcConverter[T]) ConvertToString(object any) (string, error) {
	v, ok := object.(T)
	if !ok {
		return "", converr.NewTypeMismatchError(c.typ, object)
	}
	s, err := c.format(v)
	if err != nil {
		return "", converr.NewConversionFailedError(c.typ, err)
	}
	return s, nil
}

func (c *funcConverter[T]) ConvertFromString(text string) (any, error) {
	v, err := c.parse(text)
	if err != nil {
		return nil, converr.NewConversionFailedError(c.typ, err)
	}
	return v, nil
}
