package textconv

import (
	"fmt"
	"reflect"

	"github.com/hengadev/textconv/internal/converr"
)

// ConvertToString converts object to text using the converter for its
// dynamic type.
//
// A nil object (untyped nil, or a nil pointer, map, channel, function or
// interface) yields "" and no error without resolving any converter. A nil
// slice is a value and is converted.
func (r *Registry) ConvertToString(object any) (string, error) {
	if isNil(object) {
		return "", nil
	}
	c, err := r.Resolve(reflect.TypeOf(object))
	if err != nil {
		return "", err
	}
	return c.ConvertToString(object)
}

// ConvertToStringPtr is ConvertToString with nil mapped to a nil result.
func (r *Registry) ConvertToStringPtr(object any) (*string, error) {
	if isNil(object) {
		return nil, nil
	}
	s, err := r.ConvertToString(object)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// ConvertFromString parses text into a value of type t.
func (r *Registry) ConvertFromString(t reflect.Type, text string) (any, error) {
	c, err := r.Resolve(t)
	if err != nil {
		return nil, err
	}
	v, err := c.ConvertFromString(text)
	if err != nil {
		return nil, err
	}
	if v != nil && !reflect.TypeOf(v).AssignableTo(t) {
		return nil, converr.NewTypeMismatchError(t, v)
	}
	return v, nil
}

// FromString parses text into a T.
//
// Example usage:
//
//	d, err := textconv.FromString[Distance](reg, "5km")
func FromString[T any](r *Registry, text string) (T, error) {
	var zero T
	v, err := r.ConvertFromString(reflect.TypeFor[T](), text)
	if err != nil {
		return zero, err
	}
	if v == nil {
		return zero, nil
	}
	out, ok := v.(T)
	if !ok {
		return zero, converr.NewTypeMismatchError(reflect.TypeFor[T](), v)
	}
	return out, nil
}

// FromStringPtr is FromString with nil text mapped to a nil result.
func FromStringPtr[T any](r *Registry, text *string) (*T, error) {
	if text == nil {
		return nil, nil
	}
	v, err := FromString[T](r, *text)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// MustFromString is like FromString but panics on error. It is meant for
// initializing package level variables.
func MustFromString[T any](r *Registry, text string) T {
	v, err := FromString[T](r, text)
	if err != nil {
		panic(fmt.Sprintf("textconv: MustFromString(%q): %v", text, err))
	}
	return v
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Chan, reflect.Func, reflect.Interface, reflect.UnsafePointer:
		return rv.IsNil()
	default:
		return false
	}
}
