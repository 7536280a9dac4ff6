package discovery

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/hengadev/textconv/internal/converr"
)

// Adapter converts values through the methods recorded in a Descriptor.
// It holds no mutable state and is safe for concurrent use.
type Adapter struct {
	desc *Descriptor
}

// Descriptor returns the methods backing the adapter.
func (a *Adapter) Descriptor() *Descriptor { return a.desc }

func (a *Adapter) ConvertToString(object any) (string, error) {
	d := a.desc
	v := reflect.ValueOf(object)
	if !v.IsValid() || v.Type() != d.Type {
		return "", converr.NewTypeMismatchError(d.Type, object)
	}
	if d.ToText == nil {
		return fmt.Sprint(object), nil
	}

	out := d.ToText.Func.Call([]reflect.Value{a.receiver(v)})
	if d.ToText.Name == MarshalTextMethod {
		if err := asError(out[1]); err != nil {
			return "", converr.NewConversionFailedError(d.Type, err)
		}
		return string(out[0].Bytes()), nil
	}
	return out[0].String(), nil
}

func (a *Adapter) ConvertFromString(text string) (any, error) {
	d := a.desc
	switch d.Mechanism {
	case Constructor:
		return a.construct(text)
	case Method:
		return a.scan(text)
	default:
		return nil, converr.NewUnconvertibleError(d.Type)
	}
}

// receiver returns a *Base holding v, copying v when it is not a pointer.
func (a *Adapter) receiver(v reflect.Value) reflect.Value {
	if a.desc.Type.Kind() == reflect.Pointer {
		return v
	}
	p := reflect.New(a.desc.Base)
	p.Elem().Set(v)
	return p
}

func (a *Adapter) construct(text string) (any, error) {
	d := a.desc
	m := d.FromText
	arg := reflect.ValueOf(text).Convert(m.Type.In(1))

	out := m.Func.Call([]reflect.Value{reflect.New(d.Base), arg})
	if err := asError(out[1]); err != nil {
		return nil, converr.NewConversionFailedError(d.Type, err)
	}

	result := out[0]
	wantPtr := d.Type.Kind() == reflect.Pointer
	gotPtr := result.Type() != d.Base
	switch {
	case wantPtr && !gotPtr:
		p := reflect.New(d.Base)
		p.Elem().Set(result)
		return p.Interface(), nil
	case !wantPtr && gotPtr:
		if result.IsNil() {
			return nil, converr.NewConversionFailedError(d.Type, errors.New(ParseTextMethod+" returned nil"))
		}
		return result.Elem().Interface(), nil
	default:
		return result.Interface(), nil
	}
}

func (a *Adapter) scan(text string) (any, error) {
	d := a.desc
	m := d.FromText

	var arg reflect.Value
	if m.Name == UnmarshalTextMethod {
		arg = reflect.ValueOf([]byte(text))
	} else {
		arg = reflect.ValueOf(text).Convert(m.Type.In(1))
	}

	p := reflect.New(d.Base)
	out := m.Func.Call([]reflect.Value{p, arg})
	if err := asError(out[0]); err != nil {
		return nil, converr.NewConversionFailedError(d.Type, err)
	}
	if d.Type.Kind() == reflect.Pointer {
		return p.Interface(), nil
	}
	return p.Elem().Interface(), nil
}

func asError(v reflect.Value) error {
	if v.IsNil() {
		return nil
	}
	return v.Interface().(error)
}
