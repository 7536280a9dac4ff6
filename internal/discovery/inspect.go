// Package discovery derives a converter from conversion methods declared on a
// type.
//
// Lookup runs against the method set of *T, so value and pointer receivers
// both count and methods promoted from embedded fields are found with Go's
// shadowing rules: a method declared on the outer type hides one declared on
// an embedded type.
//
// Resolution order:
//   - to-text: FormatText, then MarshalText, then fmt.Sprint.
//   - from-text: ParseText (constructor) or ScanText (method). Declaring
//     both is an error. UnmarshalText is only consulted when neither exists.
//
// When two embedded fields at the same depth both declare a marker, Go
// removes it from the method set. Inspect reports that as a duplicate marker
// at whatever depth it happens, for the standard markers too: a type
// embedding two TextMarshalers fails even when it declares ScanText and
// would otherwise fall back to fmt.Sprint.
package discovery

import (
	"reflect"

	"github.com/hengadev/textconv/internal/converr"
)

// Mechanism is the way a descriptor builds values from text.
type Mechanism int8

const (
	None Mechanism = iota
	Constructor
	Method
)

func (m Mechanism) String() string {
	switch m {
	case Constructor:
		return "constructor"
	case Method:
		return "method"
	default:
		return "none"
	}
}

// Descriptor records the conversion methods found on a type.
type Descriptor struct {
	// Type is the registry key, possibly a pointer.
	Type reflect.Type
	// Base is Type with one level of pointer removed.
	Base reflect.Type

	// ToText is nil when the type falls back to fmt.Sprint.
	ToText    *reflect.Method
	FromText  reflect.Method
	Mechanism Mechanism
}

// ToTextName names the to-text operation in use.
func (d *Descriptor) ToTextName() string {
	if d.ToText == nil {
		return "default"
	}
	return d.ToText.Name
}

// FromTextName names the from-text operation in use.
func (d *Descriptor) FromTextName() string {
	return d.FromText.Name
}

// Converter builds the adapter backed by this descriptor.
func (d *Descriptor) Converter() *Adapter {
	return &Adapter{desc: d}
}

// Inspect looks for conversion markers on t.
func Inspect(t reflect.Type) (*Descriptor, error) {
	if t == nil {
		return nil, converr.NewInvalidArgumentError("type is nil")
	}
	in := newInspector(t)

	toText, err := in.lookup(FormatTextMethod, formatTextSig)
	if err != nil {
		return nil, err
	}
	if toText == nil {
		if toText, err = in.lookup(MarshalTextMethod, marshalTextSig); err != nil {
			return nil, err
		}
	}

	ctor, err := in.lookup(ParseTextMethod, parseTextSig)
	if err != nil {
		return nil, err
	}
	scan, err := in.lookup(ScanTextMethod, scanTextSig)
	if err != nil {
		return nil, err
	}

	desc := &Descriptor{Type: t, Base: in.base, ToText: toText}
	switch {
	case ctor != nil && scan != nil:
		return nil, converr.NewAmbiguousDeclarationError(t)
	case ctor != nil:
		desc.FromText, desc.Mechanism = *ctor, Constructor
	case scan != nil:
		desc.FromText, desc.Mechanism = *scan, Method
	default:
		unmarshal, err := in.lookup(UnmarshalTextMethod, unmarshalTextSig)
		if err != nil {
			return nil, err
		}
		if unmarshal == nil {
			return nil, converr.NewUnconvertibleError(t)
		}
		desc.FromText, desc.Mechanism = *unmarshal, Method
	}
	return desc, nil
}

type inspector struct {
	key  reflect.Type
	base reflect.Type
	ptr  reflect.Type
}

func newInspector(t reflect.Type) *inspector {
	base := t
	if t.Kind() == reflect.Pointer {
		base = t.Elem()
	}
	return &inspector{key: t, base: base, ptr: reflect.PointerTo(base)}
}

// lookup returns nil, nil when the marker is simply absent.
func (in *inspector) lookup(name string, sig signature) (*reflect.Method, error) {
	m, ok := in.ptr.MethodByName(name)
	if !ok {
		if owners := embeddedOwners(in.base, name); len(owners) > 1 {
			return nil, converr.NewDuplicateMarkerError(in.key, name, owners)
		}
		return nil, nil
	}
	if !sig.check(m.Type, in.base) {
		return nil, converr.NewInvalidMarkerError(in.key, name, m.Type, sig.want)
	}
	return &m, nil
}

// embeddedOwners walks the embedded fields of t breadth first and returns
// the embedded types declaring the named method at the shallowest depth where
// any does. Go drops a promoted method from the method set when two of them
// sit at that depth; this recovers who they were.
func embeddedOwners(t reflect.Type, name string) []reflect.Type {
	w := &ownerWalk{name: name, active: map[reflect.Type]bool{}}
	return w.owners(t)
}

type ownerWalk struct {
	name   string
	active map[reflect.Type]bool
}

func (w *ownerWalk) owners(t reflect.Type) []reflect.Type {
	t = indirect(t)
	if t.Kind() != reflect.Struct || w.active[t] {
		return nil
	}
	w.active[t] = true
	defer delete(w.active, t)

	expanded := map[reflect.Type]bool{t: true}
	level := anonymousFields(t)
	for len(level) > 0 {
		var owners, next []reflect.Type
		for _, ft := range level {
			if w.declares(ft) {
				owners = append(owners, ft)
				continue
			}
			if elem := indirect(ft); !expanded[elem] {
				expanded[elem] = true
				next = append(next, anonymousFields(elem)...)
			}
		}
		if len(owners) > 0 {
			return owners
		}
		level = next
	}
	return nil
}

// declares reports whether ft has the method at depth zero. A type whose own
// embedded fields supply the method exactly once is treated as promoting it.
func (w *ownerWalk) declares(ft reflect.Type) bool {
	elem := indirect(ft)
	if elem.Kind() == reflect.Interface {
		_, ok := elem.MethodByName(w.name)
		return ok
	}
	if _, ok := reflect.PointerTo(elem).MethodByName(w.name); !ok {
		return false
	}
	return len(w.owners(elem)) != 1
}

func anonymousFields(t reflect.Type) []reflect.Type {
	if t.Kind() != reflect.Struct {
		return nil
	}
	var fields []reflect.Type
	for i := 0; i < t.NumField(); i++ {
		if field := t.Field(i); field.Anonymous {
			fields = append(fields, field.Type)
		}
	}
	return fields
}

func indirect(t reflect.Type) reflect.Type {
	if t.Kind() == reflect.Pointer {
		return t.Elem()
	}
	return t
}
