package converr

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

var (
	// Configuration errors
	ErrUnconvertible         = errors.New("no conversion mechanism declared")
	ErrAmbiguousDeclaration  = errors.New("both a from-text constructor and a from-text method are declared")
	ErrDuplicateRegistration = errors.New("converter already registered")
	ErrInvalidArgument       = errors.New("invalid argument")
	ErrSealedRegistry        = errors.New("registry does not accept explicit registration")
	ErrDuplicateMarker       = errors.New("conversion marker declared more than once")
	ErrInvalidMarker         = errors.New("conversion marker has an invalid signature")

	// Conversion errors
	ErrTypeMismatch     = errors.New("value does not match converter type")
	ErrConversionFailed = errors.New("conversion failed")
)

// Error is the failure returned by every registry and converter operation.
// It carries the offending type and a machine readable Kind.
type Error struct {
	Kind   Kind
	Type   reflect.Type
	Detail string
	Err    error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString("textconv: ")
	b.WriteString(e.Kind.String())
	if e.Type != nil {
		b.WriteString(" for ")
		b.WriteString(e.Type.String())
	}
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

// Unwrap exposes both the kind sentinel and the underlying cause to errors.Is.
func (e *Error) Unwrap() []error {
	errs := make([]error, 0, 2)
	if s := e.Kind.Sentinel(); s != nil {
		errs = append(errs, s)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// KindOf returns the Kind of the first *Error in err's chain, or Unknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Unknown
}

func NewUnconvertibleError(t reflect.Type) error {
	return &Error{Kind: Unconvertible, Type: t, Detail: "no ParseText, ScanText or UnmarshalText method found"}
}

func NewAmbiguousDeclarationError(t reflect.Type) error {
	return &Error{Kind: AmbiguousDeclaration, Type: t, Detail: "ParseText and ScanText are both declared"}
}

func NewDuplicateRegistrationError(t reflect.Type) error {
	return &Error{Kind: DuplicateRegistration, Type: t}
}

func NewInvalidArgumentError(detail string) error {
	return &Error{Kind: InvalidArgument, Detail: detail}
}

func NewSealedRegistryError(t reflect.Type) error {
	return &Error{Kind: SealedRegistry, Type: t, Detail: "explicit registration is closed, build a registry with New"}
}

func NewDuplicateMarkerError(t reflect.Type, marker string, owners []reflect.Type) error {
	names := make([]string, len(owners))
	for i, o := range owners {
		names[i] = o.String()
	}
	return &Error{
		Kind:   DuplicateMarker,
		Type:   t,
		Detail: fmt.Sprintf("%s is declared by embedded %s", marker, strings.Join(names, " and ")),
	}
}

func NewInvalidMarkerError(t reflect.Type, marker string, got reflect.Type, want string) error {
	return &Error{
		Kind:   InvalidMarker,
		Type:   t,
		Detail: fmt.Sprintf("%s has signature %s, want %s", marker, got, want),
	}
}

func NewTypeMismatchError(want reflect.Type, got any) error {
	return &Error{Kind: TypeMismatch, Type: want, Detail: fmt.Sprintf("got %T", got)}
}

func NewConversionFailedError(t reflect.Type, cause error) error {
	return &Error{Kind: ConversionFailed, Type: t, Err: cause}
}
