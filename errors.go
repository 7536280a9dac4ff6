package textconv

import (
	"errors"

	"github.com/hengadev/textconv/internal/converr"
)

// Error is returned by every registry, facade and converter operation. It
// names the offending type and carries a machine readable Kind.
type Error = converr.Error

// ErrorKind classifies an Error.
type ErrorKind = converr.Kind

const (
	KindUnknown               = converr.Unknown
	KindUnconvertible         = converr.Unconvertible
	KindAmbiguousDeclaration  = converr.AmbiguousDeclaration
	KindDuplicateRegistration = converr.DuplicateRegistration
	KindInvalidArgument       = converr.InvalidArgument
	KindSealedRegistry        = converr.SealedRegistry
	KindDuplicateMarker       = converr.DuplicateMarker
	KindInvalidMarker         = converr.InvalidMarker
	KindTypeMismatch          = converr.TypeMismatch
	KindConversionFailed      = converr.ConversionFailed
)

var (
	// Configuration errors
	ErrUnconvertible         = converr.ErrUnconvertible
	ErrAmbiguousDeclaration  = converr.ErrAmbiguousDeclaration
	ErrDuplicateRegistration = converr.ErrDuplicateRegistration
	ErrInvalidArgument       = converr.ErrInvalidArgument
	ErrSealedRegistry        = converr.ErrSealedRegistry
	ErrDuplicateMarker       = converr.ErrDuplicateMarker
	ErrInvalidMarker         = converr.ErrInvalidMarker

	// Conversion errors
	ErrTypeMismatch     = converr.ErrTypeMismatch
	ErrConversionFailed = converr.ErrConversionFailed
)

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) ErrorKind {
	return converr.KindOf(err)
}

// IsConfigurationError returns true if the error comes from how types and
// converters were declared or registered. These are programming errors and
// never succeed on retry.
func IsConfigurationError(err error) bool {
	return errors.Is(err, ErrUnconvertible) ||
		errors.Is(err, ErrAmbiguousDeclaration) ||
		errors.Is(err, ErrDuplicateRegistration) ||
		errors.Is(err, ErrInvalidArgument) ||
		errors.Is(err, ErrSealedRegistry) ||
		errors.Is(err, ErrDuplicateMarker) ||
		errors.Is(err, ErrInvalidMarker)
}

// IsConversionError returns true if a converter rejected a value or a string.
func IsConversionError(err error) bool {
	return errors.Is(err, ErrTypeMismatch) ||
		errors.Is(err, ErrConversionFailed)
}
