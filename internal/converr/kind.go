package converr

// Kind classifies a conversion failure.
type Kind int8

const (
	Unknown Kind = iota
	Unconvertible
	AmbiguousDeclaration
	DuplicateRegistration
	InvalidArgument
	SealedRegistry
	DuplicateMarker
	InvalidMarker
	TypeMismatch
	ConversionFailed
)

var kindNames = map[Kind]string{
	Unknown:               "unknown",
	Unconvertible:         "unconvertible type",
	AmbiguousDeclaration:  "ambiguous declaration",
	DuplicateRegistration: "duplicate registration",
	InvalidArgument:       "invalid argument",
	SealedRegistry:        "sealed registry",
	DuplicateMarker:       "duplicate marker",
	InvalidMarker:         "invalid marker",
	TypeMismatch:          "type mismatch",
	ConversionFailed:      "conversion failed",
}

func (k Kind) String() string {
	if str, ok := kindNames[k]; ok {
		return str
	}
	return "unknown"
}

// Sentinel returns the sentinel error matched by errors.Is for this kind.
func (k Kind) Sentinel() error {
	switch k {
	case Unconvertible:
		return ErrUnconvertible
	case AmbiguousDeclaration:
		return ErrAmbiguousDeclaration
	case DuplicateRegistration:
		return ErrDuplicateRegistration
	case InvalidArgument:
		return ErrInvalidArgument
	case SealedRegistry:
		return ErrSealedRegistry
	case DuplicateMarker:
		return ErrDuplicateMarker
	case InvalidMarker:
		return ErrInvalidMarker
	case TypeMismatch:
		return ErrTypeMismatch
	case ConversionFailed:
		return ErrConversionFailed
	default:
		return nil
	}
}

// IsConfiguration reports whether the kind describes a programming or wiring
// mistake rather than bad input.
func (k Kind) IsConfiguration() bool {
	switch k {
	case Unconvertible, AmbiguousDeclaration, DuplicateRegistration,
		InvalidArgument, SealedRegistry, DuplicateMarker, InvalidMarker:
		return true
	default:
		return false
	}
}
