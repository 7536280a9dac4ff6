// Package textconv converts typed values to and from text through a registry
// of converters keyed by reflect.Type.
//
// A Registry holds built-in converters for the standard scalar types and a
// few library types (time.Time, time.Duration, *url.URL, netip.Addr,
// uuid.UUID, ...), converters registered explicitly, and converters it
// discovers from a type's own methods on first use.
//
// # Declaring conversions on a type
//
// A type opts in by declaring methods:
//
//	type Distance struct{ Meters int }
//
//	// FormatText is the canonical text form. Without it fmt.Sprint is used.
//	func (d Distance) FormatText() string {
//	    return strconv.Itoa(d.Meters/1000) + "km"
//	}
//
//	// ParseText is called on the zero value and returns a new Distance.
//	func (Distance) ParseText(s string) (Distance, error) {
//	    n, err := strconv.Atoi(strings.TrimSuffix(s, "km"))
//	    return Distance{Meters: n * 1000}, err
//	}
//
// Instead of ParseText a type may declare ScanText(string) error on its
// pointer receiver, which fills the value in place. Declaring both is an
// error. encoding.TextMarshaler and encoding.TextUnmarshaler are used when
// none of these methods exist.
//
// A marker declared by two embedded fields at the same depth, at any level
// of embedding, is an error (KindDuplicateMarker), for MarshalText and
// UnmarshalText as well.
//
// # Converting
//
//	reg, err := textconv.New()
//	s, err := reg.ConvertToString(Distance{Meters: 5000}) // "5km"
//	d, err := textconv.FromString[Distance](reg, "5km")
//
// Nil values convert to "" (or to a nil *string with ConvertToStringPtr)
// without calling any converter.
//
// # Explicit registration
//
// Converters for types you do not own are registered once per type:
//
//	err := textconv.RegisterFunc(reg, formatPoint, parsePoint)
//
// A second registration for the same type fails with
// KindDuplicateRegistration and keeps the first one.
//
// # Default registry
//
// Default returns a shared, sealed registry used by ToString and
// ParseString. It caches discovered converters but rejects Register.
//
// # Errors
//
// Every failure is an *Error. Use errors.Is with the Err* sentinels, KindOf,
// IsConfigurationError or IsConversionError to classify it.
package textconv
