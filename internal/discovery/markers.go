package discovery

import "reflect"

// Marker method names. The package markers take precedence over the
// encoding.TextMarshaler and encoding.TextUnmarshaler pair.
const (
	FormatTextMethod    = "FormatText"
	ParseTextMethod     = "ParseText"
	ScanTextMethod      = "ScanText"
	MarshalTextMethod   = "MarshalText"
	UnmarshalTextMethod = "UnmarshalText"
)

var (
	errorType = reflect.TypeFor[error]()
	bytesType = reflect.TypeFor[[]byte]()
)

// signature validates a method type taken from a method set, receiver included.
type signature struct {
	want  string
	check func(m reflect.Type, base reflect.Type) bool
}

var (
	formatTextSig = signature{
		want: "func() string",
		check: func(m, _ reflect.Type) bool {
			return m.NumIn() == 1 && m.NumOut() == 1 && m.Out(0).Kind() == reflect.String
		},
	}
	marshalTextSig = signature{
		want: "func() ([]byte, error)",
		check: func(m, _ reflect.Type) bool {
			return m.NumIn() == 1 && m.NumOut() == 2 && m.Out(0) == bytesType && m.Out(1) == errorType
		},
	}
	parseTextSig = signature{
		want: "func(string) (T, error) or func(string) (*T, error)",
		check: func(m, base reflect.Type) bool {
			if m.NumIn() != 2 || m.In(1).Kind() != reflect.String || m.NumOut() != 2 || m.Out(1) != errorType {
				return false
			}
			out := m.Out(0)
			return out == base || out == reflect.PointerTo(base)
		},
	}
	scanTextSig = signature{
		want: "func(string) error",
		check: func(m, _ reflect.Type) bool {
			return m.NumIn() == 2 && m.In(1).Kind() == reflect.String && m.NumOut() == 1 && m.Out(0) == errorType
		},
	}
	unmarshalTextSig = signature{
		want: "func([]byte) error",
		check: func(m, _ reflect.Type) bool {
			return m.NumIn() == 2 && m.In(1) == bytesType && m.NumOut() == 1 && m.Out(0) == errorType
		},
	}
)
