package textconv

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockConverter struct {
	mock.Mock
}

func (m *mockConverter) ConvertToString(object any) (string, error) {
	args := m.Called(object)
	return args.String(0), args.Error(1)
}

func (m *mockConverter) ConvertFromString(text string) (any, error) {
	args := m.Called(text)
	return args.Get(0), args.Error(1)
}

func TestDistanceScenario(t *testing.T) {
	r := newTestRegistry(t)
	require.NoError(t, RegisterFunc(r, formatDistance, parseDistance))

	s, err := r.ConvertToString(Distance{Amount: 5, Unit: "km"})
	require.NoError(t, err)
	assert.Equal(t, "5km", s)

	d, err := FromString[Distance](r, "5km")
	require.NoError(t, err)
	assert.Equal(t, Distance{Amount: 5, Unit: "km"}, d)

	v, err := r.ConvertFromString(reflect.TypeFor[Distance](), "5km")
	require.NoError(t, err)
	assert.Equal(t, Distance{Amount: 5, Unit: "km"}, v)

	err = RegisterFunc(r, formatDistance, parseDistance)
	assert.True(t, errors.Is(err, ErrDuplicateRegistration))
}

func TestNilPropagation(t *testing.T) {
	m := &mockConverter{}
	r := newTestRegistry(t, WithConverter(reflect.TypeFor[*Distance](), m))

	var nilDistance *Distance
	var nilMap map[string]int
	var nilFunc func()
	var nilChan chan int

	for _, object := range []any{nil, nilDistance, nilMap, nilFunc, nilChan} {
		s, err := r.ConvertToString(object)
		require.NoError(t, err)
		assert.Empty(t, s)

		p, err := r.ConvertToStringPtr(object)
		require.NoError(t, err)
		assert.Nil(t, p)
	}

	d, err := FromStringPtr[*Distance](r, nil)
	require.NoError(t, err)
	assert.Nil(t, d)

	m.AssertNotCalled(t, "ConvertToString", mock.Anything)
	m.AssertNotCalled(t, "ConvertFromString", mock.Anything)
}

func TestNilSliceIsConverted(t *testing.T) {
	r := newTestRegistry(t)

	s, err := r.ConvertToString([]byte(nil))
	require.NoError(t, err)
	assert.Equal(t, "", s)

	p, err := r.ConvertToStringPtr([]byte(nil))
	require.NoError(t, err)
	require.NotNil(t, p)
}

func TestFacadeDelegatesToConverter(t *testing.T) {
	m := &mockConverter{}
	m.On("ConvertToString", Opaque{N: 1}).Return("one", nil).Once()
	m.On("ConvertFromString", "one").Return(Opaque{N: 1}, nil).Once()
	r := newTestRegistry(t)
	require.NoError(t, Register[Opaque](r, m))

	text := "one"
	s, err := r.ConvertToStringPtr(Opaque{N: 1})
	require.NoError(t, err)
	assert.Equal(t, &text, s)

	v, err := FromStringPtr[Opaque](r, &text)
	require.NoError(t, err)
	assert.Equal(t, &Opaque{N: 1}, v)

	m.AssertExpectations(t)
}

func TestConverterResultTypeIsChecked(t *testing.T) {
	m := &mockConverter{}
	m.On("ConvertFromString", "x").Return("not an opaque", nil)
	r := newTestRegistry(t)
	require.NoError(t, Register[Opaque](r, m))

	_, err := FromString[Opaque](r, "x")
	assert.True(t, errors.Is(err, ErrTypeMismatch))
	assert.True(t, IsConversionError(err))
}

func TestConverterErrorIsReturned(t *testing.T) {
	cause := errors.New("boom")
	m := &mockConverter{}
	m.On("ConvertToString", Opaque{}).Return("", cause)
	r := newTestRegistry(t)
	require.NoError(t, Register[Opaque](r, m))

	_, err := r.ConvertToString(Opaque{})
	assert.ErrorIs(t, err, cause)
}

func TestDiscoveredConversions(t *testing.T) {
	r := newTestRegistry(t)

	tests := []struct {
		name   string
		value  any
		text   string
		typ    reflect.Type
		parsed any
	}{
		{"constructor", Celsius(-3.5), "-3.5C", reflect.TypeFor[Celsius](), Celsius(-3.5)},
		{"method with default format", Tag{Name: "db"}, "tag:db", reflect.TypeFor[Tag](), Tag{Name: "db"}},
		{"package markers before encoding", Shade{Value: "red"}, "shade=red", reflect.TypeFor[Shade](), Shade{Value: "red"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := r.ConvertToString(tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.text, s)

			v, err := r.ConvertFromString(tt.typ, s)
			require.NoError(t, err)
			assert.Equal(t, tt.parsed, v)
		})
	}
}

func TestBuiltinConversions(t *testing.T) {
	r := newTestRegistry(t)

	s, err := r.ConvertToString(90 * time.Second)
	require.NoError(t, err)
	assert.Equal(t, "1m30s", s)

	n, err := FromString[int64](r, "-42")
	require.NoError(t, err)
	assert.Equal(t, int64(-42), n)

	u, err := FromString[*url.URL](r, "https://example.com/a?b=c")
	require.NoError(t, err)
	assert.Equal(t, "example.com", u.Host)

	_, err = FromString[int8](r, "300")
	assert.True(t, errors.Is(err, ErrConversionFailed))
}

func TestConfiguredTimeLayout(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TimeLayout = time.DateOnly
	r := newTestRegistry(t, WithConfig(cfg))

	s, err := r.ConvertToString(time.Date(2024, time.March, 9, 10, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, "2024-03-09", s)
}

func TestConfigurationFailuresThroughFacade(t *testing.T) {
	r := newTestRegistry(t)

	_, err := r.ConvertToString(Ambiguous{})
	assert.True(t, errors.Is(err, ErrAmbiguousDeclaration))

	_, err = FromString[Opaque](r, "1")
	assert.True(t, errors.Is(err, ErrUnconvertible))
	assert.True(t, IsConfigurationError(err))
	assert.False(t, IsConversionError(err))

	var convErr *Error
	require.True(t, errors.As(err, &convErr))
	assert.Equal(t, reflect.TypeFor[Opaque](), convErr.Type)
}

func TestMustFromString(t *testing.T) {
	r := newTestRegistry(t)

	assert.Equal(t, 7, MustFromString[int](r, "7"))
	assert.Panics(t, func() { MustFromString[int](r, "seven") })
}

func TestDefaultRegistry(t *testing.T) {
	assert.Same(t, Default(), Default())
	assert.True(t, Default().Sealed())

	err := Register[Distance](Default(), NewConverter(formatDistance, parseDistance))
	assert.True(t, errors.Is(err, ErrSealedRegistry))

	s, err := ToString(Celsius(12))
	require.NoError(t, err)
	assert.Equal(t, "12C", s)

	c, err := ParseString[Celsius]("12C")
	require.NoError(t, err)
	assert.Equal(t, Celsius(12), c)

	_, ok := Default().Lookup(reflect.TypeFor[Celsius]())
	assert.True(t, ok)
}

func ExampleFromString() {
	reg, err := New()
	if err != nil {
		panic(err)
	}
	if err := RegisterFunc(reg, formatDistance, parseDistance); err != nil {
		panic(err)
	}

	s, _ := reg.ConvertToString(Distance{Amount: 5, Unit: "km"})
	d, _ := FromString[Distance](reg, s)
	fmt.Println(s, d.Amount, d.Unit)
	// Output: 5km 5 km
}
