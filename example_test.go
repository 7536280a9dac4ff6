package textconv_test

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hengadev/textconv"
)

type Slug struct{ parts []string }

func (s Slug) FormatText() string { return strings.Join(s.parts, "-") }

func (s *Slug) ScanText(text string) error {
	if text == "" {
		return errors.New("empty slug")
	}
	s.parts = strings.Split(text, "-")
	return nil
}

func Example() {
	s, err := textconv.ToString(Slug{parts: []string{"hello", "world"}})
	if err != nil {
		panic(err)
	}
	fmt.Println(s)

	slug, err := textconv.ParseString[Slug]("a-b-c")
	if err != nil {
		panic(err)
	}
	fmt.Println(len(slug.parts))

	_, err = textconv.ParseString[Slug]("")
	fmt.Println(textconv.KindOf(err))
	// Output:
	// hello-world
	// 3
	// conversion failed
}

func ExampleRegistry_Register() {
	reg, err := textconv.New(textconv.WithoutBuiltins())
	if err != nil {
		panic(err)
	}

	upper := textconv.NewConverter(strings.ToUpper, func(s string) (string, error) { return strings.ToLower(s), nil })
	fmt.Println(textconv.Register[string](reg, upper))
	fmt.Println(errors.Is(textconv.Register[string](reg, upper), textconv.ErrDuplicateRegistration))

	s, _ := reg.ConvertToString("shout")
	fmt.Println(s)
	// Output:
	// <nil>
	// true
	// SHOUT
}
