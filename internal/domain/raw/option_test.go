package raw

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOption(t *testing.T) {
	s := Some("x")
	v, ok := s.Get()
	assert.True(t, ok)
	assert.Equal(t, "x", v)
	assert.Equal(t, "x", s.OrElse("def"))

	n := None[string]()
	assert.False(t, n.IsSome())
	assert.Equal(t, "def", n.OrElse("def"))
}

func TestFirstDefined_Order(t *testing.T) {
	var calls []string
	acc := func(name string, o Option[string]) func() Option[string] {
		return func() Option[string] {
			calls = append(calls, name)
			return o
		}
	}

	got := FirstDefined(
		acc("a", None[string]()),
		acc("b", Some("B")),
		acc("c", Some("C")),
	)

	assert.Equal(t, "B", got.OrElse(""))
	assert.Equal(t, []string{"a", "b"}, calls, "accessors after the first hit must not run")
}

func TestFirstDefined_NoneMatch(t *testing.T) {
	got := FirstDefined(
		func() Option[int] { return None[int]() },
		nil,
	)
	assert.False(t, got.IsSome())
	assert.False(t, FirstDefined[int]().IsSome())
}

func TestFirstDefined_EmptyStringCounts(t *testing.T) {
	got := FirstDefined(
		func() Option[string] { return Some("") },
		func() Option[string] { return Some("later") },
	)
	v, ok := got.Get()
	assert.True(t, ok)
	assert.Equal(t, "", v)
}
