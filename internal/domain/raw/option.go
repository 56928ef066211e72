package raw

// Option holds a value that may be absent.
type Option[T any] struct {
	value T
	ok    bool
}

// Some wraps a present value.
func Some[T any](v T) Option[T] { return Option[T]{value: v, ok: true} }

// None returns an absent value.
func None[T any]() Option[T] { return Option[T]{} }

// Get returns the value and whether it is present.
func (o Option[T]) Get() (T, bool) { return o.value, o.ok }

// IsSome reports whether the value is present.
func (o Option[T]) IsSome() bool { return o.ok }

// OrElse returns the value, or def when absent.
func (o Option[T]) OrElse(def T) T {
	if o.ok {
		return o.value
	}
	return def
}

// FirstDefined tries accessors in order and returns the first present result.
func FirstDefined[T any](accessors ...func() Option[T]) Option[T] {
	for _, get := range accessors {
		if get == nil {
			continue
		}
		if v := get(); v.ok {
			return v
		}
	}
	return None[T]()
}
