package index

// Override is an optional parameter. The zero value is unset, which keeps
// "explicitly zero" distinct from "not given".
type Override[T any] struct {
	value T
	set   bool
}

// Set returns an Override holding v.
func Set[T any](v T) Override[T] {
	return Override[T]{value: v, set: true}
}

// Get returns the value and whether it was set.
func (o Override[T]) Get() (T, bool) {
	return o.value, o.set
}

// Or returns the value, or def when unset.
func (o Override[T]) Or(def T) T {
	if o.set {
		return o.value
	}
	return def
}

// resolve applies explicit > table > neutral.
func resolve[T any](explicit Override[T], table func() (T, bool), neutral T) T {
	if v, ok := explicit.Get(); ok {
		return v
	}
	if table != nil {
		if v, ok := table(); ok {
			return v
		}
	}
	return neutral
}
