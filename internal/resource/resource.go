package resource

import "strings"

// Rel wraps an entity's relation with an explicit loaded state. A relation
// that was never fetched stays distinguishable from one that was fetched and
// came back empty, which drives whether the serialized key appears at all.
type Rel[T any] struct {
	value  T
	loaded bool
}

// Loaded returns a Rel holding v in the loaded state.
func Loaded[T any](v T) Rel[T] {
	return Rel[T]{value: v, loaded: true}
}

// IsLoaded reports whether the relation was fetched.
func (r Rel[T]) IsLoaded() bool {
	return r.loaded
}

// Value returns the wrapped relation value and whether it was loaded.
func (r Rel[T]) Value() (T, bool) {
	return r.value, r.loaded
}

// MustValue returns the wrapped value regardless of loaded state. The zero
// value is returned for relations that were never fetched.
func (r Rel[T]) MustValue() T {
	return r.value
}

// Includes is the set of relation names a request asked to load.
type Includes map[string]bool

// ParseIncludes splits a comma-separated include parameter into a set.
// Names are trimmed and empty segments dropped; unknown names are carried
// through and simply never match anything.
func ParseIncludes(raw string) Includes {
	inc := make(Includes)
	for _, part := range strings.Split(raw, ",") {
		name := strings.TrimSpace(part)
		if name == "" {
			continue
		}
		inc[name] = true
	}
	return inc
}

// Has reports whether the given relation name was requested.
func (i Includes) Has(name string) bool {
	return i[name]
}

// SlicePtr converts a loaded slice relation to the pointer form used by view
// structs with omitempty: nil when not loaded (key absent), a pointer to a
// non-nil slice when loaded (key present, [] when empty).
func SlicePtr[T any](r Rel[[]T]) *[]T {
	v, ok := r.Value()
	if !ok {
		return nil
	}
	if v == nil {
		v = []T{}
	}
	return &v
}
