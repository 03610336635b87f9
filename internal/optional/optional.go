// Package optional converts between the tag store's absence sentinels
// and proper optional values.
//
// The native tag record represents "no value" with a null pointer.
// This package gives that convention a real type: a nil *T is absent,
// anything else is a present value.
package optional

// Of returns a pointer to v. It is the encode half of the codec:
// a present value becomes a non-nil pointer.
func Of[T any](v T) *T {
	return &v
}

// Clone returns an independent copy of p, preserving absence.
// Use it when a pointer crosses an ownership boundary, so the store
// and the model never alias the same value.
func Clone[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// Equal reports whether two optional values are equal. Two absent
// values are equal; absent never equals present, even present zero.
func Equal[T comparable](a, b *T) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// Get returns the value of p, or fallback when p is absent.
func Get[T any](p *T, fallback T) T {
	if p == nil {
		return fallback
	}
	return *p
}
