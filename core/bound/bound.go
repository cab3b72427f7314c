// Package bound provides the closed interval value type used for power,
// voltage and angle limits.
package bound

import (
	"cmp"
	"fmt"
)

// MismatchError is returned when a bound would end up with minimum > maximum.
type MismatchError struct {
	Minimum any
	Maximum any
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("bound mismatch: minimum %v is greater than maximum %v", e.Minimum, e.Maximum)
}

// Bound is the closed interval [Minimum, Maximum]. The zero value is [0,0].
// Equality is structural, so two bounds can be compared with ==.
type Bound[T cmp.Ordered] struct {
	min T
	max T
}

// New builds a bound and validates min <= max.
func New[T cmp.Ordered](min, max T) (Bound[T], error) {
	if min > max {
		return Bound[T]{}, &MismatchError{Minimum: min, Maximum: max}
	}
	return Bound[T]{min: min, max: max}, nil
}

// Must is like New but panics on a mismatch. It is meant for literals.
func Must[T cmp.Ordered](min, max T) Bound[T] {
	b, err := New(min, max)
	if err != nil {
		panic(err)
	}
	return b
}

// Exact returns the degenerate bound [v,v].
func Exact[T cmp.Ordered](v T) Bound[T] { return Bound[T]{min: v, max: v} }

// Minimum returns the lower end.
func (b Bound[T]) Minimum() T { return b.min }

// Maximum returns the upper end.
func (b Bound[T]) Maximum() T { return b.max }

// SetMinimum replaces the lower end.
func (b *Bound[T]) SetMinimum(v T) error {
	if v > b.max {
		return &MismatchError{Minimum: v, Maximum: b.max}
	}
	b.min = v
	return nil
}

// SetMaximum replaces the upper end.
func (b *Bound[T]) SetMaximum(v T) error {
	if b.min > v {
		return &MismatchError{Minimum: b.min, Maximum: v}
	}
	b.max = v
	return nil
}

// Range replaces both ends atomically. On error the bound is unchanged.
func (b *Bound[T]) Range(min, max T) error {
	if min > max {
		return &MismatchError{Minimum: min, Maximum: max}
	}
	b.min, b.max = min, max
	return nil
}

// Contains reports whether v lies inside the interval.
func (b Bound[T]) Contains(v T) bool { return b.min <= v && v <= b.max }

// Equal reports field-wise equality.
func (b Bound[T]) Equal(o Bound[T]) bool { return b.min == o.min && b.max == o.max }

func (b Bound[T]) String() string { return fmt.Sprintf("[%v, %v]", b.min, b.max) }
