// Package consts holds the process-wide sentinel values shared by the grid
// model. The values are immutable; nothing in the module reassigns them.
package consts

import "math"

// None marks an absent index, identifier or timestamp position.
const None = -1

// Epsilon is the tolerance used when comparing real values.
const Epsilon = 1e-9

// Infinity is the positive real infinity used for unbounded power values.
var Infinity = math.Inf(1)

// NoneReal is returned when a real value such as a snapshot is missing. It
// equals Infinity so a missing value saturates any sum it takes part in.
var NoneReal = math.Inf(1)

// IsInfinite reports whether v is at or above positive infinity.
func IsInfinite(v float64) bool { return v >= Infinity }

// IsNone reports whether v is the missing-value sentinel.
func IsNone(v float64) bool { return v == NoneReal }

// AddSaturating adds v to total with infinity propagation. The check happens
// before the addition so a finite overflow can never hide an infinite operand.
func AddSaturating(total, v float64) float64 {
	if IsInfinite(total) || IsInfinite(v) {
		return Infinity
	}
	return total + v
}

// AlmostEqual compares two reals using Epsilon.
func AlmostEqual(a, b float64) bool {
	if a == b {
		return true
	}
	return math.Abs(a-b) <= Epsilon
}
