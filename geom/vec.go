/*package geom contains the small amount of vector arithmetic needed by the
hydrostatics routines.

Vectors have value semantics: every operation returns a new Vec and never
writes through to its operands, so a component's stored position can never
alias a computation's scratch values.
*/
package geom

import (
	"math"
)

// Vec is a three dimensional vector.
type Vec [3]float64

// Add returns the element-wise sum of v and u.
func (v Vec) Add(u Vec) Vec {
	return Vec{v[0] + u[0], v[1] + u[1], v[2] + u[2]}
}

// Sub returns the element-wise difference of v and u.
func (v Vec) Sub(u Vec) Vec {
	return Vec{v[0] - u[0], v[1] - u[1], v[2] - u[2]}
}

// Scale returns v multiplied by the scalar s.
func (v Vec) Scale(s float64) Vec {
	return Vec{v[0] * s, v[1] * s, v[2] * s}
}

// Len returns the Euclidean length of v.
func (v Vec) Len() float64 {
	return math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
}
