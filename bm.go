package pontoon

import (
	"math"

	"github.com/mbakken/pontoon/geom"
)

// MetacentricRadius returns BM = I/V as a vertical-axis vector, where I is
// the second moment of the waterplane area contributed by members identical
// circular vertical members of radius r, each a perpendicular distance
// halfSpan from the centreline. Each member contributes its own second
// moment pi/4*r^4 plus the parallel-axis term pi*r^2*halfSpan^2.
//
// Stability requires BM to raise the effective buoyancy reference above CG
// by at least the CG-CB separation.
func MetacentricRadius(
	r, halfSpan, displacedVolume float64, members int,
) geom.Vec {

	r2 := r * r
	inertia := float64(members) *
		(math.Pi/4*r2*r2 + math.Pi*r2*halfSpan*halfSpan)
	return geom.Vec{0, 0, inertia / displacedVolume}
}

// SubmersionDepth returns how deep the vertical poles must sit for buoyancy
// to carry mass. volumeOffset is displaced volume provided by members that
// are always fully submerged, and heightOffset is draft those members have
// already accounted for.
func SubmersionDepth(
	mass, poleRadius, volumeOffset, heightOffset, fluidDensity float64,
	poleCount int,
) float64 {

	crossSection := float64(poleCount) * math.Pi * poleRadius * poleRadius
	return heightOffset + (mass/fluidDensity-volumeOffset)/crossSection
}
