package pontoon

import (
	"math"
)

// CylinderVolume returns the displacement volume of a solid cylinder.
func CylinderVolume(r, length float64) float64 {
	return math.Pi * r * r * length
}

// PipeWallMass returns the mass of an annular pipe wall with the given outer
// radius, wall thickness and material density.
func PipeWallMass(outerR, wall, length, density float64) float64 {
	innerR := outerR - wall
	return (CylinderVolume(outerR, length) -
		CylinderVolume(innerR, length)) * density
}

// Sizing summarizes the buoyancy budget of a pipe frame made of horizontal
// ballast pipes and vertical poles. The pipes themselves are treated as
// weightless; ballast fills the horizontal pipes.
type Sizing struct {
	// TotalVolume is the displacement of every pipe in m^3.
	TotalVolume float64
	// SubmergedVolume is the displacement at the target submersion rate.
	SubmergedVolume float64
	// BallastMass is the mass of ballast filling the horizontal pipes.
	BallastMass float64
	// NetFull is the net lift in kg with every pipe submerged, less ballast.
	NetFull float64
	// NetPartial is the net lift in kg at the target rate, less ballast.
	NetPartial float64
}

// SizePipeFrame computes the buoyancy budget of a frame with lowerCount
// horizontal pipes of radius lowerR and length lowerLength, and poleCount
// vertical poles of radius poleR and length poleLength submerged to
// targetRate. ballastDensity is the density of the ballast filling the
// horizontal pipes.
func SizePipeFrame(
	lowerR, poleR, lowerLength, poleLength float64,
	lowerCount, poleCount int,
	targetRate, fluidDensity, ballastDensity float64,
) Sizing {

	lowerVolume := float64(lowerCount) * CylinderVolume(lowerR, lowerLength)
	poleVolume := float64(poleCount) * CylinderVolume(poleR, poleLength)

	total := lowerVolume + poleVolume
	submerged := lowerVolume + poleVolume*targetRate
	ballast := lowerVolume * ballastDensity

	return Sizing{
		TotalVolume:     total,
		SubmergedVolume: submerged,
		BallastMass:     ballast,
		NetFull:         total*fluidDensity - ballast,
		NetPartial:      submerged*fluidDensity - ballast,
	}
}
