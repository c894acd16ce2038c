package pontoon

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mbakken/pontoon/geom"
)

// testPlatform builds a small platform with a known equilibrium: total
// weight 26.5 kg, 0.015 m^3 fully submerged, 0.016 m^3 of partial poles.
func testPlatform() *Component {
	root := NewComponent("platform", 20, 0, NotSubmerged)

	ballast := NewComponent("ballast", 0.5, 0.015, FullySubmerged)
	battery := NewComponent("battery", 5, 0, NotSubmerged)
	poleA := NewComponent("pole a", 0.5, 0.008, PartiallySubmerged)
	poleB := NewComponent("pole b", 0.5, 0.008, PartiallySubmerged)

	root.Attach(ballast, geom.Vec{0, 0, -1})
	root.Attach(battery, geom.Vec{0, 0.1, 0})
	root.Attach(poleA, geom.Vec{0.3, 0, -0.5})
	root.Attach(poleB, geom.Vec{-0.3, 0, -0.5})

	return root
}

func TestSingleNodeCG(t *testing.T) {
	c := NewComponent("lone", 3.5, 0.01, FullySubmerged)

	cg, weight, err := ComputeCG(c)
	assert.NoError(t, err)
	assert.Equal(t, geom.Vec{}, cg, "CG at own origin")
	assert.Equal(t, 3.5, weight, "own weight only")
}

func TestWeightedAverageCG(t *testing.T) {
	root := NewComponent("frame", 0, 0, NotSubmerged)
	root.Attach(NewComponent("light", 1, 0, NotSubmerged), geom.Vec{0, 0, 0})
	root.Attach(NewComponent("heavy", 3, 0, NotSubmerged), geom.Vec{0, 0, -4})

	cg, weight, err := ComputeCG(root)
	assert.NoError(t, err)
	assert.Equal(t, 4.0, weight)
	assert.Equal(t, geom.Vec{0, 0, -3}, cg, "(1*0 + 3*-4)/4")
}

func TestNestedFrameCG(t *testing.T) {
	// A grandchild's moment is translated through both frames.
	root := NewComponent("root", 1, 0, NotSubmerged)
	arm := NewComponent("arm", 1, 0, NotSubmerged)
	tip := NewComponent("tip", 2, 0, NotSubmerged)

	root.Attach(arm, geom.Vec{1, 0, 0})
	arm.Attach(tip, geom.Vec{1, 0, 0})

	cg, weight, err := ComputeCG(root)
	assert.NoError(t, err)
	assert.Equal(t, 4.0, weight)
	// Moments: root 0, arm 1 at x=1, tip 2 at x=2.
	assert.Equal(t, geom.Vec{1.25, 0, 0}, cg)
}

func TestZeroWeightInvalid(t *testing.T) {
	root := NewComponent("ghost", 0, 0.5, FullySubmerged)

	_, _, err := ComputeCG(root)
	assert.True(t, errors.Is(err, ErrInvalidConfig), "zero total weight")
}

func TestChildOrderInvariance(t *testing.T) {
	forward := testPlatform()

	reversed := NewComponent("platform", 20, 0, NotSubmerged)
	poleB := NewComponent("pole b", 0.5, 0.008, PartiallySubmerged)
	poleA := NewComponent("pole a", 0.5, 0.008, PartiallySubmerged)
	battery := NewComponent("battery", 5, 0, NotSubmerged)
	ballast := NewComponent("ballast", 0.5, 0.015, FullySubmerged)
	reversed.Attach(poleB, geom.Vec{-0.3, 0, -0.5})
	reversed.Attach(poleA, geom.Vec{0.3, 0, -0.5})
	reversed.Attach(battery, geom.Vec{0, 0.1, 0})
	reversed.Attach(ballast, geom.Vec{0, 0, -1})

	cgF, weightF, err := ComputeCG(forward)
	assert.NoError(t, err)
	cgR, weightR, err := ComputeCG(reversed)
	assert.NoError(t, err)
	assert.Equal(t, weightF, weightR, "weight order invariance")
	for dim := 0; dim < 3; dim++ {
		assert.InDelta(t, cgF[dim], cgR[dim], 1e-15, "CG order invariance")
	}

	eqF, err := ComputeCB(forward, 1, 1000)
	assert.NoError(t, err)
	eqR, err := ComputeCB(reversed, 1, 1000)
	assert.NoError(t, err)
	assert.InDelta(t, eqF.Rate, eqR.Rate, 1e-15, "rate order invariance")
	for dim := 0; dim < 3; dim++ {
		assert.InDelta(
			t, eqF.CB[dim], eqR.CB[dim], 1e-15, "CB order invariance",
		)
	}
}

func TestEquilibriumClosure(t *testing.T) {
	root := testPlatform()
	fluidDensity := 1000.0

	rate, err := SolveRate(root, fluidDensity)
	assert.NoError(t, err)
	assert.InDelta(t, 0.71875, rate, 1e-12)

	_, weight, err := ComputeCG(root)
	assert.NoError(t, err)

	// Buoyancy at the solved rate balances the weight.
	displaced := 0.015 + rate*0.016
	assert.InDelta(t, weight, fluidDensity*displaced, 1e-9, "closure")

	eq, err := ComputeCB(root, 1, fluidDensity)
	assert.NoError(t, err)
	assert.InDelta(t, weight, fluidDensity*eq.DisplacedVolume, 1e-9)
	assert.InDelta(t, rate, eq.Depth, 1e-15, "depth = rate*scale at scale 1")
}

func TestRateMonotonicity(t *testing.T) {
	base := testPlatform()
	baseRate, err := SolveRate(base, 1000)
	assert.NoError(t, err)

	heavier := testPlatform()
	heavier.Attach(
		NewComponent("extra", 2, 0, NotSubmerged), geom.Vec{},
	)
	heavierRate, err := SolveRate(heavier, 1000)
	assert.NoError(t, err)
	assert.Greater(t, heavierRate, baseRate, "more weight sits deeper")

	brackish := testPlatform()
	brackishRate, err := SolveRate(brackish, 900)
	assert.NoError(t, err)
	assert.Greater(t, brackishRate, baseRate, "lighter fluid sits deeper")
}

func TestNoPartialVolumeInvalid(t *testing.T) {
	root := NewComponent("brick", 10, 0.001, FullySubmerged)

	_, err := SolveRate(root, 1000)
	assert.True(t, errors.Is(err, ErrInvalidConfig), "nothing to solve over")
}

func TestInfeasibleRateSurfaced(t *testing.T) {
	sinker := NewComponent("sinker", 100, 0, NotSubmerged)
	sinker.Attach(
		NewComponent("pole", 0.5, 0.01, PartiallySubmerged),
		geom.Vec{0, 0, -0.5},
	)

	rate, err := SolveRate(sinker, 1000)
	assert.True(t, errors.Is(err, ErrInfeasibleEquilibrium), "rate > 1")
	assert.InDelta(t, 10.05, rate, 1e-12, "never clamped")

	// The combined entry point still hands back the full equilibrium.
	eq, err := ComputeCB(sinker, 1, 1000)
	assert.True(t, errors.Is(err, ErrInfeasibleEquilibrium))
	assert.NotNil(t, eq)
	assert.InDelta(t, 10.05, eq.Rate, 1e-12)

	floater := NewComponent("floater", 1, 0, NotSubmerged)
	floater.Attach(
		NewComponent("tank", 0, 0.01, FullySubmerged), geom.Vec{0, 0, -1},
	)
	floater.Attach(
		NewComponent("pole", 0, 0.005, PartiallySubmerged),
		geom.Vec{0, 0, -0.5},
	)

	rate, err = SolveRate(floater, 1000)
	assert.True(t, errors.Is(err, ErrInfeasibleEquilibrium), "rate < 0")
	assert.InDelta(t, -1.8, rate, 1e-12)
}

func TestPartialOffsetSign(t *testing.T) {
	root := NewComponent("deck", 5, 0, NotSubmerged)
	root.Attach(
		NewComponent("pole", 0.1, 0.01, PartiallySubmerged),
		geom.Vec{0, 0, -0.5},
	)

	eq, err := ComputeCB(root, 1, 1000)
	assert.NoError(t, err)
	assert.InDelta(t, 0.51, eq.Rate, 1e-12)
	// Centroid of the submerged slice: 0.5 below the nominal centre plus
	// the (1-0.51)/2 offset toward the waterline.
	assert.InDelta(t, -0.745, eq.CB[2], 1e-12)
	assert.Less(t, eq.CB[2], -0.5, "centroid below the nominal centre")
}

func TestDryMemberSubmergedChildren(t *testing.T) {
	root := NewComponent("frame", 10, 0, NotSubmerged)
	housing := NewComponent("housing", 0, 0.5, NotSubmerged)
	thruster := NewComponent("thruster", 0, 0.01, FullySubmerged)
	pole := NewComponent("pole", 0, 0.01, PartiallySubmerged)

	root.Attach(housing, geom.Vec{0, 0, -0.8})
	housing.Attach(thruster, geom.Vec{0, 0, -0.2})
	root.Attach(pole, geom.Vec{0, 0, -0.5})

	// The dry housing displaces nothing, but its thruster does: the frame
	// floats on the thruster alone and the poles stay at the waterline.
	eq, err := ComputeCB(root, 1, 1000)
	assert.NoError(t, err)
	assert.InDelta(t, 0, eq.Rate, 1e-12)
	assert.InDelta(t, 0.01, eq.DisplacedVolume, 1e-15)
	assert.InDelta(t, -1, eq.CB[2], 1e-12, "CB at the thruster")
}
