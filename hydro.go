package pontoon

import (
	"errors"
	"fmt"

	"github.com/mbakken/pontoon/geom"
)

var (
	// ErrInvalidConfig reports a degenerate assembly: zero total weight in a
	// CG query, or an equilibrium solve with no partially submerged volume
	// to balance against.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrInfeasibleEquilibrium flags a solved submersion rate outside
	// [0, 1]. The arithmetic is well defined, but no waterline through the
	// partial members can actually balance the design.
	ErrInfeasibleEquilibrium = errors.New("infeasible equilibrium")
)

// reduce runs a weighted post-order reduction over the subtree rooted at c.
// scalar gives each node's own contribution and offset gives the position of
// that contribution in the node's own frame. Each child's moment is
// translated into the parent's frame by adding position*subtotal, so the
// returned moment is expressed in c's frame.
func (c *Component) reduce(
	scalar func(*Component) float64, offset func(*Component) geom.Vec,
) (total float64, moment geom.Vec) {

	total = scalar(c)
	moment = offset(c).Scale(total)

	for _, child := range c.children {
		subtotal, subMoment := child.reduce(scalar, offset)
		total += subtotal
		moment = moment.Add(subMoment).Add(child.position.Scale(subtotal))
	}

	return total, moment
}

// ComputeCG returns the centre of gravity of the subtree rooted at c,
// expressed in c's own frame, together with the subtree's total weight.
// A subtree with zero total weight has no centre of gravity and yields
// ErrInvalidConfig.
func ComputeCG(c *Component) (geom.Vec, float64, error) {
	weight, moment := c.reduce(
		func(c *Component) float64 { return c.Weight },
		func(*Component) geom.Vec { return geom.Vec{} },
	)

	if weight == 0 {
		return geom.Vec{}, 0, fmt.Errorf(
			"%w: subtree %q has zero total weight",
			ErrInvalidConfig, c.Description,
		)
	}

	return moment.Scale(1 / weight), weight, nil
}

// displacedVolume sums the volume of every fully submerged node in the
// subtree rooted at c and collects references to the partially submerged
// ones. Classification is per node: a dry ancestor does not exclude its
// children from either result.
func displacedVolume(c *Component) (full float64, partial []*Component) {
	for _, child := range c.children {
		childFull, childPartial := displacedVolume(child)
		full += childFull
		partial = append(partial, childPartial...)
	}

	switch c.Class {
	case FullySubmerged:
		full += c.Volume
	case PartiallySubmerged:
		partial = append(partial, c)
	}

	return full, partial
}

// SolveRate returns the fractional submersion, common to every partially
// submerged member, at which buoyancy balances weight:
//
//	fluidDensity * (fullVolume + rate*partialVolume) = totalWeight
//
// A single waterline is assumed to cut uniformly through all partial
// members, so the unknown is one scalar. If the solution falls outside
// [0, 1] it is returned together with ErrInfeasibleEquilibrium rather than
// clamped: the value is valid arithmetic, the error is the flag.
func SolveRate(root *Component, fluidDensity float64) (float64, error) {
	_, weight, err := ComputeCG(root)
	if err != nil {
		return 0, err
	}

	full, partial := displacedVolume(root)
	partialVolume := 0.0
	for _, p := range partial {
		partialVolume += p.Volume
	}

	if partialVolume == 0 {
		return 0, fmt.Errorf(
			"%w: no partially submerged volume to balance %g kg against",
			ErrInvalidConfig, weight,
		)
	}

	rate := (weight/fluidDensity - full) / partialVolume
	if rate < 0 || rate > 1 {
		return rate, fmt.Errorf(
			"%w: solved submersion rate %g is outside [0, 1]",
			ErrInfeasibleEquilibrium, rate,
		)
	}

	return rate, nil
}

// Equilibrium is the solved flotation state of an assembly.
type Equilibrium struct {
	// CB is the centre of buoyancy in the root's frame.
	CB geom.Vec
	// DisplacedVolume is the total displaced volume in m^3.
	DisplacedVolume float64
	// Depth is the submerged length of the partial members, rate*scale.
	Depth float64
	// Rate is the solved fractional submersion of the partial members.
	Rate float64
}

// ComputeCB solves the submersion rate for the assembly rooted at root and
// returns its equilibrium. scale is the physical length of the partially
// submerged members, used to turn the fractional rate into a depth.
//
// Partially submerged members are treated as vertical cylinders of length
// scale with only their bottom Depth submerged, which shifts their effective
// displacement centroid below their nominal centre by (scale-Depth)/2.
//
// If the solved rate is outside [0, 1], the returned equilibrium is still
// fully populated and the error wraps ErrInfeasibleEquilibrium so the caller
// can recognize a design that cannot actually float at that waterline.
func ComputeCB(
	root *Component, scale, fluidDensity float64,
) (*Equilibrium, error) {

	rate, err := SolveRate(root, fluidDensity)
	if err != nil && !errors.Is(err, ErrInfeasibleEquilibrium) {
		return nil, err
	}
	depth := rate * scale

	volume, moment := root.reduce(
		func(c *Component) float64 {
			switch c.Class {
			case FullySubmerged:
				return c.Volume
			case PartiallySubmerged:
				return c.Volume * rate
			}
			return 0
		},
		func(c *Component) geom.Vec {
			if c.Class != PartiallySubmerged {
				return geom.Vec{}
			}
			// The exposed top of the member pulls the submerged centroid
			// down toward the waterline.
			return geom.Vec{0, 0, -(scale - depth) / 2}
		},
	)

	if volume == 0 {
		return nil, fmt.Errorf(
			"%w: assembly displaces no volume", ErrInvalidConfig,
		)
	}

	eq := &Equilibrium{
		CB:              moment.Scale(1 / volume),
		DisplacedVolume: volume,
		Depth:           depth,
		Rate:            rate,
	}

	// err is nil or the infeasibility flag from SolveRate.
	return eq, err
}
