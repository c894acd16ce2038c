/*package pontoon computes the static hydrostatic equilibrium of a rigid
assembly of rigid parts: its centre of gravity, its centre of buoyancy under
a self-consistent partial-submersion assumption, and the metacentric radius
used to judge stability.

An assembly is a tree of Components. Each node stores its own weight and
volume and its position in its parent's frame, so the aggregation routines
are weighted post-order reductions that translate each child's result into
the parent's frame on the way up.

Units are a caller contract: kg, m and m^3 throughout, with fluid densities
in kg/m^3.
*/
package pontoon

import (
	"fmt"

	"github.com/mbakken/pontoon/geom"
)

// SubmersionClass says how a component's volume contributes to displacement.
// Classification is per node and is not inherited by children.
type SubmersionClass int

const (
	// NotSubmerged components displace nothing.
	NotSubmerged SubmersionClass = iota
	// PartiallySubmerged components displace their volume scaled by the
	// solved submersion rate. Only vertical cylindrical members of the
	// reference length used in the rate solve may be classified this way;
	// the centroid correction in ComputeCB assumes that geometry.
	PartiallySubmerged
	// FullySubmerged components displace their entire volume.
	FullySubmerged
)

func (class SubmersionClass) String() string {
	switch class {
	case NotSubmerged:
		return "None"
	case PartiallySubmerged:
		return "Partial"
	case FullySubmerged:
		return "Full"
	}
	return fmt.Sprintf("SubmersionClass(%d)", int(class))
}

// Component is one rigid part of the assembly. Weight and Volume cover this
// part only, not its descendants. A Component is built once, wired into a
// tree with Attach, and never mutated during aggregation.
type Component struct {
	Description string
	Weight      float64
	Volume      float64
	Class       SubmersionClass

	position geom.Vec
	children []*Component
	attached bool
}

// NewComponent creates an unattached component. Negative weights and volumes
// are programmer errors.
func NewComponent(
	description string, weight, volume float64, class SubmersionClass,
) *Component {
	if weight < 0 {
		panic("weight must be non-negative.")
	} else if volume < 0 {
		panic("volume must be non-negative.")
	}

	return &Component{
		Description: description,
		Weight:      weight,
		Volume:      volume,
		Class:       class,
	}
}

// Attach appends child to c's children at the given position in c's frame.
// A component may be attached at most once: reusing a node under two parents
// (or under the same parent twice) would alias its subtree and is a
// programmer error.
func (c *Component) Attach(child *Component, position geom.Vec) {
	if child == c {
		panic("component attached to itself.")
	} else if child.attached {
		panic(fmt.Sprintf(
			"component %q is already attached to a parent.", child.Description,
		))
	}

	child.position = position
	child.attached = true
	c.children = append(c.children, child)
}

// Position returns the component's position in its parent's frame. The zero
// vector for an unattached root.
func (c *Component) Position() geom.Vec { return c.position }

// Children returns the component's children in attachment order. The slice
// is shared with the tree and must not be modified.
func (c *Component) Children() []*Component { return c.children }

// Tree returns a human-readable indented listing of the subtree rooted at c,
// one line per component with its position in its parent's frame. It
// reflects exactly the tree the aggregation routines walk.
func (c *Component) Tree() string {
	return c.tree("")
}

func (c *Component) tree(prefix string) string {
	pos := "(root)"
	if c.attached {
		pos = fmt.Sprintf("%v", c.position)
	}
	out := fmt.Sprintf("%s%s %s\n", prefix, c.Description, pos)
	for _, child := range c.children {
		out += child.tree(prefix + "- ")
	}
	return out
}
