/*package io reads design-parameter files describing a floating assembly and
assembles the component tree they define. Files are ini-style gcfg configs
with one [Design] section for the fluid and pole geometry and one
[Component "name"] subsection per rigid part.
*/
package io

import (
	"fmt"
	"sort"
	"strings"

	"gopkg.in/gcfg.v1"

	"github.com/mbakken/pontoon"
	"github.com/mbakken/pontoon/geom"
)

const ExampleDesignFile = `[Design]

#######################
# Required Parameters #
#######################

# Length in m of the vertical poles. This is the reference length over which
# the submersion rate is solved, so every component marked Partial must be a
# vertical cylinder of this length.
PoleLength = 1.0

# Radius in m of the vertical poles.
PoleRadius = 0.055

# Perpendicular distance in m from the centerline to each pole. Used by the
# metacentric radius calculation.
PoleHalfSpan = 0.35

# Number of vertical poles.
PoleCount = 4

#######################
# Optional Parameters #
#######################

# Density of the fluid in kg/m^3. Default is fresh water.
# FluidDensity = 1000

# Each [Component "name"] subsection describes one rigid part. Weight is in
# kg and Volume in m^3, covering that part only. Submerged is one of
# [ None | Partial | Full ] and defaults to None. Parent names the component
# this one is attached to; exactly one component (the root) omits it.
# X, Y and Z give the component's position in its parent's frame, with down
# being negative Z.

[Component "platform"]
Weight = 12
Volume = 0

[Component "ballast pipe port"]
Parent = platform
Weight = 14.1
Volume = 0.0095
Submerged = Full
Y = -0.25
Z = -1.0

[Component "ballast pipe starboard"]
Parent = platform
Weight = 14.1
Volume = 0.0095
Submerged = Full
Y = 0.25
Z = -1.0

[Component "pole fore port"]
Parent = platform
Weight = 0.5
Volume = 0.0095
Submerged = Partial
X = 0.35
Y = -0.25
Z = -0.5

[Component "pole fore starboard"]
Parent = platform
Weight = 0.5
Volume = 0.0095
Submerged = Partial
X = 0.35
Y = 0.25
Z = -0.5

[Component "pole aft port"]
Parent = platform
Weight = 0.5
Volume = 0.0095
Submerged = Partial
X = -0.35
Y = -0.25
Z = -0.5

[Component "pole aft starboard"]
Parent = platform
Weight = 0.5
Volume = 0.0095
Submerged = Partial
X = -0.35
Y = 0.25
Z = -0.5

[Component "battery"]
Parent = platform
Weight = 7.5
Volume = 0`

// DesignConfig holds the fluid and pole-geometry parameters of a design.
type DesignConfig struct {
	FluidDensity float64
	PoleLength   float64
	PoleRadius   float64
	PoleHalfSpan float64
	PoleCount    int
}

// ComponentConfig describes one rigid part of the assembly. X, Y and Z give
// the part's position in its parent's frame.
type ComponentConfig struct {
	Weight    float64
	Volume    float64
	Submerged string
	Parent    string
	X, Y, Z   float64
}

// DesignWrapper is the top-level layout of a design file.
type DesignWrapper struct {
	Design    DesignConfig
	Component map[string]*ComponentConfig
}

// DefaultDesignWrapper returns a wrapper with the optional parameters set to
// their defaults.
func DefaultDesignWrapper() *DesignWrapper {
	return &DesignWrapper{
		Design: DesignConfig{FluidDensity: 1000},
	}
}

func (con *DesignConfig) CheckInit() error {
	if con.FluidDensity <= 0 {
		return fmt.Errorf(
			"FluidDensity must be positive, but is %g.", con.FluidDensity,
		)
	} else if con.PoleLength <= 0 {
		return fmt.Errorf(
			"PoleLength must be positive, but is %g.", con.PoleLength,
		)
	} else if con.PoleRadius <= 0 {
		return fmt.Errorf(
			"PoleRadius must be positive, but is %g.", con.PoleRadius,
		)
	} else if con.PoleHalfSpan < 0 {
		return fmt.Errorf(
			"PoleHalfSpan must be non-negative, but is %g.", con.PoleHalfSpan,
		)
	} else if con.PoleCount <= 0 {
		return fmt.Errorf(
			"PoleCount must be positive, but is %d.", con.PoleCount,
		)
	}
	return nil
}

func (con *ComponentConfig) CheckInit(name string) error {
	if con.Weight < 0 {
		return fmt.Errorf(
			"Weight of Component '%s' must be non-negative, but is %g.",
			name, con.Weight,
		)
	} else if con.Volume < 0 {
		return fmt.Errorf(
			"Volume of Component '%s' must be non-negative, but is %g.",
			name, con.Volume,
		)
	}

	if _, err := con.SubmersionClass(); err != nil {
		return err
	}
	return nil
}

// SubmersionClass parses the Submerged field. An empty field means None.
func (con *ComponentConfig) SubmersionClass() (pontoon.SubmersionClass, error) {
	switch strings.Trim(strings.ToLower(con.Submerged), " ") {
	case "", "none":
		return pontoon.NotSubmerged, nil
	case "partial":
		return pontoon.PartiallySubmerged, nil
	case "full":
		return pontoon.FullySubmerged, nil
	}
	return pontoon.NotSubmerged, fmt.Errorf(
		"Submerged must be one of [ None | Partial | Full ]. '%s' is not "+
			"recognized.", con.Submerged,
	)
}

// ReadDesignFile reads a design file and assembles the component tree it
// describes.
func ReadDesignFile(fname string) (*DesignConfig, *pontoon.Component, error) {
	wrap := DefaultDesignWrapper()
	if err := gcfg.ReadFileInto(wrap, fname); err != nil {
		return nil, nil, err
	}
	return buildDesign(wrap)
}

// ReadDesignString is ReadDesignFile for an in-memory design file.
func ReadDesignString(s string) (*DesignConfig, *pontoon.Component, error) {
	wrap := DefaultDesignWrapper()
	if err := gcfg.ReadStringInto(wrap, s); err != nil {
		return nil, nil, err
	}
	return buildDesign(wrap)
}

func buildDesign(
	wrap *DesignWrapper,
) (*DesignConfig, *pontoon.Component, error) {

	if err := wrap.Design.CheckInit(); err != nil {
		return nil, nil, err
	}
	root, err := buildTree(wrap.Component)
	if err != nil {
		return nil, nil, err
	}
	return &wrap.Design, root, nil
}

// buildTree wires the configured components into a tree. Components are
// created and attached in name order so repeated reads of the same file
// produce identical tree dumps.
func buildTree(
	cons map[string]*ComponentConfig,
) (*pontoon.Component, error) {

	if len(cons) == 0 {
		return nil, fmt.Errorf("No Component sections given.")
	}

	names := make([]string, 0, len(cons))
	for name := range cons {
		names = append(names, name)
	}
	sort.Strings(names)

	nodes := make(map[string]*pontoon.Component)
	children := make(map[string][]string)
	rootName := ""

	for _, name := range names {
		con := cons[name]
		if err := con.CheckInit(name); err != nil {
			return nil, err
		}

		class, _ := con.SubmersionClass()
		nodes[name] = pontoon.NewComponent(name, con.Weight, con.Volume, class)

		if con.Parent == "" {
			if rootName != "" {
				return nil, fmt.Errorf(
					"Both '%s' and '%s' have no Parent. Exactly one root "+
						"Component is allowed.", rootName, name,
				)
			}
			rootName = name
			continue
		}
		if _, ok := cons[con.Parent]; !ok {
			return nil, fmt.Errorf(
				"Parent '%s' of Component '%s' does not exist.",
				con.Parent, name,
			)
		}
		children[con.Parent] = append(children[con.Parent], name)
	}

	if rootName == "" {
		return nil, fmt.Errorf(
			"No root Component given. Exactly one Component must have " +
				"no Parent.",
		)
	}

	attached := attach(nodes, children, cons, rootName)
	if attached != len(cons) {
		return nil, fmt.Errorf(
			"%d Components cannot be reached from the root '%s'. Check "+
				"their Parent entries for cycles.",
			len(cons)-attached, rootName,
		)
	}

	return nodes[rootName], nil
}

func attach(
	nodes map[string]*pontoon.Component,
	children map[string][]string,
	cons map[string]*ComponentConfig,
	name string,
) int {

	count := 1
	for _, childName := range children[name] {
		con := cons[childName]
		nodes[name].Attach(
			nodes[childName], geom.Vec{con.X, con.Y, con.Z},
		)
		count += attach(nodes, children, cons, childName)
	}
	return count
}
