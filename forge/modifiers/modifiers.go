// Package modifiers models the host modifier stack as data: each modifier is
// a config record attached to an object by name, and an Applier (the host's
// solidify/remesh/boolean engine) executes them. The generator never owns the
// geometry kernels, only their configuration.
package modifiers

import (
	"github.com/ruakij/shellforge/forge/mesh"
)

// Kind discriminates modifier config records.
type Kind uint8

const (
	KindSolidify Kind = iota
	KindRemesh
	KindBoolean
)

func (k Kind) String() string {
	switch k {
	case KindSolidify:
		return "SOLIDIFY"
	case KindRemesh:
		return "REMESH"
	case KindBoolean:
		return "BOOLEAN"
	}
	return "UNKNOWN"
}

// BooleanOp is the set operation a boolean modifier performs.
type BooleanOp uint8

const (
	OpDifference BooleanOp = iota
	OpUnion
	OpIntersect
)

func (op BooleanOp) String() string {
	switch op {
	case OpUnion:
		return "UNION"
	case OpIntersect:
		return "INTERSECT"
	}
	return "DIFFERENCE"
}

// Solver selects the host boolean solver.
type Solver uint8

const (
	SolverExact Solver = iota
	SolverFast
)

func (s Solver) String() string {
	if s == SolverFast {
		return "FAST"
	}
	return "EXACT"
}

// Solidify extrudes a surface along its normals by a thickness.
type Solidify struct {
	Thickness     float32
	Offset        float32
	UseRim        bool
	UseEvenOffset bool
}

// Remesh re-tessellates on a uniform voxel grid.
type Remesh struct {
	VoxelSize float32
}

// Boolean combines the object with a target via a set operation.
type Boolean struct {
	Operation BooleanOp
	Solver    Solver
	UseSelf   bool
	Target    *mesh.Mesh
}

// Modifier is one named entry in an object's stack.
type Modifier struct {
	Name     string
	Kind     Kind
	Solidify *Solidify
	Remesh   *Remesh
	Boolean  *Boolean
}

// Stack is the ordered modifier list attached to one object.
type Stack struct {
	Object    *mesh.Mesh
	Modifiers []*Modifier
}

func NewStack(obj *mesh.Mesh) *Stack {
	return &Stack{Object: obj}
}

// AddSolidify appends a solidify modifier configured like the historical
// setup helper: offset direction defaults are supplied by the caller.
func (s *Stack) AddSolidify(name string, cfg Solidify) *Modifier {
	m := &Modifier{Name: name, Kind: KindSolidify, Solidify: &cfg}
	s.Modifiers = append(s.Modifiers, m)
	return m
}

// AddRemesh appends a voxel-mode remesh modifier.
func (s *Stack) AddRemesh(name string, cfg Remesh) *Modifier {
	m := &Modifier{Name: name, Kind: KindRemesh, Remesh: &cfg}
	s.Modifiers = append(s.Modifiers, m)
	return m
}

// AddBoolean appends a boolean modifier. UseSelf is always enabled, matching
// the generator's historical configuration for robustness on messy input.
func (s *Stack) AddBoolean(name string, cfg Boolean) *Modifier {
	cfg.UseSelf = true
	m := &Modifier{Name: name, Kind: KindBoolean, Boolean: &cfg}
	s.Modifiers = append(s.Modifiers, m)
	return m
}

// Applier executes modifier stacks. The host 3D application supplies the real
// implementation; Recorder stands in for dry runs and tests.
type Applier interface {
	// Apply executes every modifier in the stack against its object and
	// collapses the stack, or records it when the applier keeps modifiers
	// visible for debugging.
	Apply(stack *Stack) error
}
