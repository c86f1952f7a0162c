package pipeline

import (
	"github.com/ruakij/shellforge/forge/core"
	"github.com/ruakij/shellforge/forge/mesh"
	"github.com/ruakij/shellforge/forge/modifiers"
	"github.com/ruakij/shellforge/forge/units"
)

// Context is the shared mutable state the stages work on. A fresh one is
// built per run; stages read inputs from it and leave their outputs on it.
type Context struct {
	Params Params
	Units  units.Settings

	// Source is the active object the shell is generated around.
	Source *mesh.Mesh
	// Selected are all selected mesh objects, used for proxy building.
	Selected []*mesh.Mesh

	// Applier executes modifier stacks. The host engine in production, a
	// Recorder in dry runs.
	Applier modifiers.Applier

	// Errors collects leveled messages across stages.
	Errors *core.ErrorHandler

	// Values converted to generator units on start.
	OffsetGU    float32
	ThicknessGU float32
	// VoxelSize in display units (for reporting), VoxelSizeGU in generator units.
	VoxelSize   float32
	VoxelSizeGU float32

	// Objects created along the way.
	Mold   *mesh.Mesh
	Shell  *mesh.Mesh
	Cutter *mesh.Mesh
	Proxy  *mesh.Mesh

	objectIDs []uint32
}

// NewContext wires up a run context. Selected may be nil when only the active
// object participates.
func NewContext(source *mesh.Mesh, selected []*mesh.Mesh, params Params, u units.Settings, applier modifiers.Applier) *Context {
	return &Context{
		Params:   params,
		Units:    u,
		Source:   source,
		Selected: selected,
		Applier:  applier,
		Errors:   core.NewErrorHandler(),
	}
}

// track registers a created object with the identifier system so slots can be
// released on teardown.
func (c *Context) track(owner *mesh.Mesh) {
	c.objectIDs = append(c.objectIDs, core.IdentifierAcquireNewID(owner))
}

// release frees all identifier slots acquired during the run.
func (c *Context) release() {
	for _, id := range c.objectIDs {
		if err := core.IdentifierReleaseID(id); err != nil {
			core.LogWarn("%s", err)
		}
	}
	c.objectIDs = nil
}

// solver picks the boolean solver from the fast-mode toggle.
func (c *Context) solver() modifiers.Solver {
	if c.Params.FastMode {
		return modifiers.SolverFast
	}
	return modifiers.SolverExact
}
