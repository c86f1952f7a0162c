package pipeline

import (
	"github.com/ruakij/shellforge/forge/core"
	"github.com/ruakij/shellforge/forge/estimate"
	"github.com/ruakij/shellforge/forge/mesh"
	"github.com/ruakij/shellforge/forge/modifiers"
)

// PrintVolumeProp is the custom property the 3D Print Toolbox reads.
const PrintVolumeProp = "print3d_volume"

// ShellStages returns the fixed stage list of the shell/mold generation
// sequence. Conditional behavior (proxy, open bottom) is decided inside the
// stages so the list length, and therefore progress percentages, are stable.
func ShellStages() []Stage {
	return []Stage{
		{Name: "Preparing object and voxel size", Run: stagePrepare},
		{Name: "Building proxy from selection", Run: stageBuildProxy},
		{Name: "Duplicating object", Run: stageDuplicateMold},
		{Name: "Adding offset shell (Solidify)", Run: stageSolidifyOffset},
		{Name: "Cleaning up mesh with remesh", Run: stageRemeshCleanup},
		{Name: "Creating outer shell", Run: stageDuplicateShell},
		{Name: "Adding thickness to outer shell", Run: stageSolidifyShell},
		{Name: "Cutting open bottom at Z=0", Run: stageCutOpenBottom},
		{Name: "Creating mold cavity", Run: stageMoldCavity},
		{Name: "Finalizing and cleaning up", Run: stageFinalize},
	}
}

// stagePrepare validates the source, converts the display-unit inputs to
// generator units, and resolves the remesh voxel size (estimated when auto
// sizing is on).
func stagePrepare(c *Context) error {
	if err := mesh.Validate(c.Source); err != nil {
		return err
	}

	toGU := c.Units.ToGenerator()
	c.OffsetGU = c.Params.Offset * toGU
	c.ThicknessGU = c.Params.Thickness * toGU

	c.VoxelSize = c.Params.RemeshVoxelSize
	if c.Params.AutoVoxelSize {
		res := estimate.OptimalVoxelSize(estimate.Request{
			Metrics:     c.Source.Measure(),
			DetailLevel: c.Params.DetailLevel,
			UnitScale:   c.Units.ScaleLength,
		})
		c.VoxelSize = res.VoxelSize
		core.LogInfo("Auto voxel size: %s", c.Units.FormatLength(c.VoxelSize))
	}
	c.VoxelSizeGU = c.VoxelSize * toGU

	if c.Params.ShowDebugInfo {
		core.LogInfo("Unit scale: %f, conversion factor (unit to GU): %f", c.Units.ScaleLength, toGU)
		core.LogInfo("Offset: %f -> %f GU", c.Params.Offset, c.OffsetGU)
		core.LogInfo("Thickness: %f -> %f GU", c.Params.Thickness, c.ThicknessGU)
		core.LogInfo("Remesh voxel size: %f -> %f GU", c.VoxelSize, c.VoxelSizeGU)
	}
	return nil
}

// stageBuildProxy joins the selected meshes into a single remeshed boolean
// source when requested. Otherwise the original object is the cavity target.
func stageBuildProxy(c *Context) error {
	if !c.Params.CombineSelectedForProxy || len(c.Selected) == 0 {
		core.LogDebug("No proxy requested, cavity will use the original object")
		return nil
	}

	proxy := mesh.Join(c.Source.Name+"_proxy", c.Selected...)
	if err := mesh.Validate(proxy); err != nil {
		return err
	}
	c.track(proxy)

	// Remesh the proxy to fuse internal geometry between the joined parts.
	stack := modifiers.NewStack(proxy)
	stack.AddRemesh("Proxy_Remesh", modifiers.Remesh{VoxelSize: c.VoxelSizeGU})
	if err := c.Applier.Apply(stack); err != nil {
		return err
	}
	c.Proxy = proxy
	return nil
}

func stageDuplicateMold(c *Context) error {
	c.Mold = c.Source.Duplicate(c.Source.Name + "_mold")
	c.track(c.Mold)
	return nil
}

// stageSolidifyOffset grows the mold outward by the offset gap. Rim fill is
// off: the mold must stay open where the shell later closes it.
func stageSolidifyOffset(c *Context) error {
	stack := modifiers.NewStack(c.Mold)
	stack.AddSolidify("Solidify_Offset", modifiers.Solidify{
		Thickness:     c.OffsetGU,
		Offset:        1, // push outward
		UseRim:        false,
		UseEvenOffset: c.Params.EvenThickness,
	})
	return c.Applier.Apply(stack)
}

func stageRemeshCleanup(c *Context) error {
	stack := modifiers.NewStack(c.Mold)
	stack.AddRemesh("Remesh_Cleanup", modifiers.Remesh{VoxelSize: c.VoxelSizeGU})
	return c.Applier.Apply(stack)
}

func stageDuplicateShell(c *Context) error {
	c.Shell = c.Mold.Duplicate(c.Source.Name + "_shell")
	c.track(c.Shell)
	return nil
}

func stageSolidifyShell(c *Context) error {
	stack := modifiers.NewStack(c.Shell)
	stack.AddSolidify("Solidify_Shell", modifiers.Solidify{
		Thickness:     c.ThicknessGU,
		Offset:        1, // push outward
		UseRim:        true,
		UseEvenOffset: c.Params.EvenThickness,
	})
	return c.Applier.Apply(stack)
}

// stageCutOpenBottom removes everything below Z=0 from shell and mold using a
// single shared ground cutter, one difference per object.
func stageCutOpenBottom(c *Context) error {
	if !c.Params.OpenBottom {
		core.LogInfo("Skipping bottom cut (closed shell)")
		return nil
	}

	c.Cutter = mesh.NewGroundCutter()
	c.track(c.Cutter)

	shellStack := modifiers.NewStack(c.Shell)
	shellStack.AddBoolean("Cut_Open_Bottom", modifiers.Boolean{
		Operation: modifiers.OpDifference,
		Solver:    c.solver(),
		Target:    c.Cutter,
	})
	if err := c.Applier.Apply(shellStack); err != nil {
		return err
	}

	moldStack := modifiers.NewStack(c.Mold)
	moldStack.AddBoolean("Mold_Ground_Cut", modifiers.Boolean{
		Operation: modifiers.OpDifference,
		Solver:    c.solver(),
		Target:    c.Cutter,
	})
	return c.Applier.Apply(moldStack)
}

// stageMoldCavity subtracts the original (or the joined proxy) from the mold,
// leaving the casting cavity.
func stageMoldCavity(c *Context) error {
	target := c.Source
	if c.Proxy != nil {
		target = c.Proxy
	}

	stack := modifiers.NewStack(c.Mold)
	stack.AddBoolean("Cavity_Boolean", modifiers.Boolean{
		Operation: modifiers.OpDifference,
		Solver:    c.solver(),
		Target:    target,
	})
	if err := c.Applier.Apply(stack); err != nil {
		return err
	}

	if c.Proxy != nil && !c.Params.KeepModifiers {
		c.Proxy = nil
	}
	return nil
}

func stageFinalize(c *Context) error {
	if c.Cutter != nil && !c.Params.KeepModifiers {
		c.Cutter = nil
	}

	// Setup 3D Print Toolbox compatibility.
	for _, o := range []*mesh.Mesh{c.Mold, c.Shell} {
		if o == nil {
			continue
		}
		if _, ok := o.Prop(PrintVolumeProp); !ok {
			o.SetProp(PrintVolumeProp, 0)
		}
	}

	if c.Params.KeepModifiers {
		core.LogInfo("Modifiers kept visible for debugging.")
	}
	core.LogInfo("Use the 3D Print Toolbox to calculate volume.")
	return nil
}
