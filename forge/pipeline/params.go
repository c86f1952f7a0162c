package pipeline

// Params are the user-facing generation properties. Values are in display
// units; the pipeline converts them to generator units on start.
type Params struct {
	// Gap between object and start of shell.
	Offset float32
	// Shell thickness.
	Thickness float32
	// Remove all geometry below Z=0 (make bottom open).
	OpenBottom bool
	// Uses the faster but less precise boolean solver.
	FastMode bool
	// Automatically calculate optimal voxel size from complexity and dimensions.
	AutoVoxelSize bool
	// Detail multiplier for auto voxel size (lower = more detail).
	DetailLevel float32
	// Voxel size for remesh when auto sizing is off.
	RemeshVoxelSize float32
	// Join and remesh all selected meshes into a single boolean source.
	CombineSelectedForProxy bool
	// Enable even thickness on solidify (may create artifacts on sharp corners).
	EvenThickness bool
	// Don't apply modifiers, keep them visible for debugging.
	KeepModifiers bool
	// Display additional debug information during operation.
	ShowDebugInfo bool
}

// Defaults are the preference-backed fallback values Reset restores.
type Defaults struct {
	Offset    float32
	Thickness float32
}

// Reset restores the properties to their defaults, mirroring the reset
// operator: boolean toggles go back to the recommended state regardless of
// what the preferences hold.
func (p *Params) Reset(d Defaults) {
	p.Offset = d.Offset
	p.Thickness = d.Thickness
	p.FastMode = true
	p.RemeshVoxelSize = 0.5
	p.OpenBottom = true
	p.AutoVoxelSize = true
	p.DetailLevel = 1.0
	p.CombineSelectedForProxy = false
	p.EvenThickness = false
}

// NewParams returns properties with the panel defaults.
func NewParams() Params {
	return Params{
		Offset:          10.0,
		Thickness:       5.0,
		OpenBottom:      true,
		AutoVoxelSize:   true,
		DetailLevel:     1.0,
		RemeshVoxelSize: 1.0,
	}
}
