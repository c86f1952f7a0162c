package pipeline

import (
	gocontext "context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ruakij/shellforge/forge/math"
	"github.com/ruakij/shellforge/forge/mesh"
	"github.com/ruakij/shellforge/forge/modifiers"
	"github.com/ruakij/shellforge/forge/units"
)

func sourceCube() *mesh.Mesh {
	return mesh.NewCube("cube", 100, math.NewVec3(50, 50, 50))
}

func runShell(t *testing.T, params Params, selected []*mesh.Mesh, keep bool) (*Context, *modifiers.Recorder) {
	t.Helper()
	source := sourceCube()
	if len(selected) == 0 {
		selected = []*mesh.Mesh{source}
	} else {
		source = selected[0]
	}
	params.KeepModifiers = keep
	rec := modifiers.NewRecorder(keep)
	ctx := NewContext(source, selected, params, units.Settings{System: units.SystemNone, ScaleLength: 1.0}, rec)
	p := New(ShellStages(), ctx)
	require.NoError(t, p.Run(gocontext.Background()))
	return ctx, rec
}

func modifierNames(rec *modifiers.Recorder) []string {
	var names []string
	for _, a := range rec.Log() {
		names = append(names, a.Modifier.Name)
	}
	return names
}

func TestShellPipelineModifierSequence(t *testing.T) {
	ctx, rec := runShell(t, NewParams(), nil, false)

	assert.Equal(t, []string{
		"Solidify_Offset",
		"Remesh_Cleanup",
		"Solidify_Shell",
		"Cut_Open_Bottom",
		"Mold_Ground_Cut",
		"Cavity_Boolean",
	}, modifierNames(rec))

	require.NotNil(t, ctx.Mold)
	require.NotNil(t, ctx.Shell)
	assert.Equal(t, "cube_mold", ctx.Mold.Name)
	assert.Equal(t, "cube_shell", ctx.Shell.Name)
}

func TestShellPipelineCutsGroundExactlyOncePerObject(t *testing.T) {
	// The historical operator configured the mold ground cut twice; the
	// pipeline must cut shell and mold one time each against a shared cutter.
	_, rec := runShell(t, NewParams(), nil, true)

	shellCuts, moldCuts := 0, 0
	var cutterNames []string
	for _, a := range rec.Log() {
		switch a.Modifier.Name {
		case "Cut_Open_Bottom":
			shellCuts++
			cutterNames = append(cutterNames, a.Modifier.Boolean.Target.Name)
		case "Mold_Ground_Cut":
			moldCuts++
			cutterNames = append(cutterNames, a.Modifier.Boolean.Target.Name)
		}
	}
	assert.Equal(t, 1, shellCuts)
	assert.Equal(t, 1, moldCuts)
	for _, n := range cutterNames {
		assert.Equal(t, mesh.GroundCutterName, n)
	}
}

func TestShellPipelineClosedBottom(t *testing.T) {
	params := NewParams()
	params.OpenBottom = false
	ctx, rec := runShell(t, params, nil, false)

	assert.NotContains(t, modifierNames(rec), "Cut_Open_Bottom")
	assert.NotContains(t, modifierNames(rec), "Mold_Ground_Cut")
	assert.Nil(t, ctx.Cutter)
}

func TestShellPipelineAutoVoxelEstimation(t *testing.T) {
	ctx, _ := runShell(t, NewParams(), nil, false)

	// 8-vertex, 100-unit cube: diagonal ~173.205, complexity ~0.843,
	// expected voxel ~0.730 at detail 1.0.
	assert.InDelta(t, 0.730, ctx.VoxelSize, 0.001)
	// Unitless scene: generator units equal display units.
	assert.Equal(t, ctx.VoxelSize, ctx.VoxelSizeGU)
}

func TestShellPipelineManualVoxelSize(t *testing.T) {
	params := NewParams()
	params.AutoVoxelSize = false
	params.RemeshVoxelSize = 0.25
	ctx, rec := runShell(t, params, nil, true)

	assert.Equal(t, float32(0.25), ctx.VoxelSize)
	for _, a := range rec.Log() {
		if a.Modifier.Name == "Remesh_Cleanup" {
			assert.Equal(t, float32(0.25), a.Modifier.Remesh.VoxelSize)
		}
	}
}

func TestShellPipelineUnitConversion(t *testing.T) {
	source := sourceCube()
	params := NewParams()
	rec := modifiers.NewRecorder(true)
	u := units.Settings{System: units.SystemMetric, LengthUnit: units.UnitMillimeters, ScaleLength: 0.001}
	ctx := NewContext(source, []*mesh.Mesh{source}, params, u, rec)
	p := New(ShellStages(), ctx)
	require.NoError(t, p.Run(gocontext.Background()))

	// 0.001/0.001 = 1.0 conversion factor.
	assert.InDelta(t, params.Offset, ctx.OffsetGU, 1e-5)
	assert.InDelta(t, params.Thickness, ctx.ThicknessGU, 1e-5)
}

func TestShellPipelineProxy(t *testing.T) {
	a := sourceCube()
	b := mesh.NewCube("block", 10, math.NewVec3(120, 0, 0))
	params := NewParams()
	params.CombineSelectedForProxy = true

	ctx, rec := runShell(t, params, []*mesh.Mesh{a, b}, true)

	names := modifierNames(rec)
	require.NotEmpty(t, names)
	assert.Equal(t, "Proxy_Remesh", names[0])

	// Cavity boolean must target the joined proxy, not the original.
	for _, applied := range rec.Log() {
		if applied.Modifier.Name == "Cavity_Boolean" {
			assert.Equal(t, "cube_proxy", applied.Modifier.Boolean.Target.Name)
		}
	}
	// keep-modifiers run keeps the proxy around for inspection.
	require.NotNil(t, ctx.Proxy)
	assert.Equal(t, uint32(16), ctx.Proxy.VertexCount())
}

func TestShellPipelineProxyRemovedWithoutKeep(t *testing.T) {
	a := sourceCube()
	b := mesh.NewCube("block", 10, math.NewVec3(120, 0, 0))
	params := NewParams()
	params.CombineSelectedForProxy = true

	ctx, _ := runShell(t, params, []*mesh.Mesh{a, b}, false)
	assert.Nil(t, ctx.Proxy)
	assert.Nil(t, ctx.Cutter)
}

func TestShellPipelineCavityTargetsSourceWithoutProxy(t *testing.T) {
	_, rec := runShell(t, NewParams(), nil, false)
	for _, applied := range rec.Log() {
		if applied.Modifier.Name == "Cavity_Boolean" {
			assert.Equal(t, "cube", applied.Modifier.Boolean.Target.Name)
		}
	}
}

func TestShellPipelineFastModeSolver(t *testing.T) {
	params := NewParams()
	params.FastMode = true
	_, rec := runShell(t, params, nil, true)

	for _, applied := range rec.Log() {
		if applied.Modifier.Kind == modifiers.KindBoolean {
			assert.Equal(t, modifiers.SolverFast, applied.Modifier.Boolean.Solver)
		}
	}
}

func TestShellPipelineTagsPrintVolume(t *testing.T) {
	ctx, _ := runShell(t, NewParams(), nil, false)

	for _, o := range []*mesh.Mesh{ctx.Mold, ctx.Shell} {
		v, ok := o.Prop(PrintVolumeProp)
		assert.True(t, ok)
		assert.Equal(t, float32(0), v)
	}
}

func TestShellPipelineRejectsInvalidSource(t *testing.T) {
	empty := &mesh.Mesh{Name: "empty"}
	rec := modifiers.NewRecorder(false)
	ctx := NewContext(empty, []*mesh.Mesh{empty}, NewParams(), units.Settings{ScaleLength: 1}, rec)
	p := New(ShellStages(), ctx)

	err := p.Run(gocontext.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Preparing object")
	assert.True(t, ctx.Errors.HasErrors())
}

func TestParamsReset(t *testing.T) {
	p := Params{Offset: 99, Thickness: 42, FastMode: false, DetailLevel: 4}
	p.Reset(Defaults{Offset: 10, Thickness: 5})

	assert.Equal(t, float32(10), p.Offset)
	assert.Equal(t, float32(5), p.Thickness)
	assert.True(t, p.FastMode)
	assert.True(t, p.OpenBottom)
	assert.True(t, p.AutoVoxelSize)
	assert.Equal(t, float32(0.5), p.RemeshVoxelSize)
	assert.Equal(t, float32(1.0), p.DetailLevel)
}
