package mesh

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ruakij/shellforge/forge/core"
	"github.com/ruakij/shellforge/forge/math"
)

func TestCubeCounts(t *testing.T) {
	cube := NewCube("cube", 2, math.NewVec3Zero())
	assert.Equal(t, uint32(8), cube.VertexCount())
	assert.Equal(t, uint32(12), cube.FaceCount())
	assert.False(t, cube.IsEmpty())
}

func TestCubeExtents(t *testing.T) {
	cube := NewCube("cube", 2, math.NewVec3(1, 2, 3))
	ext := cube.Extents()
	assert.Equal(t, math.NewVec3(0, 1, 2), ext.Min)
	assert.Equal(t, math.NewVec3(2, 3, 4), ext.Max)
}

func TestGroundCutterSitsBelowZero(t *testing.T) {
	cutter := NewGroundCutter()
	assert.Equal(t, GroundCutterName, cutter.Name)
	ext := cutter.Extents()
	// Top face sits just above the ground plane so surface geometry is cut.
	assert.InDelta(t, 0.001, ext.Max.Z, 1e-4)
	assert.Less(t, ext.Min.Z, float32(-1000))
}

func TestMeasure(t *testing.T) {
	cube := NewCube("cube", 100, math.NewVec3(50, 50, 50))
	metrics := cube.Measure()
	assert.Equal(t, uint32(8), metrics.VertexCount)
	assert.Equal(t, uint32(12), metrics.FaceCount)
	assert.InDelta(t, 173.205, metrics.Extents.Diagonal(), 0.001)
}

func TestDuplicate(t *testing.T) {
	cube := NewCube("cube", 1, math.NewVec3Zero())
	cube.SetProp("print3d_volume", 0)

	dup := cube.Duplicate("cube_mold")
	assert.Equal(t, "cube_mold", dup.Name)
	assert.Equal(t, cube.Vertices, dup.Vertices)
	assert.Equal(t, cube.Indices, dup.Indices)

	// Deep copy: mutating the duplicate must not touch the original.
	dup.Vertices[0] += 10
	assert.NotEqual(t, cube.Vertices[0], dup.Vertices[0])

	_, ok := dup.Prop("print3d_volume")
	assert.True(t, ok)
}

func TestJoinRebasesIndices(t *testing.T) {
	a := NewCube("a", 1, math.NewVec3Zero())
	b := NewCube("b", 1, math.NewVec3(5, 0, 0))

	joined := Join("a_proxy", a, b)
	assert.Equal(t, uint32(16), joined.VertexCount())
	assert.Equal(t, uint32(24), joined.FaceCount())

	// Second half of the indices must reference the second vertex block.
	for _, idx := range joined.Indices[len(a.Indices):] {
		assert.GreaterOrEqual(t, idx, uint32(8))
	}
}

func TestJoinSkipsNil(t *testing.T) {
	a := NewCube("a", 1, math.NewVec3Zero())
	joined := Join("proxy", a, nil)
	assert.Equal(t, a.VertexCount(), joined.VertexCount())
}

func TestValidate(t *testing.T) {
	require.ErrorIs(t, Validate(nil), core.ErrNoObject)
	require.ErrorIs(t, Validate(&Mesh{Name: "empty"}), core.ErrMeshNoVertices)
	require.ErrorIs(t, Validate(&Mesh{Name: "points", Vertices: []float32{0, 0, 0}}), core.ErrMeshNoFaces)
	assert.NoError(t, Validate(NewCube("cube", 1, math.NewVec3Zero())))
}
