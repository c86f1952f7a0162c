package mesh

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ruakij/shellforge/forge/math"
)

func writeOBJ(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.obj")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadOBJTriangles(t *testing.T) {
	path := writeOBJ(t, `# a single triangle
o tri
v 0 0 0
v 1 0 0
v 0 1 0
f 1 2 3
`)
	m, err := LoadOBJ(path)
	require.NoError(t, err)
	assert.Equal(t, "tri", m.Name)
	assert.Equal(t, uint32(3), m.VertexCount())
	assert.Equal(t, uint32(1), m.FaceCount())
	assert.Equal(t, []uint32{0, 1, 2}, m.Indices)
}

func TestLoadOBJQuadFanTriangulation(t *testing.T) {
	path := writeOBJ(t, `v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
f 1 2 3 4
`)
	m, err := LoadOBJ(path)
	require.NoError(t, err)
	assert.Equal(t, uint32(2), m.FaceCount())
	assert.Equal(t, []uint32{0, 1, 2, 0, 2, 3}, m.Indices)
}

func TestLoadOBJSlashAndNegativeIndices(t *testing.T) {
	path := writeOBJ(t, `v 0 0 0
v 1 0 0
v 0 1 0
f 1/1/1 2/2/2 -1//3
`)
	m, err := LoadOBJ(path)
	require.NoError(t, err)
	assert.Equal(t, []uint32{0, 1, 2}, m.Indices)
}

func TestLoadOBJBadFace(t *testing.T) {
	path := writeOBJ(t, `v 0 0 0
f 1 2 9
`)
	_, err := LoadOBJ(path)
	assert.Error(t, err)
}

func TestLoadOBJMissingFile(t *testing.T) {
	_, err := LoadOBJ(filepath.Join(t.TempDir(), "nope.obj"))
	assert.Error(t, err)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	cube := NewCube("cube", 2, math.NewVec3(1, 1, 1))
	path := filepath.Join(t.TempDir(), "cube.obj")
	require.NoError(t, SaveOBJ(cube, path))

	loaded, err := LoadOBJ(path)
	require.NoError(t, err)
	assert.Equal(t, cube.Name, loaded.Name)
	assert.Equal(t, cube.VertexCount(), loaded.VertexCount())
	assert.Equal(t, cube.FaceCount(), loaded.FaceCount())
	assert.Equal(t, cube.Indices, loaded.Indices)

	ext := loaded.Extents()
	assert.True(t, ext.Min.Compare(math.NewVec3(0, 0, 0), 1e-5))
	assert.True(t, ext.Max.Compare(math.NewVec3(2, 2, 2), 1e-5))
}
