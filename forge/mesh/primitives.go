package mesh

import (
	"github.com/ruakij/shellforge/forge/math"
)

// Ground cutter dimensions: a cube big enough to swallow any reasonable
// scene, sunk so its top face sits a hair above Z=0.
const (
	GroundCutterName string  = "ground_cutter"
	GroundCutterSize float32 = 1500.0
)

// NewCube builds a triangulated axis-aligned cube of the given edge length
// centered at center.
func NewCube(name string, size float32, center math.Vec3) *Mesh {
	h := size * 0.5
	corners := [8]math.Vec3{
		{X: center.X - h, Y: center.Y - h, Z: center.Z - h},
		{X: center.X + h, Y: center.Y - h, Z: center.Z - h},
		{X: center.X + h, Y: center.Y + h, Z: center.Z - h},
		{X: center.X - h, Y: center.Y + h, Z: center.Z - h},
		{X: center.X - h, Y: center.Y - h, Z: center.Z + h},
		{X: center.X + h, Y: center.Y - h, Z: center.Z + h},
		{X: center.X + h, Y: center.Y + h, Z: center.Z + h},
		{X: center.X - h, Y: center.Y + h, Z: center.Z + h},
	}

	m := &Mesh{Name: name, Vertices: make([]float32, 0, 8*3)}
	for _, c := range corners {
		m.Vertices = append(m.Vertices, c.X, c.Y, c.Z)
	}
	// Two triangles per face, outward winding.
	m.Indices = []uint32{
		0, 2, 1, 0, 3, 2, // bottom
		4, 5, 6, 4, 6, 7, // top
		0, 1, 5, 0, 5, 4, // front
		2, 3, 7, 2, 7, 6, // back
		1, 2, 6, 1, 6, 5, // right
		3, 0, 4, 3, 4, 7, // left
	}
	return m
}

// NewGroundCutter builds the cutter used to open shells below Z=0: its top
// face sits at Z=+0.001 so geometry exactly on the ground plane is removed.
func NewGroundCutter() *Mesh {
	return NewCube(GroundCutterName, GroundCutterSize, math.NewVec3(0, 0, -GroundCutterSize/2+0.001))
}
