package mesh

import (
	"github.com/ruakij/shellforge/forge/estimate"
	"github.com/ruakij/shellforge/forge/math"
)

// Mesh is a triangle mesh. All arrays are flat: Vertices has 3 floats per
// vertex (x,y,z), Indices has 3 uint32s per triangle.
type Mesh struct {
	Name     string
	Vertices []float32
	Indices  []uint32
	// Props carries host-visible custom properties, e.g. the print3d_volume
	// tag the 3D Print Toolbox expects.
	Props map[string]float32
}

// SetProp sets a custom property, allocating the map on first use.
func (m *Mesh) SetProp(key string, value float32) {
	if m.Props == nil {
		m.Props = make(map[string]float32)
	}
	m.Props[key] = value
}

// Prop returns a custom property and whether it was set.
func (m *Mesh) Prop(key string) (float32, bool) {
	v, ok := m.Props[key]
	return v, ok
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() uint32 {
	return uint32(len(m.Vertices) / 3)
}

// FaceCount returns the number of triangles.
func (m *Mesh) FaceCount() uint32 {
	return uint32(len(m.Indices) / 3)
}

// IsEmpty returns true if the mesh has no geometry.
func (m *Mesh) IsEmpty() bool {
	return len(m.Vertices) == 0
}

// Vertex returns the i-th vertex position.
func (m *Mesh) Vertex(i uint32) math.Vec3 {
	return math.NewVec3(m.Vertices[i*3+0], m.Vertices[i*3+1], m.Vertices[i*3+2])
}

// Extents computes the axis-aligned bounding box of the mesh. An empty mesh
// yields zero extents.
func (m *Mesh) Extents() math.Extents3D {
	if m.IsEmpty() {
		return math.Extents3D{}
	}
	min := m.Vertex(0)
	max := min
	for i := uint32(1); i < m.VertexCount(); i++ {
		v := m.Vertex(i)
		min = min.Min(v)
		max = max.Max(v)
	}
	return math.Extents3D{Min: min, Max: max}
}

// Measure derives the estimator's metrics snapshot from the mesh.
func (m *Mesh) Measure() estimate.MeshMetrics {
	return estimate.MeshMetrics{
		VertexCount: m.VertexCount(),
		FaceCount:   m.FaceCount(),
		Extents:     m.Extents(),
	}
}

// Duplicate returns a deep copy with the given name, the scene-graph
// equivalent of duplicating an object before stacking modifiers on it.
func (m *Mesh) Duplicate(name string) *Mesh {
	d := &Mesh{
		Name:     name,
		Vertices: make([]float32, len(m.Vertices)),
		Indices:  make([]uint32, len(m.Indices)),
	}
	copy(d.Vertices, m.Vertices)
	copy(d.Indices, m.Indices)
	for k, v := range m.Props {
		d.SetProp(k, v)
	}
	return d
}

// Join appends the geometry of others onto a copy of m, re-basing their
// indices. Mirrors joining selected objects into a single proxy source.
func Join(name string, meshes ...*Mesh) *Mesh {
	joined := &Mesh{Name: name}
	for _, src := range meshes {
		if src == nil {
			continue
		}
		base := joined.VertexCount()
		joined.Vertices = append(joined.Vertices, src.Vertices...)
		for _, idx := range src.Indices {
			joined.Indices = append(joined.Indices, base+idx)
		}
	}
	return joined
}
