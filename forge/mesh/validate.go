package mesh

import (
	"github.com/ruakij/shellforge/forge/core"
)

// Validate checks the preconditions for shell generation. The checks and
// order match what the generation operator expects: an object must exist,
// carry geometry, and have at least one face.
func Validate(m *Mesh) error {
	if m == nil {
		return core.ErrNoObject
	}
	if m.VertexCount() == 0 {
		return core.ErrMeshNoVertices
	}
	if m.FaceCount() == 0 {
		return core.ErrMeshNoFaces
	}
	return nil
}
