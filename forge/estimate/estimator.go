package estimate

import (
	"github.com/chewxy/math32"

	"github.com/ruakij/shellforge/forge/math"
)

const (
	// Fraction of the bounding diagonal used for an average-complexity mesh.
	baseVoxelPercent float32 = 0.005
	// Hard floor for the computed voxel size, in generator units.
	minVoxelSize float32 = 0.1
	// Ceiling multiplier; the upper clamp is maxVoxelDetail * detail level.
	maxVoxelDetail float32 = 5.0
)

// MeshMetrics is the read-only complexity and extent snapshot of a mesh,
// derived once per estimation call.
type MeshMetrics struct {
	VertexCount uint32
	FaceCount   uint32
	Extents     math.Extents3D
}

// Request carries everything the estimator looks at. UnitScale is accepted
// for call-site parity with the host's unit settings but does not change the
// computed magnitude; callers convert units before and after the call.
type Request struct {
	Metrics     MeshMetrics
	DetailLevel float32
	UnitScale   float32
}

// Result holds the recommended remesh voxel edge length, expressed in the
// same linear unit as the request's bounding box coordinates.
type Result struct {
	VoxelSize float32
}

// OptimalVoxelSize maps mesh complexity and bounding-box extent to a remesh
// voxel size, scaled by the user's detail preference.
//
// The size is diagonal-relative so results stay scale-invariant across object
// sizes; the complexity term shrinks the fraction for dense meshes so their
// detail survives the remesh; the clamp guards degenerate tiny objects and
// huge simple ones. Always returns a value in [0.1, 5.0*detail].
func OptimalVoxelSize(req Request) Result {
	diagonal := req.Metrics.Extents.Diagonal()

	// Convert complexity to a scale factor (more complex = smaller voxels).
	// The 0.3 exponent compresses very large vertex counts so the voxel size
	// degrades gracefully instead of collapsing to zero.
	complexityFactor := 1.0 / (1.0 + 0.1*math32.Pow(float32(req.Metrics.VertexCount), 0.3))

	basePercent := baseVoxelPercent * complexityFactor

	rawSize := diagonal * basePercent * req.DetailLevel

	voxelSize := math.Clamp(rawSize, minVoxelSize, maxVoxelDetail*req.DetailLevel)

	return Result{VoxelSize: voxelSize}
}
