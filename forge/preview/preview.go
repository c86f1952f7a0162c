// Package preview renders a headless stand-in for the panel's voxel-size
// feedback: a top-down density slice of the mesh sampled on the voxel grid
// the estimator chose, so the resolution can be eyeballed before remeshing.
package preview

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	xdraw "golang.org/x/image/draw"

	"github.com/ruakij/shellforge/forge/mesh"
)

const (
	// Output images are upscaled so even coarse grids stay visible.
	minOutputSize = 256
	maxGridCells  = 1024
)

// VoxelSlice bins the mesh vertices into the XY voxel grid and returns one
// grayscale pixel per cell, brighter where more geometry lands.
func VoxelSlice(m *mesh.Mesh, voxelSize float32) (*image.Gray, error) {
	if m == nil || m.IsEmpty() {
		return nil, fmt.Errorf("preview needs a non-empty mesh")
	}
	if voxelSize <= 0 {
		return nil, fmt.Errorf("voxel size must be positive, got %f", voxelSize)
	}

	ext := m.Extents()
	span := ext.Max.Sub(ext.Min)

	nx := int(span.X/voxelSize) + 1
	ny := int(span.Y/voxelSize) + 1
	if nx > maxGridCells || ny > maxGridCells {
		return nil, fmt.Errorf("voxel grid %dx%d too fine for preview", nx, ny)
	}

	counts := make([]int, nx*ny)
	maxCount := 0
	for i := uint32(0); i < m.VertexCount(); i++ {
		v := m.Vertex(i)
		cx := int((v.X - ext.Min.X) / voxelSize)
		cy := int((v.Y - ext.Min.Y) / voxelSize)
		if cx >= nx {
			cx = nx - 1
		}
		if cy >= ny {
			cy = ny - 1
		}
		counts[cy*nx+cx]++
		if counts[cy*nx+cx] > maxCount {
			maxCount = counts[cy*nx+cx]
		}
	}

	img := image.NewGray(image.Rect(0, 0, nx, ny))
	for y := 0; y < ny; y++ {
		for x := 0; x < nx; x++ {
			c := counts[y*nx+x]
			if c == 0 {
				continue
			}
			// Flip Y so +Y points up in the image.
			v := 64 + 191*c/maxCount
			img.SetGray(x, ny-1-y, color.Gray{Y: uint8(v)})
		}
	}
	return img, nil
}

// WritePNG renders the slice, upscales it with nearest-neighbor so the voxel
// cells stay crisp, and writes it to path.
func WritePNG(m *mesh.Mesh, voxelSize float32, path string) error {
	slice, err := VoxelSlice(m, voxelSize)
	if err != nil {
		return err
	}

	bounds := slice.Bounds()
	scale := 1
	for bounds.Dx()*scale < minOutputSize && bounds.Dy()*scale < minOutputSize {
		scale++
	}
	out := image.NewGray(image.Rect(0, 0, bounds.Dx()*scale, bounds.Dy()*scale))
	xdraw.NearestNeighbor.Scale(out, out.Bounds(), slice, bounds, xdraw.Src, nil)

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, out)
}
