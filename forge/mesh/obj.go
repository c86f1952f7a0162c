package mesh

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// LoadOBJ reads a Wavefront OBJ file into a Mesh. Only vertex positions and
// faces are kept; normals, texcoords and materials are skipped since the
// generator only needs geometry and counts. Faces with more than three
// corners are fan-triangulated.
func LoadOBJ(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	m := &Mesh{Name: name}

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 1024*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		switch fields[0] {
		case "v":
			if len(fields) < 4 {
				return nil, fmt.Errorf("%s:%d: malformed vertex line", path, lineNo)
			}
			for _, fs := range fields[1:4] {
				val, err := strconv.ParseFloat(fs, 32)
				if err != nil {
					return nil, fmt.Errorf("%s:%d: bad vertex coordinate %q: %w", path, lineNo, fs, err)
				}
				m.Vertices = append(m.Vertices, float32(val))
			}
		case "f":
			if len(fields) < 4 {
				return nil, fmt.Errorf("%s:%d: face needs at least 3 corners", path, lineNo)
			}
			corners := make([]uint32, 0, len(fields)-1)
			for _, fs := range fields[1:] {
				idx, err := parseFaceIndex(fs, m.VertexCount())
				if err != nil {
					return nil, fmt.Errorf("%s:%d: %w", path, lineNo, err)
				}
				corners = append(corners, idx)
			}
			for i := 1; i+1 < len(corners); i++ {
				m.Indices = append(m.Indices, corners[0], corners[i], corners[i+1])
			}
		case "o", "g":
			if len(fields) > 1 {
				m.Name = fields[1]
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return m, nil
}

// parseFaceIndex handles "v", "v/vt", "v//vn" and "v/vt/vn" references,
// both 1-based and negative (relative) per the OBJ format.
func parseFaceIndex(field string, vertexCount uint32) (uint32, error) {
	if slash := strings.IndexByte(field, '/'); slash >= 0 {
		field = field[:slash]
	}
	val, err := strconv.ParseInt(field, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("bad face index %q: %w", field, err)
	}
	if val < 0 {
		val = int64(vertexCount) + val
	} else {
		val--
	}
	if val < 0 || val >= int64(vertexCount) {
		return 0, fmt.Errorf("face index %q out of range (have %d vertices)", field, vertexCount)
	}
	return uint32(val), nil
}

// SaveOBJ writes the mesh back out as a Wavefront OBJ file.
func SaveOBJ(m *Mesh, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	fmt.Fprintf(w, "o %s\n", m.Name)
	for i := uint32(0); i < m.VertexCount(); i++ {
		v := m.Vertex(i)
		fmt.Fprintf(w, "v %g %g %g\n", v.X, v.Y, v.Z)
	}
	for i := 0; i+2 < len(m.Indices); i += 3 {
		fmt.Fprintf(w, "f %d %d %d\n", m.Indices[i]+1, m.Indices[i+1]+1, m.Indices[i+2]+1)
	}
	return w.Flush()
}
