package math

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVec3Arithmetic(t *testing.T) {
	a := NewVec3(1, 2, 3)
	b := NewVec3(4, 6, 8)

	assert.Equal(t, NewVec3(5, 8, 11), a.Add(b))
	assert.Equal(t, NewVec3(3, 4, 5), b.Sub(a))
	assert.Equal(t, NewVec3(2, 4, 6), a.MulScalar(2))
}

func TestVec3LengthAndDistance(t *testing.T) {
	v := NewVec3(3, 4, 0)
	assert.Equal(t, float32(5), v.Length())
	assert.Equal(t, float32(5), NewVec3Zero().Distance(v))
}

func TestVec3Normalized(t *testing.T) {
	n := NewVec3(0, 10, 0).Normalized()
	assert.True(t, n.Compare(NewVec3(0, 1, 0), K_FLOAT_EPSILON))

	// Zero vector stays put instead of dividing by zero.
	assert.Equal(t, NewVec3Zero(), NewVec3Zero().Normalized())
}

func TestVec3Cross(t *testing.T) {
	x := NewVec3(1, 0, 0)
	y := NewVec3(0, 1, 0)
	assert.Equal(t, NewVec3(0, 0, 1), x.Cross(y))
}

func TestVec3MinMax(t *testing.T) {
	a := NewVec3(1, 5, -3)
	b := NewVec3(2, 4, -8)
	assert.Equal(t, NewVec3(1, 4, -8), a.Min(b))
	assert.Equal(t, NewVec3(2, 5, -3), a.Max(b))
}

func TestExtentsDiagonal(t *testing.T) {
	e := Extents3D{Min: NewVec3(0, 0, 0), Max: NewVec3(100, 100, 100)}
	assert.InDelta(t, 173.205, e.Diagonal(), 0.001)

	degenerate := Extents3D{Min: NewVec3(7, 7, 7), Max: NewVec3(7, 7, 7)}
	assert.Equal(t, float32(0), degenerate.Diagonal())
}

func TestExtentsCenter(t *testing.T) {
	e := Extents3D{Min: NewVec3(-2, 0, 4), Max: NewVec3(2, 8, 6)}
	assert.Equal(t, NewVec3(0, 4, 5), e.Center())
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 5, Clamp(10, 0, 5))
	assert.Equal(t, 0, Clamp(-1, 0, 5))
	assert.Equal(t, 3, Clamp(3, 0, 5))
	assert.Equal(t, float32(0.1), Clamp(float32(0.0001), 0.1, 5.0))
}
