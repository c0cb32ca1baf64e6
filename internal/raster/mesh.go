package raster

import "github.com/DavidArayan/gfx/internal/mathutil"

// Mesh is an indexed triangle list in model space with one flat color.
type Mesh struct {
	Verts []mathutil.Vec3
	Tris  [][3]int
	Color [4]uint8 // sRGB + alpha
}

// Cube returns an axis-aligned unit cube centered on the origin.
// Triangles wind counter-clockwise seen from outside.
func Cube() Mesh {
	return Mesh{
		Verts: []mathutil.Vec3{
			{-0.5, -0.5, -0.5}, {0.5, -0.5, -0.5}, {0.5, 0.5, -0.5}, {-0.5, 0.5, -0.5},
			{-0.5, -0.5, 0.5}, {0.5, -0.5, 0.5}, {0.5, 0.5, 0.5}, {-0.5, 0.5, 0.5},
		},
		Tris: [][3]int{
			{4, 5, 6}, {4, 6, 7}, // +Z
			{1, 0, 3}, {1, 3, 2}, // -Z
			{5, 1, 2}, {5, 2, 6}, // +X
			{0, 4, 7}, {0, 7, 3}, // -X
			{7, 6, 2}, {7, 2, 3}, // +Y
			{0, 1, 5}, {0, 5, 4}, // -Y
		},
		Color: [4]uint8{160, 160, 170, 255},
	}
}
