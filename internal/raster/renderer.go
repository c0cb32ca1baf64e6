package raster

import (
	"image"

	"github.com/DavidArayan/gfx/internal/mathutil"
)

// RenderMesh draws mesh transformed by model and then viewProj into a
// size×size image. Triangles with a vertex at or behind the eye are dropped.
func RenderMesh(mesh Mesh, model, viewProj mathutil.Mat4, size int) *image.NRGBA {
	fb := NewFrameBuffer(size, size)
	lc := DefaultLightConfig()

	var mvp mathutil.Mat4
	viewProj.MultiplyTo(&model, &mvp)

	n := len(mesh.Verts)
	screen := make([]mathutil.Vec3, n)
	world := make([]mathutil.Vec3, n)
	visible := make([]bool, n)

	half := float64(size) / 2
	for i, v := range mesh.Verts {
		world[i] = model.MulPoint(v)
		ndc, ok := mvp.Project(v)
		if !ok {
			continue
		}
		visible[i] = true
		screen[i] = mathutil.Vec3{
			(ndc[0] + 1) * half,
			(1 - ndc[1]) * half,
			-ndc[2],
		}
	}

	for _, tri := range mesh.Tris {
		i0, i1, i2 := tri[0], tri[1], tri[2]
		if i0 < 0 || i1 < 0 || i2 < 0 || i0 >= n || i1 >= n || i2 >= n {
			continue
		}
		if !visible[i0] || !visible[i1] || !visible[i2] {
			continue
		}

		// Flat shading from the world-space face normal
		normal := world[i1].Sub(world[i0]).Cross(world[i2].Sub(world[i0]))
		if normal.Len() < 1e-12 {
			continue
		}
		c := lc.Shade(mesh.Color, lc.ComputeShade(normal.Normalize()))

		RasterizeTriangle(fb, screen[i0], screen[i1], screen[i2], c)
	}

	return fb.Image()
}
