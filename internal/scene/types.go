package scene

import (
	"errors"

	"github.com/DavidArayan/gfx/internal/mathutil"
)

// ErrInvalidJob is wrapped by every scene validation failure.
var ErrInvalidJob = errors.New("scene: invalid job")

// Scene is a camera plus the transforms to evaluate.
type Scene struct {
	Camera Camera
	Jobs   []Job
}

// Camera describes a perspective look-at camera.
type Camera struct {
	Position mathutil.Vec3
	Target   mathutil.Vec3
	FOV      float64 // vertical, degrees
	Near     float64
	Far      float64
}

// Job is one position/rotation/scale transform. When Matrix is set it is
// used verbatim and the PRS fields are ignored.
type Job struct {
	Name     string
	Position mathutil.Vec3
	Rotation mathutil.Quat // unit length after Load
	Scale    mathutil.Vec3
	Matrix   *mathutil.Mat4
}

// Camera defaults.
const (
	DefaultFOV  = 60.0
	DefaultNear = 0.1
	DefaultFar  = 100.0
)

// DefaultCamera looks at the origin from +Z.
func DefaultCamera() Camera {
	return Camera{
		Position: mathutil.Vec3{0, 0, 5},
		FOV:      DefaultFOV,
		Near:     DefaultNear,
		Far:      DefaultFar,
	}
}

// Model returns the job's model matrix.
func (j *Job) Model() mathutil.Mat4 {
	if j.Matrix != nil {
		return *j.Matrix
	}
	var m mathutil.Mat4
	m.ComposePosRotSca(j.Position, j.Rotation, j.Scale)
	return m
}

// View returns the world-to-camera matrix.
func (c Camera) View() (mathutil.Mat4, error) {
	forward := c.Target.Sub(c.Position).Normalize()
	up := mathutil.Vec3{0, 1, 0}
	right := forward.Cross(up)
	if right.Len() < 1e-9 {
		// looking straight up or down
		right = forward.Cross(mathutil.Vec3{0, 0, -1})
	}
	right = right.Normalize()
	up = right.Cross(forward)

	basis := mathutil.Mat3FromColumns(right, up, forward.Scale(-1))
	view := mathutil.FromMat3Translation(basis, c.Position)
	if err := view.Invert(); err != nil {
		return mathutil.Mat4{}, err
	}
	return view, nil
}

// Projection returns the perspective projection for the given aspect ratio.
func (c Camera) Projection(aspect float64) mathutil.Mat4 {
	var m mathutil.Mat4
	m.SetToProjection(c.Near, c.Far, c.FOV, aspect)
	return m
}
