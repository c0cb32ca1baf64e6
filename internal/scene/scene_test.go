package scene_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/DavidArayan/gfx/internal/mathutil"
	"github.com/DavidArayan/gfx/internal/scene"
	"github.com/stretchr/testify/require"
)

const sampleScene = `{
  "camera": {"position": [0, 0, 10], "fov": 45},
  "presets": {
    "big": {"scale": [3, 3, 3], "euler": [0, 90, 0]}
  },
  "jobs": [
    {"name": "plain"},
    {"name": "moved", "position": [1, 2, 3], "rotation": [0, 0, 2, 0]},
    {"name": "giant", "preset": "big", "position": [0, -1, 0]},
    {"name": "raw", "matrix": {"m00": 2, "m11": 2, "m22": 2, "m33": 1, "m03": 7}}
  ]
}`

func TestParse(t *testing.T) {
	sc, err := scene.Parse([]byte(sampleScene))
	require.NoError(t, err)
	require.Len(t, sc.Jobs, 4)

	require.Equal(t, mathutil.Vec3{0, 0, 10}, sc.Camera.Position)
	require.Equal(t, 45.0, sc.Camera.FOV)
	require.Equal(t, scene.DefaultNear, sc.Camera.Near)
	require.Equal(t, scene.DefaultFar, sc.Camera.Far)

	plain := sc.Jobs[0]
	require.Equal(t, mathutil.Mat4Identity(), plain.Model())

	moved := sc.Jobs[1]
	require.Equal(t, mathutil.Quat{0, 0, 1, 0}, moved.Rotation)
	m := moved.Model()
	require.Equal(t, mathutil.Vec3{1, 2, 3}, m.Translation())

	giant := sc.Jobs[2]
	require.Equal(t, mathutil.Vec3{3, 3, 3}, giant.Scale)
	require.Equal(t, mathutil.Vec3{0, -1, 0}, giant.Position)
	_, _, s := giant.Model().Decompose()
	require.InDeltaSlice(t, []float64{3, 3, 3}, s[:], 1e-12)

	raw := sc.Jobs[3]
	require.NotNil(t, raw.Matrix)
	rm := raw.Model()
	require.Equal(t, 7.0, rm.At(0, 3))
	require.Equal(t, 2.0, rm[0])
}

func TestParse_Invalid(t *testing.T) {
	cases := map[string]string{
		"missing name":  `{"jobs": [{}]}`,
		"duplicate":     `{"jobs": [{"name": "a"}, {"name": "a"}]}`,
		"both rotation": `{"jobs": [{"name": "a", "rotation": [0,0,0,1], "euler": [0,0,0]}]}`,
		"zero quat":     `{"jobs": [{"name": "a", "rotation": [0,0,0,0]}]}`,
		"zero scale":    `{"jobs": [{"name": "a", "scale": [1,0,1]}]}`,
		"bad preset":    `{"jobs": [{"name": "a", "preset": "nope"}]}`,
		"path name":     `{"jobs": [{"name": "../a"}]}`,
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := scene.Parse([]byte(in))
			require.ErrorIs(t, err, scene.ErrInvalidJob)
		})
	}

	_, err := scene.Parse([]byte(`{"jobs": 3}`))
	require.Error(t, err)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleScene), 0o644))

	sc, err := scene.Load(path)
	require.NoError(t, err)
	require.Len(t, sc.Jobs, 4)

	_, err = scene.Load(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
}

func TestCamera_View(t *testing.T) {
	cam := scene.DefaultCamera()
	view, err := cam.View()
	require.NoError(t, err)

	want := mathutil.Mat4Identity()
	want[14] = -5
	require.InDeltaSlice(t, want[:], view[:], 1e-12)

	// The camera position maps to the eye origin, the target straight ahead.
	cam = scene.Camera{Position: mathutil.Vec3{3, 4, 5}, Target: mathutil.Vec3{-1, 0, 2}, FOV: 60, Near: 0.1, Far: 100}
	view, err = cam.View()
	require.NoError(t, err)
	eye := view.MulPoint(cam.Position)
	require.InDeltaSlice(t, []float64{0, 0, 0}, eye[:], 1e-12)
	dist := cam.Target.Sub(cam.Position).Len()
	ahead := view.MulPoint(cam.Target)
	require.InDeltaSlice(t, []float64{0, 0, -dist}, ahead[:], 1e-12)

	down := scene.Camera{Position: mathutil.Vec3{0, 10, 0}}
	_, err = down.View()
	require.NoError(t, err)

	_, err = scene.Camera{}.View()
	require.ErrorIs(t, err, mathutil.ErrSingularMatrix)
}

func TestCamera_Projection(t *testing.T) {
	p := scene.DefaultCamera().Projection(1)
	require.Equal(t, -1.0, p[11])
	require.Equal(t, p[0], p[5])
}

func TestMatrixBin(t *testing.T) {
	var m mathutil.Mat4
	m.ComposePosRotSca(mathutil.Vec3{1, 2, 3}, mathutil.QuatIdentity(), mathutil.Vec3{0.5, 2, 4})

	var buf bytes.Buffer
	require.NoError(t, scene.WriteMatrixBin(&buf, m))
	require.Equal(t, scene.MatrixBinSize, buf.Len())

	got, err := scene.ReadMatrixBin(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	require.Equal(t, m, got)

	_, err = scene.ReadMatrixBin(bytes.NewReader(buf.Bytes()[:12]))
	require.ErrorIs(t, err, mathutil.ErrInvalidArgument)

	_, err = scene.ReadMatrixBin(bytes.NewReader(nil))
	require.ErrorIs(t, err, mathutil.ErrInvalidArgument)
}
