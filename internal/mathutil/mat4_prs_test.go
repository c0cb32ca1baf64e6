package mathutil_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/DavidArayan/gfx/internal/mathutil"
	"github.com/stretchr/testify/require"
)

// requireSameRotation compares quaternions up to sign.
func requireSameRotation(t *testing.T, want, got mathutil.Quat, delta float64) {
	t.Helper()
	if want.Dot(got) < 0 {
		got = mathutil.Quat{-got[0], -got[1], -got[2], -got[3]}
	}
	require.InDeltaSlice(t, want[:], got[:], delta)
}

func TestMat4_ComposePos(t *testing.T) {
	m, err := mathutil.Mat4FromSlice(sequential())
	require.NoError(t, err)
	m.ComposePos(mathutil.Vec3{4, 5, 6})

	want := mathutil.Mat4Identity()
	want[12], want[13], want[14] = 4, 5, 6
	require.Equal(t, want, m)
	require.Equal(t, mathutil.Vec3{5, 7, 9}, m.MulPoint(mathutil.Vec3{1, 2, 3}))
}

func TestMat4_ComposeMatchesMat3(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 20; i++ {
		q := randomUnitQuat(rng)
		p := mathutil.Vec3{rng.Float64(), rng.Float64(), rng.Float64()}

		var got mathutil.Mat4
		got.ComposePosRot(p, q)
		requireMat4InDelta(t, mathutil.FromMat3Translation(mathutil.QuatToMat3(q), p), got, 1e-12)

		var rotOnly mathutil.Mat4
		rotOnly.ComposeRot(q)
		requireMat4InDelta(t, mathutil.FromMat3Translation(mathutil.QuatToMat3(q), mathutil.Vec3Zero), rotOnly, 1e-12)
	}
}

func TestMat4_ComposeScalesColumns(t *testing.T) {
	q := mathutil.EulerDegToQuat(0, 0, 90)
	var m mathutil.Mat4
	m.ComposePosRotSca(mathutil.Vec3{1, 0, 0}, q, mathutil.Vec3{2, 3, 4})

	// X axis rotated onto Y and scaled by 2; Y onto -X scaled by 3.
	require.InDeltaSlice(t, []float64{0, 2, 0, 0}, m[0:4], 1e-12)
	require.InDeltaSlice(t, []float64{-3, 0, 0, 0}, m[4:8], 1e-12)
	require.InDeltaSlice(t, []float64{0, 0, 4, 0}, m[8:12], 1e-12)
	require.Equal(t, []float64{1, 0, 0, 1}, m[12:16])
	require.InDelta(t, 24, m.Determinant(), 1e-9)
}

func TestMat4_DecomposeRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(8))
	for i := 0; i < 200; i++ {
		p := mathutil.Vec3{rng.Float64()*200 - 100, rng.Float64()*200 - 100, rng.Float64()*200 - 100}
		q := randomUnitQuat(rng)
		s := mathutil.Vec3{0.1 + rng.Float64()*5, 0.1 + rng.Float64()*5, 0.1 + rng.Float64()*5}

		var m mathutil.Mat4
		m.ComposePosRotSca(p, q, s)

		var gotP, gotS mathutil.Vec3
		var gotQ mathutil.Quat
		m.DecomposePosRotSca(&gotP, &gotQ, &gotS)

		require.Equal(t, p, gotP)
		require.InDeltaSlice(t, s[:], gotS[:], 1e-9)
		requireSameRotation(t, q, gotQ, 1e-9)
		require.InDelta(t, 1, gotQ.Len(), 1e-9)
	}
}

func TestMat4_DecomposeBranches(t *testing.T) {
	s := math.Sqrt2 / 2
	cases := map[string]mathutil.Quat{
		"identity":  mathutil.QuatIdentity(),
		"x180":      {1, 0, 0, 0},
		"y180":      {0, 1, 0, 0},
		"z180":      {0, 0, 1, 0},
		"x90":       {s, 0, 0, s},
		"y-90":      {0, -s, 0, s},
		"xy180":     {s, s, 0, 0},
		"yz180":     {0, s, s, 0},
		"near-z180": mathutil.Quat{0.05, 0.02, 0.99, 0.01}.Normalize(),
	}
	for name, q := range cases {
		t.Run(name, func(t *testing.T) {
			var m mathutil.Mat4
			m.ComposePosRotSca(mathutil.Vec3{1, 2, 3}, q, mathutil.Vec3{2, 0.5, 7})

			pos, rot, scale := m.Decompose()
			require.Equal(t, mathutil.Vec3{1, 2, 3}, pos)
			require.InDeltaSlice(t, []float64{2, 0.5, 7}, scale[:], 1e-12)
			requireSameRotation(t, q, rot, 1e-12)
		})
	}
}

func TestMat4_DecomposeZeroScale(t *testing.T) {
	var m mathutil.Mat4
	m.ComposePosRotSca(mathutil.Vec3{1, 1, 1}, mathutil.QuatIdentity(), mathutil.Vec3{0, 1, 1})

	pos, rot, scale := m.Decompose()
	require.Equal(t, mathutil.Vec3{1, 1, 1}, pos)
	require.Equal(t, mathutil.Vec3{0, 1, 1}, scale)
	// Total operation: the degenerate column propagates as NaN, no panic.
	require.True(t, math.IsNaN(rot[0]) || math.IsNaN(rot[3]))
}

func TestEulerToQuat_MatchesRotations(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	for i := 0; i < 20; i++ {
		rx, ry, rz := rng.Float64()*2*math.Pi, rng.Float64()*2*math.Pi, rng.Float64()*2*math.Pi
		want := mathutil.Mat3Mul(mathutil.Mat3Mul(mathutil.RotZ(rz), mathutil.RotY(ry)), mathutil.RotX(rx))
		got := mathutil.QuatToMat3(mathutil.EulerToQuat(rx, ry, rz))
		require.InDeltaSlice(t, want[:], got[:], 1e-12)
	}
}

func TestQuat(t *testing.T) {
	var q mathutil.Quat
	require.Same(t, &q, q.Set(1, 2, 3, 4))
	require.Equal(t, 1.0, q.X())
	require.Equal(t, 2.0, q.Y())
	require.Equal(t, 3.0, q.Z())
	require.Equal(t, 4.0, q.W())
	require.InDelta(t, math.Sqrt(30), q.Len(), tol)
	require.InDelta(t, 1, q.Normalize().Len(), tol)
	require.Equal(t, mathutil.QuatIdentity(), mathutil.Quat{}.Normalize())
}
