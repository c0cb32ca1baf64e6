package batch_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/DavidArayan/gfx/internal/batch"
	"github.com/DavidArayan/gfx/internal/config"
	"github.com/DavidArayan/gfx/internal/mathutil"
	"github.com/DavidArayan/gfx/internal/scene"
	"github.com/ftrvxmtrx/tga"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/webp"
)

const testScene = `{
  "jobs": [
    {"name": "spin", "position": [0.5, 0, 0], "euler": [20, 35, 0], "scale": [1, 2, 1]},
    {"name": "flat", "matrix": {"m00": 1, "m11": 1, "m22": 0, "m33": 1}}
  ]
}`

func runScene(t *testing.T, format string) (string, []batch.Result) {
	t.Helper()
	sc, err := scene.Parse([]byte(testScene))
	require.NoError(t, err)

	out := t.TempDir()
	results, err := batch.Run(batch.Config{
		OutputDir:   out,
		RenderSize:  32,
		Supersample: 2,
		Format:      format,
		Workers:     2,
	}, sc)
	require.NoError(t, err)
	require.Len(t, results, 2)
	return out, results
}

func TestRun_WebP(t *testing.T) {
	var logs bytes.Buffer
	batch.SetLogger(slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug})))
	defer batch.SetLogger(nil)

	out, results := runScene(t, config.FormatWebP)

	spin := results[0]
	require.True(t, spin.Success, spin.Error)
	require.Equal(t, "spin.webp", spin.Image)

	f, err := os.Open(filepath.Join(out, spin.Image))
	require.NoError(t, err)
	defer f.Close()
	img, err := webp.Decode(f)
	require.NoError(t, err)
	require.Equal(t, 32, img.Bounds().Dx())

	data, err := os.ReadFile(filepath.Join(out, spin.Record))
	require.NoError(t, err)
	var rec batch.Record
	require.NoError(t, json.Unmarshal(data, &rec))
	require.Equal(t, "spin", rec.Name)
	require.InDelta(t, 2, rec.Determinant, 1e-9)
	require.InDeltaSlice(t, []float64{1, 2, 1}, rec.Scale[:], 1e-9)
	require.Equal(t, mathutil.Vec3{0.5, 0, 0}, rec.Position)
	require.NotNil(t, rec.Inverse)

	prod := rec.Model
	prod.Multiply(rec.Inverse)
	id := mathutil.Mat4Identity()
	require.InDeltaSlice(t, id[:], prod[:], 1e-9)

	// Singular model: reported, not fatal.
	flat := results[1]
	require.False(t, flat.Success)
	require.Contains(t, flat.Error, mathutil.ErrSingularMatrix.Error())
	require.Contains(t, logs.String(), "job failed")
}

func TestRun_TGA(t *testing.T) {
	out, results := runScene(t, config.FormatTGA)
	require.True(t, results[0].Success, results[0].Error)

	f, err := os.Open(filepath.Join(out, "spin.tga"))
	require.NoError(t, err)
	defer f.Close()
	img, err := tga.Decode(f)
	require.NoError(t, err)
	require.Equal(t, 32, img.Bounds().Dy())
}

func TestRun_BadCamera(t *testing.T) {
	sc := &scene.Scene{Camera: scene.Camera{}}
	_, err := batch.Run(batch.Config{OutputDir: t.TempDir()}, sc)
	require.ErrorIs(t, err, mathutil.ErrSingularMatrix)
}

func TestWriteManifest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manifest.json")
	require.NoError(t, batch.WriteManifest(path, []batch.Result{
		{Name: "a", Image: "a.webp", Record: "a.json", Success: true},
		{Name: "b", Error: "boom"},
	}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var entries []batch.ManifestEntry
	require.NoError(t, json.Unmarshal(data, &entries))
	require.Len(t, entries, 2)
	require.Equal(t, "a.webp", entries[0].Image)
	require.Equal(t, "boom", entries[1].Error)
}

func TestEncode_Unsupported(t *testing.T) {
	err := batch.Encode(&bytes.Buffer{}, nil, "png")
	require.Error(t, err)
}
