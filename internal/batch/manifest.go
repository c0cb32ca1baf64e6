package batch

import (
	"encoding/json"
	"os"

	"github.com/DavidArayan/gfx/internal/mathutil"
)

// Record is the per-job JSON written next to each preview.
type Record struct {
	Name        string         `json:"name"`
	Model       mathutil.Mat4  `json:"model"`
	Inverse     *mathutil.Mat4 `json:"inverse"`
	Determinant float64        `json:"determinant"`
	Position    mathutil.Vec3  `json:"position"`
	Rotation    mathutil.Quat  `json:"rotation"`
	Scale       mathutil.Vec3  `json:"scale"`
	Image       string         `json:"image,omitempty"`
}

// ManifestEntry represents one job in the output manifest.
type ManifestEntry struct {
	Name   string `json:"name"`
	Image  string `json:"image,omitempty"`
	Record string `json:"record,omitempty"`
	Error  string `json:"error,omitempty"`
}

// WriteManifest writes manifest.json for a finished run.
func WriteManifest(path string, results []Result) error {
	entries := make([]ManifestEntry, len(results))
	for i, r := range results {
		entries[i] = ManifestEntry{
			Name:   r.Name,
			Image:  r.Image,
			Record: r.Record,
			Error:  r.Error,
		}
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func writeRecord(path string, rec Record) error {
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
