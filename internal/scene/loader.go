package scene

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/DavidArayan/gfx/internal/mathutil"
)

// sceneFile matches the JSON schema of a scene file.
type sceneFile struct {
	Camera  *cameraFile        `json:"camera"`
	Presets map[string]jobFile `json:"presets"`
	Jobs    []jobFile          `json:"jobs"`
}

type cameraFile struct {
	Position *[3]float64 `json:"position"`
	Target   *[3]float64 `json:"target"`
	FOV      *float64    `json:"fov"`
	Near     *float64    `json:"near"`
	Far      *float64    `json:"far"`
}

type jobFile struct {
	Name     string             `json:"name"`
	Preset   string             `json:"preset"`
	Position *[3]float64        `json:"position"`
	Rotation *[4]float64        `json:"rotation"` // quaternion x, y, z, w
	Euler    *[3]float64        `json:"euler"`    // XYZ degrees
	Scale    *[3]float64        `json:"scale"`
	Matrix   *mathutil.Mat4JSON `json:"matrix"`
}

// Load reads and validates a scene file.
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scene: read %s: %w", path, err)
	}
	sc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("scene: %s: %w", path, err)
	}
	return sc, nil
}

// Parse decodes and validates scene JSON.
func Parse(data []byte) (*Scene, error) {
	var f sceneFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}

	sc := &Scene{Camera: makeCamera(f.Camera)}
	seen := make(map[string]bool, len(f.Jobs))
	for i, jf := range f.Jobs {
		if jf.Preset != "" {
			p, ok := f.Presets[jf.Preset]
			if !ok {
				return nil, fmt.Errorf("%w: job %d: unknown preset %q", ErrInvalidJob, i, jf.Preset)
			}
			jf = mergeJobFields(p, jf)
		}
		if jf.Name == "" {
			return nil, fmt.Errorf("%w: job %d: missing name", ErrInvalidJob, i)
		}
		if strings.ContainsAny(jf.Name, `/\`) || jf.Name == "." || jf.Name == ".." {
			return nil, fmt.Errorf("%w: job %q: name must be a plain file stem", ErrInvalidJob, jf.Name)
		}
		if seen[jf.Name] {
			return nil, fmt.Errorf("%w: job %q: duplicate name", ErrInvalidJob, jf.Name)
		}
		seen[jf.Name] = true

		job, err := makeJob(jf)
		if err != nil {
			return nil, err
		}
		sc.Jobs = append(sc.Jobs, job)
	}
	return sc, nil
}

func makeCamera(c *cameraFile) Camera {
	cam := DefaultCamera()
	if c == nil {
		return cam
	}
	if c.Position != nil {
		cam.Position = mathutil.Vec3(*c.Position)
	}
	if c.Target != nil {
		cam.Target = mathutil.Vec3(*c.Target)
	}
	if c.FOV != nil {
		cam.FOV = *c.FOV
	}
	if c.Near != nil {
		cam.Near = *c.Near
	}
	if c.Far != nil {
		cam.Far = *c.Far
	}
	return cam
}

// mergeJobFields fills fields the job leaves unset from its preset.
func mergeJobFields(preset, job jobFile) jobFile {
	if job.Position == nil {
		job.Position = preset.Position
	}
	// A job's own rotation form replaces the preset's entirely.
	if job.Rotation == nil && job.Euler == nil {
		job.Rotation = preset.Rotation
		job.Euler = preset.Euler
	}
	if job.Scale == nil {
		job.Scale = preset.Scale
	}
	if job.Matrix == nil {
		job.Matrix = preset.Matrix
	}
	return job
}

func makeJob(jf jobFile) (Job, error) {
	j := Job{
		Name:     jf.Name,
		Rotation: mathutil.QuatIdentity(),
		Scale:    mathutil.Vec3{1, 1, 1},
	}
	if jf.Matrix != nil {
		m := mathutil.Mat4FromJSON(*jf.Matrix)
		j.Matrix = &m
		return j, nil
	}

	if jf.Position != nil {
		j.Position = mathutil.Vec3(*jf.Position)
	}
	if jf.Rotation != nil && jf.Euler != nil {
		return Job{}, fmt.Errorf("%w: job %q: both rotation and euler set", ErrInvalidJob, jf.Name)
	}
	if jf.Rotation != nil {
		q := mathutil.Quat(*jf.Rotation)
		if q.Len() < 1e-12 {
			return Job{}, fmt.Errorf("%w: job %q: zero rotation quaternion", ErrInvalidJob, jf.Name)
		}
		j.Rotation = q.Normalize()
	}
	if jf.Euler != nil {
		e := *jf.Euler
		j.Rotation = mathutil.EulerDegToQuat(e[0], e[1], e[2])
	}
	if jf.Scale != nil {
		j.Scale = mathutil.Vec3(*jf.Scale)
		for _, s := range j.Scale {
			if s == 0 {
				return Job{}, fmt.Errorf("%w: job %q: zero scale component", ErrInvalidJob, jf.Name)
			}
		}
	}
	return j, nil
}
