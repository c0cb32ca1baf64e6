package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/DavidArayan/gfx/internal/mathutil"
	"github.com/DavidArayan/gfx/internal/postprocess"
	"github.com/DavidArayan/gfx/internal/raster"
	"github.com/DavidArayan/gfx/internal/scene"
)

// Config holds all shared settings for a batch run.
type Config struct {
	OutputDir   string
	RenderSize  int
	Supersample int
	Format      string
	Workers     int
	Mesh        raster.Mesh
}

// Result holds the outcome of processing one job.
type Result struct {
	Name    string
	Image   string // relative to OutputDir
	Record  string // relative to OutputDir
	Success bool
	Error   string
}

// Run evaluates every scene job using a worker pool. A failing job is
// reported in its Result; only camera setup errors abort the run.
func Run(cfg Config, sc *scene.Scene) ([]Result, error) {
	view, err := sc.Camera.View()
	if err != nil {
		return nil, fmt.Errorf("batch: camera view: %w", err)
	}
	viewProj := view.Clone()
	proj := sc.Camera.Projection(1)
	viewProj.PreMultiply(&proj)

	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("batch: %w", err)
	}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	if len(cfg.Mesh.Verts) == 0 {
		cfg.Mesh = raster.Cube()
	}

	log := Logger()
	total := len(sc.Jobs)
	results := make([]Result, total)
	var processed atomic.Int64

	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	var reporter sync.WaitGroup
	reporter.Add(1)
	go func() {
		defer reporter.Done()
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				p := processed.Load()
				if p > 0 {
					rate := float64(p) / time.Since(start).Seconds()
					log.Info("progress", "done", p, "total", total, "jobs_per_sec", rate)
				}
			}
		}
	}()

	// Worker pool
	jobChan := make(chan int, cfg.Workers*2)
	var wg sync.WaitGroup

	for w := 0; w < cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobChan {
				results[idx] = processJob(cfg, &sc.Jobs[idx], viewProj)
				processed.Add(1)
			}
		}()
	}

	for i := range sc.Jobs {
		jobChan <- i
	}
	close(jobChan)

	wg.Wait()
	close(done)
	reporter.Wait()

	log.Debug("batch finished", "jobs", total, "elapsed", time.Since(start))
	return results, nil
}

func processJob(cfg Config, job *scene.Job, viewProj mathutil.Mat4) Result {
	log := Logger().With("job", job.Name)
	fail := func(err error) Result {
		log.Warn("job failed", "err", err)
		return Result{Name: job.Name, Error: err.Error()}
	}

	model := job.Model()
	rec := Record{
		Name:        job.Name,
		Model:       model,
		Determinant: model.Determinant(),
	}
	model.DecomposePosRotSca(&rec.Position, &rec.Rotation, &rec.Scale)

	var inv mathutil.Mat4
	if err := model.InvertTo(&inv); err != nil {
		return fail(fmt.Errorf("model matrix: %w", err))
	}
	rec.Inverse = &inv
	log.Debug("transform", "det", rec.Determinant, "pos", rec.Position, "scale", rec.Scale)

	ss := cfg.Supersample
	if ss < 1 {
		ss = 1
	}
	img := raster.RenderMesh(cfg.Mesh, model, viewProj, cfg.RenderSize*ss)
	img = postprocess.Downsample(img, ss)

	imgName := fmt.Sprintf("%s.%s", job.Name, cfg.Format)
	f, err := os.Create(filepath.Join(cfg.OutputDir, imgName))
	if err != nil {
		return fail(err)
	}
	if err := Encode(f, img, cfg.Format); err != nil {
		f.Close()
		return fail(err)
	}
	if err := f.Close(); err != nil {
		return fail(err)
	}
	rec.Image = imgName

	recName := job.Name + ".json"
	if err := writeRecord(filepath.Join(cfg.OutputDir, recName), rec); err != nil {
		return fail(err)
	}

	return Result{
		Name:    job.Name,
		Image:   imgName,
		Record:  recName,
		Success: true,
	}
}
