package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/DavidArayan/gfx/internal/batch"
	"github.com/DavidArayan/gfx/internal/config"
	"github.com/DavidArayan/gfx/internal/scene"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to config.json file")
	sceneFile := flag.String("scene", "", "Path to scene JSON file")
	outputDir := flag.String("output", "", "Output directory (default: <scene dir>/renders)")
	size := flag.Int("size", 0, "Preview size in pixels (default: 256)")
	format := flag.String("format", "", "Preview format: webp or tga (default: webp)")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	verbose := flag.Bool("v", false, "Verbose (debug) logging")

	flag.Parse()

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	batch.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	// Load config
	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// CLI flags override config file
	cfg.Resolve(config.Flags{
		SceneFile: *sceneFile,
		OutputDir: *outputDir,
		Size:      *size,
		Format:    *format,
		Workers:   *workers,
	})
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	sc, err := scene.Load(cfg.SceneFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading scene: %v\n", err)
		os.Exit(1)
	}

	if len(sc.Jobs) == 0 {
		fmt.Println("No jobs to render.")
		os.Exit(0)
	}

	fmt.Printf("Transform preview → %s\n", cfg.Format)
	fmt.Printf("Jobs: %d, Workers: %d, Size: %d (x%d supersample)\n", len(sc.Jobs), cfg.Workers, cfg.RenderSize, cfg.Supersample)
	fmt.Printf("Output: %s\n", cfg.OutputDir)
	fmt.Println("------------------------------------------------------------")

	start := time.Now()

	results, err := batch.Run(batch.Config{
		OutputDir:   cfg.OutputDir,
		RenderSize:  cfg.RenderSize,
		Supersample: cfg.Supersample,
		Format:      cfg.Format,
		Workers:     cfg.Workers,
	}, sc)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	elapsed := time.Since(start)
	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs\n", elapsed.Seconds())

	// Count results
	var failed []batch.Result
	for _, r := range results {
		if !r.Success {
			failed = append(failed, r)
		}
	}

	fmt.Printf("Rendered: %d/%d\n", len(results)-len(failed), len(results))

	if len(failed) > 0 {
		fmt.Printf("\nFailed (%d):\n", len(failed))
		limit := min(20, len(failed))
		for _, e := range failed[:limit] {
			fmt.Printf("  %s: %s\n", e.Name, e.Error)
		}
	}

	manifestPath := filepath.Join(cfg.OutputDir, "manifest.json")
	if err := batch.WriteManifest(manifestPath, results); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: manifest write failed: %v\n", err)
	} else {
		fmt.Printf("Manifest: %s\n", manifestPath)
	}

	if len(failed) > 0 {
		os.Exit(1)
	}
}
