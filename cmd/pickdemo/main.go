package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"mesh-picker/internal/batch"
	"mesh-picker/internal/config"
	"mesh-picker/internal/scene"
	"mesh-picker/internal/texture"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to config.json file")
	sceneFile := flag.String("scene", "", "Scene description (.json, .toml, .yaml; default: built-in scene)")
	shotsFile := flag.String("shots", "", "Shot list JSON (default: built-in tour)")
	texDir := flag.String("textures", "", "Directory searched for object textures")
	outputDir := flag.String("output", "", "Output directory (default: renders)")
	width := flag.Int("width", 0, "Output width in pixels (default: 640)")
	height := flag.Int("height", 0, "Output height in pixels (default: 480)")
	supersample := flag.Int("ss", 0, "Supersampling factor (default: 2)")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	testN := flag.Int("test", 0, "Render only first N shots for testing")
	watch := flag.Bool("watch", false, "Re-render whenever the scene or shots file changes")

	flag.Parse()

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
	if err := cfg.ApplyEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Error reading environment: %v\n", err)
		os.Exit(1)
	}

	// CLI flags override config file and environment
	cfg.Resolve(config.Flags{
		Scene:       *sceneFile,
		Shots:       *shotsFile,
		TextureDir:  *texDir,
		OutputDir:   *outputDir,
		Width:       *width,
		Height:      *height,
		Supersample: *supersample,
		Workers:     *workers,
	})

	if !*watch {
		if !run(cfg, *testN) {
			os.Exit(1)
		}
		return
	}

	var watched []string
	for _, p := range []string{cfg.Scene, cfg.Shots} {
		if p != "" {
			watched = append(watched, p)
		}
	}
	if len(watched) == 0 {
		fmt.Fprintln(os.Stderr, "Error: -watch needs a scene or shots file")
		os.Exit(1)
	}

	run(cfg, *testN)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	fmt.Printf("Watching %v (Ctrl+C to stop)\n", watched)
	if err := batch.Watch(ctx, watched, 200*time.Millisecond, func() { run(cfg, *testN) }); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run renders one batch and reports whether every shot succeeded. Load
// errors are printed and count as failure.
func run(cfg config.Config, testN int) bool {
	// Load scene
	sc := scene.Default()
	if cfg.Scene != "" {
		var err error
		sc, err = scene.Load(cfg.Scene)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading scene: %v\n", err)
			return false
		}
	}
	fmt.Printf("Scene: %d objects, %d pickable\n", sc.Len(), len(sc.Pickables()))

	// Load shots
	shots := batch.DefaultShots(cfg.Width, cfg.Height)
	if cfg.Shots != "" {
		var err error
		shots, err = batch.LoadShots(cfg.Shots)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading shots: %v\n", err)
			return false
		}
	}

	// Limit for testing
	if testN > 0 && testN < len(shots) {
		shots = shots[:testN]
	}

	if len(shots) == 0 {
		fmt.Println("No shots to render.")
		return true
	}

	// Build texture index
	var texResolver texture.Resolver
	if cfg.TextureDir != "" {
		texIndex := texture.BuildIndex(cfg.TextureDir)
		texResolver = texture.NewCache(texIndex)
		fmt.Printf("Textures: %d indexed\n", texIndex.Len())
	}

	fmt.Println("Mesh picker → WebP")
	fmt.Printf("Shots: %d, Workers: %d, Size: %dx%d (x%d)\n", len(shots), cfg.Workers, cfg.Width, cfg.Height, cfg.Supersample)
	fmt.Printf("Output: %s\n", cfg.OutputDir)
	fmt.Println("------------------------------------------------------------")

	start := time.Now()

	results := batch.Run(batch.Config{
		Scene:       sc,
		TexResolver: texResolver,
		OutputDir:   cfg.OutputDir,
		Width:       cfg.Width,
		Height:      cfg.Height,
		Supersample: cfg.Supersample,
		Workers:     cfg.Workers,
		Progress:    2 * time.Second,
	}, shots)

	elapsed := time.Since(start)
	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs\n", elapsed.Seconds())

	// Count results
	success, failed := 0, 0
	var errors []batch.Result
	for _, r := range results {
		if !r.Success {
			failed++
			errors = append(errors, r)
			continue
		}
		success++
		switch {
		case r.Pick == nil:
			fmt.Printf("  %s: no click\n", r.Name)
		case !r.Pick.Hit:
			fmt.Printf("  %s: miss\n", r.Name)
		default:
			name := ""
			if obj, ok := sc.Get(r.Pick.ObjectID); ok {
				name = obj.Name
			}
			fmt.Printf("  %s: hit %q triangle %d (t=%.3f)\n", r.Name, name, r.Pick.TriangleIndex, r.Pick.Distance)
		}
	}

	fmt.Printf("Rendered: %d/%d\n", success, len(shots))

	if len(errors) > 0 {
		fmt.Printf("\nFailed (%d):\n", failed)
		limit := 20
		if len(errors) < limit {
			limit = len(errors)
		}
		for _, e := range errors[:limit] {
			fmt.Printf("  %s: %s\n", e.Name, e.Error)
		}
	}

	// Write manifest
	manifestPath := filepath.Join(cfg.OutputDir, "manifest.json")
	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: output dir: %v\n", err)
	}
	if err := batch.WriteManifest(manifestPath, results, sc); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: manifest write failed: %v\n", err)
	} else {
		fmt.Printf("Manifest: %s\n", manifestPath)
	}

	return failed == 0
}
