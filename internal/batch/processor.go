// Package batch renders lists of shots concurrently and writes one WebP per
// shot plus a JSON manifest.
package batch

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"mesh-picker/internal/input"
	"mesh-picker/internal/picking"
	"mesh-picker/internal/postprocess"
	"mesh-picker/internal/raster"
	"mesh-picker/internal/scene"
	"mesh-picker/internal/texture"

	"github.com/HugoSmits86/nativewebp"
)

// MarkerColor is the crosshair drawn over a shot's click position.
var MarkerColor = color.NRGBA{R: 255, G: 0, B: 255, A: 255}

// Config holds all shared resources for a batch run. Scene is read by every
// worker and must not be mutated while Run is in progress.
type Config struct {
	Scene       *scene.Scene
	TexResolver texture.Resolver
	OutputDir   string
	Width       int
	Height      int
	Supersample int
	Workers     int
	Progress    time.Duration // interval between progress lines; zero disables them
}

// Result holds the outcome of rendering one shot.
type Result struct {
	Name    string
	Image   string // path relative to OutputDir
	Success bool
	Error   string
	Pick    *picking.Result
}

// Run renders all shots using a worker pool. Each shot gets its own camera
// and highlight, so workers share nothing mutable.
func Run(cfg Config, shots []Shot) []Result {
	total := len(shots)
	results := make([]Result, total)
	var processed atomic.Int64

	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}

	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	if cfg.Progress > 0 {
		go func() {
			ticker := time.NewTicker(cfg.Progress)
			defer ticker.Stop()
			for {
				select {
				case <-done:
					return
				case <-ticker.C:
					p := processed.Load()
					if p > 0 {
						elapsed := time.Since(start).Seconds()
						rate := float64(p) / elapsed
						fmt.Printf("  [%d/%d] %.1f shots/sec\n", p, total, rate)
					}
				}
			}
		}()
	}

	// Worker pool
	shotChan := make(chan int, workers*2)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range shotChan {
				results[idx] = processShot(cfg, shots[idx])
				processed.Add(1)
			}
		}()
	}

	for i := range shots {
		shotChan <- i
	}
	close(shotChan)

	wg.Wait()
	close(done)

	return results
}

func processShot(cfg Config, shot Shot) Result {
	fail := func(err error) Result {
		return Result{Name: shot.Name, Error: err.Error()}
	}

	if cfg.Width <= 0 || cfg.Height <= 0 {
		return fail(fmt.Errorf("batch: invalid viewport %dx%d", cfg.Width, cfg.Height))
	}

	cam, err := shot.newCamera()
	if err != nil {
		return fail(err)
	}

	var hl scene.Highlight
	ctl := input.NewController(cam, cfg.Scene, &hl, cfg.Width, cfg.Height)

	var pick *picking.Result
	for i, ev := range shot.Inputs {
		res, err := ctl.Apply(ev)
		if err != nil {
			return fail(fmt.Errorf("batch: shot %q input %d: %w", shot.Name, i, err))
		}
		if res != nil {
			pick = res
		}
	}
	if len(shot.Click) == 2 {
		res := ctl.RightClick(shot.Click[0], shot.Click[1])
		pick = &res
	}
	cam.UpdateViewMatrix()

	ss := cfg.Supersample
	if ss < 1 {
		ss = 1
	}
	img := raster.Render(cfg.Scene, &hl, cam, raster.Options{
		Width:    cfg.Width * ss,
		Height:   cfg.Height * ss,
		Textures: cfg.TexResolver,
	})

	// Post-processing: supersample downsample
	if ss > 1 {
		img = postprocess.Downsample(img, cfg.Width, cfg.Height)
	}
	if len(shot.Click) == 2 {
		postprocess.MarkClick(img, int(shot.Click[0]), int(shot.Click[1]), 6, MarkerColor)
	}

	rel := shot.Name + ".webp"
	outPath := filepath.Join(cfg.OutputDir, rel)
	if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
		return fail(err)
	}

	if err := writeImage(outPath, img); err != nil {
		return fail(err)
	}

	return Result{
		Name:    shot.Name,
		Image:   rel,
		Success: true,
		Pick:    pick,
	}
}

// encodeImage writes img as lossless WebP.
var encodeImage = func(w io.Writer, img image.Image) error {
	return nativewebp.Encode(w, img, nil)
}

// writeImage encodes img to path. A partially written file is removed.
func writeImage(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := encodeImage(f, img); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("WebP encode: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return fmt.Errorf("batch: close %s: %w", path, err)
	}
	return nil
}
