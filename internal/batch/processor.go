// Package batch renders turntable frames of a mesh on a worker pool.
package batch

import (
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"donut-viewer/internal/objmesh"
	"donut-viewer/internal/postprocess"
	"donut-viewer/internal/raster"

	"github.com/HugoSmits86/nativewebp"
)

// Config holds all shared resources for a batch run. Mesh and Texture are
// read-only and shared by every worker.
type Config struct {
	Mesh        *objmesh.Mesh
	Texture     *image.NRGBA // may be nil
	OutputDir   string
	Width       int
	Height      int
	Supersample int
	Workers     int
	Options     raster.Options

	// Progress, when set, receives periodic progress lines.
	Progress func(done, total int, rate float64)
}

// Result holds the outcome of rendering one frame.
type Result struct {
	Frame   int
	Angle   float32
	File    string // relative to OutputDir
	Success bool
	Error   string
}

// FrameAngle returns the spin of frame i out of n, evenly spaced over 360°.
func FrameAngle(i, n int) float32 {
	if n <= 0 {
		return 0
	}
	return float32(i) * 360 / float32(n)
}

// FrameFile is the output name of frame i.
func FrameFile(i int) string {
	return fmt.Sprintf("frame_%03d.webp", i)
}

// Run renders frames evenly spaced turntable frames using a worker pool.
func Run(cfg Config, frames int) []Result {
	if frames <= 0 {
		return nil
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}
	results := make([]Result, frames)
	var processed atomic.Int64

	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				p := processed.Load()
				if p > 0 && cfg.Progress != nil {
					rate := float64(p) / time.Since(start).Seconds()
					cfg.Progress(int(p), frames, rate)
				}
			}
		}
	}()

	frameChan := make(chan int, workers*2)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range frameChan {
				results[i] = processFrame(cfg, i, frames)
				processed.Add(1)
			}
		}()
	}

	for i := 0; i < frames; i++ {
		frameChan <- i
	}
	close(frameChan)

	wg.Wait()
	close(done)

	return results
}

func processFrame(cfg Config, i, frames int) Result {
	res := Result{Frame: i, Angle: FrameAngle(i, frames), File: FrameFile(i)}

	img := RenderFrame(cfg, res.Angle)

	outPath := filepath.Join(cfg.OutputDir, res.File)
	if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
		res.Error = err.Error()
		return res
	}

	if err := writeWebP(outPath, img); err != nil {
		res.Error = err.Error()
		return res
	}

	res.Success = true
	return res
}

// encodeWebP is the frame encoder. Output is lossless.
var encodeWebP = func(w io.Writer, img image.Image) error {
	return nativewebp.Encode(w, img, nil)
}

// writeWebP encodes img to path. A failed write leaves no file behind.
func writeWebP(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := encodeWebP(f, img); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("WebP encode: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}

// RenderFrame draws the mesh spun by angle degrees at the supersampled size
// and scales it down to Width×Height.
func RenderFrame(cfg Config, angle float32) *image.NRGBA {
	ss := cfg.Supersample
	if ss < 1 {
		ss = 1
	}
	view := raster.DefaultView(cfg.Width*ss, cfg.Height*ss)
	view.Spin = angle

	img := raster.RenderMesh(cfg.Mesh, cfg.Texture, view, cfg.Options)
	if ss > 1 {
		img = postprocess.Downsample(img, cfg.Width, cfg.Height)
	}
	return img
}
