package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"donut-viewer/internal/batch"
	"donut-viewer/internal/config"
	"donut-viewer/internal/raster"
	"donut-viewer/internal/scene"
	"donut-viewer/internal/texture"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to config.json file")
	dataDir := flag.String("data", "", "Directory holding the mesh and texture (default: auto-detect)")
	meshPath := flag.String("mesh", "", "OBJ mesh (default: donut.obj)")
	texName := flag.String("texture", "", "Texture file or stem (default: donut_texture)")
	outputDir := flag.String("output", "", "Output directory (default: renders)")
	width := flag.Int("width", 0, "Frame width (default: 900)")
	height := flag.Int("height", 0, "Frame height (default: 700)")
	frames := flag.Int("frames", 0, "Number of turntable frames (default: 36)")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	lighting := flag.Bool("lighting", false, "Shade faces with a directional light")
	wireframe := flag.Bool("wireframe", false, "Overlay triangle edges")

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

	// CLI flags override config file
	cfg.Resolve(config.Flags{
		DataDir:   *dataDir,
		Mesh:      *meshPath,
		Texture:   *texName,
		OutputDir: *outputDir,
		Width:     *width,
		Height:    *height,
		Workers:   *workers,
		Frames:    *frames,
		Lighting:  *lighting,
		Wireframe: *wireframe,
	})

	texIndex := texture.BuildIndex(cfg.BaseDir)
	fmt.Printf("Textures: %d indexed\n", texIndex.Len())

	sc, err := scene.Load(cfg.Mesh, cfg.Texture, texture.NewCache(texIndex))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading mesh: %v\n", err)
		os.Exit(1)
	}
	if sc.TextureErr != nil {
		fmt.Fprintf(os.Stderr, "Warning: texture: %v (rendering untextured)\n", sc.TextureErr)
	}

	fmt.Println("Turntable renderer → WebP")
	fmt.Printf("Mesh: %s (%d triangles)\n", cfg.Mesh, sc.Mesh.TriangleCount)
	fmt.Printf("Frames: %d at %dx%d, Workers: %d\n", cfg.Frames, cfg.Width, cfg.Height, cfg.Workers)
	fmt.Printf("Output: %s\n", cfg.OutputDir)
	fmt.Println("------------------------------------------------------------")

	opts := raster.DefaultOptions()
	opts.Lighting = cfg.Lighting
	opts.Wireframe = cfg.Wireframe

	start := time.Now()

	batchCfg := batch.Config{
		Mesh:        sc.Mesh,
		Texture:     sc.Texture,
		OutputDir:   cfg.OutputDir,
		Width:       cfg.Width,
		Height:      cfg.Height,
		Supersample: cfg.Supersample,
		Workers:     cfg.Workers,
		Options:     opts,
		Progress: func(done, total int, rate float64) {
			fmt.Printf("  [%d/%d] %.1f frames/sec\n", done, total, rate)
		},
	}

	results := batch.Run(batchCfg, cfg.Frames)

	elapsed := time.Since(start)
	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs\n", elapsed.Seconds())

	// Count results
	success, failed := 0, 0
	var errors []batch.Result
	for _, r := range results {
		if r.Success {
			success++
		} else {
			failed++
			errors = append(errors, r)
		}
	}

	fmt.Printf("Rendered: %d/%d\n", success, len(results))

	if len(errors) > 0 {
		fmt.Printf("\nFailed (%d):\n", failed)
		limit := 20
		if len(errors) < limit {
			limit = len(errors)
		}
		for _, e := range errors[:limit] {
			fmt.Printf("  frame %d: %s\n", e.Frame, e.Error)
		}
	}

	// Write manifest
	manifest := batch.Manifest{
		Mesh:      cfg.Mesh,
		Triangles: sc.Mesh.TriangleCount,
		Width:     cfg.Width,
		Height:    cfg.Height,
	}
	if sc.Texture != nil {
		manifest.Texture = cfg.Texture
	}
	manifestPath := filepath.Join(cfg.OutputDir, "manifest.json")
	if err := batch.WriteManifest(manifestPath, manifest, results); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: manifest write failed: %v\n", err)
	} else {
		fmt.Printf("Manifest: %s\n", manifestPath)
	}

	if failed > 0 {
		os.Exit(1)
	}
}
