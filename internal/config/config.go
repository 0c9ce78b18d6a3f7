package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// Defaults for a fresh install: the donut assets next to the binary and a
// 900×700 frame, the size of the viewer window.
const (
	DefaultMesh        = "donut.obj"
	DefaultTexture     = "donut_texture"
	DefaultOutputDir   = "renders"
	DefaultWidth       = 900
	DefaultHeight      = 700
	DefaultSupersample = 2
	DefaultFrames      = 36
)

// Config holds all configurable paths and render settings.
type Config struct {
	// Paths
	BaseDir   string `json:"base_dir"`
	Mesh      string `json:"mesh"`
	Texture   string `json:"texture"` // file path or stem looked up under BaseDir
	OutputDir string `json:"output_dir"`

	// Render settings
	Width       int  `json:"width"`
	Height      int  `json:"height"`
	Supersample int  `json:"supersample"`
	Workers     int  `json:"workers"`
	Frames      int  `json:"frames"`
	Lighting    bool `json:"lighting"`
	Wireframe   bool `json:"wireframe"`
}

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Resolve fills in any empty fields with auto-detected defaults.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	if flags.DataDir != "" {
		c.BaseDir = flags.DataDir
	}
	if flags.Mesh != "" {
		c.Mesh = flags.Mesh
	}
	if flags.Texture != "" {
		c.Texture = flags.Texture
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.Width > 0 {
		c.Width = flags.Width
	}
	if flags.Height > 0 {
		c.Height = flags.Height
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.Frames > 0 {
		c.Frames = flags.Frames
	}
	c.Lighting = c.Lighting || flags.Lighting
	c.Wireframe = c.Wireframe || flags.Wireframe

	if c.BaseDir == "" {
		c.BaseDir = detectBaseDir()
	}

	if c.Mesh == "" {
		c.Mesh = DefaultMesh
	}
	if c.Texture == "" {
		c.Texture = DefaultTexture
	}
	if c.OutputDir == "" {
		c.OutputDir = DefaultOutputDir
	}

	// Resolve relative paths against base dir
	if c.BaseDir != "" {
		c.Mesh = resolvePath(c.BaseDir, c.Mesh)
		c.OutputDir = resolvePath(c.BaseDir, c.OutputDir)
		if filepath.Ext(c.Texture) != "" {
			c.Texture = resolvePath(c.BaseDir, c.Texture)
		}
	}

	if c.Width <= 0 {
		c.Width = DefaultWidth
	}
	if c.Height <= 0 {
		c.Height = DefaultHeight
	}
	if c.Supersample <= 0 {
		c.Supersample = DefaultSupersample
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.Frames <= 0 {
		c.Frames = DefaultFrames
	}
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	DataDir   string
	Mesh      string
	Texture   string
	OutputDir string
	Width     int
	Height    int
	Workers   int
	Frames    int
	Lighting  bool
	Wireframe bool
}

func resolvePath(base, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}

// detectBaseDir looks for the default mesh next to the executable, then in
// the working directory and its parent.
func detectBaseDir() string {
	exe, _ := os.Executable()
	if exe != "" {
		dir := filepath.Dir(exe)
		for _, base := range []string{dir, filepath.Dir(dir), filepath.Join(dir, "..", "..")} {
			if _, err := os.Stat(filepath.Join(base, DefaultMesh)); err == nil {
				return base
			}
		}
	}

	cwd, _ := os.Getwd()
	if _, err := os.Stat(filepath.Join(cwd, DefaultMesh)); err == nil {
		return cwd
	}

	parent := filepath.Dir(cwd)
	if _, err := os.Stat(filepath.Join(parent, DefaultMesh)); err == nil {
		return parent
	}

	return ""
}
