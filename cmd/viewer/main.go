package main

import (
	"flag"
	"log"
	"os"
	"runtime"

	"donut-viewer/internal/config"
	"donut-viewer/internal/orbit"
	"donut-viewer/internal/scene"
	"donut-viewer/internal/texture"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func main() {
	// raylib must run on the main OS thread
	runtime.LockOSThread()

	configFile := flag.String("config", "", "Path to config.json file")
	dataDir := flag.String("data", "", "Directory holding the mesh and texture (default: auto-detect)")
	meshPath := flag.String("mesh", "", "OBJ mesh (default: donut.obj)")
	texName := flag.String("texture", "", "Texture file or stem (default: donut_texture)")
	width := flag.Int("width", 0, "Window width (default: 900)")
	height := flag.Int("height", 0, "Window height (default: 700)")
	wireframe := flag.Bool("wireframe", false, "Start in wireframe mode")
	flag.Parse()

	log.SetFlags(log.Ltime | log.Lshortfile)

	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			log.Fatalf("[Viewer] %v", err)
		}
	}
	cfg.Resolve(config.Flags{
		DataDir:   *dataDir,
		Mesh:      *meshPath,
		Texture:   *texName,
		Width:     *width,
		Height:    *height,
		Wireframe: *wireframe,
	})

	sc, err := scene.Load(cfg.Mesh, cfg.Texture, texture.NewCache(texture.BuildIndex(cfg.BaseDir)))
	if err != nil {
		log.Printf("[Viewer] Failed to load mesh: %v", err)
		os.Exit(1)
	}
	log.Printf("[Viewer] %s: %d triangles", cfg.Mesh, sc.Mesh.TriangleCount)
	if sc.TextureErr != nil {
		log.Printf("[Viewer] Texture unavailable, drawing untextured: %v", sc.TextureErr)
	}

	run(cfg, sc)
}

func run(cfg config.Config, sc *scene.Scene) {
	rl.SetConfigFlags(rl.FlagMsaa4xHint | rl.FlagWindowResizable)
	rl.InitWindow(int32(cfg.Width), int32(cfg.Height), "Textured Donut")
	defer rl.CloseWindow()
	rl.SetTraceLogLevel(rl.LogWarning)
	rl.SetTargetFPS(60)

	// Faces are drawn from both sides.
	rl.DisableBackfaceCulling()

	d := newDonut(sc)
	defer d.Unload()

	// BeginMode3D applies raylib's default clip planes (0.01, 1000).
	cam := rl.Camera3D{
		Position:   rl.Vector3{X: 0, Y: 0, Z: 8},
		Target:     rl.Vector3{},
		Up:         rl.Vector3{X: 0, Y: 1, Z: 0},
		Fovy:       45.0,
		Projection: rl.CameraPerspective,
	}

	var spin orbit.Orbit
	wire := cfg.Wireframe

	for !rl.WindowShouldClose() {
		if rl.IsMouseButtonPressed(rl.MouseLeftButton) {
			spin.Button(true, int(rl.GetMouseX()))
		}
		if rl.IsMouseButtonReleased(rl.MouseLeftButton) {
			spin.Button(false, int(rl.GetMouseX()))
		}
		spin.Move(int(rl.GetMouseX()))
		spin.Tick()

		if rl.IsKeyPressed(rl.KeyW) {
			wire = !wire
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.NewColor(242, 242, 255, 255))
		rl.BeginMode3D(cam)
		d.Draw(spin.AngleY, wire)
		rl.EndMode3D()
		rl.DrawText("Drag: orbit | W: wireframe", 10, 10, 16, rl.Gray)
		rl.EndDrawing()
	}
}
