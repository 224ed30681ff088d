// Frame dump tool - steps the scene headlessly and renders one frame to PNG.
//
// Usage: go run ./cmd/framedump -frames 300 -seed 42 -out frame.png
package main

import (
	"flag"
	"fmt"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/sakura/config"
	"github.com/pthm-cable/sakura/renderer"
	"github.com/pthm-cable/sakura/scene"
	"github.com/pthm-cable/sakura/systems"
	"github.com/pthm-cable/sakura/telemetry"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	outPath := flag.String("out", "frame.png", "Output PNG path")
	width := flag.Int("width", 1280, "Render width")
	height := flag.Int("height", 720, "Render height")
	frames := flag.Int64("frames", 120, "Frames to step before rendering")
	seed := flag.Int64("seed", 1, "RNG seed")
	snapshotPath := flag.String("snapshot", "", "Resume from this snapshot before stepping")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	opts := scene.Options{
		Config: cfg,
		Seed:   *seed,
		Width:  *width,
		Height: *height,
	}
	if *snapshotPath != "" {
		snap, err := telemetry.LoadSnapshot(*snapshotPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load snapshot: %v\n", err)
			os.Exit(1)
		}
		opts.Snapshot = snap
	}

	s, err := scene.NewScene(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create scene: %v\n", err)
		os.Exit(1)
	}
	s.RunHeadless(s.Frame() + *frames)

	// Initialize raylib with hidden window
	rl.SetConfigFlags(rl.FlagWindowHidden)
	rl.InitWindow(int32(*width), int32(*height), "Frame Dump")
	defer rl.CloseWindow()

	stage := renderer.NewStage(cfg, systems.GenerateDisplacement(systems.NoiseParamsFromConfig(cfg.Noise)))
	defer stage.Unload()

	target := rl.LoadRenderTexture(int32(*width), int32(*height))
	defer rl.UnloadRenderTexture(target)

	rl.BeginTextureMode(target)
	stage.DrawScene(s.View())
	rl.EndTextureMode()

	// Get image from texture and flip it (OpenGL convention)
	img := rl.LoadImageFromTexture(target.Texture)
	rl.ImageFlipVertical(img)

	success := rl.ExportImage(*img, *outPath)
	rl.UnloadImage(img)

	if success {
		fmt.Printf("Frame %d (uTime %.2f) rendered to: %s (%dx%d)\n",
			s.Frame(), s.Material().Time, *outPath, *width, *height)
	} else {
		fmt.Fprintf(os.Stderr, "Failed to export image\n")
		os.Exit(1)
	}
}
