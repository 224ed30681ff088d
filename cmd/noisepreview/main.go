// Displacement noise preview tool - tunes the fallback displacement texture
// with sliders and writes it out as a PNG.
//
// Usage: go run ./cmd/noisepreview -out image/displacement.png
package main

import (
	"flag"
	"fmt"
	"image/color"
	"image/png"
	"os"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/sakura/config"
	"github.com/pthm-cable/sakura/renderer/raster"
	"github.com/pthm-cable/sakura/shading"
	"github.com/pthm-cable/sakura/systems"
)

const (
	windowWidth  = 1000
	windowHeight = 640
	previewSize  = 512
	panelWidth   = windowWidth - previewSize - 30
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	outPath := flag.String("out", "displacement.png", "PNG written when S is pressed")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	defaults := systems.NoiseParamsFromConfig(cfg.Noise)
	params := defaults

	rl.InitWindow(windowWidth, windowHeight, "Displacement Noise Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	// Preview is regenerated at a fixed size; the written PNG uses params.Size
	const gridSize = 256
	img := rl.GenImageColor(gridSize, gridSize, rl.Black)
	texture := rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	defer rl.UnloadTexture(texture)

	var grid []float32
	needsRegen := true
	status := ""

	for !rl.WindowShouldClose() {
		if needsRegen {
			preview := params
			preview.Size = gridSize
			grid = systems.GenerateDisplacement(preview)
			updateTexture(texture, grid)
			needsRegen = false
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		rl.DrawTexturePro(
			texture,
			rl.Rectangle{X: 0, Y: 0, Width: gridSize, Height: gridSize},
			rl.Rectangle{X: 10, Y: 10, Width: previewSize, Height: previewSize},
			rl.Vector2{X: 0, Y: 0},
			0,
			rl.White,
		)
		rl.DrawRectangleLines(10, 10, previewSize, previewSize, rl.DarkGray)

		var total float32
		var minVal, maxVal float32 = 1, 0
		for _, v := range grid {
			total += v
			minVal = min(minVal, v)
			maxVal = max(maxVal, v)
		}
		avg := total / float32(len(grid))

		statsY := int32(previewSize + 25)
		rl.DrawText(fmt.Sprintf("Min: %.3f  Max: %.3f  Avg: %.3f", minVal, maxVal, avg), 15, statsY, 16, rl.DarkGray)
		rl.DrawText(fmt.Sprintf("Lift range: %.3f .. %.3f", minVal*shading.NoiseIntensity, maxVal*shading.NoiseIntensity), 15, statsY+20, 16, rl.DarkGray)
		if status != "" {
			rl.DrawText(status, 15, statsY+40, 14, rl.Gray)
		}

		panelX := float32(previewSize + 20)
		panelY := float32(10)

		rl.DrawText("Displacement Noise", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		scale := float32(params.Scale)
		if slider(&panelY, panelX, "Scale (base frequency)", "1", "16", &scale, 1, 16, "%.1f") {
			params.Scale = float64(scale)
			needsRegen = true
		}

		octaves := float32(params.Octaves)
		if slider(&panelY, panelX, "Octaves", "1", "8", &octaves, 1, 8, "%.0f") && int(octaves) != params.Octaves {
			params.Octaves = int(octaves)
			needsRegen = true
		}

		lacunarity := float32(params.Lacunarity)
		if slider(&panelY, panelX, "Lacunarity (frequency multiplier)", "1.5", "4.0", &lacunarity, 1.5, 4, "%.2f") {
			params.Lacunarity = float64(lacunarity)
			needsRegen = true
		}

		gain := float32(params.Gain)
		if slider(&panelY, panelX, "Gain (amplitude multiplier)", "0.2", "0.9", &gain, 0.2, 0.9, "%.2f") {
			params.Gain = float64(gain)
			needsRegen = true
		}

		seed := float32(params.Seed)
		if slider(&panelY, panelX, "Seed", "0", "99999", &seed, 0, 99999, "%.0f") && int64(seed) != params.Seed {
			params.Seed = int64(seed)
			needsRegen = true
		}
		panelY += 10

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Random Seed") {
			params.Seed = int64(rl.GetRandomValue(0, 99999))
			needsRegen = true
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Reset All") {
			params = defaults
			needsRegen = true
		}
		panelY += 55

		yaml := yamlSection(params)
		rl.DrawText("YAML Config:", int32(panelX), int32(panelY), 16, rl.DarkGray)
		panelY += 25
		rl.DrawText(yaml, int32(panelX), int32(panelY), 14, rl.Gray)

		rl.DrawText("C: copy YAML   S: write PNG", int32(panelX), windowHeight-30, 12, rl.LightGray)

		if rl.IsKeyPressed(rl.KeyC) {
			rl.SetClipboardText(yaml)
			status = "YAML copied"
		}
		if rl.IsKeyPressed(rl.KeyS) {
			if err := writePNG(*outPath, params); err != nil {
				status = err.Error()
			} else {
				status = "wrote " + *outPath
			}
		}

		rl.EndDrawing()
	}
}

// slider draws a labelled slider, advances y and reports whether the value changed.
func slider(y *float32, x float32, label, lo, hi string, value *float32, minV, maxV float32, format string) bool {
	rl.DrawText(label, int32(x), int32(*y), 14, rl.Gray)
	*y += 18
	next := gui.SliderBar(
		rl.Rectangle{X: x, Y: *y, Width: float32(panelWidth - 80), Height: 20},
		lo, hi,
		*value, minV, maxV,
	)
	rl.DrawText(fmt.Sprintf(format, *value), int32(x+float32(panelWidth-70)), int32(*y+2), 16, rl.DarkGray)
	*y += 35

	changed := next != *value
	*value = next
	return changed
}

func yamlSection(p systems.NoiseParams) string {
	return fmt.Sprintf(`noise:
  size: %d
  scale: %.1f
  octaves: %d
  lacunarity: %.2f
  gain: %.2f
  seed: %d`,
		p.Size, p.Scale, p.Octaves, p.Lacunarity, p.Gain, p.Seed)
}

func writePNG(path string, p systems.NoiseParams) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	if err := png.Encode(f, raster.Displacement(systems.GenerateDisplacement(p), p.Size)); err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return nil
}

// updateTexture uploads the grid as grey levels.
func updateTexture(texture rl.Texture2D, grid []float32) {
	pixels := make([]color.RGBA, len(grid))
	for i, v := range grid {
		g := uint8(v*255 + 0.5)
		pixels[i] = color.RGBA{R: g, G: g, B: g, A: 255}
	}
	rl.UpdateTexture(texture, pixels)
}
