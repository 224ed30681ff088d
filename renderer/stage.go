package renderer

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/sakura/config"
	"github.com/pthm-cable/sakura/scene"
	"github.com/pthm-cable/sakura/ui"
)

const controlsLegend = "[F1] Overlays  [F8] Status  [F9] Timing  [B] Box  [R] Band  [O] Order"

// Stage draws a complete frame: the 3D layers in painter's order, debug
// geometry, then the 2D overlays. It implements scene.Drawer.
type Stage struct {
	cfg *config.Config

	background *BackgroundRenderer
	text       *TextRenderer
	petals     *PetalRenderer
	instances  *InstanceRenderer

	overlays *ui.OverlayRegistry
	hud      *ui.HUD
	perf     *ui.PerfPanel
	controls *ui.ControlsPanel
}

// NewStage builds every layer. displacement is the fallback noise grid for
// the instance material. Must be called after the window is open.
func NewStage(cfg *config.Config, displacement []float32) *Stage {
	s := &Stage{
		cfg:        cfg,
		background: NewBackgroundRenderer(cfg.Background.Image, float32(cfg.Background.Size)),
		text:       NewTextRenderer(cfg.Text),
		petals:     NewPetalRenderer(cfg.Petals),
		instances:  NewInstanceRenderer(cfg.Instances.Plane, cfg.Material, displacement, cfg.Noise.Size),
		overlays:   ui.NewOverlayRegistry(),
		hud:        ui.NewHUD(10, 10, 220),
		perf:       ui.NewPerfPanel(10, 190, 260),
		controls:   ui.NewControlsPanel(0, 10, 220),
	}

	s.background.Init()
	s.text.Init()
	s.petals.Init()
	s.instances.Init()
	return s
}

// HandleInput toggles overlays from the keyboard.
func (s *Stage) HandleInput() {
	if rl.IsKeyPressed(rl.KeyF1) {
		s.controls.Toggle()
	}
	for key := rl.GetKeyPressed(); key != 0; key = rl.GetKeyPressed() {
		s.overlays.HandleKeyPress(key)
	}
}

// Draw renders one frame of v.
func (s *Stage) Draw(v *scene.View) {
	s.HandleInput()

	rl.BeginDrawing()
	s.DrawScene(v)
	s.drawOverlays(v)
	rl.EndDrawing()
}

// DrawScene clears the current target and draws the 3D layers without any
// 2D overlay. Draw calls it between BeginDrawing and EndDrawing; offscreen
// renders call it inside BeginTextureMode.
func (s *Stage) DrawScene(v *scene.View) {
	cam := Camera3D(v.Camera)
	bg := s.cfg.Camera.Clear
	rl.ClearBackground(rl.NewColor(uint8(bg[0]), uint8(bg[1]), uint8(bg[2]), uint8(bg[3])))

	rl.BeginMode3D(cam)
	s.background.Draw()
	s.text.Draw()
	s.petals.Draw(v.Petals, v.Camera, cam)
	s.instances.Draw(v.Material, v.Instances, v.Camera)
	s.drawDebug3D()
	rl.EndMode3D()
}

func (s *Stage) drawDebug3D() {
	if s.overlays.IsEnabled(ui.OverlayBounds) {
		lo, hi := s.cfg.Derived.InstanceMin, s.cfg.Derived.InstanceMax
		center := rl.NewVector3((lo[0]+hi[0])/2, (lo[1]+hi[1])/2, (lo[2]+hi[2])/2)
		size := rl.NewVector3(hi[0]-lo[0], hi[1]-lo[1], hi[2]-lo[2])
		rl.DrawCubeWiresV(center, size, rl.SkyBlue)
	}

	if s.overlays.IsEnabled(ui.OverlayRecycleBand) {
		p := s.cfg.Petals
		halfX := float32(p.SpreadX / 2)
		halfZ := float32(p.RadiusMax)
		drawRect(float32(p.Floor), halfX, halfZ, rl.Red)
		drawRect(float32(p.Ceiling), halfX, halfZ, rl.Green)
	}
}

// drawRect outlines the y = height rectangle spanning ±halfX and ±halfZ.
func drawRect(height, halfX, halfZ float32, col rl.Color) {
	a := rl.NewVector3(-halfX, height, -halfZ)
	b := rl.NewVector3(halfX, height, -halfZ)
	c := rl.NewVector3(halfX, height, halfZ)
	d := rl.NewVector3(-halfX, height, halfZ)
	rl.DrawLine3D(a, b, col)
	rl.DrawLine3D(b, c, col)
	rl.DrawLine3D(c, d, col)
	rl.DrawLine3D(d, a, col)
}

func (s *Stage) drawOverlays(v *scene.View) {
	if s.overlays.IsEnabled(ui.OverlayDrawOrder) {
		points := instanceCenters(v.Instances)
		for rank, i := range v.Camera.BackToFront(points) {
			p := points[i]
			sx, sy, ok := v.Camera.WorldToScreen(p)
			if !ok {
				continue
			}
			rl.DrawText(fmt.Sprintf("%d", rank), int32(sx), int32(sy), 14, rl.Yellow)
		}
	}

	if s.overlays.IsEnabled(ui.OverlayHUD) {
		s.hud.Draw(ui.HUDData{
			Title:     s.cfg.Screen.Title,
			Frame:     v.Frame,
			Elapsed:   v.Elapsed,
			UTime:     v.Material.Time,
			ColorB:    v.Material.Color[2],
			Seed:      v.Seed,
			Petals:    v.Petals.Count(),
			Recycled:  v.Petals.Recycled(),
			Instances: len(v.Instances),
			FPS:       rl.GetFPS(),
		})
	}
	if s.overlays.IsEnabled(ui.OverlayPerf) {
		s.perf.Draw(v.Perf)
	}

	width := int32(rl.GetScreenWidth())
	s.controls.SetPosition(width-230, 10)
	s.controls.Draw(s.overlays)
	ui.DrawControls(int32(rl.GetScreenHeight()), controlsLegend)
}

// Unload frees every layer.
func (s *Stage) Unload() {
	s.instances.Unload()
	s.petals.Unload()
	s.text.Unload()
	s.background.Unload()
}
