package renderer

import (
	"image/color"
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/sakura/camera"
	"github.com/pthm-cable/sakura/config"
	"github.com/pthm-cable/sakura/renderer/raster"
	"github.com/pthm-cable/sakura/shading"
	"github.com/pthm-cable/sakura/systems"
)

// Fallback petal colours (#ffc0cb, #ff69b4).
var (
	defaultPetalColor1 = mgl32.Vec3{1, 192.0 / 255, 203.0 / 255}
	defaultPetalColor2 = mgl32.Vec3{1, 105.0 / 255, 180.0 / 255}
)

// PetalRenderer draws every petal as a small camera-facing square of a fixed
// pixel size, coloured by height.
type PetalRenderer struct {
	pointSize      float32
	color1, color2 mgl32.Vec3

	sprite rl.Texture2D

	// Per-petal draw data, rebuilt when the field is dirty
	colors []color.RGBA
	sizes  []float32

	initialized bool
}

// NewPetalRenderer creates a petal renderer from the petals config.
func NewPetalRenderer(cfg config.PetalsConfig) *PetalRenderer {
	r := &PetalRenderer{
		pointSize: float32(cfg.PointSize),
		color1:    defaultPetalColor1,
		color2:    defaultPetalColor2,
	}
	if c, err := shading.ParseHexColor(cfg.Color1); err == nil {
		r.color1 = c
	} else {
		slog.Warn("invalid petal color, using default", "color", cfg.Color1, "error", err)
	}
	if c, err := shading.ParseHexColor(cfg.Color2); err == nil {
		r.color2 = c
	} else {
		slog.Warn("invalid petal color, using default", "color", cfg.Color2, "error", err)
	}
	return r
}

// Init creates the sprite texture (must be called after raylib window is created).
func (r *PetalRenderer) Init() {
	if r.initialized {
		return
	}
	r.sprite = TextureFromImage(raster.Solid(1, color.White))
	r.initialized = true
}

// Draw renders all petals. Call inside BeginMode3D. The field's dirty flag is
// cleared once its new positions have been consumed.
func (r *PetalRenderer) Draw(field *systems.PetalField, cam *camera.Camera, rc rl.Camera3D) {
	if !r.initialized {
		r.Init()
	}

	n := field.Count()
	if field.Dirty() || len(r.colors) != n {
		r.rebuild(field, cam)
		field.ClearDirty()
	}

	pos := field.Positions()
	for i := 0; i < n; i++ {
		center := rl.NewVector3(pos[3*i], pos[3*i+1], pos[3*i+2])
		rl.DrawBillboard(rc, r.sprite, center, r.sizes[i], r.colors[i])
	}
}

func (r *PetalRenderer) rebuild(field *systems.PetalField, cam *camera.Camera) {
	n := field.Count()
	if cap(r.colors) < n {
		r.colors = make([]color.RGBA, n)
		r.sizes = make([]float32, n)
	}
	r.colors = r.colors[:n]
	r.sizes = r.sizes[:n]

	for i := 0; i < n; i++ {
		x, y, z := field.Position(i)
		r.colors[i] = shading.RGBA(shading.PetalGradient(r.color1, r.color2, y), 1)
		r.sizes[i] = cam.WorldSizeForPixels(r.pointSize, mgl32.Vec3{x, y, z})
	}
}

// Unload frees resources.
func (r *PetalRenderer) Unload() {
	if r.initialized {
		rl.UnloadTexture(r.sprite)
		r.initialized = false
	}
}
