package renderer

import (
	"image/color"
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/sakura/config"
	"github.com/pthm-cable/sakura/renderer/raster"
	"github.com/pthm-cable/sakura/shading"
)

// textDepth lifts the label off the background plane.
const textDepth = 0.1

// TextRenderer draws the greeting as a textured quad centred on the origin.
type TextRenderer struct {
	cfg config.TextConfig

	plane       *planeMesh
	texture     rl.Texture2D
	material    rl.Material
	initialized bool
}

// NewTextRenderer creates a text renderer from the text config.
func NewTextRenderer(cfg config.TextConfig) *TextRenderer {
	return &TextRenderer{cfg: cfg}
}

// Init rasterizes the text and uploads it (must be called after raylib window is created).
func (t *TextRenderer) Init() {
	if t.initialized {
		return
	}

	face, err := raster.LoadFace(t.cfg.Font, t.cfg.PixelSize)
	if err != nil {
		slog.Warn("font unavailable, using built-in face", "path", t.cfg.Font, "error", err)
		face = raster.FallbackFace()
	}

	tint := t.cfg.Color
	c := shading.RGBA(mgl32.Vec3{float32(tint[0]), float32(tint[1]), float32(tint[2])}, 1)
	img := raster.Text(t.cfg.Content, face, color.NRGBA{R: c.R, G: c.G, B: c.B, A: 255})
	t.texture = TextureFromImage(img)

	// Keep the glyph aspect; Size is the world height of the label
	h := float32(t.cfg.Size)
	w := h * float32(img.Bounds().Dx()) / float32(img.Bounds().Dy())
	t.plane = uploadPlane(shading.NewPlane(w, h, 1, 1))
	t.material = texturedMaterial(t.texture)

	t.initialized = true
}

// Draw renders the label. Call inside BeginMode3D.
func (t *TextRenderer) Draw() {
	if !t.initialized {
		t.Init()
	}
	rl.DrawMesh(t.plane.mesh, t.material, rl.MatrixTranslate(0, 0, textDepth))
}

// Unload frees resources.
func (t *TextRenderer) Unload() {
	if t.initialized {
		t.plane.unload()
		// Also frees the texture bound to the albedo map
		rl.UnloadMaterial(t.material)
		t.initialized = false
	}
}
