package renderer

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/sakura/renderer/raster"
	"github.com/pthm-cable/sakura/shading"
)

// BackgroundRenderer draws the image plane behind the scene.
type BackgroundRenderer struct {
	imagePath string
	size      float32

	plane       *planeMesh
	texture     rl.Texture2D
	material    rl.Material
	initialized bool
}

// NewBackgroundRenderer creates a renderer for a size x size plane textured
// from imagePath.
func NewBackgroundRenderer(imagePath string, size float32) *BackgroundRenderer {
	return &BackgroundRenderer{
		imagePath: imagePath,
		size:      size,
	}
}

// Init uploads the plane and texture (must be called after raylib window is created).
func (b *BackgroundRenderer) Init() {
	if b.initialized {
		return
	}

	b.plane = uploadPlane(shading.NewPlane(b.size, b.size, 1, 1))
	b.texture = LoadTexture(b.imagePath, raster.Solid(4, color.NRGBA{R: 24, G: 16, B: 32, A: 255}))
	b.material = texturedMaterial(b.texture)

	b.initialized = true
}

// Draw renders the plane at the origin. Call inside BeginMode3D.
func (b *BackgroundRenderer) Draw() {
	if !b.initialized {
		b.Init()
	}
	rl.DrawMesh(b.plane.mesh, b.material, rl.MatrixIdentity())
}

// Unload frees resources.
func (b *BackgroundRenderer) Unload() {
	if b.initialized {
		b.plane.unload()
		// Also frees the texture bound to the albedo map
		rl.UnloadMaterial(b.material)
		b.initialized = false
	}
}
