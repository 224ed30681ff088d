package renderer

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/sakura/camera"
	"github.com/pthm-cable/sakura/components"
	"github.com/pthm-cable/sakura/config"
	"github.com/pthm-cable/sakura/renderer/raster"
	"github.com/pthm-cable/sakura/shading"
	"github.com/pthm-cable/sakura/systems"
)

// InstanceRenderer owns the template plane and its shader material and draws
// it once at the origin and once per placed instance.
type InstanceRenderer struct {
	planeCfg     config.PlaneConfig
	materialCfg  config.MaterialConfig
	displacement []float32
	noiseSize    int

	plane    *planeMesh
	shader   rl.Shader
	material rl.Material
	timeLoc  int32
	colorLoc int32

	initialized bool
}

// NewInstanceRenderer creates the template renderer. displacement is the
// size*size fallback noise grid used when the displacement image is missing.
func NewInstanceRenderer(plane config.PlaneConfig, material config.MaterialConfig, displacement []float32, size int) *InstanceRenderer {
	return &InstanceRenderer{
		planeCfg:     plane,
		materialCfg:  material,
		displacement: displacement,
		noiseSize:    size,
	}
}

// Init compiles the shader and builds the material (must be called after
// raylib window is created).
func (r *InstanceRenderer) Init() {
	if r.initialized {
		return
	}

	r.plane = uploadPlane(shading.NewPlane(
		float32(r.planeCfg.Width), float32(r.planeCfg.Height),
		r.planeCfg.ResX, r.planeCfg.ResZ,
	))

	r.shader = rl.LoadShaderFromMemory(shading.InstanceVertexShader, shading.InstanceFragmentShader)
	r.timeLoc = rl.GetShaderLocation(r.shader, "uTime")
	r.colorLoc = rl.GetShaderLocation(r.shader, "uColor")

	// DrawMesh binds material map i to the sampler at location ShaderLocMapAlbedo+i
	r.shader.UpdateLocation(rl.ShaderLocMapAlbedo, rl.GetShaderLocation(r.shader, "uTexture"))
	r.shader.UpdateLocation(rl.ShaderLocMapMetalness, rl.GetShaderLocation(r.shader, "udisplaymanet"))

	tex := LoadTexture(r.materialCfg.Texture, raster.Solid(4, color.NRGBA{R: 255, G: 192, B: 203, A: 255}))
	disp := LoadTexture(r.materialCfg.Displacement, raster.Displacement(r.displacement, r.noiseSize))
	// Out-of-range noise lookups read the edge texel
	rl.SetTextureWrap(disp, rl.WrapClamp)

	r.material = rl.LoadMaterialDefault()
	r.material.Shader = r.shader
	rl.SetMaterialTexture(&r.material, rl.MapAlbedo, tex)
	rl.SetMaterialTexture(&r.material, rl.MapMetalness, disp)

	r.initialized = true
}

// Draw uploads dirty uniforms and renders the template at the origin plus one
// copy per transform, farthest first. Call inside BeginMode3D.
func (r *InstanceRenderer) Draw(state *systems.MaterialState, transforms []components.Transform, cam *camera.Camera) {
	if !r.initialized {
		r.Init()
	}

	if state.Dirty {
		rl.SetShaderValue(r.shader, r.timeLoc, []float32{state.Time}, rl.ShaderUniformFloat)
		rl.SetShaderValue(r.shader, r.colorLoc, state.Color[:], rl.ShaderUniformVec3)
		state.Dirty = false
	}

	points := instanceCenters(transforms)

	// Transparent and double sided, without depth writes
	rl.DisableBackfaceCulling()
	rl.DisableDepthMask()
	for _, i := range cam.BackToFront(points) {
		p := points[i]
		rl.DrawMesh(r.plane.mesh, r.material, rl.MatrixTranslate(p.X(), p.Y(), p.Z()))
	}
	rl.EnableDepthMask()
	rl.EnableBackfaceCulling()
}

// instanceCenters lists the template origin followed by every transform.
// With w = 2 the model translation is applied twice and divided back out, so
// a drawn plane is centred on its translation.
func instanceCenters(transforms []components.Transform) []mgl32.Vec3 {
	points := make([]mgl32.Vec3, 0, len(transforms)+1)
	points = append(points, mgl32.Vec3{})
	for _, t := range transforms {
		points = append(points, mgl32.Vec3{t.X, t.Y, t.Z})
	}
	return points
}

// Unload frees resources.
func (r *InstanceRenderer) Unload() {
	if r.initialized {
		r.plane.unload()
		// Frees the shader and both textures
		rl.UnloadMaterial(r.material)
		r.initialized = false
	}
}
