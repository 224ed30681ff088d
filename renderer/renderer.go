// Package renderer draws the scene with raylib. Every type here needs an open
// window; CPU-side image work lives in renderer/raster.
package renderer

import (
	"unsafe"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/sakura/camera"
	"github.com/pthm-cable/sakura/shading"
)

// Camera3D converts the scene camera into a raylib camera.
// raylib uses its own fixed clip planes, so Near and Far are not carried over.
func Camera3D(c *camera.Camera) rl.Camera3D {
	return rl.NewCamera3D(
		rl.NewVector3(c.Position.X(), c.Position.Y(), c.Position.Z()),
		rl.NewVector3(c.Target.X(), c.Target.Y(), c.Target.Z()),
		rl.NewVector3(c.Up.X(), c.Up.Y(), c.Up.Z()),
		c.Fovy,
		rl.CameraPerspective,
	)
}

// planeMesh is a GPU copy of a shading.Plane. The Go slices stay referenced so
// the memory behind the mesh pointers outlives the upload.
type planeMesh struct {
	plane shading.Plane
	mesh  rl.Mesh
}

func uploadPlane(p shading.Plane) *planeMesh {
	pm := &planeMesh{plane: p}
	pm.mesh = rl.Mesh{
		VertexCount:   int32(p.VertexCount()),
		TriangleCount: int32(p.TriangleCount()),
		Vertices:      unsafe.SliceData(pm.plane.Vertices),
		Normals:       unsafe.SliceData(pm.plane.Normals),
		Texcoords:     unsafe.SliceData(pm.plane.Texcoords),
		Indices:       unsafe.SliceData(pm.plane.Indices),
	}
	rl.UploadMesh(&pm.mesh, false)
	return pm
}

func (pm *planeMesh) unload() {
	rl.UnloadMesh(&pm.mesh)
}

// texturedMaterial returns a default material with tex bound to the albedo map.
func texturedMaterial(tex rl.Texture2D) rl.Material {
	mat := rl.LoadMaterialDefault()
	rl.SetMaterialTexture(&mat, rl.MapAlbedo, tex)
	return mat
}
