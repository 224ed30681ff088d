// Package camera describes the fixed perspective camera looking at the scene.
package camera

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/sakura/config"
)

// Camera is a perspective camera on the +Z axis looking at the origin.
// The viewport follows the window through Resize.
type Camera struct {
	// Position and Target in world coordinates
	Position mgl32.Vec3
	Target   mgl32.Vec3
	Up       mgl32.Vec3

	// Vertical field of view in degrees
	Fovy float32

	// Clip planes
	Near, Far float32

	// Viewport dimensions (screen size)
	ViewportW, ViewportH float32
}

// New creates a camera for the given viewport from the camera config.
func New(viewportW, viewportH float32, cfg config.CameraConfig) *Camera {
	if viewportW <= 0 {
		viewportW = 1
	}
	if viewportH <= 0 {
		viewportH = 1
	}
	return &Camera{
		Position:  mgl32.Vec3{0, 0, float32(cfg.Z)},
		Target:    mgl32.Vec3{0, 0, 0},
		Up:        mgl32.Vec3{0, 1, 0},
		Fovy:      float32(cfg.Fovy),
		Near:      float32(cfg.Near),
		Far:       float32(cfg.Far),
		ViewportW: viewportW,
		ViewportH: viewportH,
	}
}

// Resize updates the viewport after a window resize. Non-positive sizes
// (a minimized window) are ignored.
func (c *Camera) Resize(viewportW, viewportH float32) {
	if viewportW <= 0 || viewportH <= 0 {
		return
	}
	c.ViewportW = viewportW
	c.ViewportH = viewportH
}

// Aspect returns viewport width over height.
func (c *Camera) Aspect() float32 {
	return c.ViewportW / c.ViewportH
}

// View returns the world-to-camera matrix.
func (c *Camera) View() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Target, c.Up)
}

// Projection returns the perspective projection matrix.
func (c *Camera) Projection() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.Fovy), c.Aspect(), c.Near, c.Far)
}

// WorldToScreen projects a world point to pixel coordinates (origin top-left).
// ok is false when the point is behind the camera.
func (c *Camera) WorldToScreen(p mgl32.Vec3) (sx, sy float32, ok bool) {
	clip := c.Projection().Mul4(c.View()).Mul4x1(p.Vec4(1))
	if clip.W() <= 0 {
		return 0, 0, false
	}
	ndcX := clip.X() / clip.W()
	ndcY := clip.Y() / clip.W()
	sx = (ndcX + 1) / 2 * c.ViewportW
	sy = (1 - ndcY) / 2 * c.ViewportH
	return sx, sy, true
}

// VisibleHeight returns the world-space height of the view at distance d.
func (c *Camera) VisibleHeight(d float32) float32 {
	half := float64(mgl32.DegToRad(c.Fovy)) / 2
	return 2 * d * float32(math.Tan(half))
}

// WorldSizeForPixels returns the world-space size that covers px screen pixels
// at the depth of p.
func (c *Camera) WorldSizeForPixels(px float32, p mgl32.Vec3) float32 {
	d := c.Position.Sub(p).Len()
	return px * c.VisibleHeight(d) / c.ViewportH
}

// BackToFront returns the indices of points ordered from farthest to nearest
// to the camera. Ties keep their input order.
func (c *Camera) BackToFront(points []mgl32.Vec3) []int {
	order := make([]int, len(points))
	dist := make([]float32, len(points))
	for i, p := range points {
		order[i] = i
		dist[i] = c.Position.Sub(p).LenSqr()
	}
	sort.SliceStable(order, func(a, b int) bool {
		return dist[order[a]] > dist[order[b]]
	})
	return order
}
