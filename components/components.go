// Package components defines ECS components for the scene.
package components

// Instance marks an entity as a placed clone of the shared template plane.
type Instance struct {
	Index int // insertion order, 0-based
}

// Bounds is an axis-aligned box. Min is inclusive, Max exclusive.
type Bounds struct {
	Min, Max [3]float32
}

// Contains reports whether t lies inside the half-open box.
func (b Bounds) Contains(t Transform) bool {
	p := [3]float32{t.X, t.Y, t.Z}
	for i := range p {
		if p[i] < b.Min[i] || p[i] >= b.Max[i] {
			return false
		}
	}
	return true
}
