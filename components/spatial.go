package components

// Transform represents an instance's world position.
// Instances never rotate or scale; the shared template owns orientation.
type Transform struct {
	X, Y, Z float32
}
