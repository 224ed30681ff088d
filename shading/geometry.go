package shading

// Plane is an indexed grid of vertices lying in the XY plane, facing +Z.
type Plane struct {
	Vertices  []float32 // xyz per vertex
	Normals   []float32 // xyz per vertex
	Texcoords []float32 // uv per vertex
	Indices   []uint16  // three per triangle
}

// VertexCount returns the number of vertices.
func (p Plane) VertexCount() int {
	return len(p.Vertices) / 3
}

// TriangleCount returns the number of triangles.
func (p Plane) TriangleCount() int {
	return len(p.Indices) / 3
}

// NewPlane builds a width x height plane centred on the origin with segX by segY
// quads. Row 0 is the top edge (v = 1), matching the usual web-engine layout.
func NewPlane(width, height float32, segX, segY int) Plane {
	if segX < 1 {
		segX = 1
	}
	if segY < 1 {
		segY = 1
	}

	halfW := width / 2
	halfH := height / 2
	gridX1 := segX + 1
	gridY1 := segY + 1
	segW := width / float32(segX)
	segH := height / float32(segY)

	p := Plane{
		Vertices:  make([]float32, 0, gridX1*gridY1*3),
		Normals:   make([]float32, 0, gridX1*gridY1*3),
		Texcoords: make([]float32, 0, gridX1*gridY1*2),
		Indices:   make([]uint16, 0, segX*segY*6),
	}

	for iy := 0; iy < gridY1; iy++ {
		y := float32(iy)*segH - halfH
		for ix := 0; ix < gridX1; ix++ {
			x := float32(ix)*segW - halfW
			p.Vertices = append(p.Vertices, x, -y, 0)
			p.Normals = append(p.Normals, 0, 0, 1)
			p.Texcoords = append(p.Texcoords, float32(ix)/float32(segX), 1-float32(iy)/float32(segY))
		}
	}

	for iy := 0; iy < segY; iy++ {
		for ix := 0; ix < segX; ix++ {
			a := uint16(ix + gridX1*iy)
			b := uint16(ix + gridX1*(iy+1))
			c := uint16(ix + 1 + gridX1*(iy+1))
			d := uint16(ix + 1 + gridX1*iy)
			p.Indices = append(p.Indices, a, b, d, b, c, d)
		}
	}

	return p
}
