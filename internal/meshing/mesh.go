package meshing

import (
	"voxel-island/internal/world"
)

const (
	// Floats per vertex in each buffer
	PositionStride = 3
	TexCoordStride = 2

	VerticesPerFace = 4
	IndicesPerFace  = 6

	// Worst case: every block of a chunk shows all six faces
	MaxFaces    = world.ChunkVolume * world.NumFaces
	MaxVertices = MaxFaces * VerticesPerFace
	MaxIndices  = MaxFaces * IndicesPerFace
)

// Mesh is the renderable geometry of one chunk.
// Positions are chunk-local; the chunk origin is applied at draw time.
type Mesh struct {
	Vertices  []float32 // x,y,z per vertex
	TexCoords []float32 // u,v per vertex
	Indices   []uint32  // two triangles per face
}

// newMesh allocates buffers sized for the worst case
func newMesh() *Mesh {
	return &Mesh{
		Vertices:  make([]float32, 0, MaxVertices*PositionStride),
		TexCoords: make([]float32, 0, MaxVertices*TexCoordStride),
		Indices:   make([]uint32, 0, MaxIndices),
	}
}

// VertexCount returns the number of emitted vertices
func (m *Mesh) VertexCount() int {
	return len(m.Vertices) / PositionStride
}

// TriangleCount returns the number of emitted triangles
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// FaceCount returns the number of emitted quads
func (m *Mesh) FaceCount() int {
	return m.VertexCount() / VerticesPerFace
}

// Empty reports whether the mesh has no geometry
func (m *Mesh) Empty() bool {
	return m == nil || len(m.Indices) == 0
}

// Compact copies the used prefix into right-sized buffers
func (m *Mesh) Compact() *Mesh {
	out := &Mesh{
		Vertices:  make([]float32, len(m.Vertices)),
		TexCoords: make([]float32, len(m.TexCoords)),
		Indices:   make([]uint32, len(m.Indices)),
	}
	copy(out.Vertices, m.Vertices)
	copy(out.TexCoords, m.TexCoords)
	copy(out.Indices, m.Indices)
	return out
}
