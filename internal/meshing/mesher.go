package meshing

import (
	"errors"
	"fmt"
	"time"

	"voxel-island/internal/world"
)

var ErrCapacityExceeded = errors.New("mesh buffer capacity exceeded")

// NeighborLookup answers solidity queries in world block coordinates.
// It lets faces on a chunk border be culled against the adjoining chunk.
type NeighborLookup interface {
	SolidAt(x, y, z int) bool
}

// Option configures a Mesher
type Option func(*Mesher)

// WithAtlas sets the atlas grid used for texture coordinates
func WithAtlas(a Atlas) Option {
	return func(m *Mesher) { m.atlas = a }
}

// WithNeighbors makes border faces consult the lookup instead of treating
// everything outside the chunk as air.
func WithNeighbors(n NeighborLookup) Option {
	return func(m *Mesher) { m.neighbors = n }
}

// WithMetrics records every build into the given metrics
func WithMetrics(mt *Metrics) Option {
	return func(m *Mesher) { m.metrics = mt }
}

// WithFaceLimit caps the faces a single mesh may hold. Values outside
// (0, MaxFaces] keep the MaxFaces default.
func WithFaceLimit(n int) Option {
	return func(m *Mesher) {
		if n > 0 && n <= MaxFaces {
			m.maxFaces = n
		}
	}
}

// Mesher turns a chunk's block grid into a face-culled triangle mesh
type Mesher struct {
	atlas     Atlas
	neighbors NeighborLookup
	metrics   *Metrics
	maxFaces  int
}

// NewMesher creates a mesher. By default it uses DefaultAtlas and treats
// blocks outside the chunk as air.
func NewMesher(opts ...Option) *Mesher {
	m := &Mesher{atlas: DefaultAtlas, maxFaces: MaxFaces}
	for _, o := range opts {
		o(m)
	}
	return m
}

// Atlas returns the atlas grid used for texture coordinates
func (m *Mesher) Atlas() Atlas {
	return m.atlas
}

// BuildMesh emits one quad for every solid block face whose neighbor is not solid.
// Cells are visited in x, y, z nesting order, faces in -X, +X, -Y, +Y, -Z, +Z order.
// The returned mesh is right-sized and owned by the caller.
func (m *Mesher) BuildMesh(c *world.Chunk) (*Mesh, error) {
	if c == nil {
		return nil, errors.New("nil chunk")
	}
	start := time.Now()

	mesh := getScratch()
	defer putScratch(mesh)
	baseX := c.Coord.X * world.ChunkSize
	baseZ := c.Coord.Z * world.ChunkSize

	for x := range world.ChunkSize {
		for y := range world.ChunkSize {
			for z := range world.ChunkSize {
				bt := c.GetBlock(x, y, z)
				if !bt.IsSolid() {
					continue
				}
				uvs := m.atlas.faceUVs(bt)
				for f := range world.BlockFace(world.NumFaces) {
					dx, dy, dz := f.Offset()
					if m.neighborSolid(c, x+dx, y+dy, z+dz, baseX, baseZ) {
						continue
					}
					if err := m.emitFace(mesh, f, x, y, z, &uvs); err != nil {
						return nil, fmt.Errorf("chunk %v: %w", c.Coord, err)
					}
				}
			}
		}
	}

	out := mesh.Compact()
	if m.metrics != nil {
		m.metrics.observe(out, time.Since(start))
	}
	return out, nil
}

// neighborSolid looks up a chunk-local cell that may lie outside the chunk
func (m *Mesher) neighborSolid(c *world.Chunk, x, y, z, baseX, baseZ int) bool {
	if x >= 0 && x < world.ChunkSize && y >= 0 && y < world.ChunkSize && z >= 0 && z < world.ChunkSize {
		return c.IsSolid(x, y, z)
	}
	if m.neighbors == nil {
		return false
	}
	return m.neighbors.SolidAt(baseX+x, y, baseZ+z)
}

func (m *Mesher) emitFace(mesh *Mesh, f world.BlockFace, x, y, z int, uvs *[VerticesPerFace][2]float32) error {
	if mesh.FaceCount() >= m.maxFaces {
		return fmt.Errorf("%w: %d faces", ErrCapacityExceeded, mesh.FaceCount()+1)
	}

	base := uint32(mesh.VertexCount())
	ox, oy, oz := float32(x)*world.BlockSize, float32(y)*world.BlockSize, float32(z)*world.BlockSize
	for i, corner := range faceCorners[f] {
		mesh.Vertices = append(mesh.Vertices,
			ox+corner[0]*world.BlockSize,
			oy+corner[1]*world.BlockSize,
			oz+corner[2]*world.BlockSize,
		)
		mesh.TexCoords = append(mesh.TexCoords, uvs[i][0], uvs[i][1])
	}
	for _, idx := range quadIndices {
		mesh.Indices = append(mesh.Indices, base+idx)
	}
	return nil
}
