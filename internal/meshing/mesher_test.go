package meshing

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voxel-island/internal/world"
)

func buildOrFail(t *testing.T, m *Mesher, c *world.Chunk) *Mesh {
	t.Helper()
	mesh, err := m.BuildMesh(c)
	require.NoError(t, err)
	return mesh
}

func TestEmptyChunkHasNoGeometry(t *testing.T) {
	mesh := buildOrFail(t, NewMesher(), world.NewChunk(0, 0))
	assert.True(t, mesh.Empty())
	assert.Zero(t, mesh.VertexCount())
}

func TestSingleBlockMesh(t *testing.T) {
	c := world.NewChunk(0, 0)
	c.SetBlock(5, 5, 5, world.BlockTypeGrass)

	mesh := buildOrFail(t, NewMesher(), c)
	assert.Equal(t, 6, mesh.FaceCount())
	assert.Equal(t, 24, mesh.VertexCount())
	assert.Len(t, mesh.Indices, 36)
	assert.Len(t, mesh.TexCoords, 24*TexCoordStride)
}

func TestTwoBlocksTouchingCullSharedFace(t *testing.T) {
	c := world.NewChunk(0, 0)
	c.SetBlock(3, 3, 3, world.BlockTypeStone)
	c.SetBlock(4, 3, 3, world.BlockTypeStone)

	mesh := buildOrFail(t, NewMesher(), c)
	// 12 faces minus the two touching ones; no merging
	assert.Equal(t, 10, mesh.FaceCount())

	// Nothing is emitted on the shared plane x=4
	for i := 0; i < mesh.VertexCount(); i += VerticesPerFace {
		allOnPlane := true
		for k := 0; k < VerticesPerFace; k++ {
			if mesh.Vertices[(i+k)*PositionStride] != 4 {
				allOnPlane = false
			}
		}
		assert.False(t, allOnPlane, "face at vertex %d lies on the shared plane", i)
	}
}

func TestTwoBlocksSeparated(t *testing.T) {
	c := world.NewChunk(0, 0)
	c.SetBlock(0, 0, 0, world.BlockTypeDirt)
	c.SetBlock(2, 0, 0, world.BlockTypeDirt)

	mesh := buildOrFail(t, NewMesher(), c)
	assert.Equal(t, 12, mesh.FaceCount())
}

func TestFullChunkEmitsOnlyShell(t *testing.T) {
	c := world.NewChunk(0, 0)
	world.NewFlatGenerator(world.ChunkSize).PopulateChunk(c)

	mesh := buildOrFail(t, NewMesher(), c)
	// Border faces are always drawn without a neighbor lookup
	assert.Equal(t, 6*world.ChunkArea, mesh.FaceCount())
}

func TestChunkBorderFacesAreDrawnWithoutNeighbors(t *testing.T) {
	w := world.NewEmpty(2, 1)
	w.Set(world.ChunkSize-1, 0, 0, world.BlockTypeGrass)
	w.Set(world.ChunkSize, 0, 0, world.BlockTypeGrass)

	mesh := buildOrFail(t, NewMesher(), w.GetChunk(0, 0))
	assert.Equal(t, 6, mesh.FaceCount(), "seam face must be kept")
}

func TestCrossChunkFaceCulling(t *testing.T) {
	w := world.NewEmpty(2, 1)
	w.Set(world.ChunkSize-1, 0, 0, world.BlockTypeGrass)
	w.Set(world.ChunkSize, 0, 0, world.BlockTypeGrass)

	m := NewMesher(WithNeighbors(w))
	left := buildOrFail(t, m, w.GetChunk(0, 0))
	right := buildOrFail(t, m, w.GetChunk(1, 0))
	assert.Equal(t, 5, left.FaceCount())
	assert.Equal(t, 5, right.FaceCount())
}

func TestFaceCullingIsSymmetric(t *testing.T) {
	c := world.NewChunk(0, 0)
	world.NewGenerator(world.DefaultGeneratorParams(), 4, 4).PopulateChunk(c)
	// Sprinkle holes so the interior has exposed faces
	for i := 0; i < world.ChunkVolume; i += 7 {
		c.SetBlock(i%world.ChunkSize, (i/world.ChunkSize)%world.ChunkSize, i/world.ChunkArea, world.BlockTypeAir)
	}

	mesh := buildOrFail(t, NewMesher(), c)

	expected := 0
	for x := 0; x < world.ChunkSize; x++ {
		for y := 0; y < world.ChunkSize; y++ {
			for z := 0; z < world.ChunkSize; z++ {
				if !c.IsSolid(x, y, z) {
					continue
				}
				for f := world.BlockFace(0); f < world.NumFaces; f++ {
					dx, dy, dz := f.Offset()
					if !c.IsSolid(x+dx, y+dy, z+dz) {
						expected++
					}
				}
			}
		}
	}
	assert.Equal(t, expected, mesh.FaceCount())

	// Count quads per (plane, normal axis); two solid blocks never both draw their shared face
	type key struct {
		min  mgl32.Vec3
		axis int
	}
	seen := map[key]int{}
	for i := 0; i < mesh.VertexCount(); i += VerticesPerFace {
		minV := vertexAt(mesh, i)
		maxV := minV
		for k := 1; k < VerticesPerFace; k++ {
			v := vertexAt(mesh, i+k)
			for a := 0; a < 3; a++ {
				minV[a] = min(minV[a], v[a])
				maxV[a] = max(maxV[a], v[a])
			}
		}
		axis := 0
		for a := 0; a < 3; a++ {
			if minV[a] == maxV[a] {
				axis = a
			}
		}
		seen[key{minV, axis}]++
	}
	for k, n := range seen {
		assert.Equal(t, 1, n, "quad at %v axis %d emitted %d times", k.min, k.axis, n)
	}
}

func vertexAt(m *Mesh, i int) mgl32.Vec3 {
	return mgl32.Vec3{m.Vertices[i*3], m.Vertices[i*3+1], m.Vertices[i*3+2]}
}

func TestWindingFacesOutward(t *testing.T) {
	c := world.NewChunk(0, 0)
	c.SetBlock(2, 7, 9, world.BlockTypeStone)
	center := mgl32.Vec3{2.5, 7.5, 9.5}

	mesh := buildOrFail(t, NewMesher(), c)
	require.Equal(t, 12, mesh.TriangleCount())
	for tri := 0; tri < mesh.TriangleCount(); tri++ {
		a := vertexAt(mesh, int(mesh.Indices[tri*3]))
		b := vertexAt(mesh, int(mesh.Indices[tri*3+1]))
		cc := vertexAt(mesh, int(mesh.Indices[tri*3+2]))
		normal := b.Sub(a).Cross(cc.Sub(a))
		centroid := a.Add(b).Add(cc).Mul(1.0 / 3)
		assert.Greater(t, normal.Dot(centroid.Sub(center)), float32(0), "triangle %d winds inward", tri)
	}
}

func TestVerticesOffsetByBlockPosition(t *testing.T) {
	c := world.NewChunk(3, 1) // chunk origin is applied at draw time
	c.SetBlock(15, 0, 4, world.BlockTypeSand)

	mesh := buildOrFail(t, NewMesher(), c)
	for i := 0; i < mesh.VertexCount(); i++ {
		v := vertexAt(mesh, i)
		assert.True(t, v.X() >= 15 && v.X() <= 16, "x %v", v.X())
		assert.True(t, v.Y() >= 0 && v.Y() <= 1, "y %v", v.Y())
		assert.True(t, v.Z() >= 4 && v.Z() <= 5, "z %v", v.Z())
	}
}

func TestIndexAndVertexBounds(t *testing.T) {
	c := world.NewChunk(1, 1)
	world.NewGenerator(world.DefaultGeneratorParams(), 4, 4).PopulateChunk(c)

	mesh := buildOrFail(t, NewMesher(), c)
	solid := c.SolidCount()
	assert.LessOrEqual(t, mesh.VertexCount(), 6*solid*4)
	assert.Equal(t, len(mesh.Indices)*2, mesh.VertexCount()*3, "index count must be 1.5x vertex count")
	for _, idx := range mesh.Indices {
		require.Less(t, int(idx), mesh.VertexCount())
	}
}

func TestBuildIsIdempotent(t *testing.T) {
	c := world.NewChunk(2, 2)
	world.NewGenerator(world.DefaultGeneratorParams(), 4, 4).PopulateChunk(c)
	m := NewMesher()

	first := buildOrFail(t, m, c)
	second := buildOrFail(t, m, c)
	assert.Equal(t, first.Vertices, second.Vertices)
	assert.Equal(t, first.TexCoords, second.TexCoords)
	assert.Equal(t, first.Indices, second.Indices)
}

func TestUVsMatchAtlasCellForEveryFace(t *testing.T) {
	c := world.NewChunk(0, 0)
	types := []world.BlockType{world.BlockTypeDirt, world.BlockTypeGrass, world.BlockTypeStone, world.BlockTypeSand, world.BlockTypeWater}
	for i, bt := range types {
		c.SetBlock(i*2, 0, 0, bt)
	}

	atlas := Atlas{Columns: 4, Rows: 2}
	mesh := buildOrFail(t, NewMesher(WithAtlas(atlas)), c)
	require.Equal(t, 6*len(types), mesh.FaceCount())

	for face := 0; face < mesh.FaceCount(); face++ {
		// Faces are emitted in x order, six per block
		bt := types[face/6]
		u0, v0, u1, v1 := atlas.UVRect(bt)
		want := [][2]float32{{u0, v1}, {u1, v1}, {u1, v0}, {u0, v0}}
		for k := 0; k < VerticesPerFace; k++ {
			vi := face*VerticesPerFace + k
			got := [2]float32{mesh.TexCoords[vi*2], mesh.TexCoords[vi*2+1]}
			assert.Equal(t, want[k], got, "block %v face %d corner %d", bt, face%6, k)
		}
	}
}

func TestAtlasCell(t *testing.T) {
	a := Atlas{Columns: 4, Rows: 2}
	col, row := a.Cell(world.BlockTypeSand)
	assert.Equal(t, 0, col)
	assert.Equal(t, 1, row)

	u0, v0, u1, v1 := a.UVRect(world.BlockTypeStone)
	assert.Equal(t, float32(0.75), u0)
	assert.Equal(t, float32(0), v0)
	assert.Equal(t, float32(1), u1)
	assert.Equal(t, float32(0.5), v1)

	require.NoError(t, a.Validate())
	assert.Error(t, Atlas{Columns: 2, Rows: 2}.Validate())
	assert.Error(t, Atlas{Columns: 0, Rows: 8}.Validate())
}

func TestMetricsRecordBuilds(t *testing.T) {
	reg := prometheus.NewRegistry()
	mt := NewMetrics(reg)
	c := world.NewChunk(0, 0)
	c.SetBlock(1, 1, 1, world.BlockTypeStone)

	m := NewMesher(WithMetrics(mt))
	buildOrFail(t, m, c)
	buildOrFail(t, m, c)

	assert.Equal(t, float64(2), testutil.ToFloat64(mt.Builds))
	assert.Equal(t, float64(12), testutil.ToFloat64(mt.FacesEmitted))
	assert.Equal(t, float64(24), testutil.ToFloat64(mt.LastVertices))
	assert.Equal(t, 1, testutil.CollectAndCount(mt.BuildDuration))
}

func TestBuildMeshNilChunk(t *testing.T) {
	_, err := NewMesher().BuildMesh(nil)
	assert.Error(t, err)
}

func TestCompactKeepsGeometry(t *testing.T) {
	c := world.NewChunk(0, 0)
	c.SetBlock(0, 0, 0, world.BlockTypeDirt)
	mesh := buildOrFail(t, NewMesher(), c)
	compact := mesh.Compact()
	assert.Equal(t, mesh.Indices, compact.Indices)
	assert.Equal(t, len(compact.Vertices), cap(compact.Vertices))
}

func TestBuildMeshResultDoesNotAliasScratch(t *testing.T) {
	m := NewMesher()
	a := world.NewChunk(0, 0)
	a.SetBlock(1, 1, 1, world.BlockTypeGrass)
	b := world.NewChunk(0, 0)
	b.SetBlock(9, 9, 9, world.BlockTypeStone)

	first := buildOrFail(t, m, a)
	want := append([]float32(nil), first.Vertices...)
	buildOrFail(t, m, b)

	assert.Equal(t, want, first.Vertices, "second build overwrote the first mesh")
	assert.Equal(t, len(first.Indices), cap(first.Indices))
}

func TestFaceLimitExceeded(t *testing.T) {
	c := world.NewChunk(2, 3)
	c.SetBlock(1, 1, 1, world.BlockTypeGrass)
	c.SetBlock(5, 5, 5, world.BlockTypeStone)

	_, err := NewMesher(WithFaceLimit(11)).BuildMesh(c)
	require.ErrorIs(t, err, ErrCapacityExceeded)
	assert.Contains(t, err.Error(), "12 faces")

	mesh := buildOrFail(t, NewMesher(WithFaceLimit(12)), c)
	assert.Equal(t, 12, mesh.FaceCount())
}

func TestFaceLimitOutOfRangeKeepsDefault(t *testing.T) {
	for _, n := range []int{0, -1, MaxFaces + 1} {
		assert.Equal(t, MaxFaces, NewMesher(WithFaceLimit(n)).maxFaces)
	}
}

func TestMesherAtlasOption(t *testing.T) {
	assert.Equal(t, DefaultAtlas, NewMesher().Atlas())
	wide := Atlas{Columns: 8, Rows: 1}
	assert.Equal(t, wide, NewMesher(WithAtlas(wide)).Atlas())
}
