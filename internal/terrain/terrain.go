package terrain

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"voxel-island/internal/camera"
	"voxel-island/internal/logging"
	"voxel-island/internal/meshing"
	"voxel-island/internal/world"
)

var errNotInitialized = errors.New("terrain not initialized")

// Stats describes the most recent DrawChunks call
type Stats struct {
	ChunksDrawn  int
	ChunksCulled int
	ChunksEmpty  int
	Remeshed     int
	Faces        int
}

// chunkEntry owns the mesh and model of one chunk
type chunkEntry struct {
	chunk    *world.Chunk
	mesh     *meshing.Mesh
	model    ModelID
	hasModel bool
}

// Option configures a Terrain
type Option func(*Terrain)

// WithVisibility replaces the AlwaysVisible default
func WithVisibility(v Visibility) Option {
	return func(t *Terrain) {
		if v != nil {
			t.visible = v
		}
	}
}

func WithLogger(l *logging.Logger) Option {
	return func(t *Terrain) { t.log = l.With("terrain") }
}

// WithDebugColors tints chunks in a checkerboard so chunk borders stand out
func WithDebugColors(enabled bool) Option {
	return func(t *Terrain) { t.debugColors = enabled }
}

// Terrain drives a world: it populates chunks once, then on every frame
// remeshes dirty chunks and draws the visible ones.
type Terrain struct {
	world    *world.World
	mesher   *meshing.Mesher
	renderer Renderer
	visible  Visibility
	log      *logging.Logger

	debugColors bool

	entries []*chunkEntry
	byCoord map[world.ChunkCoord]*chunkEntry
	stats   Stats
	total   int
}

func New(w *world.World, m *meshing.Mesher, r Renderer, opts ...Option) *Terrain {
	t := &Terrain{
		world:    w,
		mesher:   m,
		renderer: r,
		visible:  AlwaysVisible,
		log:      logging.Discard(),
	}
	for _, o := range opts {
		o(t)
	}
	return t
}

// InitChunks generates every chunk of the world. Meshes are built lazily by DrawChunks.
func (t *Terrain) InitChunks() {
	t.Release()
	t.world.Populate()

	chunks := t.world.Chunks()
	t.entries = make([]*chunkEntry, 0, len(chunks))
	t.byCoord = make(map[world.ChunkCoord]*chunkEntry, len(chunks))
	for _, c := range chunks {
		if t.debugColors {
			c.Color = debugColor(c.Coord)
		}
		e := &chunkEntry{chunk: c}
		t.entries = append(t.entries, e)
		t.byCoord[c.Coord] = e
	}
	t.log.Infof("initialized %dx%d chunks, %d solid blocks", t.world.Width(), t.world.Depth(), t.world.SolidCount())
}

func debugColor(c world.ChunkCoord) mgl32.Vec4 {
	if (c.X+c.Z)%2 == 0 {
		return mgl32.Vec4{1, 1, 1, 1}
	}
	return mgl32.Vec4{0.8, 0.85, 1, 1}
}

// DrawChunks rebuilds dirty chunks and draws each chunk the visibility predicate accepts.
// Remeshing happens before the visibility check so culled chunks are never left stale.
func (t *Terrain) DrawChunks(cam *camera.Camera) error {
	if t.entries == nil {
		return errNotInitialized
	}
	t.stats = Stats{}
	for _, e := range t.entries {
		if e.chunk.IsDirty() {
			if err := t.rebuild(e); err != nil {
				return err
			}
		}
		if !t.visible(e.chunk.Bounds(), cam) {
			t.stats.ChunksCulled++
			continue
		}
		if !e.hasModel {
			t.stats.ChunksEmpty++
			continue
		}
		t.renderer.DrawModel(e.model, e.chunk.Origin(), 1, e.chunk.Color)
		t.stats.ChunksDrawn++
		t.stats.Faces += e.mesh.FaceCount()
	}
	return nil
}

// RebuildChunk remeshes one chunk immediately, whether or not it is dirty
func (t *Terrain) RebuildChunk(coord world.ChunkCoord) error {
	e, ok := t.byCoord[coord]
	if !ok {
		return fmt.Errorf("rebuild chunk (%d,%d): %w", coord.X, coord.Z, world.ErrChunkOutOfRange)
	}
	return t.rebuild(e)
}

// rebuild releases the old model before building and uploading the new one.
// Empty meshes are kept but never uploaded.
func (t *Terrain) rebuild(e *chunkEntry) error {
	t.releaseEntry(e)

	mesh, err := t.mesher.BuildMesh(e.chunk)
	if err != nil {
		return fmt.Errorf("build mesh: %w", err)
	}
	e.mesh = mesh
	t.stats.Remeshed++
	t.total++

	if !e.mesh.Empty() {
		id, err := t.renderer.UploadModel(e.mesh)
		if err != nil {
			return fmt.Errorf("upload chunk (%d,%d): %w", e.chunk.Coord.X, e.chunk.Coord.Z, err)
		}
		e.model = id
		e.hasModel = true
	}
	e.chunk.SetClean()

	t.log.Debugf("remeshed chunk (%d,%d): %d faces, %d vertices",
		e.chunk.Coord.X, e.chunk.Coord.Z, e.mesh.FaceCount(), e.mesh.VertexCount())
	return nil
}

func (t *Terrain) releaseEntry(e *chunkEntry) {
	if e.hasModel {
		t.renderer.ReleaseModel(e.model)
		e.hasModel = false
		e.model = 0
	}
	e.mesh = nil
}

// Release frees every model held by the terrain
func (t *Terrain) Release() {
	for _, e := range t.entries {
		t.releaseEntry(e)
	}
}

// Mesh returns the current mesh of a chunk, or nil if it has not been built
func (t *Terrain) Mesh(coord world.ChunkCoord) *meshing.Mesh {
	e, ok := t.byCoord[coord]
	if !ok {
		return nil
	}
	return e.mesh
}

// MarkAllDirty forces every chunk to be remeshed on the next draw
func (t *Terrain) MarkAllDirty() {
	t.world.MarkAllDirty()
}

func (t *Terrain) World() *world.World { return t.world }

// Stats returns counters from the last DrawChunks call
func (t *Terrain) Stats() Stats { return t.stats }

// TotalRemeshes counts every mesh build since creation
func (t *Terrain) TotalRemeshes() int { return t.total }
