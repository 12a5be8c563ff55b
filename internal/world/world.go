package world

import (
	"errors"
	"fmt"
)

var ErrChunkOutOfRange = errors.New("chunk coordinate out of range")

// World is a fixed width x depth grid of chunks, one chunk tall.
// Block storage for all chunks lives in a single arena.
type World struct {
	width, depth int
	chunks       []*Chunk
	arena        []BlockType
	gen          TerrainGenerator
}

// New allocates every chunk of the grid. Chunks start empty and dirty until Populate runs.
func New(width, depth int, gen TerrainGenerator) *World {
	if width < 0 {
		width = 0
	}
	if depth < 0 {
		depth = 0
	}
	w := &World{
		width:  width,
		depth:  depth,
		chunks: make([]*Chunk, width*depth),
		arena:  make([]BlockType, width*depth*ChunkVolume),
		gen:    gen,
	}
	for x := range width {
		for z := range depth {
			i := w.index(x, z)
			w.chunks[i] = newChunkWithStorage(x, z, w.arena[i*ChunkVolume:])
		}
	}
	return w
}

// NewEmpty creates a world with no generator; Populate leaves it all air.
func NewEmpty(width, depth int) *World {
	return New(width, depth, nil)
}

func (w *World) index(x, z int) int {
	return x*w.depth + z
}

// Width is the grid size along X in chunks
func (w *World) Width() int { return w.width }

// Depth is the grid size along Z in chunks
func (w *World) Depth() int { return w.depth }

// Populate runs the generator for every chunk in the grid and marks each one dirty.
func (w *World) Populate() {
	for _, c := range w.chunks {
		if w.gen != nil {
			w.gen.PopulateChunk(c)
		}
		c.MarkDirty()
	}
}

// Contains reports whether the chunk coordinate is inside the grid
func (w *World) Contains(x, z int) bool {
	return x >= 0 && x < w.width && z >= 0 && z < w.depth
}

// GetChunk returns the chunk at the chunk coordinates or nil when out of range
func (w *World) GetChunk(x, z int) *Chunk {
	if !w.Contains(x, z) {
		return nil
	}
	return w.chunks[w.index(x, z)]
}

// Chunk is GetChunk with an error for out-of-range coordinates
func (w *World) Chunk(coord ChunkCoord) (*Chunk, error) {
	c := w.GetChunk(coord.X, coord.Z)
	if c == nil {
		return nil, fmt.Errorf("chunk (%d,%d) in %dx%d world: %w", coord.X, coord.Z, w.width, w.depth, ErrChunkOutOfRange)
	}
	return c, nil
}

// Chunks returns all chunks in X-major order. The slice must not be modified.
func (w *World) Chunks() []*Chunk {
	return w.chunks
}

// GetChunkFromBlockCoords returns the chunk containing the world block, or nil
func (w *World) GetChunkFromBlockCoords(x, y, z int) *Chunk {
	if y < 0 || y >= ChunkSize {
		return nil
	}
	return w.GetChunk(floorDiv(x, ChunkSize), floorDiv(z, ChunkSize))
}

// Get returns the block at world coordinates; anything outside the world is air
func (w *World) Get(x, y, z int) BlockType {
	c := w.GetChunkFromBlockCoords(x, y, z)
	if c == nil {
		return BlockTypeAir
	}
	return c.GetBlock(floorMod(x, ChunkSize), y, floorMod(z, ChunkSize))
}

// Set writes a block at world coordinates. Writes outside the world are ignored.
func (w *World) Set(x, y, z int, b BlockType) {
	c := w.GetChunkFromBlockCoords(x, y, z)
	if c == nil {
		return
	}
	c.SetBlock(floorMod(x, ChunkSize), y, floorMod(z, ChunkSize), b)
}

// SolidAt reports whether the world block produces geometry
func (w *World) SolidAt(x, y, z int) bool {
	return w.Get(x, y, z).IsSolid()
}

// MarkAllDirty schedules every chunk for remeshing
func (w *World) MarkAllDirty() {
	for _, c := range w.chunks {
		c.MarkDirty()
	}
}

// SolidCount returns the number of non-air blocks in the whole world
func (w *World) SolidCount() int {
	n := 0
	for _, b := range w.arena {
		if b.IsSolid() {
			n++
		}
	}
	return n
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func floorMod(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}
