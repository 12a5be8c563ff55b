package world

import (
	"github.com/go-gl/mathgl/mgl32"
)

const (
	// ChunkSize is the edge length of a cubic chunk in blocks
	ChunkSize = 16

	ChunkArea   = ChunkSize * ChunkSize
	ChunkVolume = ChunkSize * ChunkSize * ChunkSize
)

// ChunkCoord addresses a chunk in the world grid
type ChunkCoord struct {
	X, Z int
}

// AABB is an axis-aligned bounding box in world space
type AABB struct {
	Min, Max mgl32.Vec3
}

// Center returns the midpoint of the box
func (b AABB) Center() mgl32.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Chunk is a 16x16x16 cube of blocks
type Chunk struct {
	Coord ChunkCoord
	// Color tints the chunk's model when drawn
	Color mgl32.Vec4

	blocks []BlockType
	origin mgl32.Vec3
	dirty  bool
}

// NewChunk creates a chunk with its own backing storage
func NewChunk(x, z int) *Chunk {
	return newChunkWithStorage(x, z, make([]BlockType, ChunkVolume))
}

func newChunkWithStorage(x, z int, blocks []BlockType) *Chunk {
	return &Chunk{
		Coord:  ChunkCoord{X: x, Z: z},
		Color:  mgl32.Vec4{1, 1, 1, 1},
		blocks: blocks[:ChunkVolume:ChunkVolume],
		origin: mgl32.Vec3{
			float32(x*ChunkSize) * BlockSize,
			0,
			float32(z*ChunkSize) * BlockSize,
		},
		dirty: true,
	}
}

// blockIndex converts local coordinates to the flat offset x + y*size + z*size²
func blockIndex(x, y, z int) int {
	return x + y*ChunkSize + z*ChunkArea
}

func inChunk(x, y, z int) bool {
	return x >= 0 && x < ChunkSize && y >= 0 && y < ChunkSize && z >= 0 && z < ChunkSize
}

// GetBlock returns the block type at the specified local coordinates.
// Coordinates outside the chunk read as air.
func (c *Chunk) GetBlock(x, y, z int) BlockType {
	if !inChunk(x, y, z) {
		return BlockTypeAir
	}
	return c.blocks[blockIndex(x, y, z)]
}

// SetBlock sets the block type at the specified local coordinates and marks the mesh stale.
// Writes outside the chunk are ignored.
func (c *Chunk) SetBlock(x, y, z int, blockType BlockType) {
	if !inChunk(x, y, z) {
		return
	}
	idx := blockIndex(x, y, z)
	if c.blocks[idx] != blockType {
		c.blocks[idx] = blockType
		c.dirty = true
	}
}

// IsSolid checks if the block at the local coordinates produces geometry
func (c *Chunk) IsSolid(x, y, z int) bool {
	return c.GetBlock(x, y, z).IsSolid()
}

// SolidCount returns the number of non-air blocks
func (c *Chunk) SolidCount() int {
	n := 0
	for _, b := range c.blocks {
		if b.IsSolid() {
			n++
		}
	}
	return n
}

// Origin is the world-space position of the chunk's (0,0,0) corner
func (c *Chunk) Origin() mgl32.Vec3 {
	return c.origin
}

// Bounds returns the chunk's world-space bounding box
func (c *Chunk) Bounds() AABB {
	extent := float32(ChunkSize) * BlockSize
	return AABB{
		Min: c.origin,
		Max: c.origin.Add(mgl32.Vec3{extent, extent, extent}),
	}
}

// IsDirty returns whether the chunk's mesh must be rebuilt before the next draw
func (c *Chunk) IsDirty() bool {
	return c.dirty
}

// MarkDirty flags the mesh as stale
func (c *Chunk) MarkDirty() {
	c.dirty = true
}

// SetClean marks the mesh as up to date
func (c *Chunk) SetClean() {
	c.dirty = false
}
