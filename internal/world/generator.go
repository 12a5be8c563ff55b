package world

import (
	"math"
)

// TerrainGenerator fills chunks with blocks
type TerrainGenerator interface {
	// HeightAt returns the number of solid blocks in the column at world X,Z
	HeightAt(worldX, worldZ int) int
	// PopulateChunk writes every block of the chunk
	PopulateChunk(c *Chunk)
}

// GeneratorParams are the fixed constants of the island height function
type GeneratorParams struct {
	Seed            int64
	Scale           float64
	HeightScale     float64
	Octaves         int
	Gain            float64
	Lacunarity      float64
	FalloffExponent float64
}

// DefaultGeneratorParams returns the committed defaults.
// FalloffExponent 0 turns the radial falloff into a constant 1.
func DefaultGeneratorParams() GeneratorParams {
	return GeneratorParams{
		Seed:            0,
		Scale:           0.05,
		HeightScale:     16,
		Octaves:         4,
		Gain:            0.5,
		Lacunarity:      0.1,
		FalloffExponent: 0,
	}
}

// Generator computes an island heightmap: noise * radialFalloff * heightScale
type Generator struct {
	params GeneratorParams
	noise  NoiseSource

	centerX, centerZ float64
	maxDistance      float64
}

// NewGenerator creates a generator for a world of widthChunks x depthChunks chunks
func NewGenerator(params GeneratorParams, widthChunks, depthChunks int) *Generator {
	noise := NewFBMNoise(params.Seed, params.Octaves, params.Gain, params.Lacunarity)
	return NewGeneratorWithNoise(noise, params, widthChunks, depthChunks)
}

// NewGeneratorWithNoise is NewGenerator with an explicit noise source.
func NewGeneratorWithNoise(noise NoiseSource, params GeneratorParams, widthChunks, depthChunks int) *Generator {
	cx := float64(widthChunks*ChunkSize) / 2
	cz := float64(depthChunks*ChunkSize) / 2
	return &Generator{
		params:      params,
		noise:       noise,
		centerX:     cx,
		centerZ:     cz,
		maxDistance: math.Hypot(cx, cz),
	}
}

// falloffBase is 1 - distance/maxDistance, measured from the grid's geometric center.
// It is 1 at the center and 0 at the corners.
func (g *Generator) falloffBase(worldX, worldZ int) float64 {
	if g.maxDistance == 0 {
		return 1
	}
	d := math.Hypot(float64(worldX)-g.centerX, float64(worldZ)-g.centerZ)
	base := 1 - d/g.maxDistance
	if base < 0 {
		return 0
	}
	if base > 1 {
		return 1
	}
	return base
}

// RadialFalloff shapes the heightmap into an island. With a zero exponent it is 1 everywhere.
func (g *Generator) RadialFalloff(worldX, worldZ int) float64 {
	return math.Pow(g.falloffBase(worldX, worldZ), g.params.FalloffExponent)
}

// HeightAt computes the column height at world X,Z, clamped to [0, ChunkSize].
func (g *Generator) HeightAt(worldX, worldZ int) int {
	x := float64(worldX) * g.params.Scale
	z := float64(worldZ) * g.params.Scale
	n := g.noise.Noise3D(x, z, 0)
	h := int(n * g.RadialFalloff(worldX, worldZ) * g.params.HeightScale)
	return clampHeight(h)
}

func clampHeight(h int) int {
	if h < 0 {
		return 0
	}
	if h > ChunkSize {
		return ChunkSize
	}
	return h
}

// BlockTypeForHeight applies the banding rule for a column of the given height:
// the top solid layer is grass, the three below it dirt, the rest stone.
func BlockTypeForHeight(y, height int) BlockType {
	switch {
	case y >= height || y < 0:
		return BlockTypeAir
	case y == height-1:
		return BlockTypeGrass
	case y >= height-4:
		return BlockTypeDirt
	default:
		return BlockTypeStone
	}
}

// PopulateChunk fills a chunk using the noise heightmap.
func (g *Generator) PopulateChunk(c *Chunk) {
	populateColumns(g, c)
}

func populateColumns(gen TerrainGenerator, c *Chunk) {
	baseX := c.Coord.X * ChunkSize
	baseZ := c.Coord.Z * ChunkSize
	for lx := range ChunkSize {
		for lz := range ChunkSize {
			height := gen.HeightAt(baseX+lx, baseZ+lz)
			for ly := range ChunkSize {
				c.SetBlock(lx, ly, lz, BlockTypeForHeight(ly, height))
			}
		}
	}
	c.dirty = true
}

// FlatGenerator produces a constant-height world
type FlatGenerator struct {
	height int
}

// NewFlatGenerator creates a generator where every column has the given height
func NewFlatGenerator(height int) *FlatGenerator {
	return &FlatGenerator{height: clampHeight(height)}
}

func (f *FlatGenerator) HeightAt(worldX, worldZ int) int {
	return f.height
}

func (f *FlatGenerator) PopulateChunk(c *Chunk) {
	populateColumns(f, c)
}
