package world

import (
	"crypto/sha256"
	"math"
	"testing"
)

func TestStandardGeneratorImplementsInterface(t *testing.T) {
	var _ TerrainGenerator = NewGenerator(DefaultGeneratorParams(), 4, 4)
}

func TestFlatGeneratorImplementsInterface(t *testing.T) {
	var _ TerrainGenerator = NewFlatGenerator(10)
}

func TestFlatGeneratorHeight(t *testing.T) {
	g := NewFlatGenerator(10)
	if h := g.HeightAt(0, 0); h != 10 {
		t.Errorf("Expected height 10, got %d", h)
	}
	if h := g.HeightAt(100, -50); h != 10 {
		t.Errorf("Expected height 10, got %d", h)
	}
}

func TestFlatGeneratorPopulate(t *testing.T) {
	c := NewChunk(0, 0)
	g := NewFlatGenerator(6)

	g.PopulateChunk(c)

	// y=0,1 stone
	for y := 0; y < 2; y++ {
		if b := c.GetBlock(0, y, 0); b != BlockTypeStone {
			t.Errorf("Expected Stone at 0,%d,0, got %v", y, b)
		}
	}
	// y=2..4 dirt
	for y := 2; y < 5; y++ {
		if b := c.GetBlock(0, y, 0); b != BlockTypeDirt {
			t.Errorf("Expected Dirt at 0,%d,0, got %v", y, b)
		}
	}
	if b := c.GetBlock(0, 5, 0); b != BlockTypeGrass {
		t.Errorf("Expected Grass at 0,5,0, got %v", b)
	}
	if b := c.GetBlock(0, 6, 0); b != BlockTypeAir {
		t.Errorf("Expected Air at 0,6,0, got %v", b)
	}
	if !c.IsDirty() {
		t.Errorf("populated chunk should be dirty")
	}
}

func TestBlockTypeForHeightBanding(t *testing.T) {
	for height := 0; height <= ChunkSize; height++ {
		for y := 0; y < ChunkSize; y++ {
			got := BlockTypeForHeight(y, height)
			var want BlockType
			switch {
			case y >= height:
				want = BlockTypeAir
			case y == height-1:
				want = BlockTypeGrass
			case y >= height-4:
				want = BlockTypeDirt
			default:
				want = BlockTypeStone
			}
			if got != want {
				t.Fatalf("height %d y %d: got %v, want %v", height, y, got, want)
			}
		}
	}
}

func TestShortColumnsHaveNoStone(t *testing.T) {
	// A 3-high column is grass over two dirt
	if b := BlockTypeForHeight(0, 3); b != BlockTypeDirt {
		t.Errorf("got %v, want dirt", b)
	}
	if b := BlockTypeForHeight(2, 3); b != BlockTypeGrass {
		t.Errorf("got %v, want grass", b)
	}
}

func TestRadialFalloffCenterAndCorner(t *testing.T) {
	for _, exp := range []float64{0, 0.5, 1, 2, 3.7} {
		p := DefaultGeneratorParams()
		p.FalloffExponent = exp
		g := NewGeneratorWithNoise(ConstantNoise(1), p, 4, 4)

		if b := g.falloffBase(32, 32); b != 1 {
			t.Errorf("exp %v: base at center = %v, want 1", exp, b)
		}
		for _, corner := range [][2]int{{0, 0}, {64, 0}, {0, 64}, {64, 64}} {
			if b := g.falloffBase(corner[0], corner[1]); math.Abs(b) > 1e-12 {
				t.Errorf("exp %v: base at corner %v = %v, want 0", exp, corner, b)
			}
		}
	}
}

func TestRadialFalloffZeroExponentIsConstant(t *testing.T) {
	g := NewGeneratorWithNoise(ConstantNoise(1), DefaultGeneratorParams(), 4, 4)
	for x := 0; x <= 64; x += 8 {
		for z := 0; z <= 64; z += 8 {
			if f := g.RadialFalloff(x, z); f != 1 {
				t.Errorf("RadialFalloff(%d,%d) = %v, want 1", x, z, f)
			}
		}
	}
}

func TestRadialFalloffDecreasesOutward(t *testing.T) {
	p := DefaultGeneratorParams()
	p.FalloffExponent = 2
	g := NewGeneratorWithNoise(ConstantNoise(1), p, 4, 4)
	prev := g.RadialFalloff(32, 32)
	for x := 33; x <= 64; x++ {
		f := g.RadialFalloff(x, x)
		if f > prev {
			t.Fatalf("falloff increased moving outward at %d: %v > %v", x, f, prev)
		}
		prev = f
	}
}

func TestHeightAtUsesNoiseTimesScale(t *testing.T) {
	p := DefaultGeneratorParams()
	p.HeightScale = 10
	g := NewGeneratorWithNoise(ConstantNoise(0.55), p, 4, 4)
	// 0.55 * 1 * 10 = 5.5, truncated
	if h := g.HeightAt(7, 9); h != 5 {
		t.Errorf("HeightAt = %d, want 5", h)
	}
}

func TestHeightAtClamped(t *testing.T) {
	p := DefaultGeneratorParams()
	if h := NewGeneratorWithNoise(ConstantNoise(-0.8), p, 4, 4).HeightAt(3, 3); h != 0 {
		t.Errorf("negative noise: HeightAt = %d, want 0", h)
	}
	if h := NewGeneratorWithNoise(ConstantNoise(5), p, 4, 4).HeightAt(3, 3); h != ChunkSize {
		t.Errorf("large noise: HeightAt = %d, want %d", h, ChunkSize)
	}
}

func TestIslandShapingFlattensCorners(t *testing.T) {
	p := DefaultGeneratorParams()
	p.FalloffExponent = 1
	g := NewGeneratorWithNoise(ConstantNoise(1), p, 4, 4)
	if h := g.HeightAt(0, 0); h != 0 {
		t.Errorf("corner height = %d, want 0", h)
	}
	if h := g.HeightAt(32, 32); h != ChunkSize {
		t.Errorf("center height = %d, want %d", h, ChunkSize)
	}
}

// hashChunkBlocks computes a SHA-256 hash of all blocks in a chunk
func hashChunkBlocks(c *Chunk) [32]byte {
	h := sha256.New()
	for ly := 0; ly < ChunkSize; ly++ {
		for lx := 0; lx < ChunkSize; lx++ {
			for lz := 0; lz < ChunkSize; lz++ {
				h.Write([]byte{byte(c.GetBlock(lx, ly, lz))})
			}
		}
	}
	var result [32]byte
	copy(result[:], h.Sum(nil))
	return result
}

func TestGeneratorDeterminism(t *testing.T) {
	params := DefaultGeneratorParams()
	params.Seed = 12345
	var hashes [20][32]byte

	for i := range hashes {
		g := NewGenerator(params, 4, 4)
		c := NewChunk(1, 2)
		g.PopulateChunk(c)
		hashes[i] = hashChunkBlocks(c)
	}

	first := hashes[0]
	for i := 1; i < len(hashes); i++ {
		if hashes[i] != first {
			t.Errorf("Chunk generation not deterministic: hash[0] != hash[%d]", i)
		}
	}
}

func TestGeneratorMatchesHeightAt(t *testing.T) {
	g := NewGenerator(DefaultGeneratorParams(), 4, 4)
	c := NewChunk(2, 1)
	g.PopulateChunk(c)

	for lx := 0; lx < ChunkSize; lx++ {
		for lz := 0; lz < ChunkSize; lz++ {
			height := g.HeightAt(2*ChunkSize+lx, 1*ChunkSize+lz)
			for ly := 0; ly < ChunkSize; ly++ {
				if got, want := c.GetBlock(lx, ly, lz), BlockTypeForHeight(ly, height); got != want {
					t.Fatalf("block (%d,%d,%d) = %v, want %v (height %d)", lx, ly, lz, got, want, height)
				}
			}
		}
	}
}

func BenchmarkPopulateChunk(b *testing.B) {
	g := NewGenerator(DefaultGeneratorParams(), 4, 4)
	c := NewChunk(0, 0)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		g.PopulateChunk(c)
	}
}

func BenchmarkHeightAt(b *testing.B) {
	g := NewGenerator(DefaultGeneratorParams(), 4, 4)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = g.HeightAt(i%64, (i*31)%64)
	}
}

func TestDefaultIslandStaysLow(t *testing.T) {
	p := DefaultGeneratorParams()
	g := NewGenerator(p, 4, 4)
	maxH := 0
	for x := range 4 * ChunkSize {
		for z := range 4 * ChunkSize {
			if h := g.HeightAt(x, z); h > maxH {
				maxH = h
			}
		}
	}
	if maxH > int(p.HeightScale)/2 {
		t.Errorf("max height %d, want at most half of HeightScale %v", maxH, p.HeightScale)
	}
}
