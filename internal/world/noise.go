package world

import (
	"github.com/aquilax/go-perlin"
)

// NoiseSource is a deterministic 3D noise function.
type NoiseSource interface {
	Noise3D(x, y, z float64) float64
}

// FBMNoise is fractal Perlin noise: octave i is sampled at frequency lacunarity^i
// and weighted by gain^i. The sum is not normalised. In practice go-perlin stays
// within about ±0.5, so the default island only reaches a third of HeightScale.
type FBMNoise struct {
	Octaves    int
	Gain       float64
	Lacunarity float64

	p *perlin.Perlin
}

// NewFBMNoise builds a seeded fractal noise source.
// gain must be positive.
func NewFBMNoise(seed int64, octaves int, gain, lacunarity float64) *FBMNoise {
	// go-perlin divides each octave by alpha^i, so alpha is the reciprocal of the gain
	alpha := 1.0 / gain
	return &FBMNoise{
		Octaves:    octaves,
		Gain:       gain,
		Lacunarity: lacunarity,
		p:          perlin.NewPerlin(alpha, lacunarity, int32(octaves), seed),
	}
}

func (n *FBMNoise) Noise3D(x, y, z float64) float64 {
	return n.p.Noise3D(x, y, z)
}

// ConstantNoise returns the same value everywhere. Useful for flat test worlds.
type ConstantNoise float64

func (c ConstantNoise) Noise3D(x, y, z float64) float64 {
	return float64(c)
}
