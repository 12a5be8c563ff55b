package config

import (
	"fmt"

	"voxel-island/internal/meshing"
	"voxel-island/internal/world"
)

// WorldGenSettings holds world size and generator constants
type WorldGenSettings struct {
	Width           int     `yaml:"width"`
	Depth           int     `yaml:"depth"`
	Seed            int64   `yaml:"seed"`
	Scale           float64 `yaml:"scale"`
	HeightScale     float64 `yaml:"height_scale"`
	Octaves         int     `yaml:"octaves"`
	Gain            float64 `yaml:"gain"`
	Lacunarity      float64 `yaml:"lacunarity"`
	FalloffExponent float64 `yaml:"falloff_exponent"`
	// CullAcrossChunks lets border faces be culled against adjoining chunks
	CullAcrossChunks bool `yaml:"cull_across_chunks"`
}

func DefaultWorldGen() WorldGenSettings {
	p := world.DefaultGeneratorParams()
	return WorldGenSettings{
		Width:           4,
		Depth:           4,
		Seed:            p.Seed,
		Scale:           p.Scale,
		HeightScale:     p.HeightScale,
		Octaves:         p.Octaves,
		Gain:            p.Gain,
		Lacunarity:      p.Lacunarity,
		FalloffExponent: p.FalloffExponent,
	}
}

func (w WorldGenSettings) Validate() error {
	switch {
	case w.Width <= 0 || w.Depth <= 0:
		return fmt.Errorf("%w: world size %dx%d", ErrInvalid, w.Width, w.Depth)
	case w.Octaves <= 0:
		return fmt.Errorf("%w: octaves %d", ErrInvalid, w.Octaves)
	case w.Gain <= 0:
		return fmt.Errorf("%w: gain %v", ErrInvalid, w.Gain)
	case w.FalloffExponent < 0:
		return fmt.Errorf("%w: falloff_exponent %v", ErrInvalid, w.FalloffExponent)
	}
	return nil
}

// GeneratorParams converts the section for world.NewGenerator
func (w WorldGenSettings) GeneratorParams() world.GeneratorParams {
	return world.GeneratorParams{
		Seed:            w.Seed,
		Scale:           w.Scale,
		HeightScale:     w.HeightScale,
		Octaves:         w.Octaves,
		Gain:            w.Gain,
		Lacunarity:      w.Lacunarity,
		FalloffExponent: w.FalloffExponent,
	}
}

// AtlasSettings describes the block texture atlas image
type AtlasSettings struct {
	Path    string `yaml:"path"`
	Columns int    `yaml:"columns"`
	Rows    int    `yaml:"rows"`
	// CellSize is the pixel size of one cell in the procedural fallback atlas
	CellSize int `yaml:"cell_size"`
}

func DefaultAtlas() AtlasSettings {
	return AtlasSettings{
		Path:     "assets/textures/atlas.png",
		Columns:  meshing.DefaultAtlas.Columns,
		Rows:     meshing.DefaultAtlas.Rows,
		CellSize: 16,
	}
}

func (a AtlasSettings) Validate() error {
	if a.CellSize <= 0 {
		return fmt.Errorf("%w: atlas cell_size %d", ErrInvalid, a.CellSize)
	}
	if err := a.Grid().Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

// Grid returns the mesher's view of the atlas
func (a AtlasSettings) Grid() meshing.Atlas {
	return meshing.Atlas{Columns: a.Columns, Rows: a.Rows}
}
