package meshing

import (
	"fmt"

	"voxel-island/internal/world"
)

// Atlas describes a texture image split into a Columns x Rows grid, one cell per block type.
// Block type t lives in cell (t % Columns, t / Columns).
type Atlas struct {
	Columns int
	Rows    int
}

// DefaultAtlas is a 4x2 grid, enough for every block type
var DefaultAtlas = Atlas{Columns: 4, Rows: 2}

// Validate checks that every block type has a cell
func (a Atlas) Validate() error {
	if a.Columns <= 0 || a.Rows <= 0 {
		return fmt.Errorf("atlas grid %dx%d must be positive", a.Columns, a.Rows)
	}
	if a.Columns*a.Rows < world.NumBlockTypes {
		return fmt.Errorf("atlas grid %dx%d has fewer than %d cells", a.Columns, a.Rows, world.NumBlockTypes)
	}
	return nil
}

// Cell returns the atlas column and row of the block type
func (a Atlas) Cell(b world.BlockType) (col, row int) {
	return int(b) % a.Columns, int(b) / a.Columns
}

// CellSize returns the UV extent of a single cell
func (a Atlas) CellSize() (du, dv float32) {
	return 1 / float32(a.Columns), 1 / float32(a.Rows)
}

// UVRect returns the UV bounds of the block type's cell
func (a Atlas) UVRect(b world.BlockType) (u0, v0, u1, v1 float32) {
	col, row := a.Cell(b)
	du, dv := a.CellSize()
	u0 = float32(col) * du
	v0 = float32(row) * dv
	return u0, v0, u0 + du, v0 + dv
}

// faceUVs returns the four corner UVs in quad order (bottom-left, bottom-right, top-right, top-left).
// Image rows grow downwards, so the bottom of a face maps to v1.
func (a Atlas) faceUVs(b world.BlockType) [VerticesPerFace][2]float32 {
	u0, v0, u1, v1 := a.UVRect(b)
	return [VerticesPerFace][2]float32{
		{u0, v1},
		{u1, v1},
		{u1, v0},
		{u0, v0},
	}
}
