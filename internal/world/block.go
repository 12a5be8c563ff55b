package world

import (
	"fmt"
)

type BlockType uint8

const (
	BlockTypeAir BlockType = iota
	BlockTypeDirt
	BlockTypeGrass
	BlockTypeStone
	BlockTypeSand
	BlockTypeWater

	// NumBlockTypes counts every block type including air.
	NumBlockTypes = iota
)

// Block data
const (
	BlockSize = 1.0
)

var blockNames = [NumBlockTypes]string{
	BlockTypeAir:   "air",
	BlockTypeDirt:  "dirt",
	BlockTypeGrass: "grass",
	BlockTypeStone: "stone",
	BlockTypeSand:  "sand",
	BlockTypeWater: "water",
}

func (b BlockType) String() string {
	if int(b) < len(blockNames) {
		return blockNames[b]
	}
	return fmt.Sprintf("block(%d)", uint8(b))
}

// IsSolid reports whether the block produces geometry.
func (b BlockType) IsSolid() bool {
	return b != BlockTypeAir
}

// BlockFace identifies one of the six axis-aligned faces of a block
type BlockFace int

const (
	FaceWest   BlockFace = iota // -X
	FaceEast                    // +X
	FaceBottom                  // -Y
	FaceTop                     // +Y
	FaceSouth                   // -Z
	FaceNorth                   // +Z

	NumFaces = 6
)

// faceOffsets are the neighbor directions, indexed by BlockFace
var faceOffsets = [NumFaces][3]int{
	FaceWest:   {-1, 0, 0},
	FaceEast:   {+1, 0, 0},
	FaceBottom: {0, -1, 0},
	FaceTop:    {0, +1, 0},
	FaceSouth:  {0, 0, -1},
	FaceNorth:  {0, 0, +1},
}

// Offset returns the unit step towards the neighbor sharing this face.
func (f BlockFace) Offset() (dx, dy, dz int) {
	o := faceOffsets[f]
	return o[0], o[1], o[2]
}

func (f BlockFace) String() string {
	switch f {
	case FaceWest:
		return "-X"
	case FaceEast:
		return "+X"
	case FaceBottom:
		return "-Y"
	case FaceTop:
		return "+Y"
	case FaceSouth:
		return "-Z"
	case FaceNorth:
		return "+Z"
	default:
		return "face?"
	}
}
