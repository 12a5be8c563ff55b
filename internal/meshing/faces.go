package meshing

import (
	"voxel-island/internal/world"
)

// faceCorners holds the unit-cube corners of each face, indexed by world.BlockFace.
// Corners run bottom-left, bottom-right, top-right, top-left as seen from outside the
// block, so both triangles wind counter-clockwise around the outward normal.
var faceCorners = [world.NumFaces][VerticesPerFace][3]float32{
	world.FaceWest: { // -X
		{0, 0, 0}, {0, 0, 1}, {0, 1, 1}, {0, 1, 0},
	},
	world.FaceEast: { // +X
		{1, 0, 1}, {1, 0, 0}, {1, 1, 0}, {1, 1, 1},
	},
	world.FaceBottom: { // -Y
		{0, 0, 0}, {1, 0, 0}, {1, 0, 1}, {0, 0, 1},
	},
	world.FaceTop: { // +Y
		{0, 1, 1}, {1, 1, 1}, {1, 1, 0}, {0, 1, 0},
	},
	world.FaceSouth: { // -Z
		{1, 0, 0}, {0, 0, 0}, {0, 1, 0}, {1, 1, 0},
	},
	world.FaceNorth: { // +Z
		{0, 0, 1}, {1, 0, 1}, {1, 1, 1}, {0, 1, 1},
	},
}

// quadIndices splits a quad into triangles (0,1,2) and (0,2,3)
var quadIndices = [IndicesPerFace]uint32{0, 1, 2, 0, 2, 3}
