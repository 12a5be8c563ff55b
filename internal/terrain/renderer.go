package terrain

import (
	"github.com/go-gl/mathgl/mgl32"

	"voxel-island/internal/camera"
	"voxel-island/internal/meshing"
	"voxel-island/internal/world"
)

// ModelID identifies a drawable model owned by a Renderer
type ModelID uint32

// Renderer is the GPU side of the terrain: it turns meshes into drawable models.
// Every model returned by UploadModel must eventually be passed to ReleaseModel.
type Renderer interface {
	UploadModel(mesh *meshing.Mesh) (ModelID, error)
	ReleaseModel(id ModelID)
	DrawModel(id ModelID, position mgl32.Vec3, scale float32, tint mgl32.Vec4)
}

// Visibility decides whether a chunk is drawn this frame.
// Returning false skips the draw and leaves the chunk's mesh untouched.
type Visibility func(bounds world.AABB, cam *camera.Camera) bool

// AlwaysVisible draws every chunk
func AlwaysVisible(world.AABB, *camera.Camera) bool {
	return true
}

// FrustumVisible draws chunks whose bounds touch the camera frustum
func FrustumVisible(bounds world.AABB, cam *camera.Camera) bool {
	if cam == nil {
		return true
	}
	f := camera.NewFrustum(cam.ViewProjection())
	return f.IntersectsAABB(bounds.Min, bounds.Max)
}
