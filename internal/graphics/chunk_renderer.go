package graphics

import (
	"errors"
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"voxel-island/internal/logging"
	"voxel-island/internal/meshing"
	"voxel-island/internal/terrain"
)

var errEmptyMesh = errors.New("empty mesh")

// gpuModel is a chunk mesh living in GPU buffers
type gpuModel struct {
	vao        uint32
	posVBO     uint32
	uvVBO      uint32
	ebo        uint32
	indexCount int32
}

// ChunkRenderer draws chunk meshes with the block atlas. It implements terrain.Renderer.
type ChunkRenderer struct {
	shader *Shader
	atlas  *Texture
	log    *logging.Logger

	models map[terrain.ModelID]*gpuModel
	nextID terrain.ModelID

	Wireframe bool
}

func NewChunkRenderer(atlas *Texture, log *logging.Logger) (*ChunkRenderer, error) {
	shader, err := loadBuiltinShader("chunk")
	if err != nil {
		return nil, err
	}
	return &ChunkRenderer{
		shader: shader,
		atlas:  atlas,
		log:    log.With("chunk-renderer"),
		models: make(map[terrain.ModelID]*gpuModel),
	}, nil
}

// UploadModel copies the mesh into a VAO with separate position and UV buffers
func (r *ChunkRenderer) UploadModel(mesh *meshing.Mesh) (terrain.ModelID, error) {
	if mesh.Empty() {
		return 0, errEmptyMesh
	}
	m := &gpuModel{indexCount: int32(len(mesh.Indices))}

	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	gl.GenBuffers(1, &m.posVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.posVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(mesh.Vertices)*4, gl.Ptr(mesh.Vertices), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, meshing.PositionStride, gl.FLOAT, false, meshing.PositionStride*4, gl.PtrOffset(0))

	gl.GenBuffers(1, &m.uvVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.uvVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(mesh.TexCoords)*4, gl.Ptr(mesh.TexCoords), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, meshing.TexCoordStride, gl.FLOAT, false, meshing.TexCoordStride*4, gl.PtrOffset(0))

	gl.GenBuffers(1, &m.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(mesh.Indices)*4, gl.Ptr(mesh.Indices), gl.STATIC_DRAW)

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	if err := CheckError("upload chunk model"); err != nil {
		r.deleteModel(m)
		return 0, err
	}

	r.nextID++
	r.models[r.nextID] = m
	return r.nextID, nil
}

// ReleaseModel frees the model's GPU buffers
func (r *ChunkRenderer) ReleaseModel(id terrain.ModelID) {
	m, ok := r.models[id]
	if !ok {
		r.log.Warnf("release of unknown model %d", id)
		return
	}
	r.deleteModel(m)
	delete(r.models, id)
}

func (r *ChunkRenderer) deleteModel(m *gpuModel) {
	buffers := []uint32{m.posVBO, m.uvVBO, m.ebo}
	gl.DeleteBuffers(int32(len(buffers)), &buffers[0])
	gl.DeleteVertexArrays(1, &m.vao)
}

// Begin binds the shader, atlas and camera matrices for the following DrawModel calls
func (r *ChunkRenderer) Begin(view, proj mgl32.Mat4) {
	r.shader.Use()
	r.shader.SetMatrix4("view", view)
	r.shader.SetMatrix4("proj", proj)
	r.shader.SetInt("atlas", 0)
	r.atlas.Bind(0)

	if r.Wireframe {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
	}
}

// DrawModel draws one model at position with a uniform scale
func (r *ChunkRenderer) DrawModel(id terrain.ModelID, position mgl32.Vec3, scale float32, tint mgl32.Vec4) {
	m, ok := r.models[id]
	if !ok {
		return
	}
	model := mgl32.Translate3D(position.X(), position.Y(), position.Z()).Mul4(mgl32.Scale3D(scale, scale, scale))
	r.shader.SetMatrix4("model", model)
	r.shader.SetVector4("tint", tint)

	gl.BindVertexArray(m.vao)
	gl.DrawElements(gl.TRIANGLES, m.indexCount, gl.UNSIGNED_INT, gl.PtrOffset(0))
}

// End restores state changed by Begin
func (r *ChunkRenderer) End() {
	gl.BindVertexArray(0)
	if r.Wireframe {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	}
}

// Models returns the number of live models
func (r *ChunkRenderer) Models() int {
	return len(r.models)
}

// Dispose frees every model and the shader. The atlas is owned by the caller.
func (r *ChunkRenderer) Dispose() {
	for id, m := range r.models {
		r.deleteModel(m)
		delete(r.models, id)
	}
	r.shader.Delete()
}

// CheckError drains the GL error queue
func CheckError(op string) error {
	var codes []uint32
	for code := gl.GetError(); code != gl.NO_ERROR; code = gl.GetError() {
		codes = append(codes, code)
		if len(codes) > 8 {
			break
		}
	}
	if len(codes) == 0 {
		return nil
	}
	return fmt.Errorf("%s: gl errors %#x", op, codes)
}
