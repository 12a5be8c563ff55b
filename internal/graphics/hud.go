package graphics

import (
	"image"
	"image/color"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Banner is drawn centered on screen
const Banner = "Voxel Island"

var (
	panelRect    = image.Rect(10, 10, 330, 123)
	panelFill    = color.NRGBA{102, 191, 255, 128}
	panelOutline = color.RGBA{0, 121, 241, 255}
	titleColor   = color.RGBA{0, 0, 0, 255}
	helpColor    = color.RGBA{80, 80, 80, 255}
	statsColor   = color.RGBA{255, 255, 255, 255}
	bannerRed    = color.RGBA{230, 41, 55, 255}
	bannerBlue   = color.RGBA{0, 121, 241, 255}

	controlsHelp = []string{
		"- Hold right mouse to look around",
		"- WASD to move, Space/Ctrl up and down",
		"- Shift to boost, Shift+X for turbo",
		"- Tab wireframe, R remesh all chunks",
	}
)

// HUDState is everything the overlay shows for one frame
type HUDState struct {
	Stats string
	// Highlight turns the banner red
	Highlight bool
}

// ComposeHUD paints the overlay into dst, which is cleared first
func ComposeHUD(dst *image.RGBA, s HUDState) {
	xdraw.Draw(dst, dst.Bounds(), image.Transparent, image.Point{}, xdraw.Src)

	xdraw.Draw(dst, panelRect, &image.Uniform{C: panelFill}, image.Point{}, xdraw.Over)
	strokeRect(dst, panelRect, panelOutline)

	face := basicfont.Face7x13
	drawText(dst, face, "Free camera controls:", 20, 20, titleColor)
	for i, line := range controlsHelp {
		drawText(dst, face, line, 40, 40+i*20, helpColor)
	}

	b := dst.Bounds()
	if s.Stats != "" {
		drawText(dst, face, s.Stats, 10, b.Dy()-20, statsColor)
	}

	c := bannerBlue
	if s.Highlight {
		c = bannerRed
	}
	drawScaledText(dst, face, Banner, b.Dx()/2, b.Dy()/2, 2, c)
}

// drawText draws with the top of the line at y
func drawText(dst *image.RGBA, face font.Face, text string, x, y int, c color.Color) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(x, y+face.Metrics().Ascent.Ceil()),
	}
	d.DrawString(text)
}

// drawScaledText renders into a scratch image and scales it up with nearest neighbour
func drawScaledText(dst *image.RGBA, face font.Face, text string, x, y, scale int, c color.Color) {
	width := font.MeasureString(face, text).Ceil()
	height := face.Metrics().Height.Ceil()
	if width == 0 || height == 0 {
		return
	}
	scratch := image.NewRGBA(image.Rect(0, 0, width, height))
	drawText(scratch, face, text, 0, 0, c)
	target := image.Rect(x, y, x+width*scale, y+height*scale)
	xdraw.NearestNeighbor.Scale(dst, target, scratch, scratch.Bounds(), xdraw.Over, nil)
}

func strokeRect(dst *image.RGBA, r image.Rectangle, c color.RGBA) {
	for x := r.Min.X; x < r.Max.X; x++ {
		dst.SetRGBA(x, r.Min.Y, c)
		dst.SetRGBA(x, r.Max.Y-1, c)
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		dst.SetRGBA(r.Min.X, y, c)
		dst.SetRGBA(r.Max.X-1, y, c)
	}
}

// HUD draws the composed overlay as one screen-sized textured quad
type HUD struct {
	shader *Shader
	vao    uint32
	vbo    uint32

	canvas *image.RGBA
	tex    *Texture
	last   HUDState
	fresh  bool
	proj   mgl32.Mat4
}

func NewHUD(width, height int) (*HUD, error) {
	shader, err := loadBuiltinShader("hud")
	if err != nil {
		return nil, err
	}
	h := &HUD{shader: shader}

	gl.GenVertexArrays(1, &h.vao)
	gl.GenBuffers(1, &h.vbo)
	gl.BindVertexArray(h.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, h.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, 6*4*4, nil, gl.DYNAMIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, 4*4, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 2, gl.FLOAT, false, 4*4, gl.PtrOffset(2*4))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	h.SetViewport(width, height)
	return h, nil
}

// SetViewport reallocates the canvas for a new framebuffer size
func (h *HUD) SetViewport(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	if h.tex != nil {
		h.tex.Delete()
	}
	h.canvas = image.NewRGBA(image.Rect(0, 0, width, height))
	h.tex = UploadRGBA(h.canvas, gl.NEAREST)
	h.proj = mgl32.Ortho(0, float32(width), float32(height), 0, -1, 1)
	h.fresh = false

	w, ht := float32(width), float32(height)
	verts := []float32{
		0, 0, 0, 0,
		w, 0, 1, 0,
		w, ht, 1, 1,
		0, 0, 0, 0,
		w, ht, 1, 1,
		0, ht, 0, 1,
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, h.vbo)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(verts)*4, gl.Ptr(verts))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

// Draw re-uploads the overlay only when the state changed
func (h *HUD) Draw(s HUDState) {
	if !h.fresh || s != h.last {
		ComposeHUD(h.canvas, s)
		h.tex.Update(h.canvas)
		h.last = s
		h.fresh = true
	}

	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	h.shader.Use()
	h.shader.SetMatrix4("proj", h.proj)
	h.shader.SetVector4("color", mgl32.Vec4{1, 1, 1, 1})
	h.shader.SetBool("useTexture", true)
	h.shader.SetInt("tex", 0)
	h.tex.Bind(0)

	gl.BindVertexArray(h.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, 6)
	gl.BindVertexArray(0)

	gl.Disable(gl.BLEND)
	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.CULL_FACE)
}

func (h *HUD) Dispose() {
	if h.tex != nil {
		h.tex.Delete()
	}
	if h.vao != 0 {
		gl.DeleteVertexArrays(1, &h.vao)
	}
	if h.vbo != 0 {
		gl.DeleteBuffers(1, &h.vbo)
	}
	h.shader.Delete()
}
