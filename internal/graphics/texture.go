package graphics

import (
	"fmt"
	"image"
	"image/color"
	_ "image/png"
	"os"

	"github.com/go-gl/gl/v4.1-core/gl"
	xdraw "golang.org/x/image/draw"

	"voxel-island/internal/meshing"
	"voxel-island/internal/world"
)

// Texture is a 2D GL texture
type Texture struct {
	ID     uint32
	Width  int
	Height int
}

// UploadRGBA copies the image into a new texture. filter is gl.NEAREST or gl.LINEAR.
func UploadRGBA(rgba *image.RGBA, filter int32) *Texture {
	var texture uint32
	gl.GenTextures(1, &texture)
	gl.BindTexture(gl.TEXTURE_2D, texture)

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, filter)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, filter)

	size := rgba.Rect.Size()
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(size.X), int32(size.Y), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(rgba.Pix))
	gl.BindTexture(gl.TEXTURE_2D, 0)

	return &Texture{ID: texture, Width: size.X, Height: size.Y}
}

// Update replaces the texture contents; the image must match the texture size
func (t *Texture) Update(rgba *image.RGBA) {
	gl.BindTexture(gl.TEXTURE_2D, t.ID)
	gl.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0, int32(t.Width), int32(t.Height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(rgba.Pix))
	gl.BindTexture(gl.TEXTURE_2D, 0)
}

func (t *Texture) Bind(unit uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_2D, t.ID)
}

func (t *Texture) Delete() {
	if t.ID != 0 {
		gl.DeleteTextures(1, &t.ID)
		t.ID = 0
	}
}

func decodeImage(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open texture file: %w", err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
	}
	return img, nil
}

func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Rect.Min == (image.Point{}) {
		return rgba
	}
	rgba := image.NewRGBA(image.Rect(0, 0, img.Bounds().Dx(), img.Bounds().Dy()))
	xdraw.Draw(rgba, rgba.Bounds(), img, img.Bounds().Min, xdraw.Src)
	return rgba
}

// LoadAtlasImage decodes an atlas and resamples it so every cell is cellSize pixels square
func LoadAtlasImage(path string, grid meshing.Atlas, cellSize int) (*image.RGBA, error) {
	img, err := decodeImage(path)
	if err != nil {
		return nil, err
	}
	w, h := grid.Columns*cellSize, grid.Rows*cellSize
	if img.Bounds().Dx() == w && img.Bounds().Dy() == h {
		return toRGBA(img), nil
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), img, img.Bounds(), xdraw.Src, nil)
	return dst, nil
}

// BlockColor is the flat color used for a block type in the procedural atlas
func BlockColor(b world.BlockType) color.RGBA {
	switch b {
	case world.BlockTypeDirt:
		return color.RGBA{134, 96, 67, 255}
	case world.BlockTypeGrass:
		return color.RGBA{95, 159, 53, 255}
	case world.BlockTypeStone:
		return color.RGBA{125, 125, 125, 255}
	case world.BlockTypeSand:
		return color.RGBA{219, 207, 163, 255}
	case world.BlockTypeWater:
		return color.RGBA{47, 88, 200, 255}
	default:
		return color.RGBA{}
	}
}

// ProceduralAtlas paints one speckled flat-color cell per block type.
// The output is deterministic.
func ProceduralAtlas(grid meshing.Atlas, cellSize int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, grid.Columns*cellSize, grid.Rows*cellSize))
	for b := world.BlockType(1); b < world.NumBlockTypes; b++ {
		col, row := grid.Cell(b)
		if row >= grid.Rows {
			continue
		}
		cell := image.Rect(col*cellSize, row*cellSize, (col+1)*cellSize, (row+1)*cellSize)
		base := BlockColor(b)
		xdraw.Draw(img, cell, &image.Uniform{C: base}, image.Point{}, xdraw.Src)
		for y := cell.Min.Y; y < cell.Max.Y; y++ {
			for x := cell.Min.X; x < cell.Max.X; x++ {
				if speckle(x, y) {
					img.SetRGBA(x, y, shade(base, 0.85))
				}
			}
		}
		// outline so individual faces read at a distance
		for i := range cellSize {
			edge := shade(base, 0.7)
			img.SetRGBA(cell.Min.X+i, cell.Min.Y, edge)
			img.SetRGBA(cell.Min.X+i, cell.Max.Y-1, edge)
			img.SetRGBA(cell.Min.X, cell.Min.Y+i, edge)
			img.SetRGBA(cell.Max.X-1, cell.Min.Y+i, edge)
		}
	}
	return img
}

func speckle(x, y int) bool {
	h := uint32(x)*374761393 + uint32(y)*668265263
	h = (h ^ (h >> 13)) * 1274126177
	return h%5 == 0
}

func shade(c color.RGBA, f float32) color.RGBA {
	return color.RGBA{
		R: uint8(float32(c.R) * f),
		G: uint8(float32(c.G) * f),
		B: uint8(float32(c.B) * f),
		A: c.A,
	}
}
