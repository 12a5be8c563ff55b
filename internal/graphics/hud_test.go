package graphics

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func countColor(img *image.RGBA, c color.RGBA) int {
	n := 0
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.RGBAAt(x, y) == c {
				n++
			}
		}
	}
	return n
}

func TestComposeHUDBannerColor(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 640, 360))

	ComposeHUD(img, HUDState{})
	assert.Zero(t, countColor(img, bannerRed))
	blue := countColor(img, bannerBlue)
	assert.Greater(t, blue, 0)

	ComposeHUD(img, HUDState{Highlight: true})
	assert.Greater(t, countColor(img, bannerRed), 0)
	// only the panel outline is left in blue
	assert.Less(t, countColor(img, bannerBlue), blue)
}

func TestComposeHUDPanelAndStats(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 640, 360))
	ComposeHUD(img, HUDState{})

	assert.Equal(t, panelOutline, img.RGBAAt(panelRect.Min.X, panelRect.Min.Y))
	assert.NotZero(t, img.RGBAAt(panelRect.Max.X-3, panelRect.Max.Y-3).A, "panel fill")
	assert.Zero(t, img.RGBAAt(600, 20).A, "outside the panel stays transparent")
	assert.Zero(t, countColor(img, statsColor))

	ComposeHUD(img, HUDState{Stats: "FPS 60"})
	assert.Greater(t, countColor(img, statsColor), 0)
}
