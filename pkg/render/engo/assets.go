// pkg/render/engo/assets.go
package engo

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-shmup/pkg/entity"
	"github.com/opd-ai/go-shmup/pkg/render"
)

// Palette per sprite kind
var (
	playerColor    = color.NRGBA{R: 80, G: 220, B: 120, A: 255}
	enemyColor     = color.NRGBA{R: 230, G: 70, B: 60, A: 255}
	laserColor     = color.NRGBA{R: 255, G: 240, B: 90, A: 255}
	plasmaColor    = color.NRGBA{R: 190, G: 90, B: 255, A: 255}
	explosionColor = color.NRGBA{R: 255, G: 150, B: 40, A: 255}
	starColor      = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
)

var massColors = map[entity.MassClass]color.NRGBA{
	entity.Planet:    {R: 70, G: 130, B: 220, A: 255},
	entity.GasGiant:  {R: 210, G: 170, B: 110, A: 255},
	entity.Star:      {R: 255, G: 230, B: 120, A: 255},
	entity.BlackHole: {R: 40, G: 20, B: 60, A: 255},
}

// shape reports whether pixel (x, y) of a w by h frame is filled
type shape func(x, y, w, h int) bool

// AssetManager draws every sprite sheet region as a procedural image, so
// the game needs no asset files. Textures are uploaded separately because
// that needs a GL context.
type AssetManager struct {
	images     map[entity.Region]*image.NRGBA
	textures   map[entity.Region]common.Drawable
	background *image.NRGBA
	backdrop   common.Drawable
}

// NewAssetManager creates a new asset manager
func NewAssetManager() *AssetManager {
	return &AssetManager{
		images:   make(map[entity.Region]*image.NRGBA),
		textures: make(map[entity.Region]common.Drawable),
	}
}

// Prepare draws the sprite images and a width by height backdrop from
// stars. It needs no GL context.
func (am *AssetManager) Prepare(stars *render.Starfield, width, height int) {
	for _, r := range entity.PlayerFrames {
		am.images[r] = drawShape(r, playerColor, arrow)
	}
	am.images[entity.EnemyFrame] = drawShape(entity.EnemyFrame, enemyColor, diamond)
	for _, r := range entity.LaserBolt.Frames {
		am.images[r] = drawShape(r, laserColor, bolt)
	}
	for i, r := range entity.PlasmaBall.Frames {
		am.images[r] = drawShape(r, plasmaColor, disc(0.5+0.15*float64(i)))
	}
	for i, r := range entity.ExplosionFrames {
		am.images[r] = drawShape(r, explosionColor, ring(0.3+0.2*float64(i)))
	}
	for _, class := range entity.MassClasses {
		r := class.Stats().Frame
		am.images[r] = drawShape(r, massColors[class], disc(1))
	}

	if stars != nil && width > 0 && height > 0 {
		am.background = drawBackdrop(stars, width, height)
	}
}

// LoadAssets uploads the prepared images as textures. It must run on the
// render thread, e.g. from a scene's Setup.
func (am *AssetManager) LoadAssets() error {
	if len(am.images) == 0 {
		return fmt.Errorf("load assets: nothing prepared")
	}
	for r, img := range am.images {
		am.textures[r] = convertToEngoTexture(img)
	}
	if am.background != nil {
		am.backdrop = convertToEngoTexture(am.background)
	}
	return nil
}

// Image returns the prepared image of region r
func (am *AssetManager) Image(r entity.Region) (*image.NRGBA, bool) {
	img, ok := am.images[r]
	return img, ok
}

// Drawable returns the texture of region r, or nil before LoadAssets
func (am *AssetManager) Drawable(r entity.Region) common.Drawable {
	return am.textures[r]
}

// Background returns the backdrop texture, or nil when there is none
func (am *AssetManager) Background() common.Drawable {
	return am.backdrop
}

// BackgroundImage returns the prepared backdrop image
func (am *AssetManager) BackgroundImage() *image.NRGBA {
	return am.background
}

// drawShape renders s into a transparent image the size of r
func drawShape(r entity.Region, c color.NRGBA, s shape) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, r.W, r.H))
	for y := 0; y < r.H; y++ {
		for x := 0; x < r.W; x++ {
			if s(x, y, r.W, r.H) {
				img.SetNRGBA(x, y, c)
			}
		}
	}
	return img
}

// drawBackdrop lights one pixel per star cell, fading with brightness
func drawBackdrop(stars *render.Starfield, width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for _, s := range stars.Stars(width, height) {
		c := starColor
		c.A = uint8(255 * s.Brightness)
		img.SetNRGBA(s.X, s.Y, c)
	}
	return img
}

// arrow is a triangle with its nose at the top of the frame
func arrow(x, y, w, h int) bool {
	half := float64(w) / 2
	spread := half * float64(y+1) / float64(h)
	return math.Abs(float64(x)+0.5-half) <= spread
}

func diamond(x, y, w, h int) bool {
	dx := math.Abs(float64(x)+0.5-float64(w)/2) / (float64(w) / 2)
	dy := math.Abs(float64(y)+0.5-float64(h)/2) / (float64(h) / 2)
	return dx+dy <= 1
}

// bolt is a narrow vertical bar
func bolt(x, y, w, h int) bool {
	return math.Abs(float64(x)+0.5-float64(w)/2) <= float64(w)/6
}

// disc fills a circle of the given fraction of the frame radius
func disc(radius float64) shape {
	return func(x, y, w, h int) bool {
		return normalisedRadius(x, y, w, h) <= radius
	}
}

// ring draws a band around the given fraction of the frame radius
func ring(radius float64) shape {
	return func(x, y, w, h int) bool {
		return math.Abs(normalisedRadius(x, y, w, h)-radius) <= 0.15
	}
}

func normalisedRadius(x, y, w, h int) float64 {
	dx := (float64(x) + 0.5 - float64(w)/2) / (float64(w) / 2)
	dy := (float64(y) + 0.5 - float64(h)/2) / (float64(h) / 2)
	return math.Hypot(dx, dy)
}

// convertToEngoTexture uploads img and wraps it as a drawable
func convertToEngoTexture(img *image.NRGBA) common.Drawable {
	return common.NewTextureSingle(common.NewImageObject(img))
}
