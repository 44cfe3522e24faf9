// pkg/entity/renderer.go
package entity

import "github.com/opd-ai/go-shmup/pkg/physics"

// Region is a sub-rectangle of the sprite sheet, in pixels
type Region struct {
	X, Y, W, H int
}

// Sprite is everything a surface needs to draw one entity
type Sprite struct {
	ID          ID
	Kind        Kind
	Region      Region
	Center      physics.Vector2D
	Orientation float64
	Bounds      physics.Rect
}

// Surface handles rendering game entities. Blit is called back to front.
type Surface interface {
	Clear()
	Blit(s Sprite)
	Present()
}
