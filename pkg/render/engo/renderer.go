// pkg/render/engo/renderer.go
package engo

import (
	"image/color"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-shmup/pkg/entity"
	"github.com/opd-ai/go-shmup/pkg/physics"
)

// spriteSystem is the part of common.RenderSystem the renderer feeds
type spriteSystem interface {
	Add(basic *ecs.BasicEntity, render *common.RenderComponent, space *common.SpaceComponent)
	Remove(basic ecs.BasicEntity)
}

// Draw order, back to front
const (
	backdropZ = iota
	massiveZ
	explosionZ
	projectileZ
	enemyZ
	playerZ
)

// sprite is the ecs entity mirroring one simulated entity
type sprite struct {
	ecs.BasicEntity
	common.RenderComponent
	common.SpaceComponent
	seen bool
}

// EngoRenderer implements entity.Surface on top of an engo render system.
// Every simulated entity gets an ecs entity the first time it is blitted;
// entities not blitted between Clear and Present are removed.
type EngoRenderer struct {
	system  spriteSystem
	assets  *AssetManager
	camera  *Camera
	sprites map[entity.ID]*sprite
}

// NewEngoRenderer creates a renderer adding sprites to system
func NewEngoRenderer(system spriteSystem, assets *AssetManager, camera *Camera) *EngoRenderer {
	if camera == nil {
		camera = NewCamera(nil)
	}
	return &EngoRenderer{
		system:  system,
		assets:  assets,
		camera:  camera,
		sprites: make(map[entity.ID]*sprite),
	}
}

// Clear implements entity.Surface.
func (r *EngoRenderer) Clear() {
	for _, s := range r.sprites {
		s.seen = false
	}
}

// Blit implements entity.Surface.
func (r *EngoRenderer) Blit(s entity.Sprite) {
	sp, ok := r.sprites[s.ID]
	if !ok {
		sp = &sprite{BasicEntity: ecs.NewBasic()}
		sp.RenderComponent.Color = color.White
		sp.RenderComponent.SetZIndex(zIndex(s.Kind))
		r.sprites[s.ID] = sp
		r.system.Add(&sp.BasicEntity, &sp.RenderComponent, &sp.SpaceComponent)
	}
	sp.seen = true

	if d := r.assets.Drawable(s.Region); d != nil {
		sp.Drawable = d
	}
	sp.Width = float32(s.Region.W)
	sp.Height = float32(s.Region.H)
	sp.Rotation = screenRotation(s.Orientation)
	sp.SetCenter(toPoint(r.camera.Apply(s.Center)))
}

// Present implements entity.Surface.
func (r *EngoRenderer) Present() {
	for id, s := range r.sprites {
		if !s.seen {
			r.system.Remove(s.BasicEntity)
			delete(r.sprites, id)
		}
	}
}

// Len returns the number of sprites on screen
func (r *EngoRenderer) Len() int {
	return len(r.sprites)
}

// screenRotation converts an orientation into engo's clockwise degrees.
// Sprites are drawn nose up, which is orientation 180.
func screenRotation(orientation float64) float32 {
	return float32(180 - orientation)
}

func zIndex(k entity.Kind) float32 {
	switch k {
	case entity.KindMassive:
		return massiveZ
	case entity.KindExplosion:
		return explosionZ
	case entity.KindProjectile:
		return projectileZ
	case entity.KindEnemy:
		return enemyZ
	default:
		return playerZ
	}
}

func toPoint(v physics.Vector2D) engo.Point {
	return engo.Point{X: float32(v.X), Y: float32(v.Y)}
}
