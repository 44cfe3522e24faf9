// pkg/entity/explosion.go
package entity

import "github.com/opd-ai/go-shmup/pkg/physics"

// ExplosionFrameDelay is the time each explosion frame is shown
const ExplosionFrameDelay = 0.3

// ExplosionFrames are the sprite sheet regions of the blast
var ExplosionFrames = []Region{
	{X: 0, Y: 32, W: 16, H: 16},
	{X: 16, Y: 32, W: 16, H: 16},
	{X: 32, Y: 32, W: 16, H: 16},
	{X: 48, Y: 32, W: 16, H: 16},
}

// Explosion plays its animation once and then dies
type Explosion struct {
	Body
	// Source is the entity whose death caused the blast
	Source ID
}

// NewExplosion creates an explosion centered on position
func NewExplosion(id ID, position physics.Vector2D, source ID) *Explosion {
	return &Explosion{
		Body:   newBody(id, KindExplosion, position, NewAnimation(ExplosionFrames, nil, ExplosionFrameDelay, false)),
		Source: source,
	}
}

// Update advances the blast; it stops being alive once the animation completes
func (e *Explosion) Update(deltaTime float64) {
	e.Integrate(deltaTime)
	if e.Anim.Done() {
		e.Alive = false
	}
}
