// pkg/entity/entity.go
package entity

import (
	"github.com/opd-ai/go-shmup/pkg/physics"
)

// ID is a unique identifier for an entity
type ID uint64

// Team groups ships that do not damage each other
type Team string

// TeamEnemy is the team every enemy drone belongs to
const TeamEnemy Team = "Enemy"

// Kind identifies which world group an entity belongs to
type Kind int

const (
	KindPlayer Kind = iota
	KindEnemy
	KindProjectile
	KindExplosion
	KindMassive
)

func (k Kind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindEnemy:
		return "enemy"
	case KindProjectile:
		return "projectile"
	case KindExplosion:
		return "explosion"
	case KindMassive:
		return "massive"
	default:
		return "unknown"
	}
}

// Kinematic defaults shared by every body
const (
	DefaultMaxVelocity = 500
	DefaultFriction    = 0.5
)

// Entity is the base interface for all game objects
type Entity interface {
	Base() *Body
	Sprite() Sprite
}

// Body contains the state common to every simulated object: kinematics,
// mass, alive flag and the animation that decides its size on screen.
type Body struct {
	physics.MovementState
	ID    ID
	Kind  Kind
	Team  Team
	Mass  float64
	Alive bool

	// Acceleration is a fixed world-frame acceleration of the body's own
	Acceleration physics.Vector2D
	// Gravity is the external acceleration applied by the next Integrate
	Gravity physics.Vector2D

	Anim *Animation

	extent    physics.Rect
	lastFrame int
}

func newBody(id ID, kind Kind, position physics.Vector2D, anim *Animation) Body {
	b := Body{
		MovementState: physics.MovementState{
			Position:    position,
			MaxVelocity: DefaultMaxVelocity,
			Friction:    DefaultFriction,
		},
		ID:    id,
		Kind:  kind,
		Alive: true,
		Anim:  anim,
	}
	b.refreshExtent()
	return b
}

// Base returns the body itself
func (b *Body) Base() *Body {
	return b
}

// Integrate advances the animation clock and the kinematics by deltaTime
func (b *Body) Integrate(deltaTime float64) {
	frameChanged := b.Anim.Advance(deltaTime)
	turned := physics.UpdateMovement(&b.MovementState, deltaTime, b.Acceleration, b.Gravity)
	if turned || frameChanged || b.Anim.Frame() != b.lastFrame {
		b.refreshExtent()
	}
}

// refreshExtent recomputes the axis-aligned size of the current frame
// rotated by the current orientation.
func (b *Body) refreshExtent() {
	r := b.Anim.Region()
	b.extent = physics.Rect{Width: float64(r.W), Height: float64(r.H)}.Rotated(b.Orientation)
	b.lastFrame = b.Anim.Frame()
}

// Bounds returns the body's axis-aligned bounding box in world space
func (b *Body) Bounds() physics.Rect {
	return physics.Rect{Center: b.Position, Width: b.extent.Width, Height: b.extent.Height}
}

// ClampInside moves the body so its bounds lie within field
func (b *Body) ClampInside(field physics.Rect) {
	b.Position = b.Bounds().ClampInside(field).Center
}

// PointMass returns the body as a participant in n-body attraction
func (b *Body) PointMass() physics.PointMass {
	return physics.PointMass{Position: b.Position, Mass: b.Mass}
}

// Sprite returns the draw data for the body's current frame
func (b *Body) Sprite() Sprite {
	return Sprite{
		ID:          b.ID,
		Kind:        b.Kind,
		Region:      b.Anim.Region(),
		Center:      b.Position,
		Orientation: b.Orientation,
		Bounds:      b.Bounds(),
	}
}
