// pkg/entity/projectile.go
package entity

import (
	"github.com/opd-ai/go-shmup/pkg/physics"
)

// ProjectileType is the fixed profile shared by every projectile of a kind
type ProjectileType struct {
	Name         string
	Damage       int
	MaxVelocity  float64
	MuzzleSpeed  float64
	Acceleration float64
	Frames       []Region
	Sequence     []int
	FrameDelay   float64
	// RandomStart spawns the projectile on a random step of its sequence
	RandomStart bool
}

// Projectile catalogue
var (
	LaserBolt = &ProjectileType{
		Name:         "LaserBolt",
		Damage:       50,
		MaxVelocity:  1000,
		MuzzleSpeed:  600,
		Acceleration: 4000,
		Frames:       []Region{{X: 32, Y: 16, W: 8, H: 8}},
	}

	PlasmaBall = &ProjectileType{
		Name:         "PlasmaBall",
		Damage:       100,
		MaxVelocity:  250,
		MuzzleSpeed:  100,
		Acceleration: 1000,
		Frames: []Region{
			{X: 48, Y: 0, W: 8, H: 8},
			{X: 48, Y: 8, W: 8, H: 8},
			{X: 56, Y: 0, W: 8, H: 8},
			{X: 56, Y: 8, W: 8, H: 8},
		},
		Sequence:    []int{3, 2, 1, 0, 1, 2},
		FrameDelay:  0.05,
		RandomStart: true,
	}
)

// NewAnimation builds a fresh animation for one projectile of this type
func (pt *ProjectileType) NewAnimation() *Animation {
	seq := append([]int(nil), pt.Sequence...)
	return NewAnimation(pt.Frames, seq, pt.FrameDelay, true)
}

// Projectile represents a weapon projectile in the game
type Projectile struct {
	Body
	Type    *ProjectileType
	OwnerID ID
	Damage  int
}

// NewProjectile launches a projectile of type pt from the mount along
// heading. startFrame is only used by types with RandomStart.
func NewProjectile(id ID, pt *ProjectileType, m Mount, heading float64, startFrame int) *Projectile {
	anim := pt.NewAnimation()
	if pt.RandomStart {
		anim.SetFrame(startFrame)
	}

	p := &Projectile{
		Body:    newBody(id, KindProjectile, m.Position, anim),
		Type:    pt,
		OwnerID: m.OwnerID,
		Damage:  pt.Damage,
	}
	p.Team = m.Team
	p.Orientation = heading
	p.MaxVelocity = pt.MaxVelocity

	dir := physics.Heading(heading)
	p.Velocity = dir.Scale(pt.MuzzleSpeed)
	p.Acceleration = dir.Scale(pt.Acceleration)
	p.refreshExtent()
	return p
}

// Update moves the projectile along its firing heading
func (p *Projectile) Update(deltaTime float64) {
	p.Integrate(deltaTime)
}
