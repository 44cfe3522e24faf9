// pkg/entity/projectile_test.go
package entity

import (
	"testing"

	"github.com/opd-ai/go-shmup/pkg/physics"
	"github.com/stretchr/testify/assert"
)

func TestNewProjectile(t *testing.T) {
	p := NewProjectile(11, LaserBolt, testMount, 180, 0)

	assert.Equal(t, KindProjectile, p.Kind)
	assert.Equal(t, ID(7), p.OwnerID)
	assert.Equal(t, Team("Blue"), p.Team, "team is captured at launch")
	assert.Equal(t, 50, p.Damage)
	assert.Equal(t, testMount.Position, p.Position)
	assert.InDelta(t, -600.0, p.Velocity.Y, 1e-9)
	assert.InDelta(t, -4000.0, p.Acceleration.Y, 1e-9)
	assert.InDelta(t, 8.0, p.Bounds().Width, 1e-9)
}

func TestProjectile_AcceleratesToMaxVelocity(t *testing.T) {
	tests := []struct {
		name string
		pt   *ProjectileType
	}{
		{"laser", LaserBolt},
		{"plasma", PlasmaBall},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewProjectile(1, tt.pt, testMount, 90, 0)
			for i := 0; i < 120; i++ {
				p.Update(1.0 / 60)
				assert.LessOrEqual(t, p.Velocity.Length(), tt.pt.MaxVelocity+1e-9)
			}
			assert.InDelta(t, tt.pt.MaxVelocity, p.Velocity.X, 1e-6, "flies right at top speed")
			assert.Greater(t, p.Position.X, testMount.Position.X)
		})
	}
}

func TestProjectile_StartFrame(t *testing.T) {
	plasma := NewProjectile(1, PlasmaBall, testMount, 0, 4)
	assert.Equal(t, 4, plasma.Anim.Frame())

	laser := NewProjectile(2, LaserBolt, testMount, 0, 4)
	assert.Equal(t, 0, laser.Anim.Frame(), "types without random start ignore it")
}

func TestProjectile_AnimationsAreIndependent(t *testing.T) {
	a := NewProjectile(1, PlasmaBall, testMount, 0, 0)
	b := NewProjectile(2, PlasmaBall, testMount, 0, 0)

	a.Update(PlasmaBall.FrameDelay)

	assert.Equal(t, 1, a.Anim.Frame())
	assert.Equal(t, 0, b.Anim.Frame())
}

func TestExplosion_DiesAfterOneCycle(t *testing.T) {
	e := NewExplosion(1, physics.Vector2D{X: 5, Y: 5}, 42)
	assert.Equal(t, ID(42), e.Source)

	for i := 0; i < len(ExplosionFrames); i++ {
		assert.True(t, e.Alive, "frame %d", i)
		e.Update(ExplosionFrameDelay)
	}

	assert.False(t, e.Alive)
	assert.Equal(t, physics.Vector2D{X: 5, Y: 5}, e.Position)
}

func TestMassiveBody(t *testing.T) {
	tests := []struct {
		name  string
		class MassClass
		mass  float64
	}{
		{"Planet", Planet, 1e3},
		{"GasGiant", GasGiant, 1e4},
		{"Star", Star, 1e5},
		{"BlackHole", BlackHole, 1e6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMassiveBody(1, tt.class, physics.Vector2D{}, true)
			assert.Equal(t, tt.mass, m.Mass)
			assert.Equal(t, tt.name, tt.class.String())

			class, ok := MassClassFromString(tt.name)
			assert.True(t, ok)
			assert.Equal(t, tt.class, class)
		})
	}

	_, ok := MassClassFromString("Comet")
	assert.False(t, ok)
}

func TestMassiveBody_Anchored(t *testing.T) {
	anchored := NewMassiveBody(1, Star, physics.Vector2D{X: 100, Y: 100}, true)
	drifting := NewMassiveBody(2, Star, physics.Vector2D{X: 100, Y: 100}, false)

	for _, m := range []*MassiveBody{anchored, drifting} {
		m.Gravity = physics.Vector2D{X: 10, Y: 0}
		m.Update(1)
		m.Update(1)
	}

	assert.Equal(t, physics.Vector2D{X: 100, Y: 100}, anchored.Position)
	assert.InDelta(t, 130.0, drifting.Position.X, 1e-9)
	assert.InDelta(t, 20.0, drifting.Velocity.X, 1e-9, "massive bodies coast without friction")
}
