// pkg/entity/entity_test.go
package entity

import (
	"testing"

	"github.com/opd-ai/go-shmup/pkg/physics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKind_String(t *testing.T) {
	tests := []struct {
		kind     Kind
		expected string
	}{
		{KindPlayer, "player"},
		{KindEnemy, "enemy"},
		{KindProjectile, "projectile"},
		{KindExplosion, "explosion"},
		{KindMassive, "massive"},
		{Kind(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.kind.String())
		})
	}
}

func TestAnimation_Loops(t *testing.T) {
	a := NewAnimation(PlayerFrames, nil, 0.1, true)

	assert.False(t, a.Advance(0.05))
	assert.Equal(t, 0, a.Frame())

	assert.True(t, a.Advance(0.05))
	assert.Equal(t, 1, a.Frame())
	assert.Equal(t, PlayerFrames[1], a.Region())

	assert.True(t, a.Advance(0.1))
	assert.Equal(t, 0, a.Frame(), "looping animations wrap")
	assert.False(t, a.Done())
}

func TestAnimation_OneShot(t *testing.T) {
	a := NewAnimation(ExplosionFrames, nil, 0.3, false)

	for i := 1; i < len(ExplosionFrames); i++ {
		require.True(t, a.Advance(0.3))
		assert.Equal(t, i, a.Frame())
	}
	assert.False(t, a.Done())

	assert.False(t, a.Advance(0.3))
	assert.True(t, a.Done())
	assert.Equal(t, ExplosionFrames[3], a.Region(), "stops on the last frame")

	assert.False(t, a.Advance(10))
}

func TestAnimation_Sequence(t *testing.T) {
	a := PlasmaBall.NewAnimation()
	require.Equal(t, 6, a.Len())
	assert.Equal(t, PlasmaBall.Frames[3], a.Region())

	a.SetFrame(3)
	assert.Equal(t, PlasmaBall.Frames[0], a.Region())

	a.SetFrame(-1)
	assert.Equal(t, 5, a.Frame())

	a.SetFrame(13)
	assert.Equal(t, 1, a.Frame())
}

func TestAnimation_StillNeverChanges(t *testing.T) {
	a := Still(EnemyFrame)
	for i := 0; i < 100; i++ {
		assert.False(t, a.Advance(1))
	}
	assert.Equal(t, EnemyFrame, a.Region())
}

func TestBody_BoundsFollowRotation(t *testing.T) {
	s := NewEnemy(1, physics.Vector2D{X: 100, Y: 100}, nil)
	assert.InDelta(t, 16.0, s.Bounds().Width, 1e-9)

	// 60 deg/s for 0.75 s puts the square at 45 degrees.
	s.Integrate(0.75)

	assert.InDelta(t, 45.0, s.Orientation, 1e-9)
	assert.InDelta(t, 22.627417, s.Bounds().Width, 1e-6)
	assert.InDelta(t, 22.627417, s.Bounds().Height, 1e-6)
	assert.Equal(t, s.Position, s.Bounds().Center)
}

func TestBody_BoundsFollowFrame(t *testing.T) {
	p := NewPlayer(1, "p1", "Blue", physics.Vector2D{X: 50, Y: 50}, nil)
	p.Orientation = 90
	p.Integrate(0)
	assert.InDelta(t, 16.0, p.Bounds().Width, 1e-9, "rotation is only noticed on turn or frame change")

	p.Integrate(PlayerFrameDelay)
	assert.Equal(t, 1, p.Anim.Frame())
	assert.InDelta(t, 32.0, p.Bounds().Width, 1e-9)
	assert.InDelta(t, 16.0, p.Bounds().Height, 1e-9)
}

func TestBody_ClampInside(t *testing.T) {
	field := physics.RectFromCorner(0, 0, 640, 480)
	p := NewPlayer(1, "p1", "Blue", physics.Vector2D{X: -40, Y: 500}, nil)

	p.ClampInside(field)

	assert.InDelta(t, 8.0, p.Position.X, 1e-9)
	assert.InDelta(t, 464.0, p.Position.Y, 1e-9)
}

func TestBody_Sprite(t *testing.T) {
	p := NewPlayer(4, "p1", "Blue", physics.Vector2D{X: 10, Y: 20}, nil)
	s := p.Sprite()

	assert.Equal(t, ID(4), s.ID)
	assert.Equal(t, KindPlayer, s.Kind)
	assert.Equal(t, PlayerFrames[0], s.Region)
	assert.Equal(t, physics.Vector2D{X: 10, Y: 20}, s.Center)
	assert.Equal(t, 180.0, s.Orientation)
	assert.Equal(t, p.Bounds(), s.Bounds)
}

func TestBody_SpeedClampedForAnyDelta(t *testing.T) {
	for _, d := range []float64{1.0 / 60, 0.5, 3, 1000} {
		p := NewPlayer(1, "p1", "Blue", physics.Vector2D{}, nil)
		p.SetThrust(1e7)
		p.Gravity = physics.Vector2D{X: 1e7, Y: 0}
		p.Integrate(d)
		assert.LessOrEqual(t, p.Velocity.Length(), DefaultMaxVelocity+1e-9)
	}
}
