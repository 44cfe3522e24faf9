// pkg/render/engo/renderer_test.go
package engo

import (
	"testing"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opd-ai/go-shmup/pkg/config"
	"github.com/opd-ai/go-shmup/pkg/engine"
	"github.com/opd-ai/go-shmup/pkg/entity"
	"github.com/opd-ai/go-shmup/pkg/physics"
)

// fakeSystem records what the renderer adds and removes
type fakeSystem struct {
	spaces  map[uint64]*common.SpaceComponent
	renders map[uint64]*common.RenderComponent
	removed []uint64
}

func newFakeSystem() *fakeSystem {
	return &fakeSystem{
		spaces:  make(map[uint64]*common.SpaceComponent),
		renders: make(map[uint64]*common.RenderComponent),
	}
}

func (f *fakeSystem) Add(basic *ecs.BasicEntity, render *common.RenderComponent, space *common.SpaceComponent) {
	f.spaces[basic.ID()] = space
	f.renders[basic.ID()] = render
}

func (f *fakeSystem) Remove(basic ecs.BasicEntity) {
	delete(f.spaces, basic.ID())
	delete(f.renders, basic.ID())
	f.removed = append(f.removed, basic.ID())
}

func newTestRenderer() (*EngoRenderer, *fakeSystem) {
	sys := newFakeSystem()
	am := NewAssetManager()
	am.Prepare(nil, 0, 0)
	return NewEngoRenderer(sys, am, nil), sys
}

func TestEngoRenderer_BlitCreatesSprite(t *testing.T) {
	r, sys := newTestRenderer()

	r.Clear()
	r.Blit(entity.Sprite{
		ID:          1,
		Kind:        entity.KindPlayer,
		Region:      entity.PlayerFrames[0],
		Center:      physics.Vector2D{X: 100, Y: 200},
		Orientation: 180,
	})
	r.Present()

	require.Equal(t, 1, r.Len())
	require.Len(t, sys.spaces, 1)
	for _, space := range sys.spaces {
		assert.Equal(t, float32(16), space.Width)
		assert.Equal(t, float32(32), space.Height)
		assert.Equal(t, float32(0), space.Rotation, "sprites are drawn nose up")
		assert.InDelta(t, 92, space.Position.X, 1e-4)
		assert.InDelta(t, 184, space.Position.Y, 1e-4)
	}
}

func TestEngoRenderer_ReusesSpriteAcrossFrames(t *testing.T) {
	r, sys := newTestRenderer()
	s := entity.Sprite{ID: 7, Kind: entity.KindEnemy, Region: entity.EnemyFrame, Center: physics.Vector2D{X: 50, Y: 50}}

	for i := 0; i < 3; i++ {
		r.Clear()
		s.Center.X += 10
		r.Blit(s)
		r.Present()
	}

	assert.Equal(t, 1, r.Len())
	assert.Len(t, sys.spaces, 1)
	assert.Empty(t, sys.removed)
}

func TestEngoRenderer_RemovesVanishedSprites(t *testing.T) {
	r, sys := newTestRenderer()

	r.Clear()
	r.Blit(entity.Sprite{ID: 1, Kind: entity.KindEnemy, Region: entity.EnemyFrame})
	r.Blit(entity.Sprite{ID: 2, Kind: entity.KindProjectile, Region: entity.LaserBolt.Frames[0]})
	r.Present()

	r.Clear()
	r.Blit(entity.Sprite{ID: 1, Kind: entity.KindEnemy, Region: entity.EnemyFrame})
	r.Present()

	assert.Equal(t, 1, r.Len())
	assert.Len(t, sys.removed, 1)
}

func TestScreenRotation(t *testing.T) {
	tests := []struct {
		orientation float64
		expected    float32
	}{
		{180, 0},
		{0, 180},
		{270, -90},
		{90, 90},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, screenRotation(tt.orientation))
	}
}

func TestZIndexOrder(t *testing.T) {
	assert.Less(t, zIndex(entity.KindMassive), zIndex(entity.KindExplosion))
	assert.Less(t, zIndex(entity.KindExplosion), zIndex(entity.KindProjectile))
	assert.Less(t, zIndex(entity.KindProjectile), zIndex(entity.KindEnemy))
	assert.Less(t, zIndex(entity.KindEnemy), zIndex(entity.KindPlayer))
}

func TestEngoRenderer_DrawsWorld(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Seed = "engo"
	world, err := engine.NewWorldFromConfig(cfg)
	require.NoError(t, err)
	world.Step(1.0 / 60)

	r, _ := newTestRenderer()
	world.Draw(r)

	s := world.Stats()
	assert.Equal(t, s.Players+s.Enemies+s.Projectiles+s.Explosions+s.Massive, r.Len())
}
