// pkg/render/engo/scene_test.go
package engo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opd-ai/go-shmup/pkg/config"
	"github.com/opd-ai/go-shmup/pkg/control"
	"github.com/opd-ai/go-shmup/pkg/engine"
	"github.com/opd-ai/go-shmup/pkg/logging"
)

func newSceneWorld(t *testing.T) *engine.World {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Seed = "scene"
	world, err := engine.NewWorldFromConfig(cfg)
	require.NoError(t, err)
	return world
}

func TestSimulationSystem_FixedSteps(t *testing.T) {
	tests := []struct {
		name   string
		frames []float32
		ticks  uint64
	}{
		{"short frame waits", []float32{0.01}, 0},
		{"one step", []float32{0.02}, 1},
		{"several steps", []float32{0.05}, 3},
		{"residual carries over", []float32{0.01, 0.01}, 1},
		{"stall is capped", []float32{1}, maxCatchUp},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			world := newSceneWorld(t)
			r, _ := newTestRenderer()
			sim := NewSimulationSystem(world, r, NewCamera(nil), 60)

			for _, dt := range tt.frames {
				sim.Update(dt)
			}

			assert.Equal(t, tt.ticks, world.CurrentTick)
			assert.Positive(t, r.Len(), "world is drawn every frame")
		})
	}
}

func TestSimulationSystem_StallDropsBacklog(t *testing.T) {
	world := newSceneWorld(t)
	r, _ := newTestRenderer()
	sim := NewSimulationSystem(world, r, NewCamera(nil), 60)

	sim.Update(1)
	sim.Update(0)

	assert.Equal(t, uint64(maxCatchUp), world.CurrentTick)
}

func TestNewGameScene(t *testing.T) {
	world := newSceneWorld(t)
	router := control.NewRouter(world, control.DefaultBindings("Player 1", "Player 2"), 200, 360)

	scene := NewGameScene(context.Background(), world, router, 60, logging.Discard())

	assert.Equal(t, "GameScene", scene.Type())
	assert.Equal(t, 60, scene.FPS)
	require.NotNil(t, scene.Stars)
	assert.NotNil(t, scene.assets)
}

func TestRunOptions(t *testing.T) {
	opts := RunOptions("shmup", 800, 600, false, 60)

	assert.Equal(t, "shmup", opts.Title)
	assert.Equal(t, 800, opts.Width)
	assert.Equal(t, 600, opts.Height)
	assert.Equal(t, 60, opts.FPSLimit)
	assert.True(t, opts.NotResizable)
}
