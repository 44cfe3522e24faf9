// pkg/render/engo/input_test.go
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

// fakeButtons reports the transitions queued for the next frame
type fakeButtons struct {
	pressed  map[string]bool
	released map[string]bool
}

func (f *fakeButtons) JustPressed(name string) bool  { return f.pressed[name] }
func (f *fakeButtons) JustReleased(name string) bool { return f.released[name] }

func newInputFixture(t *testing.T) (*InputSystem, *fakeButtons, *engine.World) {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.World.Quota = 0
	cfg.Seed = "input"
	world, err := engine.NewWorldFromConfig(cfg)
	require.NoError(t, err)

	router := control.NewRouter(world, control.DefaultBindings("Player 1", "Player 2"), 200, 360)
	is := NewInputSystem(context.Background(), router, logging.Discard())
	buttons := &fakeButtons{pressed: map[string]bool{}, released: map[string]bool{}}
	is.buttons = buttons
	return is, buttons, world
}

func TestInputSystem_PressAndRelease(t *testing.T) {
	is, buttons, world := newInputFixture(t)
	p1, ok := world.PlayerByName("Player 1")
	require.True(t, ok)
	p2, ok := world.PlayerByName("Player 2")
	require.True(t, ok)

	buttons.pressed["Up"] = true
	buttons.pressed["A"] = true
	is.Update(0.016)

	assert.Equal(t, 200.0, p1.Thrust)
	assert.Equal(t, 360.0, p2.RotationRate)

	buttons.pressed = map[string]bool{}
	buttons.released["Up"] = true
	is.Update(0.016)

	assert.Equal(t, 0.0, p1.Thrust)
	assert.Equal(t, 360.0, p2.RotationRate, "held keys stay held")
}

func TestInputSystem_NoTransitionsNoChange(t *testing.T) {
	is, _, world := newInputFixture(t)
	p1, _ := world.PlayerByName("Player 1")

	is.Update(0.016)

	assert.Zero(t, p1.Thrust)
	assert.Zero(t, p1.RotationRate)
}

func TestKeyCodes_CoverDefaultBindings(t *testing.T) {
	for _, key := range control.DefaultBindings("a", "b").Keys() {
		_, ok := keyCodes[key]
		assert.True(t, ok, "no engo key for %q", key)
	}
}
