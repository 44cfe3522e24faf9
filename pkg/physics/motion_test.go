// pkg/physics/motion_test.go
package physics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newState() *MovementState {
	return &MovementState{
		MaxVelocity: 500,
		Friction:    0.5,
	}
}

func TestUpdateMovement_Rotation(t *testing.T) {
	tests := []struct {
		name        string
		rate        float64
		deltaTime   float64
		expected    float64
		expectTurns bool
	}{
		{"spin", 60, 0.5, 30, true},
		{"reverse", -360, 0.25, -90, true},
		{"no_rate", 0, 1, 0, false},
		{"zero_delta", 60, 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := newState()
			state.RotationRate = tt.rate

			turned := UpdateMovement(state, tt.deltaTime, Zero, Zero)

			assert.Equal(t, tt.expectTurns, turned)
			assert.InDelta(t, tt.expected, state.Orientation, epsilon)
		})
	}
}

func TestUpdateMovement_ThrustAndMovement(t *testing.T) {
	state := newState()
	thrust := Heading(180).Scale(200)

	UpdateMovement(state, 0.5, thrust, Zero)

	assertVector(t, Vector2D{X: 0, Y: -100}, state.Velocity)
	assertVector(t, Vector2D{X: 0, Y: -50}, state.Position)
}

func TestUpdateMovement_SpeedLimit(t *testing.T) {
	deltas := []float64{0, 1e-4, 1.0 / 60, 0.5, 10, 1e6}
	thrusts := []Vector2D{Zero, {X: 1e9, Y: 0}, {X: -3, Y: 4}, {X: 1e4, Y: -1e4}}

	for _, d := range deltas {
		for _, th := range thrusts {
			state := newState()
			state.Velocity = Vector2D{X: 800, Y: 0}
			UpdateMovement(state, d, th, Vector2D{X: 0, Y: 1e5})
			if d > 0 {
				assert.LessOrEqual(t, state.Velocity.Length(), state.MaxVelocity+1e-9, "delta %v thrust %v", d, th)
			}
		}
	}
}

func TestUpdateMovement_Friction(t *testing.T) {
	state := newState()
	state.Velocity = Vector2D{X: 100, Y: 0}

	UpdateMovement(state, 0.1, Zero, Zero)

	// 0.5 + 0.5*0.1
	assert.InDelta(t, 55.0, state.Velocity.X, epsilon)
	assert.InDelta(t, 5.5, state.Position.X, epsilon)
}

func TestUpdateMovement_FrictionOnlyWithoutThrust(t *testing.T) {
	state := newState()
	state.Velocity = Vector2D{X: 100, Y: 0}

	UpdateMovement(state, 0.1, Vector2D{X: 10, Y: 0}, Zero)

	assert.InDelta(t, 101.0, state.Velocity.X, epsilon)
}

func TestUpdateMovement_FrictionDisabled(t *testing.T) {
	state := newState()
	state.Friction = 1
	state.Velocity = Vector2D{X: 100, Y: 0}

	UpdateMovement(state, 0.1, Zero, Zero)

	assert.Equal(t, 100.0, state.Velocity.X)
}

func TestUpdateMovement_ZeroDeltaTime(t *testing.T) {
	state := newState()
	state.Position = Vector2D{X: 3, Y: 4}
	state.Velocity = Vector2D{X: 10, Y: -20}
	before := *state

	UpdateMovement(state, 0, Vector2D{X: 1e3, Y: 0}, Vector2D{X: 0, Y: 1e3})

	assert.Equal(t, before, *state)
}

func TestFrictionFactor(t *testing.T) {
	tests := []struct {
		name      string
		friction  float64
		deltaTime float64
		expected  float64
	}{
		{"frame", 0.5, 1.0 / 60, 0.5 + 0.5/60},
		{"whole_second", 0.5, 1, 1},
		{"clamped_high", 0.5, 5, 1},
		{"clamped_low", -2, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := FrictionFactor(tt.friction, tt.deltaTime)
			assert.InDelta(t, tt.expected, f, epsilon)
			assert.False(t, math.Signbit(f), "must never reverse velocity")
		})
	}
}

func TestUpdateMovement_ScalarThrustUsesTurnedHeading(t *testing.T) {
	state := newState()
	state.Orientation = 90
	state.RotationRate = 90
	state.Thrust = 200

	UpdateMovement(state, 1, Zero, Zero)

	// Rotation is applied before the thrust is aligned, so the ship now faces up.
	assert.InDelta(t, 180.0, state.Orientation, epsilon)
	assertVector(t, Vector2D{X: 0, Y: -200}, state.Velocity)
}
