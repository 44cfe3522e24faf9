// pkg/physics/motion.go
package physics

// MovementState tracks the point-mass kinematics of a body.
// Orientation and RotationRate are in degrees and degrees per second.
type MovementState struct {
	Position     Vector2D
	Velocity     Vector2D
	Orientation  float64
	RotationRate float64
	MaxVelocity  float64
	// Thrust is a scalar acceleration along the current heading
	Thrust float64
	// Friction is the per-second decay multiplier applied while the body
	// has no acceleration of its own; 1 disables decay.
	Friction float64
}

// FrictionFactor returns the velocity multiplier for one step of length
// deltaTime, clamped to [0, 1] so it never reverses or amplifies velocity.
func FrictionFactor(friction, deltaTime float64) float64 {
	f := friction + (1-friction)*deltaTime
	switch {
	case f < 0:
		return 0
	case f > 1:
		return 1
	}
	return f
}

// UpdateMovement advances state by deltaTime seconds.
//
// accel is a fixed world-frame acceleration of the body's own, added to the
// heading-aligned Thrust after rotation. external is any additional
// acceleration such as gravity. Friction only applies while the body's own
// acceleration is zero and deltaTime is positive. It reports whether the
// orientation changed.
func UpdateMovement(state *MovementState, deltaTime float64, accel, external Vector2D) bool {
	// Apply rotation
	turned := false
	if state.RotationRate != 0 && deltaTime != 0 {
		state.Orientation += state.RotationRate * deltaTime
		turned = true
	}

	// Calculate thrust vector
	thrust := accel
	if state.Thrust != 0 {
		thrust = thrust.Add(Heading(state.Orientation).Scale(state.Thrust))
	}

	// Update velocity
	state.Velocity = state.Velocity.Add(thrust.Add(external).Scale(deltaTime))

	// Limit speed
	if state.MaxVelocity >= 0 && state.Velocity.LengthSquared() > state.MaxVelocity*state.MaxVelocity {
		state.Velocity = state.Velocity.SafeScaledTo(state.MaxVelocity)
	}

	// A zero-length step leaves the body untouched.
	if thrust.IsZero() && state.Friction != 1 && deltaTime > 0 {
		state.Velocity = state.Velocity.Scale(FrictionFactor(state.Friction, deltaTime))
	}

	// Update position
	state.Position = state.Position.Add(state.Velocity.Scale(deltaTime))
	return turned
}
