// pkg/physics/vector_test.go
package physics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

const epsilon = 1e-9

func assertVector(t *testing.T, expected, actual Vector2D) {
	t.Helper()
	assert.InDelta(t, expected.X, actual.X, epsilon, "X of %v", actual)
	assert.InDelta(t, expected.Y, actual.Y, epsilon, "Y of %v", actual)
}

func TestVector2D_Arithmetic(t *testing.T) {
	tests := []struct {
		name     string
		result   Vector2D
		expected Vector2D
	}{
		{"add", Vector2D{X: 3, Y: 4}.Add(Vector2D{X: 1, Y: 2}), Vector2D{X: 4, Y: 6}},
		{"add_mixed_signs", Vector2D{X: 5, Y: -3}.Add(Vector2D{X: -2, Y: 7}), Vector2D{X: 3, Y: 4}},
		{"sub", Vector2D{X: 5, Y: 7}.Sub(Vector2D{X: 2, Y: 3}), Vector2D{X: 3, Y: 4}},
		{"sub_self", Vector2D{X: 4, Y: 6}.Sub(Vector2D{X: 4, Y: 6}), Zero},
		{"scale", Vector2D{X: 3, Y: -4}.Scale(2), Vector2D{X: 6, Y: -8}},
		{"div", Vector2D{X: 3, Y: -4}.Div(2), Vector2D{X: 1.5, Y: -2}},
		{"neg", Vector2D{X: 3, Y: -4}.Neg(), Vector2D{X: -3, Y: 4}},
		{"perpendicular", Vector2D{X: 1, Y: 2}.Perpendicular(), Vector2D{X: -2, Y: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.result)
		})
	}
}

func TestVector2D_Products(t *testing.T) {
	a := Vector2D{X: 3, Y: 4}
	b := Vector2D{X: -2, Y: 5}

	assert.Equal(t, 14.0, a.Dot(b))
	assert.Equal(t, 23.0, a.Cross(b))
	assert.Equal(t, -23.0, b.Cross(a))
	assert.Equal(t, 5.0, a.Length())
	assert.Equal(t, 25.0, a.LengthSquared())
	assert.Equal(t, 5.0, Zero.Distance(a))
}

func TestVector2D_Normalized(t *testing.T) {
	tests := []struct {
		name string
		v    Vector2D
	}{
		{"axis", Vector2D{X: 10, Y: 0}},
		{"diagonal", Vector2D{X: -3, Y: 4}},
		{"tiny", Vector2D{X: 1e-6, Y: 1e-6}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := tt.v.SafeNormalized()
			assert.InDelta(t, 1.0, n.Length(), epsilon)
			assert.InDelta(t, 0.0, n.Cross(tt.v), epsilon, "must stay parallel")
			assert.Greater(t, n.Dot(tt.v), 0.0, "must keep direction")
			assertVector(t, tt.v.Normalized(), n)
		})
	}
}

func TestVector2D_SafeVariantsOnZero(t *testing.T) {
	assert.Equal(t, Zero, Zero.SafeNormalized())
	assert.Equal(t, Zero, Zero.SafeScaledTo(42))

	n := Zero.Normalized()
	assert.True(t, math.IsNaN(n.X), "unchecked normalize of zero is undefined")
}

func TestVector2D_ScaledTo(t *testing.T) {
	v := Vector2D{X: 3, Y: 4}.SafeScaledTo(10)
	assertVector(t, Vector2D{X: 6, Y: 8}, v)
}

func TestVector2D_Project(t *testing.T) {
	tests := []struct {
		name     string
		v        Vector2D
		onto     Vector2D
		expected Vector2D
	}{
		{"onto_x_axis", Vector2D{X: 3, Y: 4}, Vector2D{X: 10, Y: 0}, Vector2D{X: 3, Y: 0}},
		{"onto_diagonal", Vector2D{X: 2, Y: 0}, Vector2D{X: 1, Y: 1}, Vector2D{X: 1, Y: 1}},
		{"perpendicular", Vector2D{X: 0, Y: 5}, Vector2D{X: 1, Y: 0}, Zero},
		{"onto_zero", Vector2D{X: 1, Y: 2}, Zero, Zero},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertVector(t, tt.expected, tt.v.Project(tt.onto))
		})
	}
}

func TestVector2D_Rotated(t *testing.T) {
	tests := []struct {
		name     string
		v        Vector2D
		angle    float64
		expected Vector2D
	}{
		{"quarter_turn", Vector2D{X: 1, Y: 0}, 90, Vector2D{X: 0, Y: 1}},
		{"half_turn", Vector2D{X: 1, Y: 0}, 180, Vector2D{X: -1, Y: 0}},
		{"negative", Vector2D{X: 0, Y: 1}, -90, Vector2D{X: 1, Y: 0}},
		{"full_turn", Vector2D{X: 2, Y: 3}, 360, Vector2D{X: 2, Y: 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertVector(t, tt.expected, tt.v.Rotated(tt.angle))
		})
	}
}

func TestVector2D_RotatedComposes(t *testing.T) {
	vectors := []Vector2D{{X: 1, Y: 0}, {X: -3, Y: 7}, {X: 0.25, Y: -12}}
	angles := []float64{0, 15, 90, 137.5, -200, 720.3}

	for _, v := range vectors {
		for _, a := range angles {
			for _, b := range angles {
				assertVector(t, v.Rotated(a+b), v.Rotated(a).Rotated(b))
			}
		}
	}
}

func TestVector2D_Angle(t *testing.T) {
	tests := []struct {
		name     string
		v        Vector2D
		expected float64
	}{
		{"positive_x", Vector2D{X: 1, Y: 0}, 0},
		{"positive_y", Vector2D{X: 0, Y: 1}, 90},
		{"negative_y", Vector2D{X: 0, Y: -1}, -90},
		{"negative_x", Vector2D{X: -1, Y: 0}, 180},
		{"negative_x_negative_zero", Vector2D{X: -1, Y: math.Copysign(0, -1)}, 180},
		{"diagonal", Vector2D{X: 1, Y: 1}, 45},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, tt.v.Angle(), epsilon)
		})
	}
}

func TestVector2D_AngleTo(t *testing.T) {
	tests := []struct {
		name     string
		from     Vector2D
		to       Vector2D
		unsigned float64
		signed   float64
	}{
		{"same", Vector2D{X: 1, Y: 0}, Vector2D{X: 2, Y: 0}, 0, 0},
		{"quarter_ccw", Vector2D{X: 1, Y: 0}, Vector2D{X: 0, Y: 1}, 90, 90},
		{"quarter_cw", Vector2D{X: 1, Y: 0}, Vector2D{X: 0, Y: -1}, 90, -90},
		{"opposite", Vector2D{X: 1, Y: 0}, Vector2D{X: -1, Y: 0}, 180, 180},
		{"opposite_reversed", Vector2D{X: -1, Y: 0}, Vector2D{X: 1, Y: 0}, 180, 180},
		{"wraps_across_180", FromAngle(170, 1), FromAngle(-170, 1), 20, 20},
		{"wraps_back_across_180", FromAngle(-170, 1), FromAngle(170, 1), 20, -20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.unsigned, tt.from.AngleTo(tt.to), 1e-6)
			assert.InDelta(t, tt.signed, tt.from.SignedAngleTo(tt.to), 1e-6)
		})
	}
}

func TestFromAngle(t *testing.T) {
	assertVector(t, Vector2D{X: 0, Y: 2}, FromAngle(90, 2))
	assertVector(t, Vector2D{X: -3, Y: 0}, FromAngle(180, 3))
}

func TestHeading(t *testing.T) {
	tests := []struct {
		name        string
		orientation float64
		expected    Vector2D
	}{
		{"down", 0, Vector2D{X: 0, Y: 1}},
		{"up", 180, Vector2D{X: 0, Y: -1}},
		{"right", 90, Vector2D{X: 1, Y: 0}},
		{"left", -90, Vector2D{X: -1, Y: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertVector(t, tt.expected, Heading(tt.orientation))
		})
	}
}
