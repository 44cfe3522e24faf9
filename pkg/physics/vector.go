// pkg/physics/vector.go
package physics

import "math"

// Vector2D represents a 2D vector with x and y components.
// Angles accepted and returned by its methods are in degrees.
type Vector2D struct {
	X float64
	Y float64
}

// Zero is the zero vector
var Zero = Vector2D{}

// Add returns the sum of two vectors
func (v Vector2D) Add(other Vector2D) Vector2D {
	return Vector2D{
		X: v.X + other.X,
		Y: v.Y + other.Y,
	}
}

// Sub returns the difference between two vectors
func (v Vector2D) Sub(other Vector2D) Vector2D {
	return Vector2D{
		X: v.X - other.X,
		Y: v.Y - other.Y,
	}
}

// Scale multiplies the vector by a scalar value
func (v Vector2D) Scale(factor float64) Vector2D {
	return Vector2D{
		X: v.X * factor,
		Y: v.Y * factor,
	}
}

// Div divides the vector by a scalar value
func (v Vector2D) Div(divisor float64) Vector2D {
	return Vector2D{
		X: v.X / divisor,
		Y: v.Y / divisor,
	}
}

// Neg returns the vector pointing the opposite way
func (v Vector2D) Neg() Vector2D {
	return Vector2D{X: -v.X, Y: -v.Y}
}

// IsZero reports whether both components are exactly zero
func (v Vector2D) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// Length returns the magnitude of the vector
func (v Vector2D) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// LengthSquared returns magnitude squared (optimization for comparisons)
func (v Vector2D) LengthSquared() float64 {
	return v.X*v.X + v.Y*v.Y
}

// Normalized returns a unit vector in the same direction.
// The result is undefined (NaN components) for the zero vector; use
// SafeNormalized when the input may be zero.
func (v Vector2D) Normalized() Vector2D {
	return v.Div(v.Length())
}

// SafeNormalized is Normalized, except the zero vector is returned unchanged
func (v Vector2D) SafeNormalized() Vector2D {
	if v.IsZero() {
		return v
	}
	return v.Normalized()
}

// ScaledTo returns the vector rescaled to the given length.
// Like Normalized it is undefined for the zero vector.
func (v Vector2D) ScaledTo(length float64) Vector2D {
	return v.Scale(length / v.Length())
}

// SafeScaledTo is ScaledTo, except the zero vector is returned unchanged
func (v Vector2D) SafeScaledTo(length float64) Vector2D {
	if v.IsZero() {
		return v
	}
	return v.ScaledTo(length)
}

// Perpendicular returns the vector rotated a quarter turn counter-clockwise
func (v Vector2D) Perpendicular() Vector2D {
	return Vector2D{X: -v.Y, Y: v.X}
}

// Dot returns the dot product of two vectors
func (v Vector2D) Dot(other Vector2D) float64 {
	return v.X*other.X + v.Y*other.Y
}

// Cross returns the z component of the 3D cross product
func (v Vector2D) Cross(other Vector2D) float64 {
	return v.X*other.Y - v.Y*other.X
}

// Project returns the projection of v onto other.
// Projecting onto the zero vector yields the zero vector.
func (v Vector2D) Project(onto Vector2D) Vector2D {
	denom := onto.Dot(onto)
	if denom == 0 {
		return Vector2D{}
	}
	return onto.Scale(onto.Dot(v) / denom)
}

// Distance returns the distance between two points
func (v Vector2D) Distance(other Vector2D) float64 {
	return other.Sub(v).Length()
}

// Rotated rotates the vector by angle degrees using the standard rotation matrix
func (v Vector2D) Rotated(angle float64) Vector2D {
	sin, cos := math.Sincos(angle * math.Pi / 180)
	return Vector2D{
		X: v.X*cos - v.Y*sin,
		Y: v.X*sin + v.Y*cos,
	}
}

// Angle returns the angle to the positive x axis in degrees, in (-180, 180]
func (v Vector2D) Angle() float64 {
	a := math.Atan2(v.Y, v.X) * 180 / math.Pi
	if a == -180 {
		return 180
	}
	return a
}

// AngleTo returns the unsigned angle to other in [0, 180]
func (v Vector2D) AngleTo(other Vector2D) float64 {
	a := math.Abs(other.Angle() - v.Angle())
	return math.Min(a, 360-a)
}

// SignedAngleTo returns the signed angle to other in (-180, 180], taking the
// shortest way round.
func (v Vector2D) SignedAngleTo(other Vector2D) float64 {
	a := other.Angle() - v.Angle()
	best := a + 360
	for _, c := range [...]float64{a, a - 360} {
		if math.Abs(c) < math.Abs(best) {
			best = c
		}
	}
	return best
}

// FromAngle creates a vector from an angle in degrees and a magnitude
func FromAngle(angle float64, magnitude float64) Vector2D {
	sin, cos := math.Sincos(angle * math.Pi / 180)
	return Vector2D{
		X: magnitude * cos,
		Y: magnitude * sin,
	}
}

// Heading returns the unit vector a body with the given orientation faces.
// Orientation 0 faces down the screen (+Y) and 180 faces up.
func Heading(orientation float64) Vector2D {
	return Vector2D{Y: 1}.Rotated(-orientation)
}
