// pkg/physics/gravity.go
package physics

// GravitationalConstant is the default G used by the playfield
const GravitationalConstant = 0.0066

// PointMass is a body taking part in n-body attraction
type PointMass struct {
	Position Vector2D
	Mass     float64
}

// Attraction returns the inverse-square force b exerts on a, pointing from
// a towards b. Coincident bodies exert no force on each other.
func Attraction(a, b PointMass, g float64) Vector2D {
	offset := b.Position.Sub(a.Position)
	distSq := offset.LengthSquared()
	if distSq == 0 {
		return Vector2D{}
	}
	return offset.SafeNormalized().Scale(g * a.Mass * b.Mass / distSq)
}

// GravityAccelerations returns the net acceleration on every body from all
// the others. Bodies with zero mass neither attract nor are attracted.
func GravityAccelerations(bodies []PointMass, g float64) []Vector2D {
	forces := make([]Vector2D, len(bodies))
	for i := range bodies {
		if bodies[i].Mass <= 0 {
			continue
		}
		for j := i + 1; j < len(bodies); j++ {
			if bodies[j].Mass <= 0 {
				continue
			}
			f := Attraction(bodies[i], bodies[j], g)
			forces[i] = forces[i].Add(f)
			forces[j] = forces[j].Sub(f)
		}
	}
	for i := range forces {
		if bodies[i].Mass > 0 {
			forces[i] = forces[i].Div(bodies[i].Mass)
		}
	}
	return forces
}
