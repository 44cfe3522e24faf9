// pkg/entity/mass.go
package entity

import (
	"github.com/opd-ai/go-shmup/pkg/physics"
)

// MassClass defines the type of massive body
type MassClass int

const (
	Planet MassClass = iota
	GasGiant
	Star
	BlackHole
)

func (c MassClass) String() string {
	switch c {
	case Planet:
		return "Planet"
	case GasGiant:
		return "GasGiant"
	case Star:
		return "Star"
	case BlackHole:
		return "BlackHole"
	default:
		return "Unknown"
	}
}

// MassClassFromString converts a string to a MassClass, reporting whether it was known
func MassClassFromString(s string) (MassClass, bool) {
	switch s {
	case "Planet":
		return Planet, true
	case "GasGiant":
		return GasGiant, true
	case "Star":
		return Star, true
	case "BlackHole":
		return BlackHole, true
	default:
		return Planet, false
	}
}

// MassStats contains the base properties of a mass class
type MassStats struct {
	Mass  float64
	Frame Region
}

// MassClasses lists every class, lightest first
var MassClasses = []MassClass{Planet, GasGiant, Star, BlackHole}

// Stats returns the mass and sprite frame of the class
func (c MassClass) Stats() MassStats {
	return getMassStats(c)
}

func getMassStats(class MassClass) MassStats {
	switch class {
	case GasGiant:
		return MassStats{Mass: 1e4, Frame: Region{X: 32, Y: 48, W: 48, H: 48}}
	case Star:
		return MassStats{Mass: 1e5, Frame: Region{X: 80, Y: 48, W: 40, H: 40}}
	case BlackHole:
		return MassStats{Mass: 1e6, Frame: Region{X: 120, Y: 48, W: 24, H: 24}}
	default:
		return MassStats{Mass: 1e3, Frame: Region{X: 0, Y: 48, W: 32, H: 32}}
	}
}

// MassiveBody is a planet, star or similar gravity source
type MassiveBody struct {
	Body
	Class MassClass
	// Anchored bodies attract others but are not moved by gravity
	Anchored bool
}

// NewMassiveBody creates a massive body of the given class
func NewMassiveBody(id ID, class MassClass, position physics.Vector2D, anchored bool) *MassiveBody {
	stats := getMassStats(class)
	m := &MassiveBody{
		Body:     newBody(id, KindMassive, position, Still(stats.Frame)),
		Class:    class,
		Anchored: anchored,
	}
	m.Mass = stats.Mass
	m.Friction = 1
	return m
}

// Update drifts the body under gravity unless it is anchored
func (m *MassiveBody) Update(deltaTime float64) {
	if m.Anchored {
		m.Anim.Advance(deltaTime)
		return
	}
	m.Integrate(deltaTime)
}
