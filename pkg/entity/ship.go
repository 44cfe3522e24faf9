// pkg/entity/ship.go
package entity

import (
	"github.com/opd-ai/go-shmup/pkg/physics"
)

// Role defines whether a ship is player controlled or an enemy drone
type Role int

const (
	RolePlayer Role = iota
	RoleEnemy
)

func (r Role) String() string {
	switch r {
	case RolePlayer:
		return "Player"
	case RoleEnemy:
		return "Enemy"
	default:
		return "Unknown"
	}
}

// Ship defaults
const (
	DefaultHealth     = 100
	PlayerOrientation = 180
	EnemyOrientation  = 0
	EnemyRotation     = 60
	PlayerFrameDelay  = 0.1
)

// Sprite sheet regions for ships
var (
	PlayerFrames = []Region{{X: 0, Y: 0, W: 16, H: 32}, {X: 16, Y: 0, W: 16, H: 32}}
	EnemyFrame   = Region{X: 48, Y: 16, W: 16, H: 16}
)

// Ship is a thrusting, turning, firing body with health
type Ship struct {
	Body
	Role     Role
	Name     string
	Health   int
	Weapons  []Weapon
	Selected int
	Kills    int
}

// NewPlayer creates a player fighter facing up the screen. The weapons
// slice is owned by the ship from then on.
func NewPlayer(id ID, name string, team Team, position physics.Vector2D, weapons []Weapon) *Ship {
	s := &Ship{
		Body:    newBody(id, KindPlayer, position, NewAnimation(PlayerFrames, nil, PlayerFrameDelay, true)),
		Role:    RolePlayer,
		Name:    name,
		Health:  DefaultHealth,
		Weapons: weapons,
	}
	s.Team = team
	s.Orientation = PlayerOrientation
	s.refreshExtent()
	return s
}

// NewEnemy creates a slowly spinning enemy drone
func NewEnemy(id ID, position physics.Vector2D, weapons []Weapon) *Ship {
	s := &Ship{
		Body:    newBody(id, KindEnemy, position, Still(EnemyFrame)),
		Role:    RoleEnemy,
		Name:    "drone",
		Health:  DefaultHealth,
		Weapons: weapons,
	}
	s.Team = TeamEnemy
	s.Orientation = EnemyOrientation
	s.RotationRate = EnemyRotation
	s.refreshExtent()
	return s
}

// Mount returns the ship as seen by its weapons
func (s *Ship) Mount() Mount {
	return Mount{
		OwnerID:     s.ID,
		Team:        s.Team,
		Position:    s.Position,
		Orientation: s.Orientation,
	}
}

// Update integrates the ship and then runs its weapons from the new position
func (s *Ship) Update(deltaTime float64, sink Sink) {
	s.Integrate(deltaTime)
	m := s.Mount()
	for _, w := range s.Weapons {
		w.Update(deltaTime, m, sink)
	}
}

func (s *Ship) weapon(index int) Weapon {
	if index < 0 {
		index = s.Selected
	}
	if index < 0 || index >= len(s.Weapons) {
		return nil
	}
	return s.Weapons[index]
}

// Fire pulls the trigger of weapon index; a negative index means the
// selected weapon. It reports whether the weapon exists.
func (s *Ship) Fire(index int, sink Sink) bool {
	w := s.weapon(index)
	if w == nil {
		return false
	}
	w.Fire(s.Mount(), sink)
	return true
}

// Release lets go of the trigger of weapon index
func (s *Ship) Release(index int) bool {
	w := s.weapon(index)
	if w == nil {
		return false
	}
	w.Release()
	return true
}

// SwitchWeapon selects the next weapon, releasing the one left behind
func (s *Ship) SwitchWeapon() {
	if len(s.Weapons) == 0 {
		return
	}
	s.Weapons[s.Selected].Release()
	s.Selected = (s.Selected + 1) % len(s.Weapons)
}

// SetThrust sets the heading-aligned acceleration
func (s *Ship) SetThrust(power float64) {
	s.Thrust = power
}

// Turn adds rate degrees per second to the rotation rate
func (s *Ship) Turn(rate float64) {
	s.RotationRate += rate
}

// Hit applies damage and reports whether this hit killed the ship. A
// wreck still takes damage until it is reaped but is only killed once.
func (s *Ship) Hit(damage int) bool {
	s.Health -= damage
	if s.Alive && s.Health <= 0 {
		s.Alive = false
		return true
	}
	return false
}
