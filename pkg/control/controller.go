// pkg/control/controller.go
package control

import (
	"fmt"

	"github.com/opd-ai/go-shmup/pkg/engine"
	"github.com/opd-ai/go-shmup/pkg/entity"
)

// World is the part of the simulation a controller drives
type World interface {
	entity.Sink
	Ship(id entity.ID) (*entity.Ship, bool)
}

// Controller turns press and release of actions into calls on one ship.
// Presses of an action that is already held are ignored, so key repeat
// cannot stack thrust or rotation.
type Controller struct {
	ShipID      entity.ID
	ThrustPower float64
	TurnRate    float64

	world World
	held  map[Action]bool
}

// NewController creates a controller for the ship with id
func NewController(world World, id entity.ID, thrustPower, turnRate float64) *Controller {
	return &Controller{
		ShipID:      id,
		ThrustPower: thrustPower,
		TurnRate:    turnRate,
		world:       world,
		held:        make(map[Action]bool),
	}
}

func (c *Controller) ship() (*entity.Ship, error) {
	s, ok := c.world.Ship(c.ShipID)
	if !ok {
		return nil, fmt.Errorf("%w: %d", engine.ErrUnknownShip, c.ShipID)
	}
	return s, nil
}

// Held reports whether a is currently pressed
func (c *Controller) Held(a Action) bool {
	return c.held[a]
}

// Press starts action a
func (c *Controller) Press(a Action) error {
	s, err := c.ship()
	if err != nil {
		return err
	}
	if c.held[a] {
		return nil
	}
	c.held[a] = true

	switch a.Kind {
	case ActionThrust:
		s.SetThrust(c.ThrustPower)
	case ActionRotate:
		s.Turn(float64(a.Direction) * c.TurnRate)
	case ActionFireWeapon:
		s.Fire(a.Weapon, c.world)
	case ActionSwitchWeapon:
		s.SwitchWeapon()
		if c.held[FireWeapon(-1)] {
			s.Fire(-1, c.world)
		}
	}
	return nil
}

// Release ends action a. Releasing an action that is not held does nothing.
func (c *Controller) Release(a Action) error {
	s, err := c.ship()
	if err != nil {
		return err
	}
	if !c.held[a] {
		return nil
	}
	delete(c.held, a)

	switch a.Kind {
	case ActionThrust:
		s.SetThrust(0)
	case ActionRotate:
		s.Turn(-float64(a.Direction) * c.TurnRate)
	case ActionFireWeapon:
		s.Release(a.Weapon)
	}
	return nil
}

// ReleaseAll lets go of every held action
func (c *Controller) ReleaseAll() error {
	for a := range c.held {
		if err := c.Release(a); err != nil {
			return err
		}
	}
	return nil
}
