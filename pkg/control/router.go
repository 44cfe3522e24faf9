// pkg/control/router.go
package control

import (
	"errors"

	"github.com/opd-ai/go-shmup/pkg/engine"
)

// Router sends key presses and releases to the controller of the player
// the key is bound to. Frontends feed it key names; it knows nothing about
// the keyboard library in use.
type Router struct {
	bindings    Bindings
	controllers map[string]*Controller
}

// NewRouter creates a controller for every player in world, keyed by name
func NewRouter(world *engine.World, bindings Bindings, thrustPower, turnRate float64) *Router {
	r := &Router{
		bindings:    bindings,
		controllers: make(map[string]*Controller, len(world.Players)),
	}
	for _, p := range world.Players {
		r.controllers[p.Name] = NewController(world, p.ID, thrustPower, turnRate)
	}
	return r
}

// Controller returns the controller of the named player
func (r *Router) Controller(player string) (*Controller, bool) {
	c, ok := r.controllers[player]
	return c, ok
}

// Bindings returns the key map the router dispatches on
func (r *Router) Bindings() Bindings {
	return r.bindings
}

// Key handles a press or release of key. Unbound keys and keys of players
// without a controller are ignored.
func (r *Router) Key(key string, pressed bool) error {
	b, ok := r.bindings[key]
	if !ok {
		return nil
	}
	c, ok := r.controllers[b.Player]
	if !ok {
		return nil
	}
	if pressed {
		return c.Press(b.Action)
	}
	return c.Release(b.Action)
}

// ReleaseAll lets go of every held action of every player. Players whose
// ship is gone are skipped.
func (r *Router) ReleaseAll() error {
	var errs []error
	for _, c := range r.controllers {
		if err := c.ReleaseAll(); err != nil && !errors.Is(err, engine.ErrUnknownShip) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
