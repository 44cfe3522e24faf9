// pkg/entity/weapon.go
package entity

import (
	"errors"
	"fmt"
	"sort"

	"github.com/opd-ai/go-shmup/pkg/physics"
)

// ErrUnknownWeapon is returned when a weapon name is not in the catalogue
var ErrUnknownWeapon = errors.New("unknown weapon")

// reloadTolerance absorbs float drift when summing frame deltas so that
// holding a trigger for exactly k*rate seconds yields k shots.
const reloadTolerance = 1e-9

// Mount is a snapshot of the firing ship taken when a shot is due
type Mount struct {
	OwnerID     ID
	Team        Team
	Position    physics.Vector2D
	Orientation float64
}

// Sink receives the projectiles a weapon produces
type Sink interface {
	SpawnProjectile(pt *ProjectileType, m Mount, heading float64)
}

// Weapon interface defines the methods all weapons must implement
type Weapon interface {
	Name() string
	Fire(m Mount, sink Sink)
	Release()
	Update(deltaTime float64, m Mount, sink Sink)
	Firing() bool
}

// SingleShot spawns one projectile per Fire call and has no trigger latch
type SingleShot struct {
	name       string
	Projectile *ProjectileType
}

// NewSingleShot creates a non-repeating weapon. A nil projectile type makes
// every Fire a no-op.
func NewSingleShot(name string, pt *ProjectileType) *SingleShot {
	return &SingleShot{name: name, Projectile: pt}
}

func (w *SingleShot) Name() string { return w.name }

// Fire spawns a projectile immediately
func (w *SingleShot) Fire(m Mount, sink Sink) {
	if w.Projectile == nil {
		return
	}
	sink.SpawnProjectile(w.Projectile, m, m.Orientation)
}

func (w *SingleShot) Release() {}

func (w *SingleShot) Update(float64, Mount, Sink) {}

// Firing is always false; a single shot has nothing to hold
func (w *SingleShot) Firing() bool { return false }

// Repeater fires every Rate seconds while its trigger is held
type Repeater struct {
	name       string
	Projectile *ProjectileType
	Rate       float64

	firing bool
	reload float64
}

// NewRepeater creates a repeating weapon. A rate of zero fires every update.
func NewRepeater(name string, pt *ProjectileType, rate float64) *Repeater {
	return &Repeater{name: name, Projectile: pt, Rate: rate}
}

func (w *Repeater) Name() string { return w.name }

// Fire latches the trigger; the first shot comes once a full reload has
// elapsed while firing.
func (w *Repeater) Fire(Mount, Sink) {
	w.firing = true
}

// Release drops the trigger
func (w *Repeater) Release() {
	w.firing = false
}

// Firing reports whether the trigger is latched
func (w *Repeater) Firing() bool {
	return w.firing
}

// Reload returns seconds accumulated towards the next shot
func (w *Repeater) Reload() float64 {
	return w.reload
}

// advance runs the reload clock and reports whether a shot is due
func (w *Repeater) advance(deltaTime float64) bool {
	if !w.firing || w.Projectile == nil {
		return false
	}
	w.reload += deltaTime
	if w.reload+reloadTolerance < w.Rate {
		return false
	}
	w.reload = 0
	return true
}

// Update spawns a projectile when the reload clock runs out
func (w *Repeater) Update(deltaTime float64, m Mount, sink Sink) {
	if w.advance(deltaTime) {
		sink.SpawnProjectile(w.Projectile, m, m.Orientation)
	}
}

// FanWeapon is a repeater that fires Count projectiles spread evenly over Arc degrees
type FanWeapon struct {
	Repeater
	Arc   float64
	Count int
}

// NewFanWeapon creates a fan weapon
func NewFanWeapon(name string, pt *ProjectileType, rate, arc float64, count int) *FanWeapon {
	return &FanWeapon{
		Repeater: Repeater{name: name, Projectile: pt, Rate: rate},
		Arc:      arc,
		Count:    count,
	}
}

// FanOffset returns the heading offset of projectile i of count across arc.
// A single projectile flies straight.
func FanOffset(i, count int, arc float64) float64 {
	if count <= 1 {
		return 0
	}
	return float64(i)*arc/float64(count-1) - arc/2
}

// Update spawns a full fan when the reload clock runs out
func (w *FanWeapon) Update(deltaTime float64, m Mount, sink Sink) {
	if !w.advance(deltaTime) {
		return
	}
	for i := 0; i < w.Count; i++ {
		sink.SpawnProjectile(w.Projectile, m, m.Orientation+FanOffset(i, w.Count, w.Arc))
	}
}

var weaponCatalogue = map[string]func() Weapon{
	"LaserRepeater":  func() Weapon { return NewRepeater("LaserRepeater", LaserBolt, 0.1) },
	"PlasmaRepeater": func() Weapon { return NewRepeater("PlasmaRepeater", PlasmaBall, 1.0) },
	"LaserFan":       func() Weapon { return NewFanWeapon("LaserFan", LaserBolt, 0.1, 60, 5) },
	"PlasmaCannon":   func() Weapon { return NewSingleShot("PlasmaCannon", PlasmaBall) },
	"Melee":          func() Weapon { return NewSingleShot("Melee", nil) },
}

// NewWeapon builds a fresh weapon from the catalogue
func NewWeapon(name string) (Weapon, error) {
	build, ok := weaponCatalogue[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownWeapon, name)
	}
	return build(), nil
}

// NewLoadout builds a fresh weapon for every name, in order
func NewLoadout(names []string) ([]Weapon, error) {
	weapons := make([]Weapon, 0, len(names))
	for _, name := range names {
		w, err := NewWeapon(name)
		if err != nil {
			return nil, err
		}
		weapons = append(weapons, w)
	}
	return weapons, nil
}

// WeaponNames lists the catalogue in sorted order
func WeaponNames() []string {
	names := make([]string, 0, len(weaponCatalogue))
	for name := range weaponCatalogue {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
