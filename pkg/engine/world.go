// pkg/engine/world.go
package engine

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync/atomic"
	"time"

	"github.com/opd-ai/go-shmup/pkg/config"
	"github.com/opd-ai/go-shmup/pkg/entity"
	"github.com/opd-ai/go-shmup/pkg/event"
	"github.com/opd-ai/go-shmup/pkg/logging"
	"github.com/opd-ai/go-shmup/pkg/physics"
)

// ErrUnknownShip is returned when a ship ID does not name a live ship
var ErrUnknownShip = errors.New("unknown ship")

// quadCapacity is the number of projectiles a quadtree node holds before it splits
const quadCapacity = 8

// World owns every simulated entity, grouped by role, and advances them in
// fixed order one step at a time. A World is not safe for concurrent use;
// frontends step it and feed it input from a single goroutine.
type World struct {
	Config *config.GameConfig
	Field  physics.Rect

	Players     []*entity.Ship
	Enemies     []*entity.Ship
	Projectiles []*entity.Projectile
	Explosions  []*entity.Explosion
	Massive     []*entity.MassiveBody

	EventBus    *event.Bus
	CurrentTick uint64
	ElapsedTime float64 // simulated seconds

	rng      *rand.Rand
	logger   *logging.Logger
	logCtx   context.Context
	nextID   entity.ID
	spatial  *physics.QuadTree
	overflow []int
	lastStep atomic.Int64 // wall clock of the last Step, unix nanoseconds
}

// Option customises a World at construction
type Option func(*World)

// WithRand sets the random source used for spawn positions and animation
// jitter. A fixed seed makes a sequence of steps reproducible.
func WithRand(r *rand.Rand) Option {
	return func(w *World) { w.rng = r }
}

// WithEventBus publishes world events on bus instead of a private one
func WithEventBus(bus *event.Bus) Option {
	return func(w *World) { w.EventBus = bus }
}

// WithLogger logs through l, tagging entries with the correlation ID in ctx
func WithLogger(ctx context.Context, l *logging.Logger) Option {
	return func(w *World) {
		w.logCtx = ctx
		w.logger = l
	}
}

// NewRand returns a PCG source for seed
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// NewWorld creates an empty world sized by cfg. Players and massive bodies
// are added by the caller; enemies appear on the first Step.
func NewWorld(cfg *config.GameConfig, opts ...Option) *World {
	w := &World{
		Config: cfg,
		Field:  physics.RectFromCorner(0, 0, cfg.World.Width, cfg.World.Height),
		logCtx: context.Background(),
		nextID: 1,
	}
	for _, opt := range opts {
		opt(w)
	}

	if w.rng == nil {
		seed, ok := cfg.SeedValue()
		if !ok {
			seed = rand.Uint64()
		}
		w.rng = NewRand(seed)
	}
	if w.EventBus == nil {
		w.EventBus = event.NewEventBus()
	}
	if w.logger == nil {
		w.logger = logging.Discard()
	}
	if cfg.World.BroadPhase {
		w.spatial = physics.NewQuadTree(w.Field, quadCapacity)
	}
	w.lastStep.Store(time.Now().UnixNano())

	return w
}

// NewWorldFromConfig creates a world and populates it with the configured
// players and massive bodies
func NewWorldFromConfig(cfg *config.GameConfig, opts ...Option) (*World, error) {
	w := NewWorld(cfg, opts...)

	for _, pc := range cfg.Players {
		if _, err := w.AddPlayer(pc); err != nil {
			return nil, err
		}
	}
	for _, mc := range cfg.MassiveBodies {
		if _, err := w.AddMassiveBody(mc); err != nil {
			return nil, err
		}
	}

	return w, nil
}

func (w *World) newID() entity.ID {
	id := w.nextID
	w.nextID++
	return id
}

// fieldPoint converts playfield fractions into coordinates
func (w *World) fieldPoint(fx, fy float64) physics.Vector2D {
	return physics.Vector2D{X: fx * w.Field.Width, Y: fy * w.Field.Height}
}

// AddPlayer creates a player ship from pc with a fresh loadout
func (w *World) AddPlayer(pc config.PlayerConfig) (*entity.Ship, error) {
	weapons, err := entity.NewLoadout(pc.Weapons)
	if err != nil {
		return nil, fmt.Errorf("player %q: %w", pc.Name, err)
	}

	ship := entity.NewPlayer(w.newID(), pc.Name, entity.Team(pc.Team), w.fieldPoint(pc.X, pc.Y), weapons)
	ship.Mass = w.Config.World.ShipMass
	ship.ClampInside(w.Field)
	w.Players = append(w.Players, ship)

	w.logger.Debug(w.logCtx, "player added", "ship_id", ship.ID, "name", ship.Name, "team", ship.Team)
	w.EventBus.Publish(event.NewShipEvent(event.PlayerSpawned, w, uint64(ship.ID), string(ship.Team), ship.Position))

	return ship, nil
}

// AddMassiveBody places a gravity source described by mc
func (w *World) AddMassiveBody(mc config.MassConfig) (*entity.MassiveBody, error) {
	class, ok := entity.MassClassFromString(mc.Class)
	if !ok {
		return nil, fmt.Errorf("%w: unknown massive body class %q", config.ErrInvalidConfig, mc.Class)
	}

	body := entity.NewMassiveBody(w.newID(), class, w.fieldPoint(mc.X, mc.Y), mc.Anchored)
	w.Massive = append(w.Massive, body)

	w.logger.Debug(w.logCtx, "massive body added", "id", body.ID, "class", class.String())
	return body, nil
}

// SpawnEnemy places an enemy drone at position with the configured weapons
// already firing
func (w *World) SpawnEnemy(position physics.Vector2D) *entity.Ship {
	weapons, err := entity.NewLoadout(w.Config.World.EnemyWeapons)
	if err != nil {
		w.logger.Warn(w.logCtx, "enemy spawned unarmed", "error", err.Error())
		weapons = nil
	}

	enemy := entity.NewEnemy(w.newID(), position, weapons)
	enemy.Mass = w.Config.World.ShipMass
	w.Enemies = append(w.Enemies, enemy)

	m := enemy.Mount()
	for _, wpn := range enemy.Weapons {
		wpn.Fire(m, w)
	}

	w.EventBus.Publish(event.NewShipEvent(event.EnemySpawned, w, uint64(enemy.ID), string(enemy.Team), enemy.Position))
	return enemy
}

// SpawnProjectile launches a projectile; it makes the world a weapon sink
func (w *World) SpawnProjectile(pt *entity.ProjectileType, m entity.Mount, heading float64) {
	startFrame := 0
	if pt.RandomStart {
		n := len(pt.Sequence)
		if n == 0 {
			n = len(pt.Frames)
		}
		if n > 0 {
			startFrame = w.rng.IntN(n)
		}
	}

	p := entity.NewProjectile(w.newID(), pt, m, heading, startFrame)
	w.Projectiles = append(w.Projectiles, p)

	if w.EventBus.HasSubscribers(event.ProjectileFired) {
		e := event.NewProjectileEvent(event.ProjectileFired, w, uint64(p.ID), pt.Name, uint64(m.OwnerID))
		e.Damage = p.Damage
		e.Position = p.Position
		w.EventBus.Publish(e)
	}
}

// Ship returns the live player or enemy with id
func (w *World) Ship(id entity.ID) (*entity.Ship, bool) {
	if s, ok := w.Player(id); ok {
		return s, true
	}
	for _, s := range w.Enemies {
		if s.ID == id {
			return s, true
		}
	}
	return nil, false
}

// Player returns the live player with id
func (w *World) Player(id entity.ID) (*entity.Ship, bool) {
	for _, s := range w.Players {
		if s.ID == id {
			return s, true
		}
	}
	return nil, false
}

// PlayerByName returns the first live player called name
func (w *World) PlayerByName(name string) (*entity.Ship, bool) {
	for _, s := range w.Players {
		if s.Name == name {
			return s, true
		}
	}
	return nil, false
}

// Draw blits every live entity back to front: massive bodies, explosions,
// projectiles, enemies, then players
func (w *World) Draw(surface entity.Surface) {
	surface.Clear()
	for _, m := range w.Massive {
		surface.Blit(m.Sprite())
	}
	for _, e := range w.Explosions {
		surface.Blit(e.Sprite())
	}
	for _, p := range w.Projectiles {
		surface.Blit(p.Sprite())
	}
	for _, e := range w.Enemies {
		surface.Blit(e.Sprite())
	}
	for _, p := range w.Players {
		surface.Blit(p.Sprite())
	}
	surface.Present()
}

// Stats is a snapshot of the world's population and clock
type Stats struct {
	Tick        uint64
	Elapsed     float64
	Players     int
	Enemies     int
	Projectiles int
	Explosions  int
	Massive     int
}

// Stats returns the current population counts
func (w *World) Stats() Stats {
	return Stats{
		Tick:        w.CurrentTick,
		Elapsed:     w.ElapsedTime,
		Players:     len(w.Players),
		Enemies:     len(w.Enemies),
		Projectiles: len(w.Projectiles),
		Explosions:  len(w.Explosions),
		Massive:     len(w.Massive),
	}
}

// LastStep returns the wall clock time of the most recent Step. It is safe
// to call from any goroutine.
func (w *World) LastStep() time.Time {
	return time.Unix(0, w.lastStep.Load())
}
