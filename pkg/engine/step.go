// pkg/engine/step.go
package engine

import (
	"sort"
	"time"

	"github.com/opd-ai/go-shmup/pkg/entity"
	"github.com/opd-ai/go-shmup/pkg/event"
	"github.com/opd-ai/go-shmup/pkg/physics"
)

// Step advances the simulation by deltaTime seconds. The order matters:
// update, clamp, collide, reap, replenish, then accumulate gravity for the
// next step.
func (w *World) Step(deltaTime float64) {
	w.updateEntities(deltaTime)
	w.clampShips()
	w.resolveCollisions()
	w.reapShips()
	w.reapExplosions()
	w.reapProjectiles()
	w.replenish()
	if w.Config.World.Gravity {
		w.accumulateGravity()
	}

	w.CurrentTick++
	w.ElapsedTime += deltaTime
	w.lastStep.Store(time.Now().UnixNano())

	if w.EventBus.HasSubscribers(event.WorldStepped) {
		s := w.Stats()
		e := event.NewStepEvent(w, w.CurrentTick, deltaTime)
		e.Players = s.Players
		e.Enemies = s.Enemies
		e.Projectiles = s.Projectiles
		e.Explosions = s.Explosions
		e.Massive = s.Massive
		w.EventBus.Publish(e)
	}
}

// updateEntities integrates every group. Ships go first so projectiles
// fired this step are moved along with the rest.
func (w *World) updateEntities(deltaTime float64) {
	for _, p := range w.Players {
		p.Update(deltaTime, w)
	}
	for _, e := range w.Enemies {
		e.Update(deltaTime, w)
	}
	for i := 0; i < len(w.Projectiles); i++ {
		w.Projectiles[i].Update(deltaTime)
	}
	for _, e := range w.Explosions {
		e.Update(deltaTime)
	}
	for _, m := range w.Massive {
		m.Update(deltaTime)
	}
}

// clampShips keeps players and enemies on the playfield
func (w *World) clampShips() {
	for _, p := range w.Players {
		p.ClampInside(w.Field)
	}
	for _, e := range w.Enemies {
		e.ClampInside(w.Field)
	}
}

// resolveCollisions applies projectile damage. Each projectile lands on at
// most one ship and is consumed by the hit.
func (w *World) resolveCollisions() {
	if len(w.Projectiles) == 0 {
		return
	}

	w.indexProjectiles()
	for _, e := range w.Enemies {
		w.checkShip(e)
	}
	if w.Config.World.PlayersTakeDamage {
		for _, p := range w.Players {
			w.checkShip(p)
		}
	}

	live := w.Projectiles[:0]
	for _, p := range w.Projectiles {
		if p.Alive {
			live = append(live, p)
		}
	}
	clear(w.Projectiles[len(live):])
	w.Projectiles = live
}

// indexProjectiles rebuilds the broad phase. Projectiles centred off the
// field cannot be filed in the tree and are kept in an overflow list.
func (w *World) indexProjectiles() {
	if w.spatial == nil {
		return
	}
	w.spatial.Clear()
	w.overflow = w.overflow[:0]
	for i, p := range w.Projectiles {
		if !w.spatial.Insert(p.Bounds(), i) {
			w.overflow = append(w.overflow, i)
		}
	}
}

// candidates returns the indices of projectiles that may overlap area, in
// the order they were fired
func (w *World) candidates(area physics.Rect) []int {
	if w.spatial == nil {
		all := make([]int, len(w.Projectiles))
		for i := range all {
			all[i] = i
		}
		return all
	}

	found := w.spatial.Query(area)
	indices := make([]int, 0, len(found)+len(w.overflow))
	for _, obj := range found {
		indices = append(indices, obj.(int))
	}
	indices = append(indices, w.overflow...)
	sort.Ints(indices)
	return indices
}

// checkShip lands every hostile projectile overlapping ship. A ship
// killed earlier in the pass keeps absorbing shots until it is reaped.
func (w *World) checkShip(ship *entity.Ship) {
	bounds := ship.Bounds()
	for _, i := range w.candidates(bounds) {
		p := w.Projectiles[i]
		if !p.Alive || p.Team == ship.Team || !p.Bounds().Overlaps(bounds) {
			continue
		}
		w.landHit(ship, p)
	}
}

// landHit applies p's damage to ship and consumes p
func (w *World) landHit(ship *entity.Ship, p *entity.Projectile) {
	p.Alive = false
	killed := ship.Hit(p.Damage)

	if w.EventBus.HasSubscribers(event.ProjectileHit) {
		e := event.NewProjectileEvent(event.ProjectileHit, w, uint64(p.ID), p.Type.Name, uint64(p.OwnerID))
		e.TargetID = uint64(ship.ID)
		e.Damage = p.Damage
		e.Position = p.Position
		w.EventBus.Publish(e)
	}

	if !killed {
		return
	}

	if owner, ok := w.Ship(p.OwnerID); ok && owner.Alive {
		owner.Kills++
	}

	eventType := event.EnemyDestroyed
	if ship.Role == entity.RolePlayer {
		eventType = event.PlayerDestroyed
	}
	e := event.NewShipEvent(eventType, w, uint64(ship.ID), string(ship.Team), ship.Position)
	e.KillerID = uint64(p.OwnerID)
	w.EventBus.Publish(e)

	w.logger.Debug(w.logCtx, "ship destroyed", "ship_id", ship.ID, "role", ship.Role.String(), "killer_id", p.OwnerID)
}

// reapShips replaces every dead ship with an explosion at its last position
func (w *World) reapShips() {
	w.Enemies = w.reapGroup(w.Enemies)
	w.Players = w.reapGroup(w.Players)
}

func (w *World) reapGroup(ships []*entity.Ship) []*entity.Ship {
	live := ships[:0]
	for _, s := range ships {
		if s.Alive {
			live = append(live, s)
			continue
		}
		w.Explosions = append(w.Explosions, entity.NewExplosion(w.newID(), s.Position, s.ID))
	}
	clear(ships[len(live):])
	return live
}

// reapExplosions removes explosions whose animation has played out
func (w *World) reapExplosions() {
	live := w.Explosions[:0]
	for _, e := range w.Explosions {
		if e.Alive {
			live = append(live, e)
			continue
		}
		w.EventBus.Publish(event.NewExplosionEvent(w, uint64(e.ID), uint64(e.Source)))
	}
	clear(w.Explosions[len(live):])
	w.Explosions = live
}

// reapProjectiles removes projectiles that have left the playfield entirely
func (w *World) reapProjectiles() {
	live := w.Projectiles[:0]
	for _, p := range w.Projectiles {
		if !p.Bounds().Outside(w.Field) {
			live = append(live, p)
		}
	}
	clear(w.Projectiles[len(live):])
	w.Projectiles = live
}

// replenish spawns enemies until enemies plus explosions reach the quota
func (w *World) replenish() {
	deficit := w.Config.World.Quota - (len(w.Enemies) + len(w.Explosions))
	for i := 0; i < deficit; i++ {
		w.SpawnEnemy(w.randomSpawnPoint())
	}
	if deficit > 0 {
		w.logger.Debug(w.logCtx, "enemies replenished", "count", deficit, "tick", w.CurrentTick)
	}
}

// randomSpawnPoint picks a point uniformly inside the enemy spawn band
func (w *World) randomSpawnPoint() physics.Vector2D {
	cfg := w.Config.World
	minX, maxX := cfg.SpawnMarginX, w.Field.Width-cfg.SpawnMarginX
	minY, maxY := cfg.SpawnTop, w.Field.Height*cfg.SpawnBottom

	return physics.Vector2D{
		X: minX + w.rng.Float64()*(maxX-minX),
		Y: minY + w.rng.Float64()*(maxY-minY),
	}
}

// accumulateGravity computes the pull every ship and massive body feels
// from the others at their end-of-step positions. It is applied by the
// next step's integration.
func (w *World) accumulateGravity() {
	n := len(w.Players) + len(w.Enemies) + len(w.Massive)
	bodies := make([]*entity.Body, 0, n)
	masses := make([]physics.PointMass, 0, n)

	for _, p := range w.Players {
		bodies = append(bodies, &p.Body)
	}
	for _, e := range w.Enemies {
		bodies = append(bodies, &e.Body)
	}
	for _, m := range w.Massive {
		bodies = append(bodies, &m.Body)
	}
	for _, b := range bodies {
		masses = append(masses, b.PointMass())
	}

	accel := physics.GravityAccelerations(masses, w.Config.World.GravityConstant)
	for i, b := range bodies {
		b.Gravity = accel[i]
	}
}
