// Package metrics exports simulation counters and gauges to Prometheus.
// A Collector listens on the world's event bus, so the simulation itself
// never touches a metric.
package metrics

import (
	"net/http"

	"github.com/opd-ai/go-shmup/pkg/event"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "shmup"

// Collector holds the simulation metrics
type Collector struct {
	enemiesSpawned   prometheus.Counter
	enemiesDestroyed prometheus.Counter
	playersDestroyed prometheus.Counter
	explosions       prometheus.Counter
	projectilesFired *prometheus.CounterVec
	projectileHits   *prometheus.CounterVec
	damage           prometheus.Counter
	population       *prometheus.GaugeVec
	ticks            prometheus.Counter
	stepSeconds      prometheus.Histogram

	subscriptions []event.SubscriptionID
}

// NewCollector creates the metrics and registers them with reg
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		enemiesSpawned: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "enemies_spawned_total",
			Help:      "Enemy drones spawned to keep up the quota.",
		}),
		enemiesDestroyed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "enemies_destroyed_total",
			Help:      "Enemy drones destroyed by projectiles.",
		}),
		playersDestroyed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "players_destroyed_total",
			Help:      "Player ships destroyed by projectiles.",
		}),
		explosions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "explosions_finished_total",
			Help:      "Explosions that played out and were removed.",
		}),
		projectilesFired: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "projectiles_fired_total",
			Help:      "Projectiles launched, by projectile type.",
		}, []string{"kind"}),
		projectileHits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "projectile_hits_total",
			Help:      "Projectiles that landed on a ship, by projectile type.",
		}, []string{"kind"}),
		damage: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "damage_dealt_total",
			Help:      "Health removed from ships by projectile hits.",
		}),
		population: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "entities",
			Help:      "Live entities per world group after the last step.",
		}, []string{"group"}),
		ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ticks_total",
			Help:      "World steps taken.",
		}),
		stepSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "step_delta_seconds",
			Help:      "Simulated time advanced per step.",
			Buckets:   []float64{0.004, 0.008, 0.0167, 0.033, 0.05, 0.1, 0.25},
		}),
	}

	reg.MustRegister(
		c.enemiesSpawned,
		c.enemiesDestroyed,
		c.playersDestroyed,
		c.explosions,
		c.projectilesFired,
		c.projectileHits,
		c.damage,
		c.population,
		c.ticks,
		c.stepSeconds,
	)
	return c
}

// Attach subscribes the collector to bus
func (c *Collector) Attach(bus *event.Bus) {
	c.subscriptions = append(c.subscriptions,
		bus.Subscribe(event.EnemySpawned, func(event.Event) { c.enemiesSpawned.Inc() }),
		bus.Subscribe(event.EnemyDestroyed, func(event.Event) { c.enemiesDestroyed.Inc() }),
		bus.Subscribe(event.PlayerDestroyed, func(event.Event) { c.playersDestroyed.Inc() }),
		bus.Subscribe(event.ExplosionFinished, func(event.Event) { c.explosions.Inc() }),
		bus.Subscribe(event.ProjectileFired, c.onFired),
		bus.Subscribe(event.ProjectileHit, c.onHit),
		bus.Subscribe(event.WorldStepped, c.onStep),
	)
}

// Detach removes every subscription made by Attach
func (c *Collector) Detach(bus *event.Bus) {
	for _, id := range c.subscriptions {
		bus.Unsubscribe(id)
	}
	c.subscriptions = nil
}

func (c *Collector) onFired(e event.Event) {
	if pe, ok := e.(*event.ProjectileEvent); ok {
		c.projectilesFired.WithLabelValues(pe.Kind).Inc()
	}
}

func (c *Collector) onHit(e event.Event) {
	if pe, ok := e.(*event.ProjectileEvent); ok {
		c.projectileHits.WithLabelValues(pe.Kind).Inc()
		c.damage.Add(float64(pe.Damage))
	}
}

func (c *Collector) onStep(e event.Event) {
	se, ok := e.(*event.StepEvent)
	if !ok {
		return
	}
	c.ticks.Inc()
	c.stepSeconds.Observe(se.DeltaTime)
	c.population.WithLabelValues("players").Set(float64(se.Players))
	c.population.WithLabelValues("enemies").Set(float64(se.Enemies))
	c.population.WithLabelValues("projectiles").Set(float64(se.Projectiles))
	c.population.WithLabelValues("explosions").Set(float64(se.Explosions))
	c.population.WithLabelValues("massive").Set(float64(se.Massive))
}

// Handler serves the metrics gathered by g in the Prometheus text format
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
