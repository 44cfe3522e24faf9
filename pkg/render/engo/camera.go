// pkg/render/engo/camera.go
package engo

import (
	"math"
	"math/rand/v2"

	"github.com/opd-ai/go-shmup/pkg/event"
	"github.com/opd-ai/go-shmup/pkg/physics"
)

// Shake strengths in pixels
const (
	EnemyShake  = 2.0
	PlayerShake = 8.0
	// shakeDecay is how much of the shake is left after one second
	shakeDecay = 0.02
)

// Camera offsets the playfield on screen to shake it when ships blow up.
// The playfield always fits the window, so it never scrolls.
type Camera struct {
	rng       *rand.Rand
	intensity float64
	offset    physics.Vector2D

	subscriptions []event.SubscriptionID
}

// NewCamera creates a still camera. A nil rng uses a fixed seed.
func NewCamera(rng *rand.Rand) *Camera {
	if rng == nil {
		rng = rand.New(rand.NewPCG(1, 2))
	}
	return &Camera{rng: rng}
}

// Shake starts or strengthens a shake; the strongest pending shake wins
func (c *Camera) Shake(intensity float64) {
	c.intensity = math.Max(c.intensity, intensity)
}

// Intensity returns the current shake strength
func (c *Camera) Intensity() float64 {
	return c.intensity
}

// Update decays the shake and picks this frame's offset
func (c *Camera) Update(deltaTime float64) {
	c.intensity *= math.Pow(shakeDecay, deltaTime)
	if c.intensity < 0.1 {
		c.intensity = 0
		c.offset = physics.Vector2D{}
		return
	}
	c.offset = physics.Vector2D{
		X: (c.rng.Float64()*2 - 1) * c.intensity,
		Y: (c.rng.Float64()*2 - 1) * c.intensity,
	}
}

// Offset returns the current shake offset
func (c *Camera) Offset() physics.Vector2D {
	return c.offset
}

// Apply converts a playfield point to screen coordinates
func (c *Camera) Apply(p physics.Vector2D) physics.Vector2D {
	return p.Add(c.offset)
}

// Attach shakes the camera when ships are destroyed on bus
func (c *Camera) Attach(bus *event.Bus) {
	c.subscriptions = append(c.subscriptions,
		bus.Subscribe(event.EnemyDestroyed, func(event.Event) { c.Shake(EnemyShake) }),
		bus.Subscribe(event.PlayerDestroyed, func(event.Event) { c.Shake(PlayerShake) }),
	)
}

// Detach removes every subscription made by Attach
func (c *Camera) Detach(bus *event.Bus) {
	for _, id := range c.subscriptions {
		bus.Unsubscribe(id)
	}
	c.subscriptions = nil
}
