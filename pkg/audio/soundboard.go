// pkg/audio/soundboard.go
package audio

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"

	"github.com/opd-ai/go-shmup/pkg/config"
	"github.com/opd-ai/go-shmup/pkg/entity"
	"github.com/opd-ai/go-shmup/pkg/event"
)

// Sound identifies one effect
type Sound int

const (
	SoundLaser Sound = iota
	SoundPlasma
	SoundExplosion
	SoundPlayerDown
)

func (s Sound) String() string {
	switch s {
	case SoundLaser:
		return "laser"
	case SoundPlasma:
		return "plasma"
	case SoundExplosion:
		return "explosion"
	case SoundPlayerDown:
		return "player-down"
	default:
		return "unknown"
	}
}

// Effect lengths
const (
	laserDuration     = 80 * time.Millisecond
	plasmaDuration    = 180 * time.Millisecond
	explosionDuration = 400 * time.Millisecond
	playerDownLength  = 900 * time.Millisecond
)

// MaxVoices caps how many effects play at once; repeaters would otherwise
// pile up dozens of overlapping zaps
const MaxVoices = 16

// SoundBoard turns simulation events into procedurally generated sound
// effects mixed into a single stream. Without Initialize the mix is never
// sent to a speaker, which lets headless runs and tests pull samples
// directly.
type SoundBoard struct {
	mu          sync.Mutex
	rate        beep.SampleRate
	volume      float64
	enabled     bool
	mixer       *beep.Mixer
	initialized bool
	seed        int64
	played      map[Sound]int

	subscriptions []event.SubscriptionID
}

// NewSoundBoard creates a sound board from cfg
func NewSoundBoard(cfg config.AudioConfig) *SoundBoard {
	rate := cfg.SampleRate
	if rate <= 0 {
		rate = 44100
	}
	return &SoundBoard{
		rate:    beep.SampleRate(rate),
		volume:  cfg.Volume,
		enabled: cfg.Enabled,
		mixer:   &beep.Mixer{},
		seed:    1,
		played:  make(map[Sound]int),
	}
}

// Initialize starts the speaker and plays the mix through it. It is a
// no-op when audio is disabled or already running.
func (sb *SoundBoard) Initialize() error {
	sb.mu.Lock()
	defer sb.mu.Unlock()

	if !sb.enabled || sb.initialized {
		return nil
	}

	if err := speaker.Init(sb.rate, sb.rate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("initialize speaker: %w", err)
	}
	speaker.Play(sb.lockedMix())
	sb.initialized = true
	return nil
}

// lockedMix streams the mixer under the board's lock so Play can add
// voices while the speaker goroutine drains it
func (sb *SoundBoard) lockedMix() beep.Streamer {
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		sb.mu.Lock()
		defer sb.mu.Unlock()
		return sb.mixer.Stream(samples)
	})
}

// Close silences every playing effect and detaches the mix from the speaker
func (sb *SoundBoard) Close() {
	sb.mu.Lock()
	sb.mixer.Clear()
	started := sb.initialized
	sb.initialized = false
	sb.mu.Unlock()

	// the speaker calls back into the mix under its own lock
	if started {
		speaker.Clear()
	}
}

// Play queues sound. It is dropped when audio is disabled or MaxVoices
// effects are already playing.
func (sb *SoundBoard) Play(sound Sound) {
	sb.mu.Lock()
	defer sb.mu.Unlock()

	if !sb.enabled || sb.mixer.Len() >= MaxVoices {
		return
	}

	s := sb.effect(sound)
	if s == nil {
		return
	}
	sb.mixer.Add(newVolume(s, sb.volume))
	sb.played[sound]++
}

// effect builds a fresh streamer for sound
func (sb *SoundBoard) effect(sound Sound) beep.Streamer {
	switch sound {
	case SoundLaser:
		return beep.Take(sb.rate.N(laserDuration), NewLaserGenerator(sb.rate, 1800, 500, sb.rate.N(laserDuration)))
	case SoundPlasma:
		return beep.Take(sb.rate.N(plasmaDuration), NewPlasmaGenerator(sb.rate, 180, 30))
	case SoundExplosion:
		sb.seed++
		return beep.Take(sb.rate.N(explosionDuration), NewExplosionGenerator(sb.rate, 8, 70, sb.seed))
	case SoundPlayerDown:
		sb.seed++
		return beep.Take(sb.rate.N(playerDownLength), beep.Mix(
			NewExplosionGenerator(sb.rate, 3, 45, sb.seed),
			beep.Take(sb.rate.N(playerDownLength/2), NewLaserGenerator(sb.rate, 600, 80, sb.rate.N(playerDownLength/2))),
		))
	default:
		return nil
	}
}

// Streamer returns the mix. Reading from it consumes the queued effects.
func (sb *SoundBoard) Streamer() beep.Streamer {
	return sb.lockedMix()
}

// Voices returns how many effects are still playing
func (sb *SoundBoard) Voices() int {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	return sb.mixer.Len()
}

// Played returns how many times sound was queued
func (sb *SoundBoard) Played(sound Sound) int {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	return sb.played[sound]
}

// Attach plays effects for projectiles fired and ships destroyed on bus
func (sb *SoundBoard) Attach(bus *event.Bus) {
	sb.subscriptions = append(sb.subscriptions,
		bus.Subscribe(event.ProjectileFired, sb.onFired),
		bus.Subscribe(event.EnemyDestroyed, func(event.Event) { sb.Play(SoundExplosion) }),
		bus.Subscribe(event.PlayerDestroyed, func(event.Event) { sb.Play(SoundPlayerDown) }),
	)
}

// Detach removes every subscription made by Attach
func (sb *SoundBoard) Detach(bus *event.Bus) {
	for _, id := range sb.subscriptions {
		bus.Unsubscribe(id)
	}
	sb.subscriptions = nil
}

func (sb *SoundBoard) onFired(e event.Event) {
	pe, ok := e.(*event.ProjectileEvent)
	if !ok {
		return
	}
	if pe.Kind == entity.PlasmaBall.Name {
		sb.Play(SoundPlasma)
		return
	}
	sb.Play(SoundLaser)
}

// newVolume scales s by a linear gain; beep volumes are logarithmic and
// log2(0) is -Inf, so zero gain is silent
func newVolume(s beep.Streamer, gain float64) beep.Streamer {
	if gain <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(gain)}
}
