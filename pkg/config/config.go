// pkg/config/config.go
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/cespare/xxhash/v2"
	"github.com/opd-ai/go-shmup/pkg/entity"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is wrapped by every error returned from Validate
var ErrInvalidConfig = errors.New("invalid configuration")

// MaxPlayerNameLen bounds player names so they fit the status line
const MaxPlayerNameLen = 32

// playerNameChars are the characters a player name may use
var playerNameChars = regexp.MustCompile(`^[a-zA-Z0-9 \-_.()]+$`)

// EnvPrefix prefixes environment overrides, e.g. SHMUP_WORLD_QUOTA
const EnvPrefix = "SHMUP"

// Renderer names accepted by FrontendConfig.Renderer
const (
	RendererEngo     = "engo"
	RendererTerminal = "terminal"
	RendererHeadless = "headless"
)

// GameConfig contains configuration for a shmup session
type GameConfig struct {
	World         WorldConfig    `json:"world" yaml:"world" mapstructure:"world"`
	Players       []PlayerConfig `json:"players" yaml:"players" mapstructure:"players"`
	MassiveBodies []MassConfig   `json:"massiveBodies" yaml:"massiveBodies" mapstructure:"massiveBodies"`
	Controls      ControlsConfig `json:"controls" yaml:"controls" mapstructure:"controls"`
	Frontend      FrontendConfig `json:"frontend" yaml:"frontend" mapstructure:"frontend"`
	Audio         AudioConfig    `json:"audio" yaml:"audio" mapstructure:"audio"`
	Metrics       MetricsConfig  `json:"metrics" yaml:"metrics" mapstructure:"metrics"`
	Seed          string         `json:"seed" yaml:"seed" mapstructure:"seed"`
}

// WorldConfig describes the playfield and its population rules
type WorldConfig struct {
	Width  float64 `json:"width" yaml:"width" mapstructure:"width"`
	Height float64 `json:"height" yaml:"height" mapstructure:"height"`
	// Quota is the enemy plus explosion population kept up each step
	Quota int `json:"quota" yaml:"quota" mapstructure:"quota"`
	// Enemies spawn with x in [SpawnMarginX, Width-SpawnMarginX] and
	// y in [SpawnTop, Height*SpawnBottom]
	SpawnMarginX      float64  `json:"spawnMarginX" yaml:"spawnMarginX" mapstructure:"spawnMarginX"`
	SpawnTop          float64  `json:"spawnTop" yaml:"spawnTop" mapstructure:"spawnTop"`
	SpawnBottom       float64  `json:"spawnBottom" yaml:"spawnBottom" mapstructure:"spawnBottom"`
	EnemyWeapons      []string `json:"enemyWeapons" yaml:"enemyWeapons" mapstructure:"enemyWeapons"`
	Gravity           bool     `json:"gravity" yaml:"gravity" mapstructure:"gravity"`
	GravityConstant   float64  `json:"gravityConstant" yaml:"gravityConstant" mapstructure:"gravityConstant"`
	ShipMass          float64  `json:"shipMass" yaml:"shipMass" mapstructure:"shipMass"`
	PlayersTakeDamage bool     `json:"playersTakeDamage" yaml:"playersTakeDamage" mapstructure:"playersTakeDamage"`
	BroadPhase        bool     `json:"broadPhase" yaml:"broadPhase" mapstructure:"broadPhase"`
}

// PlayerConfig places one player ship. X and Y are fractions of the playfield.
type PlayerConfig struct {
	Name    string   `json:"name" yaml:"name" mapstructure:"name"`
	Team    string   `json:"team" yaml:"team" mapstructure:"team"`
	X       float64  `json:"x" yaml:"x" mapstructure:"x"`
	Y       float64  `json:"y" yaml:"y" mapstructure:"y"`
	Weapons []string `json:"weapons" yaml:"weapons" mapstructure:"weapons"`
}

// MassConfig places one massive body. X and Y are fractions of the playfield.
type MassConfig struct {
	Class    string  `json:"class" yaml:"class" mapstructure:"class"`
	X        float64 `json:"x" yaml:"x" mapstructure:"x"`
	Y        float64 `json:"y" yaml:"y" mapstructure:"y"`
	Anchored bool    `json:"anchored" yaml:"anchored" mapstructure:"anchored"`
}

// ControlsConfig contains input tuning
type ControlsConfig struct {
	ThrustPower float64 `json:"thrustPower" yaml:"thrustPower" mapstructure:"thrustPower"`
	TurnRate    float64 `json:"turnRate" yaml:"turnRate" mapstructure:"turnRate"`
}

// FrontendConfig selects and sizes the display
type FrontendConfig struct {
	Renderer   string `json:"renderer" yaml:"renderer" mapstructure:"renderer"`
	FPS        int    `json:"fps" yaml:"fps" mapstructure:"fps"`
	Title      string `json:"title" yaml:"title" mapstructure:"title"`
	Fullscreen bool   `json:"fullscreen" yaml:"fullscreen" mapstructure:"fullscreen"`
	// Ticks bounds a headless run; zero runs until interrupted
	Ticks int `json:"ticks" yaml:"ticks" mapstructure:"ticks"`
}

// AudioConfig contains sound settings
type AudioConfig struct {
	Enabled    bool    `json:"enabled" yaml:"enabled" mapstructure:"enabled"`
	SampleRate int     `json:"sampleRate" yaml:"sampleRate" mapstructure:"sampleRate"`
	Volume     float64 `json:"volume" yaml:"volume" mapstructure:"volume"`
}

// MetricsConfig contains the metrics and health endpoint settings
type MetricsConfig struct {
	Enabled bool   `json:"enabled" yaml:"enabled" mapstructure:"enabled"`
	Address string `json:"address" yaml:"address" mapstructure:"address"`
}

// LoadConfig loads configuration from a JSON, YAML or TOML file, chosen by
// extension. Values missing from the file keep their defaults and any key
// can be overridden from the environment, e.g. SHMUP_WORLD_QUOTA=30.
// An empty path yields defaults plus environment overrides.
func LoadConfig(path string) (*GameConfig, error) {
	v := viper.New()
	setDefaults(v, DefaultConfig())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	config := &GameConfig{}
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// setDefaults registers every key so that environment overrides are
// visible to Unmarshal
func setDefaults(v *viper.Viper, c *GameConfig) {
	v.SetDefault("players", c.Players)
	v.SetDefault("massiveBodies", c.MassiveBodies)

	v.SetDefault("world.width", c.World.Width)
	v.SetDefault("world.height", c.World.Height)
	v.SetDefault("world.quota", c.World.Quota)
	v.SetDefault("world.spawnMarginX", c.World.SpawnMarginX)
	v.SetDefault("world.spawnTop", c.World.SpawnTop)
	v.SetDefault("world.spawnBottom", c.World.SpawnBottom)
	v.SetDefault("world.enemyWeapons", c.World.EnemyWeapons)
	v.SetDefault("world.gravity", c.World.Gravity)
	v.SetDefault("world.gravityConstant", c.World.GravityConstant)
	v.SetDefault("world.shipMass", c.World.ShipMass)
	v.SetDefault("world.playersTakeDamage", c.World.PlayersTakeDamage)
	v.SetDefault("world.broadPhase", c.World.BroadPhase)

	v.SetDefault("controls.thrustPower", c.Controls.ThrustPower)
	v.SetDefault("controls.turnRate", c.Controls.TurnRate)

	v.SetDefault("frontend.renderer", c.Frontend.Renderer)
	v.SetDefault("frontend.fps", c.Frontend.FPS)
	v.SetDefault("frontend.title", c.Frontend.Title)
	v.SetDefault("frontend.fullscreen", c.Frontend.Fullscreen)
	v.SetDefault("frontend.ticks", c.Frontend.Ticks)

	v.SetDefault("audio.enabled", c.Audio.Enabled)
	v.SetDefault("audio.sampleRate", c.Audio.SampleRate)
	v.SetDefault("audio.volume", c.Audio.Volume)

	v.SetDefault("metrics.enabled", c.Metrics.Enabled)
	v.SetDefault("metrics.address", c.Metrics.Address)

	v.SetDefault("seed", c.Seed)
}

// SaveConfig saves configuration to a file, as YAML for .yaml/.yml paths
// and indented JSON otherwise
func SaveConfig(config *GameConfig, path string) error {
	var (
		data []byte
		err  error
	)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(config)
	default:
		data, err = json.MarshalIndent(config, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// DefaultConfig returns a default game configuration: two players near the
// bottom of a 640x480 field holding off fifteen drones
func DefaultConfig() *GameConfig {
	loadout := []string{"LaserRepeater", "PlasmaRepeater", "LaserFan", "PlasmaCannon"}

	return &GameConfig{
		World: WorldConfig{
			Width:           640,
			Height:          480,
			Quota:           15,
			SpawnMarginX:    50,
			SpawnTop:        20,
			SpawnBottom:     0.5,
			EnemyWeapons:    []string{"PlasmaRepeater"},
			Gravity:         false,
			GravityConstant: 0.0066,
			ShipMass:        10,
			BroadPhase:      true,
		},
		Players: []PlayerConfig{
			{
				Name:    "Player 1",
				Team:    "Players",
				X:       0.25,
				Y:       0.75,
				Weapons: append([]string(nil), loadout...),
			},
			{
				Name:    "Player 2",
				Team:    "Players",
				X:       0.75,
				Y:       0.75,
				Weapons: append([]string(nil), loadout...),
			},
		},
		MassiveBodies: []MassConfig{},
		Controls: ControlsConfig{
			ThrustPower: 200,
			TurnRate:    360,
		},
		Frontend: FrontendConfig{
			Renderer: RendererEngo,
			FPS:      60,
			Title:    "go-shmup",
		},
		Audio: AudioConfig{
			Enabled:    true,
			SampleRate: 44100,
			Volume:     0.5,
		},
		Metrics: MetricsConfig{
			Enabled: false,
			Address: ":9090",
		},
	}
}

// Validate reports the first problem found in the configuration
func (c *GameConfig) Validate() error {
	w := c.World
	switch {
	case w.Width <= 0 || w.Height <= 0:
		return fmt.Errorf("%w: playfield must be positive, got %gx%g", ErrInvalidConfig, w.Width, w.Height)
	case w.Quota < 0:
		return fmt.Errorf("%w: quota must not be negative, got %d", ErrInvalidConfig, w.Quota)
	case w.SpawnMarginX < 0 || w.SpawnMarginX*2 > w.Width:
		return fmt.Errorf("%w: spawn margin %g leaves no room in width %g", ErrInvalidConfig, w.SpawnMarginX, w.Width)
	case w.SpawnTop < 0 || w.SpawnTop > w.Height*w.SpawnBottom:
		return fmt.Errorf("%w: spawn band [%g, %g] is empty", ErrInvalidConfig, w.SpawnTop, w.Height*w.SpawnBottom)
	case w.SpawnBottom > 1:
		return fmt.Errorf("%w: spawnBottom must be a fraction, got %g", ErrInvalidConfig, w.SpawnBottom)
	case w.ShipMass < 0:
		return fmt.Errorf("%w: shipMass must not be negative", ErrInvalidConfig)
	case c.Frontend.FPS <= 0:
		return fmt.Errorf("%w: fps must be positive, got %d", ErrInvalidConfig, c.Frontend.FPS)
	case c.Controls.ThrustPower < 0:
		return fmt.Errorf("%w: thrustPower must not be negative", ErrInvalidConfig)
	}

	switch c.Frontend.Renderer {
	case RendererEngo, RendererTerminal, RendererHeadless:
	default:
		return fmt.Errorf("%w: unknown renderer %q", ErrInvalidConfig, c.Frontend.Renderer)
	}

	if err := validateWeapons(w.EnemyWeapons); err != nil {
		return err
	}
	for _, p := range c.Players {
		if err := validatePlayerName(p.Name); err != nil {
			return err
		}
		if err := validateWeapons(p.Weapons); err != nil {
			return fmt.Errorf("player %q: %w", p.Name, err)
		}
	}
	for _, m := range c.MassiveBodies {
		if _, ok := entity.MassClassFromString(m.Class); !ok {
			return fmt.Errorf("%w: unknown massive body class %q", ErrInvalidConfig, m.Class)
		}
	}

	return nil
}

// validatePlayerName rejects names the HUD and terminal status cannot show
func validatePlayerName(name string) error {
	switch {
	case strings.TrimSpace(name) == "":
		return fmt.Errorf("%w: player without a name", ErrInvalidConfig)
	case utf8.RuneCountInString(name) > MaxPlayerNameLen:
		return fmt.Errorf("%w: player name %q is longer than %d characters", ErrInvalidConfig, name, MaxPlayerNameLen)
	case !playerNameChars.MatchString(name):
		return fmt.Errorf("%w: player name %q has characters other than letters, digits, spaces and -_.()", ErrInvalidConfig, name)
	}
	return nil
}

func validateWeapons(names []string) error {
	for _, name := range names {
		if _, err := entity.NewWeapon(name); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
	}
	return nil
}

// SeedValue hashes the seed phrase into a PRNG seed. The second result is
// false when no phrase is configured and the caller should pick its own.
func (c *GameConfig) SeedValue() (uint64, bool) {
	if c.Seed == "" {
		return 0, false
	}
	return xxhash.Sum64String(c.Seed), true
}
