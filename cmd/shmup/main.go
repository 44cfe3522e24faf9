// cmd/shmup/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"github.com/opd-ai/go-shmup/pkg/audio"
	"github.com/opd-ai/go-shmup/pkg/config"
	"github.com/opd-ai/go-shmup/pkg/control"
	"github.com/opd-ai/go-shmup/pkg/engine"
	"github.com/opd-ai/go-shmup/pkg/event"
	"github.com/opd-ai/go-shmup/pkg/health"
	"github.com/opd-ai/go-shmup/pkg/logging"
	"github.com/opd-ai/go-shmup/pkg/metrics"
)

// options are the command line settings layered over the config file
type options struct {
	configPath    string
	createDefault bool
	renderer      string
	ticks         int
	seed          string
	logPath       string
}

func parseFlags(args []string) (options, error) {
	var opts options
	fs := flag.NewFlagSet("shmup", flag.ContinueOnError)
	fs.StringVar(&opts.configPath, "config", "", "Path to configuration file (JSON, YAML or TOML)")
	fs.BoolVar(&opts.createDefault, "default", false, "Write the default configuration to -config and exit")
	fs.StringVar(&opts.renderer, "renderer", "", "Frontend: 'engo', 'terminal' or 'headless' (overrides config)")
	fs.IntVar(&opts.ticks, "ticks", -1, "Steps to run headless, 0 for no limit (overrides config)")
	fs.StringVar(&opts.seed, "seed", "", "Seed phrase for a reproducible run (overrides config)")
	fs.StringVar(&opts.logPath, "log", "", "Log file for the terminal frontend")
	err := fs.Parse(args)
	return opts, err
}

func main() {
	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		os.Exit(2)
	}

	logger := logging.NewLogger()
	ctx := logging.WithCorrelationID(context.Background(), logging.GenerateCorrelationID())

	if opts.createDefault {
		if err := writeDefault(opts.configPath); err != nil {
			logger.Error(ctx, "Failed to create default configuration", err, "config_path", opts.configPath)
			os.Exit(1)
		}
		logger.Info(ctx, "Created default configuration file", "config_path", opts.configPath)
		return
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		logger.Error(ctx, "Failed to load configuration", err, "config_path", opts.configPath)
		os.Exit(1)
	}

	logger, closeLog, err := newLogger(cfg.Frontend.Renderer, opts.logPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open log: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error(ctx, "Game stopped with an error", err)
		os.Exit(1)
	}
}

// newLogger sends logs to stdout, except for the terminal frontend, which
// owns the screen and logs to path or nowhere
func newLogger(renderer, path string) (*logging.Logger, func(), error) {
	if renderer != config.RendererTerminal {
		return logging.NewLogger(), func() {}, nil
	}
	if path == "" {
		return logging.NewLoggerWithWriter(io.Discard), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, err
	}
	return logging.NewLoggerWithWriter(f), func() { f.Close() }, nil
}

func writeDefault(path string) error {
	if path == "" {
		return errors.New("-default needs -config")
	}
	return config.SaveConfig(config.DefaultConfig(), path)
}

// loadConfig reads the config file, applies flag overrides and validates
// the result
func loadConfig(opts options) (*config.GameConfig, error) {
	cfg, err := config.LoadConfig(opts.configPath)
	if err != nil {
		return nil, err
	}
	if opts.renderer != "" {
		cfg.Frontend.Renderer = opts.renderer
	}
	if opts.ticks >= 0 {
		cfg.Frontend.Ticks = opts.ticks
	}
	if opts.seed != "" {
		cfg.Seed = opts.seed
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// run builds the world and its observers and drives the chosen frontend
// until it finishes or ctx is cancelled
func run(ctx context.Context, cfg *config.GameConfig, logger *logging.Logger) error {
	world, err := engine.NewWorldFromConfig(cfg, engine.WithLogger(ctx, logger.With("component", "world")))
	if err != nil {
		return logging.WrapError(err, "failed to build world")
	}
	logger.Info(ctx, "World created",
		"renderer", cfg.Frontend.Renderer,
		"players", len(world.Players),
		"quota", cfg.World.Quota,
		"seed", cfg.Seed,
	)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)

	if cfg.Metrics.Enabled {
		if err := serveMetrics(gctx, g, world, cfg, logger); err != nil {
			return err
		}
	}

	if cfg.Audio.Enabled && cfg.Frontend.Renderer != config.RendererHeadless {
		board := audio.NewSoundBoard(cfg.Audio)
		if err := board.Initialize(); err != nil {
			logger.Warn(ctx, "Audio disabled", "error", err.Error())
		} else {
			board.Attach(world.EventBus)
			defer board.Close()
		}
	}

	switch cfg.Frontend.Renderer {
	case config.RendererHeadless:
		g.Go(func() error {
			defer cancel()
			return runHeadless(gctx, world, cfg, logger)
		})
	case config.RendererTerminal:
		bindings := control.TerminalBindings(playerName(cfg, 0), playerName(cfg, 1))
		router := control.NewRouter(world, bindings, cfg.Controls.ThrustPower, cfg.Controls.TurnRate)
		g.Go(func() error {
			defer cancel()
			return runTerminal(gctx, world, router, cfg, logger)
		})
	default:
		// engo owns the main thread until its window closes
		bindings := control.DefaultBindings(playerName(cfg, 0), playerName(cfg, 1))
		router := control.NewRouter(world, bindings, cfg.Controls.ThrustPower, cfg.Controls.TurnRate)
		runWindow(ctx, world, router, cfg, logger)
		cancel()
	}

	err = g.Wait()
	logger.Info(ctx, "Game finished", "tick", world.CurrentTick, "elapsed", world.ElapsedTime)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// playerName returns the name of the i-th configured player, or "" so the
// bindings for a missing seat are ignored
func playerName(cfg *config.GameConfig, i int) string {
	if i < len(cfg.Players) {
		return cfg.Players[i].Name
	}
	return ""
}

// population is the enemy plus explosion count published after each step.
// Health checks read it from the HTTP goroutines.
type population struct {
	tick  atomic.Uint64
	count atomic.Int64
}

func (p *population) observe(e event.Event) {
	if se, ok := e.(*event.StepEvent); ok {
		p.tick.Store(se.Tick)
		p.count.Store(int64(se.Enemies + se.Explosions))
	}
}

func (p *population) load() (uint64, int) {
	return p.tick.Load(), int(p.count.Load())
}

// serveMetrics starts the metrics and health endpoint in g. The server
// shuts down when ctx is done.
func serveMetrics(ctx context.Context, g *errgroup.Group, world *engine.World, cfg *config.GameConfig, logger *logging.Logger) error {
	reg := prometheus.NewRegistry()
	collector := metrics.NewCollector(reg)
	collector.Attach(world.EventBus)

	pop := &population{}
	world.EventBus.Subscribe(event.WorldStepped, pop.observe)

	stale := 10 * time.Second / time.Duration(max(cfg.Frontend.FPS, 1))
	hc := health.NewHealthChecker()
	hc.AddCheck(health.NewSimulationHealthCheck(world.LastStep, max(stale, time.Second)))
	hc.AddCheck(health.NewPopulationHealthCheck(cfg.World.Quota, pop.load))
	hc.AddCheck(health.NewMemoryHealthCheck(500, nil))

	server := &http.Server{
		Addr:         cfg.Metrics.Address,
		Handler:      health.NewServeMux(hc, metrics.Handler(reg)),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	}

	g.Go(func() error {
		logger.Info(ctx, "Starting metrics server", "address", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return logging.WrapError(err, "metrics server on %s failed", server.Addr)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		collector.Detach(world.EventBus)
		return server.Shutdown(shutdownCtx)
	})
	return nil
}
