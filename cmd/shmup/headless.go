// cmd/shmup/headless.go
package main

import (
	"context"

	"github.com/opd-ai/go-shmup/pkg/config"
	"github.com/opd-ai/go-shmup/pkg/engine"
	"github.com/opd-ai/go-shmup/pkg/logging"
	"github.com/opd-ai/go-shmup/pkg/render"
)

// progressEvery is how many simulated seconds pass between progress logs
const progressEvery = 10

// runHeadless steps the world as fast as possible without a display. It
// stops after cfg.Frontend.Ticks steps, or when ctx is done if that is 0.
func runHeadless(ctx context.Context, world *engine.World, cfg *config.GameConfig, logger *logging.Logger) error {
	fps := max(cfg.Frontend.FPS, 1)
	dt := 1 / float64(fps)
	limit := uint64(cfg.Frontend.Ticks)
	surface := render.NewNullRenderer(ctx, logger.With("component", "null_renderer"))

	logger.Info(ctx, "Running headless", "ticks", limit, "fps", fps)
	for limit == 0 || world.CurrentTick < limit {
		if err := ctx.Err(); err != nil {
			return err
		}

		world.Step(dt)
		world.Draw(surface)

		if world.CurrentTick%uint64(fps*progressEvery) == 0 {
			s := world.Stats()
			logger.Info(ctx, "Simulation progress",
				"tick", s.Tick,
				"elapsed", s.Elapsed,
				"enemies", s.Enemies,
				"projectiles", s.Projectiles,
				"explosions", s.Explosions,
			)
		}
	}

	last := surface.LastFrame()
	logger.Info(ctx, "Headless run complete", "tick", world.CurrentTick, "frames", surface.Frames(), "last_frame", last)
	return nil
}
