// cmd/shmup/window.go
package main

import (
	"context"

	"github.com/EngoEngine/engo"

	"github.com/opd-ai/go-shmup/pkg/config"
	"github.com/opd-ai/go-shmup/pkg/control"
	"github.com/opd-ai/go-shmup/pkg/engine"
	"github.com/opd-ai/go-shmup/pkg/logging"
	engorender "github.com/opd-ai/go-shmup/pkg/render/engo"
)

// runWindow opens the engo window sized to the playfield and blocks until
// it closes. Cancelling ctx closes the window.
func runWindow(ctx context.Context, world *engine.World, router *control.Router, cfg *config.GameConfig, logger *logging.Logger) {
	scene := engorender.NewGameScene(ctx, world, router, cfg.Frontend.FPS, logger.With("component", "engo"))
	opts := engorender.RunOptions(cfg.Frontend.Title, world.Field.Width, world.Field.Height, cfg.Frontend.Fullscreen, cfg.Frontend.FPS)

	closed := make(chan struct{})
	defer close(closed)
	go func() {
		select {
		case <-ctx.Done():
			engo.Exit()
		case <-closed:
		}
	}()

	engo.Run(opts, scene)
}
