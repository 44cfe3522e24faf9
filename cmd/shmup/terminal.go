// cmd/shmup/terminal.go
package main

import (
	"context"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/opd-ai/go-shmup/pkg/config"
	"github.com/opd-ai/go-shmup/pkg/control"
	"github.com/opd-ai/go-shmup/pkg/engine"
	"github.com/opd-ai/go-shmup/pkg/logging"
	"github.com/opd-ai/go-shmup/pkg/render"
)

// keyHoldTimeout outlasts the usual terminal key repeat delay, so a key
// held down is not released between repeats
const keyHoldTimeout = 500 * time.Millisecond

// runTerminal plays the game in the terminal until the player quits or
// ctx is done
func runTerminal(ctx context.Context, world *engine.World, router *control.Router, cfg *config.GameConfig, logger *logging.Logger) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return logging.WrapError(err, "failed to create screen")
	}
	if err := screen.Init(); err != nil {
		return logging.WrapError(err, "failed to initialise screen")
	}
	defer screen.Fini()

	return terminalLoop(ctx, screen, world, router, cfg, logger)
}

// terminalLoop steps and draws the world at the configured frame rate and
// forwards key presses to router. Terminals report no key releases, so
// releases are synthesised once a key stops repeating.
func terminalLoop(ctx context.Context, screen tcell.Screen, world *engine.World, router *control.Router, cfg *config.GameConfig, logger *logging.Logger) error {
	seed, _ := cfg.SeedValue()
	stars := render.NewStarfield(int64(seed))
	surface := render.NewTerminalRenderer(screen, world.Field, stars)
	hold := control.NewKeyHold(keyHoldTimeout)

	events := make(chan tcell.Event, 100)
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	step := time.Second / time.Duration(max(cfg.Frontend.FPS, 1))
	ticker := time.NewTicker(step)
	defer ticker.Stop()

	logger.Info(ctx, "Terminal frontend started", "fps", cfg.Frontend.FPS)
	for {
		select {
		case <-ctx.Done():
			releaseAll(ctx, router, logger)
			return ctx.Err()

		case ev, ok := <-events:
			if !ok {
				return nil
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if isQuit(ev) {
					releaseAll(ctx, router, logger)
					logger.Info(ctx, "Player quit", "tick", world.CurrentTick)
					return nil
				}
				key, ok := keyName(ev)
				if !ok || !hold.Press(key, time.Now()) {
					continue
				}
				if err := router.Key(key, true); err != nil {
					logger.Debug(ctx, "key ignored", "key", key, "error", err.Error())
				}
			case *tcell.EventResize:
				screen.Sync()
			}

		case now := <-ticker.C:
			for _, key := range hold.Expire(now) {
				if err := router.Key(key, false); err != nil {
					logger.Debug(ctx, "key release ignored", "key", key, "error", err.Error())
				}
			}
			world.Step(step.Seconds())
			stars.Advance(step.Seconds())
			surface.SetStatus(render.StatusLine(world))
			world.Draw(surface)
		}
	}
}

func releaseAll(ctx context.Context, router *control.Router, logger *logging.Logger) {
	if err := router.ReleaseAll(); err != nil {
		logger.Warn(ctx, "release failed", "error", err.Error())
	}
}

func isQuit(ev *tcell.EventKey) bool {
	return ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC
}

// keyName converts a key event into the names used by the terminal
// bindings: arrow key names and lower case runes
func keyName(ev *tcell.EventKey) (string, bool) {
	switch ev.Key() {
	case tcell.KeyUp:
		return "Up", true
	case tcell.KeyDown:
		return "Down", true
	case tcell.KeyLeft:
		return "Left", true
	case tcell.KeyRight:
		return "Right", true
	case tcell.KeyTab:
		return "Tab", true
	case tcell.KeyRune:
		return strings.ToLower(string(ev.Rune())), true
	}
	return "", false
}
