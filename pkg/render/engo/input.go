// pkg/render/engo/input.go
package engo

import (
	"context"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"

	"github.com/opd-ai/go-shmup/pkg/control"
	"github.com/opd-ai/go-shmup/pkg/logging"
)

// keyCodes maps binding key names to engo keys
var keyCodes = map[string]engo.Key{
	"Up":         engo.KeyArrowUp,
	"Down":       engo.KeyArrowDown,
	"Left":       engo.KeyArrowLeft,
	"Right":      engo.KeyArrowRight,
	"RightCtrl":  engo.KeyRightControl,
	"RightShift": engo.KeyRightShift,
	"LeftCtrl":   engo.KeyLeftControl,
	"LeftShift":  engo.KeyLeftShift,
	"Tab":        engo.KeyTab,
	"Space":      engo.KeySpace,
	"W":          engo.KeyW,
	"A":          engo.KeyA,
	"S":          engo.KeyS,
	"D":          engo.KeyD,
	"Q":          engo.KeyQ,
	"E":          engo.KeyE,
}

// quitButton ends the game
const quitButton = "quit"

// buttonSource is the slice of engo.Input the input system reads
type buttonSource interface {
	JustPressed(name string) bool
	JustReleased(name string) bool
}

// engoButtons reads the global engo input manager
type engoButtons struct{}

func (engoButtons) JustPressed(name string) bool  { return engo.Input.Button(name).JustPressed() }
func (engoButtons) JustReleased(name string) bool { return engo.Input.Button(name).JustReleased() }

// InputSystem forwards key presses and releases to the router each frame
type InputSystem struct {
	router  *control.Router
	buttons buttonSource
	keys    []string
	logger  *logging.Logger
	ctx     context.Context
}

// NewInputSystem creates an input system for the keys bound in router
func NewInputSystem(ctx context.Context, router *control.Router, logger *logging.Logger) *InputSystem {
	return &InputSystem{
		router:  router,
		buttons: engoButtons{},
		keys:    router.Bindings().Keys(),
		logger:  logger,
		ctx:     ctx,
	}
}

// Remove satisfies the ecs.System interface
func (is *InputSystem) Remove(basic ecs.BasicEntity) {}

// Update dispatches this frame's key transitions
func (is *InputSystem) Update(dt float32) {
	for _, key := range is.keys {
		if is.buttons.JustPressed(key) {
			is.dispatch(key, true)
		}
		if is.buttons.JustReleased(key) {
			is.dispatch(key, false)
		}
	}
	if is.buttons.JustPressed(quitButton) {
		if err := is.router.ReleaseAll(); err != nil {
			is.logger.Warn(is.ctx, "release on quit failed", "error", err.Error())
		}
		engo.Exit()
	}
}

func (is *InputSystem) dispatch(key string, pressed bool) {
	if err := is.router.Key(key, pressed); err != nil {
		is.logger.Debug(is.ctx, "key ignored", "key", key, "pressed", pressed, "error", err.Error())
	}
}

// SetupInputBindings registers one engo button per bound key, named after
// the key, plus Escape to quit. Keys engo has no code for are skipped and
// returned.
func SetupInputBindings(bindings control.Bindings) []string {
	var unknown []string
	for _, key := range bindings.Keys() {
		code, ok := keyCodes[key]
		if !ok {
			unknown = append(unknown, key)
			continue
		}
		engo.Input.RegisterButton(key, code)
	}
	engo.Input.RegisterButton(quitButton, engo.KeyEscape)
	return unknown
}
