// pkg/render/engo/scene.go
package engo

import (
	"context"
	"image/color"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-shmup/pkg/control"
	"github.com/opd-ai/go-shmup/pkg/engine"
	"github.com/opd-ai/go-shmup/pkg/logging"
	"github.com/opd-ai/go-shmup/pkg/render"
)

// maxCatchUp bounds the steps run in one frame after a stall
const maxCatchUp = 5

// SimulationSystem steps the world at a fixed rate and draws it
type SimulationSystem struct {
	world    *engine.World
	surface  *EngoRenderer
	camera   *Camera
	step     float64
	residual float64
}

// NewSimulationSystem steps world every 1/fps seconds
func NewSimulationSystem(world *engine.World, surface *EngoRenderer, camera *Camera, fps int) *SimulationSystem {
	return &SimulationSystem{
		world:   world,
		surface: surface,
		camera:  camera,
		step:    1 / float64(max(fps, 1)),
	}
}

// Remove satisfies the ecs.System interface
func (s *SimulationSystem) Remove(basic ecs.BasicEntity) {}

// Update runs as many fixed steps as dt covers and redraws
func (s *SimulationSystem) Update(dt float32) {
	s.residual += float64(dt)
	steps := 0
	for s.residual >= s.step && steps < maxCatchUp {
		s.world.Step(s.step)
		s.residual -= s.step
		steps++
	}
	if steps == maxCatchUp {
		s.residual = 0
	}

	s.camera.Update(float64(dt))
	s.world.Draw(s.surface)
}

// GameScene is the windowed game: a backdrop, the world's sprites and a
// HUD, driven by the keyboard
type GameScene struct {
	World  *engine.World
	Router *control.Router
	FPS    int
	Stars  *render.Starfield

	Logger *logging.Logger
	Ctx    context.Context

	assets *AssetManager
	camera *Camera
	hud    *HUDSystem
}

// NewGameScene creates a scene for world
func NewGameScene(ctx context.Context, world *engine.World, router *control.Router, fps int, logger *logging.Logger) *GameScene {
	seed, _ := world.Config.SeedValue()
	return &GameScene{
		World:  world,
		Router: router,
		FPS:    fps,
		Stars:  render.NewStarfield(int64(seed)),
		Logger: logger,
		Ctx:    ctx,
		assets: NewAssetManager(),
	}
}

// Type returns the scene type (required by Engo)
func (scene *GameScene) Type() string {
	return "GameScene"
}

// Preload draws the sprite images (required by Engo)
func (scene *GameScene) Preload() {
	scene.assets.Prepare(scene.Stars, int(scene.World.Field.Width), int(scene.World.Field.Height))
	if unknown := SetupInputBindings(scene.Router.Bindings()); len(unknown) > 0 {
		scene.Logger.Warn(scene.Ctx, "keys without an engo code", "keys", unknown)
	}
}

// Setup builds the systems when the scene starts (required by Engo)
func (scene *GameScene) Setup(u engo.Updater) {
	world, _ := u.(*ecs.World)
	common.SetBackground(color.Black)

	rs := &common.RenderSystem{}
	world.AddSystem(rs)

	if err := scene.assets.LoadAssets(); err != nil {
		scene.Logger.Error(scene.Ctx, "asset upload failed", err)
		engo.Exit()
		return
	}
	scene.addBackdrop(rs)

	scene.camera = NewCamera(nil)
	scene.camera.Attach(scene.World.EventBus)
	surface := NewEngoRenderer(rs, scene.assets, scene.camera)

	world.AddSystem(NewInputSystem(scene.Ctx, scene.Router, scene.Logger))
	world.AddSystem(NewSimulationSystem(scene.World, surface, scene.camera, scene.FPS))

	scene.hud = NewHUDSystem(func() []string { return render.StatusLines(scene.World) })
	if font, err := LoadHUDFont(14); err != nil {
		scene.Logger.Warn(scene.Ctx, "hud disabled", "error", err.Error())
	} else {
		scene.hud.Attach(rs, font)
	}
	world.AddSystem(scene.hud)

	scene.Logger.Info(scene.Ctx, "scene started", "players", len(scene.World.Players), "fps", scene.FPS)
}

// addBackdrop puts the starfield behind everything else
func (scene *GameScene) addBackdrop(rs *common.RenderSystem) {
	bg := scene.assets.Background()
	if bg == nil {
		return
	}
	backdrop := struct {
		ecs.BasicEntity
		common.RenderComponent
		common.SpaceComponent
	}{BasicEntity: ecs.NewBasic()}
	backdrop.Drawable = bg
	backdrop.Width = float32(scene.World.Field.Width)
	backdrop.Height = float32(scene.World.Field.Height)
	backdrop.RenderComponent.SetZIndex(backdropZ)
	rs.Add(&backdrop.BasicEntity, &backdrop.RenderComponent, &backdrop.SpaceComponent)
}

// Exit releases held keys and detaches from the world (required by Engo)
func (scene *GameScene) Exit() {
	if err := scene.Router.ReleaseAll(); err != nil {
		scene.Logger.Warn(scene.Ctx, "release on exit failed", "error", err.Error())
	}
	if scene.camera != nil {
		scene.camera.Detach(scene.World.EventBus)
	}
	scene.Logger.Info(scene.Ctx, "scene exited", "tick", scene.World.CurrentTick)
}

// RunOptions returns the engo window options for a playfield of the given
// size
func RunOptions(title string, width, height float64, fullscreen bool, fps int) engo.RunOptions {
	return engo.RunOptions{
		Title:          title,
		Width:          int(width),
		Height:         int(height),
		Fullscreen:     fullscreen,
		FPSLimit:       fps,
		StandardInputs: false,
		NotResizable:   true,
	}
}
