package main

import (
	"fmt"
	"image/color"
	"log"
	"path/filepath"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"golang.org/x/image/colornames"

	"github.com/milk9111/platformer/collision"
	"github.com/milk9111/platformer/common"
	"github.com/milk9111/platformer/config"
	"github.com/milk9111/platformer/controller"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/ecs/system"
	"github.com/milk9111/platformer/juice"
	"github.com/milk9111/platformer/levels"
	"github.com/milk9111/platformer/prefabs"
)

// killMargin is how far below the level the respawn plane sits.
const killMargin = 10

var background = color.RGBA{R: 0x1b, G: 0x1d, B: 0x2b, A: 0xff}

type Game struct {
	cfg    config.Config
	level  *levels.Level
	world  *ecs.World
	sched  *ecs.Scheduler
	input  *system.InputSystem
	render *system.RenderSystem
	player ecs.Entity

	watcher *prefabs.Watcher
	ui      *ebitenui.UI
	paused  bool
	quit    bool
}

func NewGame(cfg config.Config) (*Game, error) {
	lvl, err := levels.Load(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("%w (embedded levels: %v)", err, levels.Names())
	}
	spec, err := prefabs.LoadPlayerSpec()
	if err != nil {
		return nil, err
	}

	solids := lvl.Solids()
	var ground controller.Ground
	render := system.NewRenderSystem(solids)
	switch cfg.Ground {
	case config.GroundBoxes:
		ground = collision.NewBoxes(solids, collision.DefaultCellSize)
	default:
		space := collision.NewSpace(solids)
		render.SetDebugSpace(space)
		ground = space
	}
	render.Debug = cfg.Debug

	g := &Game{cfg: cfg, level: lvl, world: ecs.NewWorld(), render: render}
	if err := g.spawnPlayer(ground, spec); err != nil {
		return nil, err
	}
	g.spawnCamera()

	if err := system.ApplyScript(g.world, spec.Script); err != nil {
		log.Printf("juice: %v; using built-in reactions", err)
	}

	var events <-chan prefabs.Change
	var errs <-chan error
	if cfg.Watch {
		w, err := prefabs.NewWatcher(prefabs.Dir, filepath.Join(prefabs.Dir, "scripts"))
		if err != nil {
			log.Printf("prefabs: hot reload disabled: %v", err)
		} else {
			g.watcher = w
			events, errs = w.Events, w.Errors
		}
	}

	dt := cfg.Dt()
	g.input = system.NewInputSystem()
	g.sched = ecs.NewScheduler(
		g.input,
		system.NewControllerSystem(dt),
		system.NewRespawnSystem(lvl.Bounds().Min().Y-killMargin),
		system.NewJuiceSystem(dt),
		system.NewParticleSystem(dt),
		system.NewTTLSystem(),
		system.NewCameraSystem(common.BaseWidth, common.BaseHeight),
		system.NewHotReloadSystem(events, errs, spec.Script),
	)
	render.SetScheduler(g.sched)
	g.ui = NewPauseUI(g)
	return g, nil
}

func (g *Game) spawnPlayer(ground controller.Ground, spec *prefabs.PlayerSpec) error {
	tuning := spec.Controller.Tuning()
	// the level marks the feet; the controller is placed by its center
	spawn := g.level.Spawn().Add(common.V(0, tuning.Size.Y/2+0.05)).Sub(tuning.Offset)
	c, err := controller.New(ground, spawn, tuning)
	if err != nil {
		return fmt.Errorf("player: %w", err)
	}

	e := ecs.CreateEntity(g.world)
	add := []error{
		ecs.Add(g.world, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{}),
		ecs.Add(g.world, e, component.InputComponent.Kind(), &component.Input{}),
		ecs.Add(g.world, e, component.KinematicComponent.Kind(), &component.Kinematic{Controller: c}),
		ecs.Add(g.world, e, component.SpawnComponent.Kind(), &component.Spawn{Position: spawn}),
		ecs.Add(g.world, e, component.BodyComponent.Kind(), &component.Body{Color: spec.Render.BodyColor(colornames.Gold)}),
		ecs.Add(g.world, e, component.JuiceComponent.Kind(), &component.Juice{
			State:     juice.NewState(spec.Juice.Config()),
			Reactor:   juice.DefaultReactor{},
			DustColor: spec.Render.DustColor(colornames.Lightgray),
		}),
	}
	for _, err := range add {
		if err != nil {
			return fmt.Errorf("player: %w", err)
		}
	}
	g.player = e
	return nil
}

func (g *Game) spawnCamera() {
	e := ecs.CreateEntity(g.world)
	cam := &component.Camera{
		Zoom:       1,
		Smoothness: 0.15,
		Limits:     g.level.Bounds(),
		Snap:       true,
	}
	if err := ecs.Add(g.world, e, component.CameraComponent.Kind(), cam); err != nil {
		panic("game: add camera: " + err.Error())
	}
}

// Controller returns the player's controller.
func (g *Game) Controller() *controller.Controller {
	k, ok := ecs.Get(g.world, g.player, component.KinematicComponent.Kind())
	if !ok {
		return nil
	}
	return k.Controller
}

func (g *Game) SetPaused(paused bool) {
	if g.paused && !paused {
		// a jump held while paused must not fire on resume
		g.input.Reset(g.world)
	}
	g.paused = paused
}

func (g *Game) ResetPlayer() {
	system.Respawn(g.world, g.player)
	g.SetPaused(false)
}

func (g *Game) Quit() { g.quit = true }

func (g *Game) Update() error {
	if g.quit {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.SetPaused(!g.paused)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		g.render.Debug = !g.render.Debug
	}
	if g.paused {
		g.ui.Update()
		return nil
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		system.Respawn(g.world, g.player)
	}

	g.sched.Update(g.world)
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(background)
	g.render.Draw(g.world, screen)
	if g.paused {
		g.ui.Draw(screen)
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}

func (g *Game) Close() {
	if g.watcher != nil {
		if err := g.watcher.Close(); err != nil {
			log.Printf("prefabs: close watcher: %v", err)
		}
	}
}
