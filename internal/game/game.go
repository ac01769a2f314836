// Package game drives the turn state machine: it reads input, runs the
// resolution pipeline, and draws each frame.
package game

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"delve-roguelike/internal/config"
	"delve-roguelike/internal/factory"
	"delve-roguelike/internal/gamemap"
	"delve-roguelike/internal/render"
	"delve-roguelike/internal/saveload"
	"delve-roguelike/internal/system"
	"delve-roguelike/internal/world"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"
)

// Game is the top-level orchestrator for one player.
type Game struct {
	screen    tcell.Screen
	renderer  *render.Renderer
	world     *world.World
	pipeline  *system.Pipeline
	cfg       *config.Config
	templates *factory.Templates
	spawner   *factory.Spawner
	logger    *zap.Logger
	rng       *rand.Rand

	menuSelection int
	cursor        gamemap.Point
	runLog        RunLog
}

// New creates a Game on an initialised screen. The game starts at the main
// menu; nothing is generated until a run begins.
func New(screen tcell.Screen, cfg *config.Config, logger *zap.Logger) (*Game, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	templates, err := factory.LoadTemplates(cfg.Spawn.Table)
	if err != nil {
		return nil, fmt.Errorf("load spawn table: %w", err)
	}
	seed := cfg.Game.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))
	logger.Debug("game created", zap.Int64("seed", seed), zap.String("save", cfg.Game.SavePath))

	g := &Game{
		screen:    screen,
		renderer:  render.NewRenderer(screen),
		pipeline:  system.NewPipeline(),
		cfg:       cfg,
		templates: templates,
		spawner:   factory.NewSpawner(templates, cfg),
		logger:    logger,
		rng:       rng,
	}
	g.world = g.newWorld()
	return g, nil
}

// World exposes the simulation state.
func (g *Game) World() *world.World { return g.world }

func (g *Game) newWorld() *world.World {
	w := world.New(g.rng, g.logger)
	w.Log = world.NewGameLog(g.cfg.Game.MaxLog)
	return w
}

// Run is the main loop. It blocks on input only while the state machine
// waits for the player and returns when the player quits, the screen is
// finalised, or ctx is cancelled.
func (g *Game) Run(ctx context.Context) error {
	for {
		if ctx.Err() != nil {
			return nil
		}
		var ev tcell.Event
		if g.needsInput() {
			g.draw()
			ev = g.screen.PollEvent()
			if ev == nil {
				return nil
			}
			if _, ok := ev.(*tcell.EventResize); ok {
				g.screen.Sync()
				g.renderer.Resize()
				continue
			}
		}
		quit, err := g.Step(ev)
		if err != nil {
			return err
		}
		if quit {
			return nil
		}
	}
}

// needsInput reports whether the current state waits for an event.
func (g *Game) needsInput() bool {
	return !g.world.RunState.RunsPipeline() &&
		g.world.RunState.Mode != world.ModeSaveGame &&
		g.world.RunState.Mode != world.ModeNextLevel
}

// Step advances the state machine once. ev is the input event for states
// that wait on the player and is ignored otherwise. quit is true when the
// player chose to leave.
func (g *Game) Step(ev tcell.Event) (quit bool, err error) {
	if key, ok := ev.(*tcell.EventKey); ok && key.Key() == tcell.KeyCtrlC {
		return true, nil
	}
	prev := g.world.RunState
	next := prev

	switch prev.Mode {
	case world.ModePreRun:
		next = g.runPass(world.State(world.ModeAwaitingInput))
	case world.ModeAwaitingInput:
		next = g.playerInput(ev)
	case world.ModePlayerTurn:
		g.runLog.Turns++
		next = g.runPass(world.State(world.ModeMonsterTurn))
	case world.ModeMonsterTurn:
		next = g.runPass(world.State(world.ModeAwaitingInput))
	case world.ModeShowInventory:
		next = g.inventoryInput(ev)
	case world.ModeShowDropItem:
		next = g.dropInput(ev)
	case world.ModeShowRemoveItem:
		next = g.removeInput(ev)
	case world.ModeShowTargeting:
		next = g.targetingInput(ev, prev)
	case world.ModeSaveGame:
		g.saveGame()
		next = world.State(world.ModeMainMenu)
	case world.ModeNextLevel:
		if err := g.nextLevel(); err != nil {
			return false, err
		}
		next = world.State(world.ModePreRun)
	case world.ModeGameOver:
		if _, ok := ev.(*tcell.EventKey); ok {
			next = world.State(world.ModeMainMenu)
		}
	case world.ModeMainMenu:
		next, quit, err = g.mainMenuInput(ev)
		if err != nil || quit {
			return quit, err
		}
	}

	if next != prev {
		g.logger.Debug("state transition",
			zap.Stringer("from", prev), zap.Stringer("to", next))
	}
	if next.Mode == world.ModeMainMenu && prev.Mode != world.ModeMainMenu {
		g.menuSelection = 0
	}
	g.world.RunState = next
	return false, nil
}

// runPass runs the pipeline once and returns next, or GameOver when the
// player died during the pass.
func (g *Game) runPass(next world.RunState) world.RunState {
	before := g.world.Monsters.Len()
	report := g.pipeline.Run(g.world)
	g.runLog.Kills += max(0, before-g.world.Monsters.Len())
	if report.PlayerDied {
		g.gameOver()
		return world.State(world.ModeGameOver)
	}
	return next
}

// newGame throws away the current world and starts a fresh run at depth 1.
func (g *Game) newGame() error {
	g.world = g.newWorld()
	g.runLog = newRunLog()
	if err := g.buildLevel(); err != nil {
		return err
	}
	g.world.Log.Add("Welcome to Delve!")
	g.logger.Info("new game started")
	return nil
}

// loadGame restores the saved run and deletes the save file.
func (g *Game) loadGame() error {
	path := g.cfg.Game.SavePath
	w := g.newWorld()
	if err := saveload.Load(w, path); err != nil {
		g.logger.Error("load failed", zap.String("path", path), zap.Error(err))
		return err
	}
	if err := saveload.Delete(path); err != nil {
		g.logger.Warn("could not delete save after load", zap.String("path", path), zap.Error(err))
	}
	g.world = w
	g.runLog = newRunLog()
	g.runLog.Depth = w.Depth
	w.Log.Add("Welcome back to %s.", g.templates.LevelName(w.Depth))
	return nil
}

func (g *Game) saveGame() {
	path := g.cfg.Game.SavePath
	if err := saveload.Save(g.world, path); err != nil {
		g.logger.Error("save failed", zap.String("path", path), zap.Error(err))
		g.world.Log.Add("Could not save the game.")
		return
	}
	g.runLog.Result = "saved"
	g.writeRunLog()
}

// gameOver ends the run: the save file is removed and the run recorded.
func (g *Game) gameOver() {
	if err := saveload.Delete(g.cfg.Game.SavePath); err != nil {
		g.logger.Warn("could not delete save", zap.Error(err))
	}
	g.runLog.Result = "died"
	g.logger.Info("player died", zap.Int("depth", g.world.Depth), zap.Int("turns", g.runLog.Turns))
	g.writeRunLog()
}

func (g *Game) writeRunLog() {
	g.runLog.Depth = max(g.runLog.Depth, g.world.Depth)
	g.runLog.Ended = time.Now()
	if err := appendRunLog(g.cfg.Game.RunLog, g.runLog); err != nil {
		g.logger.Warn("could not record run", zap.Error(err))
	}
}

// draw renders the frame for the current state.
func (g *Game) draw() {
	w := g.world
	switch w.RunState.Mode {
	case world.ModeMainMenu:
		g.renderer.DrawMainMenu("Delve", choiceLabels(g.mainMenuChoices()), g.menuSelection)
	case world.ModeGameOver:
		g.renderer.DrawGameOver(w.Depth)
	default:
		g.renderer.DrawFrame(w)
		switch w.RunState.Mode {
		case world.ModeShowInventory:
			g.renderer.DrawItemMenu("Inventory", g.names(w.Backpack(w.Player)))
		case world.ModeShowDropItem:
			g.renderer.DrawItemMenu("Drop Which Item?", g.names(w.Backpack(w.Player)))
		case world.ModeShowRemoveItem:
			g.renderer.DrawItemMenu("Remove Which Item?", g.names(w.EquippedBy(w.Player)))
		case world.ModeShowTargeting:
			g.renderer.DrawTargeting(w, w.RunState.Range, g.cursor)
		}
	}
	g.renderer.Show()
}
