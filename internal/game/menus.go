package game

import (
	"delve-roguelike/internal/component"
	"delve-roguelike/internal/ecs"
	"delve-roguelike/internal/gamemap"
	"delve-roguelike/internal/render"
	"delve-roguelike/internal/saveload"
	"delve-roguelike/internal/world"

	"github.com/gdamore/tcell/v2"
)

// menuResult is the outcome of a key press in an item menu.
type menuResult uint8

const (
	menuNoResponse menuResult = iota
	menuCancel
	menuSelected
)

// itemMenuKey resolves a letter-indexed choice from options. Only the first
// render.MaxMenuOptions options have a letter.
func itemMenuKey(ev tcell.Event, options []ecs.EntityID) (menuResult, ecs.EntityID) {
	key, ok := ev.(*tcell.EventKey)
	if !ok {
		return menuNoResponse, ecs.NilEntity
	}
	if key.Key() == tcell.KeyEscape {
		return menuCancel, ecs.NilEntity
	}
	if key.Key() != tcell.KeyRune {
		return menuNoResponse, ecs.NilEntity
	}
	i := int(key.Rune() - 'a')
	if i < 0 || i >= min(len(options), render.MaxMenuOptions) {
		return menuNoResponse, ecs.NilEntity
	}
	return menuSelected, options[i]
}

// names returns the display name of every entity in ids.
func (g *Game) names(ids []ecs.EntityID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = g.world.Name(id)
	}
	return out
}

func (g *Game) inventoryInput(ev tcell.Event) world.RunState {
	w := g.world
	res, item := itemMenuKey(ev, w.Backpack(w.Player))
	switch res {
	case menuCancel:
		return world.State(world.ModeAwaitingInput)
	case menuSelected:
		if ranged, ok := w.Rangeds.Get(item); ok {
			pos, _ := w.PlayerPosition()
			g.cursor = pos.Point()
			return world.Targeting(ranged.Range, item)
		}
		w.WantsToUseItems.Insert(w.Player, component.WantsToUseItem{Item: item})
		return world.State(world.ModePlayerTurn)
	}
	return w.RunState
}

func (g *Game) dropInput(ev tcell.Event) world.RunState {
	w := g.world
	res, item := itemMenuKey(ev, w.Backpack(w.Player))
	switch res {
	case menuCancel:
		return world.State(world.ModeAwaitingInput)
	case menuSelected:
		w.WantsToDropItems.Insert(w.Player, component.WantsToDropItem{Item: item})
		return world.State(world.ModePlayerTurn)
	}
	return w.RunState
}

func (g *Game) removeInput(ev tcell.Event) world.RunState {
	w := g.world
	res, item := itemMenuKey(ev, w.EquippedBy(w.Player))
	switch res {
	case menuCancel:
		return world.State(world.ModeAwaitingInput)
	case menuSelected:
		w.WantsToRemoveItems.Insert(w.Player, component.WantsToRemoveItem{Item: item})
		return world.State(world.ModePlayerTurn)
	}
	return w.RunState
}

// validTarget reports whether p is in the player's view and within rng.
func (g *Game) validTarget(p gamemap.Point, rng int) bool {
	w := g.world
	pos, ok := w.PlayerPosition()
	if !ok {
		return false
	}
	vs, ok := w.Viewsheds.Get(w.Player)
	if !ok || !vs.CanSee(p) {
		return false
	}
	return world.Distance(pos, component.Position{X: p.X, Y: p.Y}) <= float64(rng)
}

// targetingInput moves the targeting cursor with the movement keys or the
// mouse. Enter or a left click on a valid tile uses the item there.
func (g *Game) targetingInput(ev tcell.Event, state world.RunState) world.RunState {
	w := g.world
	switch ev := ev.(type) {
	case *tcell.EventMouse:
		x, y := g.renderer.ScreenToWorld(ev.Position())
		g.cursor = gamemap.Point{
			X: max(0, min(x, w.Map.Width-1)),
			Y: max(0, min(y, w.Map.Height-1)),
		}
		if ev.Buttons()&tcell.Button1 == 0 {
			return state
		}
	case *tcell.EventKey:
		action := keyToAction(ev)
		if action == ActionSave {
			return world.State(world.ModeAwaitingInput)
		}
		if dx, dy := actionToDelta(action); dx != 0 || dy != 0 {
			next := gamemap.Point{X: g.cursor.X + dx, Y: g.cursor.Y + dy}
			if w.Map.InBounds(next.X, next.Y) {
				g.cursor = next
			}
			return state
		}
		if action != ActionSelect {
			return state
		}
	default:
		return state
	}

	if !g.validTarget(g.cursor, state.Range) {
		w.Log.Add("Invalid target.")
		return state
	}
	target := g.cursor
	w.WantsToUseItems.Insert(w.Player, component.WantsToUseItem{Item: state.Item, Target: &target})
	return world.State(world.ModePlayerTurn)
}

// menuChoice is one entry of the main menu.
type menuChoice uint8

const (
	choiceNewGame menuChoice = iota
	choiceLoadGame
	choiceQuit
)

func (c menuChoice) String() string {
	switch c {
	case choiceNewGame:
		return "Begin New Game"
	case choiceLoadGame:
		return "Load Game"
	default:
		return "Quit"
	}
}

// mainMenuChoices lists the menu entries; loading is offered only when a
// save exists.
func (g *Game) mainMenuChoices() []menuChoice {
	if saveload.Exists(g.cfg.Game.SavePath) {
		return []menuChoice{choiceNewGame, choiceLoadGame, choiceQuit}
	}
	return []menuChoice{choiceNewGame, choiceQuit}
}

func choiceLabels(choices []menuChoice) []string {
	out := make([]string, len(choices))
	for i, c := range choices {
		out[i] = c.String()
	}
	return out
}

func (g *Game) mainMenuInput(ev tcell.Event) (world.RunState, bool, error) {
	stay := world.State(world.ModeMainMenu)
	key, ok := ev.(*tcell.EventKey)
	if !ok {
		return stay, false, nil
	}
	choices := g.mainMenuChoices()
	g.menuSelection = min(g.menuSelection, len(choices)-1)

	switch keyToAction(key) {
	case ActionMoveN:
		g.menuSelection = (g.menuSelection + len(choices) - 1) % len(choices)
		return stay, false, nil
	case ActionMoveS:
		g.menuSelection = (g.menuSelection + 1) % len(choices)
		return stay, false, nil
	case ActionSave:
		return stay, true, nil
	case ActionSelect:
	default:
		return stay, false, nil
	}

	switch choices[g.menuSelection] {
	case choiceNewGame:
		if err := g.newGame(); err != nil {
			return stay, false, err
		}
	case choiceLoadGame:
		if err := g.loadGame(); err != nil {
			return stay, false, err
		}
	default:
		return stay, true, nil
	}
	return world.State(world.ModePreRun), false, nil
}
