package game

import (
	"delve-roguelike/internal/component"
	"delve-roguelike/internal/gamemap"
	"delve-roguelike/internal/system"
	"delve-roguelike/internal/world"

	"github.com/gdamore/tcell/v2"
)

// Action represents a player-requested game action.
type Action uint8

const (
	ActionNone Action = iota
	ActionMoveN
	ActionMoveS
	ActionMoveE
	ActionMoveW
	ActionMoveNE
	ActionMoveNW
	ActionMoveSE
	ActionMoveSW
	ActionWait
	ActionPickup
	ActionInventory
	ActionDrop
	ActionRemove
	ActionDescend
	ActionSave
	ActionSelect
)

// keyToAction maps a tcell key event to a game action. Movement accepts
// arrow keys, vi keys and numpad digits.
func keyToAction(ev *tcell.EventKey) Action {
	switch ev.Key() {
	case tcell.KeyUp:
		return ActionMoveN
	case tcell.KeyDown:
		return ActionMoveS
	case tcell.KeyRight:
		return ActionMoveE
	case tcell.KeyLeft:
		return ActionMoveW
	case tcell.KeyHome:
		return ActionMoveNW
	case tcell.KeyPgUp:
		return ActionMoveNE
	case tcell.KeyEnd:
		return ActionMoveSW
	case tcell.KeyPgDn:
		return ActionMoveSE
	case tcell.KeyEscape:
		return ActionSave
	case tcell.KeyEnter:
		return ActionSelect
	}

	switch ev.Rune() {
	case 'k', '8':
		return ActionMoveN
	case 'j', '2':
		return ActionMoveS
	case 'l', '6':
		return ActionMoveE
	case 'h', '4':
		return ActionMoveW
	case 'y', '7':
		return ActionMoveNW
	case 'u', '9':
		return ActionMoveNE
	case 'b', '1':
		return ActionMoveSW
	case 'n', '3':
		return ActionMoveSE
	case ' ', '5':
		return ActionWait
	case 'g':
		return ActionPickup
	case 'i':
		return ActionInventory
	case 'd':
		return ActionDrop
	case 'r':
		return ActionRemove
	case '.', '>':
		return ActionDescend
	}
	return ActionNone
}

// actionToDelta converts a movement action to (dx, dy).
func actionToDelta(a Action) (int, int) {
	switch a {
	case ActionMoveN:
		return 0, -1
	case ActionMoveS:
		return 0, 1
	case ActionMoveE:
		return 1, 0
	case ActionMoveW:
		return -1, 0
	case ActionMoveNE:
		return 1, -1
	case ActionMoveNW:
		return -1, -1
	case ActionMoveSE:
		return 1, 1
	case ActionMoveSW:
		return -1, 1
	}
	return 0, 0
}

// playerInput turns one key press into an intent on the player and the
// next state. Keys that do nothing keep the game waiting for input.
func (g *Game) playerInput(ev tcell.Event) world.RunState {
	waiting := world.State(world.ModeAwaitingInput)
	key, ok := ev.(*tcell.EventKey)
	if !ok {
		return waiting
	}
	w := g.world
	action := keyToAction(key)

	switch action {
	case ActionPickup:
		return g.pickup()
	case ActionInventory:
		return world.State(world.ModeShowInventory)
	case ActionDrop:
		return world.State(world.ModeShowDropItem)
	case ActionRemove:
		return world.State(world.ModeShowRemoveItem)
	case ActionDescend:
		pos, _ := w.PlayerPosition()
		if w.Map.At(pos.X, pos.Y) == gamemap.TileDownStairs {
			return world.State(world.ModeNextLevel)
		}
		w.Log.Add("There is no way down from here.")
		return waiting
	case ActionWait:
		g.skipTurn()
		return world.State(world.ModePlayerTurn)
	case ActionSave:
		return world.State(world.ModeSaveGame)
	}

	dx, dy := actionToDelta(action)
	if dx == 0 && dy == 0 {
		return waiting
	}
	if result, _ := system.TryMove(w, w.Player, dx, dy); result == system.MoveBlocked {
		return waiting
	}
	return world.State(world.ModePlayerTurn)
}

func (g *Game) pickup() world.RunState {
	w := g.world
	pos, _ := w.PlayerPosition()
	item, ok := system.ItemAt(w, pos.X, pos.Y)
	if !ok {
		w.Log.Add("There is nothing here to pick up.")
		return world.State(world.ModeAwaitingInput)
	}
	w.WantsToPickUpItems.Insert(w.Player, component.WantsToPickUpItem{CollectedBy: w.Player, Item: item})
	return world.State(world.ModePlayerTurn)
}

// skipTurn heals the player by one point when no monster is in sight.
func (g *Game) skipTurn() {
	w := g.world
	if system.MonsterVisible(w, w.Player) {
		return
	}
	if stats := w.CombatStats.GetMut(w.Player); stats != nil {
		stats.Heal(1)
	}
}
