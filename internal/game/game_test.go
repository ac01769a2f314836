package game

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"delve-roguelike/internal/component"
	"delve-roguelike/internal/config"
	"delve-roguelike/internal/ecs"
	"delve-roguelike/internal/factory"
	"delve-roguelike/internal/gamemap"
	"delve-roguelike/internal/saveload"
	"delve-roguelike/internal/world"

	"github.com/gdamore/tcell/v2"
)

func key(r rune) *tcell.EventKey { return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone) }

func special(k tcell.Key) *tcell.EventKey { return tcell.NewEventKey(k, 0, tcell.ModNone) }

// newTestGame builds a game on a simulation screen whose save and run log
// live in a temp dir.
func newTestGame(t *testing.T) *Game {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatalf("init screen: %v", err)
	}
	s.SetSize(100, 60)
	t.Cleanup(s.Fini)

	dir := t.TempDir()
	cfg := config.Defaults()
	cfg.Game.Seed = 42
	cfg.Game.SavePath = filepath.Join(dir, "save.json")
	cfg.Game.RunLog = filepath.Join(dir, "runs.jsonl")
	g, err := New(s, cfg, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return g
}

// arena replaces the game world with a walled 20×20 room holding only the
// player at (5,5), ready for a PreRun pass.
func arena(t *testing.T, g *Game) *world.World {
	t.Helper()
	w := g.newWorld()
	m := gamemap.New(20, 20)
	for y := 1; y < 19; y++ {
		for x := 1; x < 19; x++ {
			m.Set(x, y, gamemap.TileFloor)
		}
	}
	m.Rooms = []gamemap.Rect{gamemap.NewRect(0, 0, 18, 18)}
	m.PopulateBlocked()
	w.Map = m
	factory.NewPlayer(w, 5, 5, g.cfg.Player, g.templates.Player)
	w.RunState = world.State(world.ModePreRun)
	g.world = w
	g.runLog = newRunLog()
	return w
}

func goblin(t *testing.T, g *Game, x, y int) ecs.EntityID {
	t.Helper()
	for _, m := range g.templates.Monsters {
		if m.Name == "Goblin" {
			return factory.NewMonster(g.world, m, x, y, 8)
		}
	}
	t.Fatal("no goblin template")
	return ecs.NilEntity
}

func carried(t *testing.T, g *Game, name string) ecs.EntityID {
	t.Helper()
	tpl, ok := g.templates.Item(name)
	if !ok {
		t.Fatalf("no item %q", name)
	}
	return factory.NewCarriedItem(g.world, tpl, g.world.Player)
}

func step(t *testing.T, g *Game, ev tcell.Event) world.Mode {
	t.Helper()
	quit, err := g.Step(ev)
	if err != nil {
		t.Fatalf("Step: %v", err)
	}
	if quit {
		t.Fatal("unexpected quit")
	}
	return g.world.RunState.Mode
}

func lastLog(w *world.World) string {
	l := w.Log.Last(1)
	if len(l) == 0 {
		return ""
	}
	return l[0]
}

func TestKeyToAction(t *testing.T) {
	cases := []struct {
		name string
		ev   *tcell.EventKey
		want Action
	}{
		{"arrow up", special(tcell.KeyUp), ActionMoveN},
		{"vi y", key('y'), ActionMoveNW},
		{"numpad 3", key('3'), ActionMoveSE},
		{"page down", special(tcell.KeyPgDn), ActionMoveSE},
		{"space", key(' '), ActionWait},
		{"numpad 5", key('5'), ActionWait},
		{"pickup", key('g'), ActionPickup},
		{"descend", key('>'), ActionDescend},
		{"period", key('.'), ActionDescend},
		{"escape", special(tcell.KeyEscape), ActionSave},
		{"unmapped", key('z'), ActionNone},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := keyToAction(tc.ev); got != tc.want {
				t.Errorf("keyToAction = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestNewGameFromMainMenu(t *testing.T) {
	g := newTestGame(t)
	if g.world.RunState.Mode != world.ModeMainMenu {
		t.Fatalf("initial state = %v, want MainMenu", g.world.RunState)
	}
	if got := step(t, g, special(tcell.KeyEnter)); got != world.ModePreRun {
		t.Fatalf("after Begin New Game state = %v", got)
	}
	w := g.world
	if !w.ECS.Alive(w.Player) || w.Map == nil || w.Depth != 1 {
		t.Fatal("new game should create a map and a player at depth 1")
	}
	if got := step(t, g, nil); got != world.ModeAwaitingInput {
		t.Fatalf("after PreRun state = %v", got)
	}
	pos, _ := w.PlayerPosition()
	if !w.Map.Visible[w.Map.Index(pos.X, pos.Y)] {
		t.Fatal("player tile should be visible after the first pass")
	}
}

func TestMainMenuQuit(t *testing.T) {
	g := newTestGame(t)
	step(t, g, special(tcell.KeyDown)) // no save: New, Quit
	quit, err := g.Step(special(tcell.KeyEnter))
	if err != nil || !quit {
		t.Fatalf("Quit should stop the game: quit=%v err=%v", quit, err)
	}
}

func TestUnmappedKeyKeepsWaiting(t *testing.T) {
	g := newTestGame(t)
	w := arena(t, g)
	step(t, g, nil)
	if got := step(t, g, key('z')); got != world.ModeAwaitingInput {
		t.Fatalf("state = %v, want AwaitingInput", got)
	}
	if w.WantsToMelees.Len()+w.WantsToUseItems.Len()+w.WantsToPickUpItems.Len() != 0 {
		t.Fatal("an unmapped key must not produce an intent")
	}
}

func TestWalkingIntoWallCostsNoTurn(t *testing.T) {
	g := newTestGame(t)
	w := arena(t, g)
	pos := w.Positions.GetMut(w.Player)
	pos.X, pos.Y = 1, 1
	step(t, g, nil)
	if got := step(t, g, key('h')); got != world.ModeAwaitingInput {
		t.Fatalf("state = %v, want AwaitingInput", got)
	}
	if got := step(t, g, key('l')); got != world.ModePlayerTurn {
		t.Fatalf("state = %v, want PlayerTurn", got)
	}
	if p, _ := w.PlayerPosition(); p.X != 2 {
		t.Fatalf("player at %v, want x=2", p)
	}
}

func TestBumpMonsterQueuesMelee(t *testing.T) {
	g := newTestGame(t)
	w := arena(t, g)
	gob := goblin(t, g, 6, 5)
	step(t, g, nil)

	if got := step(t, g, key('l')); got != world.ModePlayerTurn {
		t.Fatalf("state = %v, want PlayerTurn", got)
	}
	melee, ok := w.WantsToMelees.Get(w.Player)
	if !ok || melee.Target != gob {
		t.Fatalf("expected WantsToMelee on the goblin, got %+v ok=%v", melee, ok)
	}
	if p, _ := w.PlayerPosition(); p.X != 5 {
		t.Fatal("attacking must not move the player")
	}
	step(t, g, nil)
	if w.WantsToMelees.Has(w.Player) {
		t.Fatal("intent should be cleared by the pass")
	}
	if g.runLog.Turns != 1 {
		t.Fatalf("turns = %d, want 1", g.runLog.Turns)
	}
}

func TestPickupNothingHere(t *testing.T) {
	g := newTestGame(t)
	w := arena(t, g)
	step(t, g, nil)
	if got := step(t, g, key('g')); got != world.ModeAwaitingInput {
		t.Fatalf("state = %v", got)
	}
	if lastLog(w) != "There is nothing here to pick up." {
		t.Fatalf("log = %q", lastLog(w))
	}
}

func TestPickupItemUnderPlayer(t *testing.T) {
	g := newTestGame(t)
	w := arena(t, g)
	tpl, _ := g.templates.Item("Health Potion")
	potion := factory.NewItem(w, tpl, 5, 5)
	step(t, g, nil)

	if got := step(t, g, key('g')); got != world.ModePlayerTurn {
		t.Fatalf("state = %v", got)
	}
	step(t, g, nil)
	if !w.OwnedBy(potion, w.Player) || w.Positions.Has(potion) {
		t.Fatal("potion should be in the backpack")
	}
}

func TestSkipTurnHealsOnlyWhenAlone(t *testing.T) {
	g := newTestGame(t)
	w := arena(t, g)
	w.CombatStats.GetMut(w.Player).HP = 10
	step(t, g, nil)
	step(t, g, key(' '))
	if hp := w.CombatStats.GetMut(w.Player).HP; hp != 11 {
		t.Fatalf("hp = %d, want 11 after resting alone", hp)
	}

	w.RunState = world.State(world.ModePreRun)
	goblin(t, g, 9, 9)
	step(t, g, nil)
	step(t, g, key(' '))
	if hp := w.CombatStats.GetMut(w.Player).HP; hp != 11 {
		t.Fatalf("hp = %d; resting with a monster in view must not heal", hp)
	}
}

func TestInventoryUseAndCancel(t *testing.T) {
	g := newTestGame(t)
	w := arena(t, g)
	potion := carried(t, g, "Health Potion")
	step(t, g, nil)

	if got := step(t, g, key('i')); got != world.ModeShowInventory {
		t.Fatalf("state = %v", got)
	}
	if got := step(t, g, key('q')); got != world.ModeShowInventory {
		t.Fatalf("letter outside the list should keep the menu open, got %v", got)
	}
	if got := step(t, g, special(tcell.KeyEscape)); got != world.ModeAwaitingInput {
		t.Fatalf("escape should cancel, got %v", got)
	}
	step(t, g, key('i'))
	if got := step(t, g, key('a')); got != world.ModePlayerTurn {
		t.Fatalf("state = %v", got)
	}
	use, ok := w.WantsToUseItems.Get(w.Player)
	if !ok || use.Item != potion || use.Target != nil {
		t.Fatalf("use intent = %+v ok=%v", use, ok)
	}
}

func TestRangedItemGoesThroughTargeting(t *testing.T) {
	g := newTestGame(t)
	w := arena(t, g)
	scroll := carried(t, g, "Magic Missile Scroll")
	gob := goblin(t, g, 8, 5)
	step(t, g, nil)

	step(t, g, key('i'))
	if got := step(t, g, key('a')); got != world.ModeShowTargeting {
		t.Fatalf("state = %v, want ShowTargeting", got)
	}
	if w.RunState.Range != 6 || w.RunState.Item != scroll {
		t.Fatalf("targeting state = %+v", w.RunState)
	}
	for i := 0; i < 3; i++ {
		step(t, g, key('l'))
	}
	if got := step(t, g, special(tcell.KeyEnter)); got != world.ModePlayerTurn {
		t.Fatalf("state = %v, want PlayerTurn", got)
	}
	use, _ := w.WantsToUseItems.Get(w.Player)
	if use.Target == nil || *use.Target != (gamemap.Point{X: 8, Y: 5}) {
		t.Fatalf("target = %v", use.Target)
	}

	step(t, g, nil)
	if w.ECS.Alive(scroll) {
		t.Fatal("scroll should be consumed")
	}
	if dmg, ok := w.SufferDamages.Get(gob); !ok || dmg.Total() != 8 {
		t.Fatalf("goblin pending damage = %+v, want 8", dmg)
	}
}

func TestTargetingRejectsOutOfRange(t *testing.T) {
	g := newTestGame(t)
	w := arena(t, g)
	scroll := carried(t, g, "Magic Missile Scroll")
	step(t, g, nil)
	w.RunState = world.Targeting(1, scroll)
	g.cursor = gamemap.Point{X: 8, Y: 5}

	if got := step(t, g, special(tcell.KeyEnter)); got != world.ModeShowTargeting {
		t.Fatalf("state = %v, want to stay targeting", got)
	}
	if lastLog(w) != "Invalid target." {
		t.Fatalf("log = %q", lastLog(w))
	}
	if got := step(t, g, special(tcell.KeyEscape)); got != world.ModeAwaitingInput {
		t.Fatalf("escape should cancel targeting, got %v", got)
	}
	if !w.ECS.Alive(scroll) || w.WantsToUseItems.Len() != 0 {
		t.Fatal("cancelled targeting must have no side effects")
	}
}

func TestMouseTargeting(t *testing.T) {
	g := newTestGame(t)
	w := arena(t, g)
	scroll := carried(t, g, "Magic Missile Scroll")
	step(t, g, nil)
	w.RunState = world.Targeting(6, scroll)

	// The arena fits the screen, so screen and world cells coincide.
	if got := step(t, g, tcell.NewEventMouse(8, 5, tcell.ButtonNone, tcell.ModNone)); got != world.ModeShowTargeting {
		t.Fatalf("hover state = %v, want ShowTargeting", got)
	}
	if g.cursor != (gamemap.Point{X: 8, Y: 5}) {
		t.Fatalf("cursor = %v, want (8,5)", g.cursor)
	}
	if got := step(t, g, tcell.NewEventMouse(7, 6, tcell.Button1, tcell.ModNone)); got != world.ModePlayerTurn {
		t.Fatalf("click state = %v, want PlayerTurn", got)
	}
	use, _ := w.WantsToUseItems.Get(w.Player)
	if use.Target == nil || *use.Target != (gamemap.Point{X: 7, Y: 6}) {
		t.Fatalf("target = %v", use.Target)
	}
}

func TestMouseCursorStaysOnMap(t *testing.T) {
	g := newTestGame(t)
	w := arena(t, g)
	scroll := carried(t, g, "Magic Missile Scroll")
	step(t, g, nil)
	w.RunState = world.Targeting(6, scroll)

	// The screen is wider and taller than the 20x20 arena.
	step(t, g, tcell.NewEventMouse(50, 30, tcell.ButtonNone, tcell.ModNone))
	if g.cursor != (gamemap.Point{X: 19, Y: 19}) {
		t.Fatalf("cursor = %v, want clamped to (19,19)", g.cursor)
	}
	step(t, g, key('h'))
	if g.cursor != (gamemap.Point{X: 18, Y: 19}) {
		t.Fatalf("cursor = %v, want (18,19) after moving west", g.cursor)
	}
}

func TestInventoryLettersStopAtZ(t *testing.T) {
	g := newTestGame(t)
	w := arena(t, g)
	for i := 0; i < 30; i++ {
		carried(t, g, "Health Potion")
	}
	step(t, g, nil)

	step(t, g, key('i'))
	if got := step(t, g, key('{')); got != world.ModeShowInventory {
		t.Fatalf("state = %v, want ShowInventory", got)
	}
	if w.WantsToUseItems.Len() != 0 {
		t.Fatal("a key past z must not select an item")
	}
	if got := step(t, g, key('z')); got != world.ModePlayerTurn {
		t.Fatalf("state = %v, want PlayerTurn", got)
	}
	if use, ok := w.WantsToUseItems.Get(w.Player); !ok || use.Item != w.Backpack(w.Player)[25] {
		t.Fatalf("use intent = %+v, want the 26th item", use)
	}
}

func TestDropAndRemoveMenus(t *testing.T) {
	g := newTestGame(t)
	w := arena(t, g)
	dagger := carried(t, g, "Dagger")
	shield := carried(t, g, "Shield")
	w.InBackpacks.Remove(shield)
	w.Equippeds.Insert(shield, component.Equipped{Owner: w.Player, Slot: component.SlotShield})
	step(t, g, nil)

	step(t, g, key('d'))
	if got := step(t, g, key('a')); got != world.ModePlayerTurn {
		t.Fatalf("drop state = %v", got)
	}
	if drop, _ := w.WantsToDropItems.Get(w.Player); drop.Item != dagger {
		t.Fatalf("drop intent = %+v", drop)
	}
	step(t, g, nil)
	step(t, g, nil)

	step(t, g, key('r'))
	if got := step(t, g, key('a')); got != world.ModePlayerTurn {
		t.Fatalf("remove state = %v", got)
	}
	if rm, _ := w.WantsToRemoveItems.Get(w.Player); rm.Item != shield {
		t.Fatalf("remove intent = %+v", rm)
	}
}

func TestDescendNeedsStairs(t *testing.T) {
	g := newTestGame(t)
	w := arena(t, g)
	step(t, g, nil)
	if got := step(t, g, key('>')); got != world.ModeAwaitingInput {
		t.Fatalf("state = %v", got)
	}
	if lastLog(w) != "There is no way down from here." {
		t.Fatalf("log = %q", lastLog(w))
	}
}

func TestNextLevelKeepsCarriedItems(t *testing.T) {
	g := newTestGame(t)
	w := arena(t, g)
	potion := carried(t, g, "Health Potion")
	gob := goblin(t, g, 10, 10)
	tpl, _ := g.templates.Item("Dagger")
	floorDagger := factory.NewItem(w, tpl, 3, 3)
	w.Map.Set(5, 5, gamemap.TileDownStairs)
	stats := w.CombatStats.GetMut(w.Player)
	stats.HP = 2
	step(t, g, nil)

	if got := step(t, g, key('>')); got != world.ModeNextLevel {
		t.Fatalf("state = %v, want NextLevel", got)
	}
	if got := step(t, g, nil); got != world.ModePreRun {
		t.Fatalf("state = %v, want PreRun", got)
	}
	if w.Depth != 2 {
		t.Fatalf("depth = %d, want 2", w.Depth)
	}
	if !w.ECS.Alive(potion) || !w.OwnedBy(potion, w.Player) {
		t.Fatal("carried potion should follow the player")
	}
	if w.ECS.Alive(gob) || w.ECS.Alive(floorDagger) {
		t.Fatal("old level entities should be gone")
	}
	if hp := w.CombatStats.GetMut(w.Player).HP; hp != g.cfg.Player.HP/2 {
		t.Fatalf("hp = %d, want half of max", hp)
	}
	pos, _ := w.PlayerPosition()
	cx, cy := w.Map.Rooms[0].Center()
	if pos.X != cx || pos.Y != cy {
		t.Fatalf("player at %v, want first room center (%d,%d)", pos, cx, cy)
	}
}

func TestSaveThenLoadFromMenu(t *testing.T) {
	g := newTestGame(t)
	step(t, g, special(tcell.KeyEnter))
	step(t, g, nil)
	depth := g.world.Depth
	entities := g.world.ECS.Len()

	if got := step(t, g, special(tcell.KeyEscape)); got != world.ModeSaveGame {
		t.Fatalf("state = %v, want SaveGame", got)
	}
	if got := step(t, g, nil); got != world.ModeMainMenu {
		t.Fatalf("state = %v, want MainMenu", got)
	}
	if !saveload.Exists(g.cfg.Game.SavePath) {
		t.Fatal("save file should exist")
	}
	if len(g.mainMenuChoices()) != 3 {
		t.Fatal("Load Game should be offered when a save exists")
	}

	step(t, g, special(tcell.KeyDown))
	if got := step(t, g, special(tcell.KeyEnter)); got != world.ModePreRun {
		t.Fatalf("state = %v, want PreRun", got)
	}
	if saveload.Exists(g.cfg.Game.SavePath) {
		t.Fatal("loading should delete the save")
	}
	if g.world.Depth != depth || g.world.ECS.Len() != entities {
		t.Fatalf("loaded depth=%d entities=%d, want %d and %d", g.world.Depth, g.world.ECS.Len(), depth, entities)
	}
	if got := step(t, g, nil); got != world.ModeAwaitingInput {
		t.Fatalf("state = %v", got)
	}
}

func TestLoadCorruptSaveIsFatal(t *testing.T) {
	g := newTestGame(t)
	if err := os.WriteFile(g.cfg.Game.SavePath, []byte("{broken"), 0o644); err != nil {
		t.Fatal(err)
	}
	g.Step(special(tcell.KeyDown))
	if _, err := g.Step(special(tcell.KeyEnter)); err == nil {
		t.Fatal("a corrupt save should stop the game with an error")
	}
}

func TestPlayerDeathEndsRun(t *testing.T) {
	g := newTestGame(t)
	w := arena(t, g)
	goblin(t, g, 6, 5)
	w.CombatStats.GetMut(w.Player).HP = 1
	if err := os.WriteFile(g.cfg.Game.SavePath, []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}
	step(t, g, nil)

	step(t, g, key(' '))
	if got := step(t, g, nil); got != world.ModeMonsterTurn {
		t.Fatalf("state = %v, want MonsterTurn", got)
	}
	if got := step(t, g, nil); got != world.ModeGameOver {
		t.Fatalf("state = %v, want GameOver", got)
	}
	if saveload.Exists(g.cfg.Game.SavePath) {
		t.Fatal("death should delete the save")
	}

	f, err := os.Open(g.cfg.Game.RunLog)
	if err != nil {
		t.Fatalf("run log: %v", err)
	}
	defer f.Close()
	sc := bufio.NewScanner(f)
	if !sc.Scan() {
		t.Fatal("run log is empty")
	}
	var rec RunLog
	if err := json.Unmarshal(sc.Bytes(), &rec); err != nil {
		t.Fatalf("decode run log: %v", err)
	}
	if rec.Result != "died" || rec.Turns != 1 {
		t.Fatalf("run record = %+v", rec)
	}

	if got := step(t, g, key('x')); got != world.ModeMainMenu {
		t.Fatalf("any key after death should return to the menu, got %v", got)
	}
}

func TestCtrlCQuitsFromAnyState(t *testing.T) {
	g := newTestGame(t)
	arena(t, g)
	step(t, g, nil)
	quit, err := g.Step(tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl))
	if err != nil || !quit {
		t.Fatalf("quit=%v err=%v", quit, err)
	}
}
