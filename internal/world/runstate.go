package world

import (
	"fmt"

	"delve-roguelike/internal/ecs"
)

// Mode is the top-level state the game loop is in.
type Mode uint8

const (
	ModeMainMenu Mode = iota
	ModePreRun
	ModeAwaitingInput
	ModePlayerTurn
	ModeMonsterTurn
	ModeShowInventory
	ModeShowDropItem
	ModeShowRemoveItem
	ModeShowTargeting
	ModeSaveGame
	ModeNextLevel
	ModeGameOver
)

var modeNames = [...]string{
	ModeMainMenu:       "MainMenu",
	ModePreRun:         "PreRun",
	ModeAwaitingInput:  "AwaitingInput",
	ModePlayerTurn:     "PlayerTurn",
	ModeMonsterTurn:    "MonsterTurn",
	ModeShowInventory:  "ShowInventory",
	ModeShowDropItem:   "ShowDropItem",
	ModeShowRemoveItem: "ShowRemoveItem",
	ModeShowTargeting:  "ShowTargeting",
	ModeSaveGame:       "SaveGame",
	ModeNextLevel:      "NextLevel",
	ModeGameOver:       "GameOver",
}

func (m Mode) String() string {
	if int(m) < len(modeNames) {
		return modeNames[m]
	}
	return fmt.Sprintf("Mode(%d)", m)
}

// RunState is the current state plus the payload ShowTargeting needs.
type RunState struct {
	Mode  Mode
	Range int
	Item  ecs.EntityID
}

// State builds a payload-free RunState.
func State(m Mode) RunState { return RunState{Mode: m} }

// Targeting builds the ShowTargeting state for a ranged item.
func Targeting(rng int, item ecs.EntityID) RunState {
	return RunState{Mode: ModeShowTargeting, Range: rng, Item: item}
}

// RunsPipeline reports whether entering this state executes a full pass.
func (s RunState) RunsPipeline() bool {
	switch s.Mode {
	case ModePreRun, ModePlayerTurn, ModeMonsterTurn:
		return true
	}
	return false
}

func (s RunState) String() string {
	if s.Mode == ModeShowTargeting {
		return fmt.Sprintf("ShowTargeting{range:%d item:%d}", s.Range, s.Item)
	}
	return s.Mode.String()
}
