package factory

import (
	"fmt"
	"os"

	"delve-roguelike/assets"
	"delve-roguelike/internal/component"

	"github.com/gdamore/tcell/v2"
	"gopkg.in/yaml.v3"
)

// Templates is the parsed spawn table.
type Templates struct {
	Player   PlayerTemplate    `yaml:"player"`
	Monsters []MonsterTemplate `yaml:"monsters"`
	Items    []ItemTemplate    `yaml:"items"`
	Levels   []string          `yaml:"levels"`
}

type PlayerTemplate struct {
	Name  string `yaml:"name"`
	Glyph string `yaml:"glyph"`
	FG    string `yaml:"fg"`
}

type MonsterTemplate struct {
	Name        string `yaml:"name"`
	Glyph       string `yaml:"glyph"`
	FG          string `yaml:"fg"`
	Weight      int    `yaml:"weight"`
	DepthWeight int    `yaml:"depth_weight"`
	HP          int    `yaml:"hp"`
	Power       int    `yaml:"power"`
	Defense     int    `yaml:"defense"`
}

// ItemTemplate describes one item. Zero-valued effect fields are absent.
type ItemTemplate struct {
	Name         string `yaml:"name"`
	Glyph        string `yaml:"glyph"`
	FG           string `yaml:"fg"`
	Weight       int    `yaml:"weight"`
	DepthWeight  int    `yaml:"depth_weight"`
	Consumable   bool   `yaml:"consumable"`
	Healing      int    `yaml:"healing"`
	Damage       int    `yaml:"damage"`
	Radius       int    `yaml:"radius"`
	Confusion    int    `yaml:"confusion"`
	Range        int    `yaml:"range"`
	Slot         string `yaml:"slot"`
	PowerBonus   int    `yaml:"power_bonus"`
	DefenseBonus int    `yaml:"defense_bonus"`
}

// LoadTemplates reads the spawn table at path, or the embedded one when
// path is empty.
func LoadTemplates(path string) (*Templates, error) {
	data := assets.Spawns
	if path != "" {
		var err error
		if data, err = os.ReadFile(path); err != nil {
			return nil, fmt.Errorf("read spawn table %s: %w", path, err)
		}
	}
	return ParseTemplates(data)
}

// ParseTemplates decodes and validates a YAML spawn table.
func ParseTemplates(data []byte) (*Templates, error) {
	var t Templates
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parse spawn table: %w", err)
	}
	if err := t.validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

func (t *Templates) validate() error {
	if t.Player.Glyph == "" {
		return fmt.Errorf("spawn table: player glyph is required")
	}
	if len(t.Monsters) == 0 {
		return fmt.Errorf("spawn table: no monsters defined")
	}
	for _, m := range t.Monsters {
		if m.Name == "" || m.Glyph == "" {
			return fmt.Errorf("spawn table: monster needs a name and glyph: %+v", m)
		}
		if m.HP < 1 {
			return fmt.Errorf("spawn table: monster %s has no hp", m.Name)
		}
	}
	seen := make(map[string]bool, len(t.Items))
	for _, it := range t.Items {
		if it.Name == "" || it.Glyph == "" {
			return fmt.Errorf("spawn table: item needs a name and glyph: %+v", it)
		}
		if seen[it.Name] {
			return fmt.Errorf("spawn table: duplicate item %s", it.Name)
		}
		seen[it.Name] = true
		if it.Slot != "" {
			if _, ok := component.ParseSlot(it.Slot); !ok {
				return fmt.Errorf("spawn table: item %s has unknown slot %q", it.Name, it.Slot)
			}
		}
		if it.Radius > 0 && it.Range == 0 {
			return fmt.Errorf("spawn table: area item %s must be ranged", it.Name)
		}
	}
	return nil
}

// Item looks up an item template by name.
func (t *Templates) Item(name string) (ItemTemplate, bool) {
	for _, it := range t.Items {
		if it.Name == name {
			return it, true
		}
	}
	return ItemTemplate{}, false
}

// LevelName returns the flavour name for depth, repeating the last entry
// past the end of the list.
func (t *Templates) LevelName(depth int) string {
	if len(t.Levels) == 0 || depth < 1 {
		return fmt.Sprintf("Depth %d", depth)
	}
	return t.Levels[min(depth, len(t.Levels))-1]
}

// color resolves a tcell colour name; unknown names draw in the default colour.
func color(name string) tcell.Color {
	if name == "" {
		return tcell.ColorDefault
	}
	return tcell.GetColor(name)
}
