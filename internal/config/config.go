// Package config loads game settings from an optional TOML file and then
// applies DELVE_* environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "DELVE_"

type Config struct {
	Game    GameConfig    `toml:"game" envPrefix:"GAME_"`
	Map     MapConfig     `toml:"map" envPrefix:"MAP_"`
	Player  PlayerConfig  `toml:"player" envPrefix:"PLAYER_"`
	Monster MonsterConfig `toml:"monster" envPrefix:"MONSTER_"`
	Spawn   SpawnConfig   `toml:"spawn" envPrefix:"SPAWN_"`
	Logging LoggingConfig `toml:"logging" envPrefix:"LOG_"`
	Server  ServerConfig  `toml:"server" envPrefix:"SERVER_"`
}

type GameConfig struct {
	SavePath string `toml:"save_path" env:"SAVE_PATH"`
	Seed     int64  `toml:"seed" env:"SEED"` // 0 = time based
	MaxLog   int    `toml:"max_log" env:"MAX_LOG"`
	RunLog   string `toml:"run_log" env:"RUN_LOG"` // empty = $XDG_DATA_HOME/delve/runs.jsonl
}

type MapConfig struct {
	Width       int    `toml:"width" env:"WIDTH"`
	Height      int    `toml:"height" env:"HEIGHT"`
	MaxRooms    int    `toml:"max_rooms" env:"MAX_ROOMS"`
	MinRoomSize int    `toml:"min_room" env:"MIN_ROOM"`
	MaxRoomSize int    `toml:"max_room" env:"MAX_ROOM"`
	Layout      string `toml:"layout" env:"LAYOUT"`     // "rooms" or "bsp"
	Corridor    string `toml:"corridor" env:"CORRIDOR"` // "l", "z" or "straight"
}

type PlayerConfig struct {
	ViewRange int `toml:"view_range" env:"VIEW_RANGE"`
	HP        int `toml:"hp" env:"HP"`
	Power     int `toml:"power" env:"POWER"`
	Defense   int `toml:"defense" env:"DEFENSE"`
}

type MonsterConfig struct {
	ViewRange int `toml:"view_range" env:"VIEW_RANGE"`
}

type SpawnConfig struct {
	MaxMonsters int    `toml:"max_monsters" env:"MAX_MONSTERS"`
	MaxItems    int    `toml:"max_items" env:"MAX_ITEMS"`
	Table       string `toml:"table" env:"TABLE"` // empty = embedded table
}

type LoggingConfig struct {
	Level  string `toml:"level" env:"LEVEL"`
	Format string `toml:"format" env:"FORMAT"` // "json" or "console"
	Output string `toml:"output" env:"OUTPUT"` // file path, "stderr" or "stdout"
}

type ServerConfig struct {
	Port    int    `toml:"port" env:"PORT"`
	HostKey string `toml:"host_key" env:"HOST_KEY"`
	SaveDir string `toml:"save_dir" env:"SAVE_DIR"`
}

// Load reads path over the defaults, then applies environment overrides.
// An empty path or a missing file leaves the defaults in place.
func Load(path string) (*Config, error) {
	cfg := Defaults()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("read config %s: %w", path, err)
		default:
			if err := toml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Defaults returns the built-in settings.
func Defaults() *Config {
	return &Config{
		Game: GameConfig{
			SavePath: "./savegame.json",
			MaxLog:   50,
		},
		Map: MapConfig{
			Width:       80,
			Height:      43,
			MaxRooms:    30,
			MinRoomSize: 6,
			MaxRoomSize: 10,
			Layout:      "rooms",
			Corridor:    "l",
		},
		Player: PlayerConfig{
			ViewRange: 8,
			HP:        30,
			Power:     5,
			Defense:   2,
		},
		Monster: MonsterConfig{
			ViewRange: 8,
		},
		Spawn: SpawnConfig{
			MaxMonsters: 4,
			MaxItems:    2,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
			Output: "delve.log",
		},
		Server: ServerConfig{
			Port:    2222,
			HostKey: "host_key",
			SaveDir: "saves",
		},
	}
}

func (c *Config) validate() error {
	if c.Map.Width < 10 || c.Map.Height < 10 {
		return fmt.Errorf("config: map must be at least 10x10, got %dx%d", c.Map.Width, c.Map.Height)
	}
	if c.Map.MinRoomSize < 1 || c.Map.MaxRoomSize < c.Map.MinRoomSize {
		return fmt.Errorf("config: invalid room size range %d..%d", c.Map.MinRoomSize, c.Map.MaxRoomSize)
	}
	if c.Spawn.MaxMonsters < 0 || c.Spawn.MaxItems < 0 {
		return fmt.Errorf("config: spawn limits must not be negative, got monsters=%d items=%d",
			c.Spawn.MaxMonsters, c.Spawn.MaxItems)
	}
	if c.Player.HP < 1 {
		return fmt.Errorf("config: player hp must be positive, got %d", c.Player.HP)
	}
	return nil
}
