package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "delve.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	def := Defaults()
	if *cfg != *def {
		t.Fatalf("cfg = %+v; want defaults %+v", cfg, def)
	}
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
[map]
width = 60
height = 30

[player]
hp = 50
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Map.Width != 60 || cfg.Map.Height != 30 || cfg.Player.HP != 50 {
		t.Fatalf("file values not applied: %+v", cfg)
	}
	if cfg.Map.MaxRooms != 30 || cfg.Player.Power != 5 {
		t.Fatal("unset keys should keep their defaults")
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "[game]\nsave_path = \"from-file.json\"\n")
	t.Setenv("DELVE_GAME_SAVE_PATH", "from-env.json")
	t.Setenv("DELVE_SERVER_PORT", "2323")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Game.SavePath != "from-env.json" {
		t.Errorf("SavePath = %q; want from-env.json", cfg.Game.SavePath)
	}
	if cfg.Server.Port != 2323 {
		t.Errorf("Port = %d; want 2323", cfg.Server.Port)
	}
}

func TestLoadRejectsBadInput(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"malformed toml", "[map\nwidth = 3"},
		{"tiny map", "[map]\nwidth = 4\nheight = 4\n"},
		{"inverted rooms", "[map]\nmin_room = 9\nmax_room = 3\n"},
		{"negative monsters", "[spawn]\nmax_monsters = -1\n"},
		{"negative items", "[spawn]\nmax_items = -2\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, tc.body)); err == nil {
				t.Fatal("expected an error")
			}
		})
	}
}

func TestEnvRejectsNegativeSpawnLimit(t *testing.T) {
	t.Setenv("DELVE_SPAWN_MAX_ITEMS", "-1")
	if _, err := Load(""); err == nil {
		t.Fatal("expected an error for a negative item limit")
	}
}
