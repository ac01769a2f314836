// Package saveload writes the tagged entity population and the current
// level to a single JSON file and rebuilds a world from it.
package saveload

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"delve-roguelike/internal/component"
	"delve-roguelike/internal/ecs"
	"delve-roguelike/internal/gamemap"
	"delve-roguelike/internal/world"

	"go.uber.org/zap"
)

// saveFile is the on-disk layout. Markers are the save-local identities
// of the persisted entities, numbered from 1; 0 means "no entity".
type saveFile struct {
	Markers    []uint64         `json:"markers"`
	Components []componentArray `json:"components"`
}

// Save snapshots every entity tagged SerializeMe, plus the map and depth
// carried on a transient helper entity, and writes them to path atomically.
func Save(w *world.World, path string) error {
	helper := w.Spawn()
	w.SerializationHelpers.Insert(helper, component.SerializationHelper{
		Map:   w.Map.Clone(),
		Depth: w.Depth,
	})
	defer func() {
		w.ECS.DestroyEntity(helper)
		w.ECS.Maintain()
	}()

	var tagged []ecs.EntityID
	for _, id := range w.ECS.Entities() {
		if w.SerializeMes.Has(id) {
			tagged = append(tagged, id)
		}
	}
	markers := make(map[ecs.EntityID]uint64, len(tagged))
	file := saveFile{Markers: make([]uint64, len(tagged))}
	for i, id := range tagged {
		markers[id] = uint64(i + 1)
		file.Markers[i] = uint64(i + 1)
	}
	toMarker := func(id ecs.EntityID) ecs.EntityID { return ecs.EntityID(markers[id]) }

	for _, c := range codecs {
		arr, err := c.save(w, tagged, toMarker)
		if err != nil {
			return fmt.Errorf("saveload: %w", err)
		}
		file.Components = append(file.Components, arr)
	}

	data, err := json.Marshal(file)
	if err != nil {
		return fmt.Errorf("saveload: encode: %w", err)
	}
	if err := writeAtomic(path, data); err != nil {
		return fmt.Errorf("saveload: write %s: %w", path, err)
	}
	w.Logger.Info("game saved", zap.String("path", path), zap.Int("entities", len(tagged)-1))
	return nil
}

// Load replaces the whole entity population and the map with the contents
// of path. The world is untouched when the file cannot be read or parsed.
func Load(w *world.World, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("saveload: read %s: %w", path, err)
	}
	var file saveFile
	if err := json.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("saveload: decode %s: %w", path, err)
	}
	byType := make(map[string]componentArray, len(file.Components))
	for _, arr := range file.Components {
		byType[arr.Type] = arr
	}

	w.DeleteAll()
	entities := make(map[uint64]ecs.EntityID, len(file.Markers))
	for _, mk := range file.Markers {
		entities[mk] = w.Spawn()
	}
	fromMarker := func(id ecs.EntityID) ecs.EntityID { return entities[uint64(id)] }

	for _, c := range codecs {
		arr, ok := byType[c.name()]
		if !ok {
			continue
		}
		if err := c.load(w, arr, fromMarker); err != nil {
			return fmt.Errorf("saveload: %s: %w", path, err)
		}
	}

	helpers := w.SerializationHelpers.Entities()
	if len(helpers) != 1 {
		return fmt.Errorf("saveload: %s: expected one level record, found %d", path, len(helpers))
	}
	h, _ := w.SerializationHelpers.Get(helpers[0])
	if h.Map == nil {
		return fmt.Errorf("saveload: %s: level record has no map", path)
	}
	if err := checkMap(h.Map); err != nil {
		return fmt.Errorf("saveload: %s: %w", path, err)
	}
	w.Map = h.Map
	w.Map.ClearContentIndex()
	w.Depth = h.Depth
	w.ECS.DestroyEntity(helpers[0])
	w.ECS.Maintain()

	var outside error
	w.Positions.Each(func(_ ecs.EntityID, p *component.Position) {
		if outside == nil && !w.Map.InBounds(p.X, p.Y) {
			outside = fmt.Errorf("position (%d,%d) outside %dx%d map", p.X, p.Y, w.Map.Width, w.Map.Height)
		}
	})
	if outside != nil {
		return fmt.Errorf("saveload: %s: %w", path, outside)
	}

	players := ecs.Join(w.Players, w.Positions)
	if len(players) != 1 {
		return fmt.Errorf("saveload: %s: expected one player, found %d", path, len(players))
	}
	w.Player = players[0]
	w.PlayerDead = false
	w.Logger.Info("game loaded", zap.String("path", path), zap.Int("entities", w.ECS.Len()))
	return nil
}

// checkMap rejects a map whose per-tile arrays disagree with its size.
func checkMap(m *gamemap.Map) error {
	if m.Width <= 0 || m.Height <= 0 {
		return fmt.Errorf("map size %dx%d", m.Width, m.Height)
	}
	n := m.Width * m.Height
	for name, got := range map[string]int{
		"tiles":          len(m.Tiles),
		"revealed_tiles": len(m.Revealed),
		"visible_tiles":  len(m.Visible),
		"blocked":        len(m.Blocked),
	} {
		if got != n {
			return fmt.Errorf("map %s has %d entries, want %d", name, got, n)
		}
	}
	return nil
}

// Exists reports whether a save file is present at path.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Delete removes the save file. A missing file is not an error.
func Delete(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("saveload: delete %s: %w", path, err)
	}
	return nil
}

func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".save-*.json")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}
