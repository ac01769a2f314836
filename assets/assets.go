// Package assets embeds the default data tables.
package assets

import _ "embed"

// Spawns is the default spawn table: player look, monster and item
// templates, and per-depth level names.
//
//go:embed spawns.yaml
var Spawns []byte
