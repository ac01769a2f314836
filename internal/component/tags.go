package component

// Player marks the player-controlled entity.
type Player struct{}

// Monster marks an entity driven by the monster AI.
type Monster struct{}

// BlocksTile marks an entity that occupies its tile (blocks movement).
type BlocksTile struct{}

// Item marks an entity that can be picked up.
type Item struct{}

// Consumable marks an item that is deleted once it has been used.
type Consumable struct{}

// SerializeMe marks an entity that is written to the save file.
type SerializeMe struct{}
