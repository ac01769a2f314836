package component

// ProvidesHealing restores HP to every target, clamped to max HP.
type ProvidesHealing struct {
	Amount int `json:"amount"`
}

// InflictsDamage queues Amount damage on every target.
type InflictsDamage struct {
	Amount int `json:"amount"`
}

// AreaOfEffect widens the target to a disc of Radius around the chosen tile.
type AreaOfEffect struct {
	Radius int `json:"radius"`
}

// Confusion is both an item effect and the status it inflicts: a confused
// monster skips Turns monster turns.
type Confusion struct {
	Turns int `json:"turns"`
}

// Ranged means the item needs a target tile within Range before use.
type Ranged struct {
	Range int `json:"range"`
}
