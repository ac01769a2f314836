package gamemap

// TileType identifies the static geometry of a map cell.
type TileType uint8

const (
	TileWall TileType = iota
	TileFloor
	TileDownStairs
)

// Opaque reports whether the tile blocks line of sight.
func (t TileType) Opaque() bool { return t == TileWall }

// Walkable reports whether the tile's geometry allows movement.
func (t TileType) Walkable() bool { return t != TileWall }

func (t TileType) String() string {
	switch t {
	case TileWall:
		return "wall"
	case TileFloor:
		return "floor"
	case TileDownStairs:
		return "down stairs"
	}
	return "unknown"
}
