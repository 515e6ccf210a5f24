package grid

// WallID identifies a wall's color. Zero is open space.
type WallID uint8

// Open is the WallID of an empty cell.
const Open WallID = 0

// Tile is one cell of the world.
type Tile struct {
	Fill WallID
}

// IsWall reports whether the tile blocks movement and rays.
func (t Tile) IsWall() bool { return t.Fill != Open }
