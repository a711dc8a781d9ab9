package board

import "strings"

// TileType describes the closed set of tile kinds on the ring.
type TileType string

const (
	TileTypeUnspecified TileType = ""
	TileTypeStart       TileType = "start"
	TileTypeProperty    TileType = "property"
	TileTypeMonster     TileType = "monster"
	TileTypeTreasure    TileType = "treasure"
	TileTypeEvent       TileType = "event"
)

// IsValid reports whether the tile type is a supported kind.
func (t TileType) IsValid() bool {
	switch t {
	case TileTypeStart, TileTypeProperty, TileTypeMonster, TileTypeTreasure, TileTypeEvent:
		return true
	default:
		return false
	}
}

func (t TileType) String() string {
	if t == TileTypeUnspecified {
		return "unspecified"
	}
	return string(t)
}

// ParseTileType canonicalizes a tile-type label.
func ParseTileType(value string) (TileType, bool) {
	trimmed := strings.ToLower(strings.TrimSpace(value))
	tileType := TileType(trimmed)
	if !tileType.IsValid() {
		return TileTypeUnspecified, false
	}
	return tileType, true
}

// Tile is one position on the ring. Purchase and rent prices are only
// meaningful for property tiles; they are zero elsewhere.
type Tile struct {
	Position      int
	Type          TileType
	PurchasePrice int
	RentPrice     int
}
