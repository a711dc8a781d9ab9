// Package board defines the fixed ring of tiles a session is played on.
//
// A Topology is read-only after construction: the engine looks tiles up by
// position but never mutates them. Board size is configuration, not a
// constant; any ring of at least MinSize tiles is playable.
package board

import (
	"fmt"
	"math/rand"
	"strconv"

	apperrors "github.com/louisbranch/ringfall/internal/platform/errors"
)

// MinSize is the smallest playable ring. A movement roll of 2d6 must not
// be able to lap the board more than once.
const MinSize = 13

// DefaultSize is the canonical ring length.
const DefaultSize = 100

var (
	// ErrTileNotFound indicates a lookup outside the configured ring.
	ErrTileNotFound = apperrors.New(apperrors.CodeTileNotFound, "no tile at position")
	// ErrInvalidBoard indicates the tile set does not form a valid ring.
	ErrInvalidBoard = apperrors.New(apperrors.CodeBoardInvalid, "board definition is invalid")
)

// Topology is an immutable ring of tiles indexed by position.
type Topology struct {
	tiles []Tile
}

// New validates the tile set and builds a Topology.
//
// Tiles must cover positions 0..len(tiles)-1 exactly once, position 0 must
// be the start tile, and property prices must be non-negative.
func New(tiles []Tile) (*Topology, error) {
	if len(tiles) < MinSize {
		return nil, invalidBoard(fmt.Sprintf("ring needs at least %d tiles, got %d", MinSize, len(tiles)))
	}

	ordered := make([]Tile, len(tiles))
	seen := make([]bool, len(tiles))
	for _, tile := range tiles {
		if tile.Position < 0 || tile.Position >= len(tiles) {
			return nil, invalidBoard(fmt.Sprintf("tile position %d outside ring of %d", tile.Position, len(tiles)))
		}
		if seen[tile.Position] {
			return nil, invalidBoard(fmt.Sprintf("duplicate tile at position %d", tile.Position))
		}
		if !tile.Type.IsValid() {
			return nil, invalidBoard(fmt.Sprintf("tile %d has invalid type %q", tile.Position, tile.Type))
		}
		if tile.PurchasePrice < 0 || tile.RentPrice < 0 {
			return nil, invalidBoard(fmt.Sprintf("tile %d has negative price", tile.Position))
		}
		seen[tile.Position] = true
		ordered[tile.Position] = tile
	}
	if ordered[0].Type != TileTypeStart {
		return nil, invalidBoard("position 0 must be the start tile")
	}

	return &Topology{tiles: ordered}, nil
}

// Size returns the fixed ring length.
func (t *Topology) Size() int {
	return len(t.tiles)
}

// TileAt returns the tile at position, or ErrTileNotFound when the
// position is outside the ring.
func (t *Topology) TileAt(position int) (Tile, error) {
	if position < 0 || position >= len(t.tiles) {
		return Tile{}, apperrors.WithMetadata(
			apperrors.CodeTileNotFound,
			fmt.Sprintf("no tile at position %d", position),
			map[string]string{"position": strconv.Itoa(position)},
		)
	}
	return t.tiles[position], nil
}

// Tiles returns a copy of the ring in position order.
func (t *Topology) Tiles() []Tile {
	out := make([]Tile, len(t.tiles))
	copy(out, t.tiles)
	return out
}

// Generate produces a playable ring of the given size: a start tile at
// position 0 and a mix of property, monster, treasure, and event tiles.
// The mix is deterministic with respect to the rng.
func Generate(size int, rng *rand.Rand) (*Topology, error) {
	if size < MinSize {
		return nil, invalidBoard(fmt.Sprintf("ring needs at least %d tiles, got %d", MinSize, size))
	}

	tiles := make([]Tile, 0, size)
	tiles = append(tiles, Tile{Position: 0, Type: TileTypeStart})
	for position := 1; position < size; position++ {
		tile := Tile{Position: position}
		switch roll := rng.Intn(10); {
		case roll < 4:
			tile.Type = TileTypeProperty
			tile.PurchasePrice = 60 + rng.Intn(20)*10
			tile.RentPrice = tile.PurchasePrice / 10
		case roll < 7:
			tile.Type = TileTypeMonster
		case roll < 9:
			tile.Type = TileTypeTreasure
		default:
			tile.Type = TileTypeEvent
		}
		tiles = append(tiles, tile)
	}

	return New(tiles)
}

func invalidBoard(reason string) *apperrors.Error {
	return apperrors.WithMetadata(apperrors.CodeBoardInvalid, reason, map[string]string{"reason": reason})
}
