package board

import (
	"errors"
	"math/rand"
	"testing"

	apperrors "github.com/louisbranch/ringfall/internal/platform/errors"
)

func ringOf(size int) []Tile {
	tiles := make([]Tile, 0, size)
	tiles = append(tiles, Tile{Position: 0, Type: TileTypeStart})
	for i := 1; i < size; i++ {
		tiles = append(tiles, Tile{Position: i, Type: TileTypeTreasure})
	}
	return tiles
}

func TestNewValidRing(t *testing.T) {
	topology, err := New(ringOf(20))
	if err != nil {
		t.Fatalf("new topology: %v", err)
	}
	if topology.Size() != 20 {
		t.Fatalf("expected size 20, got %d", topology.Size())
	}
	tile, err := topology.TileAt(19)
	if err != nil {
		t.Fatalf("tile at 19: %v", err)
	}
	if tile.Type != TileTypeTreasure {
		t.Fatalf("expected treasure tile, got %s", tile.Type)
	}
}

func TestNewRejectsInvalidRings(t *testing.T) {
	tests := []struct {
		name  string
		tiles []Tile
	}{
		{"too small", ringOf(5)},
		{
			"duplicate position",
			append(ringOf(19), Tile{Position: 7, Type: TileTypeEvent}),
		},
		{
			"position outside ring",
			append(ringOf(19), Tile{Position: 40, Type: TileTypeEvent}),
		},
		{
			"missing start tile",
			func() []Tile {
				tiles := ringOf(20)
				tiles[0].Type = TileTypeEvent
				return tiles
			}(),
		},
		{
			"invalid type",
			func() []Tile {
				tiles := ringOf(20)
				tiles[3].Type = TileType("volcano")
				return tiles
			}(),
		},
		{
			"negative price",
			func() []Tile {
				tiles := ringOf(20)
				tiles[4] = Tile{Position: 4, Type: TileTypeProperty, PurchasePrice: -10}
				return tiles
			}(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.tiles)
			if !errors.Is(err, ErrInvalidBoard) {
				t.Fatalf("expected ErrInvalidBoard, got %v", err)
			}
		})
	}
}

func TestTileAtOutOfRange(t *testing.T) {
	topology, err := New(ringOf(20))
	if err != nil {
		t.Fatalf("new topology: %v", err)
	}

	for _, position := range []int{-1, 20, 100} {
		_, err := topology.TileAt(position)
		if !errors.Is(err, ErrTileNotFound) {
			t.Fatalf("position %d: expected ErrTileNotFound, got %v", position, err)
		}
		var appErr *apperrors.Error
		if !errors.As(err, &appErr) {
			t.Fatalf("position %d: expected *apperrors.Error", position)
		}
		if appErr.Metadata["position"] == "" {
			t.Fatalf("position %d: expected position metadata", position)
		}
	}
}

func TestTilesReturnsCopy(t *testing.T) {
	topology, err := New(ringOf(20))
	if err != nil {
		t.Fatalf("new topology: %v", err)
	}
	tiles := topology.Tiles()
	tiles[5].Type = TileTypeMonster

	tile, err := topology.TileAt(5)
	if err != nil {
		t.Fatalf("tile at 5: %v", err)
	}
	if tile.Type != TileTypeTreasure {
		t.Fatal("mutating the returned slice must not change the topology")
	}
}

func TestGenerateProducesValidRing(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	topology, err := Generate(DefaultSize, rng)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if topology.Size() != DefaultSize {
		t.Fatalf("expected size %d, got %d", DefaultSize, topology.Size())
	}
	start, err := topology.TileAt(0)
	if err != nil {
		t.Fatalf("tile at 0: %v", err)
	}
	if start.Type != TileTypeStart {
		t.Fatalf("expected start tile at 0, got %s", start.Type)
	}
	for _, tile := range topology.Tiles() {
		if !tile.Type.IsValid() {
			t.Fatalf("tile %d has invalid type", tile.Position)
		}
		if tile.Type == TileTypeProperty && tile.PurchasePrice <= 0 {
			t.Fatalf("property tile %d missing purchase price", tile.Position)
		}
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	first, err := Generate(40, rand.New(rand.NewSource(2)))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	second, err := Generate(40, rand.New(rand.NewSource(2)))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	for i := 0; i < 40; i++ {
		a, _ := first.TileAt(i)
		b, _ := second.TileAt(i)
		if a != b {
			t.Fatalf("tile %d differs between identically seeded rings", i)
		}
	}
}

func TestParseTileType(t *testing.T) {
	tests := []struct {
		in   string
		want TileType
		ok   bool
	}{
		{"monster", TileTypeMonster, true},
		{" Treasure ", TileTypeTreasure, true},
		{"PROPERTY", TileTypeProperty, true},
		{"start", TileTypeStart, true},
		{"event", TileTypeEvent, true},
		{"", TileTypeUnspecified, false},
		{"volcano", TileTypeUnspecified, false},
	}
	for _, tt := range tests {
		got, ok := ParseTileType(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseTileType(%q) = (%s, %v), want (%s, %v)", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}
