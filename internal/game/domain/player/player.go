// Package player defines the per-player state mutated by the turn engine.
package player

import (
	"fmt"
	"sort"
	"strings"

	apperrors "github.com/louisbranch/ringfall/internal/platform/errors"
	"github.com/louisbranch/ringfall/internal/platform/id"
)

// Starting state for every newly created player.
const (
	InitialPosition = 0
	InitialHealth   = 100
	InitialGold     = 1500
)

// MinPlayers is the smallest roster a session can start with.
const MinPlayers = 2

var (
	// ErrEmptyName indicates a missing player name.
	ErrEmptyName = apperrors.New(apperrors.CodePlayerEmptyName, "player name is required")
	// ErrRosterInvalid indicates the roster does not form a valid turn order.
	ErrRosterInvalid = apperrors.New(apperrors.CodeRosterInvalid, "player roster is invalid")
)

// Player is one seat in a session. Position, Health, and Gold are mutated
// only through engine operations; Inventory and Properties pass through the
// engine unmodified.
type Player struct {
	ID        string
	SessionID string
	// Number is the 1-based seat defining turn order, unique per session.
	Number     int
	Name       string
	Class      string
	Position   int
	Health     int
	Gold       int
	AI         bool
	Inventory  []string
	Properties []int
}

// CreatePlayerInput describes the metadata needed to create a player.
type CreatePlayerInput struct {
	SessionID string
	Number    int
	Name      string
	Class     string
	AI        bool
}

// Create builds a new player with the canonical starting state.
func Create(input CreatePlayerInput, idGenerator func() (string, error)) (Player, error) {
	if idGenerator == nil {
		idGenerator = id.NewID
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return Player{}, ErrEmptyName
	}
	if input.Number < 1 {
		return Player{}, rosterInvalid(fmt.Sprintf("player number %d is not 1-based", input.Number))
	}

	playerID, err := idGenerator()
	if err != nil {
		return Player{}, fmt.Errorf("generate player id: %w", err)
	}

	return Player{
		ID:        playerID,
		SessionID: strings.TrimSpace(input.SessionID),
		Number:    input.Number,
		Name:      name,
		Class:     strings.TrimSpace(input.Class),
		Position:  InitialPosition,
		Health:    InitialHealth,
		Gold:      InitialGold,
		AI:        input.AI,
	}, nil
}

// ValidateRoster checks that the roster forms a valid cyclic turn order:
// at least MinPlayers seats numbered exactly 1..N with no duplicates.
func ValidateRoster(players []Player) error {
	if len(players) < MinPlayers {
		return rosterInvalid(fmt.Sprintf("need at least %d players, got %d", MinPlayers, len(players)))
	}

	numbers := make(map[int]bool, len(players))
	for _, p := range players {
		if numbers[p.Number] {
			return rosterInvalid(fmt.Sprintf("duplicate player number %d", p.Number))
		}
		numbers[p.Number] = true
	}
	for n := 1; n <= len(players); n++ {
		if !numbers[n] {
			return rosterInvalid(fmt.Sprintf("missing player number %d", n))
		}
	}
	return nil
}

// SortByNumber orders a roster by seat number in place.
func SortByNumber(players []Player) {
	sort.Slice(players, func(i, j int) bool {
		return players[i].Number < players[j].Number
	})
}

// ByNumber returns the roster index of the given seat number, or -1.
func ByNumber(players []Player, number int) int {
	for i, p := range players {
		if p.Number == number {
			return i
		}
	}
	return -1
}

func rosterInvalid(reason string) *apperrors.Error {
	return apperrors.WithMetadata(apperrors.CodeRosterInvalid, reason, map[string]string{"reason": reason})
}
