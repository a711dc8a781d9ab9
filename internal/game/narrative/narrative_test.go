package narrative

import (
	"bytes"
	"context"
	"errors"
	"log"
	"strings"
	"testing"
)

func TestLogNarratorDescribesEachKind(t *testing.T) {
	tests := []struct {
		name  string
		event Event
		want  []string
	}{
		{
			name: "movement",
			event: Event{
				SessionID: "sess-1", Turn: 2, PlayerNumber: 1,
				Kind: EventKindMovement, Dice: []int{4, 3}, NewPosition: 7, WrapBonus: 0,
			},
			want: []string{"sess-1", "turn 2", "player 1", "[4 3]", "moved to 7"},
		},
		{
			name: "action",
			event: Event{
				SessionID: "sess-1", Turn: 2, PlayerNumber: 1,
				Kind: EventKindAction, Roll: 16, TileType: "monster", TilePos: 7, GoldDelta: 130,
			},
			want: []string{"rolled 16", "monster", "gold +130"},
		},
		{
			name: "turn ended",
			event: Event{
				SessionID: "sess-1", PlayerNumber: 1,
				Kind: EventKindTurnEnded, NextPlayer: 2, NextTurn: 2,
			},
			want: []string{"player 1 ended", "player 2 is up", "turn 2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			narrator := LogNarrator{Logger: log.New(&buf, "", 0)}
			if err := narrator.Describe(context.Background(), tt.event); err != nil {
				t.Fatalf("describe: %v", err)
			}
			got := buf.String()
			for _, fragment := range tt.want {
				if !strings.Contains(got, fragment) {
					t.Fatalf("output %q missing %q", got, fragment)
				}
			}
		})
	}
}

type failingNarrator struct{}

func (failingNarrator) Describe(context.Context, Event) error {
	return errors.New("narration failed")
}

func TestDispatchToleratesNilNarrator(t *testing.T) {
	if err := Dispatch(context.Background(), nil, Event{}); err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if err := Dispatch(context.Background(), failingNarrator{}, Event{}); err == nil {
		t.Fatal("expected narrator error to surface")
	}
}
