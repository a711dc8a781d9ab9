package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/louisbranch/ringfall/internal/game/domain/board"
	"github.com/louisbranch/ringfall/internal/game/domain/player"
	"github.com/louisbranch/ringfall/internal/game/domain/session"
	"github.com/louisbranch/ringfall/internal/game/storage"
)

func TestOpenRequiresPath(t *testing.T) {
	t.Parallel()

	if _, err := Open(""); err == nil {
		t.Fatal("expected empty path error")
	}
}

func TestCreateGetSessionRoundTrip(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	input := testSession("sess-1")
	if err := store.CreateSession(context.Background(), input); err != nil {
		t.Fatalf("create session: %v", err)
	}

	got, err := store.GetSession(context.Background(), "sess-1")
	if err != nil {
		t.Fatalf("get session: %v", err)
	}
	if got.ID != input.ID || got.Name != input.Name {
		t.Fatalf("session = %+v, want %+v", got, input)
	}
	if got.Status != session.StatusWaiting || got.Phase != session.PhaseAwaitingMovement {
		t.Fatalf("status/phase = %s/%s", got.Status, got.Phase)
	}
	if got.CurrentPlayer != 1 || got.CurrentTurn != 1 || got.BoardSize != 100 {
		t.Fatalf("turn state = %+v", got)
	}
	if !got.CreatedAt.Equal(input.CreatedAt) {
		t.Fatalf("created_at = %v, want %v", got.CreatedAt, input.CreatedAt)
	}
	if got.EndedAt != nil {
		t.Fatalf("ended_at = %v, want nil", got.EndedAt)
	}
}

func TestCreateSessionReturnsAlreadyExistsOnDuplicate(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	input := testSession("sess-dup")
	if err := store.CreateSession(context.Background(), input); err != nil {
		t.Fatalf("create initial session: %v", err)
	}
	err := store.CreateSession(context.Background(), input)
	if !errors.Is(err, storage.ErrAlreadyExists) {
		t.Fatalf("duplicate create error = %v, want %v", err, storage.ErrAlreadyExists)
	}
}

func TestGetSessionMissingReturnsNotFound(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	if _, err := store.GetSession(context.Background(), "nope"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("error = %v, want %v", err, storage.ErrNotFound)
	}
}

func TestUpdateSessionPersistsTurnStateAndEndedAt(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	input := testSession("sess-upd")
	if err := store.CreateSession(context.Background(), input); err != nil {
		t.Fatalf("create session: %v", err)
	}

	endedAt := input.CreatedAt.Add(time.Hour)
	input.Status = session.StatusEnded
	input.CurrentPlayer = 2
	input.CurrentTurn = 7
	input.Phase = session.PhaseTurnComplete
	input.UpdatedAt = endedAt
	input.EndedAt = &endedAt
	if err := store.UpdateSession(context.Background(), input); err != nil {
		t.Fatalf("update session: %v", err)
	}

	got, err := store.GetSession(context.Background(), "sess-upd")
	if err != nil {
		t.Fatalf("get session: %v", err)
	}
	if got.Status != session.StatusEnded || got.CurrentPlayer != 2 || got.CurrentTurn != 7 {
		t.Fatalf("session = %+v", got)
	}
	if got.EndedAt == nil || !got.EndedAt.Equal(endedAt) {
		t.Fatalf("ended_at = %v, want %v", got.EndedAt, endedAt)
	}
}

func TestUpdateSessionMissingReturnsNotFound(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	err := store.UpdateSession(context.Background(), testSession("ghost"))
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("error = %v, want %v", err, storage.ErrNotFound)
	}
}

func TestListSessionsPaginates(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	for _, id := range []string{"sess-1", "sess-2", "sess-3"} {
		if err := store.CreateSession(context.Background(), testSession(id)); err != nil {
			t.Fatalf("create session %s: %v", id, err)
		}
	}

	pageOne, err := store.ListSessions(context.Background(), 2, "")
	if err != nil {
		t.Fatalf("list page one: %v", err)
	}
	if len(pageOne.Sessions) != 2 {
		t.Fatalf("page one len = %d, want 2", len(pageOne.Sessions))
	}
	if pageOne.NextPageToken == "" {
		t.Fatal("expected page one next token")
	}

	pageTwo, err := store.ListSessions(context.Background(), 2, pageOne.NextPageToken)
	if err != nil {
		t.Fatalf("list page two: %v", err)
	}
	if len(pageTwo.Sessions) != 1 {
		t.Fatalf("page two len = %d, want 1", len(pageTwo.Sessions))
	}
	if pageTwo.NextPageToken != "" {
		t.Fatalf("page two next token = %q, want empty", pageTwo.NextPageToken)
	}
}

func TestPlayerRoundTripAndRosterOrder(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	if err := store.CreateSession(context.Background(), testSession("sess-1")); err != nil {
		t.Fatalf("create session: %v", err)
	}
	for _, p := range []player.Player{
		{ID: "p2", SessionID: "sess-1", Number: 2, Name: "Bruno", Position: 4, Health: 90, Gold: 1200},
		{ID: "p1", SessionID: "sess-1", Number: 1, Name: "Alba", Health: 100, Gold: 1500, AI: true,
			Inventory: []string{"torch"}, Properties: []int{3, 9}},
	} {
		if err := store.CreatePlayer(context.Background(), p); err != nil {
			t.Fatalf("create player %s: %v", p.ID, err)
		}
	}

	roster, err := store.ListPlayers(context.Background(), "sess-1")
	if err != nil {
		t.Fatalf("list players: %v", err)
	}
	if len(roster) != 2 {
		t.Fatalf("roster len = %d, want 2", len(roster))
	}
	if roster[0].Number != 1 || roster[1].Number != 2 {
		t.Fatalf("roster order = %d,%d, want 1,2", roster[0].Number, roster[1].Number)
	}
	if !roster[0].AI {
		t.Fatal("expected player 1 AI flag")
	}
	if len(roster[0].Inventory) != 1 || roster[0].Inventory[0] != "torch" {
		t.Fatalf("inventory = %v", roster[0].Inventory)
	}
	if len(roster[0].Properties) != 2 || roster[0].Properties[1] != 9 {
		t.Fatalf("properties = %v", roster[0].Properties)
	}

	got, err := store.GetPlayer(context.Background(), "sess-1", 2)
	if err != nil {
		t.Fatalf("get player: %v", err)
	}
	if got.Name != "Bruno" || got.Position != 4 || got.Health != 90 || got.Gold != 1200 {
		t.Fatalf("player = %+v", got)
	}
}

func TestCreatePlayerRejectsDuplicateSeat(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	if err := store.CreateSession(context.Background(), testSession("sess-1")); err != nil {
		t.Fatalf("create session: %v", err)
	}
	if err := store.CreatePlayer(context.Background(), player.Player{
		ID: "p1", SessionID: "sess-1", Number: 1, Name: "Alba", Health: 100,
	}); err != nil {
		t.Fatalf("create player: %v", err)
	}
	err := store.CreatePlayer(context.Background(), player.Player{
		ID: "p9", SessionID: "sess-1", Number: 1, Name: "Copy", Health: 100,
	})
	if !errors.Is(err, storage.ErrAlreadyExists) {
		t.Fatalf("error = %v, want %v", err, storage.ErrAlreadyExists)
	}
}

func TestUpdatePlayerPersistsMutableFields(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	if err := store.CreateSession(context.Background(), testSession("sess-1")); err != nil {
		t.Fatalf("create session: %v", err)
	}
	record := player.Player{ID: "p1", SessionID: "sess-1", Number: 1, Name: "Alba", Health: 100, Gold: 1500}
	if err := store.CreatePlayer(context.Background(), record); err != nil {
		t.Fatalf("create player: %v", err)
	}

	record.Position = 42
	record.Health = 85
	record.Gold = 1700
	record.Inventory = []string{"rope"}
	if err := store.UpdatePlayer(context.Background(), record); err != nil {
		t.Fatalf("update player: %v", err)
	}

	got, err := store.GetPlayer(context.Background(), "sess-1", 1)
	if err != nil {
		t.Fatalf("get player: %v", err)
	}
	if got.Position != 42 || got.Health != 85 || got.Gold != 1700 {
		t.Fatalf("player = %+v", got)
	}
	if len(got.Inventory) != 1 || got.Inventory[0] != "rope" {
		t.Fatalf("inventory = %v", got.Inventory)
	}
}

func TestBoardRoundTrip(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	if err := store.CreateSession(context.Background(), testSession("sess-1")); err != nil {
		t.Fatalf("create session: %v", err)
	}
	tiles := []board.Tile{
		{Position: 0, Type: board.TileTypeStart},
		{Position: 1, Type: board.TileTypeProperty, PurchasePrice: 120, RentPrice: 24},
		{Position: 2, Type: board.TileTypeMonster},
	}
	if err := store.PutBoard(context.Background(), "sess-1", tiles); err != nil {
		t.Fatalf("put board: %v", err)
	}

	got, err := store.GetBoard(context.Background(), "sess-1")
	if err != nil {
		t.Fatalf("get board: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("tiles len = %d, want 3", len(got))
	}
	if got[1].Type != board.TileTypeProperty || got[1].PurchasePrice != 120 || got[1].RentPrice != 24 {
		t.Fatalf("tile 1 = %+v", got[1])
	}

	// Re-putting replaces the previous ring.
	if err := store.PutBoard(context.Background(), "sess-1", tiles[:2]); err != nil {
		t.Fatalf("re-put board: %v", err)
	}
	got, err = store.GetBoard(context.Background(), "sess-1")
	if err != nil {
		t.Fatalf("get board: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("tiles len = %d, want 2", len(got))
	}
}

func TestGetBoardMissingReturnsNotFound(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	if _, err := store.GetBoard(context.Background(), "nope"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("error = %v, want %v", err, storage.ErrNotFound)
	}
}

func TestTurnEventsAppendAndPaginate(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	if err := store.CreateSession(context.Background(), testSession("sess-1")); err != nil {
		t.Fatalf("create session: %v", err)
	}
	now := time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC)
	for _, id := range []string{"evt-1", "evt-2", "evt-3"} {
		if err := store.AppendTurnEvent(context.Background(), storage.TurnEvent{
			ID:           id,
			SessionID:    "sess-1",
			Turn:         1,
			PlayerNumber: 1,
			Kind:         "MOVEMENT_ROLLED",
			Payload:      `{"total":7}`,
			CreatedAt:    now,
		}); err != nil {
			t.Fatalf("append event %s: %v", id, err)
		}
	}

	pageOne, err := store.ListTurnEvents(context.Background(), "sess-1", 2, "")
	if err != nil {
		t.Fatalf("list page one: %v", err)
	}
	if len(pageOne.Events) != 2 {
		t.Fatalf("page one len = %d, want 2", len(pageOne.Events))
	}
	if pageOne.Events[0].ID != "evt-1" {
		t.Fatalf("first event = %s, want evt-1", pageOne.Events[0].ID)
	}

	pageTwo, err := store.ListTurnEvents(context.Background(), "sess-1", 2, pageOne.NextPageToken)
	if err != nil {
		t.Fatalf("list page two: %v", err)
	}
	if len(pageTwo.Events) != 1 || pageTwo.Events[0].ID != "evt-3" {
		t.Fatalf("page two = %+v", pageTwo.Events)
	}
	if !pageTwo.Events[0].CreatedAt.Equal(now) {
		t.Fatalf("created_at = %v, want %v", pageTwo.Events[0].CreatedAt, now)
	}
}

func TestAppendTelemetryEvent(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	err := store.AppendTelemetryEvent(context.Background(), storage.TelemetryEvent{
		ID:         "tel-1",
		SessionID:  "sess-1",
		Name:       "turn.movement",
		Attributes: `{"seat":1}`,
		CreatedAt:  time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("append telemetry event: %v", err)
	}
}

func TestApplyTurnCommitsAtomically(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	sess := testSession("sess-1")
	sess.Status = session.StatusActive
	if err := store.CreateSession(context.Background(), sess); err != nil {
		t.Fatalf("create session: %v", err)
	}
	roster := []player.Player{
		{ID: "p1", SessionID: "sess-1", Number: 1, Name: "Alba", Health: 100, Gold: 1500},
		{ID: "p2", SessionID: "sess-1", Number: 2, Name: "Bruno", Health: 100, Gold: 1500},
	}
	for _, p := range roster {
		if err := store.CreatePlayer(context.Background(), p); err != nil {
			t.Fatalf("create player: %v", err)
		}
	}

	roster[0].Position = 7
	sess.Phase = session.PhaseAwaitingAction
	sess.UpdatedAt = sess.UpdatedAt.Add(time.Minute)
	write := storage.TurnWrite{
		Session: sess,
		Players: roster[:1],
		Event: storage.TurnEvent{
			ID:           "evt-1",
			SessionID:    "sess-1",
			Turn:         1,
			PlayerNumber: 1,
			Kind:         "MOVEMENT_ROLLED",
			CreatedAt:    sess.UpdatedAt,
		},
	}
	if err := store.ApplyTurn(context.Background(), write); err != nil {
		t.Fatalf("apply turn: %v", err)
	}

	gotSession, err := store.GetSession(context.Background(), "sess-1")
	if err != nil {
		t.Fatalf("get session: %v", err)
	}
	if gotSession.Phase != session.PhaseAwaitingAction {
		t.Fatalf("phase = %s, want awaiting_action", gotSession.Phase)
	}
	gotPlayer, err := store.GetPlayer(context.Background(), "sess-1", 1)
	if err != nil {
		t.Fatalf("get player: %v", err)
	}
	if gotPlayer.Position != 7 {
		t.Fatalf("position = %d, want 7", gotPlayer.Position)
	}
	events, err := store.ListTurnEvents(context.Background(), "sess-1", 10, "")
	if err != nil {
		t.Fatalf("list turn events: %v", err)
	}
	if len(events.Events) != 1 {
		t.Fatalf("events len = %d, want 1", len(events.Events))
	}
}

func TestApplyTurnRollsBackOnDuplicateEvent(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	sess := testSession("sess-1")
	if err := store.CreateSession(context.Background(), sess); err != nil {
		t.Fatalf("create session: %v", err)
	}
	record := player.Player{ID: "p1", SessionID: "sess-1", Number: 1, Name: "Alba", Health: 100, Gold: 1500}
	if err := store.CreatePlayer(context.Background(), record); err != nil {
		t.Fatalf("create player: %v", err)
	}
	event := storage.TurnEvent{
		ID:        "evt-1",
		SessionID: "sess-1",
		Turn:      1,
		Kind:      "MOVEMENT_ROLLED",
		CreatedAt: sess.CreatedAt,
	}
	if err := store.AppendTurnEvent(context.Background(), event); err != nil {
		t.Fatalf("append event: %v", err)
	}

	record.Gold = 9999
	err := store.ApplyTurn(context.Background(), storage.TurnWrite{
		Session: sess,
		Players: []player.Player{record},
		Event:   event,
	})
	if !errors.Is(err, storage.ErrAlreadyExists) {
		t.Fatalf("error = %v, want %v", err, storage.ErrAlreadyExists)
	}

	got, err := store.GetPlayer(context.Background(), "sess-1", 1)
	if err != nil {
		t.Fatalf("get player: %v", err)
	}
	if got.Gold != 1500 {
		t.Fatalf("gold = %d, want rollback to 1500", got.Gold)
	}
}

func testSession(id string) session.Session {
	now := time.Date(2026, time.March, 1, 8, 0, 0, 0, time.UTC)
	return session.Session{
		ID:            id,
		Name:          "Session " + id,
		Status:        session.StatusWaiting,
		CurrentPlayer: 1,
		CurrentTurn:   1,
		Phase:         session.PhaseAwaitingMovement,
		BoardSize:     100,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func openTempStore(t *testing.T) *Store {
	t.Helper()

	store, err := Open(filepath.Join(t.TempDir(), "game.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Fatalf("close store: %v", err)
		}
	})
	return store
}
