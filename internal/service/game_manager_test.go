package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/javekk/rusty-chess/internal/model"
	"github.com/javekk/rusty-chess/internal/store"
)

func TestQueue(t *testing.T) {
	q := NewQueue()
	if _, _, ok := q.NextPair(); ok {
		t.Fatal("NextPair on empty queue")
	}
	for _, id := range []string{"a", "b", "c"} {
		if err := q.AddPlayer(id); err != nil {
			t.Fatalf("AddPlayer(%s): %v", id, err)
		}
	}
	if err := q.AddPlayer("b"); !errors.Is(err, ErrAlreadyQueued) {
		t.Errorf("duplicate AddPlayer error = %v; want ErrAlreadyQueued", err)
	}

	q.Remove("b")
	first, second, ok := q.NextPair()
	if !ok || first.PlayerID != "a" || second.PlayerID != "c" {
		t.Errorf("NextPair = %v, %v, %v; want a, c", first.PlayerID, second.PlayerID, ok)
	}
	if q.Size() != 0 {
		t.Errorf("Size = %d; want 0", q.Size())
	}
}

func TestGameManagerCreateAndLookup(t *testing.T) {
	gm := NewGameManager(store.NewMemoryArchive())
	if _, err := gm.CreateGame("g1"); err != nil {
		t.Fatalf("CreateGame: %v", err)
	}
	if _, err := gm.CreateGame("g1"); !errors.Is(err, ErrGameExists) {
		t.Errorf("duplicate CreateGame error = %v; want ErrGameExists", err)
	}
	if _, err := gm.GetSession("nope"); !errors.Is(err, ErrGameNotFound) {
		t.Errorf("GetSession(nope) error = %v; want ErrGameNotFound", err)
	}
	if _, err := gm.AddPlayerToGame("nope", "alice"); !errors.Is(err, ErrGameNotFound) {
		t.Errorf("AddPlayerToGame(nope) error = %v; want ErrGameNotFound", err)
	}
	color, err := gm.AddPlayerToGame("g1", "alice")
	if err != nil || color != model.White {
		t.Errorf("AddPlayerToGame = %v, %v; want white", color, err)
	}
}

func TestMatchmakingPairsPlayers(t *testing.T) {
	gm := NewGameManager(store.NewMemoryArchive())
	alice := make(chan MatchFoundEvent, 1)
	bob := make(chan MatchFoundEvent, 1)
	gm.RegisterMatchmakingChannel("alice", alice)
	gm.RegisterMatchmakingChannel("bob", bob)

	if err := gm.JoinMatchmaking("alice"); err != nil {
		t.Fatalf("JoinMatchmaking(alice): %v", err)
	}
	if gm.matchNextPair() {
		t.Fatal("matched a single player")
	}
	if err := gm.JoinMatchmaking("bob"); err != nil {
		t.Fatalf("JoinMatchmaking(bob): %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- gm.RunMatchmaking(ctx, 5*time.Millisecond) }()

	var events [2]MatchFoundEvent
	for i, ch := range []chan MatchFoundEvent{alice, bob} {
		select {
		case events[i] = <-ch:
		case <-time.After(2 * time.Second):
			t.Fatal("timed out waiting for match")
		}
	}
	cancel()
	if err := <-done; err != nil {
		t.Errorf("RunMatchmaking: %v", err)
	}

	if events[0].GameID == "" || events[0].GameID != events[1].GameID {
		t.Fatalf("events for different games: %+v", events)
	}
	if events[0].Color != model.White || events[1].Color != model.Black {
		t.Errorf("colors = %s, %s; want white, black", events[0].Color, events[1].Color)
	}
	session, err := gm.GetSession(events[0].GameID)
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}
	if !session.IsSeated("alice") || !session.IsSeated("bob") {
		t.Error("matched players not seated")
	}
	if _, ok := <-alice; ok {
		t.Error("matchmaking channel left open")
	}
}

func TestRegisterMatchmakingChannelReplaces(t *testing.T) {
	gm := NewGameManager(store.NewMemoryArchive())
	old := make(chan MatchFoundEvent, 1)
	gm.RegisterMatchmakingChannel("alice", old)
	gm.RegisterMatchmakingChannel("alice", make(chan MatchFoundEvent, 1))

	if _, ok := <-old; ok {
		t.Error("replaced channel not closed")
	}
}

func TestGameServiceCreateSeatsCreator(t *testing.T) {
	archive := store.NewMemoryArchive()
	gs := NewGameService(NewGameManager(archive), archive)

	id, err := gs.CreateGame("alice")
	if err != nil {
		t.Fatalf("CreateGame: %v", err)
	}
	state, err := gs.GetGameState(id)
	if err != nil {
		t.Fatalf("GetGameState: %v", err)
	}
	if state.Players.White.ID != "alice" || state.Players.Black.ID != "" {
		t.Errorf("players = %+v", state.Players)
	}
	if color, err := gs.JoinGame(id, "bob"); err != nil || color != model.Black {
		t.Errorf("JoinGame = %v, %v; want black", color, err)
	}

	moves, err := gs.LegalMoves(id, sq("g1"))
	if err != nil {
		t.Fatalf("LegalMoves: %v", err)
	}
	if len(moves) != 2 {
		t.Errorf("g1 moves = %v; want 2", moves)
	}
	if _, err := gs.Archived(context.Background(), "missing"); !errors.Is(err, ErrGameNotFound) {
		t.Errorf("Archived(missing) error = %v; want ErrGameNotFound", err)
	}
}

func TestMatchHeldUntilChannelRegisters(t *testing.T) {
	gm := NewGameManager(store.NewMemoryArchive())
	for _, id := range []string{"alice", "bob"} {
		if err := gm.JoinMatchmaking(id); err != nil {
			t.Fatalf("JoinMatchmaking(%s): %v", id, err)
		}
	}
	if !gm.matchNextPair() {
		t.Fatal("no pair matched")
	}

	for _, tt := range []struct {
		player string
		color  model.Color
	}{{"bob", model.Black}, {"alice", model.White}} {
		ch := make(chan MatchFoundEvent, 1)
		gm.RegisterMatchmakingChannel(tt.player, ch)
		event, ok := <-ch
		if !ok {
			t.Fatalf("%s: channel closed without a match", tt.player)
		}
		if event.Color != tt.color || event.GameID == "" {
			t.Errorf("%s: event = %+v", tt.player, event)
		}
		if _, ok := <-ch; ok {
			t.Errorf("%s: channel left open", tt.player)
		}
	}

	// delivered once
	ch := make(chan MatchFoundEvent, 1)
	gm.RegisterMatchmakingChannel("alice", ch)
	select {
	case event := <-ch:
		t.Errorf("second registration got %+v", event)
	default:
	}
}
