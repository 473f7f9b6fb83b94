package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/javekk/rusty-chess/internal/model"
	"github.com/javekk/rusty-chess/internal/store"
)

type GameService struct {
	gameManager *GameManager
	archive     store.Archive
}

func NewGameService(gameManager *GameManager, archive store.Archive) *GameService {
	return &GameService{
		gameManager: gameManager,
		archive:     archive,
	}
}

// CreateGame starts a new game with the creator in the white seat.
func (gs *GameService) CreateGame(playerID string) (string, error) {
	gameID := uuid.New().String()

	session, err := gs.gameManager.CreateGame(gameID)
	if err != nil {
		return "", fmt.Errorf("failed to create game: %w", err)
	}
	if _, err := session.AddPlayer(playerID); err != nil {
		return "", fmt.Errorf("failed to seat creator: %w", err)
	}
	return gameID, nil
}

func (gs *GameService) JoinGame(gameID string, playerID string) (model.Color, error) {
	return gs.gameManager.AddPlayerToGame(gameID, playerID)
}

func (gs *GameService) JoinMatchmaking(playerID string) error {
	return gs.gameManager.JoinMatchmaking(playerID)
}

func (gs *GameService) RunMatchmaking(ctx context.Context, interval time.Duration) error {
	return gs.gameManager.RunMatchmaking(ctx, interval)
}

func (gs *GameService) GetGameState(gameID string) (GameState, error) {
	session, err := gs.gameManager.GetSession(gameID)
	if err != nil {
		return GameState{}, err
	}
	return session.State(), nil
}

func (gs *GameService) HandleMove(gameID, playerID string, from, to model.Position) (GameState, error) {
	session, err := gs.gameManager.GetSession(gameID)
	if err != nil {
		return GameState{}, err
	}
	return session.Move(playerID, from, to)
}

func (gs *GameService) Undo(gameID, playerID string) (bool, GameState, error) {
	session, err := gs.gameManager.GetSession(gameID)
	if err != nil {
		return false, GameState{}, err
	}
	return session.Undo(playerID)
}

func (gs *GameService) Redo(gameID, playerID string) (bool, GameState, error) {
	session, err := gs.gameManager.GetSession(gameID)
	if err != nil {
		return false, GameState{}, err
	}
	return session.Redo(playerID)
}

func (gs *GameService) Restart(ctx context.Context, gameID, playerID string) (GameState, error) {
	session, err := gs.gameManager.GetSession(gameID)
	if err != nil {
		return GameState{}, err
	}
	return session.Restart(ctx, playerID)
}

func (gs *GameService) LegalMoves(gameID string, from model.Position) ([]model.Position, error) {
	session, err := gs.gameManager.GetSession(gameID)
	if err != nil {
		return nil, err
	}
	return session.LegalMoves(from), nil
}

func (gs *GameService) Archived(ctx context.Context, gameID string) ([]store.ArchivedGame, error) {
	if _, err := gs.gameManager.GetSession(gameID); err != nil {
		return nil, err
	}
	return gs.archive.List(ctx, gameID)
}

func (gs *GameService) RegisterConnection(gameID string, playerID string, conn Conn) error {
	session, err := gs.gameManager.GetSession(gameID)
	if err != nil {
		return err
	}
	return session.RegisterConnection(playerID, conn)
}

func (gs *GameService) UnregisterConnection(gameID string, playerID string, conn Conn) {
	session, err := gs.gameManager.GetSession(gameID)
	if err != nil {
		return
	}
	session.UnregisterConnection(playerID, conn)
}

func (gs *GameService) RegisterMatchmakingChannel(playerID string, ch chan MatchFoundEvent) {
	gs.gameManager.RegisterMatchmakingChannel(playerID, ch)
}

func (gs *GameService) UnregisterMatchmakingChannel(playerID string) {
	gs.gameManager.UnregisterMatchmakingChannel(playerID)
}

// LeaveMatchmaking takes playerID out of the queue and drops its channel.
func (gs *GameService) LeaveMatchmaking(playerID string) {
	gs.gameManager.queue.Remove(playerID)
	gs.gameManager.UnregisterMatchmakingChannel(playerID)
}
