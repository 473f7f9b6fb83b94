package service

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/javekk/rusty-chess/internal/model"
	"github.com/javekk/rusty-chess/internal/store"
	"github.com/javekk/rusty-chess/internal/ws"
)

// Conn is the part of a WebSocket connection a session writes to.
type Conn interface {
	WriteJSON(v interface{}) error
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// The connections watching a specific game
type sessionConnections struct {
	connections map[string]Conn // playerID -> connection
	mu          sync.Mutex
}

// Session is one game plus the players and connections around it. The
// session mutex is the only thing serialising access to the game.
type Session struct {
	ID          string
	mu          sync.Mutex
	game        *model.Game
	white       string
	black       string
	connections *sessionConnections
	archive     store.Archive
}

func NewSession(id string, archive store.Archive) *Session {
	return &Session{
		ID:          id,
		game:        model.NewGame(),
		connections: &sessionConnections{connections: make(map[string]Conn)},
		archive:     archive,
	}
}

// AddPlayer seats playerID, white first. A seated player gets their seat back.
func (s *Session) AddPlayer(playerID string) (model.Color, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if color, ok := s.seatOf(playerID); ok {
		return color, nil
	}
	switch {
	case s.white == "":
		s.white = playerID
		return model.White, nil
	case s.black == "":
		s.black = playerID
		return model.Black, nil
	}
	return "", ErrGameFull
}

func (s *Session) seatOf(playerID string) (model.Color, bool) {
	switch {
	case playerID == "":
		return "", false
	case s.white == playerID:
		return model.White, true
	case s.black == playerID:
		return model.Black, true
	}
	return "", false
}

func (s *Session) IsSeated(playerID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.seatOf(playerID)
	return ok
}

func (s *Session) State() GameState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state()
}

func (s *Session) state() GameState {
	return newGameState(s.ID, s.game, s.white, s.black)
}

func (s *Session) LegalMoves(from model.Position) []model.Position {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.LegalMoves(from)
}

// Move plays from-to for playerID. With both seats taken the player may only
// move on their own turn; a lone player drives both sides.
func (s *Session) Move(playerID string, from, to model.Position) (GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	color, ok := s.seatOf(playerID)
	if !ok {
		return GameState{}, ErrNotSeated
	}
	if s.white != "" && s.black != "" && color != s.game.ToMove() {
		return GameState{}, ErrNotYourTurn
	}
	if err := s.game.MakeMove(from, to); err != nil {
		return GameState{}, err
	}

	log.Debug().Str("gameId", s.ID).Str("playerId", playerID).
		Stringer("from", from).Stringer("to", to).Msg("move played")
	state := s.state()
	s.broadcast(state)
	return state, nil
}

// Undo reports whether a move was taken back.
func (s *Session) Undo(playerID string) (bool, GameState, error) {
	return s.step(playerID, s.game.Undo)
}

// Redo reports whether an undone move was replayed.
func (s *Session) Redo(playerID string) (bool, GameState, error) {
	return s.step(playerID, s.game.Redo)
}

func (s *Session) step(playerID string, fn func() bool) (bool, GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.seatOf(playerID); !ok {
		return false, GameState{}, ErrNotSeated
	}
	changed := fn()
	state := s.state()
	if changed {
		s.broadcast(state)
	}
	return changed, state, nil
}

// Restart archives the played moves, if any, and resets the game.
func (s *Session) Restart(ctx context.Context, playerID string) (GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.seatOf(playerID); !ok {
		return GameState{}, ErrNotSeated
	}
	if history := s.game.History(); len(history) > 0 && s.archive != nil {
		archived := store.ArchivedGame{
			ID:         uuid.New().String(),
			GameID:     s.ID,
			Moves:      store.ArchiveMoves(history),
			ArchivedAt: time.Now(),
		}
		if err := s.archive.Save(ctx, archived); err != nil {
			log.Warn().Err(err).Str("gameId", s.ID).Msg("archive game before restart")
		}
	}
	s.game.Restart()

	state := s.state()
	s.broadcast(state)
	return state, nil
}

// RegisterConnection attaches conn for playerID and sends the current state.
// A second connection for the same player is closed and ignored.
func (s *Session) RegisterConnection(playerID string, conn Conn) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.connections.mu.Lock()
	if _, exists := s.connections.connections[playerID]; exists {
		s.connections.mu.Unlock()
		conn.WriteMessage(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, "Connection already exists"),
		)
		conn.Close()
		return nil
	}
	s.connections.connections[playerID] = conn
	s.connections.mu.Unlock()

	log.Debug().Str("gameId", s.ID).Str("playerId", playerID).Msg("connection registered")
	s.broadcast(s.state())
	return nil
}

func (s *Session) UnregisterConnection(playerID string, conn Conn) {
	s.connections.mu.Lock()
	defer s.connections.mu.Unlock()

	// only drop the entry if it is still this connection
	if current, ok := s.connections.connections[playerID]; ok && current == conn {
		delete(s.connections.connections, playerID)
	}
}

func (s *Session) broadcast(state GameState) {
	payload, err := json.Marshal(state)
	if err != nil {
		log.Error().Err(err).Str("gameId", s.ID).Msg("marshal game state")
		return
	}
	msg := ws.Message{Type: ws.MessageTypeGameState, Payload: json.RawMessage(payload)}

	s.connections.mu.Lock()
	defer s.connections.mu.Unlock()
	for playerID, conn := range s.connections.connections {
		if err := conn.WriteJSON(msg); err != nil {
			log.Warn().Err(err).Str("gameId", s.ID).Str("playerId", playerID).Msg("send state")
			delete(s.connections.connections, playerID)
		}
	}
}
