// Package store keeps the move logs of games that were restarted, so a
// position abandoned with "new game" can still be reviewed.
//
// The live game state never depends on the archive; it is written after
// the fact and read only through the archive endpoint.
package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/javekk/rusty-chess/internal/model"
)

// ArchivedMove is the stored form of a model.MoveRecord.
type ArchivedMove struct {
	From     string `json:"from"`
	To       string `json:"to"`
	Piece    string `json:"piece"`
	Captured string `json:"captured,omitempty"`
	Notation string `json:"notation"`
}

type ArchivedGame struct {
	ID         string         `json:"id"`
	GameID     string         `json:"gameId"`
	Moves      []ArchivedMove `json:"moves"`
	ArchivedAt time.Time      `json:"archivedAt"`
}

// Archive persists finished move logs.
type Archive interface {
	// Save stores an archived game. Saving the same ID twice replaces it.
	Save(ctx context.Context, g ArchivedGame) error

	// List returns the archived games of gameID, oldest first.
	List(ctx context.Context, gameID string) ([]ArchivedGame, error)

	Close() error
}

// ArchiveMoves converts a played history into its stored form.
func ArchiveMoves(history []model.MoveRecord) []ArchivedMove {
	moves := make([]ArchivedMove, 0, len(history))
	for _, record := range history {
		m := ArchivedMove{
			From:     record.From.String(),
			To:       record.To.String(),
			Piece:    record.Piece.String(),
			Notation: record.Notation,
		}
		if record.Captured != nil {
			m.Captured = record.Captured.String()
		}
		moves = append(moves, m)
	}
	return moves
}

type memory struct {
	mu    sync.RWMutex
	games map[string][]ArchivedGame // keyed by GameID
}

func NewMemoryArchive() Archive {
	return &memory{games: make(map[string][]ArchivedGame)}
}

func (m *memory) Save(ctx context.Context, g ArchivedGame) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	games := m.games[g.GameID]
	for i := range games {
		if games[i].ID == g.ID {
			games[i] = g
			return nil
		}
	}
	m.games[g.GameID] = append(games, g)
	return nil
}

func (m *memory) List(ctx context.Context, gameID string) ([]ArchivedGame, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	games := make([]ArchivedGame, len(m.games[gameID]))
	copy(games, m.games[gameID])
	sort.SliceStable(games, func(i, j int) bool {
		return games[i].ArchivedAt.Before(games[j].ArchivedAt)
	})
	return games, nil
}

func (m *memory) Close() error { return nil }
