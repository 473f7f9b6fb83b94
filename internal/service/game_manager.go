// service/game_manager.go
package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/javekk/rusty-chess/internal/model"
	"github.com/javekk/rusty-chess/internal/store"
)

type GameManager struct {
	games            map[string]*Session
	queue            *Queue
	matchingChannels map[string]chan MatchFoundEvent
	// matches found before the player registered a channel
	pendingMatches   map[string]MatchFoundEvent
	archive          store.Archive
	mu               sync.RWMutex
}

func NewGameManager(archive store.Archive) *GameManager {
	return &GameManager{
		games:            make(map[string]*Session),
		queue:            NewQueue(),
		matchingChannels: make(map[string]chan MatchFoundEvent),
		pendingMatches:   make(map[string]MatchFoundEvent),
		archive:          archive,
	}
}

func (gm *GameManager) CreateGame(gameID string) (*Session, error) {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if _, exists := gm.games[gameID]; exists {
		return nil, ErrGameExists
	}

	session := NewSession(gameID, gm.archive)
	gm.games[gameID] = session
	return session, nil
}

func (gm *GameManager) GetSession(gameID string) (*Session, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	session, exists := gm.games[gameID]
	if !exists {
		return nil, ErrGameNotFound
	}
	return session, nil
}

func (gm *GameManager) AddPlayerToGame(gameID string, playerID string) (model.Color, error) {
	session, err := gm.GetSession(gameID)
	if err != nil {
		return "", err
	}
	return session.AddPlayer(playerID)
}

func (gm *GameManager) JoinMatchmaking(playerID string) error {
	if err := gm.queue.AddPlayer(playerID); err != nil {
		return err
	}
	log.Info().Str("playerId", playerID).Int("queued", gm.queue.Size()).Msg("joined matchmaking")
	return nil
}

// RegisterMatchmakingChannel sets the channel playerID's match is delivered
// on. A previously registered channel is closed. A match found while no
// channel was registered is delivered right away, and ch is then closed.
func (gm *GameManager) RegisterMatchmakingChannel(playerID string, ch chan MatchFoundEvent) {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if existing, exists := gm.matchingChannels[playerID]; exists {
		delete(gm.matchingChannels, playerID)
		close(existing)
	}
	if event, ok := gm.pendingMatches[playerID]; ok {
		delete(gm.pendingMatches, playerID)
		deliverMatch(playerID, ch, event)
		return
	}
	gm.matchingChannels[playerID] = ch
}

// UnregisterMatchmakingChannel forgets playerID's channel without closing it;
// the registering side owns it.
func (gm *GameManager) UnregisterMatchmakingChannel(playerID string) {
	gm.mu.Lock()
	defer gm.mu.Unlock()
	delete(gm.matchingChannels, playerID)
}

// RunMatchmaking pairs queued players every interval until ctx is done.
func (gm *GameManager) RunMatchmaking(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			for gm.matchNextPair() {
			}
		}
	}
}

// matchNextPair seats the two longest waiting players in a new game and
// reports whether a pair was found.
func (gm *GameManager) matchNextPair() bool {
	first, second, ok := gm.queue.NextPair()
	if !ok {
		return false
	}

	gameID := uuid.New().String()
	session, err := gm.CreateGame(gameID)
	if err != nil {
		log.Error().Err(err).Str("gameId", gameID).Msg("create matched game")
		return true
	}
	for _, p := range []QueuedPlayer{first, second} {
		color, err := session.AddPlayer(p.PlayerID)
		if err != nil {
			log.Error().Err(err).Str("gameId", gameID).Str("playerId", p.PlayerID).Msg("seat matched player")
			continue
		}
		gm.notifyMatch(p.PlayerID, MatchFoundEvent{GameID: gameID, Color: color})
	}
	log.Info().Str("gameId", gameID).Str("white", first.PlayerID).Str("black", second.PlayerID).Msg("match found")
	return true
}

func (gm *GameManager) notifyMatch(playerID string, event MatchFoundEvent) {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	ch, ok := gm.matchingChannels[playerID]
	if !ok {
		log.Debug().Str("playerId", playerID).Str("gameId", event.GameID).Msg("holding match until channel registers")
		gm.pendingMatches[playerID] = event
		return
	}
	delete(gm.matchingChannels, playerID)
	deliverMatch(playerID, ch, event)
}

func deliverMatch(playerID string, ch chan MatchFoundEvent, event MatchFoundEvent) {
	select {
	case ch <- event:
	default:
		log.Warn().Str("playerId", playerID).Msg("matchmaking channel full")
	}
	close(ch)
}
