package controller

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/gofiber/websocket/v2"
	"github.com/rs/zerolog/log"

	"github.com/javekk/rusty-chess/internal/middleware"
	"github.com/javekk/rusty-chess/internal/model"
	"github.com/javekk/rusty-chess/internal/service"
	"github.com/javekk/rusty-chess/internal/ws"
)

type WebSocketController struct {
	gameService *service.GameService
}

func NewWebSocketController(gameService *service.GameService) *WebSocketController {
	return &WebSocketController{
		gameService: gameService,
	}
}

// lockedConn serialises writes; broadcasts from other players' commands and
// this connection's own error replies share it.
type lockedConn struct {
	*websocket.Conn
	mu sync.Mutex
}

func (l *lockedConn) WriteJSON(v interface{}) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.Conn.WriteJSON(v)
}

func (l *lockedConn) WriteMessage(messageType int, data []byte) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.Conn.WriteMessage(messageType, data)
}

// HandleConnection is called when a new WebSocket connection is established
func (wsc *WebSocketController) HandleConnection(raw *websocket.Conn) {
	c := &lockedConn{Conn: raw}
	gameID := raw.Params("gameId")
	playerID, _ := raw.Locals(middleware.PlayerIDKey).(string)
	logger := log.With().Str("gameId", gameID).Str("playerId", playerID).Logger()

	if err := wsc.gameService.RegisterConnection(gameID, playerID, c); err != nil {
		logger.Warn().Err(err).Msg("register connection")
		wsc.sendError(c, err.Error())
		c.Close()
		return
	}
	defer wsc.gameService.UnregisterConnection(gameID, playerID, c)

	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			logger.Debug().Err(err).Msg("connection closed")
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var msg ws.Message
		if err := json.Unmarshal(message, &msg); err != nil {
			logger.Debug().Err(err).Msg("parse message")
			wsc.sendError(c, "malformed message")
			continue
		}
		if err := wsc.handleMessage(gameID, playerID, msg); err != nil {
			logger.Debug().Err(err).Str("type", string(msg.Type)).Msg("handle message")
			wsc.sendError(c, err.Error())
		}
	}
}

// handleMessage applies one client command. Successful commands reach the
// client through the session broadcast.
func (wsc *WebSocketController) handleMessage(gameID, playerID string, msg ws.Message) error {
	switch msg.Type {
	case ws.MessageTypeMove:
		var payload ws.MovePayload
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			return err
		}
		from, err := model.ParsePosition(payload.From)
		if err != nil {
			return err
		}
		to, err := model.ParsePosition(payload.To)
		if err != nil {
			return err
		}
		_, err = wsc.gameService.HandleMove(gameID, playerID, from, to)
		return err

	case ws.MessageTypeUndo:
		undone, _, err := wsc.gameService.Undo(gameID, playerID)
		if err == nil && !undone {
			return fmt.Errorf("nothing to undo")
		}
		return err

	case ws.MessageTypeRedo:
		redone, _, err := wsc.gameService.Redo(gameID, playerID)
		if err == nil && !redone {
			return fmt.Errorf("nothing to redo")
		}
		return err

	case ws.MessageTypeRestart:
		_, err := wsc.gameService.Restart(context.Background(), gameID, playerID)
		return err

	default:
		return fmt.Errorf("unknown message type: %s", msg.Type)
	}
}

// HandleMatchmaking waits for the caller's match and sends it as a
// matchFound message. Closing the connection leaves the queue.
func (wsc *WebSocketController) HandleMatchmaking(c *websocket.Conn) {
	playerID, _ := c.Locals(middleware.PlayerIDKey).(string)
	ch := make(chan service.MatchFoundEvent, 1)
	wsc.gameService.RegisterMatchmakingChannel(playerID, ch)

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := c.ReadMessage(); err != nil {
				return
			}
		}
	}()
	// the conn is pooled once the handler returns; stop the reader first
	defer func() {
		c.SetReadDeadline(time.Now())
		<-closed
	}()

	select {
	case event, ok := <-ch:
		if !ok {
			// replaced by a newer matchmaking connection
			return
		}
		msg, err := ws.NewMessage(ws.MessageTypeMatchFound, event)
		if err != nil {
			log.Error().Err(err).Msg("marshal match event")
			return
		}
		if err := c.WriteJSON(msg); err != nil {
			log.Warn().Err(err).Str("playerId", playerID).Msg("send match event")
		}
	case <-closed:
		wsc.gameService.LeaveMatchmaking(playerID)
	}
}

// Helper method to send error messages
func (wsc *WebSocketController) sendError(c service.Conn, errorMsg string) {
	msg, err := ws.NewMessage(ws.MessageTypeError, ws.ErrorPayload{Error: errorMsg})
	if err != nil {
		return
	}
	if err := c.WriteJSON(msg); err != nil {
		log.Debug().Err(err).Msg("send error message")
	}
}
