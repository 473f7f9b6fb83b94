package service

import "github.com/javekk/rusty-chess/internal/model"

// GameState is what clients see of a session.
type GameState struct {
	ID             string             `json:"id"`
	Board          model.Grid         `json:"board"`
	ToMove         model.Color        `json:"toMove"`
	MoveHistory    []model.MoveRecord `json:"moveHistory"`
	CanUndo        bool               `json:"canUndo"`
	CanRedo        bool               `json:"canRedo"`
	CapturedPieces CapturedPieces     `json:"capturedPieces"`
	Players        Players            `json:"players"`
	LastMove       *model.SimpleMove  `json:"lastMove"`
}

// CapturedPieces lists taken pieces by the color of the piece taken.
type CapturedPieces struct {
	White []model.Piece `json:"white"`
	Black []model.Piece `json:"black"`
}

type Players struct {
	White ClientPlayer `json:"white"`
	Black ClientPlayer `json:"black"`
}

type ClientPlayer struct {
	ID string `json:"id"`
}

// MatchFoundEvent is sent to each player paired by matchmaking.
type MatchFoundEvent struct {
	GameID string      `json:"gameId"`
	Color  model.Color `json:"color"`
}

func newGameState(id string, g *model.Game, white, black string) GameState {
	state := GameState{
		ID:          id,
		Board:       g.Snapshot(),
		ToMove:      g.ToMove(),
		MoveHistory: g.History(),
		CanUndo:     g.CanUndo(),
		CanRedo:     g.CanRedo(),
		CapturedPieces: CapturedPieces{
			White: g.Captured(model.White),
			Black: g.Captured(model.Black),
		},
		Players: Players{
			White: ClientPlayer{ID: white},
			Black: ClientPlayer{ID: black},
		},
	}
	if last, ok := g.LastMove(); ok {
		state.LastMove = &model.SimpleMove{From: last.From, To: last.To}
	}
	return state
}
