package model

// Game owns the board, the side to move and a linear undo/redo history.
//
// Game is not safe for concurrent use; callers sharing one between
// goroutines must serialise access themselves.
type Game struct {
	board   *Board
	toMove  Color
	history []MoveRecord
	// cursor separates played moves (before) from undone ones (at and after).
	cursor int
}

func NewGame() *Game {
	return &Game{
		board:   NewBoard(),
		toMove:  White,
		history: make([]MoveRecord, 0),
	}
}

// NewGameFromBoard starts a game on a custom position with side to move.
func NewGameFromBoard(board *Board, toMove Color) *Game {
	return &Game{
		board:   board,
		toMove:  toMove,
		history: make([]MoveRecord, 0),
	}
}

func (g *Game) Board() *Board {
	return g.board
}

func (g *Game) ToMove() Color {
	return g.toMove
}

func (g *Game) PieceAt(pos Position) *Piece {
	return g.board.PieceAt(pos)
}

func (g *Game) Snapshot() Grid {
	return g.board.Snapshot()
}

// MakeMove validates and plays a move for the side to move. Any undone moves
// are discarded.
func (g *Game) MakeMove(from, to Position) error {
	piece := g.board.PieceAt(from)
	if piece == nil {
		return &MoveError{From: from, To: to, Err: ErrNoPieceAtSource}
	}
	if piece.Color != g.toMove {
		return &MoveError{From: from, To: to, Err: ErrWrongSideToMove}
	}
	if !g.IsValidMove(from, to) {
		return &MoveError{From: from, To: to, Err: ErrIllegalMove}
	}

	captured := g.board.MovePiece(from, to)

	g.history = append(g.history[:g.cursor], newMoveRecord(from, to, *piece, captured))
	g.cursor++
	g.switchTurn()
	return nil
}

// Undo takes back the last played move. It reports false when there is
// nothing to undo.
func (g *Game) Undo() bool {
	if g.cursor == 0 {
		return false
	}
	g.cursor--
	record := g.history[g.cursor]
	g.board.SetPiece(record.From, &record.Piece)
	g.board.SetPiece(record.To, record.Captured)
	g.switchTurn()
	return true
}

// Redo replays the most recently undone move. It reports false when no
// undone move is available.
func (g *Game) Redo() bool {
	if g.cursor >= len(g.history) {
		return false
	}
	record := g.history[g.cursor]
	g.board.MovePiece(record.From, record.To)
	g.cursor++
	g.switchTurn()
	return true
}

func (g *Game) Restart() {
	g.board = NewBoard()
	g.toMove = White
	g.history = g.history[:0]
	g.cursor = 0
}

func (g *Game) CanUndo() bool {
	return g.cursor > 0
}

func (g *Game) CanRedo() bool {
	return g.cursor < len(g.history)
}

// Cursor is the number of moves currently played.
func (g *Game) Cursor() int {
	return g.cursor
}

// Len is the number of recorded moves, including undone ones.
func (g *Game) Len() int {
	return len(g.history)
}

// History returns a copy of the played moves, oldest first.
func (g *Game) History() []MoveRecord {
	played := make([]MoveRecord, g.cursor)
	for i, record := range g.history[:g.cursor] {
		played[i] = record.clone()
	}
	return played
}

// LastMove returns the most recent played move, if any.
func (g *Game) LastMove() (MoveRecord, bool) {
	if g.cursor == 0 {
		return MoveRecord{}, false
	}
	return g.history[g.cursor-1].clone(), true
}

// Captured lists the pieces of color taken in the played moves.
func (g *Game) Captured(color Color) []Piece {
	pieces := make([]Piece, 0)
	for _, record := range g.history[:g.cursor] {
		if record.Captured != nil && record.Captured.Color == color {
			pieces = append(pieces, *record.Captured)
		}
	}
	return pieces
}

// LegalMoves returns every square the piece on from may move to, in board
// order. Turn order is not taken into account.
func (g *Game) LegalMoves(from Position) []Position {
	moves := make([]Position, 0)
	if g.board.PieceAt(from) == nil {
		return moves
	}
	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			to := Position{Row: row, Col: col}
			if g.IsValidMove(from, to) {
				moves = append(moves, to)
			}
		}
	}
	return moves
}

func (g *Game) switchTurn() {
	g.toMove = g.toMove.Opponent()
}
