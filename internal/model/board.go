package model

import "strings"

// Grid is a read-only copy of the board, indexed [row][col]. Nil means empty.
type Grid [BoardSize][BoardSize]*Piece

// Board holds piece placement only. It knows nothing about the rules.
type Board struct {
	squares [BoardSize][BoardSize]*Piece
}

var backRank = [BoardSize]PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

func NewBoard() *Board {
	board := EmptyBoard()
	for col := 0; col < BoardSize; col++ {
		board.squares[0][col] = &Piece{Type: backRank[col], Color: Black}
		board.squares[1][col] = &Piece{Type: Pawn, Color: Black}
		board.squares[6][col] = &Piece{Type: Pawn, Color: White}
		board.squares[7][col] = &Piece{Type: backRank[col], Color: White}
	}
	return board
}

func EmptyBoard() *Board {
	return &Board{}
}

// PieceAt returns a copy of the piece on pos, or nil when the square is
// empty or pos is off the board.
func (b *Board) PieceAt(pos Position) *Piece {
	if !pos.IsValid() {
		return nil
	}
	return clonePiece(b.squares[pos.Row][pos.Col])
}

// SetPiece places piece on pos, clearing the square when piece is nil.
// It reports false and leaves the board untouched when pos is off the board.
func (b *Board) SetPiece(pos Position, piece *Piece) bool {
	if !pos.IsValid() {
		return false
	}
	b.squares[pos.Row][pos.Col] = clonePiece(piece)
	return true
}

// MovePiece relocates whatever stands on from to to, without any legality
// checks, and returns the piece that was on to.
func (b *Board) MovePiece(from, to Position) *Piece {
	if !from.IsValid() || !to.IsValid() {
		return nil
	}
	piece := b.squares[from.Row][from.Col]
	if piece == nil {
		return nil
	}
	captured := b.squares[to.Row][to.Col]
	b.squares[from.Row][from.Col] = nil
	b.squares[to.Row][to.Col] = piece
	return captured
}

func (b *Board) Snapshot() Grid {
	var grid Grid
	for row := range b.squares {
		for col := range b.squares[row] {
			grid[row][col] = clonePiece(b.squares[row][col])
		}
	}
	return grid
}

func (b *Board) isEmpty(pos Position) bool {
	return b.squares[pos.Row][pos.Col] == nil
}

// String draws the board from White's side with rank and file labels.
func (b *Board) String() string {
	var sb strings.Builder
	for row := 0; row < BoardSize; row++ {
		sb.WriteByte(byte('8' - row))
		for col := 0; col < BoardSize; col++ {
			sb.WriteByte(' ')
			if piece := b.squares[row][col]; piece != nil {
				sb.WriteString(piece.Symbol())
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("  a b c d e f g h\n")
	return sb.String()
}

func clonePiece(p *Piece) *Piece {
	if p == nil {
		return nil
	}
	c := *p
	return &c
}
