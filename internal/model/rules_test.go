package model

import (
	"testing"
)

type placement struct {
	square string
	piece  Piece
}

func gameWith(toMove Color, pieces ...placement) *Game {
	b := EmptyBoard()
	for _, p := range pieces {
		piece := p.piece
		b.SetPiece(sq(p.square), &piece)
	}
	return NewGameFromBoard(b, toMove)
}

func TestIsValidMoveByPiece(t *testing.T) {
	wp, bp := NewPiece(Pawn, White), NewPiece(Pawn, Black)

	tests := []struct {
		name     string
		pieces   []placement
		from, to string
		want     bool
	}{
		// pawn
		{"white pawn single step", []placement{{"e2", wp}}, "e2", "e3", true},
		{"white pawn backwards", []placement{{"e3", wp}}, "e3", "e2", false},
		{"white pawn double from start", []placement{{"e2", wp}}, "e2", "e4", true},
		{"white pawn double off start", []placement{{"e3", wp}}, "e3", "e5", false},
		{"white pawn triple step", []placement{{"e2", wp}}, "e2", "e5", false},
		{"white pawn blocked ahead", []placement{{"e2", wp}, {"e3", bp}}, "e2", "e3", false},
		{"white pawn double jump blocked", []placement{{"e2", wp}, {"e3", bp}}, "e2", "e4", false},
		{"white pawn diagonal capture", []placement{{"e4", wp}, {"d5", bp}}, "e4", "d5", true},
		{"white pawn diagonal to empty", []placement{{"e4", wp}}, "e4", "f5", false},
		{"white pawn captures backwards", []placement{{"e4", wp}, {"d3", bp}}, "e4", "d3", false},
		{"white pawn sideways", []placement{{"e4", wp}}, "e4", "f4", false},
		{"black pawn single step", []placement{{"d7", bp}}, "d7", "d6", true},
		{"black pawn double from start", []placement{{"d7", bp}}, "d7", "d5", true},
		{"black pawn wrong direction", []placement{{"d5", bp}}, "d5", "d6", false},
		{"black pawn diagonal capture", []placement{{"d5", bp}, {"e4", wp}}, "d5", "e4", true},
		{"black pawn double off start", []placement{{"d6", bp}}, "d6", "d4", false},

		// rook
		{"rook along file", []placement{{"a1", NewPiece(Rook, White)}}, "a1", "a8", true},
		{"rook along rank", []placement{{"a1", NewPiece(Rook, White)}}, "a1", "h1", true},
		{"rook diagonal", []placement{{"a1", NewPiece(Rook, White)}}, "a1", "b2", false},
		{"rook blocked by own", []placement{{"a1", NewPiece(Rook, White)}, {"a4", wp}}, "a1", "a8", false},
		{"rook blocked by opponent", []placement{{"a1", NewPiece(Rook, White)}, {"a4", bp}}, "a1", "a8", false},
		{"rook captures blocker", []placement{{"a1", NewPiece(Rook, White)}, {"a4", bp}}, "a1", "a4", true},

		// bishop
		{"bishop diagonal", []placement{{"c1", NewPiece(Bishop, White)}}, "c1", "h6", true},
		{"bishop back diagonal", []placement{{"f4", NewPiece(Bishop, Black)}}, "f4", "b8", true},
		{"bishop straight", []placement{{"c1", NewPiece(Bishop, White)}}, "c1", "c4", false},
		{"bishop blocked", []placement{{"c1", NewPiece(Bishop, White)}, {"e3", bp}}, "c1", "g5", false},
		{"bishop uneven", []placement{{"c1", NewPiece(Bishop, White)}}, "c1", "e4", false},

		// queen
		{"queen as rook", []placement{{"d1", NewPiece(Queen, White)}}, "d1", "d8", true},
		{"queen as bishop", []placement{{"d1", NewPiece(Queen, White)}}, "d1", "h5", true},
		{"queen like knight", []placement{{"d1", NewPiece(Queen, White)}}, "d1", "e3", false},
		{"queen blocked", []placement{{"d1", NewPiece(Queen, White)}, {"f3", wp}}, "d1", "h5", false},

		// king
		{"king one step", []placement{{"e1", NewPiece(King, White)}}, "e1", "e2", true},
		{"king diagonal step", []placement{{"e1", NewPiece(King, White)}}, "e1", "f2", true},
		{"king two steps", []placement{{"e1", NewPiece(King, White)}}, "e1", "g1", false},
		{"king captures", []placement{{"e1", NewPiece(King, White)}, {"d2", bp}}, "e1", "d2", true},

		// knight
		{"knight l shape", []placement{{"g1", NewPiece(Knight, White)}}, "g1", "f3", true},
		{"knight straight", []placement{{"g1", NewPiece(Knight, White)}}, "g1", "g3", false},
		{"knight diagonal", []placement{{"g1", NewPiece(Knight, White)}}, "g1", "h2", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := gameWith(White, tt.pieces...)
			if got := g.IsValidMove(sq(tt.from), sq(tt.to)); got != tt.want {
				t.Errorf("IsValidMove(%s, %s) = %v; want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestIsValidMoveGuards(t *testing.T) {
	g := NewGame()
	if g.IsValidMove(sq("e2"), sq("e2")) {
		t.Error("null move accepted")
	}
	if g.IsValidMove(sq("e4"), sq("e5")) {
		t.Error("move from empty square accepted")
	}
	if g.IsValidMove(sq("h1"), Position{Row: 7, Col: 8}) {
		t.Error("move off the board accepted")
	}
	// the predicate ignores turn order
	if !g.IsValidMove(sq("e7"), sq("e5")) {
		t.Error("black pawn double step rejected on white's turn")
	}
}

func TestSliderBlockedThenCleared(t *testing.T) {
	tests := []struct {
		name     string
		piece    Piece
		from, to string
		blocker  string
	}{
		{"rook", NewPiece(Rook, White), "a1", "a8", "a5"},
		{"rook rank", NewPiece(Rook, Black), "h8", "a8", "d8"},
		{"bishop", NewPiece(Bishop, White), "b2", "g7", "e5"},
		{"queen", NewPiece(Queen, Black), "h8", "a1", "c3"},
	}
	for _, tt := range tests {
		for _, blockerColor := range []Color{White, Black} {
			t.Run(tt.name+" "+string(blockerColor), func(t *testing.T) {
				blocker := NewPiece(Knight, blockerColor)
				g := gameWith(tt.piece.Color, placement{tt.from, tt.piece}, placement{tt.blocker, blocker})

				if err := g.MakeMove(sq(tt.from), sq(tt.to)); err == nil {
					t.Fatalf("move through %s succeeded", tt.blocker)
				}
				g.Board().SetPiece(sq(tt.blocker), nil)
				if err := g.MakeMove(sq(tt.from), sq(tt.to)); err != nil {
					t.Fatalf("move after clearing %s: %v", tt.blocker, err)
				}
			})
		}
	}
}

func TestKnightJumpsOverPieces(t *testing.T) {
	targets := []string{"b3", "b5", "c2", "c6", "e2", "e6", "f3", "f5"}
	ring := []string{"c3", "c4", "c5", "d3", "d5", "e3", "e4", "e5"}

	for _, to := range targets {
		t.Run(to, func(t *testing.T) {
			pieces := []placement{{"d4", NewPiece(Knight, White)}}
			for _, s := range ring {
				pieces = append(pieces, placement{s, NewPiece(Pawn, White)})
			}
			g := gameWith(White, pieces...)
			if err := g.MakeMove(sq("d4"), sq(to)); err != nil {
				t.Errorf("knight d4-%s: %v", to, err)
			}
		})
	}

	if got := len(gameWith(White, placement{"d4", NewPiece(Knight, White)}).LegalMoves(sq("d4"))); got != 8 {
		t.Errorf("knight on d4 has %d moves; want 8", got)
	}
}
