package model

// MoveRecord is one entry of a game's history. Captured is nil when the
// destination square was empty.
type MoveRecord struct {
	From     Position `json:"from"`
	To       Position `json:"to"`
	Piece    Piece    `json:"piece"`
	Captured *Piece   `json:"capturedPiece"`
	Notation string   `json:"notation"`
}

func newMoveRecord(from, to Position, piece Piece, captured *Piece) MoveRecord {
	return MoveRecord{
		From:     from,
		To:       to,
		Piece:    piece,
		Captured: captured,
		Notation: notation(from, to, piece, captured),
	}
}

func (r MoveRecord) clone() MoveRecord {
	r.Captured = clonePiece(r.Captured)
	return r
}

// notation renders a short algebraic form of the move, e.g. "Nf3" or "exd5".
func notation(from, to Position, piece Piece, captured *Piece) string {
	prefix := piece.Type.Letter()
	capture := ""
	if captured != nil {
		capture = "x"
		if piece.Type == Pawn {
			prefix = from.fileNotation()
		}
	}
	return prefix + capture + to.String()
}

// SimpleMove is a from/to pair without any history detail.
type SimpleMove struct {
	From Position `json:"from"`
	To   Position `json:"to"`
}
