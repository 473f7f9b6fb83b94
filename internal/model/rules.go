package model

// IsValidMove reports whether the piece on from may move to to under the
// geometry and occupancy rules. King safety is not considered.
func (g *Game) IsValidMove(from, to Position) bool {
	if from == to || !from.IsValid() || !to.IsValid() {
		return false
	}
	piece := g.board.PieceAt(from)
	if piece == nil {
		return false
	}
	if target := g.board.PieceAt(to); target != nil && target.Color == piece.Color {
		return false
	}

	switch piece.Type {
	case Pawn:
		return g.isValidPawnMove(from, to, piece.Color)
	case Rook:
		return g.isValidRookMove(from, to)
	case Bishop:
		return g.isValidBishopMove(from, to)
	case Queen:
		return g.isValidRookMove(from, to) || g.isValidBishopMove(from, to)
	case King:
		return abs(to.Row-from.Row) <= 1 && abs(to.Col-from.Col) <= 1
	case Knight:
		dr, dc := abs(to.Row-from.Row), abs(to.Col-from.Col)
		return (dr == 2 && dc == 1) || (dr == 1 && dc == 2)
	}
	return false
}

func pawnDirection(c Color) int {
	if c == White {
		return -1
	}
	return 1
}

func pawnStartRow(c Color) int {
	if c == White {
		return 6
	}
	return 1
}

func (g *Game) isValidPawnMove(from, to Position, color Color) bool {
	dir := pawnDirection(color)
	rowDiff := to.Row - from.Row
	colDiff := to.Col - from.Col

	switch {
	case colDiff == 0 && rowDiff == dir:
		return g.board.isEmpty(to)
	case colDiff == 0 && rowDiff == 2*dir:
		// both the skipped square and the destination must be free
		skipped := Position{Row: from.Row + dir, Col: from.Col}
		return from.Row == pawnStartRow(color) && g.board.isEmpty(skipped) && g.board.isEmpty(to)
	case abs(colDiff) == 1 && rowDiff == dir:
		// same-color targets were already rejected
		return !g.board.isEmpty(to)
	}
	return false
}

func (g *Game) isValidRookMove(from, to Position) bool {
	if from.Row != to.Row && from.Col != to.Col {
		return false
	}
	return g.isPathClear(from, to)
}

func (g *Game) isValidBishopMove(from, to Position) bool {
	dr, dc := abs(to.Row-from.Row), abs(to.Col-from.Col)
	if dr != dc || dr == 0 {
		return false
	}
	return g.isPathClear(from, to)
}

// isPathClear walks the squares strictly between two aligned squares.
func (g *Game) isPathClear(from, to Position) bool {
	rowStep, colStep := sign(to.Row-from.Row), sign(to.Col-from.Col)
	current := Position{Row: from.Row + rowStep, Col: from.Col + colStep}
	for current != to {
		if !current.IsValid() || !g.board.isEmpty(current) {
			return false
		}
		current = Position{Row: current.Row + rowStep, Col: current.Col + colStep}
	}
	return true
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}
