package model

import "fmt"

// BoardSize is the number of rows and columns on the board.
const BoardSize = 8

// Position is a square on the board. Row 0 is Black's back rank ("8"),
// column 0 is the a-file.
type Position struct {
	Row int
	Col int
}

func NewPosition(row, col int) (Position, error) {
	p := Position{Row: row, Col: col}
	if !p.IsValid() {
		return Position{}, fmt.Errorf("%w: row %d, col %d", ErrInvalidCoordinate, row, col)
	}
	return p, nil
}

// ParsePosition converts square notation such as "e4" into a Position.
func ParsePosition(notation string) (Position, error) {
	if len(notation) != 2 {
		return Position{}, fmt.Errorf("%w: %q", ErrInvalidCoordinate, notation)
	}
	file, rank := notation[0], notation[1]
	if file < 'a' || file > 'h' || rank < '1' || rank > '8' {
		return Position{}, fmt.Errorf("%w: %q", ErrInvalidCoordinate, notation)
	}
	return Position{Row: int('8' - rank), Col: int(file - 'a')}, nil
}

// MustParsePosition is ParsePosition for literals known to be valid.
func MustParsePosition(notation string) Position {
	p, err := ParsePosition(notation)
	if err != nil {
		panic(err)
	}
	return p
}

func (p Position) IsValid() bool {
	return p.Row >= 0 && p.Row < BoardSize && p.Col >= 0 && p.Col < BoardSize
}

// String returns the square notation, with '?' for an out of range field.
func (p Position) String() string {
	file, rank := byte('?'), byte('?')
	if p.Col >= 0 && p.Col < BoardSize {
		file = byte('a' + p.Col)
	}
	if p.Row >= 0 && p.Row < BoardSize {
		rank = byte('8' - p.Row)
	}
	return string([]byte{file, rank})
}

func (p Position) fileNotation() string {
	return p.String()[:1]
}

func (p Position) MarshalText() ([]byte, error) {
	if !p.IsValid() {
		return nil, fmt.Errorf("%w: row %d, col %d", ErrInvalidCoordinate, p.Row, p.Col)
	}
	return []byte(p.String()), nil
}

func (p *Position) UnmarshalText(text []byte) error {
	parsed, err := ParsePosition(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
