package model

import (
	"errors"
	"fmt"
)

var (
	ErrNoPieceAtSource   = errors.New("no piece at source square")
	ErrWrongSideToMove   = errors.New("not your piece")
	ErrIllegalMove       = errors.New("illegal move")
	ErrInvalidCoordinate = errors.New("invalid coordinate")
)

// MoveError wraps a rejected move with the squares involved.
type MoveError struct {
	From Position
	To   Position
	Err  error
}

func (e *MoveError) Error() string {
	return fmt.Sprintf("move %s-%s: %v", e.From, e.To, e.Err)
}

func (e *MoveError) Unwrap() error {
	return e.Err
}
