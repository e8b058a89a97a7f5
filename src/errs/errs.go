// Package errs holds the sentinel errors returned at the edges of the rules
// engine: position loading, game moves, storage and configuration. The engine
// itself never fails; it answers false or leaves a square out.
package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidFEN indicates a malformed FEN string.
	ErrInvalidFEN = errors.New("invalid FEN string")

	// ErrInvalidSquare indicates a square outside the board or an occupied target for placement.
	ErrInvalidSquare = errors.New("invalid square")

	// ErrIllegalMove indicates a move that is not legal in the current position.
	ErrIllegalMove = errors.New("illegal move")

	// ErrNoPiece indicates that the origin square of a move is empty.
	ErrNoPiece = errors.New("no piece on square")

	// ErrNotYourTurn indicates a move by the side that is not to move.
	ErrNotYourTurn = errors.New("not side to move")

	// ErrGameOver indicates a move request after checkmate or stalemate.
	ErrGameOver = errors.New("game is over")

	// ErrNoGame indicates a game operation before any position was loaded.
	ErrNoGame = errors.New("no game created")

	// ErrNoHistory indicates an undo or redo past the end of the history.
	ErrNoHistory = errors.New("no move to undo or redo")

	// ErrGameNotFound indicates a saved game lookup miss.
	ErrGameNotFound = errors.New("game not found")

	// ErrInvalidConfig indicates invalid configuration values.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// MoveError carries the move text that was rejected.
type MoveError struct {
	Err  error
	Move string
	Ply  int
}

func (e *MoveError) Error() string {
	if e.Ply > 0 {
		return fmt.Sprintf("ply %d, move %q: %v", e.Ply, e.Move, e.Err)
	}
	return fmt.Sprintf("move %q: %v", e.Move, e.Err)
}

func (e *MoveError) Unwrap() error {
	return e.Err
}

// Wrap adds context to err, keeping it inspectable with errors.Is.
func Wrap(err error, context string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", context, err)
}

// Wrapf is Wrap with a format string.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}
