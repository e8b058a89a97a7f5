package errs

import (
	"errors"
	"strings"
	"testing"
)

func TestMoveErrorUnwrap(t *testing.T) {
	err := &MoveError{Err: ErrIllegalMove, Move: "e2e5", Ply: 3}
	if !errors.Is(err, ErrIllegalMove) {
		t.Error("errors.Is(MoveError, ErrIllegalMove) = false")
	}
	if !strings.Contains(err.Error(), "ply 3") || !strings.Contains(err.Error(), "e2e5") {
		t.Errorf("Error() = %q", err.Error())
	}

	var me *MoveError
	wrapped := Wrap(err, "play")
	if !errors.As(wrapped, &me) || me.Move != "e2e5" {
		t.Errorf("errors.As through Wrap failed: %v", wrapped)
	}
}

func TestWrapNil(t *testing.T) {
	if Wrap(nil, "x") != nil {
		t.Error("Wrap(nil) != nil")
	}
	if Wrapf(nil, "x %d", 1) != nil {
		t.Error("Wrapf(nil) != nil")
	}
	err := Wrapf(ErrInvalidFEN, "line %d", 4)
	if !errors.Is(err, ErrInvalidFEN) || err.Error() != "line 4: invalid FEN string" {
		t.Errorf("Wrapf = %v", err)
	}
}
