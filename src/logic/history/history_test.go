package history

import (
	"errors"
	"testing"

	"chessrules/src/base"
	"chessrules/src/board"
	"chessrules/src/errs"
	"chessrules/src/testutil"

	"github.com/google/go-cmp/cmp"
)

func mv(t *testing.T, s string) base.Move {
	t.Helper()
	m, err := base.MoveFromCoord(s)
	testutil.AssertNoError(t, err)
	return m
}

func play(t *testing.T, h *History, b *board.Board, moves ...string) {
	t.Helper()
	for _, s := range moves {
		_, err := h.Push(b, mv(t, s))
		testutil.AssertNoError(t, err, s)
	}
}

func TestPushUndoRedo(t *testing.T) {
	b := board.NewClassic()
	start := b.Clone()
	h := NewHistory()

	play(t, h, b, "e2e4", "d7d5", "e4d5")
	afterCapture := b.Clone()
	testutil.AssertEqual(t, h.Len(), 3)
	testutil.AssertEqual(t, h.CurrentMove(), 3)
	testutil.AssertEqual(t, len(b.Live(base.Black)), 15)

	testutil.AssertNoError(t, h.Undo(b))
	testutil.AssertEqual(t, len(b.Live(base.Black)), 16)
	testutil.AssertNoError(t, h.Undo(b))
	testutil.AssertNoError(t, h.Undo(b))
	if diff := cmp.Diff(start, b, cmp.AllowUnexported(board.Board{})); diff != "" {
		t.Errorf("undo to start differs:\n%s", diff)
	}
	testutil.AssertTrue(t, errors.Is(h.Undo(b), errs.ErrNoHistory))

	testutil.AssertNoError(t, h.GotoMove(b, 3))
	testutil.AssertEqual(t, b.Mailbox(), afterCapture.Mailbox())
	testutil.AssertTrue(t, errors.Is(h.Redo(b), errs.ErrNoHistory))
}

func TestPushTruncatesFuture(t *testing.T) {
	b := board.NewClassic()
	h := NewHistory()
	play(t, h, b, "e2e4", "e7e5", "g1f3")

	testutil.AssertNoError(t, h.GotoMove(b, 1))
	play(t, h, b, "c7c5")

	testutil.AssertEqual(t, h.Len(), 2)
	testutil.AssertEqual(t, h.Played(), []base.Move{mv(t, "e2e4"), mv(t, "c7c5")})
	testutil.AssertTrue(t, errors.Is(h.Redo(b), errs.ErrNoHistory))
}

func TestPushEmptySquare(t *testing.T) {
	b := board.NewClassic()
	h := NewHistory()
	_, err := h.Push(b, mv(t, "e4e5"))
	testutil.AssertTrue(t, errors.Is(err, errs.ErrNoPiece))
	testutil.AssertEqual(t, h.Len(), 0)
}

func TestGotoMoveOutOfRange(t *testing.T) {
	b := board.NewClassic()
	h := NewHistory()
	play(t, h, b, "e2e4")
	testutil.AssertTrue(t, errors.Is(h.GotoMove(b, 2), errs.ErrNoHistory))
	testutil.AssertTrue(t, errors.Is(h.GotoMove(b, -1), errs.ErrNoHistory))
}

func TestMovesAsText(t *testing.T) {
	b := board.NewClassic()
	h := NewHistory()
	testutil.AssertEqual(t, h.MovesAsText(base.White), "")

	play(t, h, b, "e2e4", "e7e5", "g1f3")
	testutil.AssertEqual(t, h.MovesAsText(base.White), "1. e2e4 e7e5 2. g1f3")

	h2 := NewHistory()
	b2 := board.NewClassic()
	play(t, h2, b2, "e7e5", "e2e4", "b8c6")
	testutil.AssertEqual(t, h2.MovesAsText(base.Black), "1... e7e5 2. e2e4 b8c6")
}

func TestResultOf(t *testing.T) {
	testutil.AssertEqual(t, ResultOf(base.Checkmate, base.White), ResultBlackWins)
	testutil.AssertEqual(t, ResultOf(base.Checkmate, base.Black), ResultWhiteWins)
	testutil.AssertEqual(t, ResultOf(base.Stalemate, base.Black), ResultDraw)
	testutil.AssertEqual(t, ResultOf(base.Check, base.White), ResultOngoing)
}

func TestInfoGame(t *testing.T) {
	h := NewHistory()
	h.SetDefaultInfoGame("2025.09.07")
	info := h.InfoGame()
	testutil.AssertEqual(t, info.GetResult(), ResultOngoing)
	testutil.AssertEqual(t, info.GetDate(), "2025.09.07")

	info.SetHeaders(map[string]string{HeaderWhite: "alice"})
	testutil.AssertEqual(t, info.GetWhitePlayer(), "alice")
	headers := info.Headers()
	headers[HeaderWhite] = "changed"
	testutil.AssertEqual(t, info.GetWhitePlayer(), "alice")
}
