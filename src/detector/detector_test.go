package detector

import (
	"testing"

	"chessrules/src/base"
	"chessrules/src/board"
	"chessrules/src/logx"
	"chessrules/src/testutil"
)

func newDetector(t *testing.T, fen string) (*Detector, base.Color) {
	t.Helper()
	pos, err := board.ConvertFENToPosition(fen)
	testutil.AssertNoError(t, err, fen)
	return New(pos.Board, logx.Nop()), pos.ToMove
}

func sq(t *testing.T, s string) base.Square {
	t.Helper()
	v, err := base.SquareFromAlgebraic(s)
	testutil.AssertNoError(t, err)
	return v
}

func TestStartPosition(t *testing.T) {
	d, side := newDetector(t, base.FEN_START_GAME)

	testutil.AssertFalse(t, d.IsInCheck(side))
	testutil.AssertFalse(t, d.IsCheckmated(side))
	testutil.AssertFalse(t, d.IsStalemated(side))
	testutil.AssertEqual(t, d.AllowableSquares(side), base.AllSquares)
	testutil.AssertEqual(t, d.Status(side), base.Pass)
	testutil.AssertEqual(t, len(d.AllLegalMoves(side)), 20)
	testutil.AssertEqual(t, base.SetOf(d.LegalMovesAt(sq(t, "g1"))...), base.SetOf(sq(t, "f3"), sq(t, "h3")))
	testutil.AssertEqual(t, len(d.LegalMovesAt(sq(t, "e4"))), 0)
}

func TestFoolsMate(t *testing.T) {
	d, side := newDetector(t, "rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w - - 1 3")
	testutil.AssertEqual(t, side, base.White)

	testutil.AssertTrue(t, d.IsInCheck(base.White))
	testutil.AssertTrue(t, d.IsCheckmated(base.White))
	testutil.AssertFalse(t, d.IsStalemated(base.White))
	testutil.AssertTrue(t, d.AllowableSquares(base.White).IsEmpty())
	testutil.AssertEqual(t, d.Status(base.White), base.Checkmate)
	testutil.AssertFalse(t, d.IsInCheck(base.Black))
}

func TestUpdateAfterExternalMutation(t *testing.T) {
	d, _ := newDetector(t, "4k3/8/8/8/8/8/8/R3K3 w - - 0 1")
	testutil.AssertFalse(t, d.IsInCheck(base.Black))

	b := d.Board()
	rook := b.At(sq(t, "a1"))
	b.Apply(rook, sq(t, "a8"))
	d.Update()

	testutil.AssertTrue(t, d.IsInCheck(base.Black))
	allowed := d.AllowableSquares(base.Black)
	testutil.AssertFalse(t, allowed.Has(sq(t, "d8")), "rank 8 is covered")
	testutil.AssertTrue(t, allowed.Has(sq(t, "e7")))
}

func TestTestMoveThroughDetector(t *testing.T) {
	d, _ := newDetector(t, "4r2k/8/8/8/8/8/4R3/4K3 w - - 0 1")
	rook := d.Board().At(sq(t, "e2"))
	testutil.AssertFalse(t, d.TestMove(rook, sq(t, "a2")))
	testutil.AssertTrue(t, d.TestMove(rook, sq(t, "e8")))
	testutil.AssertEqual(t, len(d.LegalMoves(rook)), 6)
}
