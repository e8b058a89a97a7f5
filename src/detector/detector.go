// Package detector is the surface the rest of the program talks to when it
// needs to know whether a side is in check, mated or stalemated, and which
// squares it may move to.
package detector

import (
	"chessrules/src/base"
	"chessrules/src/board"
	"chessrules/src/logic/rules"
	"chessrules/src/logx"
)

type Detector struct {
	engine *rules.Engine
	logger logx.Logger
}

func New(b *board.Board, logger logx.Logger) *Detector {
	if logger == nil {
		logger = logx.Nop()
	}
	return &Detector{
		engine: rules.NewEngine(b, rules.WithLogger(logger.With("component", "rules"))),
		logger: logger,
	}
}

func (d *Detector) Board() *board.Board { return d.engine.Board() }

// Update must be called after the board was changed by anyone but the
// detector.
func (d *Detector) Update() { d.engine.Update() }

func (d *Detector) IsInCheck(c base.Color) bool { return d.engine.IsInCheck(c) }

func (d *Detector) IsCheckmated(c base.Color) bool {
	mated := d.engine.IsCheckmated(c)
	if mated {
		d.logger.Infof("%v is checkmated", c)
	}
	return mated
}

func (d *Detector) IsStalemated(c base.Color) bool {
	stale := d.engine.IsStalemated(c)
	if stale {
		d.logger.Infof("%v is stalemated", c)
	}
	return stale
}

// AllowableSquares is the set of destinations any piece of c may use: every
// square when c is not in check, otherwise the squares that answer the check.
func (d *Detector) AllowableSquares(c base.Color) base.SquareSet {
	return d.engine.CheckEscapeMoves(c)
}

// TestMove reports whether moving the piece leaves its king safe.
func (d *Detector) TestMove(id board.PieceID, sq base.Square) bool {
	return d.engine.TestMove(id, sq)
}

// LegalMoves lists the legal destinations of one piece.
func (d *Detector) LegalMoves(id board.PieceID) []base.Square {
	return d.engine.LegalMoves(id)
}

// LegalMovesAt is LegalMoves for the piece standing on sq. An empty square
// has no moves.
func (d *Detector) LegalMovesAt(sq base.Square) []base.Square {
	return d.engine.LegalMovesAt(sq)
}

func (d *Detector) AllLegalMoves(c base.Color) []base.Move {
	return d.engine.AllLegalMoves(c)
}

func (d *Detector) Status(c base.Color) base.GameStatus {
	return d.engine.Status(c)
}
