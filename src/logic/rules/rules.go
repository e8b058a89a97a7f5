// Package rules answers legality questions about a board: check, checkmate,
// stalemate and whether a single move leaves the mover's king safe.
//
// Every answer is derived from two threat maps, one per colour, rebuilt from
// the board on each query. Move simulation applies the move to the shared
// board, measures, and reverts it before returning, so an Engine serialises
// its public methods.
package rules

import (
	"sync"

	"chessrules/src/base"
	"chessrules/src/board"
	"chessrules/src/logic/rules/moves"
	"chessrules/src/logx"
)

type Engine struct {
	mu      sync.Mutex
	board   *board.Board
	maps    [2]*ThreatMap
	checked [2]bool
	logger  logx.Logger
}

type Option func(*Engine)

func WithLogger(l logx.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// NewEngine borrows b; the engine must not outlive it. Maps are built at once.
func NewEngine(b *board.Board, opts ...Option) *Engine {
	e := &Engine{
		board:  b,
		maps:   [2]*ThreatMap{NewThreatMap(base.White), NewThreatMap(base.Black)},
		logger: logx.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.update()
	return e
}

func (e *Engine) Board() *board.Board { return e.board }

// Update recomputes both threat maps. Call it after any board mutation made
// outside the engine.
func (e *Engine) Update() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.update()
}

func (e *Engine) update() {
	e.maps[base.White].Build(e.board, e.logger)
	e.maps[base.Black].Build(e.board, e.logger)
}

// Threats returns a copy of the freshly built threat map of c.
func (e *Engine) Threats(c base.Color) [64][]board.PieceID {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.update()
	return e.maps[c].Snapshot()
}

func (e *Engine) IsInCheck(c base.Color) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.inCheck(c)
}

func (e *Engine) inCheck(c base.Color) bool {
	e.update()
	ks := e.board.KingSquare(c)
	in := ks.Valid() && e.maps[c.Opposite()].Threatened(ks)
	if in != e.checked[c] {
		e.checked[c] = in
		if in {
			e.logger.Debugf("%v king on %v is in check", c, ks)
		} else {
			e.logger.Debugf("%v king is out of check", c)
		}
	}
	return in
}

// TestMove reports whether moving id to sq leaves its own king safe. The
// board is restored before it returns.
func (e *Engine) TestMove(id board.PieceID, sq base.Square) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.testMove(id, sq)
}

func (e *Engine) testMove(id board.PieceID, to base.Square) bool {
	p := e.board.Piece(id)
	if !p.OnBoard() || !to.Valid() || to == p.Square {
		return false
	}
	if q, ok := e.board.Occupant(to); ok && q.Color == p.Color {
		return false
	}

	u := e.board.Apply(id, to)
	defer func() {
		e.board.Revert(u)
		e.update()
	}()

	e.update()
	return e.kingSafe(p.Color)
}

// kingSafe looks at the opposing threat map and, since kings are left out of
// the maps, at the opposing king's own reach.
func (e *Engine) kingSafe(c base.Color) bool {
	ks := e.board.KingSquare(c)
	if !ks.Valid() {
		return true
	}
	opp := c.Opposite()
	if e.maps[opp].Threatened(ks) {
		return false
	}
	if k := e.board.King(opp); k != board.NoPiece && moves.Reaches(e.board, k, ks) {
		return false
	}
	return true
}

// attacked is the threat-map test for a king destination. Pawn pushes reach
// a square without attacking it and are skipped.
func (e *Engine) attacked(by base.Color, sq base.Square) bool {
	for _, id := range e.maps[by].At(sq) {
		p := e.board.Piece(id)
		if p.Kind == base.Pawn && p.Square.File() == sq.File() {
			continue
		}
		return true
	}
	return false
}

// Escapes splits the answer to a check by how each square resolves it.
type Escapes struct {
	Evade   base.SquareSet
	Capture base.SquareSet
	Block   base.SquareSet
}

func (x Escapes) All() base.SquareSet {
	return x.Evade.Union(x.Capture).Union(x.Block)
}

// Escapes returns the escape classes for c and whether c is in check. When
// not in check the classes are empty.
func (e *Engine) Escapes(c base.Color) (Escapes, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.escapes(c)
}

// CheckEscapeMoves returns every square when c is not in check, otherwise
// the squares some piece of c can move to that resolve the check.
func (e *Engine) CheckEscapeMoves(c base.Color) base.SquareSet {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.checkEscapeMoves(c)
}

func (e *Engine) checkEscapeMoves(c base.Color) base.SquareSet {
	x, in := e.escapes(c)
	if !in {
		return base.AllSquares
	}
	return x.All()
}

func (e *Engine) escapes(c base.Color) (Escapes, bool) {
	if !e.inCheck(c) {
		return Escapes{}, false
	}

	king := e.board.King(c)
	ks := e.board.KingSquare(c)
	threats := copyIDs(e.maps[c.Opposite()].At(ks))

	var x Escapes
	x.Evade = e.evade(c, king)
	if len(threats) == 1 {
		attacker := e.board.Piece(threats[0])
		x.Capture = e.capture(c, king, attacker.Square)
		x.Block = e.block(c, ks, attacker)
	}
	e.logger.Debugf("%v escapes: evade [%v] capture [%v] block [%v]", c, x.Evade, x.Capture, x.Block)
	return x, true
}

func (e *Engine) evade(c base.Color, king board.PieceID) base.SquareSet {
	var out base.SquareSet
	for _, sq := range moves.Pseudo(e.board, king) {
		if e.attacked(c.Opposite(), sq) {
			continue
		}
		if e.testMove(king, sq) {
			out = out.Add(sq)
		}
	}
	return out
}

// capture is only asked for single-attacker checks.
func (e *Engine) capture(c base.Color, king board.PieceID, target base.Square) base.SquareSet {
	if moves.Reaches(e.board, king, target) && e.testMove(king, target) {
		return base.SetOf(target)
	}
	for _, id := range copyIDs(e.maps[c].At(target)) {
		if e.testMove(id, target) {
			return base.SetOf(target)
		}
	}
	return 0
}

// block walks the line between king and a single sliding attacker. Diagonal
// lines only count for bishops and queens, files and ranks for rooks and
// queens.
func (e *Engine) block(c base.Color, ks base.Square, attacker board.PieceState) base.SquareSet {
	diagonal := moves.Diagonal(ks, attacker.Square)
	switch attacker.Kind {
	case base.Queen:
	case base.Bishop:
		if !diagonal {
			return 0
		}
	case base.Rook:
		if diagonal {
			return 0
		}
	default:
		return 0
	}

	var out base.SquareSet
	for _, sq := range moves.Between(ks, attacker.Square) {
		for _, id := range copyIDs(e.maps[c].At(sq)) {
			if e.testMove(id, sq) {
				out = out.Add(sq)
				break
			}
		}
	}
	return out
}

func (e *Engine) IsCheckmated(c base.Color) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	x, in := e.escapes(c)
	return in && x.All().IsEmpty()
}

func (e *Engine) IsStalemated(c base.Color) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return !e.inCheck(c) && !e.hasLegalMove(c)
}

// LegalMoves returns the destinations of id that are pseudo-legal, allowed by
// the current check state and pass TestMove.
func (e *Engine) LegalMoves(id board.PieceID) []base.Square {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.legalMoves(id, e.checkEscapeMoves(e.board.Piece(id).Color))
}

// LegalMovesAt is LegalMoves for whatever stands on sq.
func (e *Engine) LegalMovesAt(sq base.Square) []base.Square {
	e.mu.Lock()
	defer e.mu.Unlock()
	id := e.board.At(sq)
	if id == board.NoPiece {
		return nil
	}
	return e.legalMoves(id, e.checkEscapeMoves(e.board.Piece(id).Color))
}

func (e *Engine) legalMoves(id board.PieceID, allowed base.SquareSet) []base.Square {
	var out []base.Square
	for _, sq := range moves.Pseudo(e.board, id) {
		if allowed.Has(sq) && e.testMove(id, sq) {
			out = append(out, sq)
		}
	}
	return out
}

func (e *Engine) hasLegalMove(c base.Color) bool {
	allowed := e.checkEscapeMoves(c)
	for _, id := range e.board.Live(c) {
		if len(e.legalMoves(id, allowed)) > 0 {
			return true
		}
	}
	return false
}

// AllLegalMoves lists every legal move of c.
func (e *Engine) AllLegalMoves(c base.Color) []base.Move {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.allLegalMoves(c)
}

func (e *Engine) allLegalMoves(c base.Color) []base.Move {
	allowed := e.checkEscapeMoves(c)
	var out []base.Move
	for _, id := range e.board.Live(c) {
		from := e.board.Piece(id).Square
		for _, to := range e.legalMoves(id, allowed) {
			out = append(out, base.Move{From: from, To: to})
		}
	}
	return out
}

// Status classifies the position for the side c.
func (e *Engine) Status(c base.Color) base.GameStatus {
	e.mu.Lock()
	defer e.mu.Unlock()
	x, in := e.escapes(c)
	switch {
	case in && x.All().IsEmpty():
		return base.Checkmate
	case in:
		return base.Check
	case !e.hasLegalMove(c):
		return base.Stalemate
	}
	return base.Pass
}

func copyIDs(ids []board.PieceID) []board.PieceID {
	return append([]board.PieceID(nil), ids...)
}
