package rules

import (
	"chessrules/src/base"
	"chessrules/src/board"
	"chessrules/src/logic/rules/moves"
	"chessrules/src/logx"
)

// ThreatMap maps every square to the pieces of one colour that can move onto
// it pseudo-legally. Kings never contribute.
type ThreatMap struct {
	color   base.Color
	squares [64][]board.PieceID
}

func NewThreatMap(c base.Color) *ThreatMap {
	return &ThreatMap{color: c}
}

func (t *ThreatMap) Color() base.Color { return t.color }

// Build recomputes the map from scratch. Pieces that lost their square
// without leaving the live list are pruned from it here.
func (t *ThreatMap) Build(b *board.Board, logger logx.Logger) {
	for i := range t.squares {
		t.squares[i] = t.squares[i][:0]
	}

	for _, id := range b.Live(t.color) {
		p := b.Piece(id)
		if p.Kind == base.King {
			continue
		}
		if !p.OnBoard() {
			b.Prune(id)
			logger.Debugf("pruned stale %v (piece %d) from live list", p.Piece, id)
			continue
		}
		for _, sq := range moves.Pseudo(b, id) {
			t.squares[sq] = append(t.squares[sq], id)
		}
	}
}

// At returns the pieces reaching sq. The slice is owned by the map and is
// only valid until the next Build.
func (t *ThreatMap) At(sq base.Square) []board.PieceID {
	if !sq.Valid() {
		return nil
	}
	return t.squares[sq]
}

func (t *ThreatMap) Threatened(sq base.Square) bool {
	return len(t.At(sq)) > 0
}

// Reach returns the set of squares with at least one entry.
func (t *ThreatMap) Reach() base.SquareSet {
	var s base.SquareSet
	for sq, ids := range t.squares {
		if len(ids) > 0 {
			s = s.Add(base.Square(sq))
		}
	}
	return s
}

// Snapshot copies the map contents.
func (t *ThreatMap) Snapshot() [64][]board.PieceID {
	var out [64][]board.PieceID
	for sq, ids := range t.squares {
		if len(ids) > 0 {
			out[sq] = append([]board.PieceID(nil), ids...)
		}
	}
	return out
}
