// Package moves generates pseudo-legal destinations per piece: movement
// pattern plus occupancy, with no regard for the mover's own king.
package moves

import (
	"chessrules/src/base"
	"chessrules/src/board"
)

var (
	knightOffsets = [8][2]int{{2, 1}, {1, 2}, {-1, 2}, {-2, 1}, {-2, -1}, {-1, -2}, {1, -2}, {2, -1}}
	kingOffsets   = [8][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}, {1, 1}, {1, -1}, {-1, 1}, {-1, -1}}

	rookDirs   = [][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	bishopDirs = [][2]int{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
	queenDirs  = [][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}, {1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
)

// Pseudo returns the pseudo-legal destinations of piece id. A piece without
// a square has none.
func Pseudo(b *board.Board, id board.PieceID) []base.Square {
	p := b.Piece(id)
	if !p.OnBoard() {
		return nil
	}
	out := make([]base.Square, 0, 28)
	switch p.Kind {
	case base.Pawn:
		genPawn(b, p, &out)
	case base.Knight:
		jumps(b, p, knightOffsets[:], &out)
	case base.Bishop:
		genSliding(b, p, bishopDirs, &out)
	case base.Rook:
		genSliding(b, p, rookDirs, &out)
	case base.Queen:
		genSliding(b, p, queenDirs, &out)
	case base.King:
		jumps(b, p, kingOffsets[:], &out)
	}
	return out
}

// PseudoSet is Pseudo as a square set.
func PseudoSet(b *board.Board, id board.PieceID) base.SquareSet {
	return base.SetOf(Pseudo(b, id)...)
}

// Reaches reports whether sq is among the pseudo-legal destinations of id.
func Reaches(b *board.Board, id board.PieceID, sq base.Square) bool {
	for _, d := range Pseudo(b, id) {
		if d == sq {
			return true
		}
	}
	return false
}

func isEnemy(b *board.Board, c base.Color, sq base.Square) bool {
	q, ok := b.Occupant(sq)
	return ok && q.Color != c
}

func isEmpty(b *board.Board, sq base.Square) bool {
	return b.At(sq) == board.NoPiece
}

// PawnDirection is +1 rank for White, -1 for Black.
func PawnDirection(c base.Color) int {
	if c == base.White {
		return 1
	}
	return -1
}

func genPawn(b *board.Board, p board.PieceState, out *[]base.Square) {
	dir := PawnDirection(p.Color)

	// forward one, then two from the unmoved state
	if one, ok := p.Square.Offset(0, dir); ok && isEmpty(b, one) {
		*out = append(*out, one)
		if !p.HasMoved {
			if two, ok := p.Square.Offset(0, 2*dir); ok && isEmpty(b, two) {
				*out = append(*out, two)
			}
		}
	}
	// captures
	for _, df := range []int{-1, 1} {
		if to, ok := p.Square.Offset(df, dir); ok && isEnemy(b, p.Color, to) {
			*out = append(*out, to)
		}
	}
}

// jumps covers the fixed-offset pieces; knights ignore blocking entirely.
func jumps(b *board.Board, p board.PieceState, offsets [][2]int, out *[]base.Square) {
	for _, o := range offsets {
		to, ok := p.Square.Offset(o[0], o[1])
		if !ok {
			continue
		}
		if isEmpty(b, to) || isEnemy(b, p.Color, to) {
			*out = append(*out, to)
		}
	}
}

// genSliding for bishops/rooks/queens
func genSliding(b *board.Board, p board.PieceState, directions [][2]int, out *[]base.Square) {
	for _, d := range directions {
		for step := 1; ; step++ {
			to, ok := p.Square.Offset(d[0]*step, d[1]*step)
			if !ok {
				break
			}
			if isEmpty(b, to) {
				*out = append(*out, to)
				continue
			}
			// occupied: capture an enemy, stop either way
			if isEnemy(b, p.Color, to) {
				*out = append(*out, to)
			}
			break
		}
	}
}

// Between lists the squares strictly between a and b when they share a file,
// rank or diagonal, walking from a towards b. It returns nil otherwise.
func Between(a, b base.Square) []base.Square {
	df := sign(b.File() - a.File())
	dr := sign(b.Rank() - a.Rank())
	fileDist := abs(b.File() - a.File())
	rankDist := abs(b.Rank() - a.Rank())
	if a == b || (fileDist != 0 && rankDist != 0 && fileDist != rankDist) {
		return nil
	}
	var out []base.Square
	for cur, ok := a.Offset(df, dr); ok && cur != b; cur, ok = cur.Offset(df, dr) {
		out = append(out, cur)
	}
	return out
}

// Diagonal reports whether a and b share a diagonal.
func Diagonal(a, b base.Square) bool {
	return a != b && abs(a.File()-b.File()) == abs(a.Rank()-b.Rank())
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
