package board

import (
	"fmt"
	"strconv"
	"strings"

	"chessrules/src/base"
	"chessrules/src/errs"
)

// Position is a board together with the side to move.
type Position struct {
	Board  *Board
	ToMove base.Color
	// move counters are carried through unchanged
	Halfmove int
	Fullmove int
}

// ConvertFENToPosition parses the placement, side to move and, when present,
// the move counters of a FEN string. Castling and en passant fields are
// accepted but ignored. Pawns off their starting rank are marked as moved.
func ConvertFENToPosition(fen string) (*Position, error) {
	parts := strings.Fields(fen)
	if len(parts) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 fields, got %d", errs.ErrInvalidFEN, len(parts))
	}

	ranks := strings.Split(parts[0], "/")
	if len(ranks) != 8 {
		return nil, fmt.Errorf("%w: need 8 ranks, got %d", errs.ErrInvalidFEN, len(ranks))
	}

	b := New()
	for r := 0; r < 8; r++ {
		rank := 7 - r
		file := 0
		for _, ch := range ranks[r] {
			if file > 8 {
				break
			}
			if ch >= '1' && ch <= '8' {
				file += int(ch - '0')
				continue
			}
			p := base.ConvertPieceFromRune(ch)
			if p.IsEmpty() {
				return nil, fmt.Errorf("%w: unknown piece %q", errs.ErrInvalidFEN, ch)
			}
			if file > 7 {
				return nil, fmt.Errorf("%w: rank %d overflows", errs.ErrInvalidFEN, rank+1)
			}
			id, err := b.Place(p, base.NewSquare(file, rank))
			if err != nil {
				return nil, fmt.Errorf("%w: %v", errs.ErrInvalidFEN, err)
			}
			if p.Kind == base.Pawn {
				b.SetMoved(id, !onPawnStart(p.Color, rank))
			}
			file++
		}
		if file != 8 {
			return nil, fmt.Errorf("%w: rank %d has %d files", errs.ErrInvalidFEN, rank+1, file)
		}
	}
	for _, c := range []base.Color{base.White, base.Black} {
		if b.King(c) == NoPiece {
			return nil, fmt.Errorf("%w: no %v king", errs.ErrInvalidFEN, c)
		}
	}

	pos := &Position{Board: b, Fullmove: 1}
	switch parts[1] {
	case "w":
		pos.ToMove = base.White
	case "b":
		pos.ToMove = base.Black
	default:
		return nil, fmt.Errorf("%w: side to move %q", errs.ErrInvalidFEN, parts[1])
	}

	var err error
	if len(parts) >= 5 {
		if pos.Halfmove, err = strconv.Atoi(parts[4]); err != nil {
			return nil, fmt.Errorf("%w: halfmove %q", errs.ErrInvalidFEN, parts[4])
		}
	}
	if len(parts) >= 6 {
		if pos.Fullmove, err = strconv.Atoi(parts[5]); err != nil {
			return nil, fmt.Errorf("%w: fullmove %q", errs.ErrInvalidFEN, parts[5])
		}
	}
	return pos, nil
}

func onPawnStart(c base.Color, rank int) bool {
	if c == base.White {
		return rank == 1
	}
	return rank == 6
}

// ConvertPositionToFEN writes the position back. Castling and en passant are
// always "-".
func ConvertPositionToFEN(pos *Position) string {
	var b strings.Builder
	mb := pos.Board.Mailbox()
	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			pc := mb[rank*8+file]
			if pc.IsEmpty() {
				empty++
				continue
			}
			if empty > 0 {
				b.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			b.WriteRune(base.ConvertRuneFromPiece(pc))
		}
		if empty > 0 {
			b.WriteString(strconv.Itoa(empty))
		}
		if rank > 0 {
			b.WriteByte('/')
		}
	}

	if pos.ToMove == base.White {
		b.WriteString(" w ")
	} else {
		b.WriteString(" b ")
	}
	b.WriteString("- - ")
	b.WriteString(strconv.Itoa(pos.Halfmove) + " ")
	b.WriteString(strconv.Itoa(pos.Fullmove))
	return b.String()
}
