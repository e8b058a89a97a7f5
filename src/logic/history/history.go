// Package history keeps the moves played on a board so they can be stepped
// back and forth. Moves are replayed through the board primitives and undone
// with the tokens those primitives hand out, never by copying the board.
package history

import (
	"fmt"
	"strings"

	"chessrules/src/base"
	"chessrules/src/board"
	"chessrules/src/errs"
)

// truncate history module
type History struct {
	info    *InfoGame
	entries []Entry
	current int // moves currently applied
}

type Entry struct {
	Move base.Move
	Undo board.Undo
}

func (e Entry) Coord() string { return e.Move.String() }

func NewHistory() *History {
	return &History{entries: make([]Entry, 0), info: NewInfoGame()}
}

func (h *History) Len() int         { return len(h.entries) }
func (h *History) CurrentMove() int { return h.current }

func (h *History) Entries() []Entry {
	out := make([]Entry, len(h.entries))
	copy(out, h.entries)
	return out
}

// Played returns the moves up to the current one.
func (h *History) Played() []base.Move {
	out := make([]base.Move, h.current)
	for i := range out {
		out[i] = h.entries[i].Move
	}
	return out
}

// Push applies an already validated move and records it. Moves after the
// current one are dropped.
func (h *History) Push(b *board.Board, mv base.Move) (board.Undo, error) {
	if b == nil {
		return board.Undo{}, fmt.Errorf("nil board")
	}
	id := b.At(mv.From)
	if id == board.NoPiece {
		return board.Undo{}, errs.Wrapf(errs.ErrNoPiece, "push %v", mv)
	}

	if h.current < len(h.entries) {
		h.entries = h.entries[:h.current]
	}

	u := b.Apply(id, mv.To)
	h.entries = append(h.entries, Entry{Move: mv, Undo: u})
	h.current++
	return u, nil
}

// undo and rewrite board
func (h *History) Undo(b *board.Board) error {
	if h.current == 0 {
		return errs.ErrNoHistory
	}
	h.current--
	b.Revert(h.entries[h.current].Undo)
	return nil
}

// redo and rewrite board
func (h *History) Redo(b *board.Board) error {
	if h.current >= len(h.entries) {
		return errs.ErrNoHistory
	}
	e := &h.entries[h.current]
	id := b.At(e.Move.From)
	if id == board.NoPiece {
		return errs.Wrapf(errs.ErrNoPiece, "redo %v", e.Move)
	}
	e.Undo = b.Apply(id, e.Move.To)
	h.current++
	return nil
}

// GotoMove steps the board to the position after index moves.
func (h *History) GotoMove(b *board.Board, index int) error {
	if index < 0 || index > len(h.entries) {
		return errs.Wrapf(errs.ErrNoHistory, "move %d of %d", index, len(h.entries))
	}
	for h.current > index {
		if err := h.Undo(b); err != nil {
			return err
		}
	}
	for h.current < index {
		if err := h.Redo(b); err != nil {
			return err
		}
	}
	return nil
}

// MovesAsText numbers the played moves in coordinate notation.
// example: "1. e2e4 e7e5 2. g1f3"; with black first "1... e7e5 2. g1f3"
func (h *History) MovesAsText(first base.Color) string {
	if h.current == 0 {
		return ""
	}

	var sb strings.Builder
	num := 1
	side := first
	for i := 0; i < h.current; i++ {
		mv := h.entries[i].Coord()
		switch {
		case side == base.White:
			if i > 0 {
				sb.WriteString(" ")
			}
			fmt.Fprintf(&sb, "%d. %s", num, mv)
		case i == 0:
			fmt.Fprintf(&sb, "%d... %s", num, mv)
		default:
			sb.WriteString(" ")
			sb.WriteString(mv)
		}
		if side == base.Black {
			num++
		}
		side = side.Opposite()
	}
	return sb.String()
}

func (h *History) InfoGame() *InfoGame {
	return h.info
}

// default
func (h *History) SetDefaultInfoGame(date string) {
	h.info.SetWhitePlayer("PlayerOne")
	h.info.SetBlackPlayer("PlayerTwo")
	h.info.SetEvent("chessrules game")
	h.info.SetSite("localhost")
	h.info.SetDate(date)
	h.info.SetResult(ResultOngoing)
}
