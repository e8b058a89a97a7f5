// Package board owns the 8x8 grid and the pieces standing on it.
//
// Pieces live in an arena and are addressed by PieceID. A square holds the id
// of its occupant; the piece record holds the square back. Both sides of that
// relation are only ever changed together, by the primitives in this file.
// No legality filtering happens here.
package board

import (
	"fmt"

	"chessrules/src/base"
	"chessrules/src/errs"
)

// PieceID indexes the piece arena of one Board.
type PieceID int16

const NoPiece PieceID = -1

// PieceState is the arena record of a piece.
type PieceState struct {
	base.Piece
	Square   base.Square
	HasMoved bool
}

// OnBoard reports whether the piece currently occupies a square.
func (p PieceState) OnBoard() bool { return p.Square.Valid() }

type Board struct {
	slots  [64]PieceID
	pieces []PieceState
	live   [2][]PieceID
	kings  [2]PieceID
}

// New returns an empty board.
func New() *Board {
	b := &Board{kings: [2]PieceID{NoPiece, NoPiece}}
	for i := range b.slots {
		b.slots[i] = NoPiece
	}
	return b
}

var backRank = [8]base.Kind{base.Rook, base.Knight, base.Bishop, base.Queen, base.King, base.Bishop, base.Knight, base.Rook}

// NewClassic returns a board in the standard initial position.
func NewClassic() *Board {
	b := New()
	for file := 0; file < 8; file++ {
		b.mustPlace(base.Piece{Color: base.White, Kind: backRank[file]}, base.NewSquare(file, 0))
		b.mustPlace(base.Piece{Color: base.White, Kind: base.Pawn}, base.NewSquare(file, 1))
		b.mustPlace(base.Piece{Color: base.Black, Kind: base.Pawn}, base.NewSquare(file, 6))
		b.mustPlace(base.Piece{Color: base.Black, Kind: backRank[file]}, base.NewSquare(file, 7))
	}
	return b
}

func (b *Board) mustPlace(p base.Piece, sq base.Square) {
	if _, err := b.Place(p, sq); err != nil {
		panic(err)
	}
}

// Place puts a new piece on an empty square and adds it to its colour's live
// list. Only one king per colour is accepted.
func (b *Board) Place(p base.Piece, sq base.Square) (PieceID, error) {
	if p.IsEmpty() {
		return NoPiece, fmt.Errorf("place empty piece on %v: %w", sq, errs.ErrNoPiece)
	}
	if !sq.Valid() || b.slots[sq] != NoPiece {
		return NoPiece, fmt.Errorf("place %v on %v: %w", p, sq, errs.ErrInvalidSquare)
	}
	if p.Kind == base.King && b.kings[p.Color] != NoPiece {
		return NoPiece, fmt.Errorf("second %v king on %v: %w", p.Color, sq, errs.ErrInvalidSquare)
	}

	id := PieceID(len(b.pieces))
	b.pieces = append(b.pieces, PieceState{Piece: p, Square: sq})
	b.slots[sq] = id
	b.live[p.Color] = append(b.live[p.Color], id)
	if p.Kind == base.King {
		b.kings[p.Color] = id
	}
	return id, nil
}

// Remove takes the occupant of sq off the board as a capture: the square is
// cleared, the piece loses its square and leaves its live list.
func (b *Board) Remove(sq base.Square) PieceID {
	if !sq.Valid() {
		return NoPiece
	}
	id := b.slots[sq]
	if id == NoPiece {
		return NoPiece
	}
	b.slots[sq] = NoPiece
	b.pieces[id].Square = base.NoSquare
	b.dropLive(id)
	return id
}

// Lift clears sq without touching the live lists. The piece is left stale
// (no square, still listed) until Prune is called for it.
func (b *Board) Lift(sq base.Square) PieceID {
	if !sq.Valid() {
		return NoPiece
	}
	id := b.slots[sq]
	if id != NoPiece {
		b.slots[sq] = NoPiece
		b.pieces[id].Square = base.NoSquare
	}
	return id
}

// Prune drops a piece without a square from its live list.
func (b *Board) Prune(id PieceID) bool {
	if !b.valid(id) || b.pieces[id].OnBoard() {
		return false
	}
	_, ok := b.dropLive(id)
	return ok
}

func (b *Board) dropLive(id PieceID) (int, bool) {
	c := b.pieces[id].Color
	for i, v := range b.live[c] {
		if v == id {
			b.live[c] = append(b.live[c][:i], b.live[c][i+1:]...)
			return i, true
		}
	}
	return -1, false
}

func (b *Board) valid(id PieceID) bool {
	return id >= 0 && int(id) < len(b.pieces)
}

// At returns the id of the occupant of sq, or NoPiece.
func (b *Board) At(sq base.Square) PieceID {
	if !sq.Valid() {
		return NoPiece
	}
	return b.slots[sq]
}

// Occupant returns the piece value standing on sq.
func (b *Board) Occupant(sq base.Square) (base.Piece, bool) {
	id := b.At(sq)
	if id == NoPiece {
		return base.EmptyPiece, false
	}
	return b.pieces[id].Piece, true
}

// Piece returns a copy of the arena record for id.
func (b *Board) Piece(id PieceID) PieceState {
	if !b.valid(id) {
		return PieceState{Square: base.NoSquare}
	}
	return b.pieces[id]
}

// Live returns a copy of the live list of c.
func (b *Board) Live(c base.Color) []PieceID {
	out := make([]PieceID, len(b.live[c]))
	copy(out, b.live[c])
	return out
}

// King returns the king of c, or NoPiece if none was placed.
func (b *Board) King(c base.Color) PieceID {
	return b.kings[c]
}

// KingSquare returns the square of the king of c, or NoSquare.
func (b *Board) KingSquare(c base.Color) base.Square {
	if b.kings[c] == NoPiece {
		return base.NoSquare
	}
	return b.pieces[b.kings[c]].Square
}

// SetMoved overrides the movement flag; used when loading positions.
func (b *Board) SetMoved(id PieceID, moved bool) {
	if b.valid(id) {
		b.pieces[id].HasMoved = moved
	}
}

// Mailbox returns the occupancy of every square by value.
func (b *Board) Mailbox() base.Mailbox {
	var mb base.Mailbox
	for sq, id := range b.slots {
		if id != NoPiece {
			mb[sq] = b.pieces[id].Piece
		}
	}
	return mb
}

// Clone returns an independent deep copy; ids stay valid across the copy.
func (b *Board) Clone() *Board {
	c := &Board{slots: b.slots, kings: b.kings}
	c.pieces = make([]PieceState, len(b.pieces))
	copy(c.pieces, b.pieces)
	for i := range b.live {
		c.live[i] = make([]PieceID, len(b.live[i]))
		copy(c.live[i], b.live[i])
	}
	return c
}

// Undo is the token returned by Apply. Revert consumes it.
type Undo struct {
	Piece    PieceID
	From     base.Square
	To       base.Square
	Captured PieceID
	// position of the captured piece in its live list
	capturedAt int
	hadMoved   bool
}

func (u Undo) Move() base.Move { return base.Move{From: u.From, To: u.To} }

func (u Undo) IsCapture() bool { return u.Captured != NoPiece }

// Apply moves id to sq with no rule checks, capturing any occupant. The
// returned token restores the exact prior state through Revert.
func (b *Board) Apply(id PieceID, to base.Square) Undo {
	p := b.pieces[id]
	u := Undo{Piece: id, From: p.Square, To: to, Captured: b.slots[to], capturedAt: -1, hadMoved: p.HasMoved}
	if u.Captured == id {
		u.Captured = NoPiece
	}

	if u.Captured != NoPiece {
		b.pieces[u.Captured].Square = base.NoSquare
		u.capturedAt, _ = b.dropLive(u.Captured)
	}
	if p.Square.Valid() {
		b.slots[p.Square] = NoPiece
	}
	b.slots[to] = id
	b.pieces[id].Square = to
	b.pieces[id].HasMoved = true
	return u
}

// Revert undoes an Apply. Tokens must be reverted in reverse order.
func (b *Board) Revert(u Undo) {
	b.slots[u.To] = NoPiece
	if u.From.Valid() {
		b.slots[u.From] = u.Piece
	}
	b.pieces[u.Piece].Square = u.From
	b.pieces[u.Piece].HasMoved = u.hadMoved

	if u.Captured == NoPiece {
		return
	}
	b.slots[u.To] = u.Captured
	b.pieces[u.Captured].Square = u.To
	if u.capturedAt >= 0 {
		c := b.pieces[u.Captured].Color
		list := append(b.live[c], NoPiece)
		copy(list[u.capturedAt+1:], list[u.capturedAt:])
		list[u.capturedAt] = u.Captured
		b.live[c] = list
	}
}
