package base

import (
	"fmt"
	"math/bits"
)

// Forsyth–Edwards Notation
const FEN_START_GAME string = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w - - 0 1"

type Color uint8

const (
	White Color = iota
	Black
)

func (c Color) Opposite() Color {
	if c == White {
		return Black
	}
	return White
}

func (c Color) String() string {
	if c == White {
		return "white"
	}
	return "black"
}

// Kind is the closed set of piece variants.
type Kind uint8

const (
	NoKind Kind = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

func (k Kind) String() string {
	switch k {
	case Pawn:
		return "pawn"
	case Knight:
		return "knight"
	case Bishop:
		return "bishop"
	case Rook:
		return "rook"
	case Queen:
		return "queen"
	case King:
		return "king"
	default:
		return "none"
	}
}

// Piece is a coloured piece value. The zero value is no piece.
type Piece struct {
	Color Color
	Kind  Kind
}

var EmptyPiece = Piece{}

func (p Piece) IsEmpty() bool { return p.Kind == NoKind }

func (p Piece) String() string {
	if p.IsEmpty() {
		return "empty"
	}
	return p.Color.String() + " " + p.Kind.String()
}

type GameStatus uint8

const (
	Check       GameStatus = 10
	Checkmate   GameStatus = 11
	Stalemate   GameStatus = 12
	InvalidGame GameStatus = 88
	Pass        GameStatus = 99
)

func (gs GameStatus) String() string {
	switch gs {
	case Check:
		return "check"
	case Checkmate:
		return "checkmate"
	case Stalemate:
		return "stalemate"
	case Pass:
		return "pass"
	default:
		return "invalid"
	}
}

// Finished reports whether no further moves can be played.
func (gs GameStatus) Finished() bool {
	return gs == Checkmate || gs == Stalemate
}

// Mailbox is a by-value picture of the occupancy of every square.
type Mailbox [64]Piece

// Point addresses a square by rank (H) and file (W).
type Point struct {
	H uint8
	W uint8
}

func IsValidPoint(p Point) bool {
	return !(p.H > 7 || p.W > 7)
}

// Square is a board cell index, rank*8+file. Rank 0 is White's back rank.
type Square uint8

const NoSquare Square = 64

func NewSquare(file, rank int) Square {
	if file < 0 || file > 7 || rank < 0 || rank > 7 {
		return NoSquare
	}
	return Square(rank*8 + file)
}

func SquareOf(p Point) Square {
	if !IsValidPoint(p) {
		return NoSquare
	}
	return NewSquare(int(p.W), int(p.H))
}

func (s Square) Valid() bool { return s < NoSquare }
func (s Square) File() int   { return int(s) % 8 }
func (s Square) Rank() int   { return int(s) / 8 }

func (s Square) Point() Point {
	return Point{H: uint8(s.Rank()), W: uint8(s.File())}
}

// IsLight reports the colour of the square itself; a1 is dark.
func (s Square) IsLight() bool {
	return (s.File()+s.Rank())%2 == 1
}

// Offset returns the square df files and dr ranks away, if it is on the board.
func (s Square) Offset(df, dr int) (Square, bool) {
	f, r := s.File()+df, s.Rank()+dr
	if f < 0 || f > 7 || r < 0 || r > 7 {
		return NoSquare, false
	}
	return Square(r*8 + f), true
}

func (s Square) String() string {
	if !s.Valid() {
		return "-"
	}
	return string([]byte{byte('a' + s.File()), byte('1' + s.Rank())})
}

func SquareFromAlgebraic(pos string) (Square, error) {
	// 'a' ~ 'h' to file, '1' ~ '8' to rank
	if len(pos) != 2 || pos[0] < 'a' || pos[0] > 'h' || pos[1] < '1' || pos[1] > '8' {
		return NoSquare, fmt.Errorf("invalid position %q", pos)
	}
	return NewSquare(int(pos[0]-'a'), int(pos[1]-'1')), nil
}

// SquareSet is an unordered set of squares.
type SquareSet uint64

const AllSquares SquareSet = ^SquareSet(0)

func SetOf(sqs ...Square) SquareSet {
	var s SquareSet
	for _, sq := range sqs {
		s = s.Add(sq)
	}
	return s
}

func (s SquareSet) Add(sq Square) SquareSet {
	if !sq.Valid() {
		return s
	}
	return s | 1<<sq
}

func (s SquareSet) Has(sq Square) bool {
	return sq.Valid() && s&(1<<sq) != 0
}

func (s SquareSet) Union(o SquareSet) SquareSet     { return s | o }
func (s SquareSet) Intersect(o SquareSet) SquareSet { return s & o }
func (s SquareSet) Len() int                        { return bits.OnesCount64(uint64(s)) }
func (s SquareSet) IsEmpty() bool                   { return s == 0 }

// Squares lists the members in index order.
func (s SquareSet) Squares() []Square {
	out := make([]Square, 0, s.Len())
	for v := uint64(s); v != 0; v &= v - 1 {
		out = append(out, Square(bits.TrailingZeros64(v)))
	}
	return out
}

func (s SquareSet) String() string {
	if s == AllSquares {
		return "all"
	}
	out := ""
	for i, sq := range s.Squares() {
		if i > 0 {
			out += " "
		}
		out += sq.String()
	}
	return out
}

// Move is a from/to pair; promotion, castling and en passant are not modelled.
type Move struct {
	From Square
	To   Square
}

func (m Move) String() string {
	return m.From.String() + m.To.String()
}

// MoveFromCoord parses coordinate notation such as "e2e4" or "e2-e4".
func MoveFromCoord(s string) (Move, error) {
	if len(s) == 5 && (s[2] == '-' || s[2] == ' ') {
		s = s[:2] + s[3:]
	}
	if len(s) != 4 {
		return Move{}, fmt.Errorf("invalid move %q", s)
	}
	from, err := SquareFromAlgebraic(s[:2])
	if err != nil {
		return Move{}, err
	}
	to, err := SquareFromAlgebraic(s[2:])
	if err != nil {
		return Move{}, err
	}
	return Move{From: from, To: to}, nil
}

func ConvertPieceFromRune(p rune) Piece {
	switch p {
	case 'P':
		return Piece{White, Pawn}
	case 'R':
		return Piece{White, Rook}
	case 'N':
		return Piece{White, Knight}
	case 'B':
		return Piece{White, Bishop}
	case 'Q':
		return Piece{White, Queen}
	case 'K':
		return Piece{White, King}
	case 'p':
		return Piece{Black, Pawn}
	case 'r':
		return Piece{Black, Rook}
	case 'n':
		return Piece{Black, Knight}
	case 'b':
		return Piece{Black, Bishop}
	case 'q':
		return Piece{Black, Queen}
	case 'k':
		return Piece{Black, King}
	default:
		return EmptyPiece
	}
}

func ConvertRuneFromPiece(p Piece) rune {
	var r rune
	switch p.Kind {
	case Pawn:
		r = 'P'
	case Knight:
		r = 'N'
	case Bishop:
		r = 'B'
	case Rook:
		r = 'R'
	case Queen:
		r = 'Q'
	case King:
		r = 'K'
	default:
		return '.'
	}
	if p.Color == Black {
		r += 'a' - 'A'
	}
	return r
}
