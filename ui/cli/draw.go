package cli

import (
	"fmt"
	"io"

	"chessrules/src/base"
)

// ANSI-code
const (
	reset   = "\033[0m"
	lightBg = "\033[47m"
	darkBg  = "\033[100m"
	markBg  = "\033[43m"
	whiteF  = "\033[97m"
	blackF  = "\033[30m"
	dimF    = "\033[90m"
)

// DrawFunc renders a board with marked squares.
type DrawFunc func(w io.Writer, mb base.Mailbox, marks base.SquareSet)

// Piece -> unicode glyph
func pieceGlyph(p base.Piece) string {
	if p.IsEmpty() {
		return " "
	}
	glyphs := [2][7]string{
		{"", "♙", "♘", "♗", "♖", "♕", "♔"},
		{"", "♟", "♞", "♝", "♜", "♛", "♚"},
	}
	return glyphs[p.Color][p.Kind]
}

// PrintMailbox draws the board with ANSI colours and unicode pieces.
func PrintMailbox(w io.Writer, m base.Mailbox, marks base.SquareSet) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "   a  b  c  d  e  f  g  h")
	for rank := 7; rank >= 0; rank-- {
		fmt.Fprintf(w, "%d ", rank+1)
		for file := 0; file < 8; file++ {
			sq := base.NewSquare(file, rank)
			p := m[sq]
			g := pieceGlyph(p)

			var bg, fg string
			switch {
			case marks.Has(sq):
				bg = markBg
			case sq.IsLight():
				bg = lightBg
			default:
				bg = darkBg
			}
			switch {
			case p.IsEmpty():
				fg = dimF
			case p.Color == base.White && !sq.IsLight():
				fg = whiteF
			default:
				fg = blackF
			}
			if p.IsEmpty() && marks.Has(sq) {
				g = "·"
			}

			fmt.Fprintf(w, "%s%s %s %s", bg, fg, g, reset)
		}
		fmt.Fprintf(w, " %d\n", rank+1)
	}
	fmt.Fprintln(w, "   a  b  c  d  e  f  g  h")
	fmt.Fprintln(w)
}

// PrintASCII draws the board with FEN letters, '.' for empty and '*' for a
// marked empty square. Used when the output is not a terminal.
func PrintASCII(w io.Writer, m base.Mailbox, marks base.SquareSet) {
	fmt.Fprintln(w, "  a b c d e f g h")
	for rank := 7; rank >= 0; rank-- {
		fmt.Fprintf(w, "%d", rank+1)
		for file := 0; file < 8; file++ {
			sq := base.NewSquare(file, rank)
			c := "."
			switch {
			case !m[sq].IsEmpty():
				c = string(base.ConvertRuneFromPiece(m[sq]))
			case marks.Has(sq):
				c = "*"
			}
			fmt.Fprintf(w, " %s", c)
		}
		fmt.Fprintf(w, " %d\n", rank+1)
	}
	fmt.Fprintln(w, "  a b c d e f g h")
}
