// Package diagram renders a position to PNG with highlighted squares.
package diagram

import (
	"image"
	"io"

	"chessrules/src/base"

	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"
)

type Options struct {
	SquareSize int
	Palette    Palette
	// Marks are drawn as dots on empty squares and rings on occupied ones.
	Marks base.SquareSet
	// Check is the square of a king in check, NoSquare for none.
	Check base.Square
	// Flip puts Black at the bottom.
	Flip bool
}

func DefaultOptions() Options {
	return Options{SquareSize: 64, Palette: LightPalette, Check: base.NoSquare}
}

// Render draws mb with a coordinate margin of half a square.
func Render(mb base.Mailbox, opts Options) (image.Image, error) {
	sz := opts.SquareSize
	if sz <= 0 {
		sz = DefaultOptions().SquareSize
	}
	margin := sz / 2
	side := 8*sz + 2*margin

	mk, err := newMarkers(sz, opts.Palette.Mark)
	if err != nil {
		return nil, err
	}

	dc := gg.NewContext(side, side)
	dc.SetColor(opts.Palette.Bg)
	dc.Clear()
	dc.SetFontFace(basicfont.Face7x13)

	origin := func(sq base.Square) (float64, float64) {
		file, rank := sq.File(), 7-sq.Rank()
		if opts.Flip {
			file, rank = 7-file, sq.Rank()
		}
		return float64(margin + file*sz), float64(margin + rank*sz)
	}

	for sq := base.Square(0); sq < base.NoSquare; sq++ {
		x, y := origin(sq)
		if sq.IsLight() {
			dc.SetColor(opts.Palette.Light)
		} else {
			dc.SetColor(opts.Palette.Dark)
		}
		dc.DrawRectangle(x, y, float64(sz), float64(sz))
		dc.Fill()

		if sq == opts.Check {
			dc.SetColor(opts.Palette.Check)
			dc.DrawRectangle(x, y, float64(sz), float64(sz))
			dc.Fill()
		}

		if p := mb[sq]; !p.IsEmpty() {
			drawPiece(dc, p, x, y, float64(sz), opts.Palette)
		}

		if opts.Marks.Has(sq) {
			m := mk.dot
			if !mb[sq].IsEmpty() {
				m = mk.ring
			}
			dc.DrawImage(m, int(x), int(y))
		}
	}

	drawCoordinates(dc, sz, margin, opts)
	return dc.Image(), nil
}

// drawPiece draws a disc with the piece letter; there are no piece images.
func drawPiece(dc *gg.Context, p base.Piece, x, y, sz float64, pal Palette) {
	cx, cy := x+sz/2, y+sz/2
	fill, text := pal.WhiteMan, pal.BlackMan
	if p.Color == base.Black {
		fill, text = pal.BlackMan, pal.WhiteMan
	}
	dc.DrawCircle(cx, cy, sz*0.36)
	dc.SetColor(fill)
	dc.FillPreserve()
	dc.SetColor(pal.ManStroke)
	dc.SetLineWidth(sz / 32)
	dc.Stroke()

	letter := string(base.ConvertRuneFromPiece(base.Piece{Color: base.White, Kind: p.Kind}))
	dc.SetColor(text)
	dc.DrawStringAnchored(letter, cx, cy, 0.5, 0.35)
}

func drawCoordinates(dc *gg.Context, sz, margin int, opts Options) {
	dc.SetColor(opts.Palette.Text)
	half := float64(margin) / 2
	far := float64(margin+8*sz) + half
	for i := 0; i < 8; i++ {
		file, rank := i, 7-i
		if opts.Flip {
			file, rank = 7-i, i
		}
		pos := float64(margin+i*sz) + float64(sz)/2
		f := string(rune('a' + file))
		r := string(rune('1' + rank))
		dc.DrawStringAnchored(f, pos, half, 0.5, 0.35)
		dc.DrawStringAnchored(f, pos, far, 0.5, 0.35)
		dc.DrawStringAnchored(r, half, pos, 0.5, 0.35)
		dc.DrawStringAnchored(r, far, pos, 0.5, 0.35)
	}
}

// WritePNG renders mb and encodes it to w.
func WritePNG(w io.Writer, mb base.Mailbox, opts Options) error {
	img, err := Render(mb, opts)
	if err != nil {
		return err
	}
	return gg.NewContextForImage(img).EncodePNG(w)
}
