// Package cli is the interactive terminal front end: raw mode with arrow
// keys when stdin is a terminal, plain line mode otherwise.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"chessrules/src"
	"chessrules/src/base"
	"chessrules/src/logx"
	"chessrules/src/store"

	"golang.org/x/term"
)

// Saver persists a game. Saving the same game again replaces its record.
type Saver interface {
	SaveGame(gb *src.GameBuilder) (*store.GameRecord, error)
}

type CLIProcessing struct {
	builder *src.GameBuilder
	draw    DrawFunc
	saver   Saver
	in      io.Reader
	out     io.Writer
	logger  logx.Logger
}

func NewCLI(b *src.GameBuilder, draw DrawFunc, logger logx.Logger) *CLIProcessing {
	if logger == nil {
		logger = logx.Nop()
	}
	return &CLIProcessing{builder: b, draw: draw, in: os.Stdin, out: os.Stdout, logger: logger}
}

// WithIO replaces stdin/stdout.
func (c *CLIProcessing) WithIO(in io.Reader, out io.Writer) *CLIProcessing {
	c.in, c.out = in, out
	return c
}

// WithSaver enables the save command.
func (c *CLIProcessing) WithSaver(s Saver) *CLIProcessing {
	c.saver = s
	return c
}

const help = `commands:
  e2e4        play a move in coordinate notation
  undo, redo  step through the game (left/right arrows in raw mode)
  legal e2    show the legal moves of the piece on e2
  allow       show the squares the side to move may use
  moves       list the moves played
  fen         print the position
  save        store the game
  q           quit`

// raw processing
// - enter a coordinate move
// - left/right arrow keys to undo/redo
// - q or Ctrl+C to exit
// - redraw board every move
func (c *CLIProcessing) Run() error {
	f, ok := c.in.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return c.RunLineMode()
	}
	fd := int(f.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return c.RunLineMode()
	}
	defer term.Restore(fd, oldState) //nolint:errcheck

	// raw mode needs explicit carriage returns
	out := c.out
	c.out = crlfWriter{out}
	defer func() { c.out = out }()

	r := bufio.NewReader(c.in)
	var inputBuf strings.Builder

	c.redraw(0)
	fmt.Fprintln(c.out, "\nType a move and press Enter, left/right arrows to undo/redo, 'help' for commands, 'q' to quit.")

	for {
		b, err := r.ReadByte()
		if err != nil {
			return err
		}

		if b == 3 { // Ctrl+C
			fmt.Fprintln(c.out, "\nInterrupted")
			return nil
		}
		if b == 0x1b { // escape sequence, possible arrow
			b1, err := r.ReadByte()
			if err != nil {
				continue
			}
			b2, err := r.ReadByte()
			if err != nil {
				continue
			}
			if b1 == '[' {
				switch b2 {
				case 'D': // left arrow
					c.handle("undo")
				case 'C': // right arrow
					c.handle("redo")
				}
			}
			continue
		}
		if b == 127 || b == 8 { // backspace
			s := inputBuf.String()
			if len(s) > 0 {
				inputBuf.Reset()
				inputBuf.WriteString(s[:len(s)-1])
				fmt.Fprint(c.out, "\b \b")
			}
			continue
		}

		if b == '\r' || b == '\n' {
			s := strings.TrimSpace(inputBuf.String())
			inputBuf.Reset()
			if s == "" {
				continue
			}
			fmt.Fprintln(c.out)
			if c.handle(s) {
				return nil
			}
			continue
		}

		if b >= 32 && b <= 126 {
			inputBuf.WriteByte(b)
			fmt.Fprintf(c.out, "%c", b)
		}
	}
}

// RunLineMode reads one command per line until quit, end of input or the
// end of the game.
func (c *CLIProcessing) RunLineMode() error {
	scanner := bufio.NewScanner(c.in)
	c.redraw(0)
	fmt.Fprintln(c.out, "Enter a move such as e2e4, 'help' for commands, 'q' to quit.")
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if c.handle(line) {
			return nil
		}
	}
	return scanner.Err()
}

// handle runs one command and reports whether the session is over.
func (c *CLIProcessing) handle(line string) bool {
	fields := strings.Fields(line)
	switch strings.ToLower(fields[0]) {
	case "q", "quit", "exit":
		fmt.Fprintln(c.out, "Quitting")
		return true
	case "help", "h", "?":
		fmt.Fprintln(c.out, help)
	case "undo":
		if _, err := c.builder.Undo(); err != nil {
			fmt.Fprintf(c.out, "Cannot undo: %v\n", err)
			return false
		}
		c.redraw(0)
	case "redo":
		if _, err := c.builder.Redo(); err != nil {
			fmt.Fprintf(c.out, "Cannot redo: %v\n", err)
			return false
		}
		c.redraw(0)
	case "moves":
		fmt.Fprintf(c.out, "Moves: %s\n", c.builder.MovesText())
	case "fen":
		fmt.Fprintln(c.out, c.builder.FEN())
	case "allow":
		c.redraw(c.builder.AllowableSquares())
	case "legal":
		if len(fields) < 2 {
			fmt.Fprintln(c.out, "usage: legal <square>")
			return false
		}
		sq, err := base.SquareFromAlgebraic(fields[1])
		if err != nil {
			fmt.Fprintf(c.out, "Invalid square: %s\n", fields[1])
			return false
		}
		legal := c.builder.LegalMoves(sq)
		c.redraw(base.SetOf(legal...))
		fmt.Fprintf(c.out, "Legal from %v: %v\n", sq, base.SetOf(legal...))
	case "save":
		c.save()
	default:
		status, err := c.builder.MoveCoord(line)
		if err != nil {
			fmt.Fprintf(c.out, "Invalid move: %v\n", err)
			return false
		}
		c.redraw(0)
		if status.Finished() {
			fmt.Fprintf(c.out, "Game over: %s\n", c.builder.InfoGame().GetResult())
			c.save()
			return true
		}
	}
	return false
}

func (c *CLIProcessing) save() {
	if c.saver == nil {
		return
	}
	rec, err := c.saver.SaveGame(c.builder)
	if err != nil {
		c.logger.Errorf("save game: %v", err)
		fmt.Fprintf(c.out, "Cannot save: %v\n", err)
		return
	}
	fmt.Fprintf(c.out, "Saved as %s\n", rec.ID)
}

func (c *CLIProcessing) redraw(marks base.SquareSet) {
	c.draw(c.out, c.builder.CurrentBoard(), marks)
	c.printStatus()
}

func (c *CLIProcessing) printStatus() {
	fmt.Fprintf(c.out, "FEN: %s\n", c.builder.FEN())
	fmt.Fprintf(c.out, "Moves: %s\n", c.builder.MovesText())
	fmt.Fprintf(c.out, "Status: %s, %v to move\n", c.builder.Status(), c.builder.ToMove())
}

type crlfWriter struct{ w io.Writer }

func (cw crlfWriter) Write(p []byte) (int, error) {
	s := strings.ReplaceAll(string(p), "\n", "\r\n")
	if _, err := io.WriteString(cw.w, s); err != nil {
		return 0, err
	}
	return len(p), nil
}
