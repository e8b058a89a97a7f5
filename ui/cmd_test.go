package ui

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"chessrules/src/errs"
	"chessrules/src/testutil"
)

func run(t *testing.T, stdin string, args ...string) string {
	t.Helper()
	dir := t.TempDir()
	var out bytes.Buffer
	base := []string{"chessrules",
		"--config", filepath.Join(dir, "absent.json"),
		"--logfile", "",
		"--db", filepath.Join(dir, "db"),
	}
	app := NewApp(strings.NewReader(stdin), &out)
	testutil.AssertNoError(t, app.Run(context.Background(), append(base, args...)), strings.Join(args, " "))
	return out.String()
}

func TestMovesCommand(t *testing.T) {
	out := run(t, "", "moves")
	testutil.AssertTrue(t, strings.Contains(out, "20 legal moves for white"), out)

	out = run(t, "", "moves", "--fen", "7k/8/8/4q3/8/R7/3P1P2/3RKR2 w - - 0 1")
	testutil.AssertEqual(t, out, "a3e3\n1 legal moves for white\n")

	out = run(t, "", "moves", "--square", "g1")
	testutil.AssertEqual(t, out, "f3 h3\n")
}

func TestStatusCommand(t *testing.T) {
	out := run(t, "", "status", "--fen", "R3k3/3ppp2/8/8/8/8/8/7K b - - 0 1")
	testutil.AssertTrue(t, strings.Contains(out, "status:    checkmate"), out)
	testutil.AssertTrue(t, strings.Contains(out, "in check:  true"), out)
	testutil.AssertTrue(t, strings.Contains(out, "stalemate: false"), out)
}

func TestPerftCommand(t *testing.T) {
	out := run(t, "", "perft", "--depth", "2")
	testutil.AssertTrue(t, strings.Contains(out, "perft(2) = 400"), out)

	out = run(t, "", "perft", "--depth", "2", "--divide")
	testutil.AssertTrue(t, strings.Contains(out, "e2e4: 20\n"), out)
	testutil.AssertTrue(t, strings.Contains(out, "perft(2) = 400"), out)
}

func TestPerftDepthBounds(t *testing.T) {
	for _, depth := range []string{"0", "12"} {
		var out bytes.Buffer
		app := NewApp(strings.NewReader(""), &out)
		err := app.Run(context.Background(), []string{"chessrules", "--config", filepath.Join(t.TempDir(), "c.json"), "--logfile", "", "perft", "--depth", depth})
		testutil.AssertTrue(t, errors.Is(err, errs.ErrInvalidConfig), "depth %s: got %v", depth, err)
		testutil.AssertFalse(t, strings.Contains(out.String(), "perft("), "depth %s ran", depth)
	}
}

func TestDiagramCommand(t *testing.T) {
	file := filepath.Join(t.TempDir(), "board.png")
	out := run(t, "", "diagram", "--out", file, "--square", "e2", "--size", "24", "--theme", "dark")
	testutil.AssertTrue(t, strings.Contains(out, "wrote "+file), out)
	info, err := os.Stat(file)
	testutil.AssertNoError(t, err)
	testutil.AssertTrue(t, info.Size() > 0)
}

func TestPlayAndGames(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "db")
	args := func(extra ...string) []string {
		return append([]string{"chessrules", "--config", filepath.Join(dir, "absent.json"), "--logfile", "", "--db", db}, extra...)
	}

	var out bytes.Buffer
	app := NewApp(strings.NewReader("f2f3\ne7e5\ng2g4\nd8h4\n"), &out)
	testutil.AssertNoError(t, app.Run(context.Background(), args("play", "--ascii")))
	testutil.AssertTrue(t, strings.Contains(out.String(), "Game over: 0-1"), out.String())
	testutil.AssertTrue(t, strings.Contains(out.String(), "Saved as "), out.String())

	out.Reset()
	app = NewApp(strings.NewReader(""), &out)
	testutil.AssertNoError(t, app.Run(context.Background(), args("games", "stats")))
	testutil.AssertEqual(t, out.String(), "games 1, white wins 0, black wins 1, draws 0, unfinished 0\n")

	out.Reset()
	app = NewApp(strings.NewReader(""), &out)
	testutil.AssertNoError(t, app.Run(context.Background(), args("games", "list")))
	id := strings.Fields(out.String())[0]

	out.Reset()
	app = NewApp(strings.NewReader(""), &out)
	testutil.AssertNoError(t, app.Run(context.Background(), args("games", "show", id)))
	testutil.AssertTrue(t, strings.Contains(out.String(), "1. f2f3 e7e5 2. g2g4 d8h4"), out.String())
	testutil.AssertTrue(t, strings.Contains(out.String(), "status: checkmate"), out.String())

	out.Reset()
	app = NewApp(strings.NewReader(""), &out)
	testutil.AssertNoError(t, app.Run(context.Background(), args("games", "delete", id)))

	app = NewApp(strings.NewReader(""), &out)
	err := app.Run(context.Background(), args("games", "show", id))
	testutil.AssertError(t, err)
}

func TestInvalidLevel(t *testing.T) {
	dir := t.TempDir()
	var out bytes.Buffer
	app := NewApp(strings.NewReader(""), &out)
	err := app.Run(context.Background(), []string{"chessrules", "--config", filepath.Join(dir, "c.json"), "--logfile", "", "--level", "loud", "status"})
	testutil.AssertError(t, err)
}
