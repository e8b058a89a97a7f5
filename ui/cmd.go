package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"chessrules/src"
	"chessrules/src/base"
	"chessrules/src/board"
	"chessrules/src/config"
	"chessrules/src/detector"
	"chessrules/src/logic/rules"
	"chessrules/src/logx"
	"chessrules/src/store"
	clic "chessrules/ui/cli"
	"chessrules/ui/diagram"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"
)

type app struct {
	out     io.Writer
	in      io.Reader
	conf    *config.Config
	logger  logx.Logger
	logfile *os.File
}

func GetLogger(file io.Writer, conf *config.Config, c *cli.Command) logx.Logger {
	console := c.Bool("console")
	if file == nil && !console {
		return logx.Nop()
	}
	l := logx.NewLogx(
		logx.GetLoggerLevelByString(conf.LogLevel),
		c.Bool("debug"),
		console,
	)
	l.InitLogger(file)
	return l
}

func (a *app) before(ctx context.Context, c *cli.Command) (context.Context, error) {
	conf, err := config.Load(c.String("config"))
	if err != nil {
		return ctx, err
	}
	if c.IsSet("level") {
		conf.LogLevel = c.String("level")
	}
	if c.IsSet("db") {
		conf.Database = c.String("db")
	}
	if c.IsSet("logfile") {
		conf.LogFile = c.String("logfile")
	}
	if c.Bool("debug") {
		conf.LogLevel = "debug"
	}
	if err := conf.Validate(); err != nil {
		return ctx, err
	}
	a.conf = conf

	var w io.Writer
	if conf.LogFile != "" && !c.Bool("console") {
		file, err := os.OpenFile(conf.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			return ctx, fmt.Errorf("error open logfile: %w", err)
		}
		a.logfile = file
		w = file
	}
	a.logger = GetLogger(w, conf, c)
	return ctx, nil
}

func (a *app) after(ctx context.Context, c *cli.Command) error {
	if a.logger != nil {
		_ = a.logger.Sync()
	}
	if a.logfile != nil {
		return a.logfile.Close()
	}
	return nil
}

func (a *app) openStore() (*store.Store, error) {
	dir := a.conf.Database
	if dir == "" {
		var err error
		if dir, err = store.DefaultDatabaseDir(); err != nil {
			return nil, err
		}
	}
	return store.Open(dir, a.logger)
}

func loadPosition(fen string) (*board.Position, error) {
	if fen == "" {
		fen = base.FEN_START_GAME
	}
	return board.ConvertFENToPosition(fen)
}

func squareArg(c *cli.Command, name string) (base.Square, bool, error) {
	s := c.String(name)
	if s == "" {
		return base.NoSquare, false, nil
	}
	sq, err := base.SquareFromAlgebraic(s)
	return sq, true, err
}

func (a *app) play(ctx context.Context, c *cli.Command) error {
	gb := src.NewBuilderBoard(a.logger)

	st, err := a.openStore()
	if err != nil {
		a.logger.Warnf("game store unavailable: %v", err)
	} else {
		defer st.Close()
	}

	switch id := c.String("load"); {
	case id != "":
		if st == nil {
			return fmt.Errorf("cannot load %s: %w", id, err)
		}
		rec, err := st.Load(id)
		if err != nil {
			return err
		}
		if _, err := rec.Replay(gb); err != nil {
			return err
		}
	case c.String("fen") != "":
		if _, err := gb.CreateFromFEN(c.String("fen")); err != nil {
			return err
		}
	default:
		gb.CreateClassic()
	}

	draw := clic.PrintASCII
	if a.conf.Unicode && !c.Bool("ascii") && clic.EnableANSI() {
		draw = clic.PrintMailbox
	}
	cl := clic.NewCLI(gb, draw, a.logger).WithIO(a.in, a.out)
	if st != nil {
		cl.WithSaver(st)
	}
	return cl.Run()
}

func (a *app) moves(ctx context.Context, c *cli.Command) error {
	pos, err := loadPosition(c.String("fen"))
	if err != nil {
		return err
	}
	d := detector.New(pos.Board, a.logger)

	sq, one, err := squareArg(c, "square")
	if err != nil {
		return err
	}
	if one {
		fmt.Fprintln(a.out, base.SetOf(d.LegalMovesAt(sq)...))
		return nil
	}
	all := d.AllLegalMoves(pos.ToMove)
	sort.Slice(all, func(i, j int) bool { return all[i].String() < all[j].String() })
	for _, mv := range all {
		fmt.Fprintln(a.out, mv)
	}
	fmt.Fprintf(a.out, "%d legal moves for %v\n", len(all), pos.ToMove)
	return nil
}

func (a *app) status(ctx context.Context, c *cli.Command) error {
	pos, err := loadPosition(c.String("fen"))
	if err != nil {
		return err
	}
	d := detector.New(pos.Board, a.logger)
	side := pos.ToMove
	fmt.Fprintf(a.out, "to move:   %v\n", side)
	fmt.Fprintf(a.out, "status:    %v\n", d.Status(side))
	fmt.Fprintf(a.out, "in check:  %v\n", d.IsInCheck(side))
	fmt.Fprintf(a.out, "checkmate: %v\n", d.IsCheckmated(side))
	fmt.Fprintf(a.out, "stalemate: %v\n", d.IsStalemated(side))
	fmt.Fprintf(a.out, "allowed:   %v\n", d.AllowableSquares(side))
	return nil
}

func (a *app) perft(ctx context.Context, c *cli.Command) error {
	pos, err := loadPosition(c.String("fen"))
	if err != nil {
		return err
	}
	depth := a.conf.PerftDepth
	if c.IsSet("depth") {
		depth = int(c.Int("depth"))
	}
	if err := config.CheckPerftDepth(depth); err != nil {
		return err
	}
	e := rules.NewEngine(pos.Board, rules.WithLogger(a.logger))

	start := time.Now()
	var nodes uint64
	if c.Bool("divide") {
		divide, err := e.PerftDivide(ctx, pos.ToMove, depth)
		if err != nil {
			return err
		}
		keys := make([]base.Move, 0, len(divide))
		for mv := range divide {
			keys = append(keys, mv)
		}
		sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })
		for _, mv := range keys {
			fmt.Fprintf(a.out, "%v: %d\n", mv, divide[mv])
		}
		nodes = rules.Sum(divide)
	} else {
		if nodes, err = e.Perft(ctx, pos.ToMove, depth); err != nil {
			return err
		}
	}
	elapsed := time.Since(start)
	a.logger.Infof("perft(%d) = %d in %v", depth, nodes, elapsed)
	fmt.Fprintf(a.out, "perft(%d) = %d\n", depth, nodes)
	fmt.Fprintf(a.out, "%s nodes in %v\n", humanize.Comma(int64(nodes)), elapsed.Round(time.Millisecond))
	return nil
}

func (a *app) diagram(ctx context.Context, c *cli.Command) error {
	pos, err := loadPosition(c.String("fen"))
	if err != nil {
		return err
	}
	d := detector.New(pos.Board, a.logger)

	opts := diagram.DefaultOptions()
	opts.SquareSize = a.conf.SquareSize
	if c.IsSet("size") {
		opts.SquareSize = int(c.Int("size"))
	}
	theme := a.conf.Theme
	if c.IsSet("theme") {
		theme = c.String("theme")
	}
	opts.Palette = diagram.PaletteByName(theme)
	opts.Flip = c.Bool("flip")
	if d.IsInCheck(pos.ToMove) {
		opts.Check = pos.Board.KingSquare(pos.ToMove)
	}

	sq, one, err := squareArg(c, "square")
	if err != nil {
		return err
	}
	switch {
	case one:
		opts.Marks = base.SetOf(d.LegalMovesAt(sq)...)
	case c.Bool("allow"):
		if allowed := d.AllowableSquares(pos.ToMove); allowed != base.AllSquares {
			opts.Marks = allowed
		}
	}

	out := c.String("out")
	f, err := os.Create(out)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := diagram.WritePNG(f, pos.Board.Mailbox(), opts); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "wrote %s\n", out)
	return nil
}

func (a *app) gamesList(ctx context.Context, c *cli.Command) error {
	st, err := a.openStore()
	if err != nil {
		return err
	}
	defer st.Close()
	games, err := st.List()
	if err != nil {
		return err
	}
	for _, g := range games {
		fmt.Fprintf(a.out, "%s  %-7s  %3d moves  %s\n", g.ID, g.Result, len(g.Moves), humanize.Time(g.Saved))
	}
	return nil
}

func (a *app) gamesShow(ctx context.Context, c *cli.Command) error {
	id := c.Args().First()
	if id == "" {
		return errors.New("missing game id")
	}
	st, err := a.openStore()
	if err != nil {
		return err
	}
	defer st.Close()
	rec, err := st.Load(id)
	if err != nil {
		return err
	}
	gb := src.NewBuilderBoard(a.logger)
	if _, err := rec.Replay(gb); err != nil {
		return err
	}
	clic.PrintASCII(a.out, gb.CurrentBoard(), 0)
	fmt.Fprintf(a.out, "%s\n%s\nstatus: %v\n", gb.MovesText(), gb.FEN(), gb.Status())
	return nil
}

func (a *app) gamesDelete(ctx context.Context, c *cli.Command) error {
	id := c.Args().First()
	if id == "" {
		return errors.New("missing game id")
	}
	st, err := a.openStore()
	if err != nil {
		return err
	}
	defer st.Close()
	if err := st.Delete(id); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "deleted %s\n", id)
	return nil
}

func (a *app) gamesStats(ctx context.Context, c *cli.Command) error {
	st, err := a.openStore()
	if err != nil {
		return err
	}
	defer st.Close()
	s, err := st.Stats()
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "games %d, white wins %d, black wins %d, draws %d, unfinished %d\n",
		s.Games, s.WhiteWins, s.BlackWins, s.Draws, s.Ongoing)
	return nil
}

// NewApp builds the command tree writing to out and reading from in.
func NewApp(in io.Reader, out io.Writer) *cli.Command {
	a := &app{in: in, out: out}

	ff := &cli.StringFlag{
		Name:  "fen",
		Usage: "position in FEN, the initial position when empty",
	}
	sf := &cli.StringFlag{
		Name:    "square",
		Aliases: []string{"s"},
		Usage:   "only the piece on this square",
	}

	return &cli.Command{
		Name:   "chessrules",
		Usage:  "chess legality engine",
		Writer: out,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Value: config.DefaultFile,
				Usage: "path to the JSON config",
			},
			&cli.BoolFlag{
				Name:    "debug",
				Aliases: []string{"d"},
				Usage:   "enable debug mod",
			},
			&cli.StringFlag{
				Name:    "level",
				Aliases: []string{"l"},
				Usage:   "logger level",
				Sources: cli.EnvVars("CHESSRULES_LOG_LEVEL"),
			},
			&cli.BoolFlag{
				Name:    "console",
				Aliases: []string{"c"},
				Usage:   "console logger encoding",
			},
			&cli.StringFlag{
				Name:    "logfile",
				Usage:   "log file, empty to disable",
				Sources: cli.EnvVars("CHESSRULES_LOG_FILE"),
			},
			&cli.StringFlag{
				Name:    "db",
				Usage:   "game database directory",
				Sources: cli.EnvVars("CHESSRULES_DB"),
			},
		},
		Before: a.before,
		After:  a.after,
		Commands: []*cli.Command{
			{
				Name:  "play",
				Usage: "play a game in the terminal",
				Flags: []cli.Flag{
					ff,
					&cli.StringFlag{Name: "load", Usage: "resume a saved game by id"},
					&cli.BoolFlag{Name: "ascii", Usage: "plain letters instead of unicode and colours"},
				},
				Action: a.play,
			},
			{
				Name:   "moves",
				Usage:  "list legal moves",
				Flags:  []cli.Flag{ff, sf},
				Action: a.moves,
			},
			{
				Name:   "status",
				Usage:  "report check, checkmate and stalemate",
				Flags:  []cli.Flag{ff},
				Action: a.status,
			},
			{
				Name:  "perft",
				Usage: "count leaf nodes of the legal move tree",
				Flags: []cli.Flag{
					ff,
					&cli.IntFlag{Name: "depth", Aliases: []string{"n"}, Usage: "search depth"},
					&cli.BoolFlag{Name: "divide", Usage: "count per root move, in parallel"},
				},
				Action: a.perft,
			},
			{
				Name:  "diagram",
				Usage: "render the position to PNG",
				Flags: []cli.Flag{
					ff, sf,
					&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Value: "board.png", Usage: "output file"},
					&cli.BoolFlag{Name: "allow", Usage: "mark the squares that answer a check"},
					&cli.StringFlag{Name: "theme", Usage: "light or dark"},
					&cli.IntFlag{Name: "size", Usage: "pixels per square"},
					&cli.BoolFlag{Name: "flip", Usage: "black at the bottom"},
				},
				Action: a.diagram,
			},
			{
				Name:  "games",
				Usage: "manage saved games",
				Commands: []*cli.Command{
					{Name: "list", Usage: "list saved games", Action: a.gamesList},
					{Name: "show", Usage: "replay a saved game", ArgsUsage: "<id>", Action: a.gamesShow},
					{Name: "delete", Usage: "delete a saved game", ArgsUsage: "<id>", Action: a.gamesDelete},
					{Name: "stats", Usage: "count saved games by result", Action: a.gamesStats},
				},
				Action: a.gamesList,
			},
		},
		Action: a.play,
	}
}

func RunChessRules() error {
	return NewApp(os.Stdin, os.Stdout).Run(context.Background(), os.Args)
}
