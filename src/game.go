package src

import (
	"fmt"
	"time"

	"chessrules/src/base"
	"chessrules/src/board"
	"chessrules/src/detector"
	"chessrules/src/errs"
	"chessrules/src/logic/history"
	"chessrules/src/logx"
)

// at first use Create* methods
type GameBuilder struct {
	board    *board.Board
	detector *detector.Detector
	history  *history.History
	start    board.Position
	startFEN string
	toMove   base.Color
	status   base.GameStatus
	id       string
	started  time.Time
	logger   logx.Logger
}

func NewBuilderBoard(logger logx.Logger) *GameBuilder {
	if logger == nil {
		logger = logx.Nop()
	}
	return &GameBuilder{history: history.NewHistory(), status: base.InvalidGame, logger: logger}
}

func (gb *GameBuilder) CreateFromFEN(fen string) (base.GameStatus, error) {
	gb.logger.Debugf("create game by FEN: %v", fen)
	pos, err := board.ConvertFENToPosition(fen)
	if err != nil {
		return base.InvalidGame, fmt.Errorf("error parse FEN: %w", err)
	}
	gb.board = pos.Board
	gb.detector = detector.New(pos.Board, gb.logger)
	gb.history = history.NewHistory()
	gb.history.SetDefaultInfoGame(time.Now().Format("2006.01.02"))
	gb.start = *pos
	gb.startFEN = fen
	gb.toMove = pos.ToMove
	gb.id = ""
	gb.started = time.Now().UTC()
	gb.refresh()
	return gb.status, nil
}

func (gb *GameBuilder) CreateClassic() {
	gb.logger.Debug("create classic game")
	gb.status, _ = gb.CreateFromFEN(base.FEN_START_GAME)
}

// CreateFromRecord loads fen and replays coordinate moves on top of it.
func (gb *GameBuilder) CreateFromRecord(fen string, moves []string) (base.GameStatus, error) {
	if _, err := gb.CreateFromFEN(fen); err != nil {
		return base.InvalidGame, err
	}
	for _, mv := range moves {
		if _, err := gb.MoveCoord(mv); err != nil {
			return base.InvalidGame, err
		}
	}
	return gb.status, nil
}

func (gb *GameBuilder) refresh() {
	gb.status = gb.detector.Status(gb.toMove)
	if gb.status.Finished() {
		gb.history.InfoGame().SetResult(history.ResultOf(gb.status, gb.toMove))
	} else {
		gb.history.InfoGame().SetResult(history.ResultOngoing)
	}
}

func (gb *GameBuilder) Status() base.GameStatus { return gb.status }
func (gb *GameBuilder) ToMove() base.Color      { return gb.toMove }
func (gb *GameBuilder) StartFEN() string        { return gb.startFEN }
func (gb *GameBuilder) Started() time.Time      { return gb.started }

// GameID is the id the game is stored under, empty until its first save.
func (gb *GameBuilder) GameID() string { return gb.id }

// Resume binds the game to a stored record so later saves replace it.
func (gb *GameBuilder) Resume(id string, started time.Time) {
	gb.id = id
	if !started.IsZero() {
		gb.started = started
	}
}

// Move validates mv for the side to move and plays it.
func (gb *GameBuilder) Move(mv base.Move) (base.GameStatus, error) {
	if gb.board == nil {
		return base.InvalidGame, errs.ErrNoGame
	}
	ply := gb.history.CurrentMove() + 1
	reject := func(err error) (base.GameStatus, error) {
		gb.logger.Infof("rejected move %v: %v", mv, err)
		return gb.status, &errs.MoveError{Err: err, Move: mv.String(), Ply: ply}
	}

	if gb.status.Finished() {
		return reject(errs.ErrGameOver)
	}
	id := gb.board.At(mv.From)
	if id == board.NoPiece {
		return reject(errs.ErrNoPiece)
	}
	if gb.board.Piece(id).Color != gb.toMove {
		return reject(errs.ErrNotYourTurn)
	}
	if !base.SetOf(gb.detector.LegalMoves(id)...).Has(mv.To) {
		return reject(errs.ErrIllegalMove)
	}

	if _, err := gb.history.Push(gb.board, mv); err != nil {
		return reject(err)
	}
	gb.detector.Update()
	gb.toMove = gb.toMove.Opposite()
	gb.refresh()
	gb.logger.Infof("move %v, %v to play, status %v", mv, gb.toMove, gb.status)
	return gb.status, nil
}

// MoveCoord plays a move given in coordinate notation ("e2e4").
func (gb *GameBuilder) MoveCoord(s string) (base.GameStatus, error) {
	mv, err := base.MoveFromCoord(s)
	if err != nil {
		return gb.status, &errs.MoveError{Err: errs.Wrap(errs.ErrIllegalMove, err.Error()), Move: s, Ply: gb.history.CurrentMove() + 1}
	}
	return gb.Move(mv)
}

func (gb *GameBuilder) Undo() (base.GameStatus, error) {
	gb.logger.Debug("call undo")
	return gb.step(gb.history.Undo)
}

func (gb *GameBuilder) Redo() (base.GameStatus, error) {
	gb.logger.Debug("call redo")
	return gb.step(gb.history.Redo)
}

func (gb *GameBuilder) step(fn func(*board.Board) error) (base.GameStatus, error) {
	if gb.board == nil {
		return base.InvalidGame, errs.ErrNoGame
	}
	if err := fn(gb.board); err != nil {
		return gb.status, err
	}
	gb.afterJump()
	return gb.status, nil
}

// CurrentMove offsets the game to the position after number moves.
func (gb *GameBuilder) CurrentMove(number int) (base.GameStatus, error) {
	gb.logger.Debugf("goto move %d", number)
	if gb.board == nil {
		return base.InvalidGame, errs.ErrNoGame
	}
	if err := gb.history.GotoMove(gb.board, number); err != nil {
		return gb.status, err
	}
	gb.afterJump()
	return gb.status, nil
}

func (gb *GameBuilder) afterJump() {
	gb.detector.Update()
	gb.toMove = gb.start.ToMove
	if gb.history.CurrentMove()%2 == 1 {
		gb.toMove = gb.toMove.Opposite()
	}
	gb.refresh()
}

func (gb *GameBuilder) CurrentBoard() base.Mailbox {
	if gb.board == nil {
		return base.Mailbox{}
	}
	return gb.board.Mailbox()
}

func (gb *GameBuilder) Board() *board.Board { return gb.board }

// return FEN of this game
func (gb *GameBuilder) FEN() string {
	if gb.board == nil {
		return ""
	}
	half, full := gb.start.Halfmove, gb.start.Fullmove
	side := gb.start.ToMove
	for _, e := range gb.history.Entries()[:gb.history.CurrentMove()] {
		if e.Undo.IsCapture() || gb.board.Piece(e.Undo.Piece).Kind == base.Pawn {
			half = 0
		} else {
			half++
		}
		if side == base.Black {
			full++
		}
		side = side.Opposite()
	}
	return board.ConvertPositionToFEN(&board.Position{Board: gb.board, ToMove: gb.toMove, Halfmove: half, Fullmove: full})
}

// Moves returns the moves played so far.
func (gb *GameBuilder) Moves() []base.Move { return gb.history.Played() }

// MovesText is the numbered move list, e.g. "1. e2e4 e7e5".
func (gb *GameBuilder) MovesText() string { return gb.history.MovesAsText(gb.start.ToMove) }

func (gb *GameBuilder) InfoGame() *history.InfoGame { return gb.history.InfoGame() }

// LegalMoves returns the destinations of the piece on sq when it belongs to
// the side to move.
func (gb *GameBuilder) LegalMoves(sq base.Square) []base.Square {
	if gb.board == nil {
		return nil
	}
	if p, ok := gb.board.Occupant(sq); !ok || p.Color != gb.toMove {
		return nil
	}
	return gb.detector.LegalMovesAt(sq)
}

// AllowableSquares is the detector's answer for the side to move.
func (gb *GameBuilder) AllowableSquares() base.SquareSet {
	if gb.detector == nil {
		return 0
	}
	return gb.detector.AllowableSquares(gb.toMove)
}

func (gb *GameBuilder) IsInCheck() bool {
	return gb.detector != nil && gb.detector.IsInCheck(gb.toMove)
}

func (gb *GameBuilder) Detector() *detector.Detector { return gb.detector }
