package store

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"chessrules/src/base"
	"chessrules/src/errs"
	"chessrules/src/logx"
	"chessrules/src/testutil"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func openMem(t *testing.T) *Store {
	t.Helper()
	s, err := OpenInMemory(logx.Nop())
	testutil.AssertNoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveLoad(t *testing.T) {
	s := openMem(t)
	rec := &GameRecord{
		StartFEN: base.FEN_START_GAME,
		Moves:    []string{"f2f3", "e7e5", "g2g4", "d8h4"},
		Headers:  map[string]string{"White": "alice", "Black": "bob"},
		Result:   "0-1",
		Status:   base.Checkmate.String(),
	}
	testutil.AssertNoError(t, s.Save(rec))
	testutil.AssertEqual(t, len(rec.ID), 16)
	testutil.AssertFalse(t, rec.Saved.IsZero())
	testutil.AssertFalse(t, rec.Started.IsZero())

	got, err := s.Load(rec.ID)
	testutil.AssertNoError(t, err)
	if diff := cmp.Diff(rec, got, cmpopts.EquateApproxTime(0)); diff != "" {
		t.Errorf("loaded record differs (-saved +loaded):\n%s", diff)
	}
}

func TestLoadMissing(t *testing.T) {
	s := openMem(t)
	_, err := s.Load("nope")
	testutil.AssertTrue(t, errors.Is(err, errs.ErrGameNotFound), "got %v", err)
	testutil.AssertTrue(t, errors.Is(s.Delete("nope"), errs.ErrGameNotFound))
}

func TestListAndDelete(t *testing.T) {
	s := openMem(t)
	first := &GameRecord{StartFEN: base.FEN_START_GAME, Moves: []string{"e2e4"}, Result: "*"}
	second := &GameRecord{StartFEN: base.FEN_START_GAME, Moves: []string{"d2d4"}, Result: "1-0"}
	third := &GameRecord{StartFEN: base.FEN_START_GAME, Moves: []string{"c2c4"}, Result: "1/2-1/2"}
	for _, r := range []*GameRecord{first, second, third} {
		testutil.AssertNoError(t, s.Save(r))
	}

	games, err := s.List()
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, len(games), 3)
	testutil.AssertEqual(t, games[0].ID, third.ID, "newest first")

	stats, err := s.Stats()
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, *stats, GameStats{Games: 3, WhiteWins: 1, Draws: 1, Ongoing: 1})

	testutil.AssertNoError(t, s.Delete(second.ID))
	games, err = s.List()
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, len(games), 2)
	_, err = s.Load(second.ID)
	testutil.AssertTrue(t, errors.Is(err, errs.ErrGameNotFound))
}

func TestSaveKeepsID(t *testing.T) {
	s := openMem(t)
	rec := &GameRecord{StartFEN: base.FEN_START_GAME, Moves: []string{"e2e4"}, Result: "*"}
	testutil.AssertNoError(t, s.Save(rec))
	id, started := rec.ID, rec.Started

	rec.Moves = append(rec.Moves, "e7e5")
	testutil.AssertNoError(t, s.Save(rec))
	testutil.AssertEqual(t, rec.ID, id)
	testutil.AssertTrue(t, rec.Started.Equal(started))

	games, err := s.List()
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, len(games), 1)
	testutil.AssertEqual(t, games[0].Moves, []string{"e2e4", "e7e5"})
}

func TestSameMovesDifferentGames(t *testing.T) {
	s := openMem(t)
	moves := []string{"e2e4", "e7e5"}
	testutil.AssertNoError(t, s.Save(&GameRecord{StartFEN: base.FEN_START_GAME, Moves: moves}))
	testutil.AssertNoError(t, s.Save(&GameRecord{StartFEN: base.FEN_START_GAME, Moves: moves}))

	games, err := s.List()
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, len(games), 2)
}

func TestNewRecordID(t *testing.T) {
	now := time.Now()
	a := NewRecordID(base.FEN_START_GAME, now)
	testutil.AssertEqual(t, len(a), 16)
	testutil.AssertTrue(t, a != NewRecordID(base.FEN_START_GAME, now))
}

func TestOnDisk(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "db")
	s, err := Open(dir, logx.Nop())
	testutil.AssertNoError(t, err)
	rec := &GameRecord{StartFEN: base.FEN_START_GAME, Moves: []string{"g1f3"}}
	testutil.AssertNoError(t, s.Save(rec))
	testutil.AssertNoError(t, s.Close())

	s, err = Open(dir, logx.Nop())
	testutil.AssertNoError(t, err)
	defer s.Close()
	got, err := s.Load(rec.ID)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, got.Moves, []string{"g1f3"})
}
