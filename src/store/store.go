// Package store keeps finished and unfinished games in a badger database.
// A game is stored as its starting FEN plus the coordinate moves played from
// it, so loading replays every move through the rules engine again.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"sort"
	"time"

	"chessrules/src/errs"
	"chessrules/src/logic/history"
	"chessrules/src/logx"

	"github.com/cespare/xxhash/v2"
	"github.com/dgraph-io/badger/v4"
)

const keyGamePrefix = "game:"

// GameRecord is the persisted form of one game.
type GameRecord struct {
	ID       string            `json:"id"`
	StartFEN string            `json:"start_fen"`
	Moves    []string          `json:"moves"`
	Headers  map[string]string `json:"headers,omitempty"`
	Result   string            `json:"result"`
	Status   string            `json:"status"`
	Started  time.Time         `json:"started"`
	Saved    time.Time         `json:"saved"`
}

// NewRecordID makes a fresh id for a game. It is assigned on the first save
// and kept for every later save of the same game.
func NewRecordID(startFEN string, started time.Time) string {
	key := fmt.Sprintf("%s|%d|%d", startFEN, started.UnixNano(), rand.Uint64())
	return fmt.Sprintf("%016x", xxhash.Sum64String(key))
}

type Store struct {
	db     *badger.DB
	logger logx.Logger
}

// Open opens or creates the database in dir.
func Open(dir string, logger logx.Logger) (*Store, error) {
	opts := badger.DefaultOptions(dir)
	return open(opts, logger)
}

// OpenInMemory opens a database that lives only as long as the Store.
func OpenInMemory(logger logx.Logger) (*Store, error) {
	opts := badger.DefaultOptions("").WithInMemory(true)
	return open(opts, logger)
}

func open(opts badger.Options, logger logx.Logger) (*Store, error) {
	if logger == nil {
		logger = logx.Nop()
	}
	opts.Logger = newBadgerLogger(logger.With("component", "badger"))

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open game store: %w", err)
	}
	return &Store{db: db, logger: logger}, nil
}

// Close closes the database
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func gameKey(id string) []byte { return []byte(keyGamePrefix + id) }

// Save writes rec under its id, assigning a new id when it has none.
func (s *Store) Save(rec *GameRecord) error {
	now := time.Now().UTC()
	if rec.Started.IsZero() {
		rec.Started = now
	}
	if rec.ID == "" {
		rec.ID = NewRecordID(rec.StartFEN, rec.Started)
	}
	rec.Saved = now

	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(gameKey(rec.ID), data)
	})
	if err != nil {
		return err
	}
	s.logger.Infof("saved game %s (%d moves)", rec.ID, len(rec.Moves))
	return nil
}

// Load returns the record stored under id.
func (s *Store) Load(id string) (*GameRecord, error) {
	var rec GameRecord
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(gameKey(id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return errs.Wrapf(errs.ErrGameNotFound, "id %q", id)
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &rec)
		})
	})
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// List returns every stored game, most recently saved first.
func (s *Store) List() ([]GameRecord, error) {
	var out []GameRecord
	err := s.db.View(func(txn *badger.Txn) error {
		prefix := []byte(keyGamePrefix)
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var rec GameRecord
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &rec)
			})
			if err != nil {
				return fmt.Errorf("decode %s: %w", it.Item().Key(), err)
			}
			out = append(out, rec)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Saved.After(out[j].Saved) })
	return out, nil
}

// Delete removes the game stored under id.
func (s *Store) Delete(id string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(gameKey(id)); errors.Is(err, badger.ErrKeyNotFound) {
			return errs.Wrapf(errs.ErrGameNotFound, "id %q", id)
		} else if err != nil {
			return err
		}
		return txn.Delete(gameKey(id))
	})
}

// GameStats counts stored games by result.
type GameStats struct {
	Games     int
	WhiteWins int
	BlackWins int
	Draws     int
	Ongoing   int
}

func (s *Store) Stats() (*GameStats, error) {
	games, err := s.List()
	if err != nil {
		return nil, err
	}
	stats := &GameStats{Games: len(games)}
	for _, g := range games {
		switch g.Result {
		case history.ResultWhiteWins:
			stats.WhiteWins++
		case history.ResultBlackWins:
			stats.BlackWins++
		case history.ResultDraw:
			stats.Draws++
		default:
			stats.Ongoing++
		}
	}
	return stats, nil
}
