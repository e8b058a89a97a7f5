package store

import (
	"chessrules/src"
	"chessrules/src/base"
)

// FromGame captures the played part of a game. A game that was saved or
// loaded before keeps its id.
func FromGame(gb *src.GameBuilder) *GameRecord {
	played := gb.Moves()
	moves := make([]string, len(played))
	for i, mv := range played {
		moves[i] = mv.String()
	}
	info := gb.InfoGame()
	return &GameRecord{
		ID:       gb.GameID(),
		StartFEN: gb.StartFEN(),
		Moves:    moves,
		Headers:  info.Headers(),
		Result:   info.GetResult(),
		Status:   gb.Status().String(),
		Started:  gb.Started(),
	}
}

// SaveGame stores gb and binds it to the stored record, so saving it again
// after more moves replaces that record.
func (s *Store) SaveGame(gb *src.GameBuilder) (*GameRecord, error) {
	rec := FromGame(gb)
	if err := s.Save(rec); err != nil {
		return nil, err
	}
	gb.Resume(rec.ID, rec.Started)
	return rec, nil
}

// Replay loads the record into gb, checking every move again.
func (r *GameRecord) Replay(gb *src.GameBuilder) (base.GameStatus, error) {
	status, err := gb.CreateFromRecord(r.StartFEN, r.Moves)
	if err != nil {
		return base.InvalidGame, err
	}
	result := gb.InfoGame().GetResult()
	gb.InfoGame().SetHeaders(r.Headers)
	gb.InfoGame().SetResult(result)
	gb.Resume(r.ID, r.Started)
	return status, nil
}
