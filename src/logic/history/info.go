package history

import "chessrules/src/base"

// Header names follow the PGN seven tag roster.
const (
	HeaderEvent  = "Event"
	HeaderSite   = "Site"
	HeaderDate   = "Date"
	HeaderWhite  = "White"
	HeaderBlack  = "Black"
	HeaderResult = "Result"
)

const (
	ResultWhiteWins = "1-0"
	ResultBlackWins = "0-1"
	ResultDraw      = "1/2-1/2"
	ResultOngoing   = "*"
)

type InfoGame struct {
	headers map[string]string
}

func NewInfoGame() *InfoGame {
	return &InfoGame{headers: make(map[string]string)}
}

// event
func (i *InfoGame) SetEvent(name string) { i.headers[HeaderEvent] = name }
func (i *InfoGame) GetEvent() string     { return i.headers[HeaderEvent] }

// site
func (i *InfoGame) SetSite(name string) { i.headers[HeaderSite] = name }
func (i *InfoGame) GetSite() string     { return i.headers[HeaderSite] }

// date
func (i *InfoGame) SetDate(date string) { i.headers[HeaderDate] = date }
func (i *InfoGame) GetDate() string     { return i.headers[HeaderDate] }

// players
func (i *InfoGame) SetWhitePlayer(name string) { i.headers[HeaderWhite] = name }
func (i *InfoGame) GetWhitePlayer() string     { return i.headers[HeaderWhite] }
func (i *InfoGame) SetBlackPlayer(name string) { i.headers[HeaderBlack] = name }
func (i *InfoGame) GetBlackPlayer() string     { return i.headers[HeaderBlack] }

// result
func (i *InfoGame) SetResult(res string) { i.headers[HeaderResult] = res }
func (i *InfoGame) GetResult() string    { return i.headers[HeaderResult] }

// Headers returns a copy of every header.
func (i *InfoGame) Headers() map[string]string {
	out := make(map[string]string, len(i.headers))
	for k, v := range i.headers {
		out[k] = v
	}
	return out
}

func (i *InfoGame) SetHeaders(h map[string]string) {
	for k, v := range h {
		i.headers[k] = v
	}
}

// ResultOf maps a finished status to a result tag. toMove is the side the
// status was computed for.
func ResultOf(status base.GameStatus, toMove base.Color) string {
	switch status {
	case base.Checkmate:
		if toMove == base.White {
			return ResultBlackWins
		}
		return ResultWhiteWins
	case base.Stalemate:
		return ResultDraw
	}
	return ResultOngoing
}
