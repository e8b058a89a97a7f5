package rules

import (
	"context"
	"runtime"
	"sync"

	"chessrules/src/base"

	"golang.org/x/sync/errgroup"
)

// Perft counts the leaf nodes of the legal move tree of the given depth with
// side to move first. It stops with ctx's error once ctx is done. The board
// is left as it was found either way.
func (e *Engine) Perft(ctx context.Context, side base.Color, depth int) (uint64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.perft(ctx, side, depth)
}

func (e *Engine) perft(ctx context.Context, side base.Color, depth int) (uint64, error) {
	if depth <= 0 {
		return 1, nil
	}
	legal := e.allLegalMoves(side)
	if depth == 1 {
		return uint64(len(legal)), nil
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	var nodes uint64
	for _, m := range legal {
		u := e.board.Apply(e.board.At(m.From), m.To)
		n, err := e.perft(ctx, side.Opposite(), depth-1)
		e.board.Revert(u)
		if err != nil {
			e.update()
			return 0, err
		}
		nodes += n
	}
	e.update()
	return nodes, nil
}

// PerftDivide reports the perft count below each root move. Root moves are
// searched in parallel, each on its own clone of the board with its own
// engine, so the receiver's board is only read.
func (e *Engine) PerftDivide(ctx context.Context, side base.Color, depth int) (map[base.Move]uint64, error) {
	e.mu.Lock()
	root := e.allLegalMoves(side)
	snapshot := e.board.Clone()
	logger := e.logger
	e.mu.Unlock()

	out := make(map[base.Move]uint64, len(root))
	if depth <= 0 {
		return out, nil
	}

	var mu sync.Mutex
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for _, m := range root {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			b := snapshot.Clone()
			b.Apply(b.At(m.From), m.To)
			n, err := NewEngine(b, WithLogger(logger)).perft(ctx, side.Opposite(), depth-1)
			if err != nil {
				return err
			}

			mu.Lock()
			out[m] = n
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Sum adds up a divide result.
func Sum(divide map[base.Move]uint64) uint64 {
	var total uint64
	for _, n := range divide {
		total += n
	}
	return total
}
