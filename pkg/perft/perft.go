// Package perft counts leaf nodes of the legal move tree to a fixed
// depth, the standard move-generator correctness and performance check.
package perft

import (
	"github.com/herohde/morlockcore/pkg/board"
	"github.com/herohde/morlockcore/pkg/movegen"
)

// Cache memoizes (hash, depth) -> count. An empty Cache{} is ready to use;
// a nil Cache disables caching. Safe only for single-goroutine use,
// matching Perft's own contract.
type Cache map[cacheKey]uint64

type cacheKey struct {
	hash  board.ZobristHash
	depth int
}

// Perft returns the number of leaf positions reachable from pos in
// exactly depth plies of legal play.
func Perft(pos *board.Position, depth int) uint64 {
	return perft(pos, depth, nil)
}

// PerftCached is Perft with an optional shared cache across sibling calls
// (e.g. divide output), avoiding re-searching transposed subtrees.
func PerftCached(pos *board.Position, depth int, cache Cache) uint64 {
	return perft(pos, depth, cache)
}

func perft(pos *board.Position, depth int, cache Cache) uint64 {
	if depth == 0 {
		return 1
	}

	if cache != nil {
		key := cacheKey{pos.Hash(), depth}
		if v, ok := cache[key]; ok {
			return v
		}
	}

	pseudo := movegen.GeneratePseudoLegal(pos, make([]board.Move, 0, movegen.MaxMoves))

	var count uint64
	for _, m := range pseudo {
		undo, legal := pos.Make(m)
		if legal {
			if depth == 1 {
				count++
			} else {
				count += perft(pos, depth-1, cache)
			}
		}
		pos.Unmake(m, undo)
	}

	if cache != nil {
		cache[cacheKey{pos.Hash(), depth}] = count
	}
	return count
}

// Divide returns the per-root-move leaf counts at depth-1, used to
// cross-check a mismatching perft count against a reference engine.
func Divide(pos *board.Position, depth int) map[board.Move]uint64 {
	pseudo := movegen.GeneratePseudoLegal(pos, make([]board.Move, 0, movegen.MaxMoves))
	out := make(map[board.Move]uint64, len(pseudo))
	for _, m := range pseudo {
		undo, legal := pos.Make(m)
		if legal {
			out[m] = perft(pos, depth-1, nil)
		}
		pos.Unmake(m, undo)
	}
	return out
}
