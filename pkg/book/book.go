// Package book implements opening book lookup.
package book

import (
	"fmt"
	"sort"
	"strings"

	"github.com/herohde/morlockcore/pkg/board"
	"github.com/herohde/morlockcore/pkg/board/fen"
	"github.com/herohde/morlockcore/pkg/movegen"
)

// Book probes an opening book for a move to play from pos.
type Book interface {
	// Probe returns a move to play from pos, if the position is in book.
	// Once a position returns false, the book should not be consulted
	// again for the rest of the game.
	Probe(pos *board.Position) (board.Move, bool)
}

// NoBook never has a move.
var NoBook Book = noBook{}

type noBook struct{}

func (noBook) Probe(*board.Position) (board.Move, bool) { return board.Move{}, false }

// Line is a sequence of moves in coordinate notation from the starting
// position, e.g. ["e2e4", "e7e5", "g1f3"].
type Line []string

func (l Line) String() string {
	return strings.Join(l, " ")
}

// New builds a book from a set of opening lines. Each line is replayed
// move by move from the starting position; every prefix position maps
// to the set of moves played from it across all lines, so transpositions
// merge naturally. Only the position's piece placement, side to move,
// castling rights and en-passant square are used as the lookup key
// (move clocks don't affect book choice).
func New(lines []Line) (Book, error) {
	moves := map[string]map[board.Move]bool{}

	for _, line := range lines {
		pos, err := fen.Decode(fen.Initial)
		if err != nil {
			return nil, err
		}

		for _, str := range line {
			candidate, err := board.ParseMove(str)
			if err != nil {
				return nil, err
			}

			legal, err := matchLegal(pos, candidate)
			if err != nil {
				return nil, err
			}

			key := bookKey(pos)
			if moves[key] == nil {
				moves[key] = map[board.Move]bool{}
			}
			moves[key][legal] = true

			undo, ok := pos.Make(legal)
			if !ok {
				pos.Unmake(legal, undo)
				return nil, fmt.Errorf("book line %v: move %v leaves king in check", line, str)
			}
		}
	}

	dedup := make(map[string][]board.Move, len(moves))
	for k, set := range moves {
		list := make([]board.Move, 0, len(set))
		for m := range set {
			list = append(list, m)
		}
		sort.Slice(list, func(i, j int) bool { return list[i].String() < list[j].String() })
		dedup[k] = list
	}
	return &book{moves: dedup}, nil
}

type book struct {
	moves map[string][]board.Move // position key -> candidate moves
}

// Probe returns the first book move by coordinate-notation order. The
// caller (pkg/engine) is responsible for randomizing among candidates
// if it wants variety; Probe itself is deterministic.
func (b *book) Probe(pos *board.Position) (board.Move, bool) {
	list := b.moves[bookKey(pos)]
	if len(list) == 0 {
		return board.Move{}, false
	}
	return list[0], true
}

// Candidates returns every book move known for pos, for callers that
// want to pick randomly among them.
func (b *book) Candidates(pos *board.Position) []board.Move {
	return b.moves[bookKey(pos)]
}

func bookKey(pos *board.Position) string {
	encoded := fen.Encode(pos)
	parts := strings.Split(encoded, " ")
	if len(parts) < 4 {
		return encoded
	}
	return strings.Join(parts[:4], " ")
}

func matchLegal(pos *board.Position, candidate board.Move) (board.Move, error) {
	dst := movegen.GeneratePseudoLegal(pos, make([]board.Move, 0, movegen.MaxMoves))
	for _, m := range movegen.Legal(pos, dst) {
		if m.Equals(candidate) {
			return m, nil
		}
	}
	return board.Move{}, fmt.Errorf("move %v not legal", candidate)
}
