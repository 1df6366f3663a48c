// Package egtb defines the endgame tablebase probing interface. No
// tablebase format is implemented; positions simply report a miss.
package egtb

import (
	"github.com/herohde/morlockcore/pkg/board"
	"github.com/herohde/morlockcore/pkg/tt"
)

// Tablebase probes an endgame tablebase for an exact or bounded score.
type Tablebase interface {
	// Probe reports the score for pos from the side to move's
	// perspective, and whether it is exact or only a bound (mirroring
	// tt.Bound so a hit can seed the transposition table directly).
	Probe(pos *board.Position) (score board.Score, bound tt.Bound, ok bool)
}

// None never has a hit.
var None Tablebase = none{}

type none struct{}

func (none) Probe(*board.Position) (board.Score, tt.Bound, bool) {
	return 0, tt.Exact, false
}
