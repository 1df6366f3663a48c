// Package eval contains static position evaluation.
package eval

import "github.com/herohde/morlockcore/pkg/board"

// Evaluator is a static position evaluator, always from the perspective
// of the side to move.
type Evaluator interface {
	Evaluate(pos *board.Position) board.Score
}

// NominalValue is the centipawn value of a piece kind, used both by the
// evaluator and by move ordering. The king has an arbitrary large value
// so it is never traded away by material comparison.
func NominalValue(p board.Piece) board.Score {
	switch p {
	case board.Pawn:
		return 100
	case board.Knight, board.Bishop:
		return 320
	case board.Rook:
		return 500
	case board.Queen:
		return 900
	case board.King:
		return 20000
	default:
		return 0
	}
}

// Material is the simplest evaluator: the nominal material balance for
// the side to move, plus a small positional nudge from piece-square
// tables. Concrete implementation kept deliberately simple since weight
// tuning is out of scope; pluggable via the Evaluator interface.
type Material struct{}

func (Material) Evaluate(pos *board.Position) board.Score {
	us := pos.Turn()
	them := us.Opponent()

	var score board.Score
	for p := board.Pawn; p <= board.King; p++ {
		ours := pos.Piece(us, p).PopCount()
		theirs := pos.Piece(them, p).PopCount()
		score += board.Score(ours-theirs) * NominalValue(p)
	}
	score += pstBalance(pos, us) - pstBalance(pos, them)
	return score
}

// pstBalance sums the piece-square bonuses for color c's own pieces.
func pstBalance(pos *board.Position, c board.Color) board.Score {
	var score board.Score
	for p := board.Pawn; p <= board.King; p++ {
		bb := pos.Piece(c, p)
		for bb != 0 {
			sq := bb.PopLSB()
			score += pieceSquareBonus(p, sq, c)
		}
	}
	return score
}

// pieceSquareBonus mirrors a White-oriented table vertically for Black,
// since all tables are authored from White's perspective (rank 0 = back rank).
func pieceSquareBonus(p board.Piece, sq board.Square, c board.Color) board.Score {
	idx := int(sq)
	if c == board.Black {
		idx = int(sq) ^ 56 // flip rank, keep file
	}
	switch p {
	case board.Pawn:
		return pawnPST[idx]
	case board.Knight:
		return knightPST[idx]
	default:
		return 0
	}
}

// Tables favor central control and advanced pawns; values in centipawns.
var pawnPST = [64]board.Score{
	0, 0, 0, 0, 0, 0, 0, 0,
	5, 10, 10, -20, -20, 10, 10, 5,
	5, -5, -10, 0, 0, -10, -5, 5,
	0, 0, 0, 20, 20, 0, 0, 0,
	5, 5, 10, 25, 25, 10, 5, 5,
	10, 10, 20, 30, 30, 20, 10, 10,
	50, 50, 50, 50, 50, 50, 50, 50,
	0, 0, 0, 0, 0, 0, 0, 0,
}

var knightPST = [64]board.Score{
	-50, -40, -30, -30, -30, -30, -40, -50,
	-40, -20, 0, 5, 5, 0, -20, -40,
	-30, 5, 10, 15, 15, 10, 5, -30,
	-30, 0, 15, 20, 20, 15, 0, -30,
	-30, 5, 15, 20, 20, 15, 5, -30,
	-30, 0, 10, 15, 15, 10, 0, -30,
	-40, -20, 0, 0, 0, 0, -20, -40,
	-50, -40, -30, -30, -30, -30, -40, -50,
}
