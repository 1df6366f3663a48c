package search

import (
	"github.com/herohde/morlockcore/pkg/board"
	"github.com/herohde/morlockcore/pkg/eval"
	"github.com/herohde/morlockcore/pkg/movegen"
)

// quiescence extends search along capture/promotion/check-evasion lines
// until the position is quiet, avoiding the horizon effect at the leaves
// of the main search.
func (s *Searcher) quiescence(ply int, alpha, beta board.Score) board.Score {
	pos := s.Pos
	s.nodes++

	if pos.IsFiftyMoveDraw() || pos.IsRepeatedThreefold() || pos.HasInsufficientMaterial() {
		return 0
	}

	inCheck := pos.IsChecked(pos.Turn())

	var standPat board.Score
	if !inCheck {
		standPat = s.Eval.Evaluate(pos)
		if standPat >= beta {
			return beta
		}
		if standPat > alpha {
			alpha = standPat
		}
	}

	var pseudo []board.Move
	if inCheck {
		// In check: every pseudo-legal reply must be tried, not just captures.
		pseudo = movegen.GeneratePseudoLegal(pos, make([]board.Move, 0, movegen.MaxMoves))
	} else {
		pseudo = movegen.GenerateCaptures(pos, make([]board.Move, 0, movegen.MaxMoves))
	}

	ordered := movegen.NewOrderedMoves(pseudo, &movegen.Scorer{})
	hasLegalMove := false
	for {
		m, ok := ordered.Next()
		if !ok {
			break
		}
		if !inCheck && losesMaterial(m) {
			continue // skip: losing capture, futile in quiescence
		}

		undo, legal := pos.Make(m)
		if !legal {
			pos.Unmake(m, undo)
			continue // skip: not legal
		}
		hasLegalMove = true

		score := -s.quiescence(ply+1, -beta, -alpha)
		pos.Unmake(m, undo)

		if score >= beta {
			return beta
		}
		if score > alpha {
			alpha = score
		}
	}
	if inCheck && !hasLegalMove {
		return -board.MateScore + board.Score(ply)
	}
	return alpha
}

// losesMaterial is a cheap SEE stand-in: a capture where the attacker is
// worth much more than the victim and there's no promotion is usually a
// losing trade, not worth exploring at quiescence depth.
func losesMaterial(m board.Move) bool {
	if !m.IsCapture() || m.IsPromotion() {
		return false
	}
	return eval.NominalValue(m.Capture) < eval.NominalValue(m.Piece)-200
}
