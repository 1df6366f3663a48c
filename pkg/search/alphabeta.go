package search

import (
	"github.com/herohde/morlockcore/pkg/board"
	"github.com/herohde/morlockcore/pkg/movegen"
	"github.com/herohde/morlockcore/pkg/tt"
)

const (
	nullMoveMinDepth  = 3
	nullMoveReduction = 2
	futilityMaxDepth  = 3
	razorMaxDepth     = 2
	lmrMinDepth       = 3
	lmrMinMoveNumber  = 4
)

var futilityMargin = [futilityMaxDepth + 1]board.Score{0, 150, 300, 500}
var razorMargin = [razorMaxDepth + 1]board.Score{0, 300, 600}

func (s *Searcher) searchRoot(depth int) (board.Score, []board.Move) {
	return s.negamaxPV(depth, 0, board.MinScore, board.MaxScore)
}

// negamaxPV is like negamax but also returns a principal variation, used
// only at nodes whose PV is reported (the root, in this searcher). negamax
// returns no child PV, so the returned PV holds only the best root move;
// moves beyond it are not reconstructed.
func (s *Searcher) negamaxPV(depth, ply int, alpha, beta board.Score) (board.Score, []board.Move) {
	pos := s.Pos
	s.nodes++

	var hashMove board.Move
	if e, ok := s.TT.Probe(pos.Hash()); ok {
		hashMove = e.Move
	}
	pseudo := movegen.GeneratePseudoLegal(pos, make([]board.Move, 0, movegen.MaxMoves))
	ordered := movegen.NewOrderedMoves(pseudo, &movegen.Scorer{HashMove: hashMove, Killers: s.killers[ply], History: s.historyScore})

	var bestPV []board.Move
	best := board.MinScore
	var bestMove board.Move
	hasLegalMove := false

	for {
		m, ok := ordered.Next()
		if !ok {
			break
		}
		undo, legal := pos.Make(m)
		if !legal {
			pos.Unmake(m, undo)
			continue // skip: not legal
		}
		hasLegalMove = true

		score, childPV := s.negamax(depth-1, ply+1, -beta, -alpha)
		score = -score
		pos.Unmake(m, undo)

		if score > best {
			best = score
			bestMove = m
			bestPV = append([]board.Move{m}, childPV...)
		}
		if best > alpha {
			alpha = best
		}
		if alpha >= beta {
			s.recordKiller(ply, m)
			s.bumpHistory(m, depth)
			break
		}
	}

	if !hasLegalMove {
		if pos.IsChecked(pos.Turn()) {
			return -board.MateScore + board.Score(ply), nil
		}
		return 0, nil
	}

	s.TT.Record(pos.Hash(), tt.Entry{Move: bestMove, Score: best, Depth: depth, Bound: tt.Exact}, s.age)
	return best, bestPV
}

// negamax is the workhorse recursive search, without PV reconstruction.
func (s *Searcher) negamax(depth, ply int, alpha, beta board.Score) (board.Score, []board.Move) {
	pos := s.Pos

	if s.Stop.Stopped() {
		return 0, nil
	}

	if pos.IsFiftyMoveDraw() || pos.IsRepeatedThreefold() || pos.HasInsufficientMaterial() {
		return 0, nil
	}

	if e, ok := s.TT.Probe(pos.Hash()); ok && e.Depth >= depth {
		switch e.Bound {
		case tt.Exact:
			return e.Score, nil
		case tt.Lower:
			if e.Score > alpha {
				alpha = e.Score
			}
		case tt.Upper:
			if e.Score < beta {
				beta = e.Score
			}
		}
		if alpha >= beta {
			return e.Score, nil
		}
	}

	if score, bound, ok := s.EGTB.Probe(pos); ok {
		switch bound {
		case tt.Exact:
			return score, nil
		case tt.Lower:
			if score >= beta {
				return score, nil
			}
		case tt.Upper:
			if score <= alpha {
				return score, nil
			}
		}
	}

	inCheck := pos.IsChecked(pos.Turn())

	if depth <= 0 {
		s.nodes++
		return s.quiescence(ply, alpha, beta), nil
	}
	s.nodes++

	// Null-move pruning: skip our move entirely and see if the opponent
	// is still in enough trouble that we'd beat beta anyway. Disabled in
	// check (no legal null move) and near the leaves.
	if !inCheck && depth >= nullMoveMinDepth && hasNonPawnMaterial(pos) {
		nu := pos.MakeNull()
		score, _ := s.negamax(depth-1-nullMoveReduction, ply+1, -beta, -beta+1)
		score = -score
		pos.UnmakeNull(nu)
		if score >= beta {
			return beta, nil
		}
	}

	// Razoring: at shallow depth, if the static eval is far below alpha,
	// drop straight to quiescence rather than doing a full-width search.
	if !inCheck && depth <= razorMaxDepth {
		staticEval := s.Eval.Evaluate(pos)
		if staticEval+razorMargin[depth] < alpha {
			q := s.quiescence(ply, alpha, beta)
			if q < alpha {
				return q, nil
			}
		}
	}

	var hashMove board.Move
	if e, ok := s.TT.Probe(pos.Hash()); ok {
		hashMove = e.Move
	}
	pseudo := movegen.GeneratePseudoLegal(pos, make([]board.Move, 0, movegen.MaxMoves))
	ordered := movegen.NewOrderedMoves(pseudo, &movegen.Scorer{HashMove: hashMove, Killers: s.killers[ply], History: s.historyScore})

	staticEval := s.Eval.Evaluate(pos)
	futile := !inCheck && depth <= futilityMaxDepth && staticEval+futilityMargin[depth] <= alpha

	best := board.MinScore
	var bestMove board.Move
	bound := tt.Upper
	moveNumber := 0
	hasLegalMove := false

	for {
		m, ok := ordered.Next()
		if !ok {
			break
		}

		undo, legal := pos.Make(m)
		if !legal {
			pos.Unmake(m, undo)
			continue // skip: not legal
		}
		hasLegalMove = true
		moveNumber++
		quiet := !m.IsCapture() && !m.IsPromotion()

		if futile && quiet && moveNumber > 1 {
			pos.Unmake(m, undo)
			continue // skip: can't plausibly raise alpha at this depth
		}

		reduction := 0
		if quiet && depth >= lmrMinDepth && moveNumber > lmrMinMoveNumber && !inCheck {
			reduction = 1
		}

		childDepth := depth - 1 - reduction
		score, _ := s.negamax(childDepth, ply+1, -beta, -alpha)
		score = -score
		if reduction > 0 && score > alpha {
			// Re-search at full depth: the reduced search suggested this
			// move is better than expected.
			score, _ = s.negamax(depth-1, ply+1, -beta, -alpha)
			score = -score
		}
		pos.Unmake(m, undo)

		if score > best {
			best = score
			bestMove = m
		}
		if best > alpha {
			alpha = best
			bound = tt.Exact
		}
		if alpha >= beta {
			bound = tt.Lower
			s.recordKiller(ply, m)
			s.bumpHistory(m, depth)
			break
		}
	}

	if !hasLegalMove {
		if inCheck {
			return -board.MateScore + board.Score(ply), nil
		}
		return 0, nil
	}

	s.TT.Record(pos.Hash(), tt.Entry{Move: bestMove, Score: best, Depth: depth, Bound: bound}, s.age)
	return best, nil
}

func hasNonPawnMaterial(pos *board.Position) bool {
	us := pos.Turn()
	return pos.Piece(us, board.Knight)|pos.Piece(us, board.Bishop)|pos.Piece(us, board.Rook)|pos.Piece(us, board.Queen) != 0
}
