// Package search implements iterative-deepening alpha-beta search with
// quiescence search, transposition table lookups and standard pruning
// heuristics (null-move, futility, razoring, late-move reduction).
package search

import (
	"fmt"
	"time"

	"github.com/herohde/morlockcore/pkg/board"
	"github.com/herohde/morlockcore/pkg/egtb"
	"github.com/herohde/morlockcore/pkg/eval"
	"github.com/herohde/morlockcore/pkg/tt"
)

// MaxPly bounds search recursion and sizes per-ply state (killer table).
const MaxPly = 64

// PV is the principal variation found at some completed depth.
type PV struct {
	Depth int
	Score board.Score
	Nodes uint64
	Time  time.Duration
	Moves []board.Move
}

func (p PV) String() string {
	return fmt.Sprintf("depth=%v score=%v nodes=%v time=%v pv=%v", p.Depth, p.Score, p.Nodes, p.Time, board.PrintMoves(p.Moves))
}

// Options configures one search invocation.
type Options struct {
	MaxDepth int // 0 == no limit (bounded by MaxPly)
}

// Reporter receives progress during a search: one Report call per
// completed iterative-deepening depth, and one ReportBestMove call when
// the search concludes (depth exhausted, stopped, or out of time).
type Reporter interface {
	Report(depth int, score board.Score, nodes uint64, elapsed time.Duration, pv []board.Move)
	ReportBestMove(m board.Move, ponder board.Move, hasPonder bool)
}

// NopReporter discards all progress reports.
type NopReporter struct{}

func (NopReporter) Report(int, board.Score, uint64, time.Duration, []board.Move) {}
func (NopReporter) ReportBestMove(board.Move, board.Move, bool)                  {}

// Stopper is polled periodically during search to decide whether to
// abandon the current iteration early.
type Stopper interface {
	Stopped() bool
}

// neverStop never signals a stop; used when the caller wants a search
// bounded only by MaxDepth.
type neverStop struct{}

func (neverStop) Stopped() bool { return false }

// Searcher runs an iterative-deepening search from pos (see Search) and
// returns the score (from the side to move's perspective), the principal
// variation and the node count. Not safe for concurrent use -- one Searcher per
// worker goroutine, each with its own Position clone.
type Searcher struct {
	Pos  *board.Position
	TT   *tt.Table
	Eval eval.Evaluator
	Stop Stopper
	EGTB egtb.Tablebase

	killers [MaxPly][2]board.Move
	history map[historyKey]int32
	nodes   uint64
	age     uint8
}

type historyKey struct {
	from, to board.Square
}

// NewSearcher returns a ready-to-use Searcher sharing a transposition
// table with a worker pool's coordinator. Each Searcher tags its own TT
// writes with a generation counter derived from the current iterative
// deepening depth, not worker identity -- see Search.
func NewSearcher(pos *board.Position, table *tt.Table, evaluator eval.Evaluator, stop Stopper) *Searcher {
	if stop == nil {
		stop = neverStop{}
	}
	return &Searcher{
		Pos:     pos,
		TT:      table,
		Eval:    evaluator,
		Stop:    stop,
		EGTB:    egtb.None,
		history: make(map[historyKey]int32),
	}
}

// Search runs iterative deepening up to maxDepth (or MaxPly), calling
// reporter after every completed depth and once more at the end with the
// best move found. Returns the deepest completed PV.
func (s *Searcher) Search(maxDepth int, reporter Reporter) PV {
	if maxDepth <= 0 || maxDepth > MaxPly {
		maxDepth = MaxPly
	}
	if reporter == nil {
		reporter = NopReporter{}
	}

	var best PV
	for depth := 1; depth <= maxDepth; depth++ {
		if s.Stop.Stopped() && depth > 1 {
			break
		}

		// Sweep the always-replace array's age guard before every root
		// iteration so entries written at a shallower, already-surpassed
		// generation can be displaced again.
		s.TT.ClearAge()
		s.age = uint8(depth)

		start := time.Now()
		s.nodes = 0
		score, pv := s.searchRoot(depth)
		elapsed := time.Since(start)

		if s.Stop.Stopped() && depth > 1 {
			// Partial iteration: the returned score/pv may be unreliable,
			// keep the previous depth's result instead.
			break
		}

		best = PV{Depth: depth, Score: score, Nodes: s.nodes, Time: elapsed, Moves: pv}
		reporter.Report(depth, score, s.nodes, elapsed, pv)

		if _, isMate := score.IsMate(); isMate {
			break
		}
	}

	var ponder board.Move
	hasPonder := len(best.Moves) > 1
	if hasPonder {
		ponder = best.Moves[1]
	}
	var bestMove board.Move
	if len(best.Moves) > 0 {
		bestMove = best.Moves[0]
	}
	reporter.ReportBestMove(bestMove, ponder, hasPonder)
	return best
}

func (s *Searcher) recordKiller(ply int, m board.Move) {
	if ply >= MaxPly || m.IsCapture() {
		return
	}
	if s.killers[ply][0].Equals(m) {
		return
	}
	s.killers[ply][1] = s.killers[ply][0]
	s.killers[ply][0] = m
}

func (s *Searcher) bumpHistory(m board.Move, depth int) {
	if m.IsCapture() {
		return
	}
	s.history[historyKey{m.From, m.To}] += int32(depth * depth)
}

func (s *Searcher) historyScore(m board.Move) int32 {
	return s.history[historyKey{m.From, m.To}]
}
