package searchctl

import (
	"context"
	"sync"
	"time"

	"github.com/herohde/morlockcore/pkg/board"
	"github.com/herohde/morlockcore/pkg/egtb"
	"github.com/herohde/morlockcore/pkg/eval"
	"github.com/herohde/morlockcore/pkg/search"
	"github.com/herohde/morlockcore/pkg/tt"
)

// Iterative is a Lazy-SMP search harness: every worker runs the same
// iterative-deepening driver against its own Position clone, sharing
// only the transposition table. Workers beyond the first exist only to
// fill the table faster; only the first worker's depth completions are
// forwarded to the caller.
type Iterative struct{}

func (Iterative) Launch(ctx context.Context, pos *board.Position, table *tt.Table, evaluator eval.Evaluator, tb egtb.Tablebase, opt Options) (Handle, <-chan search.PV) {
	threads := opt.Threads
	if threads < 1 {
		threads = 1
	}

	stop := NewTimeControl()
	if budget, ok := opt.TimeBudget.V(); ok {
		stop = NewDeadlineTimeControl(budget)
	}
	maxDepth := 0
	if d, ok := opt.DepthLimit.V(); ok {
		maxDepth = d
	}

	out := make(chan search.PV, 1)
	h := &handle{stop: stop, done: make(chan struct{})}

	var wg sync.WaitGroup
	for i := 0; i < threads; i++ {
		wg.Add(1)
		primary := i == 0

		go func() {
			defer wg.Done()

			var reporter search.Reporter = search.NopReporter{}
			if primary {
				reporter = &forwardingReporter{out: out, h: h}
			}
			searcher := search.NewSearcher(pos.Clone(), table, evaluator, stop)
			if tb != nil {
				searcher.EGTB = tb
			}
			pv := searcher.Search(maxDepth, reporter)

			if primary {
				h.mu.Lock()
				h.pv = pv
				h.mu.Unlock()
			}
		}()
	}

	go func() {
		wg.Wait()
		close(out)
		close(h.done)
	}()
	go func() {
		select {
		case <-ctx.Done():
			stop.Stop()
		case <-h.done:
		}
	}()

	return h, out
}

type handle struct {
	stop *TimeControl
	done chan struct{}

	pv search.PV
	mu sync.Mutex
}

func (h *handle) Halt() search.PV {
	h.stop.Stop()
	<-h.done

	h.mu.Lock()
	defer h.mu.Unlock()
	return h.pv
}

// forwardingReporter relays the primary worker's depth completions onto
// the Launch caller's PV channel, keeping only the latest unread value
// buffered so a slow consumer never blocks the search.
type forwardingReporter struct {
	out chan search.PV
	h   *handle
}

func (r *forwardingReporter) Report(depth int, score board.Score, nodes uint64, elapsed time.Duration, pv []board.Move) {
	p := search.PV{Depth: depth, Score: score, Nodes: nodes, Time: elapsed, Moves: pv}

	r.h.mu.Lock()
	r.h.pv = p
	r.h.mu.Unlock()

	select {
	case <-r.out:
	default:
	}
	r.out <- p
}

func (r *forwardingReporter) ReportBestMove(board.Move, board.Move, bool) {}
