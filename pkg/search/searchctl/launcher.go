package searchctl

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/herohde/morlockcore/pkg/board"
	"github.com/herohde/morlockcore/pkg/egtb"
	"github.com/herohde/morlockcore/pkg/eval"
	"github.com/herohde/morlockcore/pkg/search"
	"github.com/herohde/morlockcore/pkg/tt"
	"github.com/seekerror/stdlib/pkg/lang"
)

// Options hold dynamic search options for a single Launch call.
type Options struct {
	// DepthLimit, if set, bounds the search to the given ply depth.
	DepthLimit lang.Optional[int]
	// TimeBudget, if set, stops the search once the duration elapses.
	TimeBudget lang.Optional[time.Duration]
	// Threads is the number of Lazy-SMP workers sharing the transposition
	// table. Below 1, it is treated as 1.
	Threads int
}

func (o Options) String() string {
	var parts []string
	if v, ok := o.DepthLimit.V(); ok {
		parts = append(parts, fmt.Sprintf("depth=%v", v))
	}
	if v, ok := o.TimeBudget.V(); ok {
		parts = append(parts, fmt.Sprintf("time=%v", v))
	}
	parts = append(parts, fmt.Sprintf("threads=%v", o.Threads))
	return fmt.Sprintf("[%v]", strings.Join(parts, ", "))
}

// Launcher manages concurrent searches sharing a transposition table.
type Launcher interface {
	// Launch starts a new search from pos. The caller must not touch pos
	// again until the returned Handle is halted: Launch clones it once
	// per worker. Returns a PV channel fed after every depth the primary
	// worker completes; the channel closes when the search ends.
	Launch(ctx context.Context, pos *board.Position, table *tt.Table, evaluator eval.Evaluator, tb egtb.Tablebase, opt Options) (Handle, <-chan search.PV)
}

// Handle lets the caller stop a launched search and retrieve its result.
type Handle interface {
	// Halt stops the search, if running, and returns the best PV found.
	// Idempotent.
	Halt() search.PV
}
