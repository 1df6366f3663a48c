// Package engine provides a façade over search, evaluation, opening book
// and tablebase lookup for front-ends (UCI, CLI) to drive.
package engine

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/herohde/morlockcore/pkg/board"
	"github.com/herohde/morlockcore/pkg/board/fen"
	"github.com/herohde/morlockcore/pkg/book"
	"github.com/herohde/morlockcore/pkg/egtb"
	"github.com/herohde/morlockcore/pkg/eval"
	"github.com/herohde/morlockcore/pkg/movegen"
	"github.com/herohde/morlockcore/pkg/search"
	"github.com/herohde/morlockcore/pkg/search/searchctl"
	"github.com/herohde/morlockcore/pkg/tt"
	"github.com/seekerror/build"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/lang"
)

var version = build.NewVersion(0, 1, 0)

const (
	MinHashMiB = 1
	MaxHashMiB = 1 << 16 // 64 GiB
)

// Options are the engine's default runtime options, overridable per search.
type Options struct {
	MaxDepth int
	HashMiB  int
	Threads  int
	Time     time.Duration
}

func (o Options) String() string {
	return fmt.Sprintf("{depth=%v, hash=%vMiB, threads=%v, time=%v}", o.MaxDepth, o.HashMiB, o.Threads, o.Time)
}

// Engine owns the current position, transposition table and any active
// search. It never panics or exits the process in response to invalid
// external input: every rejection surfaces as an error from pkg/engine.
type Engine struct {
	name, author string

	launcher  searchctl.Launcher
	evaluator eval.Evaluator
	book      book.Book
	egtb      egtb.Tablebase

	mu     sync.Mutex
	pos    *board.Position
	table  *tt.Table
	opts   Options
	active searchctl.Handle
	lastPV search.PV
}

// Option configures an Engine at construction time.
type Option func(*Engine)

// WithBook configures the engine's opening book. Defaults to book.NoBook.
func WithBook(b book.Book) Option {
	return func(e *Engine) { e.book = b }
}

// WithTablebase configures the engine's endgame tablebase. Defaults to egtb.None.
func WithTablebase(tb egtb.Tablebase) Option {
	return func(e *Engine) { e.egtb = tb }
}

// WithEvaluator overrides the default material evaluator.
func WithEvaluator(ev eval.Evaluator) Option {
	return func(e *Engine) { e.evaluator = ev }
}

// New creates an engine at the starting position.
func New(name, author string, opts ...Option) *Engine {
	e := &Engine{
		name:      name,
		author:    author,
		launcher:  searchctl.Iterative{},
		evaluator: eval.Material{},
		book:      book.NoBook,
		egtb:      egtb.None,
		opts:      Options{HashMiB: 16, Threads: 1},
	}
	for _, fn := range opts {
		fn(e)
	}
	e.table = tt.New(e.opts.HashMiB)

	_ = e.LoadFEN(fen.Initial)
	return e
}

// Name returns the engine name and version.
func (e *Engine) Name() string { return fmt.Sprintf("%v %v", e.name, version) }

// Author returns the engine author.
func (e *Engine) Author() string { return e.author }

// Options returns a copy of the engine's current default options.
func (e *Engine) Options() Options {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.opts
}

// LoadFEN resets the engine to the position described by s, halting any
// active search first.
func (e *Engine) LoadFEN(s string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	pos, err := fen.Decode(s)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidFEN, err)
	}

	e.haltLocked()
	e.pos = pos
	return nil
}

// Position returns the current position in FEN.
func (e *Engine) Position() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return fen.Encode(e.pos)
}

// Move plays m -- usually an opponent's move -- against the current
// position, halting any active search first.
func (e *Engine) Move(m string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	candidate, err := board.ParseMove(m)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidMove, err)
	}

	e.haltLocked()

	pseudo := movegen.GeneratePseudoLegal(e.pos, make([]board.Move, 0, movegen.MaxMoves))
	for _, legal := range movegen.Legal(e.pos, pseudo) {
		if !legal.Equals(candidate) {
			continue
		}
		undo, ok := e.pos.Make(legal)
		if !ok {
			e.pos.Unmake(legal, undo)
			return fmt.Errorf("%w: %v leaves king in check", ErrInvalidMove, m)
		}
		return nil
	}
	return fmt.Errorf("%w: %v", ErrInvalidMove, m)
}

// SetHashMiB resizes the transposition table, discarding its contents.
func (e *Engine) SetHashMiB(size int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if size < MinHashMiB || size > MaxHashMiB {
		return ErrHashSizeOutOfRange
	}
	e.opts.HashMiB = size
	e.table = tt.New(size)
	return nil
}

// SetThreads sets the Lazy-SMP worker count for future searches.
func (e *Engine) SetThreads(n int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if n < 1 {
		n = 1
	}
	e.opts.Threads = n
}

// SetMaxDepth sets the ply depth limit for future searches. Zero means
// no limit (bounded only by search.MaxPly).
func (e *Engine) SetMaxDepth(depth int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.opts.MaxDepth = depth
}

// SetTime sets the wall-clock budget for future searches. Zero means no
// budget (bounded only by depth or an explicit Stop).
func (e *Engine) SetTime(d time.Duration) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.opts.Time = d
}

// ClearHash wipes the transposition table in place.
func (e *Engine) ClearHash() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.table.Clear()
}

// Go starts a search from the current position, consulting the opening
// book first. Returns a channel of PVs, one per completed depth, closed
// when the search ends. Fails if a search is already active.
func (e *Engine) Go(ctx context.Context) (<-chan search.PV, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.active != nil {
		return nil, fmt.Errorf("search already active")
	}

	if m, ok := e.book.Probe(e.pos); ok {
		logw.Infof(ctx, "Book move for %v: %v", e.pos, m)
		pv := search.PV{Moves: []board.Move{m}}
		e.lastPV = pv
		out := make(chan search.PV, 1)
		out <- pv
		close(out)
		return out, nil
	}

	var opt searchctl.Options
	opt.Threads = e.opts.Threads
	if e.opts.MaxDepth > 0 {
		opt.DepthLimit = lang.Some(e.opts.MaxDepth)
	}
	if e.opts.Time > 0 {
		opt.TimeBudget = lang.Some(e.opts.Time)
	}

	logw.Infof(ctx, "Searching %v, opt=%v", fen.Encode(e.pos), opt)

	handle, raw := e.launcher.Launch(ctx, e.pos.Clone(), e.table, e.evaluator, e.egtb, opt)
	e.active = handle

	out := make(chan search.PV, 1)
	go func() {
		defer close(out)
		for pv := range raw {
			e.mu.Lock()
			e.lastPV = pv
			e.mu.Unlock()

			select {
			case <-out:
			default:
			}
			out <- pv
		}
	}()
	return out, nil
}

// Stop halts the active search, if any, and returns its best PV so far.
func (e *Engine) Stop() (search.PV, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.active == nil {
		return search.PV{}, ErrInterrupted
	}
	pv := e.active.Halt()
	e.active = nil
	e.lastPV = pv
	return pv, nil
}

// PV returns the latest known principal variation, whether from a
// completed depth of an active search or the last search to finish.
func (e *Engine) PV() search.PV {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lastPV
}

func (e *Engine) haltLocked() {
	if e.active != nil {
		e.lastPV = e.active.Halt()
		e.active = nil
	}
}
