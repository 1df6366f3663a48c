// Package uci contains a minimal driver for the engine under the UCI
// protocol, covering the subset of commands needed to play a game and
// report search progress.
//
// See: http://wbec-ridderkerk.nl/html/UCIProtocol.html
package uci

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/herohde/morlockcore/pkg/board"
	"github.com/herohde/morlockcore/pkg/board/fen"
	"github.com/herohde/morlockcore/pkg/engine"
	"github.com/herohde/morlockcore/pkg/search"
	"github.com/seekerror/logw"
	"go.uber.org/atomic"
)

const ProtocolName = "uci"

// Driver implements a UCI driver for an engine. It is activated when
// sent "uci" on its input stream.
type Driver struct {
	e *engine.Engine

	out chan<- string

	active atomic.Bool
	ponder chan search.PV

	quit   chan struct{}
	closed atomic.Bool
}

// NewDriver starts a driver reading commands from in and writing
// protocol lines to the returned channel, which closes when in closes
// or "quit" is received.
func NewDriver(ctx context.Context, e *engine.Engine, in <-chan string) (*Driver, <-chan string) {
	out := make(chan string, 100)
	d := &Driver{
		e:      e,
		out:    out,
		ponder: make(chan search.PV, 400),
		quit:   make(chan struct{}),
	}
	go d.process(ctx, in)
	return d, out
}

// Close stops the driver. Idempotent.
func (d *Driver) Close() {
	if d.closed.CAS(false, true) {
		close(d.quit)
	}
}

// Closed reports when the driver has stopped processing input.
func (d *Driver) Closed() <-chan struct{} {
	return d.quit
}

func (d *Driver) process(ctx context.Context, in <-chan string) {
	defer d.Close()
	defer close(d.out)

	logw.Infof(ctx, "UCI protocol initialized")

	d.out <- fmt.Sprintf("id name %v", d.e.Name())
	d.out <- fmt.Sprintf("id author %v", d.e.Author())
	d.out <- "option name Hash type spin default 16 min 1 max 65536"
	d.out <- "option name Threads type spin default 1 min 1 max 256"
	d.out <- "uciok"

	for {
		select {
		case line, ok := <-in:
			if !ok {
				logw.Infof(ctx, "Input stream closed")
				return
			}
			if !d.handle(ctx, line) {
				return
			}

		case pv := <-d.ponder:
			if d.active.Load() {
				d.out <- printPV(pv)
			}

		case <-d.quit:
			d.ensureInactive(ctx)
			logw.Infof(ctx, "Driver closed")
			return
		}
	}
}

// handle processes one input line. Returns false if the driver should
// stop reading, which happens only on "quit".
func (d *Driver) handle(ctx context.Context, line string) bool {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return true
	}
	cmd, args := strings.ToLower(parts[0]), parts[1:]

	switch cmd {
	case "isready":
		d.out <- "readyok"

	case "setoption":
		d.handleSetOption(ctx, args)

	case "ucinewgame":
		d.ensureInactive(ctx)
		_ = d.e.LoadFEN(fen.Initial)

	case "position":
		d.handlePosition(ctx, line, args)

	case "go":
		d.handleGo(ctx, args)

	case "stop":
		pv, err := d.e.Stop()
		if err == nil {
			d.searchCompleted(ctx, pv)
		}

	case "ponderhit":
		// No pondering support: nothing to switch.

	case "quit":
		return false

	default:
		logw.Warningf(ctx, "Unknown command %q", cmd)
	}
	return true
}

func (d *Driver) handleSetOption(ctx context.Context, args []string) {
	var name, value string
	for i := 0; i < len(args); i++ {
		switch strings.ToLower(args[i]) {
		case "name":
			if i+1 < len(args) {
				name = args[i+1]
			}
		case "value":
			if i+1 < len(args) {
				value = args[i+1]
			}
		}
	}

	switch name {
	case "Hash":
		if n, err := strconv.Atoi(value); err == nil {
			if err := d.e.SetHashMiB(n); err != nil {
				logw.Errorf(ctx, "setoption Hash %v: %v", value, err)
			}
		}
	case "Threads":
		if n, err := strconv.Atoi(value); err == nil {
			d.e.SetThreads(n)
		}
	}
}

func (d *Driver) handlePosition(ctx context.Context, line string, args []string) {
	d.ensureInactive(ctx)

	position := fen.Initial
	rest := args
	if len(args) >= 7 && args[0] == "fen" {
		position = strings.Join(args[1:7], " ")
		rest = args[7:]
	} else if len(args) > 0 && args[0] == "startpos" {
		rest = args[1:]
	}

	if err := d.e.LoadFEN(position); err != nil {
		logw.Errorf(ctx, "Invalid position %q: %v", line, err)
		return
	}

	playingMoves := false
	for _, arg := range rest {
		if arg == "moves" {
			playingMoves = true
			continue
		}
		if !playingMoves {
			continue
		}
		if err := d.e.Move(arg); err != nil {
			logw.Errorf(ctx, "Invalid move %q in %q: %v", arg, line, err)
			return
		}
	}
}

func (d *Driver) handleGo(ctx context.Context, args []string) {
	d.ensureInactive(ctx)

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "depth":
			i++
			if i < len(args) {
				if n, err := strconv.Atoi(args[i]); err == nil {
					d.e.SetMaxDepth(n)
				}
			}
		case "movetime":
			i++
			if i < len(args) {
				if n, err := strconv.Atoi(args[i]); err == nil {
					d.e.SetTime(time.Millisecond * time.Duration(n))
				}
			}
		case "wtime", "btime", "winc", "binc", "movestogo":
			i++ // time-control fields beyond a flat movetime are not modeled
		case "infinite":
			// No depth/time budget: run until an explicit stop.
		}
	}

	out, err := d.e.Go(ctx)
	if err != nil {
		logw.Errorf(ctx, "go failed: %v", err)
		return
	}
	d.active.Store(true)

	go func() {
		var last search.PV
		for pv := range out {
			last = pv
			d.ponder <- pv
		}
		d.searchCompleted(ctx, last)
	}()
}

func (d *Driver) ensureInactive(ctx context.Context) {
	d.active.Store(false)
	_, _ = d.e.Stop()
}

func (d *Driver) searchCompleted(ctx context.Context, pv search.PV) {
	if !d.active.CAS(true, false) {
		return // stale or duplicate result
	}
	if len(pv.Moves) == 0 {
		d.out <- "bestmove 0000"
		return
	}
	d.out <- printPV(pv)
	d.out <- fmt.Sprintf("bestmove %v", pv.Moves[0])
}

func printPV(pv search.PV) string {
	parts := []string{"info", fmt.Sprintf("depth %v", pv.Depth)}

	if d, ok := pv.Score.IsMate(); ok {
		moves := (d + 1) / 2
		if pv.Score < 0 {
			moves = -moves
		}
		parts = append(parts, fmt.Sprintf("score mate %v", moves))
	} else {
		parts = append(parts, fmt.Sprintf("score cp %v", int(pv.Score)))
	}

	if pv.Nodes > 0 {
		parts = append(parts, fmt.Sprintf("nodes %v", pv.Nodes))
	}
	if pv.Time > 0 {
		parts = append(parts, fmt.Sprintf("time %v", pv.Time.Milliseconds()))
		if pv.Nodes > 0 {
			parts = append(parts, fmt.Sprintf("nps %v", uint64(float64(pv.Nodes)/pv.Time.Seconds())))
		}
	}
	if len(pv.Moves) > 0 {
		parts = append(parts, "pv", board.PrintMoves(pv.Moves))
	}
	return strings.Join(parts, " ")
}
