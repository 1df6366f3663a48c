// Command morlockcore is a minimal UCI chess engine front-end.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/herohde/morlockcore/pkg/engine"
	"github.com/herohde/morlockcore/pkg/engine/uci"
	"github.com/seekerror/logw"
)

var (
	hash    = flag.Int("hash", 16, "Transposition table size in MiB")
	threads = flag.Int("threads", 1, "Number of Lazy-SMP search threads")
)

func init() {
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, `usage: morlockcore [options]

morlockcore is a UCI chess engine.
Options:
`)
		flag.PrintDefaults()
	}
}

func main() {
	flag.Parse()
	ctx := context.Background()

	e := engine.New("morlockcore", "herohde")
	if err := e.SetHashMiB(*hash); err != nil {
		logw.Exitf(ctx, "Invalid hash size: %v", err)
	}
	e.SetThreads(*threads)

	in := engine.ReadStdinLines(ctx)
	switch <-in {
	case uci.ProtocolName:
		driver, out := uci.NewDriver(ctx, e, in)
		go engine.WriteStdoutLines(ctx, out)

		<-driver.Closed()

	default:
		flag.Usage()
		logw.Exitf(ctx, "Protocol not supported")
	}
}
