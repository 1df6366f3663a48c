package engine

import "errors"

// Sentinel errors the engine returns on invalid input. The engine never
// terminates the process on its own; every rejected input surfaces as
// one of these instead.
var (
	ErrInvalidFEN         = errors.New("invalid FEN")
	ErrInvalidMove        = errors.New("invalid move")
	ErrHashSizeOutOfRange = errors.New("hash size out of range")
	ErrOutOfMemory        = errors.New("out of memory")
	ErrInterrupted        = errors.New("search interrupted")
)
