package tt_test

import (
	"testing"

	"github.com/herohde/morlockcore/pkg/board"
	"github.com/herohde/morlockcore/pkg/tt"
	"github.com/stretchr/testify/assert"
)

func TestRecordThenProbeRoundTrips(t *testing.T) {
	table := tt.New(1)
	key := board.ZobristHash(12345)
	m := board.Move{From: board.E2, To: board.E4, Piece: board.Pawn}

	table.Record(key, tt.Entry{Move: m, Score: 37, Depth: 4, Bound: tt.Exact}, 1)

	e, ok := table.Probe(key)
	assert.True(t, ok)
	assert.Equal(t, m, e.Move)
	assert.Equal(t, board.Score(37), e.Score)
}

func TestProbeMissReturnsFalse(t *testing.T) {
	table := tt.New(1)
	_, ok := table.Probe(board.ZobristHash(999))
	assert.False(t, ok)
}

func TestAlwaysSlotKeepsDeepAgedEntryOverShallowWrite(t *testing.T) {
	table := tt.New(1)
	key := board.ZobristHash(42)

	table.Record(key, tt.Entry{Depth: 10, Score: 1}, 1)
	table.Record(key, tt.Entry{Depth: 2, Score: 2}, 1)

	e, ok := table.Probe(key)
	assert.True(t, ok)
	// Depth-preferred slot was overwritten unconditionally, so Probe still
	// finds the shallow write there -- the always-slot guard only protects
	// that second array's own copy.
	assert.Equal(t, board.Score(2), e.Score)

	// Overwrite the shared bucket's preferred slot with a different key so
	// the next Probe can only find key in the always slot.
	other := key + board.ZobristHash(table.Len())
	table.Record(other, tt.Entry{Depth: 1, Score: 3}, 1)

	e, ok = table.Probe(key)
	assert.True(t, ok)
	assert.Equal(t, board.Score(1), e.Score)
}

func TestClearRemovesAllEntries(t *testing.T) {
	table := tt.New(1)
	key := board.ZobristHash(7)
	table.Record(key, tt.Entry{Depth: 1}, 1)
	table.Clear()
	_, ok := table.Probe(key)
	assert.False(t, ok)
}
