// Package tt implements the shared transposition table: two parallel
// arrays indexed by the same bucket, one replaced unconditionally ("depth
// preferred" slot) and one replaced conditionally ("always" slot), both
// guarded by one shared stripe of 64 read/write locks rather than one lock
// per bucket: a stripe lock covers a bucket in both arrays at once.
package tt

import (
	"sync"

	"github.com/herohde/morlockcore/pkg/board"
)

// Bound records whether a stored score is exact or a cutoff bound.
type Bound uint8

const (
	Exact Bound = iota
	Lower
	Upper
)

// Entry is one transposition table record.
type Entry struct {
	Key   board.ZobristHash
	Move  board.Move
	Score board.Score
	Depth int
	Bound Bound
	Age   uint8
}

const numStripes = 64

// Table is a fixed-size, two-array, lock-striped transposition table.
//
// The "depth-preferred" array is written to unconditionally on every
// Record call regardless of the incoming entry's depth -- despite the
// name, it does not actually compare depths before replacing. The
// "always-replace" array does the opposite: it refuses to overwrite an
// aged, sufficiently-deep existing entry. This asymmetry mirrors the
// original engine's hash table exactly and is preserved rather than
// "fixed", since the original's search strength was tuned against it.
type Table struct {
	preferred []Entry
	always    []Entry
	mask      uint64
	mu        [numStripes]sync.RWMutex
}

// New allocates a table sized to approximately sizeMiB megabytes, split
// evenly between the two arrays. Rounds down to the nearest power of two
// number of buckets per array.
func New(sizeMiB int) *Table {
	if sizeMiB < 1 {
		sizeMiB = 1
	}
	entrySize := uint64(32) // approximate, not exact struct size
	totalEntries := uint64(sizeMiB) * 1024 * 1024 / (entrySize * 2)
	n := nextPowerOfTwoFloor(totalEntries)
	if n == 0 {
		n = 1
	}
	return &Table{
		preferred: make([]Entry, n),
		always:    make([]Entry, n),
		mask:      n - 1,
	}
}

func nextPowerOfTwoFloor(n uint64) uint64 {
	if n == 0 {
		return 0
	}
	p := uint64(1)
	for p<<1 <= n {
		p <<= 1
	}
	return p
}

func (t *Table) bucket(key board.ZobristHash) uint64 {
	return uint64(key) & t.mask
}

func (t *Table) stripe(key board.ZobristHash) *sync.RWMutex {
	return &t.mu[uint64(key)%numStripes]
}

// Probe looks up key, preferring the depth-preferred slot over the
// always-replace slot when both match.
func (t *Table) Probe(key board.ZobristHash) (Entry, bool) {
	m := t.stripe(key)
	idx := t.bucket(key)

	m.RLock()
	defer m.RUnlock()

	if e := t.preferred[idx]; e.Key == key {
		return e, true
	}
	if e := t.always[idx]; e.Key == key {
		return e, true
	}
	return Entry{}, false
}

// Record stores an entry for key, subject to the two arrays' distinct
// replacement rules described on Table.
func (t *Table) Record(key board.ZobristHash, e Entry, age uint8) {
	e.Key = key
	e.Age = age

	m := t.stripe(key)
	idx := t.bucket(key)

	m.Lock()
	defer m.Unlock()

	t.preferred[idx] = e

	cur := t.always[idx]
	if cur.Key != 0 && cur.Depth >= e.Depth && cur.Age != 0 {
		return
	}
	t.always[idx] = e
}

// ClearAge resets the age marker on every always-replace entry, called
// at the start of each root iteration so entries guarded by Record's
// cur.Age != 0 check can be displaced again by the new generation.
func (t *Table) ClearAge() {
	for i := range t.always {
		t.always[i].Age = 0
	}
}

// Clear empties both arrays entirely.
func (t *Table) Clear() {
	for i := range t.preferred {
		t.preferred[i] = Entry{}
		t.always[i] = Entry{}
	}
}

// Len returns the number of buckets per array.
func (t *Table) Len() int {
	return len(t.preferred)
}
