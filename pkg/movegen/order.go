package movegen

import (
	"container/heap"

	"github.com/herohde/morlockcore/pkg/board"
)

// pieceValue is used only for MVV-LVA ordering, not evaluation.
var pieceValue = [board.NumPieces]int32{
	board.NoPiece: 0,
	board.Pawn:    100,
	board.Knight:  320,
	board.Bishop:  330,
	board.Rook:    500,
	board.Queen:   900,
	board.King:    20000,
}

const (
	hashMoveScore    int32 = 1_000_000
	killerMoveScore  int32 = 900_000
	captureBaseScore int32 = 500_000
)

// Scorer assigns every candidate move an ordering priority, highest first.
type Scorer struct {
	HashMove board.Move
	Killers  [2]board.Move
	History  func(m board.Move) int32
}

// Score returns the ordering priority of m: hash move, then MVV-LVA
// captures/promotions, then killer moves, then history heuristic.
func (s *Scorer) Score(m board.Move) int32 {
	if s.HashMove != (board.Move{}) && s.HashMove.Equals(m) {
		return hashMoveScore
	}
	if m.IsCapture() {
		return captureBaseScore + pieceValue[m.Capture]*10 - pieceValue[m.Piece]
	}
	if m.IsPromotion() {
		return captureBaseScore + pieceValue[m.Promotion]
	}
	if s.Killers[0].Equals(m) || s.Killers[1].Equals(m) {
		return killerMoveScore
	}
	if s.History != nil {
		return s.History(m)
	}
	return 0
}

// OrderedMoves is a priority queue over a move list, draining highest
// priority first while keeping generator order stable among ties.
type OrderedMoves struct {
	h moveHeap
}

// NewOrderedMoves builds a priority queue scoring every move in moves with s.
func NewOrderedMoves(moves []board.Move, s *Scorer) *OrderedMoves {
	h := make(moveHeap, len(moves))
	for i, m := range moves {
		h[i] = scoredMove{move: m, score: s.Score(m), order: i}
	}
	heap.Init(&h)
	return &OrderedMoves{h: h}
}

// Next pops the highest-priority remaining move.
func (o *OrderedMoves) Next() (board.Move, bool) {
	if len(o.h) == 0 {
		return board.Move{}, false
	}
	top := heap.Pop(&o.h).(scoredMove)
	return top.move, true
}

func (o *OrderedMoves) Len() int { return len(o.h) }

type scoredMove struct {
	move  board.Move
	score int32
	order int // generator order, for a stable tie-break
}

type moveHeap []scoredMove

func (h moveHeap) Len() int { return len(h) }

func (h moveHeap) Less(i, j int) bool {
	if h[i].score != h[j].score {
		return h[i].score > h[j].score
	}
	return h[i].order < h[j].order
}

func (h moveHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *moveHeap) Push(x interface{}) {
	*h = append(*h, x.(scoredMove))
}

func (h *moveHeap) Pop() interface{} {
	n := len(*h)
	top := (*h)[n-1]
	*h = (*h)[:n-1]
	return top
}
