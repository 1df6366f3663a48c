package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestIncrementalHashMatchesFromScratch exercises a handful of moves and
// checks the incrementally maintained hash against a full recomputation
// after every Make and Unmake.
func TestIncrementalHashMatchesFromScratch(t *testing.T) {
	pos, err := NewPosition([]Placement{
		{Square: E1, Color: White, Piece: King},
		{Square: E8, Color: Black, Piece: King},
		{Square: A1, Color: White, Piece: Rook},
		{Square: H1, Color: White, Piece: Rook},
		{Square: E2, Color: White, Piece: Pawn},
		{Square: D7, Color: Black, Piece: Pawn},
	}, White, FullCastlingRights, NoSquare, 0, 1)
	assert.NoError(t, err)
	assert.Equal(t, hashFromScratch(pos), pos.hash)

	moves := []Move{
		{From: E2, To: E4, Piece: Pawn, Type: DoublePawnPush},
		{From: D7, To: D5, Piece: Pawn, Type: DoublePawnPush},
		{From: E1, To: E2, Piece: King},
	}

	var undos []Undo
	for _, m := range moves {
		u, _ := pos.Make(m)
		assert.Equal(t, hashFromScratch(pos), pos.hash, "hash mismatch after Make(%v)", m)
		undos = append(undos, u)
	}
	for i := len(moves) - 1; i >= 0; i-- {
		pos.Unmake(moves[i], undos[i])
		assert.Equal(t, hashFromScratch(pos), pos.hash, "hash mismatch after Unmake(%v)", moves[i])
	}
}

func TestZobristCastlingRightsAffectHash(t *testing.T) {
	withRights := zobrist.castlingRight(FullCastlingRights)
	withoutRights := zobrist.castlingRight(0)
	assert.NotEqual(t, withRights, withoutRights)
}
