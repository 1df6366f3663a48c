package board_test

import (
	"testing"

	"github.com/herohde/morlockcore/pkg/board"
	"github.com/herohde/morlockcore/pkg/board/fen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDecode(t *testing.T, s string) *board.Position {
	t.Helper()
	pos, err := fen.Decode(s)
	require.NoError(t, err)
	return pos
}

func TestNewPosition_RejectsInvalid(t *testing.T) {
	t.Run("duplicate square", func(t *testing.T) {
		_, err := board.NewPosition([]board.Placement{
			{Square: board.E1, Color: board.White, Piece: board.King},
			{Square: board.E1, Color: board.White, Piece: board.Queen},
		}, board.White, 0, board.NoSquare, 0, 1)
		assert.Error(t, err)
	})

	t.Run("missing king", func(t *testing.T) {
		_, err := board.NewPosition([]board.Placement{
			{Square: board.E1, Color: board.White, Piece: board.King},
		}, board.White, 0, board.NoSquare, 0, 1)
		assert.Error(t, err)
	})

	t.Run("adjacent kings", func(t *testing.T) {
		_, err := board.NewPosition([]board.Placement{
			{Square: board.E1, Color: board.White, Piece: board.King},
			{Square: board.E2, Color: board.Black, Piece: board.King},
		}, board.White, 0, board.NoSquare, 0, 1)
		assert.Error(t, err)
	})
}

func TestMakeUnmake_RestoresExactState(t *testing.T) {
	pos := mustDecode(t, fen.Initial)
	before := fen.Encode(pos)
	beforeHash := pos.Hash()

	m := board.Move{From: board.E2, To: board.E4, Piece: board.Pawn, Type: board.DoublePawnPush}
	undo, legal := pos.Make(m)
	assert.True(t, legal)
	assert.NotEqual(t, before, fen.Encode(pos))
	assert.Equal(t, board.E3, pos.EnPassant())

	pos.Unmake(m, undo)
	assert.Equal(t, before, fen.Encode(pos))
	assert.Equal(t, beforeHash, pos.Hash())
}

func TestMakeUnmake_EnPassantCapture(t *testing.T) {
	pos := mustDecode(t, "rnbqkbnr/ppp1pppp/8/3pP3/8/8/PPPP1PPP/RNBQKBNR w KQkq d6 0 3")
	before := fen.Encode(pos)

	m := board.Move{From: board.E5, To: board.D6, Piece: board.Pawn, Capture: board.Pawn, Type: board.EnPassant}
	undo, legal := pos.Make(m)
	assert.True(t, legal)

	_, _, hasPawn := pos.At(board.D5)
	assert.False(t, hasPawn, "captured pawn must be removed from its own square, not the destination")

	pos.Unmake(m, undo)
	assert.Equal(t, before, fen.Encode(pos))
}

func TestMakeUnmake_CastlingRightsClearOnKingAndRookMoves(t *testing.T) {
	pos := mustDecode(t, "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")

	m := board.Move{From: board.H1, To: board.H2, Piece: board.Rook}
	undo, legal := pos.Make(m)
	assert.True(t, legal)
	assert.False(t, pos.Castling().Has(board.WhiteKingSide))
	assert.True(t, pos.Castling().Has(board.WhiteQueenSide))

	pos.Unmake(m, undo)
	assert.True(t, pos.Castling().Has(board.WhiteKingSide))
}

func TestMakeUnmake_IllegalMoveLeavesKingInCheck(t *testing.T) {
	pos := mustDecode(t, "4k3/8/8/8/7b/8/5P2/4K3 w - - 0 1")

	m := board.Move{From: board.F2, To: board.F3, Piece: board.Pawn}
	undo, legal := pos.Make(m)
	assert.False(t, legal, "moving the pinned pawn must expose the king")
	pos.Unmake(m, undo)
	assert.True(t, pos.IsChecked(board.White) == false)
}

func TestHasInsufficientMaterial(t *testing.T) {
	assert.True(t, mustDecode(t, "4k3/8/8/8/8/8/8/4K3 w - - 0 1").HasInsufficientMaterial())
	assert.True(t, mustDecode(t, "4k3/8/8/8/8/8/8/4KN2 w - - 0 1").HasInsufficientMaterial())
	assert.False(t, mustDecode(t, "4k3/8/8/8/8/8/8/4KNN1 w - - 0 1").HasInsufficientMaterial())
}
