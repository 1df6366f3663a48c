package movegen_test

import (
	"testing"

	"github.com/herohde/morlockcore/pkg/board"
	"github.com/herohde/morlockcore/pkg/board/fen"
	"github.com/herohde/morlockcore/pkg/movegen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func legalMoves(t *testing.T, fenStr string) []board.Move {
	t.Helper()
	pos, err := fen.Decode(fenStr)
	require.NoError(t, err)
	pseudo := movegen.GeneratePseudoLegal(pos, nil)
	return movegen.Legal(pos, pseudo)
}

func TestStartingPositionHas20Moves(t *testing.T) {
	moves := legalMoves(t, fen.Initial)
	assert.Len(t, moves, 20)
}

func TestKiwipeteMoveCount(t *testing.T) {
	moves := legalMoves(t, "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	assert.Len(t, moves, 48)
}

func TestPinnedPieceCannotExposeKing(t *testing.T) {
	moves := legalMoves(t, "4k3/8/8/8/7b/8/5P2/4K3 w - - 0 1")
	for _, m := range moves {
		assert.False(t, m.From == board.F2 && m.To == board.F3, "pinned pawn push must be filtered out")
	}
}

func TestCastlingBlockedWhenPathAttacked(t *testing.T) {
	moves := legalMoves(t, "4k3/8/8/8/8/5r2/8/4K2R w K - 0 1")
	for _, m := range moves {
		assert.False(t, m.Type == board.KingSideCastle, "castling through an attacked square must be illegal")
	}
}

func TestEnPassantCaptureGenerated(t *testing.T) {
	moves := legalMoves(t, "rnbqkbnr/ppp1pppp/8/3pP3/8/8/PPPP1PPP/RNBQKBNR w KQkq d6 0 3")
	found := false
	for _, m := range moves {
		if m.Type == board.EnPassant && m.From == board.E5 && m.To == board.D6 {
			found = true
		}
	}
	assert.True(t, found, "en passant capture must be generated")
}

func TestCheckmateHasNoLegalMoves(t *testing.T) {
	// Fool's mate final position, black to move... invert: use a simple
	// back-rank mate with white to move and mated.
	moves := legalMoves(t, "6k1/5ppp/8/8/8/8/r7/3K3r w - - 0 1")
	assert.Empty(t, moves)
}
