package perft_test

import (
	"testing"

	"github.com/herohde/morlockcore/pkg/board/fen"
	"github.com/herohde/morlockcore/pkg/perft"
	"github.com/stretchr/testify/require"
)

func TestPerftStartingPositionShallow(t *testing.T) {
	pos, err := fen.Decode(fen.Initial)
	require.NoError(t, err)

	tests := []struct {
		depth    int
		expected uint64
	}{
		{1, 20},
		{2, 400},
		{3, 8902},
		{4, 197281},
	}
	for _, tc := range tests {
		require.Equal(t, tc.expected, perft.Perft(pos, tc.depth), "depth %d", tc.depth)
	}
}

func TestPerftStartingPositionDepth6(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping deep perft in short mode")
	}
	pos, err := fen.Decode(fen.Initial)
	require.NoError(t, err)
	require.Equal(t, uint64(119060324), perft.Perft(pos, 6))
}

func TestPerftKiwipeteDepth5(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping deep perft in short mode")
	}
	pos, err := fen.Decode("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	require.NoError(t, err)
	require.Equal(t, uint64(193690690), perft.Perft(pos, 5))
}

func TestPerftEnPassantPositionIsDeterministic(t *testing.T) {
	// A position where en passant is available and affects the count; the
	// two computations must agree regardless of caching.
	pos, err := fen.Decode("rnbqkbnr/ppp1pppp/8/3pP3/8/8/PPPP1PPP/RNBQKBNR w KQkq d6 0 3")
	require.NoError(t, err)
	require.Equal(t, perft.Perft(pos, 2), perft.PerftCached(pos, 2, perft.Cache{}))
}

func TestPerftPromotionPosition(t *testing.T) {
	// White pawn one step from promotion, with nothing to capture.
	pos, err := fen.Decode("8/P7/8/8/8/8/8/k6K w - - 0 1")
	require.NoError(t, err)
	// a7-a8 promoting to each of Q/R/B/N, plus king moves.
	require.Equal(t, uint64(7), perft.Perft(pos, 1))
}
