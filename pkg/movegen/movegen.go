// Package movegen generates pseudo-legal and legal moves for a board
// position. Generation is split by piece kind, mirroring the per-piece
// helper shape of bitboard-based generators; legality is decided by
// applying the move and checking whether it leaves the mover's own king
// attacked, rather than by tracking pins ahead of time.
package movegen

import (
	"github.com/herohde/morlockcore/pkg/bitboard"
	"github.com/herohde/morlockcore/pkg/board"
)

// MaxPly bounds recursion depth and sizes per-ply move buffers.
const MaxPly = 64

// MaxMoves is a safe upper bound on the number of pseudo-legal moves in
// any reachable chess position (the true maximum is 218).
const MaxMoves = 256

// IsSquareAttacked reports whether sq is attacked by a piece of color
// attacker in pos. Thin wrapper so callers outside board don't need to
// know the check-detection logic lives there.
func IsSquareAttacked(pos *board.Position, attacker board.Color, sq board.Square) bool {
	return pos.IsAttacked(attacker, sq)
}

// GeneratePseudoLegal appends every pseudo-legal move for the side to
// move to dst and returns the extended slice. Moves are not yet checked
// for leaving the mover's own king in check -- call Legal or filter with
// Position.Make to do that.
func GeneratePseudoLegal(pos *board.Position, dst []board.Move) []board.Move {
	dst = genPawnMoves(pos, dst)
	dst = genKnightMoves(pos, dst)
	dst = genSliderMoves(pos, dst, board.Bishop)
	dst = genSliderMoves(pos, dst, board.Rook)
	dst = genSliderMoves(pos, dst, board.Queen)
	dst = genKingMoves(pos, dst)
	return dst
}

// GenerateCaptures appends only pseudo-legal captures and promotions, for
// quiescence search. En-passant counts as a capture.
func GenerateCaptures(pos *board.Position, dst []board.Move) []board.Move {
	all := GeneratePseudoLegal(pos, make([]board.Move, 0, MaxMoves))
	for _, m := range all {
		if m.IsCapture() || m.IsPromotion() {
			dst = append(dst, m)
		}
	}
	return dst
}

// Legal filters a pseudo-legal move list down to legal moves by applying
// and immediately unmaking each one.
func Legal(pos *board.Position, moves []board.Move) []board.Move {
	legal := moves[:0]
	for _, m := range moves {
		undo, ok := pos.Make(m)
		pos.Unmake(m, undo)
		if ok {
			legal = append(legal, m)
		}
	}
	return legal
}

func targetsToMoves(dst []board.Move, from board.Square, targets bitboard.Bitboard, piece board.Piece, pos *board.Position) []board.Move {
	for targets != 0 {
		to := targets.PopLSB()
		var capture board.Piece
		if _, p, ok := pos.At(to); ok {
			capture = p
		}
		dst = append(dst, board.Move{From: from, To: to, Piece: piece, Capture: capture})
	}
	return dst
}

func genKnightMoves(pos *board.Position, dst []board.Move) []board.Move {
	us := pos.Turn()
	knights := pos.Piece(us, board.Knight)
	friendly := pos.Occupied(us)
	for knights != 0 {
		from := knights.PopLSB()
		targets := bitboard.KnightAttacks(from) &^ friendly
		dst = targetsToMoves(dst, from, targets, board.Knight, pos)
	}
	return dst
}

func genKingMoves(pos *board.Position, dst []board.Move) []board.Move {
	us := pos.Turn()
	from := pos.King(us)
	friendly := pos.Occupied(us)
	targets := bitboard.KingAttacks(from) &^ friendly
	dst = targetsToMoves(dst, from, targets, board.King, pos)
	dst = genCastles(pos, dst)
	return dst
}

func genSliderMoves(pos *board.Position, dst []board.Move, piece board.Piece) []board.Move {
	us := pos.Turn()
	pieces := pos.Piece(us, piece)
	friendly := pos.Occupied(us)
	occ := pos.All()
	for pieces != 0 {
		from := pieces.PopLSB()
		var targets bitboard.Bitboard
		switch piece {
		case board.Bishop:
			targets = bitboard.BishopAttacks(from, occ)
		case board.Rook:
			targets = bitboard.RookAttacks(from, occ)
		case board.Queen:
			targets = bitboard.QueenAttacks(from, occ)
		}
		targets &^= friendly
		dst = targetsToMoves(dst, from, targets, piece, pos)
	}
	return dst
}

var promotionPieces = [4]board.Piece{board.Queen, board.Rook, board.Bishop, board.Knight}

func genPawnMoves(pos *board.Position, dst []board.Move) []board.Move {
	us := pos.Turn()
	white := us.IsWhite()
	pawns := pos.Piece(us, board.Pawn)
	empty := ^pos.All()

	single := bitboard.PawnPushes(white, pawns, empty)
	double := bitboard.PawnDoublePushes(white, single, empty)
	promoRank := bitboard.PromotionRank(white)

	dst = emitPawnPushes(dst, single&^promoRank, white, false)
	dst = emitPromotions(dst, single&promoRank, white, false)
	dst = emitPawnPushes(dst, double, white, true)

	theirs := pos.Occupied(us.Opponent())
	captureTargets := theirs
	if pos.EnPassant() != board.NoSquare {
		captureTargets |= bitboard.Mask(pos.EnPassant())
	}
	// Per-pawn capture generation: attack rays are computed per source
	// square so the origin is recoverable without a reverse table.
	for p := pawns; p != 0; {
		from := p.PopLSB()
		one := bitboard.Bitboard(0).Set(from)
		caps := bitboard.PawnAttacks(white, one) & captureTargets
		for caps != 0 {
			to := caps.PopLSB()
			if to == pos.EnPassant() {
				dst = append(dst, board.Move{From: from, To: to, Piece: board.Pawn, Capture: board.Pawn, Type: board.EnPassant})
				continue
			}
			_, capturedPiece, _ := pos.At(to)
			if bitboard.Mask(to)&promoRank != 0 {
				for _, promo := range promotionPieces {
					dst = append(dst, board.Move{From: from, To: to, Piece: board.Pawn, Capture: capturedPiece, Promotion: promo, Type: board.Promotion})
				}
			} else {
				dst = append(dst, board.Move{From: from, To: to, Piece: board.Pawn, Capture: capturedPiece})
			}
		}
	}
	return dst
}

func emitPawnPushes(dst []board.Move, targets bitboard.Bitboard, white, double bool) []board.Move {
	step := 8
	if !white {
		step = -8
	}
	back := step
	if double {
		back = step * 2
	}
	for targets != 0 {
		to := targets.PopLSB()
		from := board.Square(int(to) - back)
		t := board.Normal
		if double {
			t = board.DoublePawnPush
		}
		dst = append(dst, board.Move{From: from, To: to, Piece: board.Pawn, Type: t})
	}
	return dst
}

func emitPromotions(dst []board.Move, targets bitboard.Bitboard, white, double bool) []board.Move {
	step := 8
	if !white {
		step = -8
	}
	for targets != 0 {
		to := targets.PopLSB()
		from := board.Square(int(to) - step)
		for _, promo := range promotionPieces {
			dst = append(dst, board.Move{From: from, To: to, Piece: board.Pawn, Promotion: promo, Type: board.Promotion})
		}
	}
	return dst
}

func genCastles(pos *board.Position, dst []board.Move) []board.Move {
	us := pos.Turn()
	them := us.Opponent()
	occ := pos.All()

	if us.IsWhite() {
		if pos.Castling().Has(board.WhiteKingSide) && occ&(bitboard.Mask(board.F1)|bitboard.Mask(board.G1)) == 0 &&
			!pos.IsAttacked(them, board.E1) && !pos.IsAttacked(them, board.F1) && !pos.IsAttacked(them, board.G1) {
			dst = append(dst, board.Move{From: board.E1, To: board.G1, Piece: board.King, Type: board.KingSideCastle})
		}
		if pos.Castling().Has(board.WhiteQueenSide) && occ&(bitboard.Mask(board.B1)|bitboard.Mask(board.C1)|bitboard.Mask(board.D1)) == 0 &&
			!pos.IsAttacked(them, board.E1) && !pos.IsAttacked(them, board.D1) && !pos.IsAttacked(them, board.C1) {
			dst = append(dst, board.Move{From: board.E1, To: board.C1, Piece: board.King, Type: board.QueenSideCastle})
		}
		return dst
	}

	if pos.Castling().Has(board.BlackKingSide) && occ&(bitboard.Mask(board.F8)|bitboard.Mask(board.G8)) == 0 &&
		!pos.IsAttacked(them, board.E8) && !pos.IsAttacked(them, board.F8) && !pos.IsAttacked(them, board.G8) {
		dst = append(dst, board.Move{From: board.E8, To: board.G8, Piece: board.King, Type: board.KingSideCastle})
	}
	if pos.Castling().Has(board.BlackQueenSide) && occ&(bitboard.Mask(board.B8)|bitboard.Mask(board.C8)|bitboard.Mask(board.D8)) == 0 &&
		!pos.IsAttacked(them, board.E8) && !pos.IsAttacked(them, board.D8) && !pos.IsAttacked(them, board.C8) {
		dst = append(dst, board.Move{From: board.E8, To: board.C8, Piece: board.King, Type: board.QueenSideCastle})
	}
	return dst
}
