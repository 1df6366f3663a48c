package board

import "github.com/herohde/morlockcore/pkg/bitboard"

// Undo captures everything Position.Unmake needs to restore the exact
// prior state: the fields that Make overwrites rather than derives.
type Undo struct {
	Castling  Castling
	EnPassant Square
	Halfmove  int
	Hash      ZobristHash
}

// Make applies m to the position and returns the information needed to
// undo it. The second return value is false if the move leaves the
// mover's own king in check -- an illegal move. The position is mutated
// either way; the caller must always call Unmake with the returned Undo,
// legal or not, to restore the prior state (spec's nine-step protocol).
func (p *Position) Make(m Move) (Undo, bool) {
	mover := p.turn
	undo := Undo{Castling: p.castling, EnPassant: p.enpassant, Halfmove: p.halfmove, Hash: p.hash}

	p.hash ^= zobrist.castlingRight(p.castling)
	p.hash ^= zobrist.enPassant(p.enpassant)

	// 1. Remove the moving piece from its origin square.
	p.remove(mover, m.Piece, m.From)
	p.hash ^= zobrist.piece(mover, m.Piece, m.From)

	// 2. Resolve the capture, including en passant's off-To-square victim.
	if m.Type == EnPassant {
		capSq := epCaptureSquare(mover, m.To)
		p.remove(mover.Opponent(), Pawn, capSq)
		p.hash ^= zobrist.piece(mover.Opponent(), Pawn, capSq)
	} else if m.IsCapture() {
		p.remove(mover.Opponent(), m.Capture, m.To)
		p.hash ^= zobrist.piece(mover.Opponent(), m.Capture, m.To)
	}

	// 3. Place the moving piece (or its promotion) on the destination.
	placed := m.Piece
	if m.IsPromotion() {
		placed = m.Promotion
	}
	p.place(m.To, mover, placed)
	p.hash ^= zobrist.piece(mover, placed, m.To)

	// 4. Move the rook for castling.
	if m.Type == KingSideCastle || m.Type == QueenSideCastle {
		rf, rt := castlingRookSquares(mover, m.Type)
		p.remove(mover, Rook, rf)
		p.place(rt, mover, Rook)
		p.hash ^= zobrist.piece(mover, Rook, rf)
		p.hash ^= zobrist.piece(mover, Rook, rt)
	}

	// 5. Update castling rights: king move clears both of the mover's
	// rights, a rook move or rook capture clears the corresponding one.
	p.castling &^= castlingRightsCleared(mover, m)

	// 6. Set or clear the en-passant target.
	if m.Type == DoublePawnPush {
		p.enpassant = epCaptureSquare(mover, m.To)
	} else {
		p.enpassant = NoSquare
	}

	// 7. Update the fifty-move clock: reset on pawn move or any capture.
	if m.Piece == Pawn || m.IsCapture() {
		p.halfmove = 0
	} else {
		p.halfmove++
	}

	// 8. Flip the side to move and bump the full-move counter after Black.
	if mover == Black {
		p.fullmove++
	}
	p.turn = mover.Opponent()

	p.hash ^= zobrist.castlingRight(p.castling)
	p.hash ^= zobrist.enPassant(p.enpassant)
	p.hash ^= zobrist.turn

	p.pushRepetition(p.hash)

	// 9. Legality: the move is illegal if it leaves the mover's own king
	// attacked. Checked after application since castling-through-check is
	// validated by the generator separately via IsAttacked on the path.
	legal := !p.IsAttacked(mover.Opponent(), p.King(mover))
	return undo, legal
}

// Unmake reverses m using the Undo captured by the matching Make call.
func (p *Position) Unmake(m Move, u Undo) {
	p.popRepetition()

	mover := p.turn.Opponent()
	if mover == Black {
		p.fullmove--
	}
	p.turn = mover

	placed := m.Piece
	if m.IsPromotion() {
		placed = m.Promotion
	}
	p.remove(mover, placed, m.To)
	p.place(m.From, mover, m.Piece)

	if m.Type == EnPassant {
		capSq := epCaptureSquare(mover, m.To)
		p.place(capSq, mover.Opponent(), Pawn)
	} else if m.IsCapture() {
		p.place(m.To, mover.Opponent(), m.Capture)
	}

	if m.Type == KingSideCastle || m.Type == QueenSideCastle {
		rf, rt := castlingRookSquares(mover, m.Type)
		p.remove(mover, Rook, rt)
		p.place(rf, mover, Rook)
	}

	p.castling = u.Castling
	p.enpassant = u.EnPassant
	p.halfmove = u.Halfmove
	p.hash = u.Hash
}

// NullUndo captures the state MakeNull overwrites.
type NullUndo struct {
	EnPassant Square
	Hash      ZobristHash
}

// MakeNull passes the turn without moving a piece, used by null-move
// pruning. Pushes a zero sentinel onto the repetition stack rather than
// the resulting hash, since a null-move position cannot itself recur;
// UnmakeNull pops through the same path as a real Unmake (see
// popRepetition), which is also where that sentinel can end up
// absorbing the entry beneath it on a subsequent real unmake.
func (p *Position) MakeNull() NullUndo {
	u := NullUndo{EnPassant: p.enpassant, Hash: p.hash}
	p.hash ^= zobrist.enPassant(p.enpassant)
	p.enpassant = NoSquare
	p.turn = p.turn.Opponent()
	p.hash ^= zobrist.turn
	p.pushRepetition(0)
	return u
}

// UnmakeNull reverses MakeNull.
func (p *Position) UnmakeNull(u NullUndo) {
	p.popRepetition()
	p.turn = p.turn.Opponent()
	p.enpassant = u.EnPassant
	p.hash = u.Hash
}

func (p *Position) remove(c Color, piece Piece, sq Square) {
	m := bitboard.Mask(sq)
	p.pieces[c][piece] ^= m
	p.occupied[c] ^= m
	p.all ^= m
}

// epCaptureSquare returns the square of the pawn captured en passant given
// the moving pawn's color and destination square, and doubles as the
// destination-minus-one-rank helper used to compute a double push's target.
func epCaptureSquare(mover Color, to Square) Square {
	if mover == White {
		return to - 8
	}
	return to + 8
}

func castlingRookSquares(mover Color, t MoveType) (from, to Square) {
	if mover == White {
		if t == KingSideCastle {
			return H1, F1
		}
		return A1, D1
	}
	if t == KingSideCastle {
		return H8, F8
	}
	return A8, D8
}

func castlingRightsCleared(mover Color, m Move) Castling {
	var cleared Castling
	if m.Piece == King {
		cleared |= kingSideRight(mover) | queenSideRight(mover)
	}
	if m.Piece == Rook {
		cleared |= rookRightForSquare(mover, m.From)
	}
	if m.IsCapture() && m.Capture == Rook {
		cleared |= rookRightForSquare(mover.Opponent(), m.To)
	}
	return cleared
}

func rookRightForSquare(c Color, sq Square) Castling {
	switch {
	case c == White && sq == A1:
		return WhiteQueenSide
	case c == White && sq == H1:
		return WhiteKingSide
	case c == Black && sq == A8:
		return BlackQueenSide
	case c == Black && sq == H8:
		return BlackKingSide
	default:
		return 0
	}
}
