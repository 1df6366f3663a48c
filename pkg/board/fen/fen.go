// Package fen reads and writes chess positions in Forsyth-Edwards Notation.
package fen

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/herohde/morlockcore/pkg/board"
)

// Initial is the FEN of the standard starting position.
const Initial = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// Decode parses a six-field FEN record into a Position.
//
// Example: "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"
func Decode(s string) (*board.Position, error) {
	parts := strings.Split(strings.TrimSpace(s), " ")
	if len(parts) != 6 {
		return nil, fmt.Errorf("invalid number of sections in FEN: %q", s)
	}

	// (1) Piece placement, rank 8 down to rank 1, file a through file h
	// within each rank.

	var pieces []board.Placement

	sq := board.NewSquare(board.FileA, board.Rank8)
	file := 0
	for _, r := range parts[0] {
		switch {
		case r == '/':
			if file != board.NumFiles {
				return nil, fmt.Errorf("invalid rank length in FEN: %q", s)
			}
			// sq has just advanced past the end of the completed rank;
			// drop it to the a-file of the next rank down.
			sq -= 2 * board.Square(board.NumFiles)
			file = 0
			continue

		case unicode.IsDigit(r):
			n := int(r - '0')
			if n < 1 || n > 8 {
				return nil, fmt.Errorf("invalid blank run in FEN: %q", s)
			}
			sq += board.Square(n)
			file += n

		case unicode.IsLetter(r):
			color, piece, ok := parsePiece(r)
			if !ok {
				return nil, fmt.Errorf("invalid piece %q in FEN: %q", r, s)
			}
			pieces = append(pieces, board.Placement{Square: sq, Color: color, Piece: piece})
			sq++
			file++

		default:
			return nil, fmt.Errorf("invalid character %q in FEN: %q", r, s)
		}

		if file > board.NumFiles {
			return nil, fmt.Errorf("invalid rank length in FEN: %q", s)
		}
	}
	if file != board.NumFiles {
		return nil, fmt.Errorf("invalid number of squares in FEN: %q", s)
	}

	// (2) Active color.

	turn, ok := parseColor(parts[1])
	if !ok {
		return nil, fmt.Errorf("invalid active color in FEN: %q", s)
	}

	// (3) Castling availability.

	castling, ok := parseCastling(parts[2])
	if !ok {
		return nil, fmt.Errorf("invalid castling in FEN: %q", s)
	}

	// (4) En passant target square.

	ep := board.NoSquare
	if parts[3] != "-" {
		var err error
		ep, err = board.ParseSquareStr(parts[3])
		if err != nil {
			return nil, fmt.Errorf("invalid en passant in FEN %q: %w", s, err)
		}
	}

	// (5) Halfmove clock.

	halfmove, err := strconv.Atoi(parts[4])
	if err != nil || halfmove < 0 {
		return nil, fmt.Errorf("invalid halfmove clock in FEN: %q", s)
	}

	// (6) Fullmove number.

	fullmove, err := strconv.Atoi(parts[5])
	if err != nil || fullmove < 1 {
		return nil, fmt.Errorf("invalid fullmove number in FEN: %q", s)
	}

	return board.NewPosition(pieces, turn, castling, ep, halfmove, fullmove)
}

// Encode renders a position back to FEN.
func Encode(pos *board.Position) string {
	var sb strings.Builder
	for r := int(board.Rank8); r >= int(board.Rank1); r-- {
		blanks := 0
		for f := 0; f < board.NumFiles; f++ {
			sq := board.NewSquare(board.File(f), board.Rank(r))
			color, piece, ok := pos.At(sq)
			if !ok {
				blanks++
				continue
			}
			if blanks > 0 {
				sb.WriteString(strconv.Itoa(blanks))
				blanks = 0
			}
			sb.WriteRune(printPiece(color, piece))
		}
		if blanks > 0 {
			sb.WriteString(strconv.Itoa(blanks))
		}
		if r != int(board.Rank1) {
			sb.WriteByte('/')
		}
	}

	ep := "-"
	if pos.EnPassant() != board.NoSquare {
		ep = board.SquareString(pos.EnPassant())
	}

	return fmt.Sprintf("%v %v %v %v %v %v", sb.String(), pos.Turn(), pos.Castling(), ep, pos.HalfmoveClock(), pos.FullmoveNumber())
}

func parseCastling(s string) (board.Castling, bool) {
	var c board.Castling
	if s == "-" {
		return c, true
	}
	for _, r := range s {
		switch r {
		case 'K':
			c |= board.WhiteKingSide
		case 'Q':
			c |= board.WhiteQueenSide
		case 'k':
			c |= board.BlackKingSide
		case 'q':
			c |= board.BlackQueenSide
		default:
			return 0, false
		}
	}
	return c, true
}

func parseColor(s string) (board.Color, bool) {
	switch s {
	case "w", "W":
		return board.White, true
	case "b", "B":
		return board.Black, true
	default:
		return 0, false
	}
}

func parsePiece(r rune) (board.Color, board.Piece, bool) {
	piece, ok := board.ParsePiece(r)
	if !ok {
		return 0, 0, false
	}
	if unicode.IsUpper(r) {
		return board.White, piece, true
	}
	return board.Black, piece, true
}

func printPiece(c board.Color, p board.Piece) rune {
	r := []rune(p.String())[0]
	if c == board.White {
		return unicode.ToUpper(r)
	}
	return r
}
