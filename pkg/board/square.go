package board

import (
	"fmt"

	"github.com/herohde/morlockcore/pkg/bitboard"
)

// Square is a board square: a1=0, b1=1, ..., h1=7, a2=8, ..., h8=63. Matches
// the bit index used by bitboard.Bitboard directly, so no translation is
// needed between the two packages.
type Square = bitboard.Square

const (
	NoSquare Square = 64
)

// File is a board file, a=0 .. h=7.
type File uint8

const (
	FileA File = iota
	FileB
	FileC
	FileD
	FileE
	FileF
	FileG
	FileH

	NumFiles = 8
)

// Rank is a board rank, 1=0 .. 8=7.
type Rank uint8

const (
	Rank1 Rank = iota
	Rank2
	Rank3
	Rank4
	Rank5
	Rank6
	Rank7
	Rank8

	NumRanks = 8
)

func NewSquare(f File, r Rank) Square {
	return Square(uint8(r)<<3 | uint8(f))
}

func SquareFile(sq Square) File {
	return File(sq & 7)
}

func SquareRank(sq Square) Rank {
	return Rank(sq >> 3)
}

func ParseFile(r rune) (File, bool) {
	if r < 'a' || r > 'h' {
		return 0, false
	}
	return File(r - 'a'), true
}

func ParseRank(r rune) (Rank, bool) {
	if r < '1' || r > '8' {
		return 0, false
	}
	return Rank(r - '1'), true
}

func ParseSquare(f, r rune) (Square, error) {
	file, ok := ParseFile(f)
	if !ok {
		return 0, fmt.Errorf("invalid file: %q", f)
	}
	rank, ok := ParseRank(r)
	if !ok {
		return 0, fmt.Errorf("invalid rank: %q", r)
	}
	return NewSquare(file, rank), nil
}

func ParseSquareStr(str string) (Square, error) {
	runes := []rune(str)
	if len(runes) != 2 {
		return 0, fmt.Errorf("invalid square: %q", str)
	}
	return ParseSquare(runes[0], runes[1])
}

func (f File) String() string {
	return string(rune('a' + f))
}

func (r Rank) String() string {
	return string(rune('1' + r))
}

// SquareString formats a square in algebraic notation, e.g. "e4".
func SquareString(sq Square) string {
	if sq == NoSquare {
		return "-"
	}
	return fmt.Sprintf("%v%v", SquareFile(sq), SquareRank(sq))
}

// Named squares for castling / en-passant bookkeeping.
const (
	A1 Square = iota
	B1
	C1
	D1
	E1
	F1
	G1
	H1
	A2
	B2
	C2
	D2
	E2
	F2
	G2
	H2
	A3
	B3
	C3
	D3
	E3
	F3
	G3
	H3
	A4
	B4
	C4
	D4
	E4
	F4
	G4
	H4
	A5
	B5
	C5
	D5
	E5
	F5
	G5
	H5
	A6
	B6
	C6
	D6
	E6
	F6
	G6
	H6
	A7
	B7
	C7
	D7
	E7
	F7
	G7
	H7
	A8
	B8
	C8
	D8
	E8
	F8
	G8
	H8
)
