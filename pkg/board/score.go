package board

import "fmt"

// Score is a signed centipawn evaluation from the side to move's
// perspective: positive favors the side to move. 16 bits.
type Score int16

const (
	MinScore Score = -30000
	MaxScore Score = 30000

	// MateScore is the base magnitude used to report forced mate. A mate in
	// N plies is reported as MateScore-N (or its negation).
	MateScore Score = 29000
)

// IsMate reports whether the score represents a forced mate, and the
// distance to it in plies if so.
func (s Score) IsMate() (int, bool) {
	switch {
	case s >= MateScore-1000:
		return int(MateScore - s), true
	case s <= -(MateScore - 1000):
		return int(MateScore + s), true
	default:
		return 0, false
	}
}

func (s Score) String() string {
	if d, ok := s.IsMate(); ok {
		return fmt.Sprintf("mate %v", d)
	}
	return fmt.Sprintf("%.2f", float64(s)/100)
}
