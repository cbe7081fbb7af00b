package engine

import "fmt"

// Move is a single diagonal step or jump.
type Move struct {
	FromRow int `json:"fromRow"`
	FromCol int `json:"fromCol"`
	ToRow   int `json:"toRow"`
	ToCol   int `json:"toCol"`
}

func NewMove(fromRow, fromCol, toRow, toCol int) Move {
	return Move{FromRow: fromRow, FromCol: fromCol, ToRow: toRow, ToCol: toCol}
}

// IsCapture reports whether the move jumps over a square.
func (m Move) IsCapture() bool {
	return abs(m.ToRow-m.FromRow) == 2 && abs(m.ToCol-m.FromCol) == 2
}

// Midpoint returns the jumped-over square. Only meaningful for captures.
func (m Move) Midpoint() (int, int) {
	return (m.FromRow + m.ToRow) / 2, (m.FromCol + m.ToCol) / 2
}

// InBounds reports whether both ends of the move are on the board.
func (m Move) InBounds() bool {
	return InBounds(m.FromRow, m.FromCol) && InBounds(m.ToRow, m.ToCol)
}

// Notation renders the move in 1-32 square numbering, "11-15" for a
// step and "11x18" for a jump.
func (m Move) Notation() string {
	sep := "-"
	if m.IsCapture() {
		sep = "x"
	}
	return fmt.Sprintf("%d%s%d", SquareNumber(m.FromRow, m.FromCol), sep, SquareNumber(m.ToRow, m.ToCol))
}

func (m Move) String() string {
	return fmt.Sprintf("(%d,%d)->(%d,%d)", m.FromRow, m.FromCol, m.ToRow, m.ToCol)
}

// SquareNumber numbers the playable squares 1-32 row by row.
// It returns 0 for squares pieces cannot stand on.
func SquareNumber(row, col int) int {
	if !InBounds(row, col) || !IsPlayable(row, col) {
		return 0
	}
	return row*Size/2 + col/2 + 1
}

// MoveSet is the result of one enumeration. A nil MoveSet means there
// are no legal moves.
type MoveSet []Move

// Contains reports whether m is one of the moves in the set.
func (ms MoveSet) Contains(m Move) bool {
	for _, candidate := range ms {
		if candidate == m {
			return true
		}
	}
	return false
}

// HasCapture reports whether the set holds jumps. Sets produced by
// EnumerateMoves are either all jumps or all steps.
func (ms MoveSet) HasCapture() bool {
	return len(ms) > 0 && ms[0].IsCapture()
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
