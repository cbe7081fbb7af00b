package engine

import "strings"

// Size is the number of rows and columns on the board.
const Size = 8

type Side int

const (
	Dark Side = iota
	Light
)

func (s Side) String() string {
	switch s {
	case Dark:
		return "dark"
	case Light:
		return "light"
	}
	return ""
}

// Opponent returns the other side.
func (s Side) Opponent() Side {
	if s == Dark {
		return Light
	}
	return Dark
}

// Forward returns the row delta a man of this side advances by.
// Dark starts on the low rows and moves toward row 7, Light the reverse.
func (s Side) Forward() int {
	if s == Dark {
		return 1
	}
	return -1
}

// PromotionRow is the row on which a man of this side becomes a king.
func (s Side) PromotionRow() int {
	if s == Dark {
		return Size - 1
	}
	return 0
}

type Rank int

const (
	Man Rank = iota
	King
)

func (r Rank) String() string {
	if r == King {
		return "king"
	}
	return "man"
}

func (r Rank) IsKing() bool {
	return r == King
}

// Square is the content of one board square: either empty or a piece
// of a side with a rank. The zero value is an empty square.
type Square struct {
	occupied bool
	side     Side
	rank     Rank
}

// Empty returns an empty square.
func Empty() Square {
	return Square{}
}

// Occupied returns a square holding a piece.
func Occupied(side Side, rank Rank) Square {
	return Square{occupied: true, side: side, rank: rank}
}

func (s Square) IsEmpty() bool {
	return !s.occupied
}

// IsSide reports whether the square holds a piece of the given side.
func (s Square) IsSide(side Side) bool {
	return s.occupied && s.side == side
}

// Side and Rank are only meaningful when the square is occupied.
func (s Square) Side() Side { return s.side }
func (s Square) Rank() Rank { return s.rank }

// Promoted returns the king version of the piece on the square.
func (s Square) Promoted() Square {
	if !s.occupied {
		return s
	}
	return Occupied(s.side, King)
}

func (s Square) String() string {
	if !s.occupied {
		return "."
	}
	switch {
	case s.side == Dark && s.rank == King:
		return "D"
	case s.side == Dark:
		return "d"
	case s.rank == King:
		return "L"
	}
	return "l"
}

// Position is an 8x8 checkers board, row-major.
// Pieces only ever stand on squares where row+col is even.
type Position struct {
	squares [Size][Size]Square
}

// NewPosition returns a position set up for the start of a game.
func NewPosition() *Position {
	p := &Position{}
	p.Initialize()
	return p
}

// Get returns the content of a square. Coordinates must be in [0,7].
func (p *Position) Get(row, col int) Square {
	return p.squares[row][col]
}

// Set overwrites a square without any legality checks.
func (p *Position) Set(row, col int, sq Square) {
	p.squares[row][col] = sq
}

// Initialize resets the board to the starting layout: dark men on
// rows 0-2, light men on rows 5-7, only on squares where row+col is even.
func (p *Position) Initialize() {
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			switch {
			case !IsPlayable(r, c):
				p.squares[r][c] = Empty()
			case r < 3:
				p.squares[r][c] = Occupied(Dark, Man)
			case r > 4:
				p.squares[r][c] = Occupied(Light, Man)
			default:
				p.squares[r][c] = Empty()
			}
		}
	}
}

// Clear empties every square.
func (p *Position) Clear() {
	p.squares = [Size][Size]Square{}
}

// Clone returns an independent copy of the position.
func (p *Position) Clone() *Position {
	cp := *p
	return &cp
}

// Count returns how many pieces the side has on the board.
func (p *Position) Count(side Side) int {
	n := 0
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if p.squares[r][c].IsSide(side) {
				n++
			}
		}
	}
	return n
}

func (p *Position) String() string {
	var b strings.Builder
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			b.WriteString(p.squares[r][c].String())
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// InBounds reports whether row and col are both on the board.
func InBounds(row, col int) bool {
	return row >= 0 && row < Size && col >= 0 && col < Size
}

// IsPlayable reports whether pieces may stand on the square.
func IsPlayable(row, col int) bool {
	return (row+col)%2 == 0
}
