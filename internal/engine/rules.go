package engine

import (
	"errors"
	"fmt"
)

var (
	ErrOutOfBounds = errors.New("coordinate out of bounds")
	ErrNoPiece     = errors.New("no piece at from square")
	ErrIllegalMove = errors.New("illegal move")
)

var diagonals = [4][2]int{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}

// Outcome describes the side effects of an applied move.
type Outcome struct {
	Captured Square
	Promoted bool
}

// EnumerateMoves returns every legal move for side. Jumps are compulsory:
// if any piece of the side can jump, only jumps are returned. A nil
// result means the side has no legal move.
func EnumerateMoves(p *Position, side Side) MoveSet {
	if jumps := enumerateJumps(p, side); len(jumps) > 0 {
		return jumps
	}
	return enumerateSteps(p, side)
}

func enumerateJumps(p *Position, side Side) MoveSet {
	var moves MoveSet
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if !p.Get(r, c).IsSide(side) {
				continue
			}
			moves = append(moves, jumpsFrom(p, r, c, side)...)
		}
	}
	return moves
}

func enumerateSteps(p *Position, side Side) MoveSet {
	var moves MoveSet
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if !p.Get(r, c).IsSide(side) {
				continue
			}
			for _, d := range diagonals {
				if IsLegalStep(p, r, c, r+d[0], c+d[1], side) {
					moves = append(moves, NewMove(r, c, r+d[0], c+d[1]))
				}
			}
		}
	}
	return moves
}

func jumpsFrom(p *Position, row, col int, side Side) MoveSet {
	var moves MoveSet
	for _, d := range diagonals {
		toRow, toCol := row+2*d[0], col+2*d[1]
		if IsLegalJump(p, row, col, toRow, toCol, side) {
			moves = append(moves, NewMove(row, col, toRow, toCol))
		}
	}
	return moves
}

// EnumerateJumpsFrom returns the jumps available to the piece on one
// square. It returns nil if the square does not hold a piece of side.
// It never chains jumps; callers re-query after ApplyMove.
func EnumerateJumpsFrom(p *Position, row, col int, side Side) MoveSet {
	if !InBounds(row, col) || !p.Get(row, col).IsSide(side) {
		return nil
	}
	return jumpsFrom(p, row, col, side)
}

// IsLegalJump reports whether the piece of side on (fromRow, fromCol) may
// jump to (toRow, toCol) over an opposing piece.
func IsLegalJump(p *Position, fromRow, fromCol, toRow, toCol int, side Side) bool {
	if !InBounds(fromRow, fromCol) || !InBounds(toRow, toCol) {
		return false
	}
	if abs(toRow-fromRow) != 2 || abs(toCol-fromCol) != 2 {
		return false
	}
	piece := p.Get(fromRow, fromCol)
	if !piece.IsSide(side) || !p.Get(toRow, toCol).IsEmpty() {
		return false
	}
	if !movesForward(piece, fromRow, toRow) {
		return false
	}
	midRow, midCol := (fromRow+toRow)/2, (fromCol+toCol)/2
	return p.Get(midRow, midCol).IsSide(side.Opponent())
}

// IsLegalStep reports whether the piece of side on (fromRow, fromCol) may
// step diagonally to the empty square (toRow, toCol).
func IsLegalStep(p *Position, fromRow, fromCol, toRow, toCol int, side Side) bool {
	if !InBounds(fromRow, fromCol) || !InBounds(toRow, toCol) {
		return false
	}
	if abs(toRow-fromRow) != 1 || abs(toCol-fromCol) != 1 {
		return false
	}
	piece := p.Get(fromRow, fromCol)
	if !piece.IsSide(side) || !p.Get(toRow, toCol).IsEmpty() {
		return false
	}
	return movesForward(piece, fromRow, toRow)
}

// movesForward is true for kings and for men heading toward the
// opponent's back row.
func movesForward(piece Square, fromRow, toRow int) bool {
	if piece.Rank().IsKing() {
		return true
	}
	return (toRow-fromRow)*piece.Side().Forward() > 0
}

// ApplyMove validates m against the current legal moves of the side that
// owns the moving piece and, if legal, plays it: the piece moves, a jumped
// piece is removed and a man reaching the far row is crowned. An illegal
// move leaves the position untouched.
func ApplyMove(p *Position, m Move) (Outcome, error) {
	if !m.InBounds() {
		return Outcome{}, fmt.Errorf("%w: %s", ErrOutOfBounds, m)
	}
	piece := p.Get(m.FromRow, m.FromCol)
	if piece.IsEmpty() {
		return Outcome{}, fmt.Errorf("%w: %s", ErrNoPiece, m)
	}
	if !EnumerateMoves(p, piece.Side()).Contains(m) {
		return Outcome{}, fmt.Errorf("%w: %s", ErrIllegalMove, m)
	}
	return applyUnchecked(p, m), nil
}

func applyUnchecked(p *Position, m Move) Outcome {
	var out Outcome
	piece := p.Get(m.FromRow, m.FromCol)
	p.Set(m.ToRow, m.ToCol, piece)
	p.Set(m.FromRow, m.FromCol, Empty())

	if m.IsCapture() {
		midRow, midCol := m.Midpoint()
		out.Captured = p.Get(midRow, midCol)
		p.Set(midRow, midCol, Empty())
	}

	if !piece.Rank().IsKing() && m.ToRow == piece.Side().PromotionRow() {
		p.Set(m.ToRow, m.ToCol, piece.Promoted())
		out.Promoted = true
	}
	return out
}
