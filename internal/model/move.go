package model

import (
	"fmt"

	"github.com/benbeisheim/checkers-backend/internal/engine"
)

// WSMove is the move payload sent by clients.
type WSMove struct {
	FromRow int `json:"fromRow"`
	FromCol int `json:"fromCol"`
	ToRow   int `json:"toRow"`
	ToCol   int `json:"toCol"`
}

func (m WSMove) ToMove() engine.Move {
	return engine.NewMove(m.FromRow, m.FromCol, m.ToRow, m.ToCol)
}

type Coord struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Ply is one side's turn. A turn holds several jumps when the same
// piece keeps capturing.
type Ply struct {
	Color    PlayerColor   `json:"color"`
	Moves    []engine.Move `json:"moves"`
	Captures int           `json:"captures"`
	Promoted bool          `json:"promoted"`
	Notation string        `json:"notation"`
}

func newPly(side engine.Side, m engine.Move, out engine.Outcome) Ply {
	p := Ply{
		Color:    ColorOf(side),
		Moves:    []engine.Move{m},
		Promoted: out.Promoted,
		Notation: m.Notation(),
	}
	if m.IsCapture() {
		p.Captures = 1
	}
	return p
}

// extend appends a continuation jump to the ply.
func (p *Ply) extend(m engine.Move, out engine.Outcome) {
	p.Moves = append(p.Moves, m)
	p.Captures++
	p.Promoted = p.Promoted || out.Promoted
	p.Notation += fmt.Sprintf("x%d", engine.SquareNumber(m.ToRow, m.ToCol))
}
