package model

import "github.com/benbeisheim/checkers-backend/internal/engine"

type PieceRank string

const (
	RankMan  PieceRank = "man"
	RankKing PieceRank = "king"
)

type Piece struct {
	Color    PlayerColor `json:"color"`
	Rank     PieceRank   `json:"rank"`
	Position Coord       `json:"position"`
}

type BoardState struct {
	Board [][]*Piece `json:"board"`
	Dark  int        `json:"dark"`
	Light int        `json:"light"`
}

type CapturedPieces struct {
	Dark  int `json:"dark"`
	Light int `json:"light"`
}

// newBoardState renders a position for clients. Empty squares are nil.
func newBoardState(p *engine.Position) *BoardState {
	board := &BoardState{
		Dark:  p.Count(engine.Dark),
		Light: p.Count(engine.Light),
	}
	for r := 0; r < engine.Size; r++ {
		row := make([]*Piece, engine.Size)
		for c := 0; c < engine.Size; c++ {
			sq := p.Get(r, c)
			if sq.IsEmpty() {
				continue
			}
			rank := RankMan
			if sq.Rank().IsKing() {
				rank = RankKing
			}
			row[c] = &Piece{Color: ColorOf(sq.Side()), Rank: rank, Position: Coord{Row: r, Col: c}}
		}
		board.Board = append(board.Board, row)
	}
	return board
}
