package model

import "github.com/benbeisheim/checkers-backend/internal/engine"

type Player struct {
	ID string
}

type ClientPlayer struct {
	ID       string      `json:"name"`
	Color    PlayerColor `json:"color"`
	TimeLeft int         `json:"timeLeft"`
	Running  bool        `json:"running"`
}

type PlayerColor string

const (
	PlayerColorDark  PlayerColor = "dark"
	PlayerColorLight PlayerColor = "light"
)

func ColorOf(side engine.Side) PlayerColor {
	if side == engine.Dark {
		return PlayerColorDark
	}
	return PlayerColorLight
}

// MatchFoundEvent is pushed to both players once matchmaking pairs them.
type MatchFoundEvent struct {
	GameID string      `json:"gameId"`
	Color  PlayerColor `json:"color"`
}
