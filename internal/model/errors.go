package model

import "errors"

var (
	ErrGameFull         = errors.New("game is full")
	ErrGameOver         = errors.New("game is over")
	ErrGameNotStarted   = errors.New("waiting for an opponent")
	ErrNotInGame        = errors.New("player not in game")
	ErrNotYourTurn      = errors.New("not your turn")
	ErrNotYourPiece     = errors.New("piece belongs to the opponent")
	ErrMustContinueJump = errors.New("must continue jumping with the same piece")
	ErrTimeExpired      = errors.New("time expired")
	ErrConnectionExists = errors.New("connection already exists")
)
