package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/benbeisheim/checkers-backend/internal/engine"
	"github.com/benbeisheim/checkers-backend/internal/ws"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/websocket/v2"
)

// Conn is the part of a websocket connection a game writes to.
type Conn interface {
	WriteJSON(v interface{}) error
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// The connections for a specific game
type GameConnections struct {
	connections map[string]Conn // playerID -> connection
	mu          sync.Mutex
}

func NewGameConnections() *GameConnections {
	return &GameConnections{
		connections: make(map[string]Conn),
	}
}

const (
	ResolveNoMoves = "no_moves"
	ResolveResign  = "resign"
	ResolveTimeout = "timeout"
)

// Game is one checkers session. It owns its position and is the only
// writer to it; every exported method takes the game mutex.
type Game struct {
	ID           string
	mu           sync.Mutex
	position     *engine.Position
	toMove       engine.Side
	seats        map[engine.Side]string
	clocks       map[engine.Side]*Clock
	history      []Ply
	captured     CapturedPieces
	continueFrom *Coord
	lastMove     *engine.Move
	sound        string
	resolve      *string
	winner       *PlayerColor
	connections  *GameConnections
}

type GameState struct {
	Sound          string         `json:"sound"`
	Board          *BoardState    `json:"boardState"`
	ToMove         PlayerColor    `json:"toMove"`
	MoveHistory    []Ply          `json:"moveHistory"`
	CapturedPieces CapturedPieces `json:"capturedPieces"`
	LegalMoves     []engine.Move  `json:"legalMoves"`
	MustCapture    bool           `json:"mustCapture"`
	ContinueFrom   *Coord         `json:"continueFrom"`
	Resolve        *string        `json:"resolve"` // Made nullable
	Winner         *PlayerColor   `json:"winner"`
	Players        struct {
		Dark  ClientPlayer `json:"dark"`
		Light ClientPlayer `json:"light"`
	} `json:"players"`
	LastMove *engine.Move `json:"lastMove"` // Made nullable
	Watchers int          `json:"watchers"`
}

func NewGame(id string, clockTime time.Duration) *Game {
	return &Game{
		ID:       id,
		position: engine.NewPosition(),
		toMove:   engine.Dark,
		seats:    make(map[engine.Side]string),
		clocks: map[engine.Side]*Clock{
			engine.Dark:  NewClock(clockTime),
			engine.Light: NewClock(clockTime),
		},
		history:     make([]Ply, 0),
		connections: NewGameConnections(),
	}
}

// AddPlayer seats a player, dark first. A player already seated gets
// their existing color back.
func (g *Game) AddPlayer(playerID string) (PlayerColor, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if side, ok := g.seatOf(playerID); ok {
		return ColorOf(side), nil
	}
	for _, side := range []engine.Side{engine.Dark, engine.Light} {
		if g.seats[side] == "" {
			g.seats[side] = playerID
			log.Infof("game %s: player %s seated as %s", g.ID, playerID, side)
			if g.isFullLocked() {
				g.clocks[g.toMove].Start()
			}
			return ColorOf(side), nil
		}
	}
	return "", ErrGameFull
}

func (g *Game) seatOf(playerID string) (engine.Side, bool) {
	if playerID == "" {
		return 0, false
	}
	for side, id := range g.seats {
		if id == playerID {
			return side, true
		}
	}
	return 0, false
}

func (g *Game) isFullLocked() bool {
	return g.seats[engine.Dark] != "" && g.seats[engine.Light] != ""
}

func (g *Game) IsPlayerInGame(playerID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	_, ok := g.seatOf(playerID)
	return ok
}

func (g *Game) IsOver() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.resolve != nil
}

func (g *Game) GetState() GameState {
	g.mu.Lock()
	flagged := g.checkFlagLocked()
	state := g.stateLocked()
	g.mu.Unlock()

	if flagged {
		g.broadcastState(state)
	}
	return state
}

// checkFlagLocked ends the game if the side to move has run out of time.
// It reports whether this call ended the game.
func (g *Game) checkFlagLocked() bool {
	if g.resolve != nil || !g.isFullLocked() || !g.clocks[g.toMove].Expired() {
		return false
	}
	g.finishLocked(g.toMove.Opponent(), ResolveTimeout)
	return true
}

func (g *Game) stateLocked() GameState {
	state := GameState{
		Sound:          g.sound,
		Board:          newBoardState(g.position),
		ToMove:         ColorOf(g.toMove),
		MoveHistory:    append([]Ply(nil), g.history...),
		CapturedPieces: g.captured,
		Resolve:        g.resolve,
		Winner:         g.winner,
		LastMove:       g.lastMove,
		Watchers:       g.connectionCount(),
	}
	legal := g.legalMovesLocked(g.toMove)
	state.LegalMoves = legal
	state.MustCapture = legal.HasCapture()
	if state.LegalMoves == nil {
		state.LegalMoves = []engine.Move{}
	}
	if g.continueFrom != nil {
		cf := *g.continueFrom
		state.ContinueFrom = &cf
	}
	state.Players.Dark = g.clientPlayerLocked(engine.Dark)
	state.Players.Light = g.clientPlayerLocked(engine.Light)
	return state
}

func (g *Game) clientPlayerLocked(side engine.Side) ClientPlayer {
	clock := g.clocks[side]
	return ClientPlayer{
		ID:       g.seats[side],
		Color:    ColorOf(side),
		TimeLeft: clock.deciseconds(),
		Running:  clock.IsRunning(),
	}
}

// LegalMoves returns the moves the player may make right now. It is
// empty when it is not the player's turn.
func (g *Game) LegalMoves(playerID string) ([]engine.Move, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	side, ok := g.seatOf(playerID)
	if !ok {
		return nil, ErrNotInGame
	}
	g.checkFlagLocked()
	if g.resolve != nil || side != g.toMove {
		return []engine.Move{}, nil
	}
	moves := g.legalMovesLocked(side)
	if moves == nil {
		return []engine.Move{}, nil
	}
	return moves, nil
}

func (g *Game) legalMovesLocked(side engine.Side) engine.MoveSet {
	if g.resolve != nil {
		return nil
	}
	if g.continueFrom != nil {
		return engine.EnumerateJumpsFrom(g.position, g.continueFrom.Row, g.continueFrom.Col, side)
	}
	return engine.EnumerateMoves(g.position, side)
}

func (g *Game) MakeMove(playerID string, move engine.Move) error {
	g.mu.Lock()
	err := g.makeMoveLocked(playerID, move)
	state := g.stateLocked()
	g.mu.Unlock()

	if err == nil || errors.Is(err, ErrTimeExpired) {
		g.broadcastState(state)
	}
	return err
}

func (g *Game) makeMoveLocked(playerID string, move engine.Move) error {
	if g.resolve != nil {
		return ErrGameOver
	}
	side, ok := g.seatOf(playerID)
	if !ok {
		return ErrNotInGame
	}
	if !g.isFullLocked() {
		return ErrGameNotStarted
	}
	if g.checkFlagLocked() {
		return ErrTimeExpired
	}
	if side != g.toMove {
		return ErrNotYourTurn
	}
	if !move.InBounds() {
		return fmt.Errorf("invalid move %s: %w", move, engine.ErrOutOfBounds)
	}
	piece := g.position.Get(move.FromRow, move.FromCol)
	if !piece.IsEmpty() && !piece.IsSide(side) {
		return ErrNotYourPiece
	}
	if g.continueFrom != nil {
		if move.FromRow != g.continueFrom.Row || move.FromCol != g.continueFrom.Col || !move.IsCapture() {
			return ErrMustContinueJump
		}
	}

	outcome, err := engine.ApplyMove(g.position, move)
	if err != nil {
		return fmt.Errorf("invalid move: %w", err)
	}
	log.Debugf("game %s: %s played %s", g.ID, side, move.Notation())

	g.recordLocked(side, move, outcome)

	// The same piece keeps the turn while it can go on capturing.
	// Crowning ends the turn.
	if move.IsCapture() && !outcome.Promoted &&
		len(engine.EnumerateJumpsFrom(g.position, move.ToRow, move.ToCol, side)) > 0 {
		g.continueFrom = &Coord{Row: move.ToRow, Col: move.ToCol}
		return nil
	}
	g.continueFrom = nil

	g.clocks[side].Stop()
	g.toMove = side.Opponent()
	if engine.EnumerateMoves(g.position, g.toMove) == nil {
		g.finishLocked(side, ResolveNoMoves)
		return nil
	}
	g.clocks[g.toMove].Start()
	return nil
}

func (g *Game) recordLocked(side engine.Side, move engine.Move, outcome engine.Outcome) {
	switch {
	case outcome.Promoted:
		g.sound = "promote"
	case move.IsCapture():
		g.sound = "capture"
	default:
		g.sound = "move"
	}

	if move.IsCapture() {
		if side == engine.Dark {
			g.captured.Dark++
		} else {
			g.captured.Light++
		}
	}

	if g.continueFrom != nil && len(g.history) > 0 {
		g.history[len(g.history)-1].extend(move, outcome)
	} else {
		g.history = append(g.history, newPly(side, move, outcome))
	}
	last := move
	g.lastMove = &last
}

func (g *Game) Resign(playerID string) error {
	g.mu.Lock()
	if g.resolve != nil {
		g.mu.Unlock()
		return ErrGameOver
	}
	side, ok := g.seatOf(playerID)
	if !ok {
		g.mu.Unlock()
		return ErrNotInGame
	}
	g.finishLocked(side.Opponent(), ResolveResign)
	state := g.stateLocked()
	g.mu.Unlock()

	g.broadcastState(state)
	return nil
}

func (g *Game) finishLocked(winner engine.Side, reason string) {
	for _, c := range g.clocks {
		c.Stop()
	}
	color := ColorOf(winner)
	g.winner = &color
	g.resolve = &reason
	g.continueFrom = nil
	g.sound = "gameOver"
	log.Infof("game %s: %s wins by %s", g.ID, winner, reason)
}

func (g *Game) RegisterConnection(playerID string, conn Conn) error {
	g.connections.mu.Lock()
	if _, exists := g.connections.connections[playerID]; exists {
		// Keep the healthy connection and reject the new one.
		g.connections.mu.Unlock()
		conn.WriteMessage(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, "Connection already exists"),
		)
		conn.Close()
		return ErrConnectionExists
	}
	g.connections.connections[playerID] = conn
	g.connections.mu.Unlock()
	log.Debugf("game %s: registered connection for %s", g.ID, playerID)

	g.broadcastState(g.GetState())
	return nil
}

// UnregisterConnection drops conn if it is still the player's current
// connection.
func (g *Game) UnregisterConnection(playerID string, conn Conn) {
	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()

	if current, exists := g.connections.connections[playerID]; exists && current == conn {
		log.Debugf("game %s: unregistering connection for %s", g.ID, playerID)
		delete(g.connections.connections, playerID)
	}
}

func (g *Game) connectionCount() int {
	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()
	return len(g.connections.connections)
}

// broadcastState sends a snapshot to every connection. Writes happen
// under the connections lock so a socket never sees concurrent writers.
func (g *Game) broadcastState(state GameState) {
	payload, err := json.Marshal(state)
	if err != nil {
		log.Errorf("game %s: failed to marshal state: %v", g.ID, err)
		return
	}

	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()
	for playerID, conn := range g.connections.connections {
		if err := conn.WriteJSON(ws.Message{
			Type:    ws.MessageTypeGameState,
			Payload: json.RawMessage(payload),
		}); err != nil {
			log.Warnf("game %s: failed to send state to %s: %v", g.ID, playerID, err)
			delete(g.connections.connections, playerID)
		}
	}
}
