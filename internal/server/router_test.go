package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/benbeisheim/checkers-backend/internal/config"
	"github.com/benbeisheim/checkers-backend/internal/engine"
	"github.com/benbeisheim/checkers-backend/internal/model"
	"github.com/benbeisheim/checkers-backend/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Port: "0", AllowedOrigins: []string{"http://localhost:5173"}},
		Logs:   config.LogConfig{Level: "error"},
		Game:   config.GameConfig{ClockTime: time.Minute},
	}
}

func newTestApp() (*fiber.App, *service.GameManager) {
	gm := service.NewGameManager(time.Minute)
	return NewRouter(testConfig(), service.NewGameService(gm)), gm
}

func doJSON(t *testing.T, app *fiber.App, method, path, player, body string, out interface{}) int {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if player != "" {
		req.Header.Set("X-Player-ID", player)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func TestHealth(t *testing.T) {
	app, _ := newTestApp()
	var body map[string]string
	status := doJSON(t, app, http.MethodGet, "/health", "", "", &body)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "ok", body["status"])
}

func TestAPIRequiresPlayerID(t *testing.T) {
	app, _ := newTestApp()
	status := doJSON(t, app, http.MethodPost, "/api/game/create", "", "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, status)
}

func TestGameFlowOverREST(t *testing.T) {
	app, _ := newTestApp()

	var created struct {
		GameID string `json:"game_id"`
	}
	require.Equal(t, fiber.StatusOK, doJSON(t, app, http.MethodPost, "/api/game/create", "alice", "", &created))
	require.NotEmpty(t, created.GameID)
	base := "/api/game/" + created.GameID

	var joined struct {
		Color model.PlayerColor `json:"color"`
	}
	require.Equal(t, fiber.StatusOK, doJSON(t, app, http.MethodPost, "/api/game/join/"+created.GameID, "alice", "", &joined))
	assert.Equal(t, model.PlayerColorDark, joined.Color)
	require.Equal(t, fiber.StatusOK, doJSON(t, app, http.MethodPost, "/api/game/join/"+created.GameID, "bob", "", &joined))
	assert.Equal(t, model.PlayerColorLight, joined.Color)
	assert.Equal(t, fiber.StatusConflict, doJSON(t, app, http.MethodPost, "/api/game/join/"+created.GameID, "carol", "", nil))

	var moves struct {
		Moves []engine.Move `json:"moves"`
	}
	require.Equal(t, fiber.StatusOK, doJSON(t, app, http.MethodGet, base+"/moves", "alice", "", &moves))
	assert.Len(t, moves.Moves, 7)

	assert.Equal(t, fiber.StatusConflict,
		doJSON(t, app, http.MethodPost, base+"/move", "bob", `{"fromRow":5,"fromCol":1,"toRow":4,"toCol":0}`, nil))
	assert.Equal(t, fiber.StatusUnprocessableEntity,
		doJSON(t, app, http.MethodPost, base+"/move", "alice", `{"fromRow":2,"fromCol":2,"toRow":4,"toCol":4}`, nil))
	assert.Equal(t, fiber.StatusBadRequest,
		doJSON(t, app, http.MethodPost, base+"/move", "alice", `not json`, nil))

	var state model.GameState
	require.Equal(t, fiber.StatusOK,
		doJSON(t, app, http.MethodPost, base+"/move", "alice", `{"fromRow":2,"fromCol":2,"toRow":3,"toCol":3}`, &state))
	assert.Equal(t, model.PlayerColorLight, state.ToMove)
	require.NotNil(t, state.Board.Board[3][3])
	assert.Equal(t, model.PlayerColorDark, state.Board.Board[3][3].Color)
	assert.Nil(t, state.Board.Board[2][2])

	require.Equal(t, fiber.StatusOK, doJSON(t, app, http.MethodGet, base, "carol", "", &state))
	assert.Len(t, state.MoveHistory, 1)

	assert.Equal(t, fiber.StatusForbidden, doJSON(t, app, http.MethodPost, base+"/resign", "carol", "", nil))
	require.Equal(t, fiber.StatusOK, doJSON(t, app, http.MethodPost, base+"/resign", "bob", "", nil))
	require.Equal(t, fiber.StatusOK, doJSON(t, app, http.MethodGet, base, "alice", "", &state))
	require.NotNil(t, state.Winner)
	assert.Equal(t, model.PlayerColorDark, *state.Winner)
}

func TestSeatsSurviveLaterRequests(t *testing.T) {
	app, gm := newTestApp()
	require.NoError(t, gm.CreateGame("g1"))

	require.Equal(t, fiber.StatusOK, doJSON(t, app, http.MethodPost, "/api/game/join/g1", "alice", "", nil))
	require.Equal(t, fiber.StatusOK, doJSON(t, app, http.MethodPost, "/api/game/join/g1", "bobby", "", nil))
	require.Equal(t, fiber.StatusOK, doJSON(t, app, http.MethodGet, "/api/game/g1", "zzzzz", "", nil))
	require.Equal(t, fiber.StatusOK, doJSON(t, app, http.MethodGet, "/api/game/g1?playerId=yyyyy", "", "", nil))

	game, err := gm.GetGame("g1")
	require.NoError(t, err)
	assert.True(t, game.IsPlayerInGame("alice"))
	assert.True(t, game.IsPlayerInGame("bobby"))
	assert.False(t, game.IsPlayerInGame("zzzzz"))
	assert.False(t, game.IsPlayerInGame("yyyyy"))

	state := game.GetState()
	assert.Equal(t, "alice", state.Players.Dark.ID)
	assert.Equal(t, "bobby", state.Players.Light.ID)

	assert.Equal(t, fiber.StatusConflict, doJSON(t, app, http.MethodPost, "/api/game/join/g1", "zzzzz", "", nil))
	assert.Equal(t, fiber.StatusForbidden, doJSON(t, app, http.MethodPost, "/api/game/g1/resign", "zzzzz", "", nil))
}

func TestUnknownGameIsNotFound(t *testing.T) {
	app, _ := newTestApp()
	assert.Equal(t, fiber.StatusNotFound, doJSON(t, app, http.MethodGet, "/api/game/nope", "alice", "", nil))
	assert.Equal(t, fiber.StatusNotFound, doJSON(t, app, http.MethodPost, "/api/game/join/nope", "alice", "", nil))
}

func TestMatchmakingOverREST(t *testing.T) {
	app, gm := newTestApp()

	var body map[string]interface{}
	require.Equal(t, fiber.StatusOK, doJSON(t, app, http.MethodPost, "/api/game/matchmaking/join", "alice", "", &body))
	assert.Equal(t, "queued", body["status"])
	assert.Equal(t, fiber.StatusConflict, doJSON(t, app, http.MethodPost, "/api/game/matchmaking/join", "alice", "", nil))

	require.Equal(t, fiber.StatusOK, doJSON(t, app, http.MethodGet, "/api/game/matchmaking/status", "alice", "", &body))
	assert.Equal(t, "searching", body["status"])

	require.Equal(t, fiber.StatusOK, doJSON(t, app, http.MethodDelete, "/api/game/matchmaking/leave", "alice", "", nil))
	assert.Equal(t, fiber.StatusNotFound, doJSON(t, app, http.MethodDelete, "/api/game/matchmaking/leave", "alice", "", nil))

	require.NoError(t, gm.JoinMatchmaking("alice"))
	require.NoError(t, gm.JoinMatchmaking("bob"))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go gm.Run(ctx, 5*time.Millisecond)
	require.Eventually(t, func() bool {
		_, err := gm.MatchFor("bob")
		return err == nil
	}, time.Second, 5*time.Millisecond)

	var matched struct {
		Status string                `json:"status"`
		Match  model.MatchFoundEvent `json:"match"`
	}
	require.Equal(t, fiber.StatusOK, doJSON(t, app, http.MethodGet, "/api/game/matchmaking/status", "bob", "", &matched))
	assert.Equal(t, "matched", matched.Status)
	assert.Equal(t, model.PlayerColorLight, matched.Match.Color)
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, log.LevelDebug, ParseLogLevel("DEBUG"))
	assert.Equal(t, log.LevelWarn, ParseLogLevel("warning"))
	assert.Equal(t, log.LevelInfo, ParseLogLevel(""))
}
