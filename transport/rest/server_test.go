package rest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/capycorgi-backend/internal/apperror"
	"github.com/rocketscienceinc/capycorgi-backend/internal/entity"
	"github.com/rocketscienceinc/capycorgi-backend/internal/repository"
	"github.com/rocketscienceinc/capycorgi-backend/internal/usecase"
)

func newTestServer(opts ...usecase.Option) *Server {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	games := usecase.NewGameManager(logger, repository.NewMemoryGameRepository(), opts...)

	return New(logger, games, []string{"https://capycorgi.example"})
}

func do(t *testing.T, server http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	request := httptest.NewRequest(method, path, reader)
	if body != "" {
		request.Header.Set("Content-Type", "application/json")
	}

	recorder := httptest.NewRecorder()
	server.ServeHTTP(recorder, request)

	return recorder
}

func decodeGame(t *testing.T, recorder *httptest.ResponseRecorder) *entity.Game {
	t.Helper()

	var game entity.Game
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &game))

	return &game
}

func decodeError(t *testing.T, recorder *httptest.ResponseRecorder) errorResponse {
	t.Helper()

	var response errorResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))

	return response
}

func codeOnce(code string) usecase.Option {
	return usecase.WithRoomCodeGenerator(func() (string, error) {
		return code, nil
	})
}

func TestPing(t *testing.T) {
	server := newTestServer()

	recorder := do(t, server, http.MethodGet, "/ping", "")

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "pong", recorder.Body.String())
}

func TestGameAPI(t *testing.T) {
	t.Run("Create returns 201 with the record", func(t *testing.T) {
		server := newTestServer(codeOnce("AB12"))

		recorder := do(t, server, http.MethodPost, "/api/games", `{"playerId":"host-a"}`)

		require.Equal(t, http.StatusCreated, recorder.Code)

		var raw map[string]any
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &raw))
		assert.Equal(t, "AB12", raw["roomCode"])
		assert.Equal(t, "X", raw["turn"])
		assert.Nil(t, raw["winner"])
		assert.Nil(t, raw["playerO"])
		assert.Equal(t, "host-a", raw["playerX"])
		assert.Len(t, raw["state"], 9)
		assert.NotContains(t, raw, "version")
	})

	t.Run("Create without a player id is a bad request", func(t *testing.T) {
		server := newTestServer()

		recorder := do(t, server, http.MethodPost, "/api/games", `{}`)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.Equal(t, apperror.CodeInvalidRequest, decodeError(t, recorder).Code)
	})

	t.Run("Malformed JSON is a bad request", func(t *testing.T) {
		server := newTestServer()

		recorder := do(t, server, http.MethodPost, "/api/games", `{"playerId":`)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.Equal(t, apperror.CodeInvalidRequest, decodeError(t, recorder).Code)
	})

	t.Run("Full remote game over HTTP", func(t *testing.T) {
		server := newTestServer(codeOnce("AB12"))

		// Given: a room created by A and joined by B
		created := decodeGame(t, do(t, server, http.MethodPost, "/api/games", `{"playerId":"host-a"}`))

		recorder := do(t, server, http.MethodPost, "/api/games/join", `{"roomCode":"ab12","playerId":"host-b"}`)
		require.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, entity.PlayerID("host-b"), decodeGame(t, recorder).PlayerO)

		movePath := "/api/games/" + created.ID + "/move"

		// When: A plays 0 and B tries the same cell
		recorder = do(t, server, http.MethodPost, movePath, `{"playerId":"host-a","index":0}`)
		require.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, entity.MarkO, decodeGame(t, recorder).Turn)

		recorder = do(t, server, http.MethodPost, movePath, `{"playerId":"host-b","index":0}`)

		// Then: the second move is rejected as occupied
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.Equal(t, errorResponse{Message: "cell is already occupied", Code: apperror.CodeCellOccupied}, decodeError(t, recorder))

		// When: play continues to a win for X
		for _, move := range []string{
			`{"playerId":"host-b","index":4}`,
			`{"playerId":"host-a","index":1}`,
			`{"playerId":"host-b","index":3}`,
			`{"playerId":"host-a","index":2}`,
		} {
			recorder = do(t, server, http.MethodPost, movePath, move)
			require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())
		}

		// Then: the fetched record reports the winner and line
		recorder = do(t, server, http.MethodGet, "/api/games/AB12", "")
		require.Equal(t, http.StatusOK, recorder.Code)

		finished := decodeGame(t, recorder)
		assert.Equal(t, entity.OutcomeX, finished.Winner)
		assert.Equal(t, []int{0, 1, 2}, finished.WinningLine)

		// And: further moves are refused
		recorder = do(t, server, http.MethodPost, movePath, `{"playerId":"host-b","index":8}`)
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.Equal(t, apperror.CodeGameOver, decodeError(t, recorder).Code)

		// And: undo reopens the game
		recorder = do(t, server, http.MethodPost, "/api/games/"+created.ID+"/undo", `{"playerId":"host-b"}`)
		require.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, entity.OutcomeNone, decodeGame(t, recorder).Winner)
	})

	t.Run("Third player gets ROOM_FULL", func(t *testing.T) {
		server := newTestServer(codeOnce("AB12"))
		do(t, server, http.MethodPost, "/api/games", `{"playerId":"host-a"}`)
		do(t, server, http.MethodPost, "/api/games/join", `{"roomCode":"AB12","playerId":"host-b"}`)

		recorder := do(t, server, http.MethodPost, "/api/games/join", `{"roomCode":"AB12","playerId":"host-c"}`)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.Equal(t, errorResponse{Message: "room is full", Code: apperror.CodeRoomFull}, decodeError(t, recorder))
	})

	t.Run("Unknown room is 404", func(t *testing.T) {
		server := newTestServer()

		recorder := do(t, server, http.MethodGet, "/api/games/ZZZZ", "")
		assert.Equal(t, http.StatusNotFound, recorder.Code)
		assert.Equal(t, apperror.CodeNotFound, decodeError(t, recorder).Code)

		recorder = do(t, server, http.MethodPost, "/api/games/join", `{"roomCode":"ZZZZ","playerId":"host-b"}`)
		assert.Equal(t, http.StatusNotFound, recorder.Code)

		recorder = do(t, server, http.MethodPost, "/api/games/missing/move", `{"playerId":"host-b","index":1}`)
		assert.Equal(t, http.StatusNotFound, recorder.Code)

		recorder = do(t, server, http.MethodPost, "/api/games/missing/undo", `{"playerId":"host-b"}`)
		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})

	t.Run("Move index is validated", func(t *testing.T) {
		server := newTestServer(codeOnce("AB12"))
		created := decodeGame(t, do(t, server, http.MethodPost, "/api/games", `{"playerId":"host-a"}`))
		movePath := "/api/games/" + created.ID + "/move"

		for _, body := range []string{
			`{"playerId":"host-a"}`,
			`{"playerId":"host-a","index":9}`,
			`{"playerId":"host-a","index":-1}`,
		} {
			recorder := do(t, server, http.MethodPost, movePath, body)

			assert.Equal(t, http.StatusBadRequest, recorder.Code, body)
			assert.Equal(t, apperror.CodeInvalidRequest, decodeError(t, recorder).Code, body)
		}

		// And: index 0 is a valid move
		recorder := do(t, server, http.MethodPost, movePath, `{"playerId":"host-a","index":0}`)
		assert.Equal(t, http.StatusOK, recorder.Code)
	})

	t.Run("Stranger move is unauthorized", func(t *testing.T) {
		server := newTestServer(codeOnce("AB12"))
		created := decodeGame(t, do(t, server, http.MethodPost, "/api/games", `{"playerId":"host-a"}`))

		recorder := do(t, server, http.MethodPost, "/api/games/"+created.ID+"/move", `{"playerId":"stranger","index":4}`)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.Equal(t, apperror.CodeUnauthorized, decodeError(t, recorder).Code)

		fetched := decodeGame(t, do(t, server, http.MethodGet, "/api/games/AB12", ""))
		assert.Equal(t, entity.Board{}, fetched.State)
	})

	t.Run("Undo on a fresh board is NOTHING_TO_UNDO", func(t *testing.T) {
		server := newTestServer(codeOnce("AB12"))
		created := decodeGame(t, do(t, server, http.MethodPost, "/api/games", `{"playerId":"host-a"}`))

		recorder := do(t, server, http.MethodPost, "/api/games/"+created.ID+"/undo", `{"playerId":"host-a"}`)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.Equal(t, apperror.CodeNothingToUndo, decodeError(t, recorder).Code)
	})

	t.Run("CORS headers for allowed origins", func(t *testing.T) {
		server := newTestServer()

		request := httptest.NewRequest(http.MethodOptions, "/api/games", nil)
		request.Header.Set("Origin", "https://capycorgi.example")
		request.Header.Set("Access-Control-Request-Method", http.MethodPost)

		recorder := httptest.NewRecorder()
		server.ServeHTTP(recorder, request)

		assert.Equal(t, "https://capycorgi.example", recorder.Header().Get("Access-Control-Allow-Origin"))
	})
}

type failingGames struct {
	*usecase.GameManager
}

func (failingGames) GetGameByCode(context.Context, string) (*entity.Game, error) {
	return nil, errors.New("redis down")
}

func TestGameAPI_InternalErrors(t *testing.T) {
	// Given: a use case whose store is broken
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	server := New(logger, failingGames{}, nil)

	// When: a record is fetched
	recorder := do(t, server, http.MethodGet, "/api/games/AB12", "")

	// Then: the cause is not leaked
	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.Equal(t, errorResponse{Message: "internal server error", Code: apperror.CodeInternal}, decodeError(t, recorder))
}

func TestToErrorResponse(t *testing.T) {
	status, response := toErrorResponse(apperror.ErrConflict)

	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, apperror.CodeConflict, response.Code)
}

func TestRequestValidator(t *testing.T) {
	validate := newRequestValidator()

	err := validate.Validate(&joinRequest{PlayerID: "host-b"})

	require.ErrorIs(t, err, apperror.ErrInvalidRequest)
	assert.Contains(t, err.Error(), "roomCode failed on required")
}
