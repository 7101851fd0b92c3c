package rest

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rocketscienceinc/capycorgi-backend/internal/apperror"
)

type createRequest struct {
	PlayerID string `json:"playerId" validate:"required"`
}

type joinRequest struct {
	RoomCode string `json:"roomCode" validate:"required"`
	PlayerID string `json:"playerId" validate:"required"`
}

type moveRequest struct {
	PlayerID string `json:"playerId" validate:"required"`
	Index    *int   `json:"index" validate:"required,min=0,max=8"`
}

type undoRequest struct {
	PlayerID string `json:"playerId" validate:"required"`
}

type gameHandler struct {
	logger *slog.Logger
	games  gameUseCase
}

func newGameHandler(logger *slog.Logger, games gameUseCase) *gameHandler {
	return &gameHandler{
		logger: logger,
		games:  games,
	}
}

func (that *gameHandler) Create(ctx echo.Context) error {
	var request createRequest
	if err := bindRequest(ctx, &request); err != nil {
		return writeError(ctx, err)
	}

	game, err := that.games.CreateGame(ctx.Request().Context(), request.PlayerID)
	if err != nil {
		return that.fail(ctx, "Create", err)
	}

	return ctx.JSON(http.StatusCreated, game)
}

func (that *gameHandler) Join(ctx echo.Context) error {
	var request joinRequest
	if err := bindRequest(ctx, &request); err != nil {
		return writeError(ctx, err)
	}

	game, err := that.games.JoinGame(ctx.Request().Context(), request.RoomCode, request.PlayerID)
	if err != nil {
		return that.fail(ctx, "Join", err)
	}

	return ctx.JSON(http.StatusOK, game)
}

func (that *gameHandler) Get(ctx echo.Context) error {
	game, err := that.games.GetGameByCode(ctx.Request().Context(), ctx.Param("code"))
	if err != nil {
		return that.fail(ctx, "Get", err)
	}

	return ctx.JSON(http.StatusOK, game)
}

func (that *gameHandler) Move(ctx echo.Context) error {
	var request moveRequest
	if err := bindRequest(ctx, &request); err != nil {
		return writeError(ctx, err)
	}

	game, err := that.games.MakeMove(ctx.Request().Context(), ctx.Param("id"), request.PlayerID, *request.Index)
	if err != nil {
		return that.fail(ctx, "Move", err)
	}

	return ctx.JSON(http.StatusOK, game)
}

func (that *gameHandler) Undo(ctx echo.Context) error {
	var request undoRequest
	if err := bindRequest(ctx, &request); err != nil {
		return writeError(ctx, err)
	}

	game, err := that.games.Undo(ctx.Request().Context(), ctx.Param("id"), request.PlayerID)
	if err != nil {
		return that.fail(ctx, "Undo", err)
	}

	return ctx.JSON(http.StatusOK, game)
}

// fail logs unexpected errors and writes the error body.
func (that *gameHandler) fail(ctx echo.Context, method string, err error) error {
	if apperror.CodeOf(err) == apperror.CodeInternal {
		that.logger.With("method", method).Error("request failed", "error", err)
	}

	return writeError(ctx, err)
}

func bindRequest(ctx echo.Context, request any) error {
	if err := (&echo.DefaultBinder{}).BindBody(ctx, request); err != nil {
		return fmt.Errorf("%w: malformed body", apperror.ErrInvalidRequest)
	}

	return ctx.Validate(request)
}
