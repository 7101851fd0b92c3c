package rest

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rocketscienceinc/capycorgi-backend/internal/apperror"
)

type errorResponse struct {
	Message string        `json:"message"`
	Code    apperror.Code `json:"code"`
}

// domainErrors are the rejections whose own text is shown to players.
var domainErrors = []error{
	apperror.ErrNotFound,
	apperror.ErrRoomFull,
	apperror.ErrUnauthorized,
	apperror.ErrGameFinished,
	apperror.ErrNotYourTurn,
	apperror.ErrCellOccupied,
	apperror.ErrNothingToUndo,
	apperror.ErrInvalidCell,
	apperror.ErrConflict,
}

func statusOf(code apperror.Code) int {
	switch code {
	case apperror.CodeNotFound:
		return http.StatusNotFound
	case apperror.CodeConflict:
		return http.StatusConflict
	case apperror.CodeInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}

func toErrorResponse(err error) (int, errorResponse) {
	code := apperror.CodeOf(err)

	response := errorResponse{Code: code, Message: "internal server error"}

	switch {
	case code == apperror.CodeInternal:
	case errors.Is(err, apperror.ErrInvalidRequest):
		response.Message = err.Error()
	default:
		for _, known := range domainErrors {
			if errors.Is(err, known) {
				response.Message = known.Error()
				break
			}
		}
	}

	return statusOf(code), response
}

func writeError(ctx echo.Context, err error) error {
	status, response := toErrorResponse(err)

	return ctx.JSON(status, response)
}

// httpErrorHandler renders router level errors (unknown route, bad method, panics) in the same shape.
func httpErrorHandler(log *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		if ctx.Response().Committed {
			return
		}

		var httpErr *echo.HTTPError
		if errors.As(err, &httpErr) {
			response := errorResponse{Code: apperror.CodeInvalidRequest, Message: http.StatusText(httpErr.Code)}

			switch {
			case httpErr.Code == http.StatusNotFound:
				response.Code = apperror.CodeNotFound
			case httpErr.Code >= http.StatusInternalServerError:
				response.Code = apperror.CodeInternal
			}

			if err = ctx.JSON(httpErr.Code, response); err != nil {
				log.Error("failed to write error response", "error", err)
			}

			return
		}

		log.Error("unhandled error", "error", err)

		if err = writeError(ctx, err); err != nil {
			log.Error("failed to write error response", "error", err)
		}
	}
}
