package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/rocketscienceinc/capycorgi-backend/internal/entity"
)

type gameUseCase interface {
	CreateGame(ctx context.Context, playerID string) (*entity.Game, error)
	JoinGame(ctx context.Context, code, playerID string) (*entity.Game, error)
	GetGameByCode(ctx context.Context, code string) (*entity.Game, error)
	MakeMove(ctx context.Context, gameID, playerID string, cell int) (*entity.Game, error)
	Undo(ctx context.Context, gameID, playerID string) (*entity.Game, error)
}

type Server struct {
	logger *slog.Logger
	echo   *echo.Echo
}

// New builds the HTTP API. allowedOrigins enables CORS for browser clients; empty disables it.
func New(logger *slog.Logger, games gameUseCase, allowedOrigins []string) *Server {
	log := logger.With("component", "rest")

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = newRequestValidator()
	e.HTTPErrorHandler = httpErrorHandler(log)

	e.Use(middleware.Recover())
	e.Use(requestLogger(log))

	if len(allowedOrigins) > 0 {
		e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins: allowedOrigins,
			AllowMethods: []string{http.MethodGet, http.MethodPost},
		}))
	}

	e.GET("/ping", ping)

	handler := newGameHandler(log, games)

	api := e.Group("/api/games")
	api.POST("", handler.Create)
	api.POST("/join", handler.Join)
	api.GET("/:code", handler.Get)
	api.POST("/:id/move", handler.Move)
	api.POST("/:id/undo", handler.Undo)

	return &Server{
		logger: log,
		echo:   e,
	}
}

// ServeHTTP lets the server be mounted in tests and other muxes.
func (that *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	that.echo.ServeHTTP(w, r)
}

// Start blocks until the server is shut down.
func (that *Server) Start(port string) error {
	that.echo.Server.ReadTimeout = 10 * time.Second
	that.echo.Server.WriteTimeout = 10 * time.Second
	that.echo.Server.IdleTimeout = 30 * time.Second

	if err := that.echo.Start(":" + port); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

func (that *Server) Shutdown(ctx context.Context) error {
	if err := that.echo.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	return nil
}

func requestLogger(log *slog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogError:   true,
		LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
			}

			if v.Error != nil {
				log.Warn("request failed", append(attrs, "error", v.Error)...)
				return nil
			}

			log.Debug("request", attrs...)

			return nil
		},
	})
}
