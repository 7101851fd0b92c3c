package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rocketscienceinc/capycorgi-backend/internal/apperror"
	"github.com/rocketscienceinc/capycorgi-backend/internal/entity"
)

const defaultTimeout = 10 * time.Second

// ErrTransport marks failures to reach the server or to read its answer.
var ErrTransport = errors.New("transport failure")

// APIError is an error answer from the server. It unwraps to the matching apperror sentinel.
type APIError struct {
	Status  int           `json:"-"`
	Code    apperror.Code `json:"code"`
	Message string        `json:"message"`
}

func (that *APIError) Error() string {
	return fmt.Sprintf("%s (%d %s)", that.Message, that.Status, that.Code)
}

func (that *APIError) Unwrap() error {
	return apperror.FromCode(that.Code)
}

// IsRetryable reports whether repeating the request may succeed.
func IsRetryable(err error) bool {
	if errors.Is(err, ErrTransport) {
		return true
	}

	var apiErr *APIError

	return errors.As(err, &apiErr) && apiErr.Status >= http.StatusInternalServerError
}

// Client talks to the game API on behalf of one player.
type Client struct {
	baseURL    string
	playerID   string
	httpClient *http.Client
}

type Option func(*Client)

func WithHTTPClient(httpClient *http.Client) Option {
	return func(that *Client) {
		that.httpClient = httpClient
	}
}

func New(baseURL, playerID string, opts ...Option) *Client {
	client := &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		playerID: playerID,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

func (that *Client) PlayerID() string {
	return that.playerID
}

// Role describes this client's player in game.
func (that *Client) Role(game *entity.Game) entity.Role {
	return game.RoleOf(that.playerID)
}

// Create opens a room hosted by this player.
func (that *Client) Create(ctx context.Context) (*entity.Game, error) {
	return that.send(ctx, http.MethodPost, "/api/games", map[string]any{
		"playerId": that.playerID,
	})
}

func (that *Client) Join(ctx context.Context, roomCode string) (*entity.Game, error) {
	return that.send(ctx, http.MethodPost, "/api/games/join", map[string]any{
		"roomCode": roomCode,
		"playerId": that.playerID,
	})
}

// Fetch reads the record behind roomCode. A missing room is reported as found == false with no error.
func (that *Client) Fetch(ctx context.Context, roomCode string) (*entity.Game, bool, error) {
	game, err := that.send(ctx, http.MethodGet, "/api/games/"+url.PathEscape(roomCode), nil)
	if errors.Is(err, apperror.ErrNotFound) {
		return nil, false, nil
	}

	if err != nil {
		return nil, false, err
	}

	return game, true, nil
}

func (that *Client) Move(ctx context.Context, gameID string, index int) (*entity.Game, error) {
	return that.send(ctx, http.MethodPost, "/api/games/"+url.PathEscape(gameID)+"/move", map[string]any{
		"playerId": that.playerID,
		"index":    index,
	})
}

func (that *Client) Undo(ctx context.Context, gameID string) (*entity.Game, error) {
	return that.send(ctx, http.MethodPost, "/api/games/"+url.PathEscape(gameID)+"/undo", map[string]any{
		"playerId": that.playerID,
	})
}

func (that *Client) send(ctx context.Context, method, path string, body map[string]any) (*entity.Game, error) {
	var reader io.Reader

	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}

		reader = bytes.NewReader(payload)
	}

	request, err := http.NewRequestWithContext(ctx, method, that.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	request.Header.Set("Accept", "application/json")
	if body != nil {
		request.Header.Set("Content-Type", "application/json")
	}

	response, err := that.httpClient.Do(request)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer response.Body.Close()

	payload, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %w", ErrTransport, err)
	}

	if response.StatusCode >= http.StatusBadRequest {
		return nil, decodeAPIError(response.StatusCode, payload)
	}

	var game entity.Game
	if err = json.Unmarshal(payload, &game); err != nil {
		return nil, fmt.Errorf("%w: malformed record: %w", ErrTransport, err)
	}

	return &game, nil
}

func decodeAPIError(status int, payload []byte) error {
	apiErr := &APIError{Status: status}

	if err := json.Unmarshal(payload, apiErr); err != nil || apiErr.Code == "" {
		if status == http.StatusNotFound {
			apiErr.Code = apperror.CodeNotFound
		} else if status >= http.StatusInternalServerError {
			apiErr.Code = apperror.CodeInternal
		}
	}

	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(status)
	}

	return apiErr
}
