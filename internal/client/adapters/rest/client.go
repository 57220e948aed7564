// Package rest реализует порты backend API поверх HTTP.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"quizdeck/internal/client/config"
	"quizdeck/internal/client/domain/entities"
	tokensPorts "quizdeck/internal/client/ports/tokens"
	"quizdeck/internal/client/resilience"
)

// Пути endpoint'ов backend'а.
const (
	pathLogin    = "/auth/login/"
	pathRegister = "/auth/register/"
	pathRefresh  = "/auth/refresh/"
	pathProfile  = "/user/profile/"
)

const maxErrorBodyBytes = 4 << 10

// Client - клиент backend API. Все запросы проходят через authTransport
// и Circuit Breaker; реализует порты api.AuthAPI, api.QuizAPI и api.AdminAPI.
type Client struct {
	baseURL    string
	httpClient *http.Client
	store      tokensPorts.Store
	source     *tokenSource
	breaker    *resilience.Breaker
}

// New создает клиент backend API поверх данного хранилища токенов.
func New(cfg *config.APIConfig, store tokensPorts.Store) *Client {
	bare := &http.Client{Timeout: cfg.Timeout}

	source := &tokenSource{
		store:      store,
		refreshURL: cfg.GetBaseURL() + pathRefresh,
		client:     bare,
	}

	return &Client{
		baseURL: cfg.GetBaseURL(),
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &authTransport{
				base:   http.DefaultTransport,
				source: source,
			},
		},
		store:   store,
		source:  source,
		breaker: resilience.NewBreaker("quiz-api", resilience.DefaultConfig()),
	}
}

// do выполняет запрос к backend'у и декодирует ответ в out.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set(headerContentType, contentTypeJSON)
	}

	var resp *http.Response
	var sessionErr error
	err = c.breaker.Execute(ctx, func() error {
		var doErr error
		resp, doErr = c.httpClient.Do(req) //nolint:bodyclose // closed below
		if doErr == nil {
			return nil
		}
		// Завершение сессии не является отказом backend'а и не размыкает цепь.
		if errors.Is(doErr, entities.ErrSessionExpired) {
			sessionErr = entities.ErrSessionExpired
			return nil
		}
		return doErr
	})
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	if sessionErr != nil {
		return sessionErr
	}
	defer drainBody(resp)

	if resp.StatusCode >= http.StatusBadRequest {
		return statusError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// statusError отображает HTTP статусы на ошибки клиента.
// errBadRequest помечает ответы 400: смысл зависит от эндпоинта,
// поэтому в доменную ошибку их переводит вызывающий.
var errBadRequest = errors.New("bad request")

func statusError(resp *http.Response) error {
	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))

	switch resp.StatusCode {
	case http.StatusBadRequest:
		return fmt.Errorf("%w: %s", errBadRequest, bytes.TrimSpace(snippet))
	case http.StatusUnauthorized:
		// Сюда попадает только повторный 401 после цикла обновления.
		return fmt.Errorf("%w: %s", entities.ErrAuthExpired, bytes.TrimSpace(snippet))
	case http.StatusForbidden:
		return fmt.Errorf("%w: %s", entities.ErrForbidden, bytes.TrimSpace(snippet))
	case http.StatusNotFound:
		return entities.ErrNotFound
	default:
		return fmt.Errorf("backend returned %d: %s", resp.StatusCode, bytes.TrimSpace(snippet))
	}
}

// results принимает и пагинированный конверт {"results": [...]}, и «голый» массив.
type results[T any] struct {
	Items []T
}

// UnmarshalJSON реализует json.Unmarshaler.
func (r *results[T]) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var envelope struct {
			Results []T `json:"results"`
		}
		if err := json.Unmarshal(trimmed, &envelope); err != nil {
			return err
		}
		r.Items = envelope.Results
		return nil
	}
	return json.Unmarshal(trimmed, &r.Items)
}
