package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"go.uber.org/zap"

	"quizdeck/internal/client/domain/entities"
	tokensPorts "quizdeck/internal/client/ports/tokens"
	"quizdeck/pkg/logger"
)

// HTTP заголовки исходящих запросов.
const (
	headerAuthorization = "Authorization"
	headerContentType   = "Content-Type"
	headerRequestID     = "X-Request-ID"

	bearerPrefix    = "Bearer "
	contentTypeJSON = "application/json"
)

// Константы для логирования.
const (
	LogTokenRefresh          = "refreshing access token" // nolint:gosec
	LogTokenRefreshCoalesced = "access token already refreshed by concurrent request"
	LogRetryAfterRefresh     = "retrying request with refreshed token"

	ErrorRefreshFailed   = "token refresh rejected by backend"
	ErrorRefreshNetwork  = "token refresh request failed"
	ErrorBodyNotReplayed = "request body cannot be replayed, skipping retry"
)

// Пути, не требующие bearer-токена.
var exemptSuffixes = []string{
	"/auth/login/",
	"/auth/register/",
	"/auth/refresh/",
}

func isExemptPath(path string) bool {
	for _, suffix := range exemptSuffixes {
		if strings.HasSuffix(path, suffix) {
			return true
		}
	}
	return false
}

// tokenSource выдает access токен для исходящих запросов и выполняет его
// обновление. Запрос обновления идет по отдельному транспорту, минуя
// authTransport, чтобы протокол гарантированно завершался без рекурсии.
// Одновременные обновления коалесцируются мьютексом.
type tokenSource struct {
	store      tokensPorts.Store
	refreshURL string
	client     *http.Client

	mu sync.Mutex
}

// accessToken возвращает текущий access токен; пустая строка означает
// отсутствие сессии. Ошибки хранилища трактуются как отсутствие токена.
func (s *tokenSource) accessToken(ctx context.Context) string {
	pair, ok, err := s.store.Load(ctx)
	if err != nil || !ok {
		return ""
	}
	return pair.AccessToken
}

// refreshAccess обменивает refresh токен на новый access токен.
// staleAccess - токен, получивший 401; если в хранилище уже лежит другой
// access токен, параллельный запрос успел обновиться, и результат переиспользуется.
// Любая неудача обновления очищает хранилище и завершает сессию.
func (s *tokenSource) refreshAccess(ctx context.Context, staleAccess string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	log := logger.Log(ctx)

	pair, ok, err := s.store.Load(ctx)
	if err != nil || !ok {
		return "", entities.ErrSessionExpired
	}
	if pair.AccessToken != staleAccess {
		log.Debug(ctx, LogTokenRefreshCoalesced)
		return pair.AccessToken, nil
	}

	log.Info(ctx, LogTokenRefresh)

	payload, err := json.Marshal(map[string]string{"refresh": pair.RefreshToken})
	if err != nil {
		return "", fmt.Errorf("failed to marshal refresh request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.refreshURL, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create refresh request: %w", err)
	}
	req.Header.Set(headerContentType, contentTypeJSON)

	resp, err := s.client.Do(req)
	if err != nil {
		log.Warn(ctx, ErrorRefreshNetwork, zap.Error(err))
		return "", s.expire(ctx)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		log.Warn(ctx, ErrorRefreshFailed, zap.Int("status", resp.StatusCode))
		return "", s.expire(ctx)
	}

	var refreshed struct {
		Access  string `json:"access"`
		Refresh string `json:"refresh,omitempty"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&refreshed); err != nil || refreshed.Access == "" {
		return "", s.expire(ctx)
	}

	pair.AccessToken = refreshed.Access
	if refreshed.Refresh != "" {
		pair.RefreshToken = refreshed.Refresh
	}
	if err := s.store.Save(ctx, pair); err != nil {
		return "", fmt.Errorf("failed to persist refreshed token: %w", err)
	}

	return pair.AccessToken, nil
}

// expire очищает хранилище и возвращает ErrSessionExpired.
func (s *tokenSource) expire(ctx context.Context) error {
	_ = s.store.Clear(ctx)
	return entities.ErrSessionExpired
}

// authTransport - единая точка выхода к backend'у: проставляет bearer-токен
// и идентификатор запроса, а на 401 выполняет не более одного цикла
// обновления и повтора. Повторный 401 возвращается вызывающему без изменений.
type authTransport struct {
	base   http.RoundTripper
	source *tokenSource
}

// RoundTrip реализует http.RoundTripper.
func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()

	requestID, ok := logger.GetRequestID(ctx)
	if !ok {
		requestID = logger.GenerateRequestID()
	}

	outgoing := req.Clone(ctx)
	outgoing.Header.Set(headerRequestID, requestID)

	if isExemptPath(req.URL.Path) {
		return t.base.RoundTrip(outgoing)
	}

	access := t.source.accessToken(ctx)
	if access != "" {
		outgoing.Header.Set(headerAuthorization, bearerPrefix+access)
	}

	resp, err := t.base.RoundTrip(outgoing)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusUnauthorized || access == "" {
		return resp, nil
	}

	// Тело исходного запроса нужно воспроизвести для повтора.
	if req.Body != nil && req.GetBody == nil {
		logger.Log(ctx).Warn(ctx, ErrorBodyNotReplayed)
		return resp, nil
	}

	drainBody(resp)

	refreshed, refreshErr := t.source.refreshAccess(ctx, access)
	if refreshErr != nil {
		return nil, refreshErr
	}

	logger.Log(ctx).Debug(ctx, LogRetryAfterRefresh)

	retry := req.Clone(ctx)
	retry.Header.Set(headerRequestID, requestID)
	retry.Header.Set(headerAuthorization, bearerPrefix+refreshed)
	if req.GetBody != nil {
		body, bodyErr := req.GetBody()
		if bodyErr != nil {
			return nil, fmt.Errorf("failed to rewind request body: %w", bodyErr)
		}
		retry.Body = body
	}

	return t.base.RoundTrip(retry)
}

// drainBody вычитывает и закрывает тело ответа для переиспользования соединения.
func drainBody(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}
