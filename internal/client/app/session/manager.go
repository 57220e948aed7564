// Package session управляет жизненным циклом пользовательской сессии:
// восстановление при старте, вход, выход и наблюдаемое состояние для
// фронтендов.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"quizdeck/internal/client/app/dto"
	"quizdeck/internal/client/domain/entities"
	"quizdeck/internal/client/ports/api"
	"quizdeck/internal/client/ports/tokens"
	"quizdeck/pkg/logger"
)

// Status описывает фазу жизненного цикла сессии.
type Status string

const (
	// StatusUnknown - менеджер создан, восстановление еще не запускалось.
	StatusUnknown Status = "unknown"
	// StatusRestoring - идет тихое восстановление по сохраненным токенам.
	StatusRestoring Status = "restoring"
	// StatusAuthenticated - профиль получен, сессия активна.
	StatusAuthenticated Status = "authenticated"
	// StatusAnonymous - сессии нет: токены отсутствуют или отвергнуты.
	StatusAnonymous Status = "anonymous"
)

const (
	msgRestoreStarted    = "session restore started"
	msgRestoreNoTokens   = "no stored tokens, session is anonymous"
	msgRestoreDone       = "session restored"
	msgRestoreDiscarded  = "stale restore result discarded"
	msgLoginDone         = "login succeeded"
	msgLoginDiscarded    = "stale login result discarded"
	msgLogoutDone        = "logout completed"
	msgTokensRejected    = "stored tokens rejected by backend"
	errFailedClearTokens = "failed to clear token store"
)

// Snapshot - неизменяемый срез состояния сессии, передаваемый наблюдателям.
type Snapshot struct {
	Status Status
	User   *entities.User
}

// Listener получает снимок состояния после каждого изменения сессии.
type Listener func(Snapshot)

// Manager владеет состоянием сессии. Все мутации сериализуются мьютексом;
// сетевые вызовы выполняются вне мьютекса, а устаревшие результаты
// отбрасываются по счетчику эпох, который увеличивает logout.
type Manager struct {
	auth  api.AuthAPI
	store tokens.Store

	mu        sync.Mutex
	status    Status
	user      *entities.User
	epoch     uint64
	listeners []Listener
}

// NewManager создает менеджер в состоянии StatusUnknown.
func NewManager(auth api.AuthAPI, store tokens.Store) *Manager {
	return &Manager{
		auth:   auth,
		store:  store,
		status: StatusUnknown,
	}
}

// OnChange регистрирует наблюдателя. Наблюдатель вызывается синхронно
// после каждого изменения состояния, вне мьютекса менеджера.
func (m *Manager) OnChange(fn Listener) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners = append(m.listeners, fn)
}

// Snapshot возвращает текущий срез состояния.
func (m *Manager) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Snapshot{Status: m.status, User: m.userCopy()}
}

// Status возвращает текущую фазу сессии.
func (m *Manager) Status() Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.status
}

// User возвращает копию профиля или nil, если сессия не активна.
func (m *Manager) User() *entities.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.status != StatusAuthenticated {
		return nil
	}
	return m.userCopy()
}

// IsAdmin сообщает, активна ли сессия администратора.
// До завершения восстановления всегда false.
func (m *Manager) IsAdmin() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.status == StatusAuthenticated && m.user != nil && m.user.IsAdmin()
}

// IsPlayer сообщает, активна ли сессия обычного игрока.
func (m *Manager) IsPlayer() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.status == StatusAuthenticated && m.user != nil && m.user.IsPlayer()
}

// Restore выполняет тихое восстановление сессии по сохраненным токенам.
// Без токенов в хранилище сетевых запросов не делается. Любая неудача
// загрузки профиля переводит сессию в StatusAnonymous и очищает
// хранилище; сетевые ошибки дополнительно возвращаются вызывающему.
func (m *Manager) Restore(ctx context.Context) (Snapshot, error) {
	logger.Log(ctx).Debug(ctx, msgRestoreStarted)

	m.mu.Lock()
	epoch := m.epoch
	m.setLocked(StatusRestoring, nil)
	m.mu.Unlock()
	m.notify()

	pair, ok, err := m.store.Load(ctx)
	if err != nil {
		snap := m.transition(epoch, StatusAnonymous, nil)
		return snap, fmt.Errorf("failed to load stored tokens: %w", err)
	}
	if !ok || !pair.Valid() {
		logger.Log(ctx).Info(ctx, msgRestoreNoTokens)
		return m.transition(epoch, StatusAnonymous, nil), nil
	}

	user, err := m.auth.Profile(ctx)
	if err != nil {
		if isAuthError(err) {
			logger.Log(ctx).Warn(ctx, msgTokensRejected, zap.Error(err))
			m.clearStore(ctx)
			return m.transition(epoch, StatusAnonymous, nil), nil
		}
		m.clearStore(ctx)
		snap := m.transition(epoch, StatusAnonymous, nil)
		return snap, fmt.Errorf("failed to restore session: %w", err)
	}

	snap := m.transition(epoch, StatusAuthenticated, user)
	if snap.Status != StatusAuthenticated {
		logger.Log(ctx).Debug(ctx, msgRestoreDiscarded)
		return snap, nil
	}

	logger.Log(ctx).Info(ctx, msgRestoreDone,
		zap.String("username", user.Username),
		zap.String("role", string(user.Role)))

	return snap, nil
}

// Login обменивает учетные данные на токены и загружает профиль.
// При неверных учетных данных хранилище токенов не меняется.
func (m *Manager) Login(ctx context.Context, username, password string) (Snapshot, error) {
	m.mu.Lock()
	epoch := m.epoch
	m.mu.Unlock()

	if _, err := m.auth.Login(ctx, username, password); err != nil {
		return m.Snapshot(), err
	}

	user, err := m.auth.Profile(ctx)
	if err != nil {
		return m.Snapshot(), fmt.Errorf("failed to load profile after login: %w", err)
	}

	snap := m.transition(epoch, StatusAuthenticated, user)
	if snap.Status != StatusAuthenticated {
		// Logout успел пройти во время входа: его решение окончательное.
		logger.Log(ctx).Debug(ctx, msgLoginDiscarded)
		m.clearStore(ctx)
		return snap, fmt.Errorf("login discarded: %w", entities.ErrNotAuthenticated)
	}

	logger.Log(ctx).Info(ctx, msgLoginDone, zap.String("username", user.Username))

	return snap, nil
}

// Register создает нового пользователя. Состояние сессии не меняется:
// backend не выдает токены при регистрации.
func (m *Manager) Register(ctx context.Context, req dto.RegisterRequest) (*dto.RegisterResponse, error) {
	return m.auth.Register(ctx, req)
}

// Logout очищает хранилище токенов и переводит сессию в StatusAnonymous.
// Увеличение эпохи отбрасывает результаты запросов, начатых до выхода.
func (m *Manager) Logout(ctx context.Context) error {
	m.mu.Lock()
	m.epoch++
	m.setLocked(StatusAnonymous, nil)
	m.mu.Unlock()
	m.notify()

	m.clearStore(ctx)
	logger.Log(ctx).Info(ctx, msgLogoutDone)

	return nil
}

// RefreshProfile перечитывает профиль с backend'а. Вне активной сессии
// это no-op.
func (m *Manager) RefreshProfile(ctx context.Context) (Snapshot, error) {
	m.mu.Lock()
	if m.status != StatusAuthenticated {
		snap := Snapshot{Status: m.status, User: m.userCopy()}
		m.mu.Unlock()
		return snap, nil
	}
	epoch := m.epoch
	m.mu.Unlock()

	user, err := m.auth.Profile(ctx)
	if err != nil {
		if isAuthError(err) {
			m.clearStore(ctx)
			return m.transition(epoch, StatusAnonymous, nil), nil
		}
		return m.Snapshot(), fmt.Errorf("failed to refresh profile: %w", err)
	}

	return m.transition(epoch, StatusAuthenticated, user), nil
}

// UpdateUser применяет частичное обновление к профилю в памяти, например
// после начисления очков. Вне активной сессии это no-op.
func (m *Manager) UpdateUser(patch dto.UserPatch) Snapshot {
	m.mu.Lock()
	if m.status != StatusAuthenticated || m.user == nil {
		snap := Snapshot{Status: m.status, User: m.userCopy()}
		m.mu.Unlock()
		return snap
	}

	if patch.TotalPoints != nil {
		m.user.TotalPoints = *patch.TotalPoints
	}
	if patch.Badges != nil {
		m.user.Badges = append([]string(nil), patch.Badges...)
	}
	if patch.AvatarURL != nil {
		m.user.AvatarURL = *patch.AvatarURL
	}
	if patch.Bio != nil {
		m.user.Bio = *patch.Bio
	}

	snap := Snapshot{Status: m.status, User: m.userCopy()}
	m.mu.Unlock()
	m.notify()

	return snap
}

// transition применяет результат сетевого вызова, если за время вызова не
// было logout. При смене эпохи текущее состояние возвращается как есть.
func (m *Manager) transition(epoch uint64, status Status, user *entities.User) Snapshot {
	m.mu.Lock()
	if m.epoch != epoch {
		snap := Snapshot{Status: m.status, User: m.userCopy()}
		m.mu.Unlock()
		return snap
	}
	m.setLocked(status, user)
	snap := Snapshot{Status: m.status, User: m.userCopy()}
	m.mu.Unlock()
	m.notify()

	return snap
}

func (m *Manager) setLocked(status Status, user *entities.User) {
	m.status = status
	m.user = user
}

func (m *Manager) userCopy() *entities.User {
	if m.user == nil {
		return nil
	}
	u := *m.user
	u.Badges = append([]string(nil), m.user.Badges...)
	return &u
}

func (m *Manager) notify() {
	m.mu.Lock()
	listeners := append([]Listener(nil), m.listeners...)
	snap := Snapshot{Status: m.status, User: m.userCopy()}
	m.mu.Unlock()

	for _, fn := range listeners {
		fn(snap)
	}
}

func (m *Manager) clearStore(ctx context.Context) {
	if err := m.store.Clear(ctx); err != nil {
		logger.Log(ctx).Error(ctx, errFailedClearTokens, zap.Error(err))
	}
}

func isAuthError(err error) bool {
	return errors.Is(err, entities.ErrAuthExpired) ||
		errors.Is(err, entities.ErrSessionExpired) ||
		errors.Is(err, entities.ErrNotAuthenticated)
}
