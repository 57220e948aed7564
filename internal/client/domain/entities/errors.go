// Package entities содержит основные сущности домена клиента викторины.
package entities

import "errors"

// Определяем ошибки клиента как константы.
var (
	// ErrInvalidCredentials возвращается при неверном логине или пароле.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrAuthExpired возвращается при повторном 401 после однократного обновления токена.
	ErrAuthExpired = errors.New("authorization expired")
	// ErrSessionExpired возвращается при неудачном обновлении токена; токены при этом удалены.
	ErrSessionExpired = errors.New("session expired")
	// ErrForbidden возвращается, когда backend отклоняет запрос из-за недостатка прав.
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound возвращается для отсутствующих ресурсов.
	ErrNotFound = errors.New("resource not found")
	// ErrNotAuthenticated возвращается для операций, требующих активной сессии.
	ErrNotAuthenticated = errors.New("not authenticated")
	// ErrNoRefreshToken возвращается, когда обновление невозможно из-за отсутствия refresh токена.
	ErrNoRefreshToken = errors.New("no refresh token stored")
)
