// Package domain содержит типизированные доменные ошибки сервисного слоя.
// Сервисы возвращают эти ошибки, а HTTP-слой переводит их в ответы
// в одном месте (internal/http/response), чтобы все маршруты отдавали
// одинаковые конверты ошибок.
package domain

import "errors"

var (
	// ErrUserSalaryNotFound нет отправки зарплаты с данным UUID.
	ErrUserSalaryNotFound = errors.New("no match user salary")
	// ErrSalaryStatNotFound нет агрегата зарплат для пары (профессия, опыт).
	ErrSalaryStatNotFound = errors.New("no match job salary stat")
	// ErrUserProfileNotFound нет профиля для данной отправки зарплаты.
	ErrUserProfileNotFound = errors.New("no match user profile")
	// ErrSalaryNotFound привязка: отправка зарплаты не найдена.
	ErrSalaryNotFound = errors.New("salary record not found")
	// ErrSalaryAlreadyLinked отправка зарплаты уже привязана к пользователю.
	ErrSalaryAlreadyLinked = errors.New("salary already linked")
	// ErrUserCreationFailed не удалось сохранить пользователя.
	ErrUserCreationFailed = errors.New("user creation failed")
	// ErrConsentCreationFailed не удалось сохранить согласие.
	ErrConsentCreationFailed = errors.New("consent creation failed")
	// ErrRateLimitExceeded превышен лимит отправок с одного IP в окне.
	ErrRateLimitExceeded = errors.New("rate limit exceeded")
	// ErrClientIPUnresolvable не удалось определить IP клиента.
	ErrClientIPUnresolvable = errors.New("client ip unresolvable")
)
