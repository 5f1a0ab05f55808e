// Package models содержит доменную модель пользователя и его согласий.
// Пользователь создается лениво: только когда владелец анонимной отправки
// зарплаты оставляет email и согласие на рассылку.
package models

import "time"

// User представляет зарегистрированного пользователя системы.
type User struct {
	ID        int64      // Уникальный идентификатор
	Email     string     // Электронная почта, уникальная
	CreatedAt time.Time  // Дата создания
	WelcomedAt *time.Time // Когда отправлено приветственное письмо
}

// UserConsent представляет согласие пользователя на событие (например, маркетинг).
type UserConsent struct {
	ID     int64
	UserID int64
	Event  string // Тип события, например "marketing"
	Agree  bool
}

// ConsentEventMarketing событие согласия на маркетинговую рассылку.
const ConsentEventMarketing = "marketing"

// DummyEmail используется для приема данных из JSON-запроса на привязку email.
type DummyEmail struct {
	UniqueID string `json:"uniqueId" validate:"required,uuid"`
	Email    string `json:"email" validate:"required,email"`
	Agree    bool   `json:"agree"`
}
